package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound   = errors.New("record not found")
	ErrDuplicate  = errors.New("duplicate key")
	ErrReferenced = errors.New("record is still referenced")
	ErrStale      = errors.New("record changed concurrently")
)

// translate maps GORM errors onto repository sentinels. The gorm.DB must be
// opened with TranslateError so driver codes become gorm.ErrDuplicatedKey
// and gorm.ErrForeignKeyViolated.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrReferenced
	}
	return err
}
