// Package policy holds the forum's authorization rules. Every function is
// pure: it looks only at the caller and the facts passed in.
package policy

import (
	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/models"
	"github.com/google/uuid"
)

type Reason string

const (
	ReasonOK               Reason = "ok"
	ReasonUnauthenticated  Reason = "unauthenticated"
	ReasonNotOwner         Reason = "not_owner"
	ReasonInsufficientRole Reason = "insufficient_role"
)

type Decision struct {
	Allowed bool
	Reason  Reason
}

var allow = Decision{Allowed: true, Reason: ReasonOK}

func deny(r Reason) Decision {
	return Decision{Allowed: false, Reason: r}
}

// Kind identifies the resource being modified.
type Kind int

const (
	KindPost Kind = iota
	KindComment
	KindRating
	KindNotification
	KindProfile
	KindReport
	KindAnnouncement
	KindCategory
)

func RequireAuthenticated(caller *auth.Caller) Decision {
	if caller == nil {
		return deny(ReasonUnauthenticated)
	}
	return allow
}

// CanModerate allows administrators and moderators.
func CanModerate(caller *auth.Caller) Decision {
	if caller == nil {
		return deny(ReasonUnauthenticated)
	}
	if caller.Role == models.RoleAdmin || caller.Role == models.RoleModerator {
		return allow
	}
	return deny(ReasonInsufficientRole)
}

// CanAdminister allows administrators only.
func CanAdminister(caller *auth.Caller) Decision {
	if caller == nil {
		return deny(ReasonUnauthenticated)
	}
	if caller.Role == models.RoleAdmin {
		return allow
	}
	return deny(ReasonInsufficientRole)
}

// CanModifyOwnResource decides whether caller may change a resource of the
// given kind owned by ownerID. Posts, comments, ratings and notifications
// require an exact ownership match, administrators included.
func CanModifyOwnResource(caller *auth.Caller, kind Kind, ownerID uuid.UUID) Decision {
	if caller == nil {
		return deny(ReasonUnauthenticated)
	}
	switch kind {
	case KindPost, KindComment, KindRating, KindNotification:
		if caller.ID == ownerID {
			return allow
		}
		return deny(ReasonNotOwner)
	case KindProfile:
		if caller.ID == ownerID || caller.Role == models.RoleAdmin {
			return allow
		}
		return deny(ReasonNotOwner)
	case KindReport:
		return CanModerate(caller)
	case KindAnnouncement, KindCategory:
		return CanAdminister(caller)
	}
	return deny(ReasonInsufficientRole)
}
