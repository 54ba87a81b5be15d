package policy

import (
	"testing"

	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func caller(role string) *auth.Caller {
	return &auth.Caller{ID: uuid.New(), Role: role}
}

func TestRequireAuthenticated(t *testing.T) {
	assert.Equal(t, Decision{Allowed: false, Reason: ReasonUnauthenticated}, RequireAuthenticated(nil))
	assert.True(t, RequireAuthenticated(caller(models.RoleMember)).Allowed)
}

func TestCanModerate(t *testing.T) {
	tests := []struct {
		name   string
		caller *auth.Caller
		want   Decision
	}{
		{"anonymous", nil, Decision{false, ReasonUnauthenticated}},
		{"member", caller(models.RoleMember), Decision{false, ReasonInsufficientRole}},
		{"moderator", caller(models.RoleModerator), Decision{true, ReasonOK}},
		{"admin", caller(models.RoleAdmin), Decision{true, ReasonOK}},
		{"unknown role", caller("superuser"), Decision{false, ReasonInsufficientRole}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanModerate(tt.caller))
		})
	}
}

func TestCanAdminister(t *testing.T) {
	assert.False(t, CanAdminister(nil).Allowed)
	assert.False(t, CanAdminister(caller(models.RoleModerator)).Allowed)
	assert.True(t, CanAdminister(caller(models.RoleAdmin)).Allowed)
}

func TestCanModifyOwnResource(t *testing.T) {
	owner := caller(models.RoleMember)
	admin := caller(models.RoleAdmin)
	moderator := caller(models.RoleModerator)
	stranger := caller(models.RoleMember)

	tests := []struct {
		name   string
		caller *auth.Caller
		kind   Kind
		want   bool
		reason Reason
	}{
		{"anonymous post", nil, KindPost, false, ReasonUnauthenticated},
		{"owner post", owner, KindPost, true, ReasonOK},
		{"stranger post", stranger, KindPost, false, ReasonNotOwner},
		{"admin cannot edit foreign post", admin, KindPost, false, ReasonNotOwner},
		{"admin cannot edit foreign comment", admin, KindComment, false, ReasonNotOwner},
		{"owner comment", owner, KindComment, true, ReasonOK},
		{"stranger rating", stranger, KindRating, false, ReasonNotOwner},
		{"stranger notification", stranger, KindNotification, false, ReasonNotOwner},
		{"owner profile", owner, KindProfile, true, ReasonOK},
		{"admin profile", admin, KindProfile, true, ReasonOK},
		{"moderator foreign profile", moderator, KindProfile, false, ReasonNotOwner},
		{"moderator report", moderator, KindReport, true, ReasonOK},
		{"member report", owner, KindReport, false, ReasonInsufficientRole},
		{"admin announcement", admin, KindAnnouncement, true, ReasonOK},
		{"moderator announcement", moderator, KindAnnouncement, false, ReasonInsufficientRole},
		{"member category", owner, KindCategory, false, ReasonInsufficientRole},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := CanModifyOwnResource(tt.caller, tt.kind, owner.ID)
			assert.Equal(t, tt.want, d.Allowed)
			assert.Equal(t, tt.reason, d.Reason)
		})
	}
}
