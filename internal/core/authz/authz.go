// Package authz decides whether an actor may perform an action on a resource.
//
// Decisions are pure: they read only the actor's identity snapshot and the
// ownership fields of the target, never the store. A nil actor is anonymous.
package authz

import (
	"github.com/vidshare/platform/internal/core/domain"
)

// Action names an operation subject to authorization.
type Action string

const (
	ListUsers  Action = "user:list"
	ViewUser   Action = "user:view"
	UpdateUser Action = "user:update"
	DeleteUser Action = "user:delete"
	SetRole    Action = "user:set_role"

	UploadVideo Action = "video:upload"
	UpdateVideo Action = "video:update"
	DeleteVideo Action = "video:delete"
	AttachCode  Action = "video:attach_code"

	PostComment   Action = "comment:post"
	UpdateComment Action = "comment:update"
	DeleteComment Action = "comment:delete"

	AdminPanel Action = "admin:panel"
)

// Resource carries the ownership fields of the target entity.
// OwnerID is a user id (the user itself, or a video's owner); Author is a
// comment's author username.
type Resource struct {
	OwnerID string
	Author  string
}

type rule int

const (
	ruleAnyone rule = iota
	ruleAuthenticated
	ruleSelfOrAdmin
	ruleAuthorOrAdmin
	ruleAdmin
)

var rules = map[Action]rule{
	ListUsers:     ruleAdmin,
	ViewUser:      ruleAnyone,
	UpdateUser:    ruleSelfOrAdmin,
	DeleteUser:    ruleSelfOrAdmin,
	SetRole:       ruleAdmin,
	UploadVideo:   ruleAuthenticated,
	UpdateVideo:   ruleSelfOrAdmin,
	DeleteVideo:   ruleSelfOrAdmin,
	AttachCode:    ruleSelfOrAdmin,
	PostComment:   ruleAnyone,
	UpdateComment: ruleAuthorOrAdmin,
	DeleteComment: ruleAuthorOrAdmin,
	AdminPanel:    ruleAdmin,
}

// IsAdmin reports whether actor is present and holds the admin role.
func IsAdmin(actor *domain.Identity) bool {
	return actor != nil && actor.Role == domain.RoleAdmin
}

// IsSelfOrAdmin reports whether actor is the user ownerID or an admin.
func IsSelfOrAdmin(actor *domain.Identity, ownerID string) bool {
	if actor == nil {
		return false
	}
	return (ownerID != "" && actor.UserID == ownerID) || IsAdmin(actor)
}

// IsAuthorOrAdmin reports whether actor's username matches author or actor is an admin.
func IsAuthorOrAdmin(actor *domain.Identity, author string) bool {
	if actor == nil {
		return false
	}
	return (author != "" && actor.Username == author) || IsAdmin(actor)
}

// RequireIdentity fails with ErrUnauthenticated when there is no actor.
func RequireIdentity(actor *domain.Identity) error {
	if actor == nil {
		return domain.ErrUnauthenticated
	}
	return nil
}

// Authorize returns nil when actor may perform action on res,
// ErrUnauthenticated when the action needs a session and there is none, and
// ErrForbidden otherwise. Unknown actions are always forbidden.
func Authorize(actor *domain.Identity, action Action, res Resource) error {
	r, ok := rules[action]
	if !ok {
		return domain.ErrForbidden
	}
	if r == ruleAnyone {
		return nil
	}
	if actor == nil {
		return domain.ErrUnauthenticated
	}

	var allowed bool
	switch r {
	case ruleAuthenticated:
		allowed = true
	case ruleSelfOrAdmin:
		allowed = IsSelfOrAdmin(actor, res.OwnerID)
	case ruleAuthorOrAdmin:
		allowed = IsAuthorOrAdmin(actor, res.Author)
	case ruleAdmin:
		allowed = IsAdmin(actor)
	}
	if !allowed {
		return domain.ErrForbidden
	}
	return nil
}
