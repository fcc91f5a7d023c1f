// Package policy holds the pure authorization decisions: who may do what to
// which resource. It knows nothing about gin, gorm or tokens — handlers build
// an Actor from the request context and ask.
package policy

import "reviewhub/internal/http-api/models"

// Actor is the caller of an operation. The zero value is the anonymous actor.
type Actor struct {
	ID            string
	Username      string
	Role          string
	Authenticated bool
}

// Anonymous is the actor for requests that carry no (valid) token.
var Anonymous = Actor{}

// Action is the closed set of operations the policy decides over.
type Action int

const (
	ActionList Action = iota
	ActionRetrieve
	ActionCreate
	ActionUpdate
	ActionDelete
)

// IsReadOnly reports whether an action is retrieval-class.
func IsReadOnly(action Action) bool {
	return action == ActionList || action == ActionRetrieve
}

func IsAdmin(actor Actor) bool {
	return actor.Authenticated && actor.Role == models.RoleAdmin
}

func IsModerator(actor Actor) bool {
	return actor.Authenticated && actor.Role == models.RoleModerator
}

// IsAuthorOrStaff reports whether the actor authored the resource (matched by
// author id) or holds a staff role.
func IsAuthorOrStaff(actor Actor, authorID string) bool {
	if !actor.Authenticated {
		return false
	}
	return actor.ID == authorID || IsModerator(actor) || IsAdmin(actor)
}

// AllowCatalog gates Category, Genre and Title operations: reads are open to
// everyone, mutations are admin-only.
func AllowCatalog(actor Actor, action Action) bool {
	if IsReadOnly(action) {
		return true
	}
	return IsAdmin(actor)
}

// AllowAccounts gates the /users collection. Everything is admin-only; the
// self-profile operation is handled by AllowSelf.
func AllowAccounts(actor Actor, _ Action) bool {
	return IsAdmin(actor)
}

// AllowSelf gates the /users/me operations.
func AllowSelf(actor Actor) bool {
	return actor.Authenticated
}

// AllowReview decides review operations. authorID is ignored for actions that
// carry no target object (list, retrieve, create).
func AllowReview(actor Actor, action Action, authorID string) bool {
	switch action {
	case ActionCreate:
		return actor.Authenticated
	case ActionUpdate, ActionDelete:
		return IsAuthorOrStaff(actor, authorID)
	default:
		// reads have no denial path
		return true
	}
}

// AllowComment mirrors AllowReview; comments share the review rules.
func AllowComment(actor Actor, action Action, authorID string) bool {
	return AllowReview(actor, action, authorID)
}
