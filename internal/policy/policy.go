// Package policy is the single source of allow/deny decisions for mutating
// actions. Handlers and services call these predicates instead of
// re-deriving role checks inline, so the rules cannot drift between
// endpoints. All predicates are pure: the caller supplies the actor (from
// verified token claims) and the ownership ids it re-read from storage.
package policy

import "github.com/teamtrack/backend/internal/models"

// Actor is the authenticated user issuing a request, identified by decoded
// token fields.
type Actor struct {
	ID   uint
	Role string
}

// IsAdmin reports whether the actor holds the Admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

// CanEditProject allows the project owner and any Admin or Manager. The
// same rule gates member add/remove.
func CanEditProject(actor Actor, ownerID uint) bool {
	return actor.ID == ownerID ||
		actor.Role == models.RoleAdmin ||
		actor.Role == models.RoleManager
}

// CanDeleteProject is stricter than edit: only the owner or an Admin.
// A Manager may edit a project but not delete it.
func CanDeleteProject(actor Actor, ownerID uint) bool {
	return actor.ID == ownerID || actor.Role == models.RoleAdmin
}

// CanDeleteTask allows the task creator, the owning project's owner, and
// any Admin or Manager.
func CanDeleteTask(actor Actor, taskCreatorID, projectOwnerID uint) bool {
	return actor.ID == taskCreatorID ||
		actor.ID == projectOwnerID ||
		actor.Role == models.RoleAdmin ||
		actor.Role == models.RoleManager
}

// CanManageUsers gates user role edits and user deletion: Admin only.
func CanManageUsers(actor Actor) bool {
	return actor.Role == models.RoleAdmin
}

// CanDeleteUser additionally denies self-deletion regardless of role. The
// caller must map a self-delete denial to a validation error (400), not
// forbidden, to keep the two outcomes distinguishable.
func CanDeleteUser(actor Actor, targetID uint) bool {
	return CanManageUsers(actor) && actor.ID != targetID
}

// IsSelf reports whether the actor is operating on their own account.
func IsSelf(actor Actor, targetID uint) bool {
	return actor.ID == targetID
}
