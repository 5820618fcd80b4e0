package service

import "github.com/aussiebroadwan/bookreview/internal/bookreview/domain"

// Actor is the authenticated caller of a service operation.
type Actor struct {
	ID   string
	Role domain.Role
}

// CanModify reports whether the actor may change content owned by ownerID.
// Administrators may change anything; orphaned content is admin-only.
func (a Actor) CanModify(ownerID string) bool {
	if a.Role.IsAdmin() {
		return true
	}
	return ownerID != "" && a.ID == ownerID
}
