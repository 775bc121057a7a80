// Package auth implements the authorization engine and credential
// primitives: password hashing, session tokens, reset tokens and the
// role/permission decision function shared by every resource service.
package auth

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role classifies a principal. Admins hold every permission
// unconditionally; CSRs hold an explicit subset of the catalog.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleCSR   Role = "csr"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleCSR
}

// Principal is the resolved identity of an authenticated caller. It is
// rebuilt from persisted state on every request, so permission changes
// take effect immediately even while old session tokens remain valid.
type Principal struct {
	ID          primitive.ObjectID
	Name        string
	Email       string
	Role        Role
	Permissions []Permission
}

// IsAdmin reports whether the principal has the admin role.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// HasPermission reports whether the principal holds perm. Admins hold
// every permission regardless of their stored set.
func (p Principal) HasPermission(perm Permission) bool {
	if p.IsAdmin() {
		return true
	}
	for _, have := range p.Permissions {
		if have == perm {
			return true
		}
	}
	return false
}

// EffectivePermissions returns the permission set the principal acts
// with: the full catalog for admins, the stored subset for CSRs.
func (p Principal) EffectivePermissions() []Permission {
	if p.IsAdmin() {
		return AllPermissions()
	}
	if p.Permissions == nil {
		return []Permission{}
	}
	return p.Permissions
}

// Authorize allows the action when the principal is an admin or holds at
// least one of the required permissions. On denial it returns a
// *ForbiddenError carrying the permissions that would have satisfied
// the check.
func Authorize(p Principal, required ...Permission) error {
	if p.IsAdmin() {
		return nil
	}
	for _, perm := range required {
		if p.HasPermission(perm) {
			return nil
		}
	}
	return &ForbiddenError{Required: required}
}

// OwnershipFilter derives the query filter restricting which owned
// resources the principal may see: unrestricted for admins, limited to
// records the CSR created otherwise.
func OwnershipFilter(p Principal) bson.M {
	if p.IsAdmin() {
		return bson.M{}
	}
	return bson.M{"createdBy": p.ID}
}

// Owns reports whether the principal may act on a resource with the given
// owner. Mutations re-check ownership explicitly rather than trusting
// the query filter.
func (p Principal) Owns(ownerID primitive.ObjectID) bool {
	if p.IsAdmin() {
		return true
	}
	return ownerID == p.ID
}
