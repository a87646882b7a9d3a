package services

import (
	"github.com/ihirwe-dev/gura-express-api/models"
)

// Access control lives in one place so every handler answers permission
// questions from the same table. Roles are not strictly hierarchical:
// employee is a distinct lane, not a subset of admin.

// IsStaff reports whether role is one of the staff roles
// (employee, admin, super_admin).
func IsStaff(role string) bool {
	switch role {
	case models.RoleEmployee, models.RoleAdmin, models.RoleSuperAdmin:
		return true
	}
	return false
}

// IsElevated reports whether role may see every order and every thread
// (admin, super_admin). Unassigned employees may not.
func IsElevated(role string) bool {
	return role == models.RoleAdmin || role == models.RoleSuperAdmin
}

// CanActOnOrders reports whether role may approve, decline, advance the
// stage of, or annotate orders.
func CanActOnOrders(role string) bool {
	return IsStaff(role)
}

// CanViewAllOrders reports whether role may list every order in the system.
func CanViewAllOrders(role string) bool {
	return IsElevated(role)
}

// CanManageVerifications reports whether role may verify or reject a
// user's identity documents.
func CanManageVerifications(role string) bool {
	return IsElevated(role)
}

// CanManageRoles reports whether role may change another user's role.
func CanManageRoles(role string) bool {
	return role == models.RoleSuperAdmin
}

// CanManageContent reports whether role may manage homepage content.
func CanManageContent(role string) bool {
	return role == models.RoleSuperAdmin
}

// CanCreateOrder reports whether the principal may place a new order:
// customers only, and only once verified.
func CanCreateOrder(user *models.User) bool {
	return user.Role == models.RoleUser && user.VerificationStatus == models.VerificationVerified
}

// CanAccessOrder is the record-level visibility rule, applied uniformly to
// order reads and their message threads: owner, assigned employee, or an
// elevated role.
func CanAccessOrder(user *models.User, order *models.Order) bool {
	if order.UserID == user.ID {
		return true
	}
	if order.AssignedEmployeeID != nil && *order.AssignedEmployeeID == user.ID {
		return true
	}
	return IsElevated(user.Role)
}
