package auth

import (
	"strings"

	"github.com/goliatone/go-errors"
)

// UserRole is the user's role
type UserRole = string

const (
	// RoleStudent is a tenant looking for housing
	RoleStudent UserRole = "student"
	// RoleOwner is a property owner listing units
	RoleOwner UserRole = "owner"
	// RoleAdmin is a platform administrator
	RoleAdmin UserRole = "admin"
	// RoleParent is a guardian account tied to a student
	RoleParent UserRole = "parent"
)

// AllRoles returns every role the platform recognizes.
func AllRoles() []UserRole {
	return []UserRole{RoleStudent, RoleOwner, RoleAdmin, RoleParent}
}

// IsValidRole reports whether role names a known role.
func IsValidRole(role string) bool {
	switch role {
	case RoleStudent, RoleOwner, RoleAdmin, RoleParent:
		return true
	}
	return false
}

// ParseRole normalizes and validates a raw role string.
func ParseRole(raw string) (UserRole, error) {
	role := strings.ToLower(strings.TrimSpace(raw))
	if !IsValidRole(role) {
		return "", errors.New("unknown or invalid role", errors.CategoryValidation).
			WithCode(errors.CodeBadRequest).
			WithTextCode("INVALID_ROLE").
			WithMetadata(map[string]any{"role": raw})
	}
	return role, nil
}

// RoleAllowed reports whether role is present in the allowed set. There is no
// role hierarchy: admin passes a gate only when the gate names admin.
func RoleAllowed(role string, allowed ...UserRole) bool {
	for _, candidate := range allowed {
		if role == candidate {
			return true
		}
	}
	return false
}
