package constants

import "fmt"

const (
	RoleUser    = "user"
	RoleShelter = "shelter"
	RoleAdmin   = "admin"
)

// Role error message templates
const (
	ErrOnlyAdminsCanAccess   = "Only admins can access %s."
	ErrOnlySheltersCanAccess = "Only shelter accounts or admins can access %s."
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorShelter(feature string) string {
	return fmt.Sprintf(ErrOnlySheltersCanAccess, feature)
}

// ==========================
// Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleUser,
		RoleShelter,
		RoleAdmin,
	}

	ShelterAndAbove = []string{
		RoleShelter,
		RoleAdmin,
	}

	AdminOnly = []string{
		RoleAdmin,
	}
)
