package constants

import "fmt"

const (
	RoleUser        = "user"
	RoleChurchAdmin = "church_admin"
	RoleSuperAdmin  = "super_admin"
)

// Role error message templates
const (
	ErrOnlyChurchAdminsCanAccess = "Only church admins may access %s."
	ErrOnlySuperAdminsCanAccess  = "Only super admins may access %s."
)

func RoleErrorChurchAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyChurchAdminsCanAccess, feature)
}

func RoleErrorSuperAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlySuperAdminsCanAccess, feature)
}

// ==========================
// Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleUser,
		RoleChurchAdmin,
		RoleSuperAdmin,
	}

	ChurchAdminAndAbove = []string{
		RoleChurchAdmin,
		RoleSuperAdmin,
	}

	SuperAdminOnly = []string{
		RoleSuperAdmin,
	}
)
