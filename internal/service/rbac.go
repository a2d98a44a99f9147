package service

import "accounthub/internal/entity"

// Permission names, matching the seeded permission catalogue.
const (
	PermissionReadUsers = "READ_USERS"

	PermissionReadRoles     = "READ_ROLES"
	PermissionAddRoles      = "ADD_ROLES"
	PermissionModifyRoles   = "MODIFY_ROLES"
	PermissionDeleteRoles   = "DELETE_ROLES"
	PermissionAssignRoles   = "ASSIGN_ROLES_TO_USERS"
	PermissionUnassignRoles = "UNASSIGN_ROLES_FROM_USERS"
)

// HasPermission flattens the account's roles into a permission-name set and
// answers membership. Pure function of the already-loaded role graph; it
// never touches storage.
func HasPermission(permission string, account *entity.Account) bool {
	if account == nil || len(account.Roles) == 0 {
		return false
	}
	for _, role := range account.Roles {
		for _, perm := range role.Permissions {
			if perm.Name == permission {
				return true
			}
		}
	}
	return false
}

func RequirePermission(permission string, account *entity.Account) error {
	if !HasPermission(permission, account) {
		return ErrPermissionDenied
	}
	return nil
}
