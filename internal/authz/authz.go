// Package authz holds the authorization policy as explicit decision
// functions. Services consult these before touching stores, so every role and
// tenancy rule is written down in one place instead of scattered through the
// service methods.
//
// Convention: tenancy is checked before roles or ownership. Organizations and
// users grant PLATFORM_ADMIN a cross-tenant exception; projects and tasks do
// not — a platform admin sees only its own (platform) organization there.
package authz

import "taskplane.app/api-server/internal/model"

type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// SameTenant is the strict tenancy check used for projects and tasks:
// no platform-admin exception.
func SameTenant(caller *model.User, resourceOrgID int64) Decision {
	if caller.OrganizationID != resourceOrgID {
		return deny("access denied")
	}
	return allow()
}

// TenantOrPlatform is the tenancy check for organizations and users, where
// PLATFORM_ADMIN has cross-tenant access.
func TenantOrPlatform(caller *model.User, resourceOrgID int64) Decision {
	if caller.Role == model.RolePlatformAdmin {
		return allow()
	}
	return SameTenant(caller, resourceOrgID)
}

func CanCreateOrganization(caller *model.User) Decision {
	if caller.Role != model.RolePlatformAdmin {
		return deny("only platform admins can create organizations")
	}
	return allow()
}

func CanDeleteOrganization(caller *model.User) Decision {
	if caller.Role != model.RolePlatformAdmin {
		return deny("only platform admins can delete organizations")
	}
	return allow()
}

// CanUpdateOrganization allows any caller inside the tenant; org admins
// manage their own organization, platform admins manage all.
func CanUpdateOrganization(caller *model.User, orgID int64) Decision {
	return TenantOrPlatform(caller, orgID)
}

func CanManageUsers(caller *model.User) Decision {
	if !caller.Role.IsAdmin() {
		return deny("insufficient permissions")
	}
	return allow()
}

// CanCreateUserIn checks the target organization of a user-create: org admins
// are pinned to their own tenant, platform admins may target any.
func CanCreateUserIn(caller *model.User, targetOrgID int64) Decision {
	if d := CanManageUsers(caller); !d.Allowed {
		return d
	}
	if caller.Role == model.RoleOrganizationAdmin && caller.OrganizationID != targetOrgID {
		return deny("cannot create users in other organizations")
	}
	return allow()
}

func CanCreateProject(caller *model.User, targetOrgID int64) Decision {
	if caller.Role == model.RolePlatformAdmin {
		return deny("platform admins cannot create projects")
	}
	if caller.OrganizationID != targetOrgID {
		return deny("cannot create projects in other organizations")
	}
	return allow()
}

// CanViewProject assumes the tenant check already passed. Members must be the
// creator or associated through an assigned task; admins see the whole org.
func CanViewProject(caller *model.User, createdBy int64, associated bool) Decision {
	if caller.Role != model.RoleOrganizationMember {
		return allow()
	}
	if caller.ID == createdBy || associated {
		return allow()
	}
	return deny("access denied")
}

// CanModifyProject covers update and delete: members must be the creator.
func CanModifyProject(caller *model.User, createdBy int64) Decision {
	if caller.Role != model.RoleOrganizationMember {
		return allow()
	}
	if caller.ID != createdBy {
		return deny("only the project creator can modify it")
	}
	return allow()
}

func CanCreateTask(caller *model.User) Decision {
	if caller.Role == model.RolePlatformAdmin {
		return deny("platform admins cannot create tasks")
	}
	return allow()
}

// CanViewTask assumes the tenant check already passed.
func CanViewTask(caller *model.User, task *model.Task) Decision {
	if caller.Role != model.RoleOrganizationMember {
		return allow()
	}
	if task.CreatedBy == caller.ID || task.IsAssignee(caller.ID) {
		return allow()
	}
	return deny("access denied")
}

// CanUpdateTask: members must be the creator or an assignee.
func CanUpdateTask(caller *model.User, task *model.Task) Decision {
	if caller.Role != model.RoleOrganizationMember {
		return allow()
	}
	if task.CreatedBy == caller.ID || task.IsAssignee(caller.ID) {
		return allow()
	}
	return deny("only the task creator or assignees can update it")
}

// CanDeleteTask: members must be the creator; being an assignee is not enough.
func CanDeleteTask(caller *model.User, task *model.Task) Decision {
	if caller.Role != model.RoleOrganizationMember {
		return allow()
	}
	if task.CreatedBy != caller.ID {
		return deny("only the task creator can delete it")
	}
	return allow()
}
