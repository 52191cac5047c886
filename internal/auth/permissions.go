package auth

import "github.com/chaitali929/coremodeling/internal/models"

type Permission string

const (
	PermSetArtistStatus  Permission = "artists:status:write"
	PermListAllArtists   Permission = "artists:read:all"
	PermReadAnyGallery   Permission = "gallery:read:any"
	PermReadApplications Permission = "applications:read:any"
	PermExportArtists    Permission = "artists:export"
	PermApply            Permission = "applications:write:self"
)

// Permissions maps roles to the actions they may perform beyond their own account.
var Permissions = map[models.AccountRole][]Permission{
	models.RoleAdmin: {
		PermSetArtistStatus,
		PermListAllArtists,
		PermReadAnyGallery,
		PermReadApplications,
		PermExportArtists,
	},
	models.RoleArtist: {
		PermApply,
	},
	models.RoleRecruiter: {},
}

func HasPermission(role models.AccountRole, permission Permission) bool {
	for _, p := range Permissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}

// Can checks the identity's role.
func (i Identity) Can(permission Permission) bool {
	return HasPermission(i.Role, permission)
}
