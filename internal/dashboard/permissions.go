// AngelaMos | 2026
// permissions.go

package dashboard

import (
	"github.com/carterperez-dev/storefront/internal/user"
)

type Permissions struct {
	CanEdit   bool `json:"canEdit"`
	CanDelete bool `json:"canDelete"`
	CanExport bool `json:"canExport"`
}

// PermissionsFor grants nothing without a user, edit only to guests and
// everything to registered accounts.
func PermissionsFor(u *user.User) Permissions {
	switch {
	case u == nil:
		return Permissions{}
	case u.IsGuest:
		return Permissions{CanEdit: true}
	default:
		return Permissions{CanEdit: true, CanDelete: true, CanExport: true}
	}
}
