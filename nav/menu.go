package nav

import "github.com/playline/backoffice/identity"

// Default returns the backoffice menu tree. The tree is rebuilt on every
// call so callers are free to hand their copy to Filter.
func Default() []Item {
	operational := []identity.Actor{identity.ActorSuperAdmin, identity.ActorTeam}

	return []Item{
		{
			Name:           "Dashboard",
			TranslationKey: "sidebar.dashboard",
			Icon:           "grid",
			Path:           "/",
		},
		{
			Name:               "Customers",
			TranslationKey:     "sidebar.customers",
			Icon:               "user",
			Path:               "/customers",
			RequiredPermission: "customer:read",
		},
		{
			Name:               "Bonus Offer",
			TranslationKey:     "sidebar.bonusOffer",
			Icon:               "dollar",
			Path:               "/bonus-offer",
			RequiredPermission: "bonusoffer:read",
			RequiredActors:     operational,
		},
		{
			Name:           "Operational",
			TranslationKey: "sidebar.operational",
			Icon:           "settings",
			Items: []Item{
				{Name: "Teams", TranslationKey: "sidebar.teams", Path: "/teams", RequiredPermission: "teams:read", RequiredActors: operational},
				{Name: "Agents", TranslationKey: "sidebar.agents", Path: "/agents", RequiredPermission: "agents:read", RequiredActors: operational},
				{Name: "Banks", TranslationKey: "sidebar.banks", Path: "/banks", RequiredPermission: "banks:read", RequiredActors: operational},
				{Name: "Products", TranslationKey: "sidebar.products", Path: "/products", RequiredPermission: "products:read", RequiredActors: operational},
				{Name: "Promotion", TranslationKey: "sidebar.promotion", Path: "/promotions", RequiredPermission: "products:read", RequiredActors: operational},
				{Name: "Bonus", TranslationKey: "sidebar.bonus", Path: "/bonus", RequiredPermission: "bonuses:read", RequiredActors: operational},
			},
		},
		{
			Name:           "Administration",
			TranslationKey: "sidebar.administration",
			Icon:           "admin",
			Items: []Item{
				{Name: "Role Permissions", TranslationKey: "sidebar.rolePermissions", Path: "/role-permission", RequiredPermission: "roles:read", RequiredActors: operational},
				{Name: "Users", TranslationKey: "sidebar.users", Path: "/users", RequiredPermission: "users:read", RequiredActors: operational},
			},
		},
		{
			Name:           "User Profile",
			TranslationKey: "sidebar.userProfile",
			Icon:           "user-circle",
			Path:           "/profile",
		},
	}
}
