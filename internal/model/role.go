package model

// Role is the closed set of employee roles
type Role string

const (
	RoleMallAdmin Role = "malladmin"
	RoleShopOwner Role = "shopowner"
	RoleStaff     Role = "staff"
)

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case RoleMallAdmin, RoleShopOwner, RoleStaff:
		return true
	}
	return false
}

// RequiresShop reports whether employees with this role must belong to a shop
func (r Role) RequiresShop() bool {
	return r == RoleShopOwner || r == RoleStaff
}
