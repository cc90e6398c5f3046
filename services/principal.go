package services

import (
	"github.com/Ludvin7x/lemon-api/entity"
)

type Role string

const (
	RoleAdmin        Role = "admin"
	RoleManager      Role = "manager"
	RoleDeliveryCrew Role = "delivery-crew"
	RoleCustomer     Role = "customer"
)

// Principal is the caller's resolved capability set, built once per request
// from group membership plus the admin flag. All policy checks go through
// its methods; nothing else compares group names.
type Principal struct {
	UserID   uint
	Username string
	Email    string
	roles    map[Role]bool
}

func ResolvePrincipal(u *entity.User) Principal {
	p := Principal{
		UserID:   u.ID,
		Username: u.Username,
		Email:    u.Email,
		roles:    make(map[Role]bool, 4),
	}
	if u.IsAdmin {
		p.roles[RoleAdmin] = true
	}
	for _, g := range u.Groups {
		switch g.Name {
		case entity.GroupManager:
			p.roles[RoleManager] = true
		case entity.GroupDeliveryCrew:
			p.roles[RoleDeliveryCrew] = true
		case entity.GroupCustomer:
			p.roles[RoleCustomer] = true
		}
	}
	return p
}

func (p Principal) Has(r Role) bool { return p.roles[r] }

// Admin and Manager share the privileged tier everywhere.
func (p Principal) CanViewAllOrders() bool { return p.roles[RoleAdmin] || p.roles[RoleManager] }
func (p Principal) CanManageOrders() bool  { return p.roles[RoleAdmin] || p.roles[RoleManager] }
func (p Principal) CanManageMenu() bool    { return p.roles[RoleAdmin] || p.roles[RoleManager] }
func (p Principal) CanManageGroups() bool  { return p.roles[RoleAdmin] || p.roles[RoleManager] }
