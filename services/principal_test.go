package services

import (
	"testing"

	"github.com/Ludvin7x/lemon-api/entity"
)

func TestResolvePrincipal(t *testing.T) {
	cases := []struct {
		name       string
		user       entity.User
		wantRoles  []Role
		canViewAll bool
	}{
		{
			name:       "admin flag alone",
			user:       entity.User{IsAdmin: true},
			wantRoles:  []Role{RoleAdmin},
			canViewAll: true,
		},
		{
			name: "manager group",
			user: entity.User{Groups: []entity.Group{{Name: entity.GroupManager}}},

			wantRoles:  []Role{RoleManager},
			canViewAll: true,
		},
		{
			name:      "delivery crew group",
			user:      entity.User{Groups: []entity.Group{{Name: entity.GroupDeliveryCrew}}},
			wantRoles: []Role{RoleDeliveryCrew},
		},
		{
			name:      "customer group",
			user:      entity.User{Groups: []entity.Group{{Name: entity.GroupCustomer}}},
			wantRoles: []Role{RoleCustomer},
		},
		{
			name: "unknown group resolves to nothing",
			user: entity.User{Groups: []entity.Group{{Name: "Wizards"}}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := ResolvePrincipal(&tc.user)
			for _, r := range tc.wantRoles {
				if !p.Has(r) {
					t.Errorf("missing role %q", r)
				}
			}
			if p.CanViewAllOrders() != tc.canViewAll {
				t.Errorf("CanViewAllOrders = %v, want %v", p.CanViewAllOrders(), tc.canViewAll)
			}
		})
	}
}

func TestPrincipalCapabilityTiers(t *testing.T) {
	admin := ResolvePrincipal(&entity.User{IsAdmin: true})
	crew := ResolvePrincipal(&entity.User{Groups: []entity.Group{{Name: entity.GroupDeliveryCrew}}})
	customer := ResolvePrincipal(&entity.User{Groups: []entity.Group{{Name: entity.GroupCustomer}}})

	for _, p := range []Principal{crew, customer} {
		if p.CanManageOrders() || p.CanManageMenu() || p.CanManageGroups() {
			t.Errorf("non-privileged principal has management capability: %+v", p)
		}
	}
	if !admin.CanManageOrders() || !admin.CanManageMenu() || !admin.CanManageGroups() {
		t.Error("admin lost a management capability")
	}
}
