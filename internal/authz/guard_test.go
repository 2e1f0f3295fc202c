package authz

import (
	"testing"

	"github.com/jwtpizza/pizza-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
)

func testUser(id uint, roles ...model.UserRole) *model.User {
	return &model.User{
		ID:    id,
		Name:  "Test User",
		Email: "test@example.com",
		Roles: roles,
	}
}

func franchiseeOf(franchiseID uint) model.UserRole {
	id := franchiseID
	return model.UserRole{Role: model.RoleFranchisee, FranchiseID: &id}
}

func TestAuthorize(t *testing.T) {
	diner := testUser(1, model.UserRole{Role: model.RoleDiner})
	admin := testUser(2, model.UserRole{Role: model.RoleAdmin})
	franchisee := testUser(3, model.UserRole{Role: model.RoleDiner}, franchiseeOf(10))

	tests := []struct {
		name       string
		actor      *model.User
		action     Action
		resource   Resource
		allowed    bool
		wantReason Reason
	}{
		{
			name:       "Nil actor is unauthenticated",
			actor:      nil,
			action:     ActionViewProfile,
			resource:   Resource{OwnerID: 1},
			allowed:    false,
			wantReason: ReasonUnauthenticated,
		},
		{
			name:     "Diner views own profile",
			actor:    diner,
			action:   ActionViewProfile,
			resource: Resource{OwnerID: 1},
			allowed:  true,
		},
		{
			name:       "Diner updates another user's profile",
			actor:      diner,
			action:     ActionUpdateProfile,
			resource:   Resource{OwnerID: 2},
			allowed:    false,
			wantReason: ReasonForbidden,
		},
		{
			name:     "Diner updates own profile",
			actor:    diner,
			action:   ActionUpdateProfile,
			resource: Resource{OwnerID: 1},
			allowed:  true,
		},
		{
			name:       "Diner lists users",
			actor:      diner,
			action:     ActionListUsers,
			resource:   Resource{},
			allowed:    false,
			wantReason: ReasonForbidden,
		},
		{
			name:     "Admin lists users",
			actor:    admin,
			action:   ActionListUsers,
			resource: Resource{},
			allowed:  true,
		},
		{
			name:     "Admin updates another user's profile",
			actor:    admin,
			action:   ActionUpdateProfile,
			resource: Resource{OwnerID: 1},
			allowed:  true,
		},
		{
			name:       "Diner deletes user",
			actor:      diner,
			action:     ActionDeleteUser,
			resource:   Resource{OwnerID: 1},
			allowed:    false,
			wantReason: ReasonForbidden,
		},
		{
			name:     "Admin deletes user",
			actor:    admin,
			action:   ActionDeleteUser,
			resource: Resource{OwnerID: 1},
			allowed:  true,
		},
		{
			name:       "Franchisee creates franchise",
			actor:      franchisee,
			action:     ActionCreateFranchise,
			resource:   Resource{},
			allowed:    false,
			wantReason: ReasonForbidden,
		},
		{
			name:     "Admin creates franchise",
			actor:    admin,
			action:   ActionCreateFranchise,
			resource: Resource{},
			allowed:  true,
		},
		{
			name:     "Franchisee creates store in own franchise",
			actor:    franchisee,
			action:   ActionCreateStore,
			resource: Resource{FranchiseID: 10},
			allowed:  true,
		},
		{
			name:       "Franchisee creates store in another franchise",
			actor:      franchisee,
			action:     ActionCreateStore,
			resource:   Resource{FranchiseID: 11},
			allowed:    false,
			wantReason: ReasonForbidden,
		},
		{
			name:     "Franchisee deletes store in own franchise",
			actor:    franchisee,
			action:   ActionDeleteStore,
			resource: Resource{FranchiseID: 10},
			allowed:  true,
		},
		{
			name:     "Admin deletes store in any franchise",
			actor:    admin,
			action:   ActionDeleteStore,
			resource: Resource{FranchiseID: 99},
			allowed:  true,
		},
		{
			name:       "Diner updates menu",
			actor:      diner,
			action:     ActionUpdateMenu,
			resource:   Resource{},
			allowed:    false,
			wantReason: ReasonForbidden,
		},
		{
			name:       "Franchisee updates menu",
			actor:      franchisee,
			action:     ActionUpdateMenu,
			resource:   Resource{},
			allowed:    false,
			wantReason: ReasonForbidden,
		},
		{
			name:     "Admin updates menu",
			actor:    admin,
			action:   ActionUpdateMenu,
			resource: Resource{},
			allowed:  true,
		},
		{
			name:     "Any authenticated user creates order",
			actor:    diner,
			action:   ActionCreateOrder,
			resource: Resource{},
			allowed:  true,
		},
		{
			name:       "Unauthenticated user creates order",
			actor:      nil,
			action:     ActionCreateOrder,
			resource:   Resource{},
			allowed:    false,
			wantReason: ReasonUnauthenticated,
		},
		{
			name:     "Diner lists own orders",
			actor:    diner,
			action:   ActionListOrders,
			resource: Resource{OwnerID: 1},
			allowed:  true,
		},
		{
			name:     "Diner views own franchises",
			actor:    diner,
			action:   ActionViewFranchises,
			resource: Resource{OwnerID: 1},
			allowed:  true,
		},
		{
			name:       "Diner views another user's franchises",
			actor:      diner,
			action:     ActionViewFranchises,
			resource:   Resource{OwnerID: 2},
			allowed:    false,
			wantReason: ReasonForbidden,
		},
		{
			name:     "Admin views another user's franchises",
			actor:    admin,
			action:   ActionViewFranchises,
			resource: Resource{OwnerID: 1},
			allowed:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := Authorize(tt.actor, tt.action, tt.resource)

			assert.Equal(t, tt.allowed, decision.Allowed)
			if !tt.allowed {
				assert.Equal(t, tt.wantReason, decision.Reason)
			}
		})
	}
}
