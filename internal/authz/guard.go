// Package authz holds the single authorization decision function. Handlers
// never branch on roles themselves; they describe the action and resource
// and ask for a decision.
package authz

import (
	"github.com/jwtpizza/pizza-backend/internal/app/model"
)

// Action is an operation a user may attempt.
type Action string

const (
	ActionViewProfile     Action = "user.view"
	ActionUpdateProfile   Action = "user.update"
	ActionListUsers       Action = "user.list"
	ActionDeleteUser      Action = "user.delete"
	ActionCreateFranchise Action = "franchise.create"
	ActionDeleteFranchise Action = "franchise.delete"
	ActionViewFranchises  Action = "franchise.view_own"
	ActionCreateStore     Action = "store.create"
	ActionDeleteStore     Action = "store.delete"
	ActionUpdateMenu      Action = "menu.update"
	ActionCreateOrder     Action = "order.create"
	ActionListOrders      Action = "order.list_own"
)

// Resource identifies the target of an action. OwnerID is set for
// user-owned resources (profiles, order histories), FranchiseID for
// franchise-scoped ones (stores, franchise listings).
type Resource struct {
	OwnerID     uint
	FranchiseID uint
}

// Reason explains a denial.
type Reason string

const (
	// ReasonUnauthenticated maps to HTTP 401 at the boundary.
	ReasonUnauthenticated Reason = "unauthenticated"
	// ReasonForbidden maps to HTTP 403 at the boundary.
	ReasonForbidden Reason = "forbidden"
)

// Decision is the outcome of an authorization check.
type Decision struct {
	Allowed bool
	Reason  Reason
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(reason Reason) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// Authorize decides whether actor may perform action on resource. The
// actor's role list is the sole source of truth; the function reads state
// and never mutates it.
//
// Rules are evaluated in precedence order:
//  1. no actor -> unauthenticated
//  2. self-service actions -> allow for the resource owner
//  3. global admin -> allow everything
//  4. franchise-scoped actions -> allow for that franchise's franchisee
//  5. everything else -> forbidden
func Authorize(actor *model.User, action Action, resource Resource) Decision {
	if actor == nil {
		return deny(ReasonUnauthenticated)
	}

	switch action {
	case ActionViewProfile, ActionUpdateProfile, ActionListOrders, ActionViewFranchises:
		if resource.OwnerID != 0 && resource.OwnerID == actor.ID {
			return allow()
		}
	}

	if actor.IsAdmin() {
		return allow()
	}

	switch action {
	case ActionCreateOrder:
		// Any authenticated user may place an order.
		return allow()
	case ActionCreateStore, ActionDeleteStore:
		if resource.FranchiseID != 0 && actor.IsFranchiseeOf(resource.FranchiseID) {
			return allow()
		}
	}

	return deny(ReasonForbidden)
}
