// Package authz implements the single authorization predicate used by every
// engine operation. Role gates on routes only narrow who can reach a
// handler; the per-resource decision always goes through Can, with the
// resource fetched fresh from the store.
package authz

import "github.com/templecycle/templecycle-api/internal/domain/entity"

// Action is a capability evaluated against a resource.
type Action string

const (
	ActionView           Action = "view"
	ActionManageProduct  Action = "manage_product"
	ActionSetRFQStatus   Action = "set_rfq_status"
	ActionSubmitQuote    Action = "submit_quote"
	ActionSetOrderStatus Action = "set_order_status"
	ActionRecordPayment  Action = "record_payment"
	ActionAttachDocument Action = "attach_document"
)

// Actor is the authenticated identity making a request.
type Actor struct {
	ID   string
	Role string
}

// Resource is the tagged owning-identity view of a Product, RFQ or Order.
// BuyerID/SHGID are empty when the resource kind has no such owner.
type Resource struct {
	BuyerID string
	SHGID   string
}

// ProductResource builds the authz view of a product.
func ProductResource(p *entity.Product) Resource {
	return Resource{SHGID: p.SHGID}
}

// RFQResource builds the authz view of an RFQ. productSHGID is the owner of
// the RFQ's referenced product, which is what scopes shg visibility.
func RFQResource(r *entity.RFQ, productSHGID string) Resource {
	return Resource{BuyerID: r.BuyerID, SHGID: productSHGID}
}

// OrderResource builds the authz view of an order.
func OrderResource(o *entity.Order) Resource {
	return Resource{BuyerID: o.BuyerID, SHGID: o.SHGID}
}

// Can decides whether actor may perform action on res.
//
// Admins bypass every ownership check except quote submission, which is
// strictly reserved for the shg owning the referenced product — an admin
// has no product to price.
func Can(actor Actor, action Action, res Resource) bool {
	if action == ActionSubmitQuote {
		return actor.Role == entity.RoleSHG && actor.ID == res.SHGID
	}
	if actor.Role == entity.RoleAdmin {
		return true
	}

	switch action {
	case ActionView:
		switch actor.Role {
		case entity.RoleCSR:
			return true
		case entity.RoleBuyer:
			return res.BuyerID != "" && actor.ID == res.BuyerID
		case entity.RoleSHG:
			return res.SHGID != "" && actor.ID == res.SHGID
		}
	case ActionManageProduct:
		return actor.Role == entity.RoleSHG && actor.ID == res.SHGID
	case ActionSetRFQStatus, ActionRecordPayment:
		return actor.Role == entity.RoleBuyer && actor.ID == res.BuyerID
	case ActionSetOrderStatus:
		switch actor.Role {
		case entity.RoleBuyer:
			return actor.ID == res.BuyerID
		case entity.RoleSHG:
			return actor.ID == res.SHGID
		}
	case ActionAttachDocument:
		return actor.Role == entity.RoleSHG && actor.ID == res.SHGID
	}
	return false
}
