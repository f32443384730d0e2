package authz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/templecycle/templecycle-api/internal/domain/authz"
	"github.com/templecycle/templecycle-api/internal/domain/entity"
)

var (
	admin    = authz.Actor{ID: "admin-1", Role: entity.RoleAdmin}
	buyer    = authz.Actor{ID: "buyer-1", Role: entity.RoleBuyer}
	otherBuy = authz.Actor{ID: "buyer-2", Role: entity.RoleBuyer}
	shg      = authz.Actor{ID: "shg-1", Role: entity.RoleSHG}
	otherSHG = authz.Actor{ID: "shg-2", Role: entity.RoleSHG}
	csr      = authz.Actor{ID: "csr-1", Role: entity.RoleCSR}

	// An RFQ raised by buyer-1 against a product owned by shg-1.
	rfqRes = authz.Resource{BuyerID: "buyer-1", SHGID: "shg-1"}
)

// ──────────────────────────────────────────────────────────────────────────────
// View
// ──────────────────────────────────────────────────────────────────────────────

func TestCan_View(t *testing.T) {
	assert.True(t, authz.Can(admin, authz.ActionView, rfqRes), "admin sees everything")
	assert.True(t, authz.Can(csr, authz.ActionView, rfqRes), "csr is a platform-wide viewer")
	assert.True(t, authz.Can(buyer, authz.ActionView, rfqRes), "owning buyer")
	assert.True(t, authz.Can(shg, authz.ActionView, rfqRes), "shg owning the referenced product")

	assert.False(t, authz.Can(otherBuy, authz.ActionView, rfqRes), "foreign buyer")
	assert.False(t, authz.Can(otherSHG, authz.ActionView, rfqRes), "foreign shg")
}

func TestCan_View_NoOwnerOfThatKind(t *testing.T) {
	// A product resource has no buyer side; a buyer can never claim ownership.
	productRes := authz.Resource{SHGID: "shg-1"}
	assert.False(t, authz.Can(buyer, authz.ActionView, productRes))
	assert.True(t, authz.Can(shg, authz.ActionView, productRes))
}

// ──────────────────────────────────────────────────────────────────────────────
// Mutations
// ──────────────────────────────────────────────────────────────────────────────

func TestCan_ManageProduct(t *testing.T) {
	productRes := authz.Resource{SHGID: "shg-1"}

	assert.True(t, authz.Can(shg, authz.ActionManageProduct, productRes))
	assert.True(t, authz.Can(admin, authz.ActionManageProduct, productRes))
	assert.False(t, authz.Can(otherSHG, authz.ActionManageProduct, productRes))
	assert.False(t, authz.Can(buyer, authz.ActionManageProduct, productRes))
	assert.False(t, authz.Can(csr, authz.ActionManageProduct, productRes), "csr is view-only")
}

func TestCan_SetRFQStatus(t *testing.T) {
	assert.True(t, authz.Can(buyer, authz.ActionSetRFQStatus, rfqRes))
	assert.True(t, authz.Can(admin, authz.ActionSetRFQStatus, rfqRes))
	assert.False(t, authz.Can(otherBuy, authz.ActionSetRFQStatus, rfqRes))
	assert.False(t, authz.Can(shg, authz.ActionSetRFQStatus, rfqRes),
		"the quoting side never moves the RFQ status")
	assert.False(t, authz.Can(csr, authz.ActionSetRFQStatus, rfqRes))
}

// Quote submission is the one action admins do NOT bypass: only the shg
// owning the referenced product has a product to price.
func TestCan_SubmitQuote_StrictOwnership(t *testing.T) {
	assert.True(t, authz.Can(shg, authz.ActionSubmitQuote, rfqRes))

	assert.False(t, authz.Can(admin, authz.ActionSubmitQuote, rfqRes), "no admin bypass here")
	assert.False(t, authz.Can(otherSHG, authz.ActionSubmitQuote, rfqRes))
	assert.False(t, authz.Can(buyer, authz.ActionSubmitQuote, rfqRes))
	assert.False(t, authz.Can(csr, authz.ActionSubmitQuote, rfqRes))
}

func TestCan_SetOrderStatus_EitherParty(t *testing.T) {
	orderRes := authz.Resource{BuyerID: "buyer-1", SHGID: "shg-1"}

	assert.True(t, authz.Can(buyer, authz.ActionSetOrderStatus, orderRes))
	assert.True(t, authz.Can(shg, authz.ActionSetOrderStatus, orderRes))
	assert.True(t, authz.Can(admin, authz.ActionSetOrderStatus, orderRes))

	assert.False(t, authz.Can(otherBuy, authz.ActionSetOrderStatus, orderRes))
	assert.False(t, authz.Can(otherSHG, authz.ActionSetOrderStatus, orderRes))
	assert.False(t, authz.Can(csr, authz.ActionSetOrderStatus, orderRes))
}

func TestCan_RecordPayment_BuyerSideOnly(t *testing.T) {
	orderRes := authz.Resource{BuyerID: "buyer-1", SHGID: "shg-1"}

	assert.True(t, authz.Can(buyer, authz.ActionRecordPayment, orderRes))
	assert.True(t, authz.Can(admin, authz.ActionRecordPayment, orderRes))
	assert.False(t, authz.Can(shg, authz.ActionRecordPayment, orderRes),
		"the seller never records the buyer's payments")
}

func TestCan_AttachDocument_SHGSideOnly(t *testing.T) {
	orderRes := authz.Resource{BuyerID: "buyer-1", SHGID: "shg-1"}

	assert.True(t, authz.Can(shg, authz.ActionAttachDocument, orderRes))
	assert.True(t, authz.Can(admin, authz.ActionAttachDocument, orderRes))
	assert.False(t, authz.Can(buyer, authz.ActionAttachDocument, orderRes))
}

func TestCan_UnknownActionDenied(t *testing.T) {
	assert.False(t, authz.Can(buyer, authz.Action("export_everything"), rfqRes))
	assert.True(t, authz.Can(admin, authz.Action("export_everything"), rfqRes),
		"admin bypass applies to any non-quote action")
}
