package pdf_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templecycle/templecycle-api/internal/domain/entity"
	"github.com/templecycle/templecycle-api/internal/infrastructure/pdf"
)

func sampleOrder() *entity.Order {
	return &entity.Order{
		ID:          "order-1",
		OrderNumber: "ORD-0001",
		Details: entity.OrderDetails{
			QuantityKg:  500,
			UnitPrice:   decimal.NewFromInt(55),
			TotalAmount: decimal.NewFromInt(27500),
			Currency:    "INR",
		},
		Delivery: entity.Delivery{
			Address: entity.Address{Street: "78 Industrial Estate", City: "Salem", State: "Tamil Nadu", Pincode: "636001"},
		},
		Payment: entity.Payment{
			PaymentTerms: "30% advance",
			AdvancePaid:  decimal.NewFromInt(8250),
			BalanceDue:   decimal.NewFromInt(19250),
		},
		Status:    entity.OrderConfirmed,
		CreatedAt: time.Now(),
	}
}

func TestRender_ProducesPDF(t *testing.T) {
	r := pdf.NewMarotoInvoiceRenderer()

	buyer := &entity.User{Name: "Buyer", Organization: "Sri Ganesh Agarbatti", Email: "buyer@test.in", Phone: "9876543212"}
	shg := &entity.User{Name: "Meenakshi SHG", Organization: "Meenakshi SHG", Email: "shg@test.in"}
	product := &entity.Product{Name: "Marigold Powder"}

	out, err := r.Render(sampleOrder(), buyer, shg, product)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]), "output starts with the PDF magic header")
}

// Missing parties must not break rendering; the invoice shows placeholders.
func TestRender_NilPartiesTolerated(t *testing.T) {
	r := pdf.NewMarotoInvoiceRenderer()

	out, err := r.Render(sampleOrder(), nil, nil, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
