// Package pdf renders the order invoice as an A4 document.
//
// Page layout:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: TempleCycle TN  │  Order number + Date             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SELLER: SHG unit + contact                                 │
//	│  BUYER: organization + contact                              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLE: Qty (kg) | Product | Unit Price | Amount            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALS: Total / Paid / Balance Due                         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: payment terms + delivery address                   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	apporder "github.com/templecycle/templecycle-api/internal/application/order"
	"github.com/templecycle/templecycle-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 27, Green: 94, Blue: 32}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// inr formats amounts with Indian digit grouping (1,00,000.00).
var inr = message.NewPrinter(language.MustParse("en-IN"))

// MarotoInvoiceRenderer implements order.InvoiceRenderer using Maroto v2.
type MarotoInvoiceRenderer struct{}

var _ apporder.InvoiceRenderer = (*MarotoInvoiceRenderer)(nil)

// NewMarotoInvoiceRenderer builds the renderer.
func NewMarotoInvoiceRenderer() *MarotoInvoiceRenderer { return &MarotoInvoiceRenderer{} }

// Render produces the invoice PDF bytes for an order.
func (g *MarotoInvoiceRenderer) Render(o *entity.Order, buyer, shg *entity.User, product *entity.Product) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Invoice "+o.OrderNumber, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(o))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partyRow("SELLER (SHG UNIT)", shg))
	m.AddRows(partyRow("BUYER", buyer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(detailRow(o, product))

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(o))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRows(o)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: platform name (left), order number and date (right).
func headerRow(o *entity.Order) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("TempleCycle TN", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Temple flower recycling marketplace", props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("TAX INVOICE", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(o.OrderNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Date: "+o.CreatedAt.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// partyRow: one block per party with name, organization and contact.
func partyRow(label string, u *entity.User) core.Row {
	name, contact := "—", "—"
	if u != nil {
		name = u.Name
		if u.Organization != "" {
			name = u.Organization + " (" + u.Name + ")"
		}
		contact = fmt.Sprintf("Email: %s   |   Phone: %s",
			nonEmpty(u.Email, "—"), nonEmpty(u.Phone, "—"))
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New(label, props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(contact, props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Qty (kg)", 2, align.Center),
		h("Product", 5, align.Left),
		h("Unit Price", 2, align.Right),
		h("Amount", 3, align.Right),
	)
}

func detailRow(o *entity.Order, product *entity.Product) core.Row {
	name := "—"
	if product != nil {
		name = product.Name
	}
	return row.New(7).Add(
		col.New(2).Add(text.New(
			fmt.Sprintf("%.0f", o.Details.QuantityKg),
			props.Text{Size: 8, Align: align.Center, Top: 1},
		)),
		col.New(5).Add(text.New(
			name,
			props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
		)),
		col.New(2).Add(text.New(
			formatINR(o.Details.UnitPrice),
			props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
		)),
		col.New(3).Add(text.New(
			formatINR(o.Details.TotalAmount),
			props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
		)),
	)
}

func totalsRow(o *entity.Order) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	return row.New(26).Add(
		col.New(3),
		col.New(3).Add(
			label("Total:"),
			label("Paid:"),
			grandLabel("BALANCE DUE:"),
		),
		col.New(3).Add(
			value(formatINR(o.Details.TotalAmount)),
			value(formatINR(o.Payment.AdvancePaid)),
			grandValue(formatINR(o.Payment.BalanceDue)),
		),
		col.New(3),
	)
}

func footerRows(o *entity.Order) []core.Row {
	addr := o.Delivery.Address
	deliverTo := fmt.Sprintf("%s, %s, %s %s",
		nonEmpty(addr.Street, "—"), nonEmpty(addr.City, "—"),
		nonEmpty(addr.State, "Tamil Nadu"), addr.Pincode)

	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("PAYMENT & DELIVERY", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
		row.New(5).Add(col.New(12).Add(
			text.New("Payment terms: "+nonEmpty(o.Payment.PaymentTerms, "as agreed"),
				props.Text{Size: 8, Color: colorGray, Top: 1}),
		)),
		row.New(5).Add(col.New(12).Add(
			text.New("Deliver to: "+deliverTo,
				props.Text{Size: 8, Color: colorGray, Top: 1}),
		)),
	}
	return rows
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatINR renders an amount with the rupee sign and Indian digit grouping.
func formatINR(d decimal.Decimal) string {
	f, _ := d.Float64()
	return inr.Sprintf("₹%v", number.Decimal(f,
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}
