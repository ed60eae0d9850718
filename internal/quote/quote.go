// Package quote holds the quotation data model and the pricing arithmetic.
// Totals are derived values: computed deterministically from a request at
// render time, never stored.
package quote

import "time"

// Issuer identifies the company issuing the quote.
type Issuer struct {
	Name     string
	Address  string
	Phone    string
	Email    string
	LogoPath string
}

// Client identifies who the quote is billed to.
type Client struct {
	Name    string
	Contact string
}

// Item is one priced line. Quantity and unit price are caller-supplied and
// taken at face value; the line total is recomputed on every access.
type Item struct {
	Description    string
	Quantity       float64
	UnitPrice      float64
	ImageLocalPath string
}

// LineTotal is quantity times unit price, never cached.
func (it Item) LineTotal() float64 {
	return it.Quantity * it.UnitPrice
}

// Request is everything needed to build one quote document. Built once from
// operator input and not mutated afterward.
type Request struct {
	Issuer         Issuer
	Client         Client
	ValidUntil     time.Time
	Items          []Item
	Discount       float64
	TaxRatePercent float64
	Terms          string
	QuoteNumber    string
}

// Totals are the aggregate figures shown on the document.
type Totals struct {
	Subtotal           float64
	DiscountedSubtotal float64
	TaxAmount          float64
	GrandTotal         float64
}

// ComputeTotals derives the aggregates from the line items, the flat
// discount, and the tax rate. A discount exceeding the subtotal is passed
// through as-is, producing negative figures; clamping is deliberately the
// caller's concern.
func ComputeTotals(items []Item, discount, taxRatePercent float64) Totals {
	var subtotal float64
	for _, it := range items {
		subtotal += it.LineTotal()
	}
	discounted := subtotal - discount
	tax := discounted * taxRatePercent / 100
	return Totals{
		Subtotal:           subtotal,
		DiscountedSubtotal: discounted,
		TaxAmount:          tax,
		GrandTotal:         discounted + tax,
	}
}

// marginFactor is the fixed 35% margin used when pricing a detected product:
// selling price = cost / 0.65.
const marginFactor = 0.65

// SellingPrice converts a detected product cost into the proposed selling
// price. Applied exactly once, when an extraction result becomes a quote
// item; never re-applied to manually entered items.
func SellingPrice(cost float64) float64 {
	return cost / marginFactor
}
