package quote

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestComputeTotals(t *testing.T) {
	items := []Item{
		{Description: "Widget", Quantity: 2, UnitPrice: 10.00},
		{Description: "Gadget", Quantity: 1, UnitPrice: 5.00},
	}
	got := ComputeTotals(items, 3.00, 7)
	if !almostEqual(got.Subtotal, 25.00) {
		t.Fatalf("subtotal = %v, want 25.00", got.Subtotal)
	}
	if !almostEqual(got.DiscountedSubtotal, 22.00) {
		t.Fatalf("discounted subtotal = %v, want 22.00", got.DiscountedSubtotal)
	}
	if !almostEqual(got.TaxAmount, 1.54) {
		t.Fatalf("tax = %v, want 1.54", got.TaxAmount)
	}
	if !almostEqual(got.GrandTotal, 23.54) {
		t.Fatalf("grand total = %v, want 23.54", got.GrandTotal)
	}
}

func TestComputeTotals_Empty(t *testing.T) {
	got := ComputeTotals(nil, 0, 0)
	if got.Subtotal != 0 || got.GrandTotal != 0 {
		t.Fatalf("empty quote totals = %+v", got)
	}
}

func TestComputeTotals_DiscountExceedsSubtotal(t *testing.T) {
	// Negative figures pass through; the pricer does not clamp.
	got := ComputeTotals([]Item{{Quantity: 1, UnitPrice: 10}}, 15, 10)
	if !almostEqual(got.DiscountedSubtotal, -5) {
		t.Fatalf("discounted subtotal = %v, want -5", got.DiscountedSubtotal)
	}
	if !almostEqual(got.TaxAmount, -0.5) {
		t.Fatalf("tax = %v, want -0.5", got.TaxAmount)
	}
	if !almostEqual(got.GrandTotal, -5.5) {
		t.Fatalf("grand total = %v, want -5.5", got.GrandTotal)
	}
}

func TestLineTotal(t *testing.T) {
	it := Item{Quantity: 3, UnitPrice: 4.25}
	if !almostEqual(it.LineTotal(), 12.75) {
		t.Fatalf("line total = %v", it.LineTotal())
	}
}

func TestSellingPrice_Markup(t *testing.T) {
	if got := SellingPrice(65.00); !almostEqual(got, 100.00) {
		t.Fatalf("SellingPrice(65) = %v, want 100", got)
	}
	if got := SellingPrice(0); got != 0 {
		t.Fatalf("SellingPrice(0) = %v", got)
	}
}
