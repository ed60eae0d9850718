package money

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"1.234,56", 1234.56, true},
		{"€ 99,95", 99.95, true},
		{"USD 2,5", 2.5, true},
		{"1500", 1500, true},
		{"  $49.99  ", 49.99, true},
		{"1.234", 1.234, true}, // lone dot stays a decimal point
		{"Price: 12.000,00", 12000, true},
		// Both separators present resolves European-style: the comma wins
		// the decimal slot even when the token was written US-style.
		{"$1,234.56", 1.23456, true},
		{"1,2,3", 0, false},
		{"free", 0, false},
		{"", 0, false},
		{"...", 0, false},
		{"$", 0, false},
	}
	for _, c := range cases {
		got, ok := ParseAmount(c.in)
		if ok != c.ok {
			t.Fatalf("ParseAmount(%q) ok = %v, want %v", c.in, ok, c.ok)
		}
		if ok && got != c.want {
			t.Fatalf("ParseAmount(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseAmount_SameQuantityBothConventions(t *testing.T) {
	a, ok := ParseAmount("1234.56")
	if !ok {
		t.Fatal("dot-decimal form did not parse")
	}
	b, ok := ParseAmount("1234,56")
	if !ok {
		t.Fatal("comma-decimal form did not parse")
	}
	if a != b {
		t.Fatalf("conventions disagree: %v vs %v", a, b)
	}
}

func TestFormat(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0.00"},
		{5, "5.00"},
		{1234.5, "1,234.50"},
		{1234567.891, "1,234,567.89"},
	}
	for _, c := range cases {
		if got := Format(c.in); got != c.want {
			t.Fatalf("Format(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatCurrency_Negative(t *testing.T) {
	if got := FormatCurrency(-3); got != "-$3.00" {
		t.Fatalf("FormatCurrency(-3) = %q", got)
	}
	if got := FormatCurrency(1234.5); got != "$1,234.50" {
		t.Fatalf("FormatCurrency(1234.5) = %q", got)
	}
}
