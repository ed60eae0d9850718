package cascade

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func parse(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return doc
}

func TestRun_OrderIsPrecedence(t *testing.T) {
	doc := parse(t, `<html><head><meta property="og:title" content="Meta Title"></head>
		<body><h1>Heading Title</h1></body></html>`)

	rules := []Rule{
		{Selector: `meta[property="og:title"]`, Attr: "content"},
		{Selector: "h1"},
	}
	got, ok := Run(doc, rules)
	if !ok || got != "Meta Title" {
		t.Fatalf("got %q ok=%v, want the meta rule to win", got, ok)
	}

	// Reversed order flips the winner.
	got, ok = Run(doc, []Rule{rules[1], rules[0]})
	if !ok || got != "Heading Title" {
		t.Fatalf("got %q ok=%v, want the h1 rule to win", got, ok)
	}
}

func TestRun_SkipsEmptyMatches(t *testing.T) {
	doc := parse(t, `<html><body><h1>   </h1><h2>Real</h2></body></html>`)
	got, ok := Run(doc, []Rule{{Selector: "h1"}, {Selector: "h2"}})
	if !ok || got != "Real" {
		t.Fatalf("got %q ok=%v, want whitespace-only match skipped", got, ok)
	}
}

func TestRun_MissingAttrContinues(t *testing.T) {
	doc := parse(t, `<html><body><img class="a"><img class="b" src="x.jpg"></body></html>`)
	got, ok := Run(doc, []Rule{
		{Selector: "img.a", Attr: "src"},
		{Selector: "img.b", Attr: "src"},
	})
	if !ok || got != "x.jpg" {
		t.Fatalf("got %q ok=%v, want fallback to img.b", got, ok)
	}
}

func TestRun_NoMatch(t *testing.T) {
	doc := parse(t, `<html><body><p>nothing relevant</p></body></html>`)
	if got, ok := Run(doc, []Rule{{Selector: ".missing"}, {Selector: "#gone"}}); ok {
		t.Fatalf("expected no value, got %q", got)
	}
}

func TestRunFiltered_RejectedCandidateContinues(t *testing.T) {
	doc := parse(t, `<html><body>
		<span class="price">Call for price</span>
		<span class="amount">19.99</span>
	</body></html>`)
	numeric := func(s string) bool { return strings.ContainsAny(s, "0123456789") }
	got, ok := RunFiltered(doc, []Rule{
		{Selector: ".price"},
		{Selector: ".amount"},
	}, numeric)
	if !ok || got != "19.99" {
		t.Fatalf("got %q ok=%v, want rejected first candidate to continue", got, ok)
	}
}
