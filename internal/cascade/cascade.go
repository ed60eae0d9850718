// Package cascade runs ordered lists of extraction rules against a parsed
// document. Rule order is the precedence mechanism: site-specific selectors
// go first, generic fallbacks last, and the first non-empty value wins.
package cascade

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Rule is one extraction step: a CSS selector plus an optional attribute
// name. An empty Attr reads the element's text content.
type Rule struct {
	Selector string
	Attr     string
}

// Run evaluates rules in order and returns the first non-empty trimmed
// value. A selector that matches nothing, or matches an element without the
// requested attribute, is treated as a miss and the cascade continues.
func Run(doc *goquery.Document, rules []Rule) (string, bool) {
	if doc == nil {
		return "", false
	}
	for _, r := range rules {
		sel := doc.Find(r.Selector).First()
		if sel.Length() == 0 {
			continue
		}
		var v string
		if r.Attr != "" {
			v, _ = sel.Attr(r.Attr)
		} else {
			v = sel.Text()
		}
		v = strings.TrimSpace(v)
		if v != "" {
			return v, true
		}
	}
	return "", false
}

// RunFiltered behaves like Run but additionally requires accept to approve
// the candidate value; rejected candidates do not stop the cascade. Used for
// price extraction, where a matching element with unparsable text must not
// count as success.
func RunFiltered(doc *goquery.Document, rules []Rule, accept func(string) bool) (string, bool) {
	if doc == nil {
		return "", false
	}
	for _, r := range rules {
		sel := doc.Find(r.Selector).First()
		if sel.Length() == 0 {
			continue
		}
		var v string
		if r.Attr != "" {
			v, _ = sel.Attr(r.Attr)
		} else {
			v = sel.Text()
		}
		v = strings.TrimSpace(v)
		if v == "" || !accept(v) {
			continue
		}
		return v, true
	}
	return "", false
}
