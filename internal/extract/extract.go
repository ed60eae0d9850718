// Package extract recovers structured product facts from parsed HTML using
// ordered selector cascades, with generic title/description fallbacks for
// pages that do not describe a purchasable item.
package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/hyperifyio/goquote/internal/cascade"
	"github.com/hyperifyio/goquote/internal/money"
)

// ProductDetails is the minimal fact pair that qualifies a page as a
// product. Both fields are required; a partial detection is not a product.
type ProductDetails struct {
	Title string  `json:"title"`
	Price float64 `json:"price"`
}

const (
	// PlaceholderTitle and PlaceholderDescription fill the generic fields
	// when even the meta-tag cascades come up empty.
	PlaceholderTitle       = "No title found"
	PlaceholderDescription = "No description found"
)

// Product attempts to detect a single concrete product. Detection requires
// both a title and a parseable price; a title carrying an anti-bot marker
// discards the result entirely even when a price is present.
func Product(doc *goquery.Document) (ProductDetails, bool) {
	title, ok := cascade.Run(doc, titleRules)
	if !ok {
		return ProductDetails{}, false
	}
	lower := strings.ToLower(title)
	for _, marker := range nonProductMarkers {
		if strings.Contains(lower, marker) {
			return ProductDetails{}, false
		}
	}

	raw, ok := cascade.RunFiltered(doc, priceRules, func(s string) bool {
		_, valid := money.ParseAmount(s)
		return valid
	})
	if !ok {
		return ProductDetails{}, false
	}
	price, _ := money.ParseAmount(raw)
	return ProductDetails{Title: title, Price: price}, true
}

// GenericTitle extracts a page title via meta tags, falling back to a
// placeholder. Never fails.
func GenericTitle(doc *goquery.Document) string {
	if v, ok := cascade.Run(doc, genericTitleRules); ok {
		return v
	}
	return PlaceholderTitle
}

// GenericDescription extracts a page description via meta tags, then a
// bounded body-text summary, then a placeholder. Never fails.
func GenericDescription(doc *goquery.Document) string {
	if v, ok := cascade.Run(doc, genericDescriptionRules); ok {
		return v
	}
	if summary := bodySummary(doc, 300); summary != "" {
		return summary
	}
	return PlaceholderDescription
}
