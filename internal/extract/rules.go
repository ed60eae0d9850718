package extract

import "github.com/hyperifyio/goquote/internal/cascade"

// Rule tables are ordered most-specific first; order is the precedence
// mechanism across unrelated site templates. Read-only after init, safe to
// share across requests.

var titleRules = []cascade.Rule{
	{Selector: "span#productTitle"},
	{Selector: "h1#title"},
	{Selector: `[itemprop="name"]`},
	{Selector: "span.B_NuCI"},
	{Selector: "h1.product-title"},
	{Selector: "h1.product_title"},
	{Selector: "h1"},
}

var priceRules = []cascade.Rule{
	{Selector: ".a-price .a-offscreen"},
	{Selector: "span#priceblock_ourprice"},
	{Selector: "span#priceblock_dealprice"},
	{Selector: `[itemprop="price"]`, Attr: "content"},
	{Selector: `meta[property="product:price:amount"]`, Attr: "content"},
	{Selector: `[itemprop="price"]`},
	{Selector: "div._30jeq3"},
	{Selector: ".price-current"},
	{Selector: ".product-price"},
	{Selector: ".price"},
}

var genericTitleRules = []cascade.Rule{
	{Selector: `meta[property="og:title"]`, Attr: "content"},
	{Selector: `meta[name="twitter:title"]`, Attr: "content"},
	{Selector: "title"},
	{Selector: "h1"},
}

var genericDescriptionRules = []cascade.Rule{
	{Selector: `meta[property="og:description"]`, Attr: "content"},
	{Selector: `meta[name="description"]`, Attr: "content"},
	{Selector: `meta[name="twitter:description"]`, Attr: "content"},
}

// nonProductMarkers flag anti-bot or challenge pages masquerading as
// content. A title containing one of these suppresses product detection.
var nonProductMarkers = []string{
	"robot check",
	"captcha",
	"access denied",
	"are you a human",
	"attention required",
}
