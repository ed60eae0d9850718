// Package imagepick chooses at most one representative image for a page and
// downloads it. Every failure here degrades to "no image"; nothing in this
// package may abort the surrounding extraction.
package imagepick

import (
	"context"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/goquote/internal/cascade"
	"github.com/hyperifyio/goquote/internal/fetch"
	"github.com/hyperifyio/goquote/internal/store"
)

// Asset records one successfully downloaded image. It is only constructed
// after the bytes are on disk; never speculatively.
type Asset struct {
	SourceURL  string `json:"source_url"`
	LocalPath  string `json:"filesystem_path"`
	PublicPath string `json:"web_path"`
}

// primaryRules locate the designated product image before any generic scan.
var primaryRules = []cascade.Rule{
	{Selector: "img#landingImage", Attr: "src"},
	{Selector: "#imgTagWrapperId img", Attr: "src"},
	{Selector: "img#main-image", Attr: "src"},
	{Selector: `meta[property="og:image"]`, Attr: "content"},
}

// excludeKeywords mark decorative assets; any source containing one is
// rejected regardless of declared size.
var excludeKeywords = []string{
	"logo", "icon", "spinner", "loader", "pixel",
	"badge", "avatar", "ad", "banner", "svg",
}

const (
	maxGenericScan = 20
	minDimension   = 150
)

// Picker selects, downloads, and persists the representative image.
type Picker struct {
	Client       *fetch.Client
	Store        *store.FileStore
	PublicPrefix string
}

// Pick returns zero or one asset for the document. baseURL resolves relative
// sources. All download and filesystem failures are absorbed.
func (p *Picker) Pick(ctx context.Context, doc *goquery.Document, baseURL string) *Asset {
	src, ok := findCandidate(doc)
	if !ok {
		return nil
	}
	abs, err := resolveURL(baseURL, src)
	if err != nil {
		log.Warn().Str("src", src).Err(err).Msg("image url did not resolve")
		return nil
	}
	return p.download(ctx, abs)
}

func findCandidate(doc *goquery.Document) (string, bool) {
	if src, ok := cascade.RunFiltered(doc, primaryRules, func(s string) bool {
		return !isInline(s)
	}); ok {
		return src, true
	}
	var found string
	doc.Find("img").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		if i >= maxGenericScan {
			return false
		}
		src, _ := sel.Attr("src")
		src = strings.TrimSpace(src)
		if src == "" || isInline(src) {
			return true
		}
		if containsKeyword(src) {
			return true
		}
		if tooSmall(sel) {
			return true
		}
		found = src
		return false
	})
	return found, found != ""
}

func isInline(src string) bool {
	return strings.HasPrefix(strings.ToLower(src), "data:")
}

func containsKeyword(src string) bool {
	lower := strings.ToLower(src)
	for _, kw := range excludeKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// tooSmall rejects only when BOTH declared dimensions parse below the
// threshold. A missing or unparsable dimension gets the benefit of the doubt.
func tooSmall(sel *goquery.Selection) bool {
	w, wok := parseDimension(sel, "width")
	h, hok := parseDimension(sel, "height")
	return wok && hok && w < minDimension && h < minDimension
}

func parseDimension(sel *goquery.Selection, attr string) (int, bool) {
	raw, exists := sel.Attr(attr)
	if !exists {
		return 0, false
	}
	raw = strings.TrimSuffix(strings.TrimSpace(raw), "px")
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func resolveURL(base, ref string) (string, error) {
	refURL, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return "", err
	}
	if refURL.IsAbs() {
		return refURL.String(), nil
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	return baseURL.ResolveReference(refURL).String(), nil
}

func (p *Picker) download(ctx context.Context, imgURL string) *Asset {
	body, ct, status, err := p.Client.Get(ctx, imgURL)
	if err != nil {
		log.Warn().Str("url", imgURL).Int("status", status).Err(err).Msg("image download failed")
		return nil
	}
	if !fetch.IsImageContentType(ct) {
		log.Warn().Str("url", imgURL).Str("contentType", ct).Msg("image response not an image")
		return nil
	}
	localPath, err := p.Store.Persist(body, store.ExtFromURL(imgURL))
	if err != nil {
		log.Warn().Str("url", imgURL).Err(err).Msg("image persist failed")
		return nil
	}
	return &Asset{
		SourceURL:  imgURL,
		LocalPath:  localPath,
		PublicPath: p.PublicPrefix + path.Base(localPath),
	}
}
