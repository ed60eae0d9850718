// Package scrape orchestrates one extraction: fetch the page, parse it,
// detect a product, pick an image, and shape the final result. Absence of a
// product is a normal outcome; only fetch and parse failures are errors.
package scrape

import (
	"bytes"
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/goquote/internal/extract"
	"github.com/hyperifyio/goquote/internal/fetch"
	"github.com/hyperifyio/goquote/internal/imagepick"
)

// Status values exposed to the caller.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Result is the sole output of one extraction call, immutable once produced.
// On error only URL, Status, and Error are populated.
type Result struct {
	Status         string                  `json:"status"`
	URL            string                  `json:"url"`
	Title          string                  `json:"title,omitempty"`
	Description    string                  `json:"description,omitempty"`
	Images         []imagepick.Asset       `json:"images"`
	ProductDetails *extract.ProductDetails `json:"product_details"`
	Error          string                  `json:"error,omitempty"`
}

// Scraper wires the transport and the image picker. It holds no per-call
// state and is safe to share across requests.
type Scraper struct {
	Client *fetch.Client
	Images *imagepick.Picker
}

// Extract runs the full pipeline for one URL. The input URL gets a default
// scheme when none is present, and query/fragment are stripped for the
// canonical fetch.
func (s *Scraper) Extract(ctx context.Context, rawURL string) Result {
	target, err := NormalizeURL(rawURL)
	if err != nil {
		return failure(rawURL, "Network error: invalid URL: "+err.Error())
	}

	body, _, status, err := s.Client.Get(ctx, target)
	if err != nil {
		log.Warn().Str("url", target).Int("status", status).Err(err).Msg("page fetch failed")
		return failure(target, "Network error: "+err.Error())
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		log.Error().Str("url", target).Err(err).Msg("page parse failed")
		return failure(target, "An unexpected error occurred: "+err.Error())
	}

	res := Result{
		Status: StatusSuccess,
		URL:    target,
		Images: []imagepick.Asset{},
	}

	if product, ok := extract.Product(doc); ok {
		res.ProductDetails = &product
		res.Title = product.Title
		log.Info().Str("url", target).Str("title", product.Title).Float64("price", product.Price).Msg("product detected")
	} else {
		res.Title = extract.GenericTitle(doc)
		res.Description = extract.GenericDescription(doc)
		log.Info().Str("url", target).Msg("no product detected, generic info extracted")
	}

	if asset := s.Images.Pick(ctx, doc, target); asset != nil {
		res.Images = append(res.Images, *asset)
	}
	return res
}

func failure(target, msg string) Result {
	return Result{Status: StatusError, URL: target, Images: []imagepick.Asset{}, Error: msg}
}

// NormalizeURL prepends a default scheme when absent and strips query and
// fragment for the canonical fetch.
func NormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errors.New("empty URL")
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "http://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u.String(), nil
}
