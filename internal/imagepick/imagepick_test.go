package imagepick

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/hyperifyio/goquote/internal/fetch"
	"github.com/hyperifyio/goquote/internal/store"
)

func parse(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return doc
}

func newPicker(t *testing.T) *Picker {
	t.Helper()
	st, err := store.New(t.TempDir())
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	return &Picker{
		Client:       &fetch.Client{PerRequestTimeout: 2 * time.Second},
		Store:        st,
		PublicPrefix: "/media/",
	}
}

func TestFindCandidate_SizeFilter(t *testing.T) {
	doc := parse(t, `<html><body>
		<img src="/tiny.jpg" width="100" height="100">
		<img src="/big.jpg" width="200" height="200">
	</body></html>`)
	src, ok := findCandidate(doc)
	if !ok || src != "/big.jpg" {
		t.Fatalf("got %q ok=%v, want the 200x200 candidate", src, ok)
	}
}

func TestFindCandidate_MissingDimensionsAccepted(t *testing.T) {
	doc := parse(t, `<html><body><img src="/photo.jpg"></body></html>`)
	src, ok := findCandidate(doc)
	if !ok || src != "/photo.jpg" {
		t.Fatalf("got %q ok=%v, want benefit of the doubt", src, ok)
	}
}

func TestFindCandidate_KeywordRejectedRegardlessOfSize(t *testing.T) {
	doc := parse(t, `<html><body>
		<img src="/assets/logo-large.jpg" width="800" height="800">
		<img src="/product-shot.jpg" width="400" height="400">
	</body></html>`)
	src, ok := findCandidate(doc)
	if !ok || src != "/product-shot.jpg" {
		t.Fatalf("got %q ok=%v, want logo rejected", src, ok)
	}
}

func TestFindCandidate_InlineDataURIRejected(t *testing.T) {
	doc := parse(t, `<html><body>
		<img src="data:image/gif;base64,R0lGOD">
	</body></html>`)
	if src, ok := findCandidate(doc); ok {
		t.Fatalf("data URI accepted: %q", src)
	}
}

func TestFindCandidate_PrimaryLocatorWins(t *testing.T) {
	doc := parse(t, `<html><head>
		<meta property="og:image" content="https://cdn.example.com/og.jpg">
	</head><body>
		<img src="/first-generic.jpg">
	</body></html>`)
	src, ok := findCandidate(doc)
	if !ok || src != "https://cdn.example.com/og.jpg" {
		t.Fatalf("got %q ok=%v, want og:image to win", src, ok)
	}
}

func TestFindCandidate_ScanBound(t *testing.T) {
	var b strings.Builder
	b.WriteString("<html><body>")
	for i := 0; i < 25; i++ {
		b.WriteString(`<img src="/logo.png">`)
	}
	b.WriteString(`<img src="/real.jpg">`)
	b.WriteString("</body></html>")
	doc := parse(t, b.String())
	if src, ok := findCandidate(doc); ok {
		t.Fatalf("candidate beyond the scan bound accepted: %q", src)
	}
}

func TestPick_DownloadsAndPersists(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write([]byte("jpeg-bytes"))
	}))
	defer srv.Close()

	p := newPicker(t)
	doc := parse(t, `<html><body><img src="`+srv.URL+`/shot.jpg"></body></html>`)
	asset := p.Pick(context.Background(), doc, srv.URL)
	if asset == nil {
		t.Fatal("expected an asset")
	}
	if !store.FileExists(asset.LocalPath) {
		t.Fatalf("local path %q not on disk", asset.LocalPath)
	}
	if !strings.HasPrefix(asset.PublicPath, "/media/") {
		t.Fatalf("public path = %q", asset.PublicPath)
	}
	if !strings.HasSuffix(asset.LocalPath, ".jpg") {
		t.Fatalf("extension not preserved: %q", asset.LocalPath)
	}
}

func TestPick_RelativeSourceResolvedAgainstBase(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("png"))
	}))
	defer srv.Close()

	p := newPicker(t)
	doc := parse(t, `<html><body><img src="/images/item.png"></body></html>`)
	asset := p.Pick(context.Background(), doc, srv.URL+"/products/widget")
	if asset == nil {
		t.Fatal("expected an asset")
	}
	if gotPath != "/images/item.png" {
		t.Fatalf("fetched path %q", gotPath)
	}
}

func TestPick_NonImageContentTypeAbsorbed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html>not an image</html>"))
	}))
	defer srv.Close()

	p := newPicker(t)
	doc := parse(t, `<html><body><img src="`+srv.URL+`/x.jpg"></body></html>`)
	if asset := p.Pick(context.Background(), doc, srv.URL); asset != nil {
		t.Fatalf("non-image response produced an asset: %+v", asset)
	}
}

func TestPick_DownloadFailureAbsorbed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(404)
	}))
	defer srv.Close()

	p := newPicker(t)
	doc := parse(t, `<html><body><img src="`+srv.URL+`/gone.jpg"></body></html>`)
	if asset := p.Pick(context.Background(), doc, srv.URL); asset != nil {
		t.Fatalf("failed download produced an asset: %+v", asset)
	}
}
