// Package httpapi is the thin HTTP surface over the extraction and quote
// engines: an extract endpoint, a quote-generation endpoint, media serving,
// and a health check. It parses and validates operator input; everything
// else is delegated.
package httpapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/goquote/internal/app"
	"github.com/hyperifyio/goquote/internal/quote"
	"github.com/hyperifyio/goquote/internal/render"
	"github.com/hyperifyio/goquote/internal/scrape"
)

const (
	maxFormMemory = 8 << 20
	dateLayout    = "2006-01-02"
)

// Server exposes the service routes.
type Server struct {
	App *app.App
}

// now shares the document builder's clock so the quote number, issue date,
// and download filename all agree.
func (s *Server) now() time.Time {
	if s.App != nil && s.App.Builder != nil && s.App.Builder.Now != nil {
		return s.App.Builder.Now()
	}
	return time.Now()
}

// Routes builds the chi router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Post("/extract", s.handleExtract)
	r.Post("/generate-quote", s.handleGenerateQuote)

	prefix := s.App.Config().MediaPrefix
	fs := http.StripPrefix(prefix, http.FileServer(http.Dir(s.App.Config().MediaDir)))
	r.Get(prefix+"*", fs.ServeHTTP)
	return r
}

// extractResponse is the caller-facing extraction result, the scrape result
// plus the server-side auto-populated quote item with the markup applied.
type extractResponse struct {
	scrape.Result
	SuggestedItem *wireItem `json:"suggested_item,omitempty"`
}

// wireItem is the serialized quote item exchanged with the form layer.
type wireItem struct {
	Description         string    `json:"description"`
	Quantity            flexFloat `json:"quantity"`
	Price               flexFloat `json:"price"`
	ImageFilesystemPath string    `json:"image_filesystem_path"`
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		if err := r.ParseForm(); err != nil {
			writeError(w, http.StatusBadRequest, "could not parse form")
			return
		}
	}
	rawURL := strings.TrimSpace(r.FormValue("url"))
	if rawURL == "" {
		writeError(w, http.StatusBadRequest, "URL not provided.")
		return
	}

	result := s.App.Scraper.Extract(r.Context(), rawURL)
	resp := extractResponse{Result: result}
	if result.ProductDetails != nil {
		imagePath := ""
		if len(result.Images) > 0 {
			imagePath = result.Images[0].LocalPath
		}
		// The markup rule is applied here, exactly once, when a detected
		// product becomes a proposed quote item.
		resp.SuggestedItem = &wireItem{
			Description:         result.ProductDetails.Title,
			Quantity:            1,
			Price:               flexFloat(quote.SellingPrice(result.ProductDetails.Price)),
			ImageFilesystemPath: imagePath,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGenerateQuote(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		if err := r.ParseForm(); err != nil {
			writeError(w, http.StatusBadRequest, "could not parse form")
			return
		}
	}

	required := []string{
		"company_name", "company_phone", "company_address", "company_email",
		"client_name", "client_contact", "valid_until",
	}
	var missing []string
	for _, f := range required {
		if strings.TrimSpace(r.FormValue(f)) == "" {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		writeError(w, http.StatusBadRequest,
			"Please fill in the following required fields: "+strings.Join(missing, ", "))
		return
	}

	validUntil, err := time.Parse(dateLayout, strings.TrimSpace(r.FormValue("valid_until")))
	if err != nil {
		writeError(w, http.StatusBadRequest, "valid_until must be a YYYY-MM-DD date")
		return
	}

	req := quote.Request{
		Issuer: quote.Issuer{
			Name:    r.FormValue("company_name"),
			Address: r.FormValue("company_address"),
			Phone:   r.FormValue("company_phone"),
			Email:   r.FormValue("company_email"),
		},
		Client: quote.Client{
			Name:    r.FormValue("client_name"),
			Contact: r.FormValue("client_contact"),
		},
		ValidUntil:     validUntil,
		Items:          parseItems(r.FormValue("items")),
		Discount:       lenientFloat(r.FormValue("discount")),
		TaxRatePercent: lenientFloat(r.FormValue("tax_rate")),
		Terms:          r.FormValue("terms"),
		QuoteNumber:    quoteNumber(s.now()),
	}

	if path := s.saveLogo(r); path != "" {
		req.Issuer.LogoPath = path
	}

	pdfBytes, err := s.App.Builder.Build(req)
	if err != nil {
		log.Error().Err(err).Msg("quote document build failed")
		writeError(w, http.StatusInternalServerError, "could not generate the quote document")
		return
	}

	filename := render.SuggestedFilename(req.Client.Name, s.now())
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdfBytes)
}

// saveLogo persists an uploaded logo through the store. Upload problems are
// absorbed: a quote without a logo is still a quote.
func (s *Server) saveLogo(r *http.Request) string {
	if r.MultipartForm == nil {
		return ""
	}
	file, header, err := r.FormFile("company_logo")
	if err != nil || header == nil || header.Filename == "" {
		return ""
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil || len(data) == 0 {
		log.Warn().Err(err).Msg("logo upload read failed")
		return ""
	}
	ext := strings.TrimPrefix(filepath.Ext(header.Filename), ".")
	path, err := s.App.Store.Persist(data, ext)
	if err != nil {
		log.Warn().Err(err).Msg("logo persist failed")
		return ""
	}
	return path
}

// parseItems decodes the serialized item list. Items without a description
// are dropped; unparsable numbers default to zero.
func parseItems(raw string) []quote.Item {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var wire []wireItem
	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		log.Warn().Err(err).Msg("items payload did not parse")
		return nil
	}
	items := make([]quote.Item, 0, len(wire))
	for _, wi := range wire {
		if strings.TrimSpace(wi.Description) == "" {
			continue
		}
		items = append(items, quote.Item{
			Description:    wi.Description,
			Quantity:       float64(wi.Quantity),
			UnitPrice:      float64(wi.Price),
			ImageLocalPath: wi.ImageFilesystemPath,
		})
	}
	return items
}

// flexFloat decodes JSON numbers that may arrive as strings from the form
// layer. Anything unparsable becomes zero.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = flexFloat(v)
	return nil
}

func lenientFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

func quoteNumber(now time.Time) string {
	return "Q-" + now.Format("20060102-150405")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("response encode failed")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{
		"status": "error",
		"error":  msg,
	})
}

// ListenAndServe runs the service until the listener fails.
func (s *Server) ListenAndServe() error {
	addr := s.App.Config().ListenAddr
	log.Info().Str("addr", addr).Msg("listening")
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}
