// Package chi is the HTTP transport: JSON handlers mounted on a chi router.
package chi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/gallformers/internal/domain/gall"
	"github.com/kailas-cloud/gallformers/internal/domain/glossary"
	"github.com/kailas-cloud/gallformers/internal/domain/search/request"
	logpkg "github.com/kailas-cloud/gallformers/internal/logger"
	galluc "github.com/kailas-cloud/gallformers/internal/usecase/gall"
	glossaryuc "github.com/kailas-cloud/gallformers/internal/usecase/glossary"
	healthuc "github.com/kailas-cloud/gallformers/internal/usecase/health"
	searchuc "github.com/kailas-cloud/gallformers/internal/usecase/search"
)

const maxBodyBytes = 1 << 20

// Server holds the HTTP handlers.
type Server struct {
	glossary      *glossaryuc.Service
	galls         *galluc.Service
	search        *searchuc.Service
	health        *healthuc.Service
	limits        request.Limits
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	glossary *glossaryuc.Service,
	galls *galluc.Service,
	search *searchuc.Service,
	health *healthuc.Service,
	limits request.Limits,
	logger *zap.Logger,
) *Server {
	return &Server{
		glossary:      glossary,
		galls:         galls,
		search:        search,
		health:        health,
		limits:        limits,
		logger:        logger,
		errorHandlers: defaultErrorHandlers(),
	}
}

// RouteOptions configures access control for Register.
type RouteOptions struct {
	// APIKeys guard write routes. Empty disables auth.
	APIKeys []string
	// Limiter throttles /api/v1. Nil disables rate limiting.
	Limiter *RateLimiter
}

// Register mounts all routes on r.
func (s *Server) Register(r chi.Router, opts RouteOptions) {
	r.Get("/health", s.HealthCheck)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(opts.Limiter.Middleware())

		r.Get("/glossary", s.ListGlossary)
		r.Get("/glossary/linked", s.LinkedGlossary)
		r.Get("/glossary/{word}", s.GetGlossaryEntry)
		r.Post("/link", s.Link)
		r.Get("/galls/{id}", s.GetGall)
		r.Get("/search", s.SearchGalls)
		r.Post("/search", s.SearchGalls)

		r.Group(func(r chi.Router) {
			r.Use(BearerAuthMiddleware(opts.APIKeys))
			r.Put("/glossary/{word}", s.UpsertGlossaryEntry)
			r.Delete("/glossary/{word}", s.DeleteGlossaryEntry)
			r.Put("/galls/{id}", s.UpsertGall)
			r.Delete("/galls/{id}", s.DeleteGall)
		})
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, HealthResponse{Status: string(report.Status), Checks: checks})
}

// ListGlossary handles GET /api/v1/glossary. ?q= filters by substring.
func (s *Server) ListGlossary(w http.ResponseWriter, r *http.Request) {
	var (
		entries []glossary.Entry
		err     error
	)
	if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
		entries, err = s.glossary.Search(r.Context(), q)
	} else {
		entries, err = s.glossary.List(r.Context())
	}
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, EntryList{Items: entries, Total: len(entries)})
}

// LinkedGlossary handles GET /api/v1/glossary/linked.
func (s *Server) LinkedGlossary(w http.ResponseWriter, r *http.Request) {
	linked, err := s.glossary.LinkDefinitions(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": linkedEntriesToDTO(linked)})
}

// GetGlossaryEntry handles GET /api/v1/glossary/{word}.
func (s *Server) GetGlossaryEntry(w http.ResponseWriter, r *http.Request) {
	e, err := s.glossary.Get(r.Context(), chi.URLParam(r, "word"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// UpsertGlossaryEntry handles PUT /api/v1/glossary/{word}.
func (s *Server) UpsertGlossaryEntry(w http.ResponseWriter, r *http.Request) {
	word := chi.URLParam(r, "word")

	var e glossary.Entry
	if !s.decode(w, r, &e) {
		return
	}
	if e.Word == "" {
		e.Word = word
	}
	if glossary.KeyFor(e.Word) != glossary.KeyFor(word) {
		writeError(w, http.StatusBadRequest, CodeValidationFailed,
			fmt.Sprintf("word %q in body does not match path %q", e.Word, word))
		return
	}

	saved, created, err := s.glossary.Upsert(r.Context(), e)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	logpkg.FromContext(r.Context()).Info("glossary entry saved",
		zap.String("word", saved.Word), zap.Bool("created", created))
	writeJSON(w, upsertStatus(created), saved)
}

// DeleteGlossaryEntry handles DELETE /api/v1/glossary/{word}.
func (s *Server) DeleteGlossaryEntry(w http.ResponseWriter, r *http.Request) {
	if err := s.glossary.Delete(r.Context(), chi.URLParam(r, "word")); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Link handles POST /api/v1/link. format=html (body or query) returns text/html.
func (s *Server) Link(w http.ResponseWriter, r *http.Request) {
	var req LinkRequest
	if !s.decode(w, r, &req) {
		return
	}
	format := req.Format
	if f := r.URL.Query().Get("format"); f != "" {
		format = f
	}

	switch format {
	case "", "segments":
		segs, err := s.glossary.LinkText(r.Context(), req.Text, req.SamePage)
		if err != nil {
			s.handleDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, LinkResponse{Segments: segmentsToDTO(segs)})
	case "html":
		out, err := s.glossary.RenderHTML(r.Context(), req.Text, req.SamePage)
		if err != nil {
			s.handleDomainError(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(out))
	default:
		writeError(w, http.StatusBadRequest, CodeValidationFailed, fmt.Sprintf("unknown format %q", format))
	}
}

// GetGall handles GET /api/v1/galls/{id}. ?linked=true adds the linked description.
func (s *Server) GetGall(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if !boolParam(r.URL.Query(), "linked") {
		g, err := s.galls.Get(r.Context(), id)
		if err != nil {
			s.handleDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, GallResponse{Gall: g})
		return
	}

	d, err := s.galls.Describe(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, GallResponse{Gall: d.Gall, DescriptionSegments: segmentsToDTO(d.Description)})
}

// UpsertGall handles PUT /api/v1/galls/{id}.
func (s *Server) UpsertGall(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var g gall.Gall
	if !s.decode(w, r, &g) {
		return
	}
	if g.ID == "" {
		g.ID = id
	}
	if g.ID != id {
		writeError(w, http.StatusBadRequest, CodeValidationFailed,
			fmt.Sprintf("id %q in body does not match path %q", g.ID, id))
		return
	}

	created, err := s.galls.Upsert(r.Context(), g)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, upsertStatus(created), g)
}

// DeleteGall handles DELETE /api/v1/galls/{id}.
func (s *Server) DeleteGall(w http.ResponseWriter, r *http.Request) {
	if err := s.galls.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SearchGalls handles GET and POST /api/v1/search.
func (s *Server) SearchGalls(w http.ResponseWriter, r *http.Request) {
	var body searchBody
	if r.Method == http.MethodPost {
		if !s.decode(w, r, &body) {
			return
		}
		normalizeBody(&body)
	} else {
		var err error
		if body, err = queryFromValues(r.URL.Query()); err != nil {
			writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
			return
		}
	}

	req, err := s.limits.New(body.Query, body.Limit, body.Offset)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, err.Error())
		return
	}

	res, err := s.search.Search(r.Context(), &req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := res.Galls
	if items == nil {
		items = []gall.Gall{}
	}
	writeJSON(w, http.StatusOK, SearchResponse{
		Items:   items,
		Total:   res.Total,
		Limit:   req.Limit(),
		Offset:  req.Offset(),
		HasMore: req.Offset()+len(items) < res.Total,
	})
}

// decode reads a JSON body into v, writing a 400 on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

func upsertStatus(created bool) int {
	if created {
		return http.StatusCreated
	}
	return http.StatusOK
}

