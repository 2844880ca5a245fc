package chi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kailas-cloud/gallformers/internal/db/sqlite"
	"github.com/kailas-cloud/gallformers/internal/domain/gall"
	"github.com/kailas-cloud/gallformers/internal/domain/glossary"
	"github.com/kailas-cloud/gallformers/internal/domain/glossary/linker"
	"github.com/kailas-cloud/gallformers/internal/domain/search/request"
	gallrepo "github.com/kailas-cloud/gallformers/internal/repository/gall"
	glossrepo "github.com/kailas-cloud/gallformers/internal/repository/glossary"
	"github.com/kailas-cloud/gallformers/internal/repository/glosscache"
	galluc "github.com/kailas-cloud/gallformers/internal/usecase/gall"
	glossaryuc "github.com/kailas-cloud/gallformers/internal/usecase/glossary"
	healthuc "github.com/kailas-cloud/gallformers/internal/usecase/health"
	searchuc "github.com/kailas-cloud/gallformers/internal/usecase/search"
)

const testKey = "secret"

// newTestRouter wires the full stack over a temporary SQLite store.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	store, err := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(store.Close)

	ctx := context.Background()
	glossRepo := glossrepo.New(store, "t:")
	gallRepo := gallrepo.New(store, "t:")

	for _, e := range []glossary.Entry{
		{Word: "gall", Definition: "An abnormal growth on a plant."},
		{Word: "detachable", Definition: "A gall that falls off its host."},
	} {
		if _, err := glossRepo.Upsert(ctx, e); err != nil {
			t.Fatalf("seed glossary: %v", err)
		}
	}
	for _, g := range []gall.Gall{
		{ID: "a", Name: "Andricus a", Description: "A detachable gall.", Color: "red", Detachable: gall.Flag(1), Locations: []string{"upper leaf"}},
		{ID: "b", Name: "Andricus b", Color: "red", Detachable: gall.Flag(0), Locations: []string{"stem"}},
		{ID: "c", Name: "Andricus c", Color: "green"},
	} {
		if _, err := gallRepo.Upsert(ctx, g); err != nil {
			t.Fatalf("seed galls: %v", err)
		}
	}

	cache := glosscache.New(glossRepo, time.Minute, nil, zap.NewNop())
	glossSvc := glossaryuc.New(glossRepo, cache, linker.Default, zap.NewNop())
	srv := NewServer(
		glossSvc,
		galluc.New(gallRepo, glossSvc),
		searchuc.New(gallRepo),
		healthuc.New(store, cache),
		request.Limits{Default: 2, Max: 10},
		zap.NewNop(),
	)

	r := chi.NewRouter()
	srv.Register(r, RouteOptions{APIKeys: []string{testKey}})
	return r
}

func do(t *testing.T, h http.Handler, method, target, body string, auth bool) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if auth {
		req.Header.Set("Authorization", "Bearer "+testKey)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(w.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, w.Body.String())
	}
	return v
}

// --- Health ---

func TestHealthCheck(t *testing.T) {
	h := newTestRouter(t)
	w := do(t, h, http.MethodGet, "/health", "", false)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	resp := decodeBody[HealthResponse](t, w)
	if resp.Status != "ok" || resp.Checks["database"] != "ok" || resp.Checks["glossary"] != "ok" {
		t.Errorf("unexpected health %+v", resp)
	}
}

// --- Glossary ---

func TestListGlossary(t *testing.T) {
	h := newTestRouter(t)

	resp := decodeBody[EntryList](t, do(t, h, http.MethodGet, "/api/v1/glossary", "", false))
	if resp.Total != 2 || resp.Items[0].Word != "detachable" {
		t.Errorf("unexpected list %+v", resp)
	}

	resp = decodeBody[EntryList](t, do(t, h, http.MethodGet, "/api/v1/glossary?q=GAL", "", false))
	if resp.Total != 1 || resp.Items[0].Word != "gall" {
		t.Errorf("unexpected search %+v", resp)
	}
}

func TestGetGlossaryEntry(t *testing.T) {
	h := newTestRouter(t)

	w := do(t, h, http.MethodGet, "/api/v1/glossary/gall", "", false)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if e := decodeBody[glossary.Entry](t, w); e.Word != "gall" {
		t.Errorf("word = %q", e.Word)
	}

	w = do(t, h, http.MethodGet, "/api/v1/glossary/nope", "", false)
	if w.Code != http.StatusNotFound {
		t.Errorf("missing status = %d", w.Code)
	}
	if e := decodeBody[ErrorResponse](t, w); e.Code != CodeNotFound {
		t.Errorf("code = %q", e.Code)
	}
}

func TestLinkedGlossary(t *testing.T) {
	h := newTestRouter(t)
	w := do(t, h, http.MethodGet, "/api/v1/glossary/linked", "", false)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	resp := decodeBody[struct {
		Items []LinkedEntryDTO `json:"items"`
	}](t, w)
	if len(resp.Items) != 2 {
		t.Fatalf("items = %d", len(resp.Items))
	}
	// "A gall that falls off its host." links "gall" on the same page.
	var found bool
	for _, s := range resp.Items[0].Segments {
		if s.Kind == "link" && s.Href == "#gall" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected same-page link in %+v", resp.Items[0].Segments)
	}
}

func TestUpsertGlossaryEntry(t *testing.T) {
	h := newTestRouter(t)

	body := `{"word":"cells","definition":"Chambers inside a gall."}`
	if w := do(t, h, http.MethodPut, "/api/v1/glossary/cells", body, false); w.Code != http.StatusUnauthorized {
		t.Errorf("no auth status = %d", w.Code)
	}
	if w := do(t, h, http.MethodPut, "/api/v1/glossary/cells", body, true); w.Code != http.StatusCreated {
		t.Errorf("create status = %d, body %s", w.Code, w.Body.String())
	}
	if w := do(t, h, http.MethodPut, "/api/v1/glossary/cells", body, true); w.Code != http.StatusOK {
		t.Errorf("update status = %d", w.Code)
	}

	// New entry is visible to the linker right away.
	w := do(t, h, http.MethodPost, "/api/v1/link", `{"text":"two cells"}`, false)
	resp := decodeBody[LinkResponse](t, w)
	if len(resp.Segments) != 2 || resp.Segments[1].Kind != "link" {
		t.Errorf("segments = %+v", resp.Segments)
	}
}

func TestUpsertGlossaryEntry_Rejects(t *testing.T) {
	h := newTestRouter(t)

	tests := []struct {
		name string
		path string
		body string
		code ErrorCode
	}{
		{"mismatch", "/api/v1/glossary/cells", `{"word":"walls","definition":"x"}`, CodeValidationFailed},
		{"bad json", "/api/v1/glossary/cells", `{`, CodeBadRequest},
		{"unknown field", "/api/v1/glossary/cells", `{"word":"cells","bogus":1}`, CodeBadRequest},
		{"no definition", "/api/v1/glossary/cells", `{"word":"cells"}`, CodeValidationFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, http.MethodPut, tt.path, tt.body, true)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
			}
			if e := decodeBody[ErrorResponse](t, w); e.Code != tt.code {
				t.Errorf("code = %q, want %q", e.Code, tt.code)
			}
		})
	}
}

func TestDeleteGlossaryEntry(t *testing.T) {
	h := newTestRouter(t)

	if w := do(t, h, http.MethodDelete, "/api/v1/glossary/gall", "", true); w.Code != http.StatusNoContent {
		t.Fatalf("status = %d", w.Code)
	}
	if w := do(t, h, http.MethodDelete, "/api/v1/glossary/gall", "", true); w.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d", w.Code)
	}
	resp := decodeBody[LinkResponse](t, do(t, h, http.MethodPost, "/api/v1/link", `{"text":"a gall"}`, false))
	if len(resp.Segments) != 1 || resp.Segments[0].Kind != "text" {
		t.Errorf("deleted entry still linked: %+v", resp.Segments)
	}
}

// --- Link ---

func TestLink(t *testing.T) {
	h := newTestRouter(t)

	w := do(t, h, http.MethodPost, "/api/v1/link", `{"text":"Galls are detachable."}`, false)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	resp := decodeBody[LinkResponse](t, w)
	var links []SegmentDTO
	for _, s := range resp.Segments {
		if s.Kind == "link" {
			links = append(links, s)
		}
	}
	if len(links) != 2 {
		t.Fatalf("links = %+v", resp.Segments)
	}
	if links[0].Value != "Galls" || links[0].Href != "/glossary/#gall" {
		t.Errorf("first link = %+v", links[0])
	}
}

func TestLink_HTML(t *testing.T) {
	h := newTestRouter(t)

	w := do(t, h, http.MethodPost, "/api/v1/link?format=html", `{"text":"a <b> gall","same_page":true}`, false)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content type = %q", ct)
	}
	out := w.Body.String()
	if !strings.Contains(out, "&lt;b&gt;") || !strings.Contains(out, `href="#gall"`) {
		t.Errorf("unexpected html %q", out)
	}

	if w := do(t, h, http.MethodPost, "/api/v1/link", `{"text":"x","format":"pdf"}`, false); w.Code != http.StatusBadRequest {
		t.Errorf("unknown format status = %d", w.Code)
	}
}

// --- Galls ---

func TestGetGall(t *testing.T) {
	h := newTestRouter(t)

	resp := decodeBody[GallResponse](t, do(t, h, http.MethodGet, "/api/v1/galls/a", "", false))
	if resp.ID != "a" || resp.DescriptionSegments != nil {
		t.Errorf("plain gall = %+v", resp)
	}

	resp = decodeBody[GallResponse](t, do(t, h, http.MethodGet, "/api/v1/galls/a?linked=true", "", false))
	if len(resp.DescriptionSegments) == 0 {
		t.Fatal("expected description segments")
	}

	if w := do(t, h, http.MethodGet, "/api/v1/galls/zzz", "", false); w.Code != http.StatusNotFound {
		t.Errorf("missing status = %d", w.Code)
	}
}

func TestUpsertAndDeleteGall(t *testing.T) {
	h := newTestRouter(t)

	if w := do(t, h, http.MethodPut, "/api/v1/galls/d", `{"name":"Andricus d","color":"red"}`, true); w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", w.Code, w.Body.String())
	}
	if w := do(t, h, http.MethodPut, "/api/v1/galls/d", `{"id":"e","name":"x"}`, true); w.Code != http.StatusBadRequest {
		t.Errorf("mismatch status = %d", w.Code)
	}
	if w := do(t, h, http.MethodPut, "/api/v1/galls/d", `{"id":"d"}`, true); w.Code != http.StatusBadRequest {
		t.Errorf("invalid gall status = %d", w.Code)
	}

	resp := decodeBody[SearchResponse](t, do(t, h, http.MethodGet, "/api/v1/search?color=red&limit=10", "", false))
	if resp.Total != 3 {
		t.Errorf("total after create = %d", resp.Total)
	}

	if w := do(t, h, http.MethodDelete, "/api/v1/galls/d", "", true); w.Code != http.StatusNoContent {
		t.Errorf("delete status = %d", w.Code)
	}
	if w := do(t, h, http.MethodDelete, "/api/v1/galls/d", "", false); w.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated delete status = %d", w.Code)
	}
}

// --- Search ---

func TestSearchGalls(t *testing.T) {
	h := newTestRouter(t)

	tests := []struct {
		name    string
		method  string
		target  string
		body    string
		wantIDs []string
		total   int
		hasMore bool
	}{
		{"all default limit", http.MethodGet, "/api/v1/search", "", []string{"a", "b"}, 3, true},
		{"offset", http.MethodGet, "/api/v1/search?offset=2", "", []string{"c"}, 3, false},
		{"color", http.MethodGet, "/api/v1/search?color=red", "", []string{"a", "b"}, 2, false},
		{"detachable no", http.MethodGet, "/api/v1/search?detachable=no", "", []string{"b"}, 1, false},
		{"detachable unsure", http.MethodGet, "/api/v1/search?detachable=unsure&limit=5", "", []string{"a", "b", "c"}, 3, false},
		{"leaf anywhere", http.MethodGet, "/api/v1/search?location=leaf+(anywhere)", "", []string{"a"}, 1, false},
		{"post body", http.MethodPost, "/api/v1/search", `{"color":"red","detachable":"yes"}`, []string{"a"}, 1, false},
		{"post locations", http.MethodPost, "/api/v1/search", `{"locations":["stem"],"limit":1}`, []string{"b"}, 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, tt.method, tt.target, tt.body, false)
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
			}
			resp := decodeBody[SearchResponse](t, w)
			if resp.Total != tt.total || resp.HasMore != tt.hasMore {
				t.Errorf("total=%d has_more=%v, want %d %v", resp.Total, resp.HasMore, tt.total, tt.hasMore)
			}
			if len(resp.Items) != len(tt.wantIDs) {
				t.Fatalf("items = %+v, want %v", resp.Items, tt.wantIDs)
			}
			for i, id := range tt.wantIDs {
				if resp.Items[i].ID != id {
					t.Errorf("item %d = %q, want %q", i, resp.Items[i].ID, id)
				}
			}
		})
	}
}

func TestSearchGalls_BadRequests(t *testing.T) {
	h := newTestRouter(t)

	for _, target := range []string{
		"/api/v1/search?limit=abc",
		"/api/v1/search?detachable=maybe",
		"/api/v1/search?offset=-1",
		"/api/v1/search?undescribed=perhaps",
	} {
		if w := do(t, h, http.MethodGet, target, "", false); w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d", target, w.Code)
		}
	}
	if w := do(t, h, http.MethodPost, "/api/v1/search", `{"color":1}`, false); w.Code != http.StatusBadRequest {
		t.Errorf("bad body status = %d", w.Code)
	}
}

func TestSearchGalls_EmptyResultIsArray(t *testing.T) {
	h := newTestRouter(t)

	w := do(t, h, http.MethodGet, "/api/v1/search?color=purple", "", false)
	if !strings.Contains(w.Body.String(), `"items":[]`) {
		t.Errorf("body = %s", w.Body.String())
	}
}
