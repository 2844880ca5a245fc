package gallformers

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func newSQLiteClient(t *testing.T, opts ...Option) *Client {
	t.Helper()
	opts = append([]Option{WithSQLite(filepath.Join(t.TempDir(), "sdk.db"))}, opts...)
	c, err := New(context.Background(), opts...)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	t.Cleanup(c.Close)
	return c
}

func TestNew_NoStorage(t *testing.T) {
	_, err := New(context.Background())
	if err == nil {
		t.Fatal("expected error when no storage configured")
	}
}

func TestNew_BadSQLitePath(t *testing.T) {
	_, err := New(context.Background(), WithSQLite(""))
	if err == nil {
		t.Fatal("expected error for empty sqlite path")
	}
}

func TestClient_SQLiteRoundTrip(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := newSQLiteClient(t,
		WithKeyPrefix("sdk:"),
		WithGlossaryCacheTTL(time.Hour),
		WithLogger(slog.New(slog.DiscardHandler)),
		WithPrometheus(reg),
	)
	ctx := context.Background()

	if err := c.Ping(ctx); err != nil {
		t.Fatalf("Ping() error: %v", err)
	}

	created, err := c.Glossary().Upsert(ctx, Entry{Word: "detachable", Definition: "Falls off the host."})
	if err != nil || !created {
		t.Fatalf("Upsert() = %v, %v", created, err)
	}
	if _, err := c.Glossary().Upsert(ctx, Entry{Word: "gall", Definition: "An abnormal growth."}); err != nil {
		t.Fatal(err)
	}

	for _, g := range []Gall{
		{ID: "a", Name: "Andricus a", Description: "A detachable gall.", Color: "red", Detachable: Flag(1), Locations: []string{"lower leaf"}},
		{ID: "b", Name: "Andricus b", Color: "red", Detachable: Flag(0)},
	} {
		if _, err := c.Galls().Upsert(ctx, g); err != nil {
			t.Fatalf("gall Upsert() error: %v", err)
		}
	}

	// The cache TTL is an hour: the link must still see both entries.
	segs, err := c.Glossary().Link(ctx, "Galls are detachable", false)
	if err != nil {
		t.Fatal(err)
	}
	var links []string
	for _, s := range segs {
		if s.Kind == SegmentLink {
			links = append(links, s.Anchor)
		}
	}
	if strings.Join(links, ",") != "gall,detachable" {
		t.Errorf("links = %v", links)
	}

	html, err := c.Glossary().LinkHTML(ctx, "one gall", true)
	if err != nil || !strings.Contains(html, `href="#gall"`) {
		t.Errorf("LinkHTML() = %q, %v", html, err)
	}

	g, desc, err := c.Galls().Describe(ctx, "a")
	if err != nil || g.Name != "Andricus a" || len(desc) != 5 {
		t.Errorf("Describe() = %+v, %+v, %v", g, desc, err)
	}

	res, err := c.Search().Color("red").Location(LeafAnywhere).Detachable(true).Do(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if res.Total != 1 || res.Galls[0].ID != "a" {
		t.Errorf("Search() = %+v", res)
	}

	if err := c.Glossary().Delete(ctx, "gall"); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Glossary().Get(ctx, "gall"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	if h := c.Health(ctx); h.Status != "ok" {
		t.Errorf("Health() = %+v", h)
	}

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatal(err)
	}
	if len(mfs) == 0 {
		t.Error("expected SDK metrics to be registered")
	}
}

func TestNew_SharedRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	newSQLiteClient(t, WithPrometheus(reg))
	newSQLiteClient(t, WithPrometheus(reg))
}
