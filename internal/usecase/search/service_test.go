package search

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/kailas-cloud/gallformers/internal/domain"
	domgall "github.com/kailas-cloud/gallformers/internal/domain/gall"
	"github.com/kailas-cloud/gallformers/internal/domain/search/filter"
	"github.com/kailas-cloud/gallformers/internal/domain/search/request"
)

// --- Mocks ---

type mockCandidates struct {
	galls []domgall.Gall
	err   error
}

func (m *mockCandidates) All(_ context.Context) ([]domgall.Gall, error) {
	return m.galls, m.err
}

func corpus() []domgall.Gall {
	var out []domgall.Gall
	for i := range 10 {
		g := domgall.Gall{ID: fmt.Sprintf("g%d", i), Name: fmt.Sprintf("Gall %d", i)}
		if i%2 == 0 {
			g.Color = "red"
			g.Locations = []string{"upper leaf"}
		} else {
			g.Color = "green"
			g.Locations = []string{"stem"}
		}
		g.Detachable = domgall.Flag(i % 3)
		out = append(out, g)
	}
	return out
}

func mustRequest(t *testing.T, q filter.Query, limit, offset int) *request.Request {
	t.Helper()
	r, err := request.New(q, limit, offset)
	if err != nil {
		t.Fatalf("request.New: %v", err)
	}
	return &r
}

// --- Tests ---

func TestSearch_EmptyQueryReturnsAll(t *testing.T) {
	svc := New(&mockCandidates{galls: corpus()})

	res, err := svc.Search(context.Background(), mustRequest(t, filter.Query{}, 100, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Total != 10 || len(res.Galls) != 10 {
		t.Errorf("expected all 10, got total=%d page=%d", res.Total, len(res.Galls))
	}
}

func TestSearch_Facets(t *testing.T) {
	svc := New(&mockCandidates{galls: corpus()})

	tests := []struct {
		name string
		q    filter.Query
		want int
	}{
		{"color", filter.Query{Color: "red"}, 5},
		{"leaf anywhere", filter.Query{Locations: []string{filter.LeafAnywhere}}, 5},
		{"detachable no", filter.Query{Detachable: "no"}, 4},
		{"detachable yes and green", filter.Query{Detachable: "yes", Color: "green"}, 3},
		{"nothing", filter.Query{Color: "blue"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.Search(context.Background(), mustRequest(t, tt.q, 100, 0))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Total != tt.want {
				t.Errorf("total = %d, want %d", res.Total, tt.want)
			}
		})
	}
}

func TestSearch_Pagination(t *testing.T) {
	svc := New(&mockCandidates{galls: corpus()})

	res, err := svc.Search(context.Background(), mustRequest(t, filter.Query{Color: "red"}, 2, 2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Total != 5 || len(res.Galls) != 2 || res.Galls[0].ID != "g4" || res.Galls[1].ID != "g6" {
		t.Errorf("unexpected page: total=%d %v", res.Total, res.Galls)
	}

	res, err = svc.Search(context.Background(), mustRequest(t, filter.Query{Color: "red"}, 2, 50))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Total != 5 || len(res.Galls) != 0 {
		t.Errorf("offset past end: total=%d page=%d", res.Total, len(res.Galls))
	}
}

func TestSearch_Unavailable(t *testing.T) {
	boom := errors.New("down")
	svc := New(&mockCandidates{err: boom})

	_, err := svc.Search(context.Background(), mustRequest(t, filter.Query{}, 10, 0))
	if !errors.Is(err, domain.ErrDataUnavailable) || !errors.Is(err, boom) {
		t.Fatalf("expected ErrDataUnavailable wrapping cause, got %v", err)
	}
}
