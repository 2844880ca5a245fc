package gallformers

import (
	"context"
	"fmt"
	"time"

	domgall "github.com/kailas-cloud/gallformers/internal/domain/gall"
	"github.com/kailas-cloud/gallformers/internal/domain/search/filter"
	"github.com/kailas-cloud/gallformers/internal/domain/search/request"
)

// SearchBuilder is a fluent builder for faceted gall searches.
// Facets left unset do not constrain the search.
type SearchBuilder struct {
	svc searchUseCase
	obs *observer

	q      filter.Query
	limit  int
	offset int
}

// Color requires the gall's color.
func (b *SearchBuilder) Color(v string) *SearchBuilder {
	b.q.Color = v
	return b
}

// Shape requires the gall's shape.
func (b *SearchBuilder) Shape(v string) *SearchBuilder {
	b.q.Shape = v
	return b
}

// Alignment requires the gall's alignment.
func (b *SearchBuilder) Alignment(v string) *SearchBuilder {
	b.q.Alignment = v
	return b
}

// Walls requires the gall's walls.
func (b *SearchBuilder) Walls(v string) *SearchBuilder {
	b.q.Walls = v
	return b
}

// Cells requires the gall's cells.
func (b *SearchBuilder) Cells(v string) *SearchBuilder {
	b.q.Cells = v
	return b
}

// Season requires the season the gall appears in.
func (b *SearchBuilder) Season(v string) *SearchBuilder {
	b.q.Season = v
	return b
}

// Form requires the gall's form.
func (b *SearchBuilder) Form(v string) *SearchBuilder {
	b.q.Form = v
	return b
}

// Detachable requires galls that do (true) or do not (false) detach.
// Galls with unknown detachability never match.
func (b *SearchBuilder) Detachable(v bool) *SearchBuilder {
	if v {
		b.q.Detachable = domgall.DetachableYes
	} else {
		b.q.Detachable = domgall.DetachableNo
	}
	return b
}

// Location requires every given location. LeafAnywhere matches any leaf location.
func (b *SearchBuilder) Location(v ...string) *SearchBuilder {
	b.q.Locations = append(b.q.Locations, v...)
	return b
}

// Texture requires every given texture.
func (b *SearchBuilder) Texture(v ...string) *SearchBuilder {
	b.q.Textures = append(b.q.Textures, v...)
	return b
}

// Host requires every given host species.
func (b *SearchBuilder) Host(v ...string) *SearchBuilder {
	b.q.Hosts = append(b.q.Hosts, v...)
	return b
}

// Undescribed restricts results to undescribed galls.
func (b *SearchBuilder) Undescribed() *SearchBuilder {
	b.q.Undescribed = true
	return b
}

// Limit sets the page size. Default 20, max 100.
func (b *SearchBuilder) Limit(n int) *SearchBuilder {
	b.limit = n
	return b
}

// Offset skips the first n matches.
func (b *SearchBuilder) Offset(n int) *SearchBuilder {
	b.offset = n
	return b
}

// Do executes the search.
func (b *SearchBuilder) Do(ctx context.Context) (_ SearchResult, err error) {
	start := time.Now()
	defer func() { b.obs.observe("search", start, err) }()

	req, err := request.New(b.q, b.limit, b.offset)
	if err != nil {
		return SearchResult{}, fmt.Errorf("search: %w: %w", ErrInvalidInput, err)
	}

	res, err := b.svc.Search(ctx, &req)
	if err != nil {
		return SearchResult{}, fmt.Errorf("search: %w", err)
	}
	return SearchResult{
		Galls:   res.Galls,
		Total:   res.Total,
		HasMore: req.Offset()+len(res.Galls) < res.Total,
	}, nil
}
