package request

import (
	"fmt"

	"github.com/kailas-cloud/gallformers/internal/domain/search/filter"
)

// Search parameter limits.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Request is a validated gall search: facet query plus a page window.
type Request struct {
	query  filter.Query
	limit  int
	offset int
}

// Limits bounds the page size of a request.
type Limits struct {
	Default int
	Max     int
}

// DefaultLimits are used by New.
var DefaultLimits = Limits{Default: DefaultLimit, Max: MaxLimit}

// New validates and normalizes search parameters with DefaultLimits.
func New(q filter.Query, limit, offset int) (Request, error) {
	return DefaultLimits.New(q, limit, offset)
}

// New validates and normalizes search parameters.
// limit <= 0 selects l.Default; limit above l.Max is clamped.
func (l Limits) New(q filter.Query, limit, offset int) (Request, error) {
	if err := q.Validate(); err != nil {
		return Request{}, fmt.Errorf("invalid query: %w", err)
	}
	if offset < 0 {
		return Request{}, fmt.Errorf("offset must not be negative, got %d", offset)
	}
	upper := l.Max
	if upper <= 0 {
		upper = MaxLimit
	}
	fallback := l.Default
	if fallback <= 0 || fallback > upper {
		fallback = min(DefaultLimit, upper)
	}
	if limit <= 0 {
		limit = fallback
	}
	limit = min(limit, upper)
	return Request{query: q, limit: limit, offset: offset}, nil
}

// Query returns the facet query.
func (r *Request) Query() *filter.Query { return &r.query }

// Limit returns the maximum number of results.
func (r *Request) Limit() int { return r.limit }

// Offset returns the number of matches to skip.
func (r *Request) Offset() int { return r.offset }
