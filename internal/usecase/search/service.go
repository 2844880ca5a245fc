package search

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/gallformers/internal/domain"
	domgall "github.com/kailas-cloud/gallformers/internal/domain/gall"
	"github.com/kailas-cloud/gallformers/internal/domain/search/filter"
	"github.com/kailas-cloud/gallformers/internal/domain/search/request"
	"github.com/kailas-cloud/gallformers/internal/metrics"
)

// Result is one page of matches plus the total number of matches.
type Result struct {
	Galls []domgall.Gall `json:"galls"`
	Total int            `json:"total"`
}

// Service runs faceted gall searches.
type Service struct {
	candidates Candidates
}

// New creates a search service.
func New(candidates Candidates) *Service {
	return &Service{candidates: candidates}
}

// Search filters every candidate through the matcher and returns the requested page.
// Candidates that cannot be loaded yield domain.ErrDataUnavailable.
func (s *Service) Search(ctx context.Context, req *request.Request) (Result, error) {
	galls, err := s.candidates.All(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("%w: galls: %w", domain.ErrDataUnavailable, err)
	}

	matched := filter.Apply(galls, req.Query())
	metrics.SearchCandidates.Observe(float64(len(galls)))
	metrics.SearchMatches.Observe(float64(len(matched)))

	total := len(matched)
	start := min(req.Offset(), total)
	end := min(start+req.Limit(), total)

	return Result{Galls: matched[start:end], Total: total}, nil
}
