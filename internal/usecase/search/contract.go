package search

import (
	"context"

	domgall "github.com/kailas-cloud/gallformers/internal/domain/gall"
)

// Candidates supplies the galls a search is evaluated against.
type Candidates interface {
	All(ctx context.Context) ([]domgall.Gall, error)
}
