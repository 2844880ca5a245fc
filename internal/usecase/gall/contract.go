package gall

import (
	"context"

	domgall "github.com/kailas-cloud/gallformers/internal/domain/gall"
	"github.com/kailas-cloud/gallformers/internal/domain/glossary/linker"
)

// Repository defines the storage contract for galls.
type Repository interface {
	All(ctx context.Context) ([]domgall.Gall, error)
	Get(ctx context.Context, id string) (domgall.Gall, error)
	Upsert(ctx context.Context, g domgall.Gall) (bool, error)
	Delete(ctx context.Context, id string) error
}

// TextLinker links prose against the glossary.
type TextLinker interface {
	LinkText(ctx context.Context, text string, samePage bool) ([]linker.Segment, error)
}
