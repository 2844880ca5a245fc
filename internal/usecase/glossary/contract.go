package glossary

import (
	"context"

	domgloss "github.com/kailas-cloud/gallformers/internal/domain/glossary"
)

// Repository defines the storage contract for glossary entries.
type Repository interface {
	Get(ctx context.Context, word string) (domgloss.Entry, error)
	Upsert(ctx context.Context, e domgloss.Entry) (bool, error)
	Delete(ctx context.Context, word string) error
	Search(ctx context.Context, q string) ([]domgloss.Entry, error)
}

// Snapshot supplies the full glossary used for linking.
type Snapshot interface {
	All(ctx context.Context) ([]domgloss.Entry, error)
	Invalidate()
}
