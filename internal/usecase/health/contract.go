package health

import (
	"context"

	domgloss "github.com/kailas-cloud/gallformers/internal/domain/glossary"
)

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// GlossaryReader reads the glossary used for linking.
type GlossaryReader interface {
	All(ctx context.Context) ([]domgloss.Entry, error)
}
