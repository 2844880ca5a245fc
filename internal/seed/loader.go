package seed

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/gallformers/internal/db"
	"github.com/kailas-cloud/gallformers/internal/domain"
	"github.com/kailas-cloud/gallformers/internal/domain/gall"
	"github.com/kailas-cloud/gallformers/internal/domain/glossary"
)

// GlossaryWriter persists glossary entries.
type GlossaryWriter interface {
	Upsert(ctx context.Context, e glossary.Entry) (bool, error)
}

// GallWriter persists galls.
type GallWriter interface {
	Upsert(ctx context.Context, g gall.Gall) (bool, error)
}

// Marker remembers the checksum of the last applied dataset.
type Marker interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Report summarizes a Load.
type Report struct {
	GlossaryCreated int
	GlossaryUpdated int
	GallsCreated    int
	GallsUpdated    int
	Skipped         bool
	Checksum        string
}

// Loader writes datasets into storage.
type Loader struct {
	glossary  GlossaryWriter
	galls     GallWriter
	marker    Marker
	markerKey string
	logger    *zap.Logger
}

// NewLoader creates a Loader. The marker is stored under keyPrefix+"seed:checksum";
// an empty prefix selects domain.KeyPrefix.
func NewLoader(g GlossaryWriter, galls GallWriter, marker Marker, keyPrefix string, logger *zap.Logger) *Loader {
	if keyPrefix == "" {
		keyPrefix = domain.KeyPrefix
	}
	return &Loader{
		glossary:  g,
		galls:     galls,
		marker:    marker,
		markerKey: keyPrefix + "seed:checksum",
		logger:    logger,
	}
}

// Load upserts every record of d. A dataset identical to the last applied one
// is skipped unless force is set.
func (l *Loader) Load(ctx context.Context, d Dataset, force bool) (Report, error) {
	if err := d.Validate(); err != nil {
		return Report{}, err
	}
	sum, err := d.Checksum()
	if err != nil {
		return Report{}, err
	}
	rep := Report{Checksum: sum}

	if !force {
		prev, err := l.marker.Get(ctx, l.markerKey)
		switch {
		case err == nil && string(prev) == sum:
			l.logger.Info("seed unchanged, skipping", zap.String("checksum", sum))
			rep.Skipped = true
			return rep, nil
		case err != nil && !errors.Is(err, db.ErrKeyNotFound):
			return Report{}, fmt.Errorf("read seed marker: %w", err)
		}
	}

	for _, e := range d.Glossary {
		created, err := l.glossary.Upsert(ctx, e)
		if err != nil {
			return rep, fmt.Errorf("seed glossary %q: %w", e.Word, err)
		}
		if created {
			rep.GlossaryCreated++
		} else {
			rep.GlossaryUpdated++
		}
	}
	for _, g := range d.Galls {
		created, err := l.galls.Upsert(ctx, g)
		if err != nil {
			return rep, fmt.Errorf("seed gall %q: %w", g.ID, err)
		}
		if created {
			rep.GallsCreated++
		} else {
			rep.GallsUpdated++
		}
	}

	if err := l.marker.Set(ctx, l.markerKey, []byte(sum)); err != nil {
		return rep, fmt.Errorf("write seed marker: %w", err)
	}
	l.logger.Info("seed applied",
		zap.Int("glossary_created", rep.GlossaryCreated),
		zap.Int("glossary_updated", rep.GlossaryUpdated),
		zap.Int("galls_created", rep.GallsCreated),
		zap.Int("galls_updated", rep.GallsUpdated),
	)
	return rep, nil
}
