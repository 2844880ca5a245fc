package gall

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/gallformers/internal/domain"
	domgall "github.com/kailas-cloud/gallformers/internal/domain/gall"
	"github.com/kailas-cloud/gallformers/internal/domain/glossary/linker"
)

// Described is a gall with its description linked against the glossary.
type Described struct {
	Gall        domgall.Gall
	Description []linker.Segment
}

// Service handles gall CRUD.
type Service struct {
	repo   Repository
	linker TextLinker
}

// New creates a gall service.
func New(repo Repository, lnk TextLinker) *Service {
	return &Service{repo: repo, linker: lnk}
}

// Get retrieves a gall by ID.
func (s *Service) Get(ctx context.Context, id string) (domgall.Gall, error) {
	g, err := s.repo.Get(ctx, id)
	if err != nil {
		return domgall.Gall{}, fmt.Errorf("get gall: %w", err)
	}
	return g, nil
}

// List returns all galls.
func (s *Service) List(ctx context.Context) ([]domgall.Gall, error) {
	galls, err := s.repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("list galls: %w", err)
	}
	return galls, nil
}

// Upsert validates and stores a gall, reporting whether it was created.
func (s *Service) Upsert(ctx context.Context, g domgall.Gall) (bool, error) {
	if err := g.Validate(); err != nil {
		return false, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	created, err := s.repo.Upsert(ctx, g)
	if err != nil {
		return false, fmt.Errorf("upsert gall: %w", err)
	}
	return created, nil
}

// Delete removes a gall.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete gall: %w", err)
	}
	return nil
}

// Describe returns the gall with its description linked to the glossary page.
func (s *Service) Describe(ctx context.Context, id string) (Described, error) {
	g, err := s.Get(ctx, id)
	if err != nil {
		return Described{}, err
	}

	segs, err := s.linker.LinkText(ctx, g.Description, false)
	if err != nil {
		return Described{}, fmt.Errorf("link description: %w", err)
	}
	return Described{Gall: g, Description: segs}, nil
}
