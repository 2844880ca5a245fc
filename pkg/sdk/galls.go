package gallformers

import (
	"context"
	"fmt"
	"time"
)

// GallService manages gall records.
type GallService struct {
	svc gallUseCase
	obs *observer
}

// Get returns the gall with id.
func (s *GallService) Get(ctx context.Context, id string) (_ Gall, err error) {
	start := time.Now()
	defer func() { s.obs.observe("gall.get", start, err) }()

	g, err := s.svc.Get(ctx, id)
	if err != nil {
		return Gall{}, fmt.Errorf("get gall: %w", err)
	}
	return g, nil
}

// List returns every gall sorted by name.
func (s *GallService) List(ctx context.Context) (_ []Gall, err error) {
	start := time.Now()
	defer func() { s.obs.observe("gall.list", start, err) }()

	galls, err := s.svc.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list galls: %w", err)
	}
	return galls, nil
}

// Upsert creates or replaces a gall. created reports whether the id was new.
func (s *GallService) Upsert(ctx context.Context, g Gall) (created bool, err error) {
	start := time.Now()
	defer func() { s.obs.observe("gall.upsert", start, err) }()

	created, err = s.svc.Upsert(ctx, g)
	if err != nil {
		return false, fmt.Errorf("upsert gall: %w", err)
	}
	return created, nil
}

// Delete removes the gall with id.
func (s *GallService) Delete(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("gall.delete", start, err) }()

	if err = s.svc.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete gall: %w", err)
	}
	return nil
}

// Describe returns the gall with its description linked against the glossary.
func (s *GallService) Describe(ctx context.Context, id string) (_ Gall, _ []Segment, err error) {
	start := time.Now()
	defer func() { s.obs.observe("gall.describe", start, err) }()

	d, err := s.svc.Describe(ctx, id)
	if err != nil {
		return Gall{}, nil, fmt.Errorf("describe gall: %w", err)
	}
	return d.Gall, fromInternalSegments(d.Description), nil
}
