package glossary

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/gallformers/internal/domain"
	domgloss "github.com/kailas-cloud/gallformers/internal/domain/glossary"
	"github.com/kailas-cloud/gallformers/internal/domain/glossary/linker"
	"github.com/kailas-cloud/gallformers/internal/metrics"
)

// LinkedEntry is a glossary entry whose definition has been linked in-page.
type LinkedEntry struct {
	Entry    domgloss.Entry
	Segments []linker.Segment
}

// Service handles glossary CRUD and links prose against the glossary.
type Service struct {
	repo     Repository
	snapshot Snapshot
	linker   *linker.Linker
	logger   *zap.Logger
}

// New creates a glossary service. A nil linker uses linker.Default.
func New(repo Repository, snapshot Snapshot, lnk *linker.Linker, logger *zap.Logger) *Service {
	if lnk == nil {
		lnk = linker.Default
	}
	return &Service{repo: repo, snapshot: snapshot, linker: lnk, logger: logger}
}

// List returns all entries ordered by word.
func (s *Service) List(ctx context.Context) ([]domgloss.Entry, error) {
	entries, err := s.snapshot.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("list glossary: %w", err)
	}
	out := make([]domgloss.Entry, len(entries))
	copy(out, entries)
	return out, nil
}

// Get retrieves an entry by word.
func (s *Service) Get(ctx context.Context, word string) (domgloss.Entry, error) {
	e, err := s.repo.Get(ctx, word)
	if err != nil {
		return domgloss.Entry{}, fmt.Errorf("get glossary entry: %w", err)
	}
	return e, nil
}

// Upsert validates and stores an entry, reporting whether it was created.
func (s *Service) Upsert(ctx context.Context, e domgloss.Entry) (domgloss.Entry, bool, error) {
	e.Word = strings.TrimSpace(e.Word)
	if err := e.Validate(); err != nil {
		return domgloss.Entry{}, false, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}

	created, err := s.repo.Upsert(ctx, e)
	if err != nil {
		return domgloss.Entry{}, false, fmt.Errorf("upsert glossary entry: %w", err)
	}
	s.snapshot.Invalidate()
	return e, created, nil
}

// Delete removes an entry by word.
func (s *Service) Delete(ctx context.Context, word string) error {
	if err := s.repo.Delete(ctx, word); err != nil {
		return fmt.Errorf("delete glossary entry: %w", err)
	}
	s.snapshot.Invalidate()
	return nil
}

// Search finds entries by case-insensitive substring of word or definition.
func (s *Service) Search(ctx context.Context, q string) ([]domgloss.Entry, error) {
	entries, err := s.repo.Search(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search glossary: %w", err)
	}
	return entries, nil
}

// LinkText links text against the current glossary. Empty text returns no
// segments without touching the glossary. A glossary that cannot be read
// yields domain.ErrDataUnavailable.
func (s *Service) LinkText(ctx context.Context, text string, samePage bool) ([]linker.Segment, error) {
	if text == "" {
		return []linker.Segment{}, nil
	}

	entries, err := s.entries(ctx)
	if err != nil {
		return nil, err
	}

	segs := s.linker.LinkText(text, entries, samePage)
	recordSegments(segs)
	return segs, nil
}

// LinkDefinitions returns every entry with its definition linked to in-page anchors.
func (s *Service) LinkDefinitions(ctx context.Context) ([]LinkedEntry, error) {
	entries, err := s.entries(ctx)
	if err != nil {
		return nil, err
	}

	stems := s.linker.Stem(entries)
	out := make([]LinkedEntry, 0, len(entries))
	for _, e := range entries {
		segs := s.linker.LinkFromStems(e.Definition, true, stems)
		recordSegments(segs)
		out = append(out, LinkedEntry{Entry: e, Segments: segs})
	}
	return out, nil
}

// RenderHTML links text and renders it as HTML with definitions as hover text.
func (s *Service) RenderHTML(ctx context.Context, text string, samePage bool) (string, error) {
	if text == "" {
		return "", nil
	}

	entries, err := s.entries(ctx)
	if err != nil {
		return "", err
	}

	defs := make(map[string]string, len(entries))
	for _, e := range entries {
		if _, ok := defs[e.Word]; !ok {
			defs[e.Word] = e.Definition
		}
	}

	segs := s.linker.LinkText(text, entries, samePage)
	recordSegments(segs)
	return linker.RenderHTML(segs, func(word string) (string, bool) {
		d, ok := defs[word]
		return d, ok
	}), nil
}

func (s *Service) entries(ctx context.Context) ([]domgloss.Entry, error) {
	entries, err := s.snapshot.All(ctx)
	if err != nil {
		metrics.LinkRequestsTotal.WithLabelValues("unavailable").Inc()
		s.logger.Error("Glossary unavailable for linking", zap.Error(err))
		return nil, fmt.Errorf("%w: glossary: %w", domain.ErrDataUnavailable, err)
	}
	metrics.LinkRequestsTotal.WithLabelValues("ok").Inc()
	return entries, nil
}

func recordSegments(segs []linker.Segment) {
	var links, texts int
	for _, seg := range segs {
		if seg.IsLink() {
			links++
		} else {
			texts++
		}
	}
	metrics.LinkSegmentsTotal.WithLabelValues("link").Add(float64(links))
	metrics.LinkSegmentsTotal.WithLabelValues("text").Add(float64(texts))
}
