package gallformers

import (
	"context"
	"fmt"
	"time"
)

// GlossaryService manages glossary entries and links text against them.
type GlossaryService struct {
	svc glossaryUseCase
	obs *observer
}

// List returns every entry sorted by word.
func (s *GlossaryService) List(ctx context.Context) (_ []Entry, err error) {
	start := time.Now()
	defer func() { s.obs.observe("glossary.list", start, err) }()

	entries, err := s.svc.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list glossary: %w", err)
	}
	return entries, nil
}

// Get returns the entry for word. Lookup ignores case.
func (s *GlossaryService) Get(ctx context.Context, word string) (_ Entry, err error) {
	start := time.Now()
	defer func() { s.obs.observe("glossary.get", start, err) }()

	e, err := s.svc.Get(ctx, word)
	if err != nil {
		return Entry{}, fmt.Errorf("get glossary entry: %w", err)
	}
	return e, nil
}

// Upsert creates or replaces an entry. created reports whether the word was new.
func (s *GlossaryService) Upsert(ctx context.Context, e Entry) (created bool, err error) {
	start := time.Now()
	defer func() { s.obs.observe("glossary.upsert", start, err) }()

	_, created, err = s.svc.Upsert(ctx, e)
	if err != nil {
		return false, fmt.Errorf("upsert glossary entry: %w", err)
	}
	return created, nil
}

// Delete removes the entry for word.
func (s *GlossaryService) Delete(ctx context.Context, word string) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("glossary.delete", start, err) }()

	if err = s.svc.Delete(ctx, word); err != nil {
		return fmt.Errorf("delete glossary entry: %w", err)
	}
	return nil
}

// Find returns entries whose word contains q, ignoring case.
func (s *GlossaryService) Find(ctx context.Context, q string) (_ []Entry, err error) {
	start := time.Now()
	defer func() { s.obs.observe("glossary.find", start, err) }()

	entries, err := s.svc.Search(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("find glossary entries: %w", err)
	}
	return entries, nil
}

// Link splits text into plain and glossary-link segments. samePage selects
// in-page anchors for text shown on the glossary page itself.
func (s *GlossaryService) Link(ctx context.Context, text string, samePage bool) (_ []Segment, err error) {
	start := time.Now()
	defer func() { s.obs.observe("glossary.link", start, err) }()

	segs, err := s.svc.LinkText(ctx, text, samePage)
	if err != nil {
		return nil, fmt.Errorf("link text: %w", err)
	}
	return fromInternalSegments(segs), nil
}

// LinkHTML links text and renders it as escaped HTML with definition hover text.
func (s *GlossaryService) LinkHTML(ctx context.Context, text string, samePage bool) (_ string, err error) {
	start := time.Now()
	defer func() { s.obs.observe("glossary.link_html", start, err) }()

	out, err := s.svc.RenderHTML(ctx, text, samePage)
	if err != nil {
		return "", fmt.Errorf("render linked html: %w", err)
	}
	return out, nil
}
