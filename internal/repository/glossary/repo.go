// Package glossary stores glossary entries as JSON documents.
package glossary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/kailas-cloud/gallformers/internal/db"
	"github.com/kailas-cloud/gallformers/internal/domain"
	domgloss "github.com/kailas-cloud/gallformers/internal/domain/glossary"
)

// store is the consumer interface for glossary entries (ISP).
type store interface {
	JSONSet(ctx context.Context, key string, data []byte) error
	JSONGet(ctx context.Context, key string) ([]byte, error)
	JSONGetMulti(ctx context.Context, keys []string) ([][]byte, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo implements usecase/glossary.Repository.
type Repo struct {
	store  store
	prefix string
}

// New creates a glossary repository. An empty prefix falls back to domain.KeyPrefix.
func New(s store, prefix string) *Repo {
	if prefix == "" {
		prefix = domain.KeyPrefix
	}
	return &Repo{store: s, prefix: prefix}
}

// All returns every entry ordered by word, ascending.
func (r *Repo) All(ctx context.Context) ([]domgloss.Entry, error) {
	keys, err := r.store.Scan(ctx, r.key("*"))
	if err != nil {
		return nil, fmt.Errorf("scan glossary: %w", err)
	}
	if len(keys) == 0 {
		return []domgloss.Entry{}, nil
	}

	docs, err := r.store.JSONGetMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("get glossary entries: %w", err)
	}

	entries := make([]domgloss.Entry, 0, len(docs))
	for i, doc := range docs {
		if doc == nil {
			continue // deleted between SCAN and GET
		}
		var e domgloss.Entry
		if err := json.Unmarshal(doc, &e); err != nil {
			return nil, fmt.Errorf("parse glossary entry %s: %w", keys[i], err)
		}
		entries = append(entries, e)
	}

	domgloss.SortByWord(entries)
	return entries, nil
}

// Get retrieves an entry by word (case-insensitive).
func (r *Repo) Get(ctx context.Context, word string) (domgloss.Entry, error) {
	doc, err := r.store.JSONGet(ctx, r.key(domgloss.KeyFor(word)))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domgloss.Entry{}, domain.ErrNotFound
		}
		return domgloss.Entry{}, fmt.Errorf("get glossary entry %s: %w", word, err)
	}

	var e domgloss.Entry
	if err := json.Unmarshal(doc, &e); err != nil {
		return domgloss.Entry{}, fmt.Errorf("parse glossary entry %s: %w", word, err)
	}
	return e, nil
}

// Upsert stores the entry, reporting whether it was newly created.
func (r *Repo) Upsert(ctx context.Context, e domgloss.Entry) (bool, error) {
	key := r.key(e.Key())

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return false, fmt.Errorf("check exists: %w", err)
	}

	data, err := json.Marshal(e)
	if err != nil {
		return false, fmt.Errorf("marshal glossary entry: %w", err)
	}
	if err := r.store.JSONSet(ctx, key, data); err != nil {
		return false, fmt.Errorf("set glossary entry %s: %w", e.Word, err)
	}
	return !exists, nil
}

// Delete removes an entry by word.
func (r *Repo) Delete(ctx context.Context, word string) error {
	key := r.key(domgloss.KeyFor(word))

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists: %w", err)
	}
	if !exists {
		return domain.ErrNotFound
	}

	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del glossary entry %s: %w", word, err)
	}
	return nil
}

// Search returns entries whose word or definition contains q, case-insensitively.
func (r *Repo) Search(ctx context.Context, q string) ([]domgloss.Entry, error) {
	all, err := r.All(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(q))
	if needle == "" {
		return all, nil
	}

	out := make([]domgloss.Entry, 0)
	for _, e := range all {
		if strings.Contains(strings.ToLower(e.Word), needle) ||
			strings.Contains(strings.ToLower(e.Definition), needle) {
			out = append(out, e)
		}
	}
	return out, nil
}

// Key pattern: <prefix>glossary:<lower-cased word>
func (r *Repo) key(id string) string {
	return r.prefix + "glossary:" + id
}
