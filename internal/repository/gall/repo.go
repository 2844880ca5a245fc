// Package gall stores gall species records as JSON documents.
package gall

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/kailas-cloud/gallformers/internal/db"
	"github.com/kailas-cloud/gallformers/internal/domain"
	domgall "github.com/kailas-cloud/gallformers/internal/domain/gall"
)

// store is the consumer interface for gall records (ISP).
type store interface {
	JSONSet(ctx context.Context, key string, data []byte) error
	JSONGet(ctx context.Context, key string) ([]byte, error)
	JSONGetMulti(ctx context.Context, keys []string) ([][]byte, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo implements usecase/gall.Repository and usecase/search.Candidates.
type Repo struct {
	store  store
	prefix string
}

// New creates a gall repository. An empty prefix falls back to domain.KeyPrefix.
func New(s store, prefix string) *Repo {
	if prefix == "" {
		prefix = domain.KeyPrefix
	}
	return &Repo{store: s, prefix: prefix}
}

// All returns every gall ordered by name, then ID.
func (r *Repo) All(ctx context.Context) ([]domgall.Gall, error) {
	keys, err := r.store.Scan(ctx, r.key("*"))
	if err != nil {
		return nil, fmt.Errorf("scan galls: %w", err)
	}
	if len(keys) == 0 {
		return []domgall.Gall{}, nil
	}

	docs, err := r.store.JSONGetMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("get galls: %w", err)
	}

	galls := make([]domgall.Gall, 0, len(docs))
	for i, doc := range docs {
		if doc == nil {
			continue
		}
		var g domgall.Gall
		if err := json.Unmarshal(doc, &g); err != nil {
			return nil, fmt.Errorf("parse gall %s: %w", keys[i], err)
		}
		galls = append(galls, g)
	}

	sort.SliceStable(galls, func(i, j int) bool {
		if galls[i].Name != galls[j].Name {
			return galls[i].Name < galls[j].Name
		}
		return galls[i].ID < galls[j].ID
	})
	return galls, nil
}

// Get retrieves a gall by ID.
func (r *Repo) Get(ctx context.Context, id string) (domgall.Gall, error) {
	doc, err := r.store.JSONGet(ctx, r.key(id))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domgall.Gall{}, domain.ErrNotFound
		}
		return domgall.Gall{}, fmt.Errorf("get gall %s: %w", id, err)
	}

	var g domgall.Gall
	if err := json.Unmarshal(doc, &g); err != nil {
		return domgall.Gall{}, fmt.Errorf("parse gall %s: %w", id, err)
	}
	return g, nil
}

// Upsert stores the gall, reporting whether it was newly created.
func (r *Repo) Upsert(ctx context.Context, g domgall.Gall) (bool, error) {
	key := r.key(g.ID)

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return false, fmt.Errorf("check exists: %w", err)
	}

	data, err := json.Marshal(g)
	if err != nil {
		return false, fmt.Errorf("marshal gall: %w", err)
	}
	if err := r.store.JSONSet(ctx, key, data); err != nil {
		return false, fmt.Errorf("set gall %s: %w", g.ID, err)
	}
	return !exists, nil
}

// Delete removes a gall by ID.
func (r *Repo) Delete(ctx context.Context, id string) error {
	key := r.key(id)

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists: %w", err)
	}
	if !exists {
		return domain.ErrNotFound
	}

	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del gall %s: %w", id, err)
	}
	return nil
}

// Key pattern: <prefix>gall:<id>
func (r *Repo) key(id string) string {
	return r.prefix + "gall:" + id
}
