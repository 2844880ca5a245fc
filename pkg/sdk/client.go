package gallformers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/gallformers/internal/db"
	"github.com/kailas-cloud/gallformers/internal/db/driver"
	domgall "github.com/kailas-cloud/gallformers/internal/domain/gall"
	domgloss "github.com/kailas-cloud/gallformers/internal/domain/glossary"
	"github.com/kailas-cloud/gallformers/internal/domain/glossary/linker"
	"github.com/kailas-cloud/gallformers/internal/domain/search/request"
	gallrepo "github.com/kailas-cloud/gallformers/internal/repository/gall"
	glossrepo "github.com/kailas-cloud/gallformers/internal/repository/glossary"
	"github.com/kailas-cloud/gallformers/internal/repository/glosscache"
	galluc "github.com/kailas-cloud/gallformers/internal/usecase/gall"
	glossaryuc "github.com/kailas-cloud/gallformers/internal/usecase/glossary"
	healthuc "github.com/kailas-cloud/gallformers/internal/usecase/health"
	searchuc "github.com/kailas-cloud/gallformers/internal/usecase/search"
)

const defaultReadinessTimeout = 10 * time.Second

// Internal interfaces, swapped for mocks in tests.
type glossaryUseCase interface {
	List(ctx context.Context) ([]domgloss.Entry, error)
	Get(ctx context.Context, word string) (domgloss.Entry, error)
	Upsert(ctx context.Context, e domgloss.Entry) (domgloss.Entry, bool, error)
	Delete(ctx context.Context, word string) error
	Search(ctx context.Context, q string) ([]domgloss.Entry, error)
	LinkText(ctx context.Context, text string, samePage bool) ([]linker.Segment, error)
	RenderHTML(ctx context.Context, text string, samePage bool) (string, error)
}

type gallUseCase interface {
	Get(ctx context.Context, id string) (domgall.Gall, error)
	List(ctx context.Context) ([]domgall.Gall, error)
	Upsert(ctx context.Context, g domgall.Gall) (bool, error)
	Delete(ctx context.Context, id string) error
	Describe(ctx context.Context, id string) (galluc.Described, error)
}

type searchUseCase interface {
	Search(ctx context.Context, req *request.Request) (searchuc.Result, error)
}

// Client is the gallformers SDK entry point.
type Client struct {
	store     db.Store
	glossSvc  glossaryUseCase
	gallSvc   gallUseCase
	searchSvc searchUseCase
	healthSvc healthUseCase
	obs       *observer
}

// New creates a Client and connects to the database.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{cacheTTL: glosscache.DefaultTTL}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.database.Driver == "" {
		return nil, errors.New("gallformers: storage required (use WithRedis or WithSQLite)")
	}

	store, err := driver.Open(cfg.database)
	if err != nil {
		return nil, fmt.Errorf("gallformers: %w", err)
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("gallformers: database not ready: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		store.Close()
		return nil, err
	}
	return wireClient(store, cfg, obs), nil
}

func wireClient(store db.Store, cfg *clientConfig, obs *observer) *Client {
	glossRepo := glossrepo.New(store, cfg.keyPrefix)
	gallRepo := gallrepo.New(store, cfg.keyPrefix)
	snapshot := glosscache.New(glossRepo, cfg.cacheTTL, nil, zap.NewNop())

	glossSvc := glossaryuc.New(glossRepo, snapshot, linker.Default, zap.NewNop())

	return &Client{
		store:     store,
		glossSvc:  glossSvc,
		gallSvc:   galluc.New(gallRepo, glossSvc),
		searchSvc: searchuc.New(gallRepo),
		healthSvc: healthuc.New(store, snapshot),
		obs:       obs,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Glossary returns the glossary service.
func (c *Client) Glossary() *GlossaryService {
	return &GlossaryService{svc: c.glossSvc, obs: c.obs}
}

// Galls returns the gall service.
func (c *Client) Galls() *GallService {
	return &GallService{svc: c.gallSvc, obs: c.obs}
}

// Search starts a faceted gall search.
func (c *Client) Search() *SearchBuilder {
	return &SearchBuilder{svc: c.searchSvc, obs: c.obs}
}
