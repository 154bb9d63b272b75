package ownership

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/tonshowcase/showcase/internal/metrics"
)

// ErrNoData means the source failed and nothing was cached for the key.
var ErrNoData = errors.New("no ownership data available")

const (
	DefaultLimit        = 100
	DefaultFetchTimeout = 10 * time.Second
)

type Config struct {
	// Name labels logs and metrics of this instance.
	Name string
	// Window is how long a snapshot is served without asking the source.
	Window time.Duration
	// FetchTimeout bounds a single source call on top of the caller's context.
	FetchTimeout time.Duration
	Limit        int
	// DisableSingleFlight lets concurrent refreshes of one key each hit the source.
	DisableSingleFlight bool
	Now                 func() time.Time
}

// Cache is a cache-aside reader over a Store. A failed refresh falls back to
// the last stored snapshot, however old.
type Cache struct {
	name    string
	store   Store
	source  Source
	window  time.Duration
	timeout time.Duration
	limit   int
	now     func() time.Time
	group   *singleflight.Group
	log     logrus.FieldLogger
}

func New(store Store, source Source, cfg Config, log logrus.FieldLogger) *Cache {
	c := &Cache{
		name:    cfg.Name,
		store:   store,
		source:  source,
		window:  cfg.Window,
		timeout: cfg.FetchTimeout,
		limit:   cfg.Limit,
		now:     cfg.Now,
		log:     log.WithField("cache", cfg.Name),
	}
	if c.limit <= 0 {
		c.limit = DefaultLimit
	}
	if c.timeout == 0 {
		c.timeout = DefaultFetchTimeout
	}
	if c.now == nil {
		c.now = time.Now
	}
	if !cfg.DisableSingleFlight {
		c.group = &singleflight.Group{}
	}
	return c
}

// Get returns the ownership snapshot for key. The result is a private copy.
func (c *Cache) Get(ctx context.Context, key string) (*Snapshot, error) {
	prior, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			c.log.WithError(err).WithField("key", key).Warn("snapshot lookup failed, treating as miss")
		}
		prior = nil
	}

	if prior != nil && c.now().Sub(prior.FetchedAt) < c.window {
		metrics.RecordCacheRead(c.name, metrics.OutcomeFresh)
		return prior, nil
	}

	fresh, err := c.refresh(ctx, key)
	if err == nil {
		metrics.RecordCacheRead(c.name, metrics.OutcomeRefreshed)
		return fresh, nil
	}

	if prior != nil {
		c.log.WithError(err).WithFields(logrus.Fields{
			"key": key,
			"age": c.now().Sub(prior.FetchedAt).String(),
		}).Warn("source failed, serving stale snapshot")
		metrics.RecordCacheRead(c.name, metrics.OutcomeStale)
		return prior, nil
	}

	metrics.RecordCacheRead(c.name, metrics.OutcomeNoData)
	return nil, fmt.Errorf("%w for %s: %v", ErrNoData, key, err)
}

func (c *Cache) refresh(ctx context.Context, key string) (*Snapshot, error) {
	if c.group == nil {
		fetchCtx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()
		return c.fetch(fetchCtx, key)
	}

	// The shared fetch must not inherit one caller's cancellation; each caller
	// still waits no longer than its own ctx allows.
	ch := c.group.DoChan(key, func() (interface{}, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()
		return c.fetch(fetchCtx, key)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Snapshot).Clone(), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *Cache) fetch(ctx context.Context, key string) (*Snapshot, error) {
	start := time.Now()
	raw, err := c.source.Fetch(ctx, key, c.limit)
	metrics.RecordSourceFetch(c.name, err == nil, time.Since(start))
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		Key:       key,
		Items:     Normalize(raw),
		FetchedAt: c.now(),
	}

	if err := c.store.Put(ctx, snap); err != nil {
		c.log.WithError(err).WithField("key", key).Error("failed to store snapshot")
	}

	c.log.WithFields(logrus.Fields{
		"key":   key,
		"items": len(snap.Items),
	}).Debug("snapshot refreshed")

	return snap, nil
}
