package services

import (
	"context"
	"sync"

	"github.com/custodia-labs/brainview-cli/internal/core/domain"
	"github.com/custodia-labs/brainview-cli/internal/core/ports/driven"
	"github.com/custodia-labs/brainview-cli/internal/core/ports/driving"
	"github.com/custodia-labs/brainview-cli/internal/logger"
)

// Ensure RegionCoordinator implements the interface.
var _ driving.RegionSelector = (*RegionCoordinator)(nil)

var regionLog = logger.Scoped("regions")

// Request is one issued region lookup, tagged with the token current at
// issue time.
type Request struct {
	Token uint64
	Key   domain.RegionKey
}

// Completion is the outcome of a Request.
type Completion struct {
	Request
	Info *domain.RegionInfo
	Err  error
}

// RegionCoordinator drives the region info panel. Every selection bumps a
// token; a lookup result commits only while its token is still current, so
// a late response for an earlier pick can never overwrite a later one.
// Lookups are never cancelled and have no timeout.
type RegionCoordinator struct {
	lookup driven.RegionLookup

	// pubMu is taken before mu and held through publish, so subscribers
	// see panel changes in the order they were applied. Subscribers must
	// not call back into Begin, Commit or ClosePanel.
	pubMu sync.Mutex

	mu    sync.Mutex
	token uint64
	panel domain.RegionPanel

	subMu   sync.Mutex
	subs    map[int]func(domain.RegionPanel)
	nextSub int

	inflight sync.WaitGroup
}

// NewRegionCoordinator creates a coordinator over a region lookup.
func NewRegionCoordinator(lookup driven.RegionLookup) *RegionCoordinator {
	return &RegionCoordinator{
		lookup: lookup,
		panel:  domain.RegionPanel{Status: domain.FetchIdle},
		subs:   make(map[int]func(domain.RegionPanel)),
	}
}

// Select marks key as selected and starts its lookup in the background.
func (c *RegionCoordinator) Select(ctx context.Context, key domain.RegionKey) error {
	req, err := c.Begin(key)
	if err != nil {
		return err
	}
	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()
		c.Commit(c.Fetch(ctx, req))
	}()
	return nil
}

// Begin invalidates every earlier request and moves the panel to loading.
func (c *RegionCoordinator) Begin(key domain.RegionKey) (Request, error) {
	if key == "" {
		return Request{}, domain.ErrEmptyRegionKey
	}

	c.pubMu.Lock()
	defer c.pubMu.Unlock()

	c.mu.Lock()
	c.token++
	req := Request{Token: c.token, Key: key}
	c.panel = domain.RegionPanel{Key: key, Status: domain.FetchLoading}
	panel := c.panel
	c.mu.Unlock()

	regionLog.Debug("select %s (token %d)", key, req.Token)
	c.publish(panel)
	return req, nil
}

// Fetch performs the lookup for req. It touches no coordinator state.
func (c *RegionCoordinator) Fetch(ctx context.Context, req Request) Completion {
	if c.lookup == nil {
		return Completion{Request: req, Err: domain.ErrLookupFailed}
	}
	info, err := c.lookup.Lookup(ctx, req.Key)
	return Completion{Request: req, Info: info, Err: err}
}

// Commit applies a completion if its token is still current and reports
// whether it did. Stale completions are dropped silently.
func (c *RegionCoordinator) Commit(done Completion) bool {
	c.pubMu.Lock()
	defer c.pubMu.Unlock()

	c.mu.Lock()
	if done.Token != c.token {
		c.mu.Unlock()
		regionLog.Debug("discard stale result for %s (token %d)", done.Key, done.Token)
		return false
	}

	if done.Err != nil {
		regionLog.Warn("lookup %s: %v", done.Key, done.Err)
		c.panel = domain.RegionPanel{
			Key:     done.Key,
			Status:  domain.FetchError,
			Message: domain.RegionFetchFailedMessage,
		}
	} else {
		c.panel = domain.RegionPanel{Key: done.Key, Status: domain.FetchReady, Info: done.Info}
	}
	panel := c.panel
	c.mu.Unlock()

	c.publish(panel)
	return true
}

// ClosePanel clears the selection and invalidates any in-flight lookup.
func (c *RegionCoordinator) ClosePanel() {
	c.pubMu.Lock()
	defer c.pubMu.Unlock()

	c.mu.Lock()
	c.token++
	c.panel = domain.RegionPanel{Status: domain.FetchIdle}
	panel := c.panel
	c.mu.Unlock()

	c.publish(panel)
}

// Panel returns a snapshot of the panel state.
func (c *RegionCoordinator) Panel() domain.RegionPanel {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.panel
}

// Subscribe registers an observer for panel changes.
func (c *RegionCoordinator) Subscribe(fn func(domain.RegionPanel)) func() {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	return func() {
		c.subMu.Lock()
		defer c.subMu.Unlock()
		delete(c.subs, id)
	}
}

// Wait blocks until every background lookup has returned.
func (c *RegionCoordinator) Wait() {
	c.inflight.Wait()
}

func (c *RegionCoordinator) publish(panel domain.RegionPanel) {
	c.subMu.Lock()
	fns := make([]func(domain.RegionPanel), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	c.subMu.Unlock()

	for _, fn := range fns {
		fn(panel)
	}
}
