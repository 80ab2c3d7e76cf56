// This file contains the lazily-refreshed catalog snapshot provider.
package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/studygate/partner-bot-go/internal/metrics"
)

// refreshKey is the singleflight key; the whole catalog refreshes as one unit.
const refreshKey = "catalog"

// DefaultSnapshotTTL is how long a snapshot stays fresh.
const DefaultSnapshotTTL = 15 * time.Minute

// Store loads catalog entities from persistent storage.
type Store interface {
	ListUniversities(ctx context.Context) ([]University, error)
	ListMajors(ctx context.Context) ([]Major, error)
}

// Provider serves catalog snapshots with TTL-based lazy refresh.
// Concurrent refreshes collapse into one storage round trip via
// singleflight; readers keep the previous snapshot until a refresh
// succeeds, so a storage outage degrades to stale data instead of errors.
type Provider struct {
	store   Store
	ttl     time.Duration
	metrics *metrics.Metrics

	mu   sync.RWMutex
	snap *Snapshot

	group singleflight.Group
	now   func() time.Time
}

// NewProvider creates a snapshot provider. ttl <= 0 uses DefaultSnapshotTTL.
// m may be nil to disable metrics.
func NewProvider(store Store, ttl time.Duration, m *metrics.Metrics) *Provider {
	if ttl <= 0 {
		ttl = DefaultSnapshotTTL
	}
	return &Provider{
		store:   store,
		ttl:     ttl,
		metrics: m,
		now:     time.Now,
	}
}

// Get returns the current snapshot, refreshing from storage when the cached
// one is missing or expired. If a refresh fails but a stale snapshot exists,
// the stale snapshot is returned without error.
func (p *Provider) Get(ctx context.Context) (*Snapshot, error) {
	if snap := p.cached(); snap != nil {
		p.metrics.RecordCacheHit("catalog")
		return snap, nil
	}
	p.metrics.RecordCacheMiss("catalog")

	result, err, _ := p.group.Do(refreshKey, func() (any, error) {
		// Another goroutine may have refreshed while this one queued.
		if snap := p.cached(); snap != nil {
			return snap, nil
		}
		return p.refresh(ctx)
	})
	if err != nil {
		if stale := p.stale(); stale != nil {
			return stale, nil
		}
		return nil, err
	}
	return result.(*Snapshot), nil
}

// Invalidate drops the cached snapshot so the next Get refreshes.
func (p *Provider) Invalidate() {
	p.mu.Lock()
	p.snap = nil
	p.mu.Unlock()
	p.group.Forget(refreshKey)
}

// cached returns the snapshot if it is still fresh, nil otherwise.
func (p *Provider) cached() *Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.snap == nil || p.now().Sub(p.snap.FetchedAt) > p.ttl {
		return nil
	}
	return p.snap
}

// stale returns whatever snapshot exists, fresh or not.
func (p *Provider) stale() *Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snap
}

func (p *Provider) refresh(ctx context.Context) (*Snapshot, error) {
	universities, err := p.store.ListUniversities(ctx)
	if err != nil {
		p.metrics.RecordSnapshotRefresh("error")
		return nil, fmt.Errorf("list universities: %w", err)
	}

	majors, err := p.store.ListMajors(ctx)
	if err != nil {
		p.metrics.RecordSnapshotRefresh("error")
		return nil, fmt.Errorf("list majors: %w", err)
	}

	snap := &Snapshot{
		Universities: universities,
		Majors:       majors,
		FetchedAt:    p.now(),
	}

	p.mu.Lock()
	p.snap = snap
	p.mu.Unlock()

	p.metrics.RecordSnapshotRefresh("success")
	return snap, nil
}
