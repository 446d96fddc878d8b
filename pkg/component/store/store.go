// Package store persists microgrid components and delivers change
// notifications as full replacement snapshots, the form the topology
// engine reconciles against.
//
// Two backends are provided: an in-memory store for tests, the CLI, and
// single-process deployments, and a MongoDB store for shared deployments.
// Both keep snapshot order stable across reads so layout resolution stays
// deterministic.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/gridsmith/gridview/pkg/component"
	"github.com/gridsmith/gridview/pkg/observability"
)

// Store is the authoritative component inventory.
// List returns components in a stable order (insertion order for the
// memory backend, creation time for Mongo).
type Store interface {
	List(ctx context.Context) ([]component.Component, error)
	Get(ctx context.Context, id string) (*component.Component, error)
	Put(ctx context.Context, c *component.Component) error
	Delete(ctx context.Context, id string) error
	Close(ctx context.Context) error
}

// =============================================================================
// Feed - Snapshot Change Notification
// =============================================================================

// Feed fans full replacement snapshots out to subscribers. Slow consumers
// miss intermediate snapshots rather than blocking publishers; each channel
// always ends up holding the newest snapshot it could accept.
type Feed struct {
	mu   sync.Mutex
	subs map[chan []component.Component]struct{}
}

// NewFeed creates an empty feed.
func NewFeed() *Feed {
	return &Feed{subs: make(map[chan []component.Component]struct{})}
}

// Subscribe registers a snapshot channel. The subscription is removed and
// the channel closed when ctx is cancelled.
func (f *Feed) Subscribe(ctx context.Context) <-chan []component.Component {
	ch := make(chan []component.Component, 1)

	f.mu.Lock()
	f.subs[ch] = struct{}{}
	f.mu.Unlock()

	go func() {
		<-ctx.Done()
		f.mu.Lock()
		if _, ok := f.subs[ch]; ok {
			delete(f.subs, ch)
			close(ch)
		}
		f.mu.Unlock()
	}()

	return ch
}

// Publish delivers a snapshot to every subscriber. A subscriber whose
// buffer still holds an older snapshot has it replaced by this one.
func (f *Feed) Publish(snapshot []component.Component) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for ch := range f.subs {
		select {
		case ch <- snapshot:
		default:
			// Drop the stale buffered snapshot, then retry with the fresh one.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snapshot:
			default:
			}
		}
	}
}

// =============================================================================
// Watched - Store With Change Notification
// =============================================================================

// Watched wraps a Store so every successful mutation publishes the
// resulting snapshot on its Feed.
type Watched struct {
	Store
	feed *Feed
}

// NewWatched wraps a store with snapshot notification.
func NewWatched(s Store) *Watched {
	return &Watched{Store: s, feed: NewFeed()}
}

// Subscribe delivers a full snapshot after every mutation through this
// wrapper. Mutations made directly against the underlying store are not
// observed.
func (w *Watched) Subscribe(ctx context.Context) <-chan []component.Component {
	return w.feed.Subscribe(ctx)
}

// Put stores the component and publishes the new snapshot.
func (w *Watched) Put(ctx context.Context, c *component.Component) error {
	if err := w.Store.Put(ctx, c); err != nil {
		return err
	}
	observability.Store().OnPut(ctx, c.ID)
	w.publish(ctx)
	return nil
}

// Delete removes the component and publishes the new snapshot.
func (w *Watched) Delete(ctx context.Context, id string) error {
	if err := w.Store.Delete(ctx, id); err != nil {
		return err
	}
	observability.Store().OnDelete(ctx, id)
	w.publish(ctx)
	return nil
}

func (w *Watched) publish(ctx context.Context) {
	start := time.Now()
	snap, err := w.Store.List(ctx)
	observability.Store().OnSnapshot(ctx, len(snap), time.Since(start), err)
	if err != nil {
		return
	}
	w.feed.Publish(snap)
}
