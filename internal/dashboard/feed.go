package dashboard

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agenthands/eventlens/internal/bus"
	"github.com/agenthands/eventlens/internal/core/model"
	"github.com/agenthands/eventlens/internal/core/stats"
)

const DefaultMaxEvents = 50

type RecentEvent struct {
	Event    *model.EventRecord `json:"event"`
	Severity model.Severity     `json:"severity"`
}

// Snapshot is what the data surfaces display. Every refresh replaces it.
type Snapshot struct {
	Events    []*model.EventRecord `json:"events"`
	Stats     *model.Stats         `json:"stats"`
	Recent    []RecentEvent        `json:"recent"`
	UpdatedAt time.Time            `json:"updated_at"`
}

// Feed keeps the event list and stats current: on Start, on every bus
// refresh and on each poll tick.
type Feed struct {
	API       API
	Notifier  Notifier
	Interval  time.Duration
	MaxEvents int
	OnUpdate  func(Snapshot)
	Now       func() time.Time

	guard  Guard
	mu     sync.RWMutex
	snap   Snapshot
	poller *Poller

	unsubscribe func()
	wg          sync.WaitGroup
}

func NewFeed(api API, notifier Notifier, interval time.Duration, maxEvents int) *Feed {
	if notifier == nil {
		notifier = LogNotifier{}
	}
	if maxEvents <= 0 {
		maxEvents = DefaultMaxEvents
	}
	return &Feed{
		API:       api,
		Notifier:  notifier,
		Interval:  interval,
		MaxEvents: maxEvents,
		Now:       time.Now,
	}
}

func (f *Feed) Snapshot() Snapshot {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.snap
}

func (f *Feed) Loading() bool {
	return f.guard.Busy()
}

// Refresh fetches events and stats together. A refresh while one is in
// flight returns ErrBusy. Failures are reported through the notifier and
// leave the previous snapshot in place.
func (f *Feed) Refresh(ctx context.Context) error {
	return f.guard.Do(func() error {
		var (
			events []*model.EventRecord
			st     *model.Stats
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			events, err = f.API.AllEvents(gctx)
			return err
		})
		g.Go(func() error {
			var err error
			st, err = f.API.Stats(gctx)
			return err
		})
		if err := g.Wait(); err != nil {
			f.Notifier.Error(errorMessage("Failed to fetch events", err))
			return err
		}

		snap := Snapshot{
			Events:    events,
			Stats:     st,
			Recent:    recent(events, f.MaxEvents),
			UpdatedAt: f.Now(),
		}
		f.mu.Lock()
		f.snap = snap
		f.mu.Unlock()

		if f.OnUpdate != nil {
			f.OnUpdate(snap)
		}
		return nil
	})
}

// recent returns the newest max events, newest first, with their severity.
func recent(events []*model.EventRecord, max int) []RecentEvent {
	out := make([]RecentEvent, 0, max)
	for i := len(events) - 1; i >= 0 && len(out) < max; i-- {
		out = append(out, RecentEvent{Event: events[i], Severity: stats.Severity(events[i])})
	}
	return out
}

// Start loads once, then follows refresh signals on b and the poll timer
// until Stop.
func (f *Feed) Start(ctx context.Context, b *bus.Bus) {
	f.Refresh(ctx)

	if b != nil {
		ch, unsubscribe := b.Subscribe(bus.TopicRefresh)
		f.unsubscribe = unsubscribe
		f.wg.Add(1)
		go func() {
			defer f.wg.Done()
			for range ch {
				f.Refresh(ctx)
			}
		}()
	}

	f.poller = NewPoller(f.Interval, func(ctx context.Context) { f.Refresh(ctx) })
	f.poller.Start(ctx)
}

func (f *Feed) Stop() {
	if f.poller != nil {
		f.poller.Stop()
	}
	if f.unsubscribe != nil {
		f.unsubscribe()
		f.unsubscribe = nil
	}
	f.wg.Wait()
}
