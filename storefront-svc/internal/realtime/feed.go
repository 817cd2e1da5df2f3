// Package realtime fans row-change events out to in-process subscribers.
package realtime

import (
	"context"
	"errors"
	"sync"
	"time"

	"campus-storefront/changefeed"

	log "github.com/sirupsen/logrus"
)

// ErrSourceUnavailable marks a read failure of the transport itself, as
// opposed to a single bad event.
var ErrSourceUnavailable = errors.New("change source unavailable")

// RetryDelay is how long Run waits before reading again from a source that
// reported ErrSourceUnavailable.
var RetryDelay = time.Second

type Source interface {
	Read(ctx context.Context) (changefeed.Event, error)
}

// Feed delivers every dispatched event to each subscription on its table.
// Delivery is best-effort: a subscriber whose buffer is full misses the event.
type Feed struct {
	mu     sync.RWMutex
	subs   map[changefeed.Table]map[*Subscription]struct{}
	closed bool
}

func NewFeed() *Feed {
	return &Feed{subs: map[changefeed.Table]map[*Subscription]struct{}{}}
}

type Subscription struct {
	feed   *Feed
	table  changefeed.Table
	events chan changefeed.Event
	once   sync.Once
}

func (f *Feed) Subscribe(table changefeed.Table, buffer int) *Subscription {
	if buffer < 1 {
		buffer = 1
	}
	sub := &Subscription{
		feed:   f,
		table:  table,
		events: make(chan changefeed.Event, buffer),
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		sub.once.Do(func() { close(sub.events) })
		return sub
	}
	if f.subs[table] == nil {
		f.subs[table] = map[*Subscription]struct{}{}
	}
	f.subs[table][sub] = struct{}{}
	return sub
}

func (s *Subscription) Table() changefeed.Table {
	return s.table
}

// Events is closed once the subscription or the feed is closed.
func (s *Subscription) Events() <-chan changefeed.Event {
	return s.events
}

// Close may be called any number of times.
func (s *Subscription) Close() {
	s.feed.mu.Lock()
	defer s.feed.mu.Unlock()
	s.closeLocked()
}

func (s *Subscription) closeLocked() {
	s.once.Do(func() {
		if subs := s.feed.subs[s.table]; subs != nil {
			delete(subs, s)
			if len(subs) == 0 {
				delete(s.feed.subs, s.table)
			}
		}
		close(s.events)
	})
}

// Dispatch returns the number of subscribers that received the event.
func (f *Feed) Dispatch(evt changefeed.Event) int {
	f.mu.RLock()
	defer f.mu.RUnlock()

	delivered := 0
	for sub := range f.subs[evt.Table] {
		select {
		case sub.events <- evt:
			delivered++
		default:
			log.WithFields(log.Fields{"table": evt.Table, "event": evt.EventType}).Warn("subscriber buffer full, dropping change event")
		}
	}
	return delivered
}

func (f *Feed) Subscribers(table changefeed.Table) int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.subs[table])
}

// Run pumps every source until ctx is cancelled.
func (f *Feed) Run(ctx context.Context, sources ...Source) {
	var wg sync.WaitGroup
	for _, source := range sources {
		wg.Add(1)
		go func(source Source) {
			defer wg.Done()
			f.pump(ctx, source)
		}(source)
	}
	wg.Wait()
}

func (f *Feed) pump(ctx context.Context, source Source) {
	for {
		evt, err := source.Read(ctx)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			log.Warnf("change feed read failed: %v", err)
			if errors.Is(err, ErrSourceUnavailable) {
				select {
				case <-ctx.Done():
					return
				case <-time.After(RetryDelay):
				}
			}
			continue
		}
		f.Dispatch(evt)
	}
}

// Close ends every subscription. Later subscriptions start closed.
func (f *Feed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.closed = true
	for _, subs := range f.subs {
		for sub := range subs {
			sub.closeLocked()
		}
	}
}
