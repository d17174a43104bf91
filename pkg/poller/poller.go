// Package poller implements the pull side of notification delivery: a
// fixed-interval loop that refreshes an in-memory snapshot of the feed.
// Delivery is polling-based; there is no push channel.
package poller

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/persoshop/persoshop-api/internal/core/domain"
)

// DefaultInterval is the feed refresh period.
const DefaultInterval = 30 * time.Second

// Feed fetches the current notification listing for one session.
type Feed interface {
	Fetch(ctx context.Context) ([]*domain.Notification, error)
}

// Poller refreshes a notification snapshot on a fixed interval. A poll
// failure never stops the loop: the error is logged and the previous
// snapshot stays visible until the next tick succeeds.
type Poller struct {
	feed     Feed
	session  func() string
	interval time.Duration
	log      zerolog.Logger

	mu            sync.RWMutex
	notifications []*domain.Notification
	unread        int
}

// New creates a Poller. session reports the current session token; the
// loop never fetches while it returns empty, so an unauthenticated
// poller stays silent instead of accumulating 401s. interval <= 0 falls
// back to DefaultInterval.
func New(feed Feed, session func() string, interval time.Duration, log zerolog.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{feed: feed, session: session, interval: interval, log: log}
}

// Start launches the polling loop. It polls once immediately, then on
// every tick, and stops when ctx is cancelled.
func (p *Poller) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		p.poll(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				p.poll(ctx)
			}
		}
	}()
}

// Snapshot returns the most recent listing and its unread count. Safe
// for concurrent use with the running loop.
func (p *Poller) Snapshot() ([]*domain.Notification, int) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.notifications, p.unread
}

func (p *Poller) poll(ctx context.Context) {
	if p.session() == "" {
		return
	}

	notifications, err := p.feed.Fetch(ctx)
	if err != nil {
		p.log.Warn().Err(err).Msg("notification poll failed, keeping previous snapshot")
		return
	}

	unread := 0
	for _, n := range notifications {
		if !n.Read {
			unread++
		}
	}

	p.mu.Lock()
	p.notifications = notifications
	p.unread = unread
	p.mu.Unlock()
}
