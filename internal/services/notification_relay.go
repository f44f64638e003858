package services

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/koswara-dev/BarayaApp-sub000/domain"
)

// NotificationRelay polls the remote notification feed, diffs it against the
// last-seen id, and fans genuinely new items out to the delivery sinks. It
// is a read-only observer of the feed and never touches report state.
type NotificationRelay struct {
	api      domain.APIGateway
	sinks    []domain.NotificationSink
	interval time.Duration
	retry    RetryPolicy
	log      *logrus.Logger

	mu       sync.Mutex
	lastSeen int
	primed   bool
}

// NewNotificationRelay creates a relay. The first poll only establishes the
// baseline; nothing already in the feed is delivered.
func NewNotificationRelay(api domain.APIGateway, sinks []domain.NotificationSink, interval time.Duration, retry RetryPolicy, log *logrus.Logger) *NotificationRelay {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &NotificationRelay{
		api:      api,
		sinks:    sinks,
		interval: interval,
		retry:    retry,
		log:      log,
	}
}

// Run polls until the context is done.
func (r *NotificationRelay) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := r.Poll(ctx); err != nil {
				r.log.WithError(err).Warn("notification poll failed")
			}
		}
	}
}

// Poll fetches the feed once and delivers the new items. The feed is served
// newest first; items are delivered oldest first so sinks see them in
// chronological order.
func (r *NotificationRelay) Poll(ctx context.Context) error {
	items, err := r.api.ListNotifications(ctx)
	if err != nil {
		return err
	}

	r.mu.Lock()
	if !r.primed {
		r.primed = true
		if len(items) > 0 {
			r.lastSeen = items[0].ID
		}
		r.mu.Unlock()
		return nil
	}
	lastSeen := r.lastSeen
	var fresh []domain.Notification
	for _, item := range items {
		if item.ID <= lastSeen {
			break
		}
		fresh = append(fresh, item)
	}
	if len(fresh) > 0 {
		r.lastSeen = fresh[0].ID
	}
	r.mu.Unlock()

	for i := len(fresh) - 1; i >= 0; i-- {
		r.deliver(ctx, fresh[i])
	}
	return nil
}

// deliver fans one item out to every sink under the bounded retry policy.
// A sink that keeps failing is logged and skipped; delivery is best effort.
func (r *NotificationRelay) deliver(ctx context.Context, item domain.Notification) {
	for _, sink := range r.sinks {
		sink := sink
		err := r.retry.Do(ctx, func() error {
			return sink.Notify(ctx, item)
		})
		if err != nil {
			r.log.WithError(err).WithField("notification_id", item.ID).Warn("notification delivery failed")
		}
	}
}
