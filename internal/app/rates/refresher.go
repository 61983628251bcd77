package rates

import (
	"context"
	"time"

	"goldbook/internal/pkg/logx"
)

// Refresher periodically re-fetches rates and publishes each new quote to the hub.
type Refresher struct {
	service  *Service
	hub      *Hub
	interval time.Duration
}

// NewRefresher constructs a Refresher. The hub may be nil when broadcasting is not wanted.
func NewRefresher(service *Service, hub *Hub, interval time.Duration) *Refresher {
	return &Refresher{
		service:  service,
		hub:      hub,
		interval: interval,
	}
}

// Run refreshes immediately, then on every interval tick until the context is done.
// Intended to run as a background goroutine for the life of the process.
func (r *Refresher) Run(ctx context.Context) {
	r.publish(r.service.Refresh(ctx))

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.publish(r.service.Refresh(ctx))
		case <-ctx.Done():
			logx.Info("Rate refresher stopped")
			return
		}
	}
}

func (r *Refresher) publish(quote Quote) {
	if r.hub != nil {
		r.hub.Publish(quote)
	}
}
