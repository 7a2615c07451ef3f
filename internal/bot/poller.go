// poller.go - Long-poll loop that feeds updates into the handlers

package bot

import (
	"context"
	"log"
	"time"
)

// Poller drives getUpdates long-polling and dispatches each update to the
// handlers. Updates are handled to completion one at a time, matching the
// conversation-state design that accepts (but does not rely on) sequential
// handling per process.
type Poller struct {
	client      *Client
	handlers    *Handlers
	pollTimeout time.Duration
}

// NewPoller creates a Poller.
func NewPoller(client *Client, handlers *Handlers, pollTimeout time.Duration) *Poller {
	return &Poller{client: client, handlers: handlers, pollTimeout: pollTimeout}
}

// Run polls until ctx is cancelled. Poll timeouts are normal; other poll
// errors back off briefly and retry rather than killing the bot.
func (p *Poller) Run(ctx context.Context) error {
	var offset int64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		updates, next, err := p.client.GetUpdates(ctx, offset, p.pollTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if !IsPollTimeout(err) {
				log.Printf("⚠️ getUpdates failed: %v", err)
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(3 * time.Second):
				}
			}
			continue
		}
		offset = next

		for _, u := range updates {
			p.handlers.HandleUpdate(ctx, u)
		}
	}
}
