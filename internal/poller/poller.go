// Package poller keeps the news store eventually consistent with the single
// most-recent message of one Discord channel.
//
// Only the latest message is fetched per tick, so messages posted between two
// ticks are skipped. That is the accepted ingestion policy, not a bug to fix
// with a backlog sync.
package poller

import (
	"context"
	"time"

	"macro-news-bot/backend/internal/models"
	"macro-news-bot/backend/pkg/logger"
	"macro-news-bot/backend/pkg/metrics"
)

// Fetcher fetches the single latest message of the watched channel.
// A nil message with a nil error means the channel has no messages.
type Fetcher interface {
	LatestMessage() (*models.NewsMessage, error)
}

// Store persists messages that have not been seen before
type Store interface {
	SaveIfNew(msg *models.NewsMessage) (bool, error)
}

// Poller runs the fixed-interval poll task
type Poller struct {
	fetcher  Fetcher
	store    Store
	log      *logger.Logger
	interval time.Duration

	// lastSeenID is process-local and lost on restart; the store existence
	// check is the secondary dedup guard after that.
	lastSeenID string
}

// New creates a poller with the given dependencies
func New(fetcher Fetcher, store Store, log *logger.Logger, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &Poller{
		fetcher:  fetcher,
		store:    store,
		log:      log,
		interval: interval,
	}
}

// Run executes the poll task every interval until the context is canceled.
// A failed tick is logged and swallowed; the next tick runs regardless.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.log.Info("Poller started", "interval", p.interval.String())

	for {
		select {
		case <-ctx.Done():
			p.log.Info("Poller stopped")
			return
		case <-ticker.C:
			metrics.PollTicks.Inc()
			if err := p.Tick(); err != nil {
				metrics.PollErrors.Inc()
				p.log.LogError(err, "Polling error")
			}
		}
	}
}

// Tick fetches the latest channel message and persists it if unseen
func (p *Poller) Tick() error {
	msg, err := p.fetcher.LatestMessage()
	if err != nil {
		return err
	}
	if msg == nil {
		return nil
	}

	if msg.MessageID == p.lastSeenID {
		return nil
	}
	p.lastSeenID = msg.MessageID

	saved, err := p.store.SaveIfNew(msg)
	if err != nil {
		return err
	}
	if saved {
		metrics.MessagesSaved.Inc()
		p.log.Info("New message saved",
			"message_id", msg.MessageID,
			"author", msg.Author,
			"content", msg.Content,
		)
	}
	return nil
}
