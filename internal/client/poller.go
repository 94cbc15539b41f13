package client

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"tcg-card-studio/internal/models"
)

// StatusSource is the read the poller repeats.
type StatusSource interface {
	VideoStatus(ctx context.Context, cardID string) (*models.VideoStatusResponse, error)
}

// Poller re-reads video status on a fixed interval until every watched card is
// completed or failed.
type Poller struct {
	source   StatusSource
	interval time.Duration
	logger   *slog.Logger
}

func NewPoller(source StatusSource, interval time.Duration, logger *slog.Logger) *Poller {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &Poller{source: source, interval: interval, logger: logger}
}

// WatchVideos polls cardIDs and calls onChange whenever a card's status
// differs from the last one seen. It returns the final statuses once all
// cards are terminal. A card that disappears stops being watched.
func (p *Poller) WatchVideos(ctx context.Context, cardIDs []string, onChange func(models.VideoStatusResponse)) (map[string]models.VideoStatusResponse, error) {
	pending := make(map[string]bool, len(cardIDs))
	for _, id := range cardIDs {
		pending[id] = true
	}
	last := make(map[string]models.VideoStatusResponse, len(cardIDs))

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		for id := range pending {
			status, err := p.source.VideoStatus(ctx, id)
			if err != nil {
				var apiErr *APIError
				if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
					p.logger.Warn("card no longer exists, dropping from watch", "card_id", id)
					delete(pending, id)
					continue
				}
				if ctx.Err() != nil {
					return last, ctx.Err()
				}
				p.logger.Warn("video status poll failed", "card_id", id, "error", err)
				continue
			}

			if prev, seen := last[id]; !seen || prev.Status != status.Status {
				if onChange != nil {
					onChange(*status)
				}
			}
			last[id] = *status
			if status.Status.Terminal() {
				delete(pending, id)
			}
		}

		if len(pending) == 0 {
			return last, nil
		}

		select {
		case <-ctx.Done():
			return last, ctx.Err()
		case <-ticker.C:
		}
	}
}
