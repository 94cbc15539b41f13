// Package events fans out video status changes to connected clients. It
// complements polling; a client that misses an event still converges by
// reading the card.
package events

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"tcg-card-studio/internal/models"
)

type EventType string

const (
	EventVideoStatus EventType = "video_status"
)

type VideoEvent struct {
	EventID  string             `json:"eventId"`
	Seq      int64              `json:"seq"`
	Type     EventType          `json:"type"`
	CardID   string             `json:"cardId"`
	Status   models.VideoStatus `json:"videoGenerationStatus"`
	VideoURL string             `json:"videoUrl,omitempty"`
	Message  string             `json:"message,omitempty"`
	TS       time.Time          `json:"ts"`
}

// Hub routes events per (user, card). Publish never blocks: a subscriber
// whose buffer is full misses the event.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[string]chan VideoEvent
	seq  atomic.Int64
}

func NewHub() *Hub {
	return &Hub{
		subs: map[string]map[string]chan VideoEvent{},
	}
}

func topic(userID, cardID string) string {
	return userID + "/" + cardID
}

func (h *Hub) Subscribe(userID, cardID string, buf int) (string, <-chan VideoEvent, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	key := topic(userID, cardID)
	subID := uuid.NewString()
	if _, ok := h.subs[key]; !ok {
		h.subs[key] = map[string]chan VideoEvent{}
	}
	ch := make(chan VideoEvent, buf)
	h.subs[key][subID] = ch

	unsubscribe := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		cardSubs, ok := h.subs[key]
		if !ok {
			return
		}
		c, ok := cardSubs[subID]
		if !ok {
			return
		}
		delete(cardSubs, subID)
		close(c)
		if len(cardSubs) == 0 {
			delete(h.subs, key)
		}
	}
	return subID, ch, unsubscribe
}

// Publish stamps the event with an id, a sequence number and a timestamp and
// delivers it to the card's subscribers.
func (h *Hub) Publish(userID string, evt VideoEvent) VideoEvent {
	evt.EventID = uuid.NewString()
	evt.Seq = h.seq.Add(1)
	if evt.Type == "" {
		evt.Type = EventVideoStatus
	}
	if evt.TS.IsZero() {
		evt.TS = time.Now().UTC()
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.subs[topic(userID, evt.CardID)] {
		select {
		case ch <- evt:
		default:
		}
	}
	return evt
}

// Subscribers reports how many clients watch a card.
func (h *Hub) Subscribers(userID, cardID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[topic(userID, cardID)])
}
