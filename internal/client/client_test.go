package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tcg-card-studio/internal/logging"
	"tcg-card-studio/internal/models"
)

func TestClient_SendsTokenAndDecodes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "/api/v1/cards", r.URL.Path)
		_ = json.NewEncoder(w).Encode(models.CardListResponse{Cards: []models.Card{{ID: "c1", Name: "Pika"}}})
	}))
	defer server.Close()

	c := New(server.URL+"/api/v1/", "tok")
	cards, err := c.ListCards(context.Background())
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "Pika", cards[0].Name)
}

func TestClient_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPreconditionFailed)
		_ = json.NewEncoder(w).Encode(models.ErrorResponse{Error: "api key required", Code: "api_key_required"})
	}))
	defer server.Close()

	_, err := New(server.URL, "tok").GenerateVideo(context.Background(), "c1")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusPreconditionFailed, apiErr.StatusCode)
	assert.Equal(t, "api_key_required", apiErr.Response.Code)
}

func TestClient_DeleteNoContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	assert.NoError(t, New(server.URL, "tok").DeleteCard(context.Background(), "c1"))
}

type scriptedSource struct {
	mu      sync.Mutex
	scripts map[string][]models.VideoStatus
	calls   map[string]int
}

func (s *scriptedSource) VideoStatus(_ context.Context, cardID string) (*models.VideoStatusResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	script, ok := s.scripts[cardID]
	if !ok {
		return nil, &APIError{StatusCode: http.StatusNotFound}
	}
	i := s.calls[cardID]
	s.calls[cardID]++
	if i >= len(script) {
		i = len(script) - 1
	}
	status := script[i]
	return &models.VideoStatusResponse{CardID: cardID, Status: status, Terminal: status.Terminal()}, nil
}

func TestPoller_StopsWhenAllTerminal(t *testing.T) {
	source := &scriptedSource{
		scripts: map[string][]models.VideoStatus{
			"a": {models.VideoGenerating, models.VideoGenerating, models.VideoCompleted},
			"b": {models.VideoGenerating, models.VideoFailed},
		},
		calls: map[string]int{},
	}
	poller := NewPoller(source, time.Millisecond, logging.Discard())

	var changes []models.VideoStatusResponse
	final, err := poller.WatchVideos(context.Background(), []string{"a", "b", "gone"}, func(s models.VideoStatusResponse) {
		changes = append(changes, s)
	})
	require.NoError(t, err)
	assert.Equal(t, models.VideoCompleted, final["a"].Status)
	assert.Equal(t, models.VideoFailed, final["b"].Status)
	assert.NotContains(t, final, "gone")
	assert.Equal(t, 3, source.calls["a"])
	assert.Equal(t, 2, source.calls["b"])
	assert.Len(t, changes, 4)
}

func TestPoller_ContextCancel(t *testing.T) {
	source := &scriptedSource{
		scripts: map[string][]models.VideoStatus{"a": {models.VideoGenerating}},
		calls:   map[string]int{},
	}
	poller := NewPoller(source, time.Millisecond, logging.Discard())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	final, err := poller.WatchVideos(ctx, []string{"a"}, nil)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Equal(t, models.VideoGenerating, final["a"].Status)
}
