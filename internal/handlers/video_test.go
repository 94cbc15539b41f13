package handlers

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tcg-card-studio/internal/events"
	"tcg-card-studio/internal/genai"
	"tcg-card-studio/internal/models"
)

func TestGenerateVideo_StartsThenConflict(t *testing.T) {
	env := newTestEnv(t)
	id := env.addCard(t, "user-1", models.VideoPending)

	w := env.do(t, http.MethodPost, "/api/v1/generate-video", "user-1", models.GenerateVideoRequest{CardID: id})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[models.GenerateVideoResponse](t, w)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Card)
	assert.Equal(t, models.VideoGenerating, resp.Card.VideoGenerationStatus)

	w = env.do(t, http.MethodPost, "/api/v1/generate-video", "user-1", models.GenerateVideoRequest{CardID: id})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/cards/"+id+"/video-status", "user-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	status := decode[models.VideoStatusResponse](t, w)
	assert.Equal(t, models.VideoGenerating, status.Status)
	assert.False(t, status.Terminal)

	close(env.gen.release)
	env.videos.Wait()

	w = env.do(t, http.MethodGet, "/api/v1/cards/"+id+"/video-status", "user-1", nil)
	status = decode[models.VideoStatusResponse](t, w)
	assert.Equal(t, models.VideoCompleted, status.Status)
	assert.True(t, status.Terminal)
	assert.Equal(t, "https://blob.example.com/users/user-1/videos/Pika.mp4", status.VideoURL)
}

func TestGenerateVideo_MissingKeyNoStateChange(t *testing.T) {
	env := newTestEnv(t)
	env.gen.credErr = &genai.CredentialError{Provider: "video"}
	id := env.addCard(t, "user-1", models.VideoPending)

	w := env.do(t, http.MethodPost, "/api/v1/generate-video", "user-1", models.GenerateVideoRequest{CardID: id})
	require.Equal(t, http.StatusPreconditionFailed, w.Code)

	card, err := env.store.GetCard(context.Background(), "user-1", id)
	require.NoError(t, err)
	assert.Equal(t, models.VideoPending, card.VideoGenerationStatus)
}

func TestGenerateVideo_Validation(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/generate-video", "user-1", models.GenerateVideoRequest{})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []string{"cardId"}, decode[models.ErrorResponse](t, w).Fields)

	w = env.do(t, http.MethodPost, "/api/v1/generate-video", "user-1", models.GenerateVideoRequest{CardID: "missing"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func readEvent(t *testing.T, r *bufio.Reader) events.VideoEvent {
	t.Helper()
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		if strings.HasPrefix(line, "data: ") {
			var evt events.VideoEvent
			require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(strings.TrimSpace(line), "data: ")), &evt))
			return evt
		}
	}
}

func TestEvents_StreamsUntilTerminal(t *testing.T) {
	env := newTestEnv(t)
	id := env.addCard(t, "user-1", models.VideoPending)
	_, err := env.store.TransitionVideoStatus(context.Background(), "user-1", id,
		[]models.VideoStatus{models.VideoPending},
		models.CardUpdate{VideoGenerationStatus: models.StatusPtr(models.VideoGenerating)})
	require.NoError(t, err)

	server := httptest.NewServer(env.router)
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"/api/v1/cards/"+id+"/events", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token(t, "user-1"))

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	first := readEvent(t, reader)
	assert.Equal(t, models.VideoGenerating, first.Status)
	assert.Equal(t, 1, env.hub.Subscribers("user-1", id))

	env.hub.Publish("user-1", events.VideoEvent{CardID: id, Status: models.VideoCompleted, VideoURL: "https://blob.example.com/v.mp4"})
	done := readEvent(t, reader)
	assert.Equal(t, models.VideoCompleted, done.Status)
	assert.Equal(t, "https://blob.example.com/v.mp4", done.VideoURL)

	_, err = reader.ReadString('\n')
	for err == nil {
		_, err = reader.ReadString('\n')
	}
	assert.Eventually(t, func() bool { return env.hub.Subscribers("user-1", id) == 0 }, time.Second, 10*time.Millisecond)
}

func TestEvents_UnknownCard(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/v1/cards/missing/events", "user-1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Zero(t, env.hub.Subscribers("user-1", "missing"))
}
