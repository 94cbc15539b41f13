package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"tcg-card-studio/internal/config"
	"tcg-card-studio/internal/events"
	"tcg-card-studio/internal/fetch"
	"tcg-card-studio/internal/genai"
	"tcg-card-studio/internal/logging"
	"tcg-card-studio/internal/models"
	"tcg-card-studio/internal/services"
	"tcg-card-studio/internal/store"
)

const (
	testSecret    = "handler-test-secret-long-enough-for-hs256"
	testBodyLimit = 64 << 10
)

type fakeGen struct {
	err     error
	credErr error
	calls   int
	release chan struct{}
}

func (f *fakeGen) GenerateCard(_ context.Context, _ string, p genai.CardParams) (*genai.ImageResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &genai.ImageResult{ImageBase64: "data:image/png;base64,AAAA", Prompt: "prompt for " + p.CharacterName}, nil
}

func (f *fakeGen) GenerateCardFromPhoto(context.Context, string, genai.PhotoParams) (*genai.ImageResult, error) {
	f.calls++
	return &genai.ImageResult{ImageBase64: "data:image/png;base64,AAAA"}, f.err
}

func (f *fakeGen) ScanCard(context.Context, string, string) (*models.CardDetails, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &models.CardDetails{Name: "Pika", Game: "pokemon"}, nil
}

func (f *fakeGen) GradeCard(_ context.Context, _ string, p genai.GradeParams) (*models.GradingResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &models.GradingResult{GradingScale: p.GradingScale, OverallGrade: 8.5}, nil
}

func (f *fakeGen) CheckCredential(context.Context, string, models.Provider) error {
	return f.credErr
}

func (f *fakeGen) GenerateVideo(ctx context.Context, _ string, _ genai.VideoRequest) ([]byte, error) {
	select {
	case <-f.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return []byte("video"), nil
}

type memBlobs struct{}

func (memBlobs) UploadImage(_ context.Context, _ []byte, userID, name string) (string, error) {
	return "https://blob.example.com/users/" + userID + "/cards/" + name + ".png", nil
}

func (memBlobs) UploadVideo(_ context.Context, _ []byte, userID, name string) (string, error) {
	return "https://blob.example.com/users/" + userID + "/videos/" + name + ".mp4", nil
}

func (memBlobs) DeleteObject(context.Context, string, string) error { return nil }

func (memBlobs) ObjectPath(url string) (string, bool) {
	path, ok := strings.CutPrefix(url, "https://blob.example.com/")
	return path, ok && path != ""
}

type brokenProfiles struct{}

func (brokenProfiles) UpsertProfile(context.Context, *models.UserProfile) error {
	return errors.New("db down")
}

func (brokenProfiles) GetProfile(context.Context, string) (*models.UserProfile, error) {
	return nil, errors.New("db down")
}

func (brokenProfiles) SaveAPIKeys(context.Context, string, map[models.Provider]string) error {
	return errors.New("db down")
}

type testEnv struct {
	router *gin.Engine
	store  *store.MemoryStore
	gen    *fakeGen
	hub    *events.Hub
	videos *services.VideoService
}

func newTestEnv(t *testing.T, allowedHosts ...string) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := logging.Discard()

	env := &testEnv{
		store: store.NewMemoryStore(),
		gen:   &fakeGen{release: make(chan struct{})},
		hub:   events.NewHub(),
	}
	cfg := &config.Config{SupabaseJWTSecret: testSecret, MaxRequestBodyBytes: testBodyLimit}
	fetcher := fetch.New(allowedHosts, 5*time.Second)

	cards := services.NewCardService(env.store, memBlobs{}, nil, config.ImageStorageBlob, logger)
	env.videos = services.NewVideoService(env.store, memBlobs{}, env.gen, fetcher, env.hub, time.Minute, logger)
	profiles := services.NewProfileService(env.store, logger)

	env.router = NewRouter(cfg, logger, Router{
		Health:   NewHealthHandler(env.store),
		Cards:    NewCardsHandler(cards, logger),
		Generate: NewGenerateHandler(env.gen, logger),
		Video:    NewVideoHandler(env.videos, env.hub, logger),
		Profile:  NewProfileHandler(profiles, logger),
		Download: NewDownloadHandler(fetcher, logger),
	})
	t.Cleanup(func() {
		select {
		case <-env.gen.release:
		default:
			close(env.gen.release)
		}
		env.videos.Wait()
	})
	return env
}

func token(t *testing.T, userID string) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   userID,
		"email": userID + "@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func (e *testEnv) do(t *testing.T, method, path, userID string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("Authorization", "Bearer "+token(t, userID))
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func (e *testEnv) addCard(t *testing.T, userID string, status models.VideoStatus) string {
	t.Helper()
	id, err := e.store.AddCard(context.Background(), userID, &models.Card{
		Name:                  "Pika",
		Game:                  models.GamePokemon,
		ImageURL:              "data:image/png;base64,AAAA",
		VideoGenerationStatus: status,
	})
	require.NoError(t, err)
	return id
}
