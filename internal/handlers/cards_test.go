package handlers

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tcg-card-studio/internal/models"
)

// 1x1 transparent PNG
const pixelPNG = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

func TestCards_SaveListGetDelete(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/cards", "user-1", models.SaveCardRequest{
		Name:        "Pika",
		Game:        "Pokemon",
		ImageBase64: "data:image/png;base64," + pixelPNG,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	saved := decode[models.SaveCardResponse](t, w)
	assert.Equal(t, "https://blob.example.com/users/user-1/cards/Pika.png", saved.Card.ImageURL)
	assert.Equal(t, models.VideoPending, saved.Card.VideoGenerationStatus)

	w = env.do(t, http.MethodGet, "/api/v1/cards", "user-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[models.CardListResponse](t, w)
	require.Len(t, list.Cards, 1)
	assert.Equal(t, saved.CardID, list.Cards[0].ID)

	w = env.do(t, http.MethodGet, "/api/v1/cards/"+saved.CardID, "user-2", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodDelete, "/api/v1/cards/"+saved.CardID, "user-1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/cards/"+saved.CardID, "user-1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCards_EmptyListIsArray(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/v1/cards", "user-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"cards":[]}`, w.Body.String())
}

func TestCards_SaveValidation(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/cards", "user-1", models.SaveCardRequest{Game: "pokemon"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decode[models.ErrorResponse](t, w)
	assert.Equal(t, []string{"imageUrl", "name"}, resp.Fields)
}

func TestCards_BodyUserMismatchForbidden(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/cards", "user-1", models.SaveCardRequest{
		UserID:      "user-2",
		Name:        "Pika",
		Game:        "pokemon",
		ImageBase64: pixelPNG,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	cards, err := env.store.GetCards(t.Context(), "user-2")
	require.NoError(t, err)
	assert.Empty(t, cards)
}

func TestCards_UpdateName(t *testing.T) {
	env := newTestEnv(t)
	id := env.addCard(t, "user-1", models.VideoPending)

	w := env.do(t, http.MethodPatch, "/api/v1/cards/"+id, "user-1", models.UpdateCardRequest{Name: models.StringPtr("Raichu")})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Raichu", decode[models.CardResponse](t, w).Card.Name)
}

func TestCards_RequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/v1/cards", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestPixelFixtureIsPNG(t *testing.T) {
	raw, err := base64.StdEncoding.DecodeString(pixelPNG)
	require.NoError(t, err)
	assert.Equal(t, "\x89PNG", string(raw[:4]))
}

func TestSaveCard_BodyTooLarge(t *testing.T) {
	env := newTestEnv(t)
	huge := strings.Repeat("A", testBodyLimit)

	w := env.do(t, http.MethodPost, "/api/v1/cards", "user-1", models.SaveCardRequest{Name: "Pika", Game: "pokemon", ImageBase64: huge})
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	// no declared length: the cap applies while the body is decoded
	body := `{"name":"Pika","game":"pokemon","imageBase64":"` + huge + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cards", strings.NewReader(body))
	req.ContentLength = -1
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token(t, "user-1"))
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "request body too large", decode[models.ErrorResponse](t, rec).Error)

	cards, err := env.store.GetCards(t.Context(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, cards)
}
