package supabase

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tcg-card-studio/internal/models"
)

const testCardID = "6f1c2a84-8a47-4a53-9a57-4b1d0a8c2f10"

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newMockDB(t *testing.T) (*DatabaseClient, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	client := NewDatabaseClient(db)
	client.now = func() time.Time { return fixedNow }
	return client, mock
}

func cardRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "name", "set_name", "rarity", "game", "image_url", "video_url",
		"is_generated", "is_photo_generated", "prompt", "generation_params", "photo_generation_params",
		"details", "video_generation_status", "video_prompt", "created_at", "updated_at",
	})
}

func TestAddCard_BlankUserRejectedBeforeWrite(t *testing.T) {
	client, mock := newMockDB(t)

	_, err := client.AddCard(context.Background(), "  ", &models.Card{Name: "Pika"})
	assert.ErrorIs(t, err, models.ErrMissingUserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddCard_Inserts(t *testing.T) {
	client, mock := newMockDB(t)

	mock.ExpectExec("INSERT INTO pokemon_cards").
		WithArgs(sqlmock.AnyArg(), "user-1", "Pika", "Base", "Rare", "pokemon", "https://x/p.png",
			nil, true, false, "a yellow mouse", []byte(`{"style":"anime"}`), nil, nil,
			"pending", "", fixedNow, fixedNow).
		WillReturnResult(sqlmock.NewResult(1, 1))

	card := &models.Card{
		Name:             "Pika",
		Set:              "Base",
		Rarity:           "Rare",
		Game:             models.GamePokemon,
		ImageURL:         "https://x/p.png",
		IsGenerated:      true,
		Prompt:           "a yellow mouse",
		GenerationParams: json.RawMessage(`{"style":"anime"}`),
	}
	id, err := client.AddCard(context.Background(), "user-1", card)
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, id, card.ID)
	assert.Equal(t, models.VideoPending, card.VideoGenerationStatus)
	assert.Equal(t, fixedNow, card.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddCard_OversizeRejectedBeforeWrite(t *testing.T) {
	client, mock := newMockDB(t)

	card := &models.Card{Name: "Pika", ImageURL: "data:image/png;base64," + string(make([]byte, models.MaxFieldBytes))}
	_, err := client.AddCard(context.Background(), "user-1", card)
	assert.ErrorIs(t, err, models.ErrFieldTooLarge)
	assert.Empty(t, card.ID)
	assert.Empty(t, card.UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddCard_FailedInsertLeavesCardUntouched(t *testing.T) {
	client, mock := newMockDB(t)
	mock.ExpectExec("INSERT INTO pokemon_cards").WillReturnError(errors.New("connection reset"))

	card := &models.Card{Name: "Pika", Game: models.GamePokemon, ImageURL: "https://x/p.png"}
	_, err := client.AddCard(context.Background(), "user-1", card)
	assert.ErrorContains(t, err, "failed to create card")
	assert.Empty(t, card.ID)
	assert.Empty(t, card.VideoGenerationStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCards_OrderedByUpdatedAt(t *testing.T) {
	client, mock := newMockDB(t)

	older := fixedNow.Add(-time.Hour)
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY updated_at DESC, id")).
		WithArgs("user-1").
		WillReturnRows(cardRows().
			AddRow("b", "user-1", "Newer", "", "", "magic", "https://x/b.png", "https://x/b.mp4",
				false, true, "", nil, []byte(`{"style":"oil"}`), nil, "completed", "spin", older, fixedNow).
			AddRow("a", "user-1", "Older", "", "", "pokemon", "https://x/a.png", nil,
				true, false, "", nil, nil, []byte(`{"hp":"60"}`), "", "", older, older))

	cards, err := client.GetCards(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, "b", cards[0].ID)
	assert.Equal(t, models.VideoCompleted, cards[0].VideoGenerationStatus)
	assert.Equal(t, "https://x/b.mp4", cards[0].VideoURL)
	assert.JSONEq(t, `{"style":"oil"}`, string(cards[0].PhotoGenerationParams))
	assert.Equal(t, models.VideoPending, cards[1].VideoGenerationStatus)
	assert.Empty(t, cards[1].VideoURL)
	assert.JSONEq(t, `{"hp":"60"}`, string(cards[1].Details))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCard_NotFound(t *testing.T) {
	client, mock := newMockDB(t)

	mock.ExpectQuery("FROM pokemon_cards").
		WithArgs(testCardID, "user-1").
		WillReturnError(sql.ErrNoRows)

	_, err := client.GetCard(context.Background(), "user-1", testCardID)
	assert.ErrorIs(t, err, models.ErrCardNotFound)

	_, err = client.GetCard(context.Background(), "user-1", "not-a-uuid")
	assert.ErrorIs(t, err, models.ErrCardNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateCard_RefreshesUpdatedAt(t *testing.T) {
	client, mock := newMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE pokemon_cards SET name = $1, updated_at = $2 WHERE id = $3 AND user_id = $4")).
		WithArgs("Raichu", fixedNow, testCardID, "user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := client.UpdateCard(context.Background(), "user-1", testCardID, models.CardUpdate{Name: models.StringPtr("Raichu")})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateCard_NoRowIsNotFound(t *testing.T) {
	client, mock := newMockDB(t)

	mock.ExpectExec("UPDATE pokemon_cards").WillReturnResult(sqlmock.NewResult(0, 0))

	err := client.UpdateCard(context.Background(), "user-2", testCardID, models.CardUpdate{Name: models.StringPtr("x")})
	assert.ErrorIs(t, err, models.ErrCardNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateCard_NonCompletedStatusClearsURL(t *testing.T) {
	client, mock := newMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta("SET video_generation_status = $1, video_url = $2, updated_at = $3")).
		WithArgs("failed", nil, fixedNow, testCardID, "user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := client.UpdateCard(context.Background(), "user-1", testCardID, models.CardUpdate{
		VideoGenerationStatus: models.StatusPtr(models.VideoFailed),
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateCard_RejectsURLWithoutCompleted(t *testing.T) {
	client, mock := newMockDB(t)

	err := client.UpdateCard(context.Background(), "user-1", testCardID, models.CardUpdate{
		VideoURL: models.StringPtr("https://x/v.mp4"),
	})
	assert.ErrorIs(t, err, models.ErrVideoURLWithoutCompletion)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransitionVideoStatus(t *testing.T) {
	client, mock := newMockDB(t)
	query := regexp.QuoteMeta("AND video_generation_status = ANY($7)")

	mock.ExpectExec(query).
		WithArgs("generating", nil, "make it sparkle", fixedNow, testCardID, "user-1",
			pq.Array([]string{"pending", "failed"})).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(query).WillReturnResult(sqlmock.NewResult(0, 0))

	update := models.CardUpdate{
		VideoGenerationStatus: models.StatusPtr(models.VideoGenerating),
		VideoPrompt:           models.StringPtr("make it sparkle"),
	}
	from := []models.VideoStatus{models.VideoPending, models.VideoFailed}

	ok, err := client.TransitionVideoStatus(context.Background(), "user-1", testCardID, from, update)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = client.TransitionVideoStatus(context.Background(), "user-1", testCardID, from, update)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteCard_Idempotent(t *testing.T) {
	client, mock := newMockDB(t)

	mock.ExpectExec("DELETE FROM pokemon_cards").
		WithArgs(testCardID, "user-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, client.DeleteCard(context.Background(), "user-1", testCardID))
	require.NoError(t, client.DeleteCard(context.Background(), "user-1", "not-a-uuid"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteCard_WrapsDriverError(t *testing.T) {
	client, mock := newMockDB(t)
	boom := errors.New("connection reset")

	mock.ExpectExec("DELETE FROM pokemon_cards").WillReturnError(boom)

	err := client.DeleteCard(context.Background(), "user-1", testCardID)
	assert.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "failed to delete card")
}
