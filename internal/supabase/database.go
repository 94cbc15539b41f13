package supabase

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"tcg-card-studio/internal/models"
)

const cardColumns = `id, user_id, name, set_name, rarity, game, image_url, video_url,
	is_generated, is_photo_generated, prompt, generation_params, photo_generation_params,
	details, video_generation_status, video_prompt, created_at, updated_at`

// DatabaseClient is the Postgres card store. Every query is scoped by owner.
type DatabaseClient struct {
	db  *sql.DB
	now func() time.Time
}

func NewDatabaseClient(db *sql.DB) *DatabaseClient {
	return &DatabaseClient{db: db, now: func() time.Time { return time.Now().UTC() }}
}

func (d *DatabaseClient) Ping(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

func (d *DatabaseClient) Close() error {
	return d.db.Close()
}

func (d *DatabaseClient) AddCard(ctx context.Context, userID string, card *models.Card) (string, error) {
	if strings.TrimSpace(userID) == "" {
		return "", models.ErrMissingUserID
	}

	// The caller's card only receives the stored values once the write succeeds.
	now := d.now()
	row := *card
	row.ID = uuid.NewString()
	row.UserID = userID
	row.CreatedAt = now
	row.UpdatedAt = now
	if row.VideoGenerationStatus == "" {
		row.VideoGenerationStatus = models.VideoPending
	}
	if err := row.CheckVideoInvariant(); err != nil {
		return "", err
	}
	if err := models.ValidateDocument(&row); err != nil {
		return "", err
	}

	_, err := d.db.ExecContext(ctx, `
		INSERT INTO pokemon_cards (`+cardColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`, row.ID, row.UserID, row.Name, row.Set, row.Rarity, string(row.Game), row.ImageURL,
		nullString(row.VideoURL), row.IsGenerated, row.IsPhotoGenerated, row.Prompt,
		nullJSON(row.GenerationParams), nullJSON(row.PhotoGenerationParams), nullJSON(row.Details),
		string(row.VideoGenerationStatus), row.VideoPrompt, row.CreatedAt, row.UpdatedAt)
	if err != nil {
		return "", fmt.Errorf("failed to create card: %w", err)
	}

	*card = row
	return row.ID, nil
}

func (d *DatabaseClient) GetCards(ctx context.Context, userID string) ([]models.Card, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, models.ErrMissingUserID
	}

	rows, err := d.db.QueryContext(ctx, `
		SELECT `+cardColumns+`
		FROM pokemon_cards
		WHERE user_id = $1
		ORDER BY updated_at DESC, id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	defer rows.Close()

	cards := []models.Card{}
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		cards = append(cards, *card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}

	return cards, nil
}

func (d *DatabaseClient) GetCard(ctx context.Context, userID, cardID string) (*models.Card, error) {
	if err := checkIDs(userID, cardID); err != nil {
		return nil, err
	}
	if _, err := uuid.Parse(cardID); err != nil {
		return nil, models.ErrCardNotFound
	}

	card, err := scanCard(d.db.QueryRowContext(ctx, `
		SELECT `+cardColumns+`
		FROM pokemon_cards
		WHERE id = $1 AND user_id = $2
	`, cardID, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrCardNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get card: %w", err)
	}

	return card, nil
}

// UpdateCard applies a partial update and refreshes updated_at. Owner and
// creation time are not part of CardUpdate and never change.
func (d *DatabaseClient) UpdateCard(ctx context.Context, userID, cardID string, update models.CardUpdate) error {
	if err := checkIDs(userID, cardID); err != nil {
		return err
	}
	if _, err := uuid.Parse(cardID); err != nil {
		return models.ErrCardNotFound
	}
	if err := update.Normalize(); err != nil {
		return err
	}
	if err := models.ValidateUpdate(&update); err != nil {
		return err
	}

	sets, args := d.setClause(update)
	args = append(args, cardID, userID)
	query := fmt.Sprintf(`UPDATE pokemon_cards SET %s WHERE id = $%d AND user_id = $%d`,
		strings.Join(sets, ", "), len(args)-1, len(args))

	result, err := d.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update card: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update card: %w", err)
	}
	if affected == 0 {
		return models.ErrCardNotFound
	}
	return nil
}

// TransitionVideoStatus applies update only while the stored status is one of
// from. It reports whether the row was changed; false means another writer got
// there first or the card is gone.
func (d *DatabaseClient) TransitionVideoStatus(ctx context.Context, userID, cardID string, from []models.VideoStatus, update models.CardUpdate) (bool, error) {
	if err := checkIDs(userID, cardID); err != nil {
		return false, err
	}
	if _, err := uuid.Parse(cardID); err != nil {
		return false, models.ErrCardNotFound
	}
	if err := update.Normalize(); err != nil {
		return false, err
	}
	if err := models.ValidateUpdate(&update); err != nil {
		return false, err
	}

	states := make([]string, len(from))
	for i, s := range from {
		states[i] = string(s)
	}

	sets, args := d.setClause(update)
	args = append(args, cardID, userID, pq.Array(states))
	query := fmt.Sprintf(`UPDATE pokemon_cards SET %s WHERE id = $%d AND user_id = $%d AND video_generation_status = ANY($%d)`,
		strings.Join(sets, ", "), len(args)-2, len(args)-1, len(args))

	result, err := d.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to transition video status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to transition video status: %w", err)
	}
	return affected > 0, nil
}

// DeleteCard is a hard delete. Deleting a missing card is not an error.
func (d *DatabaseClient) DeleteCard(ctx context.Context, userID, cardID string) error {
	if err := checkIDs(userID, cardID); err != nil {
		return err
	}
	if _, err := uuid.Parse(cardID); err != nil {
		return nil
	}

	_, err := d.db.ExecContext(ctx, `
		DELETE FROM pokemon_cards
		WHERE id = $1 AND user_id = $2
	`, cardID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete card: %w", err)
	}
	return nil
}

func (d *DatabaseClient) setClause(u models.CardUpdate) ([]string, []any) {
	var sets []string
	var args []any
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if u.Name != nil {
		add("name", *u.Name)
	}
	if u.Set != nil {
		add("set_name", *u.Set)
	}
	if u.Rarity != nil {
		add("rarity", *u.Rarity)
	}
	if u.Game != nil {
		add("game", string(*u.Game))
	}
	if u.ImageURL != nil {
		add("image_url", *u.ImageURL)
	}
	if u.IsGenerated != nil {
		add("is_generated", *u.IsGenerated)
	}
	if u.IsPhotoGenerated != nil {
		add("is_photo_generated", *u.IsPhotoGenerated)
	}
	if u.Prompt != nil {
		add("prompt", *u.Prompt)
	}
	if u.GenerationParams != nil {
		add("generation_params", nullJSON(u.GenerationParams))
	}
	if u.PhotoGenerationParams != nil {
		add("photo_generation_params", nullJSON(u.PhotoGenerationParams))
	}
	if u.Details != nil {
		add("details", nullJSON(u.Details))
	}
	if u.VideoGenerationStatus != nil {
		add("video_generation_status", string(*u.VideoGenerationStatus))
	}
	if u.VideoURL != nil {
		add("video_url", nullString(*u.VideoURL))
	}
	if u.VideoPrompt != nil {
		add("video_prompt", *u.VideoPrompt)
	}
	add("updated_at", d.now())

	return sets, args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCard(row rowScanner) (*models.Card, error) {
	var (
		card        models.Card
		game        string
		videoURL    sql.NullString
		genParams   []byte
		photoParams []byte
		details     []byte
		status      string
	)
	err := row.Scan(
		&card.ID, &card.UserID, &card.Name, &card.Set, &card.Rarity, &game, &card.ImageURL, &videoURL,
		&card.IsGenerated, &card.IsPhotoGenerated, &card.Prompt, &genParams, &photoParams,
		&details, &status, &card.VideoPrompt, &card.CreatedAt, &card.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	card.Game = models.Game(game)
	card.VideoURL = videoURL.String
	card.GenerationParams = rawJSON(genParams)
	card.PhotoGenerationParams = rawJSON(photoParams)
	card.Details = rawJSON(details)
	if card.VideoGenerationStatus, err = models.ParseVideoStatus(status); err != nil {
		return nil, err
	}
	return &card, nil
}

func checkIDs(userID, cardID string) error {
	if strings.TrimSpace(userID) == "" {
		return models.ErrMissingUserID
	}
	if strings.TrimSpace(cardID) == "" {
		return models.ErrMissingCardID
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullJSON(raw json.RawMessage) any {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return []byte(raw)
}

func rawJSON(b []byte) json.RawMessage {
	if len(b) == 0 {
		return nil
	}
	return json.RawMessage(b)
}
