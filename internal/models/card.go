package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Game identifies one of the supported trading card games.
type Game string

const (
	GamePokemon  Game = "pokemon"
	GameMagic    Game = "magic"
	GameYugioh   Game = "yugioh"
	GameLorcana  Game = "lorcana"
	GameOnePiece Game = "onepiece"
)

var supportedGames = []Game{GamePokemon, GameMagic, GameYugioh, GameLorcana, GameOnePiece}

func SupportedGames() []Game {
	out := make([]Game, len(supportedGames))
	copy(out, supportedGames)
	return out
}

func (g Game) Valid() bool {
	for _, candidate := range supportedGames {
		if g == candidate {
			return true
		}
	}
	return false
}

// ParseGame normalizes user input ("Pokémon" style casing and spacing is tolerated).
func ParseGame(raw string) (Game, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	normalized = strings.NewReplacer(" ", "", "-", "", "_", "").Replace(normalized)
	g := Game(normalized)
	if !g.Valid() {
		return "", fmt.Errorf("unsupported game %q", raw)
	}
	return g, nil
}

// VideoStatus is the lifecycle state of a card's generated video.
// The zero value is not used; an unset status is VideoPending.
type VideoStatus string

const (
	VideoPending    VideoStatus = "pending"
	VideoGenerating VideoStatus = "generating"
	VideoCompleted  VideoStatus = "completed"
	VideoFailed     VideoStatus = "failed"
)

// ParseVideoStatus maps stored values to the closed enum. Empty means pending.
func ParseVideoStatus(raw string) (VideoStatus, error) {
	switch VideoStatus(strings.TrimSpace(raw)) {
	case "", VideoPending:
		return VideoPending, nil
	case VideoGenerating:
		return VideoGenerating, nil
	case VideoCompleted:
		return VideoCompleted, nil
	case VideoFailed:
		return VideoFailed, nil
	}
	return "", fmt.Errorf("unknown video generation status %q", raw)
}

// Terminal reports whether a poller can stop watching a card in this state.
func (s VideoStatus) Terminal() bool {
	return s == VideoCompleted || s == VideoFailed
}

// CanRequest reports whether a new generation may start from this state.
func (s VideoStatus) CanRequest() bool {
	return s == VideoPending || s == VideoFailed || s == ""
}

// Card is a single card in a user's collection.
type Card struct {
	ID                    string          `json:"id"`
	UserID                string          `json:"userId"`
	Name                  string          `json:"name"`
	Set                   string          `json:"set,omitempty"`
	Rarity                string          `json:"rarity,omitempty"`
	Game                  Game            `json:"game"`
	ImageURL              string          `json:"imageUrl"`
	VideoURL              string          `json:"videoUrl,omitempty"`
	IsGenerated           bool            `json:"isGenerated"`
	IsPhotoGenerated      bool            `json:"isPhotoGenerated"`
	Prompt                string          `json:"prompt,omitempty"`
	GenerationParams      json.RawMessage `json:"generationParams,omitempty" swaggertype:"object"`
	PhotoGenerationParams json.RawMessage `json:"photoGenerationParams,omitempty" swaggertype:"object"`
	Details               json.RawMessage `json:"details,omitempty" swaggertype:"object"`
	VideoGenerationStatus VideoStatus     `json:"videoGenerationStatus"`
	VideoPrompt           string          `json:"videoPrompt,omitempty"`
	CreatedAt             time.Time       `json:"createdAt"`
	UpdatedAt             time.Time       `json:"updatedAt"`
}

// CheckVideoInvariant verifies that a video URL is present exactly when the
// status is completed.
func (c *Card) CheckVideoInvariant() error {
	status := c.VideoGenerationStatus
	if status == "" {
		status = VideoPending
	}
	if c.VideoURL != "" && status != VideoCompleted {
		return ErrVideoURLWithoutCompletion
	}
	if status == VideoCompleted && c.VideoURL == "" {
		return ErrCompletedWithoutVideoURL
	}
	return nil
}

// CardUpdate is a partial update. Nil fields are left untouched. Owner and
// creation time are deliberately absent so they can never be changed.
type CardUpdate struct {
	Name                  *string
	Set                   *string
	Rarity                *string
	Game                  *Game
	ImageURL              *string
	VideoURL              *string
	IsGenerated           *bool
	IsPhotoGenerated      *bool
	Prompt                *string
	GenerationParams      json.RawMessage
	PhotoGenerationParams json.RawMessage
	Details               json.RawMessage
	VideoGenerationStatus *VideoStatus
	VideoPrompt           *string
}

// Normalize enforces the video URL invariant on the update itself: any
// non-completed status clears the URL, and a URL can only be written together
// with the completed status.
func (u *CardUpdate) Normalize() error {
	if u.VideoURL != nil && *u.VideoURL != "" {
		if u.VideoGenerationStatus == nil || *u.VideoGenerationStatus != VideoCompleted {
			return ErrVideoURLWithoutCompletion
		}
	}
	if u.VideoGenerationStatus != nil {
		if *u.VideoGenerationStatus == VideoCompleted {
			if u.VideoURL == nil || *u.VideoURL == "" {
				return ErrCompletedWithoutVideoURL
			}
		} else {
			u.VideoURL = StringPtr("")
		}
	}
	return nil
}

// Apply copies the set fields of the update onto card.
func (u *CardUpdate) Apply(card *Card) {
	if u.Name != nil {
		card.Name = *u.Name
	}
	if u.Set != nil {
		card.Set = *u.Set
	}
	if u.Rarity != nil {
		card.Rarity = *u.Rarity
	}
	if u.Game != nil {
		card.Game = *u.Game
	}
	if u.ImageURL != nil {
		card.ImageURL = *u.ImageURL
	}
	if u.VideoURL != nil {
		card.VideoURL = *u.VideoURL
	}
	if u.IsGenerated != nil {
		card.IsGenerated = *u.IsGenerated
	}
	if u.IsPhotoGenerated != nil {
		card.IsPhotoGenerated = *u.IsPhotoGenerated
	}
	if u.Prompt != nil {
		card.Prompt = *u.Prompt
	}
	if u.GenerationParams != nil {
		card.GenerationParams = u.GenerationParams
	}
	if u.PhotoGenerationParams != nil {
		card.PhotoGenerationParams = u.PhotoGenerationParams
	}
	if u.Details != nil {
		card.Details = u.Details
	}
	if u.VideoGenerationStatus != nil {
		card.VideoGenerationStatus = *u.VideoGenerationStatus
	}
	if u.VideoPrompt != nil {
		card.VideoPrompt = *u.VideoPrompt
	}
}

func StringPtr(s string) *string { return &s }

func BoolPtr(b bool) *bool { return &b }

func StatusPtr(s VideoStatus) *VideoStatus { return &s }
