package services

import (
	"context"

	"tcg-card-studio/internal/events"
	"tcg-card-studio/internal/genai"
	"tcg-card-studio/internal/models"
)

// CardStore persists cards. Implementations: supabase.DatabaseClient and
// store.MemoryStore.
type CardStore interface {
	AddCard(ctx context.Context, userID string, card *models.Card) (string, error)
	GetCards(ctx context.Context, userID string) ([]models.Card, error)
	GetCard(ctx context.Context, userID, cardID string) (*models.Card, error)
	UpdateCard(ctx context.Context, userID, cardID string, update models.CardUpdate) error
	DeleteCard(ctx context.Context, userID, cardID string) error
	TransitionVideoStatus(ctx context.Context, userID, cardID string, from []models.VideoStatus, update models.CardUpdate) (bool, error)
}

type ProfileStore interface {
	UpsertProfile(ctx context.Context, profile *models.UserProfile) error
	GetProfile(ctx context.Context, userID string) (*models.UserProfile, error)
	SaveAPIKeys(ctx context.Context, userID string, keys map[models.Provider]string) error
}

// BlobStore holds card images and videos. Implemented by supabase.StorageClient.
type BlobStore interface {
	UploadImage(ctx context.Context, data []byte, userID, name string) (string, error)
	UploadVideo(ctx context.Context, data []byte, userID, name string) (string, error)
	DeleteObject(ctx context.Context, publicURL, userID string) error
	ObjectPath(publicURL string) (string, bool)
}

// VideoGenerator is the part of genai.Gateway the video pipeline uses.
type VideoGenerator interface {
	CheckCredential(ctx context.Context, userID string, provider models.Provider) error
	GenerateVideo(ctx context.Context, userID string, req genai.VideoRequest) ([]byte, error)
}

type Publisher interface {
	Publish(userID string, evt events.VideoEvent) events.VideoEvent
}

// ImageSource loads a card image that lives at a remote URL.
type ImageSource interface {
	Get(ctx context.Context, rawURL string, limit int64) ([]byte, error)
}
