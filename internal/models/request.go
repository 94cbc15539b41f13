package models

import "encoding/json"

// The optional UserID fields below are hints sent by older clients. The acting
// identity always comes from the bearer token; a mismatching hint is rejected.

type GenerateCardRequest struct {
	UserID        string   `json:"userId,omitempty"`
	CharacterName string   `json:"characterName" example:"Pika"`
	CharacterType string   `json:"characterType" example:"Electric"`
	Game          string   `json:"game" example:"pokemon"`
	Rarity        string   `json:"rarity,omitempty" example:"Rare Holo"`
	Set           string   `json:"set,omitempty"`
	Style         string   `json:"style,omitempty" example:"watercolor"`
	Description   string   `json:"description,omitempty"`
	Attacks       []string `json:"attacks,omitempty"`
}

type GenerateFromPhotoRequest struct {
	UserID        string `json:"userId,omitempty"`
	PhotoDataURI  string `json:"photoDataUri"`
	CharacterName string `json:"characterName"`
	Game          string `json:"game"`
	Style         string `json:"style,omitempty"`
	Description   string `json:"description,omitempty"`
}

type ScanCardRequest struct {
	UserID       string `json:"userId,omitempty"`
	PhotoDataURI string `json:"photoDataUri"`
}

type GradeCardRequest struct {
	UserID            string `json:"userId,omitempty"`
	FrontPhotoDataURI string `json:"frontPhotoDataUri"`
	BackPhotoDataURI  string `json:"backPhotoDataUri,omitempty"`
	CardName          string `json:"cardName,omitempty"`
	Game              string `json:"game,omitempty"`
	Set               string `json:"set,omitempty"`
	GradingScale      string `json:"gradingScale" example:"PSA"`
}

type GenerateVideoRequest struct {
	UserID string `json:"userId,omitempty"`
	CardID string `json:"cardId"`
}

// SaveCardRequest persists a generated or scanned card. Exactly one of
// ImageBase64 (raw base64 or a data URL) and ImageURL is expected.
type SaveCardRequest struct {
	UserID                string          `json:"userId,omitempty"`
	Name                  string          `json:"name"`
	Set                   string          `json:"set,omitempty"`
	Rarity                string          `json:"rarity,omitempty"`
	Game                  string          `json:"game"`
	ImageBase64           string          `json:"imageBase64,omitempty"`
	ImageURL              string          `json:"imageUrl,omitempty"`
	IsGenerated           bool            `json:"isGenerated"`
	IsPhotoGenerated      bool            `json:"isPhotoGenerated"`
	Prompt                string          `json:"prompt,omitempty"`
	GenerationParams      json.RawMessage `json:"generationParams,omitempty" swaggertype:"object"`
	PhotoGenerationParams json.RawMessage `json:"photoGenerationParams,omitempty" swaggertype:"object"`
	Details               json.RawMessage `json:"details,omitempty" swaggertype:"object"`
}

// UpdateCardRequest edits metadata or replaces the image. Video fields are
// owned by the video pipeline and cannot be edited here.
type UpdateCardRequest struct {
	UserID                string          `json:"userId,omitempty"`
	Name                  *string         `json:"name,omitempty"`
	Set                   *string         `json:"set,omitempty"`
	Rarity                *string         `json:"rarity,omitempty"`
	Game                  *string         `json:"game,omitempty"`
	ImageBase64           *string         `json:"imageBase64,omitempty"`
	Prompt                *string         `json:"prompt,omitempty"`
	GenerationParams      json.RawMessage `json:"generationParams,omitempty" swaggertype:"object"`
	PhotoGenerationParams json.RawMessage `json:"photoGenerationParams,omitempty" swaggertype:"object"`
	Details               json.RawMessage `json:"details,omitempty" swaggertype:"object"`
}

type UpsertProfileRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName,omitempty"`
	PhotoURL    string `json:"photoURL,omitempty"`
}

// UpdateAPIKeysRequest sets per-provider keys. An empty value removes the key.
type UpdateAPIKeysRequest struct {
	APIKeys map[string]string `json:"apiKeys"`
}
