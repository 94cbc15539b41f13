package models

import "time"

type ErrorResponse struct {
	Error   string   `json:"error"`
	Message string   `json:"message,omitempty"`
	Code    string   `json:"code,omitempty"`
	Fields  []string `json:"fields,omitempty"`
}

type GenerateImageResponse struct {
	ImageBase64 string `json:"imageBase64"`
	Prompt      string `json:"prompt"`
}

type ScanCardResponse struct {
	CardDetails CardDetails `json:"cardDetails"`
}

// CardDetails is what the vision model reads off a physical card.
type CardDetails struct {
	Name        string   `json:"name"`
	Set         string   `json:"set,omitempty"`
	Rarity      string   `json:"rarity,omitempty"`
	Game        string   `json:"game,omitempty"`
	Number      string   `json:"number,omitempty"`
	HP          string   `json:"hp,omitempty"`
	Types       []string `json:"types,omitempty"`
	Attacks     []string `json:"attacks,omitempty"`
	Description string   `json:"description,omitempty"`
}

type GradeCardResponse struct {
	GradingResult GradingResult `json:"gradingResult"`
}

type GradingCategory struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
	Notes string  `json:"notes,omitempty"`
}

type GradingResult struct {
	GradingScale    string            `json:"gradingScale"`
	OverallGrade    float64           `json:"overallGrade"`
	GradeLabel      string            `json:"gradeLabel,omitempty"`
	Categories      []GradingCategory `json:"categories"`
	Recommendations []string          `json:"recommendations,omitempty"`
	Summary         string            `json:"summary,omitempty"`
}

type GenerateVideoResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Card    *Card  `json:"card,omitempty"`
}

type CardListResponse struct {
	Cards []Card `json:"cards"`
}

type CardResponse struct {
	Card Card `json:"card"`
}

type SaveCardResponse struct {
	CardID string `json:"cardId"`
	Card   Card   `json:"card"`
}

type VideoStatusResponse struct {
	CardID    string      `json:"cardId"`
	Status    VideoStatus `json:"videoGenerationStatus"`
	VideoURL  string      `json:"videoUrl,omitempty"`
	Terminal  bool        `json:"terminal"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

type ProfileResponse struct {
	ID                  string   `json:"id"`
	Email               string   `json:"email"`
	DisplayName         string   `json:"displayName,omitempty"`
	PhotoURL            string   `json:"photoURL,omitempty"`
	ConfiguredProviders []string `json:"configuredProviders"`
}

type SignInResponse struct {
	Profile      *ProfileResponse `json:"profile,omitempty"`
	ProfileSaved bool             `json:"profileSaved"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

func NewProfileResponse(p *UserProfile) *ProfileResponse {
	return &ProfileResponse{
		ID:                  p.ID,
		Email:               p.Email,
		DisplayName:         p.DisplayName,
		PhotoURL:            p.PhotoURL,
		ConfiguredProviders: p.ConfiguredProviders(),
	}
}
