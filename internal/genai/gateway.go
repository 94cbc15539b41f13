package genai

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"tcg-card-studio/internal/imaging"
	"tcg-card-studio/internal/models"
)

const (
	// Photos above this are downscaled before they are sent to the provider.
	maxUploadPhotoBytes = 4 << 20
	videoDurationSecs   = 5
)

var gradingScales = map[string]bool{"PSA": true, "BGS": true, "CGC": true}

type ModelConfig struct {
	Image  string
	Vision string
	Video  string
}

// Gateway runs the AI flows. It never persists anything; callers decide what
// to store.
type Gateway struct {
	client *Client
	creds  *CredentialResolver
	models ModelConfig
	logger *slog.Logger
}

func NewGateway(client *Client, creds *CredentialResolver, models ModelConfig, logger *slog.Logger) *Gateway {
	return &Gateway{client: client, creds: creds, models: models, logger: logger}
}

type CardParams struct {
	CharacterName string
	CharacterType string
	Game          models.Game
	Rarity        string
	Set           string
	Style         string
	Description   string
	Attacks       []string
}

type PhotoParams struct {
	PhotoDataURI  string
	CharacterName string
	Game          models.Game
	Style         string
	Description   string
}

type GradeParams struct {
	FrontPhotoDataURI string
	BackPhotoDataURI  string
	CardName          string
	Game              string
	Set               string
	GradingScale      string
}

type VideoRequest struct {
	CardName string
	Prompt   string
	// Image is the card artwork; when empty the video is generated from the
	// prompt alone.
	Image []byte
}

// ImageResult carries a generated image as a data URL plus the prompt used.
type ImageResult struct {
	ImageBase64 string
	Prompt      string
}

// CheckCredential fails fast when no key is available for provider.
func (g *Gateway) CheckCredential(ctx context.Context, userID string, provider models.Provider) error {
	_, err := g.creds.Resolve(ctx, userID, provider)
	return err
}

func (g *Gateway) GenerateCard(ctx context.Context, userID string, p CardParams) (*ImageResult, error) {
	if err := models.RequireFields(map[string]string{
		"characterName": p.CharacterName,
		"game":          string(p.Game),
	}); err != nil {
		return nil, err
	}
	if !p.Game.Valid() {
		return nil, &models.ValidationError{Fields: []string{"game"}}
	}
	apiKey, err := g.creds.Resolve(ctx, userID, models.ProviderImage)
	if err != nil {
		return nil, err
	}

	prompt := cardPrompt(p)
	image, err := g.generateImage(ctx, apiKey, []Part{TextPart(prompt)})
	if err != nil {
		return nil, fmt.Errorf("generate card: %w", err)
	}
	return &ImageResult{ImageBase64: image, Prompt: prompt}, nil
}

func (g *Gateway) GenerateCardFromPhoto(ctx context.Context, userID string, p PhotoParams) (*ImageResult, error) {
	if err := models.RequireFields(map[string]string{
		"photoDataUri":  p.PhotoDataURI,
		"characterName": p.CharacterName,
		"game":          string(p.Game),
	}); err != nil {
		return nil, err
	}
	if !p.Game.Valid() {
		return nil, &models.ValidationError{Fields: []string{"game"}}
	}
	photo, err := photoPart(p.PhotoDataURI)
	if err != nil {
		return nil, &models.ValidationError{Fields: []string{"photoDataUri"}}
	}
	apiKey, err := g.creds.Resolve(ctx, userID, models.ProviderImage)
	if err != nil {
		return nil, err
	}

	prompt := photoCardPrompt(p)
	image, err := g.generateImage(ctx, apiKey, []Part{photo, TextPart(prompt)})
	if err != nil {
		return nil, fmt.Errorf("generate card from photo: %w", err)
	}
	return &ImageResult{ImageBase64: image, Prompt: prompt}, nil
}

func (g *Gateway) ScanCard(ctx context.Context, userID, photoDataURI string) (*models.CardDetails, error) {
	if err := models.RequireFields(map[string]string{"photoDataUri": photoDataURI}); err != nil {
		return nil, err
	}
	photo, err := photoPart(photoDataURI)
	if err != nil {
		return nil, &models.ValidationError{Fields: []string{"photoDataUri"}}
	}
	apiKey, err := g.creds.Resolve(ctx, userID, models.ProviderVision)
	if err != nil {
		return nil, err
	}

	var details models.CardDetails
	if err := g.generateJSON(ctx, apiKey, []Part{photo, TextPart(scanPrompt)}, &details); err != nil {
		return nil, fmt.Errorf("scan card: %w", err)
	}
	details.Name = strings.TrimSpace(details.Name)
	if details.Name == "" {
		return nil, &ProviderError{Message: "could not identify a card in the photo"}
	}
	if game, err := models.ParseGame(details.Game); err == nil {
		details.Game = string(game)
	} else {
		details.Game = ""
	}
	return &details, nil
}

func (g *Gateway) GradeCard(ctx context.Context, userID string, p GradeParams) (*models.GradingResult, error) {
	if err := models.RequireFields(map[string]string{
		"frontPhotoDataUri": p.FrontPhotoDataURI,
		"gradingScale":      p.GradingScale,
	}); err != nil {
		return nil, err
	}
	scale, ok := ParseGradingScale(p.GradingScale)
	if !ok {
		return nil, &models.ValidationError{Fields: []string{"gradingScale"}}
	}
	p.GradingScale = scale
	front, err := photoPart(p.FrontPhotoDataURI)
	if err != nil {
		return nil, &models.ValidationError{Fields: []string{"frontPhotoDataUri"}}
	}
	parts := []Part{front}
	if p.BackPhotoDataURI != "" {
		back, err := photoPart(p.BackPhotoDataURI)
		if err != nil {
			return nil, &models.ValidationError{Fields: []string{"backPhotoDataUri"}}
		}
		parts = append(parts, back)
	}
	apiKey, err := g.creds.Resolve(ctx, userID, models.ProviderVision)
	if err != nil {
		return nil, err
	}

	var result models.GradingResult
	if err := g.generateJSON(ctx, apiKey, append(parts, TextPart(gradePrompt(p))), &result); err != nil {
		return nil, fmt.Errorf("grade card: %w", err)
	}
	result.GradingScale = p.GradingScale
	result.OverallGrade = clampGrade(result.OverallGrade)
	for i := range result.Categories {
		result.Categories[i].Score = clampGrade(result.Categories[i].Score)
	}
	if result.Categories == nil {
		result.Categories = []models.GradingCategory{}
	}
	return &result, nil
}

// GenerateVideo runs the long-running video operation to completion and
// returns the rendered bytes. ctx bounds the whole wait.
func (g *Gateway) GenerateVideo(ctx context.Context, userID string, req VideoRequest) ([]byte, error) {
	apiKey, err := g.creds.Resolve(ctx, userID, models.ProviderVideo)
	if err != nil {
		return nil, err
	}

	instance := VideoInstance{Prompt: req.Prompt}
	if len(req.Image) > 0 {
		mime := imaging.MimeType(req.Image)
		if mime == "application/octet-stream" {
			g.logger.Warn("card image type not recognised, generating video from prompt only", "card", req.CardName)
		} else {
			instance.Image = &VideoImage{
				BytesBase64Encoded: base64.StdEncoding.EncodeToString(req.Image),
				MimeType:           mime,
			}
		}
	}

	name, err := g.client.StartVideo(ctx, apiKey, g.models.Video, instance, VideoParameters{
		AspectRatio:     "9:16",
		DurationSeconds: videoDurationSecs,
		SampleCount:     1,
	})
	if err != nil {
		return nil, fmt.Errorf("start video: %w", err)
	}
	g.logger.Info("video operation started", "operation", name)

	data, err := g.client.WaitVideo(ctx, apiKey, name)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &ProviderError{Message: "video generation timed out"}
		}
		return nil, fmt.Errorf("wait for video: %w", err)
	}
	return data, nil
}

func (g *Gateway) generateImage(ctx context.Context, apiKey string, parts []Part) (string, error) {
	content, err := g.client.GenerateContent(ctx, apiKey, g.models.Image, parts, &GenerationConfig{
		ResponseModalities: []string{"TEXT", "IMAGE"},
	})
	if err != nil {
		return "", err
	}
	for _, part := range content.Parts {
		if part.InlineData != nil && part.InlineData.Data != "" {
			mime := part.InlineData.MimeType
			if mime == "" {
				mime = "image/png"
			}
			return "data:" + mime + ";base64," + part.InlineData.Data, nil
		}
	}
	return "", &ProviderError{Message: "provider returned no image"}
}

func (g *Gateway) generateJSON(ctx context.Context, apiKey string, parts []Part, target any) error {
	temperature := 0.2
	content, err := g.client.GenerateContent(ctx, apiKey, g.models.Vision, parts, &GenerationConfig{
		ResponseMimeType: "application/json",
		Temperature:      &temperature,
	})
	if err != nil {
		return err
	}
	var text strings.Builder
	for _, part := range content.Parts {
		text.WriteString(part.Text)
	}
	if err := DecodeJSON(text.String(), target); err != nil {
		return &ProviderError{Message: "provider returned malformed JSON", Body: text.String()}
	}
	return nil
}

// ValidatePhoto reports whether photo is a recognised image within the pixel
// budget. Only the image header is read.
func ValidatePhoto(photo string) error {
	_, _, err := decodePhoto(photo)
	return err
}

// ParseGradingScale normalizes a grading scale name. Only PSA, BGS and CGC
// are accepted.
func ParseGradingScale(raw string) (string, bool) {
	scale := strings.ToUpper(strings.TrimSpace(raw))
	return scale, gradingScales[scale]
}

// photoPart decodes a client photo (data URL or base64) into a request part,
// downscaling very large photos first.
func photoPart(photo string) (Part, error) {
	raw, mime, err := decodePhoto(photo)
	if err != nil {
		return Part{}, err
	}
	if len(raw) > maxUploadPhotoBytes {
		if smaller, err := imaging.Compress(raw, 1536, 1536, 0.85); err == nil {
			raw, mime = smaller, "image/jpeg"
		}
	}
	return ImagePart(mime, raw), nil
}

func decodePhoto(photo string) ([]byte, string, error) {
	raw, _, err := imaging.DecodeImagePayload([]byte(photo))
	if err != nil {
		return nil, "", err
	}
	mime := imaging.MimeType(raw)
	if mime == "application/octet-stream" {
		return nil, "", imaging.ErrInvalidDataURL
	}
	if err := imaging.CheckDimensions(raw); err != nil {
		return nil, "", err
	}
	return raw, mime, nil
}

func clampGrade(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(1, math.Min(10, math.Round(v*2)/2))
}
