package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	// MaxDocumentBytes is the ceiling for a whole card document.
	MaxDocumentBytes = 1 << 20
	// MaxFieldBytes is the ceiling for any single field. Payloads above it
	// must be compressed or moved to blob storage before they reach a store.
	MaxFieldBytes = 800_000
)

// IsDataURL reports whether s carries an inline payload instead of a reference.
func IsDataURL(s string) bool {
	return strings.HasPrefix(strings.TrimSpace(s), "data:")
}

// IsRemoteURL reports whether s is an http(s) reference.
func IsRemoteURL(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.HasPrefix(s, "https://") || strings.HasPrefix(s, "http://")
}

// ValidateDocument checks a full card against the size ceilings before a write.
func ValidateDocument(card *Card) error {
	if err := validateFields(map[string]int{
		"imageUrl":              len(card.ImageURL),
		"videoUrl":              len(card.VideoURL),
		"prompt":                len(card.Prompt),
		"videoPrompt":           len(card.VideoPrompt),
		"generationParams":      len(card.GenerationParams),
		"photoGenerationParams": len(card.PhotoGenerationParams),
		"details":               len(card.Details),
	}); err != nil {
		return err
	}
	if card.VideoURL != "" && !IsRemoteURL(card.VideoURL) {
		return ErrInlineVideo
	}
	encoded, err := json.Marshal(card)
	if err != nil {
		return fmt.Errorf("failed to measure card document: %w", err)
	}
	if len(encoded) > MaxDocumentBytes {
		return fmt.Errorf("%w: %d bytes", ErrDocumentTooLarge, len(encoded))
	}
	return nil
}

// ValidateUpdate applies the per-field ceilings to the fields an update sets.
func ValidateUpdate(update *CardUpdate) error {
	sizes := map[string]int{
		"generationParams":      len(update.GenerationParams),
		"photoGenerationParams": len(update.PhotoGenerationParams),
		"details":               len(update.Details),
	}
	if update.ImageURL != nil {
		sizes["imageUrl"] = len(*update.ImageURL)
	}
	if update.VideoURL != nil {
		sizes["videoUrl"] = len(*update.VideoURL)
		if *update.VideoURL != "" && !IsRemoteURL(*update.VideoURL) {
			return ErrInlineVideo
		}
	}
	if update.Prompt != nil {
		sizes["prompt"] = len(*update.Prompt)
	}
	if update.VideoPrompt != nil {
		sizes["videoPrompt"] = len(*update.VideoPrompt)
	}
	return validateFields(sizes)
}

func validateFields(sizes map[string]int) error {
	for field, size := range sizes {
		if size > MaxFieldBytes {
			return fmt.Errorf("%w: %s is %d bytes", ErrFieldTooLarge, field, size)
		}
	}
	return nil
}
