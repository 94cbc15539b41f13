package genai

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrAPIKeyRequired means neither the user nor the deployment has a key for
// the provider. It is returned before any outbound call.
var ErrAPIKeyRequired = errors.New("api key required")

// CredentialError names the provider that is missing a key.
type CredentialError struct {
	Provider string
}

func (e *CredentialError) Error() string {
	return fmt.Sprintf("%s: no %s key configured", ErrAPIKeyRequired, e.Provider)
}

func (e *CredentialError) Unwrap() error { return ErrAPIKeyRequired }

// ProviderError is a failure reported by the AI provider. Body is kept for
// logs only; clients see UserMessage.
type ProviderError struct {
	StatusCode int
	Message    string
	Body       string
	Blocked    bool
}

func (e *ProviderError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("genai: http %d: %s", e.StatusCode, e.Message)
	}
	return "genai: " + e.Message
}

// UserMessage is a sanitized summary suitable for API responses.
func (e *ProviderError) UserMessage() string {
	switch {
	case e.Blocked:
		return "The AI provider declined this request. Try a different prompt or image."
	case e.StatusCode == http.StatusUnauthorized, e.StatusCode == http.StatusForbidden:
		return "The AI provider rejected the API key. Check the key in your profile."
	case e.StatusCode == http.StatusTooManyRequests:
		return "The AI provider is rate limiting requests. Try again in a minute."
	case e.StatusCode == http.StatusBadRequest:
		return "The AI provider could not process this request."
	case e.StatusCode >= http.StatusInternalServerError:
		return "The AI provider is temporarily unavailable."
	}
	return "The AI provider returned an unexpected response."
}

func newProviderError(status int, body []byte) *ProviderError {
	perr := &ProviderError{
		StatusCode: status,
		Message:    http.StatusText(status),
		Body:       strings.TrimSpace(string(body)),
	}
	var envelope struct {
		Error struct {
			Message string `json:"message"`
			Status  string `json:"status"`
		} `json:"error"`
	}
	if json.Unmarshal(body, &envelope) == nil && envelope.Error.Message != "" {
		perr.Message = envelope.Error.Message
	}
	return perr
}
