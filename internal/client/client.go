// Package client is a typed client for the card studio API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tcg-card-studio/internal/models"
)

// APIError is a non-2xx response decoded from models.ErrorResponse.
type APIError struct {
	StatusCode int
	Response   models.ErrorResponse
}

func (e *APIError) Error() string {
	msg := e.Response.Error
	if e.Response.Message != "" {
		msg += ": " + e.Response.Message
	}
	return fmt.Sprintf("api: http %d: %s", e.StatusCode, msg)
}

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// New returns a client for the API rooted at baseURL (for example
// http://localhost:8080/api/v1) authenticating with a bearer token.
func New(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) ListCards(ctx context.Context) ([]models.Card, error) {
	var out models.CardListResponse
	if err := c.do(ctx, http.MethodGet, "/cards", nil, &out); err != nil {
		return nil, err
	}
	return out.Cards, nil
}

func (c *Client) GetCard(ctx context.Context, cardID string) (*models.Card, error) {
	var out models.CardResponse
	if err := c.do(ctx, http.MethodGet, "/cards/"+url.PathEscape(cardID), nil, &out); err != nil {
		return nil, err
	}
	return &out.Card, nil
}

func (c *Client) SaveCard(ctx context.Context, req *models.SaveCardRequest) (*models.Card, error) {
	var out models.SaveCardResponse
	if err := c.do(ctx, http.MethodPost, "/cards", req, &out); err != nil {
		return nil, err
	}
	return &out.Card, nil
}

func (c *Client) DeleteCard(ctx context.Context, cardID string) error {
	return c.do(ctx, http.MethodDelete, "/cards/"+url.PathEscape(cardID), nil, nil)
}

func (c *Client) GenerateVideo(ctx context.Context, cardID string) (*models.GenerateVideoResponse, error) {
	var out models.GenerateVideoResponse
	if err := c.do(ctx, http.MethodPost, "/generate-video", models.GenerateVideoRequest{CardID: cardID}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) VideoStatus(ctx context.Context, cardID string) (*models.VideoStatusResponse, error) {
	var out models.VideoStatusResponse
	if err := c.do(ctx, http.MethodGet, "/cards/"+url.PathEscape(cardID)+"/video-status", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		if json.Unmarshal(raw, &apiErr.Response) != nil || apiErr.Response.Error == "" {
			apiErr.Response.Error = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
