// Package genai talks to the generative AI provider: image generation,
// vision (scan and grade) and long-running video generation.
package genai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultHTTPTimeout  = 60 * time.Second
	defaultPollInterval = 10 * time.Second
	maxDownloadBytes    = 200 << 20
)

// Client is a REST client for a Gemini-style API. The API key is passed per
// call because every user may bring their own.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	backoffs     []time.Duration
	pollInterval time.Duration
	maxDownload  int64
	sleeper      func(time.Duration)
}

type Option func(*Client)

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBackoffs sets the delays between retries. Its length is the retry count.
func WithBackoffs(backoffs ...time.Duration) Option {
	return func(c *Client) {
		c.backoffs = backoffs
	}
}

func WithPollInterval(interval time.Duration) Option {
	return func(c *Client) {
		if interval > 0 {
			c.pollInterval = interval
		}
	}
}

// WithMaxDownloadBytes caps the size of a downloaded provider file.
func WithMaxDownloadBytes(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxDownload = n
		}
	}
}

// WithSleeper overrides how waits are performed (tests).
func WithSleeper(sleeper func(time.Duration)) Option {
	return func(c *Client) {
		c.sleeper = sleeper
	}
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:      strings.TrimSuffix(baseURL, "/") + "/",
		httpClient:   &http.Client{Timeout: defaultHTTPTimeout},
		backoffs:     []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second},
		pollInterval: defaultPollInterval,
		maxDownload:  maxDownloadBytes,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type InlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type Part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *InlineData `json:"inlineData,omitempty"`
}

type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

type GenerationConfig struct {
	ResponseModalities []string `json:"responseModalities,omitempty"`
	ResponseMimeType   string   `json:"responseMimeType,omitempty"`
	Temperature        *float64 `json:"temperature,omitempty"`
}

type generateContentRequest struct {
	Contents         []Content         `json:"contents"`
	GenerationConfig *GenerationConfig `json:"generationConfig,omitempty"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content      Content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
}

// TextPart and ImagePart build request parts.
func TextPart(text string) Part {
	return Part{Text: text}
}

func ImagePart(mimeType string, data []byte) Part {
	return Part{InlineData: &InlineData{MimeType: mimeType, Data: base64.StdEncoding.EncodeToString(data)}}
}

// GenerateContent runs a single-turn generateContent call and returns the
// first candidate.
func (c *Client) GenerateContent(ctx context.Context, apiKey, model string, parts []Part, cfg *GenerationConfig) (*Content, error) {
	body := generateContentRequest{
		Contents:         []Content{{Role: "user", Parts: parts}},
		GenerationConfig: cfg,
	}

	var result generateContentResponse
	err := c.RetryWithBackoff(ctx, func() error {
		return c.doJSON(ctx, http.MethodPost, c.modelURL(model, "generateContent"), apiKey, body, &result)
	})
	if err != nil {
		return nil, err
	}

	if result.PromptFeedback != nil && result.PromptFeedback.BlockReason != "" {
		return nil, &ProviderError{Message: "request blocked by provider: " + strings.ToLower(result.PromptFeedback.BlockReason), Blocked: true}
	}
	if len(result.Candidates) == 0 {
		return nil, &ProviderError{Message: "provider returned no candidates"}
	}
	candidate := result.Candidates[0]
	if len(candidate.Content.Parts) == 0 {
		if candidate.FinishReason == "SAFETY" || candidate.FinishReason == "PROHIBITED_CONTENT" {
			return nil, &ProviderError{Message: "response blocked by provider safety filters", Blocked: true}
		}
		return nil, &ProviderError{Message: "provider returned an empty response (finish reason " + candidate.FinishReason + ")"}
	}
	return &candidate.Content, nil
}

// VideoInstance is one predictLongRunning request instance.
type VideoInstance struct {
	Prompt string      `json:"prompt"`
	Image  *VideoImage `json:"image,omitempty"`
}

type VideoImage struct {
	BytesBase64Encoded string `json:"bytesBase64Encoded"`
	MimeType           string `json:"mimeType"`
}

type VideoParameters struct {
	AspectRatio     string `json:"aspectRatio,omitempty"`
	DurationSeconds int    `json:"durationSeconds,omitempty"`
	SampleCount     int    `json:"sampleCount,omitempty"`
}

type Operation struct {
	Name  string `json:"name"`
	Done  bool   `json:"done"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
	Response *struct {
		GenerateVideoResponse struct {
			GeneratedSamples []struct {
				Video struct {
					URI                string `json:"uri"`
					BytesBase64Encoded string `json:"bytesBase64Encoded"`
				} `json:"video"`
			} `json:"generatedSamples"`
			RAIMediaFilteredReasons []string `json:"raiMediaFilteredReasons"`
		} `json:"generateVideoResponse"`
	} `json:"response,omitempty"`
}

// StartVideo starts a long-running video generation and returns the
// operation name.
func (c *Client) StartVideo(ctx context.Context, apiKey, model string, instance VideoInstance, params VideoParameters) (string, error) {
	body := map[string]any{
		"instances":  []VideoInstance{instance},
		"parameters": params,
	}
	var op Operation
	err := c.RetryWithBackoff(ctx, func() error {
		return c.doJSON(ctx, http.MethodPost, c.modelURL(model, "predictLongRunning"), apiKey, body, &op)
	})
	if err != nil {
		return "", err
	}
	if op.Name == "" {
		return "", &ProviderError{Message: "provider did not return an operation name"}
	}
	return op.Name, nil
}

func (c *Client) GetOperation(ctx context.Context, apiKey, name string) (*Operation, error) {
	var op Operation
	err := c.RetryWithBackoff(ctx, func() error {
		return c.doJSON(ctx, http.MethodGet, c.baseURL+strings.TrimPrefix(name, "/"), apiKey, nil, &op)
	})
	if err != nil {
		return nil, err
	}
	return &op, nil
}

// WaitVideo polls the operation until it finishes or ctx ends, then returns
// the video bytes.
func (c *Client) WaitVideo(ctx context.Context, apiKey, name string) ([]byte, error) {
	for {
		op, err := c.GetOperation(ctx, apiKey, name)
		if err != nil {
			return nil, err
		}
		if op.Done {
			return c.videoFromOperation(ctx, apiKey, op)
		}
		if err := c.sleep(ctx, c.pollInterval); err != nil {
			return nil, fmt.Errorf("video operation %s did not finish: %w", name, err)
		}
	}
}

func (c *Client) videoFromOperation(ctx context.Context, apiKey string, op *Operation) ([]byte, error) {
	if op.Error != nil {
		return nil, &ProviderError{StatusCode: op.Error.Code, Message: op.Error.Message}
	}
	if op.Response == nil || len(op.Response.GenerateVideoResponse.GeneratedSamples) == 0 {
		if op.Response != nil && len(op.Response.GenerateVideoResponse.RAIMediaFilteredReasons) > 0 {
			return nil, &ProviderError{
				Message: strings.Join(op.Response.GenerateVideoResponse.RAIMediaFilteredReasons, "; "),
				Blocked: true,
			}
		}
		return nil, &ProviderError{Message: "video operation finished without a video"}
	}

	video := op.Response.GenerateVideoResponse.GeneratedSamples[0].Video
	if video.BytesBase64Encoded != "" {
		data, err := base64.StdEncoding.DecodeString(video.BytesBase64Encoded)
		if err != nil {
			return nil, fmt.Errorf("failed to decode video: %w", err)
		}
		return data, nil
	}
	if video.URI == "" {
		return nil, &ProviderError{Message: "video operation returned no uri"}
	}
	return c.Download(ctx, apiKey, video.URI)
}

// Download fetches a provider-hosted file. Provider file URIs require the key.
func (c *Client) Download(ctx context.Context, apiKey, uri string) ([]byte, error) {
	var data []byte
	err := c.RetryWithBackoff(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		if apiKey != "" {
			req.Header.Set("x-goog-api-key", apiKey)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("failed to execute request: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
			return newProviderError(resp.StatusCode, body)
		}

		body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxDownload+1))
		if err != nil {
			return fmt.Errorf("failed to read response body: %w", err)
		}
		if int64(len(body)) > c.maxDownload {
			return &ProviderError{Message: fmt.Sprintf("generated file exceeds %d bytes", c.maxDownload)}
		}
		data = body
		return nil
	})
	return data, err
}

func (c *Client) modelURL(model, method string) string {
	return c.baseURL + "models/" + url.PathEscape(model) + ":" + method
}

func (c *Client) doJSON(ctx context.Context, method, endpoint, apiKey string, in, out any) error {
	var body io.Reader
	if in != nil {
		jsonData, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("x-goog-api-key", apiKey)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newProviderError(resp.StatusCode, respBody)
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// RetryWithBackoff runs fn, retrying transient failures (429, 5xx, network
// timeouts) with the configured backoffs.
func (c *Client) RetryWithBackoff(ctx context.Context, fn func() error) error {
	var lastErr error
	for attempt := 0; ; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err
		if attempt >= len(c.backoffs) || !retryable(err) || ctx.Err() != nil {
			break
		}
		if err := c.sleep(ctx, c.backoffs[attempt]); err != nil {
			return err
		}
	}
	if len(c.backoffs) > 0 && retryable(lastErr) {
		return fmt.Errorf("failed after %d retries: %w", len(c.backoffs), lastErr)
	}
	return lastErr
}

func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var perr *ProviderError
	if errors.As(err, &perr) {
		return perr.StatusCode == http.StatusTooManyRequests ||
			perr.StatusCode == http.StatusRequestTimeout ||
			perr.StatusCode >= http.StatusInternalServerError
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return false
}

func (c *Client) sleep(ctx context.Context, delay time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if delay <= 0 {
		return nil
	}
	if c.sleeper != nil {
		c.sleeper(delay)
		return ctx.Err()
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// DecodeJSON decodes a model's JSON answer, tolerating markdown code fences
// and prose around the object.
func DecodeJSON(text string, target any) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return errors.New("empty payload")
	}
	directErr := json.Unmarshal([]byte(trimmed), target)
	if directErr == nil {
		return nil
	}

	sanitized := strings.TrimSpace(stripCodeFence(trimmed))
	if start := strings.Index(sanitized, "{"); start >= 0 {
		if end := strings.LastIndex(sanitized, "}"); end > start {
			sanitized = sanitized[start : end+1]
		}
	}
	if sanitized == "" || sanitized == trimmed {
		return directErr
	}
	return json.Unmarshal([]byte(sanitized), target)
}

func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	return strings.TrimSuffix(strings.TrimSpace(s), "```")
}
