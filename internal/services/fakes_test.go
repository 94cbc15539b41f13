package services

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"tcg-card-studio/internal/genai"
	"tcg-card-studio/internal/models"
)

const fakeBlobBase = "https://blob.example.com/"

type fakeBlobs struct {
	mu        sync.Mutex
	images    [][]byte
	videos    [][]byte
	deleted   []string
	uploadErr error
}

func (f *fakeBlobs) UploadImage(_ context.Context, data []byte, userID, name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	f.images = append(f.images, data)
	return fmt.Sprintf(fakeBlobBase+"users/%s/cards/%s_%d.png", userID, name, len(f.images)), nil
}

func (f *fakeBlobs) UploadVideo(_ context.Context, data []byte, userID, name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	f.videos = append(f.videos, data)
	return fmt.Sprintf(fakeBlobBase+"users/%s/videos/%s_%d.mp4", userID, name, len(f.videos)), nil
}

func (f *fakeBlobs) DeleteObject(_ context.Context, url, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, url)
	return nil
}

func (f *fakeBlobs) ObjectPath(url string) (string, bool) {
	path, ok := strings.CutPrefix(url, fakeBlobBase)
	return path, ok && path != ""
}

func (f *fakeBlobs) imageUploads() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.images)
}

// fakeVideo blocks GenerateVideo until release is closed so tests can observe
// the generating state.
type fakeVideo struct {
	credErr error
	genErr  error
	release chan struct{}

	mu       sync.Mutex
	requests []genai.VideoRequest
}

func newFakeVideo() *fakeVideo {
	return &fakeVideo{release: make(chan struct{})}
}

func (f *fakeVideo) CheckCredential(context.Context, string, models.Provider) error {
	return f.credErr
}

func (f *fakeVideo) GenerateVideo(ctx context.Context, _ string, req genai.VideoRequest) ([]byte, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	select {
	case <-f.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if f.genErr != nil {
		return nil, f.genErr
	}
	return []byte("\x00\x00\x00\x18ftypmp42video"), nil
}

type fakeImages struct {
	data []byte
	err  error
	urls []string
}

func (f *fakeImages) Get(_ context.Context, rawURL string, _ int64) ([]byte, error) {
	f.urls = append(f.urls, rawURL)
	return f.data, f.err
}

type failingProfiles struct{}

func (failingProfiles) UpsertProfile(context.Context, *models.UserProfile) error {
	return errors.New("connection refused")
}

func (failingProfiles) GetProfile(context.Context, string) (*models.UserProfile, error) {
	return nil, errors.New("connection refused")
}

func (failingProfiles) SaveAPIKeys(context.Context, string, map[models.Provider]string) error {
	return errors.New("connection refused")
}

// noisyPNG builds an incompressible PNG so byte sizes are predictable.
func noisyPNG(t *testing.T, width, height int) []byte {
	t.Helper()
	rng := rand.New(rand.NewSource(7))
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{uint8(rng.Intn(256)), uint8(rng.Intn(256)), uint8(rng.Intn(256)), 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// headerOnlyPNG declares width x height without any pixel data.
func headerOnlyPNG(width, height uint32) []byte {
	var ihdr bytes.Buffer
	ihdr.WriteString("IHDR")
	_ = binary.Write(&ihdr, binary.BigEndian, width)
	_ = binary.Write(&ihdr, binary.BigEndian, height)
	ihdr.Write([]byte{8, 0, 0, 0, 0})

	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")
	_ = binary.Write(&buf, binary.BigEndian, uint32(13))
	buf.Write(ihdr.Bytes())
	_ = binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(ihdr.Bytes()))
	return buf.Bytes()
}
