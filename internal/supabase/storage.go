package supabase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"
	"unicode"

	storage "github.com/supabase-community/storage-go"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"tcg-card-studio/internal/imaging"
	"tcg-card-studio/internal/models"
)

const maxObjectNameLength = 50

var (
	ErrAlreadyURL     = errors.New("payload is already a url and cannot be uploaded")
	ErrEmptyPayload   = errors.New("payload is empty")
	ErrObjectNotOwned = errors.New("object is outside the caller's storage prefix")
)

// objectAPI is the part of the storage-go client the adapter uses.
type objectAPI interface {
	UploadFile(bucketID, relativePath string, data io.Reader, fileOptions ...storage.FileOptions) (storage.FileUploadResponse, error)
	RemoveFile(bucketID string, paths []string) ([]storage.FileUploadResponse, error)
}

// StorageClient writes card images and videos to Supabase Storage under the
// owner's prefix: users/{uid}/cards/... and users/{uid}/videos/...
type StorageClient struct {
	objects objectAPI
	bucket  string
	baseURL string
	now     func() time.Time
}

func NewStorageClient(supabaseURL, serviceRoleKey, bucket string) *StorageClient {
	baseURL := strings.TrimRight(supabaseURL, "/")
	client := storage.NewClient(baseURL+"/storage/v1", serviceRoleKey, nil)
	return newStorageClient(client, baseURL, bucket)
}

func newStorageClient(objects objectAPI, baseURL, bucket string) *StorageClient {
	return &StorageClient{
		objects: objects,
		bucket:  bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
	}
}

// UploadImage stores decoded image bytes and returns the public URL.
func (s *StorageClient) UploadImage(ctx context.Context, data []byte, userID, name string) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyPayload
	}
	contentType := imaging.MimeType(data)
	ext := "png"
	switch contentType {
	case "image/jpeg":
		ext = "jpg"
	case "image/webp":
		ext = "webp"
	default:
		contentType = "image/png"
	}
	return s.upload(ctx, data, userID, "cards", name, ext, contentType)
}

// UploadVideo stores rendered video bytes and returns the public URL. Passing
// something that is already a URL is a caller bug and is not retried.
func (s *StorageClient) UploadVideo(ctx context.Context, data []byte, userID, name string) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyPayload
	}
	head := string(data[:min(len(data), 16)])
	if models.IsRemoteURL(head) || models.IsDataURL(head) {
		return "", ErrAlreadyURL
	}
	return s.upload(ctx, data, userID, "videos", name, "mp4", "video/mp4")
}

func (s *StorageClient) upload(ctx context.Context, data []byte, userID, folder, name, ext, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	prefix, err := userPrefix(userID)
	if err != nil {
		return "", err
	}

	storagePath := fmt.Sprintf("%s%s/%s_%d.%s", prefix, folder, SanitizeName(name), s.now().UnixMilli(), ext)
	upsert := false
	_, err = s.objects.UploadFile(s.bucket, storagePath, bytes.NewReader(data), storage.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", folder, err)
	}
	return s.PublicURL(storagePath), nil
}

func (s *StorageClient) PublicURL(storagePath string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, s.bucket, storagePath)
}

// ObjectPath returns the bucket-relative path of a public URL issued by this
// client. Inline payloads and foreign URLs report false.
func (s *StorageClient) ObjectPath(publicURL string) (string, bool) {
	prefix := fmt.Sprintf("%s/storage/v1/object/public/%s/", s.baseURL, s.bucket)
	if !strings.HasPrefix(publicURL, prefix) {
		return "", false
	}
	storagePath := strings.TrimPrefix(publicURL, prefix)
	if i := strings.IndexAny(storagePath, "?#"); i >= 0 {
		storagePath = storagePath[:i]
	}
	if unescaped, err := url.PathUnescape(storagePath); err == nil {
		storagePath = unescaped
	}
	return storagePath, storagePath != ""
}

// DeleteObject removes the object behind publicURL when it belongs to userID.
// URLs that were never uploaded here are ignored; objects under another
// prefix, including the legacy shared cards/ folder, are never removed.
func (s *StorageClient) DeleteObject(ctx context.Context, publicURL, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	storagePath, ok := s.ObjectPath(publicURL)
	if !ok {
		return nil
	}
	prefix, err := userPrefix(userID)
	if err != nil {
		return err
	}
	if !strings.HasPrefix(storagePath, prefix) || strings.Contains(storagePath, "..") {
		return ErrObjectNotOwned
	}
	if _, err := s.objects.RemoveFile(s.bucket, []string{storagePath}); err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

func userPrefix(userID string) (string, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", models.ErrMissingUserID
	}
	if strings.ContainsAny(userID, "/\\") || strings.Contains(userID, "..") {
		return "", fmt.Errorf("invalid user id %q", userID)
	}
	return "users/" + userID + "/", nil
}

// SanitizeName turns a card name into a storage-safe object name: diacritics
// stripped, lower case, runs of anything else collapsed to "_".
func SanitizeName(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, name)
	if err != nil {
		folded = name
	}

	var b strings.Builder
	underscore := false
	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			underscore = false
			continue
		}
		if !underscore && b.Len() > 0 {
			b.WriteByte('_')
			underscore = true
		}
	}

	out := b.String()
	if len(out) > maxObjectNameLength {
		out = out[:maxObjectNameLength]
	}
	out = strings.Trim(out, "_")
	if out == "" {
		return "card"
	}
	return out
}
