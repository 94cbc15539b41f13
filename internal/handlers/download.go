package handlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
	"tcg-card-studio/internal/fetch"
	"tcg-card-studio/internal/models"
)

type MediaSource interface {
	Check(rawURL string) (*url.URL, error)
	Open(ctx context.Context, rawURL string) (*http.Response, error)
}

type DownloadHandler struct {
	media  MediaSource
	logger *slog.Logger
}

func NewDownloadHandler(media MediaSource, logger *slog.Logger) *DownloadHandler {
	return &DownloadHandler{media: media, logger: logger}
}

// Download godoc
// @Summary     Download media
// @Description Streams an image or video from an allow-listed storage host as an attachment. URLs on other hosts are refused without being fetched.
// @Tags        media
// @Produce     octet-stream
// @Param       url      query string true  "Media URL"
// @Param       filename query string false "Suggested file name"
// @Success     200 {file} file
// @Failure     400 {object} models.ErrorResponse
// @Failure     403 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Router      /download [get]
func (h *DownloadHandler) Download(c *gin.Context) {
	rawURL := c.Query("url")
	u, err := h.media.Check(rawURL)
	if err != nil {
		h.refuse(c, err)
		return
	}

	resp, err := h.media.Open(c.Request.Context(), u.String())
	if err != nil {
		h.refuse(c, err)
		return
	}
	defer resp.Body.Close()

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": downloadName(c.Query("filename"), u),
	}))
	if resp.ContentLength > 0 {
		c.Header("Content-Length", resp.Header.Get("Content-Length"))
	}
	c.Status(http.StatusOK)

	written, err := io.Copy(c.Writer, resp.Body)
	if err != nil {
		h.logger.Warn("download interrupted", "host", u.Hostname(), "bytes", written, "error", err)
	}
}

func (h *DownloadHandler) refuse(c *gin.Context, err error) {
	var statusErr *fetch.StatusError
	switch {
	case errors.Is(err, fetch.ErrInvalidURL):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid url"})
	case errors.Is(err, fetch.ErrHostNotAllowed):
		c.JSON(http.StatusForbidden, models.ErrorResponse{Error: "host not allowed"})
	case errors.As(err, &statusErr):
		c.JSON(http.StatusBadGateway, models.ErrorResponse{Error: "upstream error", Message: statusErr.Error()})
	default:
		h.logger.Error("download failed", "error", err)
		c.JSON(http.StatusBadGateway, models.ErrorResponse{Error: "download failed"})
	}
}

// downloadName prefers the requested name and falls back to the last path
// segment of the media URL.
func downloadName(requested string, u *url.URL) string {
	name := strings.TrimSpace(requested)
	if name == "" {
		name = path.Base(u.Path)
	}
	name = strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\' || r == '"' || r < 0x20:
			return '_'
		}
		return r
	}, name)
	if name == "" || name == "." || name == "/" {
		return "download"
	}
	return name
}
