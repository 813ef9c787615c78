package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/playercv/platform/internal/domain"
	"github.com/playercv/platform/internal/media"
)

// multipartOverhead leaves room for form boundaries around a maximal image.
const multipartOverhead = 1 << 20

// MediaStore stores uploads and lists logos. *media.Store satisfies it.
type MediaStore interface {
	Save(kind, filename, contentType string, r io.Reader) (string, error)
	Logos() ([]media.Logo, error)
}

// MediaHandler handles image uploads and logo discovery.
type MediaHandler struct {
	store  MediaStore
	logger *slog.Logger
}

// NewMediaHandler creates a new MediaHandler.
func NewMediaHandler(store MediaStore, logger *slog.Logger) *MediaHandler {
	return &MediaHandler{store: store, logger: logger}
}

type uploadResponse struct {
	Path string `json:"path"`
	URL  string `json:"url"`
}

// Upload handles POST /api/uploads/{kind} with a multipart "file" field.
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, media.MaxUploadBytes+multipartOverhead)

	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			RespondError(w, domain.ErrPayloadTooLarge("image trop volumineuse (5 Mo maximum)"))
			return
		}
		RespondError(w, domain.ErrValidation("champ requis : file"))
		return
	}
	defer file.Close()

	rel, err := h.store.Save(chi.URLParam(r, "kind"), header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		Fail(h.logger, w, r, err)
		return
	}
	RespondJSON(w, http.StatusCreated, uploadResponse{Path: rel, URL: "/uploads/" + rel})
}

// Logos handles GET /api/logos.
func (h *MediaHandler) Logos(w http.ResponseWriter, r *http.Request) {
	logos, err := h.store.Logos()
	if err != nil {
		Fail(h.logger, w, r, domain.ErrInternal("lecture des logos", err))
		return
	}
	RespondJSON(w, http.StatusOK, logos)
}
