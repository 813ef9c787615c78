package handler

import (
	"context"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/playercv/platform/internal/cv/render"
	"github.com/playercv/platform/internal/service"
)

// DocumentRenderer produces a profile's CV.
type DocumentRenderer interface {
	Render(ctx context.Context, id uuid.UUID, format render.Format) (*service.RenderedDocument, error)
}

// DocumentHandler serves generated CVs.
type DocumentHandler struct {
	docs   DocumentRenderer
	logger *slog.Logger
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(docs DocumentRenderer, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{docs: docs, logger: logger}
}

// PDF handles GET /api/profiles/{id}/cv.pdf as a download.
func (h *DocumentHandler) PDF(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, render.FormatPDF, "attachment")
}

// HTML handles GET /api/profiles/{id}/cv.html as an inline preview.
func (h *DocumentHandler) HTML(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, render.FormatHTML, "inline")
}

func (h *DocumentHandler) serve(w http.ResponseWriter, r *http.Request, format render.Format, disposition string) {
	id, err := profileID(r)
	if err != nil {
		RespondError(w, err)
		return
	}
	doc, err := h.docs.Render(r.Context(), id, format)
	if err != nil {
		Fail(h.logger, w, r, err)
		return
	}

	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.Body)))
	w.Header().Set("Content-Disposition", mime.FormatMediaType(disposition, map[string]string{"filename": doc.FileName}))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(doc.Body)
}
