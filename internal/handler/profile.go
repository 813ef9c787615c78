package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/playercv/platform/internal/domain"
)

// ProfileStore is the aggregate service behind the profile endpoints.
type ProfileStore interface {
	Create(ctx context.Context, in domain.ProfileInput) (*domain.Profile, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
	List(ctx context.Context, filter domain.ListFilter) ([]domain.ProfileListItem, error)
	Update(ctx context.Context, id uuid.UUID, patch domain.ProfilePatch) (*domain.Profile, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Duplicate(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
}

// ProfileHandler handles the player profile collection and item endpoints.
type ProfileHandler struct {
	profiles ProfileStore
	logger   *slog.Logger
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profiles ProfileStore, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, logger: logger}
}

// List handles GET /api/profiles?status=&archived=&q=
func (h *ProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseListFilter(r)
	if err != nil {
		RespondError(w, err)
		return
	}
	items, err := h.profiles.List(r.Context(), filter)
	if err != nil {
		Fail(h.logger, w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, items)
}

// Create handles POST /api/profiles.
func (h *ProfileHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in domain.ProfileInput
	if err := DecodeJSON(r, &in); err != nil {
		RespondError(w, domain.ErrValidation("corps de requête JSON invalide"))
		return
	}
	profile, err := h.profiles.Create(r.Context(), in)
	if err != nil {
		Fail(h.logger, w, r, err)
		return
	}
	RespondJSON(w, http.StatusCreated, profile)
}

// Get handles GET /api/profiles/{id}.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := profileID(r)
	if err != nil {
		RespondError(w, err)
		return
	}
	profile, err := h.profiles.Get(r.Context(), id)
	if err != nil {
		Fail(h.logger, w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, profile)
}

// Update handles PATCH and PUT /api/profiles/{id}. Both are partial.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := profileID(r)
	if err != nil {
		RespondError(w, err)
		return
	}
	var patch domain.ProfilePatch
	if err := DecodeJSON(r, &patch); err != nil {
		RespondError(w, domain.ErrValidation("corps de requête JSON invalide"))
		return
	}
	profile, err := h.profiles.Update(r.Context(), id, patch)
	if err != nil {
		Fail(h.logger, w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, profile)
}

// Delete handles DELETE /api/profiles/{id}.
func (h *ProfileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := profileID(r)
	if err != nil {
		RespondError(w, err)
		return
	}
	if err := h.profiles.Delete(r.Context(), id); err != nil {
		Fail(h.logger, w, r, err)
		return
	}
	RespondJSON(w, http.StatusNoContent, nil)
}

// Duplicate handles POST /api/profiles/{id}/duplicate.
func (h *ProfileHandler) Duplicate(w http.ResponseWriter, r *http.Request) {
	id, err := profileID(r)
	if err != nil {
		RespondError(w, err)
		return
	}
	profile, err := h.profiles.Duplicate(r.Context(), id)
	if err != nil {
		Fail(h.logger, w, r, err)
		return
	}
	RespondJSON(w, http.StatusCreated, profile)
}

// profileID parses the {id} URL param. A malformed id cannot exist, so it is a 404.
func profileID(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domain.ErrNotFound("profil", raw)
	}
	return id, nil
}

func parseListFilter(r *http.Request) (domain.ListFilter, error) {
	q := r.URL.Query()
	filter := domain.ListFilter{Query: strings.TrimSpace(q.Get("q"))}

	if raw := q.Get("status"); raw != "" {
		status := domain.ProfileStatus(raw)
		if !status.Valid() {
			return filter, domain.ErrValidation("statut invalide : " + raw)
		}
		filter.Status = &status
	}

	switch strings.ToLower(q.Get("archived")) {
	case "":
	case "true", "1":
		archived := true
		filter.Archived = &archived
	case "false", "0":
		archived := false
		filter.Archived = &archived
	default:
		return filter, domain.ErrValidation("paramètre archived invalide : " + q.Get("archived"))
	}
	return filter, nil
}
