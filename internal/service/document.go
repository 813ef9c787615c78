package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/playercv/platform/internal/cv"
	"github.com/playercv/platform/internal/cv/render"
	"github.com/playercv/platform/internal/domain"
)

// ProfileLoader loads a full aggregate. *ProfileService satisfies it.
type ProfileLoader interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
}

// RenderedDocument is a generated CV ready to be served or written.
type RenderedDocument struct {
	FileName    string
	ContentType string
	Body        []byte
}

// DocumentService loads a profile, builds its document model and renders it.
type DocumentService struct {
	profiles  ProfileLoader
	builder   *cv.Builder
	renderers map[render.Format]render.Renderer
	logger    *slog.Logger
}

// NewDocumentService creates a DocumentService serving the given backends.
func NewDocumentService(profiles ProfileLoader, builder *cv.Builder, logger *slog.Logger, renderers ...render.Renderer) *DocumentService {
	byFormat := make(map[render.Format]render.Renderer, len(renderers))
	for _, r := range renderers {
		byFormat[r.Format()] = r
	}
	return &DocumentService{
		profiles:  profiles,
		builder:   builder,
		renderers: byFormat,
		logger:    logger,
	}
}

// Render produces the CV of a profile in the given format.
func (s *DocumentService) Render(ctx context.Context, id uuid.UUID, format render.Format) (*RenderedDocument, error) {
	r, ok := s.renderers[format]
	if !ok {
		return nil, domain.ErrValidation("format de document inconnu : " + string(format))
	}

	profile, err := s.profiles.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	doc := s.builder.Build(profile)
	body, err := r.Render(doc)
	if err != nil {
		s.logger.Error("render failed", "profile_id", id, "format", format, "error", err)
		return nil, domain.ErrRender(err)
	}

	s.logger.Info("document rendered", "profile_id", id, "format", format, "bytes", len(body))
	return &RenderedDocument{
		FileName:    profile.DocumentFileName(string(format)),
		ContentType: r.ContentType(),
		Body:        body,
	}, nil
}
