package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/playercv/platform/internal/cv"
	"github.com/playercv/platform/internal/cv/render"
	"github.com/playercv/platform/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLoader map[uuid.UUID]*domain.Profile

func (s stubLoader) Get(_ context.Context, id uuid.UUID) (*domain.Profile, error) {
	p, ok := s[id]
	if !ok {
		return nil, domain.ErrNotFound("profil", id.String())
	}
	return p, nil
}

type failingRenderer struct{}

func (failingRenderer) Render(cv.Document) ([]byte, error) { return nil, errors.New("boom") }
func (failingRenderer) ContentType() string                { return "application/pdf" }
func (failingRenderer) Format() render.Format              { return render.FormatPDF }

type brokenImages struct{}

func (brokenImages) Resolve(string) (string, bool) {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("garbage")), true
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func intPtr(v int) *int { return &v }

func leoMartin() *domain.Profile {
	return &domain.Profile{
		PlayerProfile: domain.PlayerProfile{
			ID:              uuid.New(),
			LastName:        "Martin",
			FirstName:       "Leo",
			Nationalities:   []string{"France"},
			BirthDate:       "2008-04-12",
			StrongFoot:      domain.FootRight,
			HeightCm:        178,
			CVColor:         "#C8102E",
			PrimaryPosition: "MC",
			PhotoPath:       "photos/absent.jpg",
			Email:           "leo@example.com",
			Phone:           "+33612345678",
			Status:          domain.StatusPending,
		},
		Qualities: []domain.Quality{{Label: "Vitesse"}},
		Seasons: []domain.Season{{
			Club:             "FC Test",
			Category:         "U17",
			Division:         "Ligue 1",
			LogoClubPath:     "logos/absent.png",
			LogoDivisionPath: "logos/absent.png",
			Matches:          intPtr(20),
		}},
	}
}

func newDocumentService(t *testing.T, p *domain.Profile, images cv.ImageResolver, renderers ...render.Renderer) *DocumentService {
	t.Helper()
	if len(renderers) == 0 {
		html, err := render.NewHTMLRenderer()
		require.NoError(t, err)
		renderers = []render.Renderer{render.NewPDFRenderer(), html}
	}
	builder := cv.NewBuilder(clockwork.NewFakeClockAt(time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)), images)
	return NewDocumentService(stubLoader{p.ID: p}, builder, discardLogger(), renderers...)
}

func TestDocumentService_PDFWithoutImages(t *testing.T) {
	p := leoMartin()
	svc := newDocumentService(t, p, nil)

	doc, err := svc.Render(context.Background(), p.ID, render.FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "CV_Leo_Martin.pdf", doc.FileName)
	assert.Equal(t, "application/pdf", doc.ContentType)
	assert.True(t, bytes.HasPrefix(doc.Body, []byte("%PDF")))
}

func TestDocumentService_HTML(t *testing.T) {
	p := leoMartin()
	svc := newDocumentService(t, p, nil)

	doc, err := svc.Render(context.Background(), p.ID, render.FormatHTML)
	require.NoError(t, err)
	assert.Equal(t, "CV_Leo_Martin.html", doc.FileName)
	assert.Contains(t, string(doc.Body), "FC Test")
}

func TestDocumentService_NotFound(t *testing.T) {
	svc := newDocumentService(t, leoMartin(), nil)

	_, err := svc.Render(context.Background(), uuid.New(), render.FormatPDF)
	assert.True(t, domain.IsCode(err, domain.CodeNotFound))
}

func TestDocumentService_UnknownFormat(t *testing.T) {
	p := leoMartin()
	svc := newDocumentService(t, p, nil)

	_, err := svc.Render(context.Background(), p.ID, "docx")
	assert.True(t, domain.IsCode(err, domain.CodeValidation))
}

func TestDocumentService_RenderFailureIsRenderError(t *testing.T) {
	p := leoMartin()
	svc := newDocumentService(t, p, nil, failingRenderer{})

	_, err := svc.Render(context.Background(), p.ID, render.FormatPDF)
	assert.True(t, domain.IsCode(err, domain.CodeRender))
}

func TestDocumentService_CorruptImageIsRenderError(t *testing.T) {
	p := leoMartin()
	svc := newDocumentService(t, p, brokenImages{})

	_, err := svc.Render(context.Background(), p.ID, render.FormatPDF)
	assert.True(t, domain.IsCode(err, domain.CodeRender))
}
