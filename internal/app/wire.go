package app

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	"github.com/playercv/platform/internal/cv"
	"github.com/playercv/platform/internal/cv/render"
	"github.com/playercv/platform/internal/guard"
	"github.com/playercv/platform/internal/handler"
	"github.com/playercv/platform/internal/media"
	"github.com/playercv/platform/internal/repository"
	"github.com/playercv/platform/internal/service"
)

// RouterDeps holds all dependencies needed by NewRouter.
type RouterDeps struct {
	Pool   *pgxpool.Pool
	Media  *media.Store
	Clock  clockwork.Clock
	Logger *slog.Logger

	StaffCode           string
	CORSAllowedOrigins  []string
	UploadRatePerMinute int
	// TrustProxyHeaders lets X-Forwarded-For / X-Real-IP set the client IP.
	// Enable only behind a proxy that overwrites them.
	TrustProxyHeaders bool
}

// Services wires repositories, the document builder and both renderers.
func Services(pool *pgxpool.Pool, store *media.Store, clock clockwork.Clock, logger *slog.Logger) (*service.ProfileService, *service.DocumentService, error) {
	profileSvc := service.NewProfileService(pool, repository.NewProfileRepository(), repository.NewChildRepository(), logger)

	html, err := render.NewHTMLRenderer()
	if err != nil {
		return nil, nil, err
	}
	builder := cv.NewBuilder(clock, store)
	docSvc := service.NewDocumentService(profileSvc, builder, logger, render.NewPDFRenderer(), html)
	return profileSvc, docSvc, nil
}

// NewRouter assembles the chi.Router with all routes and middleware.
func NewRouter(deps RouterDeps) (chi.Router, error) {
	logger := deps.Logger
	clock := deps.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	profileSvc, docSvc, err := Services(deps.Pool, deps.Media, clock, logger)
	if err != nil {
		return nil, err
	}

	profileHandler := handler.NewProfileHandler(profileSvc, logger)
	documentHandler := handler.NewDocumentHandler(docSvc, logger)
	mediaHandler := handler.NewMediaHandler(deps.Media, logger)

	origins := deps.CORSAllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	uploadRate := deps.UploadRatePerMinute
	if uploadRate <= 0 {
		uploadRate = 30
	}

	staffLockout := guard.NewLockout(clock, guard.MaxAttempts, guard.LockoutWindow)

	r := chi.NewRouter()

	// Global middleware (order matters)
	r.Use(handler.Recovery(logger))
	if deps.TrustProxyHeaders {
		r.Use(middleware.RealIP)
	}
	r.Use(handler.RequestID)
	r.Use(handler.RequestLogger(logger))
	r.Use(handler.CORSWithOrigins(origins...))

	r.Get("/health", handler.HealthHandler(deps.Pool))

	// Stored images, served as files.
	r.Handle("/uploads/*", handler.SandboxFiles(http.StripPrefix("/uploads/", http.FileServerFS(deps.Media.FS()))))

	r.Route("/api", func(r chi.Router) {
		r.Use(handler.JSONContentType)

		// Wizard routes (public)
		r.Post("/profiles", profileHandler.Create)
		r.Get("/logos", mediaHandler.Logos)
		r.With(handler.RateLimit(uploadRate, time.Minute)).Post("/uploads/{kind}", mediaHandler.Upload)

		// Staff routes
		r.Group(func(r chi.Router) {
			r.Use(handler.StaffGate(deps.StaffCode, staffLockout))

			r.Get("/profiles", profileHandler.List)
			r.Route("/profiles/{id}", func(r chi.Router) {
				r.Get("/", profileHandler.Get)
				r.Patch("/", profileHandler.Update)
				r.Put("/", profileHandler.Update)
				r.Delete("/", profileHandler.Delete)
				r.Post("/duplicate", profileHandler.Duplicate)
				r.Get("/cv.pdf", documentHandler.PDF)
				r.Get("/cv.html", documentHandler.HTML)
			})
		})
	})

	return r, nil
}
