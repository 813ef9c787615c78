package handler

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net"
	"net/http"
	"runtime/debug"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/playercv/platform/internal/domain"
	"github.com/playercv/platform/internal/guard"
	"github.com/rs/cors"
	"golang.org/x/time/rate"
)

type contextKeyType string

const requestIDKey contextKeyType = "request_id"

// StaffCodeHeader carries the placeholder staff code.
const StaffCodeHeader = "X-Staff-Code"

// RequestID injects a unique request ID into every request context and response header.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set("X-Request-ID", id)
		ctx := context.WithValue(r.Context(), requestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID extracts the request ID from context.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// RequestLogger logs each request with slog structured logging.
func RequestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &responseWriter{ResponseWriter: w, status: 200}
			next.ServeHTTP(ww, r)
			logger.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.status,
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", GetRequestID(r.Context()),
			)
		})
	}
}

// Recovery catches panics and returns 500.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("panic recovered",
						"error", rec,
						"stack", string(debug.Stack()),
						"path", r.URL.Path,
					)
					http.Error(w, `{"code":"INTERNAL_ERROR","message":"internal server error"}`, http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// CORSWithOrigins allows the wizard front-end origins. "*" allows any origin.
func CORSWithOrigins(origins ...string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID", StaffCodeHeader},
		ExposedHeaders: []string{"X-Request-ID", "Content-Disposition"},
		MaxAge:         600,
	})
	return c.Handler
}

// JSONContentType sets Content-Type to application/json for all responses.
func JSONContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// StaffGate requires the staff code header. It is a placeholder gate, not an
// authentication layer; an empty code disables it. A non-nil lockout blocks
// client IPs after repeated wrong codes.
func StaffGate(code string, lockout *guard.Lockout) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if code == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := ClientIP(r)
			if lockout != nil && lockout.Locked(ip) {
				w.Header().Set("Retry-After", strconv.Itoa(int(guard.LockoutWindow.Seconds())))
				RespondError(w, domain.ErrRateLimited())
				return
			}
			given := r.Header.Get(StaffCodeHeader)
			if subtle.ConstantTimeCompare([]byte(given), []byte(code)) != 1 {
				if lockout != nil {
					lockout.RecordFailure(ip)
				}
				RespondError(w, domain.ErrUnauthorized("code d'accès invalide"))
				return
			}
			if lockout != nil {
				lockout.Reset(ip)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ClientIP returns the RemoteAddr host. Forwarding headers are honoured only
// when middleware.RealIP runs first and rewrites RemoteAddr.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

type ipLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*visitor
	rate      rate.Limit
	burst     int
	idle      time.Duration
	lastSweep time.Time
	now       func() time.Time
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newIPLimiter(requestsPerWindow int, window time.Duration) *ipLimiter {
	return &ipLimiter{
		limiters: make(map[string]*visitor),
		rate:     rate.Limit(float64(requestsPerWindow) / window.Seconds()),
		burst:    max(requestsPerWindow/2, 1),
		idle:     window,
		now:      time.Now,
	}
}

func (l *ipLimiter) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	l.sweep(now)
	if v, ok := l.limiters[ip]; ok {
		v.lastSeen = now
		return v.limiter
	}
	v := &visitor{limiter: rate.NewLimiter(l.rate, l.burst), lastSeen: now}
	l.limiters[ip] = v
	return v.limiter
}

// sweep drops buckets idle for a full window; they have refilled by then.
// Caller holds mu.
func (l *ipLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.idle {
		return
	}
	l.lastSweep = now
	for ip, v := range l.limiters {
		if now.Sub(v.lastSeen) >= l.idle {
			delete(l.limiters, ip)
		}
	}
}

// RateLimit throttles requests per client IP with a token bucket.
func RateLimit(requestsPerWindow int, window time.Duration) func(http.Handler) http.Handler {
	return newIPLimiter(requestsPerWindow, window).middleware
}

func (l *ipLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.get(ClientIP(r)).Allow() {
			w.Header().Set("Retry-After", "60")
			RespondError(w, domain.ErrRateLimited())
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SandboxFiles serves stored uploads under a sandbox CSP so an uploaded SVG
// cannot run script on this origin.
func SandboxFiles(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Security-Policy", "default-src 'none'; style-src 'unsafe-inline'; sandbox")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		next.ServeHTTP(w, r)
	})
}

// responseWriter wraps http.ResponseWriter to capture status code.
type responseWriter struct {
	http.ResponseWriter
	status int
}

func (w *responseWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
