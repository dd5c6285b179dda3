package httpapi

import (
	"context"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"log/slog"

	"github.com/kirdwahi/ledger/internal/auth"
)

type ctxKey string

const ctxKeyCapability ctxKey = "capability"

// requestLogger logs basic request info at INFO.
func requestLogger(l *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			reqID := chimw.GetReqID(r.Context())
			l.Info("request started", "req_id", reqID, "method", r.Method, "path", r.URL.Path)

			next.ServeHTTP(ww, r)

			l.Info("request complete",
				"req_id", reqID,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start).String(),
			)
		})
	}
}

// recoverer logs panics as ERROR and returns 500.
func recoverer(l *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					reqID := chimw.GetReqID(r.Context())
					l.Error("panic", "req_id", reqID, "err", rec, "stack", string(debug.Stack()))
					w.WriteHeader(http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// capability derives the caller's auth.Capability from the bearer token and
// stores it on the request context. Mutation handlers pass it down to the
// services explicitly; there is no ambient admin flag.
func capability(token string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cap := auth.FromToken(bearerToken(r), token)
			ctx := context.WithValue(r.Context(), ctxKeyCapability, cap)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	if !strings.HasPrefix(h, "Bearer ") && !strings.HasPrefix(h, "bearer ") {
		return ""
	}
	return strings.TrimSpace(h[len("Bearer "):])
}

// callerCapability reads the capability placed by the middleware. Absent
// (e.g. in direct handler tests) it degrades to read-only.
func callerCapability(r *http.Request) auth.Capability {
	if c, ok := r.Context().Value(ctxKeyCapability).(auth.Capability); ok {
		return c
	}
	return auth.ReadOnly()
}
