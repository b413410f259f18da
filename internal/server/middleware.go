package server

import (
	"net/http"
	"strings"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"orderdesk/internal/auth"
	"orderdesk/internal/directory"
)

// Identity reads the authenticated email the upstream auth layer injects
// and stores an Actor in the request context. Roles are looked up against
// the directory on every request, so a demoted admin or a removed client
// loses access immediately. Requests without the header, and emails the
// directory does not know, pass through anonymous and are rejected by the
// handlers.
func Identity(dir directory.Directory, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email := strings.ToLower(strings.TrimSpace(r.Header.Get("X-User-Email")))
			if email == "" {
				next.ServeHTTP(w, r)
				return
			}

			isAdmin, err := dir.IsAdmin(r.Context(), email)
			if err != nil {
				writeLookupFailure(w, logger, email, err)
				return
			}

			if !isAdmin {
				isClient, err := dir.IsClient(r.Context(), email)
				if err != nil {
					writeLookupFailure(w, logger, email, err)
					return
				}
				if !isClient {
					next.ServeHTTP(w, r)
					return
				}
			}

			ctx := auth.WithActor(r.Context(), auth.Actor{Email: email, IsAdmin: isAdmin})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeLookupFailure(w http.ResponseWriter, logger *zap.Logger, email string, err error) {
	logger.Error("directory lookup failed", zap.String("email", email), zap.Error(err))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	w.Write([]byte(`{"code":"INTERNAL","message":"internal server error"}`))
}

// RequestLogger logs one line per request with status and latency.
func RequestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			logger.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}
