package webhttp

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-logr/logr"
	"github.com/google/uuid"

	"github.com/yourname/rmbg_lite/internal/models"
	"github.com/yourname/rmbg_lite/pkg/rmbgproto"
)

const maxRequestIDLen = 64

// requestLogger выдаёт запросу X-Request-ID и кладёт в контекст логгер с ним.
func requestLogger(base logr.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(rmbgproto.HeaderRequestID)
			if !validRequestID(requestID) {
				requestID = uuid.NewString()
			}
			w.Header().Set(rmbgproto.HeaderRequestID, requestID)

			log := base.WithValues("request_id", requestID, "method", r.Method, "path", r.URL.Path)
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			// в defer, чтобы строка попала в лог и при панике, которую Recoverer пробрасывает дальше
			defer func() {
				log.V(1).Info("request served",
					"status", ww.Status(),
					"bytes", ww.BytesWritten(),
					"duration", time.Since(start),
				)
			}()

			next.ServeHTTP(ww, r.WithContext(logr.NewContext(r.Context(), log)))
		})
	}
}

// validRequestID принимает только короткие идентификаторы из [A-Za-z0-9._-].
func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLen {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_', c == '.':
		default:
			return false
		}
	}
	return true
}

// bodyLimit отсекает тела больше limit: по Content-Length сразу, иначе при чтении.
func (s *Server) bodyLimit(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limit <= 0 {
				next.ServeHTTP(w, r)
				return
			}
			if r.ContentLength > limit {
				s.writeError(w, models.ErrTooLarge, isProgrammatic(r))
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
