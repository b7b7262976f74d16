package webhttp

import (
	"context"
	"net/http"
	"time"

	"github.com/go-logr/logr"

	"github.com/yourname/rmbg_lite/internal/matting"
)

const healthTimeout = 3 * time.Second

// healthStats: payload ответа /health.
type healthStats struct {
	OK        bool   `json:"ok"`
	Backend   string `json:"backend"`
	RemoverOK bool   `json:"remover_ok"`
}

// health проверяет бэкенд удаления фона, если ему есть что проверять.
func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	stats := healthStats{
		OK:        true,
		Backend:   s.Cfg.Matting.Backend,
		RemoverOK: true,
	}

	if p, ok := s.remover.(matting.Pinger); ok {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		if err := p.Ping(ctx); err != nil {
			logr.FromContextOrDiscard(r.Context()).Error(err, "remover health check failed")
			stats.OK = false
			stats.RemoverOK = false
		}
	}

	code := http.StatusOK
	if !stats.OK {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, stats)
}
