package webhttp

import "net/http"

// getIndex отдаёт пустую форму загрузки.
func (s *Server) getIndex(w http.ResponseWriter, _ *http.Request) {
	s.renderPage(w, http.StatusOK, "")
}
