package webhttp

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/yourname/rmbg_lite/internal/models"
	"github.com/yourname/rmbg_lite/pkg/httperrors"
	"github.com/yourname/rmbg_lite/pkg/rmbgproto"
)

// pageData: данные шаблона страницы загрузки.
type pageData struct {
	Error       string
	MaxUploadMB int64
	Accept      string
}

// isProgrammatic определяет, что запрос отправлен скриптом, а не формой браузера.
func isProgrammatic(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get(rmbgproto.HeaderRequestedBy), rmbgproto.RequestedByXHR)
}

// writeError: единая точка ответа об ошибке: JSON для скриптов, страница для браузера.
func (s *Server) writeError(w http.ResponseWriter, err error, programmatic bool) {
	code, msg := httperrors.Status(err)
	if programmatic {
		writeJSON(w, code, rmbgproto.ErrorBody{Error: msg})
		return
	}
	s.renderPage(w, code, msg)
}

func (s *Server) renderPage(w http.ResponseWriter, code int, errMsg string) {
	var buf bytes.Buffer
	err := s.tmpl.ExecuteTemplate(&buf, indexTemplate, pageData{
		Error:       errMsg,
		MaxUploadMB: s.Cfg.MaxUploadBytes >> 20,
		Accept:      ".png,.jpg,.jpeg",
	})
	if err != nil {
		s.log.Error(err, "render upload page")
		httperrors.Write(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	_, _ = buf.WriteTo(w)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(b)
}

// writeResult отдаёт PNG как вложение.
func writeResult(w http.ResponseWriter, res models.Result) {
	w.Header().Set("Content-Type", rmbgproto.ResultContentType)
	// имя уже очищено до ASCII без кавычек и обратных слэшей
	w.Header().Set("Content-Disposition", "attachment; filename="+strconv.Quote(res.Filename))
	w.Header().Set("Content-Length", strconv.FormatInt(res.Size(), 10))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.PNG)
}
