package webhttp

import (
	"net/http"

	"github.com/go-logr/logr"
)

// postUpload: проверка → удаление фона → PNG-вложение.
func (s *Server) postUpload(w http.ResponseWriter, r *http.Request) {
	log := logr.FromContextOrDiscard(r.Context())
	programmatic := isProgrammatic(r)

	upload, err := readUpload(r)
	if err == nil {
		err = s.Images.Validate(upload)
	}
	if err != nil {
		log.V(1).Info("upload rejected", "reason", err.Error())
		s.writeError(w, err, programmatic)
		return
	}

	res, err := s.Images.Process(r.Context(), upload)
	if err != nil {
		log.Error(err, "failed to process image", "filename", upload.Filename, "bytes", len(upload.Data))
		s.writeError(w, err, programmatic)
		return
	}

	log.Info("image processed", "filename", res.Filename, "bytes", res.Size())
	writeResult(w, res)
}
