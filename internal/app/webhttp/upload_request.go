package webhttp

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/yourname/rmbg_lite/internal/models"
	"github.com/yourname/rmbg_lite/pkg/rmbgproto"
)

// readUpload читает multipart-тело потоком и буферизует только часть file.
// Часть считается файлом, если в Content-Disposition есть параметр filename,
// даже пустой: так браузер отправляет форму без выбранного файла.
func readUpload(r *http.Request) (models.Upload, error) {
	mr, err := r.MultipartReader()
	if err != nil {
		return models.Upload{}, fmt.Errorf("%w: %v", models.ErrNoFilePart, err)
	}

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return models.Upload{}, models.ErrNoFilePart
		}
		if err != nil {
			return models.Upload{}, classifyReadErr(err)
		}

		filename, isFile := partFileName(part)
		if part.FormName() != rmbgproto.FieldFile || !isFile {
			_ = part.Close()
			continue
		}

		data, err := io.ReadAll(part)
		_ = part.Close()
		if err != nil {
			return models.Upload{}, classifyReadErr(err)
		}

		return models.Upload{
			Filename:    filename,
			ContentType: part.Header.Get("Content-Type"),
			Data:        data,
		}, nil
	}
}

// partFileName возвращает filename из Content-Disposition как есть, без filepath.Base.
func partFileName(p *multipart.Part) (string, bool) {
	_, params, err := mime.ParseMediaType(p.Header.Get("Content-Disposition"))
	if err != nil {
		return "", false
	}

	name, ok := params["filename"]
	return name, ok
}

func classifyReadErr(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return fmt.Errorf("%w: limit %d bytes", models.ErrTooLarge, tooLarge.Limit)
	}
	// multipart местами теряет тип ошибки, остаётся только текст
	if strings.Contains(err.Error(), "request body too large") {
		return fmt.Errorf("%w: %v", models.ErrTooLarge, err)
	}

	return fmt.Errorf("%w: %v", models.ErrNoFilePart, err)
}
