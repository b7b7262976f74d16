package httperrors

import (
	"errors"
	"net/http"

	"github.com/yourname/rmbg_lite/internal/models"
)

// Сообщения, которые видит клиент. Внутренние детали сюда не попадают.
const (
	MsgNoFilePart       = "No file part"
	MsgNoSelectedFile   = "No selected file"
	MsgInvalidExtension = "Invalid file extension"
	MsgTooLarge         = "File too large"
	MsgProcessFailed    = "Failed to process image"
)

// Status сопоставляет ошибке HTTP-статус и клиентское сообщение.
// Всё, что не распознано, считается сбоем обработки.
func Status(err error) (int, string) {
	switch {
	case errors.Is(err, models.ErrNoFilePart):
		return http.StatusBadRequest, MsgNoFilePart
	case errors.Is(err, models.ErrNoSelectedFile):
		return http.StatusBadRequest, MsgNoSelectedFile
	case errors.Is(err, models.ErrInvalidExtension):
		return http.StatusBadRequest, MsgInvalidExtension
	case errors.Is(err, models.ErrTooLarge):
		return http.StatusRequestEntityTooLarge, MsgTooLarge
	default:
		return http.StatusInternalServerError, MsgProcessFailed
	}
}

// Write отвечает текстом, для ответов вне страницы загрузки.
func Write(w http.ResponseWriter, err error) {
	code, msg := Status(err)
	http.Error(w, msg, code)
}
