// Package rmbgproto описывает протокол HTTP-взаимодействия с сервисом удаления фона.
package rmbgproto

// Параметры протокола, общие для сервера и клиента.
const (
	UploadPath        = "/"
	HealthPath        = "/health"
	FieldFile         = "file"
	HeaderRequestedBy = "X-Requested-With"
	RequestedByXHR    = "XMLHttpRequest"
	HeaderRequestID   = "X-Request-ID"
	ResultSuffix      = "_rmbg.png"
	ResultContentType = "image/png"
)

// ErrorBody: тело ответа об ошибке для программных клиентов.
type ErrorBody struct {
	Error string `json:"error"`
}
