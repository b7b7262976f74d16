package rmbgsvc

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/yourname/rmbg_lite/internal/models"
)

var allowedExtensions = map[string]struct{}{
	"png":  {},
	"jpg":  {},
	"jpeg": {},
}

// Validate проверяет имя файла: сначала наличие, затем расширение.
// Отсутствие самой части file проверяется на транспорте.
func (s *Images) Validate(upload models.Upload) error {
	return validation.Validate(upload.Filename,
		validation.By(selectedFile),
		validation.By(allowedExtension),
	)
}

// AllowedFile сообщает, что у имени есть непустая основа и расширение png/jpg/jpeg
// в любом регистре.
func AllowedFile(name string) bool {
	i := strings.LastIndex(name, ".")
	if i <= 0 {
		return false
	}
	_, ok := allowedExtensions[strings.ToLower(name[i+1:])]
	return ok
}

func selectedFile(value interface{}) error {
	name, _ := value.(string)
	if name == "" {
		return models.ErrNoSelectedFile
	}
	return nil
}

func allowedExtension(value interface{}) error {
	name, _ := value.(string)
	if !AllowedFile(name) {
		return models.ErrInvalidExtension
	}
	return nil
}
