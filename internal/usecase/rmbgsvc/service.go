package rmbgsvc

import (
	"context"

	"github.com/yourname/rmbg_lite/internal/matting"
	"github.com/yourname/rmbg_lite/internal/models"
)

type (
	// Service объединяет проверку загрузки и удаление фона.
	Service interface {
		Validate(upload models.Upload) error
		Process(ctx context.Context, upload models.Upload) (models.Result, error)
	}
)

type Deps struct {
	Remover   matting.Remover
	MaxPixels int
}

// Images не хранит состояния между запросами, один экземпляр обслуживает все.
type Images struct {
	Deps
}

// New конструирует сервис обработки с заданными зависимостями.
func New(deps Deps) *Images {
	return &Images{Deps: deps}
}

var _ Service = (*Images)(nil)
