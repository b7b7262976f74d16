// Package matting отделяет передний план от фона. Сервис относится к алгоритму
// как к чёрному ящику: на вход декодированное изображение, на выход новое
// изображение с прозрачным фоном.
package matting

import (
	"context"
	"fmt"
	"image"

	"github.com/yourname/rmbg_lite/internal/config"
)

//go:generate mockgen -destination=mocks/mock_remover.go -package=mocks . Remover

// Remover удаляет фон с изображения.
type Remover interface {
	Remove(ctx context.Context, img image.Image) (image.Image, error)
}

// Pinger реализуют бэкенды, у которых есть внешняя зависимость для health-check'а.
type Pinger interface {
	Ping(ctx context.Context) error
}

// New выбирает бэкенд по конфигурации.
func New(cfg config.Matting) (Remover, error) {
	switch cfg.Backend {
	case config.BackendRembg:
		return NewRembgRemover(cfg.RembgURL, cfg.RembgModel, cfg.RembgTimeout), nil
	case config.BackendColorKey, "":
		return NewColorKeyRemover(cfg.ColorTolerance), nil
	default:
		return nil, fmt.Errorf("unknown matting backend %q", cfg.Backend)
	}
}
