package rmbgsvc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"

	_ "image/jpeg"

	"github.com/yourname/rmbg_lite/internal/models"
)

// Process декодирует загрузку, удаляет фон и кодирует результат в PNG.
// Любой сбой возвращается как *models.ProcessError с этапом, на котором он случился.
func (s *Images) Process(ctx context.Context, upload models.Upload) (models.Result, error) {
	img, err := s.decode(upload.Data)
	if err != nil {
		return models.Result{}, &models.ProcessError{Stage: models.StageDecode, Err: err}
	}

	out, err := s.remove(ctx, img)
	if err != nil {
		return models.Result{}, &models.ProcessError{Stage: models.StageRemove, Err: err}
	}

	var buf bytes.Buffer
	if err = png.Encode(&buf, out); err != nil {
		return models.Result{}, &models.ProcessError{Stage: models.StageEncode, Err: err}
	}

	return models.Result{
		Filename: DownloadName(upload.Filename),
		PNG:      buf.Bytes(),
	}, nil
}

// decode сначала читает только заголовок, чтобы не распаковывать слишком большие картинки.
func (s *Images) decode(data []byte) (image.Image, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if s.MaxPixels > 0 && cfg.Width*cfg.Height > s.MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d", models.ErrImageTooLarge, cfg.Width, cfg.Height)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	return img, nil
}

// remove вызывает внешний бэкенд; паника бэкенда превращается в ошибку.
func (s *Images) remove(ctx context.Context, img image.Image) (out image.Image, err error) {
	if s.Remover == nil {
		return nil, errors.New("remover is not configured")
	}

	defer func() {
		if p := recover(); p != nil {
			out, err = nil, fmt.Errorf("remover panic: %v", p)
		}
	}()

	out, err = s.Remover.Remove(ctx, img)
	if err == nil && out == nil {
		err = errors.New("remover returned no image")
	}

	return out, err
}
