package matting

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	_ "image/jpeg"
)

const (
	rembgRemovePath   = "/api/remove"
	rembgFieldFile    = "file"
	rembgFieldModel   = "model"
	rembgErrBodyLimit = 512
)

var pingHTTPClient = &http.Client{Timeout: 2 * time.Second}

// RembgRemover отправляет изображение в rembg-сервер (`rembg s`) и
// декодирует ответ. Модель и алгоритм живут целиком на стороне сервера.
type RembgRemover struct {
	baseURL string
	model   string
	c       *http.Client
}

// NewRembgRemover создаёт клиента; timeout <= 0 означает без ограничения.
func NewRembgRemover(baseURL, model string, timeout time.Duration) *RembgRemover {
	return &RembgRemover{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   strings.TrimSpace(model),
		c:       &http.Client{Timeout: timeout},
	}
}

var (
	_ Remover = (*RembgRemover)(nil)
	_ Pinger  = (*RembgRemover)(nil)
)

// Remove кодирует изображение в PNG и загружает его multipart-полем file.
func (r *RembgRemover) Remove(ctx context.Context, img image.Image) (image.Image, error) {
	body, contentType, err := r.encodeRequest(img)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+rembgRemovePath, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "image/png")

	resp, err := r.c.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rembg request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, rembgErrBodyLimit))
		return nil, fmt.Errorf("rembg remove failed: %s: %s", resp.Status, strings.TrimSpace(string(msg)))
	}

	out, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decode rembg response: %w", err)
	}

	return out, nil
}

func (r *RembgRemover) encodeRequest(img image.Image) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)

	fw, err := mw.CreateFormFile(rembgFieldFile, "image.png")
	if err != nil {
		return nil, "", err
	}
	if err = png.Encode(fw, img); err != nil {
		return nil, "", fmt.Errorf("encode rembg request: %w", err)
	}
	if r.model != "" {
		if err = mw.WriteField(rembgFieldModel, r.model); err != nil {
			return nil, "", err
		}
	}
	if err = mw.Close(); err != nil {
		return nil, "", err
	}

	return body, mw.FormDataContentType(), nil
}

// Ping проверяет, что rembg-сервер отвечает.
func (r *RembgRemover) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/", nil)
	if err != nil {
		return err
	}

	resp, err := pingHTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("rembg health check failed: %s", resp.Status)
	}

	return nil
}
