package rmbgclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/yourname/rmbg_lite/pkg/rmbgproto"
)

// APIError: отказ сервера с сообщением из {"error": ...}.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("rmbg: %d %s", e.StatusCode, e.Message)
}

type RemoveRequest struct {
	Filename string
	Reader   io.Reader
}

// Result: PNG без фона и имя, предложенное сервером.
type Result struct {
	Filename string
	PNG      []byte
}

type Client interface {
	// RemoveBackground Отправить изображение и получить PNG без фона
	RemoveBackground(ctx context.Context, baseURL string, req RemoveRequest) (Result, error)
}

type httpClient struct {
	c        *http.Client
	progress io.Writer
}

type Option func(*httpClient)

// WithHTTPClient задаёт транспорт, например с таймаутом.
func WithHTTPClient(c *http.Client) Option {
	return func(h *httpClient) {
		h.c = c
	}
}

// WithProgress включает индикатор выполнения в w.
func WithProgress(w io.Writer) Option {
	return func(h *httpClient) {
		h.progress = w
	}
}

// New создаёт HTTP-клиент.
func New(opts ...Option) Client {
	h := &httpClient{c: &http.Client{}}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// RemoveBackground загружает файл формой, как это делает страница сервиса.
func (h *httpClient) RemoveBackground(ctx context.Context, baseURL string, req RemoveRequest) (Result, error) {
	body, contentType, err := encodeForm(req)
	if err != nil {
		return Result{}, err
	}

	up := newProgressBar(h.progress, "Uploading "+req.Filename, int64(body.Len()))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimRight(baseURL, "/")+rmbgproto.UploadPath,
		io.TeeReader(body, progressWriter{bar: up}))
	if err != nil {
		return Result{}, err
	}
	httpReq.ContentLength = int64(body.Len())
	httpReq.Header.Set("Content-Type", contentType)
	httpReq.Header.Set(rmbgproto.HeaderRequestedBy, rmbgproto.RequestedByXHR)
	up.render(true, "")

	resp, err := h.c.Do(httpReq)
	if err != nil {
		up.Fail(err)
		return Result{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		apiErr := decodeError(resp)
		up.Fail(apiErr)
		return Result{}, apiErr
	}
	up.Finish()

	down := newProgressBar(h.progress, "Downloading result", resp.ContentLength)
	down.render(true, "")
	png, err := io.ReadAll(newProgressReadCloser(resp.Body, down))
	if err != nil {
		return Result{}, fmt.Errorf("read result: %w", err)
	}

	return Result{
		Filename: attachmentName(resp.Header.Get("Content-Disposition")),
		PNG:      png,
	}, nil
}

func encodeForm(req RemoveRequest) (*bytes.Buffer, string, error) {
	if req.Reader == nil {
		return nil, "", fmt.Errorf("rmbg: nil reader for %q", req.Filename)
	}

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	fw, err := mw.CreateFormFile(rmbgproto.FieldFile, req.Filename)
	if err != nil {
		return nil, "", err
	}
	if _, err = io.Copy(fw, req.Reader); err != nil {
		return nil, "", err
	}
	if err = mw.Close(); err != nil {
		return nil, "", err
	}

	return body, mw.FormDataContentType(), nil
}

// decodeError достаёт сообщение из JSON; для сторонних ответов остаётся текст статуса.
func decodeError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}

	mt, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if mt != "application/json" {
		return apiErr
	}

	var body rmbgproto.ErrorBody
	if err := json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&body); err == nil && body.Error != "" {
		apiErr.Message = body.Error
	}
	return apiErr
}

// attachmentName оставляет от предложенного сервером имени только базовое имя файла.
// Пустое имя, "." и ".." отбрасываются, вызывающий подставит своё.
func attachmentName(header string) string {
	_, params, err := mime.ParseMediaType(header)
	if err != nil {
		return ""
	}

	name := filepath.Base(strings.ReplaceAll(params["filename"], "\\", "/"))
	switch name {
	case "", ".", "..", "/":
		return ""
	}
	return name
}
