package rmbgclient

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/yourname/rmbg_lite/pkg/rmbgproto"
)

func TestRemoveBackground_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != rmbgproto.UploadPath {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get(rmbgproto.HeaderRequestedBy) != rmbgproto.RequestedByXHR {
			t.Errorf("no programmatic marker")
		}
		f, hdr, err := r.FormFile(rmbgproto.FieldFile)
		if err != nil {
			t.Errorf("form file: %v", err)
			return
		}
		defer f.Close()
		got, _ := io.ReadAll(f)
		if hdr.Filename != "cat.png" || string(got) != "raw image" {
			t.Errorf("got %q %q", hdr.Filename, got)
		}

		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Content-Disposition", "attachment; filename=cat.png_rmbg.png")
		_, _ = w.Write([]byte("png bytes"))
	}))
	defer srv.Close()

	var progress bytes.Buffer
	c := New(WithProgress(&progress))

	res, err := c.RemoveBackground(context.Background(), srv.URL+"/", RemoveRequest{
		Filename: "cat.png",
		Reader:   strings.NewReader("raw image"),
	})
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if res.Filename != "cat.png_rmbg.png" {
		t.Fatalf("filename = %q", res.Filename)
	}
	if string(res.PNG) != "png bytes" {
		t.Fatalf("body = %q", res.PNG)
	}

	out := progress.String()
	if !strings.Contains(out, "Uploading cat.png") || !strings.Contains(out, "Downloading result") {
		t.Fatalf("progress output = %q", out)
	}
	if strings.Count(out, "✓") != 2 {
		t.Fatalf("expected two finished bars: %q", out)
	}
}

func TestRemoveBackground_APIError(t *testing.T) {
	tests := []struct {
		name     string
		handler  http.HandlerFunc
		wantCode int
		wantMsg  string
	}{
		{
			name: "json error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"error":"Invalid file extension"}`))
			},
			wantCode: http.StatusBadRequest,
			wantMsg:  "Invalid file extension",
		},
		{
			name: "plain text",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "upstream down", http.StatusBadGateway)
			},
			wantCode: http.StatusBadGateway,
			wantMsg:  http.StatusText(http.StatusBadGateway),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			_, err := New().RemoveBackground(context.Background(), srv.URL, RemoveRequest{
				Filename: "a.txt",
				Reader:   strings.NewReader("x"),
			})

			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *APIError, got %v", err)
			}
			if apiErr.StatusCode != tt.wantCode || apiErr.Message != tt.wantMsg {
				t.Fatalf("got %+v", apiErr)
			}
		})
	}
}

func TestRemoveBackground_AttachmentNameStaysLocal(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{header: `attachment; filename="cat.png_rmbg.png"`, want: "cat.png_rmbg.png"},
		{header: `attachment; filename="../../../tmp/evil.png"`, want: "evil.png"},
		{header: `attachment; filename="/etc/cron.d/job"`, want: "job"},
		{header: `attachment; filename="..\\..\\win.png"`, want: "win.png"},
		{header: `attachment; filename=".."`, want: ""},
		{header: `attachment; filename="/"`, want: ""},
		{header: `attachment`, want: ""},
		{header: `garbage;;`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "image/png")
				w.Header().Set("Content-Disposition", tt.header)
				_, _ = w.Write([]byte("png"))
			}))
			defer srv.Close()

			res, err := New().RemoveBackground(context.Background(), srv.URL, RemoveRequest{
				Filename: "cat.png",
				Reader:   strings.NewReader("raw"),
			})
			if err != nil {
				t.Fatalf("remove: %v", err)
			}
			if res.Filename != tt.want {
				t.Fatalf("filename = %q, want %q", res.Filename, tt.want)
			}
		})
	}
}

func TestRemoveBackground_NilReader(t *testing.T) {
	if _, err := New().RemoveBackground(context.Background(), "http://127.0.0.1:1", RemoveRequest{Filename: "a.png"}); err == nil {
		t.Fatal("expected error")
	}
}

func TestProgressBar_Line(t *testing.T) {
	var out bytes.Buffer
	bar := newProgressBar(&out, "Uploading", 2048)
	bar.Add(1024)
	bar.Finish()

	got := out.String()
	if !strings.Contains(got, " 50% |================                | 1.0 KB of 2.0 KB ✓\n") {
		t.Fatalf("line = %q", got)
	}

	var nilBar *progressBar
	nilBar.Add(1)
	nilBar.Finish()
}

func TestHumanBytes(t *testing.T) {
	tests := map[int64]string{
		0:       "0 B",
		1023:    "1023 B",
		1536:    "1.5 KB",
		5 << 20: "5.0 MB",
	}
	for in, want := range tests {
		if got := humanBytes(in); got != want {
			t.Errorf("humanBytes(%d) = %q, want %q", in, got, want)
		}
	}
}
