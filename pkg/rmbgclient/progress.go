package rmbgclient

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

const (
	progressBarWidth     = 32
	progressRenderPeriod = 120 * time.Millisecond
)

// progressBar рисует ASCII-индикатор в out. При nil out индикатор выключен.
type progressBar struct {
	out        io.Writer
	prefix     string
	total      int64
	current    int64
	lastRender time.Time
	lastWidth  int
	finished   bool
	mu         sync.Mutex
}

func newProgressBar(out io.Writer, prefix string, total int64) *progressBar {
	if out == nil {
		return nil
	}
	return &progressBar{out: out, prefix: prefix, total: total}
}

func (p *progressBar) Add(n int64) {
	if p == nil || n <= 0 {
		return
	}
	p.mu.Lock()
	if p.finished {
		p.mu.Unlock()
		return
	}
	p.current += n
	p.mu.Unlock()
	p.render(false, "")
}

func (p *progressBar) render(force bool, suffix string) {
	if p == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.finished {
		return
	}
	now := time.Now()
	if !force && now.Sub(p.lastRender) < progressRenderPeriod {
		return
	}
	p.lastRender = now
	p.writeLocked(p.line()+suffix, "")
}

func (p *progressBar) Finish() {
	p.complete(" ✓")
}

func (p *progressBar) Fail(err error) {
	p.complete(fmt.Sprintf(" ✗ %v", err))
}

func (p *progressBar) complete(suffix string) {
	if p == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.finished {
		return
	}
	p.finished = true
	p.writeLocked(p.line()+suffix, "\n")
}

// writeLocked перерисовывает строку, затирая хвост предыдущей.
func (p *progressBar) writeLocked(text, end string) {
	pad := ""
	if p.lastWidth > len(text) {
		pad = strings.Repeat(" ", p.lastWidth-len(text))
	}
	p.lastWidth = len(text)
	fmt.Fprintf(p.out, "\r%s%s%s", text, pad, end)
}

// line: "<prefix> NN% |====    | done of total" или счётчик, если размер неизвестен.
func (p *progressBar) line() string {
	if p.total <= 0 {
		return p.prefix + " " + humanBytes(p.current)
	}

	done := min(p.current, p.total)
	filled := int(done * progressBarWidth / p.total)
	bar := strings.Repeat("=", filled) + strings.Repeat(" ", progressBarWidth-filled)

	return fmt.Sprintf("%s %3d%% |%s| %s of %s",
		p.prefix, done*100/p.total, bar, humanBytes(done), humanBytes(p.total))
}

type progressWriter struct {
	bar *progressBar
}

func (w progressWriter) Write(b []byte) (int, error) {
	w.bar.Add(int64(len(b)))
	return len(b), nil
}

type progressReadCloser struct {
	inner io.ReadCloser
	bar   *progressBar
}

func newProgressReadCloser(inner io.ReadCloser, bar *progressBar) io.ReadCloser {
	if bar == nil {
		return inner
	}
	return &progressReadCloser{inner: inner, bar: bar}
}

func (p *progressReadCloser) Read(b []byte) (int, error) {
	n, err := p.inner.Read(b)
	p.bar.Add(int64(n))
	switch {
	case err == io.EOF:
		p.bar.Finish()
	case err != nil:
		p.bar.Fail(err)
	}
	return n, err
}

func (p *progressReadCloser) Close() error {
	return p.inner.Close()
}

// humanBytes печатает размер в двоичных единицах с одним знаком после точки.
func humanBytes(v int64) string {
	const units = "KMGT"
	if v < 1024 {
		return fmt.Sprintf("%d B", v)
	}

	exp, div := 0, int64(1024)
	for n := v / 1024; n >= 1024 && exp < len(units)-1; n /= 1024 {
		div *= 1024
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(v)/float64(div), units[exp])
}
