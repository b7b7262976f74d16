package rmbgsvc

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/yourname/rmbg_lite/pkg/rmbgproto"
)

const defaultStem = "image"

// DownloadName строит имя результата: <очищенное исходное имя>_rmbg.png.
func DownloadName(original string) string {
	return SanitizeFilename(original) + rmbgproto.ResultSuffix
}

// SanitizeFilename оставляет только ASCII-буквы, цифры, точку, дефис и подчёркивание.
// Разделители путей и пробелы превращаются в "_", диакритика отбрасывается после NFKD.
func SanitizeFilename(name string) string {
	name = norm.NFKD.String(name)

	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r == '/' || r == '\\' || unicode.IsSpace(r):
			b.WriteByte(' ')
		case r >= utf8.RuneSelf:
			// не-ASCII остаток после NFKD отбрасываем
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '_', r == '-':
			b.WriteRune(r)
		}
	}

	out := strings.Trim(strings.Join(strings.Fields(b.String()), "_"), "._")
	if out == "" {
		return defaultStem
	}

	return out
}
