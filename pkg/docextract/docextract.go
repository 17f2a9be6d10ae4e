// Package docextract implements the document text-extraction boundary
// spec.md §6 describes: extract(path) → text. PDF, DOCX, and WAV are the
// external-collaborator formats the spec carves out of this repo's core
// budget (§1 "Out of scope"); TXT is cheap enough in Go's standard
// library plus one already-vendored encoding package that it is worth
// implementing for real rather than stubbing, following the original
// parser's exact fallback behavior.
package docextract

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/plcforge/plcforge/internal/domain"
)

// Extractor implements retrieval.Extractor for plain-text uploads, and
// reports every other supported extension as unimplemented-for-now
// rather than silently mis-reading it.
type Extractor struct{}

// New returns a TXT-only Extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extract reads path, dispatching on its extension. Only .txt is read
// for real; .pdf/.docx/.doc/.wav are recognized formats with no reader
// wired in this repo and fail with UnsupportedFormat, matching
// document_parser.py's parse_file dispatch shape.
func (e *Extractor) Extract(_ context.Context, path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		return extractTXT(path)
	case ".pdf", ".docx", ".doc", ".wav":
		return "", domain.NewUnsupportedFormat(path, filepath.Ext(path))
	default:
		return "", domain.NewUnsupportedFormat(path, filepath.Ext(path))
	}
}

// extractTXT reads path as UTF-8, falling back to Latin-1 (ISO-8859-1)
// when the bytes aren't valid UTF-8 — the same two-attempt strategy
// document_parser.py's parse_txt uses.
func extractTXT(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", domain.NewExtractFailed(path, err.Error())
	}
	if utf8.Valid(raw) {
		return string(raw), nil
	}

	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return "", domain.NewExtractFailed(path, "invalid utf-8 and latin-1 decode failed: "+err.Error())
	}
	return string(decoded), nil
}
