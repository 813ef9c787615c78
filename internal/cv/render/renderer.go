// Package render turns a cv.Document into bytes. Backends are pure: every
// image must already be resolved into the document.
package render

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/playercv/platform/internal/cv"
)

// Format names an output backend.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatHTML Format = "html"
)

// Renderer is one output backend.
type Renderer interface {
	Render(doc cv.Document) ([]byte, error)
	ContentType() string
	Format() Format
}

// New returns the renderer for f.
func New(f Format) (Renderer, error) {
	switch f {
	case FormatPDF:
		return NewPDFRenderer(), nil
	case FormatHTML:
		return NewHTMLRenderer()
	default:
		return nil, fmt.Errorf("unknown document format %q", f)
	}
}

// decodeDataURI splits a base64 data URI into its mime type and bytes.
func decodeDataURI(src string) (mime string, data []byte, ok bool) {
	rest, found := strings.CutPrefix(src, "data:")
	if !found {
		return "", nil, false
	}
	meta, payload, found := strings.Cut(rest, ",")
	if !found {
		return "", nil, false
	}
	mime, encoding, _ := strings.Cut(meta, ";")
	if encoding != "base64" {
		return "", nil, false
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, false
	}
	return strings.ToLower(mime), data, true
}
