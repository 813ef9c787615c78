package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/playercv/platform/internal/cv"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templateFuncs = template.FuncMap{
	"imgsrc": imageSource,
	"rgb":    cssColor,
}

// HTMLRenderer renders the browser preview. Text is escaped by html/template.
type HTMLRenderer struct {
	tmpl *template.Template
}

// NewHTMLRenderer parses the embedded template.
func NewHTMLRenderer() (*HTMLRenderer, error) {
	tmpl, err := template.New("cv.html.tmpl").Funcs(templateFuncs).ParseFS(templateFS, "templates/cv.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse cv template: %w", err)
	}
	return &HTMLRenderer{tmpl: tmpl}, nil
}

func (r *HTMLRenderer) ContentType() string { return "text/html; charset=utf-8" }
func (r *HTMLRenderer) Format() Format      { return FormatHTML }

// Render executes the template into a standalone page.
func (r *HTMLRenderer) Render(doc cv.Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, doc); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	return buf.Bytes(), nil
}

// imageSource trusts only inline images and http(s) URLs; anything else
// renders no image.
func imageSource(src string) template.URL {
	lower := strings.ToLower(src)
	if strings.HasPrefix(lower, "data:image/") || strings.HasPrefix(lower, "https://") || strings.HasPrefix(lower, "http://") {
		return template.URL(src)
	}
	return ""
}

func cssColor(c cv.RGB) template.CSS {
	return template.CSS(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}
