package render

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/playercv/platform/internal/cv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngDataURI(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	for x := 0; x < 4; x++ {
		for y := 0; y < 3; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 16, B: 46, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func sampleDocument() cv.Document {
	return cv.Document{
		Header: cv.Header{
			FirstName: "Leo",
			LastName:  "MARTIN",
			Position:  "MILIEU CENTRAL",
			Flag:      cv.FlagFor("France"),
			Accent:    cv.RGB{R: 200, G: 16, B: 46},
		},
		Left: cv.LeftColumn{
			Profile:   []cv.InfoRow{{Label: "Âge", Value: "17 ans"}, {Label: "Pied fort", Value: "Droit"}},
			Qualities: []string{"Vitesse", "Vision du jeu"},
			Contact:   []cv.InfoRow{{Label: "E-mail", Value: "leo@example.com"}},
		},
		Right: cv.RightColumn{
			Seasons: []cv.SeasonBlock{{
				Club:     "FC Test",
				Division: "Ligue 1",
				Period:   "2023 - 2024",
				Badges:   []cv.Badge{{Kind: cv.BadgeState, Label: "Complète"}, {Kind: cv.BadgeCategory, Label: "U17"}},
				Stats:    []cv.Stat{{Label: "Matchs", Value: "20"}},
			}},
			Formations: []cv.FormationBlock{{Period: "2018 - 2020", Title: "Pôle espoirs", Details: "Internat"}},
			Interests:  []cv.InterestBlock{{Club: "LOSC", Year: "2024"}},
		},
	}
}

func TestNew(t *testing.T) {
	r, err := New(FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", r.ContentType())

	r, err = New(FormatHTML)
	require.NoError(t, err)
	assert.Equal(t, FormatHTML, r.Format())

	_, err = New("docx")
	assert.Error(t, err)
}

func TestPDFRenderer_WithoutImages(t *testing.T) {
	out, err := NewPDFRenderer().Render(sampleDocument())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestPDFRenderer_WithImagesAndAllFlagPatterns(t *testing.T) {
	src := pngDataURI(t)
	for _, country := range []string{"France", "Allemagne", "Maroc", "Suisse", "Atlantide"} {
		doc := sampleDocument()
		doc.Header.Flag = cv.FlagFor(country)
		doc.Header.PhotoSrc = src
		doc.Right.Seasons[0].ClubLogoSrc = src
		doc.Right.Seasons[0].DivisionLogoSrc = src
		doc.Right.Interests[0].LogoSrc = src

		out, err := NewPDFRenderer().Render(doc)
		require.NoError(t, err, country)
		assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), country)
	}
}

func TestPDFRenderer_SkipsUnsupportedImages(t *testing.T) {
	doc := sampleDocument()
	doc.Header.PhotoSrc = "https://example.com/photo.jpg"
	doc.Right.Seasons[0].ClubLogoSrc = "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte("<svg/>"))
	doc.Right.Seasons[0].DivisionLogoSrc = "data:image/png;base64,%%%"

	out, err := NewPDFRenderer().Render(doc)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestPDFRenderer_CorruptImageFails(t *testing.T) {
	doc := sampleDocument()
	doc.Header.PhotoSrc = "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("not a png"))

	_, err := NewPDFRenderer().Render(doc)
	assert.Error(t, err)
}

func TestHTMLRenderer(t *testing.T) {
	r, err := NewHTMLRenderer()
	require.NoError(t, err)

	doc := sampleDocument()
	doc.Header.PhotoSrc = pngDataURI(t)
	out, err := r.Render(doc)
	require.NoError(t, err)

	html := string(out)
	assert.Contains(t, html, "Leo MARTIN")
	assert.Contains(t, html, "MILIEU CENTRAL")
	assert.Contains(t, html, "#c8102e")
	assert.Contains(t, html, `src="data:image/png;base64,`)
	assert.Contains(t, html, "PARCOURS")
	assert.Contains(t, html, "FC Test")
	assert.Contains(t, html, "Pôle espoirs")
	assert.Contains(t, html, "🇫🇷")
	assert.Equal(t, 1, strings.Count(html, "<img"))
}

func TestHTMLRenderer_EscapesText(t *testing.T) {
	r, err := NewHTMLRenderer()
	require.NoError(t, err)

	doc := sampleDocument()
	doc.Left.Qualities = []string{"<script>alert(1)</script>"}
	doc.Header.PhotoSrc = "javascript:alert(1)"
	out, err := r.Render(doc)
	require.NoError(t, err)

	html := string(out)
	assert.NotContains(t, html, "<script>alert(1)</script>")
	assert.Contains(t, html, "&lt;script&gt;")
	assert.NotContains(t, html, "javascript:")
}

func TestDecodeDataURI(t *testing.T) {
	mime, data, ok := decodeDataURI("data:image/PNG;base64," + base64.StdEncoding.EncodeToString([]byte("x")))
	require.True(t, ok)
	assert.Equal(t, "image/png", mime)
	assert.Equal(t, []byte("x"), data)

	_, _, ok = decodeDataURI("data:text/plain,hello")
	assert.False(t, ok)
	_, _, ok = decodeDataURI("photos/leo.jpg")
	assert.False(t, ok)
}
