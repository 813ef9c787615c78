package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/playercv/platform/internal/cv"
)

// A4 portrait geometry in millimetres.
const (
	pageW      = 210.0
	pageH      = 297.0
	headerH    = 42.0
	leftW      = 70.0
	leftPad    = 6.0
	rightX     = leftW + 6.0
	rightW     = pageW - rightX - 6.0
	logoSize   = 11.0
	photoSize  = 32.0
	flagW      = 18.0
	flagH      = 12.0
	lineHeight = 5.0
)

var fpdfImageTypes = map[string]string{
	"image/png":  "PNG",
	"image/jpeg": "JPG",
	"image/jpg":  "JPG",
	"image/gif":  "GIF",
}

// PDFRenderer lays the document out on one A4 page with fpdf.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

func (r *PDFRenderer) ContentType() string { return "application/pdf" }
func (r *PDFRenderer) Format() Format      { return FormatPDF }

// Render returns the PDF bytes. Undecodable image bytes fail the render.
func (r *PDFRenderer) Render(doc cv.Document) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	pdf.SetTitle("CV "+doc.Header.FullName(), true)
	pdf.SetCreator("playercv", true)
	pdf.AddPage()

	p := &pdfPage{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor(""), accent: doc.Header.Accent}
	p.header(doc.Header)
	p.left(doc.Left)
	p.right(doc.Right)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

type pdfPage struct {
	pdf    *fpdf.Fpdf
	tr     func(string) string
	accent cv.RGB
	images int
}

func (p *pdfPage) fill(c cv.RGB)  { p.pdf.SetFillColor(int(c.R), int(c.G), int(c.B)) }
func (p *pdfPage) color(c cv.RGB) { p.pdf.SetTextColor(int(c.R), int(c.G), int(c.B)) }

func (p *pdfPage) header(h cv.Header) {
	p.fill(cv.RGB{})
	p.pdf.Rect(0, 0, pageW, headerH, "F")

	textX := leftPad
	if p.image(h.PhotoSrc, leftPad, (headerH-photoSize)/2, photoSize, photoSize) {
		textX = leftPad + photoSize + 6
	}

	p.color(cv.RGB{R: 255, G: 255, B: 255})
	p.pdf.SetFont("Helvetica", "B", 24)
	p.pdf.Text(textX, 18, p.tr(h.FullName()))

	p.color(p.accent)
	p.pdf.SetFont("Helvetica", "B", 12)
	position := h.Position
	if h.SecondaryPosition != "" {
		position += " / " + h.SecondaryPosition
	}
	p.pdf.Text(textX, 28, p.tr(position))

	p.flag(h.Flag, pageW-leftPad-flagW, (headerH-flagH)/2)
}

// flag draws the band description; the glyph is an HTML-only affordance.
func (p *pdfPage) flag(f cv.Flag, x, y float64) {
	if len(f.Bands) == 0 {
		return
	}
	switch f.Pattern {
	case cv.PatternVertical:
		w := flagW / float64(len(f.Bands))
		for i, band := range f.Bands {
			p.fill(band)
			p.pdf.Rect(x+float64(i)*w, y, w, flagH, "F")
		}
	case cv.PatternHorizontal:
		h := flagH / float64(len(f.Bands))
		for i, band := range f.Bands {
			p.fill(band)
			p.pdf.Rect(x, y+float64(i)*h, flagW, h, "F")
		}
	case cv.PatternCross:
		p.fill(f.Bands[0])
		p.pdf.Rect(x, y, flagW, flagH, "F")
		if len(f.Bands) > 1 {
			p.fill(f.Bands[1])
			p.pdf.Rect(x, y+flagH*0.4, flagW, flagH*0.2, "F")
			p.pdf.Rect(x+flagW*0.42, y, flagW*0.16, flagH, "F")
		}
	default:
		p.fill(f.Bands[0])
		p.pdf.Rect(x, y, flagW, flagH, "F")
	}
	p.pdf.SetDrawColor(255, 255, 255)
	p.pdf.Rect(x, y, flagW, flagH, "D")
}

func (p *pdfPage) left(l cv.LeftColumn) {
	p.fill(p.accent)
	p.pdf.Rect(0, headerH, leftW, pageH-headerH, "F")
	p.pdf.SetXY(leftPad, headerH+6)

	p.leftTitle("PROFIL")
	p.rows(l.Profile)

	if len(l.Qualities) > 0 {
		p.leftTitle("QUALITÉS")
		p.pdf.SetFont("Helvetica", "", 10)
		for _, q := range l.Qualities {
			p.pdf.SetX(leftPad)
			p.pdf.CellFormat(leftW-2*leftPad, lineHeight+1, p.tr("• "+q), "", 1, "L", false, 0, "")
		}
	}

	p.leftTitle("CONTACT")
	p.rows(l.Contact)

	if len(l.Agent) > 0 {
		p.leftTitle("AGENT")
		p.rows(l.Agent)
	}
}

func (p *pdfPage) leftTitle(title string) {
	p.pdf.Ln(3)
	p.pdf.SetX(leftPad)
	p.color(cv.RGB{R: 255, G: 255, B: 255})
	p.pdf.SetFont("Helvetica", "B", 12)
	p.pdf.CellFormat(leftW-2*leftPad, 7, p.tr(title), "B", 1, "L", false, 0, "")
	p.pdf.Ln(1)
}

func (p *pdfPage) rows(rows []cv.InfoRow) {
	w := leftW - 2*leftPad
	for _, row := range rows {
		p.pdf.SetX(leftPad)
		p.pdf.SetFont("Helvetica", "B", 9)
		p.pdf.CellFormat(w, 4, p.tr(row.Label), "", 1, "L", false, 0, "")
		p.pdf.SetX(leftPad)
		p.pdf.SetFont("Helvetica", "", 10)
		p.pdf.MultiCell(w, lineHeight, p.tr(row.Value), "", "L", false)
	}
}

func (p *pdfPage) right(r cv.RightColumn) {
	p.pdf.SetXY(rightX, headerH+6)

	if len(r.Seasons) > 0 {
		p.rightTitle("PARCOURS")
		for _, s := range r.Seasons {
			p.season(s)
		}
	}
	if len(r.Formations) > 0 {
		p.rightTitle("FORMATION")
		for _, f := range r.Formations {
			p.formation(f)
		}
	}
	if len(r.Interests) > 0 {
		p.rightTitle("INTÉRÊTS")
		for _, it := range r.Interests {
			p.interest(it)
		}
	}
}

func (p *pdfPage) rightTitle(title string) {
	p.pdf.Ln(2)
	p.pdf.SetX(rightX)
	p.color(p.accent)
	p.pdf.SetDrawColor(int(p.accent.R), int(p.accent.G), int(p.accent.B))
	p.pdf.SetFont("Helvetica", "B", 13)
	p.pdf.CellFormat(rightW, 8, p.tr(title), "B", 1, "L", false, 0, "")
	p.pdf.Ln(2)
}

func (p *pdfPage) season(s cv.SeasonBlock) {
	top := p.pdf.GetY()
	textX := rightX
	if p.image(s.ClubLogoSrc, rightX, top, logoSize, logoSize) {
		textX = rightX + logoSize + 3
	}
	textW := rightX + rightW - textX
	if p.image(s.DivisionLogoSrc, rightX+rightW-logoSize, top, logoSize, logoSize) {
		textW -= logoSize + 2
	}

	p.color(cv.RGB{R: 20, G: 20, B: 20})
	p.pdf.SetXY(textX, top)
	p.pdf.SetFont("Helvetica", "B", 11)
	p.pdf.CellFormat(textW, lineHeight+1, p.tr(s.Club), "", 1, "L", false, 0, "")

	p.pdf.SetX(textX)
	p.pdf.SetFont("Helvetica", "", 9)
	period := s.Period
	if s.ApproximatePeriod {
		period += " (env.)"
	}
	p.pdf.CellFormat(textW, lineHeight, p.tr(s.Division+"  |  "+period), "", 1, "L", false, 0, "")

	labels := make([]string, len(s.Badges))
	for i, b := range s.Badges {
		labels[i] = b.Label
	}
	p.pdf.SetX(textX)
	p.color(p.accent)
	p.pdf.SetFont("Helvetica", "B", 8)
	p.pdf.CellFormat(textW, lineHeight, p.tr(strings.Join(labels, " · ")), "", 1, "L", false, 0, "")

	if len(s.Stats) > 0 {
		p.pdf.SetX(textX)
		p.color(cv.RGB{R: 60, G: 60, B: 60})
		p.pdf.SetFont("Helvetica", "", 9)
		cellW := textW / float64(len(s.Stats))
		for i, st := range s.Stats {
			ln := 0
			if i == len(s.Stats)-1 {
				ln = 1
			}
			p.pdf.CellFormat(cellW, lineHeight, p.tr(st.Label+" : "+st.Value), "", ln, "L", false, 0, "")
		}
	}

	bottom := max(p.pdf.GetY(), top+logoSize)
	p.pdf.SetXY(rightX, bottom+2)
}

func (p *pdfPage) formation(f cv.FormationBlock) {
	p.color(cv.RGB{R: 20, G: 20, B: 20})
	p.pdf.SetX(rightX)
	p.pdf.SetFont("Helvetica", "B", 10)
	p.pdf.MultiCell(rightW, lineHeight, p.tr(f.Period+"  "+f.Title), "", "L", false)
	if f.Details != "" {
		p.pdf.SetX(rightX)
		p.pdf.SetFont("Helvetica", "", 9)
		p.pdf.MultiCell(rightW, lineHeight-0.5, p.tr(f.Details), "", "L", false)
	}
	p.pdf.Ln(1.5)
}

func (p *pdfPage) interest(it cv.InterestBlock) {
	top := p.pdf.GetY()
	textX := rightX
	if p.image(it.LogoSrc, rightX, top, 8, 8) {
		textX = rightX + 11
	}
	p.color(cv.RGB{R: 20, G: 20, B: 20})
	p.pdf.SetXY(textX, top+1.5)
	p.pdf.SetFont("Helvetica", "", 10)
	p.pdf.CellFormat(rightX+rightW-textX, lineHeight, p.tr(it.Club+" ("+it.Year+")"), "", 1, "L", false, 0, "")
	p.pdf.SetXY(rightX, max(p.pdf.GetY(), top+8)+1.5)
}

// image draws src fitted into the box. It reports whether anything was drawn;
// sources fpdf cannot embed are skipped, undecodable bytes set the pdf error.
func (p *pdfPage) image(src string, x, y, w, h float64) bool {
	mime, data, ok := decodeDataURI(src)
	if !ok {
		return false
	}
	imageType, ok := fpdfImageTypes[mime]
	if !ok {
		return false
	}

	name := fmt.Sprintf("img%d", p.images)
	p.images++
	opts := fpdf.ImageOptions{ImageType: imageType}
	info := p.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
	if !p.pdf.Ok() || info == nil || info.Width() <= 0 || info.Height() <= 0 {
		return false
	}

	scale := min(w/info.Width(), h/info.Height())
	dw, dh := info.Width()*scale, info.Height()*scale
	p.pdf.ImageOptions(name, x+(w-dw)/2, y+(h-dh)/2, dw, dh, false, opts, 0, "")
	return true
}
