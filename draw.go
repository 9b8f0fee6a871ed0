package main

import (
	"io"
	"math"

	"github.com/go-pdf/fpdf"
)

// ---------------------------------------------------------------------------
// Drawing Surface
// ---------------------------------------------------------------------------

// Surface is the subset of *fpdf.Fpdf the report builders draw through.
type Surface interface {
	AddPage()
	PageNo() int
	PageCount() int
	GetPageSize() (width, height float64)
	SetFillColor(r, g, b int)
	SetDrawColor(r, g, b int)
	SetTextColor(r, g, b int)
	SetLineWidth(width float64)
	SetFont(familyStr, styleStr string, size float64)
	SetAlpha(alpha float64, blendModeStr string)
	Rect(x, y, w, h float64, styleStr string)
	RoundedRect(x, y, w, h, r float64, corners string, stylestr string)
	Circle(x, y, r float64, styleStr string)
	Line(x1, y1, x2, y2 float64)
	Text(x, y float64, txtStr string)
	GetStringWidth(s string) float64
	SplitLines(txt []byte, w float64) [][]byte
	RegisterImageOptionsReader(imgName string, options fpdf.ImageOptions, r io.Reader) *fpdf.ImageInfoType
	ImageOptions(imageNameStr string, x, y, w, h float64, flow bool, options fpdf.ImageOptions, link int, linkStr string)
	Output(w io.Writer) error
	Err() bool
	Error() error
}

var _ Surface = (*fpdf.Fpdf)(nil)

// ---------------------------------------------------------------------------
// Colors
// ---------------------------------------------------------------------------

type rgb [3]int

var (
	colorBackgroundTop    = rgb{252, 249, 245}
	colorBackgroundBottom = rgb{240, 245, 235}
	colorPrimary          = rgb{45, 80, 60}
	colorTextDark         = rgb{40, 44, 52}
	colorTextMuted        = rgb{110, 118, 125}
	colorWhite            = rgb{255, 255, 255}
	colorShadow           = rgb{220, 220, 220}

	colorAbilities     = rgb{76, 132, 96}
	colorSubjectMatter = rgb{58, 110, 165}
	colorCircumstances = rgb{196, 132, 48}
	colorRelationships = rgb{150, 90, 160}
	colorEnergizers    = rgb{46, 139, 87}
	colorAvoid         = rgb{192, 80, 77}
	colorEnvironments  = rgb{70, 130, 180}
	colorGrowth        = rgb{218, 140, 40}
	colorCareers       = rgb{60, 60, 120}
	colorDeepDives     = rgb{100, 100, 100}
)

func setFill(s Surface, c rgb) { s.SetFillColor(c[0], c[1], c[2]) }
func setDraw(s Surface, c rgb) { s.SetDrawColor(c[0], c[1], c[2]) }
func setText(s Surface, c rgb) { s.SetTextColor(c[0], c[1], c[2]) }

// tint blends c toward white. opacity 1 keeps the colour, 0 yields white.
func tint(c rgb, opacity float64) rgb {
	opacity = math.Max(0, math.Min(1, opacity))
	var out rgb
	for i := range c {
		out[i] = int(math.Round(float64(c[i])*opacity + 255*(1-opacity)))
	}
	return out
}

// ---------------------------------------------------------------------------
// Block Primitives
// ---------------------------------------------------------------------------

const (
	gradientSteps       = 20
	fontFamily          = "Helvetica"
	bodyFontSize        = 10.0
	lineHeight          = 14.0
	sectionHeaderHeight = 25.0
	sectionBannerHeight = 20.0
	bannerRadius        = 4.0
	bulletIndent        = 15.0
	bulletRadius        = 2.0
	shadowOffset        = 2.0
	panelPadding        = 12.0
)

// gradientColors returns the fill colour of each strip, interpolating
// linearly from start to end.
func gradientColors(start, end rgb, steps int) []rgb {
	if steps < 1 {
		steps = 1
	}
	colors := make([]rgb, steps)
	for i := 0; i < steps; i++ {
		ratio := 0.0
		if steps > 1 {
			ratio = float64(i) / float64(steps-1)
		}
		for c := range start {
			colors[i][c] = int(math.Round(float64(start[c]) + float64(end[c]-start[c])*ratio))
		}
	}
	return colors
}

// drawGradient approximates a vertical gradient with horizontal strips.
func drawGradient(s Surface, x, y, w, h float64, start, end rgb, steps int) {
	colors := gradientColors(start, end, steps)
	stripHeight := h / float64(len(colors))
	for i, c := range colors {
		setFill(s, c)
		// Overlap strips slightly so no hairline gap shows between them.
		s.Rect(x, y+float64(i)*stripHeight, w, stripHeight+0.5, "F")
	}
}

// drawRoundedRect draws a rounded rectangle; style is "D", "F" or "FD".
func drawRoundedRect(s Surface, x, y, w, h, r float64, style string) {
	s.RoundedRect(x, y, w, h, r, "1234", style)
}

// drawShadow draws a flat gray box offset beneath a content box.
func drawShadow(s Surface, x, y, w, h, r float64) {
	setFill(s, colorShadow)
	drawRoundedRect(s, x+shadowOffset, y+shadowOffset, w, h, r, "F")
}

// drawSectionHeader draws a coloured banner with a bold title. The returned
// height is constant; titles are expected to fit on one line.
func drawSectionHeader(s Surface, x, y, w float64, title string, accent rgb) float64 {
	setFill(s, accent)
	drawRoundedRect(s, x, y, w, sectionBannerHeight, bannerRadius, "F")

	s.SetFont(fontFamily, "B", 12)
	setText(s, colorWhite)
	s.Text(x+10, y+14, pdfText(title))

	return sectionHeaderHeight
}

// bulletHeight measures the wrapped lines drawBullet would draw.
func bulletHeight(s Surface, w float64, text string) float64 {
	s.SetFont(fontFamily, "", bodyFontSize)
	return float64(len(wrapText(s, pdfText(text), w-bulletIndent))) * lineHeight
}

// drawBullet draws a filled circle marker and the word-wrapped item text.
// It returns the height consumed by the wrapped lines.
func drawBullet(s Surface, x, y, w float64, text string, accent rgb) float64 {
	s.SetFont(fontFamily, "", bodyFontSize)
	lines := wrapText(s, pdfText(text), w-bulletIndent)
	if len(lines) == 0 {
		return 0
	}

	setFill(s, accent)
	s.Circle(x+6, y+bodyFontSize-3.5, bulletRadius, "F")

	setText(s, colorTextDark)
	for i, line := range lines {
		s.Text(x+bulletIndent, y+bodyFontSize+float64(i)*lineHeight, line)
	}
	return float64(len(lines)) * lineHeight
}

// panelHeight measures a callout panel holding a title and wrapped body text.
func panelHeight(s Surface, w float64, body string) (float64, []string) {
	s.SetFont(fontFamily, "", bodyFontSize)
	lines := wrapText(s, pdfText(body), w-2*panelPadding)
	return 2*panelPadding + lineHeight + 4 + float64(len(lines))*lineHeight, lines
}

// drawPanel draws a tinted, shadowed callout panel and returns its height.
func drawPanel(s Surface, x, y, w float64, title, body string, accent rgb, opacity float64) float64 {
	h, lines := panelHeight(s, w, body)

	drawShadow(s, x, y, w, h, 6)
	setFill(s, tint(accent, opacity))
	setDraw(s, accent)
	s.SetLineWidth(0.8)
	drawRoundedRect(s, x, y, w, h, 6, "FD")

	s.SetFont(fontFamily, "B", 12)
	setText(s, accent)
	s.Text(x+panelPadding, y+panelPadding+bodyFontSize, pdfText(title))

	s.SetFont(fontFamily, "", bodyFontSize)
	setText(s, colorTextDark)
	top := y + panelPadding + lineHeight + 4
	for i, line := range lines {
		s.Text(x+panelPadding, top+bodyFontSize+float64(i)*lineHeight, line)
	}
	return h
}
