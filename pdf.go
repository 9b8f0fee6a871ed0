package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"k8s.io/klog/v2"
)

// ---------------------------------------------------------------------------
// Document
// ---------------------------------------------------------------------------

// Document is a finished, fixed-size multi-page report.
type Document struct {
	pdf  Surface
	data []byte
}

// PageCount returns the number of pages in build order.
func (d *Document) PageCount() int {
	return d.pdf.PageCount()
}

// Surface gives access to the underlying drawing surface.
func (d *Document) Surface() Surface {
	return d.pdf
}

// Bytes renders the document. The result is cached; fpdf drains its buffer
// on output, so the document is only serialised once.
func (d *Document) Bytes() ([]byte, error) {
	if d.data != nil {
		return d.data, nil
	}
	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("PDF output error: %w", err)
	}
	d.data = buf.Bytes()
	return d.data, nil
}

// Save writes the document to filename.
func (d *Document) Save(filename string) error {
	data, err := d.Bytes()
	if err != nil {
		return err
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	klog.Infof("saved %s (%d pages, %d bytes)", filename, d.PageCount(), len(data))
	return nil
}

// ReportOptions carries everything a build needs besides the analysis data.
// Builds are deterministic for identical options and input.
type ReportOptions struct {
	Name          string
	Premium       bool
	Reference     string
	Author        string
	GeneratedAt   time.Time
	RevisitBy     time.Time
	FooterReserve float64
}

func (o ReportOptions) title() string {
	if o.Premium {
		return "Premium SEED Profile"
	}
	return "SEED Profile"
}

// newReportPDF creates an A4 document measured in points. Automatic page
// breaks are off; the layout cursor decides where pages end.
func newReportPDF(opts ReportOptions) *fpdf.Fpdf {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(opts.title(), true)
	pdf.SetCreator("seedreport "+version, true)
	if opts.Author != "" {
		pdf.SetAuthor(opts.Author, true)
	}
	if !opts.GeneratedAt.IsZero() {
		pdf.SetCreationDate(opts.GeneratedAt)
	}
	return pdf
}

// ---------------------------------------------------------------------------
// Paginated Report Builder
// ---------------------------------------------------------------------------

const (
	headerBlockHeight = 84.0
	footerBandHeight  = 44.0
	bulletSpacing     = 2.0
	subheaderHeight   = 18.0
	panelOpacity      = 0.12
)

// footerLines is the fixed closing message of every report.
var footerLines = [2]string{
	"Your SEED Profile reflects the accomplishments that energize you today.",
	"Revisit it as you grow - your motivational pattern will guide your next step.",
}

// buildProfilePDF builds the paginated report for a profile.
func buildProfilePDF(profile *ProfileData, deepDives []DeepDiveItem, opts ReportOptions) (*Document, error) {
	return assembleProfile(newReportPDF(opts), profile, deepDives, opts)
}

// assembleProfile runs the build on the given surface: header, optional
// narrative panel, every non-empty section in display order, then footer.
// Any step may break onto new pages.
func assembleProfile(pdf Surface, profile *ProfileData, deepDives []DeepDiveItem, opts ReportOptions) (*Document, error) {
	if profile == nil {
		profile = &ProfileData{}
	}

	l := newLayout(pdf, opts.FooterReserve, paintBackground)
	l.newPage()

	l.advance(drawReportHeader(l, opts) + 2*sectionSpacing)

	if narrative := strings.TrimSpace(profile.CentralMotivation); narrative != "" {
		h, _ := panelHeight(pdf, l.contentW, narrative)
		l.ensureRoom(h)
		h = drawPanel(pdf, l.margin, l.y, l.contentW, "Your Central Motivation", narrative, colorPrimary, panelOpacity)
		l.advance(h + 2*sectionSpacing)
	}

	sections := profile.Sections()
	if opts.Premium {
		sections = append(sections, deepDiveSection(deepDives))
	}
	for _, sec := range sections {
		if h := composeSection(l, sec); h > 0 {
			l.advance(sectionSpacing)
			klog.V(2).Infof("section %q: %.1f units, now on page %d", sec.Key, h, l.page())
		}
	}

	drawFooter(l)

	if pdf.Err() {
		return nil, fmt.Errorf("failed to build report: %w", pdf.Error())
	}
	return &Document{pdf: pdf}, nil
}

// paintBackground fills a fresh page with the background gradient and
// stamps its page number.
func paintBackground(s Surface, w, h float64) {
	drawGradient(s, 0, 0, w, h, colorBackgroundTop, colorBackgroundBottom, gradientSteps)

	label := fmt.Sprintf("Page %d", s.PageNo())
	s.SetFont(fontFamily, "", 8)
	setText(s, colorTextMuted)
	s.Text(w-pageMargin-s.GetStringWidth(label), h-20, label)
}

// drawReportHeader draws the title card at the cursor and returns its height.
func drawReportHeader(l *layout, opts ReportOptions) float64 {
	s := l.pdf
	x, y, w := l.margin, l.y, l.contentW

	drawShadow(s, x, y, w, headerBlockHeight, 8)
	setFill(s, colorPrimary)
	drawRoundedRect(s, x, y, w, headerBlockHeight, 8, "F")

	s.SetFont(fontFamily, "B", 22)
	setText(s, colorWhite)
	s.Text(x+16, y+32, pdfText(opts.title()))

	s.SetFont(fontFamily, "", bodyFontSize)
	line := y + 52
	if opts.Name != "" {
		s.Text(x+16, line, pdfText("Prepared for "+opts.Name))
		line += lineHeight
	}

	meta := make([]string, 0, 3)
	if !opts.GeneratedAt.IsZero() {
		meta = append(meta, "Generated "+formatDate(opts.GeneratedAt))
	}
	if opts.Reference != "" {
		meta = append(meta, "Ref. "+opts.Reference)
	}
	if !opts.RevisitBy.IsZero() {
		meta = append(meta, "Revisit by "+formatDate(opts.RevisitBy))
	}
	if len(meta) > 0 {
		s.Text(x+16, line, pdfText(strings.Join(meta, "  |  ")))
	}

	return headerBlockHeight
}

// composeSection draws one category and returns the total height it used,
// summed across any page breaks. Empty categories draw nothing.
func composeSection(l *layout, sec Section) float64 {
	items := nonBlank(sec.Items)
	if len(items) == 0 {
		return 0
	}

	l.ensureSpace()
	total := drawSectionHeader(l.pdf, l.margin, l.y, l.contentW, sec.Title, sec.Accent)
	l.advance(total)

	if sec.Key == sectionCareers {
		groups, remaining := classifyCareers(items)
		for _, g := range groups {
			if len(g.Items) == 0 {
				continue
			}
			total += composeSubheader(l, g.Label, sec.Accent)
			for _, item := range g.Items {
				total += composeBullet(l, item, sec.Accent)
			}
		}
		items = remaining
	}

	for _, item := range items {
		total += composeBullet(l, item, sec.Accent)
	}
	return total
}

func composeSubheader(l *layout, label string, accent rgb) float64 {
	l.ensureSpace()
	l.pdf.SetFont(fontFamily, "B", 11)
	setText(l.pdf, accent)
	l.pdf.Text(l.margin+4, l.y+12, pdfText(label))
	l.advance(subheaderHeight)
	return subheaderHeight
}

// composeBullet keeps a wrapped bullet on one page: it breaks first when the
// whole block would cross the reserved footer area.
func composeBullet(l *layout, item string, accent rgb) float64 {
	l.ensureRoom(bulletHeight(l.pdf, l.contentW, item))
	h := drawBullet(l.pdf, l.margin, l.y, l.contentW, item, accent) + bulletSpacing
	l.advance(h)
	return h
}

// drawFooter closes the report with the fixed two-line message band.
func drawFooter(l *layout) {
	l.ensureRoom(footerBandHeight)
	s := l.pdf

	setFill(s, colorPrimary)
	drawRoundedRect(s, l.margin, l.y, l.contentW, footerBandHeight, 6, "F")

	s.SetFont(fontFamily, "I", 9)
	setText(s, colorWhite)
	for i, msg := range footerLines {
		txt := pdfText(msg)
		x := l.margin + (l.contentW-s.GetStringWidth(txt))/2
		s.Text(x, l.y+18+float64(i)*13, txt)
	}
	l.advance(footerBandHeight)
}

func nonBlank(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item) != "" {
			out = append(out, item)
		}
	}
	return out
}
