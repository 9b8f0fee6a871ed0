package main

import (
	"bytes"
	"context"
	"fmt"

	"github.com/go-pdf/fpdf"
	"k8s.io/klog/v2"
)

// ---------------------------------------------------------------------------
// Rasterized Section Renderer
// ---------------------------------------------------------------------------

// hiddenTextTop is where the invisible text layer starts on each page.
const hiddenTextTop = 100.0

// ScreenshotBuilder renders each section as a bitmap page with an invisible
// text layer on top for search and selection.
type ScreenshotBuilder struct {
	Rasterizer Rasterizer
	Canvas     CanvasSize
}

// rasterSections returns the pages of the rasterized report in order. The
// analysis categories are used when present, otherwise the profile's.
func rasterSections(in *ReportInput, premium bool) ([]Section, error) {
	var sections []Section
	switch {
	case in.Analysis != nil:
		sections = in.Analysis.Sections()
	case in.Profile != nil:
		sections = in.Profile.Sections()
	default:
		return nil, ErrNoAnalysis
	}
	if premium {
		sections = append(sections, deepDiveSection(in.DeepDives))
	}
	return sections, nil
}

// Build renders every non-empty section onto its own page. Sections are
// rendered strictly one after another on a single stage; a rasterizer
// failure aborts the build.
func (b *ScreenshotBuilder) Build(ctx context.Context, sections []Section, opts ReportOptions) (*Document, error) {
	return b.build(ctx, newReportPDF(opts), sections, opts)
}

func (b *ScreenshotBuilder) build(ctx context.Context, pdf Surface, sections []Section, opts ReportOptions) (*Document, error) {
	stage, err := NewStage()
	if err != nil {
		return nil, err
	}

	canvas := b.Canvas
	if canvas.Width == 0 || canvas.Height == 0 {
		canvas = defaultCanvas
	}

	for i, sec := range sections {
		if len(nonBlank(sec.Items)) == 0 {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("build canceled before section %q: %w", sec.Key, err)
		}
		if err := b.renderPage(ctx, pdf, stage, fragmentID(i), sec, canvas, opts); err != nil {
			return nil, err
		}
		klog.V(2).Infof("rasterized section %q onto page %d", sec.Key, pdf.PageNo())
	}

	if pdf.PageCount() == 0 {
		// Nothing to rasterize; hand back a title page instead of an empty file.
		l := newLayout(pdf, opts.FooterReserve, paintBackground)
		l.newPage()
		l.advance(drawReportHeader(l, opts) + 2*sectionSpacing)
		drawFooter(l)
	}

	if pdf.Err() {
		return nil, fmt.Errorf("failed to build visual report: %w", pdf.Error())
	}
	return &Document{pdf: pdf}, nil
}

// renderPage mounts one section fragment, rasterizes it and stamps it as a
// full page. The fragment is removed from the stage on every return path.
func (b *ScreenshotBuilder) renderPage(ctx context.Context, pdf Surface, stage *Stage, id string, sec Section, canvas CanvasSize, opts ReportOptions) error {
	markup, err := renderFragment(id, sec, canvas, opts.title(), footerLines[0])
	if err != nil {
		return err
	}
	if err := stage.Mount(id, markup); err != nil {
		return err
	}
	defer stage.Unmount(id)

	img, err := b.Rasterizer.Rasterize(ctx, stage, id, canvas)
	if err != nil {
		return fmt.Errorf("failed to rasterize section %q: %w", sec.Key, err)
	}
	data, err := encodePNG(img)
	if err != nil {
		return err
	}

	pdf.AddPage()
	w, h := pdf.GetPageSize()

	imgOpts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(id, imgOpts, bytes.NewReader(data))
	pdf.ImageOptions(id, 0, 0, w, h, false, imgOpts, 0, "")

	drawHiddenText(pdf, w, sec)
	return nil
}

// drawHiddenText writes the section title and items fully transparent so
// text extraction recovers what the bitmap shows.
func drawHiddenText(pdf Surface, pageW float64, sec Section) {
	pdf.SetAlpha(0, "Normal")
	defer pdf.SetAlpha(1, "Normal")

	width := pageW - 2*pageMargin
	y := hiddenTextTop

	pdf.SetFont(fontFamily, "B", 12)
	pdf.Text(pageMargin, y, pdfText(sec.Title))
	y += lineHeight + 4

	pdf.SetFont(fontFamily, "", bodyFontSize)
	for _, item := range nonBlank(sec.Items) {
		for _, line := range wrapText(pdf, pdfText(item), width) {
			pdf.Text(pageMargin, y, line)
			y += lineHeight
		}
	}
}
