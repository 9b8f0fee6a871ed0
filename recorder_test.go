package main

import (
	"time"

	"github.com/go-pdf/fpdf"
)

// fixedTime keeps builds byte-for-byte reproducible in tests.
var fixedTime = time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC)

type textOp struct {
	Page int
	X, Y float64
	Text string
}

type rectOp struct {
	Page  int
	Fill  rgb
	Style string
}

// recorder is a real fpdf document that also logs what was drawn.
type recorder struct {
	*fpdf.Fpdf
	texts  []textOp
	rects  []rectOp
	fill   rgb
	images []string
	alpha  []float64
}

func newRecorder() *recorder {
	return &recorder{Fpdf: newReportPDF(ReportOptions{GeneratedAt: fixedTime})}
}

func (r *recorder) Text(x, y float64, txt string) {
	r.texts = append(r.texts, textOp{Page: r.PageNo(), X: x, Y: y, Text: txt})
	r.Fpdf.Text(x, y, txt)
}

func (r *recorder) SetFillColor(red, green, blue int) {
	r.fill = rgb{red, green, blue}
	r.Fpdf.SetFillColor(red, green, blue)
}

func (r *recorder) Rect(x, y, w, h float64, style string) {
	r.rects = append(r.rects, rectOp{Page: r.PageNo(), Fill: r.fill, Style: style})
	r.Fpdf.Rect(x, y, w, h, style)
}

func (r *recorder) ImageOptions(name string, x, y, w, h float64, flow bool, opts fpdf.ImageOptions, link int, linkStr string) {
	r.images = append(r.images, name)
	r.Fpdf.ImageOptions(name, x, y, w, h, flow, opts, link, linkStr)
}

func (r *recorder) SetAlpha(alpha float64, mode string) {
	r.alpha = append(r.alpha, alpha)
	r.Fpdf.SetAlpha(alpha, mode)
}

// contentWidth is the usable width between the page margins.
func (r *recorder) contentWidth() float64 {
	w, _ := r.GetPageSize()
	return w - 2*pageMargin
}

// pagesOf returns the pages on which txt was drawn, one entry per draw.
func (r *recorder) pagesOf(txt string) []int {
	var pages []int
	for _, op := range r.texts {
		if op.Text == txt {
			pages = append(pages, op.Page)
		}
	}
	return pages
}

func (r *recorder) drew(txt string) bool {
	return len(r.pagesOf(txt)) > 0
}

// indexOf returns the draw order position of txt, or -1.
func (r *recorder) indexOf(txt string) int {
	for i, op := range r.texts {
		if op.Text == txt {
			return i
		}
	}
	return -1
}
