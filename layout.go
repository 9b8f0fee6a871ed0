package main

import (
	"k8s.io/klog/v2"
)

// ---------------------------------------------------------------------------
// Layout Cursor and Page Overflow
// ---------------------------------------------------------------------------

const (
	pageMargin          = 40.0
	defaultFooterMargin = 60.0
	minFooterReserve    = 30.0 // clears the page label band
	sectionSpacing      = 10.0
)

// layout owns the vertical cursor of a document build. It is threaded
// through every drawing call; only ensureSpace and newPage move it back to
// the top of a page.
type layout struct {
	pdf      Surface
	y        float64
	pageW    float64
	pageH    float64
	margin   float64
	contentW float64
	reserve  float64

	// paintPage repaints the fixed background on every freshly added page.
	paintPage func(s Surface, w, h float64)
}

func newLayout(pdf Surface, reserve float64, paint func(s Surface, w, h float64)) *layout {
	w, h := pdf.GetPageSize()
	switch {
	case reserve <= 0:
		reserve = defaultFooterMargin
	case reserve < minFooterReserve:
		reserve = minFooterReserve
	}
	return &layout{
		pdf:       pdf,
		y:         pageMargin,
		pageW:     w,
		pageH:     h,
		margin:    pageMargin,
		contentW:  w - 2*pageMargin,
		reserve:   reserve,
		paintPage: paint,
	}
}

// newPage opens a page, paints its background and resets the cursor.
func (l *layout) newPage() {
	l.pdf.AddPage()
	if l.paintPage != nil {
		l.paintPage(l.pdf, l.pageW, l.pageH)
	}
	l.y = l.margin
	klog.V(3).Infof("layout: started page %d", l.pdf.PageNo())
}

// ensureSpace starts a new page once the cursor has passed the reserved
// footer area. It reports whether a page break happened. Blocks taller than
// a page are not split; they start on the fresh page and run off its bottom.
func (l *layout) ensureSpace() bool {
	if l.y > l.pageH-l.reserve {
		l.newPage()
		return true
	}
	return false
}

// ensureRoom breaks before a measured block of height h that would cross
// the reserved footer area, unless the cursor is already at the top of a
// page. A block taller than a whole page is then drawn from the top and
// overflows.
func (l *layout) ensureRoom(h float64) bool {
	if l.y+h > l.pageH-l.reserve && l.y > l.margin {
		l.newPage()
		return true
	}
	return l.ensureSpace()
}

// advance moves the cursor down by h.
func (l *layout) advance(h float64) {
	l.y += h
}

// page returns the 1-based index of the page being drawn.
func (l *layout) page() int {
	return l.pdf.PageNo()
}
