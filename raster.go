package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"golang.org/x/image/draw"
	"k8s.io/klog/v2"
)

// ---------------------------------------------------------------------------
// Rasterization
// ---------------------------------------------------------------------------

// ErrRasterize wraps every failure of the rasterization service.
var ErrRasterize = errors.New("rasterization failed")

// CanvasSize is the virtual canvas a fragment is rendered into, in CSS
// pixels. Scale is the device pixel ratio of the resulting bitmap.
type CanvasSize struct {
	Width  int
	Height int
	Scale  float64
}

// defaultCanvas is not A4-proportional; the bitmap is stretched
// over the full page.
var defaultCanvas = CanvasSize{Width: 800, Height: 1000, Scale: 2}

// Pixels returns the bitmap dimensions of the canvas.
func (c CanvasSize) Pixels() (int, int) {
	scale := c.Scale
	if scale <= 0 {
		scale = 1
	}
	return int(float64(c.Width) * scale), int(float64(c.Height) * scale)
}

// Rasterizer renders a mounted stage fragment to a bitmap.
type Rasterizer interface {
	Rasterize(ctx context.Context, stage *Stage, fragmentID string, canvas CanvasSize) (image.Image, error)
}

// composeCanvas places src on a white canvas of the canvas pixel size. src
// is scaled uniformly to the canvas width; anything below the canvas height
// is cropped.
func composeCanvas(src image.Image, canvas CanvasSize) *image.RGBA {
	w, h := canvas.Pixels()
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)

	if src == nil || src.Bounds().Dx() == 0 {
		return dst
	}

	b := src.Bounds()
	scaledH := b.Dy() * w / b.Dx()
	if b.Dx() == w {
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Over)
		return dst
	}

	scaled := image.NewRGBA(image.Rect(0, 0, w, scaledH))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), src, b, draw.Src, nil)
	draw.Draw(dst, dst.Bounds(), scaled, image.Point{}, draw.Over)
	return dst
}

// encodePNG encodes a bitmap for embedding into the PDF.
func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode bitmap: %w", err)
	}
	return buf.Bytes(), nil
}

// ---------------------------------------------------------------------------
// Headless Chrome
// ---------------------------------------------------------------------------

// ChromeRasterizer renders stage fragments in a headless Chrome instance.
// Requires Chrome/Chromium to be installed on the system.
type ChromeRasterizer struct {
	browserCtx context.Context
	cancel     func()
	timeout    time.Duration
}

// NewChromeRasterizer starts a headless browser. Close releases it.
func NewChromeRasterizer(ctx context.Context, timeout time.Duration) *ChromeRasterizer {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.Flag("hide-scrollbars", true),
		)...,
	)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)

	return &ChromeRasterizer{
		browserCtx: browserCtx,
		timeout:    timeout,
		cancel: func() {
			cancelBrowser()
			cancelAlloc()
		},
	}
}

// Close shuts the browser down.
func (c *ChromeRasterizer) Close() {
	c.cancel()
}

// Rasterize loads the stage document into the browser and captures the
// fragment as a bitmap on the virtual canvas.
func (c *ChromeRasterizer) Rasterize(ctx context.Context, stage *Stage, fragmentID string, canvas CanvasSize) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	html, err := stage.HTML()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRasterize, err)
	}

	runCtx, cancel := context.WithTimeout(c.browserCtx, c.timeout)
	defer cancel()

	scale := canvas.Scale
	if scale <= 0 {
		scale = 1
	}

	klog.V(2).Infof("[BROWSER] rendering fragment %s (%d bytes of HTML)", fragmentID, len(html))

	var shot []byte
	err = chromedp.Run(runCtx,
		chromedp.EmulateViewport(int64(canvas.Width), int64(canvas.Height), chromedp.EmulateScale(scale)),
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitVisible("#"+fragmentID, chromedp.ByQuery),
		chromedp.Screenshot("#"+fragmentID, &shot, chromedp.NodeVisible, chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRasterize, fragmentID, err)
	}

	img, err := png.Decode(bytes.NewReader(shot))
	if err != nil {
		return nil, fmt.Errorf("%w: decoding screenshot of %s: %v", ErrRasterize, fragmentID, err)
	}
	return composeCanvas(img, canvas), nil
}
