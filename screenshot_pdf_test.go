package main

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBrowserCrashed = errors.New("browser crashed")

// fakeRasterizer paints a flat bitmap and can fail on a chosen call.
type fakeRasterizer struct {
	failOn  int
	calls   int
	stage   *Stage
	ids     []string
	mounted [][]string
}

func (f *fakeRasterizer) Rasterize(_ context.Context, stage *Stage, fragmentID string, canvas CanvasSize) (image.Image, error) {
	f.calls++
	f.stage = stage
	f.ids = append(f.ids, fragmentID)
	f.mounted = append(f.mounted, stage.Fragments())
	if f.calls == f.failOn {
		return nil, errBrowserCrashed
	}

	w, h := canvas.Pixels()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.RGBA{R: 46, G: 139, B: 87, A: 255}}, image.Point{}, draw.Src)
	return img, nil
}

var testCanvas = CanvasSize{Width: 40, Height: 50, Scale: 1}

func fourSections() []Section {
	return (&AnalysisResult{
		Energizers:   []string{"Solving puzzles", "Teaching others"},
		Avoid:        []string{"Micromanagement"},
		Environments: []string{"Small teams"},
		Growth:       []string{"Public speaking"},
	}).Sections()
}

func TestScreenshotBuilder_OnePagePerSection(t *testing.T) {
	sections := fourSections()
	sections[2].Items = nil

	fake := &fakeRasterizer{}
	rec := newRecorder()
	b := &ScreenshotBuilder{Rasterizer: fake, Canvas: testCanvas}

	doc, err := b.build(context.Background(), rec, sections, ReportOptions{})
	require.NoError(t, err)

	assert.Equal(t, 3, doc.PageCount())
	assert.Equal(t, []string{"seed-section-1", "seed-section-2", "seed-section-4"}, rec.images)

	// Exactly the fragment being rendered is attached while the rasterizer runs.
	for i, id := range fake.ids {
		assert.Equal(t, []string{id}, fake.mounted[i])
	}
	assert.Empty(t, fake.stage.Fragments())
	assert.Equal(t, 3, fake.stage.Created())

	assert.Equal(t, []float64{0, 1, 0, 1, 0, 1}, rec.alpha)
	assert.Equal(t, []int{1}, rec.pagesOf("What Energizes You"))
	assert.Equal(t, []int{1}, rec.pagesOf("Teaching others"))
	assert.Equal(t, []int{2}, rec.pagesOf("Micromanagement"))
	assert.Equal(t, []int{3}, rec.pagesOf("Public speaking"))
	assert.False(t, rec.drew("Ideal Environments"))
}

func TestScreenshotBuilder_FailureCleansUp(t *testing.T) {
	fake := &fakeRasterizer{failOn: 2}
	rec := newRecorder()
	b := &ScreenshotBuilder{Rasterizer: fake, Canvas: testCanvas}

	doc, err := b.build(context.Background(), rec, fourSections(), ReportOptions{})
	require.Error(t, err)
	assert.Nil(t, doc)
	assert.ErrorIs(t, err, errBrowserCrashed)
	assert.Contains(t, err.Error(), sectionAvoid)

	assert.Equal(t, 2, fake.calls)
	assert.Equal(t, 2, fake.stage.Created(), "sections 3 and 4 must never be mounted")
	assert.Empty(t, fake.stage.Fragments())
	assert.Equal(t, []string{"seed-section-1", "seed-section-2"}, fake.ids)
	assert.Equal(t, 1, rec.PageCount())
}

func TestScreenshotBuilder_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fake := &fakeRasterizer{}
	rec := newRecorder()
	b := &ScreenshotBuilder{Rasterizer: fake, Canvas: testCanvas}

	_, err := b.build(ctx, rec, fourSections(), ReportOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, fake.calls)
	assert.Zero(t, rec.PageCount())
}

func TestScreenshotBuilder_NothingToRender(t *testing.T) {
	fake := &fakeRasterizer{}
	rec := newRecorder()
	b := &ScreenshotBuilder{Rasterizer: fake, Canvas: testCanvas}

	doc, err := b.build(context.Background(), rec, (&AnalysisResult{}).Sections(), ReportOptions{Premium: true})
	require.NoError(t, err)

	assert.Equal(t, 1, doc.PageCount())
	assert.Zero(t, fake.calls)
	assert.Empty(t, rec.images)
	assert.True(t, rec.drew("Premium SEED Profile"))
	assert.True(t, rec.drew(footerLines[0]))
}

func TestScreenshotBuilder_Build(t *testing.T) {
	b := &ScreenshotBuilder{Rasterizer: &fakeRasterizer{}, Canvas: testCanvas}

	doc, err := b.Build(context.Background(), fourSections(), ReportOptions{GeneratedAt: fixedTime})
	require.NoError(t, err)
	assert.Equal(t, 4, doc.PageCount())

	data, err := doc.Bytes()
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestRasterSections(t *testing.T) {
	_, err := rasterSections(&ReportInput{}, false)
	assert.ErrorIs(t, err, ErrNoAnalysis)

	profileOnly, err := rasterSections(&ReportInput{Profile: &ProfileData{Abilities: []string{"Listening"}}}, false)
	require.NoError(t, err)
	require.Len(t, profileOnly, 9)
	assert.Equal(t, sectionAbilities, profileOnly[0].Key)
	assert.Equal(t, sectionCareers, profileOnly[8].Key)

	in := &ReportInput{
		Analysis:  &AnalysisResult{Energizers: []string{"Building"}},
		DeepDives: []DeepDiveItem{{Number: 2, Narrative: "Shipped the redesign."}},
	}

	standard, err := rasterSections(in, false)
	require.NoError(t, err)
	assert.Len(t, standard, 4)

	premium, err := rasterSections(in, true)
	require.NoError(t, err)
	require.Len(t, premium, 5)
	assert.Equal(t, sectionDeepDives, premium[4].Key)
	assert.Equal(t, []string{"Accomplishment 2: Shipped the redesign."}, premium[4].Items)
}
