package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *Config {
	cfg := defaultConfig()
	cfg.Render.Scale = 0.1
	return &cfg
}

func sampleInput() *ReportInput {
	return &ReportInput{
		Name: "Ada",
		Analysis: &AnalysisResult{
			Energizers:   []string{"Solving puzzles"},
			Avoid:        []string{"Busywork"},
			Environments: []string{"Small teams"},
			Growth:       []string{"Delegation"},
			Summary:      "Turning chaos into structure.",
		},
	}
}

func TestReportOptions(t *testing.T) {
	cfg := testConfig()
	cfg.Report.RevisitAfter = 1

	opts := reportOptions(cfg, &ReportInput{Name: "Ada", Premium: true}, fixedTime)

	assert.Equal(t, "Ada", opts.Name)
	assert.True(t, opts.Premium)
	assert.True(t, strings.HasPrefix(opts.Reference, "SEED-2026-10-"))
	assert.Equal(t, "SEED Profile", opts.Author)
	assert.Equal(t, fixedTime, opts.GeneratedAt)
	assert.Equal(t, "2026-10-19", opts.RevisitBy.Format("2006-01-02"))
	assert.Equal(t, defaultFooterMargin, opts.FooterReserve)
}

func TestRenderReports_Standard(t *testing.T) {
	opts := ReportOptions{GeneratedAt: fixedTime}

	reports, err := renderReports(context.Background(), testConfig(), sampleInput(), modeStandard, opts, nil)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "seed-profile.pdf", reports[0].Filename)

	data, err := reports[0].Doc.Bytes()
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestRenderReports_Both(t *testing.T) {
	opts := ReportOptions{Premium: true, GeneratedAt: fixedTime}
	fake := &fakeRasterizer{}

	reports, err := renderReports(context.Background(), testConfig(), sampleInput(), modeBoth, opts, fake)
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, "premium-seed-profile.pdf", reports[0].Filename)
	assert.Equal(t, "premium-seed-profile-visual.pdf", reports[1].Filename)
	assert.Equal(t, 4, fake.calls)

	attachments, err := reportAttachments(reports)
	require.NoError(t, err)
	require.Len(t, attachments, 2)
	for _, a := range attachments {
		assert.True(t, bytes.HasPrefix(a.Data, []byte("%PDF")), a.Filename)
	}
}

func TestRenderReports_ScreenshotFromProfile(t *testing.T) {
	in := &ReportInput{Profile: &ProfileData{
		Abilities:             []string{"Listening"},
		CareerRecommendations: []string{"Design lead"},
	}}
	fake := &fakeRasterizer{}

	reports, err := renderReports(context.Background(), testConfig(), in, modeScreenshot, ReportOptions{}, fake)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "seed-profile.pdf", reports[0].Filename)
	assert.Equal(t, 2, reports[0].Doc.PageCount())
	assert.Equal(t, 2, fake.calls)
}

func TestRenderReports_ScreenshotNeedsData(t *testing.T) {
	_, err := renderReports(context.Background(), testConfig(), &ReportInput{}, modeScreenshot, ReportOptions{}, &fakeRasterizer{})
	assert.ErrorIs(t, err, ErrNoAnalysis)
}

func TestRenderReports_RasterFailure(t *testing.T) {
	_, err := renderReports(context.Background(), testConfig(), sampleInput(), modeBoth, ReportOptions{}, &fakeRasterizer{failOn: 1})
	assert.ErrorIs(t, err, errBrowserCrashed)
}

func TestRenderCommand_Standard(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "input.json")
	require.NoError(t, os.WriteFile(input, []byte(`{"profile": {"centralMotivation": "Building things", "abilities": ["Listening"]}}`), 0644))
	config := filepath.Join(dir, "seedreport.yaml")
	require.NoError(t, os.WriteFile(config, []byte("report:\n  author: Test\n"), 0644))
	out := filepath.Join(dir, "out")

	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetArgs([]string{"render", "--input", input, "--config", config, "--mode", modeStandard, "--out", out, "--name", "Ada"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		renderName = ""
	})

	require.NoError(t, rootCmd.Execute())

	path := filepath.Join(out, "seed-profile.pdf")
	assert.Contains(t, stdout.String(), "Written: "+path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestRenderCommand_UnknownMode(t *testing.T) {
	rootCmd.SetArgs([]string{"render", "--input", "ignored.json", "--mode", "poster"})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		renderMode = modeStandard
	})

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown mode "poster"`)
}
