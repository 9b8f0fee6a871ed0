package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a SEED Profile report to PDF",
	Long:  "Builds the paginated and/or rasterized SEED Profile report from an analysis input file.",
	RunE:  runRender,
}

var (
	renderInputFile  string
	renderConfigFile string
	renderMode       string
	renderPremium    bool
	renderName       string
	renderOutDir     string
	renderEmail      bool
)

func init() {
	renderCmd.Flags().StringVarP(&renderInputFile, "input", "i", "", "Path to report input JSON file (required)")
	renderCmd.Flags().StringVarP(&renderConfigFile, "config", "c", "", "Path to config file (default: ./"+defaultConfigName+" if present)")
	renderCmd.Flags().StringVarP(&renderMode, "mode", "m", modeStandard, "Pipeline: standard, screenshot or both")
	renderCmd.Flags().BoolVar(&renderPremium, "premium", false, "Render the premium report (includes deep dives)")
	renderCmd.Flags().StringVarP(&renderName, "name", "n", "", "Respondent name shown in the header (overrides input)")
	renderCmd.Flags().StringVarP(&renderOutDir, "out", "o", ".", "Output directory")
	renderCmd.Flags().BoolVar(&renderEmail, "email", false, "Mail the reports using the configured SMTP account")
	_ = renderCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, _ []string) error {
	switch renderMode {
	case modeStandard, modeScreenshot, modeBoth:
	default:
		return fmt.Errorf("unknown mode %q (want %s, %s or %s)", renderMode, modeStandard, modeScreenshot, modeBoth)
	}

	cfg, err := loadConfig(defaultConfigName, renderConfigFile)
	if err != nil {
		return err
	}
	if renderEmail && !cfg.EmailEnabled() {
		return fmt.Errorf("--email requires smtp.host, email.from and email.to in the config")
	}

	in, err := loadReportInput(renderInputFile)
	if err != nil {
		return err
	}
	if renderName != "" {
		in.Name = renderName
	}
	in.Premium = in.Premium || renderPremium

	opts := reportOptions(cfg, in, time.Now())

	var raster Rasterizer
	if renderMode != modeStandard {
		chrome := NewChromeRasterizer(cmd.Context(), cfg.Render.Timeout)
		defer chrome.Close()
		raster = chrome
	}

	reports, err := renderReports(cmd.Context(), cfg, in, renderMode, opts, raster)
	if err != nil {
		return err
	}

	if renderOutDir != "" {
		if err := os.MkdirAll(renderOutDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	for _, r := range reports {
		path := outputPath(renderOutDir, r.Filename)
		if err := r.Doc.Save(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Written: %s\n", path)
	}

	if renderEmail {
		attachments, err := reportAttachments(reports)
		if err != nil {
			return err
		}
		subject := fmt.Sprintf("Your %s (%s)", opts.title(), opts.Reference)
		if err := sendEmail(cfg, subject, attachments...); err != nil {
			return fmt.Errorf("failed to send email: %w", err)
		}
	}
	return nil
}

// reportOptions derives the build options for a run started at now.
func reportOptions(cfg *Config, in *ReportInput, now time.Time) ReportOptions {
	return ReportOptions{
		Name:          in.Name,
		Premium:       in.Premium,
		Reference:     reportReference(now),
		Author:        cfg.Report.Author,
		GeneratedAt:   now,
		RevisitBy:     revisitDate(cfg.Report.Calendar, now, cfg.Report.RevisitAfter),
		FooterReserve: cfg.Report.FooterReserve,
	}
}

// renderedReport is a finished document and the name it is saved under.
type renderedReport struct {
	Filename string
	Doc      *Document
}

// renderReports builds the requested variants. In both mode the two
// pipelines run concurrently; each owns its own document.
func renderReports(ctx context.Context, cfg *Config, in *ReportInput, mode string, opts ReportOptions, raster Rasterizer) ([]renderedReport, error) {
	var standard, visual *renderedReport

	g, gctx := errgroup.WithContext(ctx)
	if mode == modeStandard || mode == modeBoth {
		g.Go(func() error {
			doc, err := buildProfilePDF(in.ProfileForReport(), in.DeepDives, opts)
			if err != nil {
				return err
			}
			// Serialise inside the worker so output errors surface here.
			if _, err := doc.Bytes(); err != nil {
				return err
			}
			standard = &renderedReport{Filename: reportFilename(opts.Premium, false), Doc: doc}
			klog.V(1).Infof("standard report: %d pages", doc.PageCount())
			return nil
		})
	}
	if mode == modeScreenshot || mode == modeBoth {
		g.Go(func() error {
			sections, err := rasterSections(in, opts.Premium)
			if err != nil {
				return err
			}
			canvas := defaultCanvas
			if cfg.Render.Scale > 0 {
				canvas.Scale = cfg.Render.Scale
			}
			b := &ScreenshotBuilder{Rasterizer: raster, Canvas: canvas}
			doc, err := b.Build(gctx, sections, opts)
			if err != nil {
				return err
			}
			if _, err := doc.Bytes(); err != nil {
				return err
			}
			visual = &renderedReport{Filename: reportFilename(opts.Premium, mode == modeBoth), Doc: doc}
			klog.V(1).Infof("visual report: %d pages", doc.PageCount())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []renderedReport
	for _, r := range []*renderedReport{standard, visual} {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out, nil
}

// reportAttachments turns rendered reports into mail attachments.
func reportAttachments(reports []renderedReport) ([]Attachment, error) {
	attachments := make([]Attachment, 0, len(reports))
	for _, r := range reports {
		data, err := r.Doc.Bytes()
		if err != nil {
			return nil, err
		}
		attachments = append(attachments, Attachment{Filename: r.Filename, Data: data})
	}
	return attachments, nil
}
