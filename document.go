package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ---------------------------------------------------------------------------
// Document Helpers
// ---------------------------------------------------------------------------

// Pipeline variants.
const (
	modeStandard   = "standard"
	modeScreenshot = "screenshot"
	modeBoth       = "both"
)

// reportReference generates a structured report reference number.
// Format: SEED-YYYY-MM-XXXXXXXX (e.g., SEED-2026-10-4F2A91C0)
func reportReference(t time.Time) string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return fmt.Sprintf("SEED-%d-%02d-%s", t.Year(), t.Month(), id[:8])
}

// formatDate formats a date for display in the report header.
func formatDate(t time.Time) string {
	return t.Format("January 2, 2006")
}

// reportFilename returns the download name for a report. Premium reports get
// their own name; visual marks the rasterized copy when both are written.
func reportFilename(premium, visual bool) string {
	name := "seed-profile"
	if premium {
		name = "premium-seed-profile"
	}
	if visual {
		name += "-visual"
	}
	return name + ".pdf"
}

// outputPath joins the output directory and a report filename.
func outputPath(dir, filename string) string {
	if dir == "" {
		return filename
	}
	return filepath.Join(dir, filename)
}
