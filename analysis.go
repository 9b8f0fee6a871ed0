package main

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ---------------------------------------------------------------------------
// Report Input
// ---------------------------------------------------------------------------

//go:embed schemas/report_input.schema.json
var reportInputSchema []byte

// ErrNoAnalysis is returned when the input carries neither an analysis nor a
// profile.
var ErrNoAnalysis = errors.New("input has neither analysis nor profile data")

// AnalysisResult is the output of the AI analysis step. Every category is an
// ordered list of short, one-idea strings.
type AnalysisResult struct {
	Energizers   []string `json:"energizers"`
	Avoid        []string `json:"avoid"`
	Environments []string `json:"environments"`
	Growth       []string `json:"growth"`
	Summary      string   `json:"summary,omitempty"`
}

// DeepDiveItem is a user-authored expansion of one numbered accomplishment.
type DeepDiveItem struct {
	Number    int    `json:"number"`
	Narrative string `json:"narrative"`
}

// ProfileData is the richer input shape rendered by the paginated builder.
type ProfileData struct {
	CentralMotivation     string   `json:"centralMotivation,omitempty"`
	Abilities             []string `json:"abilities"`
	SubjectMatter         []string `json:"subjectMatter"`
	Circumstances         []string `json:"circumstances"`
	Relationships         []string `json:"relationships"`
	Energizers            []string `json:"energizers"`
	Avoid                 []string `json:"avoid"`
	Environments          []string `json:"environments"`
	Growth                []string `json:"growth"`
	CareerRecommendations []string `json:"careerRecommendations"`
}

// ReportInput is the file handed to the render command.
type ReportInput struct {
	Name      string          `json:"name,omitempty"`
	Premium   bool            `json:"premium,omitempty"`
	Analysis  *AnalysisResult `json:"analysis,omitempty"`
	DeepDives []DeepDiveItem  `json:"deepDives,omitempty"`
	Profile   *ProfileData    `json:"profile,omitempty"`
}

// Section keys. The career key triggers keyword bucketing in the composer.
const (
	sectionAbilities     = "abilities"
	sectionSubjectMatter = "subjectMatter"
	sectionCircumstances = "circumstances"
	sectionRelationships = "relationships"
	sectionEnergizers    = "energizers"
	sectionAvoid         = "avoid"
	sectionEnvironments  = "environments"
	sectionGrowth        = "growth"
	sectionCareers       = "careerRecommendations"
	sectionDeepDives     = "deepDives"
)

// Section is one named category rendered as a header plus bullet list.
type Section struct {
	Key    string
	Title  string
	Items  []string
	Accent rgb
}

// Sections returns the analysis categories in display order.
func (a *AnalysisResult) Sections() []Section {
	if a == nil {
		return nil
	}
	return []Section{
		{Key: sectionEnergizers, Title: "What Energizes You", Items: a.Energizers, Accent: colorEnergizers},
		{Key: sectionAvoid, Title: "What to Avoid", Items: a.Avoid, Accent: colorAvoid},
		{Key: sectionEnvironments, Title: "Ideal Environments", Items: a.Environments, Accent: colorEnvironments},
		{Key: sectionGrowth, Title: "Growth Opportunities", Items: a.Growth, Accent: colorGrowth},
	}
}

// Profile lifts an analysis result into the profile shape. The summary
// becomes the central motivation narrative.
func (a *AnalysisResult) Profile() *ProfileData {
	if a == nil {
		return &ProfileData{}
	}
	return &ProfileData{
		CentralMotivation: a.Summary,
		Energizers:        a.Energizers,
		Avoid:             a.Avoid,
		Environments:      a.Environments,
		Growth:            a.Growth,
	}
}

// Sections returns the profile categories in display order.
func (p *ProfileData) Sections() []Section {
	if p == nil {
		return nil
	}
	return []Section{
		{Key: sectionAbilities, Title: "Core Abilities", Items: p.Abilities, Accent: colorAbilities},
		{Key: sectionSubjectMatter, Title: "Subject Matter Interests", Items: p.SubjectMatter, Accent: colorSubjectMatter},
		{Key: sectionCircumstances, Title: "Ideal Circumstances", Items: p.Circumstances, Accent: colorCircumstances},
		{Key: sectionRelationships, Title: "Operating Relationships", Items: p.Relationships, Accent: colorRelationships},
		{Key: sectionEnergizers, Title: "What Energizes You", Items: p.Energizers, Accent: colorEnergizers},
		{Key: sectionAvoid, Title: "What to Avoid", Items: p.Avoid, Accent: colorAvoid},
		{Key: sectionEnvironments, Title: "Ideal Environments", Items: p.Environments, Accent: colorEnvironments},
		{Key: sectionGrowth, Title: "Growth Opportunities", Items: p.Growth, Accent: colorGrowth},
		{Key: sectionCareers, Title: "Career Recommendations", Items: p.CareerRecommendations, Accent: colorCareers},
	}
}

// deepDiveSection renders deep dives as a numbered section.
func deepDiveSection(items []DeepDiveItem) Section {
	lines := make([]string, 0, len(items))
	for _, d := range items {
		text := strings.TrimSpace(d.Narrative)
		if text == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("Accomplishment %d: %s", d.Number, text))
	}
	return Section{Key: sectionDeepDives, Title: "Accomplishment Deep Dives", Items: lines, Accent: colorDeepDives}
}

// ProfileForReport returns the profile to render, lifting the analysis when no
// explicit profile was supplied.
func (in *ReportInput) ProfileForReport() *ProfileData {
	if in.Profile != nil {
		return in.Profile
	}
	return in.Analysis.Profile()
}

// validateReportInput checks raw JSON against the embedded input schema.
func validateReportInput(data []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(reportInputSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("failed to validate report input: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("invalid report input: %s", strings.Join(msgs, "; "))
	}
	return nil
}

// parseReportInput validates and decodes a report input document.
func parseReportInput(data []byte) (*ReportInput, error) {
	if err := validateReportInput(data); err != nil {
		return nil, err
	}

	var in ReportInput
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("failed to parse report input: %w", err)
	}
	return &in, nil
}

// loadReportInput reads a report input file from disk.
func loadReportInput(path string) (*ReportInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}
	return parseReportInput(data)
}
