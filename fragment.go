package main

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

// ---------------------------------------------------------------------------
// Section Fragments
// ---------------------------------------------------------------------------

var fragmentTemplate = template.Must(template.New("fragment").Parse(
	`<section id="{{.ID}}" class="seed-fragment" style="width: {{.Width}}px; min-height: {{.Height}}px;">` +
		`<div class="brand">{{.Brand}}</div>` +
		`<h1 style="background: {{.Accent}};">{{.Title}}</h1>` +
		`<ul>{{range .Items}}<li><span class="dot" style="background: {{$.Accent}};"></span>{{.}}</li>{{end}}</ul>` +
		`<footer>{{.Footer}}</footer>` +
		`</section>`))

type fragmentData struct {
	ID     string
	Width  int
	Height int
	Brand  string
	Title  string
	Accent string
	Items  []string
	Footer string
}

func (c rgb) hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2])
}

func fragmentID(index int) string {
	return fmt.Sprintf("seed-section-%d", index+1)
}

// renderFragment produces the styled markup of one section sized to the
// virtual canvas.
func renderFragment(id string, sec Section, canvas CanvasSize, brand, footer string) (string, error) {
	var buf bytes.Buffer
	err := fragmentTemplate.Execute(&buf, fragmentData{
		ID:     id,
		Width:  canvas.Width,
		Height: canvas.Height,
		Brand:  brand,
		Title:  sec.Title,
		Accent: sec.Accent.hex(),
		Items:  nonBlank(sec.Items),
		Footer: strings.TrimSpace(footer),
	})
	if err != nil {
		return "", fmt.Errorf("failed to render fragment %s: %w", id, err)
	}
	return buf.String(), nil
}
