package doctor

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/nestgen/internal/model"
)

// Format selects how a Report is rendered.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat converts a string to a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("invalid format %q: valid values are text, json, yaml", s)
	}
}

// Report is the ordered result of one doctor run.
type Report struct {
	Root    string                   `json:"root" yaml:"root"`
	Results []model.DiagnosticResult `json:"checks" yaml:"checks"`

	// Problem explains why the toolkit could not be located, if it couldn't.
	Problem string `json:"problem,omitempty" yaml:"problem,omitempty"`
}

// AllOK reports whether every required check passed. Optional checks do
// not affect the verdict.
func (r Report) AllOK() bool {
	for _, res := range r.Results {
		if !res.Optional && !res.OK {
			return false
		}
	}
	return true
}

var (
	passStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	sectionStyle = lipgloss.NewStyle().Bold(true)
)

// Render writes the report to w in the given format.
func (r Report) Render(w io.Writer, format Format) error {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(r.document(), "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err

	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r.document()); err != nil {
			return err
		}
		return enc.Close()

	default:
		return r.renderText(w)
	}
}

// reportDocument adds the aggregate verdict to structured output.
type reportDocument struct {
	Report `yaml:",inline"`
	OK     bool `json:"ok" yaml:"ok"`
}

func (r Report) document() reportDocument {
	return reportDocument{Report: r, OK: r.AllOK()}
}

func (r Report) renderText(w io.Writer) error {
	var b strings.Builder

	b.WriteString(sectionStyle.Render("Checking the nestgen environment..."))
	b.WriteString("\n\n")

	optionalHeader := false
	for _, res := range r.Results {
		if res.Optional && !optionalHeader {
			b.WriteString("\n")
			b.WriteString(sectionStyle.Render("Optional tools"))
			b.WriteString("\n")
			optionalHeader = true
		}
		b.WriteString(statusLine(res))
		b.WriteString("\n")
	}

	if r.Problem != "" {
		b.WriteString("\n")
		b.WriteString(failStyle.Render("Toolkit: " + r.Problem))
		b.WriteString("\n")
	}

	b.WriteString("\nResult: ")
	if r.AllOK() {
		b.WriteString(passStyle.Render("everything is OK ✅"))
	} else {
		b.WriteString(warnStyle.Render("some checks need attention ⚠️"))
	}
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func statusLine(res model.DiagnosticResult) string {
	switch {
	case res.OK:
		return passStyle.Render("✅ " + res.Label)
	case res.Optional:
		return warnStyle.Render("⚠️  " + res.Label)
	default:
		return failStyle.Render("❌ " + res.Label)
	}
}
