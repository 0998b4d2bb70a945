package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.yaml.in/yaml/v3"

	"github.com/kbukum/systolic/errors"
)

// Format represents an output format.
type Format string

// Supported formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat parses a format name. An empty name selects text.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", errors.InvalidFormat("format", "text, json or yaml")
	}
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	valueStyle  = lipgloss.NewStyle().Bold(true)
)

// Renderer handles output formatting.
type Renderer struct {
	format  Format
	verbose bool
	noColor bool
	out     io.Writer
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithVerbose prints the chain and step diagram before text outputs.
func WithVerbose(verbose bool) Option {
	return func(r *Renderer) { r.verbose = verbose }
}

// WithNoColor disables styling of verbose text output.
func WithNoColor(noColor bool) Option {
	return func(r *Renderer) { r.noColor = noColor }
}

// New creates a renderer writing to out.
func New(format Format, out io.Writer, opts ...Option) *Renderer {
	r := &Renderer{format: format, out: out}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render writes v in the configured format. Text output prints the outputs
// of a *Result one per line; other values are printed with their default
// formatting.
func (r *Renderer) Render(v any) error {
	switch r.format {
	case FormatJSON:
		enc := json.NewEncoder(r.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(r.out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case FormatText, "":
		if res, ok := v.(*Result); ok {
			return r.renderText(res)
		}
		_, err := fmt.Fprintln(r.out, v)
		return err
	default:
		return errors.InvalidFormat("format", "text, json or yaml")
	}
}

// Value writes a single streamed output. Text output is one value per
// line; JSON and YAML output write one document per value.
func (r *Renderer) Value(v int) error {
	switch r.format {
	case FormatJSON:
		return json.NewEncoder(r.out).Encode(v)
	case FormatYAML:
		_, err := fmt.Fprintf(r.out, "--- %d\n", v)
		return err
	default:
		_, err := fmt.Fprintln(r.out, v)
		return err
	}
}

func (r *Renderer) renderText(res *Result) error {
	if r.verbose {
		if _, err := io.WriteString(r.out, r.verboseHeader(res)); err != nil {
			return err
		}
	}
	for _, v := range res.Outputs {
		if _, err := fmt.Fprintln(r.out, v); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) verboseHeader(res *Result) string {
	var b strings.Builder
	b.WriteString(r.style(headerStyle, "chain"))
	b.WriteByte('\n')
	for i, c := range res.Chain {
		fmt.Fprintf(&b, "  %s %s\n", r.style(dimStyle, strconv.Itoa(i)), c)
	}
	if res.Log != "" {
		b.WriteString(r.style(headerStyle, "steps"))
		b.WriteByte('\n')
		b.WriteString(res.Log)
	}
	fmt.Fprintf(&b, "%s %s\n", r.style(headerStyle, "outputs"),
		r.style(dimStyle, fmt.Sprintf("(%d steps, run %s)", res.Steps, res.RunID)))
	return b.String()
}

func (r *Renderer) style(s lipgloss.Style, text string) string {
	if r.noColor {
		return text
	}
	return s.Render(text)
}

// Highlight renders a value in bold unless color is disabled.
func (r *Renderer) Highlight(text string) string {
	return r.style(valueStyle, text)
}
