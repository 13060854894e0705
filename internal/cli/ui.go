package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/eddi-weiss/mavenizor/pkg/convert"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	StyleDim     = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)
	styleKey      = lipgloss.NewStyle().Foreground(colorGray).Width(12)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

// printer writes styled status lines. Commands create one over
// cmd.OutOrStdout() so tests can capture the output.
type printer struct {
	w io.Writer
}

func (p printer) success(format string, args ...any) {
	fmt.Fprintln(p.w, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func (p printer) failure(format string, args ...any) {
	fmt.Fprintln(p.w, styleIconError.Render(iconError)+" "+fmt.Sprintf(format, args...))
}

func (p printer) warning(format string, args ...any) {
	fmt.Fprintln(p.w, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func (p printer) info(format string, args ...any) {
	fmt.Fprintln(p.w, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

// detail prints an indented, dimmed line.
func (p printer) detail(format string, args ...any) {
	fmt.Fprintln(p.w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// file prints an output file line.
func (p printer) file(path string) {
	fmt.Fprintln(p.w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// keyValue prints a labeled value.
func (p printer) keyValue(key, value string) {
	fmt.Fprintln(p.w, styleKey.Render(key)+" "+StyleValue.Render(value))
}

// =============================================================================
// Result Display
// =============================================================================

// stats prints conversion counters on a single line.
func (p printer) stats(r *convert.Result, cached bool) {
	converted := 0
	for i := range r.Bundles {
		if r.Bundles[i].Converted() {
			converted++
		}
	}
	parts := []string{
		fmt.Sprintf("%d bundles", len(r.Bundles)),
		fmt.Sprintf("%d converted", converted),
	}
	if n := len(r.Unresolved); n > 0 {
		parts = append(parts, fmt.Sprintf("%d unresolved requirements", n))
	}

	status, statusStyle := iconFresh, styleComputed
	if cached {
		status, statusStyle = iconCached, styleCached
	}

	line := " "
	for _, part := range parts {
		line += " " + StyleDim.Render(part) + StyleDim.Render(" ·")
	}
	fmt.Fprintln(p.w, line+" "+statusStyle.Render(status))
}

// problems reports failures, unhandled libraries and collisions. With
// fatal set they are errors, otherwise warnings.
func (p printer) problems(r *convert.Result, fatal bool) {
	report := p.warning
	if fatal {
		report = p.failure
	}

	if n := len(r.Failures); n > 0 {
		report("%d bundles failed", n)
		for _, f := range r.Failures {
			p.detail("%s_%s: %s", f.SymbolicName, f.Version, f.Message)
		}
	}
	if n := len(r.Unhandled); n > 0 {
		report("%d embedded libraries are UNHANDLED", n)
		for _, l := range r.Unhandled {
			p.detail("%s", l.TemplateKey())
		}
	}
	if n := len(r.Collisions); n > 0 {
		report("%d coordinate collisions", n)
		for _, c := range r.Collisions {
			p.detail("%s claimed by %v", c.Coordinate, c.Bundles)
		}
	}
	if n := len(r.Missing); n > 0 {
		p.info("%d overridden libraries are MISSING from their bundle", n)
		for _, l := range r.Missing {
			p.detail("%s", l.TemplateKey())
		}
	}
}
