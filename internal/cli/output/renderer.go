// Package output renders CLI results for terminals, pipes and machines.
//
// Output adapts to the environment: a terminal gets styled text, a pipe gets
// markdown, and json is always available on request.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// OutputMode selects how results are rendered.
type OutputMode string

// Output modes.
const (
	ModeAuto     OutputMode = "auto"
	ModeText     OutputMode = "text"
	ModeMarkdown OutputMode = "markdown"
	ModeJSON     OutputMode = "json"
)

// Mode converts a config or flag value into an OutputMode.
// Unknown and empty values mean auto.
func Mode(s string) OutputMode {
	switch OutputMode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeText:
		return ModeText
	case ModeMarkdown, "md":
		return ModeMarkdown
	case ModeJSON:
		return ModeJSON
	default:
		return ModeAuto
	}
}

// Renderer writes command output in the selected mode.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	isTTY  bool
	mode   OutputMode
	styles *Styles
}

// NewRenderer creates a renderer, detecting whether out is a terminal.
func NewRenderer(out, errOut io.Writer, mode OutputMode) *Renderer {
	return NewRendererWithTTY(out, errOut, isTerminal(out), mode)
}

// NewRendererWithTTY creates a renderer with an explicit TTY state.
func NewRendererWithTTY(out, errOut io.Writer, isTTY bool, mode OutputMode) *Renderer {
	r := &Renderer{
		out:    out,
		errOut: errOut,
		isTTY:  isTTY,
		mode:   mode,
	}
	r.styles = newStyles(r.lipglossRenderer(), r.colorEnabled())
	return r
}

// EffectiveMode resolves auto to text on a terminal and markdown otherwise.
func (r *Renderer) EffectiveMode() OutputMode {
	switch r.mode {
	case ModeText, ModeMarkdown, ModeJSON:
		return r.mode
	}
	if r.isTTY {
		return ModeText
	}
	return ModeMarkdown
}

// IsTTY reports whether output goes to a terminal.
func (r *Renderer) IsTTY() bool { return r.isTTY }

// Styles returns the styles for the current mode.
func (r *Renderer) Styles() *Styles { return r.styles }

// Writer returns the standard output writer.
func (r *Renderer) Writer() io.Writer { return r.out }

// ErrWriter returns the error output writer.
func (r *Renderer) ErrWriter() io.Writer { return r.errOut }

// Println writes a line to standard output.
func (r *Renderer) Println(a ...any) {
	_, _ = fmt.Fprintln(r.out, a...)
}

// Printf writes formatted text to standard output.
func (r *Renderer) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(r.out, format, a...)
}

// Header writes a heading. Level 1 and 2 are supported.
func (r *Renderer) Header(level int, text string) {
	if r.EffectiveMode() == ModeMarkdown {
		r.Printf("%s %s\n\n", strings.Repeat("#", max(level, 1)), text)
		return
	}
	style := r.styles.Header2
	if level <= 1 {
		style = r.styles.Header1
	}
	r.Println(style.Render(text))
	r.Println("")
}

// Success writes a success message.
func (r *Renderer) Success(msg string) {
	r.Println(r.styles.Success.Render(r.symbol("✓", "OK") + " " + msg))
}

// Warning writes a warning message to the error stream.
func (r *Renderer) Warning(msg string) {
	_, _ = fmt.Fprintln(r.errOut, r.styles.Warning.Render(r.symbol("!", "Warning:")+" "+msg))
}

// Error writes an error message to the error stream.
func (r *Renderer) Error(msg string) {
	_, _ = fmt.Fprintln(r.errOut, r.styles.Error.Render(r.symbol("✗", "Error:")+" "+msg))
}

// StatusLine writes a "name  status  detail" line. Status is one of
// success, warning, error or skipped.
func (r *Renderer) StatusLine(name, status, detail string) {
	var marker string
	switch status {
	case "success":
		marker = r.styles.Success.Render(r.symbol("✓", "[ok]"))
	case "warning":
		marker = r.styles.Warning.Render(r.symbol("!", "[warn]"))
	case "error":
		marker = r.styles.Error.Render(r.symbol("✗", "[error]"))
	default:
		marker = r.styles.Muted.Render(r.symbol("-", "[skip]"))
	}

	line := fmt.Sprintf("  %s %s", marker, name)
	if detail != "" {
		line += "  " + r.styles.Muted.Render(detail)
	}
	r.Println(line)
}

// JSON writes v as indented JSON.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (r *Renderer) symbol(tty, plain string) string {
	if r.isTTY {
		return tty
	}
	return plain
}

func (r *Renderer) colorEnabled() bool {
	if !r.isTTY || r.EffectiveMode() != ModeText {
		return false
	}
	if os.Getenv("NO_COLOR") != "" || strings.EqualFold(os.Getenv("TERM"), "dumb") {
		return false
	}
	return true
}

func (r *Renderer) lipglossRenderer() *lipgloss.Renderer {
	if !r.colorEnabled() {
		return lipgloss.NewRenderer(r.out, termenv.WithProfile(termenv.Ascii))
	}
	return lipgloss.NewRenderer(r.out, termenv.WithTTY(true))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
