package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Console writes status messages to one stream and results to another.
// Prompt text, tables and init reports go to out; status lines to errOut.
type Console struct {
	out       io.Writer
	errOut    io.Writer
	outStyles styles
	errStyles styles
}

// NewConsole returns a Console. Colours are enabled per writer, only when
// that writer is a terminal.
func NewConsole(out, errOut io.Writer) *Console {
	return &Console{
		out:       out,
		errOut:    errOut,
		outStyles: newStyles(lipgloss.NewRenderer(out)),
		errStyles: newStyles(lipgloss.NewRenderer(errOut)),
	}
}

// Out returns the result writer.
func (c *Console) Out() io.Writer { return c.out }

// Success prints a green status line.
func (c *Console) Success(format string, a ...any) {
	c.status(c.errStyles.success, format, a...)
}

// Warn prints an orange status line.
func (c *Console) Warn(format string, a ...any) {
	c.status(c.errStyles.warn, format, a...)
}

// Error prints a red status line.
func (c *Console) Error(format string, a ...any) {
	c.status(c.errStyles.err, format, a...)
}

// Hint prints a dimmed, indented follow-up line.
func (c *Console) Hint(format string, a ...any) {
	c.status(c.errStyles.dim, "   "+format, a...)
}

// Info prints an unstyled status line.
func (c *Console) Info(format string, a ...any) {
	fmt.Fprintf(c.errOut, format+"\n", a...)
}

func (c *Console) status(st lipgloss.Style, format string, a ...any) {
	fmt.Fprintln(c.errOut, st.Render(fmt.Sprintf(format, a...)))
}

// Println writes an unstyled line to out.
func (c *Console) Println(format string, a ...any) {
	fmt.Fprintf(c.out, format+"\n", a...)
}

// Title writes an accented heading line to out.
func (c *Console) Title(format string, a ...any) {
	fmt.Fprintln(c.out, c.outStyles.title.Render(fmt.Sprintf(format, a...)))
}

// Prompt writes generated prompt text to out. When render is set and out is
// a terminal the text is rendered as markdown; otherwise the exact bytes
// are written, with a trailing newline added only for terminals.
func (c *Console) Prompt(text string, render bool) {
	if !IsTerminal(c.out) {
		io.WriteString(c.out, text)
		return
	}
	if render {
		text = RenderMarkdown(text, TerminalWidth(c.out))
	}
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	io.WriteString(c.out, text)
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w any) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// TerminalWidth returns the column count of w, or 0 when w is not a
// terminal.
func TerminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}
