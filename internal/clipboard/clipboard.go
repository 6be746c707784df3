// Package clipboard copies generated prompts to the user's clipboard.
//
// The system clipboard is tried first. When it is unavailable (no display
// server, missing helper binary) the text is sent to the terminal as an
// OSC52 escape sequence, which most modern terminals and tmux forward to
// the local clipboard, including over SSH.
package clipboard

import (
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	osc52 "github.com/aymanbagabas/go-osc52/v2"
	"github.com/cockroachdb/errors"
)

// DisableOSC52Env turns the OSC52 fallback off when set to a truthy value.
const DisableOSC52Env = "PROMPTCRAFT_DISABLE_OSC52"

// Method reports how the text reached the clipboard.
type Method uint8

const (
	MethodSystem Method = iota
	MethodOSC52
)

func (m Method) String() string {
	switch m {
	case MethodOSC52:
		return "osc52"
	default:
		return "system"
	}
}

// Error reports a failed copy. OSC52 is nil when the fallback was not
// attempted. Both causes stay reachable through errors.Is and errors.As.
type Error struct {
	System error
	OSC52  error

	headless bool // no DISPLAY or WAYLAND_DISPLAY when the copy failed
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("system clipboard: ")
	b.WriteString(e.systemReason())
	if e.OSC52 != nil {
		b.WriteString("; OSC52 fallback: ")
		b.WriteString(e.OSC52.Error())
	}
	return b.String()
}

// systemReason replaces the bare exit status that clipboard helpers report
// with something a user can act on.
func (e *Error) systemReason() string {
	msg := strings.TrimSpace(e.System.Error())
	if msg != "exit status 1" {
		return msg
	}
	if e.headless {
		return "no GUI clipboard available (DISPLAY and WAYLAND_DISPLAY unset)"
	}
	return "helper exited with status 1"
}

func (e *Error) Unwrap() []error {
	if e.OSC52 == nil {
		return []error{e.System}
	}
	return []error{e.System, e.OSC52}
}

// Copier writes text to the clipboard.
type Copier struct {
	allowOSC52  bool
	writeSystem func(string) error
	writeOSC52  func(string) error
	getenv      func(string) string
}

// New returns a Copier. allowOSC52 enables the terminal fallback.
func New(allowOSC52 bool) *Copier {
	return &Copier{
		allowOSC52:  allowOSC52,
		writeSystem: clipboard.WriteAll,
		writeOSC52:  writeTerminal,
		getenv:      os.Getenv,
	}
}

// Copy writes text to the clipboard and reports which method worked.
func (c *Copier) Copy(text string) (Method, error) {
	sysErr := c.writeSystem(text)
	if sysErr == nil {
		return MethodSystem, nil
	}

	failure := &Error{System: sysErr, headless: headless(c.getenv)}
	if !c.allowOSC52 {
		return MethodSystem, failure
	}
	if failure.OSC52 = c.writeOSC52(text); failure.OSC52 == nil {
		return MethodOSC52, nil
	}
	return MethodSystem, failure
}

// writeTerminal sends text to the controlling terminal as OSC52.
func writeTerminal(text string) error {
	if reason := osc52Blocked(os.Getenv); reason != "" {
		return errors.Newf("disabled: %s", reason)
	}
	tty, err := os.OpenFile("/dev/tty", os.O_WRONLY, 0)
	if err != nil {
		return errors.Wrap(err, "open terminal")
	}
	defer tty.Close()
	return emitOSC52(tty, text, os.Getenv)
}

func emitOSC52(w io.Writer, text string, getenv func(string) string) error {
	for _, seq := range osc52Sequences(text, getenv) {
		if _, err := seq.WriteTo(w); err != nil {
			return errors.Wrap(err, "write OSC52 sequence")
		}
	}
	return nil
}

// osc52Sequences picks the escape sequences for the multiplexer in use.
// Under tmux the plain form is sent as well, for set-clipboard on.
func osc52Sequences(text string, getenv func(string) string) []osc52.Sequence {
	seq := osc52.New(text)
	switch {
	case getenv("TMUX") != "":
		return []osc52.Sequence{seq, seq.Tmux()}
	case strings.HasPrefix(strings.ToLower(getenv("TERM")), "screen"):
		return []osc52.Sequence{seq.Screen()}
	default:
		return []osc52.Sequence{seq}
	}
}

// osc52Blocked returns why OSC52 must not be written, or "".
func osc52Blocked(getenv func(string) string) string {
	switch strings.ToLower(strings.TrimSpace(getenv(DisableOSC52Env))) {
	case "1", "true", "yes", "on":
		return DisableOSC52Env + " is set"
	}
	switch term := strings.ToLower(strings.TrimSpace(getenv("TERM"))); term {
	case "":
		return "TERM is unset"
	case "dumb":
		return "TERM is dumb"
	}
	return ""
}

func headless(getenv func(string) string) bool {
	return strings.TrimSpace(getenv("DISPLAY")) == "" && strings.TrimSpace(getenv("WAYLAND_DISPLAY")) == ""
}
