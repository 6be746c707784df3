package clipboard

import (
	"bytes"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
)

func envOf(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func newTestCopier(allowOSC52 bool, sysErr, oscErr error, env map[string]string) (*Copier, *[]string) {
	var calls []string
	c := &Copier{
		allowOSC52: allowOSC52,
		writeSystem: func(string) error {
			calls = append(calls, "system")
			return sysErr
		},
		writeOSC52: func(string) error {
			calls = append(calls, "osc52")
			return oscErr
		},
		getenv: envOf(env),
	}
	return c, &calls
}

func TestCopyPrefersSystemClipboard(t *testing.T) {
	c, calls := newTestCopier(true, nil, nil, nil)

	method, err := c.Copy("hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if method != MethodSystem {
		t.Fatalf("method = %v, want system", method)
	}
	if strings.Join(*calls, ",") != "system" {
		t.Fatalf("unexpected calls: %v", *calls)
	}
}

func TestCopyFallsBackToOSC52(t *testing.T) {
	c, calls := newTestCopier(true, errors.New("exit status 1"), nil, nil)

	method, err := c.Copy("hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if method != MethodOSC52 {
		t.Fatalf("method = %v, want osc52", method)
	}
	if strings.Join(*calls, ",") != "system,osc52" {
		t.Fatalf("unexpected calls: %v", *calls)
	}
}

func TestCopyBothFailKeepsCauses(t *testing.T) {
	sysErr := errors.New("xclip missing")
	oscErr := errors.New("no tty")
	c, _ := newTestCopier(true, sysErr, oscErr, map[string]string{"DISPLAY": ":0"})

	_, err := c.Copy("hello")
	if err == nil {
		t.Fatal("expected error")
	}
	if got, want := err.Error(), "system clipboard: xclip missing; OSC52 fallback: no tty"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, sysErr) || !errors.Is(err, oscErr) {
		t.Fatalf("both causes should be reachable, got %v", err)
	}
	var ce *Error
	if !errors.As(err, &ce) || ce.System != sysErr || ce.OSC52 != oscErr {
		t.Fatalf("expected *Error with both causes, got %#v", err)
	}
}

func TestCopyWithoutOSC52(t *testing.T) {
	sysErr := errors.New("xclip missing")
	c, calls := newTestCopier(false, sysErr, nil, map[string]string{"DISPLAY": ":0"})

	_, err := c.Copy("hello")
	if err == nil {
		t.Fatal("expected error")
	}
	if strings.Join(*calls, ",") != "system" {
		t.Fatalf("OSC52 should not be attempted, calls: %v", *calls)
	}
	if got := err.Error(); got != "system clipboard: xclip missing" {
		t.Fatalf("Error() = %q", got)
	}
	if !errors.Is(err, sysErr) {
		t.Fatalf("system cause should be reachable")
	}
}

func TestCopyExitStatusIsExplainedOnce(t *testing.T) {
	sysErr := errors.New("exit status 1")

	c, _ := newTestCopier(false, sysErr, nil, map[string]string{"DISPLAY": ":0"})
	_, err := c.Copy("hello")
	if got := err.Error(); got != "system clipboard: helper exited with status 1" {
		t.Fatalf("Error() = %q", got)
	}
	if strings.Count(err.Error(), "status 1") != 1 {
		t.Fatalf("cause repeated in %q", err.Error())
	}

	c, _ = newTestCopier(false, sysErr, nil, nil)
	_, err = c.Copy("hello")
	if !strings.Contains(err.Error(), "no GUI clipboard available") {
		t.Fatalf("Error() = %q", err.Error())
	}
	if !errors.Is(err, sysErr) {
		t.Fatalf("system cause should be reachable")
	}
}

func TestEmitOSC52(t *testing.T) {
	var buf bytes.Buffer
	if err := emitOSC52(&buf, "hello", envOf(map[string]string{"TERM": "xterm-256color"})); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "\x1b]52;") {
		t.Fatalf("missing OSC52 prefix: %q", out)
	}
	if !strings.Contains(out, base64.StdEncoding.EncodeToString([]byte("hello"))) {
		t.Fatalf("missing encoded payload: %q", out)
	}
}

func TestEmitOSC52UnderTmuxWritesTwice(t *testing.T) {
	env := envOf(map[string]string{"TMUX": "/tmp/tmux-1000/default,1,0", "TERM": "screen-256color"})

	var buf bytes.Buffer
	if err := emitOSC52(&buf, "hi", env); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := strings.Count(buf.String(), base64.StdEncoding.EncodeToString([]byte("hi"))); n != 2 {
		t.Fatalf("expected payload twice, got %d in %q", n, buf.String())
	}
	if !strings.Contains(buf.String(), "\x1bPtmux;") {
		t.Fatalf("missing tmux passthrough: %q", buf.String())
	}
}

func TestOSC52Sequences(t *testing.T) {
	if n := len(osc52Sequences("x", envOf(map[string]string{"TERM": "screen"}))); n != 1 {
		t.Fatalf("screen: got %d sequences, want 1", n)
	}
	if n := len(osc52Sequences("x", envOf(map[string]string{"TMUX": "1"}))); n != 2 {
		t.Fatalf("tmux: got %d sequences, want 2", n)
	}
}

func TestOSC52Blocked(t *testing.T) {
	cases := []struct {
		env     map[string]string
		blocked bool
	}{
		{map[string]string{"TERM": "xterm"}, false},
		{map[string]string{"TERM": "dumb"}, true},
		{map[string]string{}, true},
		{map[string]string{"TERM": "xterm", DisableOSC52Env: "yes"}, true},
		{map[string]string{"TERM": "xterm", DisableOSC52Env: "0"}, false},
	}
	for _, tc := range cases {
		if got := osc52Blocked(envOf(tc.env)) != ""; got != tc.blocked {
			t.Errorf("osc52Blocked(%v) blocked = %v, want %v", tc.env, got, tc.blocked)
		}
	}
}
