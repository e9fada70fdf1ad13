package input

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"
	"testing"
)

func TestPrompter_ReadLine(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("  Power  \n\nlast"), &out)

	got, err := p.ReadLine("Enter key name: ")
	if err != nil || got != "Power" {
		t.Fatalf("expected %q, got %q (err=%v)", "Power", got, err)
	}
	if out.String() != "Enter key name: " {
		t.Fatalf("unexpected prompt output %q", out.String())
	}

	got, err = p.ReadLine("")
	if err != nil || got != "" {
		t.Fatalf("expected empty line, got %q (err=%v)", got, err)
	}

	got, err = p.ReadLine("")
	if err != nil || got != "last" {
		t.Fatalf("expected unterminated final line, got %q (err=%v)", got, err)
	}

	if _, err := p.ReadLine(""); !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF once input is exhausted, got %v", err)
	}
}

func TestTerminal_NonTerminalNeverCancels(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	defer r.Close()
	defer w.Close()

	// Even with ESC waiting on the pipe, a non-terminal input is not polled.
	if _, err := w.Write([]byte{EscapeKey}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if NewTerminal(r).PollCancelKey() {
		t.Fatalf("expected false for non-terminal input")
	}
}

func TestTerminal_NilSafe(t *testing.T) {
	var tm *Terminal
	if tm.PollCancelKey() {
		t.Fatalf("nil terminal should not report cancel")
	}
	if NewTerminal(nil).PollCancelKey() {
		t.Fatalf("terminal without input should not report cancel")
	}
}

func TestCancelFunc(t *testing.T) {
	calls := 0
	var p CancelPoller = CancelFunc(func() bool { calls++; return calls > 1 })
	if p.PollCancelKey() {
		t.Fatalf("first poll should be false")
	}
	if !p.PollCancelKey() {
		t.Fatalf("second poll should be true")
	}
}
