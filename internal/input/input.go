// Copyright (c) 2026 IR Cloner Team
// IR Cloner - infrared remote code capture tool
// This source code is licensed under the MIT license found in the LICENSE file.

// Package input reads operator input from the controlling terminal: whole
// prompted lines for names and comments, and a non-blocking check for the
// cancel key while a capture loop is polling.
package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// EscapeKey is the byte sent by the ESC key in raw mode.
const EscapeKey = 0x1b

// CancelPoller reports, without blocking, whether the operator pressed the
// cancel key.
type CancelPoller interface {
	PollCancelKey() bool
}

// CancelFunc adapts a function to CancelPoller.
type CancelFunc func() bool

// PollCancelKey calls f.
func (f CancelFunc) PollCancelKey() bool { return f() }

// LinePrompter shows a prompt and returns the operator's trimmed reply.
type LinePrompter interface {
	ReadLine(prompt string) (string, error)
}

// Terminal polls a terminal file for the cancel key.
type Terminal struct {
	in *os.File
}

// NewTerminal returns a Terminal reading from in (usually os.Stdin).
func NewTerminal(in *os.File) *Terminal {
	return &Terminal{in: in}
}

// PollCancelKey switches the terminal to raw mode for a single zero-timeout
// read and restores the previous mode before returning, on every path. It
// returns true only if a byte was immediately available and it was ESC.
// A non-terminal input never reports cancel.
func (t *Terminal) PollCancelKey() bool {
	if t == nil || t.in == nil {
		return false
	}
	fd := int(t.in.Fd())
	if !term.IsTerminal(fd) {
		return false
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return false
	}
	defer func() { _ = term.Restore(fd, state) }()

	ready, err := inputReady(fd)
	if err != nil || !ready {
		return false
	}
	var b [1]byte
	n, err := t.in.Read(b[:])
	if err != nil || n != 1 {
		return false
	}
	return b[0] == EscapeKey
}

// Prompter reads prompted lines from r and writes prompts to w.
type Prompter struct {
	r *bufio.Reader
	w io.Writer
}

// NewPrompter returns a Prompter over r and w.
func NewPrompter(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{r: bufio.NewReader(r), w: w}
}

// ReadLine writes prompt and returns the next input line with surrounding
// whitespace removed. A final line without newline is returned normally;
// io.EOF is returned only when no input is left.
func (p *Prompter) ReadLine(prompt string) (string, error) {
	if prompt != "" {
		fmt.Fprint(p.w, prompt)
	}
	line, err := p.r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}
