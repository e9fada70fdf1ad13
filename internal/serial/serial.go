// Copyright (c) 2026 IR Cloner Team
// IR Cloner - infrared remote code capture tool
// This source code is licensed under the MIT license found in the LICENSE file.

// Package serial reads newline-terminated text from the IR receiver's serial
// port. A missing or unusable device is never an error to the caller: Connect
// reports false and the rest of the program carries on without serial input.
package serial

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/tarm/serial"
	"github.com/toeirei/ircloner/internal/logging"
)

// ReadTimeout bounds a single read from the device.
const ReadTimeout = 100 * time.Millisecond

// maxPending caps buffered bytes without a newline; anything longer is noise.
const maxPending = 4096

// OpenFunc opens a device. Tests replace Open with an in-memory port.
type OpenFunc func(device string, baud int, timeout time.Duration) (io.ReadCloser, error)

// Open is the OpenFunc used by new Sources.
var Open OpenFunc = func(device string, baud int, timeout time.Duration) (io.ReadCloser, error) {
	port, err := serial.OpenPort(&serial.Config{
		Name:        device,
		Baud:        baud,
		ReadTimeout: timeout,
	})
	if err != nil {
		return nil, err
	}
	return port, nil
}

// Source is a line source backed by a serial port. The zero value is a
// disconnected source. Disconnect may be called from another goroutine, for
// example to release the port on interrupt.
type Source struct {
	mu      sync.Mutex
	port    io.ReadCloser
	device  string
	baud    int
	pending []byte
	chunk   []byte
}

// NewSource returns a disconnected Source.
func NewSource() *Source {
	return &Source{}
}

// Connect opens device at baud. Any failure (missing device, permissions,
// bad baud rate) is logged and reported as false. An open port is closed
// first.
func (s *Source) Connect(device string, baud int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.disconnectLocked()
	s.device, s.baud = device, baud
	port, err := Open(device, baud, ReadTimeout)
	if err != nil {
		logging.Warnf("serial: could not open %s: %v", s, err)
		return false
	}
	s.port = port
	logging.Debugf("serial: connected to %s", s)
	return true
}

// IsConnected reports whether a port is open.
func (s *Source) IsConnected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.port != nil
}

// ReadLine returns the next complete line, trimmed, if one is available.
// It performs at most one read bounded by ReadTimeout. Partial lines stay
// buffered for later calls. Empty lines and lines that are not valid UTF-8
// are dropped and reported as "no line".
func (s *Source) ReadLine() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.port == nil {
		return "", false
	}
	if line, found := s.nextLine(); found {
		return line, line != ""
	}

	if s.chunk == nil {
		s.chunk = make([]byte, 256)
	}
	n, err := s.port.Read(s.chunk)
	if n > 0 {
		s.pending = append(s.pending, s.chunk[:n]...)
	}
	if err != nil && !errors.Is(err, io.EOF) {
		logging.Debugf("serial: read from %s failed: %v", s, err)
	}
	if len(s.pending) > maxPending && bytes.IndexByte(s.pending, '\n') < 0 {
		logging.Debugf("serial: dropping %d bytes without line terminator", len(s.pending))
		s.pending = s.pending[:0]
	}

	line, found := s.nextLine()
	return line, found && line != ""
}

// nextLine pops one '\n'-terminated line from the buffer. found is true when
// a terminator was consumed; line is "" if the line was empty or invalid.
func (s *Source) nextLine() (line string, found bool) {
	i := bytes.IndexByte(s.pending, '\n')
	if i < 0 {
		return "", false
	}
	raw := s.pending[:i]
	rest := s.pending[i+1:]
	defer func() { s.pending = append(s.pending[:0], rest...) }()

	if !utf8.Valid(raw) {
		logging.Debugf("serial: dropping non-UTF-8 line % x", raw)
		return "", true
	}
	return strings.TrimSpace(string(raw)), true
}

// Disconnect closes the port. It is safe to call repeatedly and on a source
// that was never connected.
func (s *Source) Disconnect() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disconnectLocked()
}

func (s *Source) disconnectLocked() {
	if s.port == nil {
		return
	}
	if err := s.port.Close(); err != nil {
		logging.Debugf("serial: close %s: %v", s, err)
	}
	s.port = nil
	s.pending = s.pending[:0]
	logging.Debugf("serial: disconnected from %s", s)
}

// String describes the source as device@baud. Callers hold s.mu or own s.
func (s *Source) String() string {
	return fmt.Sprintf("%s@%d", s.device, s.baud)
}
