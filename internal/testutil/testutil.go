// Copyright (c) 2026 IR Cloner Team
// IR Cloner - infrared remote code capture tool
// This source code is licensed under the MIT license found in the LICENSE file.

// Package testutil holds fakes shared by package tests.
package testutil

import (
	"path/filepath"
	"testing"
)

// FakeSerial is an in-memory serial source that replays queued lines, so
// tests never touch a real port.
type FakeSerial struct {
	Lines     []string
	ConnectOK bool

	Device      string
	Baud        int
	Connects    int
	Disconnects int
	connected   bool
}

// NewFakeSerial returns a source that connects successfully and yields lines.
func NewFakeSerial(lines ...string) *FakeSerial {
	return &FakeSerial{Lines: lines, ConnectOK: true}
}

func (f *FakeSerial) Connect(device string, baud int) bool {
	f.Connects++
	f.Device, f.Baud = device, baud
	f.connected = f.ConnectOK
	return f.ConnectOK
}

func (f *FakeSerial) ReadLine() (string, bool) {
	if !f.connected || len(f.Lines) == 0 {
		return "", false
	}
	l := f.Lines[0]
	f.Lines = f.Lines[1:]
	return l, true
}

func (f *FakeSerial) IsConnected() bool { return f.connected }

func (f *FakeSerial) Disconnect() { f.Disconnects++; f.connected = false }

// Drained reports whether every queued line has been read. Tests use it as
// the cancel key so a loop exits once its input is consumed.
func (f *FakeSerial) Drained() bool { return len(f.Lines) == 0 }

// TempSQLiteDSN returns a database file path inside a per-test directory.
func TempSQLiteDSN(t testing.TB) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "ir_remotes.db")
}
