// Copyright (c) 2026 IR Cloner Team
// IR Cloner - infrared remote code capture tool
// This source code is licensed under the MIT license found in the LICENSE file.

// package model defines the core data structures used throughout IR Cloner.
package model // import "github.com/toeirei/ircloner/internal/model"

// Remote is a named collection of keys belonging to one physical remote control.
type Remote struct {
	ID      int64  // The primary key for the remote.
	Name    string // Unique, case-sensitive display name.
	Comment string // Optional free text; empty when not set.
}

// Key maps one captured IR code to a button name within a Remote.
// (RemoteID, KeyName) is unique.
type Key struct {
	ID       int64
	RemoteID int64
	Protocol string
	Address  string
	Command  string
	KeyName  string
	Comment  string
}

// Code is a decoded IR transmission as reported by the receiver hardware.
// Fields are kept verbatim as text.
type Code struct {
	Protocol string
	Address  string
	Command  string
	Raw      string // The full line as received.
}
