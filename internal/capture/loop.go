// Copyright (c) 2026 IR Cloner Team
// IR Cloner - infrared remote code capture tool
// This source code is licensed under the MIT license found in the LICENSE file.

// Package capture runs the key registration loop: it polls the serial
// source for IR codes, asks the operator to name each one and stores it
// under the selected remote until the cancel key is pressed.
package capture

import (
	"context"
	"errors"
	"time"

	"github.com/toeirei/ircloner/internal/input"
	"github.com/toeirei/ircloner/internal/logging"
	"github.com/toeirei/ircloner/internal/model"
)

// Default timings.
const (
	DefaultIdleDelay      = 10 * time.Millisecond
	DefaultDebounceWindow = 300 * time.Millisecond
)

// ErrNotConnected is returned by Run and Monitor when the source has no
// open device.
var ErrNotConnected = errors.New("serial source not connected")

// State is a step of the registration loop.
type State int

const (
	Idle State = iota
	AwaitingCode
	ParsingCode
	Rejected
	AwaitingKeyName
	Cancelled
	Saving
	ExitRequested
)

var stateNames = [...]string{
	Idle:            "idle",
	AwaitingCode:    "awaiting-code",
	ParsingCode:     "parsing-code",
	Rejected:        "rejected",
	AwaitingKeyName: "awaiting-key-name",
	Cancelled:       "cancelled",
	Saving:          "saving",
	ExitRequested:   "exit-requested",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// LineSource yields received lines without blocking for long.
type LineSource interface {
	ReadLine() (string, bool)
	IsConnected() bool
	Disconnect()
}

// KeyStore persists named keys.
type KeyStore interface {
	UpsertKey(ctx context.Context, key model.Key) error
}

// Reporter receives loop events for display. Implementations own all
// wording and formatting.
type Reporter interface {
	Waiting()
	Received(code model.Code)
	Discarded(line string)
	Rejected(line string, err error)
	Cancelled()
	Saved(keyName string)
	SaveFailed(keyName string, err error)
	Raw(line string, code model.Code, err error)
	Exiting()
}

// Prompts holds the texts shown when asking the operator for input.
type Prompts struct {
	KeyName string
	Comment string
}

// Loop wires a source, the operator and a store together. A zero timing
// disables that delay; New sets the defaults.
type Loop struct {
	Source  LineSource
	Cancel  input.CancelPoller
	Prompt  input.LinePrompter
	Store   KeyStore
	Report  Reporter
	Prompts Prompts

	IdleDelay      time.Duration
	DebounceWindow time.Duration

	state State
}

// New returns a Loop with default timings.
func New(src LineSource, cancel input.CancelPoller, prompt input.LinePrompter, store KeyStore, report Reporter, prompts Prompts) *Loop {
	return &Loop{
		Source:         src,
		Cancel:         cancel,
		Prompt:         prompt,
		Store:          store,
		Report:         report,
		Prompts:        prompts,
		IdleDelay:      DefaultIdleDelay,
		DebounceWindow: DefaultDebounceWindow,
	}
}

// State returns the loop's current state.
func (l *Loop) State() State { return l.state }

// Run registers keys for remote until the cancel key is pressed or ctx is
// done. The source is disconnected on every return path. Save failures are
// reported and do not end the loop; a failure reading operator input does.
func (l *Loop) Run(ctx context.Context, remote model.Remote) error {
	defer l.Source.Disconnect()

	if !l.Source.IsConnected() {
		l.state = ExitRequested
		return ErrNotConnected
	}

	l.state = Idle
	l.Report.Waiting()
	for {
		if l.cancelRequested(ctx) {
			l.state = ExitRequested
			l.Report.Exiting()
			return nil
		}

		l.state = AwaitingCode
		line, ok := l.Source.ReadLine()
		if !ok {
			l.sleep(ctx, l.IdleDelay)
			continue
		}

		l.state = ParsingCode
		code, err := ParseLine(line)
		if err != nil {
			l.state = Rejected
			logging.Debugf("capture: rejected %q: %v", line, err)
			l.Report.Rejected(line, err)
			continue
		}
		logging.Debugf("capture: received %q", code.Raw)
		l.Report.Received(code)
		l.drain(ctx)

		l.state = AwaitingKeyName
		name, err := l.Prompt.ReadLine(l.Prompts.KeyName)
		if err != nil {
			l.state = ExitRequested
			return err
		}
		if name == "" {
			l.state = Cancelled
			l.Report.Cancelled()
			l.Report.Waiting()
			continue
		}
		comment, err := l.Prompt.ReadLine(l.Prompts.Comment)
		if err != nil {
			l.state = ExitRequested
			return err
		}

		l.state = Saving
		key := model.Key{
			RemoteID: remote.ID,
			Protocol: code.Protocol,
			Address:  code.Address,
			Command:  code.Command,
			KeyName:  name,
			Comment:  comment,
		}
		if err := l.Store.UpsertKey(ctx, key); err != nil {
			logging.Errorf("capture: saving key %q for remote %d: %v", name, remote.ID, err)
			l.Report.SaveFailed(name, err)
		} else {
			logging.Debugf("capture: saved %s/%s/%s as %q on remote %d", code.Protocol, code.Address, code.Command, name, remote.ID)
			l.Report.Saved(name)
		}
		l.state = Idle
		l.Report.Waiting()
	}
}

// Monitor shows every received line, parsed or not, until the cancel key is
// pressed or ctx is done. Nothing is stored.
func (l *Loop) Monitor(ctx context.Context) error {
	defer l.Source.Disconnect()

	if !l.Source.IsConnected() {
		l.state = ExitRequested
		return ErrNotConnected
	}

	l.state = AwaitingCode
	l.Report.Waiting()
	for {
		if l.cancelRequested(ctx) {
			l.state = ExitRequested
			l.Report.Exiting()
			return nil
		}
		line, ok := l.Source.ReadLine()
		if !ok {
			l.sleep(ctx, l.IdleDelay)
			continue
		}
		code, err := ParseLine(line)
		l.Report.Raw(line, code, err)
	}
}

// cancelRequested checks ctx first so an interrupt never waits on the
// terminal.
func (l *Loop) cancelRequested(ctx context.Context) bool {
	if ctx.Err() != nil {
		return true
	}
	return l.Cancel != nil && l.Cancel.PollCancelKey()
}

// drain discards repeats of the accepted transmission that arrive within the
// debounce window.
func (l *Loop) drain(ctx context.Context) {
	if l.DebounceWindow <= 0 {
		return
	}
	deadline := time.Now().Add(l.DebounceWindow)
	for time.Now().Before(deadline) && ctx.Err() == nil {
		if line, ok := l.Source.ReadLine(); ok {
			logging.Debugf("capture: discarded repeat %q", line)
			l.Report.Discarded(line)
			continue
		}
		l.sleep(ctx, l.IdleDelay)
	}
}

func (l *Loop) sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
