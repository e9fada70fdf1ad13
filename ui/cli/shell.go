// Copyright (c) 2026 IR Cloner Team
// IR Cloner - infrared remote code capture tool
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/toeirei/ircloner/internal/capture"
	"github.com/toeirei/ircloner/internal/i18n"
	"github.com/toeirei/ircloner/internal/input"
	"github.com/toeirei/ircloner/internal/model"
	"github.com/toeirei/ircloner/internal/ui"
)

// Store is the subset of the persistence layer used by the shell.
type Store interface {
	CreateRemote(ctx context.Context, name, comment string) (int64, error)
	ListRemotes(ctx context.Context) ([]model.Remote, error)
	GetRemote(ctx context.Context, id int64) (*model.Remote, error)
	UpsertKey(ctx context.Context, key model.Key) error
	ListKeysForRemote(ctx context.Context, remoteID int64) ([]model.Key, error)
}

// SerialSource is a line source that can be (re)connected.
type SerialSource interface {
	capture.LineSource
	Connect(device string, baud int) bool
}

// Shell is the interactive numbered menu. Each menu action runs to
// completion before the menu is shown again.
type Shell struct {
	Store  Store
	Source SerialSource
	Cancel input.CancelPoller
	Prompt input.LinePrompter
	Out    io.Writer

	Port     string
	Baudrate int

	IdleDelay      time.Duration
	DebounceWindow time.Duration
}

// Run shows the menu until the operator quits, input ends, or ctx is
// cancelled. End of input counts as quitting. The serial source is
// released on return.
func (s *Shell) Run(ctx context.Context) error {
	defer s.Source.Disconnect()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.printMenu()

		choice, err := s.Prompt.ReadLine(i18n.T("menu.choice"))
		if err != nil {
			return endOfInput(err)
		}

		var actionErr error
		switch strings.ToLower(choice) {
		case "1":
			actionErr = s.createRemote(ctx)
		case "2":
			s.listRemotes(ctx)
		case "3":
			actionErr = s.registerKeys(ctx)
		case "4":
			actionErr = s.viewKeys(ctx)
		case "5":
			actionErr = s.debugSerial(ctx)
		case "q":
			fmt.Fprintln(s.Out, "\n"+i18n.T("menu.goodbye"))
			return nil
		default:
			s.errorf(i18n.T("menu.invalid"))
		}
		if actionErr != nil {
			return endOfInput(actionErr)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := s.Prompt.ReadLine("\n" + i18n.T("menu.continue")); err != nil {
			return endOfInput(err)
		}
	}
}

func (s *Shell) printMenu() {
	fmt.Fprintln(s.Out)
	fmt.Fprintln(s.Out, ui.Header(i18n.T("app.title")))
	fmt.Fprintln(s.Out)
	fmt.Fprintln(s.Out, i18n.T("menu.question"))
	for _, id := range []string{"menu.create", "menu.list", "menu.register", "menu.view", "menu.debug", "menu.quit"} {
		fmt.Fprintln(s.Out, i18n.T(id))
	}
	fmt.Fprintln(s.Out)
}

// selectRemote lists the remotes and asks for an id. It returns nil without
// error when there is nothing to select or the input is not a known id;
// the reason has already been shown.
func (s *Shell) selectRemote(ctx context.Context) (*model.Remote, error) {
	remotes, err := s.Store.ListRemotes(ctx)
	if err != nil {
		s.errorf(i18n.T("remote.list_failed", err))
		return nil, nil
	}
	if len(remotes) == 0 {
		fmt.Fprintln(s.Out, i18n.T("remote.none_create_first"))
		return nil, nil
	}

	fmt.Fprintln(s.Out, i18n.T("remote.available"))
	for _, r := range remotes {
		fmt.Fprintf(s.Out, "  %d: %s\n", r.ID, r.Name)
	}

	answer, err := s.Prompt.ReadLine("\n" + i18n.T("remote.id_prompt"))
	if err != nil {
		return nil, err
	}
	id, convErr := strconv.ParseInt(answer, 10, 64)
	if convErr != nil {
		s.errorf(i18n.T("remote.invalid_id"))
		return nil, nil
	}
	remote, err := s.Store.GetRemote(ctx, id)
	if err != nil {
		s.errorf(i18n.T("remote.get_failed", err))
		return nil, nil
	}
	if remote == nil {
		s.errorf(i18n.T("remote.invalid_id"))
		return nil, nil
	}
	fmt.Fprintln(s.Out, i18n.T("remote.selected", ui.Accent(remote.Name)))
	return remote, nil
}

// newLoop builds a capture loop reporting to the shell's output.
func (s *Shell) newLoop() *capture.Loop {
	l := capture.New(s.Source, s.Cancel, s.Prompt, s.Store, &termReporter{out: s.Out}, capture.Prompts{
		KeyName: i18n.T("keys.name_prompt"),
		Comment: i18n.T("keys.comment_prompt"),
	})
	l.IdleDelay = s.IdleDelay
	l.DebounceWindow = s.DebounceWindow
	return l
}

// connectSerial opens the configured port, warning when it cannot.
func (s *Shell) connectSerial() bool {
	if s.Source.Connect(s.Port, s.Baudrate) {
		return true
	}
	s.warnf(i18n.T("serial.connect_failed", s.Port))
	return false
}

func (s *Shell) errorf(msg string) {
	fmt.Fprintln(s.Out, ui.Error(i18n.T("error.prefix", msg)))
}

func (s *Shell) warnf(msg string) {
	fmt.Fprintln(s.Out, ui.Warn(i18n.T("warning.prefix", msg)))
}

// endOfInput treats exhausted operator input as a normal quit.
func endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
