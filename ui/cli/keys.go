// Copyright (c) 2026 IR Cloner Team
// IR Cloner - infrared remote code capture tool
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/toeirei/ircloner/internal/capture"
	"github.com/toeirei/ircloner/internal/i18n"
	"github.com/toeirei/ircloner/internal/ui"
)

// registerKeys runs the capture loop for a selected remote. A serial port
// that cannot be opened ends registration with a warning.
func (s *Shell) registerKeys(ctx context.Context) error {
	fmt.Fprintln(s.Out, "\n"+ui.Title(i18n.T("keys.register_title")))

	remote, err := s.selectRemote(ctx)
	if err != nil || remote == nil {
		return err
	}
	fmt.Fprintln(s.Out, "\n"+ui.Muted(i18n.T("keys.press_esc")))

	if !s.connectSerial() {
		fmt.Fprintln(s.Out, i18n.T("keys.exit"))
		return nil
	}
	err = s.newLoop().Run(ctx, *remote)
	if errors.Is(err, capture.ErrNotConnected) {
		s.warnf(i18n.T("serial.connect_failed", s.Port))
		return nil
	}
	return err
}

func (s *Shell) viewKeys(ctx context.Context) error {
	remote, err := s.selectRemote(ctx)
	if err != nil || remote == nil {
		return err
	}
	fmt.Fprintln(s.Out, "\n"+ui.Title(i18n.T("keys.view_title", remote.Name)))

	keys, err := s.Store.ListKeysForRemote(ctx, remote.ID)
	if err != nil {
		s.errorf(i18n.T("keys.list_failed", err))
		return nil
	}
	if len(keys) == 0 {
		fmt.Fprintln(s.Out, i18n.T("keys.none"))
		return nil
	}

	w := tabwriter.NewWriter(s.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
		i18n.T("keys.col_key"), i18n.T("keys.col_protocol"), i18n.T("keys.col_address"),
		i18n.T("keys.col_command"), i18n.T("keys.col_comment"))
	for _, k := range keys {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", k.KeyName, k.Protocol, k.Address, k.Command, k.Comment)
	}
	w.Flush()
	return nil
}

// debugSerial shows raw serial lines until ESC.
func (s *Shell) debugSerial(ctx context.Context) error {
	fmt.Fprintln(s.Out, "\n"+ui.Title(i18n.T("debug.title")))
	if !s.connectSerial() {
		fmt.Fprintln(s.Out, i18n.T("serial.serial_less"))
		return nil
	}
	fmt.Fprintln(s.Out, ui.Muted(i18n.T("debug.press_esc")))
	l := s.newLoop()
	l.Report = &termReporter{out: s.Out, monitor: true}
	err := l.Monitor(ctx)
	if errors.Is(err, capture.ErrNotConnected) {
		return nil
	}
	return err
}
