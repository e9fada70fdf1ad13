// Copyright (c) 2026 IR Cloner Team
// IR Cloner - infrared remote code capture tool
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"
	"io"

	"github.com/toeirei/ircloner/internal/i18n"
	"github.com/toeirei/ircloner/internal/model"
	"github.com/toeirei/ircloner/internal/ui"
)

// termReporter prints capture loop events for the operator.
type termReporter struct {
	out     io.Writer
	monitor bool
}

func (r *termReporter) Waiting() {
	if r.monitor {
		return
	}
	fmt.Fprintln(r.out, ui.Muted(i18n.T("keys.waiting")))
}

func (r *termReporter) Received(code model.Code) {
	fmt.Fprintln(r.out, ui.Accent(i18n.T("keys.received", code.Protocol, code.Address, code.Command)))
}

func (r *termReporter) Discarded(line string) {
	fmt.Fprintln(r.out, ui.Muted(i18n.T("keys.discarded", line)))
}

func (r *termReporter) Rejected(line string, _ error) {
	fmt.Fprintln(r.out, ui.Warn(i18n.T("keys.invalid_format", line)))
}

func (r *termReporter) Cancelled() {
	fmt.Fprintln(r.out, i18n.T("keys.skipped"))
}

func (r *termReporter) Saved(keyName string) {
	fmt.Fprintln(r.out, ui.Success(i18n.T("keys.saved", keyName)))
}

func (r *termReporter) SaveFailed(keyName string, err error) {
	fmt.Fprintln(r.out, ui.Error(i18n.T("keys.save_failed", keyName, err)))
}

func (r *termReporter) Raw(line string, code model.Code, err error) {
	if err != nil {
		fmt.Fprintln(r.out, ui.Warn(i18n.T("debug.line_bad", line)))
		return
	}
	fmt.Fprintln(r.out, i18n.T("debug.line_ok", line, code.Protocol, code.Address, code.Command))
}

func (r *termReporter) Exiting() {
	if r.monitor {
		fmt.Fprintln(r.out, "\n"+i18n.T("debug.exit"))
		return
	}
	fmt.Fprintln(r.out, "\n"+i18n.T("keys.exit"))
}
