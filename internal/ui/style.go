// Copyright (c) 2026 IR Cloner Team
// IR Cloner - infrared remote code capture tool
// This source code is licensed under the MIT license found in the LICENSE file.

// Package ui holds the text styling used by the interactive shell. It is
// stateless and imported by ui/cli only; the capture loop never formats text.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	titleStyle   = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
)

// RuleWidth is the width of the header rule.
const RuleWidth = 50

// Header renders the application banner framed by rules.
func Header(title string) string {
	rule := strings.Repeat("=", RuleWidth)
	return lipgloss.JoinVertical(lipgloss.Left, rule, headerStyle.Render(title), rule)
}

// Title renders a section title.
func Title(s string) string { return titleStyle.Render(s) }

// Success renders a confirmation.
func Success(s string) string { return successStyle.Render(s) }

// Error renders an error message.
func Error(s string) string { return errorStyle.Render(s) }

// Warn renders a warning.
func Warn(s string) string { return warnStyle.Render(s) }

// Muted renders secondary text such as hints and discarded lines.
func Muted(s string) string { return mutedStyle.Render(s) }

// Accent renders highlighted values such as received codes.
func Accent(s string) string { return accentStyle.Render(s) }
