// Copyright (c) 2026 IR Cloner Team
// IR Cloner - infrared remote code capture tool
// This source code is licensed under the MIT license found in the LICENSE file.
//
// Package cli implements the command-line entry point for IR Cloner using
// Cobra, and the interactive numbered menu it launches. There are no
// subcommands: flags configure the serial port and the store, and everything
// else happens in the menu.
package cli
