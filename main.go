// Copyright (c) 2026 IR Cloner Team
// IR Cloner - infrared remote code capture tool
// This source code is licensed under the MIT license found in the LICENSE file.

// Command-line entrypoint for IR Cloner.
//
// Usage:
//
//	go run . [flags]
//	./ircloner --port /dev/ttyUSB0 --baudrate 9600
//
// This launches the interactive menu. See --help for options.
package main

import (
	"os"

	"github.com/toeirei/ircloner/internal/logging"
	"github.com/toeirei/ircloner/ui/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		logging.Errorf("%v", err)
		os.Exit(1)
	}
}
