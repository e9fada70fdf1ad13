// Copyright (c) 2026 IR Cloner Team
// IR Cloner - infrared remote code capture tool
// This source code is licensed under the MIT license found in the LICENSE file.

// main.go sets up the root Cobra command: flags, configuration loading,
// logging, i18n and the store, then hands control to the menu shell.

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/toeirei/ircloner/internal/capture"
	"github.com/toeirei/ircloner/internal/config"
	"github.com/toeirei/ircloner/internal/db"
	"github.com/toeirei/ircloner/internal/i18n"
	"github.com/toeirei/ircloner/internal/input"
	"github.com/toeirei/ircloner/internal/logging"
	"github.com/toeirei/ircloner/internal/serial"
)

// shutdownGrace is how long an interrupt waits for the shell to notice the
// cancelled context before the process exits anyway. The shell may be
// blocked reading a line of operator input, which cannot be interrupted.
const shutdownGrace = 500 * time.Millisecond

// Execute runs the CLI entrypoint. The main package should call this
// function and handle process exit.
func Execute() error {
	return NewRootCmd().ExecuteContext(context.Background())
}

// NewRootCmd creates and configures a new root cobra command.
// This function is used to create the main application command as well as
// fresh instances for isolated testing.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ircloner",
		Short: "Capture IR remote codes from a serial receiver and store them by remote and key.",
		Long: `IR Cloner reads decoded infrared codes from a microcontroller on a serial
port and lets you name each one. Codes are stored per remote in a local
database.

The program is fully interactive: after start-up a numbered menu is shown.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       versionString(nil),
		RunE: func(cmd *cobra.Command, args []string) error {
			appConfig, err := loadAppConfig(cmd)
			if err != nil {
				return err
			}
			store, err := db.NewStore(appConfig.Database.Type, appConfig.Database.Dsn)
			if err != nil {
				return errors.New(i18n.T("config.error_init_db", err))
			}

			out := cmd.OutOrStdout()
			sh := &Shell{
				Store:          store,
				Source:         serial.NewSource(),
				Cancel:         input.NewTerminal(os.Stdin),
				Prompt:         input.NewPrompter(cmd.InOrStdin(), out),
				Out:            out,
				Port:           appConfig.Port,
				Baudrate:       appConfig.Baudrate,
				IdleDelay:      capture.DefaultIdleDelay,
				DebounceWindow: capture.DefaultDebounceWindow,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runInterruptible(ctx, sh, out)
		},
	}

	cmd.Flags().StringP("port", "p", config.DefaultPort(), "Serial port the IR receiver is connected to")
	cmd.Flags().IntP("baudrate", "b", config.DefaultBaudrate, "Baud rate for serial communication")
	cmd.Flags().String("config", "", "config file")
	cmd.Flags().String("database.type", "sqlite", "Database type (sqlite, postgres, mysql)")
	cmd.Flags().String("database.dsn", config.DefaultDSN, "Database connection string (DSN)")
	cmd.Flags().String("language", "en", `Language ("en", "de")`)
	cmd.Flags().Bool("debug", false, "Enable debug logging")

	return cmd
}

// loadAppConfig resolves configuration and applies it to the logging, db
// and i18n packages. On first run a default config file is written.
func loadAppConfig(cmd *cobra.Command) (config.Config, error) {
	explicit, err := getConfigPathFromCli(cmd)
	if err != nil {
		return config.Config{}, err
	}
	appConfig, used, err := config.LoadConfig[config.Config](cmd, config.Defaults(), explicit)
	if err != nil {
		return appConfig, fmt.Errorf("error loading config: %w", err)
	}

	// Fall back to defaults for values a config file left empty.
	defaults := config.DefaultConfig()
	if appConfig.Port == "" {
		appConfig.Port = defaults.Port
	}
	if appConfig.Baudrate <= 0 {
		appConfig.Baudrate = defaults.Baudrate
	}
	if appConfig.Database.Type == "" {
		appConfig.Database.Type = defaults.Database.Type
	}
	if appConfig.Database.Dsn == "" {
		appConfig.Database.Dsn = defaults.Database.Dsn
	}
	if appConfig.Language == "" {
		appConfig.Language = defaults.Language
	}

	logging.SetDebug(appConfig.Debug)
	db.SetDebug(appConfig.Debug)
	i18n.Init(appConfig.Language)

	if used == "" {
		// Flags and environment apply to this run only.
		if path, writeErr := config.WriteConfigFile(&defaults, false); writeErr != nil {
			// The app can run on defaults.
			logging.Warnf("could not write default config file: %v", writeErr)
		} else {
			logging.Debugf("%s", i18n.T("config.wrote_default", path))
		}
	} else {
		logging.Debugf("using config file %s", used)
	}
	logging.Debugf("serial port %s at %d baud, %s store %s", appConfig.Port, appConfig.Baudrate, appConfig.Database.Type, appConfig.Database.Dsn)
	return appConfig, nil
}

func getConfigPathFromCli(cmd *cobra.Command) (*string, error) {
	// Only proceed if the user has explicitly set the --config flag.
	if !cmd.Flags().Changed("config") {
		return nil, nil
	}
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("could not read --config flag: %w", err)
	}
	if path == "" {
		return nil, nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file specified via --config flag not found or is not accessible: %w", err)
	}
	return &path, nil
}

// runInterruptible runs the shell and turns an interrupt into a clean exit.
// The shell runs on its own goroutine only so that a blocked line read does
// not keep the process alive after an interrupt; the shell itself is
// sequential.
func runInterruptible(ctx context.Context, sh *Shell, out io.Writer) error {
	done := make(chan error, 1)
	go func() { done <- sh.Run(ctx) }()

	select {
	case err := <-done:
		if ctx.Err() == nil {
			return err
		}
	case <-ctx.Done():
		select {
		case <-done:
		case <-time.After(shutdownGrace):
			// Usually blocked on operator input. Source serializes this
			// Disconnect against an in-flight ReadLine.
			logging.Debugf("shell still waiting for input; releasing serial port")
			sh.Source.Disconnect()
		}
	}
	fmt.Fprintln(out, "\n\n"+i18n.T("menu.interrupted"))
	return nil
}
