// Copyright (c) 2026 IR Cloner Team
// IR Cloner - infrared remote code capture tool
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"testing"

	"github.com/toeirei/ircloner/buildvars"
	"github.com/toeirei/ircloner/internal/config"
)

func TestNewRootCmd_Flags(t *testing.T) {
	cmd := NewRootCmd()
	tests := []struct {
		name      string
		shorthand string
		def       string
	}{
		{"port", "p", config.DefaultPort()},
		{"baudrate", "b", "9600"},
		{"config", "", ""},
		{"database.type", "", "sqlite"},
		{"database.dsn", "", config.DefaultDSN},
		{"language", "", "en"},
		{"debug", "", "false"},
	}
	for _, tt := range tests {
		f := cmd.Flags().Lookup(tt.name)
		if f == nil {
			t.Fatalf("flag --%s not registered", tt.name)
		}
		if f.Shorthand != tt.shorthand {
			t.Errorf("--%s: expected shorthand %q, got %q", tt.name, tt.shorthand, f.Shorthand)
		}
		if f.DefValue != tt.def {
			t.Errorf("--%s: expected default %q, got %q", tt.name, tt.def, f.DefValue)
		}
	}
}

func TestNewRootCmd_RejectsArgs(t *testing.T) {
	cmd := NewRootCmd()
	cmd.SetArgs([]string{"extra"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected error for positional argument")
	}
}

func TestNewRootCmd_Version(t *testing.T) {
	cmd := NewRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetArgs([]string{"--version"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("--version failed: %v", err)
	}
	if !strings.Contains(out.String(), "ircloner version") {
		t.Fatalf("unexpected version output %q", out.String())
	}
}

func TestNewRootCmd_RunsMenuAndQuits(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)

	cmd := NewRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader("q\n"))
	cmd.SetArgs([]string{"--database.dsn", filepath.Join(dir, "test.db"), "--port", "/dev/null-port"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !strings.Contains(out.String(), "Goodbye!") {
		t.Fatalf("expected menu to run and quit:\n%s", out.String())
	}
	if _, err := os.Stat(filepath.Join(dir, "test.db")); err != nil {
		t.Fatalf("expected database file to be created: %v", err)
	}

	// The first run writes defaults, not this run's flags.
	path, err := config.GetConfigPath(false)
	if err != nil {
		t.Fatalf("GetConfigPath failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected default config file at %s: %v", path, err)
	}
	written := string(data)
	if strings.Contains(written, "/dev/null-port") || strings.Contains(written, "test.db") {
		t.Fatalf("flag overrides leaked into config file:\n%s", written)
	}
	for _, want := range []string{config.DefaultPort(), config.DefaultDSN} {
		if !strings.Contains(written, want) {
			t.Fatalf("config file missing default %q:\n%s", want, written)
		}
	}
}

func TestNewRootCmd_MissingConfigFile(t *testing.T) {
	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")})
	if err := cmd.Execute(); err == nil || !strings.Contains(err.Error(), "--config") {
		t.Fatalf("expected --config error, got %v", err)
	}
}

func TestResolveBuildVersion_MainVersion(t *testing.T) {
	info := &debug.BuildInfo{
		Main: debug.Module{Path: modulePath, Version: "v1.2.3"},
	}
	v, c, _ := resolveBuildVersion(info)
	if v != "v1.2.3" {
		t.Fatalf("expected v1.2.3 got %s", v)
	}
	if c != "dev" {
		t.Fatalf("expected dev commit got %s", c)
	}
}

func TestResolveBuildVersion_DependencyFallback(t *testing.T) {
	info := &debug.BuildInfo{
		Main: debug.Module{Path: modulePath, Version: "(devel)"},
		Deps: []*debug.Module{
			{Path: modulePath, Version: "v0.3.1-0.20260901120000-abcdef012345"},
		},
	}
	v, _, _ := resolveBuildVersion(info)
	if v != "v0.3.1-0.20260901120000-abcdef012345" {
		t.Fatalf("expected dependency version fallback got %s", v)
	}
}

func TestResolveBuildVersion_LinkTimeValuesWin(t *testing.T) {
	origV, origC := buildvars.Version, buildvars.Commit
	defer func() { buildvars.Version, buildvars.Commit = origV, origC }()
	buildvars.Version = "v2.0.0"
	buildvars.Commit = "deadbeef"

	info := &debug.BuildInfo{
		Main:     debug.Module{Path: modulePath, Version: "v1.0.0"},
		Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "cafebabe"}},
	}
	v, c, _ := resolveBuildVersion(info)
	if v != "v2.0.0" || c != "deadbeef" {
		t.Fatalf("expected link-time values, got %s %s", v, c)
	}
}

func TestResolveBuildVersion_VCSSettings(t *testing.T) {
	info := &debug.BuildInfo{
		Main: debug.Module{Path: modulePath, Version: "(devel)"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "cafebabe"},
			{Key: "vcs.time", Value: "2026-10-01T12:00:00Z"},
		},
	}
	if got := versionString(info); got != "dev (cafebabe) built: 2026-10-01T12:00:00Z" {
		t.Fatalf("unexpected version string %q", got)
	}
}
