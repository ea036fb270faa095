package cli_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/yaklabco/shadersplit/internal/cli"
)

func testInfo() cli.BuildInfo {
	return cli.BuildInfo{
		Version: "test",
		Commit:  "test",
		Date:    "test",
	}
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	if cmd == nil {
		t.Fatal("NewRootCommand returned nil")
	}

	if cmd.Use != "shadersplit" {
		t.Errorf("expected Use to be 'shadersplit', got %q", cmd.Use)
	}

	if cmd.Short == "" {
		t.Error("expected Short description to be set")
	}

	if cmd.Long == "" {
		t.Error("expected Long description to be set")
	}

	if !cmd.SilenceUsage || !cmd.SilenceErrors {
		t.Error("expected usage and errors to be silenced")
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	expectedSubcommands := []string{"build", "inspect", "docs", "watch", "types", "init", "version"}

	for _, name := range expectedSubcommands {
		subCmd, _, err := cmd.Find([]string{name})
		if err != nil {
			t.Errorf("expected subcommand %q to exist, got error: %v", name, err)
			continue
		}

		if subCmd.Name() != name {
			t.Errorf("expected subcommand name %q, got %q", name, subCmd.Name())
		}
	}
}

func TestCommandFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		command string
		flags   []string
	}{
		{
			command: "build",
			flags: []string{
				"output-dir", "jobs", "dry-run", "if-changed", "strict", "backup",
				"ignore", "ext", "nested-blocks", "no-language-check",
				"follow-symlinks", "format", "verbose", "compact", "quiet", "diff",
			},
		},
		{
			command: "watch",
			flags:   []string{"output-dir", "if-changed", "strict", "ignore", "debounce"},
		},
		{
			command: "inspect",
			flags:   []string{"format", "nested-blocks", "compact"},
		},
		{
			command: "docs",
			flags:   []string{"html", "standalone", "title", "output", "no-stages", "no-notes"},
		},
		{
			command: "init",
			flags:   []string{"force", "format", "output"},
		},
	}

	cmd := cli.NewRootCommand(testInfo())

	for _, tt := range tests {
		sub, _, err := cmd.Find([]string{tt.command})
		if err != nil {
			t.Fatalf("%s command not found: %v", tt.command, err)
		}
		for _, flagName := range tt.flags {
			if sub.Flags().Lookup(flagName) == nil {
				t.Errorf("expected flag %q to exist on %s command", flagName, tt.command)
			}
		}
	}
}

func TestGlobalFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	for _, flagName := range []string{"debug", "config", "color"} {
		if cmd.PersistentFlags().Lookup(flagName) == nil {
			t.Errorf("expected global flag %q to exist", flagName)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	info := cli.BuildInfo{
		Version: "1.2.3",
		Commit:  "abc123",
		Date:    "2024-01-01",
	}

	cmd := cli.NewRootCommand(info)
	cmd.SetArgs([]string{"version"})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("version command failed: %v", err)
	}

	for _, want := range []string{"shadersplit", "1.2.3", "abc123", "2024-01-01"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("expected version output to contain %q, got %q", want, out.String())
		}
	}
}

func TestVersionCommandShort(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(cli.BuildInfo{Version: "1.2.3"})
	cmd.SetArgs([]string{"version", "--short"})

	var out bytes.Buffer
	cmd.SetOut(&out)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("version command failed: %v", err)
	}
	if out.String() != "1.2.3\n" {
		t.Errorf("expected bare version, got %q", out.String())
	}
}

func TestBuildCommandAcceptsArbitraryArgs(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	buildCmd, _, err := cmd.Find([]string{"build"})
	if err != nil {
		t.Fatalf("build command not found: %v", err)
	}

	if buildCmd.Args != nil {
		if err := buildCmd.Args(buildCmd, []string{"a.glshader", "b.shader", "shaders/"}); err != nil {
			t.Errorf("build command should accept arbitrary args, got error: %v", err)
		}
	}
}

func TestUsageErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
	}{
		{"inspect without file", []string{"inspect"}},
		{"docs with two files", []string{"docs", "a.glshader", "b.glshader"}},
		{"init with argument", []string{"init", "extra"}},
		{"unknown flag", []string{"build", "--frobnicate"}},
		{"bad jobs value", []string{"build", "--jobs", "many"}},
		{"bad color mode", []string{"version", "--color", "rainbow"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cmd := cli.NewRootCommand(testInfo())
			cmd.SetArgs(tt.args)
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetErr(&bytes.Buffer{})

			err := cmd.Execute()
			if err == nil {
				t.Fatal("expected an error")
			}
			if code := cli.ExitCode(err); code != cli.ExitInvalidUsage {
				t.Errorf("expected exit code %d, got %d (%v)", cli.ExitInvalidUsage, code, err)
			}
		})
	}
}

func TestHelpOutput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		args []string
		want []string
	}{
		{
			args: []string{"--help"},
			want: []string{"Usage:", "Commands:", "build", "inspect", "--config", "[command] --help"},
		},
		{
			args: []string{"build", "--help"},
			want: []string{"Examples:", "shadersplit build shaders/", "--output-dir", "Global Flags:", "--debug"},
		},
	}

	for _, tt := range tests {
		cmd := cli.NewRootCommand(testInfo())
		cmd.SetArgs(tt.args)

		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetErr(&out)

		if err := cmd.Execute(); err != nil {
			t.Fatalf("%v failed: %v", tt.args, err)
		}
		for _, want := range tt.want {
			if !strings.Contains(out.String(), want) {
				t.Errorf("%v: expected help to contain %q, got:\n%s", tt.args, want, out.String())
			}
		}
	}
}
