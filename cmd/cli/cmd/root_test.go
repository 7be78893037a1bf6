package cmd

import (
	"os"
	"testing"

	"github.com/spf13/viper"
)

func TestRootCommand_EnvVarBinding(t *testing.T) {
	resetViper()

	t.Setenv("TRAINCTL_TOKEN", "env-token-value")
	t.Setenv("TRAINCTL_PROJECT", "env-project")
	t.Setenv("TRAINCTL_REGION", "europe-west4")

	if got := viper.GetString("token"); got != "env-token-value" {
		t.Errorf("expected token from env var, got: %s", got)
	}
	if got := viper.GetString("project"); got != "env-project" {
		t.Errorf("expected project from env var, got: %s", got)
	}
	if got := viper.GetString("region"); got != "europe-west4" {
		t.Errorf("expected region from env var, got: %s", got)
	}
}

func TestRootCommand_ExecuteReturnsNoError(t *testing.T) {
	resetViper()

	rootCmd.SetArgs([]string{"--help"})

	err := rootCmd.Execute()
	if err != nil {
		t.Errorf("root command should execute without error: %v", err)
	}
}

func TestRootCommand_HasSubcommands(t *testing.T) {
	want := map[string]bool{
		"run":             false,
		"preview":         false,
		"kill [job_name]": false,
	}

	for _, cmd := range rootCmd.Commands() {
		if _, ok := want[cmd.Use]; ok {
			want[cmd.Use] = true
		}
	}

	for use, found := range want {
		if !found {
			t.Errorf("expected %q subcommand to be registered with root command", use)
		}
	}
}

func TestExecute_ReturnsError(t *testing.T) {
	resetViper()

	rootCmd.SetArgs([]string{"unknown-command-xyz"})

	err := Execute()
	if err == nil {
		t.Error("expected error for unknown command")
	}
}

func TestRootCommand_CustomConfigFile(t *testing.T) {
	resetViper()

	tmpFile, err := os.CreateTemp("", "trainctl-test-*.yaml")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer os.Remove(tmpFile.Name())

	tmpFile.WriteString("project: config-project\nregion: us-central1\ntoken: config-token\n")
	tmpFile.Close()

	cfgFile = tmpFile.Name()
	initConfig()

	if got := viper.GetString("project"); got != "config-project" {
		t.Errorf("expected project from config file, got: %s", got)
	}
	if got := viper.GetString("region"); got != "us-central1" {
		t.Errorf("expected region from config file, got: %s", got)
	}
	if got := viper.GetString("token"); got != "config-token" {
		t.Errorf("expected token from config file, got: %s", got)
	}

	// Reset for other tests
	cfgFile = ""
}
