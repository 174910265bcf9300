package cli_test

import (
	"testing"

	"github.com/dobrovols/transformctl/internal/cli"
)

func TestNewRootCommandRegistersSubcommands(t *testing.T) {
	cmd := cli.NewRootCommand()
	if cmd.Use != "transformctl" {
		t.Fatalf("expected use transformctl, got %s", cmd.Use)
	}
	options, _, err := cmd.Find([]string{"options"})
	if err != nil || options.Name() != "options" {
		t.Fatalf("expected options subcommand, got %v (%v)", options, err)
	}
	names := map[string]bool{}
	for _, sub := range options.Commands() {
		names[sub.Name()] = true
	}
	for _, expected := range []string{"resolve", "defaults", "lint", "schema"} {
		if !names[expected] {
			t.Fatalf("expected subcommand %s to be registered", expected)
		}
	}
}
