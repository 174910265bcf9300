package cli

import (
	"github.com/spf13/cobra"

	optionscmd "github.com/dobrovols/transformctl/cmd/transformctl/options"
)

// NewRootCommand constructs the root transformctl command.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "transformctl",
		Short:         "transformctl resolves and inspects JavaScript/TypeScript transform options",
		SilenceErrors: true,
	}

	cmd.AddCommand(optionscmd.NewOptionsCommand())

	return cmd
}
