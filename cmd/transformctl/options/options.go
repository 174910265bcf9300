package options

import "github.com/spf13/cobra"

// NewOptionsCommand constructs the `transformctl options` parent command.
func NewOptionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "options",
		Short: "Resolve and inspect transform configuration",
	}

	cmd.AddCommand(NewResolveCommand())
	cmd.AddCommand(NewDefaultsCommand())
	cmd.AddCommand(NewLintCommand())
	cmd.AddCommand(NewSchemaCommand())
	return cmd
}
