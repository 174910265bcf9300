package options

import (
	"github.com/spf13/cobra"

	"github.com/dobrovols/transformctl/internal/config"
)

// NewSchemaCommand constructs the `transformctl options schema` command.
func NewSchemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema configuration documents are validated against",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := cmd.OutOrStdout().Write(config.SchemaJSON())
			return err
		},
	}
}
