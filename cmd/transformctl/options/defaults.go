package options

import (
	"fmt"

	"github.com/spf13/cobra"

	transform "github.com/dobrovols/transformctl/pkg/options"
)

// NewDefaultsCommand constructs the `transformctl options defaults` command.
func NewDefaultsCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "defaults",
		Short: "Print the options an empty configuration resolves to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			format, err := resolveOutputFormat(output, cmd.OutOrStdout(), writerIsTerminal)
			if err != nil {
				return err
			}
			rendered, err := transform.FormatSummary(transform.Summary{
				Options: transform.Resolve(transform.ExternalConfig{}),
			}, format)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return nil
		},
	}

	addOutputFlag(cmd, &output)
	return cmd
}
