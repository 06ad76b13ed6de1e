package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/macropower/pagewin/pkg/config"
)

func NewSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "schema",
		Short:        "Print the JSON schema of the config file",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := config.SchemaJSON()
			if err != nil {
				return fmt.Errorf("generate schema: %w", err)
			}

			_, err = cmd.OutOrStdout().Write(b)
			if err != nil {
				return fmt.Errorf("write schema: %w", err)
			}

			return nil
		},
	}
}
