package main

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

const envTemplate = `# Mist API configuration

# Regional API endpoint
HOST=api.mist.com
# HOST=api.eu.mist.com       # EU region
# HOST=api.ac2.mist.com      # APAC region

# Authentication (Mist portal > Account Settings > API Token)
API_TOKEN=your-api-token-here

# Organization id (from the Mist portal URL)
ORG_ID=your-org-id-here
`

var initConfigOutput string

func newInitConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init-config",
		Short: "Write a .env configuration template",
		Long: `Write a template .env file with the variables misttopo reads.

  misttopo init-config
  cp .env.template .env   # then edit with your values`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(initConfigOutput); err == nil {
				return errors.Newf("%s already exists, refusing to overwrite", initConfigOutput)
			}

			if err := os.WriteFile(initConfigOutput, []byte(envTemplate), 0o600); err != nil {
				return errors.Wrapf(err, "failed to write %s", initConfigOutput)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Sample configuration created: %s\n", initConfigOutput)
			fmt.Fprintf(out, "Copy it to .env and edit with your actual values:\n")
			fmt.Fprintf(out, "  cp %s .env\n", initConfigOutput)
			return nil
		},
	}

	cmd.Flags().StringVar(&initConfigOutput, "output", ".env.template", "template file to write")

	return cmd
}
