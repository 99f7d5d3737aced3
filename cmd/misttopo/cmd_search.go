package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	searchType  string
	searchLimit int
)

func newSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search devices across the organization",
		Long: `Search for devices across the organization, optionally filtered by type.

  misttopo search
  misttopo search --type switch
  misttopo search --type ap --limit 50`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(nil)
			if err != nil {
				return err
			}

			devices, err := client.SearchDevices(cmd.Context(), searchType, searchLimit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Found %d devices\n", len(devices))
			for _, dev := range devices {
				fmt.Fprintf(out, "  - %s (%s) mac=%s model=%s\n",
					dev.Get("name").Str("N/A"),
					dev.Get("type").Str("unknown"),
					dev.Get("mac").Str("N/A"),
					dev.Get("model").Str("N/A"))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&searchType, "type", "", "device type filter (switch, ap, gateway)")
	cmd.Flags().IntVar(&searchLimit, "limit", 1000, "maximum number of results")

	return cmd
}
