package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/mist-tools/misttopo/discovery"
	"github.com/mist-tools/misttopo/export"
	"github.com/mist-tools/misttopo/observability"
	"github.com/mist-tools/misttopo/topology"
)

var (
	showSummary        bool
	showSiteDetails    bool
	exportFormat       string
	outputFile         string
	summaryFile        string
	hierarchyFile      string
	noSaveSummary      bool
	noSaveHierarchy    bool
	discoveredSwitches bool
)

func newTopologyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "topology",
		Short: "Discover the organization topology",
		Long: `Discover the full network topology of the organization.

The run costs roughly 2 + N API calls for N sites: one inventory call,
one sites call, and one device statistics call per site.

  misttopo topology --summary
  misttopo topology --export json --output topology.json
  misttopo topology --export csv --output topology.csv
  misttopo topology --site-details --no-save-summary --no-save-hierarchy`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTopology(cmd)
		},
	}

	cmd.Flags().BoolVar(&showSummary, "summary", false, "print the topology summary")
	cmd.Flags().BoolVar(&showSiteDetails, "site-details", false, "print per-site device details")
	cmd.Flags().StringVar(&exportFormat, "export", "", "export format: json or csv")
	cmd.Flags().StringVar(&outputFile, "output", "topology.json", "export output file")
	cmd.Flags().StringVar(&summaryFile, "summary-file", "mist_topology_summary.json", "summary JSON file")
	cmd.Flags().StringVar(&hierarchyFile, "hierarchy-file", "mist_topology_hierarchy.json", "hierarchy JSON file")
	cmd.Flags().BoolVar(&noSaveSummary, "no-save-summary", false, "do not save the summary JSON file")
	cmd.Flags().BoolVar(&noSaveHierarchy, "no-save-hierarchy", false, "do not save the hierarchy JSON file")
	cmd.Flags().BoolVar(&discoveredSwitches, "discovered-switches", false, "also collect unmanaged switches seen per site (one extra call per site)")

	return cmd
}

func runTopology(cmd *cobra.Command) error {
	counter := observability.NewCallCounter()
	client, err := newClient(counter)
	if err != nil {
		return err
	}

	opts := []discovery.Option{discovery.WithLogger(logger)}
	if discoveredSwitches {
		opts = append(opts, discovery.WithDiscoveredSwitches())
	}

	top, err := discovery.New(client, opts...).Run(cmd.Context())
	if err != nil {
		return err
	}

	logger.Debug("http activity",
		observability.Field{Key: "requests", Value: counter.Requests()},
		observability.Field{Key: "retries", Value: counter.Retries()},
		observability.Field{Key: "errors", Value: counter.Errors()})

	out := cmd.OutOrStdout()

	if showSummary {
		export.WriteSummaryReport(out, top)
	}
	if showSiteDetails {
		export.WriteSiteDetails(out, top)
	}

	if !noSaveSummary {
		if err := writeFile(summaryFile, func(f *os.File) error {
			return export.WriteSummary(f, top)
		}); err != nil {
			return err
		}
		fmt.Fprintf(out, "Topology summary saved to: %s\n", summaryFile)
	}

	if !noSaveHierarchy {
		if err := writeFile(hierarchyFile, func(f *os.File) error {
			return export.WriteHierarchy(f, top)
		}); err != nil {
			return err
		}
		fmt.Fprintf(out, "Topology hierarchy saved to: %s\n", hierarchyFile)
	}

	switch strings.ToLower(exportFormat) {
	case "":
	case "json":
		if err := writeFile(outputFile, func(f *os.File) error {
			return export.WriteTopology(f, top)
		}); err != nil {
			return err
		}
		fmt.Fprintf(out, "Topology exported to %s (JSON format)\n", outputFile)
	case "csv":
		if err := exportCSV(cmd, top); err != nil {
			return err
		}
	default:
		return errors.Newf("unsupported export format %q (use json or csv)", exportFormat)
	}

	return nil
}

// exportCSV writes two files derived from the output name: one for devices,
// one for links.
func exportCSV(cmd *cobra.Command, top *topology.Topology) error {
	base := strings.TrimSuffix(outputFile, ".csv")
	base = strings.TrimSuffix(base, ".json")
	devicesFile := base + "_devices.csv"
	linksFile := base + "_links.csv"

	if err := writeFile(devicesFile, func(f *os.File) error {
		return export.WriteDevicesCSV(f, top)
	}); err != nil {
		return err
	}
	if err := writeFile(linksFile, func(f *os.File) error {
		return export.WriteLinksCSV(f, top)
	}); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Topology exported to %s and %s (CSV format)\n", devicesFile, linksFile)
	return nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", path)
	}

	if err := write(f); err != nil {
		f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return errors.Wrapf(err, "failed to close %s", path)
	}
	return nil
}
