// misttopo — read-only network topology discovery for Juniper Mist
// organizations.
//
// misttopo walks an organization with a handful of bulk API calls and
// assembles the result into a sites/devices/links topology with summary
// statistics, exportable as JSON or CSV.
//
// Usage:
//
//	misttopo topology                Discover and print the summary
//	misttopo topology --export json  Discover and save the full topology
//	misttopo search --type switch    Search devices across the organization
//	misttopo init-config             Write a .env configuration template
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mist-tools/misttopo/mist"
	"github.com/mist-tools/misttopo/observability"
)

var (
	configFile string
	envFile    string
	logLevel   string
	logJSON    bool

	logger observability.Logger = observability.NoopLogger()
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "misttopo",
	Short:         "Network topology discovery for Juniper Mist organizations",
	SilenceUsage:  true,
	SilenceErrors: true,
	Long: `misttopo discovers the network topology of a Juniper Mist organization
using a small number of bulk API calls: inventory, sites, and per-site
device statistics. The result is a sites/devices/links graph with summary
statistics.

Credentials come from a .env file, environment variables (API_TOKEN and
ORG_ID, or their MIST_-prefixed forms), or a JSON/YAML config file.

  misttopo topology --summary`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config-file", "", "JSON or YAML config file")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "env file with API_TOKEN and ORG_ID")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "log in JSON format")

	rootCmd.AddCommand(
		newTopologyCmd(),
		newSearchCmd(),
		newInitConfigCmd(),
	)
}

func setupLogging() error {
	l := logrus.New()
	l.SetOutput(os.Stderr)

	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q", logLevel)
	}
	l.SetLevel(level)

	if logJSON {
		l.SetFormatter(&logrus.JSONFormatter{})
	}

	logger = observability.NewLogrusLogger(l)
	return nil
}

// loadConfig resolves credentials: an explicit config file wins, otherwise
// environment variables with an optional .env file.
func loadConfig() (*mist.Config, error) {
	if configFile != "" {
		return mist.LoadConfigFromFile(configFile)
	}
	return mist.LoadConfigFromEnv(envFile)
}

func newClient(metrics observability.MetricsRecorder) (*mist.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	return mist.NewClient(&mist.ClientConfig{
		Token:              cfg.Token,
		OrgID:              cfg.OrgID,
		Host:               cfg.Host,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		MaxRetries:         cfg.MaxRetries,
		Timeout:            secondsOrZero(cfg.Timeout),
		Logger:             logger,
		Metrics:            metrics,
	})
}

func secondsOrZero(seconds int) time.Duration {
	return time.Duration(seconds) * time.Second
}
