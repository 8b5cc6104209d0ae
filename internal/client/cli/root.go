package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/vacstats/internal/client/config"
)

var (
	cfgFile   string
	apiURL    string
	debugFlag bool
)

// Execute is the main entry point called from main.go.
func Execute(version, commit, date string) {
	rootCmd := &cobra.Command{
		Use:   "vacstats",
		Short: "Admin dashboard for vacation statistics",
		Long:  "vacstats is an interactive terminal client for the vacation statistics API: admin login, one-shot queries, and a live dashboard.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile, config.Overrides{APIBaseURL: apiURL, Debug: debugFlag})
			if err != nil {
				return err
			}
			app, err := NewApp(cfg)
			if err != nil {
				return err
			}
			return app.Run(context.Background())
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (YAML)")
	rootCmd.PersistentFlags().StringVarP(&apiURL, "api-url", "a", "", "base URL of the statistics API")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "enable request/response tracing")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("vacstats %s (commit %s, built %s)\n", version, commit, date)
		},
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
