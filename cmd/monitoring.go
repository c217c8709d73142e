package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

// monitoringCmd groups the monitoring subcommands
var monitoringCmd = &cobra.Command{
	Use:   "monitoring",
	Short: "Read monitoring data (requires '24fire+')",
}

// timingsCmd represents the monitoring timings command
var timingsCmd = &cobra.Command{
	Use:     "timings",
	Short:   "Show monitoring timings",
	PreRunE: initializeApp,
	RunE: func(cmd *cobra.Command, args []string) error {
		envelope, err := client.MonitoringTimings(context.Background())
		if err != nil {
			return err
		}
		return printJSON(envelope)
	},
}

// incidencesCmd represents the monitoring incidences command
var incidencesCmd = &cobra.Command{
	Use:     "incidences",
	Short:   "Show monitoring incidences",
	PreRunE: initializeApp,
	RunE: func(cmd *cobra.Command, args []string) error {
		envelope, err := client.MonitoringIncidences(context.Background())
		if err != nil {
			return err
		}
		return printJSON(envelope)
	},
}

func init() {
	monitoringCmd.AddCommand(timingsCmd)
	monitoringCmd.AddCommand(incidencesCmd)
	rootCmd.AddCommand(monitoringCmd)
}
