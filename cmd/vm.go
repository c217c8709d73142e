package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evickastudio/fireapi-go/fireapi"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:     "config",
	Short:   "Show the server configuration",
	PreRunE: initializeApp,
	RunE: func(cmd *cobra.Command, args []string) error {
		envelope, err := client.GetConfig(context.Background())
		if err != nil {
			return err
		}
		return printJSON(envelope)
	},
}

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Show the current server status",
	PreRunE: initializeApp,
	RunE: func(cmd *cobra.Command, args []string) error {
		envelope, err := client.GetStatus(context.Background())
		if err != nil {
			return err
		}
		return printJSON(envelope)
	},
}

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:     "start",
	Short:   "Start the server",
	PreRunE: initializeApp,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPowerCommand("start", client.StartServer)
	},
}

// stopCmd represents the stop command
var stopCmd = &cobra.Command{
	Use:     "stop",
	Short:   "Stop the server",
	PreRunE: initializeApp,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPowerCommand("stop", client.StopServer)
	},
}

// restartCmd represents the restart command
var restartCmd = &cobra.Command{
	Use:     "restart",
	Short:   "Restart the server",
	PreRunE: initializeApp,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPowerCommand("restart", client.RestartServer)
	},
}

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show configuration, status, backups and timings in one view",
	Long: `Fetch the read-only endpoints concurrently and print them as one
document. Backup and monitoring sections are omitted when the account has
no '24fire+' subscription.`,
	PreRunE: initializeApp,
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := client.Snapshot(context.Background())
		if err != nil {
			return err
		}

		view := map[string]any{
			"config": snap.Config,
			"status": snap.Status,
		}
		if snap.Backups != nil {
			view["backups"] = snap.Backups
		}
		if snap.Timings != nil {
			view["timings"] = snap.Timings
		}
		return printJSON(view)
	},
}

// runPowerCommand sends one power command and reports the API message.
func runPowerCommand(name string, op func(context.Context) (fireapi.Envelope, error)) error {
	logger.Info().Str("command", name).Msg("Sending power command")

	envelope, err := op(context.Background())
	if err != nil {
		return err
	}

	if msg, ok := envelope["message"].(string); ok {
		fmt.Println(msg)
		return nil
	}
	return printJSON(envelope)
}

func init() {
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(restartCmd)
	rootCmd.AddCommand(infoCmd)
}
