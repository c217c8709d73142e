package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/evickastudio/fireapi-go/filter"
)

var (
	backupFilter string
	noConfirm    bool
)

// backupCmd groups the backup subcommands
var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Manage server backups (requires '24fire+')",
}

// backupListCmd represents the backup list command
var backupListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List all backups",
	PreRunE: initializeApp,
	RunE:    runBackupList,
}

// backupCreateCmd represents the backup create command
var backupCreateCmd = &cobra.Command{
	Use:     "create <description>",
	Short:   "Create a backup with a description",
	Args:    cobra.ExactArgs(1),
	PreRunE: initializeApp,
	RunE: func(cmd *cobra.Command, args []string) error {
		envelope, err := client.CreateBackup(context.Background(), args[0])
		if err != nil {
			return err
		}
		return printJSON(envelope)
	},
}

// backupDeleteCmd represents the backup delete command
var backupDeleteCmd = &cobra.Command{
	Use:     "delete <backup-id>",
	Short:   "Delete a backup",
	Args:    cobra.ExactArgs(1),
	PreRunE: initializeApp,
	RunE:    runBackupDelete,
}

func runBackupList(cmd *cobra.Command, args []string) error {
	envelope, err := client.ListBackups(context.Background())
	if err != nil {
		return err
	}

	if backupFilter == "" {
		return printJSON(envelope)
	}

	f, err := filter.Compile(backupFilter)
	if err != nil {
		return fmt.Errorf("invalid filter expression: %w", err)
	}

	records := backupRecords(envelope)
	matched, err := f.Apply(records)
	if err != nil {
		return err
	}

	logger.Debug().
		Str("filter", backupFilter).
		Int("total", len(records)).
		Int("matched", len(matched)).
		Msg("Filtered backup list")

	if len(matched) == 0 {
		fmt.Println("No backups match the filter criteria.")
		return nil
	}
	return printJSON(matched)
}

func runBackupDelete(cmd *cobra.Command, args []string) error {
	backupID := args[0]

	if !noConfirm {
		fmt.Printf("Delete backup %s? This cannot be undone. [y/N]: ", backupID)
		scanner := bufio.NewScanner(os.Stdin)
		if !scanner.Scan() {
			fmt.Println("Aborted.")
			return nil
		}
		answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if answer != "y" && answer != "yes" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	envelope, err := client.DeleteBackup(context.Background(), backupID)
	if err != nil {
		return err
	}
	return printJSON(envelope)
}

// backupRecords extracts the record list from a backup/list envelope.
// Anything that is not a list of objects yields no records.
func backupRecords(envelope map[string]any) []map[string]any {
	data, ok := envelope["data"].([]any)
	if !ok {
		return nil
	}

	records := make([]map[string]any, 0, len(data))
	for _, item := range data {
		if record, ok := item.(map[string]any); ok {
			records = append(records, record)
		}
	}
	return records
}

func init() {
	backupListCmd.Flags().StringVarP(&backupFilter, "filter", "f", "", "filter expression, e.g. 'size > 2000'")
	backupDeleteCmd.Flags().BoolVar(&noConfirm, "no-confirm", false, "skip confirmation prompt")

	backupCmd.AddCommand(backupListCmd)
	backupCmd.AddCommand(backupCreateCmd)
	backupCmd.AddCommand(backupDeleteCmd)
	rootCmd.AddCommand(backupCmd)
}
