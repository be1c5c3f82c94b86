package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SpynitterMina/DayWiseV2/internal/infrastructure/config"
	"github.com/SpynitterMina/DayWiseV2/internal/infrastructure/database"
)

// dbInitCmd creates the database file and applies the schema. Every other
// command migrates on open too, so this mainly exists to prepare a database
// ahead of an import or to verify the configured path is writable.
var dbInitCmd = &cobra.Command{
	Use:   "db-init",
	Short: "Create the database file and apply the schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		_, cleanup, err := database.NewConnection(cfg)
		if err != nil {
			return fmt.Errorf("initialize database: %w", err)
		}
		cleanup()

		cmd.Printf("database ready at %s\n", cfg.Database.Path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dbInitCmd)
}
