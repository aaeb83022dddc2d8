package cmd

import (
	"github.com/spf13/cobra"

	"ete-kpi/pkg/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations",
	Long: `Apply the embedded SQL migrations (PostgreSQL) or synchronise the
schema from the models (SQLite).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer logger.Sync()
		defer closeDB(db)

		return database.RunMigrations(db, cfg.Database.Driver, logger)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
