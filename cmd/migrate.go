package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ellavondegurechaff/gorpg/rpgbot"
)

var migrateCMD = &cobra.Command{
	Use:   "migrate",
	Short: "create the character table in the configured database",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// opening the storage creates the schema for relational drivers
		storage, err := rpgbot.OpenStorage(ctx, *cfg)
		if err != nil {
			slog.Error("Migration failed", slog.String("type", "db"), slog.Any("error", err))
			return err
		}
		defer storage.Close(ctx)

		if err = storage.Ping(ctx); err != nil {
			slog.Error("Database is not reachable", slog.String("type", "db"), slog.Any("error", err))
			return err
		}

		slog.Info("Migration completed successfully!",
			slog.String("type", "db"),
			slog.String("driver", storage.Driver))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCMD)
}
