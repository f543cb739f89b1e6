package cmd

import (
	"context"

	"notemark/config"
	"notemark/repository"
	"notemark/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var indexesCmd = &cobra.Command{
	Use:   "indexes",
	Short: "Create the MongoDB indexes and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		logger, err := utils.NewLogger(cfg.Environment, cfg.LogLevel)
		if err != nil {
			return err
		}
		defer logger.Sync()

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		client, err := utils.ConnectMongo(ctx, cfg.Database)
		if err != nil {
			return err
		}
		defer func() {
			if err := client.Disconnect(context.Background()); err != nil {
				logger.Warn("Failed to disconnect from MongoDB", zap.Error(err))
			}
		}()

		return repository.SetupIndexes(ctx, client.Database(cfg.Database.DatabaseName), logger)
	},
}

func init() {
	rootCmd.AddCommand(indexesCmd)
}
