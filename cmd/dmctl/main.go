package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"dm-server/internal/config"
	"dm-server/internal/database"
	"dm-server/internal/dice"
	"dm-server/internal/logger"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func main() {
	initLogger()
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// initLogger настраивает глобальный zerolog для консоли оператора.
func initLogger() {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log.Logger = zerolog.New(output).With().Timestamp().Logger()

	logLevel := zerolog.InfoLevel
	if lvl, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil && lvl != zerolog.NoLevel {
		logLevel = lvl
	}
	zerolog.SetGlobalLevel(logLevel)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "dmctl",
		Short:         "Operator tool for DM Server",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newMigrateCmd(), newRollCmd())
	return root
}

func newMigrateCmd() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back the embedded database migrations",
	}

	run := func(direction string) func(cmd *cobra.Command, args []string) error {
		return func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadDatabaseConfig()
			if err != nil {
				return err
			}
			zapLogger, err := logger.New(logger.Config{Level: "warn", Encoding: "console", OutputPath: "stderr", Service: "dmctl"})
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()

			pool, err := database.NewPool(ctx, database.PoolConfig{DSN: cfg.GetDSN(), MaxConns: 2}, zapLogger)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := database.NewMigrator(pool, zapLogger)
			switch direction {
			case "up":
				err = migrator.Up(ctx)
			case "down":
				err = migrator.Down(ctx)
			}
			if err != nil {
				log.Error().Err(err).Str("direction", direction).Msg("Migration failed")
				return err
			}

			version, dirty, err := migrator.Version(ctx)
			if err != nil {
				log.Warn().Err(err).Msg("Could not read schema version")
				return nil
			}
			log.Info().Str("direction", direction).Uint("version", version).Bool("dirty", dirty).Msg("Migrations done")
			return nil
		}
	}

	migrateCmd.AddCommand(
		&cobra.Command{Use: "up", Short: "Apply all pending migrations", Args: cobra.NoArgs, RunE: run("up")},
		&cobra.Command{Use: "down", Short: "Roll back all migrations", Args: cobra.NoArgs, RunE: run("down")},
	)
	return migrateCmd
}

func newRollCmd() *cobra.Command {
	var times int
	var seed uint64

	cmd := &cobra.Command{
		Use:   "roll dN",
		Short: "Roll a die with the server dice roller",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sides, err := dice.ParseSpec(args[0])
			if err != nil {
				return err
			}
			if times < 1 {
				return fmt.Errorf("--times must be at least 1, got %d", times)
			}

			roller := dice.NewRoller()
			if cmd.Flags().Changed("seed") {
				roller = dice.NewSeededRoller(seed)
			}

			total := 0
			for i := 0; i < times; i++ {
				roll := dice.Throw(roller, sides)
				total += roll.Result
				fmt.Fprintln(cmd.OutOrStdout(), dice.Annotation(roll))
			}
			log.Debug().Int("times", times).Int("total", total).Msg("Rolls done")
			return nil
		},
	}
	cmd.Flags().IntVarP(&times, "times", "n", 1, "number of rolls")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "seed for a reproducible sequence")
	return cmd
}
