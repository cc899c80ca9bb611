package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"typingracer/internal/config"
	"typingracer/internal/server"
)

var (
	envFile  string
	flagHost string
	flagPort string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "typingracer",
		Short:        "Typing practice API",
		SilenceUsage: true,
		RunE:         runServeCmd,
	}
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	addServeFlags(rootCmd)

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE:  runServeCmd,
	}
	addServeFlags(serveCmd)

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create the results table for the configured backend",
		Args:  cobra.NoArgs,
		RunE:  runMigrateCmd,
	})
	return rootCmd
}

func addServeFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagHost, "host", "", "listen host (overrides HOST)")
	cmd.Flags().StringVar(&flagPort, "port", "", "listen port (overrides PORT)")
}

func loadConfig() (config.Config, error) {
	if err := config.LoadDotenv(envFile); err != nil {
		return config.Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
	}
	cfg := config.Load()
	if flagHost != "" {
		cfg.Host = flagHost
	}
	if flagPort != "" {
		cfg.Port = flagPort
	}
	return cfg, nil
}

func runServeCmd(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := server.Run(cfg); err != nil {
		log.Println(err.Error())
		return err
	}
	return nil
}

func runMigrateCmd(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := server.Migrate(context.Background(), cfg); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	log.Printf("[DB] %s schema is up to date\n", cfg.StorageBackend)
	return nil
}
