package main

import (
	"fmt"
	"net"
	"os"

	"github.com/de-tools/report-flatten/pkg/server"
	"github.com/de-tools/report-flatten/pkg/services/config"
	"github.com/de-tools/report-flatten/pkg/services/flatten"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the report flattening web server",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to the configuration file (defaults and FLATTEN_* env vars apply without it)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()

	if cfgPath != "" {
		logger.Info().Msgf("Configuration found at `%s` successfully loaded.", cfgPath)
	}
	logger.Info().
		Str("delimiter", cfg.Delimiter).
		Int("workers", cfg.Workers).
		Msg("flattener configured")

	api := server.NewWebAPI(server.Config{
		Addr:             net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		DefaultDelimiter: cfg.Delimiter,
		Dependencies: server.Dependencies{
			Flattener: flatten.NewService(cfg.Workers),
			Logger:    logger,
		},
	})

	return api.Start()
}
