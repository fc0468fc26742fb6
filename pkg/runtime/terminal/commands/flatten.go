package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/de-tools/report-flatten/pkg/models/domain"
	"github.com/de-tools/report-flatten/pkg/runtime/terminal/export"
	"github.com/de-tools/report-flatten/pkg/services/config"
	"github.com/de-tools/report-flatten/pkg/services/flatten"
	"github.com/de-tools/report-flatten/pkg/services/response"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type FlattenCmd struct {
	input        string
	configPath   string
	profilesPath string
	profile      string
	delimiter    string
	outputDir    string
	concurrent   bool
}

func NewFlattenCmd() *cobra.Command {
	fc := &FlattenCmd{}
	cmd := &cobra.Command{
		Use:   "flatten",
		Short: "Flatten a report response into delimited text",
		RunE:  fc.run,
	}

	cmd.Flags().StringVar(&fc.input, "input", "", "Path to the JSON report response, - for stdin")
	cmd.Flags().StringVar(&fc.configPath, "config", "", "Path to the configuration file")
	cmd.Flags().StringVar(&fc.profilesPath, "profiles", "", "Path to the output profiles file")
	cmd.Flags().StringVar(&fc.profile, "profile", "", "Output profile to apply (e.g., tsv)")
	cmd.Flags().StringVar(&fc.delimiter, "delimiter", "", "Field delimiter, overrides config and profile")
	cmd.Flags().StringVar(&fc.outputDir, "output-dir", "", "Write one file per report into this directory")
	cmd.Flags().BoolVar(&fc.concurrent, "concurrent", false, "Flatten reports in parallel")

	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func (fc *FlattenCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	logger := zerolog.Ctx(ctx)

	cfg, err := fc.loadConfig(cmd)
	if err != nil {
		return err
	}

	resp, err := fc.readInput(cmd.InOrStdin())
	if err != nil {
		return err
	}
	logger.Debug().
		Int("reports", len(resp.Reports)).
		Str("delimiter", cfg.Delimiter).
		Msg("report response loaded")

	workers := 1
	if fc.concurrent {
		workers = cfg.Workers
	}
	reports, err := flatten.NewService(workers).FlattenAll(ctx, resp.Reports, cfg.Delimiter)
	if errors.Is(err, flatten.ErrMalformedReport) {
		return fmt.Errorf("input contains a malformed report: %w", err)
	}
	if err != nil {
		return fmt.Errorf("failed to flatten reports: %w", err)
	}

	reporter := export.NewReporter(cmd.OutOrStdout(), export.OutputConfig{
		Dir:       cfg.OutputDir,
		Extension: cfg.Extension,
	})
	paths, err := reporter.Handle(reports)
	if err != nil {
		return err
	}
	for _, path := range paths {
		logger.Info().Str("path", path).Msg("report written")
	}

	return nil
}

func (fc *FlattenCmd) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(fc.configPath)
	if err != nil {
		return nil, err
	}

	if fc.profile != "" {
		if fc.profilesPath == "" {
			return nil, errors.New("--profiles is required when --profile is set")
		}
		registry, err := config.NewProfileRegistry(fc.profilesPath)
		if err != nil {
			return nil, err
		}
		p, err := registry.GetProfile(cmd.Context(), fc.profile)
		if err != nil {
			return nil, err
		}
		cfg.ApplyProfile(p)
	}

	if cmd.Flags().Changed("delimiter") {
		cfg.Delimiter = fc.delimiter
	}
	if fc.outputDir != "" {
		cfg.OutputDir = fc.outputDir
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (fc *FlattenCmd) readInput(stdin io.Reader) (*domain.ReportResponse, error) {
	if fc.input == "-" {
		return response.Decode(stdin)
	}
	return response.ReadFile(fc.input)
}
