package terminal

import (
	"fmt"
	"io"
	"os"

	"github.com/de-tools/report-flatten/pkg/runtime/terminal/commands"
	"github.com/de-tools/report-flatten/pkg/services/config"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	output    io.Writer
	logOutput io.Writer
	logLevel  string
	rootCmd   *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Output io.Writer
	// LogOutput receives log lines, keeping Output free for report data
	LogOutput io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.LogOutput == nil {
		opts.LogOutput = os.Stderr
	}

	cli := &CLI{
		output:    opts.Output,
		logOutput: opts.LogOutput,
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "report-flatten",
		Short:             "Analytics report flattening tool",
		SilenceUsage:      true,
		PersistentPreRunE: cli.setupLogger,
	}
	cmd.SetOut(cli.output)
	cmd.SetErr(cli.logOutput)

	cmd.PersistentFlags().StringVar(&cli.logLevel, "log-level", "info", "Log level (debug, info, warn, error), overrides log_level from config")

	cmd.AddCommand(commands.NewFlattenCmd())
	cmd.AddCommand(commands.NewProfilesCmd())

	return cmd
}

func (cli *CLI) setupLogger(cmd *cobra.Command, _ []string) error {
	levelName, err := cli.resolveLogLevel(cmd)
	if err != nil {
		return err
	}
	level, err := zerolog.ParseLevel(levelName)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", levelName, err)
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: cli.logOutput, NoColor: true}).
		Level(level).
		With().
		Timestamp().
		Logger()
	cmd.SetContext(logger.WithContext(cmd.Context()))
	return nil
}

// resolveLogLevel prefers an explicit --log-level, then log_level from the
// sub-command's --config file and FLATTEN_LOG_LEVEL.
func (cli *CLI) resolveLogLevel(cmd *cobra.Command) (string, error) {
	if cmd.Flags().Changed("log-level") {
		return cli.logLevel, nil
	}

	var path string
	if f := cmd.Flags().Lookup("config"); f != nil {
		path = f.Value.String()
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return "", err
	}
	return cfg.LogLevel, nil
}
