package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"meteocombine/internal/app"
	"meteocombine/internal/config"
	"meteocombine/internal/infrastructure"
	"meteocombine/pkg/contracts"
)

type options struct {
	configFile  string
	inDir       string
	outDir      string
	logLevel    string
	metricsFile string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(stdout io.Writer) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:     app.Executable,
		Short:   "Combine fire-danger station reports into one CSV file",
		Version: contracts.GetFullVersionString(),
		Long: `Reads every *.xls and *.xlsx station report in the input directory,
detects the report date, drops title and footnote rows and writes all
observation rows to combined_meteo_data_v3.csv with a leading Дата column.

Settings come from meteocombine.yaml (or --config), then METEO_* environment
variables, then flags.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}

			if _, err := infrastructure.InitializeLogger(cfg.Logging); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer infrastructure.CloseLogFile()

			_, err = app.NewApplication(cfg, stdout).Run(cmd.Context())
			return err
		},
	}

	cmd.SetOut(stdout)
	cmd.Flags().StringVar(&opts.configFile, "config", "", "path to a YAML config file")
	cmd.Flags().StringVar(&opts.inDir, "in", "", "directory holding the station report spreadsheets")
	cmd.Flags().StringVar(&opts.outDir, "out", "", "directory for the combined CSV file")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error")
	cmd.Flags().StringVar(&opts.metricsFile, "metrics-file", "", "write Prometheus metrics to this textfile")

	return cmd
}

// loadConfig applies flags that were set on top of the loaded configuration.
func loadConfig(cmd *cobra.Command, opts options) (*config.Config, error) {
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("in") {
		cfg.Input.Dir = opts.inDir
	}
	if flags.Changed("out") {
		cfg.Output.Dir = opts.outDir
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = opts.logLevel
	}
	if flags.Changed("metrics-file") {
		cfg.Metrics.TextfilePath = opts.metricsFile
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
