package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/jonboulle/clockwork"

	"meteocombine/internal/config"
	"meteocombine/internal/dataprocessing"
	"meteocombine/internal/errors"
	"meteocombine/internal/exporter"
	"meteocombine/internal/files"
	"meteocombine/internal/infrastructure"
	"meteocombine/internal/validation"
	"meteocombine/pkg/contracts"
	"meteocombine/pkg/contracts/domain"
)

const (
	VERSION    = contracts.Version
	AppName    = "meteocombine"
	Executable = "meteocombine"
)

// Application wires discovery, processing and export for one run.
type Application struct {
	Config    *config.Config
	Logger    *slog.Logger
	Metrics   *infrastructure.Metrics
	Validator *validation.FileValidator
	Discovery *files.Discovery
	Processor *dataprocessing.Processor
	Writer    *exporter.CSVWriter
	Console   *exporter.ConsoleReporter
	Clock     clockwork.Clock

	reader dataprocessing.TableReader
}

// Option customizes an Application.
type Option func(*Application)

// WithLogger replaces the process-wide logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *Application) { a.Logger = l }
}

// WithClock sets the clock used to time the run.
func WithClock(c clockwork.Clock) Option {
	return func(a *Application) { a.Clock = c }
}

// WithReader replaces the spreadsheet reader used by the processor.
func WithReader(r dataprocessing.TableReader) Option {
	return func(a *Application) { a.reader = r }
}

// NewApplication creates an application for cfg. The console report is
// written to stdout.
func NewApplication(cfg *config.Config, stdout io.Writer, opts ...Option) *Application {
	a := &Application{
		Config:    cfg,
		Logger:    infrastructure.GetLogger(),
		Metrics:   infrastructure.NewMetrics(),
		Discovery: files.NewDiscovery("."),
		Writer:    exporter.NewCSVWriter(cfg.Output.Dir),
		Console:   exporter.NewConsoleReporter(stdout),
		Clock:     clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.Validator = validation.NewFileValidator(a.Logger)

	procOpts := []dataprocessing.Option{
		dataprocessing.WithProgress(a.Console),
		dataprocessing.WithMetrics(a.Metrics),
		dataprocessing.WithClock(a.Clock),
		dataprocessing.WithLogger(a.Logger),
	}
	if a.reader != nil {
		procOpts = append(procOpts, dataprocessing.WithReader(a.reader))
	}
	a.Processor = dataprocessing.NewProcessor(procOpts...)

	return a
}

// Run discovers the report files, combines them and writes the CSV file.
// When no rows were collected nothing is written and the report carries no
// output path. Metrics are written to the configured textfile whether the
// run succeeds or not.
func (a *Application) Run(ctx context.Context) (report *domain.RunReport, err error) {
	ctx = infrastructure.EnsureRunID(ctx)
	start := a.Clock.Now()

	a.Logger.InfoContext(ctx, "Application starting",
		slog.String("name", AppName),
		slog.String("version", VERSION),
		slog.String("input_dir", a.Config.Input.Dir),
		slog.String("output_dir", a.Config.Output.Dir))

	defer func() {
		a.Metrics.ObserveRun(a.Clock.Since(start), err == nil)
		a.writeMetrics(ctx)
	}()

	if err = a.Validator.ValidateInputDirectory(a.Config.Input.Dir); err != nil {
		return nil, err
	}
	if err = a.Validator.ValidateOutputDirectory(a.Config.Output.Dir); err != nil {
		return nil, err
	}

	inputs, err := a.Discovery.FindSpreadsheets(a.Config.Input.Dir)
	if err != nil {
		return nil, errors.NewStorageError("failed to list input directory", err)
	}
	a.Console.FilesFound(len(inputs))

	report, err = a.Processor.Run(ctx, inputs)
	if err != nil {
		a.Logger.ErrorContext(ctx, "Run aborted", slog.String("error", err.Error()))
		return report, err
	}

	if report.Dataset.Empty() {
		a.Console.NoData()
		a.Logger.WarnContext(ctx, "No data to combine", slog.Int("files", len(inputs)))
		return report, nil
	}

	path, err := a.Writer.WriteDataset(a.Config.Output.FileName, report.Dataset)
	if err != nil {
		a.Logger.ErrorContext(ctx, "Failed to write combined file", slog.String("error", err.Error()))
		return report, err
	}
	report.OutputPath = path

	a.Console.PrintSummary(dataprocessing.Summarize(report.Dataset))
	a.Logger.InfoContext(ctx, "Combined file written",
		slog.String("path", path),
		slog.Int("rows", report.Dataset.Len()),
		slog.Int("columns", len(report.Dataset.Columns())),
		slog.Duration("duration", report.Duration))

	return report, nil
}

func (a *Application) writeMetrics(ctx context.Context) {
	path := a.Config.Metrics.TextfilePath
	if path == "" {
		return
	}
	if err := a.Metrics.WriteTextfile(path); err != nil {
		a.Logger.WarnContext(ctx, "Failed to write metrics", slog.String("error", err.Error()))
	}
}
