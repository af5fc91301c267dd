package dataprocessing

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jonboulle/clockwork"

	apperrors "meteocombine/internal/errors"
	"meteocombine/internal/files"
	"meteocombine/internal/infrastructure"
	"meteocombine/pkg/contracts/domain"
)

// Progress receives per-file events while a run is in progress.
type Progress interface {
	FileStarted(name string)
	FileRead(name string, rows, cols int)
	DateDetected(name string, date domain.ReportDate)
	RowsAdded(name string, n int)
	FileSkipped(outcome domain.FileOutcome)
}

// Processor turns a list of station report files into one dataset. Files
// are handled one at a time in the given order.
type Processor struct {
	reader   TableReader
	progress Progress
	metrics  *infrastructure.Metrics
	clock    clockwork.Clock
	logger   *slog.Logger
}

// Option configures a Processor.
type Option func(*Processor)

// WithReader replaces the spreadsheet reader.
func WithReader(r TableReader) Option {
	return func(p *Processor) { p.reader = r }
}

// WithProgress sets the receiver of per-file events.
func WithProgress(pr Progress) Option {
	return func(p *Processor) { p.progress = pr }
}

// WithMetrics records run metrics on m.
func WithMetrics(m *infrastructure.Metrics) Option {
	return func(p *Processor) { p.metrics = m }
}

// WithClock sets the time source used to measure the run.
func WithClock(c clockwork.Clock) Option {
	return func(p *Processor) { p.clock = c }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Processor) { p.logger = l }
}

// NewProcessor creates a processor reading real spreadsheet files.
func NewProcessor(opts ...Option) *Processor {
	p := &Processor{
		reader:   FileReader{},
		progress: nopProgress{},
		metrics:  infrastructure.NewMetrics(),
		clock:    clockwork.NewRealClock(),
		logger:   infrastructure.GetLogger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run processes every file and concatenates the retained rows in file
// order. A file that cannot be read aborts the run with a PARSING error;
// files without data or with a layout that cannot be named are reported in
// the outcomes and skipped.
func (p *Processor) Run(ctx context.Context, inputs []files.FileInfo) (*domain.RunReport, error) {
	start := p.clock.Now()
	report := &domain.RunReport{
		FilesFound: len(inputs),
		Dataset:    &domain.Dataset{},
	}
	p.metrics.FilesDiscovered.Set(float64(len(inputs)))

	p.logger.InfoContext(ctx, "Processing station reports", slog.Int("files", len(inputs)))

	for i, file := range inputs {
		if err := ctx.Err(); err != nil {
			report.Duration = p.clock.Since(start)
			return report, err
		}

		p.logger.InfoContext(ctx, "Processing file",
			slog.Int("current", i+1),
			slog.Int("total", len(inputs)),
			slog.String("filename", file.Name))

		outcome, table, err := p.ProcessFile(ctx, file)
		if err != nil {
			report.Duration = p.clock.Since(start)
			return report, err
		}

		report.Outcomes = append(report.Outcomes, outcome)
		report.Dataset.Append(table)
	}

	report.Duration = p.clock.Since(start)
	p.logger.InfoContext(ctx, "Record processing summary",
		slog.Int("total_rows", report.Dataset.Len()),
		slog.Int("files_with_data", report.Count(domain.FileStatusSuccess)),
		slog.Int("files_empty", report.Count(domain.FileStatusEmpty)),
		slog.Int("files_rejected", report.Count(domain.FileStatusRejected)),
		slog.Duration("duration", report.Duration))

	return report, nil
}

// ProcessFile reads, cleans and assembles a single file. The returned
// table is nil unless the outcome status is success.
func (p *Processor) ProcessFile(ctx context.Context, file files.FileInfo) (domain.FileOutcome, *domain.ReportTable, error) {
	outcome := domain.FileOutcome{File: file.Name}
	p.progress.FileStarted(file.Name)

	raw, err := p.reader.ReadTable(file.Path)
	if err != nil {
		p.logger.ErrorContext(ctx, "Error parsing file",
			slog.String("filename", file.Name),
			slog.String("error", err.Error()))
		return outcome, nil, apperrors.NewParsingError("failed to read "+file.Name, err).
			WithContext("path", file.Path)
	}

	outcome.RawRows, outcome.RawColumns = raw.Shape()
	p.progress.FileRead(file.Name, outcome.RawRows, outcome.RawColumns)

	outcome.Date = ExtractReportDate(raw)
	outcome.DateMissing = !outcome.Date.Valid
	p.progress.DateDetected(file.Name, outcome.Date)
	if outcome.DateMissing {
		p.metrics.DatesMissing.Inc()
		p.logger.WarnContext(ctx, "Report date not found", slog.String("filename", file.Name))
	}

	cleaned := CleanRows(raw)
	for reason, n := range cleaned.Dropped {
		p.metrics.RowsDropped.WithLabelValues(string(reason)).Add(float64(n))
	}
	p.logger.DebugContext(ctx, "Rows cleaned",
		slog.String("filename", file.Name),
		slog.Int("kept", len(cleaned.Rows)),
		slog.Any("dropped", cleaned.Dropped))

	if len(cleaned.Rows) == 0 {
		outcome.Status = domain.FileStatusEmpty
		p.metrics.FilesProcessed.WithLabelValues(string(outcome.Status)).Inc()
		p.logger.WarnContext(ctx, "File contains no data rows", slog.String("filename", file.Name))
		p.progress.FileSkipped(outcome)
		return outcome, nil, nil
	}

	table, err := AssembleTable(file.Name, cleaned.Rows, outcome.Date)
	if err != nil {
		if !errors.Is(err, ErrRaggedTable) && !errors.Is(err, ErrTooManyColumns) {
			return outcome, nil, err
		}
		outcome.Status = domain.FileStatusRejected
		outcome.Err = err
		p.metrics.FilesProcessed.WithLabelValues(string(outcome.Status)).Inc()
		p.logger.WarnContext(ctx, "File layout rejected",
			slog.String("filename", file.Name),
			slog.String("error", err.Error()))
		p.progress.FileSkipped(outcome)
		return outcome, nil, nil
	}

	outcome.Status = domain.FileStatusSuccess
	outcome.RowsRetained = table.Len()
	p.metrics.FilesProcessed.WithLabelValues(string(outcome.Status)).Inc()
	p.metrics.RowsRetained.Add(float64(table.Len()))
	p.progress.RowsAdded(file.Name, table.Len())

	p.logger.InfoContext(ctx, "Records processed from file",
		slog.String("filename", file.Name),
		slog.String("date", outcome.Date.String()),
		slog.Int("record_count", table.Len()))

	return outcome, table, nil
}

type nopProgress struct{}

func (nopProgress) FileStarted(string) {}
func (nopProgress) FileRead(string, int, int) {}
func (nopProgress) DateDetected(string, domain.ReportDate) {}
func (nopProgress) RowsAdded(string, int) {}
func (nopProgress) FileSkipped(domain.FileOutcome) {}
