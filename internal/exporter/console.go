package exporter

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"meteocombine/internal/dataprocessing"
	"meteocombine/pkg/contracts/domain"
)

// missingDateText is shown instead of a date that was not found.
const missingDateText = "не найдена"

// ConsoleReporter prints run progress and the final summary for a human
// operator. It implements dataprocessing.Progress.
type ConsoleReporter struct {
	w io.Writer
}

// NewConsoleReporter creates a reporter printing to w.
func NewConsoleReporter(w io.Writer) *ConsoleReporter {
	return &ConsoleReporter{w: w}
}

var _ dataprocessing.Progress = (*ConsoleReporter)(nil)

// FilesFound prints how many spreadsheets were discovered.
func (r *ConsoleReporter) FilesFound(n int) {
	fmt.Fprintf(r.w, "Найдено файлов: %d\n", n)
}

func (r *ConsoleReporter) FileStarted(name string) {
	fmt.Fprintf(r.w, "\nОбрабатываю: %s\n", name)
}

func (r *ConsoleReporter) FileRead(_ string, rows, cols int) {
	fmt.Fprintf(r.w, "Размер: (%d, %d)\n", rows, cols)
}

func (r *ConsoleReporter) DateDetected(_ string, date domain.ReportDate) {
	fmt.Fprintf(r.w, "Дата: %s\n", displayDate(date))
}

func (r *ConsoleReporter) RowsAdded(_ string, n int) {
	fmt.Fprintf(r.w, "Добавлено строк: %d\n", n)
}

func (r *ConsoleReporter) FileSkipped(outcome domain.FileOutcome) {
	switch outcome.Status {
	case domain.FileStatusRejected:
		fmt.Fprintf(r.w, "Предупреждение: файл %s пропущен: %v\n", outcome.File, outcome.Err)
	default:
		fmt.Fprintf(r.w, "Предупреждение: файл %s не содержит данных\n", outcome.File)
	}
}

// NoData prints the message for a run that collected no rows.
func (r *ConsoleReporter) NoData() {
	fmt.Fprintln(r.w, "Нет данных для объединения!")
}

// PrintSummary prints the totals, the column list, the first rows and the
// per-date and per-division row counts.
func (r *ConsoleReporter) PrintSummary(s dataprocessing.Summary) {
	fmt.Fprintf(r.w, "\nГотово! Строк: %d, колонок: %d\n", s.Rows, len(s.Columns))

	fmt.Fprintln(r.w, "\nЗаголовки колонок:")
	for i, column := range s.Columns {
		fmt.Fprintf(r.w, "  %d. %s\n", i+1, column)
	}

	fmt.Fprintf(r.w, "\nПервые %d строки:\n", dataprocessing.SampleRowCount)
	r.printHead(s.Columns, s.Head)

	fmt.Fprintln(r.w, "\nСтатистика по датам:")
	for _, c := range s.DateCounts {
		fmt.Fprintf(r.w, "  %s: %d строк\n", c.Key, c.Rows)
	}

	fmt.Fprintln(r.w, "\nСтатистика по авиаотделениям:")
	for _, c := range s.StationCounts {
		fmt.Fprintf(r.w, "  %s: %d строк\n", c.Key, c.Rows)
	}
}

// printHead renders rows as an aligned table with a leading row number.
func (r *ConsoleReporter) printHead(columns []string, rows [][]string) {
	tw := tabwriter.NewWriter(r.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "\t"+strings.Join(columns, "\t"))
	for i, row := range rows {
		fmt.Fprintln(tw, strconv.Itoa(i)+"\t"+strings.Join(row, "\t"))
	}
	tw.Flush()
}

func displayDate(date domain.ReportDate) string {
	if !date.Valid {
		return missingDateText
	}
	return date.Value
}
