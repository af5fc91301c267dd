// Package exporter writes the combined observation dataset and the
// operator-facing console report.
//
// CSVWriter produces the combined CSV file: UTF-8 with a byte-order mark
// so spreadsheet tools pick the right encoding, a header row and no index
// column. ConsoleReporter prints per-file progress while a run is in
// progress and the final summary once the dataset is assembled.
//
// Example usage:
//
//	writer := exporter.NewCSVWriter(cfg.Output.Dir)
//	path, err := writer.WriteDataset(cfg.Output.FileName, report.Dataset)
//
//	console := exporter.NewConsoleReporter(os.Stdout)
//	console.PrintSummary(dataprocessing.Summarize(report.Dataset))
package exporter
