// Package dataprocessing turns Russian fire-danger station report
// spreadsheets into one dated observation dataset.
//
// # Pipeline
//
// Each file goes through the same linear steps:
//
//  1. ParseFile reads the first worksheet (.xlsx with excelize, .xls with a BIFF reader)
//  2. ExtractReportDate finds the "за 5 июня 2024 г." phrase and normalizes it to 2024-06-05
//  3. CleanRows drops the title block, blank rows, boilerplate rows and rows without measurements
//  4. AssembleTable names the columns and prepends the date column
//
// Processor.Run applies these steps to every discovered file in order and
// concatenates the results; Summarize builds the console statistics.
//
// # Usage
//
//	processor := dataprocessing.NewProcessor(
//	    dataprocessing.WithProgress(reporter),
//	    dataprocessing.WithMetrics(metrics),
//	)
//	report, err := processor.Run(ctx, reportFiles)
//
// # Error Handling
//
// A missing date is not an error: the outcome is flagged DateMissing and the
// date column stays empty. A file with no data rows, or whose columns cannot
// be named, is skipped with a warning. A file that cannot be read aborts
// the run with a PARSING AppError.
package dataprocessing
