// Package app wires the components of a consolidation run together.
//
// # Run Flow
//
//  1. Discover *.xls and *.xlsx files in the input directory
//  2. Process each file in discovery order and collect the rows
//  3. Write the combined CSV file, unless nothing was collected
//  4. Print the summary and write the metrics textfile when configured
//
// # Usage
//
//	application := app.NewApplication(cfg, os.Stdout)
//	report, err := application.Run(ctx)
package app
