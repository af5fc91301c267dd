// Package files finds the station report spreadsheets to consolidate.
//
// Discovery lists "*.xls" and "*.xlsx" files of a directory relative to a
// base path:
//
//	discovery := files.NewDiscovery(".")
//	reports, err := discovery.FindSpreadsheets("reports")
package files
