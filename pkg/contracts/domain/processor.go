package domain

import (
	"time"
)

// FileStatus describes what a single input file contributed to a run.
type FileStatus string

const (
	FileStatusSuccess  FileStatus = "success"  // At least one data row retained
	FileStatusEmpty    FileStatus = "empty"    // No rows survived filtering
	FileStatusRejected FileStatus = "rejected" // Layout could not be named safely
)

// FileOutcome is the structured result of processing one spreadsheet file.
type FileOutcome struct {
	File         string     `json:"file"`
	Status       FileStatus `json:"status"`
	Date         ReportDate `json:"date"`
	DateMissing  bool       `json:"date_missing"`
	RawRows      int        `json:"raw_rows"`
	RawColumns   int        `json:"raw_columns"`
	RowsRetained int        `json:"rows_retained"`
	Err          error      `json:"-"`
}

// RunReport is the result of one consolidation run.
type RunReport struct {
	FilesFound int           `json:"files_found"`
	Outcomes   []FileOutcome `json:"outcomes"`
	Dataset    *Dataset      `json:"-"`
	OutputPath string        `json:"output_path,omitempty"`
	Duration   time.Duration `json:"duration"`
}

// Count returns how many outcomes have the given status.
func (r *RunReport) Count(status FileStatus) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == status {
			n++
		}
	}
	return n
}
