package dataprocessing

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"meteocombine/pkg/contracts/domain"
)

// HeaderRowCount is the number of title rows at the top of every report
// (below the worksheet header row) that never hold observations.
const HeaderRowCount = 8

// Columns inspected by HasNumericMeasurement: [measurementFirstColumn, measurementEndColumn).
const (
	measurementFirstColumn = 2
	measurementEndColumn   = 8
)

// BoilerplateKeywords mark title, footnote, separator and region rows. They
// are matched against the lower-cased text of the first column.
var BoilerplateKeywords = []string{
	"среднее",
	"итого",
	"примечание",
	"примечания",
	"таблица содержит",
	"метеорологические данные",
	"гидрометцентр",
	"показатели пожароопасности",
	"рассчитанные на основании",
	"утвержденным методикам",
	"-------",
	"............",
	"курганская",
	"челябинская",
	"кусинская",
}

// DropReason says why the cleaner removed a row.
type DropReason string

const (
	DropHeader      DropReason = "header"
	DropBlank       DropReason = "blank"
	DropBoilerplate DropReason = "boilerplate"
	DropNonNumeric  DropReason = "non_numeric"
)

// CleanResult holds the rows kept by CleanRows and per-reason drop counts.
type CleanResult struct {
	Rows    [][]string
	Dropped map[DropReason]int
}

// CleanRows applies the row filters in order: header skip, blank rows,
// boilerplate keywords, numeric presence. Relative row order is preserved.
func CleanRows(table *domain.RawTable) CleanResult {
	if table == nil {
		return CleanResult{Dropped: make(map[DropReason]int)}
	}

	rows := table.Rows
	skipped := HeaderRowCount
	if len(rows) < skipped {
		skipped = len(rows)
	}

	result := FilterRows(rows[skipped:])
	result.Dropped[DropHeader] = skipped
	return result
}

// FilterRows keeps the rows that are not blank, not boilerplate and carry a
// numeric measurement. Applying it to its own output changes nothing.
func FilterRows(rows [][]string) CleanResult {
	result := CleanResult{Dropped: make(map[DropReason]int)}
	for _, row := range rows {
		switch {
		case isBlank(row):
			result.Dropped[DropBlank]++
		case IsBoilerplate(row):
			result.Dropped[DropBoilerplate]++
		case !HasNumericMeasurement(row):
			result.Dropped[DropNonNumeric]++
		default:
			result.Rows = append(result.Rows, row)
		}
	}
	return result
}

// IsBoilerplate reports whether the first column contains any of the
// BoilerplateKeywords, ignoring case.
func IsBoilerplate(row []string) bool {
	if len(row) == 0 {
		return false
	}
	first := cases.Lower(language.Russian).String(row[0])
	for _, keyword := range BoilerplateKeywords {
		if strings.Contains(first, keyword) {
			return true
		}
	}
	return false
}

// HasNumericMeasurement reports whether any of columns 2 through 7 looks
// like a number: after removing '.' and '-' it is a non-empty run of digits.
func HasNumericMeasurement(row []string) bool {
	end := measurementEndColumn
	if len(row) < end {
		end = len(row)
	}
	for i := measurementFirstColumn; i < end; i++ {
		if looksNumeric(row[i]) {
			return true
		}
	}
	return false
}

func looksNumeric(cell string) bool {
	digits := strings.NewReplacer(".", "", "-", "").Replace(cell)
	if digits == "" {
		return false
	}
	for _, r := range digits {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}
