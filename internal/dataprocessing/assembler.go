package dataprocessing

import (
	"errors"
	"fmt"

	apperrors "meteocombine/internal/errors"
	"meteocombine/pkg/contracts/domain"
)

var (
	// ErrRaggedTable is returned when cleaned rows do not share one width.
	ErrRaggedTable = errors.New("rows have different widths")
	// ErrTooManyColumns is returned when a table holds more non-empty
	// columns than there are report column names.
	ErrTooManyColumns = errors.New("more data columns than report column names")
)

// AssembleTable names the columns of a file's cleaned rows and attaches the
// report date. Column names are a prefix of domain.ReportColumns as long as
// the row width. Columns beyond the last name are accepted only when they
// are empty in every row, in which case they are trimmed.
func AssembleTable(source string, rows [][]string, date domain.ReportDate) (*domain.ReportTable, error) {
	width, err := commonWidth(rows)
	if err != nil {
		return nil, apperrors.NewLayoutError(fmt.Sprintf("cannot name columns of %s", source), err)
	}

	if width > len(domain.ReportColumns) {
		if used := usedWidth(rows); used > len(domain.ReportColumns) {
			return nil, apperrors.NewLayoutError(fmt.Sprintf("cannot name columns of %s", source), ErrTooManyColumns).
				WithContext("columns", used)
		}
		width = len(domain.ReportColumns)
		trimmed := make([][]string, len(rows))
		for i, row := range rows {
			trimmed[i] = row[:width]
		}
		rows = trimmed
	}

	columns := make([]string, 0, width+1)
	columns = append(columns, domain.DateColumn)
	columns = append(columns, domain.ReportColumns[:width]...)

	return &domain.ReportTable{
		Source:  source,
		Date:    date,
		Columns: columns,
		Rows:    rows,
	}, nil
}

// commonWidth returns the width shared by all rows.
func commonWidth(rows [][]string) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	width := len(rows[0])
	for i, row := range rows[1:] {
		if len(row) != width {
			return 0, fmt.Errorf("%w: row %d has %d cells, row 0 has %d", ErrRaggedTable, i+1, len(row), width)
		}
	}
	return width, nil
}

// usedWidth returns one past the last column that is non-empty in any row.
func usedWidth(rows [][]string) int {
	used := 0
	for _, row := range rows {
		for i := len(row) - 1; i >= used; i-- {
			if row[i] != "" {
				used = i + 1
				break
			}
		}
	}
	return used
}
