package dataprocessing

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"

	"meteocombine/pkg/contracts/domain"
)

// TableReader loads the raw table of a spreadsheet file.
type TableReader interface {
	ReadTable(filePath string) (*domain.RawTable, error)
}

// TableReaderFunc adapts a function to the TableReader interface.
type TableReaderFunc func(filePath string) (*domain.RawTable, error)

// ReadTable calls f(filePath).
func (f TableReaderFunc) ReadTable(filePath string) (*domain.RawTable, error) {
	return f(filePath)
}

// FileReader reads .xlsx workbooks with excelize and legacy .xls workbooks
// with the BIFF reader.
type FileReader struct{}

// ReadTable implements TableReader.
func (FileReader) ReadTable(filePath string) (*domain.RawTable, error) {
	return ParseFile(filePath)
}

// ParseFile reads the first worksheet of a station report spreadsheet. The
// first worksheet row becomes the table header and the remaining rows are
// padded to a common width.
func ParseFile(filePath string) (*domain.RawTable, error) {
	var (
		rows [][]string
		err  error
	)

	switch ext := strings.ToLower(filepath.Ext(filePath)); ext {
	case ".xlsx":
		rows, err = readXLSX(filePath)
	case ".xls":
		rows, err = readXLS(filePath)
	default:
		return nil, fmt.Errorf("unsupported spreadsheet format %q", ext)
	}
	if err != nil {
		return nil, err
	}

	table := NewRawTable(filepath.Base(filePath), rows)
	slog.Debug("Sheet information",
		slog.String("file", table.Source),
		slog.Int("total_rows", len(table.Rows)),
		slog.Int("total_columns", table.Width()))

	return table, nil
}

// NewRawTable builds a rectangular raw table from worksheet rows. rows[0]
// is taken as the header; missing trailing cells become empty strings.
func NewRawTable(source string, rows [][]string) *domain.RawTable {
	table := &domain.RawTable{Source: source}
	if len(rows) == 0 {
		return table
	}

	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	table.Header = padRow(rows[0], width)
	table.Rows = make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		table.Rows = append(table.Rows, padRow(row, width))
	}
	return table
}

func padRow(row []string, width int) []string {
	padded := make([]string, width)
	copy(padded, row)
	return padded
}

func readXLSX(filePath string) ([][]string, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no worksheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

func readXLS(filePath string) (rows [][]string, err error) {
	// the BIFF reader panics on some malformed files
	defer func() {
		if r := recover(); r != nil {
			rows, err = nil, fmt.Errorf("malformed xls workbook: %v", r)
		}
	}()

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	wb, err := xls.OpenReader(file, "utf-8")
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	if wb.NumSheets() == 0 {
		return nil, fmt.Errorf("workbook has no worksheets")
	}

	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, fmt.Errorf("failed to read first worksheet")
	}

	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		cells := make([]string, row.LastCol())
		for c := row.FirstCol(); c < row.LastCol(); c++ {
			cells[c] = decodeCell(row.Col(c))
		}
		rows = append(rows, cells)
	}

	// excelize drops trailing empty rows; do the same here
	for len(rows) > 0 && isBlank(rows[len(rows)-1]) {
		rows = rows[:len(rows)-1]
	}
	return rows, nil
}

// decodeCell converts cell text that is not valid UTF-8 from Windows-1251.
// Pre-BIFF8 workbooks store byte strings in the workbook code page, and
// Russian reports use 1251.
func decodeCell(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	decoded, err := charmap.Windows1251.NewDecoder().String(s)
	if err != nil {
		return s
	}
	return decoded
}
