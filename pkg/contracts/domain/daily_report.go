package domain

// DateColumn is the name of the leading column that carries the report date.
const DateColumn = "Дата"

// ReportColumns are the positional names of the data columns of a station
// report. A table narrower than this list uses a prefix of it; a table is
// never given more names than the list holds.
var ReportColumns = []string{
	"Авиаотделение",
	"Метеостанция",
	"Температура",
	"Точка_росы",
	"Время_измерения",
	"Осадки",
	"Высота_снега",
	"КППО_1",
	"Класс_ПО_1",
	"КППО_2",
	"Класс_ПО_2",
	"КППО_3",
	"Класс_ПО_3",
	"Пред_день",
	"Ночь",
	"Признак_снега",
}

// StationColumn is the column used for the per-division row histogram.
const StationColumn = "Авиаотделение"

// RawTable is the first worksheet of a spreadsheet as read from disk.
// The first worksheet row is kept apart in Header; Rows holds everything
// below it, padded with empty cells so that every row has the same width.
// An empty string marks an empty cell.
type RawTable struct {
	Source string     `json:"source"`
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

// Width returns the number of columns of the table.
func (t *RawTable) Width() int {
	if t == nil {
		return 0
	}
	width := len(t.Header)
	for _, row := range t.Rows {
		if len(row) > width {
			width = len(row)
		}
	}
	return width
}

// Shape returns the row and column counts of the table.
func (t *RawTable) Shape() (rows, cols int) {
	if t == nil {
		return 0, 0
	}
	return len(t.Rows), t.Width()
}

// ReportDate is the date found in a report's "за <день> <месяц> <год> г." cell.
// Valid is false when no such cell exists.
type ReportDate struct {
	Value string `json:"value"`
	Valid bool   `json:"valid"`
}

// NewReportDate returns a valid date holding an ISO formatted value.
func NewReportDate(value string) ReportDate {
	return ReportDate{Value: value, Valid: true}
}

// String renders the date for CSV output; an absent date is an empty field.
func (d ReportDate) String() string {
	if !d.Valid {
		return ""
	}
	return d.Value
}

// ReportTable is the cleaned content of one spreadsheet file with its
// column names and date. Rows do not include the date column.
type ReportTable struct {
	Source  string     `json:"source"`
	Date    ReportDate `json:"date"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Len returns the number of data rows.
func (t *ReportTable) Len() int {
	return len(t.Rows)
}

// Record returns row i prefixed with the table's date value.
func (t *ReportTable) Record(i int) []string {
	record := make([]string, 0, len(t.Rows[i])+1)
	record = append(record, t.Date.String())
	return append(record, t.Rows[i]...)
}
