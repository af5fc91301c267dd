package dataprocessing

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"meteocombine/pkg/contracts/domain"
)

// monthNumbers maps genitive Russian month names to their two digit numbers.
var monthNumbers = map[string]string{
	"января":   "01",
	"февраля":  "02",
	"марта":    "03",
	"апреля":   "04",
	"мая":      "05",
	"июня":     "06",
	"июля":     "07",
	"августа":  "08",
	"сентября": "09",
	"октября":  "10",
	"ноября":   "11",
	"декабря":  "12",
}

// reportDatePattern matches "за 5 июня 2024 г.". Whitespace includes the
// non-breaking space that spreadsheets often carry.
var reportDatePattern = regexp.MustCompile(
	`(?i)за[\s\v\p{Z}]+(\d{1,2})[\s\v\p{Z}]+` +
		`(января|февраля|марта|апреля|мая|июня|июля|августа|сентября|октября|ноября|декабря)` +
		`[\s\v\p{Z}]+(\d{4})[\s\v\p{Z}]+г\.`)

// ExtractReportDate scans the table rows cell by cell, row-major, and
// returns the date of the first cell holding a "за <день> <месяц> <год> г."
// phrase. The day/month combination is not checked against the calendar.
// The returned date is invalid when no cell matches.
func ExtractReportDate(table *domain.RawTable) domain.ReportDate {
	if table == nil {
		return domain.ReportDate{}
	}
	for _, row := range table.Rows {
		for _, cell := range row {
			if date, ok := ParseReportDate(cell); ok {
				return date
			}
		}
	}
	return domain.ReportDate{}
}

// ParseReportDate extracts the report date from a single cell's text.
func ParseReportDate(text string) (domain.ReportDate, bool) {
	// cheap pre-filter before the regular expression
	if !strings.Contains(text, "за") || !strings.Contains(text, "г.") {
		return domain.ReportDate{}, false
	}

	m := reportDatePattern.FindStringSubmatch(text)
	if m == nil {
		return domain.ReportDate{}, false
	}

	day := m[1]
	if len(day) == 1 {
		day = "0" + day
	}
	month := monthNumbers[cases.Lower(language.Russian).String(m[2])]

	return domain.NewReportDate(fmt.Sprintf("%s-%s-%s", m[3], month, day)), true
}
