package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meteocombine/pkg/contracts/domain"
)

func dataRow(division, station string) []string {
	return []string{division, station, "-3.5", "-7.1", "09:00", "0.0", "12", "150", "1", "", "", "", "", "", "", ""}
}

func headerBlock() [][]string {
	rows := make([][]string, HeaderRowCount)
	for i := range rows {
		// header rows look like data on purpose: they must be dropped by position
		rows[i] = dataRow("Заголовок", "12")
	}
	return rows
}

func TestIsBoilerplate(t *testing.T) {
	for _, keyword := range BoilerplateKeywords {
		t.Run(keyword, func(t *testing.T) {
			assert.True(t, IsBoilerplate([]string{"  " + keyword + " по области"}))
		})
	}

	tests := []struct {
		name string
		row  []string
		want bool
	}{
		{"upper case keyword", []string{"ИТОГО"}, true},
		{"mixed case region", []string{"Курганская область"}, true},
		{"footnote", []string{"Примечание: данные предварительные"}, true},
		{"dash separator", []string{"----------------"}, true},
		{"dot separator", []string{"..............."}, true},
		{"station division", []string{"Шадринское АО"}, false},
		{"keyword outside column 0", []string{"Шадринское АО", "итого"}, false},
		{"empty first column", []string{"", "итого"}, false},
		{"empty row", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsBoilerplate(tt.row))
		})
	}
}

func TestHasNumericMeasurement(t *testing.T) {
	tests := []struct {
		name string
		row  []string
		want bool
	}{
		{"negative decimal temperature", []string{"А", "Б", "-12.5"}, true},
		{"integer in column 7", []string{"А", "Б", "", "", "", "", "", "3"}, true},
		{"number only in column 8", []string{"А", "Б", "", "", "", "", "", "", "5"}, false},
		{"number only in column 1", []string{"А", "12", "", ""}, false},
		{"text values", []string{"А", "Б", "нет", "н/д", "9:00", "1,5"}, false},
		{"dashes and dots only", []string{"А", "Б", "--", "..", "-.-"}, false},
		{"short row", []string{"А", "Б"}, false},
		{"space padded number", []string{"А", "Б", " 5"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasNumericMeasurement(tt.row))
		})
	}
}

func TestCleanRows(t *testing.T) {
	rows := headerBlock()
	rows = append(rows,
		make([]string, 16),
		dataRow("Шадринское АО", "Шадринск"),
		dataRow("Итого по области", "12"),
		[]string{"Курганское АО", "Курган", "нет", "", "", "", "", "", "", "", "", "", "", "", "", ""},
		dataRow("Курганское АО", "Курган"),
		[]string{"Примечание: КППО рассчитан", "", "1", "", "", "", "", "", "", "", "", "", "", "", "", ""},
	)

	result := CleanRows(&domain.RawTable{Rows: rows})

	require.Len(t, result.Rows, 2)
	assert.Equal(t, "Шадринск", result.Rows[0][1])
	assert.Equal(t, "Курган", result.Rows[1][1])
	assert.Equal(t, map[DropReason]int{
		DropHeader:      HeaderRowCount,
		DropBlank:       1,
		DropBoilerplate: 2,
		DropNonNumeric:  1,
	}, result.Dropped)
}

func TestCleanRows_ShortTable(t *testing.T) {
	result := CleanRows(&domain.RawTable{Rows: headerBlock()[:5]})

	assert.Empty(t, result.Rows)
	assert.Equal(t, 5, result.Dropped[DropHeader])

	assert.Empty(t, CleanRows(nil).Rows)
}

func TestFilterRows_Idempotent(t *testing.T) {
	clean := [][]string{
		dataRow("Шадринское АО", "Шадринск"),
		dataRow("Курганское АО", "Курган"),
		dataRow("Курганское АО", "Варгаши"),
	}

	first := FilterRows(clean)
	second := FilterRows(first.Rows)

	assert.Equal(t, clean, first.Rows)
	assert.Equal(t, clean, second.Rows)
	assert.Empty(t, second.Dropped)
}
