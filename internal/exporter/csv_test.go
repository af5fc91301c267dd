package exporter

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "meteocombine/internal/errors"
	"meteocombine/pkg/contracts/domain"
)

func readCSV(t *testing.T, path string) (bom bool, records [][]string) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	bom = bytes.HasPrefix(data, utf8BOM)
	records, err = csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM))).ReadAll()
	require.NoError(t, err)
	return bom, records
}

func TestNewCSVWriter(t *testing.T) {
	writer := NewCSVWriter("/out")

	assert.NotNil(t, writer)
	assert.Equal(t, "/out", writer.outputDir)
	assert.Equal(t, filepath.Join("/out", "a.csv"), writer.resolvePath("a.csv"))
	assert.Equal(t, "/abs/b.csv", writer.resolvePath("/abs/b.csv"))
}

func TestCSVWriter_WriteCSV(t *testing.T) {
	tests := []struct {
		name    string
		options WriteOptions
		wantBOM bool
		want    [][]string
	}{
		{
			name: "with BOM",
			options: WriteOptions{
				Headers:   []string{"Дата", "Авиаотделение"},
				Records:   [][]string{{"2024-06-05", "Шадринское АО"}},
				BOMPrefix: true,
			},
			wantBOM: true,
			want:    [][]string{{"Дата", "Авиаотделение"}, {"2024-06-05", "Шадринское АО"}},
		},
		{
			name: "without BOM",
			options: WriteOptions{
				Headers: []string{"a"},
				Records: [][]string{{"1"}},
			},
			want: [][]string{{"a"}, {"1"}},
		},
		{
			name: "fields needing quotes",
			options: WriteOptions{
				Headers: []string{"a", "b"},
				Records: [][]string{{"x, y", `say "hi"`}},
			},
			want: [][]string{{"a", "b"}, {"x, y", `say "hi"`}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writer := NewCSVWriter(dir)

			path, err := writer.WriteCSV("out.csv", tt.options)
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(dir, "out.csv"), path)

			bom, records := readCSV(t, path)
			assert.Equal(t, tt.wantBOM, bom)
			assert.Equal(t, tt.want, records)
		})
	}
}

func TestCSVWriter_WriteCSV_ReplacesExistingFile(t *testing.T) {
	dir := t.TempDir()
	writer := NewCSVWriter(dir)

	_, err := writer.WriteCSV("out.csv", WriteOptions{Headers: []string{"a"}, Records: [][]string{{"1"}, {"2"}}})
	require.NoError(t, err)
	path, err := writer.WriteCSV("out.csv", WriteOptions{Headers: []string{"b"}, Records: [][]string{{"3"}}})
	require.NoError(t, err)

	_, records := readCSV(t, path)
	assert.Equal(t, [][]string{{"b"}, {"3"}}, records)
}

func TestCSVWriter_WriteCSV_LeadingSpaceQuoted(t *testing.T) {
	writer := NewCSVWriter(t.TempDir())

	path, err := writer.WriteCSV("out.csv", WriteOptions{
		Headers: []string{"station", "temp"},
		Records: [][]string{{" Шадринск", "15"}},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "station,temp\n\" Шадринск\",15\n", string(data))

	_, records := readCSV(t, path)
	assert.Equal(t, " Шадринск", records[1][0], "quoting leaves the value unchanged")
}

func TestCSVWriter_CreatesOutputDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")

	path, err := NewCSVWriter(dir).WriteCSV("out.csv", WriteOptions{Headers: []string{"a"}})
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestCSVWriter_StorageErrors(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	_, err := NewCSVWriter(filepath.Join(blocker, "sub")).WriteCSV("out.csv", WriteOptions{})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeStorage))
}

func TestCSVWriter_WriteDataset(t *testing.T) {
	wide := &domain.ReportTable{
		Source:  "a.xlsx",
		Date:    domain.NewReportDate("2024-06-05"),
		Columns: []string{"Дата", "Авиаотделение", "Метеостанция", "Температура"},
		Rows:    [][]string{{"Шадринское АО", "Шадринск", "15.2"}},
	}
	narrow := &domain.ReportTable{
		Source:  "b.xls",
		Columns: []string{"Дата", "Авиаотделение", "Метеостанция"},
		Rows:    [][]string{{"Курганское АО", "Курган"}},
	}
	ds := &domain.Dataset{}
	ds.Append(wide)
	ds.Append(narrow)

	dir := t.TempDir()
	path, err := NewCSVWriter(dir).WriteDataset("combined_meteo_data_v3.csv", ds)
	require.NoError(t, err)

	bom, records := readCSV(t, path)
	assert.True(t, bom)
	assert.Equal(t, [][]string{
		{"Дата", "Авиаотделение", "Метеостанция", "Температура"},
		{"2024-06-05", "Шадринское АО", "Шадринск", "15.2"},
		{"", "Курганское АО", "Курган", ""},
	}, records)
}

func TestStreamWriter(t *testing.T) {
	dir := t.TempDir()
	writer := NewCSVWriter(dir)

	stream, err := writer.CreateStreamWriter("stream.csv", []string{"a", "b"}, false)
	require.NoError(t, err)
	for _, record := range [][]string{{"1", "2"}, {"3", "4"}} {
		require.NoError(t, stream.WriteRecord(record))
	}
	require.NoError(t, stream.Close())

	bom, records := readCSV(t, filepath.Join(dir, "stream.csv"))
	assert.False(t, bom)
	assert.Equal(t, [][]string{{"a", "b"}, {"1", "2"}, {"3", "4"}}, records)
}
