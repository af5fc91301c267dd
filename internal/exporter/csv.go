package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	apperrors "meteocombine/internal/errors"
	"meteocombine/pkg/contracts/domain"
)

// utf8BOM lets spreadsheet tools detect UTF-8 when opening the file.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVWriter writes CSV files into an output directory.
type CSVWriter struct {
	outputDir string
}

// NewCSVWriter creates a writer for files under outputDir.
func NewCSVWriter(outputDir string) *CSVWriter {
	return &CSVWriter{outputDir: outputDir}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteCSV writes headers and records to fileName, replacing any existing
// file. It returns the full path written.
func (w *CSVWriter) WriteCSV(fileName string, options WriteOptions) (string, error) {
	fullPath := w.resolvePath(fileName)

	slog.Info("Writing CSV file",
		slog.String("file_path", fileName),
		slog.String("full_path", fullPath),
		slog.Int("record_count", len(options.Records)))

	stream, err := w.CreateStreamWriter(fileName, options.Headers, options.BOMPrefix)
	if err != nil {
		return "", err
	}

	for i, record := range options.Records {
		if err := stream.WriteRecord(record); err != nil {
			stream.Close()
			return "", apperrors.NewStorageError(fmt.Sprintf("failed to write record %d", i), err).
				WithContext("path", fullPath)
		}
	}

	if err := stream.Close(); err != nil {
		return "", apperrors.NewStorageError("failed to flush CSV file", err).
			WithContext("path", fullPath)
	}
	return fullPath, nil
}

// WriteDataset writes the combined dataset with a BOM, a header row and no
// index column. Cells of absent dates are written as empty fields.
func (w *CSVWriter) WriteDataset(fileName string, ds *domain.Dataset) (string, error) {
	return w.WriteCSV(fileName, WriteOptions{
		Headers:   ds.Columns(),
		Records:   ds.Records(),
		BOMPrefix: true,
	})
}

// StreamWriter writes CSV records one at a time.
type StreamWriter struct {
	file   *os.File
	writer *csv.Writer
}

// CreateStreamWriter creates fileName, optionally writes the BOM, and
// writes the header row when headers is not empty.
func (w *CSVWriter) CreateStreamWriter(fileName string, headers []string, bom bool) (*StreamWriter, error) {
	fullPath := w.resolvePath(fileName)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return nil, apperrors.NewStorageError("failed to create directory", err).
			WithContext("path", fullPath)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to create file", err).
			WithContext("path", fullPath)
	}

	if bom {
		if _, err := file.Write(utf8BOM); err != nil {
			file.Close()
			return nil, apperrors.NewStorageError("failed to write BOM", err).
				WithContext("path", fullPath)
		}
	}

	writer := csv.NewWriter(file)
	if len(headers) > 0 {
		if err := writer.Write(headers); err != nil {
			file.Close()
			return nil, apperrors.NewStorageError("failed to write headers", err).
				WithContext("path", fullPath)
		}
	}

	return &StreamWriter{file: file, writer: writer}, nil
}

// WriteRecord writes a single record to the stream
func (s *StreamWriter) WriteRecord(record []string) error {
	return s.writer.Write(record)
}

// Close flushes and closes the stream writer
func (s *StreamWriter) Close() error {
	s.writer.Flush()
	if err := s.writer.Error(); err != nil {
		s.file.Close()
		return err
	}
	return s.file.Close()
}

// resolvePath joins relative names to the output directory.
func (w *CSVWriter) resolvePath(fileName string) string {
	if filepath.IsAbs(fileName) {
		return fileName
	}
	return filepath.Join(w.outputDir, fileName)
}
