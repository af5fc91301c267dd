package files

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// SpreadsheetPatterns are the glob patterns of station report files, in the
// order their matches are returned.
var SpreadsheetPatterns = []string{"*.xls", "*.xlsx"}

// FileInfo represents information about a discovered file
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Discovery provides file discovery operations
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new file discovery instance
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

// FindSpreadsheets returns the station report files in dir: every match of
// "*.xls" followed by every match of "*.xlsx". Matching is case sensitive
// and no further sorting is applied. Excel lock files ("~$name.xlsx") and hidden files
// (".name.xls", "._name.xlsx") are skipped, as a shell glob would.
func (d *Discovery) FindSpreadsheets(dir string) ([]FileInfo, error) {
	fullPath := d.resolve(dir)

	info, err := os.Stat(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", fullPath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", fullPath)
	}

	var files []FileInfo
	for _, pattern := range SpreadsheetPatterns {
		matches, err := d.FindFilesByPattern(dir, pattern)
		if err != nil {
			return nil, err
		}
		for _, file := range matches {
			if strings.HasPrefix(file.Name, "~$") || strings.HasPrefix(file.Name, ".") {
				continue
			}
			files = append(files, file)
		}
	}

	return files, nil
}

// FindFilesByPattern finds files matching a glob pattern
func (d *Discovery) FindFilesByPattern(dir string, pattern string) ([]FileInfo, error) {
	searchPattern := filepath.Join(d.resolve(dir), pattern)

	matches, err := filepath.Glob(searchPattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
	}

	var files []FileInfo
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil {
			continue
		}

		if !info.IsDir() {
			files = append(files, FileInfo{
				Path:    match,
				Name:    filepath.Base(match),
				Size:    info.Size(),
				ModTime: info.ModTime(),
			})
		}
	}

	return files, nil
}

// resolve joins relative directories onto the base path
func (d *Discovery) resolve(dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(d.basePath, dir)
}
