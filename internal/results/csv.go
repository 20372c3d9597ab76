package results

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ironsheep/tray-greenness-mcp/internal/tray"
)

// OutputPath joins folder and name, adding a .csv extension to name when it
// does not already have one.
func OutputPath(folder, name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("output name is required")
	}
	if !strings.HasSuffix(strings.ToLower(name), ".csv") {
		name += ".csv"
	}
	if folder == "" {
		return name, nil
	}
	return filepath.Join(folder, name), nil
}

// EncodeCSV writes rows as "name,score" records with no header. Scores use
// the shortest decimal form that round-trips.
func EncodeCSV(w io.Writer, rows []tray.ResultRow) error {
	cw := csv.NewWriter(w)
	for _, row := range rows {
		record := []string{row.Name, strconv.FormatFloat(row.Score, 'f', -1, 64)}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSV writes rows to path, replacing any existing file.
func WriteCSV(path string, rows []tray.ResultRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create results file: %w", err)
	}

	if err := EncodeCSV(f, rows); err != nil {
		f.Close()
		return fmt.Errorf("failed to write results: %w", err)
	}
	return f.Close()
}
