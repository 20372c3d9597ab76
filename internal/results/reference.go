// Package results reads the reference list of well names and writes the
// per-well scores of an analysis as CSV.
package results

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ReferenceExt is the required extension of a reference name file.
const ReferenceExt = ".txt"

// ReadReferenceNames reads well names from path, one per line. Lines are
// trimmed of surrounding whitespace and blank lines are skipped. The file
// must have a .txt extension.
func ReadReferenceNames(path string) ([]string, error) {
	if !strings.EqualFold(filepath.Ext(path), ReferenceExt) {
		return nil, fmt.Errorf("reference file %s: must be a %s file", path, ReferenceExt)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open reference file: %w", err)
	}
	defer f.Close()

	names, err := ParseReferenceNames(f)
	if err != nil {
		return nil, fmt.Errorf("reference file %s: %w", path, err)
	}
	return names, nil
}

// ParseReferenceNames reads one well name per line from r.
func ParseReferenceNames(r io.Reader) ([]string, error) {
	var names []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		name := strings.TrimSpace(scanner.Text())
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return names, nil
}
