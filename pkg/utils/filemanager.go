// =============================================================================
// csvtree - File Manager Utility
// =============================================================================
//
// This module provides the file layout helpers used by the converter:
//   - Output root derivation from the input file name
//   - Output file name derivation from the Test column
//   - Directory management
//   - Payload file writing
//
// LAYOUT:
//   <output root>/<category>/<test name>.txt
//
// =============================================================================

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// =============================================================================
// NAMING
// =============================================================================

// OutputRoot returns the base name of inputPath with its final extension
// removed. The directory part of inputPath is ignored.
//
// EXAMPLES:
//   "grades.csv"        -> "grades"
//   "data/a.b.csv"      -> "a.b"
//   "noext"             -> "noext"
//   ".hidden"           -> ".hidden"   (leading dots do not start an extension)
func OutputRoot(inputPath string) string {
	base := filepath.Base(inputPath)

	dot := strings.LastIndex(base, ".")
	if dot <= 0 {
		return base
	}

	// A dot preceded only by dots is part of the name, not an extension.
	if strings.Trim(base[:dot], ".") == "" {
		return base
	}

	return base[:dot]
}

// TrimmedFileName drops the last trim characters of name and appends suffix.
// Characters are counted as runes. A name shorter than trim yields an empty
// base, so the result is just suffix.
//
// The cut is unconditional: "test1.csv" becomes "test1" + suffix, but
// "t.sh" becomes "" + suffix and "test.json" becomes "test." + suffix.
func TrimmedFileName(name string, trim int, suffix string) string {
	runes := []rune(name)
	keep := len(runes) - trim
	if keep < 0 {
		keep = 0
	}
	return string(runes[:keep]) + suffix
}

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// EnsureDir creates dir and any missing parents when dir does not exist yet.
//
// RETURNS:
//   - true if the directory was created by this call.
//   - An error if the directory cannot be created.
func EnsureDir(dir string) (bool, error) {
	if FileExists(dir) {
		return false, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return false, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	return true, nil
}

// =============================================================================
// FILE WRITING
// =============================================================================

// WriteFile writes content to path verbatim, truncating any existing file.
// The handle is closed before returning on every path.
func WriteFile(path, content string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", path, err)
	}

	if _, err := file.WriteString(content); err != nil {
		file.Close()
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close file %s: %w", path, err)
	}

	return nil
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
