// =============================================================================
// csvtree - Configuration Module
// =============================================================================
//
// This module loads the optional settings file. Every setting has a default
// that reproduces the standard layout, so running without a settings file is
// the normal case:
//
//   category_column: Category
//   test_column:     Test
//   expected_column: Expected
//   trim_length:     4
//   output_suffix:   .txt
//   csv_settings:
//     delimiter: ","
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// DEFAULTS
// =============================================================================

const (
	DefaultCategoryColumn = "Category"
	DefaultTestColumn     = "Test"
	DefaultExpectedColumn = "Expected"
	DefaultTrimLength     = 4
	DefaultOutputSuffix   = ".txt"
	DefaultDelimiter      = ","
)

// =============================================================================
// SETTINGS STRUCTURE
// =============================================================================

// Settings holds the conversion settings.
type Settings struct {
	// CategoryColumn names the column whose value becomes the subdirectory.
	CategoryColumn string `yaml:"category_column"`

	// TestColumn names the column whose value, minus TrimLength characters,
	// becomes the output file's base name.
	TestColumn string `yaml:"test_column"`

	// ExpectedColumn names the column written verbatim as file content.
	ExpectedColumn string `yaml:"expected_column"`

	// TrimLength is the number of trailing characters cut from the Test
	// value. Zero means the default.
	TrimLength int `yaml:"trim_length"`

	// OutputSuffix is appended to the trimmed Test value.
	OutputSuffix string `yaml:"output_suffix"`

	// CSVSettings contains settings for reading CSV input.
	CSVSettings CSVSettings `yaml:"csv_settings"`
}

// CSVSettings contains settings for parsing CSV files.
type CSVSettings struct {
	// Delimiter is the field separator.
	// Accepts a single character or one of the aliases "tab", "pipe",
	// "semicolon".
	// Default: ","
	Delimiter string `yaml:"delimiter"`
}

// =============================================================================
// LOADING
// =============================================================================

// Default returns the settings used when no settings file is given.
func Default() *Settings {
	var s Settings
	applyDefaults(&s)
	return &s
}

// Load reads settings from a YAML file. An empty path returns Default().
//
// RETURNS:
//   - A pointer to the Settings struct with defaults applied.
//   - An error if the file cannot be read, parsed, or validated.
func Load(path string) (*Settings, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var settings Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&settings)

	if err := validate(&settings); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &settings, nil
}

// applyDefaults sets default values for any unset option.
func applyDefaults(s *Settings) {
	if s.CategoryColumn == "" {
		s.CategoryColumn = DefaultCategoryColumn
	}
	if s.TestColumn == "" {
		s.TestColumn = DefaultTestColumn
	}
	if s.ExpectedColumn == "" {
		s.ExpectedColumn = DefaultExpectedColumn
	}
	if s.TrimLength == 0 {
		s.TrimLength = DefaultTrimLength
	}
	if s.OutputSuffix == "" {
		s.OutputSuffix = DefaultOutputSuffix
	}
	if s.CSVSettings.Delimiter == "" {
		s.CSVSettings.Delimiter = DefaultDelimiter
	}
}

func validate(s *Settings) error {
	if s.TrimLength < 0 {
		return fmt.Errorf("trim_length must not be negative, got %d", s.TrimLength)
	}
	if _, err := s.CSVSettings.Comma(); err != nil {
		return err
	}
	return nil
}

// Comma resolves Delimiter to the rune handed to the CSV reader.
func (c CSVSettings) Comma() (rune, error) {
	switch c.Delimiter {
	case "", ",":
		return ',', nil
	case "\\t", "\t", "tab", "TAB":
		return '\t', nil
	case "|", "pipe", "PIPE":
		return '|', nil
	case ";", "semicolon":
		return ';', nil
	}

	r, size := utf8.DecodeRuneInString(c.Delimiter)
	if size != len(c.Delimiter) || r == utf8.RuneError {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", c.Delimiter)
	}
	if r == '"' || r == '\r' || r == '\n' {
		return 0, fmt.Errorf("delimiter %q is not allowed", c.Delimiter)
	}
	return r, nil
}
