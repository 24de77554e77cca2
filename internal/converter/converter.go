// =============================================================================
// csvtree - Converter Module
// =============================================================================
//
// This module contains the core conversion logic. It turns one input table
// into a directory tree of text files:
//
//   <output root>/<Category>/<Test minus its last 4 characters>.txt
//
// CONVERSION PIPELINE:
//   1. Derive the output root from the input file's base name
//   2. Parse the whole input table into memory
//   3. For each record, in file order:
//      a. Ensure <output root>/<Category> exists
//      b. Derive the output file name from Test
//      c. Write Expected verbatim to the file, replacing any previous content
//
// FAILURE MODEL:
//   The first error stops the run. Directories and files written for earlier
//   records are left in place; there is no rollback.
//
// =============================================================================

package converter

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/ginjaninja78/csvtree/internal/config"
	"github.com/ginjaninja78/csvtree/internal/csvparser"
	"github.com/ginjaninja78/csvtree/internal/types"
	"github.com/ginjaninja78/csvtree/internal/xlsxparser"
	"github.com/ginjaninja78/csvtree/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result summarizes a conversion run.
type Result struct {
	// FilePath is the path to the input file.
	FilePath string

	// OutputRoot is the directory the tree was written under.
	OutputRoot string

	// RecordsProcessed counts records whose file was written.
	RecordsProcessed int

	// DirectoriesCreated counts category directories created by this run.
	// Directories that already existed are not counted.
	DirectoriesCreated int

	// ProcessingTime is the wall time of the run.
	ProcessingTime time.Duration
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Converter converts a single input table into a directory tree.
type Converter struct {
	// inputPath is the path to the input table.
	inputPath string

	// baseDir is the directory the output root is created in.
	baseDir string

	settings *config.Settings
	logger   Logger
}

// Option configures a Converter.
type Option func(*Converter)

// WithBaseDir places the output root under dir instead of the working
// directory.
func WithBaseDir(dir string) Option {
	return func(c *Converter) {
		c.baseDir = dir
	}
}

// WithLogger sets the logger. The default discards all output.
func WithLogger(l Logger) Option {
	return func(c *Converter) {
		c.logger = l
	}
}

// New creates a Converter for inputPath. A nil settings uses config.Default().
func New(inputPath string, settings *config.Settings, opts ...Option) *Converter {
	if settings == nil {
		settings = config.Default()
	}

	c := &Converter{
		inputPath: inputPath,
		baseDir:   ".",
		settings:  settings,
		logger:    nopLogger{},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the conversion.
//
// RETURNS:
//   - A Result describing what was written, also on failure.
//   - The first error encountered. Missing columns are reported as a
//     *RecordError wrapping types.ErrMissingField.
func (c *Converter) Run() (Result, error) {
	startTime := time.Now()

	outputRoot := filepath.Join(c.baseDir, utils.OutputRoot(c.inputPath))
	result := Result{
		FilePath:   c.inputPath,
		OutputRoot: outputRoot,
	}

	c.logger.Info("Processing file: %s", c.inputPath)

	table, err := c.loadTable()
	if err != nil {
		return result, fmt.Errorf("failed to parse %s: %w", c.inputPath, err)
	}

	c.logger.Debug("Parsed %d record(s) with columns %v", len(table.Records), table.Headers)

	for _, record := range table.Records {
		if err := c.convertRecord(outputRoot, record, &result); err != nil {
			result.ProcessingTime = time.Since(startTime)
			return result, err
		}
	}

	result.ProcessingTime = time.Since(startTime)
	c.logger.Info("Wrote %d file(s) under %s in %s", result.RecordsProcessed, outputRoot, result.ProcessingTime)

	return result, nil
}

// loadTable picks the reader by file extension. Anything that is not a
// workbook is read as CSV.
func (c *Converter) loadTable() (*types.Table, error) {
	ext := strings.ToLower(filepath.Ext(c.inputPath))
	if slices.Contains(xlsxparser.Extensions, ext) {
		return xlsxparser.Parse(c.inputPath)
	}
	return csvparser.Parse(c.inputPath, c.settings.CSVSettings)
}

// convertRecord writes one record's file. The category directory is ensured
// before the Test and Expected columns are looked up, so a record missing
// either still leaves its directory behind.
func (c *Converter) convertRecord(outputRoot string, record types.Record, result *Result) error {
	category, err := c.lookup(record, c.settings.CategoryColumn)
	if err != nil {
		return err
	}

	targetDir := filepath.Join(outputRoot, category)
	created, err := utils.EnsureDir(targetDir)
	if err != nil {
		return &RecordError{Row: record.Row, Err: err}
	}
	if created {
		result.DirectoriesCreated++
		c.logger.Debug("Created directory %s", targetDir)
	}

	test, err := c.lookup(record, c.settings.TestColumn)
	if err != nil {
		return err
	}

	expected, err := c.lookup(record, c.settings.ExpectedColumn)
	if err != nil {
		return err
	}

	fileName := utils.TrimmedFileName(test, c.settings.TrimLength, c.settings.OutputSuffix)
	target := filepath.Join(targetDir, fileName)

	if err := utils.WriteFile(target, expected); err != nil {
		return &RecordError{Row: record.Row, Err: err}
	}

	result.RecordsProcessed++
	c.logger.Debug("Wrote %s (%d bytes)", target, len(expected))

	return nil
}

func (c *Converter) lookup(record types.Record, column string) (string, error) {
	value, err := record.Get(column)
	if err != nil {
		return "", &RecordError{Row: record.Row, Column: column, Err: err}
	}
	return value, nil
}
