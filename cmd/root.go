// =============================================================================
// csvtree - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command does
// the conversion itself; 'version' is the only subcommand.
//
// COBRA CLI STRUCTURE:
//   rootCmd (csvtree <csv_file>)
//   └── versionCmd (csvtree version)
//
// EXIT CODES:
//   0 - the tree was written
//   1 - missing argument (usage on stdout) or any other failure (stderr)
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ginjaninja78/csvtree/internal/config"
	"github.com/ginjaninja78/csvtree/internal/converter"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the optional settings file.
var cfgFile string

// verbose enables debug logging on stderr when set to true.
var verbose bool

// errUsage is returned when no input file is given. The usage line has
// already been printed by the time it is returned.
var errUsage = errors.New("missing input file")

const usageLine = "Usage: csvtree <csv file>"

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "csvtree <csv_file>",
	Short: "Split a table of expected test outputs into a directory of text files",
	Long: `csvtree reads a CSV file with a header row and, for every row, writes the
row's Expected value to a text file:

  <input name without extension>/<Category>/<Test minus last 4 chars>.txt

Existing files are overwritten. Nothing is printed on success.

Example Usage:
  csvtree grades.csv        # writes grades/Math/test1.txt, ...
  csvtree -v grades.csv     # same, with debug logging on stderr`,

	// Extra arguments are ignored; only the first names the input.
	Args: cobra.ArbitraryArgs,

	SilenceUsage:  true,
	SilenceErrors: true,

	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), usageLine)
			return errUsage
		}
		return runConvert(args[0], cmd.ErrOrStderr())
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command and exits with status 1 on any error.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	// --config flag: optional YAML settings file.
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"Path to an optional settings file (column names, suffix, delimiter)",
	)

	// --verbose flag: debug logging on stderr.
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// =============================================================================
// CONVERSION
// =============================================================================

// runConvert converts inputPath into a tree under the working directory.
func runConvert(inputPath string, logOut io.Writer) error {
	settings, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	logger := converter.NewLogger(logOut, verbose, uuid.New().String())

	result, err := converter.New(inputPath, settings, converter.WithLogger(logger)).Run()
	if err != nil {
		return err
	}

	logger.Debug("%d record(s), %d new director(ies) under %s", result.RecordsProcessed, result.DirectoriesCreated, result.OutputRoot)
	return nil
}
