package converter_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ginjaninja78/csvtree/internal/config"
	"github.com/ginjaninja78/csvtree/internal/converter"
	"github.com/ginjaninja78/csvtree/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// writeInput writes body to name inside a fresh input directory and returns
// the file path together with a separate, empty output base directory.
func writeInput(t *testing.T, name, body string) (string, string) {
	t.Helper()
	inputDir := t.TempDir()
	path := filepath.Join(inputDir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path, t.TempDir()
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// listTree returns every file under root with its content, keyed by
// slash-separated path relative to root.
func listTree(t *testing.T, root string) map[string]string {
	t.Helper()
	tree := map[string]string{}
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if d.IsDir() {
			tree[filepath.ToSlash(rel)+"/"] = ""
			return nil
		}
		tree[filepath.ToSlash(rel)] = readFile(t, path)
		return nil
	})
	require.NoError(t, err)
	return tree
}

func TestRun_SingleRow(t *testing.T) {
	input, base := writeInput(t, "grades.csv", "Category,Test,Expected\nMath,test1.csv,PASS\n")

	result, err := converter.New(input, nil, converter.WithBaseDir(base)).Run()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(base, "grades"), result.OutputRoot)
	assert.Equal(t, 1, result.RecordsProcessed)
	assert.Equal(t, 1, result.DirectoriesCreated)
	assert.Equal(t, "PASS", readFile(t, filepath.Join(base, "grades", "Math", "test1.txt")))
}

func TestRun_TwoCategories(t *testing.T) {
	input, base := writeInput(t, "grades.csv",
		"Category,Test,Expected\nMath,test1.csv,PASS\nScience,test2.csv,FAIL\n")

	result, err := converter.New(input, nil, converter.WithBaseDir(base)).Run()
	require.NoError(t, err)
	assert.Equal(t, 2, result.DirectoriesCreated)

	assert.Equal(t, map[string]string{
		"./":                       "",
		"grades/":                  "",
		"grades/Math/":             "",
		"grades/Math/test1.txt":    "PASS",
		"grades/Science/":          "",
		"grades/Science/test2.txt": "FAIL",
	}, listTree(t, base))
}

func TestRun_ContentIsVerbatim(t *testing.T) {
	expected := "  line one, with comma\nline \"two\"\n\n"
	input, base := writeInput(t, "suite.csv",
		"Category,Test,Expected\nparser,case01.pas,\"  line one, with comma\nline \"\"two\"\"\n\n\"\n")

	_, err := converter.New(input, nil, converter.WithBaseDir(base)).Run()
	require.NoError(t, err)
	assert.Equal(t, expected, readFile(t, filepath.Join(base, "suite", "parser", "case01.txt")))
}

func TestRun_ExtraColumnsIgnored(t *testing.T) {
	input, base := writeInput(t, "grades.csv",
		"Id,Category,Notes,Test,Expected\n7,Math,ignored,test1.csv,PASS\n")

	_, err := converter.New(input, nil, converter.WithBaseDir(base)).Run()
	require.NoError(t, err)
	assert.Equal(t, "PASS", readFile(t, filepath.Join(base, "grades", "Math", "test1.txt")))
}

func TestRun_OutputRootIgnoresInputDirectory(t *testing.T) {
	inputDir := filepath.Join(t.TempDir(), "nested", "deeper")
	require.NoError(t, os.MkdirAll(inputDir, 0755))
	input := filepath.Join(inputDir, "results.v2.csv")
	require.NoError(t, os.WriteFile(input, []byte("Category,Test,Expected\nA,x.csv,1\n"), 0644))
	base := t.TempDir()

	result, err := converter.New(input, nil, converter.WithBaseDir(base)).Run()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "results.v2"), result.OutputRoot)
	assert.FileExists(t, filepath.Join(base, "results.v2", "A", "x.txt"))
}

func TestRun_LastWriteWins(t *testing.T) {
	input, base := writeInput(t, "grades.csv",
		"Category,Test,Expected\nMath,test1.csv,FIRST\nMath,test1.abc,SECOND\n")

	result, err := converter.New(input, nil, converter.WithBaseDir(base)).Run()
	require.NoError(t, err)
	assert.Equal(t, 2, result.RecordsProcessed)
	assert.Equal(t, 1, result.DirectoriesCreated)

	entries, err := os.ReadDir(filepath.Join(base, "grades", "Math"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "SECOND", readFile(t, filepath.Join(base, "grades", "Math", "test1.txt")))
}

func TestRun_Idempotent(t *testing.T) {
	input, base := writeInput(t, "grades.csv",
		"Category,Test,Expected\nMath,test1.csv,PASS\nScience,test2.csv,FAIL\n")

	_, err := converter.New(input, nil, converter.WithBaseDir(base)).Run()
	require.NoError(t, err)
	first := listTree(t, base)

	result, err := converter.New(input, nil, converter.WithBaseDir(base)).Run()
	require.NoError(t, err)
	assert.Equal(t, 0, result.DirectoriesCreated)
	assert.Equal(t, first, listTree(t, base))
}

func TestRun_OverwritesLongerExistingFile(t *testing.T) {
	input, base := writeInput(t, "grades.csv", "Category,Test,Expected\nMath,test1.csv,OK\n")
	dir := filepath.Join(base, "grades", "Math")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "test1.txt"), []byte("stale and much longer"), 0644))

	_, err := converter.New(input, nil, converter.WithBaseDir(base)).Run()
	require.NoError(t, err)
	assert.Equal(t, "OK", readFile(t, filepath.Join(dir, "test1.txt")))
}

func TestRun_FixedLengthTruncation(t *testing.T) {
	input, base := writeInput(t, "grades.csv",
		"Category,Test,Expected\nA,test.json,long\nA,ab,short\n")

	_, err := converter.New(input, nil, converter.WithBaseDir(base)).Run()
	require.NoError(t, err)

	assert.Equal(t, "long", readFile(t, filepath.Join(base, "grades", "A", "test..txt")))
	assert.Equal(t, "short", readFile(t, filepath.Join(base, "grades", "A", ".txt")))
}

func TestRun_MissingColumnStopsWithoutRollback(t *testing.T) {
	input, base := writeInput(t, "grades.csv",
		"Category,Test,Expected\nMath,test1.csv,PASS\nScience,test2.csv\nArt,test3.csv,PASS\n")

	result, err := converter.New(input, nil, converter.WithBaseDir(base)).Run()
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrMissingField)

	var recErr *converter.RecordError
	require.True(t, errors.As(err, &recErr))
	assert.Equal(t, 3, recErr.Row)
	assert.Equal(t, "Expected", recErr.Column)

	assert.Equal(t, 1, result.RecordsProcessed)
	assert.Equal(t, "PASS", readFile(t, filepath.Join(base, "grades", "Math", "test1.txt")))
	assert.DirExists(t, filepath.Join(base, "grades", "Science"))
	assert.NoFileExists(t, filepath.Join(base, "grades", "Science", "test2.txt"))
	assert.NoDirExists(t, filepath.Join(base, "grades", "Art"))
}

func TestRun_MissingHeaderColumn(t *testing.T) {
	input, base := writeInput(t, "grades.csv", "Group,Test,Expected\nMath,test1.csv,PASS\n")

	_, err := converter.New(input, nil, converter.WithBaseDir(base)).Run()
	require.Error(t, err)

	var recErr *converter.RecordError
	require.True(t, errors.As(err, &recErr))
	assert.Equal(t, "Category", recErr.Column)
	assert.NoDirExists(t, filepath.Join(base, "grades"))
}

func TestRun_MissingInput(t *testing.T) {
	base := t.TempDir()
	input := filepath.Join(t.TempDir(), "absent.csv")

	_, err := converter.New(input, nil, converter.WithBaseDir(base)).Run()
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.NoDirExists(t, filepath.Join(base, "absent"))
}

func TestRun_HeaderOnlyWritesNothing(t *testing.T) {
	input, base := writeInput(t, "grades.csv", "Category,Test,Expected\n")

	result, err := converter.New(input, nil, converter.WithBaseDir(base)).Run()
	require.NoError(t, err)
	assert.Equal(t, 0, result.RecordsProcessed)
	assert.NoDirExists(t, filepath.Join(base, "grades"))
}

func TestRun_CategoryBlockedByFile(t *testing.T) {
	input, base := writeInput(t, "grades.csv", "Category,Test,Expected\nMath,test1.csv,PASS\n")
	require.NoError(t, os.MkdirAll(filepath.Join(base, "grades"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(base, "grades", "Math"), []byte("file"), 0644))

	_, err := converter.New(input, nil, converter.WithBaseDir(base)).Run()
	require.Error(t, err)

	var recErr *converter.RecordError
	require.True(t, errors.As(err, &recErr))
	assert.Equal(t, 2, recErr.Row)
	assert.Empty(t, recErr.Column)
}

func TestRun_CustomSettings(t *testing.T) {
	input, base := writeInput(t, "golden.tsv", "Suite\tCase\tOutput\nlexer\tcase1.in\thello\n")

	settings := config.Default()
	settings.CategoryColumn = "Suite"
	settings.TestColumn = "Case"
	settings.ExpectedColumn = "Output"
	settings.TrimLength = 3
	settings.OutputSuffix = ".out"
	settings.CSVSettings.Delimiter = "tab"

	_, err := converter.New(input, settings, converter.WithBaseDir(base)).Run()
	require.NoError(t, err)
	assert.Equal(t, "hello", readFile(t, filepath.Join(base, "golden", "lexer", "case1.out")))
}

func TestRun_Workbook(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"Category", "Test", "Expected"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"Math", "test1.csv", "PASS"}))
	input := filepath.Join(t.TempDir(), "grades.xlsx")
	require.NoError(t, f.SaveAs(input))
	base := t.TempDir()

	_, err := converter.New(input, nil, converter.WithBaseDir(base)).Run()
	require.NoError(t, err)
	assert.Equal(t, "PASS", readFile(t, filepath.Join(base, "grades", "Math", "test1.txt")))
}

func TestRun_VerboseLogging(t *testing.T) {
	input, base := writeInput(t, "grades.csv", "Category,Test,Expected\nMath,test1.csv,PASS\n")

	var quiet, loud bytes.Buffer
	_, err := converter.New(input, nil,
		converter.WithBaseDir(base),
		converter.WithLogger(converter.NewLogger(&quiet, false, "run-1")),
	).Run()
	require.NoError(t, err)
	assert.Empty(t, quiet.String())

	_, err = converter.New(input, nil,
		converter.WithBaseDir(base),
		converter.WithLogger(converter.NewLogger(&loud, true, "run-2")),
	).Run()
	require.NoError(t, err)
	assert.Contains(t, loud.String(), "test1.txt")
	assert.Contains(t, loud.String(), "run-2")
}
