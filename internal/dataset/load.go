package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	domainerrors "github.com/listenupapp/attendance-insights/internal/errors"
)

// naValues are the cell spellings treated as missing, matching what the
// survey export tooling writes for blank answers.
//
//nolint:gochecknoglobals // Static lookup table
var naValues = []string{
	"", "#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
	"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None",
	"n/a", "nan", "null",
}

const byteOrderMark = "\ufeff"

// Load reads a comma-delimited file with a header row.
// Every name in required must be present after header trimming.
func Load(path string, required []string) (*Dataset, error) {
	f, err := os.Open(path) //#nosec G304 -- Dataset path comes from operator config
	if err != nil {
		return nil, domainerrors.Wrapf(err, domainerrors.CodeDatasetUnavailable, "failed to open dataset %s", path)
	}
	defer f.Close()

	return Read(f, required)
}

// Read parses CSV from r. Column names are trimmed of surrounding whitespace
// and a leading byte order mark; all values are kept as text. Rows shorter
// than the header are padded with missing cells. A header with no rows
// yields an empty dataset.
func Read(r io.Reader, required []string) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeDatasetUnavailable, "failed to parse dataset")
	}
	if len(records) == 0 {
		return nil, domainerrors.DatasetUnavailable("dataset has no header row")
	}

	columns := make([]string, len(records[0]))
	for i, name := range records[0] {
		columns[i] = cleanColumnName(name)
	}
	// Checked before gota, which renames repeated headers.
	if err := checkDuplicateColumns(columns); err != nil {
		return nil, err
	}

	body := records[1:]
	for i, row := range body {
		switch {
		case len(row) > len(columns):
			return nil, domainerrors.DatasetUnavailable(
				fmt.Sprintf("line %d has %d fields, expected %d", i+2, len(row), len(columns)))
		case len(row) < len(columns):
			padded := make([]string, len(columns))
			copy(padded, row)
			body[i] = padded
		}
	}

	rows, err := loadRows(columns, body)
	if err != nil {
		return nil, err
	}

	ds, err := New(columns, rows)
	if err != nil {
		return nil, err
	}

	if err := ds.Require(required...); err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeDatasetUnavailable,
			fmt.Sprintf("dataset is missing a required column (have %d columns)", len(columns)))
	}

	return ds, nil
}

// loadRows runs the records through a string-typed gota frame so NA
// spellings become missing cells.
func loadRows(columns []string, body [][]string) ([][]Cell, error) {
	if len(body) == 0 {
		return nil, nil
	}

	df := dataframe.LoadRecords(append([][]string{columns}, body...),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(naValues),
	)
	if df.Err != nil {
		return nil, domainerrors.Wrap(df.Err, domainerrors.CodeDatasetUnavailable, "failed to parse dataset")
	}

	rows := make([][]Cell, df.Nrow())
	for i := range rows {
		rows[i] = make([]Cell, df.Ncol())
		for j := range rows[i] {
			elem := df.Elem(i, j)
			if elem.IsNA() || elem.String() == "" {
				rows[i][j] = Cell{Missing: true}
				continue
			}
			rows[i][j] = Cell{Value: elem.String()}
		}
	}
	return rows, nil
}

func checkDuplicateColumns(columns []string) error {
	seen := make(map[string]struct{}, len(columns))
	for _, name := range columns {
		if _, dup := seen[name]; dup {
			return domainerrors.DatasetUnavailable(fmt.Sprintf("duplicate column %q", name))
		}
		seen[name] = struct{}{}
	}
	return nil
}

func cleanColumnName(name string) string {
	return strings.TrimSpace(strings.TrimPrefix(name, byteOrderMark))
}
