package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// errColumnMissing is wrapped into load errors when a referenced column is
// absent from a file's header. Column presence is the only schema validation
// the loader performs.
var errColumnMissing = fmt.Errorf("required column missing")

// table is a parsed CSV file: a header index and the data rows. Rows may be
// ragged; cell access is bounds tolerant so short rows read as empty cells.
type table struct {
	cols map[string]int
	rows [][]string
}

// readTable parses comma separated data with a header row. Field counts are
// not enforced, matching the tolerant posture of the loader: short rows read
// as empty cells, long rows carry ignored extras.
func readTable(r io.Reader) (*table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("read csv: empty file, no header row")
	}

	cols := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		if i == 0 {
			name = strings.TrimPrefix(name, "\uFEFF")
		}
		cols[normalizeColumn(name)] = i
	}

	return &table{cols: cols, rows: records[1:]}, nil
}

// normalizeColumn upcases and trims a header cell so lookups are insensitive
// to the source files' mixed casing (PTS_home, SEASON_ID, Nickname).
func normalizeColumn(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// require fails when any of the named columns is absent from the header.
func (t *table) require(names ...string) error {
	for _, name := range names {
		if _, ok := t.cols[normalizeColumn(name)]; !ok {
			return fmt.Errorf("%w: %s", errColumnMissing, name)
		}
	}
	return nil
}

// cell returns the named column of a row, empty when the row is too short.
func (t *table) cell(row []string, name string) string {
	idx, ok := t.cols[normalizeColumn(name)]
	if !ok || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// intCell binds an integer identity column. The second return reports
// whether the cell held a usable integer.
func (t *table) intCell(row []string, name string) (int64, bool) {
	s := strings.TrimSpace(t.cell(row, name))
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		// Exported CSVs occasionally render whole numbers as "123.0".
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil || f != float64(int64(f)) {
			return 0, false
		}
		return int64(f), true
	}
	return v, true
}

// floatCell binds a numeric column leniently: junk reads as zero. Used only
// for ranking columns, which are bound at load and never cleaned.
func (t *table) floatCell(row []string, name string) float64 {
	v, _ := strconv.ParseFloat(strings.TrimSpace(t.cell(row, name)), 64)
	return v
}
