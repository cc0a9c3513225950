package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"hoopsight/internal/config"
)

// utf8BOM prefixes exports so Excel decodes them as UTF-8.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSV persists report tables under the configured reports directory.
type CSV struct {
	paths *config.Paths
}

func NewCSV(paths *config.Paths) *CSV {
	return &CSV{paths: paths}
}

// CSVOptions configures a single WriteFile call. Append mode skips both
// the header row and the BOM, since the target file already has them.
type CSVOptions struct {
	Headers []string
	Rows    [][]string
	Append  bool
	BOM     bool
}

// WriteFile writes one CSV file. Relative names land in the reports
// directory; parent directories are created as needed.
func (c *CSV) WriteFile(name string, opts CSVOptions) error {
	target := c.resolve(name)

	slog.Info("writing csv",
		slog.String("path", target),
		slog.Int("rows", len(opts.Rows)))

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}

	mode := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if opts.Append {
		mode = os.O_CREATE | os.O_WRONLY | os.O_APPEND
	}
	f, err := os.OpenFile(target, mode, 0644)
	if err != nil {
		return fmt.Errorf("open %s: %w", target, err)
	}
	defer f.Close()

	if opts.BOM && !opts.Append {
		if _, err := f.Write(utf8BOM); err != nil {
			return fmt.Errorf("write byte order mark: %w", err)
		}
	}

	headers := opts.Headers
	if opts.Append {
		headers = nil
	}
	return writeRows(csv.NewWriter(f), headers, opts.Rows)
}

// WriteTable writes a view table to the reports directory and returns
// the full path of the written file.
func (c *CSV) WriteTable(table Table) (string, error) {
	name := table.Filename("csv")
	err := c.WriteFile(name, CSVOptions{
		Headers: table.Headers,
		Rows:    table.Rows,
		BOM:     true,
	})
	if err != nil {
		return "", fmt.Errorf("write %s table: %w", table.View, err)
	}
	return c.resolve(name), nil
}

// EncodeCSV writes a table to w as CSV with a UTF-8 BOM prefix. Used by
// the HTTP export surface where no file is involved.
func EncodeCSV(w io.Writer, table Table) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("write byte order mark: %w", err)
	}
	return writeRows(csv.NewWriter(w), table.Headers, table.Rows)
}

// writeRows emits an optional header row, then every record, and flushes.
func writeRows(cw *csv.Writer, headers []string, rows [][]string) error {
	if len(headers) > 0 {
		if err := cw.Write(headers); err != nil {
			return fmt.Errorf("write header row: %w", err)
		}
	}
	for i, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func (c *CSV) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return c.paths.ReportPath(name)
}
