package files

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"hoopsight/internal/config"
	"hoopsight/internal/dataset"
)

// Entry describes one discovered file. Path stays server-side; the JSON
// shape is what the reports endpoint returns.
type Entry struct {
	Path    string    `json:"-"`
	Name    string    `json:"name"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"modified"`
}

// Discovery resolves the dataset input files and enumerates generated
// report files.
type Discovery struct {
	paths *config.Paths
}

func NewDiscovery(paths *config.Paths) *Discovery {
	return &Discovery{paths: paths}
}

// DatasetInputNames lists the dataset input files the loader reads, in load
// order.
func DatasetInputNames() []string {
	return []string{
		dataset.PlayersFile,
		dataset.TeamsFile,
		dataset.GamesArchive,
		dataset.LinesArchive,
		dataset.RankingArchive,
	}
}

// DatasetInputs stats the five dataset inputs and returns the ones present,
// in loader order. Missing inputs are simply absent from the result; startup
// validation is the place that treats them as fatal.
func (d *Discovery) DatasetInputs() []Entry {
	names := DatasetInputNames()

	inputs := make([]Entry, 0, len(names))
	for _, name := range names {
		full := d.paths.DataPath(name)
		info, err := os.Stat(full)
		if err != nil || info.IsDir() {
			continue
		}
		inputs = append(inputs, Entry{
			Path:    full,
			Name:    name,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
	return inputs
}

// ListReportFiles enumerates the CSV and Excel files in the reports
// directory, newest first. A reports directory that does not exist yet reads
// as empty rather than an error; the result is never nil.
func (d *Discovery) ListReportFiles() ([]Entry, error) {
	entries, err := os.ReadDir(d.paths.ReportsDir)
	if errors.Is(err, fs.ErrNotExist) {
		return []Entry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read reports directory %s: %w", d.paths.ReportsDir, err)
	}

	reports := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".csv" && ext != ".xlsx" {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}
		reports = append(reports, Entry{
			Path:    filepath.Join(d.paths.ReportsDir, name),
			Name:    name,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	// Newest first, name breaks ties so the order is stable.
	slices.SortFunc(reports, func(a, b Entry) int {
		if c := b.ModTime.Compare(a.ModTime); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})

	return reports, nil
}

// Latest picks the most recently modified entry. The second return
// is false for an empty list.
func Latest(entries []Entry) (Entry, bool) {
	if len(entries) == 0 {
		return Entry{}, false
	}
	latest := slices.MaxFunc(entries, func(a, b Entry) int {
		return a.ModTime.Compare(b.ModTime)
	})
	return latest, true
}
