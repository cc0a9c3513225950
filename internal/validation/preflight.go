package validation

import (
	"archive/zip"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"

	"hoopsight/internal/dataset"
	apierrors "hoopsight/internal/errors"
)

// Preflight checks the dataset inputs at startup and output directories
// before writing reports. Both executables run it before doing any work so
// broken installs fail fast with every problem listed at once.
type Preflight struct {
	logger *slog.Logger
}

// NewPreflight accepts a nil logger for callers outside the server, such
// as the report CLI.
func NewPreflight(logger *slog.Logger) *Preflight {
	if logger == nil {
		logger = slog.Default()
	}
	return &Preflight{logger: logger}
}

// inputSpec names one required dataset input. Archived inputs carry the CSV
// member the loader will extract.
type inputSpec struct {
	name   string
	member string
}

func requiredInputs() []inputSpec {
	return []inputSpec{
		{name: dataset.PlayersFile},
		{name: dataset.TeamsFile},
		{name: dataset.GamesArchive, member: dataset.GamesMember},
		{name: dataset.LinesArchive, member: dataset.LinesMember},
		{name: dataset.RankingArchive, member: dataset.RankingMember},
	}
}

// ValidateDataDir verifies that the data directory holds all five dataset
// inputs: plain files must be readable, archives must additionally be intact
// zip files containing the expected CSV member. Problems are collected across
// all inputs and returned as a single fatal error so a broken install is
// diagnosed in one run.
func (p *Preflight) ValidateDataDir(dir string) error {
	info, err := os.Stat(dir)
	switch {
	case os.IsNotExist(err):
		p.logger.Error("data directory does not exist", slog.String("dir", dir))
		return apierrors.NewDatasetError(dir, fmt.Sprintf("data directory %s does not exist", dir), err)
	case err != nil:
		return apierrors.NewDatasetError(dir, fmt.Sprintf("failed to stat data directory %s", dir), err)
	case !info.IsDir():
		return apierrors.NewDatasetError(dir, fmt.Sprintf("%s is not a directory", dir), nil)
	}

	inputs := requiredInputs()
	var problems []error
	for _, in := range inputs {
		full := filepath.Join(dir, in.name)
		var err error
		if in.member == "" {
			err = p.validateFile(full)
		} else {
			err = p.validateArchive(full, in.member)
		}
		if err != nil {
			p.logger.Error("dataset input failed validation",
				slog.String("file", in.name),
				slog.String("error", err.Error()))
			problems = append(problems, err)
		}
	}

	if len(problems) > 0 {
		return apierrors.NewDatasetError(dir,
			fmt.Sprintf("%d of %d dataset inputs failed validation in %s", len(problems), len(inputs), dir),
			errors.Join(problems...))
	}

	p.logger.Info("dataset inputs validated",
		slog.String("dir", dir),
		slog.Int("files", len(inputs)))
	return nil
}

// validateFile checks that path exists, is a regular file, and opens.
func (p *Preflight) validateFile(full string) error {
	name := filepath.Base(full)
	info, err := os.Stat(full)
	if os.IsNotExist(err) {
		return fmt.Errorf("%s does not exist", name)
	}
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", name, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, not a file", name)
	}

	file, err := os.Open(full)
	if err != nil {
		return fmt.Errorf("%s is not readable: %w", name, err)
	}
	file.Close()
	return nil
}

// validateArchive checks that the archive is an intact zip holding the
// expected CSV member. Members match with or without a folder prefix, the
// same rule the loader applies when extracting.
func (p *Preflight) validateArchive(full, member string) error {
	if err := p.validateFile(full); err != nil {
		return err
	}

	name := filepath.Base(full)
	zr, err := zip.OpenReader(full)
	if err != nil {
		return fmt.Errorf("%s is not a readable zip archive: %w", name, err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name == member || path.Base(f.Name) == member {
			return nil
		}
	}
	return fmt.Errorf("%s does not contain %s", name, member)
}

// EnsureOutputDir creates the output directory if needed and confirms the
// process can actually write there. MkdirAll succeeding is not enough: the
// directory may exist with read-only permissions, so a probe file is created
// and removed.
func (p *Preflight) EnsureOutputDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		p.logger.Error("cannot create output directory",
			slog.String("dir", dir),
			slog.String("error", err.Error()))
		return fmt.Errorf("create output directory %s: %w", dir, err)
	}

	probe := filepath.Join(dir, ".write_probe")
	f, err := os.Create(probe)
	if err != nil {
		p.logger.Error("output directory rejects writes",
			slog.String("dir", dir),
			slog.String("error", err.Error()))
		return fmt.Errorf("output directory %s rejects writes: %w", dir, err)
	}
	f.Close()
	os.Remove(probe)
	return nil
}
