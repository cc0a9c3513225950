package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths is the resolved directory layout of a running server. Everything
// that touches the filesystem goes through it, so exactly one place decides
// where files live.
type Paths struct {
	ExecutableDir string
	DataDir       string
	ReportsDir    string
	LogsDir       string
}

// NewPaths resolves the application paths from configuration. Relative
// directories are anchored at the executable location, never the current
// working directory, so the server behaves the same no matter where it is
// launched from.
func NewPaths(cfg *Config) (*Paths, error) {
	root, err := executableDir()
	if err != nil {
		return nil, err
	}

	resolve := func(dir string) string {
		if filepath.IsAbs(dir) {
			return dir
		}
		return filepath.Join(root, dir)
	}

	return &Paths{
		ExecutableDir: root,
		DataDir:       resolve(cfg.Data.Dir),
		ReportsDir:    resolve(cfg.Data.ReportsDir),
		LogsDir:       resolve(filepath.Dir(cfg.Logging.FilePath)),
	}, nil
}

// executableDir locates the directory holding the running binary, with
// symlinks resolved so a linked install anchors at the real location.
func executableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locate executable: %w", err)
	}

	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return "", fmt.Errorf("resolve executable symlinks: %w", err)
	}
	return filepath.Dir(exe), nil
}

// EnsureWritable creates the writable directories if they don't exist.
// The data directory is not created here: it must already contain the
// dataset inputs, and creating it empty would hide a deployment mistake.
func (p *Paths) EnsureWritable() error {
	for _, dir := range []string{p.ReportsDir, p.LogsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
		slog.Debug("directory ready", slog.String("path", dir))
	}
	return nil
}

// DataPath locates a dataset input file.
func (p *Paths) DataPath(filename string) string {
	return filepath.Join(p.DataDir, filename)
}

// ReportPath locates a generated report file.
func (p *Paths) ReportPath(filename string) string {
	return filepath.Join(p.ReportsDir, filename)
}

// LogPath locates a log file.
func (p *Paths) LogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}
