package dataset

import (
	"archive/zip"
	"fmt"
	"io"
	"path"
)

// ErrMemberNotFound reports a zip archive that does not contain the CSV
// member the loader expects. It makes the archive as unusable as a missing
// file, so it surfaces as a fatal startup error.
var ErrMemberNotFound = fmt.Errorf("archive member not found")

// archiveReader streams one member out of an open zip archive and closes
// both the member and the archive when done.
type archiveReader struct {
	io.ReadCloser
	archive *zip.ReadCloser
}

func (a *archiveReader) Close() error {
	err := a.ReadCloser.Close()
	if cerr := a.archive.Close(); err == nil {
		err = cerr
	}
	return err
}

// openArchiveCSV opens the named CSV member inside the archive at zipPath.
// Members are matched by name regardless of any folder prefix the archive
// tool added. The caller owns the returned reader.
func openArchiveCSV(zipPath, member string) (io.ReadCloser, error) {
	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, fmt.Errorf("open archive %s: %w", zipPath, err)
	}

	for _, f := range zr.File {
		if f.Name != member && path.Base(f.Name) != member {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			zr.Close()
			return nil, fmt.Errorf("open member %s in %s: %w", member, zipPath, err)
		}
		return &archiveReader{ReadCloser: rc, archive: zr}, nil
	}

	zr.Close()
	return nil, fmt.Errorf("%w: %s in %s", ErrMemberNotFound, member, zipPath)
}
