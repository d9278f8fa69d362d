package fetch

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Extract unpacks a zip or tar.gz archive into destDir, dropping the first
// strip path components of every entry. Entries that would land outside
// destDir are rejected.
func Extract(fs afero.Fs, archivePath, destDir string, strip int) error {
	f, err := fs.Open(archivePath)
	if err != nil {
		return fmt.Errorf("opening archive: %w", err)
	}
	defer f.Close()

	magic := make([]byte, 4)
	n, _ := io.ReadFull(f, magic)
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewinding archive: %w", err)
	}

	if bytes.HasPrefix(magic[:n], []byte("PK")) {
		info, err := f.Stat()
		if err != nil {
			return fmt.Errorf("reading archive size: %w", err)
		}
		return extractZip(fs, f, info.Size(), destDir, strip)
	}
	return extractTarGz(fs, f, destDir, strip)
}

func extractTarGz(fs afero.Fs, r io.Reader, destDir string, strip int) error {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return fmt.Errorf("creating gzip reader: %w", err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading tar entry: %w", err)
		}

		target, ok, err := entryPath(destDir, hdr.Name, strip)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := fs.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("creating directory %s: %w", target, err)
			}
		case tar.TypeReg:
			if err := writeEntry(fs, target, tr, os.FileMode(hdr.Mode).Perm()); err != nil {
				return err
			}
		}
	}
}

func extractZip(fs afero.Fs, r io.ReaderAt, size int64, destDir string, strip int) error {
	// Unsafe names are rejected per entry below.
	zr, err := zip.NewReader(r, size)
	if err != nil && !errors.Is(err, zip.ErrInsecurePath) {
		return fmt.Errorf("opening zip archive: %w", err)
	}

	for _, zf := range zr.File {
		target, ok, err := entryPath(destDir, zf.Name, strip)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}

		if zf.FileInfo().IsDir() {
			if err := fs.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("creating directory %s: %w", target, err)
			}
			continue
		}

		rc, err := zf.Open()
		if err != nil {
			return fmt.Errorf("opening zip entry %s: %w", zf.Name, err)
		}
		perm := zf.Mode().Perm()
		if perm == 0 {
			perm = 0o644
		}
		err = writeEntry(fs, target, rc, perm)
		rc.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

// entryPath maps an archive entry name to its destination. ok is false for
// entries consumed entirely by strip.
func entryPath(destDir, name string, strip int) (string, bool, error) {
	clean := path.Clean(strings.ReplaceAll(name, "\\", "/"))
	parts := strings.Split(strings.TrimPrefix(clean, "/"), "/")
	if len(parts) <= strip {
		return "", false, nil
	}
	rel := filepath.FromSlash(path.Join(parts[strip:]...))
	if rel == "." || rel == "" {
		return "", false, nil
	}

	target := filepath.Join(destDir, rel)
	if !strings.HasPrefix(target, filepath.Clean(destDir)+string(filepath.Separator)) {
		return "", false, fmt.Errorf("archive entry %s escapes destination", name)
	}
	return target, true, nil
}

func writeEntry(fs afero.Fs, target string, r io.Reader, perm os.FileMode) error {
	if err := fs.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", target, err)
	}
	out, err := fs.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return fmt.Errorf("creating %s: %w", target, err)
	}
	defer out.Close()
	if _, err := io.Copy(out, r); err != nil {
		return fmt.Errorf("extracting %s: %w", target, err)
	}
	return nil
}
