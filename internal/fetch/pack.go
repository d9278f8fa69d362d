package fetch

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"
)

// Excluded names are skipped by CopyDir, ZipDir and TarGzDir.
var Excluded = map[string]bool{
	"node_modules": true,
	".git":         true,
	".DS_Store":    true,
}

// files lists regular files under root as slash-separated relative paths,
// skipping Excluded names, in lexical order.
func files(fs afero.Fs, root string) ([]string, error) {
	var out []string
	err := afero.Walk(fs, root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if p != root && Excluded[info.Name()] {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	sort.Strings(out)
	return out, err
}

// ZipDir writes the contents of srcDir into a zip archive at dest.
func ZipDir(fs afero.Fs, srcDir, dest string) error {
	list, err := files(fs, srcDir)
	if err != nil {
		return fmt.Errorf("listing %s: %w", srcDir, err)
	}
	if err := fs.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", dest, err)
	}
	out, err := fs.Create(dest)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dest, err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	for _, rel := range list {
		w, err := zw.Create(rel)
		if err != nil {
			return fmt.Errorf("adding %s: %w", rel, err)
		}
		if err := copyInto(fs, w, filepath.Join(srcDir, filepath.FromSlash(rel))); err != nil {
			return err
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finishing %s: %w", dest, err)
	}
	return nil
}

// TarGzDir writes the contents of srcDir into a gzipped tarball at dest.
// Entry names are prefixed with prefix when it is non-empty.
func TarGzDir(fs afero.Fs, srcDir, dest, prefix string) error {
	list, err := files(fs, srcDir)
	if err != nil {
		return fmt.Errorf("listing %s: %w", srcDir, err)
	}
	if err := fs.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", dest, err)
	}
	out, err := fs.Create(dest)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dest, err)
	}
	defer out.Close()

	gw := gzip.NewWriter(out)
	tw := tar.NewWriter(gw)
	for _, rel := range list {
		src := filepath.Join(srcDir, filepath.FromSlash(rel))
		info, err := fs.Stat(src)
		if err != nil {
			return fmt.Errorf("reading %s: %w", src, err)
		}
		hdr := &tar.Header{
			Typeflag: tar.TypeReg,
			Name:     path.Join(prefix, rel),
			Mode:     int64(info.Mode().Perm()),
			Size:     info.Size(),
			ModTime:  info.ModTime(),
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return fmt.Errorf("adding %s: %w", rel, err)
		}
		if err := copyInto(fs, tw, src); err != nil {
			return err
		}
	}
	if err := tw.Close(); err != nil {
		return fmt.Errorf("finishing %s: %w", dest, err)
	}
	if err := gw.Close(); err != nil {
		return fmt.Errorf("finishing %s: %w", dest, err)
	}
	return nil
}

// CopyDir recursively copies src to dst, skipping Excluded names. Existing
// files in dst are overwritten.
func CopyDir(fs afero.Fs, src, dst string) error {
	list, err := files(fs, src)
	if err != nil {
		return fmt.Errorf("listing %s: %w", src, err)
	}
	if err := fs.MkdirAll(dst, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}
	for _, rel := range list {
		from := filepath.Join(src, filepath.FromSlash(rel))
		to := filepath.Join(dst, filepath.FromSlash(rel))
		if err := CopyFile(fs, from, to); err != nil {
			return err
		}
	}
	return nil
}

// CopyFile copies a single file, preserving permissions.
func CopyFile(fs afero.Fs, src, dst string) error {
	info, err := fs.Stat(src)
	if err != nil {
		return fmt.Errorf("reading %s: %w", src, err)
	}
	if err := fs.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", dst, err)
	}
	out, err := fs.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}
	defer out.Close()
	return copyInto(fs, out, src)
}

func copyInto(fs afero.Fs, w io.Writer, src string) error {
	in, err := fs.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()
	if _, err := io.Copy(w, in); err != nil {
		return fmt.Errorf("copying %s: %w", src, err)
	}
	return nil
}
