package userdata

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
)

// Ensure creates the home directory layout under root. The config file is
// written with defaultConfig only when it does not exist yet; created
// reports whether that happened. Progress lines go to w when it is non-nil.
func Ensure(fs afero.Fs, w io.Writer, root string, defaultConfig []byte) (created bool, err error) {
	if w == nil {
		w = io.Discard
	}
	for _, dir := range []string{root, LogsPath(root), CommandsPath(root), TmpPath(root)} {
		if err := ensureDir(fs, w, dir, DirPermNormal); err != nil {
			return false, err
		}
	}
	return ensureFile(fs, w, ConfigPath(root), defaultConfig, FilePermSecure)
}

// ensureDir creates a directory if it doesn't exist.
func ensureDir(fs afero.Fs, w io.Writer, path string, perm os.FileMode) error {
	if info, err := fs.Stat(path); err == nil {
		if info.IsDir() {
			return nil
		}
		return fmt.Errorf("%s exists but is not a directory", path)
	}

	if err := fs.MkdirAll(path, perm); err != nil {
		return fmt.Errorf("creating directory %s: %w", path, err)
	}
	fmt.Fprintf(w, "  [ OK ] Created %s\n", path)
	return nil
}

// ensureFile creates a file with content if it doesn't exist.
func ensureFile(fs afero.Fs, w io.Writer, path string, content []byte, perm os.FileMode) (bool, error) {
	if _, err := fs.Stat(path); err == nil {
		return false, nil
	}

	if err := afero.WriteFile(fs, path, content, perm); err != nil {
		return false, fmt.Errorf("creating file %s: %w", path, err)
	}
	fmt.Fprintf(w, "  [ OK ] Created %s\n", path)
	return true, nil
}
