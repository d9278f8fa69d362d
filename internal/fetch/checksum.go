package fetch

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/afero"
)

// ErrChecksumMismatch is returned by Verify when the digest differs.
var ErrChecksumMismatch = errors.New("checksum mismatch")

// SHA256 returns the hex sha256 digest of the file at path.
func SHA256(fs afero.Fs, path string) (string, error) {
	f, err := fs.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s for checksum: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("computing checksum: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Verify compares the file's digest with expected. An empty expected
// digest skips verification.
func Verify(fs afero.Fs, path, expected string) error {
	if expected == "" {
		return nil
	}
	actual, err := SHA256(fs, path)
	if err != nil {
		return err
	}
	if !strings.EqualFold(actual, expected) {
		return fmt.Errorf("%w: expected %s, got %s", ErrChecksumMismatch, expected, actual)
	}
	return nil
}
