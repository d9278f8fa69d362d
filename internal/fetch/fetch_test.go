package fetch

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tarGz builds a gzipped tarball from name/content pairs.
func tarGz(t *testing.T, entries map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gw)
	for name, content := range entries {
		require.NoError(t, tw.WriteHeader(&tar.Header{Name: name, Mode: 0o644, Size: int64(len(content)), Typeflag: tar.TypeReg}))
		_, err := tw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gw.Close())
	return buf.Bytes()
}

func zipBytes(t *testing.T, entries map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range entries {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestDownload(t *testing.T) {
	payload := []byte("payload-bytes")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", fmt.Sprintf("%d", len(payload)))
		_, _ = w.Write(payload)
	}))
	defer server.Close()

	fs := afero.NewMemMapFs()
	var last int64
	d := NewDownloader(server.Client(), fs, WithProgress(func(done, _ int64) { last = done }))

	n, err := d.Download(context.Background(), server.URL+"/x.zip", "/tmp/dl/x.zip")
	require.NoError(t, err)
	assert.EqualValues(t, len(payload), n)
	assert.EqualValues(t, len(payload), last)

	got, err := afero.ReadFile(fs, "/tmp/dl/x.zip")
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestDownloadStatusError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	d := NewDownloader(server.Client(), afero.NewMemMapFs())
	_, err := d.Download(context.Background(), server.URL, "/x")

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusNotFound, se.StatusCode)
}

func TestVerify(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/a", []byte("abc"), 0o644))
	sum := sha256.Sum256([]byte("abc"))
	want := hex.EncodeToString(sum[:])

	got, err := SHA256(fs, "/a")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, Verify(fs, "/a", want))
	require.NoError(t, Verify(fs, "/a", ""))
	require.ErrorIs(t, Verify(fs, "/a", "deadbeef"), ErrChecksumMismatch)
}

func TestExtractTarGzStrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/dl/p.tgz", tarGz(t, map[string]string{
		"package/package.json": `{"name":"x"}`,
		"package/src/index.js": "export {}",
	}), 0o644))

	require.NoError(t, Extract(fs, "/dl/p.tgz", "/out", 1))

	b, err := afero.ReadFile(fs, "/out/src/index.js")
	require.NoError(t, err)
	assert.Equal(t, "export {}", string(b))
	ok, _ := afero.Exists(fs, "/out/package.json")
	assert.True(t, ok)
}

func TestExtractZip(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/dl/r.zip", zipBytes(t, map[string]string{
		"Reactium-master/.core/index.js": "core",
		"Reactium-master/README.md":      "readme",
	}), 0o644))

	require.NoError(t, Extract(fs, "/dl/r.zip", "/proj", 1))

	b, err := afero.ReadFile(fs, "/proj/.core/index.js")
	require.NoError(t, err)
	assert.Equal(t, "core", string(b))
}

func TestExtractRejectsTraversal(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/dl/bad.zip", zipBytes(t, map[string]string{
		"../../etc/passwd": "x",
	}), 0o644))

	err := Extract(fs, "/dl/bad.zip", "/out", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "escapes destination")
}

func TestPackRoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/src/a.txt", []byte("a"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/src/sub/b.txt", []byte("b"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/src/node_modules/dep/c.txt", []byte("c"), 0o644))

	require.NoError(t, TarGzDir(fs, "/src", "/pkg/p.tgz", "package"))
	require.NoError(t, Extract(fs, "/pkg/p.tgz", "/unpacked", 1))
	b, err := afero.ReadFile(fs, "/unpacked/sub/b.txt")
	require.NoError(t, err)
	assert.Equal(t, "b", string(b))
	ok, _ := afero.Exists(fs, "/unpacked/node_modules/dep/c.txt")
	assert.False(t, ok)

	require.NoError(t, ZipDir(fs, "/src", "/backup/core.zip"))
	require.NoError(t, Extract(fs, "/backup/core.zip", "/restored", 0))
	b, err = afero.ReadFile(fs, "/restored/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "a", string(b))
}

func TestCopyDir(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/src/x/y.txt", []byte("y"), 0o600))
	require.NoError(t, afero.WriteFile(fs, "/src/.git/HEAD", []byte("ref"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/dst/x/y.txt", []byte("old"), 0o600))

	require.NoError(t, CopyDir(fs, "/src", "/dst"))

	b, err := afero.ReadFile(fs, "/dst/x/y.txt")
	require.NoError(t, err)
	assert.Equal(t, "y", string(b))
	ok, _ := afero.Exists(fs, "/dst/.git/HEAD")
	assert.False(t, ok)
}
