package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/atomic-reactor/arcli/internal/branding"
)

// StatusError is returned when a server answers with a non-2xx status.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s returned status %d", e.URL, e.StatusCode)
}

// Progress receives the byte count downloaded so far and the expected
// total (-1 when unknown).
type Progress func(done, total int64)

// Downloader fetches URLs to files.
type Downloader struct {
	client   *http.Client
	fs       afero.Fs
	progress Progress
}

// Option configures a Downloader.
type Option func(*Downloader)

// WithProgress reports download progress to fn.
func WithProgress(fn Progress) Option {
	return func(d *Downloader) { d.progress = fn }
}

// NewDownloader returns a Downloader writing to fs. A nil client uses
// http.DefaultClient.
func NewDownloader(client *http.Client, fs afero.Fs, opts ...Option) *Downloader {
	if client == nil {
		client = http.DefaultClient
	}
	d := &Downloader{client: client, fs: fs}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Download streams url into dest, creating parent directories, and returns
// the number of bytes written.
func (d *Downloader) Download(ctx context.Context, url, dest string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("creating download request: %w", err)
	}
	req.Header.Set("User-Agent", branding.CLIName())

	resp, err := d.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("downloading %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	if err := d.fs.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return 0, fmt.Errorf("creating download directory: %w", err)
	}
	f, err := d.fs.Create(dest)
	if err != nil {
		return 0, fmt.Errorf("creating download file: %w", err)
	}
	defer f.Close()

	total := resp.ContentLength
	var downloaded int64
	buf := make([]byte, 32*1024)
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			if _, writeErr := f.Write(buf[:n]); writeErr != nil {
				return downloaded, fmt.Errorf("writing download: %w", writeErr)
			}
			downloaded += int64(n)
			if d.progress != nil {
				d.progress(downloaded, total)
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return downloaded, fmt.Errorf("reading download stream: %w", readErr)
		}
	}

	return downloaded, nil
}
