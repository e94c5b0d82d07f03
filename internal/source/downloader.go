// Package source fetches raw MARC dumps from the publishing server.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// ErrSkipDownloadWithoutDump is returned when download is disabled but no
// local dump exists.
var ErrSkipDownloadWithoutDump = errors.New("skip_download is set but the dump is not present locally")

// DownloadConfig configures dump downloading
type DownloadConfig struct {
	BaseURL      string
	DBDir        string
	SkipDownload bool
	Client       *http.Client
	Logger       *slog.Logger
}

// Downloader handles downloading and caching dumps
type Downloader struct {
	config DownloadConfig
}

// NewDownloader creates a new dump downloader
func NewDownloader(config DownloadConfig) *Downloader {
	if config.Client == nil {
		config.Client = http.DefaultClient
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	return &Downloader{config: config}
}

// Path returns where the named dump is stored locally.
func (d *Downloader) Path(name string) string {
	return filepath.Join(d.config.DBDir, name)
}

// URL returns the remote location of the named dump.
func (d *Downloader) URL(name string) string {
	if strings.HasSuffix(d.config.BaseURL, "/") {
		return d.config.BaseURL + name
	}
	return d.config.BaseURL + "/" + name
}

// Fetch makes the named dump available locally and returns its path. With
// SkipDownload set the existing file is used as is.
func (d *Downloader) Fetch(ctx context.Context, name string) (string, error) {
	path := d.Path(name)

	if d.config.SkipDownload {
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("%w: %s", ErrSkipDownloadWithoutDump, path)
		}
		d.config.Logger.Info("Using local dump", "path", path)
		return path, nil
	}

	if err := os.MkdirAll(d.config.DBDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create db directory: %w", err)
	}

	url := d.URL(name)
	d.config.Logger.Info("Downloading dump", "url", url, "path", path)
	if err := d.downloadFile(ctx, url, path); err != nil {
		return "", fmt.Errorf("failed to download dump: %w", err)
	}

	d.config.Logger.Info("Dump downloaded successfully", "path", path)
	return path, nil
}

// downloadFile streams url into destPath through a temporary file
func (d *Downloader) downloadFile(ctx context.Context, url, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := d.config.Client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download failed with status: %d", resp.StatusCode)
	}

	tempPath := destPath + ".tmp"
	out, err := os.Create(tempPath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	written, err := io.Copy(out, resp.Body)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("download failed: %w", err)
	}

	d.config.Logger.Debug("Download complete", "bytes", written, "size_mb", written/(1024*1024))

	if err := os.Rename(tempPath, destPath); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to move file: %w", err)
	}

	return nil
}
