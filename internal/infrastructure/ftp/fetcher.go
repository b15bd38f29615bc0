// Package ftp downloads the distributor catalogue feed from the
// configured FTP server into a local temp file.
package ftp

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jlaffaye/ftp"
	"go.uber.org/zap"

	"github.com/erp/connector/internal/domain/shared"
	"github.com/erp/connector/internal/infrastructure/config"
)

// Fetcher retrieves the catalogue feed file. Each Fetch opens a fresh
// connection; the feed runs at most a few times a day so pooling buys
// nothing.
type Fetcher struct {
	cfg    config.FTPConfig
	logger *zap.Logger
}

// NewFetcher creates a catalogue feed fetcher
func NewFetcher(cfg config.FTPConfig, logger *zap.Logger) *Fetcher {
	return &Fetcher{
		cfg:    cfg,
		logger: logger.Named("ftp.fetcher"),
	}
}

// validate reports every missing setting at once so one config round
// trip fixes the section.
func (f *Fetcher) validate() error {
	var missing []string
	if f.cfg.Host == "" {
		missing = append(missing, "host")
	}
	if f.cfg.Username == "" {
		missing = append(missing, "username")
	}
	if f.cfg.Password == "" {
		missing = append(missing, "password")
	}
	if f.cfg.Path == "" {
		missing = append(missing, "path")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: ftp settings incomplete, missing: %s",
			shared.ErrConfiguration, strings.Join(missing, ", "))
	}
	return nil
}

// Fetch downloads the catalogue feed to a temp file and returns its
// path together with a cleanup func that removes the file. Partial
// downloads are removed before the error is returned.
func (f *Fetcher) Fetch(ctx context.Context) (string, func(), error) {
	if err := f.validate(); err != nil {
		return "", nil, err
	}

	addr := f.cfg.Host
	if !strings.Contains(addr, ":") {
		addr += ":21"
	}

	f.logger.Info("Connecting to feed server", zap.String("host", addr))

	conn, err := ftp.Dial(addr,
		ftp.DialWithContext(ctx),
		ftp.DialWithTimeout(f.cfg.Timeout),
	)
	if err != nil {
		return "", nil, fmt.Errorf("%w: connect to %s: %v", shared.ErrTransfer, addr, err)
	}
	defer conn.Quit()

	if err := conn.Login(f.cfg.Username, f.cfg.Password); err != nil {
		return "", nil, fmt.Errorf("%w: ftp login: %v", shared.ErrTransfer, err)
	}

	// Size is informational only, some servers refuse SIZE
	if size, err := conn.FileSize(f.cfg.Path); err == nil {
		f.logger.Info("Catalogue feed size", zap.Int64("bytes", size))
	} else {
		f.logger.Warn("Could not determine feed size", zap.Error(err))
	}

	tmp, err := os.CreateTemp("", "catalogue-*.json")
	if err != nil {
		return "", nil, fmt.Errorf("ftp: create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	fail := func(cause error) (string, func(), error) {
		tmp.Close()
		os.Remove(tmpPath)
		return "", nil, cause
	}

	f.logger.Info("Downloading catalogue feed", zap.String("path", f.cfg.Path))

	resp, err := conn.Retr(f.cfg.Path)
	if err != nil {
		return fail(fmt.Errorf("%w: retrieve %s: %v", shared.ErrTransfer, f.cfg.Path, err))
	}

	written, err := tmp.ReadFrom(resp)
	closeErr := resp.Close()
	if err != nil {
		return fail(fmt.Errorf("%w: download %s: %v", shared.ErrTransfer, f.cfg.Path, err))
	}
	if closeErr != nil {
		return fail(fmt.Errorf("%w: download %s: %v", shared.ErrTransfer, f.cfg.Path, closeErr))
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", nil, fmt.Errorf("ftp: close temp file: %w", err)
	}

	f.logger.Info("Catalogue feed downloaded",
		zap.String("file", tmpPath),
		zap.Int64("bytes", written),
	)

	cleanup := func() {
		if err := os.Remove(tmpPath); err != nil && !os.IsNotExist(err) {
			f.logger.Warn("Could not remove downloaded feed", zap.String("file", tmpPath), zap.Error(err))
		}
	}
	return tmpPath, cleanup, nil
}
