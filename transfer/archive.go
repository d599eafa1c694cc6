package transfer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zip"
	"go.uber.org/zap"

	"github.com/rat/modsync/artifact"
	"github.com/rat/modsync/log"
)

// ArchiveReport describes the outcome of TransferArchive.
type ArchiveReport struct {
	// Backup is where the previous mods directory was moved, empty if there was none.
	Backup    string
	Extracted []string
	// Unsafe entries were skipped because they would escape the mods directory.
	Unsafe []string
	// Ignored counts entries without an allowed extension.
	Ignored int
}

// TransferArchive downloads and verifies an archive, then replaces the mods directory with
// its allowed entries. A failed download or verification leaves the mods directory untouched.
func (m *Manager) TransferArchive(ctx context.Context, rawURL, expected string) (report ArchiveReport, err error) {
	release, err := m.acquire(ctx)
	if err != nil {
		return report, err
	}
	defer release()
	start := m.clock.Now()
	defer func() {
		transfers.WithLabelValues("archive", resultLabel(err)).Inc()
		duration.WithLabelValues("archive").Observe(m.clock.Since(start).Seconds())
	}()

	tempDir := m.cfg.TempDir
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	archive := filepath.Join(tempDir, "modsync_archive-"+strconv.FormatInt(m.clock.Now().UnixNano(), 10)+".zip")
	m.logger.Info("downloading archive", log.ZContext(ctx), zap.String("url", rawURL))
	if _, err := m.fetch(ctx, rawURL, archive, expected, 0); err != nil {
		return report, fmt.Errorf("download archive: %w", err)
	}
	defer func() {
		if err := m.fs.Remove(archive); err != nil && !errors.Is(err, fs.ErrNotExist) {
			m.logger.Warn("failed to remove archive", zap.String("path", archive), zap.Error(err))
		}
	}()

	if report.Backup, err = m.backupModsDir(); err != nil {
		return report, err
	}
	if report.Backup != "" {
		m.logger.Info("backed up mods directory", log.ZContext(ctx), zap.String("dir", report.Backup))
	}
	if err := m.fs.MkdirAll(m.cfg.ModsDir, 0o700); err != nil {
		return report, fmt.Errorf("create mods dir %s: %w", m.cfg.ModsDir, err)
	}
	if err := m.extract(ctx, archive, &report); err != nil {
		return report, err
	}
	m.logger.Info("archive extracted",
		log.ZContext(ctx),
		zap.Int("extracted", len(report.Extracted)),
		zap.Int("unsafe", len(report.Unsafe)),
		zap.Int("ignored", report.Ignored),
	)
	return report, nil
}

// backupModsDir renames an existing mods directory to a timestamped sibling.
func (m *Manager) backupModsDir() (string, error) {
	dir := filepath.Clean(m.cfg.ModsDir)
	if _, err := m.fs.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		return "", nil
	} else if err != nil {
		return "", fmt.Errorf("stat mods dir %s: %w", dir, err)
	}
	backup := dir + "_backup_" + strconv.FormatInt(m.clock.Now().UnixMilli(), 10)
	if err := m.fs.Rename(dir, backup); err != nil {
		return "", fmt.Errorf("backup %s to %s: %w", dir, backup, err)
	}
	return backup, nil
}

func (m *Manager) allowed(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range m.cfg.AllowedExtensions {
		if strings.HasSuffix(lower, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}

func (m *Manager) extract(ctx context.Context, archive string, report *ArchiveReport) error {
	f, err := m.fs.Open(archive)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat archive: %w", err)
	}
	// the reader is still usable when it only reports insecure names, those are checked per entry
	zr, err := zip.NewReader(f, info.Size())
	if zr == nil {
		return fmt.Errorf("read archive: %w", err)
	} else if err != nil {
		m.logger.Warn("archive has insecure entries", log.ZContext(ctx), zap.Error(err))
	}
	for _, entry := range zr.File {
		if err := ctx.Err(); err != nil {
			return err
		}
		if entry.FileInfo().IsDir() || strings.HasSuffix(entry.Name, "/") {
			continue
		}
		target, err := artifact.SafeJoin(m.cfg.ModsDir, entry.Name)
		if err != nil {
			m.logger.Warn("skipping unsafe archive entry", log.ZContext(ctx), zap.String("entry", entry.Name))
			extractedEntries.WithLabelValues("unsafe").Inc()
			report.Unsafe = append(report.Unsafe, entry.Name)
			continue
		}
		if !m.allowed(entry.Name) {
			extractedEntries.WithLabelValues("ignored").Inc()
			report.Ignored++
			continue
		}
		if err := m.extractEntry(entry, target); err != nil {
			return fmt.Errorf("extract %s: %w", entry.Name, err)
		}
		extractedEntries.WithLabelValues("extracted").Inc()
		report.Extracted = append(report.Extracted, entry.Name)
		m.logger.Debug("extracted entry", log.ZContext(ctx), zap.String("entry", entry.Name))
	}
	return nil
}

func (m *Manager) extractEntry(entry *zip.File, target string) error {
	rc, err := entry.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	staged, err := artifact.Stage(m.fs, target, "", m.cfg.MaxTransferSize)
	if err != nil {
		return err
	}
	if _, err := io.Copy(staged, rc); err != nil {
		return errors.Join(err, staged.Discard())
	}
	_, err = staged.Commit()
	return err
}
