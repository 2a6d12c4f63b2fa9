package backup

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"hotelbooker/pkg/config"
	apperrors "hotelbooker/pkg/errors"
	"hotelbooker/pkg/logger"
)

const stampLayout = "20060102_150405"

// archivePrefix namespaces every entry so a backup zip is recognizable and
// restore can ignore foreign files in hand-edited archives.
const archivePrefix = "data/"

// Service snapshots the whole data directory into timestamped zip files and
// restores from them.
type Service struct {
	dataDir   string
	backupDir string
	log       *logger.Logger
	now       func() time.Time
}

func NewService(cfg *config.Config) *Service {
	return &Service{
		dataDir:   cfg.DataDir,
		backupDir: cfg.BackupDir,
		log:       cfg.Log,
		now:       time.Now,
	}
}

func NewServiceAt(dataDir, backupDir string, log *logger.Logger) *Service {
	return &Service{dataDir: dataDir, backupDir: backupDir, log: log, now: time.Now}
}

// CreateBackup writes backup_<timestamp>.zip under the backup directory and
// returns its path.
func (s *Service) CreateBackup() (string, error) {
	if err := os.MkdirAll(s.backupDir, 0o755); err != nil {
		return "", apperrors.Internal("Failed to create backup directory", err)
	}
	path := filepath.Join(s.backupDir, "backup_"+s.now().Format(stampLayout)+".zip")
	if err := s.BackupTo(path); err != nil {
		return "", err
	}
	s.log.Info("Backup created", "path", path)
	return path, nil
}

// BackupTo zips every regular file under the data directory into targetZip.
func (s *Service) BackupTo(targetZip string) error {
	f, err := os.Create(targetZip)
	if err != nil {
		return apperrors.Internal("Failed to create backup file", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	defer zw.Close()

	err = filepath.WalkDir(s.dataDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(s.dataDir, path)
		if err != nil {
			return err
		}
		w, err := zw.Create(archivePrefix + filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		src, err := os.Open(path)
		if err != nil {
			return err
		}
		defer src.Close()
		_, err = io.Copy(w, src)
		return err
	})
	if err != nil {
		return apperrors.Internal("Failed to write backup", err)
	}
	if err := zw.Close(); err != nil {
		return apperrors.Internal("Failed to finalize backup", err)
	}
	return nil
}

// RestoreFrom overwrites the data directory with the contents of a backup
// zip. A fresh safety backup is taken first, so a bad restore can itself be
// undone. Entries outside the data/ namespace or escaping it are skipped.
func (s *Service) RestoreFrom(zipPath string) error {
	if _, err := os.Stat(zipPath); err != nil {
		return apperrors.NotFoundWithID("Backup", zipPath)
	}
	if _, err := s.CreateBackup(); err != nil {
		return err
	}

	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		return apperrors.Internal("Failed to open backup file", err)
	}
	defer zr.Close()

	restored := 0
	for _, entry := range zr.File {
		if entry.FileInfo().IsDir() {
			continue
		}
		name := filepath.ToSlash(entry.Name)
		if !strings.HasPrefix(name, archivePrefix) {
			continue
		}
		rel := strings.TrimPrefix(name, archivePrefix)
		if rel == "" || !filepath.IsLocal(filepath.FromSlash(rel)) {
			s.log.Warn("Skipping unsafe backup entry", "entry", entry.Name)
			continue
		}
		if err := s.extractEntry(entry, filepath.Join(s.dataDir, filepath.FromSlash(rel))); err != nil {
			return apperrors.Internal(fmt.Sprintf("Failed to restore %s", rel), err)
		}
		restored++
	}

	s.log.Info("Backup restored", "source", zipPath, "files", restored)
	return nil
}

func (s *Service) extractEntry(entry *zip.File, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	src, err := entry.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, src)
	return err
}
