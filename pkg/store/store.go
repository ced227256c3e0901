// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package store reads and writes the documents a patch run works on.
package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/markpatch/pkg/document"
	"gitlab.com/tozd/go/errors"
)

const (
	// DefaultBackupSuffix is appended to a file's path to name its backup
	DefaultBackupSuffix = ".backup"

	// TempSuffix ends the names of the temp files atomic writes go through
	TempSuffix = ".markpatch-tmp"
)

// 💾 DocumentStore loads and persists documents
type DocumentStore interface {
	Read(ctx context.Context, path string) (document.Document, error)
	ReadBackup(ctx context.Context, path string) (document.Document, error)
	Write(ctx context.Context, path string, doc document.Document) error
	Backup(ctx context.Context, path string) (bool, error)
	Restore(ctx context.Context, path string) error
}

// 🔧 Store is a DocumentStore rooted at a base directory
type Store struct {
	baseDir      string
	backupSuffix string
}

// 🏭 New creates a store; relative paths resolve against baseDir
func New(baseDir, backupSuffix string) *Store {
	if backupSuffix == "" {
		backupSuffix = DefaultBackupSuffix
	}
	return &Store{
		baseDir:      filepath.Clean(baseDir),
		backupSuffix: backupSuffix,
	}
}

var _ DocumentStore = (*Store)(nil)

// 🔒 absPath returns the absolute path for a given relative path
func (s *Store) absPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(s.baseDir, path)
}

// BackupPath returns where the backup of path lives
func (s *Store) BackupPath(path string) string {
	return s.absPath(path) + s.backupSuffix
}

// Checksum returns the SHA-256 of a document's bytes
func Checksum(doc document.Document) string {
	hash := sha256.Sum256(doc.Bytes())
	return hex.EncodeToString(hash[:])
}

func (s *Store) Read(ctx context.Context, path string) (document.Document, error) {
	return s.readAbs(ctx, s.absPath(path))
}

func (s *Store) ReadBackup(ctx context.Context, path string) (document.Document, error) {
	return s.readAbs(ctx, s.BackupPath(path))
}

func (s *Store) readAbs(ctx context.Context, abs string) (document.Document, error) {
	content, err := os.ReadFile(abs)
	if err != nil {
		return document.Document{}, errors.Errorf("reading document: %w", err)
	}
	zerolog.Ctx(ctx).Debug().Str("path", abs).Int("bytes", len(content)).Msg("read document")
	return document.Parse(content), nil
}

// Write replaces path with doc atomically, keeping the existing file mode
func (s *Store) Write(ctx context.Context, path string, doc document.Document) error {
	absPath := s.absPath(path)

	if err := writeAtomic(absPath, fileMode(absPath, 0644), func(w io.Writer) error {
		_, err := w.Write(doc.Bytes())
		return err
	}); err != nil {
		return errors.Errorf("writing document: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", absPath).Str("sha256", Checksum(doc)).Msg("wrote document")
	return nil
}

// Backup snapshots path unless a backup already exists, so the first
// known-good copy is never overwritten by a later run. It reports whether
// a new backup was written.
func (s *Store) Backup(ctx context.Context, path string) (bool, error) {
	absPath := s.absPath(path)
	backupPath := s.BackupPath(path)

	if _, err := os.Stat(backupPath); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, errors.Errorf("checking backup existence: %w", err)
	}

	if err := copyFile(absPath, backupPath, fileMode(absPath, 0644)); err != nil {
		return false, errors.Errorf("creating backup: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", absPath).Str("backup", backupPath).Msg("created backup")
	return true, nil
}

// Restore copies the backup back over path and keeps the backup in place
func (s *Store) Restore(ctx context.Context, path string) error {
	absPath := s.absPath(path)
	backupPath := s.BackupPath(path)

	info, err := os.Stat(backupPath)
	if os.IsNotExist(err) {
		return errors.Errorf("backup file does not exist: %s", backupPath)
	} else if err != nil {
		return errors.Errorf("checking backup existence: %w", err)
	}

	if err := copyFile(backupPath, absPath, fileMode(absPath, info.Mode().Perm())); err != nil {
		return errors.Errorf("restoring from backup: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", absPath).Str("backup", backupPath).Msg("restored backup")
	return nil
}

// fileMode returns the permissions of path, or fallback when it does not exist
func fileMode(path string, fallback os.FileMode) os.FileMode {
	if info, err := os.Stat(path); err == nil {
		return info.Mode().Perm()
	}
	return fallback
}

func copyFile(src, dst string, mode os.FileMode) error {
	source, err := os.Open(src)
	if err != nil {
		return errors.Errorf("opening source file: %w", err)
	}
	defer source.Close()

	return writeAtomic(dst, mode, func(w io.Writer) error {
		_, err := io.Copy(w, source)
		return err
	})
}

// writeAtomic fills a temp file next to dst and renames it into place. On
// any failure the temp file is removed and dst is left as it was.
func writeAtomic(dst string, mode os.FileMode, fill func(io.Writer) error) (err error) {
	dir := filepath.Dir(dst)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Errorf("creating parent directories: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(dst)+".*"+TempSuffix)
	if err != nil {
		return errors.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	defer func() {
		if err == nil {
			return
		}
		if rmErr := os.Remove(tmpPath); rmErr != nil && !os.IsNotExist(rmErr) {
			err = errors.Errorf("%w (removing temp file: %v)", err, rmErr)
		}
	}()

	if err := fill(tmp); err != nil {
		tmp.Close()
		return errors.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return errors.Errorf("setting temp file mode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return errors.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpPath, dst); err != nil {
		return errors.Errorf("renaming temp file: %w", err)
	}
	return nil
}
