// =============================================================================
// Excel to vCard Converter - File Manager Utility
// =============================================================================
//
// This module provides the file helpers used by the converter:
//   - Existence checks for input paths
//   - Atomic file replacement for the generated .vcf output
//
// ATOMIC WRITE STRATEGY:
//   - Data is written to a uniquely named temp file next to the destination
//   - The temp file is synced and closed, then renamed over the destination
//   - On any failure the temp file is removed and the destination is untouched
//   - A symlinked destination is resolved first, so the link is kept and its
//     target is replaced
//   - An existing destination keeps its permission bits
//
// LIMITATIONS:
//   - The temp file lives in the destination's directory, so that directory
//     must be writable even when the destination file itself is
//   - Ownership and hard links of an existing destination are not preserved
//

// =============================================================================

package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, fs.ErrNotExist)
}

// TempName returns the temp file name used while writing path.
// Example: "out/Exported.vcf" -> "out/.Exported.vcf.<uuid>.tmp"
func TempName(path string) string {
	dir, base := filepath.Split(path)
	return filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", base, uuid.New().String()))
}

// WriteFileAtomic replaces the file at path with data.
//
// The parent directory must already exist. The file is created with perm
// (subject to umask) if it does not exist; an existing file is replaced and
// keeps its mode.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) (err error) {
	target, keepMode := resolveTarget(path)
	tmpPath := TempName(target)

	file, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	defer func() {
		if err != nil {
			file.Close()
			os.Remove(tmpPath)
		}
	}()

	if keepMode != nil {
		if err = file.Chmod(*keepMode); err != nil {
			return fmt.Errorf("failed to set mode of temp file: %w", err)
		}
	}
	if _, err = file.Write(data); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err = file.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err = file.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err = os.Rename(tmpPath, target); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}

	return nil
}

// resolveTarget follows symlinks at path and returns the file to replace,
// plus the permission bits to keep when it is an existing regular file.
func resolveTarget(path string) (string, *os.FileMode) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return path, nil
	}

	info, err := os.Stat(resolved)
	if err != nil || !info.Mode().IsRegular() {
		return resolved, nil
	}
	mode := info.Mode().Perm()
	return resolved, &mode
}
