// Package textio loads and saves the plain text files the ciphers work on.
package textio

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrNoSuchContent indicates the requested file does not exist.
var ErrNoSuchContent = errors.New("no such content")

const defaultFileMode os.FileMode = 0o644

// LoadText reads the whole file at path.
func LoadText(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("file path is empty")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("failed to open %s: %w", path, ErrNoSuchContent)
		}
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

// SaveText atomically replaces path with content, creating parent directories.
func SaveText(path, content string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("file path is empty")
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	tmpFile, err := os.CreateTemp(dir, ".tprotect-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	writer := bufio.NewWriter(tmpFile)
	if _, err := writer.WriteString(content); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}
	if err := tmpFile.Chmod(targetMode(path)); err != nil {
		return fmt.Errorf("failed to chmod %s: %w", path, err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// targetMode keeps the permissions of an existing file; new files get 0644.
func targetMode(path string) os.FileMode {
	if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
		return info.Mode().Perm()
	}
	return defaultFileMode
}

// ShiftCandidatePath names the file for one brute-force candidate:
// "out/msg.txt" with shift 3 becomes "out/msg_3.txt".
func ShiftCandidatePath(path string, shift int) string {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return filepath.Join(dir, stem+"_"+strconv.Itoa(shift)+ext)
}

// SaveShiftCandidates writes candidates[i] to ShiftCandidatePath(path, i+1)
// and returns the written paths in order.
func SaveShiftCandidates(path string, candidates []string) ([]string, error) {
	written := make([]string, 0, len(candidates))
	for i, candidate := range candidates {
		target := ShiftCandidatePath(path, i+1)
		if err := SaveText(target, candidate); err != nil {
			return written, err
		}
		written = append(written, target)
	}
	return written, nil
}
