// Package exports handles the download directory the vendor's exports land
// in: newest-file pickup, the monthly renaming contract for procedure
// exports, and cleanup of stale files.
package exports

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/luabelo/automacao-simplesvet/internal/workbook"
)

// LatestByExt returns the newest file in dir whose lowercase name ends in
// one of exts (e.g. ".csv"). It returns "" when no file matches.
func LatestByExt(dir string, exts ...string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("cannot read download directory %s: %w", dir, err)
	}

	var newest string
	var newestTime time.Time
	for _, entry := range entries {
		if entry.IsDir() || !hasExt(entry.Name(), exts) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if newest == "" || info.ModTime().After(newestTime) {
			newest = filepath.Join(dir, entry.Name())
			newestTime = info.ModTime()
		}
	}
	return newest, nil
}

// RenameProcedureExport renames a downloaded atendimento export into the
// monthly naming contract ("202510-vacina.xls"), keeping the original
// extension. An empty label falls back to a timestamp. A pre-existing
// target is replaced.
func RenameProcedureExport(path, label string, category workbook.Category) (string, error) {
	base := label
	if base == "" {
		base = time.Now().Format("20060102_150405")
	}
	target := filepath.Join(filepath.Dir(path), fmt.Sprintf("%s-%s%s", base, category, filepath.Ext(path)))

	if _, err := os.Stat(target); err == nil {
		if err := os.Remove(target); err != nil {
			return "", fmt.Errorf("cannot replace existing export %s: %w", target, err)
		}
	}
	if err := os.Rename(path, target); err != nil {
		return "", fmt.Errorf("cannot rename export: %w", err)
	}
	return target, nil
}

// CleanupProcedureExports removes stale atendimento spreadsheets from dir
// so the next pickup cannot grab a previous month's file.
func CleanupProcedureExports(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("cannot read download directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		name := strings.ToLower(entry.Name())
		if entry.IsDir() || !strings.Contains(name, "atendimento") || !hasExt(name, []string{".xls", ".xlsx"}) {
			continue
		}
		if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
			return fmt.Errorf("cannot remove stale export %s: %w", entry.Name(), err)
		}
	}
	return nil
}

// RemoveSalesCSV deletes the vendor's raw Vendas.csv after conversion.
// Other CSV names are left alone.
func RemoveSalesCSV(path string) error {
	if strings.ToLower(filepath.Base(path)) != "vendas.csv" {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("cannot remove %s: %w", path, err)
	}
	return nil
}

func hasExt(name string, exts []string) bool {
	lower := strings.ToLower(name)
	for _, ext := range exts {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
