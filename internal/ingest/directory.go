package ingest

import (
	"crypto/sha256"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"invoicerpa/constants"
	"invoicerpa/internal/entity"
)

// DirStats aggregates one directory scan.
type DirStats struct {
	Scanned int
	Matched int
	Loaded  int
	Failed  int
}

// IsHidden reports whether the path's base name is dot-prefixed.
func IsHidden(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".") && base != "." && base != ".."
}

// LoadDirectory walks root and loads every PDF into a RawDocument, in walk
// order. Per-file read errors are counted and skipped; they never abort the
// walk. Parsing the bytes is the extractor's job, not the loader's.
func LoadDirectory(root string, skipHidden bool, logger *slog.Logger) ([]entity.RawDocument, DirStats, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if strings.TrimSpace(root) == "" {
		return nil, DirStats{}, errors.New("root path is required")
	}

	var docs []entity.RawDocument
	var stats DirStats

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		stats.Scanned++
		if walkErr != nil {
			logger.Warn("walk error", "path", path, "error", walkErr)
			stats.Failed++
			return nil
		}
		if skipHidden && IsHidden(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !constants.AllowedExt(constants.NormalizeExt(filepath.Ext(path))) {
			return nil
		}
		stats.Matched++

		content, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("read failed", "path", path, "error", err)
			stats.Failed++
			return nil
		}
		sum := sha256.Sum256(content)

		docs = append(docs, entity.RawDocument{
			ID:          uuid.New(),
			SourceID:    path,
			Filename:    filepath.Base(path),
			ContentHash: sum[:],
			Content:     content,
		})
		stats.Loaded++
		return nil
	})
	if err != nil {
		return docs, stats, err
	}

	logger.Info("directory loaded",
		"root", root,
		"scanned", stats.Scanned,
		"matched", stats.Matched,
		"loaded", stats.Loaded,
		"failed", stats.Failed,
	)
	return docs, stats, nil
}
