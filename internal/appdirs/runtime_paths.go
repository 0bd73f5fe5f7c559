package appdirs

import (
	"path/filepath"
	"strings"
)

const (
	dbFileName       = "gifcrop.db"
	exportExt        = ".json"
	fallbackExports  = "exports"
	fallbackCacheDir = "cache"
)

// ExportPathFor returns where a session's synthesized config list is written.
func ExportPathFor(paths Paths, sessionID string) string {
	return filepath.Join(dirOr(paths.ExportDir, fallbackExports), sessionID+exportExt)
}

// DBPathFor returns the render job database location under the cache dir.
func DBPathFor(paths Paths) string {
	return filepath.Join(dirOr(paths.CacheDir, fallbackCacheDir), dbFileName)
}

// dirOr cleans dir, falling back to a relative directory when it is blank.
func dirOr(dir, fallback string) string {
	if cleaned := strings.TrimSpace(dir); cleaned != "" {
		return filepath.Clean(cleaned)
	}
	return fallback
}
