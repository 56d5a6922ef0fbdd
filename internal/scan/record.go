package scan

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// FileRecord holds the collected metadata for a single regular file.
// It is immutable once created.
type FileRecord struct {
	// Name is the base name of the file.
	Name string `json:"name"`
	// Path is the file path relative to the scan root, forward-slash separated.
	Path string `json:"path"`
	// Ext is the lower-cased extension including the leading dot.
	Ext string `json:"ext"`
	// Type is the coarse classification label derived from the name.
	Type string `json:"type"`
	// Size is the file size in bytes.
	Size int64 `json:"size"`
	// FriendlySize is the human-readable size string.
	FriendlySize string `json:"friendly_size"`
	// ModTime is the last modification time.
	ModTime time.Time `json:"mod_time"`
}

// typeByExt maps known extensions to their classification labels.
//
//nolint:gochecknoglobals // Static lookup table
var typeByExt = map[string]string{
	".html":  "HTML",
	".htm":   "HTML",
	".ipynb": "Jupyter",
	".xlsx":  "Excel",
	".xls":   "Excel",
	".docx":  "MS Word",
	".doc":   "MS Word",
	".txt":   "Text",
	".py":    "Python",
	".csv":   "Data",
	".json":  "Data",
	".yaml":  "Data",
	".bat":   "Batch",
	".cmd":   "Batch",
	".sh":    "Batch",
}

// sizeUnits is the ordered sequence of unit prefixes for FriendlySize.
// The sequence deliberately stops at GB.
//
//nolint:gochecknoglobals // Config constant
var sizeUnits = []string{"KB", "MB", "GB"}

// FriendlySize converts a byte count to a human-readable string with a
// binary (1024-based) unit suffix and exactly two decimal digits.
//
// The comparison is strictly greater-than at every step, so a value of
// exactly 1024 is not promoted: FriendlySize(1024) == "1024.00 B".
func FriendlySize(n int64) string {
	size := float64(n)
	unit := "B"

	for _, u := range sizeUnits {
		if size > 1024 {
			size /= 1024
			unit = u
		}
	}

	return fmt.Sprintf("%.2f %s", size, unit)
}

// Classify derives a coarse type label from a file name.
//
// Dotfiles ('.gitignore') classify as their name with leading dots
// stripped. Otherwise the lower-cased extension is looked up in a fixed
// table; unmapped extensions fall back to the extension text without the
// leading dot, and files without an extension yield the empty string.
func Classify(name string) string {
	if strings.HasPrefix(name, ".") {
		return strings.TrimLeft(name, ".")
	}

	ext := strings.ToLower(filepath.Ext(name))
	if label, ok := typeByExt[ext]; ok {
		return label
	}

	return strings.TrimPrefix(ext, ".")
}

// NewRecord builds a FileRecord for a file at relPath (relative to the
// scan root, any separator) with the given size and modification time.
func NewRecord(relPath string, size int64, modTime time.Time) FileRecord {
	path := filepath.ToSlash(relPath)
	name := filepath.Base(relPath)

	return FileRecord{
		Name:         name,
		Path:         path,
		Ext:          strings.ToLower(filepath.Ext(name)),
		Type:         Classify(name),
		Size:         size,
		FriendlySize: FriendlySize(size),
		ModTime:      modTime,
	}
}
