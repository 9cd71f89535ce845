package constants

import "strings"

// AllowedExtensions holds the attachment extensions accepted for processing.
// Only PDFs carry a text layer the extractor can read.
var AllowedExtensions = map[string]struct{}{
	"pdf": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// AllowedExt reports whether a normalized extension is processable.
func AllowedExt(ext string) bool {
	_, ok := AllowedExtensions[ext]
	return ok
}
