package rules

import (
	"strings"
)

// NormalizeExtension converts a raw extension to canonical form:
// trimmed, lowercase, with a leading dot. Empty input stays empty.
func NormalizeExtension(ext string) string {
	s := strings.ToLower(strings.TrimSpace(ext))
	if s == "" || s == "." {
		return ""
	}
	if !strings.HasPrefix(s, ".") {
		s = "." + s
	}
	return s
}

// ParseExtensions converts user input like "jpg, PNG , .pdf" into a
// normalized, deduplicated list: [".jpg", ".png", ".pdf"]. Input order
// of first occurrence is preserved.
func ParseExtensions(text string) []string {
	var exts []string
	seen := make(map[string]bool)
	for _, part := range strings.Split(text, ",") {
		ext := NormalizeExtension(part)
		if ext == "" || seen[ext] {
			continue
		}
		seen[ext] = true
		exts = append(exts, ext)
	}
	return exts
}

// NormalizeExtensions normalizes and deduplicates an extension list.
func NormalizeExtensions(raw []string) []string {
	return ParseExtensions(strings.Join(raw, ","))
}

// FormatExtensions renders an extension list back to the comma-separated
// form shown in the edit dialog, without leading dots.
func FormatExtensions(exts []string) string {
	parts := make([]string, 0, len(exts))
	for _, ext := range exts {
		parts = append(parts, strings.TrimPrefix(ext, "."))
	}
	return strings.Join(parts, ", ")
}
