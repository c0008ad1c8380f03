package util

import (
	"errors"
	"strings"
)

// SanitizeFileName removes path separators and rejects traversal patterns.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", errors.New("invalid file name")
	}
	s := strings.TrimSpace(name)
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	if s == "" {
		return "", errors.New("invalid file name")
	}
	return s, nil
}

// SanitizeNamespace normalizes a storage namespace into a single path segment.
func SanitizeNamespace(ns string) string {
	s, err := SanitizeFileName(ns)
	if err != nil {
		return "default"
	}
	return strings.ToLower(s)
}
