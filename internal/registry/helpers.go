package registry

import (
	"crypto/rand"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

const (
	themeIDMaxLength       = 64
	randomIDSuffixLength   = 8
	randomIDSuffixFallback = "abcdefgh"
)

var (
	// themeIDPattern matches the theme name rule enforced by document
	// validation, so any loaded theme's name is a valid entry ID.
	themeIDPattern      = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)
	nonAlphanumericExpr = regexp.MustCompile(`[^a-z0-9]+`)
)

// GenerateThemeID converts a document path into a sanitized theme ID.
func GenerateThemeID(path string) string {
	base := filepath.Base(path)
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}

	id := SanitizeName(base)
	if id == "" {
		id = fmt.Sprintf("theme-%s", randomIDSuffix(randomIDSuffixLength))
	}

	if len(id) > themeIDMaxLength {
		id = trimToLength(id, themeIDMaxLength)
	}

	if id == "" {
		id = fmt.Sprintf("theme-%s", randomIDSuffix(randomIDSuffixLength))
	}

	return id
}

// ValidateThemeID ensures the provided ID matches the allowed pattern.
func ValidateThemeID(id string) error {
	if id == "" {
		return fmt.Errorf("theme ID cannot be empty")
	}

	if len(id) > themeIDMaxLength {
		return fmt.Errorf("theme ID %q is too long: maximum length is %d characters", id, themeIDMaxLength)
	}

	if !themeIDPattern.MatchString(id) {
		return fmt.Errorf("invalid theme ID %q: must match %s", id, themeIDPattern.String())
	}

	return nil
}

// SanitizeName normalizes a name into an identifier-friendly format.
func SanitizeName(name string) string {
	lowered := strings.ToLower(name)
	sanitized := nonAlphanumericExpr.ReplaceAllString(lowered, "-")
	sanitized = strings.Trim(sanitized, "-")

	if len(sanitized) > themeIDMaxLength {
		sanitized = trimToLength(sanitized, themeIDMaxLength)
	}

	return sanitized
}

func randomIDSuffix(length int) string {
	const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

	if length <= 0 {
		return ""
	}

	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return randomIDSuffixFallback
	}

	for i := range buf {
		buf[i] = alphabet[int(buf[i])%len(alphabet)]
	}

	return string(buf)
}

func trimToLength(value string, length int) string {
	if len(value) <= length {
		return strings.Trim(value, "-")
	}

	trimmed := value[:length]
	return strings.Trim(trimmed, "-")
}
