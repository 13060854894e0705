package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateSymbolicName validates a bundle symbolic name.
//
// The rules are conservative:
//   - No empty names
//   - No control characters or whitespace
//   - No empty dot-separated segments
//   - Maximum length of 256 characters
func ValidateSymbolicName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "symbolic name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidInput, "symbolic name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "symbolic name %q contains invalid characters", name)
		}
	}

	for _, seg := range strings.Split(name, ".") {
		if seg == "" {
			return New(ErrCodeInvalidInput, "symbolic name %q has an empty segment", name)
		}
	}

	return nil
}

// ValidateLibraryPath validates an embedded library path inside a bundle.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidateLibraryPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// mavenIDRegex matches valid Maven groupId and artifactId values.
var mavenIDRegex = regexp.MustCompile(`^[A-Za-z0-9_\-.]+$`)

// ValidateMavenID validates a groupId or artifactId.
func ValidateMavenID(kind, id string) error {
	if id == "" {
		return New(ErrCodeInvalidCoordinate, "%s cannot be empty", kind)
	}
	if !mavenIDRegex.MatchString(id) {
		return New(ErrCodeInvalidCoordinate, "invalid %s: %q", kind, id)
	}
	return nil
}
