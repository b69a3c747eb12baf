package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// groupIDPattern matches a Maven groupId in reverse domain notation.
var groupIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+(\.[A-Za-z0-9_-]+)*$`)

// artifactIDPattern matches a Maven artifactId.
var artifactIDPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// ValidateCoordinate validates a group/artifact pair before it is turned into a
// repository path. It rejects anything that could escape the repository
// directory the coordinate is supposed to name.
//
// Validation rules:
//   - Neither part can be empty
//   - No control characters
//   - groupId is dot-separated segments of letters, digits, '_' and '-'
//   - artifactId is letters, digits, '.', '_' and '-', and not "." or ".."
func ValidateCoordinate(groupID, artifactID string) error {
	if groupID == "" {
		return New(ErrCodeInvalidCoordinate, "groupId cannot be empty (artifact %q)", artifactID)
	}
	if artifactID == "" {
		return New(ErrCodeInvalidCoordinate, "artifactId cannot be empty (group %q)", groupID)
	}
	for _, r := range groupID + artifactID {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidCoordinate, "coordinate contains invalid control characters")
		}
	}
	if !groupIDPattern.MatchString(groupID) {
		return New(ErrCodeInvalidCoordinate, "invalid groupId: %q", groupID)
	}
	if !artifactIDPattern.MatchString(artifactID) || strings.Trim(artifactID, ".") == "" {
		return New(ErrCodeInvalidCoordinate, "invalid artifactId: %q", artifactID)
	}
	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme: %q", rawURL)
	}

	return nil
}
