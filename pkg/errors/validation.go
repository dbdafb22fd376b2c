package errors

import (
	"strings"
	"unicode"
)

// maxNameLength bounds entry names; most document providers reject longer.
const maxNameLength = 255

// ValidateName validates a level or template filename for safety.
// Names address a single entry directly under a storage root, so they must
// be plain basenames:
//   - No empty names, "." or ".."
//   - No path separators (/ or \)
//   - No control characters or null bytes
//   - Maximum length of 255 bytes
func ValidateName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "file name cannot be empty")
	}
	if len(name) > maxNameLength {
		return New(ErrCodeInvalidName, "file name too long (max %d bytes)", maxNameLength)
	}
	if name == "." || name == ".." {
		return New(ErrCodeInvalidName, "file name %q is reserved", name)
	}
	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidName, "file name cannot contain path separators: %q", name)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "file name contains invalid control characters")
		}
	}
	return nil
}
