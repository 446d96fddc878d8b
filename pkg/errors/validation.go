package errors

import (
	"strings"
	"unicode"
)

// ValidateComponentID validates a component identifier.
// IDs are used as map keys, node identifiers, and URL path segments, so the
// rules are intentionally conservative:
//   - No empty IDs
//   - No control characters or whitespace
//   - No path separators
//   - Maximum length of 128 characters
func ValidateComponentID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidComponent, "component ID cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidComponent, "component ID too long (max 128 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidComponent, "component ID contains whitespace or control characters")
		}
	}

	if strings.ContainsAny(id, "/\\") {
		return New(ErrCodeInvalidComponent, "component ID contains path separators")
	}

	return nil
}

// ValidateComponentName validates a component display name.
// Names appear in node labels and API responses; control characters are
// rejected, everything else printable is allowed.
func ValidateComponentName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidComponent, "component name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidComponent, "component name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidComponent, "component name contains control characters")
		}
	}

	return nil
}
