package security

import (
	"regexp"

	pkgerrors "userdeck/pkg/errors"
)

// MaxPathSegmentLength bounds a configured URL path segment
const MaxPathSegmentLength = 64

// pathSegmentPattern accepts the characters a backend label may contain
// when it is placed verbatim into a request path.
var pathSegmentPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidatePathSegment checks that s can be used as one literal URL path
// segment without escaping.
func ValidatePathSegment(s string) error {
	if s == "" {
		return pkgerrors.NewValidationError("path segment", "is empty")
	}
	if len(s) > MaxPathSegmentLength {
		return pkgerrors.NewValidationError("path segment", "too long")
	}
	if !pathSegmentPattern.MatchString(s) {
		return pkgerrors.NewValidationError("path segment", "contains invalid characters")
	}
	return nil
}
