package utils

import (
	"regexp"

	"github.com/pkg/errors"
)

// ValidNameRegex matches valid component names: a letter or number followed by at most 59
// letters, numbers, dashes or underscores.
var ValidNameRegex = regexp.MustCompile(`^[a-zA-Z0-9]([-\w]){0,59}$`)

// ValidateName returns a human-readable error when name does not match ValidNameRegex.
func ValidateName(name string) error {
	if ValidNameRegex.MatchString(name) {
		return nil
	}
	if len(name) > 60 {
		return errors.Errorf("name %q must be 60 characters or fewer", name)
	}
	return errors.Errorf("name %q must start with a letter or number and must only contain letters, numbers, dashes, and underscores", name)
}
