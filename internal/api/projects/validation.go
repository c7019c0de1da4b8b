package projects

import (
	"errors"
	"strings"
)

// ValidateName checks that a project name is present.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("name is required")
	}
	return nil
}
