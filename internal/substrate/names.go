package substrate

import (
	"fmt"
	"strings"

	"securelocal/internal/domain"
)

// validateName rejects names that cannot be a single entry of a directory.
// The same rule applies to every substrate so that a section name portable to
// one backend is portable to all of them.
func validateName(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return fmt.Errorf("%q: %w", name, domain.ErrInvalidName)
	case strings.ContainsAny(name, "/\\\x00"):
		return fmt.Errorf("%q: %w", name, domain.ErrInvalidName)
	}
	return nil
}
