package task

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"
)

// validated returns a failing task when any check failed. Every problem is
// reported, not just the first.
func validated[A any](primitive string, checks ...error) (Task[A], bool) {
	if err := multierr.Combine(checks...); err != nil {
		return Fail[A](NewValidationError(primitive, err)), false
	}
	return Task[A]{}, true
}

func requirePath(arg, path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("%s must not be empty", arg)
	}
	if strings.ContainsRune(path, 0) {
		return fmt.Errorf("%s must not contain NUL bytes", arg)
	}
	return nil
}

func requireNonEmpty(arg, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s must not be empty", arg)
	}
	return nil
}

func requireNonNegative(arg string, n int64) error {
	if n < 0 {
		return fmt.Errorf("%s must not be negative, got %d", arg, n)
	}
	return nil
}
