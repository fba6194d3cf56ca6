package platform

import (
	"errors"
	"fmt"

	"github.com/pattyshack/asmbridge/architecture"
)

// ErrClobberOnly is returned when a clobber-only register class is used as
// a regular operand.
var ErrClobberOnly = errors.New("register class can only be used as a clobber")

// UnimplementedError indicates the lookup tables have no entry for the
// requested architecture / register combination.  Guessing is never an
// option since a wrong constraint silently corrupts the generated code.
type UnimplementedError struct {
	Architecture architecture.Name
	Subject      string
}

func (err *UnimplementedError) Error() string {
	return fmt.Sprintf("%s is unimplemented on %s", err.Subject, err.Architecture)
}

func unimplemented(
	arch architecture.Name,
	format string,
	args ...interface{},
) error {
	return &UnimplementedError{
		Architecture: arch,
		Subject:      fmt.Sprintf(format, args...),
	}
}

func clobberOnly(class architecture.RegisterClass) error {
	return fmt.Errorf("%w (%s)", ErrClobberOnly, class)
}
