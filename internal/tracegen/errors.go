package tracegen

import "errors"

var (
	// ErrNoInterfaces is returned when Options names no interface.
	ErrNoInterfaces = errors.New("no interface requested")

	// ErrInterfaceNotFound is returned when a requested interface is not declared in the package.
	ErrInterfaceNotFound = errors.New("interface not found")

	// ErrUnsupportedMethod is returned for methods a decorator cannot forward through
	// the call wrappers: no leading context.Context, more than one non-error result,
	// or a non-error last result next to another result.
	ErrUnsupportedMethod = errors.New("unsupported method signature")

	// ErrUnsupportedInterface is returned for generic interfaces and embedded interfaces.
	ErrUnsupportedInterface = errors.New("unsupported interface")
)
