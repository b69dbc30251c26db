package effect

import "fmt"

// MissingExtensionError is the panic value of MustFrom when no extension of the requested type exists.
type MissingExtensionError struct {
	Type string
}

func (e *MissingExtensionError) Error() string {
	return fmt.Sprintf("effect: no extension of type %s provided", e.Type)
}

func typeName[T any]() string {
	// Pointer formatting keeps the name for interface types, whose zero value prints as <nil>.
	return fmt.Sprintf("%T", (*T)(nil))[1:]
}
