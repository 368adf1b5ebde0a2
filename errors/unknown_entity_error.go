package errors

import "fmt"

// UnknownEntityError signals a request against an entity that is not part
// of the declared catalog.
type UnknownEntityError struct {
	Entity string
}

func (e *UnknownEntityError) Error() string {
	return fmt.Sprintf("unknown entity '%s'", e.Entity)
}

func NewUnknownEntityError(entity string) error {
	return &UnknownEntityError{Entity: entity}
}
