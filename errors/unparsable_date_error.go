package errors

import "fmt"

// UnparsableDateError signals that a value targeting a date-classified field
// matched neither the symbolic vocabulary nor any accepted literal format.
type UnparsableDateError struct {
	Value string
}

func (e *UnparsableDateError) Error() string {
	return fmt.Sprintf("unable to interpret '%s' as a date", e.Value)
}

func NewUnparsableDateError(value string) error {
	return &UnparsableDateError{Value: value}
}
