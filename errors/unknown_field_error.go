package errors

import "fmt"

// UnknownFieldError signals that a filter referenced a field that is absent
// from the entity schema and the alias table. The engine fails closed
// instead of letting an unresolved identifier reach the statement.
type UnknownFieldError struct {
	Entity string
	Field  string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown field '%s' for entity '%s'", e.Field, e.Entity)
}

func NewUnknownFieldError(entity string, field string) error {
	return &UnknownFieldError{Entity: entity, Field: field}
}
