package errors

import "fmt"

// InvalidOperandError signals an operator given an operand of the wrong
// shape, such as $in without a non-empty list.
type InvalidOperandError struct {
	Operator string
	Field    string
	Reason   string
}

func (e *InvalidOperandError) Error() string {
	return fmt.Sprintf("invalid operand for %s on field '%s': %s", e.Operator, e.Field, e.Reason)
}

func NewInvalidOperandError(operator string, field string, reason string) error {
	return &InvalidOperandError{Operator: operator, Field: field, Reason: reason}
}
