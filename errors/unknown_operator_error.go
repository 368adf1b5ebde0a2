package errors

import "fmt"

// UnknownOperatorError signals an operator symbol outside the supported set.
// Typos like "$Like" are rejected rather than silently ignored.
type UnknownOperatorError struct {
	Operator string
}

func (e *UnknownOperatorError) Error() string {
	return fmt.Sprintf("unknown filter operator '%s'", e.Operator)
}

func NewUnknownOperatorError(operator string) error {
	return &UnknownOperatorError{Operator: operator}
}
