package errors

import "fmt"

// InvalidDateRangeError signals a reporting window whose start falls after
// its end.
type InvalidDateRangeError struct {
	From string
	To   string
}

func (e *InvalidDateRangeError) Error() string {
	return fmt.Sprintf("invalid date range: '%s' is after '%s'", e.From, e.To)
}

func NewInvalidDateRangeError(from string, to string) error {
	return &InvalidDateRangeError{From: from, To: to}
}
