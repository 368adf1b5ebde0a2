package errors

import "fmt"

// InvalidOrderByError signals a sort expression whose column or direction is
// not recognized. Order-by cannot be parameterized, so it is validated
// against the entity column set before interpolation.
type InvalidOrderByError struct {
	OrderBy string
}

func (e *InvalidOrderByError) Error() string {
	return fmt.Sprintf("invalid order by expression '%s'", e.OrderBy)
}

func NewInvalidOrderByError(orderBy string) error {
	return &InvalidOrderByError{OrderBy: orderBy}
}
