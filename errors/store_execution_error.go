package errors

// StoreExecutionError wraps a failure of the underlying read. The driver
// error is preserved for logging but statement fragments and bound values
// are never echoed back to callers.
type StoreExecutionError struct {
	msg   string
	cause error
}

func (e *StoreExecutionError) Error() string {
	return e.msg
}

func (e *StoreExecutionError) Unwrap() error {
	return e.cause
}

func NewStoreExecutionError(text string, cause error) error {
	return &StoreExecutionError{msg: text, cause: cause}
}
