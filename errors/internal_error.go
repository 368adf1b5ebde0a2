package errors

// InternalError signals a broken invariant inside the engine itself, never
// a caller mistake. The REST layer maps it to a 500 without echoing the
// message.
type InternalError struct {
	msg string
}

func (e *InternalError) Error() string {
	return e.msg
}

func NewInternalError(text string) error {
	return &InternalError{text}
}
