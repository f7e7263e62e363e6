package validation

// Error carries the full set of field failures for one request. Handlers
// unwrap it with errors.As and render the fields next to an "unprocessable"
// status; no mutation is attempted while it is non-empty.
type Error struct {
	Fields Errors
}

func NewError(fields Errors) *Error {
	return &Error{Fields: fields}
}

func (e *Error) Error() string {
	return "validation failed"
}
