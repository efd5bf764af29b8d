package scoring

import "fmt"

// InvalidInputError is returned when the resume is absent or carries no content at all.
type InvalidInputError struct {
	Message string
	Cause   error
}

func (e *InvalidInputError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid input: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid input: %s", e.Message)
}

func (e *InvalidInputError) Unwrap() error {
	return e.Cause
}
