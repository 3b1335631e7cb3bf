package services

import "fmt"

// ValidationError marks an error caused by bad caller input. Handlers map
// it to a 400 response; anything else from a service is a backend failure.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func invalidf(format string, args ...interface{}) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}
