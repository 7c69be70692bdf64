package services

import "fmt"

// ServiceError represents a typed error with an HTTP status code.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string {
	return e.Message
}

// validationError is raised before any store call is made.
func validationError(message string) *ServiceError {
	return &ServiceError{StatusCode: 400, Message: message}
}

// storeError wraps an underlying persistence failure with an
// operation-specific prefix, preserving the original message.
func storeError(prefix string, err error) *ServiceError {
	return &ServiceError{StatusCode: 500, Message: fmt.Sprintf("%s: %v", prefix, err)}
}
