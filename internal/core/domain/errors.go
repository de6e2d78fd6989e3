package domain

import "fmt"

// DomainError represents a business logic error
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *DomainError) Unwrap() error {
	return e.Err
}

const (
	ErrCodeUnknownClient = "UNKNOWN_CLIENT"
	ErrCodeNoTopic       = "NO_TOPIC_CONFIGURED"
)

func NewUnknownClientError(clientID string) *DomainError {
	return &DomainError{
		Code:    ErrCodeUnknownClient,
		Message: fmt.Sprintf("no configuration for client %q", clientID),
	}
}

func NewNoTopicError(clientID string) *DomainError {
	return &DomainError{
		Code:    ErrCodeNoTopic,
		Message: fmt.Sprintf("client %q has no topic configured", clientID),
	}
}
