package pubsub

import (
	"errors"
	"fmt"
	"net/http"
)

type PubSubError struct {
	Code       string
	Message    string
	StatusCode int
}

type PubSubErrorResponse struct {
	Err     string `json:"error"`
	Message string `json:"message"`
}

func (e *PubSubError) Error() string {
	return fmt.Sprintf("pubsub error [%s]: %s (status: %d)", e.Code, e.Message, e.StatusCode)
}

// IsConflict reports the "topic already exists" condition, which callers
// treat as success.
func (e *PubSubError) IsConflict() bool {
	return e.StatusCode == http.StatusConflict
}

func IsPubSubError(err error) (*PubSubError, bool) {
	var psErr *PubSubError
	ok := errors.As(err, &psErr)
	return psErr, ok
}
