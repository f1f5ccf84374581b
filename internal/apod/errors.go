package apod

import (
	"fmt"
)

// HTTPError reports a non-2xx response from the provider.
type HTTPError struct {
	Status  int
	Message string // provider supplied detail, may be empty
}

func (e *HTTPError) Error() string {
	text := fmt.Sprintf("HTTP Error: %d. Check that the API key is configured correctly.", e.Status)
	if e.Message != "" {
		text += " (" + e.Message + ")"
	}
	return text
}

// NetworkError wraps a transport failure.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
