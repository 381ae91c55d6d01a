package authsdk

import "fmt"

// RejectedError is a non-2xx backend answer.
type RejectedError struct {
	StatusCode int
	Body       string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("backend rejected request: HTTP %d", e.StatusCode)
}

// Message returns the backend body, or fallback when it was empty.
func (e *RejectedError) Message(fallback string) string {
	if e.Body != "" {
		return e.Body
	}
	return fallback
}

// ContractError is a 2xx answer the client could not use as JSON.
type ContractError struct {
	StatusCode  int
	ContentType string
	Body        string
	Err         error // decode error, nil when the content type was wrong
}

func (e *ContractError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("backend returned undecodable JSON (HTTP %d): %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("backend returned %q instead of JSON (HTTP %d)", e.ContentType, e.StatusCode)
}

func (e *ContractError) Unwrap() error { return e.Err }

// Message returns the backend body, or fallback when it was empty.
func (e *ContractError) Message(fallback string) string {
	if e.Body != "" {
		return e.Body
	}
	return fallback
}

// UnreachableError wraps a transport failure.
type UnreachableError struct {
	Op  string
	Err error
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("%s: backend unreachable: %v", e.Op, e.Err)
}

func (e *UnreachableError) Unwrap() error { return e.Err }
