package client

import "fmt"

// ErrorKind classifies a failed gateway call. Every failure carries exactly
// one kind and a human-readable message; none are retried automatically.
type ErrorKind string

const (
	ErrorKindNetwork    ErrorKind = "network"
	ErrorKindAuth       ErrorKind = "auth"
	ErrorKindValidation ErrorKind = "validation"
	ErrorKindServer     ErrorKind = "server"
)

type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func kindForStatus(status int) ErrorKind {
	switch {
	case status == 401 || status == 403:
		return ErrorKindAuth
	case status >= 400 && status < 500:
		return ErrorKindValidation
	default:
		return ErrorKindServer
	}
}
