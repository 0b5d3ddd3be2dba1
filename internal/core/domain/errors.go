package domain

import (
	"errors"
	"fmt"
)

// ErrorKind tags a domain error so the HTTP boundary can map it to a status
// code without inspecting messages.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindAuthentication
	KindValidation
	KindNotFound
	KindCreation
)

type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func E(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind ErrorKind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf unwraps err down to the first tagged error. Untagged errors are
// internal by definition so nothing leaks through the boundary by accident.
func KindOf(err error) ErrorKind {
	var domainErr *Error

	if errors.As(err, &domainErr) {
		return domainErr.Kind
	}

	return KindInternal
}

// ErrAuthentication is the single failure every bad-credential and bad-token
// path collapses into. Callers cannot tell an unknown user from a wrong
// password or an expired token from a forged one.
var ErrAuthentication = E(KindAuthentication, "authentication failed")
