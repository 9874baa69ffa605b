package apperrors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies errors crossing the API surface so controllers and the
// optimistic coordinator can react without string matching.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindValidation
	KindSimulatedNetwork
	KindPersistenceUnavailable
)

type Error struct {
	Kind    Kind
	Status  int
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.cause.Error())
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func NewNotFound(format string, args ...interface{}) error {
	return &Error{Kind: KindNotFound, Status: 404, Message: fmt.Sprintf(format, args...)}
}

func NewValidation(format string, args ...interface{}) error {
	return &Error{Kind: KindValidation, Status: 400, Message: fmt.Sprintf(format, args...)}
}

// NewSimulatedNetwork carries the HTTP-like status the injected fault pretends
// to have produced.
func NewSimulatedNetwork(status int, message string) error {
	return &Error{Kind: KindSimulatedNetwork, Status: status, Message: message}
}

func NewPersistenceUnavailable(cause error) error {
	return &Error{Kind: KindPersistenceUnavailable, Status: 503, Message: "persistence engine unavailable", cause: cause}
}

func kindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func IsNotFound(err error) bool { return kindOf(err) == KindNotFound }

func IsValidation(err error) bool { return kindOf(err) == KindValidation }

func IsSimulatedNetwork(err error) bool { return kindOf(err) == KindSimulatedNetwork }

func IsPersistenceUnavailable(err error) bool { return kindOf(err) == KindPersistenceUnavailable }

// StatusOf maps an error to the HTTP status the controller should answer with.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) && e.Status != 0 {
		return e.Status
	}
	return 500
}
