package apperrors

import (
	"fmt"

	"github.com/pkg/errors"
)

type Kind string

const (
	KindNotFound          Kind = "NOT_FOUND"
	KindInvalidTransition Kind = "INVALID_TRANSITION"
	KindForbidden         Kind = "FORBIDDEN"
	KindBusinessRule      Kind = "BUSINESS_RULE"
)

// Error is a workflow failure the caller can act upon.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) error {
	return newError(KindNotFound, format, args...)
}

func InvalidTransition(format string, args ...any) error {
	return newError(KindInvalidTransition, format, args...)
}

func Forbidden(format string, args ...any) error {
	return newError(KindForbidden, format, args...)
}

func BusinessRule(format string, args ...any) error {
	return newError(KindBusinessRule, format, args...)
}

// KindOf unwraps err looking for a workflow error.
func KindOf(err error) (Kind, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind, true
	}
	return "", false
}

func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

func IsNotFound(err error) bool {
	return Is(err, KindNotFound)
}

func IsInvalidTransition(err error) bool {
	return Is(err, KindInvalidTransition)
}

func IsForbidden(err error) bool {
	return Is(err, KindForbidden)
}

func IsBusinessRule(err error) bool {
	return Is(err, KindBusinessRule)
}

// ErrStaleRecord is returned by stores when a compare-and-update matched no row.
var ErrStaleRecord = errors.New("record was changed by another request")

// ErrProtected is returned by the sourcer store when another sourcer still holds protection.
var ErrProtected = errors.New("candidate is protected by another sourcer")

// ErrOverAllocation is returned by the collaborator store when the split ceiling would be exceeded.
var ErrOverAllocation = errors.New("split percentage over allocation")

// ErrDuplicateApplication is returned by the application store when an active application already exists for the pair.
var ErrDuplicateApplication = errors.New("active application already exists")
