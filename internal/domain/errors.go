package domain

import (
	"errors"
	"fmt"

	m "kover.dev/pkg/kover/internal/model"
)

// ErrorKind classifies why composing a file failed. Every kind is fatal for that file.
type ErrorKind int

// Available ErrorKind values.
const (
	OrphanedLocalClass ErrorKind = iota + 1
	OrphanedNestedClass
	OrphanedCompanion
	OrphanedDefaultImpl
	AmbiguousDefaultValueWrapper
	UnresolvedEnclosingFunction
)

// Sentinels matched with errors.Is against a *ComposeError.
var (
	ErrOrphanedLocalClass           = errors.New("orphaned local class")
	ErrOrphanedNestedClass          = errors.New("orphaned nested class")
	ErrOrphanedCompanion            = errors.New("orphaned companion")
	ErrOrphanedDefaultImpl          = errors.New("orphaned default impl")
	ErrAmbiguousDefaultValueWrapper = errors.New("ambiguous default value wrapper")
	ErrUnresolvedEnclosingFunction  = errors.New("unresolved enclosing function")
)

func (k ErrorKind) sentinel() error {
	switch k {
	case OrphanedLocalClass:
		return ErrOrphanedLocalClass
	case OrphanedNestedClass:
		return ErrOrphanedNestedClass
	case OrphanedCompanion:
		return ErrOrphanedCompanion
	case OrphanedDefaultImpl:
		return ErrOrphanedDefaultImpl
	case AmbiguousDefaultValueWrapper:
		return ErrAmbiguousDefaultValueWrapper
	case UnresolvedEnclosingFunction:
		return ErrUnresolvedEnclosingFunction
	}

	return nil
}

func (k ErrorKind) String() string {
	if err := k.sentinel(); err != nil {
		return err.Error()
	}

	return "unknown"
}

// ComposeError reports the declaration that broke composition of a file.
type ComposeError struct {
	Kind    ErrorKind
	Path    m.Path
	Subject string
	Detail  string
}

func (e *ComposeError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Kind, e.Subject)
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}

	if e.Path != "" {
		msg = string(e.Path) + ": " + msg
	}

	return msg
}

// Unwrap returns the sentinel of the error's kind.
func (e *ComposeError) Unwrap() error {
	return e.Kind.sentinel()
}

func composeErrorf(kind ErrorKind, subject string, format string, args ...interface{}) *ComposeError {
	return &ComposeError{
		Kind:    kind,
		Subject: subject,
		Detail:  fmt.Sprintf(format, args...),
	}
}

// KindOf extracts the ErrorKind of a composition failure, or 0.
func KindOf(err error) ErrorKind {
	var composeErr *ComposeError
	if errors.As(err, &composeErr) {
		return composeErr.Kind
	}

	return 0
}
