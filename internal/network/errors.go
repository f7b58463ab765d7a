package network

import (
	"fmt"
	"strings"
)

// Kind is the category of a store failure.
type Kind int

const (
	// KindDuplicate means a person name is already taken.
	KindDuplicate Kind = iota + 1
	// KindNotFound means a referenced person or relationship is absent.
	KindNotFound
	// KindInvalidArgument covers blank names, blank statuses and self relationships.
	KindInvalidArgument
	// KindFormat means a relationship file could not be parsed.
	KindFormat
	// KindValidation means a well-formed file violates graph invariants.
	KindValidation
	// KindIO means the file system refused a read or write.
	KindIO
)

func (k Kind) String() string {
	switch k {
	case KindDuplicate:
		return "duplicate"
	case KindNotFound:
		return "not found"
	case KindInvalidArgument:
		return "invalid argument"
	case KindFormat:
		return "malformed file"
	case KindValidation:
		return "validation failed"
	case KindIO:
		return "i/o error"
	default:
		return "unknown error"
	}
}

// Error is returned by every Store operation. The store is left unchanged
// whenever an operation returns an Error of a kind other than KindIO.
type Error struct {
	Kind     Kind
	Op       string
	Subjects []string
	Err      error
}

// Sentinels for errors.Is. Only the Kind is compared.
var (
	ErrDuplicate       = &Error{Kind: KindDuplicate}
	ErrNotFound        = &Error{Kind: KindNotFound}
	ErrInvalidArgument = &Error{Kind: KindInvalidArgument}
	ErrFormat          = &Error{Kind: KindFormat}
	ErrValidation      = &Error{Kind: KindValidation}
	ErrIO              = &Error{Kind: KindIO}
)

func newError(op string, kind Kind, err error, subjects ...string) *Error {
	return &Error{Kind: kind, Op: op, Subjects: subjects, Err: err}
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	b.WriteString(e.Kind.String())
	if len(e.Subjects) > 0 {
		quoted := make([]string, len(e.Subjects))
		for i, s := range e.Subjects {
			quoted[i] = fmt.Sprintf("%q", s)
		}
		b.WriteString(" ")
		b.WriteString(strings.Join(quoted, ", "))
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}
