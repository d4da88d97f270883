package engine

import (
	"fmt"

	"github.com/pkg/errors"
)

// Error kinds. Match them with errors.Is.
var (
	ErrFileAccess    = errors.New("file access")
	ErrParse         = errors.New("parse")
	ErrMissingColumn = errors.New("missing column")
	ErrNotNumeric    = errors.New("column not numeric")
	ErrFileWrite     = errors.New("file write")
	ErrProfiling     = errors.New("profiling")
)

// Error is a typed failure of one pipeline operation.
type Error struct {
	Kind   error
	Op     string
	Path   string
	Column string
	Err    error
}

func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Column != "" {
		msg += fmt.Sprintf(" %q", e.Column)
	}
	if e.Path != "" {
		msg += " (" + e.Path + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is reports whether target is the kind of this error.
func (e *Error) Is(target error) bool { return target == e.Kind }

func (e *Error) Unwrap() error { return e.Err }

func fileAccess(op, path string, err error) error {
	return &Error{Kind: ErrFileAccess, Op: op, Path: path, Err: err}
}

func parseError(path string, err error) error {
	return &Error{Kind: ErrParse, Op: "load", Path: path, Err: err}
}

func missingColumn(column string) error {
	return &Error{Kind: ErrMissingColumn, Op: "select", Column: column}
}

func notNumeric(column, typ string) error {
	return &Error{Kind: ErrNotNumeric, Op: "select", Column: column, Err: errors.Errorf("column type is %s", typ)}
}
