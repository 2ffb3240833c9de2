package clibind

import (
	"fmt"

	"golang.org/x/xerrors"
)

// ErrorKind classifies what a validator or driver rejected. User-input kinds
// carry the offending raw token; UnsupportedType is a configuration-time
// error and never surfaces during a live parse of a well-built command.
type ErrorKind int

const (
	InvalidBool ErrorKind = iota + 1
	InvalidNumber
	NotInChoices
	OutOfRange
	InvalidDateTime
	PathNotFound
	WrongPathKind
	PathNotAccessible
	DuplicateOption
	UnsupportedType
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidBool:
		return "invalid boolean"
	case InvalidNumber:
		return "invalid number"
	case NotInChoices:
		return "not in choices"
	case OutOfRange:
		return "out of range"
	case InvalidDateTime:
		return "invalid date-time"
	case PathNotFound:
		return "path not found"
	case WrongPathKind:
		return "wrong path kind"
	case PathNotAccessible:
		return "path not accessible"
	case DuplicateOption:
		return "duplicate option"
	case UnsupportedType:
		return "unsupported type"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// ValidationError rejects one raw token. The message names the token and the
// constraint it violated, so it can be shown to the user as-is once the
// resolution loop has prefixed the owning option.
type ValidationError struct {
	Kind ErrorKind
	Raw  string
	msg  string
}

func (me ValidationError) Error() string {
	return me.msg
}

func validationErrorf(kind ErrorKind, raw string, format string, args ...interface{}) ValidationError {
	return ValidationError{
		Kind: kind,
		Raw:  raw,
		msg:  fmt.Sprintf(format, args...),
	}
}

// SetupError means the command table itself is malformed: bad option decls,
// impossible bounds, an unresolvable TypeSpec. Distinct in kind from user
// input errors and raised before any parsing begins.
type SetupError struct {
	Kind ErrorKind
	msg  string
}

func (me SetupError) Error() string {
	return me.msg
}

func setupErrorf(format string, args ...interface{}) SetupError {
	return SetupError{msg: fmt.Sprintf(format, args...)}
}

func unsupportedTypeErrorf(format string, args ...interface{}) SetupError {
	return SetupError{Kind: UnsupportedType, msg: fmt.Sprintf(format, args...)}
}

// Structural command-line errors from the tokenizer: unknown options, missing
// values, excess arguments.
type userError struct {
	msg string
}

func (ue userError) Error() string {
	return ue.msg
}

func userErrorf(format string, args ...interface{}) userError {
	return userError{fmt.Sprintf(format, args...)}
}

// IsKind reports whether any error in err's chain is a ValidationError or
// SetupError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var ve ValidationError
	if xerrors.As(err, &ve) {
		return ve.Kind == kind
	}
	var se SetupError
	if xerrors.As(err, &se) {
		return se.Kind == kind
	}
	return false
}

// IsUserError reports whether err stems from invalid command-line input, as
// opposed to a programming or configuration error.
func IsUserError(err error) bool {
	var ue userError
	var ve ValidationError
	return xerrors.As(err, &ue) || xerrors.As(err, &ve)
}
