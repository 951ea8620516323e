// Package errno translates operating-system failures into the uniform error
// value returned by every facade operation.
//
// An Error keeps the OS description text as its message, so callers that only
// look at Error() see exactly what strerror(3) reports. The Kind and the raw
// errno are retained for callers that need to branch on the failure.
package errno

import (
	"errors"
	"fmt"

	"code.hybscloud.com/iox"
	"golang.org/x/sys/unix"
)

// Kind is the closed set of failure categories.
type Kind int

const (
	Other Kind = iota
	WouldBlock
	ConnRefused
	AddrInUse
	Interrupted
	NotFound
	PermissionDenied
	BadDescriptor
	InvalidArgument
	InProgress
	Unsupported
)

var kindNames = [...]string{
	Other:            "other",
	WouldBlock:       "would-block",
	ConnRefused:      "connection-refused",
	AddrInUse:        "address-in-use",
	Interrupted:      "interrupted",
	NotFound:         "not-found",
	PermissionDenied: "permission-denied",
	BadDescriptor:    "bad-descriptor",
	InvalidArgument:  "invalid-argument",
	InProgress:       "in-progress",
	Unsupported:      "unsupported",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "kind(" + fmt.Sprint(int(k)) + ")"
	}
	return kindNames[k]
}

// Error is the failure value of a facade operation.
type Error struct {
	// Op is the facade operation that failed, e.g. "select".
	Op   string
	Kind Kind
	// Errno is zero for failures detected before any syscall was issued.
	Errno unix.Errno
	Msg   string
}

// Error returns the description text only.
func (e *Error) Error() string {
	return e.Msg
}

// Detail returns the description prefixed with the operation and kind.
func (e *Error) Detail() string {
	return e.Op + " (" + e.Kind.String() + "): " + e.Msg
}

func (e *Error) Unwrap() error {
	if e.Errno == 0 {
		return nil
	}
	return e.Errno
}

// Is reports would-block failures as iox.ErrWouldBlock.
func (e *Error) Is(target error) bool {
	return e.Kind == WouldBlock && target == iox.ErrWouldBlock
}

// FromErrno builds the Error for a raw errno.
func FromErrno(op string, en unix.Errno) *Error {
	return &Error{
		Op:    op,
		Kind:  Classify(en),
		Errno: en,
		Msg:   en.Error(),
	}
}

// Translate converts err into an *Error. A nil err stays nil and an *Error
// passes through untouched.
func Translate(op string, err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	var en unix.Errno
	if errors.As(err, &en) {
		return FromErrno(op, en)
	}
	return &Error{Op: op, Kind: Other, Msg: err.Error()}
}

// Invalid builds an argument-contract failure. No syscall is involved.
func Invalid(op, format string, a ...interface{}) *Error {
	return &Error{Op: op, Kind: InvalidArgument, Msg: fmt.Sprintf(format, a...)}
}

// KindOf returns the Kind of err, or Other when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	if iox.IsWouldBlock(err) {
		return WouldBlock
	}
	return Other
}

// Classify maps an errno onto its Kind.
func Classify(en unix.Errno) Kind {
	switch en {
	case unix.EAGAIN:
		return WouldBlock
	case unix.ECONNREFUSED:
		return ConnRefused
	case unix.EADDRINUSE:
		return AddrInUse
	case unix.EINTR:
		return Interrupted
	case unix.ENOENT:
		return NotFound
	case unix.EACCES, unix.EPERM:
		return PermissionDenied
	case unix.EBADF, unix.ENOTSOCK:
		return BadDescriptor
	case unix.EINVAL:
		return InvalidArgument
	case unix.EINPROGRESS, unix.EALREADY:
		return InProgress
	case unix.ENOSYS, unix.EOPNOTSUPP, unix.EAFNOSUPPORT, unix.EPROTONOSUPPORT:
		return Unsupported
	}
	return Other
}
