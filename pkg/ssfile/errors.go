// An error that keeps the kind of failure, the file it happened in and,
// if we know it, the line number and the line we were trying to read.
package ssfile

import (
	"errors"
	"strconv"
)

const maxMsgLen = 70

// Kind classifies load errors.
type Kind byte

const (
	FileFormatOrSyntax Kind = iota + 1 // nothing could read it, or a record was broken
	LoadingFailed                      // I/O trouble, missing file, deadline
	PermissionDenied                   // not allowed to open the file
)

func (k Kind) String() string {
	switch k {
	case FileFormatOrSyntax:
		return "file format or syntax"
	case LoadingFailed:
		return "loading failed"
	case PermissionDenied:
		return "permission denied"
	}
	return "unknown error kind " + strconv.Itoa(int(k))
}

// LoadError is the only error type Load returns. An unmatched bracket is
// a FileFormatOrSyntax error wrapping *ss.UnmatchedBracketError, so use
// errors.As to get the position.
type LoadError struct {
	Kind   Kind
	Source string // file name or label given by the caller
	Detail string
	Line   int    // 0 if not tied to a line
	Text   string // start of the offending line
	Err    error  // underlying cause, may be nil
}

func firstPart(s string) string {
	if len(s) > maxMsgLen {
		return s[:maxMsgLen]
	}
	return s
}

func (e *LoadError) Error() string {
	errmsg := e.Kind.String()
	if e.Source != "" {
		errmsg += ": " + e.Source
	}
	if e.Line != 0 {
		errmsg += " line " + strconv.Itoa(e.Line)
	}
	if e.Detail != "" {
		errmsg += ": " + e.Detail
	}
	if e.Err != nil {
		errmsg += ": " + e.Err.Error()
	}
	if e.Text != "" {
		errmsg += "\nLine starting with\n" + firstPart(e.Text)
	}
	return errmsg
}

func (e *LoadError) Unwrap() error { return e.Err }

// IsKind says if err is a LoadError of kind k.
func IsKind(err error, k Kind) bool {
	var le *LoadError
	return errors.As(err, &le) && le.Kind == k
}
