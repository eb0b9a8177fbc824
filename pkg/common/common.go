// 29 Apr 2020

package common

import (
	"fmt"
	"io"
	"os"
)

const (
	ExitSuccess = iota
	ExitFailure
	ExitUsageError
)

// IsGap says if a character is a gap in an alignment. Different
// programs use ".", "-" or ":".
func IsGap(c byte) bool {
	return c == '-' || c == '.' || c == ':'
}

// WrtTemp writes a string to a temporary file and returns
// the filename. It is used all over the place in testing.
// The suffix matters to readers that guess the format from the name.
func WrtTemp(s string, suffix ...string) (string, error) {
	pattern := "_del_me_testing"
	if len(suffix) > 0 {
		pattern += "*" + suffix[0]
	}
	f_tmp, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", fmt.Errorf("tempfile fail")
	}

	if _, err := io.WriteString(f_tmp, s); err != nil {
		f_tmp.Close()
		return "", fmt.Errorf("writing string to temp file %v", f_tmp.Name())
	}
	name := f_tmp.Name()
	f_tmp.Close()
	return name, nil
}
