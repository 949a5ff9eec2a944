package regexlib

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrPattern is matched by every PatternError via errors.Is.
var ErrPattern = errors.New("regex could not be parsed")

// PatternError reports a malformed pattern. Pos is a byte offset into
// Pattern.
type PatternError struct {
	Pattern string
	Pos     int
	Msg     string
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("%v: %s at offset %d in %q", ErrPattern, e.Msg, e.Pos, e.Pattern)
}

func (e *PatternError) Is(target error) bool { return target == ErrPattern }

func quoteRune(r rune) string { return strconv.QuoteRune(r) }
