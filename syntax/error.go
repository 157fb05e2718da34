package syntax

import "fmt"

// ErrorCode identifies the kind of parse failure.
type ErrorCode string

const (
	// ErrUnterminatedEscape indicates a trailing backslash with no
	// character to escape.
	ErrUnterminatedEscape ErrorCode = "unterminated escape"

	// ErrUnterminatedSet indicates a [ with no closing ].
	ErrUnterminatedSet ErrorCode = "unterminated character set"

	// ErrUnterminatedGroup indicates a ( with no closing ).
	ErrUnterminatedGroup ErrorCode = "unterminated group"

	// ErrUnbalancedParen indicates a ) with no matching (.
	ErrUnbalancedParen ErrorCode = "unbalanced closing paren"

	// ErrDuplicateGroupName indicates two groups sharing one name.
	ErrDuplicateGroupName ErrorCode = "duplicate group name"

	// ErrInvalidGroupName indicates a (?<...> header whose name is empty
	// or contains non-word characters.
	ErrInvalidGroupName ErrorCode = "invalid group name"

	// ErrInvalidRepetitionTarget indicates a quantifier with nothing
	// repeatable in front of it (start of a branch, an anchor, or
	// another quantifier).
	ErrInvalidRepetitionTarget ErrorCode = "invalid repetition target"

	// ErrInvalidRepetitionBounds indicates malformed or contradictory
	// {m,n} bounds.
	ErrInvalidRepetitionBounds ErrorCode = "invalid repetition bounds"
)

// String returns the error code description.
func (c ErrorCode) String() string {
	return string(c)
}

// Error is a pattern parse error. Pos is the byte offset within Pattern
// at which the malformed construct was detected; for unterminated
// constructs it is the offset of the opening delimiter.
type Error struct {
	Code    ErrorCode
	Pattern string
	Pos     int
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("rex/syntax: %s at offset %d in %q", e.Code, e.Pos, e.Pattern)
}
