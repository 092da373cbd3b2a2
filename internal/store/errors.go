package store

import "fmt"

// ParseError reports section content that is not a JSON object. It is only
// returned by stores built WithStrictDecoding.
type ParseError struct {
	Section string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse section %q: %v", e.Section, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
