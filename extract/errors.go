package extract

import "fmt"

// ParseError reports a filter pattern that does not compile.
type ParseError struct {
	Pattern string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid filter pattern %q: %v", e.Pattern, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
