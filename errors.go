package widepath

import (
	"fmt"
)

// InputNotFoundError Required raw file is missing. Fatal, nothing has been written.
type InputNotFoundError struct {
	Path string
}

func (e *InputNotFoundError) Error() string {
	return fmt.Sprintf("input file not found: '%s'", e.Path)
}

// ParseError Raw line violates the expected column count or numeric format
/*
	Carries the offending line for diagnosis.
*/
type ParseError struct {
	File   string
	Line   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s: malformed line '%s'", e.File, e.Reason, e.Line)
}

// GraphIntegrityError Node-id space is broken: non-contiguous ids under the
// validate-only policy, or an edge referencing an unknown node after
// canonicalization.
type GraphIntegrityError struct {
	Reason string
}

func (e *GraphIntegrityError) Error() string {
	return fmt.Sprintf("graph integrity: %s", e.Reason)
}
