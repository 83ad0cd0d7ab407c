package namelist

import "fmt"

// ConstructionError reports an invalid namelist tree detected while
// classifying entries for serialization: more than one Multi in a
// namelist, a Multi with no sub-groups, or an invalid parameter label.
// It aborts serialization of the offending namelist.
type ConstructionError struct {
	Msg string
}

func (e *ConstructionError) Error() string { return e.Msg }

func constructionErrorf(format string, args ...any) *ConstructionError {
	return &ConstructionError{Msg: fmt.Sprintf(format, args...)}
}

// ParseError reports raw parameter text that cannot be turned into a
// typed value: a fragment that coerces to no acceptable scalar kind,
// an unterminated quoted literal, or (in strict mode) a segment that
// does not match the label=value grammar.
type ParseError struct {
	Msg string
}

func (e *ParseError) Error() string { return e.Msg }

func parseErrorf(format string, args ...any) *ParseError {
	return &ParseError{Msg: fmt.Sprintf(format, args...)}
}
