package tyexpr

import "fmt"

// ParseError reports malformed input at a column (1-based).
type ParseError struct {
	Input  string
	Column int
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %q: column %d: %s", e.Input, e.Column, e.Msg)
}

func NewParseError(input string, column int, msg string) *ParseError {
	return &ParseError{Input: input, Column: column, Msg: msg}
}

// UndeclaredError indicates a lifetime or const parameter that the Env does
// not declare.
type UndeclaredError struct {
	What string
	Name string
}

func (e *UndeclaredError) Error() string {
	return fmt.Sprintf("undeclared %s: %s", e.What, e.Name)
}

func NewUndeclaredError(what, name string) *UndeclaredError {
	return &UndeclaredError{What: what, Name: name}
}
