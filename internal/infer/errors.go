package infer

import "fmt"

// AlreadyBoundError is returned when binding a variable that already has a
// value.
type AlreadyBoundError struct {
	Var      string
	Existing string
}

func (e *AlreadyBoundError) Error() string {
	return fmt.Sprintf("%s is already bound to %s", e.Var, e.Existing)
}

func NewAlreadyBoundError(v, existing fmt.Stringer) *AlreadyBoundError {
	return &AlreadyBoundError{Var: v.String(), Existing: existing.String()}
}

// KindMismatchError is returned when an integer or float variable would be
// bound to a type outside its family.
type KindMismatchError struct {
	Var string
	Ty  string
}

func (e *KindMismatchError) Error() string {
	return fmt.Sprintf("cannot bind %s to %s", e.Var, e.Ty)
}

func NewKindMismatchError(v, ty fmt.Stringer) *KindMismatchError {
	return &KindMismatchError{Var: v.String(), Ty: ty.String()}
}

// CyclicBindingError is returned when a variable would occur in its own
// resolved value, which would make resolution diverge.
type CyclicBindingError struct {
	Var string
	Ty  string
}

func (e *CyclicBindingError) Error() string {
	return fmt.Sprintf("binding %s to %s would be cyclic", e.Var, e.Ty)
}

func NewCyclicBindingError(v, ty fmt.Stringer) *CyclicBindingError {
	return &CyclicBindingError{Var: v.String(), Ty: ty.String()}
}
