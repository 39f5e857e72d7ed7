package typesystem

import "strings"

// TypeFlags summarises which interesting features a term's subtree contains.
// A term's flags are the bitwise OR of its children's flags plus the bits the
// node contributes itself. They are computed once, when the term is built.
type TypeFlags uint32

const (
	HasTyInferMask TypeFlags = 1 << iota
	HasTyTypeParameterMask
	HasTyProjectionMask
	HasReEarlyBoundMask
	HasCtInferMask
	HasCtParameterMask
)

const (
	NeedsInferMask = HasTyInferMask | HasCtInferMask
	NeedsSubstMask = HasTyTypeParameterMask | HasReEarlyBoundMask | HasCtParameterMask
)

var flagNames = []struct {
	mask TypeFlags
	name string
}{
	{HasTyInferMask, "ty_infer"},
	{HasTyTypeParameterMask, "ty_param"},
	{HasTyProjectionMask, "ty_projection"},
	{HasReEarlyBoundMask, "re_early_bound"},
	{HasCtInferMask, "ct_infer"},
	{HasCtParameterMask, "ct_param"},
}

// Has reports whether any bit of mask is set.
func (f TypeFlags) Has(mask TypeFlags) bool {
	return f&mask != 0
}

func (f TypeFlags) String() string {
	if f == 0 {
		return "none"
	}
	parts := []string{}
	for _, fn := range flagNames {
		if f.Has(fn.mask) {
			parts = append(parts, fn.name)
		}
	}
	return strings.Join(parts, "|")
}

// Kind is an entity of the type system: a type, a region or a const.
type Kind interface {
	Flags() TypeFlags
	String() string
}

// MergeFlags ORs together the flags of every element.
func MergeFlags[K Kind](kinds ...K) TypeFlags {
	var flags TypeFlags
	for _, k := range kinds {
		flags |= k.Flags()
	}
	return flags
}
