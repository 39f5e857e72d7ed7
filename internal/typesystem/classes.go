package typesystem

import (
	"fmt"
	"strings"
)

// TyClass identifies Ty variants. Classes are single bits, so a set of
// classes is their bitwise OR.
type TyClass uint32

const (
	ClassPrimitive TyClass = 1 << iota
	ClassUnknown
	ClassNever
	ClassInfer
	ClassFreshInfer
	ClassTypeParameter
	ClassAdt
	ClassTuple
	ClassReference
	ClassPointer
	ClassArray
	ClassSlice
	ClassFunction
	ClassProjection
	ClassTraitObject
)

// ConstClass identifies Const variants, as TyClass does for types.
type ConstClass uint32

const (
	ClassCtValue ConstClass = 1 << iota
	ClassCtInfer
	ClassCtFreshInfer
	ClassCtConstParameter
	ClassCtUnknown
)

var tyClassNames = map[string]TyClass{
	"primitive":    ClassPrimitive,
	"unknown":      ClassUnknown,
	"never":        ClassNever,
	"infer":        ClassInfer,
	"fresh_infer":  ClassFreshInfer,
	"param":        ClassTypeParameter,
	"adt":          ClassAdt,
	"tuple":        ClassTuple,
	"reference":    ClassReference,
	"pointer":      ClassPointer,
	"array":        ClassArray,
	"slice":        ClassSlice,
	"function":     ClassFunction,
	"projection":   ClassProjection,
	"trait_object": ClassTraitObject,
}

var constClassNames = map[string]ConstClass{
	"value":       ClassCtValue,
	"infer":       ClassCtInfer,
	"fresh_infer": ClassCtFreshInfer,
	"param":       ClassCtConstParameter,
	"unknown":     ClassCtUnknown,
}

// ClassOf returns the class of ty's variant.
func ClassOf(ty Ty) TyClass {
	switch ty.(type) {
	case TyPrimitive:
		return ClassPrimitive
	case TyUnknown:
		return ClassUnknown
	case TyNever:
		return ClassNever
	case TyInfer:
		return ClassInfer
	case FreshTyInfer:
		return ClassFreshInfer
	case TyTypeParameter:
		return ClassTypeParameter
	case *TyAdt:
		return ClassAdt
	case *TyTuple:
		return ClassTuple
	case *TyReference:
		return ClassReference
	case *TyPointer:
		return ClassPointer
	case *TyArray:
		return ClassArray
	case *TySlice:
		return ClassSlice
	case *TyFunction:
		return ClassFunction
	case *TyProjection:
		return ClassProjection
	case *TyTraitObject:
		return ClassTraitObject
	default:
		panic(fmt.Sprintf("unknown type variant %T", ty))
	}
}

// ConstClassOf returns the class of ct's variant.
func ConstClassOf(ct Const) ConstClass {
	switch ct.(type) {
	case CtValue:
		return ClassCtValue
	case CtInfer:
		return ClassCtInfer
	case FreshCtInfer:
		return ClassCtFreshInfer
	case CtConstParameter:
		return ClassCtConstParameter
	case CtUnknown:
		return ClassCtUnknown
	default:
		panic(fmt.Sprintf("unknown const variant %T", ct))
	}
}

// ParseTyClasses turns names like "infer" or "projection" into a class set.
func ParseTyClasses(names ...string) (TyClass, error) {
	var set TyClass
	for _, name := range names {
		c, ok := tyClassNames[strings.ToLower(name)]
		if !ok {
			return 0, fmt.Errorf("unknown type class %q", name)
		}
		set |= c
	}
	return set, nil
}

// ParseConstClasses is ParseTyClasses for const classes.
func ParseConstClasses(names ...string) (ConstClass, error) {
	var set ConstClass
	for _, name := range names {
		c, ok := constClassNames[strings.ToLower(name)]
		if !ok {
			return 0, fmt.Errorf("unknown const class %q", name)
		}
		set |= c
	}
	return set, nil
}
