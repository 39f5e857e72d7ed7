package typesystem

import (
	"fmt"

	"github.com/funvibe/tyfold/internal/config"
)

// Const is a const-generic argument term.
type Const interface {
	Kind
	TypeFoldable[Const]
	isConst()
}

// CtValue is an evaluated constant such as `3` or `true`.
type CtValue struct {
	Value string
}

func (c CtValue) Flags() TypeFlags { return 0 }
func (c CtValue) String() string   { return c.Value }

// CtInfer is a const inference variable.
type CtInfer struct {
	ID int
}

func (c CtInfer) Flags() TypeFlags { return HasCtInferMask }
func (c CtInfer) String() string   { return fmt.Sprintf("?c%d", c.ID) }

// FreshCtInfer replaces a CtInfer inside cache keys. Like FreshTyInfer it
// carries no flags.
type FreshCtInfer struct {
	ID int
}

func (c FreshCtInfer) Flags() TypeFlags { return 0 }
func (c FreshCtInfer) String() string   { return fmt.Sprintf("?#c%d", c.ID) }

// CtConstParameter is a const generic parameter, identified by name.
type CtConstParameter struct {
	Name string
}

func (c CtConstParameter) Flags() TypeFlags { return HasCtParameterMask }
func (c CtConstParameter) String() string   { return c.Name }

// CtUnknown stands for a constant that could not be determined.
type CtUnknown struct{}

func (CtUnknown) Flags() TypeFlags { return 0 }
func (CtUnknown) String() string   { return config.UnknownConstName }

func (CtValue) isConst()          {}
func (CtInfer) isConst()          {}
func (FreshCtInfer) isConst()     {}
func (CtConstParameter) isConst() {}
func (CtUnknown) isConst()        {}

func (c CtValue) FoldWith(f TypeFolder) Const              { return f.FoldConst(c) }
func (c CtValue) SuperFoldWith(TypeFolder) Const           { return c }
func (c CtValue) VisitWith(v TypeVisitor) bool             { return v.VisitConst(c) }
func (c CtValue) SuperVisitWith(TypeVisitor) bool          { return false }
func (c CtInfer) FoldWith(f TypeFolder) Const              { return f.FoldConst(c) }
func (c CtInfer) SuperFoldWith(TypeFolder) Const           { return c }
func (c CtInfer) VisitWith(v TypeVisitor) bool             { return v.VisitConst(c) }
func (c CtInfer) SuperVisitWith(TypeVisitor) bool          { return false }
func (c FreshCtInfer) FoldWith(f TypeFolder) Const         { return f.FoldConst(c) }
func (c FreshCtInfer) SuperFoldWith(TypeFolder) Const      { return c }
func (c FreshCtInfer) VisitWith(v TypeVisitor) bool        { return v.VisitConst(c) }
func (c FreshCtInfer) SuperVisitWith(TypeVisitor) bool     { return false }
func (c CtConstParameter) FoldWith(f TypeFolder) Const     { return f.FoldConst(c) }
func (c CtConstParameter) SuperFoldWith(TypeFolder) Const  { return c }
func (c CtConstParameter) VisitWith(v TypeVisitor) bool    { return v.VisitConst(c) }
func (c CtConstParameter) SuperVisitWith(TypeVisitor) bool { return false }
func (c CtUnknown) FoldWith(f TypeFolder) Const            { return f.FoldConst(c) }
func (c CtUnknown) SuperFoldWith(TypeFolder) Const         { return c }
func (c CtUnknown) VisitWith(v TypeVisitor) bool           { return v.VisitConst(c) }
func (c CtUnknown) SuperVisitWith(TypeVisitor) bool        { return false }
