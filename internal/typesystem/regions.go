package typesystem

import (
	"fmt"

	"github.com/funvibe/tyfold/internal/config"
)

// Region is a lifetime term.
type Region interface {
	Kind
	TypeFoldable[Region]
	isRegion()
}

// ReEarlyBound is a lifetime parameter bound at the defining generic scope.
type ReEarlyBound struct {
	Name string
}

func (r ReEarlyBound) Flags() TypeFlags { return HasReEarlyBoundMask }
func (r ReEarlyBound) String() string   { return "'" + r.Name }

// ReStatic is the 'static lifetime.
type ReStatic struct{}

func (ReStatic) Flags() TypeFlags { return 0 }
func (ReStatic) String() string   { return "'static" }

// ReUnknown stands for a lifetime that could not be determined.
type ReUnknown struct{}

func (ReUnknown) Flags() TypeFlags { return 0 }
func (ReUnknown) String() string   { return config.UnknownRegionName }

// ReErased is a lifetime that was deliberately dropped.
type ReErased struct{}

func (ReErased) Flags() TypeFlags { return 0 }
func (ReErased) String() string   { return "'erased" }

// ReVar is a region inference variable. Region variables are solved outside
// of type inference and do not set any flag.
type ReVar struct {
	ID int
}

func (r ReVar) Flags() TypeFlags { return 0 }
func (r ReVar) String() string   { return fmt.Sprintf("'?%d", r.ID) }

func (ReEarlyBound) isRegion() {}
func (ReStatic) isRegion()     {}
func (ReUnknown) isRegion()    {}
func (ReErased) isRegion()     {}
func (ReVar) isRegion()        {}

// Regions have no children, so the deep steps are trivial.

func (r ReEarlyBound) FoldWith(f TypeFolder) Region       { return f.FoldRegion(r) }
func (r ReEarlyBound) SuperFoldWith(TypeFolder) Region    { return r }
func (r ReEarlyBound) VisitWith(v TypeVisitor) bool       { return v.VisitRegion(r) }
func (r ReEarlyBound) SuperVisitWith(TypeVisitor) bool    { return false }
func (r ReStatic) FoldWith(f TypeFolder) Region           { return f.FoldRegion(r) }
func (r ReStatic) SuperFoldWith(TypeFolder) Region        { return r }
func (r ReStatic) VisitWith(v TypeVisitor) bool           { return v.VisitRegion(r) }
func (r ReStatic) SuperVisitWith(TypeVisitor) bool        { return false }
func (r ReUnknown) FoldWith(f TypeFolder) Region          { return f.FoldRegion(r) }
func (r ReUnknown) SuperFoldWith(TypeFolder) Region       { return r }
func (r ReUnknown) VisitWith(v TypeVisitor) bool          { return v.VisitRegion(r) }
func (r ReUnknown) SuperVisitWith(TypeVisitor) bool       { return false }
func (r ReErased) FoldWith(f TypeFolder) Region           { return f.FoldRegion(r) }
func (r ReErased) SuperFoldWith(TypeFolder) Region        { return r }
func (r ReErased) VisitWith(v TypeVisitor) bool           { return v.VisitRegion(r) }
func (r ReErased) SuperVisitWith(TypeVisitor) bool        { return false }
func (r ReVar) FoldWith(f TypeFolder) Region              { return f.FoldRegion(r) }
func (r ReVar) SuperFoldWith(TypeFolder) Region           { return r }
func (r ReVar) VisitWith(v TypeVisitor) bool              { return v.VisitRegion(r) }
func (r ReVar) SuperVisitWith(TypeVisitor) bool           { return false }
