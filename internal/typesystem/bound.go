package typesystem

import (
	"fmt"
	"sort"
	"strings"
)

// GenericItem is a generic declaration (trait, ADT, type alias) together with
// its parameters in declaration order.
type GenericItem struct {
	Name         string
	TypeParams   []TyTypeParameter
	RegionParams []ReEarlyBound
	ConstParams  []CtConstParameter
}

// BoundElement is a generic item instantiated by a substitution, plus the
// associated types bound on it (e.g. `Iterator<Item = u8>`).
type BoundElement struct {
	Item  *GenericItem
	Subst Substitution
	Assoc map[string]Ty
}

// NewBoundElement pairs item with subst. assoc may be nil.
func NewBoundElement(item *GenericItem, subst Substitution, assoc map[string]Ty) BoundElement {
	return BoundElement{Item: item, Subst: subst, Assoc: assoc}
}

// MergeElementFlags combines the flags of the substitution values and the
// associated types of e.
func MergeElementFlags(e BoundElement) TypeFlags {
	flags := e.Subst.Flags()
	for _, name := range e.assocNames() {
		flags |= e.Assoc[name].Flags()
	}
	return flags
}

func (e BoundElement) Flags() TypeFlags {
	return MergeElementFlags(e)
}

func (e BoundElement) assocNames() []string {
	names := make([]string, 0, len(e.Assoc))
	for name := range e.Assoc {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (e BoundElement) FoldWith(f TypeFolder) BoundElement {
	return e.SuperFoldWith(f)
}

func (e BoundElement) SuperFoldWith(f TypeFolder) BoundElement {
	subst := e.Subst.FoldWith(f)
	var assoc map[string]Ty
	if len(e.Assoc) > 0 {
		assoc = make(map[string]Ty, len(e.Assoc))
		for _, name := range e.assocNames() {
			assoc[name] = e.Assoc[name].FoldWith(f)
		}
	}
	return BoundElement{Item: e.Item, Subst: subst, Assoc: assoc}
}

func (e BoundElement) VisitWith(v TypeVisitor) bool {
	return e.SuperVisitWith(v)
}

func (e BoundElement) SuperVisitWith(v TypeVisitor) bool {
	if e.Subst.VisitWith(v) {
		return true
	}
	for _, name := range e.assocNames() {
		if e.Assoc[name].VisitWith(v) {
			return true
		}
	}
	return false
}

func (e BoundElement) same(other BoundElement) bool {
	if e.Item != other.Item || len(e.Assoc) != len(other.Assoc) || !e.Subst.same(other.Subst) {
		return false
	}
	for name, ty := range e.Assoc {
		if o, ok := other.Assoc[name]; !ok || o != ty {
			return false
		}
	}
	return true
}

// String prints the item with its arguments in declaration order. A
// parameter the substitution does not map is printed as itself.
func (e BoundElement) String() string {
	if e.Item == nil {
		return "<nil>"
	}
	args := []string{}
	for _, p := range e.Item.RegionParams {
		if r, ok := e.Subst.Region(p); ok {
			args = append(args, r.String())
		} else {
			args = append(args, p.String())
		}
	}
	for _, p := range e.Item.TypeParams {
		if ty, ok := e.Subst.Ty(p); ok {
			args = append(args, ty.String())
		} else {
			args = append(args, p.String())
		}
	}
	for _, p := range e.Item.ConstParams {
		if c, ok := e.Subst.Const(p); ok {
			args = append(args, c.String())
		} else {
			args = append(args, p.String())
		}
	}
	for _, name := range e.assocNames() {
		args = append(args, fmt.Sprintf("%s = %s", name, e.Assoc[name]))
	}
	if len(args) == 0 {
		return e.Item.Name
	}
	return fmt.Sprintf("%s<%s>", e.Item.Name, strings.Join(args, ", "))
}
