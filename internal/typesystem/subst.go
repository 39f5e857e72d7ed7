package typesystem

import (
	"fmt"
	"sort"
	"strings"
)

// Substitution maps generic parameters to the arguments that instantiate
// them. A Substitution is immutable; the With* and Plus methods return
// copies. A missing key is a normal outcome, not an error.
type Substitution struct {
	types   map[TyTypeParameter]Ty
	regions map[ReEarlyBound]Region
	consts  map[CtConstParameter]Const
}

// EmptySubstitution maps nothing.
var EmptySubstitution = Substitution{}

// NewSubstitution copies the given mappings. Any of them may be nil.
func NewSubstitution(types map[TyTypeParameter]Ty, regions map[ReEarlyBound]Region, consts map[CtConstParameter]Const) Substitution {
	s := Substitution{}
	if len(types) > 0 {
		s.types = make(map[TyTypeParameter]Ty, len(types))
		for k, v := range types {
			s.types[k] = v
		}
	}
	if len(regions) > 0 {
		s.regions = make(map[ReEarlyBound]Region, len(regions))
		for k, v := range regions {
			s.regions[k] = v
		}
	}
	if len(consts) > 0 {
		s.consts = make(map[CtConstParameter]Const, len(consts))
		for k, v := range consts {
			s.consts[k] = v
		}
	}
	return s
}

// TypeSubst builds a substitution of type parameters only.
func TypeSubst(types map[TyTypeParameter]Ty) Substitution {
	return NewSubstitution(types, nil, nil)
}

func (s Substitution) Ty(p TyTypeParameter) (Ty, bool) {
	ty, ok := s.types[p]
	return ty, ok
}

func (s Substitution) Region(p ReEarlyBound) (Region, bool) {
	r, ok := s.regions[p]
	return r, ok
}

func (s Substitution) Const(p CtConstParameter) (Const, bool) {
	c, ok := s.consts[p]
	return c, ok
}

func (s Substitution) Len() int {
	return len(s.types) + len(s.regions) + len(s.consts)
}

func (s Substitution) IsEmpty() bool {
	return s.Len() == 0
}

// TypeParams returns the mapped type parameters sorted by name.
func (s Substitution) TypeParams() []TyTypeParameter {
	keys := make([]TyTypeParameter, 0, len(s.types))
	for k := range s.types {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Name < keys[j].Name })
	return keys
}

// RegionParams returns the mapped region parameters sorted by name.
func (s Substitution) RegionParams() []ReEarlyBound {
	keys := make([]ReEarlyBound, 0, len(s.regions))
	for k := range s.regions {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Name < keys[j].Name })
	return keys
}

// ConstParams returns the mapped const parameters sorted by name.
func (s Substitution) ConstParams() []CtConstParameter {
	keys := make([]CtConstParameter, 0, len(s.consts))
	for k := range s.consts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Name < keys[j].Name })
	return keys
}

// Kinds returns every mapped value: types, then regions, then consts, each
// group ordered by parameter name.
func (s Substitution) Kinds() []Kind {
	kinds := make([]Kind, 0, s.Len())
	for _, p := range s.TypeParams() {
		kinds = append(kinds, s.types[p])
	}
	for _, p := range s.RegionParams() {
		kinds = append(kinds, s.regions[p])
	}
	for _, p := range s.ConstParams() {
		kinds = append(kinds, s.consts[p])
	}
	return kinds
}

func (s Substitution) Flags() TypeFlags {
	return MergeFlags(s.Kinds()...)
}

func (s Substitution) WithTy(p TyTypeParameter, ty Ty) Substitution {
	out := NewSubstitution(s.types, s.regions, s.consts)
	if out.types == nil {
		out.types = map[TyTypeParameter]Ty{}
	}
	out.types[p] = ty
	return out
}

func (s Substitution) WithRegion(p ReEarlyBound, r Region) Substitution {
	out := NewSubstitution(s.types, s.regions, s.consts)
	if out.regions == nil {
		out.regions = map[ReEarlyBound]Region{}
	}
	out.regions[p] = r
	return out
}

func (s Substitution) WithConst(p CtConstParameter, c Const) Substitution {
	out := NewSubstitution(s.types, s.regions, s.consts)
	if out.consts == nil {
		out.consts = map[CtConstParameter]Const{}
	}
	out.consts[p] = c
	return out
}

// Plus is the union of both substitutions. On conflicting keys other wins.
func (s Substitution) Plus(other Substitution) Substitution {
	out := NewSubstitution(s.types, s.regions, s.consts)
	for k, v := range other.types {
		if out.types == nil {
			out.types = map[TyTypeParameter]Ty{}
		}
		out.types[k] = v
	}
	for k, v := range other.regions {
		if out.regions == nil {
			out.regions = map[ReEarlyBound]Region{}
		}
		out.regions[k] = v
	}
	for k, v := range other.consts {
		if out.consts == nil {
			out.consts = map[CtConstParameter]Const{}
		}
		out.consts[k] = v
	}
	return out
}

// Compose applies other to every value of s and then adds the entries of
// other that s does not map. Substituting with the result equals substituting
// with s and then with other.
func (s Substitution) Compose(other Substitution) Substitution {
	return other.Plus(Substitute(s, other))
}

// Substitution is an aggregate: folding it folds the mapped values, never the
// keys.

func (s Substitution) FoldWith(f TypeFolder) Substitution {
	return s.SuperFoldWith(f)
}

func (s Substitution) SuperFoldWith(f TypeFolder) Substitution {
	if s.IsEmpty() {
		return s
	}
	out := Substitution{}
	changed := false
	if len(s.types) > 0 {
		out.types = make(map[TyTypeParameter]Ty, len(s.types))
		for _, p := range s.TypeParams() {
			ty := s.types[p]
			out.types[p] = ty.FoldWith(f)
			changed = changed || out.types[p] != ty
		}
	}
	if len(s.regions) > 0 {
		out.regions = make(map[ReEarlyBound]Region, len(s.regions))
		for _, p := range s.RegionParams() {
			r := s.regions[p]
			out.regions[p] = r.FoldWith(f)
			changed = changed || out.regions[p] != r
		}
	}
	if len(s.consts) > 0 {
		out.consts = make(map[CtConstParameter]Const, len(s.consts))
		for _, p := range s.ConstParams() {
			c := s.consts[p]
			out.consts[p] = c.FoldWith(f)
			changed = changed || out.consts[p] != c
		}
	}
	if !changed {
		return s
	}
	return out
}

func (s Substitution) VisitWith(v TypeVisitor) bool {
	return s.SuperVisitWith(v)
}

func (s Substitution) SuperVisitWith(v TypeVisitor) bool {
	for _, p := range s.TypeParams() {
		if s.types[p].VisitWith(v) {
			return true
		}
	}
	for _, p := range s.RegionParams() {
		if s.regions[p].VisitWith(v) {
			return true
		}
	}
	for _, p := range s.ConstParams() {
		if s.consts[p].VisitWith(v) {
			return true
		}
	}
	return false
}

// same reports whether both substitutions hold identical entries.
func (s Substitution) same(other Substitution) bool {
	if s.Len() != other.Len() {
		return false
	}
	for k, v := range s.types {
		if w, ok := other.types[k]; !ok || w != v {
			return false
		}
	}
	for k, v := range s.regions {
		if w, ok := other.regions[k]; !ok || w != v {
			return false
		}
	}
	for k, v := range s.consts {
		if w, ok := other.consts[k]; !ok || w != v {
			return false
		}
	}
	return true
}

func (s Substitution) String() string {
	parts := make([]string, 0, s.Len())
	for _, p := range s.TypeParams() {
		parts = append(parts, fmt.Sprintf("%s => %s", p, s.types[p]))
	}
	for _, p := range s.RegionParams() {
		parts = append(parts, fmt.Sprintf("%s => %s", p, s.regions[p]))
	}
	for _, p := range s.ConstParams() {
		parts = append(parts, fmt.Sprintf("%s => %s", p, s.consts[p]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
