package typesystem

import (
	"testing"
)

func resultOfInferAndE() Ty {
	return Adt("Result", NewTyVar(0), TyTypeParameter{Name: "E"})
}

func TestResultScenario(t *testing.T) {
	ty := resultOfInferAndE()

	if !HasTyInfer(ty) || !HasTyTypeParameters(ty) {
		t.Errorf("%s: expected infer and type parameter flags", ty)
	}
	if HasTyProjection(ty) || HasReEarlyBounds(ty) || HasCtInfer(ty) || HasCtConstParameters(ty) {
		t.Errorf("%s: unexpected flags %s", ty, ty.Flags())
	}
	if !NeedsInfer(ty) || !NeedsSubst(ty) {
		t.Errorf("%s: NeedsInfer/NeedsSubst should hold", ty)
	}

	resolved := FoldTyInferWith(ty, func(TyInfer) Ty { return TyI32 })
	if resolved.String() != "Result<i32, E>" {
		t.Errorf("got %s", resolved)
	}
	if HasTyInfer(resolved) {
		t.Errorf("%s still has inference variables", resolved)
	}
	if !HasTyTypeParameters(resolved) {
		t.Errorf("resolution dropped the type parameter")
	}

	subst := TypeSubst(map[TyTypeParameter]Ty{{Name: "E"}: Adt("String")})
	substituted := Substitute(ty, subst)
	if substituted.String() != "Result<?0, String>" {
		t.Errorf("got %s", substituted)
	}
	if NeedsSubst(substituted) || HasTyTypeParameters(substituted) {
		t.Errorf("%s: parameters remain after substitution", substituted)
	}
	if !HasTyInfer(substituted) || !NeedsInfer(substituted) {
		t.Errorf("%s: substitution dropped the inference variable", substituted)
	}
}

func TestFoldTyInferWithChains(t *testing.T) {
	bindings := map[TyInfer]Ty{
		NewTyVar(0): Adt("Vec", NewTyVar(1)),
		NewTyVar(1): NewTuple(NewIntVar(0), TyBool),
		NewIntVar(0): TyU8,
	}
	calls := 0
	got := FoldTyInferWith[Ty](NewSlice(NewTyVar(0)), func(v TyInfer) Ty {
		calls++
		if b, ok := bindings[v]; ok {
			return b
		}
		return v
	})
	if got.String() != "[Vec<(u8, bool)>]" {
		t.Errorf("got %s", got)
	}
	if calls != 3 {
		t.Errorf("fn called %d times, want 3", calls)
	}
}

// countingFolder counts FoldTy calls made below a flag-pruning query.
type countingFolder struct {
	IdentityFolder
	calls int
}

func (f *countingFolder) FoldTy(ty Ty) Ty {
	f.calls++
	return ty.SuperFoldWith(f)
}

func TestQueriesPruneByFlags(t *testing.T) {
	var ty Ty = Adt("HashMap", Adt("Vec", TyU8), NewFunction([]Ty{TyBool, TyStr}, TyNever{}))

	calls := 0
	FoldTyInferWith(ty, func(v TyInfer) Ty { calls++; return v })
	FoldTyTypeParameterWith(ty, func(p TyTypeParameter) Ty { calls++; return p })
	FoldCtInferWith(ty, func(c CtInfer) Const { calls++; return c })
	FoldCtConstParameterWith(ty, func(p CtConstParameter) Const { calls++; return p })
	FoldTyProjectionWith(ty, func(p *TyProjection) Ty { calls++; return p })
	VisitInferTys(ty, func(TyInfer) bool { calls++; return false })
	if calls != 0 {
		t.Errorf("callbacks invoked %d times on a term without features", calls)
	}

	// The same term under a non-pruning folder is walked completely.
	f := &countingFolder{}
	ty.FoldWith(f)
	if f.calls != 7 {
		t.Errorf("full walk made %d calls, want 7", f.calls)
	}

	for name, got := range map[string]Ty{
		"infer":   FoldTyInferWith(ty, func(TyInfer) Ty { return TyUnknown{} }),
		"param":   FoldTyTypeParameterWith(ty, func(TyTypeParameter) Ty { return TyUnknown{} }),
		"subst":   SubstituteOrUnknown(ty, EmptySubstitution),
		"project": FoldTyProjectionWith(ty, func(*TyProjection) Ty { return TyUnknown{} }),
	} {
		if got != ty {
			t.Errorf("%s: fold of a term without matches rebuilt it", name)
		}
	}
}

func TestHasQueriesOnLeaves(t *testing.T) {
	if !HasReEarlyBounds[Region](ReEarlyBound{Name: "a"}) || HasReEarlyBounds[Region](ReStatic{}) {
		t.Errorf("region has-query mismatch")
	}
	if !HasCtInfer[Const](CtInfer{ID: 1}) || HasCtInfer[Const](FreshCtInfer{ID: 1}) {
		t.Errorf("const has-query mismatch")
	}
	if !HasCtConstParameters[Const](CtConstParameter{Name: "N"}) {
		t.Errorf("const parameter not detected")
	}
	if HasTyInfer[Ty](FreshTyInfer{ID: 0}) {
		t.Errorf("fresh variables must not count as inference variables")
	}
}

func TestCollectAndVisitInferTys(t *testing.T) {
	var ty Ty = NewFunction(
		[]Ty{NewTyVar(2), Adt("Vec", NewIntVar(0)), TyBool},
		NewTuple(NewTyVar(2), NewFloatVar(1)),
	)

	got := CollectInferTys(ty)
	want := []TyInfer{NewTyVar(2), NewIntVar(0), NewTyVar(2), NewFloatVar(1)}
	if len(got) != len(want) {
		t.Fatalf("CollectInferTys = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("[%d] = %s, want %s", i, got[i], want[i])
		}
	}

	seen := 0
	stopped := VisitInferTys(ty, func(v TyInfer) bool {
		seen++
		return v.Kind == IntVarKind
	})
	if !stopped || seen != 2 {
		t.Errorf("VisitInferTys stopped=%v after %d variables", stopped, seen)
	}

	if vars := CollectInferTys[Ty](TyU8); vars == nil || len(vars) != 0 {
		t.Errorf("expected an empty, non-nil list, got %#v", vars)
	}
}

func TestResolveThenCollectIsEmpty(t *testing.T) {
	terms := []Ty{
		resultOfInferAndE(),
		NewReference(NewSlice(NewIntVar(3)), false, ReStatic{}),
		NewProjection(NewTyVar(1), NewBoundElement(&GenericItem{Name: "Tr"}, EmptySubstitution, map[string]Ty{"A": NewTyVar(4)}), "B"),
	}
	for _, ty := range terms {
		resolved := FoldTyInferWith(ty, func(v TyInfer) Ty {
			if v.Kind == IntVarKind {
				return TyI32
			}
			return TyUnknown{}
		})
		if vars := CollectInferTys(resolved); len(vars) != 0 {
			t.Errorf("%s -> %s still has %v", ty, resolved, vars)
		}
		if HasTyInfer(resolved) {
			t.Errorf("%s: flags still report inference variables", resolved)
		}
	}
}

func TestFoldTyTypeParameterWith(t *testing.T) {
	ty := NewFunction([]Ty{TyTypeParameter{Name: "A"}}, TyTypeParameter{Name: "B"})
	got := FoldTyTypeParameterWith[Ty](ty, func(p TyTypeParameter) Ty {
		return Adt("Box", TyTypeParameter{Name: p.Name + "1"})
	})
	if got.String() != "fn(Box<A1>) -> Box<B1>" {
		t.Errorf("got %s", got)
	}
}

func TestFoldConstsWith(t *testing.T) {
	ty := NewTuple(NewArray(TyU8, CtInfer{ID: 0}), NewArray(TyU16, CtConstParameter{Name: "N"}))

	got := FoldCtInferWith[Ty](ty, func(CtInfer) Const { return CtValue{Value: "4"} })
	if got.String() != "([u8; 4], [u16; N])" {
		t.Errorf("FoldCtInferWith = %s", got)
	}
	got = FoldCtConstParameterWith(got, func(CtConstParameter) Const { return CtValue{Value: "2"} })
	if got.String() != "([u8; 4], [u16; 2])" {
		t.Errorf("FoldCtConstParameterWith = %s", got)
	}
	if got.Flags() != 0 {
		t.Errorf("flags = %s", got.Flags())
	}
}

func TestFoldTyProjectionWith(t *testing.T) {
	deref := &GenericItem{Name: "Deref"}
	inner := NewProjection(TyTypeParameter{Name: "T"}, NewBoundElement(deref, EmptySubstitution, nil), "Target")
	outer := NewProjection(inner, NewBoundElement(deref, EmptySubstitution, nil), "Target")
	ty := Adt("Vec", outer)

	var seen []string
	got := FoldTyProjectionWith[Ty](ty, func(p *TyProjection) Ty {
		seen = append(seen, p.String())
		return TyStr
	})
	if got.String() != "Vec<str>" {
		t.Errorf("got %s", got)
	}
	if len(seen) != 1 || seen[0] != outer.String() {
		t.Errorf("only the outermost projection should be handed to fn, saw %v", seen)
	}
}

func TestContainsTyOfClass(t *testing.T) {
	var ty Ty = NewFunction([]Ty{NewReference(TyNever{}, false, nil)}, Adt("Option", NewPointer(TyU8, false)))

	tests := []struct {
		classes []string
		want    bool
	}{
		{[]string{"never"}, true},
		{[]string{"pointer"}, true},
		{[]string{"function"}, true},
		{[]string{"infer", "param"}, false},
		{[]string{"slice", "adt"}, true},
		{[]string{"trait_object"}, false},
	}

	for _, tt := range tests {
		classes, err := ParseTyClasses(tt.classes...)
		if err != nil {
			t.Fatalf("ParseTyClasses(%v): %v", tt.classes, err)
		}
		if got := ContainsTyOfClass(ty, classes); got != tt.want {
			t.Errorf("ContainsTyOfClass(%v) = %v, want %v", tt.classes, got, tt.want)
		}
	}

	if _, err := ParseTyClasses("infer", "bogus"); err == nil {
		t.Errorf("expected an error for an unknown class")
	}
}

func TestContainsConstOfClass(t *testing.T) {
	var ty Ty = Adt("Pair", NewArray(TyU8, CtValue{Value: "3"}), NewSlice(NewArray(TyU8, FreshCtInfer{ID: 0})))

	tests := []struct {
		classes []string
		want    bool
	}{
		{[]string{"value"}, true},
		{[]string{"fresh_infer"}, true},
		{[]string{"infer"}, false},
		{[]string{"param", "unknown"}, false},
	}

	for _, tt := range tests {
		classes, err := ParseConstClasses(tt.classes...)
		if err != nil {
			t.Fatalf("ParseConstClasses(%v): %v", tt.classes, err)
		}
		if got := ContainsConstOfClass(ty, classes); got != tt.want {
			t.Errorf("ContainsConstOfClass(%v) = %v, want %v", tt.classes, got, tt.want)
		}
	}
}
