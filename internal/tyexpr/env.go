package tyexpr

import (
	"fmt"
	"strings"

	"github.com/funvibe/tyfold/internal/config"
	ts "github.com/funvibe/tyfold/internal/typesystem"
)

// Env holds the declarations the parser resolves names against. Traits that
// are used but not declared are added on first use, with positional
// parameters, so an Env is not safe for concurrent parsing.
type Env struct {
	params    map[string]ts.TyTypeParameter
	lifetimes map[string]ts.ReEarlyBound
	consts    map[string]ts.CtConstParameter
	traits    map[string]*ts.GenericItem
}

func NewEnv() *Env {
	return &Env{
		params:    make(map[string]ts.TyTypeParameter),
		lifetimes: make(map[string]ts.ReEarlyBound),
		consts:    make(map[string]ts.CtConstParameter),
		traits:    make(map[string]*ts.GenericItem),
	}
}

// EnvFromConfig declares everything a fixture declares.
func EnvFromConfig(cfg *config.Config) *Env {
	env := NewEnv().
		DeclareParams(cfg.Params...).
		DeclareLifetimes(cfg.Lifetimes...).
		DeclareConsts(cfg.Consts...)
	for name, params := range cfg.Traits {
		env.DeclareTrait(name, params...)
	}
	return env
}

func (e *Env) DeclareParams(names ...string) *Env {
	for _, n := range names {
		e.params[n] = ts.TyTypeParameter{Name: n}
	}
	return e
}

// DeclareLifetimes declares lifetimes by name, with or without the quote.
func (e *Env) DeclareLifetimes(names ...string) *Env {
	for _, n := range names {
		n = strings.TrimPrefix(n, "'")
		e.lifetimes[n] = ts.ReEarlyBound{Name: n}
	}
	return e
}

func (e *Env) DeclareConsts(names ...string) *Env {
	for _, n := range names {
		e.consts[n] = ts.CtConstParameter{Name: n}
	}
	return e
}

// DeclareTrait registers a trait with its type parameters in order.
func (e *Env) DeclareTrait(name string, params ...string) *ts.GenericItem {
	item := &ts.GenericItem{Name: name}
	for _, p := range params {
		item.TypeParams = append(item.TypeParams, ts.TyTypeParameter{Name: p})
	}
	e.traits[name] = item
	return item
}

func (e *Env) Param(name string) (ts.TyTypeParameter, bool) {
	p, ok := e.params[name]
	return p, ok
}

func (e *Env) Lifetime(name string) (ts.ReEarlyBound, bool) {
	r, ok := e.lifetimes[strings.TrimPrefix(name, "'")]
	return r, ok
}

func (e *Env) ConstParam(name string) (ts.CtConstParameter, bool) {
	c, ok := e.consts[name]
	return c, ok
}

func (e *Env) Trait(name string) (*ts.GenericItem, bool) {
	item, ok := e.traits[name]
	return item, ok
}

// traitFor returns the declared trait, or declares one with arity positional
// parameters named $0, $1, ...
func (e *Env) traitFor(name string, arity int) (*ts.GenericItem, error) {
	if item, ok := e.traits[name]; ok {
		if len(item.TypeParams) != arity {
			return nil, fmt.Errorf("trait %s takes %d type arguments, got %d", name, len(item.TypeParams), arity)
		}
		return item, nil
	}
	params := make([]string, arity)
	for i := range params {
		params[i] = fmt.Sprintf("$%d", i)
	}
	return e.DeclareTrait(name, params...), nil
}
