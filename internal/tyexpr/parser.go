package tyexpr

import (
	"fmt"
	"strconv"
	"strings"

	ts "github.com/funvibe/tyfold/internal/typesystem"
)

// Parser is a recursive descent parser for the textual type notation:
//
//	Result<?0, E>   &'a mut [T; N]   <T as Iterator>::Item   fn(u8) -> !
//	dyn Display + 'static   *const (i32, bool)   Vec<_>   [u8; ?c0]
type Parser struct {
	l     *Lexer
	env   *Env
	input string

	curToken  Token
	peekToken Token
}

func NewParser(input string, env *Env) *Parser {
	if env == nil {
		env = NewEnv()
	}
	p := &Parser{l: NewLexer(input), env: env, input: input}
	p.nextToken()
	p.nextToken()
	return p
}

// ParseTy parses a complete type.
func ParseTy(input string, env *Env) (ts.Ty, error) {
	p := NewParser(input, env)
	ty, err := p.parseTy()
	if err != nil {
		return nil, err
	}
	if err := p.expectEnd(); err != nil {
		return nil, err
	}
	return ty, nil
}

// ParseConst parses a complete const argument.
func ParseConst(input string, env *Env) (ts.Const, error) {
	p := NewParser(input, env)
	ct, err := p.parseConst()
	if err != nil {
		return nil, err
	}
	if err := p.expectEnd(); err != nil {
		return nil, err
	}
	return ct, nil
}

// ParseRegion parses a complete lifetime.
func ParseRegion(input string, env *Env) (ts.Region, error) {
	p := NewParser(input, env)
	if !p.curTokenIs(LIFETIME) {
		return nil, p.errorf("expected lifetime, got %q", p.curToken.Literal)
	}
	r, err := p.parseRegion()
	if err != nil {
		return nil, err
	}
	if err := p.expectEnd(); err != nil {
		return nil, err
	}
	return r, nil
}

// MustParseTy is ParseTy for inputs known to be valid; it panics on error.
func MustParseTy(input string, env *Env) ts.Ty {
	ty, err := ParseTy(input, env)
	if err != nil {
		panic(err)
	}
	return ty
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curTokenIs(t TokenType) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t TokenType) bool { return p.peekToken.Type == t }

func (p *Parser) curKeyword(kw string) bool {
	return p.curTokenIs(IDENT) && p.curToken.Literal == kw
}

func (p *Parser) expectPeek(t TokenType) error {
	if p.peekTokenIs(t) {
		p.nextToken()
		return nil
	}
	return p.peekError(t)
}

func (p *Parser) peekError(t TokenType) error {
	return NewParseError(p.input, p.peekToken.Column,
		fmt.Sprintf("expected %s, got %s", t, describe(p.peekToken)))
}

func (p *Parser) errorf(format string, args ...any) error {
	return NewParseError(p.input, p.curToken.Column, fmt.Sprintf(format, args...))
}

func (p *Parser) expectEnd() error {
	if !p.peekTokenIs(EOF) {
		return NewParseError(p.input, p.peekToken.Column, "unexpected "+describe(p.peekToken))
	}
	return nil
}

func describe(tok Token) string {
	if tok.Type == EOF {
		return "end of input"
	}
	return fmt.Sprintf("%q", tok.Literal)
}

// parseTy parses the type starting at curToken and leaves curToken on its
// last token.
func (p *Parser) parseTy() (ts.Ty, error) {
	switch p.curToken.Type {
	case BANG:
		return ts.TyNever{}, nil
	case UNDERSCORE:
		return ts.TyUnknown{}, nil
	case INFER:
		return p.parseTyInfer()
	case AMP:
		return p.parseReference()
	case STAR:
		return p.parsePointer()
	case LBRACKET:
		return p.parseArrayOrSlice()
	case LPAREN:
		return p.parseTuple()
	case LT:
		return p.parseProjection()
	case IDENT:
		switch p.curToken.Literal {
		case kwFn:
			return p.parseFunction()
		case kwDyn:
			return p.parseTraitObject()
		}
		return p.parseNamed()
	default:
		return nil, p.errorf("expected type, got %s", describe(p.curToken))
	}
}

func (p *Parser) parseTyInfer() (ts.Ty, error) {
	lit := p.curToken.Literal[1:]
	kind := ts.TyVarKind
	switch lit[0] {
	case 'i':
		kind, lit = ts.IntVarKind, lit[1:]
	case 'f':
		kind, lit = ts.FloatVarKind, lit[1:]
	case 'c':
		return nil, p.errorf("const variable %s in type position", p.curToken.Literal)
	}
	id, err := strconv.Atoi(lit)
	if err != nil {
		return nil, p.errorf("bad variable id %q", p.curToken.Literal)
	}
	return ts.TyInfer{Kind: kind, ID: id}, nil
}

func (p *Parser) parseReference() (ts.Ty, error) {
	p.nextToken() // consume '&'
	var region ts.Region = ts.ReUnknown{}
	if p.curTokenIs(LIFETIME) {
		r, err := p.parseRegion()
		if err != nil {
			return nil, err
		}
		region = r
		p.nextToken()
	}
	mutable := false
	if p.curKeyword(kwMut) {
		mutable = true
		p.nextToken()
	}
	referenced, err := p.parseTy()
	if err != nil {
		return nil, err
	}
	return ts.NewReference(referenced, mutable, region), nil
}

func (p *Parser) parsePointer() (ts.Ty, error) {
	p.nextToken() // consume '*'
	var mutable bool
	switch {
	case p.curKeyword(kwMut):
		mutable = true
	case p.curKeyword(kwConst):
	default:
		return nil, p.errorf("expected const or mut after *, got %s", describe(p.curToken))
	}
	p.nextToken()
	referenced, err := p.parseTy()
	if err != nil {
		return nil, err
	}
	return ts.NewPointer(referenced, mutable), nil
}

func (p *Parser) parseArrayOrSlice() (ts.Ty, error) {
	p.nextToken() // consume '['
	elem, err := p.parseTy()
	if err != nil {
		return nil, err
	}
	if p.peekTokenIs(RBRACKET) {
		p.nextToken()
		return ts.NewSlice(elem), nil
	}
	if err := p.expectPeek(SEMICOLON); err != nil {
		return nil, err
	}
	p.nextToken()
	size, err := p.parseConst()
	if err != nil {
		return nil, err
	}
	if err := p.expectPeek(RBRACKET); err != nil {
		return nil, err
	}
	return ts.NewArray(elem, size), nil
}

// parseTuple handles (), (T,), (A, B) and the parenthesized type (T).
func (p *Parser) parseTuple() (ts.Ty, error) {
	if p.peekTokenIs(RPAREN) {
		p.nextToken()
		return ts.Unit(), nil
	}
	p.nextToken() // consume '('
	first, err := p.parseTy()
	if err != nil {
		return nil, err
	}
	if p.peekTokenIs(RPAREN) {
		p.nextToken()
		return first, nil
	}
	if err := p.expectPeek(COMMA); err != nil {
		return nil, err
	}
	types := []ts.Ty{first}
	for !p.peekTokenIs(RPAREN) {
		p.nextToken()
		ty, err := p.parseTy()
		if err != nil {
			return nil, err
		}
		types = append(types, ty)
		if !p.peekTokenIs(RPAREN) {
			if err := p.expectPeek(COMMA); err != nil {
				return nil, err
			}
		}
	}
	p.nextToken()
	return ts.NewTuple(types...), nil
}

func (p *Parser) parseFunction() (ts.Ty, error) {
	if err := p.expectPeek(LPAREN); err != nil {
		return nil, err
	}
	params := []ts.Ty{}
	for !p.peekTokenIs(RPAREN) {
		p.nextToken()
		ty, err := p.parseTy()
		if err != nil {
			return nil, err
		}
		params = append(params, ty)
		if !p.peekTokenIs(RPAREN) {
			if err := p.expectPeek(COMMA); err != nil {
				return nil, err
			}
		}
	}
	p.nextToken() // ')'
	var ret ts.Ty = ts.Unit()
	if p.peekTokenIs(ARROW) {
		p.nextToken()
		p.nextToken()
		r, err := p.parseTy()
		if err != nil {
			return nil, err
		}
		ret = r
	}
	return ts.NewFunction(params, ret), nil
}

func (p *Parser) parseTraitObject() (ts.Ty, error) {
	p.nextToken() // consume 'dyn'
	traits := []ts.BoundElement{}
	var region ts.Region = ts.ReUnknown{}
	for {
		if p.curTokenIs(LIFETIME) {
			r, err := p.parseRegion()
			if err != nil {
				return nil, err
			}
			region = r
		} else {
			bound, err := p.parseTraitRef()
			if err != nil {
				return nil, err
			}
			traits = append(traits, bound)
		}
		if !p.peekTokenIs(PLUS) {
			break
		}
		p.nextToken()
		p.nextToken()
	}
	if len(traits) == 0 {
		return nil, p.errorf("trait object without traits")
	}
	return ts.NewTraitObject(traits, region), nil
}

// parseProjection parses <Self as Trait<..>>::Target.
func (p *Parser) parseProjection() (ts.Ty, error) {
	p.nextToken() // consume '<'
	self, err := p.parseTy()
	if err != nil {
		return nil, err
	}
	p.nextToken()
	if !p.curKeyword(kwAs) {
		return nil, p.errorf("expected as, got %s", describe(p.curToken))
	}
	p.nextToken()
	trait, err := p.parseTraitRef()
	if err != nil {
		return nil, err
	}
	if err := p.expectPeek(GT); err != nil {
		return nil, err
	}
	if err := p.expectPeek(COLONCOLON); err != nil {
		return nil, err
	}
	if err := p.expectPeek(IDENT); err != nil {
		return nil, err
	}
	return ts.NewProjection(self, trait, p.curToken.Literal), nil
}

// parseNamed parses a type parameter, a primitive or an ADT path with
// optional generic arguments.
func (p *Parser) parseNamed() (ts.Ty, error) {
	name := p.parsePath()
	if !p.peekTokenIs(LT) {
		if param, ok := p.env.Param(name); ok {
			return param, nil
		}
		if prim, ok := ts.LookupPrimitive(name); ok {
			return prim, nil
		}
		return ts.NewAdt(name, nil, nil, nil), nil
	}
	if _, ok := p.env.Param(name); ok {
		return nil, p.errorf("type parameter %s cannot take arguments", name)
	}
	args, err := p.parseGenericArgs()
	if err != nil {
		return nil, err
	}
	if len(args.assoc) > 0 {
		return nil, p.errorf("associated type bindings are only allowed on traits")
	}
	return ts.NewAdt(name, args.types, args.regions, args.consts), nil
}

// parsePath joins a::b::c; curToken is left on the last segment.
func (p *Parser) parsePath() string {
	segments := []string{p.curToken.Literal}
	for p.peekTokenIs(COLONCOLON) {
		p.nextToken()
		if !p.peekTokenIs(IDENT) {
			break
		}
		p.nextToken()
		segments = append(segments, p.curToken.Literal)
	}
	return strings.Join(segments, "::")
}

func (p *Parser) parseTraitRef() (ts.BoundElement, error) {
	if !p.curTokenIs(IDENT) {
		return ts.BoundElement{}, p.errorf("expected trait name, got %s", describe(p.curToken))
	}
	name := p.parsePath()
	args := genericArgs{}
	if p.peekTokenIs(LT) {
		var err error
		args, err = p.parseGenericArgs()
		if err != nil {
			return ts.BoundElement{}, err
		}
	}
	if len(args.regions) > 0 || len(args.consts) > 0 {
		return ts.BoundElement{}, p.errorf("trait %s: only type arguments are supported", name)
	}
	item, err := p.env.traitFor(name, len(args.types))
	if err != nil {
		return ts.BoundElement{}, p.errorf("%v", err)
	}
	types := make(map[ts.TyTypeParameter]ts.Ty, len(args.types))
	for i, ty := range args.types {
		types[item.TypeParams[i]] = ty
	}
	var assoc map[string]ts.Ty
	if len(args.assoc) > 0 {
		assoc = args.assoc
	}
	return ts.NewBoundElement(item, ts.TypeSubst(types), assoc), nil
}

type genericArgs struct {
	types   []ts.Ty
	regions []ts.Region
	consts  []ts.Const
	assoc   map[string]ts.Ty
}

// parseGenericArgs parses <...> with peekToken on '<'.
func (p *Parser) parseGenericArgs() (genericArgs, error) {
	args := genericArgs{}
	p.nextToken() // '<'
	for !p.peekTokenIs(GT) {
		p.nextToken()
		switch {
		case p.curTokenIs(LIFETIME):
			r, err := p.parseRegion()
			if err != nil {
				return args, err
			}
			args.regions = append(args.regions, r)
		case p.isConstArg():
			c, err := p.parseConst()
			if err != nil {
				return args, err
			}
			args.consts = append(args.consts, c)
		case p.curTokenIs(IDENT) && p.peekTokenIs(ASSIGN):
			name := p.curToken.Literal
			p.nextToken()
			p.nextToken()
			ty, err := p.parseTy()
			if err != nil {
				return args, err
			}
			if args.assoc == nil {
				args.assoc = map[string]ts.Ty{}
			}
			args.assoc[name] = ty
		default:
			ty, err := p.parseTy()
			if err != nil {
				return args, err
			}
			args.types = append(args.types, ty)
		}
		if !p.peekTokenIs(GT) {
			if err := p.expectPeek(COMMA); err != nil {
				return args, err
			}
		}
	}
	p.nextToken() // '>'
	return args, nil
}

// isConstArg reports whether curToken starts a const generic argument.
func (p *Parser) isConstArg() bool {
	switch p.curToken.Type {
	case INT:
		return true
	case INFER:
		return strings.HasPrefix(p.curToken.Literal, "?c")
	case IDENT:
		if p.peekTokenIs(ASSIGN) || p.peekTokenIs(LT) {
			return false
		}
		if p.curToken.Literal == "true" || p.curToken.Literal == "false" {
			return true
		}
		_, ok := p.env.ConstParam(p.curToken.Literal)
		return ok
	}
	return false
}

func (p *Parser) parseConst() (ts.Const, error) {
	switch p.curToken.Type {
	case INT:
		return ts.CtValue{Value: strings.ReplaceAll(p.curToken.Literal, "_", "")}, nil
	case UNDERSCORE:
		return ts.CtUnknown{}, nil
	case INFER:
		lit := p.curToken.Literal
		if !strings.HasPrefix(lit, "?c") {
			return nil, p.errorf("type variable %s in const position", lit)
		}
		id, err := strconv.Atoi(lit[2:])
		if err != nil {
			return nil, p.errorf("bad variable id %q", lit)
		}
		return ts.CtInfer{ID: id}, nil
	case IDENT:
		lit := p.curToken.Literal
		if lit == "true" || lit == "false" {
			return ts.CtValue{Value: lit}, nil
		}
		if c, ok := p.env.ConstParam(lit); ok {
			return c, nil
		}
		return nil, NewUndeclaredError("const parameter", lit)
	default:
		return nil, p.errorf("expected const, got %s", describe(p.curToken))
	}
}

func (p *Parser) parseRegion() (ts.Region, error) {
	lit := p.curToken.Literal
	switch lit {
	case "'static":
		return ts.ReStatic{}, nil
	case "'_":
		return ts.ReUnknown{}, nil
	}
	if r, ok := p.env.Lifetime(lit); ok {
		return r, nil
	}
	return nil, NewUndeclaredError("lifetime", lit)
}
