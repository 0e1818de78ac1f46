package parser

import (
	"github.com/appointy/gqlcore/language/ast"
	"github.com/appointy/gqlcore/language/lexer"
)

// parseTypeReference parses Type := NamedType | ListType | NonNullType,
// rejecting NonNull(NonNull(_)) by construction (Bang only ever wraps the
// type just parsed once, per the grammar).
func (p *parser) parseTypeReference() (ast.TypeNode, error) {
	start := p.tok.Start
	var t ast.TypeNode

	if ok, err := p.skip(lexer.BracketL); err != nil {
		return nil, err
	} else if ok {
		inner, err := p.parseTypeReference()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.BracketR); err != nil {
			return nil, err
		}
		t = &ast.ListType{Loc: p.loc(start), Type: inner}
	} else {
		name, loc, err := p.parseName()
		if err != nil {
			return nil, err
		}
		t = &ast.NamedType{Loc: loc, Name: name}
	}

	if ok, err := p.skip(lexer.Bang); err != nil {
		return nil, err
	} else if ok {
		return &ast.NonNullType{Loc: p.loc(start), Type: t}, nil
	}
	return t, nil
}
