// Package parser implements a recursive-descent, single-token-lookahead
// parser over language/lexer's token stream, producing language/ast trees.
// Grounded on tsukinoko-kun/gqlc's parser/parser.go (in-pack hand-written
// GraphQL parser) for control flow, re-targeted from gqlc's TypeScript
// codegen AST onto language/ast and extended with the SDL productions
// spec.md §4.C requires (gqlc's own model already splits executable vs
// schema definitions; the allowTypeSystem gate generalizes that split).
package parser

import (
	"fmt"

	"github.com/appointy/gqlcore/gqlerrors"
	"github.com/appointy/gqlcore/language/ast"
	"github.com/appointy/gqlcore/language/lexer"
)

type parser struct {
	source          *gqlerrors.Source
	lex             *lexer.Lexer
	tok             lexer.Token
	prevEnd         int
	allowTypeSystem bool
}

// ParseDocument parses a full GraphQL document. When allowTypeSystem is
// false, any SDL definition (type/interface/enum/union/scalar/input/schema/
// directive, or any `extend ...` form) is a SyntaxError, per spec.md §4.C.
func ParseDocument(source gqlerrors.Source, allowTypeSystem bool) (*ast.Document, error) {
	p := &parser{source: &source, lex: lexer.New(&source), allowTypeSystem: allowTypeSystem}
	if err := p.advance(); err != nil {
		return nil, err
	}

	start := p.tok.Start
	var defs []ast.Definition
	for p.tok.Kind != lexer.EOF {
		def, err := p.parseDefinition()
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return &ast.Document{Loc: p.loc(start), Definitions: defs}, nil
}

// ParseValue parses a single standalone value literal, e.g. for default
// values supplied outside of a document (schema-builder tests, REPLs).
func ParseValue(source gqlerrors.Source) (ast.Value, error) {
	p := &parser{source: &source, lex: lexer.New(&source), allowTypeSystem: true}
	if err := p.advance(); err != nil {
		return nil, err
	}
	v, err := p.parseValueLiteral(false)
	if err != nil {
		return nil, err
	}
	if p.tok.Kind != lexer.EOF {
		return nil, p.unexpected()
	}
	return v, nil
}

// ---- token plumbing ----

func (p *parser) advance() error {
	for {
		tok, err := p.lex.Advance()
		if err != nil {
			return err
		}
		if tok.Kind == lexer.Comment {
			continue
		}
		p.tok = tok
		return nil
	}
}

func (p *parser) loc(start int) gqlerrors.SourceLocation {
	return gqlerrors.SourceLocation{Source: p.source, Start: start, End: p.prevEnd}
}

func (p *parser) syntaxErrorf(format string, args ...interface{}) error {
	pos := gqlerrors.NewLineIndex(p.source.Body).Position(p.tok.Start)
	msg := fmt.Sprintf(format, args...)
	return &gqlerrors.Error{
		Kind:    gqlerrors.SyntaxError,
		Message: fmt.Sprintf("Syntax Error: %s (line %d, column %d)", msg, pos.Line, pos.Column),
	}
}

func (p *parser) unexpected() error {
	return p.syntaxErrorf("Unexpected token %s", p.tok)
}

// expect consumes the current token if it has kind k, else errors.
func (p *parser) expect(k lexer.Kind) (lexer.Token, error) {
	if p.tok.Kind != k {
		return lexer.Token{}, p.syntaxErrorf("Expected %s, found %s", k, p.tok)
	}
	tok := p.tok
	p.prevEnd = tok.End
	if err := p.advance(); err != nil {
		return lexer.Token{}, err
	}
	return tok, nil
}

// skip consumes the current token if it has kind k and reports whether it did.
func (p *parser) skip(k lexer.Kind) (bool, error) {
	if p.tok.Kind != k {
		return false, nil
	}
	p.prevEnd = p.tok.End
	if err := p.advance(); err != nil {
		return false, err
	}
	return true, nil
}

// expectKeyword consumes a Name token matching value exactly (used for
// contextual keywords: "query", "on", "implements", "extend", ...).
func (p *parser) expectKeyword(value string) (lexer.Token, error) {
	if p.tok.Kind != lexer.Name || p.tok.Value != value {
		return lexer.Token{}, p.syntaxErrorf("Expected %q, found %s", value, p.tok)
	}
	return p.expect(lexer.Name)
}

func (p *parser) peekKeyword(value string) bool {
	return p.tok.Kind == lexer.Name && p.tok.Value == value
}

func (p *parser) parseName() (string, gqlerrors.SourceLocation, error) {
	start := p.tok.Start
	if p.tok.Kind != lexer.Name {
		return "", gqlerrors.SourceLocation{}, p.syntaxErrorf("Expected Name, found %s", p.tok)
	}
	value := p.tok.Value
	if _, err := p.expect(lexer.Name); err != nil {
		return "", gqlerrors.SourceLocation{}, err
	}
	return value, p.loc(start), nil
}

// parseRestrictedName parses a Name that may not be one of the value
// keywords (null/true/false) — used for enum value names, variable names
// and fragment names per spec.md §4.C's ambiguity rules.
func (p *parser) parseRestrictedName() (string, gqlerrors.SourceLocation, error) {
	start := p.tok.Start
	if p.tok.Kind == lexer.Name && isValueKeyword(p.tok.Value) {
		return "", gqlerrors.SourceLocation{}, p.syntaxErrorfAt(start, "Unexpected keyword %q used as a name", p.tok.Value)
	}
	return p.parseName()
}

// isValueKeyword reports whether name is reserved as a value keyword
// (null/true/false), disallowed as an enum/variable/fragment name per
// spec.md §4.C's ambiguity rules. "on" is handled contextually by callers,
// since it is only special inside `fragment NAME on TYPE`.
func isValueKeyword(name string) bool {
	switch name {
	case "null", "true", "false":
		return true
	default:
		return false
	}
}
