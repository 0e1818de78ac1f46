package parser

import (
	"fmt"

	"github.com/appointy/gqlcore/gqlerrors"
	"github.com/appointy/gqlcore/language/ast"
	"github.com/appointy/gqlcore/language/lexer"
)

// parseValueLiteral parses any Value production. constOnly disallows
// Variable (used for default values and const directive arguments).
func (p *parser) parseValueLiteral(constOnly bool) (ast.Value, error) {
	start := p.tok.Start
	switch p.tok.Kind {
	case lexer.BracketL:
		return p.parseList(constOnly)
	case lexer.BraceL:
		return p.parseObject(constOnly)
	case lexer.Int:
		v := p.tok.Value
		if _, err := p.expect(lexer.Int); err != nil {
			return nil, err
		}
		return &ast.IntValue{Loc: p.loc(start), Value: v}, nil
	case lexer.Float:
		v := p.tok.Value
		if _, err := p.expect(lexer.Float); err != nil {
			return nil, err
		}
		return &ast.FloatValue{Loc: p.loc(start), Value: v}, nil
	case lexer.String:
		v, block := p.tok.Value, p.tok.Block
		if _, err := p.expect(lexer.String); err != nil {
			return nil, err
		}
		return &ast.StringValue{Loc: p.loc(start), Value: v, Block: block}, nil
	case lexer.Name:
		switch p.tok.Value {
		case "true":
			p.prevEnd = p.tok.End
			if err := p.advance(); err != nil {
				return nil, err
			}
			return &ast.BooleanValue{Loc: p.loc(start), Value: true}, nil
		case "false":
			p.prevEnd = p.tok.End
			if err := p.advance(); err != nil {
				return nil, err
			}
			return &ast.BooleanValue{Loc: p.loc(start), Value: false}, nil
		case "null":
			p.prevEnd = p.tok.End
			if err := p.advance(); err != nil {
				return nil, err
			}
			return &ast.NullValue{Loc: p.loc(start)}, nil
		default:
			v := p.tok.Value
			p.prevEnd = p.tok.End
			if err := p.advance(); err != nil {
				return nil, err
			}
			return &ast.EnumValue{Loc: p.loc(start), Value: v}, nil
		}
	case lexer.Dollar:
		if constOnly {
			return nil, p.syntaxErrorf("Unexpected variable in constant value position")
		}
		return p.parseVariable()
	default:
		return nil, p.unexpected()
	}
}

func (p *parser) parseVariable() (*ast.Variable, error) {
	start := p.tok.Start
	if _, err := p.expect(lexer.Dollar); err != nil {
		return nil, err
	}
	name, _, err := p.parseRestrictedName()
	if err != nil {
		return nil, err
	}
	return &ast.Variable{Loc: p.loc(start), Name: name}, nil
}

func (p *parser) parseList(constOnly bool) (ast.Value, error) {
	start := p.tok.Start
	if _, err := p.expect(lexer.BracketL); err != nil {
		return nil, err
	}
	var values []ast.Value
	for p.tok.Kind != lexer.BracketR {
		v, err := p.parseValueLiteral(constOnly)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	if _, err := p.expect(lexer.BracketR); err != nil {
		return nil, err
	}
	return &ast.ListValue{Loc: p.loc(start), Values: values}, nil
}

func (p *parser) parseObject(constOnly bool) (ast.Value, error) {
	start := p.tok.Start
	if _, err := p.expect(lexer.BraceL); err != nil {
		return nil, err
	}
	var fields []*ast.ObjectField
	seen := map[string]bool{}
	for p.tok.Kind != lexer.BraceR {
		fstart := p.tok.Start
		name, _, err := p.parseName()
		if err != nil {
			return nil, err
		}
		if seen[name] {
			return nil, p.syntaxErrorfAt(fstart, "Duplicate input object field %q", name)
		}
		seen[name] = true
		if _, err := p.expect(lexer.Colon); err != nil {
			return nil, err
		}
		v, err := p.parseValueLiteral(constOnly)
		if err != nil {
			return nil, err
		}
		fields = append(fields, &ast.ObjectField{Loc: p.loc(fstart), Name: name, Value: v})
	}
	if _, err := p.expect(lexer.BraceR); err != nil {
		return nil, err
	}
	return &ast.ObjectValue{Loc: p.loc(start), Fields: fields}, nil
}

func (p *parser) syntaxErrorfAt(offset int, format string, args ...interface{}) error {
	pos := gqlerrors.NewLineIndex(p.source.Body).Position(offset)
	msg := fmt.Sprintf(format, args...)
	return &gqlerrors.Error{Kind: gqlerrors.SyntaxError, Message: fmt.Sprintf("Syntax Error: %s (line %d, column %d)", msg, pos.Line, pos.Column)}
}
