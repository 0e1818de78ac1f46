package parser

import (
	"github.com/appointy/gqlcore/language/ast"
	"github.com/appointy/gqlcore/language/lexer"
)

// parseDefinition dispatches on the lookahead token to an executable
// definition (operation/fragment) or, when allowed, an SDL definition.
func (p *parser) parseDefinition() (ast.Definition, error) {
	if p.tok.Kind == lexer.BraceL {
		return p.parseOperationDefinition()
	}
	if p.tok.Kind == lexer.Name {
		switch p.tok.Value {
		case "query", "mutation", "subscription":
			return p.parseOperationDefinition()
		case "fragment":
			return p.parseFragmentDefinition()
		case "schema", "scalar", "type", "interface", "union", "enum", "input", "directive", "extend":
			if !p.allowTypeSystem {
				return nil, p.syntaxErrorf("Unexpected type system definition %q in an executable document", p.tok.Value)
			}
			return p.parseTypeSystemDefinition()
		}
	}
	if p.tok.Kind == lexer.String {
		// A leading string is the description of an SDL definition.
		if !p.allowTypeSystem {
			return nil, p.syntaxErrorf("Unexpected description in an executable document")
		}
		return p.parseTypeSystemDefinition()
	}
	return nil, p.unexpected()
}

func (p *parser) parseOperationDefinition() (*ast.OperationDefinition, error) {
	start := p.tok.Start
	if p.tok.Kind == lexer.BraceL {
		sel, err := p.parseSelectionSet()
		if err != nil {
			return nil, err
		}
		return &ast.OperationDefinition{Loc: p.loc(start), Operation: ast.OperationQuery, SelectionSet: sel}, nil
	}

	opType, err := p.parseOperationType()
	if err != nil {
		return nil, err
	}

	var name string
	if p.tok.Kind == lexer.Name {
		name, _, err = p.parseName()
		if err != nil {
			return nil, err
		}
	}

	varDefs, err := p.parseVariableDefinitions()
	if err != nil {
		return nil, err
	}
	directives, err := p.parseDirectives(false)
	if err != nil {
		return nil, err
	}
	sel, err := p.parseSelectionSet()
	if err != nil {
		return nil, err
	}
	return &ast.OperationDefinition{
		Loc: p.loc(start), Operation: opType, Name: name,
		VariableDefinitions: varDefs, Directives: directives, SelectionSet: sel,
	}, nil
}

func (p *parser) parseOperationType() (ast.OperationType, error) {
	switch p.tok.Value {
	case "query":
		if _, err := p.expect(lexer.Name); err != nil {
			return "", err
		}
		return ast.OperationQuery, nil
	case "mutation":
		if _, err := p.expect(lexer.Name); err != nil {
			return "", err
		}
		return ast.OperationMutation, nil
	case "subscription":
		if _, err := p.expect(lexer.Name); err != nil {
			return "", err
		}
		return ast.OperationSubscription, nil
	default:
		return "", p.unexpected()
	}
}

func (p *parser) parseVariableDefinitions() ([]*ast.VariableDefinition, error) {
	if p.tok.Kind != lexer.ParenL {
		return nil, nil
	}
	if _, err := p.expect(lexer.ParenL); err != nil {
		return nil, err
	}
	var defs []*ast.VariableDefinition
	for p.tok.Kind != lexer.ParenR {
		d, err := p.parseVariableDefinition()
		if err != nil {
			return nil, err
		}
		defs = append(defs, d)
	}
	if _, err := p.expect(lexer.ParenR); err != nil {
		return nil, err
	}
	return defs, nil
}

func (p *parser) parseVariableDefinition() (*ast.VariableDefinition, error) {
	start := p.tok.Start
	v, err := p.parseVariable()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.Colon); err != nil {
		return nil, err
	}
	typ, err := p.parseTypeReference()
	if err != nil {
		return nil, err
	}
	var def ast.Value
	hasDefault := false
	if ok, err := p.skip(lexer.Equals); err != nil {
		return nil, err
	} else if ok {
		hasDefault = true
		def, err = p.parseValueLiteral(true)
		if err != nil {
			return nil, err
		}
	}
	directives, err := p.parseDirectives(true)
	if err != nil {
		return nil, err
	}
	return &ast.VariableDefinition{
		Loc: p.loc(start), Variable: v, Type: typ, DefaultValue: def, HasDefault: hasDefault, Directives: directives,
	}, nil
}

func (p *parser) parseSelectionSet() (*ast.SelectionSet, error) {
	start := p.tok.Start
	if _, err := p.expect(lexer.BraceL); err != nil {
		return nil, err
	}
	var sels []ast.Selection
	for p.tok.Kind != lexer.BraceR {
		s, err := p.parseSelection()
		if err != nil {
			return nil, err
		}
		sels = append(sels, s)
	}
	if _, err := p.expect(lexer.BraceR); err != nil {
		return nil, err
	}
	return &ast.SelectionSet{Loc: p.loc(start), Selections: sels}, nil
}

func (p *parser) parseSelection() (ast.Selection, error) {
	if p.tok.Kind == lexer.Spread {
		return p.parseFragment()
	}
	return p.parseField()
}

func (p *parser) parseField() (*ast.Field, error) {
	start := p.tok.Start
	nameOrAlias, _, err := p.parseName()
	if err != nil {
		return nil, err
	}
	var alias, name string
	if ok, err := p.skip(lexer.Colon); err != nil {
		return nil, err
	} else if ok {
		alias = nameOrAlias
		name, _, err = p.parseName()
		if err != nil {
			return nil, err
		}
	} else {
		name = nameOrAlias
	}

	args, err := p.parseArguments(false)
	if err != nil {
		return nil, err
	}
	directives, err := p.parseDirectives(false)
	if err != nil {
		return nil, err
	}
	var sel *ast.SelectionSet
	if p.tok.Kind == lexer.BraceL {
		sel, err = p.parseSelectionSet()
		if err != nil {
			return nil, err
		}
	}
	return &ast.Field{Loc: p.loc(start), Alias: alias, Name: name, Arguments: args, Directives: directives, SelectionSet: sel}, nil
}

func (p *parser) parseArguments(constOnly bool) ([]*ast.Argument, error) {
	if p.tok.Kind != lexer.ParenL {
		return nil, nil
	}
	if _, err := p.expect(lexer.ParenL); err != nil {
		return nil, err
	}
	var args []*ast.Argument
	for p.tok.Kind != lexer.ParenR {
		start := p.tok.Start
		name, _, err := p.parseName()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.Colon); err != nil {
			return nil, err
		}
		v, err := p.parseValueLiteral(constOnly)
		if err != nil {
			return nil, err
		}
		args = append(args, &ast.Argument{Loc: p.loc(start), Name: name, Value: v})
	}
	if _, err := p.expect(lexer.ParenR); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *parser) parseDirectives(constOnly bool) ([]*ast.Directive, error) {
	var directives []*ast.Directive
	for p.tok.Kind == lexer.At {
		start := p.tok.Start
		if _, err := p.expect(lexer.At); err != nil {
			return nil, err
		}
		name, _, err := p.parseName()
		if err != nil {
			return nil, err
		}
		args, err := p.parseArguments(constOnly)
		if err != nil {
			return nil, err
		}
		directives = append(directives, &ast.Directive{Loc: p.loc(start), Name: name, Arguments: args})
	}
	return directives, nil
}

// parseFragment parses "..." followed by either an inline fragment
// (optional "on Type") or a named fragment spread. "on" is only a keyword
// right here; elsewhere it is an ordinary name (spec.md §4.C ambiguity
// rule).
func (p *parser) parseFragment() (ast.Selection, error) {
	start := p.tok.Start
	if _, err := p.expect(lexer.Spread); err != nil {
		return nil, err
	}

	if p.tok.Kind == lexer.Name && p.tok.Value != "on" {
		name, _, err := p.parseName()
		if err != nil {
			return nil, err
		}
		directives, err := p.parseDirectives(false)
		if err != nil {
			return nil, err
		}
		return &ast.FragmentSpread{Loc: p.loc(start), Name: name, Directives: directives}, nil
	}

	var cond *ast.NamedType
	if p.peekKeyword("on") {
		if _, err := p.expectKeyword("on"); err != nil {
			return nil, err
		}
		name, loc, err := p.parseName()
		if err != nil {
			return nil, err
		}
		cond = &ast.NamedType{Loc: loc, Name: name}
	}
	directives, err := p.parseDirectives(false)
	if err != nil {
		return nil, err
	}
	sel, err := p.parseSelectionSet()
	if err != nil {
		return nil, err
	}
	return &ast.InlineFragment{Loc: p.loc(start), TypeCondition: cond, Directives: directives, SelectionSet: sel}, nil
}

func (p *parser) parseFragmentDefinition() (*ast.FragmentDefinition, error) {
	start := p.tok.Start
	if _, err := p.expectKeyword("fragment"); err != nil {
		return nil, err
	}
	name, nameLoc, err := p.parseRestrictedName()
	if err != nil {
		return nil, err
	}
	if name == "on" {
		return nil, p.syntaxErrorfAt(nameLoc.Start, "Unexpected keyword %q used as a fragment name", "on")
	}
	if _, err := p.expectKeyword("on"); err != nil {
		return nil, err
	}
	condName, condLoc, err := p.parseName()
	if err != nil {
		return nil, err
	}
	directives, err := p.parseDirectives(false)
	if err != nil {
		return nil, err
	}
	sel, err := p.parseSelectionSet()
	if err != nil {
		return nil, err
	}
	return &ast.FragmentDefinition{
		Loc: p.loc(start), Name: name,
		TypeCondition: &ast.NamedType{Loc: condLoc, Name: condName},
		Directives:    directives, SelectionSet: sel,
	}, nil
}
