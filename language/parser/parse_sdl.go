package parser

import (
	"github.com/appointy/gqlcore/language/ast"
	"github.com/appointy/gqlcore/language/lexer"
)

func (p *parser) parseTypeSystemDefinition() (ast.Definition, error) {
	if p.tok.Value == "extend" {
		return p.parseTypeExtension()
	}

	desc, err := p.parseOptionalDescription()
	if err != nil {
		return nil, err
	}

	switch p.tok.Value {
	case "schema":
		return p.parseSchemaDefinition(desc)
	case "scalar":
		return p.parseScalarTypeDefinition(desc)
	case "type":
		return p.parseObjectTypeDefinition(desc)
	case "interface":
		return p.parseInterfaceTypeDefinition(desc)
	case "union":
		return p.parseUnionTypeDefinition(desc)
	case "enum":
		return p.parseEnumTypeDefinition(desc)
	case "input":
		return p.parseInputObjectTypeDefinition(desc)
	case "directive":
		return p.parseDirectiveDefinition(desc)
	default:
		return nil, p.unexpected()
	}
}

func (p *parser) parseOptionalDescription() (ast.Description, error) {
	if p.tok.Kind != lexer.String {
		return nil, nil
	}
	start := p.tok.Start
	v, block := p.tok.Value, p.tok.Block
	if _, err := p.expect(lexer.String); err != nil {
		return nil, err
	}
	return &ast.StringValue{Loc: p.loc(start), Value: v, Block: block}, nil
}

func (p *parser) parseSchemaDefinition(desc ast.Description) (*ast.SchemaDefinition, error) {
	start := p.tok.Start
	if _, err := p.expectKeyword("schema"); err != nil {
		return nil, err
	}
	directives, err := p.parseDirectives(true)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.BraceL); err != nil {
		return nil, err
	}
	var ops []*ast.OperationTypeDefinition
	for p.tok.Kind != lexer.BraceR {
		opStart := p.tok.Start
		opType, err := p.parseOperationType()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.Colon); err != nil {
			return nil, err
		}
		name, loc, err := p.parseName()
		if err != nil {
			return nil, err
		}
		ops = append(ops, &ast.OperationTypeDefinition{Loc: p.loc(opStart), Operation: opType, Type: &ast.NamedType{Loc: loc, Name: name}})
	}
	if _, err := p.expect(lexer.BraceR); err != nil {
		return nil, err
	}
	return &ast.SchemaDefinition{Loc: p.loc(start), Description: desc, Directives: directives, OperationTypeDefs: ops}, nil
}

func (p *parser) parseScalarTypeDefinition(desc ast.Description) (*ast.ScalarTypeDefinition, error) {
	start := p.tok.Start
	if _, err := p.expectKeyword("scalar"); err != nil {
		return nil, err
	}
	name, _, err := p.parseName()
	if err != nil {
		return nil, err
	}
	directives, err := p.parseDirectives(true)
	if err != nil {
		return nil, err
	}
	return &ast.ScalarTypeDefinition{Loc: p.loc(start), Description: desc, Name: name, Directives: directives}, nil
}

func (p *parser) parseImplementsInterfaces() ([]*ast.NamedType, error) {
	if !p.peekKeyword("implements") {
		return nil, nil
	}
	if _, err := p.expectKeyword("implements"); err != nil {
		return nil, err
	}
	_, _ = p.skip(lexer.Amp) // allow a leading '&'
	var ifaces []*ast.NamedType
	for {
		name, loc, err := p.parseName()
		if err != nil {
			return nil, err
		}
		ifaces = append(ifaces, &ast.NamedType{Loc: loc, Name: name})
		if ok, err := p.skip(lexer.Amp); err != nil {
			return nil, err
		} else if !ok {
			break
		}
	}
	return ifaces, nil
}

func (p *parser) parseFieldsDefinition() ([]*ast.FieldDefinition, error) {
	if p.tok.Kind != lexer.BraceL {
		return nil, nil
	}
	if _, err := p.expect(lexer.BraceL); err != nil {
		return nil, err
	}
	var fields []*ast.FieldDefinition
	for p.tok.Kind != lexer.BraceR {
		f, err := p.parseFieldDefinition()
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	if _, err := p.expect(lexer.BraceR); err != nil {
		return nil, err
	}
	return fields, nil
}

func (p *parser) parseFieldDefinition() (*ast.FieldDefinition, error) {
	start := p.tok.Start
	desc, err := p.parseOptionalDescription()
	if err != nil {
		return nil, err
	}
	name, _, err := p.parseName()
	if err != nil {
		return nil, err
	}
	args, err := p.parseArgumentsDefinition()
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
	directives, err := p.parseDirectives(true)
	if err != nil {
		return nil, err
	}
	return &ast.FieldDefinition{Loc: p.loc(start), Description: desc, Name: name, Arguments: args, Type: typ, Directives: directives}, nil
}

func (p *parser) parseArgumentsDefinition() ([]*ast.InputValueDefinition, error) {
	if p.tok.Kind != lexer.ParenL {
		return nil, nil
	}
	if _, err := p.expect(lexer.ParenL); err != nil {
		return nil, err
	}
	var defs []*ast.InputValueDefinition
	for p.tok.Kind != lexer.ParenR {
		d, err := p.parseInputValueDefinition()
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

func (p *parser) parseInputValueDefinition() (*ast.InputValueDefinition, error) {
	start := p.tok.Start
	desc, err := p.parseOptionalDescription()
	if err != nil {
		return nil, err
	}
	name, _, err := p.parseName()
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
	return &ast.InputValueDefinition{
		Loc: p.loc(start), Description: desc, Name: name, Type: typ,
		DefaultValue: def, HasDefault: hasDefault, Directives: directives,
	}, nil
}

func (p *parser) parseObjectTypeDefinition(desc ast.Description) (*ast.ObjectTypeDefinition, error) {
	start := p.tok.Start
	if _, err := p.expectKeyword("type"); err != nil {
		return nil, err
	}
	name, _, err := p.parseName()
	if err != nil {
		return nil, err
	}
	ifaces, err := p.parseImplementsInterfaces()
	if err != nil {
		return nil, err
	}
	directives, err := p.parseDirectives(true)
	if err != nil {
		return nil, err
	}
	fields, err := p.parseFieldsDefinition()
	if err != nil {
		return nil, err
	}
	return &ast.ObjectTypeDefinition{Loc: p.loc(start), Description: desc, Name: name, Interfaces: ifaces, Directives: directives, Fields: fields}, nil
}

func (p *parser) parseInterfaceTypeDefinition(desc ast.Description) (*ast.InterfaceTypeDefinition, error) {
	start := p.tok.Start
	if _, err := p.expectKeyword("interface"); err != nil {
		return nil, err
	}
	name, _, err := p.parseName()
	if err != nil {
		return nil, err
	}
	ifaces, err := p.parseImplementsInterfaces()
	if err != nil {
		return nil, err
	}
	directives, err := p.parseDirectives(true)
	if err != nil {
		return nil, err
	}
	fields, err := p.parseFieldsDefinition()
	if err != nil {
		return nil, err
	}
	return &ast.InterfaceTypeDefinition{Loc: p.loc(start), Description: desc, Name: name, Interfaces: ifaces, Directives: directives, Fields: fields}, nil
}

func (p *parser) parseUnionMemberTypes() ([]*ast.NamedType, error) {
	if p.tok.Kind != lexer.Equals {
		return nil, nil
	}
	if _, err := p.expect(lexer.Equals); err != nil {
		return nil, err
	}
	_, _ = p.skip(lexer.Pipe)
	var types []*ast.NamedType
	for {
		name, loc, err := p.parseName()
		if err != nil {
			return nil, err
		}
		types = append(types, &ast.NamedType{Loc: loc, Name: name})
		if ok, err := p.skip(lexer.Pipe); err != nil {
			return nil, err
		} else if !ok {
			break
		}
	}
	return types, nil
}

func (p *parser) parseUnionTypeDefinition(desc ast.Description) (*ast.UnionTypeDefinition, error) {
	start := p.tok.Start
	if _, err := p.expectKeyword("union"); err != nil {
		return nil, err
	}
	name, _, err := p.parseName()
	if err != nil {
		return nil, err
	}
	directives, err := p.parseDirectives(true)
	if err != nil {
		return nil, err
	}
	types, err := p.parseUnionMemberTypes()
	if err != nil {
		return nil, err
	}
	return &ast.UnionTypeDefinition{Loc: p.loc(start), Description: desc, Name: name, Directives: directives, Types: types}, nil
}

func (p *parser) parseEnumValuesDefinition() ([]*ast.EnumValueDefinition, error) {
	if p.tok.Kind != lexer.BraceL {
		return nil, nil
	}
	if _, err := p.expect(lexer.BraceL); err != nil {
		return nil, err
	}
	var values []*ast.EnumValueDefinition
	for p.tok.Kind != lexer.BraceR {
		start := p.tok.Start
		desc, err := p.parseOptionalDescription()
		if err != nil {
			return nil, err
		}
		name, _, err := p.parseRestrictedName()
		if err != nil {
			return nil, err
		}
		directives, err := p.parseDirectives(true)
		if err != nil {
			return nil, err
		}
		values = append(values, &ast.EnumValueDefinition{Loc: p.loc(start), Description: desc, Name: name, Directives: directives})
	}
	if _, err := p.expect(lexer.BraceR); err != nil {
		return nil, err
	}
	return values, nil
}

func (p *parser) parseEnumTypeDefinition(desc ast.Description) (*ast.EnumTypeDefinition, error) {
	start := p.tok.Start
	if _, err := p.expectKeyword("enum"); err != nil {
		return nil, err
	}
	name, _, err := p.parseName()
	if err != nil {
		return nil, err
	}
	directives, err := p.parseDirectives(true)
	if err != nil {
		return nil, err
	}
	values, err := p.parseEnumValuesDefinition()
	if err != nil {
		return nil, err
	}
	return &ast.EnumTypeDefinition{Loc: p.loc(start), Description: desc, Name: name, Directives: directives, Values: values}, nil
}

func (p *parser) parseInputFieldsDefinition() ([]*ast.InputValueDefinition, error) {
	if p.tok.Kind != lexer.BraceL {
		return nil, nil
	}
	if _, err := p.expect(lexer.BraceL); err != nil {
		return nil, err
	}
	var fields []*ast.InputValueDefinition
	for p.tok.Kind != lexer.BraceR {
		f, err := p.parseInputValueDefinition()
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	if _, err := p.expect(lexer.BraceR); err != nil {
		return nil, err
	}
	return fields, nil
}

func (p *parser) parseInputObjectTypeDefinition(desc ast.Description) (*ast.InputObjectTypeDefinition, error) {
	start := p.tok.Start
	if _, err := p.expectKeyword("input"); err != nil {
		return nil, err
	}
	name, _, err := p.parseName()
	if err != nil {
		return nil, err
	}
	directives, err := p.parseDirectives(true)
	if err != nil {
		return nil, err
	}
	fields, err := p.parseInputFieldsDefinition()
	if err != nil {
		return nil, err
	}
	return &ast.InputObjectTypeDefinition{Loc: p.loc(start), Description: desc, Name: name, Directives: directives, Fields: fields}, nil
}

func (p *parser) parseDirectiveDefinition(desc ast.Description) (*ast.DirectiveDefinition, error) {
	start := p.tok.Start
	if _, err := p.expectKeyword("directive"); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.At); err != nil {
		return nil, err
	}
	name, _, err := p.parseName()
	if err != nil {
		return nil, err
	}
	args, err := p.parseArgumentsDefinition()
	if err != nil {
		return nil, err
	}
	repeatable := false
	if p.peekKeyword("repeatable") {
		if _, err := p.expectKeyword("repeatable"); err != nil {
			return nil, err
		}
		repeatable = true
	}
	if _, err := p.expectKeyword("on"); err != nil {
		return nil, err
	}
	_, _ = p.skip(lexer.Pipe)
	var locs []string
	for {
		loc, _, err := p.parseName()
		if err != nil {
			return nil, err
		}
		locs = append(locs, loc)
		if ok, err := p.skip(lexer.Pipe); err != nil {
			return nil, err
		} else if !ok {
			break
		}
	}
	return &ast.DirectiveDefinition{Loc: p.loc(start), Description: desc, Name: name, Arguments: args, Repeatable: repeatable, Locations: locs}, nil
}

func (p *parser) parseTypeExtension() (ast.Definition, error) {
	start := p.tok.Start
	if _, err := p.expectKeyword("extend"); err != nil {
		return nil, err
	}
	switch p.tok.Value {
	case "schema":
		return p.parseSchemaExtension(start)
	case "scalar":
		return p.parseScalarTypeExtension(start)
	case "type":
		return p.parseObjectTypeExtension(start)
	case "interface":
		return p.parseInterfaceTypeExtension(start)
	case "union":
		return p.parseUnionTypeExtension(start)
	case "enum":
		return p.parseEnumTypeExtension(start)
	case "input":
		return p.parseInputObjectTypeExtension(start)
	default:
		return nil, p.unexpected()
	}
}

func (p *parser) parseSchemaExtension(start int) (ast.Definition, error) {
	if _, err := p.expectKeyword("schema"); err != nil {
		return nil, err
	}
	directives, err := p.parseDirectives(true)
	if err != nil {
		return nil, err
	}
	var ops []*ast.OperationTypeDefinition
	if p.tok.Kind == lexer.BraceL {
		if _, err := p.expect(lexer.BraceL); err != nil {
			return nil, err
		}
		for p.tok.Kind != lexer.BraceR {
			opStart := p.tok.Start
			opType, err := p.parseOperationType()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.Colon); err != nil {
				return nil, err
			}
			name, loc, err := p.parseName()
			if err != nil {
				return nil, err
			}
			ops = append(ops, &ast.OperationTypeDefinition{Loc: p.loc(opStart), Operation: opType, Type: &ast.NamedType{Loc: loc, Name: name}})
		}
		if _, err := p.expect(lexer.BraceR); err != nil {
			return nil, err
		}
	}
	return &ast.SchemaDefinition{Loc: p.loc(start), Directives: directives, OperationTypeDefs: ops}, nil
}

func (p *parser) parseScalarTypeExtension(start int) (ast.Definition, error) {
	if _, err := p.expectKeyword("scalar"); err != nil {
		return nil, err
	}
	name, _, err := p.parseName()
	if err != nil {
		return nil, err
	}
	directives, err := p.parseDirectives(true)
	if err != nil {
		return nil, err
	}
	return &ast.ScalarTypeExtension{Loc: p.loc(start), Name: name, Directives: directives}, nil
}

func (p *parser) parseObjectTypeExtension(start int) (ast.Definition, error) {
	if _, err := p.expectKeyword("type"); err != nil {
		return nil, err
	}
	name, _, err := p.parseName()
	if err != nil {
		return nil, err
	}
	ifaces, err := p.parseImplementsInterfaces()
	if err != nil {
		return nil, err
	}
	directives, err := p.parseDirectives(true)
	if err != nil {
		return nil, err
	}
	fields, err := p.parseFieldsDefinition()
	if err != nil {
		return nil, err
	}
	return &ast.ObjectTypeExtension{Loc: p.loc(start), Name: name, Interfaces: ifaces, Directives: directives, Fields: fields}, nil
}

func (p *parser) parseInterfaceTypeExtension(start int) (ast.Definition, error) {
	if _, err := p.expectKeyword("interface"); err != nil {
		return nil, err
	}
	name, _, err := p.parseName()
	if err != nil {
		return nil, err
	}
	ifaces, err := p.parseImplementsInterfaces()
	if err != nil {
		return nil, err
	}
	directives, err := p.parseDirectives(true)
	if err != nil {
		return nil, err
	}
	fields, err := p.parseFieldsDefinition()
	if err != nil {
		return nil, err
	}
	return &ast.InterfaceTypeExtension{Loc: p.loc(start), Name: name, Interfaces: ifaces, Directives: directives, Fields: fields}, nil
}

func (p *parser) parseUnionTypeExtension(start int) (ast.Definition, error) {
	if _, err := p.expectKeyword("union"); err != nil {
		return nil, err
	}
	name, _, err := p.parseName()
	if err != nil {
		return nil, err
	}
	directives, err := p.parseDirectives(true)
	if err != nil {
		return nil, err
	}
	types, err := p.parseUnionMemberTypes()
	if err != nil {
		return nil, err
	}
	return &ast.UnionTypeExtension{Loc: p.loc(start), Name: name, Directives: directives, Types: types}, nil
}

func (p *parser) parseEnumTypeExtension(start int) (ast.Definition, error) {
	if _, err := p.expectKeyword("enum"); err != nil {
		return nil, err
	}
	name, _, err := p.parseName()
	if err != nil {
		return nil, err
	}
	directives, err := p.parseDirectives(true)
	if err != nil {
		return nil, err
	}
	values, err := p.parseEnumValuesDefinition()
	if err != nil {
		return nil, err
	}
	return &ast.EnumTypeExtension{Loc: p.loc(start), Name: name, Directives: directives, Values: values}, nil
}

func (p *parser) parseInputObjectTypeExtension(start int) (ast.Definition, error) {
	if _, err := p.expectKeyword("input"); err != nil {
		return nil, err
	}
	name, _, err := p.parseName()
	if err != nil {
		return nil, err
	}
	directives, err := p.parseDirectives(true)
	if err != nil {
		return nil, err
	}
	fields, err := p.parseInputFieldsDefinition()
	if err != nil {
		return nil, err
	}
	return &ast.InputObjectTypeExtension{Loc: p.loc(start), Name: name, Directives: directives, Fields: fields}, nil
}
