package ast

import "github.com/appointy/gqlcore/gqlerrors"

// Description is an optional leading string literal documenting an SDL
// definition or field (GraphQL June-2018 grammar §2.9).
type Description = *StringValue

// SchemaDefinition is `schema { query: Q mutation: M subscription: S }`.
type SchemaDefinition struct {
	Loc                  gqlerrors.SourceLocation
	Description          Description
	Directives           []*Directive
	OperationTypeDefs    []*OperationTypeDefinition
}

func (d *SchemaDefinition) Location() gqlerrors.SourceLocation { return d.Loc }
func (d *SchemaDefinition) isDefinition()                       {}

// OperationTypeDefinition is one `query: Q` line inside a SchemaDefinition.
type OperationTypeDefinition struct {
	Loc       gqlerrors.SourceLocation
	Operation OperationType
	Type      *NamedType
}

func (d *OperationTypeDefinition) Location() gqlerrors.SourceLocation { return d.Loc }

// ScalarTypeDefinition is `scalar Name @directives`.
type ScalarTypeDefinition struct {
	Loc         gqlerrors.SourceLocation
	Description Description
	Name        string
	Directives  []*Directive
}

func (d *ScalarTypeDefinition) Location() gqlerrors.SourceLocation { return d.Loc }
func (d *ScalarTypeDefinition) isDefinition()                      {}

// ScalarTypeExtension is `extend scalar Name @directives`.
type ScalarTypeExtension struct {
	Loc        gqlerrors.SourceLocation
	Name       string
	Directives []*Directive
}

func (d *ScalarTypeExtension) Location() gqlerrors.SourceLocation { return d.Loc }
func (d *ScalarTypeExtension) isDefinition()                      {}

// FieldDefinition is one field inside an Object/Interface type definition.
type FieldDefinition struct {
	Loc         gqlerrors.SourceLocation
	Description Description
	Name        string
	Arguments   []*InputValueDefinition
	Type        TypeNode
	Directives  []*Directive
}

func (d *FieldDefinition) Location() gqlerrors.SourceLocation { return d.Loc }

// InputValueDefinition is an argument or input-object field definition:
// `name: Type = default @directives`.
type InputValueDefinition struct {
	Loc          gqlerrors.SourceLocation
	Description  Description
	Name         string
	Type         TypeNode
	DefaultValue Value
	HasDefault   bool
	Directives   []*Directive
}

func (d *InputValueDefinition) Location() gqlerrors.SourceLocation { return d.Loc }

// ObjectTypeDefinition is `type Name implements A & B @directives { fields }`.
type ObjectTypeDefinition struct {
	Loc         gqlerrors.SourceLocation
	Description Description
	Name        string
	Interfaces  []*NamedType
	Directives  []*Directive
	Fields      []*FieldDefinition
}

func (d *ObjectTypeDefinition) Location() gqlerrors.SourceLocation { return d.Loc }
func (d *ObjectTypeDefinition) isDefinition()                      {}

// ObjectTypeExtension is `extend type Name ...`.
type ObjectTypeExtension struct {
	Loc        gqlerrors.SourceLocation
	Name       string
	Interfaces []*NamedType
	Directives []*Directive
	Fields     []*FieldDefinition
}

func (d *ObjectTypeExtension) Location() gqlerrors.SourceLocation { return d.Loc }
func (d *ObjectTypeExtension) isDefinition()                      {}

// InterfaceTypeDefinition is `interface Name implements A @directives { fields }`.
type InterfaceTypeDefinition struct {
	Loc         gqlerrors.SourceLocation
	Description Description
	Name        string
	Interfaces  []*NamedType
	Directives  []*Directive
	Fields      []*FieldDefinition
}

func (d *InterfaceTypeDefinition) Location() gqlerrors.SourceLocation { return d.Loc }
func (d *InterfaceTypeDefinition) isDefinition()                      {}

// InterfaceTypeExtension is `extend interface Name ...`.
type InterfaceTypeExtension struct {
	Loc        gqlerrors.SourceLocation
	Name       string
	Interfaces []*NamedType
	Directives []*Directive
	Fields     []*FieldDefinition
}

func (d *InterfaceTypeExtension) Location() gqlerrors.SourceLocation { return d.Loc }
func (d *InterfaceTypeExtension) isDefinition()                      {}

// UnionTypeDefinition is `union Name @directives = A | B`.
type UnionTypeDefinition struct {
	Loc         gqlerrors.SourceLocation
	Description Description
	Name        string
	Directives  []*Directive
	Types       []*NamedType
}

func (d *UnionTypeDefinition) Location() gqlerrors.SourceLocation { return d.Loc }
func (d *UnionTypeDefinition) isDefinition()                      {}

// UnionTypeExtension is `extend union Name = A | B`.
type UnionTypeExtension struct {
	Loc        gqlerrors.SourceLocation
	Name       string
	Directives []*Directive
	Types      []*NamedType
}

func (d *UnionTypeExtension) Location() gqlerrors.SourceLocation { return d.Loc }
func (d *UnionTypeExtension) isDefinition()                      {}

// EnumValueDefinition is one value inside an enum type definition.
type EnumValueDefinition struct {
	Loc         gqlerrors.SourceLocation
	Description Description
	Name        string
	Directives  []*Directive
}

func (d *EnumValueDefinition) Location() gqlerrors.SourceLocation { return d.Loc }

// EnumTypeDefinition is `enum Name @directives { VALUES }`.
type EnumTypeDefinition struct {
	Loc         gqlerrors.SourceLocation
	Description Description
	Name        string
	Directives  []*Directive
	Values      []*EnumValueDefinition
}

func (d *EnumTypeDefinition) Location() gqlerrors.SourceLocation { return d.Loc }
func (d *EnumTypeDefinition) isDefinition()                      {}

// EnumTypeExtension is `extend enum Name { VALUES }`.
type EnumTypeExtension struct {
	Loc        gqlerrors.SourceLocation
	Name       string
	Directives []*Directive
	Values     []*EnumValueDefinition
}

func (d *EnumTypeExtension) Location() gqlerrors.SourceLocation { return d.Loc }
func (d *EnumTypeExtension) isDefinition()                      {}

// InputObjectTypeDefinition is `input Name @directives { fields }`.
type InputObjectTypeDefinition struct {
	Loc         gqlerrors.SourceLocation
	Description Description
	Name        string
	Directives  []*Directive
	Fields      []*InputValueDefinition
}

func (d *InputObjectTypeDefinition) Location() gqlerrors.SourceLocation { return d.Loc }
func (d *InputObjectTypeDefinition) isDefinition()                      {}

// InputObjectTypeExtension is `extend input Name { fields }`.
type InputObjectTypeExtension struct {
	Loc        gqlerrors.SourceLocation
	Name       string
	Directives []*Directive
	Fields     []*InputValueDefinition
}

func (d *InputObjectTypeExtension) Location() gqlerrors.SourceLocation { return d.Loc }
func (d *InputObjectTypeExtension) isDefinition()                      {}

// DirectiveDefinition is `directive @name(args) on LOCATIONS`.
type DirectiveDefinition struct {
	Loc         gqlerrors.SourceLocation
	Description Description
	Name        string
	Arguments   []*InputValueDefinition
	Repeatable  bool
	Locations   []string
}

func (d *DirectiveDefinition) Location() gqlerrors.SourceLocation { return d.Loc }
func (d *DirectiveDefinition) isDefinition()                       {}

// SchemaDocument is a thin view of a parsed Document that the schema
// builder consumes: every SDL definition, in document order, type-switched
// out from any executable definitions that happened to share the document
// (the builder itself requires allowTypeSystem=true documents only).
type SchemaDocument struct {
	Definitions []Definition
}

// NewSchemaDocument wraps a parsed *Document for the schema builder.
func NewSchemaDocument(doc *Document) *SchemaDocument {
	sd := &SchemaDocument{}
	for _, d := range doc.Definitions {
		switch d.(type) {
		case *OperationDefinition, *FragmentDefinition:
			continue
		}
		sd.Definitions = append(sd.Definitions, d)
	}
	return sd
}
