package schemabuilder

import (
	"fmt"

	"github.com/appointy/gqlcore/graphql"
	"github.com/appointy/gqlcore/graphql/coerce"
	"github.com/appointy/gqlcore/gqlerrors"
	"github.com/appointy/gqlcore/introspection"
	"github.com/appointy/gqlcore/language/ast"
)

// FromSDL builds a *graphql.Schema directly from a parsed SDL document,
// the alternative to the reflective code-first Schema above for callers who
// already have type definitions written out (a .graphql file, a federation
// subgraph, a generated document) rather than Go structs to reflect over.
//
// Unlike builder in build.go, FromSDL discovers every type's name only as it
// walks the document, so it can't pre-populate a reflect.Type-keyed map
// before building. It uses the same stub-then-fill approach regardless:
// pass 1 registers a named placeholder for every type definition (so a field
// referencing a type defined later in the document, or referencing itself,
// resolves), pass 2 fills in each placeholder's fields, arguments,
// interfaces and union members.
func FromSDL(doc *ast.SchemaDocument) (*graphql.Schema, error) {
	b := &sdlBuilder{
		objects:    map[string]*ast.ObjectTypeDefinition{},
		interfaces: map[string]*ast.InterfaceTypeDefinition{},
		unions:     map[string]*ast.UnionTypeDefinition{},
		enums:      map[string]*ast.EnumTypeDefinition{},
		inputs:     map[string]*ast.InputObjectTypeDefinition{},
		scalars:    map[string]*ast.ScalarTypeDefinition{},
		directives: map[string]*ast.DirectiveDefinition{},
		types:      map[string]graphql.NamedType{},
	}

	if err := b.collect(doc); err != nil {
		return nil, err
	}
	if err := b.mergeExtensions(doc); err != nil {
		return nil, err
	}
	b.stub()
	if err := b.fill(); err != nil {
		return nil, err
	}

	gs := graphql.NewSchema()
	for name, t := range b.types {
		gs.Types[name] = t
	}
	for name, d := range b.directives {
		locs := make([]graphql.DirectiveLocation, len(d.Locations))
		for i, l := range d.Locations {
			locs[i] = graphql.DirectiveLocation(l)
		}
		args, order, err := b.buildArgDefs(d.Arguments)
		if err != nil {
			return nil, fmt.Errorf("schemabuilder: directive @%s: %w", name, err)
		}
		gs.Directives[name] = &graphql.Directive{
			Name: name, Description: describe(d.Description),
			Locations: locs, Args: args, ArgOrder: order,
		}
	}

	root, err := b.rootTypes(doc)
	if err != nil {
		return nil, err
	}
	gs.Query, gs.Mutation, gs.Subscription = root.query, root.mutation, root.subscription

	// Injected before Validate() for the same reason build.go's Build does
	// this: Validate memoizes, so introspection must already be part of the
	// graph the one validation pass checks.
	if gs.Query != nil {
		introspection.Inject(gs)
	}

	if errs := gs.Validate(); errs.HasErrors() {
		return nil, errs
	}
	return gs, nil
}

type sdlBuilder struct {
	objects    map[string]*ast.ObjectTypeDefinition
	interfaces map[string]*ast.InterfaceTypeDefinition
	unions     map[string]*ast.UnionTypeDefinition
	enums      map[string]*ast.EnumTypeDefinition
	inputs     map[string]*ast.InputObjectTypeDefinition
	scalars    map[string]*ast.ScalarTypeDefinition
	directives map[string]*ast.DirectiveDefinition

	types map[string]graphql.NamedType
}

// collect registers every base (non-extension) type definition by name,
// failing if two definitions claim the same name.
func (b *sdlBuilder) collect(doc *ast.SchemaDocument) error {
	for _, def := range doc.Definitions {
		var name string
		switch d := def.(type) {
		case *ast.ObjectTypeDefinition:
			name = d.Name
			b.objects[name] = d
		case *ast.InterfaceTypeDefinition:
			name = d.Name
			b.interfaces[name] = d
		case *ast.UnionTypeDefinition:
			name = d.Name
			b.unions[name] = d
		case *ast.EnumTypeDefinition:
			name = d.Name
			b.enums[name] = d
		case *ast.InputObjectTypeDefinition:
			name = d.Name
			b.inputs[name] = d
		case *ast.ScalarTypeDefinition:
			name = d.Name
			b.scalars[name] = d
		case *ast.DirectiveDefinition:
			b.directives[d.Name] = d
			continue
		case *ast.SchemaDefinition, *ast.ObjectTypeExtension, *ast.InterfaceTypeExtension,
			*ast.UnionTypeExtension, *ast.EnumTypeExtension, *ast.InputObjectTypeExtension,
			*ast.ScalarTypeExtension:
			continue
		default:
			return gqlerrors.New(gqlerrors.InvalidDocument, "unsupported type-system definition %T", def)
		}
		if name == "" {
			continue
		}
		if b.definedMoreThanOnce(name) {
			return gqlerrors.New(gqlerrors.InvalidDocument, "type %q is defined more than once", name)
		}
	}
	return nil
}

func (b *sdlBuilder) definedMoreThanOnce(name string) bool {
	count := 0
	if _, ok := b.objects[name]; ok {
		count++
	}
	if _, ok := b.interfaces[name]; ok {
		count++
	}
	if _, ok := b.unions[name]; ok {
		count++
	}
	if _, ok := b.enums[name]; ok {
		count++
	}
	if _, ok := b.inputs[name]; ok {
		count++
	}
	if _, ok := b.scalars[name]; ok {
		count++
	}
	return count > 1
}

// mergeExtensions folds every `extend` definition into its base, failing on
// a field name collision between the base and an extension or between two
// extensions.
func (b *sdlBuilder) mergeExtensions(doc *ast.SchemaDocument) error {
	for _, def := range doc.Definitions {
		switch ext := def.(type) {
		case *ast.ObjectTypeExtension:
			base, ok := b.objects[ext.Name]
			if !ok {
				return gqlerrors.New(gqlerrors.InvalidDocument, "extend type %q: no base type definition", ext.Name)
			}
			if err := mergeFields(ext.Name, &base.Fields, ext.Fields); err != nil {
				return err
			}
			base.Interfaces = mergeInterfaces(base.Interfaces, ext.Interfaces)
			base.Directives = append(base.Directives, ext.Directives...)

		case *ast.InterfaceTypeExtension:
			base, ok := b.interfaces[ext.Name]
			if !ok {
				return gqlerrors.New(gqlerrors.InvalidDocument, "extend interface %q: no base type definition", ext.Name)
			}
			if err := mergeFields(ext.Name, &base.Fields, ext.Fields); err != nil {
				return err
			}
			base.Interfaces = mergeInterfaces(base.Interfaces, ext.Interfaces)
			base.Directives = append(base.Directives, ext.Directives...)

		case *ast.UnionTypeExtension:
			base, ok := b.unions[ext.Name]
			if !ok {
				return gqlerrors.New(gqlerrors.InvalidDocument, "extend union %q: no base type definition", ext.Name)
			}
			base.Types = mergeNamedTypes(base.Types, ext.Types)
			base.Directives = append(base.Directives, ext.Directives...)

		case *ast.EnumTypeExtension:
			base, ok := b.enums[ext.Name]
			if !ok {
				return gqlerrors.New(gqlerrors.InvalidDocument, "extend enum %q: no base type definition", ext.Name)
			}
			seen := map[string]bool{}
			for _, v := range base.Values {
				seen[v.Name] = true
			}
			for _, v := range ext.Values {
				if seen[v.Name] {
					return gqlerrors.New(gqlerrors.InvalidDocument, "enum %q: value %q defined more than once", ext.Name, v.Name)
				}
				seen[v.Name] = true
				base.Values = append(base.Values, v)
			}
			base.Directives = append(base.Directives, ext.Directives...)

		case *ast.InputObjectTypeExtension:
			base, ok := b.inputs[ext.Name]
			if !ok {
				return gqlerrors.New(gqlerrors.InvalidDocument, "extend input %q: no base type definition", ext.Name)
			}
			seen := map[string]bool{}
			for _, f := range base.Fields {
				seen[f.Name] = true
			}
			for _, f := range ext.Fields {
				if seen[f.Name] {
					return gqlerrors.New(gqlerrors.InvalidDocument, "input %q: field %q defined more than once", ext.Name, f.Name)
				}
				seen[f.Name] = true
				base.Fields = append(base.Fields, f)
			}
			base.Directives = append(base.Directives, ext.Directives...)

		case *ast.ScalarTypeExtension:
			base, ok := b.scalars[ext.Name]
			if !ok {
				return gqlerrors.New(gqlerrors.InvalidDocument, "extend scalar %q: no base type definition", ext.Name)
			}
			base.Directives = append(base.Directives, ext.Directives...)
		}
	}
	return nil
}

func mergeFields(typeName string, base *[]*ast.FieldDefinition, extra []*ast.FieldDefinition) error {
	seen := map[string]bool{}
	for _, f := range *base {
		seen[f.Name] = true
	}
	for _, f := range extra {
		if seen[f.Name] {
			return gqlerrors.New(gqlerrors.InvalidDocument, "type %q: field %q defined more than once", typeName, f.Name)
		}
		seen[f.Name] = true
		*base = append(*base, f)
	}
	return nil
}

func mergeInterfaces(base, extra []*ast.NamedType) []*ast.NamedType {
	seen := map[string]bool{}
	for _, i := range base {
		seen[i.Name] = true
	}
	for _, i := range extra {
		if !seen[i.Name] {
			seen[i.Name] = true
			base = append(base, i)
		}
	}
	return base
}

func mergeNamedTypes(base, extra []*ast.NamedType) []*ast.NamedType {
	return mergeInterfaces(base, extra)
}

// stub registers a name-only placeholder for every collected type, so pass 2
// can resolve a field or argument referencing any of them regardless of
// declaration order.
func (b *sdlBuilder) stub() {
	for name, d := range b.objects {
		b.types[name] = &graphql.Object{Name: name, Description: describe(d.Description), Fields: map[string]*graphql.Field{}}
	}
	for name, d := range b.interfaces {
		b.types[name] = &graphql.Interface{Name: name, Description: describe(d.Description), Fields: map[string]*graphql.Field{}, Types: map[string]*graphql.Object{}}
	}
	for name, d := range b.unions {
		b.types[name] = &graphql.Union{Name: name, Description: describe(d.Description), Types: map[string]*graphql.Object{}}
	}
	for name, d := range b.enums {
		b.types[name] = &graphql.Enum{Name: name, Description: describe(d.Description)}
	}
	for name, d := range b.inputs {
		oneOf := directiveNamed(d.Directives, "oneOf") != nil
		b.types[name] = &graphql.InputObject{Name: name, Description: describe(d.Description), Fields: map[string]*graphql.InputValueDefinition{}, OneOf: oneOf}
	}
	for name, d := range b.scalars {
		b.types[name] = buildSDLScalar(name, d.Description, d.Directives)
	}
}

// fill materializes every stub's fields, arguments, interfaces and union
// members, now that every named type (including forward and
// self-references) is resolvable through b.types.
func (b *sdlBuilder) fill() error {
	for name, d := range b.objects {
		o := b.types[name].(*graphql.Object)
		for _, fd := range d.Fields {
			f, err := b.buildFieldDef(fd)
			if err != nil {
				return fmt.Errorf("schemabuilder: %s.%s: %w", name, fd.Name, err)
			}
			o.Fields[fd.Name] = f
			o.FieldOrder = append(o.FieldOrder, fd.Name)
		}
		if len(d.Interfaces) > 0 {
			o.Interfaces = map[string]*graphql.Interface{}
			for _, it := range d.Interfaces {
				iface, err := b.resolveInterface(it.Name)
				if err != nil {
					return fmt.Errorf("schemabuilder: type %s implements: %w", name, err)
				}
				o.Interfaces[iface.Name] = iface
				iface.Types[name] = o
			}
		}
	}

	for name, d := range b.interfaces {
		i := b.types[name].(*graphql.Interface)
		for _, fd := range d.Fields {
			f, err := b.buildFieldDef(fd)
			if err != nil {
				return fmt.Errorf("schemabuilder: %s.%s: %w", name, fd.Name, err)
			}
			i.Fields[fd.Name] = f
			i.FieldOrder = append(i.FieldOrder, fd.Name)
		}
	}

	// Interface.ResolveType and Union.ResolveType are left nil: SDL names
	// member types but carries no code for telling one concrete value from
	// another, so a caller executing against a FromSDL schema must assign
	// both (and every field's Resolve, replacing unimplementedResolver)
	// before serving traffic. The executor reports a clear error for either
	// gap rather than panicking.
	for name, d := range b.unions {
		u := b.types[name].(*graphql.Union)
		for _, t := range d.Types {
			obj, err := b.resolveObject(t.Name)
			if err != nil {
				return fmt.Errorf("schemabuilder: union %s: %w", name, err)
			}
			u.Types[obj.Name] = obj
		}
	}

	for name, d := range b.enums {
		e := b.types[name].(*graphql.Enum)
		e.Map = map[string]interface{}{}
		e.ReverseMap = map[interface{}]string{}
		e.ValueDescriptions = map[string]string{}
		e.DeprecatedValues = map[string]string{}
		for _, v := range d.Values {
			e.Values = append(e.Values, v.Name)
			e.Map[v.Name] = v.Name
			e.ReverseMap[v.Name] = v.Name
			if v.Description != nil {
				e.ValueDescriptions[v.Name] = v.Description.Value
			}
			if dep := directiveNamed(v.Directives, "deprecated"); dep != nil {
				e.DeprecatedValues[v.Name] = deprecationReason(dep)
			}
		}
	}

	for name, d := range b.inputs {
		io := b.types[name].(*graphql.InputObject)
		for _, fd := range d.Fields {
			ivd, err := b.buildInputValueDef(fd)
			if err != nil {
				return fmt.Errorf("schemabuilder: input %s.%s: %w", name, fd.Name, err)
			}
			io.Fields[fd.Name] = ivd
			io.FieldOrder = append(io.FieldOrder, fd.Name)
		}
	}

	return nil
}

type rootTypeSet struct {
	query, mutation, subscription *graphql.Object
}

// rootTypes resolves the schema's root operation types: an explicit `schema
// { ... }` definition if present, else the conventional Query/Mutation/
// Subscription object names (the SDL default per the GraphQL spec).
func (b *sdlBuilder) rootTypes(doc *ast.SchemaDocument) (rootTypeSet, error) {
	for _, def := range doc.Definitions {
		sd, ok := def.(*ast.SchemaDefinition)
		if !ok {
			continue
		}
		var set rootTypeSet
		for _, op := range sd.OperationTypeDefs {
			obj, err := b.resolveObject(op.Type.Name)
			if err != nil {
				return rootTypeSet{}, fmt.Errorf("schemabuilder: schema %s: %w", op.Operation, err)
			}
			switch op.Operation {
			case ast.OperationQuery:
				set.query = obj
			case ast.OperationMutation:
				set.mutation = obj
			case ast.OperationSubscription:
				set.subscription = obj
			}
		}
		return set, nil
	}

	var set rootTypeSet
	if o, ok := b.types["Query"].(*graphql.Object); ok {
		set.query = o
	}
	if o, ok := b.types["Mutation"].(*graphql.Object); ok {
		set.mutation = o
	}
	if o, ok := b.types["Subscription"].(*graphql.Object); ok {
		set.subscription = o
	}
	return set, nil
}

func (b *sdlBuilder) resolveObject(name string) (*graphql.Object, error) {
	t, ok := b.types[name]
	if !ok {
		return nil, fmt.Errorf("unknown type %q", name)
	}
	o, ok := t.(*graphql.Object)
	if !ok {
		return nil, fmt.Errorf("%q is not an object type", name)
	}
	return o, nil
}

func (b *sdlBuilder) resolveInterface(name string) (*graphql.Interface, error) {
	t, ok := b.types[name]
	if !ok {
		return nil, fmt.Errorf("unknown type %q", name)
	}
	i, ok := t.(*graphql.Interface)
	if !ok {
		return nil, fmt.Errorf("%q is not an interface type", name)
	}
	return i, nil
}

func (b *sdlBuilder) buildFieldDef(fd *ast.FieldDefinition) (*graphql.Field, error) {
	typ, err := b.resolveTypeNode(fd.Type)
	if err != nil {
		return nil, err
	}
	args, order, err := b.buildArgDefs(fd.Arguments)
	if err != nil {
		return nil, err
	}
	dep := directiveNamed(fd.Directives, "deprecated")
	return &graphql.Field{
		Name:              fd.Name,
		Description:       describe(fd.Description),
		Type:              typ,
		Args:              args,
		ArgOrder:          order,
		IsDeprecated:      dep != nil,
		DeprecationReason: deprecationReason(dep),
		Resolve:           unimplementedResolver(fd.Name),
	}, nil
}

func (b *sdlBuilder) buildArgDefs(defs []*ast.InputValueDefinition) (map[string]*graphql.InputValueDefinition, []string, error) {
	if len(defs) == 0 {
		return nil, nil, nil
	}
	args := map[string]*graphql.InputValueDefinition{}
	order := make([]string, 0, len(defs))
	for _, a := range defs {
		ivd, err := b.buildInputValueDef(a)
		if err != nil {
			return nil, nil, err
		}
		args[a.Name] = ivd
		order = append(order, a.Name)
	}
	return args, order, nil
}

func (b *sdlBuilder) buildInputValueDef(iv *ast.InputValueDefinition) (*graphql.InputValueDefinition, error) {
	typ, err := b.resolveTypeNode(iv.Type)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", iv.Name, err)
	}
	dep := directiveNamed(iv.Directives, "deprecated")
	ivd := &graphql.InputValueDefinition{
		Name:              iv.Name,
		Description:       describe(iv.Description),
		Type:              typ,
		HasDefault:        iv.HasDefault,
		IsDeprecated:      dep != nil,
		DeprecationReason: deprecationReason(dep),
	}
	if iv.HasDefault {
		v, err := coerce.CoerceLiteral(iv.DefaultValue, typ)
		if err != nil {
			return nil, fmt.Errorf("%s: default value: %w", iv.Name, err)
		}
		ivd.DefaultValue = v
	}
	return ivd, nil
}

// resolveTypeNode translates an SDL type reference into the graphql.Type it
// names, resolving NamedType through the stub map populated by stub() so a
// field may reference a type defined anywhere else in the document.
func (b *sdlBuilder) resolveTypeNode(tn ast.TypeNode) (graphql.Type, error) {
	switch t := tn.(type) {
	case *ast.NamedType:
		named, ok := b.types[t.Name]
		if ok {
			return named, nil
		}
		switch t.Name {
		case "Int":
			return graphql.Int, nil
		case "Float":
			return graphql.Float, nil
		case "String":
			return graphql.String, nil
		case "Boolean":
			return graphql.Boolean, nil
		case "ID":
			return graphql.ID, nil
		default:
			return nil, fmt.Errorf("unknown type %q", t.Name)
		}
	case *ast.ListType:
		inner, err := b.resolveTypeNode(t.Type)
		if err != nil {
			return nil, err
		}
		return &graphql.List{Type: inner}, nil
	case *ast.NonNullType:
		inner, err := b.resolveTypeNode(t.Type)
		if err != nil {
			return nil, err
		}
		return graphql.NewNonNull(inner), nil
	default:
		return nil, fmt.Errorf("unrecognized type syntax %T", tn)
	}
}

// buildSDLScalar builds a *graphql.Scalar for a `scalar Name` definition:
// Serialize/Coerce default to identity, matching graphql.Scalar's own
// nil-means-identity convention, since bare SDL carries no Go marshaling
// code — a caller wanting custom (de)serialization registers one after
// FromSDL returns, by replacing schema.Types[name].
func buildSDLScalar(name string, desc ast.Description, directives []*ast.Directive) *graphql.Scalar {
	s := &graphql.Scalar{Name: name, Description: describe(desc)}
	if sb := directiveNamed(directives, "specifiedBy"); sb != nil {
		for _, arg := range sb.Arguments {
			if arg.Name != "url" {
				continue
			}
			if sv, ok := arg.Value.(*ast.StringValue); ok {
				s.SpecifiedByURL = sv.Value
			}
		}
	}
	return s
}

// unimplementedResolver is every field's resolver immediately after FromSDL
// returns: an SDL document describes shape, not behavior, so the caller is
// expected to replace schema.Query/Mutation/Subscription (or walk
// schema.Types) and assign real resolvers before serving traffic.
func unimplementedResolver(fieldName string) graphql.Resolver {
	return func(graphql.ResolveParams) (interface{}, error) {
		return nil, fmt.Errorf("field %q has no resolver bound", fieldName)
	}
}

func describe(d ast.Description) string {
	if d == nil {
		return ""
	}
	return d.Value
}

func directiveNamed(directives []*ast.Directive, name string) *ast.Directive {
	for _, d := range directives {
		if d.Name == name {
			return d
		}
	}
	return nil
}

func deprecationReason(d *ast.Directive) string {
	if d == nil {
		return ""
	}
	for _, arg := range d.Arguments {
		if arg.Name != "reason" {
			continue
		}
		if sv, ok := arg.Value.(*ast.StringValue); ok {
			return sv.Value
		}
	}
	return "No longer supported"
}
