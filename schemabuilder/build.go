package schemabuilder

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/appointy/gqlcore/graphql"
	"github.com/appointy/gqlcore/introspection"
)

// builder materializes a code-first Schema's registrations into a
// *graphql.Schema, pre-registering a stub for every struct type before
// filling in its fields so that mutually-referential Go types (A has a
// field of type *B, B has a field of type *A) build without needing a
// graphql.LazyRef — the builder already knows every type up front, unlike
// the SDL-first builder in sdl.go which discovers names as it parses.
type builder struct {
	schema *Schema

	objects      map[reflect.Type]*graphql.Object
	inputObjects map[reflect.Type]*graphql.InputObject
	enums        map[reflect.Type]*graphql.Enum
	unions       map[reflect.Type]*graphql.Union
	interfaces   map[reflect.Type]*graphql.Interface
	scalars      map[reflect.Type]*graphql.Scalar
}

// Build materializes every registration made on s into a validated
// *graphql.Schema.
func (s *Schema) Build() (*graphql.Schema, error) {
	b := &builder{
		schema:       s,
		objects:      map[reflect.Type]*graphql.Object{},
		inputObjects: map[reflect.Type]*graphql.InputObject{},
		enums:        map[reflect.Type]*graphql.Enum{},
		unions:       map[reflect.Type]*graphql.Union{},
		interfaces:   map[reflect.Type]*graphql.Interface{},
		scalars:      map[reflect.Type]*graphql.Scalar{},
	}

	gs := graphql.NewSchema()

	for typ, mapping := range s.enumMappings {
		b.enums[typ] = buildEnum(typ, mapping)
	}

	if s.query != nil {
		q, err := b.buildObject(goType(s.query.Type))
		if err != nil {
			return nil, fmt.Errorf("schemabuilder: building Query: %w", err)
		}
		gs.Query = q
	}
	if s.mutation != nil {
		m, err := b.buildObject(goType(s.mutation.Type))
		if err != nil {
			return nil, fmt.Errorf("schemabuilder: building Mutation: %w", err)
		}
		gs.Mutation = m
	}
	if s.subscription != nil {
		sub, err := b.buildObject(goType(s.subscription.Type))
		if err != nil {
			return nil, fmt.Errorf("schemabuilder: building Subscription: %w", err)
		}
		gs.Subscription = sub
	}

	// Build every other registered object/input even if unreachable from a
	// root, so stand-alone registrations (e.g. union members only reached
	// through an interface{} resolver) still materialize.
	for typ := range s.objects {
		switch {
		case isUnionType(typ):
			if _, err := b.buildUnion(typ); err != nil {
				return nil, err
			}
		case isInterfaceType(typ):
			if _, err := b.buildInterface(typ); err != nil {
				return nil, err
			}
		default:
			if _, err := b.buildObject(typ); err != nil {
				return nil, err
			}
		}
	}
	for typ := range s.inputObjects {
		if _, _, err := b.buildInputObject(typ); err != nil {
			return nil, err
		}
	}

	for _, o := range b.objects {
		gs.Types[o.Name] = o
	}
	for _, io := range b.inputObjects {
		gs.Types[io.Name] = io
	}
	for _, e := range b.enums {
		gs.Types[e.Name] = e
	}
	for _, u := range b.unions {
		gs.Types[u.Name] = u
	}
	for _, i := range b.interfaces {
		gs.Types[i.Name] = i
	}
	for _, sc := range b.scalars {
		gs.Types[sc.Name] = sc
	}

	// Introspection must be wired in before Validate() runs: Validate
	// memoizes its result, so injecting the __schema/__type subgraph
	// afterward would leave it unchecked by the one validation pass every
	// caller relies on.
	if gs.Query != nil {
		introspection.Inject(gs)
	}

	if errs := gs.Validate(); errs.HasErrors() {
		return nil, errs
	}
	return gs, nil
}

func goType(typ interface{}) reflect.Type {
	t := reflect.TypeOf(typ)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

func buildEnum(typ reflect.Type, mapping *EnumMapping) *graphql.Enum {
	e := &graphql.Enum{
		Name:              typ.Name(),
		Description:       mapping.Description,
		Map:               mapping.Map,
		ReverseMap:        mapping.ReverseMap,
		ValueDescriptions: mapping.ValueDescriptions,
		DeprecatedValues:  mapping.DeprecatedValues,
	}
	for name := range mapping.Map {
		e.Values = append(e.Values, name)
	}
	return e
}

// buildObject returns the already-built graphql.Object for typ if present
// (breaking cycles), else registers a stub, fills it, and returns it.
func (b *builder) buildObject(typ reflect.Type) (*graphql.Object, error) {
	if o, ok := b.objects[typ]; ok {
		return o, nil
	}
	reg, ok := b.schema.objects[typ]
	if !ok {
		return nil, fmt.Errorf("schemabuilder: %s not registered as an object", typ)
	}

	name := reg.Name
	if name == "" {
		name = typ.Name()
	}
	o := &graphql.Object{Name: name, Description: reg.Description, Fields: map[string]*graphql.Field{}}
	b.objects[typ] = o

	for fieldName, m := range reg.Methods {
		f, err := b.buildField(fieldName, m, typ)
		if err != nil {
			return nil, fmt.Errorf("schemabuilder: %s.%s: %w", name, fieldName, err)
		}
		o.Fields[fieldName] = f
		o.FieldOrder = append(o.FieldOrder, fieldName)
	}

	if len(reg.Interfaces) > 0 {
		o.Interfaces = map[string]*graphql.Interface{}
		for _, marker := range reg.Interfaces {
			iface, err := b.buildInterface(goType(marker))
			if err != nil {
				return nil, fmt.Errorf("schemabuilder: %s implements: %w", name, err)
			}
			o.Interfaces[iface.Name] = iface
		}
	}
	return o, nil
}

// buildUnion builds a Union-marked struct: typ embeds schemabuilder.Union
// plus one pointer field per member type, exactly one of which is set on
// any resolved value (the marker struct's own doc comment).
func (b *builder) buildUnion(typ reflect.Type) (*graphql.Union, error) {
	if u, ok := b.unions[typ]; ok {
		return u, nil
	}
	reg, ok := b.schema.objects[typ]
	if !ok {
		return nil, fmt.Errorf("schemabuilder: %s not registered", typ)
	}
	name := reg.Name
	if name == "" {
		name = typ.Name()
	}
	u := &graphql.Union{Name: name, Description: reg.Description, Types: map[string]*graphql.Object{}}
	b.unions[typ] = u

	var memberFields []int
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		if f.Anonymous && f.Type == unionType {
			continue
		}
		if f.Type.Kind() != reflect.Ptr || f.Type.Elem().Kind() != reflect.Struct {
			return nil, fmt.Errorf("schemabuilder: union %s member field %s must be a pointer to a struct", name, f.Name)
		}
		memberObj, err := b.buildObject(f.Type.Elem())
		if err != nil {
			return nil, fmt.Errorf("schemabuilder: union %s member %s: %w", name, f.Name, err)
		}
		u.Types[memberObj.Name] = memberObj
		memberFields = append(memberFields, i)
	}

	u.ResolveType = func(value interface{}) (*graphql.Object, error) {
		v := reflect.ValueOf(value)
		if v.Kind() == reflect.Ptr {
			v = v.Elem()
		}
		for _, idx := range memberFields {
			fv := v.Field(idx)
			if !fv.IsNil() {
				if obj, ok := b.objects[fv.Type().Elem()]; ok {
					return obj, nil
				}
			}
		}
		return nil, fmt.Errorf("schemabuilder: union %s: no member field set on %T", name, value)
	}
	return u, nil
}

// buildInterface builds an Interface-marked struct: reg.Methods describes
// the interface's shared fields, same as an Object's.
func (b *builder) buildInterface(typ reflect.Type) (*graphql.Interface, error) {
	if i, ok := b.interfaces[typ]; ok {
		return i, nil
	}
	reg, ok := b.schema.objects[typ]
	if !ok {
		return nil, fmt.Errorf("schemabuilder: %s not registered", typ)
	}
	name := reg.Name
	if name == "" {
		name = typ.Name()
	}
	iface := &graphql.Interface{Name: name, Description: reg.Description, Fields: map[string]*graphql.Field{}}
	b.interfaces[typ] = iface

	for fieldName, m := range reg.Methods {
		f, err := b.buildField(fieldName, m, typ)
		if err != nil {
			return nil, fmt.Errorf("schemabuilder: %s.%s: %w", name, fieldName, err)
		}
		iface.Fields[fieldName] = f
		iface.FieldOrder = append(iface.FieldOrder, fieldName)
	}

	iface.ResolveType = func(value interface{}) (*graphql.Object, error) {
		t := reflect.TypeOf(value)
		if t.Kind() == reflect.Ptr {
			t = t.Elem()
		}
		if obj, ok := b.objects[t]; ok {
			return obj, nil
		}
		if _, registered := b.schema.objects[t]; registered {
			return b.buildObject(t)
		}
		return nil, fmt.Errorf("schemabuilder: interface %s: %T is not a registered object", name, value)
	}
	return iface, nil
}

// buildField reflects on m.Fn's signature — any prefix of (context.Context,
// *ParentType, args struct{...}) followed by (Result) or (Result, error) —
// mirroring teacher's FieldFunc doc comment exactly.
func (b *builder) buildField(name string, m *method, parentType reflect.Type) (*graphql.Field, error) {
	fnVal := reflect.ValueOf(m.Fn)
	fnTyp := fnVal.Type()
	if fnTyp.Kind() != reflect.Func {
		return nil, fmt.Errorf("FieldFunc value must be a function")
	}

	var hasCtx, hasSource bool
	var argsTyp reflect.Type
	sourcePtrType := reflect.PtrTo(parentType)

	in := 0
	if fnTyp.NumIn() > in && fnTyp.In(in) == contextType {
		hasCtx = true
		in++
	}
	if fnTyp.NumIn() > in && fnTyp.In(in) == sourcePtrType {
		hasSource = true
		in++
	}
	var argParser *argParser
	var argType *graphql.InputObject
	if fnTyp.NumIn() > in {
		argsTyp = fnTyp.In(in)
		var err error
		argParser, argType, err = b.buildArgStruct(argsTyp)
		if err != nil {
			return nil, err
		}
		in++
	}
	if in != fnTyp.NumIn() {
		return nil, fmt.Errorf("unexpected extra arguments on field func")
	}

	if fnTyp.NumOut() == 0 || fnTyp.NumOut() > 2 {
		return nil, fmt.Errorf("field func must return (Result) or (Result, error)")
	}
	hasErr := fnTyp.NumOut() == 2
	if hasErr && fnTyp.Out(1) != errType {
		return nil, fmt.Errorf("field func's second return value must be error")
	}

	outType, err := b.getOutputType(fnTyp.Out(0))
	if err != nil {
		return nil, err
	}

	field := &graphql.Field{
		Name:              name,
		Description:       m.Description,
		Type:              outType,
		IsDeprecated:      m.DeprecationReason != "",
		DeprecationReason: m.DeprecationReason,
	}
	if argType != nil {
		field.Args = map[string]*graphql.InputValueDefinition{}
		for fname, t := range argType.Fields {
			field.Args[fname] = t
			field.ArgOrder = append(field.ArgOrder, fname)
		}
	}

	field.Resolve = func(params graphql.ResolveParams) (interface{}, error) {
		var callArgs []reflect.Value
		if hasCtx {
			ctx := params.Context
			if ctx == nil {
				ctx = context.Background()
			}
			callArgs = append(callArgs, reflect.ValueOf(ctx))
		}
		if hasSource {
			sv := reflect.ValueOf(params.Source)
			if !sv.IsValid() || sv.Type() != sourcePtrType {
				return nil, fmt.Errorf("field %s: expected source of type %s, got %T", name, sourcePtrType, params.Source)
			}
			callArgs = append(callArgs, sv)
		}
		if argParser != nil {
			dest := reflect.New(argsTyp).Elem()
			if err := argParser.FromJSON(argsMapValue(params.Args), dest); err != nil {
				return nil, err
			}
			callArgs = append(callArgs, dest)
		}

		out := fnVal.Call(callArgs)
		if hasErr {
			if errVal := out[1].Interface(); errVal != nil {
				return nil, errVal.(error)
			}
		}
		return out[0].Interface(), nil
	}

	return field, nil
}

func argsMapValue(args map[string]interface{}) interface{} {
	m := make(map[string]interface{}, len(args))
	for k, v := range args {
		m[k] = v
	}
	return m
}

// buildArgStruct builds an argParser + graphql.InputObject view over an
// inline `args struct{...}` type used as a FieldFunc's trailing parameter.
func (b *builder) buildArgStruct(typ reflect.Type) (*argParser, *graphql.InputObject, error) {
	if typ.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("args parameter must be a struct, got %s", typ)
	}

	fields := map[string]*argParser{}
	argType := &graphql.InputObject{Name: typ.Name() + "Args", Fields: map[string]*graphql.InputValueDefinition{}}

	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		info := parseGraphQLFieldInfo(f)
		if info.Skipped {
			continue
		}
		parser, fieldTyp, err := b.getInputType(f.Type)
		if err != nil {
			return nil, nil, fmt.Errorf("field %s: %w", info.Name, err)
		}
		fields[info.Name] = parser
		argType.Fields[info.Name] = &graphql.InputValueDefinition{
			Name: info.Name, Type: fieldTyp,
			Description:       info.Description,
			IsDeprecated:      info.DeprecationReason != "",
			DeprecationReason: info.DeprecationReason,
		}
		argType.FieldOrder = append(argType.FieldOrder, info.Name)
	}

	structFields := map[string]reflect.StructField{}
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		info := parseGraphQLFieldInfo(f)
		if !info.Skipped {
			structFields[info.Name] = f
		}
	}

	oneOf := hasOneOfMarker(typ)
	parser := &argParser{
		Type: argType,
		FromJSON: func(value interface{}, dest reflect.Value) error {
			asMap, ok := value.(map[string]interface{})
			if !ok {
				return fmt.Errorf("%s: not an object", argType.Name)
			}
			if oneOf {
				if err := validateOneOfInput(argType.Name, asMap); err != nil {
					return err
				}
			}
			for fname, fieldParser := range fields {
				sf := structFields[fname]
				if err := fieldParser.FromJSON(asMap[fname], dest.FieldByIndex(sf.Index)); err != nil {
					return fmt.Errorf("%s: %w", fname, err)
				}
			}
			for key := range asMap {
				if _, ok := fields[key]; !ok {
					return fmt.Errorf("%s: unknown argument %q", argType.Name, key)
				}
			}
			return nil
		},
	}
	return parser, argType, nil
}

// validateOneOfInput enforces the @oneOf constraint on an input literal:
// exactly one field present and non-null.
func validateOneOfInput(name string, asMap map[string]interface{}) error {
	set := 0
	for _, v := range asMap {
		if v != nil {
			set++
		}
	}
	if set != 1 {
		return fmt.Errorf("%s: exactly one field must be non-null, got %d", name, set)
	}
	return nil
}

// getInputType resolves typ to an (argParser, graphql.Type) pair usable in
// an input position: scalar, enum, input object, pointer (nullable) or slice
// (list).
func (b *builder) getInputType(typ reflect.Type) (*argParser, graphql.Type, error) {
	if mapping, ok := b.schema.enumMappings[typ]; ok {
		e := b.enums[typ]
		if e == nil {
			e = buildEnum(typ, mapping)
			b.enums[typ] = e
		}
		return &argParser{Type: e, FromJSON: func(value interface{}, dest reflect.Value) error {
			name, ok := value.(string)
			if !ok {
				return fmt.Errorf("not an enum string: %v", value)
			}
			v, ok := e.Map[name]
			if !ok {
				return fmt.Errorf("unknown enum value %q for %s", name, e.Name)
			}
			dest.Set(reflect.ValueOf(v).Convert(typ))
			return nil
		}}, e, nil
	}

	if p, t, ok := builtinScalarParser(typ); ok {
		return p, t, nil
	}

	if reg, ok := scalarRegistry[typ]; ok {
		scalar, _ := b.customScalar(typ)
		parser := &argParser{
			Type: scalar,
			FromJSON: func(value interface{}, dest reflect.Value) error {
				return reg.unmarshal(value, dest)
			},
		}
		return parser, scalar, nil
	}

	switch typ.Kind() {
	case reflect.Ptr:
		inner, innerTyp, err := b.getInputType(typ.Elem())
		if err != nil {
			return nil, nil, err
		}
		return wrapPtrParser(inner), innerTyp, nil
	case reflect.Slice:
		inner, innerTyp, err := b.getInputType(typ.Elem())
		if err != nil {
			return nil, nil, err
		}
		listParser := &argParser{
			Type: &graphql.List{Type: innerTyp},
			FromJSON: func(value interface{}, dest reflect.Value) error {
				items, ok := value.([]interface{})
				if !ok {
					return fmt.Errorf("not a list: %v", value)
				}
				slice := reflect.MakeSlice(typ, len(items), len(items))
				for i, item := range items {
					if err := inner.FromJSON(item, slice.Index(i)); err != nil {
						return err
					}
				}
				dest.Set(slice)
				return nil
			},
		}
		return listParser, listParser.Type, nil
	case reflect.Struct:
		return b.buildInputObject(typ)
	default:
		return nil, nil, fmt.Errorf("%s is not a valid input type", typ)
	}
}

func (b *builder) buildInputObject(typ reflect.Type) (*argParser, *graphql.InputObject, error) {
	if io, ok := b.inputObjects[typ]; ok {
		return &argParser{Type: io, FromJSON: inputObjectFromJSON(b, typ, io)}, io, nil
	}
	reg, ok := b.schema.inputObjects[typ]
	if !ok {
		return nil, nil, fmt.Errorf("%s not registered as an input object", typ)
	}

	name := reg.Name
	if name == "" {
		name = typ.Name()
	}
	io := &graphql.InputObject{Name: name, Description: reg.Description, Fields: map[string]*graphql.InputValueDefinition{}, OneOf: hasOneOfMarker(typ)}
	b.inputObjects[typ] = io

	if len(reg.Fields) > 0 {
		// Explicit FieldFunc-based field registration, targeting arbitrary
		// per-field source types (teacher's input_object.go idiom).
		for fieldName, fn := range reg.Fields {
			fnTyp := reflect.TypeOf(fn)
			sourceTyp := fnTyp.In(1)
			parser, fieldTyp, err := b.getInputType(sourceTyp)
			if err != nil {
				return nil, nil, fmt.Errorf("field %s: %w", fieldName, err)
			}
			io.Fields[fieldName] = &graphql.InputValueDefinition{Name: fieldName, Type: fieldTyp}
			io.FieldOrder = append(io.FieldOrder, fieldName)
		}
	} else {
		for i := 0; i < typ.NumField(); i++ {
			f := typ.Field(i)
			if f.Anonymous && f.Type == oneOfInputType {
				continue
			}
			info := parseGraphQLFieldInfo(f)
			if info.Skipped {
				continue
			}
			_, fieldTyp, err := b.getInputType(f.Type)
			if err != nil {
				return nil, nil, fmt.Errorf("field %s: %w", info.Name, err)
			}
			io.Fields[info.Name] = &graphql.InputValueDefinition{
				Name: info.Name, Type: fieldTyp, Description: info.Description,
				IsDeprecated: info.DeprecationReason != "", DeprecationReason: info.DeprecationReason,
			}
			io.FieldOrder = append(io.FieldOrder, info.Name)
		}
	}

	return &argParser{Type: io, FromJSON: inputObjectFromJSON(b, typ, io)}, io, nil
}

func inputObjectFromJSON(b *builder, typ reflect.Type, io *graphql.InputObject) func(interface{}, reflect.Value) error {
	return func(value interface{}, dest reflect.Value) error {
		asMap, ok := value.(map[string]interface{})
		if !ok {
			return fmt.Errorf("%s: not an object", io.Name)
		}
		if io.OneOf {
			if err := validateOneOfInput(io.Name, asMap); err != nil {
				return err
			}
		}
		reg := b.schema.inputObjects[typ]
		if reg != nil && len(reg.Fields) > 0 {
			target := reflect.New(typ)
			for fieldName, fn := range reg.Fields {
				raw, exists := asMap[fieldName]
				if !exists {
					continue
				}
				fnVal := reflect.ValueOf(fn)
				fnTyp := fnVal.Type()
				sourceTyp := fnTyp.In(1)
				source := reflect.New(sourceTyp).Elem()
				parser, _, err := b.getInputType(sourceTyp)
				if err != nil {
					return err
				}
				if err := parser.FromJSON(raw, source); err != nil {
					return fmt.Errorf("%s: %w", fieldName, err)
				}
				results := fnVal.Call([]reflect.Value{target, source})
				if len(results) > 0 && !results[0].IsNil() {
					return results[0].Interface().(error)
				}
			}
			dest.Set(target.Elem())
			return nil
		}

		known := map[string]bool{}
		for i := 0; i < typ.NumField(); i++ {
			f := typ.Field(i)
			if f.Anonymous && f.Type == oneOfInputType {
				continue
			}
			info := parseGraphQLFieldInfo(f)
			if info.Skipped {
				continue
			}
			known[info.Name] = true
			raw, exists := asMap[info.Name]
			if !exists {
				continue
			}
			parser, _, err := b.getInputType(f.Type)
			if err != nil {
				return err
			}
			if err := parser.FromJSON(raw, dest.FieldByIndex(f.Index)); err != nil {
				return fmt.Errorf("%s: %w", info.Name, err)
			}
		}
		for key := range asMap {
			if !known[key] {
				return fmt.Errorf("%s: unknown field %q", io.Name, key)
			}
		}
		return nil
	}
}

// getOutputType resolves typ to a field's declared output graphql.Type: a
// pointer is nullable, everything else is implicitly NonNull (teacher's
// FieldFunc convention — "Result" in the doc comment is whatever type the
// Go function actually returns).
func (b *builder) getOutputType(typ reflect.Type) (graphql.Type, error) {
	if typ.Kind() == reflect.Ptr {
		inner, err := b.resolveOutputType(typ.Elem())
		if err != nil {
			return nil, err
		}
		return inner, nil
	}
	inner, err := b.resolveOutputType(typ)
	if err != nil {
		return nil, err
	}
	return graphql.NewNonNull(inner), nil
}

func (b *builder) resolveOutputType(typ reflect.Type) (graphql.Type, error) {
	if mapping, ok := b.schema.enumMappings[typ]; ok {
		if e, ok := b.enums[typ]; ok {
			return e, nil
		}
		e := buildEnum(typ, mapping)
		b.enums[typ] = e
		return e, nil
	}
	if _, t, ok := builtinScalarParser(typ); ok {
		return t, nil
	}
	switch typ.Kind() {
	case reflect.Slice:
		inner, err := b.getOutputType(typ.Elem())
		if err != nil {
			return nil, err
		}
		return &graphql.List{Type: inner}, nil
	case reflect.Struct:
		if scalar, ok := b.customScalar(typ); ok {
			return scalar, nil
		}
		if _, ok := b.schema.objects[typ]; ok {
			switch {
			case isUnionType(typ):
				return b.buildUnion(typ)
			case isInterfaceType(typ):
				return b.buildInterface(typ)
			default:
				return b.buildObject(typ)
			}
		}
		return nil, fmt.Errorf("%s is not registered as an object", typ)
	default:
		return nil, fmt.Errorf("%s is not a valid output type", typ)
	}
}

// customScalar returns the graphql.Scalar for typ if it was registered via
// RegisterScalar, building (and memoizing) it on first use.
func (b *builder) customScalar(typ reflect.Type) (*graphql.Scalar, bool) {
	reg, ok := scalarRegistry[typ]
	if !ok {
		return nil, false
	}
	if s, ok := b.scalars[typ]; ok {
		return s, true
	}
	s := &graphql.Scalar{
		Name:           reg.name,
		SpecifiedByURL: reg.specifiedByURL,
		Serialize: func(value interface{}) (interface{}, error) {
			if reg.marshal != nil {
				return reg.marshal(value)
			}
			if m, ok := value.(json.Marshaler); ok {
				raw, err := m.MarshalJSON()
				if err != nil {
					return nil, err
				}
				var out interface{}
				if err := json.Unmarshal(raw, &out); err != nil {
					return nil, err
				}
				return out, nil
			}
			return value, nil
		},
	}
	b.scalars[typ] = s
	return s, true
}
