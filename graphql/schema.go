package graphql

import (
	"sort"

	"github.com/appointy/gqlcore/gqlerrors"
)

// Schema owns every named type and directive reachable from its three root
// operation types. Grounded on teacher's graphql.Schema{Query, Mutation,
// Subscription Type}, widened to the registry spec.md §4.E requires so
// Validate and introspection.Inject have somewhere to look named types up.
type Schema struct {
	Query        *Object
	Mutation     *Object
	Subscription *Object

	Types      map[string]NamedType
	Directives map[string]*Directive

	// PossibleTypes maps an interface or union name to the concrete Objects
	// that implement/belong to it, populated by the schema builder and
	// cross-checked by Validate.
	PossibleTypes map[string][]*Object

	validated    bool
	validateErrs gqlerrors.List
}

// NewSchema creates an empty Schema pre-seeded with the built-in scalars and
// directives every spec-compliant schema carries.
func NewSchema() *Schema {
	s := &Schema{
		Types:         map[string]NamedType{},
		Directives:    map[string]*Directive{},
		PossibleTypes: map[string][]*Object{},
	}
	for _, t := range []NamedType{Int, Float, String, Boolean, ID} {
		s.Types[t.TypeName()] = t
	}
	for _, d := range []*Directive{SkipDirective, IncludeDirective, DeprecatedDirective, SpecifiedByDirective, OneOfDirective} {
		s.Directives[d.Name] = d
	}
	return s
}

// IsPossibleType reports whether obj is a listed possible type of abstract
// (an Interface or Union name).
func (s *Schema) IsPossibleType(abstractName string, obj *Object) bool {
	for _, t := range s.PossibleTypes[abstractName] {
		if t == obj || t.Name == obj.Name {
			return true
		}
	}
	return false
}

// Validate checks every invariant spec.md §4.E lists and memoizes the
// result: calling Validate twice returns the identical gqlerrors.List
// without re-walking the schema (spec.md §8 invariant 4, mirrored from
// graphql/validation.Validate's own purity guarantee).
func (s *Schema) Validate() gqlerrors.List {
	if s.validated {
		return s.validateErrs
	}
	s.validated = true

	var errs gqlerrors.List
	errs = append(errs, s.validateLazyRefsResolve()...)
	errs = append(errs, s.validateCompositeFieldMaps()...)
	errs = append(errs, s.validateInterfacesImplemented()...)
	errs = append(errs, s.validateInputObjects()...)
	errs = append(errs, s.validateDirectiveArgsAreInputTypes()...)
	errs = append(errs, s.validateFieldKinds()...)
	errs = append(errs, s.validateRootsAreObjects()...)

	s.validateErrs = errs
	return errs
}

func schemaErr(format string, args ...interface{}) *gqlerrors.Error {
	return gqlerrors.New(gqlerrors.InvalidDocument, format, args...)
}

func (s *Schema) validateRootsAreObjects() gqlerrors.List {
	var errs gqlerrors.List
	if s.Query == nil {
		errs = append(errs, schemaErr("schema has no Query root type"))
	}
	return errs
}

// validateLazyRefsResolve walks every field/argument/input-field type in the
// registry and forces LazyRef.Resolved(), surfacing any forward reference
// the builder never bound.
func (s *Schema) validateLazyRefsResolve() gqlerrors.List {
	var errs gqlerrors.List
	check := func(t Type, context string) {
		if ref, ok := t.(*LazyRef); ok {
			if _, err := ref.Resolved(); err != nil {
				errs = append(errs, schemaErr("%s: %s", context, err))
			}
			return
		}
		switch v := t.(type) {
		case *List:
			check(v.Type, context)
		case *NonNull:
			check(v.Type, context)
		}
	}

	for name, t := range s.Types {
		switch v := t.(type) {
		case *Object:
			for fname, f := range v.Fields {
				check(f.Type, name+"."+fname)
				for aname, a := range f.Args {
					check(a.Type, name+"."+fname+"("+aname+")")
				}
			}
		case *Interface:
			for fname, f := range v.Fields {
				check(f.Type, name+"."+fname)
			}
		case *InputObject:
			for fname, f := range v.Fields {
				check(f.Type, name+"."+fname)
			}
		}
	}
	return errs
}

// validateCompositeFieldMaps enforces that every Object/Interface has at
// least one field (spec.md §4.E: "composite-type field maps are
// non-empty/unique" — uniqueness is structural here since Fields is a map).
func (s *Schema) validateCompositeFieldMaps() gqlerrors.List {
	var errs gqlerrors.List
	for name, t := range s.Types {
		switch v := t.(type) {
		case *Object:
			if len(v.Fields) == 0 {
				errs = append(errs, schemaErr("object type %q must define at least one field", name))
			}
		case *Interface:
			if len(v.Fields) == 0 {
				errs = append(errs, schemaErr("interface type %q must define at least one field", name))
			}
		case *Union:
			if len(v.Types) == 0 {
				errs = append(errs, schemaErr("union type %q must define at least one member type", name))
			}
		case *Enum:
			if len(v.Values) == 0 {
				errs = append(errs, schemaErr("enum type %q must define at least one value", name))
			}
		}
	}
	return errs
}

// validateInterfacesImplemented checks that every Object claiming to
// implement an Interface actually provides every one of that interface's
// fields with a compatible type, and keeps PossibleTypes in sync.
func (s *Schema) validateInterfacesImplemented() gqlerrors.List {
	var errs gqlerrors.List
	for name, t := range s.Types {
		obj, ok := t.(*Object)
		if !ok {
			continue
		}
		for ifaceName, iface := range obj.Interfaces {
			if !s.IsPossibleType(ifaceName, obj) {
				s.PossibleTypes[ifaceName] = append(s.PossibleTypes[ifaceName], obj)
			}
			for fname, ifield := range iface.Fields {
				ofield, ok := obj.Fields[fname]
				if !ok {
					errs = append(errs, schemaErr("object type %q does not implement field %q required by interface %q", name, fname, ifaceName))
					continue
				}
				if ofield.Type.String() != ifield.Type.String() {
					errs = append(errs, schemaErr("object type %q field %q has type %s, expected %s from interface %q", name, fname, ofield.Type, ifield.Type, ifaceName))
				}
			}
		}
	}
	for _, union := range s.Types {
		u, ok := union.(*Union)
		if !ok {
			continue
		}
		for _, obj := range u.Types {
			if !s.IsPossibleType(u.Name, obj) {
				s.PossibleTypes[u.Name] = append(s.PossibleTypes[u.Name], obj)
			}
		}
	}
	for name := range s.PossibleTypes {
		sort.Slice(s.PossibleTypes[name], func(i, j int) bool {
			return s.PossibleTypes[name][i].Name < s.PossibleTypes[name][j].Name
		})
	}
	return errs
}

// validateInputObjects enforces unique field names (structural via map),
// and rejects required-field reference cycles (A requires B, B requires A,
// both non-null with no default) which would make every input value for A
// unconstructible.
func (s *Schema) validateInputObjects() gqlerrors.List {
	var errs gqlerrors.List
	for name, t := range s.Types {
		io, ok := t.(*InputObject)
		if !ok {
			continue
		}
		if cyc := findRequiredFieldCycle(io, map[string]bool{}); cyc != "" {
			errs = append(errs, schemaErr("input object type %q has a required-field cycle through %q", name, cyc))
		}
		if io.OneOf {
			for fname, f := range io.Fields {
				if IsNonNull(f.Type) {
					errs = append(errs, schemaErr("oneOf input object %q field %q must be nullable", name, fname))
				}
			}
		}
	}
	return errs
}

func findRequiredFieldCycle(io *InputObject, visiting map[string]bool) string {
	if visiting[io.Name] {
		return io.Name
	}
	visiting[io.Name] = true
	defer delete(visiting, io.Name)

	for _, f := range io.Fields {
		if !IsNonNull(f.Type) || f.HasDefault {
			continue
		}
		if next, ok := NamedOf(f.Type).(*InputObject); ok {
			if cyc := findRequiredFieldCycle(next, visiting); cyc != "" {
				return cyc
			}
		}
	}
	return ""
}

func (s *Schema) validateDirectiveArgsAreInputTypes() gqlerrors.List {
	var errs gqlerrors.List
	for name, d := range s.Directives {
		for aname, a := range d.Args {
			if !IsInputType(a.Type) {
				errs = append(errs, schemaErr("directive @%s argument %q must be an input type, got %s", name, aname, a.Type))
			}
		}
	}
	return errs
}

// validateFieldKinds enforces spec.md §4.E: a field's type must be valid in
// its position. An Object/Interface field (and any of its arguments) must
// resolve to an output/input type respectively, and an InputObject field
// must resolve to an input type — so an input-only type (like an
// InputObject) can never back an output field and vice versa.
func (s *Schema) validateFieldKinds() gqlerrors.List {
	var errs gqlerrors.List
	for name, t := range s.Types {
		switch v := t.(type) {
		case *Object:
			for fname, f := range v.Fields {
				if !IsOutputType(f.Type) {
					errs = append(errs, schemaErr("object type %q field %q has non-output type %s", name, fname, f.Type))
				}
				for aname, a := range f.Args {
					if !IsInputType(a.Type) {
						errs = append(errs, schemaErr("object type %q field %q argument %q must be an input type, got %s", name, fname, aname, a.Type))
					}
				}
			}
		case *Interface:
			for fname, f := range v.Fields {
				if !IsOutputType(f.Type) {
					errs = append(errs, schemaErr("interface type %q field %q has non-output type %s", name, fname, f.Type))
				}
			}
		case *InputObject:
			for fname, f := range v.Fields {
				if !IsInputType(f.Type) {
					errs = append(errs, schemaErr("input object type %q field %q has non-input type %s", name, fname, f.Type))
				}
			}
		}
	}
	return errs
}
