package executor

import (
	"context"
	"fmt"
	"reflect"

	"github.com/appointy/gqlcore/graphql"
	"github.com/appointy/gqlcore/graphql/coerce"
	"github.com/appointy/gqlcore/gqlerrors"
	"github.com/appointy/gqlcore/language/ast"
	"github.com/jensneuse/abstractlogger"
)

// executeOneField resolves and completes a single collected field group,
// returning its response value and any errors raised along the way (each
// carrying the response path it occurred at).
func executeOneField(ctx context.Context, ec *execContext, parentType *graphql.Object, source interface{}, group fieldGroup, path []gqlerrors.PathSegment) (interface{}, gqlerrors.List) {
	first := group.Fields[0]
	fieldPath := append(append([]gqlerrors.PathSegment{}, path...), gqlerrors.StringKey(group.Key))

	if first.Name == "__typename" {
		return parentType.Name, nil
	}

	fieldDef, ok := parentType.Fields[first.Name]
	if !ok {
		// Unknown field on an unvalidated document: per spec behavior this
		// is silently skipped rather than raised, since validation (not
		// execution) is responsible for catching it.
		return nil, nil
	}

	args, argErrs := coerce.CoerceArgumentValues(fieldDef.Args, first.Arguments, ec.vars)
	if argErrs.HasErrors() {
		return nil, withPath(argErrs, fieldPath)
	}

	resolve := ec.wrap(fieldDef.Resolve)
	value, err := resolve(graphql.ResolveParams{
		Context: ctx,
		Source:  source,
		Args:    args,
		Info: graphql.ResolveInfo{
			Schema:     ec.schema,
			ParentType: parentType,
			Field:      fieldDef,
			FieldName:  first.Name,
			Path:       fieldPath,
		},
	})
	if err != nil {
		logResolverError(ec, fieldPath, err)
		wrapped := gqlerrors.Wrap(gqlerrors.ResolverError, err, "%s", err).WithPath(fieldPath).WithNodes(first)
		if graphql.IsNonNull(fieldDef.Type) {
			return nil, gqlerrors.List{wrapped}
		}
		return nil, gqlerrors.List{wrapped}
	}

	return completeValue(ctx, ec, fieldDef.Type, group, value, fieldPath)
}

func logResolverError(ec *execContext, path []gqlerrors.PathSegment, err error) {
	ec.logger.Error(fmt.Sprintf("resolver error at %s: %s", pathString(path), err))
}

func pathString(path []gqlerrors.PathSegment) string {
	out := ""
	for i, seg := range path {
		if i > 0 {
			out += "."
		}
		out += seg.String()
	}
	return out
}

func withPath(errs gqlerrors.List, path []gqlerrors.PathSegment) gqlerrors.List {
	out := make(gqlerrors.List, len(errs))
	for i, e := range errs {
		out[i] = e.WithPath(path)
	}
	return out
}

// completeValue implements the spec's field-value completion algorithm:
// unwrap NonNull (propagating a null-in-non-null failure upward as an
// error), iterate List elements, serialize Scalar/Enum leaves, and recurse
// into Object/Interface/Union composite values through collectFields and
// CooperativeExecutor (nested selections always use it, whatever strategy
// runs the root selection).
func completeValue(ctx context.Context, ec *execContext, fieldType graphql.Type, group fieldGroup, value interface{}, path []gqlerrors.PathSegment) (interface{}, gqlerrors.List) {
	if nn, ok := fieldType.(*graphql.NonNull); ok {
		v, errs := completeValue(ctx, ec, nn.Type, group, value, path)
		if v == nil && !errs.HasErrors() {
			return nil, gqlerrors.List{gqlerrors.New(gqlerrors.ResolverError, "non-null field resolved to null").WithPath(path).WithNodes(group.Fields[0])}
		}
		return v, errs
	}

	if value == nil {
		return nil, nil
	}

	switch t := fieldType.(type) {
	case *graphql.List:
		return completeList(ctx, ec, t.Type, group, value, path)

	case *graphql.Scalar:
		serialize := t.Serialize
		if serialize == nil {
			serialize = func(v interface{}) (interface{}, error) { return v, nil }
		}
		serialized, err := serialize(value)
		if err != nil {
			return nil, gqlerrors.List{gqlerrors.Wrap(gqlerrors.ResolverError, err, "serializing %s", t.Name).WithPath(path).WithNodes(group.Fields[0])}
		}
		return serialized, nil

	case *graphql.Enum:
		name, ok := t.ReverseMap[value]
		if !ok {
			return nil, gqlerrors.List{gqlerrors.New(gqlerrors.ResolverError, "value %v is not a member of enum %q", value, t.Name).WithPath(path).WithNodes(group.Fields[0])}
		}
		return name, nil

	case *graphql.Object:
		return completeComposite(ctx, ec, t, group, value, path)

	case *graphql.Interface:
		obj, err := resolveAbstractType(t.ResolveType, value)
		if err != nil {
			return nil, gqlerrors.List{gqlerrors.Wrap(gqlerrors.ResolverError, err, "resolving implementation of %s", t.Name).WithPath(path).WithNodes(group.Fields[0])}
		}
		return completeComposite(ctx, ec, obj, group, value, path)

	case *graphql.Union:
		obj, err := resolveAbstractType(t.ResolveType, value)
		if err != nil {
			return nil, gqlerrors.List{gqlerrors.Wrap(gqlerrors.ResolverError, err, "resolving member of %s", t.Name).WithPath(path).WithNodes(group.Fields[0])}
		}
		return completeComposite(ctx, ec, obj, group, value, path)

	default:
		return nil, gqlerrors.List{gqlerrors.New(gqlerrors.ResolverError, "%s is not a valid output type", fieldType).WithPath(path).WithNodes(group.Fields[0])}
	}
}

func resolveAbstractType(resolveType func(interface{}) (*graphql.Object, error), value interface{}) (*graphql.Object, error) {
	if resolveType == nil {
		return nil, fmt.Errorf("no ResolveType configured")
	}
	obj, err := resolveType(value)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, fmt.Errorf("ResolveType returned no matching object type")
	}
	return obj, nil
}

func completeList(ctx context.Context, ec *execContext, elemType graphql.Type, group fieldGroup, value interface{}, path []gqlerrors.PathSegment) (interface{}, gqlerrors.List) {
	items, err := asSlice(value)
	if err != nil {
		return nil, gqlerrors.List{gqlerrors.Wrap(gqlerrors.ResolverError, err, "completing list").WithPath(path).WithNodes(group.Fields[0])}
	}
	out := make([]interface{}, len(items))
	var errs gqlerrors.List
	nonNullElem := graphql.IsNonNull(elemType)
	nulled := false
	for i, item := range items {
		itemPath := append(append([]gqlerrors.PathSegment{}, path...), gqlerrors.IntKey(i))
		v, itemErrs := completeValue(ctx, ec, elemType, group, item, itemPath)
		out[i] = v
		errs = append(errs, itemErrs...)
		if nonNullElem && v == nil {
			nulled = true
		}
	}
	if nulled {
		return nil, errs
	}
	return out, errs
}

func completeComposite(ctx context.Context, ec *execContext, objectType *graphql.Object, group fieldGroup, value interface{}, path []gqlerrors.PathSegment) (interface{}, gqlerrors.List) {
	sub := mergedSelectionSet(group.Fields)
	groups := collectFields(ec, objectType, sub, map[string]bool{})
	strategy := CooperativeExecutor{}
	data, errs := strategy.ExecuteFields(ctx, ec, objectType, value, groups, path)
	if nullBubbles(objectType, groups, data) {
		return nil, errs
	}
	return data, errs
}

// nullBubbles reports whether any of the just-assembled fields in data
// belongs to a NonNull-typed field that completed to nil. Per spec.md
// §4.J's completion rule a nil NonNull field nulls its entire containing
// composite rather than leaving the rest of that composite's fields in
// place; the error raised at the inner field is already in errs, so the
// caller (another completeValue NonNull unwrap, or ExecuteRequest at the
// root) keeps re-nulling outward until it reaches a nullable ancestor.
func nullBubbles(objectType *graphql.Object, groups []fieldGroup, data map[string]interface{}) bool {
	for _, g := range groups {
		name := g.Fields[0].Name
		if name == "__typename" {
			continue
		}
		fieldDef, ok := objectType.Fields[name]
		if !ok || !graphql.IsNonNull(fieldDef.Type) {
			continue
		}
		if data[g.Key] == nil {
			return true
		}
	}
	return false
}

// mergedSelectionSet combines every collected field sharing a response key
// into one synthetic selection set, so nested selections on each occurrence
// (legal per OverlappingFieldsCanBeMerged) are all honored.
func mergedSelectionSet(fields []*ast.Field) *ast.SelectionSet {
	if len(fields) == 1 {
		return fields[0].SelectionSet
	}
	out := &ast.SelectionSet{}
	for _, f := range fields {
		if f.SelectionSet == nil {
			continue
		}
		out.Selections = append(out.Selections, f.SelectionSet.Selections...)
	}
	return out
}

// asSlice accepts both []interface{} (the common case, and what
// CoercedValue-shaped list arguments look like) and arbitrary typed slices a
// resolver returns directly (e.g. []*User), so a resolver never has to box
// its result into []interface{} itself.
func asSlice(value interface{}) ([]interface{}, error) {
	if v, ok := value.([]interface{}); ok {
		return v, nil
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("expected a list, got %T", value)
	}
	out := make([]interface{}, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, nil
}

var _ abstractlogger.Logger // referenced only to ground the logging seam import in fields.go's error path
