// Package schemabuilder provides two ways of building a *graphql.Schema:
// a reflection-based code-first builder (this file plus argparser.go,
// schema.go, build.go — adapted in place from teacher's
// schemabuilder package) and an SDL-first builder (sdl.go, new) that
// consumes a parsed ast.SchemaDocument. Both funnel into one
// graphql.Schema.Validate() call.
package schemabuilder

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"reflect"
	"strconv"
	"time"

	"github.com/golang/protobuf/ptypes/duration"
	"github.com/golang/protobuf/ptypes/timestamp"
)

// Object represents a Go type and the set of GraphQL fields exposed on it.
// The same type also doubles as the registration for a Union- or
// Interface-marked struct (Type embeds schemabuilder.Union / .Interface):
// Methods becomes the interface's field set, and Interfaces is unused.
type Object struct {
	Name        string // Optional, defaults to the Go type's name.
	Description string
	Type        interface{}
	Methods     Methods

	// Interfaces lists the marker structs (each embedding
	// schemabuilder.Interface) that this object type implements.
	Interfaces []interface{}

	key string
}

// Key registers the key field on an object by the GraphQL field name.
func (o *Object) Key(f string) { o.key = f }

// InterfaceList declares the interfaces o implements, each named by a
// pointer to, or value of, the interface's marker struct.
func (o *Object) InterfaceList(ifaces ...interface{}) {
	o.Interfaces = append(o.Interfaces, ifaces...)
}

// InputObject represents an input object passed in queries/mutations.
type InputObject struct {
	Name        string
	Description string
	Type        interface{}
	Fields      map[string]interface{}
}

// Methods is the set of resolver functions exposed on an Object.
type Methods map[string]*method

type method struct {
	Fn                interface{}
	Description       string
	DeprecationReason string
}

// EnumMapping maps GraphQL enum value names to Go values and back.
type EnumMapping struct {
	Map         map[string]interface{}
	ReverseMap  map[interface{}]string
	Description string
	ValueDescriptions map[string]string
	DeprecatedValues  map[string]string
}

// Interface marks an embedding struct as a GraphQL interface type.
type Interface struct{}

// Union marks an embedding struct as a GraphQL union type: exactly one of
// its other (pointer) fields should be set per resolved value.
type Union struct{}

// OneOfInput marks an embedding input struct as an @oneOf input object:
// exactly one field must be set in any value of this type.
type OneOfInput struct{}

var (
	unionType      = reflect.TypeOf(Union{})
	interfaceType  = reflect.TypeOf(Interface{})
	oneOfInputType = reflect.TypeOf(OneOfInput{})
)

func hasEmbeddedMarker(typ reflect.Type, marker reflect.Type) bool {
	if typ.Kind() != reflect.Struct {
		return false
	}
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		if f.Anonymous && f.Type == marker {
			return true
		}
	}
	return false
}

func isUnionType(typ reflect.Type) bool     { return hasEmbeddedMarker(typ, unionType) }
func isInterfaceType(typ reflect.Type) bool { return hasEmbeddedMarker(typ, interfaceType) }
func hasOneOfMarker(typ reflect.Type) bool  { return hasEmbeddedMarker(typ, oneOfInputType) }

// FieldFunc exposes a field computed by f, which may take any of
// (ctx context.Context), (o *Type) and (args struct{...}) as leading
// parameters and returns (Result) or (Result, error).
func (o *Object) FieldFunc(name string, f interface{}, description ...string) {
	if o.Methods == nil {
		o.Methods = make(Methods)
	}
	if _, ok := o.Methods[name]; ok {
		panic("schemabuilder: duplicate method " + name)
	}
	desc := ""
	if len(description) > 0 {
		desc = description[0]
	}
	if len(description) > 1 {
		panic("schemabuilder: at most one description allowed for FieldFunc")
	}
	o.Methods[name] = &method{Fn: f, Description: desc}
}

// Deprecated marks a previously registered field as deprecated.
func (o *Object) Deprecated(name, reason string) {
	m, ok := o.Methods[name]
	if !ok {
		panic("schemabuilder: cannot deprecate unregistered field " + name)
	}
	m.DeprecationReason = reason
}

// FieldFunc registers the function used to fill field name on the input
// object from its JSON value; function must be func(target *Type, source
// *SourceType) [error].
func (io *InputObject) FieldFunc(name string, function interface{}) {
	if io.Fields == nil {
		io.Fields = make(map[string]interface{})
	}
	funcTyp := reflect.TypeOf(function)
	if funcTyp.Kind() != reflect.Func || funcTyp.NumIn() != 2 {
		panic("schemabuilder: input object field func " + name + " must take exactly 2 arguments")
	}
	if funcTyp.In(0).Kind() != reflect.Ptr {
		panic("schemabuilder: input object field func " + name + " first argument must be a pointer")
	}
	io.Fields[name] = function
}

// UnmarshalFunc unmarshals a scalar's JSON representation into dest.
type UnmarshalFunc func(value interface{}, dest reflect.Value) error

// MarshalFunc serializes a resolved scalar Go value for the response.
type MarshalFunc func(value interface{}) (interface{}, error)

type registeredScalar struct {
	name           string
	unmarshal      UnmarshalFunc
	marshal        MarshalFunc
	specifiedByURL string
}

var scalarRegistry = map[reflect.Type]*registeredScalar{}

// RegisterScalar registers typ as a custom GraphQL scalar. uf may be nil if
// typ implements json.Unmarshaler/json.Marshaler.
func RegisterScalar(typ reflect.Type, name string, uf UnmarshalFunc, specifiedByURL ...string) error {
	if typ.Kind() == reflect.Ptr {
		return errors.New("schemabuilder: scalar type must not be a pointer type")
	}
	if len(specifiedByURL) > 1 {
		return errors.New("schemabuilder: at most one specifiedByURL allowed")
	}
	url := ""
	if len(specifiedByURL) == 1 {
		url = specifiedByURL[0]
	}
	if uf == nil {
		if !reflect.PtrTo(typ).Implements(reflect.TypeOf((*json.Unmarshaler)(nil)).Elem()) {
			return errors.New("schemabuilder: either an UnmarshalFunc must be provided or the type must implement json.Unmarshaler")
		}
		uf = func(value interface{}, dest reflect.Value) error {
			b, err := scalarJSONBytes(value)
			if err != nil {
				return err
			}
			return dest.Addr().Interface().(json.Unmarshaler).UnmarshalJSON(b)
		}
	}
	scalarRegistry[typ] = &registeredScalar{name: name, unmarshal: uf, specifiedByURL: url}
	return nil
}

func scalarJSONBytes(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(strconv.Quote(v)), nil
	default:
		return json.Marshal(v)
	}
}

func isScalarType(t reflect.Type) bool {
	_, ok := scalarRegistry[t]
	return ok
}

// ID is the GraphQL ID scalar.
type ID struct {
	Value string
}

func (id ID) MarshalJSON() ([]byte, error) { return strconv.AppendQuote(nil, id.Value), nil }

// Timestamp is a protobuf Timestamp exposed as a GraphQL DateTime-ish scalar.
type Timestamp timestamp.Timestamp

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return strconv.AppendQuote(nil, time.Unix(t.Seconds, int64(t.Nanos)).Format(time.RFC3339)), nil
}

// Duration is a protobuf Duration exposed as an Int (seconds) scalar.
type Duration duration.Duration

func (d Duration) MarshalJSON() ([]byte, error) { return []byte(strconv.Itoa(int(d.Seconds))), nil }

// Bytes is a base64-encoded byte slice scalar.
type Bytes struct{ Value []byte }

func (b Bytes) MarshalJSON() ([]byte, error) {
	return json.Marshal(base64.StdEncoding.EncodeToString(b.Value))
}

var (
	errType     = reflect.TypeOf((*error)(nil)).Elem()
	contextType = reflect.TypeOf((*context.Context)(nil)).Elem()
)
