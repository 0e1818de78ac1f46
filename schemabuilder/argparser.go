package schemabuilder

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/appointy/gqlcore/graphql"
	"github.com/iancoleman/strcase"
)

// argParser fills a reflect.Value of a known Go type from a coerced JSON-ish
// value (the same shape graphql/coerce produces) and reports the
// graphql.Type the filled value corresponds to. Grounded on teacher's
// schemabuilder/input_object.go argParser idiom, generalized to build
// graphql.Type values from the richer type package instead of the
// teacher's single-pass graphql.InputObject map.
type argParser struct {
	FromJSON func(value interface{}, dest reflect.Value) error
	Type     graphql.Type
}

type graphQLFieldInfo struct {
	Skipped           bool
	Name              string
	DeprecationReason string
	Description       string
}

// parseGraphQLFieldInfo reads a struct field's graphql/json tag, falling
// back to strcase.ToLowerCamel(field.Name) — the in-pack equivalent of
// teacher's hand-rolled makeGraphql lower-caser.
func parseGraphQLFieldInfo(field reflect.StructField) *graphQLFieldInfo {
	if field.PkgPath != "" {
		return &graphQLFieldInfo{Skipped: true}
	}
	tag := field.Tag.Get("graphql")
	if tag == "" {
		tag = field.Tag.Get("json")
	}
	parts := strings.Split(tag, ",")
	name := strings.TrimSpace(parts[0])
	if name == "-" {
		return &graphQLFieldInfo{Skipped: true}
	}
	if name == "" {
		name = strcase.ToLowerCamel(field.Name)
	}

	info := &graphQLFieldInfo{Name: name}
	for _, opt := range parts[1:] {
		opt = strings.TrimSpace(opt)
		switch {
		case strings.HasPrefix(opt, "deprecated="):
			info.DeprecationReason = strings.TrimPrefix(opt, "deprecated=")
		case strings.HasPrefix(opt, "description="):
			info.Description = strings.TrimPrefix(opt, "description=")
		}
	}
	return info
}

func wrapPtrParser(inner *argParser) *argParser {
	return &argParser{
		Type: inner.Type,
		FromJSON: func(value interface{}, dest reflect.Value) error {
			if value == nil {
				return nil
			}
			ptr := reflect.New(dest.Type().Elem())
			if err := inner.FromJSON(value, ptr.Elem()); err != nil {
				return err
			}
			dest.Set(ptr)
			return nil
		},
	}
}

func builtinScalarParser(typ reflect.Type) (*argParser, graphql.Type, bool) {
	switch typ.Kind() {
	case reflect.String:
		return &argParser{Type: graphql.String, FromJSON: func(value interface{}, dest reflect.Value) error {
			s, ok := value.(string)
			if !ok {
				return fmt.Errorf("not a string: %v", value)
			}
			dest.SetString(s)
			return nil
		}}, graphql.String, true
	case reflect.Bool:
		return &argParser{Type: graphql.Boolean, FromJSON: func(value interface{}, dest reflect.Value) error {
			b, ok := value.(bool)
			if !ok {
				return fmt.Errorf("not a bool: %v", value)
			}
			dest.SetBool(b)
			return nil
		}}, graphql.Boolean, true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return &argParser{Type: graphql.Int, FromJSON: func(value interface{}, dest reflect.Value) error {
			i, err := toInt64(value)
			if err != nil {
				return err
			}
			dest.SetInt(i)
			return nil
		}}, graphql.Int, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &argParser{Type: graphql.Int, FromJSON: func(value interface{}, dest reflect.Value) error {
			i, err := toInt64(value)
			if err != nil {
				return err
			}
			dest.SetUint(uint64(i))
			return nil
		}}, graphql.Int, true
	case reflect.Float32, reflect.Float64:
		return &argParser{Type: graphql.Float, FromJSON: func(value interface{}, dest reflect.Value) error {
			f, err := toFloat64(value)
			if err != nil {
				return err
			}
			dest.SetFloat(f)
			return nil
		}}, graphql.Float, true
	default:
		return nil, nil, false
	}
}

func toInt64(value interface{}) (int64, error) {
	switch v := value.(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case float64:
		return int64(v), nil
	default:
		return 0, fmt.Errorf("not a number: %v", value)
	}
}

func toFloat64(value interface{}) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case int64:
		return float64(v), nil
	case int:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("not a number: %v", value)
	}
}
