package graphql

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/google/uuid"
)

// Built-in scalars per the GraphQL spec: Int, Float, String, Boolean, ID.
// Grounded on teacher's graphql.Scalar{Type: "..."} literals scattered
// through schemabuilder/reflect.go's `scalars` map, consolidated here as
// shared values every schema (code-first or SDL-first) registers.
var (
	Int = &Scalar{
		Name: "Int",
		Serialize: func(v interface{}) (interface{}, error) { return toInt64(v) },
		Coerce:    func(v interface{}) (interface{}, error) { return toInt64(v) },
	}
	Float = &Scalar{
		Name: "Float",
		Serialize: func(v interface{}) (interface{}, error) { return toFloat64(v) },
		Coerce:    func(v interface{}) (interface{}, error) { return toFloat64(v) },
	}
	String = &Scalar{
		Name: "String",
		Serialize: func(v interface{}) (interface{}, error) { return toString(v) },
		Coerce:    func(v interface{}) (interface{}, error) { return toString(v) },
	}
	Boolean = &Scalar{
		Name: "Boolean",
		Serialize: func(v interface{}) (interface{}, error) { return toBool(v) },
		Coerce:    func(v interface{}) (interface{}, error) { return toBool(v) },
	}
	ID = &Scalar{
		Name: "ID",
		Serialize: func(v interface{}) (interface{}, error) { return toString(v) },
		Coerce:    func(v interface{}) (interface{}, error) { return toString(v) },
	}
)

// NewUUIDScalar builds a custom ID-shaped scalar backed by google/uuid,
// validating/serializing through uuid.Parse/String. Never auto-registered —
// a schema opts in explicitly by adding it to Schema.Types, since not every
// deployment wants its identifiers to be UUIDs.
func NewUUIDScalar(name string) *Scalar {
	return &Scalar{
		Name: name,
		Serialize: func(v interface{}) (interface{}, error) {
			switch x := v.(type) {
			case uuid.UUID:
				return x.String(), nil
			case string:
				if _, err := uuid.Parse(x); err != nil {
					return nil, err
				}
				return x, nil
			default:
				return nil, fmt.Errorf("graphql: %s: cannot serialize %T as UUID", name, v)
			}
		},
		Coerce: func(v interface{}) (interface{}, error) {
			s, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("graphql: %s: expected string, got %T", name, v)
			}
			id, err := uuid.Parse(s)
			if err != nil {
				return nil, err
			}
			return id.String(), nil
		},
	}
}

// NewRegexScalar builds a String-shaped scalar that rejects any value not
// matching pattern on both serialization and coercion. Like NewUUIDScalar,
// never auto-registered: consumers opt in per-field for the identifiers or
// codes their own domain needs to constrain.
func NewRegexScalar(name, pattern string) *Scalar {
	re := regexp.MustCompile(pattern)
	check := func(v interface{}) (interface{}, error) {
		s, err := toString(v)
		if err != nil {
			return nil, err
		}
		if !re.MatchString(s) {
			return nil, fmt.Errorf("graphql: %s: %q does not match %s", name, s, pattern)
		}
		return s, nil
	}
	return &Scalar{Name: name, Serialize: check, Coerce: check}
}

func toInt64(v interface{}) (int64, error) {
	switch x := v.(type) {
	case int64:
		return x, nil
	case int:
		return int64(x), nil
	case float64:
		if x != float64(int64(x)) {
			return 0, fmt.Errorf("graphql: %v is not a valid Int", v)
		}
		return int64(x), nil
	case string:
		return strconv.ParseInt(x, 10, 64)
	default:
		return 0, fmt.Errorf("graphql: cannot coerce %T to Int", v)
	}
}

func toFloat64(v interface{}) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case int64:
		return float64(x), nil
	case int:
		return float64(x), nil
	case string:
		return strconv.ParseFloat(x, 64)
	default:
		return 0, fmt.Errorf("graphql: cannot coerce %T to Float", v)
	}
}

func toString(v interface{}) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case fmt.Stringer:
		return x.String(), nil
	default:
		return "", fmt.Errorf("graphql: cannot coerce %T to String", v)
	}
}

func toBool(v interface{}) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("graphql: cannot coerce %T to Boolean", v)
	}
	return b, nil
}
