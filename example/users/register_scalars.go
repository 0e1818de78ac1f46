package users

import (
	"encoding/base64"
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/appointy/gqlcore/schemabuilder"
	"github.com/google/uuid"
)

// RegisterScalars wires every non-builtin scalar the schema exposes. ID,
// Timestamp, Duration and Bytes only implement MarshalJSON, so each needs
// an explicit UnmarshalFunc here before RegisterScalar will accept it.
func RegisterScalars(sb *schemabuilder.Schema) error {
	if err := schemabuilder.RegisterScalar(reflect.TypeOf(time.Time{}), "DateTime", func(value interface{}, dest reflect.Value) error {
		v, ok := value.(string)
		if !ok {
			return fmt.Errorf("DateTime: expected string, got %T", value)
		}
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return err
		}
		dest.Set(reflect.ValueOf(t))
		return nil
	}, "https://tools.ietf.org/html/rfc3339"); err != nil {
		return err
	}

	if err := schemabuilder.RegisterScalar(reflect.TypeOf(uuid.UUID{}), "SessionID", func(value interface{}, dest reflect.Value) error {
		v, ok := value.(string)
		if !ok {
			return fmt.Errorf("SessionID: expected string, got %T", value)
		}
		id, err := uuid.Parse(v)
		if err != nil {
			return err
		}
		dest.Set(reflect.ValueOf(id))
		return nil
	}); err != nil {
		return err
	}

	if err := schemabuilder.RegisterScalar(reflect.TypeOf(schemabuilder.ID{}), "ID", func(value interface{}, dest reflect.Value) error {
		dest.Set(reflect.ValueOf(schemabuilder.ID{Value: fmt.Sprint(value)}))
		return nil
	}); err != nil {
		return err
	}

	if err := schemabuilder.RegisterScalar(reflect.TypeOf(schemabuilder.Timestamp{}), "Timestamp", func(value interface{}, dest reflect.Value) error {
		v, ok := value.(string)
		if !ok {
			return fmt.Errorf("Timestamp: expected string, got %T", value)
		}
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return err
		}
		dest.Set(reflect.ValueOf(schemabuilder.Timestamp{Seconds: t.Unix(), Nanos: int32(t.Nanosecond())}))
		return nil
	}); err != nil {
		return err
	}

	if err := schemabuilder.RegisterScalar(reflect.TypeOf(schemabuilder.Duration{}), "Duration", func(value interface{}, dest reflect.Value) error {
		secs, err := secondsOf(value)
		if err != nil {
			return err
		}
		dest.Set(reflect.ValueOf(schemabuilder.Duration{Seconds: secs}))
		return nil
	}); err != nil {
		return err
	}

	if err := schemabuilder.RegisterScalar(reflect.TypeOf(schemabuilder.Bytes{}), "Bytes", func(value interface{}, dest reflect.Value) error {
		v, ok := value.(string)
		if !ok {
			return fmt.Errorf("Bytes: expected base64 string, got %T", value)
		}
		raw, err := base64.StdEncoding.DecodeString(v)
		if err != nil {
			return err
		}
		dest.Set(reflect.ValueOf(schemabuilder.Bytes{Value: raw}))
		return nil
	}); err != nil {
		return err
	}

	return nil
}

func secondsOf(value interface{}) (int64, error) {
	switch v := value.(type) {
	case string:
		return strconv.ParseInt(v, 10, 64)
	case int64:
		return v, nil
	case float64:
		return int64(v), nil
	default:
		return 0, fmt.Errorf("Duration: expected numeric seconds, got %T", value)
	}
}
