package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Kind names the coercion rule applied to a field.
type Kind string

const (
	KindString    Kind = "string"
	KindDecimal   Kind = "decimal"
	KindInt       Kind = "integer"
	KindBool      Kind = "boolean"
	KindTimestamp Kind = "timestamp_ms"
	KindEnum      Kind = "enum"
	KindArray     Kind = "array"
	KindObject    Kind = "object"
)

// Field declares the shape of one entity field.
type Field struct {
	Name        string
	Kind        Kind
	Required    bool
	Enum        []string
	Description string
}

// Schema is the declarative shape of one upstream entity: which fields are
// required, how each is coerced, and what it means. Pure data; parsing is
// driven by it but lives on the methods below.
type Schema struct {
	Name        string
	Description string
	Fields      []Field

	// ArrayRecord marks entities whose upstream records are positional
	// arrays rather than JSON objects (klines).
	ArrayRecord bool
}

// Field returns the declared field with the given name.
func (s Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// FieldDescriptions maps field names to human-readable descriptions, as
// surfaced in list envelopes and the filters_model operation.
func (s Schema) FieldDescriptions() map[string]string {
	out := make(map[string]string, len(s.Fields))
	for _, f := range s.Fields {
		out[f.Name] = f.Description
	}
	return out
}

// Validator is implemented by entities with cross-field invariants.
type Validator interface {
	Validate() error
}

// Parse decodes one raw upstream record into dst under this schema.
// It fails closed: a missing required field, an enum value outside the
// allowed set, or a non-coercible value aborts with a ValidationError.
// A partial object is never produced.
func (s Schema) Parse(raw json.RawMessage, dst any) error {
	if !s.ArrayRecord {
		if err := s.checkFields(raw); err != nil {
			return err
		}
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return &ValidationError{
				Path:     s.Name + "." + typeErr.Field,
				Expected: typeErr.Type.String(),
				Err:      err,
			}
		}
		return &ValidationError{Path: s.Name, Expected: s.Name + " record", Err: err}
	}
	if v, ok := dst.(Validator); ok {
		if err := v.Validate(); err != nil {
			var ve *ValidationError
			if errors.As(err, &ve) {
				return err
			}
			return &ValidationError{Path: s.Name, Expected: "consistent " + s.Name, Err: err}
		}
	}
	return nil
}

func (s Schema) checkFields(raw json.RawMessage) error {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil {
		return &ValidationError{Path: s.Name, Expected: "JSON object", Err: err}
	}
	for _, f := range s.Fields {
		v, present := keys[f.Name]
		if !present || string(v) == "null" {
			if f.Required {
				return &ValidationError{Path: s.Name + "." + f.Name, Expected: string(f.Kind)}
			}
			continue
		}
		if f.Kind == KindDecimal {
			if err := checkDecimal(v); err != nil {
				return &ValidationError{Path: s.Name + "." + f.Name, Expected: "decimal", Err: err}
			}
		}
		if f.Kind == KindEnum && len(f.Enum) > 0 {
			var sv string
			if err := json.Unmarshal(v, &sv); err != nil {
				return &ValidationError{Path: s.Name + "." + f.Name, Expected: "enum string", Err: err}
			}
			if !enumContains(f.Enum, sv) {
				return &ValidationError{
					Path:     s.Name + "." + f.Name,
					Expected: "one of [" + strings.Join(f.Enum, " ") + "]",
					Err:      fmt.Errorf("got %q", sv),
				}
			}
		}
	}
	return nil
}

// checkDecimal probes a decimal field value up front, so a non-coercible
// one fails with the field path rather than a record-level error: the
// decimal unmarshaler's own error carries no field position.
func checkDecimal(v json.RawMessage) error {
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		var n json.Number
		if err := json.Unmarshal(v, &n); err != nil {
			return fmt.Errorf("got %s", v)
		}
		s = n.String()
	}
	if _, err := decimal.NewFromString(s); err != nil {
		return err
	}
	return nil
}

func enumContains(allowed []string, v string) bool {
	for _, a := range allowed {
		if a == v {
			return true
		}
	}
	return false
}
