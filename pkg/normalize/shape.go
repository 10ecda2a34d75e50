package normalize

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// ProtocolError reports an upstream response whose shape matches none of the
// known envelope forms. It carries a description of the shape, never the raw
// payload.
type ProtocolError struct {
	Shape string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("unexpected upstream response shape: %s", e.Shape)
}

// Records reduces a raw upstream response to one ordered sequence of raw
// records. Three shapes are recognized:
//
//   - a bare array of records
//   - a {"results": [...]} envelope
//   - a keyed object of entity objects, flattened in sorted key order so
//     repeated invocations are deterministic
//
// Anything else is a ProtocolError.
func Records(raw json.RawMessage) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, &ProtocolError{Shape: "empty response"}
	}
	switch trimmed[0] {
	case '[':
		var records []json.RawMessage
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, &ProtocolError{Shape: "malformed JSON array"}
		}
		return records, nil
	case '{':
		var keyed map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &keyed); err != nil {
			return nil, &ProtocolError{Shape: "malformed JSON object"}
		}
		if results, ok := keyed["results"]; ok {
			inner := bytes.TrimSpace(results)
			if string(inner) == "null" {
				return nil, nil
			}
			var records []json.RawMessage
			if err := json.Unmarshal(inner, &records); err != nil {
				return nil, &ProtocolError{Shape: "results envelope without an array"}
			}
			return records, nil
		}
		return keyedRecords(keyed)
	default:
		return nil, &ProtocolError{Shape: shapeName(trimmed)}
	}
}

// keyedRecords flattens an object-of-entities. Every value must itself be an
// object; a scalar value means this is not an entity map at all.
func keyedRecords(keyed map[string]json.RawMessage) ([]json.RawMessage, error) {
	keys := make([]string, 0, len(keyed))
	for k, v := range keyed {
		inner := bytes.TrimSpace(v)
		if len(inner) == 0 || inner[0] != '{' {
			return nil, &ProtocolError{Shape: fmt.Sprintf("object with non-record value at key %q", k)}
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	records := make([]json.RawMessage, 0, len(keys))
	for _, k := range keys {
		records = append(records, keyed[k])
	}
	return records, nil
}

func shapeName(trimmed []byte) string {
	switch trimmed[0] {
	case '"':
		return "JSON string"
	case 't', 'f':
		return "JSON boolean"
	case 'n':
		return "JSON null"
	default:
		return "JSON number"
	}
}
