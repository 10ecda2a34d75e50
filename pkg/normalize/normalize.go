// Package normalize turns heterogeneous upstream JSON into the uniform,
// validated, paginated contract every operation returns. The pipeline is
// fixed: shape resolution, schema validation, key filtering, stable default
// sort, offset/limit pagination, envelope.
package normalize

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"

	"github.com/sv/mcp-paradex-go/pkg/models"
)

// FilterAll is the sentinel key that disables explicit-list filtering.
const FilterAll = "ALL"

// Envelope is the uniform wrapper returned by list operations. Total is the
// pre-pagination count.
type Envelope[T any] struct {
	Description string            `json:"description"`
	Fields      map[string]string `json:"fields"`
	Results     []T               `json:"results"`
	Total       int               `json:"total"`
	Limit       int               `json:"limit"`
	Offset      int               `json:"offset"`
}

// ListConfig is the per-operation normalization configuration.
type ListConfig[T any] struct {
	Description string
	Schema      models.Schema

	// Key extracts the filterable key of a record; nil disables filtering.
	Key func(T) string

	// Compare is the operation's default total order; ties keep upstream
	// order (stable sort). Nil preserves upstream order entirely.
	Compare func(a, b T) int

	DefaultLimit int
	MaxLimit     int
}

// Query carries the caller's filter and pagination parameters.
type Query struct {
	Keys   []string
	Limit  int // 0 selects the operation default
	Offset int
}

// List runs the full normalization pipeline over a raw upstream response.
// The first record failing schema validation aborts the whole operation;
// partial results are never returned.
func List[T any](raw json.RawMessage, cfg ListConfig[T], q Query) (*Envelope[T], error) {
	records, err := Records(raw)
	if err != nil {
		return nil, err
	}
	parsed := make([]T, 0, len(records))
	for _, rec := range records {
		var v T
		if err := cfg.Schema.Parse(rec, &v); err != nil {
			return nil, err
		}
		parsed = append(parsed, v)
	}

	if cfg.Key != nil && filterRequested(q.Keys) {
		wanted := make(map[string]struct{}, len(q.Keys))
		for _, k := range q.Keys {
			wanted[k] = struct{}{}
		}
		kept := make([]T, 0, len(parsed))
		for _, v := range parsed {
			if _, ok := wanted[cfg.Key(v)]; ok {
				kept = append(kept, v)
			}
		}
		parsed = kept
	}

	if cfg.Compare != nil {
		sort.SliceStable(parsed, func(i, j int) bool {
			return cfg.Compare(parsed[i], parsed[j]) < 0
		})
	}

	total := len(parsed)
	limit := q.Limit
	if limit <= 0 {
		limit = cfg.DefaultLimit
	}
	if cfg.MaxLimit > 0 && limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}

	page := parsed[min(offset, total):min(offset+limit, total)]
	return &Envelope[T]{
		Description: cfg.Description,
		Fields:      cfg.Schema.FieldDescriptions(),
		Results:     page,
		Total:       total,
		Limit:       limit,
		Offset:      offset,
	}, nil
}

// Sequence validates and sorts every record without pagination. Used for
// operations returning a bounded natural sequence, such as klines over a
// time range.
func Sequence[T any](raw json.RawMessage, schema models.Schema, compare func(a, b T) int) ([]T, error) {
	records, err := Records(raw)
	if err != nil {
		return nil, err
	}
	parsed := make([]T, 0, len(records))
	for _, rec := range records {
		var v T
		if err := schema.Parse(rec, &v); err != nil {
			return nil, err
		}
		parsed = append(parsed, v)
	}
	if compare != nil {
		sort.SliceStable(parsed, func(i, j int) bool {
			return compare(parsed[i], parsed[j]) < 0
		})
	}
	return parsed, nil
}

// Single validates exactly one entity. It accepts a bare entity object, a
// one-element array, or a one-element results envelope; any other
// cardinality is a protocol defect.
func Single[T any](raw json.RawMessage, schema models.Schema) (T, error) {
	var v T
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var probe map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &probe); err != nil {
			return v, &ProtocolError{Shape: "malformed JSON object"}
		}
		if _, ok := probe["results"]; !ok {
			if err := schema.Parse(trimmed, &v); err != nil {
				return v, err
			}
			return v, nil
		}
	}
	records, err := Records(trimmed)
	if err != nil {
		return v, err
	}
	if len(records) != 1 {
		return v, &ProtocolError{Shape: "expected exactly one record"}
	}
	if err := schema.Parse(records[0], &v); err != nil {
		return v, err
	}
	return v, nil
}

// filterRequested reports whether the key list actually restricts anything:
// an empty list or one containing the ALL sentinel keeps every record.
func filterRequested(keys []string) bool {
	if len(keys) == 0 {
		return false
	}
	for _, k := range keys {
		if strings.EqualFold(k, FilterAll) {
			return false
		}
	}
	return true
}

// ByStringDesc orders records descending by a string key.
func ByStringDesc[T any](key func(T) string) func(a, b T) int {
	return func(a, b T) int { return strings.Compare(key(b), key(a)) }
}

// ByStringAsc orders records ascending by a string key.
func ByStringAsc[T any](key func(T) string) func(a, b T) int {
	return func(a, b T) int { return strings.Compare(key(a), key(b)) }
}

// ByInt64Desc orders records descending by an integer key, newest first for
// timestamp keys.
func ByInt64Desc[T any](key func(T) int64) func(a, b T) int {
	return func(a, b T) int { return compareInt64(key(b), key(a)) }
}

// ByInt64Asc orders records ascending by an integer key.
func ByInt64Asc[T any](key func(T) int64) func(a, b T) int {
	return func(a, b T) int { return compareInt64(key(a), key(b)) }
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
