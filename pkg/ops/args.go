package ops

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sv/mcp-paradex-go/pkg/models"
	"github.com/sv/mcp-paradex-go/pkg/normalize"
)

// Argument coercion over the untyped tool-call map. Every violation is a
// ValidationError naming the parameter and the constraint, raised before any
// upstream call.

func stringArg(args map[string]any, key, def string) (string, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return def, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", &models.ValidationError{Path: key, Expected: "string"}
	}
	return s, nil
}

func requireStringArg(args map[string]any, key string) (string, error) {
	s, err := stringArg(args, key, "")
	if err != nil {
		return "", err
	}
	if s == "" {
		return "", &models.ValidationError{Path: key, Expected: "non-empty string"}
	}
	return s, nil
}

func intArg(args map[string]any, key string, def int) (int, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return def, nil
	}
	switch n := v.(type) {
	case float64:
		if n != float64(int(n)) {
			return 0, &models.ValidationError{Path: key, Expected: "integer"}
		}
		return int(n), nil
	case int:
		return n, nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, &models.ValidationError{Path: key, Expected: "integer", Err: err}
		}
		return int(i), nil
	default:
		return 0, &models.ValidationError{Path: key, Expected: "integer"}
	}
}

func int64Arg(args map[string]any, key string, def int64) (int64, error) {
	n, err := intArg(args, key, int(def))
	if err != nil {
		return 0, err
	}
	return int64(n), nil
}

func boolArg(args map[string]any, key string, def bool) (bool, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return def, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, &models.ValidationError{Path: key, Expected: "boolean"}
	}
	return b, nil
}

func decimalArg(args map[string]any, key string, required bool) (decimal.Decimal, error) {
	v, ok := args[key]
	if !ok || v == nil {
		if required {
			return decimal.Zero, &models.ValidationError{Path: key, Expected: "decimal"}
		}
		return decimal.Zero, nil
	}
	switch n := v.(type) {
	case float64:
		return decimal.NewFromFloat(n), nil
	case string:
		d, err := decimal.NewFromString(n)
		if err != nil {
			return decimal.Zero, &models.ValidationError{Path: key, Expected: "decimal", Err: err}
		}
		return d, nil
	default:
		return decimal.Zero, &models.ValidationError{Path: key, Expected: "decimal"}
	}
}

// stringSliceArg accepts a JSON array of strings or a single string.
func stringSliceArg(args map[string]any, key string) ([]string, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return nil, nil
	}
	switch vv := v.(type) {
	case string:
		if vv == "" {
			return nil, nil
		}
		return []string{vv}, nil
	case []string:
		return vv, nil
	case []any:
		out := make([]string, 0, len(vv))
		for _, item := range vv {
			s, ok := item.(string)
			if !ok {
				return nil, &models.ValidationError{Path: key, Expected: "array of strings"}
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, &models.ValidationError{Path: key, Expected: "array of strings"}
	}
}

func enumArg(args map[string]any, key string, allowed []string, def string) (string, error) {
	s, err := stringArg(args, key, def)
	if err != nil {
		return "", err
	}
	if s == def && s == "" {
		return s, nil
	}
	for _, a := range allowed {
		if a == s {
			return s, nil
		}
	}
	return "", &models.ValidationError{
		Path:     key,
		Expected: "one of [" + strings.Join(allowed, " ") + "]",
		Err:      fmt.Errorf("got %q", s),
	}
}

// pageArgs validates limit and offset: limit in [1, max], offset >= 0.
func pageArgs(args map[string]any, defLimit, maxLimit int) (normalize.Query, error) {
	limit, err := intArg(args, "limit", defLimit)
	if err != nil {
		return normalize.Query{}, err
	}
	if limit < 1 || limit > maxLimit {
		return normalize.Query{}, &models.ValidationError{
			Path:     "limit",
			Expected: fmt.Sprintf("integer in [1, %d]", maxLimit),
			Err:      fmt.Errorf("got %d", limit),
		}
	}
	offset, err := intArg(args, "offset", 0)
	if err != nil {
		return normalize.Query{}, err
	}
	if offset < 0 {
		return normalize.Query{}, &models.ValidationError{
			Path:     "offset",
			Expected: "integer >= 0",
			Err:      fmt.Errorf("got %d", offset),
		}
	}
	return normalize.Query{Limit: limit, Offset: offset}, nil
}

// timeRangeArgs reads the optional start/end unix-millisecond bounds.
func timeRangeArgs(args map[string]any) (int64, int64, error) {
	start, err := int64Arg(args, "start_unix_ms", 0)
	if err != nil {
		return 0, 0, err
	}
	end, err := int64Arg(args, "end_unix_ms", 0)
	if err != nil {
		return 0, 0, err
	}
	if start < 0 || end < 0 {
		return 0, 0, &models.ValidationError{Path: "start_unix_ms", Expected: "unix milliseconds >= 0"}
	}
	if start > 0 && end > 0 && end < start {
		return 0, 0, &models.ValidationError{Path: "end_unix_ms", Expected: "end_unix_ms >= start_unix_ms"}
	}
	return start, end, nil
}
