package runtime

import (
	"encoding/json"

	"github.com/jd-lang/jd/internal/jderr"
)

// ParseLiteral parses text as a literal value per spec §4.F:
// "integer, float, string, tuple/list/dict of literals". JSON's scalar,
// array, and object grammar is used as the concrete syntax — spec §4.B
// already commits the DSL's own string literals to JSON-quoting, so a
// tuple is read as a JSON array and a dict as a JSON object. Non-literal
// input fails with RUNTIME.
func ParseLiteral(text string) (any, error) {
	var v any
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return nil, jderr.Wrap(jderr.Runtime, err, "not a valid literal: "+text)
	}
	return normalizeNumbers(v), nil
}

// normalizeNumbers converts json.Unmarshal's float64 numbers back to
// int64 when they carry no fractional part, so "3" binds as an int the
// way the spec's "integer, float" distinction expects, rather than
// always landing on float64.
func normalizeNumbers(v any) any {
	switch x := v.(type) {
	case float64:
		if x == float64(int64(x)) {
			return int64(x)
		}
		return x
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = normalizeNumbers(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = normalizeNumbers(e)
		}
		return out
	default:
		return v
	}
}
