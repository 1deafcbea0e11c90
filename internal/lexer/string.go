package lexer

import "encoding/json"

// unquote decodes a JSON-quoted STRING token's raw text (quotes included)
// into its literal value, per spec §4.B/§4.C: "standard escapes apply".
func unquote(raw string) (string, error) {
	var s string
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return "", err
	}
	return s, nil
}
