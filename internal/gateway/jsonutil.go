package gateway

import (
	"encoding/json"
	"errors"
	"strings"
)

var errNotArray = errors.New("response is not a JSON array")

// cleanJSON strips code-fence markers from a model reply and trims it.
func cleanJSON(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```JSON", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// decodeArray decodes a model reply into dst, which must point to a slice.
// The fence-stripped reply is decoded as is first. Only when that fails
// are trailing commas dropped and, for replies wrapped in prose, the array
// searched for.
func decodeArray(reply string, dst any) error {
	cleaned := cleanJSON(reply)
	err := decodeValue(cleaned, dst)
	if err == nil {
		return nil
	}

	repaired := stripTrailingCommas(cleaned)
	if decodeValue(repaired, dst) == nil {
		return nil
	}
	if strings.HasPrefix(repaired, "[") || strings.HasPrefix(repaired, "{") {
		return err
	}
	if decodeEmbedded(repaired, dst) == nil {
		return nil
	}
	return err
}

// decodeValue decodes raw into dst. A top-level object holding exactly one
// array field is unwrapped, which is what JSON-mode providers that refuse
// bare arrays tend to return.
func decodeValue(raw string, dst any) error {
	err := json.Unmarshal([]byte(raw), dst)
	if err == nil || !strings.HasPrefix(raw, "{") {
		return err
	}

	var wrapper map[string]json.RawMessage
	if json.Unmarshal([]byte(raw), &wrapper) != nil {
		return err
	}
	var inner json.RawMessage
	for _, v := range wrapper {
		if t := strings.TrimSpace(string(v)); strings.HasPrefix(t, "[") {
			if inner != nil {
				return errNotArray
			}
			inner = v
		}
	}
	if inner == nil {
		return errNotArray
	}
	return json.Unmarshal(inner, dst)
}

// decodeEmbedded tries every '[' in s as the start of the payload and
// keeps the first one that decodes into dst. Bracketed prose before the
// array is skipped this way.
func decodeEmbedded(s string, dst any) error {
	for i := 0; i < len(s); i++ {
		if s[i] != '[' {
			continue
		}
		var raw json.RawMessage
		if json.NewDecoder(strings.NewReader(s[i:])).Decode(&raw) != nil {
			continue
		}
		if json.Unmarshal(raw, dst) == nil {
			return nil
		}
	}
	return errNotArray
}

// stripTrailingCommas removes commas that directly precede a closing ] or },
// leaving string literals untouched.
func stripTrailingCommas(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inString, escaped := false, false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case inString:
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
		case c == '"':
			inString = true
		case c == ',':
			j := i + 1
			for j < len(s) && strings.IndexByte(" \t\r\n", s[j]) >= 0 {
				j++
			}
			if j < len(s) && (s[j] == ']' || s[j] == '}') {
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}

// flexString accepts a JSON string or number. Models sometimes answer
// "quantity": 2 despite the declared string type.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}
