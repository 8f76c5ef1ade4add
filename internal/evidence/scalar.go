package evidence

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Bool is a tri-state boolean decoded from the shapes PowerShell emits for
// boolean-ish values: native true/false, enum integers (0 disabled, anything
// else enabled), and quoted strings such as "True" or "0". Absent and null
// values stay unset, which downstream scoring treats as "assume enabled".
type Bool struct {
	set bool
	val bool
}

// True reports whether the value is present and true.
func (b Bool) True() bool { return b.set && b.val }

// False reports whether the value is present and explicitly false.
func (b Bool) False() bool { return b.set && !b.val }

// Known reports whether the value was present at all.
func (b Bool) Known() bool { return b.set }

// IsZero reports whether the value is unset, so struct fields tagged with
// omitzero drop fields the query never reported.
func (b Bool) IsZero() bool { return !b.set }

// TrueBool and FalseBool construct explicit values, mainly for tests and
// fixtures.
func TrueBool() Bool  { return Bool{set: true, val: true} }
func FalseBool() Bool { return Bool{set: true, val: false} }

// UnmarshalJSON accepts booleans, numbers, and strings. Strings "false" and
// "0" (any case) decode as false; an empty string stays unset; any other
// string decodes as true, mirroring how the evidence scoring treats
// unrecognized truthy values.
func (b *Bool) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		*b = Bool{}
		return nil
	}

	switch trimmed[0] {
	case 't', 'f':
		var v bool
		if err := json.Unmarshal(trimmed, &v); err != nil {
			return err
		}
		*b = Bool{set: true, val: v}
		return nil
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*b = Bool{}
			return nil
		}
		lower := strings.ToLower(s)
		*b = Bool{set: true, val: lower != "false" && lower != "0"}
		return nil
	default:
		var n float64
		if err := json.Unmarshal(trimmed, &n); err != nil {
			return fmt.Errorf("decode bool: unsupported value %s", trimmed)
		}
		*b = Bool{set: true, val: n != 0}
		return nil
	}
}

// MarshalJSON emits a native JSON boolean, or null when unset.
func (b Bool) MarshalJSON() ([]byte, error) {
	if !b.set {
		return []byte("null"), nil
	}
	return json.Marshal(b.val)
}

// Text is a display string decoded from whatever scalar shape the adapter
// returned. PowerShell serializes DateTime values either as plain strings or
// as wrapper objects; both flatten to a string here. Absent and null values
// decode to the empty string.
type Text string

// UnmarshalJSON flattens strings, numbers, booleans, and DateTime wrapper
// objects to a string. Anything else keeps its compact JSON form.
func (t *Text) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		*t = ""
		return nil
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return err
		}
		for _, key := range []string{"DateTime", "value"} {
			if raw, ok := obj[key]; ok {
				var s string
				if json.Unmarshal(raw, &s) == nil && s != "" {
					*t = Text(s)
					return nil
				}
			}
		}
		*t = Text(compact(trimmed))
		return nil
	case 't', 'f':
		var v bool
		if err := json.Unmarshal(trimmed, &v); err != nil {
			return err
		}
		*t = Text(strconv.FormatBool(v))
		return nil
	case '[':
		*t = Text(compact(trimmed))
		return nil
	default:
		var n float64
		if err := json.Unmarshal(trimmed, &n); err != nil {
			return fmt.Errorf("decode text: unsupported value %s", trimmed)
		}
		*t = Text(strconv.FormatFloat(n, 'f', -1, 64))
		return nil
	}
}

// String returns the flattened value.
func (t Text) String() string { return string(t) }

// Empty reports whether no value was present.
func (t Text) Empty() bool { return t == "" }

func compact(raw []byte) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

// CoerceArray wraps a bare JSON object in a single-element array. PowerShell's
// ConvertTo-Json collapses single-element results to an object, so list-shaped
// evidence may arrive either way; every list decode goes through this one
// coercion instead of special-casing cardinality per call site.
func CoerceArray(raw []byte) []byte {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] == '[' {
		return trimmed
	}
	wrapped := make([]byte, 0, len(trimmed)+2)
	wrapped = append(wrapped, '[')
	wrapped = append(wrapped, trimmed...)
	return append(wrapped, ']')
}
