// Package jsonedit rewrites string values in JSON documents without
// reformatting them.
package jsonedit

import (
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// SetString replaces the string value of a top-level key. It reports false
// when the key is missing or its value is not a string.
func SetString(data []byte, key, value string) ([]byte, bool) {
	return set(data, value, key)
}

// SetMember replaces the string value of name inside the top-level object
// section, as in {"dependencies": {"react": "^18.2.0"}}.
func SetMember(data []byte, section, name, value string) ([]byte, bool) {
	return set(data, value, section, name)
}

// Get returns the string value at the given keys.
func Get(data []byte, keys ...string) (string, bool) {
	r := gjson.GetBytes(data, Path(keys...))
	if r.Type != gjson.String {
		return "", false
	}
	return r.Str, true
}

func set(data []byte, value string, keys ...string) ([]byte, bool) {
	path := Path(keys...)
	if r := gjson.GetBytes(data, path); r.Type != gjson.String {
		return data, false
	}
	out, err := sjson.SetBytes(data, path, value)
	if err != nil {
		return data, false
	}
	return out, true
}

// Path joins keys into a gjson/sjson path. Anything but letters, digits,
// '_' and '-' is escaped, so "@types/node" and "lodash.merge" stay one key.
func Path(keys ...string) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		var b strings.Builder
		for _, r := range k {
			if !(r == '_' || r == '-' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
				b.WriteByte('\\')
			}
			b.WriteRune(r)
		}
		parts[i] = b.String()
	}
	return strings.Join(parts, ".")
}
