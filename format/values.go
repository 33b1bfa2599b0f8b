package format

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"regexp"
	"strings"
)

var quotedKey = regexp.MustCompile(`"([^"]+)":`)

// Values renders log arguments as message text. Top-level slices and arrays
// are flattened one level, every element is rendered on its own, and the
// results are joined by a single space and trimmed.
func Values(values ...any) string {
	flat := make([]any, 0, len(values))
	for _, v := range values {
		rv := reflect.ValueOf(v)
		if isList(rv) {
			for i := range rv.Len() {
				flat = append(flat, rv.Index(i).Interface())
			}

			continue
		}

		flat = append(flat, v)
	}

	parts := make([]string, 0, len(flat))
	for _, v := range flat {
		parts = append(parts, Value(v))
	}

	return strings.TrimSpace(strings.Join(parts, " "))
}

// Value renders a single log argument.
func Value(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	case []byte:
		return string(t)
	case error:
		return t.Error()
	case fmt.Stringer:
		return t.String()
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return "null"
	}

	if isList(rv) {
		parts := make([]string, 0, rv.Len())
		for i := range rv.Len() {
			parts = append(parts, Value(rv.Index(i).Interface()))
		}

		return strings.Join(parts, ", ")
	}

	if isStructured(rv) {
		return structured(v)
	}

	return fmt.Sprint(v)
}

func isList(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Slice:
		return rv.Type().Elem().Kind() != reflect.Uint8
	case reflect.Array:
		return true
	default:
		return false
	}
}

func isStructured(rv reflect.Value) bool {
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		rv = rv.Elem()
	}

	return rv.Kind() == reflect.Map || rv.Kind() == reflect.Struct
}

// structured renders v as two-space indented JSON with the quotes around
// object keys removed. HTML characters are written unescaped.
func structured(v any) string {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	err := enc.Encode(v)
	if err != nil {
		return fmt.Sprintf("%+v", v)
	}

	return quotedKey.ReplaceAllString(strings.TrimSuffix(buf.String(), "\n"), "$1:")
}
