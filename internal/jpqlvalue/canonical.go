package jpqlvalue

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// MarshalCanonical produces a deterministic JSON encoding of v, used to
// derive stable cache keys (jpqlcache). Map keys are sorted, HTML
// escaping is disabled, and
// Literal values are encoded through their own case rather than Go's
// default struct marshaling so the encoding is stable across refactors
// of the Literal types themselves.
func MarshalCanonical(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeCanonical(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeCanonical(buf *bytes.Buffer, v any) error {
	switch val := v.(type) {
	case nil:
		buf.WriteString("null")
		return nil
	case Literal:
		return writeCanonicalLiteral(buf, val)
	case string:
		return writeCanonicalString(buf, val)
	case int:
		fmt.Fprintf(buf, "%d", val)
		return nil
	case int64:
		fmt.Fprintf(buf, "%d", val)
		return nil
	case bool:
		if val {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
		return nil
	case []any:
		return writeCanonicalArray(buf, val)
	case map[string]any:
		return writeCanonicalObject(buf, val)
	default:
		return fmt.Errorf("jpqlvalue: unsupported type for canonical encoding: %T", v)
	}
}

func writeCanonicalLiteral(buf *bytes.Buffer, lit Literal) error {
	switch val := lit.(type) {
	case Null:
		buf.WriteString("null")
		return nil
	case String:
		return writeCanonicalString(buf, string(val))
	case Int:
		fmt.Fprintf(buf, "%d", int64(val))
		return nil
	case Float:
		fmt.Fprintf(buf, "%v", float64(val))
		return nil
	case Bool:
		if val {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
		return nil
	case Enum:
		return writeCanonicalString(buf, string(val))
	case EntityType:
		return writeCanonicalString(buf, string(val))
	case Temporal:
		return writeCanonicalString(buf, fmt.Sprintf("%d:%s", val.Kind, val.Text))
	default:
		return fmt.Errorf("jpqlvalue: unknown Literal type: %T", lit)
	}
}

func writeCanonicalString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	// json.Encoder always appends a trailing newline; canonical output must not have one.
	b := buf.Bytes()
	if len(b) > 0 && b[len(b)-1] == '\n' {
		buf.Truncate(len(b) - 1)
	}
	return nil
}

func writeCanonicalArray(buf *bytes.Buffer, arr []any) error {
	buf.WriteByte('[')
	for i, elem := range arr {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeCanonical(buf, elem); err != nil {
			return err
		}
	}
	buf.WriteByte(']')
	return nil
}

func writeCanonicalObject(buf *bytes.Buffer, obj map[string]any) error {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeCanonicalString(buf, k); err != nil {
			return err
		}
		buf.WriteByte(':')
		if err := writeCanonical(buf, obj[k]); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}
