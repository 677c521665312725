package generation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

var errNoJSON = errors.New("reply contains no JSON object")

// validator is implemented by results with checks a JSON schema cannot express.
type validator interface {
	Validate() error
}

// coerce extracts the JSON object from raw, validates it against schema and decodes it into out.
func coerce(raw string, schema map[string]any, out any) error {
	doc, err := extractJSON(raw)
	if err != nil {
		return err
	}

	res, err := gojsonschema.Validate(gojsonschema.NewGoLoader(schema), gojsonschema.NewStringLoader(doc))
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	if !res.Valid() {
		msgs := make([]string, 0, len(res.Errors()))
		for _, e := range res.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("reply does not match schema: %s", strings.Join(msgs, "; "))
	}

	// Reset so a field left over from an earlier attempt cannot leak through.
	if v := reflect.ValueOf(out); v.Kind() == reflect.Pointer && !v.IsNil() {
		v.Elem().SetZero()
	}
	if err := json.Unmarshal([]byte(doc), out); err != nil {
		return fmt.Errorf("decode reply: %w", err)
	}
	if v, ok := out.(validator); ok {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// extractJSON strips code fences and returns the reply as JSON, falling back to the
// first balanced {...} object in surrounding prose that is valid JSON.
func extractJSON(raw string) (string, error) {
	s := stripCodeFences(raw)
	if s == "" {
		return "", errors.New("empty reply")
	}
	if json.Valid([]byte(s)) {
		return s, nil
	}
	for i := strings.IndexByte(s, '{'); i != -1; {
		if end := objectEnd(s, i); end != -1 && json.Valid([]byte(s[i:end])) {
			return s[i:end], nil
		}
		next := strings.IndexByte(s[i+1:], '{')
		if next == -1 {
			break
		}
		i += next + 1
	}
	return "", errNoJSON
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		if nl := strings.Index(s, "\n"); nl != -1 {
			s = s[nl+1:]
		} else {
			s = strings.TrimPrefix(s, "```")
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// objectEnd returns the index just past the object that opens at s[start],
// ignoring braces inside strings, or -1 if it never closes.
func objectEnd(s string, start int) int {
	depth := 0
	inString, escaped := false, false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return -1
}
