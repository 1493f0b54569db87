package model

import (
	"fmt"
	"os"

	"github.com/jmespath/go-jmespath"
	"gopkg.in/yaml.v3"
)

// Query evaluates a JMESPath expression against the raw model document at
// path, e.g. "keys(operations)" or "shapes.*.type".
func Query(path, expression string) (interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}
	return QueryBytes(data, expression)
}

func QueryBytes(data []byte, expression string) (interface{}, error) {
	jp, err := jmespath.Compile(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid expression: %w", err)
	}
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidModel, err)
	}
	return jp.Search(normalize(doc))
}

// normalize converts YAML maps with non-string keys so JMESPath can walk
// them.
func normalize(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		for k, val := range t {
			t[k] = normalize(val)
		}
		return t
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = normalize(val)
		}
		return out
	case []interface{}:
		for i, val := range t {
			t[i] = normalize(val)
		}
		return t
	default:
		return v
	}
}
