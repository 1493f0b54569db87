package docs

import (
	"errors"
	"fmt"

	"github.com/yourorg/sdkdoc/pkg/types"
)

var ErrUnsupportedType = errors.New("unsupported shape type")

var typeNames = map[types.ShapeType]string{
	types.TypeStructure: "dict",
	types.TypeMap:       "dict",
	types.TypeList:      "list",
	types.TypeString:    "string",
	types.TypeCharacter: "string",
	types.TypeBoolean:   "boolean",
	types.TypeBlob:      "bytes",
	types.TypeTimestamp: "datetime",
	types.TypeInteger:   "integer",
	types.TypeLong:      "integer",
	types.TypeFloat:     "float",
	types.TypeDouble:    "float",
}

var defaultExamples = map[types.ShapeType]string{
	types.TypeStructure: "{...}",
	types.TypeMap:       "{...}",
	types.TypeList:      "[...]",
	types.TypeString:    "'string'",
	types.TypeCharacter: "'string'",
	types.TypeBoolean:   "True|False",
	types.TypeBlob:      "b'bytes'",
	types.TypeTimestamp: "datetime(2015, 1, 1)",
	types.TypeInteger:   "123",
	types.TypeLong:      "123",
	types.TypeFloat:     "123.0",
	types.TypeDouble:    "123.0",
}

// TypeName returns the client-language type name shown for t.
func TypeName(t types.ShapeType) (string, error) {
	name, ok := typeNames[t]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedType, string(t))
	}
	return name, nil
}

// DefaultExample returns the literal used for t in example payloads.
func DefaultExample(t types.ShapeType) (string, error) {
	v, ok := defaultExamples[t]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedType, string(t))
	}
	return v, nil
}
