// Package model loads service descriptions: metadata, operations and the
// shapes they reference. JSON and YAML files are both accepted.
package model

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yourorg/sdkdoc/pkg/types"
)

var (
	ErrInvalidModel = errors.New("invalid service model")
	ErrUnknownShape = errors.New("unknown shape")
)

type rawModel struct {
	Metadata   types.Metadata `yaml:"metadata"`
	Operations yaml.Node      `yaml:"operations"`
	Shapes     yaml.Node      `yaml:"shapes"`
}

type rawRef struct {
	Shape         string `yaml:"shape"`
	Documentation string `yaml:"documentation"`
}

type rawOperation struct {
	Name          string  `yaml:"name"`
	Documentation string  `yaml:"documentation"`
	Input         *rawRef `yaml:"input"`
	Output        *rawRef `yaml:"output"`
}

type rawShape struct {
	Type          string    `yaml:"type"`
	Documentation string    `yaml:"documentation"`
	Members       yaml.Node `yaml:"members"`
	Required      []string  `yaml:"required"`
	Enum          []string  `yaml:"enum"`
	Member        *rawRef   `yaml:"member"`
	Key           *rawRef   `yaml:"key"`
	Value         *rawRef   `yaml:"value"`
}

// Load reads the model at path. The service name is taken from the
// endpoint prefix, or the file name when the model has none.
func Load(path string) (*types.ServiceModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Parse(data, base)
}

// Parse decodes a model. Member and operation order follow the document.
func Parse(data []byte, fallbackName string) (*types.ServiceModel, error) {
	var raw rawModel
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidModel, err)
	}
	if strings.TrimSpace(raw.Metadata.ServiceFullName) == "" {
		return nil, fmt.Errorf("%w: metadata.serviceFullName is required", ErrInvalidModel)
	}

	svc := &types.ServiceModel{
		Name:     raw.Metadata.EndpointPrefix,
		Metadata: raw.Metadata,
		Shapes:   map[string]*types.Shape{},
	}
	if svc.Name == "" {
		svc.Name = fallbackName
	}

	rawShapes := map[string]rawShape{}
	err := eachPair(&raw.Shapes, func(name string, n *yaml.Node) error {
		var rs rawShape
		if err := n.Decode(&rs); err != nil {
			return fmt.Errorf("%w: shape %q: %v", ErrInvalidModel, name, err)
		}
		t := types.ShapeType(rs.Type)
		if !t.Valid() {
			return fmt.Errorf("%w: shape %q has unsupported type %q", ErrInvalidModel, name, rs.Type)
		}
		rawShapes[name] = rs
		svc.Shapes[name] = &types.Shape{
			Name:          name,
			Type:          t,
			Documentation: rs.Documentation,
			Required:      rs.Required,
			Enum:          rs.Enum,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(rawShapes))
	for name := range rawShapes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := link(svc, svc.Shapes[name], rawShapes[name]); err != nil {
			return nil, err
		}
	}

	err = eachPair(&raw.Operations, func(name string, n *yaml.Node) error {
		var ro rawOperation
		if err := n.Decode(&ro); err != nil {
			return fmt.Errorf("%w: operation %q: %v", ErrInvalidModel, name, err)
		}
		op := &types.Operation{Name: name, Documentation: ro.Documentation}
		var err error
		if op.Input, err = resolve(svc, ro.Input); err != nil {
			return fmt.Errorf("operation %q input: %w", name, err)
		}
		if op.Output, err = resolve(svc, ro.Output); err != nil {
			return fmt.Errorf("operation %q output: %w", name, err)
		}
		svc.Operations = append(svc.Operations, op)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return svc, nil
}

func link(svc *types.ServiceModel, s *types.Shape, rs rawShape) error {
	var err error
	switch s.Type {
	case types.TypeStructure:
		return eachPair(&rs.Members, func(name string, n *yaml.Node) error {
			var ref rawRef
			if err := n.Decode(&ref); err != nil {
				return fmt.Errorf("%w: member %s.%s: %v", ErrInvalidModel, s.Name, name, err)
			}
			target, err := resolveRequired(svc, &ref)
			if err != nil {
				return fmt.Errorf("member %s.%s: %w", s.Name, name, err)
			}
			s.Members = append(s.Members, types.Member{Name: name, Documentation: ref.Documentation, Shape: target})
			return nil
		})
	case types.TypeList:
		if s.Item, err = resolveRequired(svc, rs.Member); err != nil {
			return fmt.Errorf("list %q member: %w", s.Name, err)
		}
	case types.TypeMap:
		if s.Value, err = resolveRequired(svc, rs.Value); err != nil {
			return fmt.Errorf("map %q value: %w", s.Name, err)
		}
		s.Key, err = resolve(svc, rs.Key)
	}
	return err
}

// resolveRequired is resolve for references that must name a shape.
func resolveRequired(svc *types.ServiceModel, ref *rawRef) (*types.Shape, error) {
	if ref == nil || ref.Shape == "" {
		return nil, fmt.Errorf("%w: missing shape reference", ErrInvalidModel)
	}
	return resolve(svc, ref)
}

func resolve(svc *types.ServiceModel, ref *rawRef) (*types.Shape, error) {
	if ref == nil || ref.Shape == "" {
		return nil, nil
	}
	s, ok := svc.Shapes[ref.Shape]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownShape, ref.Shape)
	}
	return s, nil
}

// eachPair calls fn for every key/value of a mapping node in document order.
// A zero node (absent key) has no pairs.
func eachPair(n *yaml.Node, fn func(key string, value *yaml.Node) error) error {
	if n.Kind == 0 {
		return nil
	}
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: expected mapping at line %d", ErrInvalidModel, n.Line)
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if err := fn(n.Content[i].Value, n.Content[i+1]); err != nil {
			return err
		}
	}
	return nil
}
