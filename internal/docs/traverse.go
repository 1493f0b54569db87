package docs

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yourorg/sdkdoc/internal/docs/hooks"
	"github.com/yourorg/sdkdoc/internal/docs/section"
	"github.com/yourorg/sdkdoc/pkg/types"
)

// CompleteSection is the last segment of the event emitted once a whole
// shape has been documented.
const CompleteSection = "complete-section"

var ErrInvalidShape = errors.New("invalid shape")

// History is the chain of shape names from the documented operation shape
// down to the current one. It is never modified in place.
type History []string

func (h History) Contains(name string) bool {
	if name == "" {
		return false
	}
	for _, n := range h {
		if n == name {
			return true
		}
	}
	return false
}

// With returns a copy of h extended by name.
func (h History) With(name string) History {
	out := make(History, len(h), len(h)+1)
	copy(out, h)
	return append(out, name)
}

// Documenter renders shapes for one documentation context such as
// "request-example". Depth is the length of the history including the shape
// being documented, so the operation's own shape has depth 1.
type Documenter interface {
	EventName() string
	ServiceName() string
	OperationName() string
	Emitter() hooks.Emitter

	documentScalar(s *section.Section, shape *types.Shape, depth int) error
	documentRecursive(s *section.Section, shape *types.Shape)
	// startStructure returns the section member sections are added to.
	startStructure(s *section.Section, shape *types.Shape, depth int) (*section.Section, error)
	documentMember(ms *section.Section, parent *types.Shape, m types.Member, depth int) error
	endMember(ms *section.Section, last bool) error
	endStructure(container *section.Section, shape *types.Shape, depth int) error
	documentList(s *section.Section, shape *types.Shape, depth int, item func(*section.Section) error) error
	documentMap(s *section.Section, shape *types.Shape, depth int, value func(*section.Section) error) error
}

// Traverse documents shape into s with d, emitting one event per structure
// member and, when h is empty, a final complete-section event for s.
func Traverse(d Documenter, s *section.Section, shape *types.Shape, h History) error {
	return traverse(d, s, shape, h, nil)
}

func traverse(d Documenter, s *section.Section, shape *types.Shape, h History, path []string) error {
	if shape == nil {
		return fmt.Errorf("%w: missing shape under %s", ErrInvalidShape, strings.Join(s.Path(), "/"))
	}
	if shape.Name == "" && shape.Type.Composite() {
		return fmt.Errorf("%w: unnamed %s shape under %s", ErrInvalidShape, shape.Type, strings.Join(s.Path(), "/"))
	}
	if h.Contains(shape.Name) {
		d.documentRecursive(s, shape)
		return nil
	}
	top := len(h) == 0
	h = h.With(shape.Name)
	depth := len(h)

	var err error
	switch shape.Type {
	case types.TypeStructure:
		err = traverseStructure(d, s, shape, h, path)
	case types.TypeList:
		if shape.Item == nil {
			return fmt.Errorf("%w: list %q has no member shape", ErrInvalidShape, shape.Name)
		}
		err = d.documentList(s, shape, depth, func(item *section.Section) error {
			return traverse(d, item, shape.Item, h, path)
		})
	case types.TypeMap:
		if shape.Value == nil {
			return fmt.Errorf("%w: map %q has no value shape", ErrInvalidShape, shape.Name)
		}
		err = d.documentMap(s, shape, depth, func(value *section.Section) error {
			return traverse(d, value, shape.Value, h, path)
		})
	default:
		err = d.documentScalar(s, shape, depth)
	}
	if err != nil {
		return err
	}
	if top {
		emit(d, CompleteSection, s)
	}
	return nil
}

func traverseStructure(d Documenter, s *section.Section, shape *types.Shape, h History, path []string) error {
	depth := len(h)
	container, err := d.startStructure(s, shape, depth)
	if err != nil {
		return err
	}
	for i, m := range shape.Members {
		ms, err := container.AddSection(m.Name)
		if err != nil {
			return err
		}
		if err := d.documentMember(ms, shape, m, depth); err != nil {
			return err
		}
		memberPath := append(append([]string(nil), path...), m.Name)
		if err := traverse(d, ms, m.Shape, h, memberPath); err != nil {
			return err
		}
		if err := d.endMember(ms, i == len(shape.Members)-1); err != nil {
			return err
		}
		emit(d, strings.Join(memberPath, "."), ms)
	}
	return d.endStructure(container, shape, depth)
}

// EventName returns the full event name for suffix in d's context.
func EventName(d Documenter, suffix string) string {
	return fmt.Sprintf("docs.%s.%s.%s.%s", d.EventName(), d.ServiceName(), d.OperationName(), suffix)
}

func emit(d Documenter, suffix string, s *section.Section) {
	if e := d.Emitter(); e != nil {
		e.Emit(EventName(d, suffix), s)
	}
}

// shapeDocumenter holds what every documenter variant shares.
type shapeDocumenter struct {
	event     string
	service   string
	operation string
	emitter   hooks.Emitter
}

func (d *shapeDocumenter) EventName() string      { return d.event }
func (d *shapeDocumenter) ServiceName() string    { return d.service }
func (d *shapeDocumenter) OperationName() string  { return d.operation }
func (d *shapeDocumenter) Emitter() hooks.Emitter { return d.emitter }

func memberDoc(m types.Member) string {
	if m.Documentation != "" {
		return m.Documentation
	}
	if m.Shape != nil {
		return m.Shape.Documentation
	}
	return ""
}
