package docs

import (
	"fmt"

	"github.com/yourorg/sdkdoc/internal/docs/hooks"
	"github.com/yourorg/sdkdoc/internal/docs/section"
	"github.com/yourorg/sdkdoc/pkg/types"
)

const (
	RequestParams  = "request-params"
	ResponseParams = "response-params"
)

// Subsection names of a documented parameter.
const (
	ParamType          = "param-type"
	ParamName          = "param-name"
	IsRequired         = "is-required"
	ParamDocumentation = "param-documentation"
	EndParam           = "end-param"
)

// ParamsDocumenter writes parameter reference lists. Members of the
// documented structure are sections directly under the section passed in.
type ParamsDocumenter struct {
	shapeDocumenter
	request bool
}

func NewRequestParamsDocumenter(service, operation string, emitter hooks.Emitter) *ParamsDocumenter {
	return &ParamsDocumenter{
		shapeDocumenter: shapeDocumenter{event: RequestParams, service: service, operation: operation, emitter: emitter},
		request:         true,
	}
}

func NewResponseParamsDocumenter(service, operation string, emitter hooks.Emitter) *ParamsDocumenter {
	return &ParamsDocumenter{
		shapeDocumenter: shapeDocumenter{event: ResponseParams, service: service, operation: operation, emitter: emitter},
	}
}

// DocumentParams documents every member of shape.
func (d *ParamsDocumenter) DocumentParams(s *section.Section, shape *types.Shape) error {
	return Traverse(d, s, shape, nil)
}

func (d *ParamsDocumenter) documentScalar(s *section.Section, shape *types.Shape, depth int) error {
	if depth > 1 {
		return nil
	}
	return d.documentAnonymous(s, shape, shape.Documentation)
}

func (d *ParamsDocumenter) documentRecursive(s *section.Section, shape *types.Shape) {}

func (d *ParamsDocumenter) startStructure(s *section.Section, shape *types.Shape, depth int) (*section.Section, error) {
	switch {
	case depth > 1:
		s.Indent()
	case !d.request:
		if err := d.documentAnonymous(s, shape, shape.Documentation); err != nil {
			return nil, err
		}
		s.Indent()
	}
	return s, nil
}

func (d *ParamsDocumenter) documentMember(ms *section.Section, parent *types.Shape, m types.Member, depth int) error {
	if m.Shape == nil {
		return fmt.Errorf("%w: member %q of %q has no shape", ErrInvalidShape, m.Name, parent.Name)
	}
	typeName, err := TypeName(m.Shape.Type)
	if err != nil {
		return err
	}
	ms.NewLine()
	if d.request && depth == 1 {
		t, err := ms.AddSection(ParamType)
		if err != nil {
			return err
		}
		t.Write(fmt.Sprintf(":type %s: %s", m.Name, typeName))
		t.NewLine()
		n, err := ms.AddSection(ParamName)
		if err != nil {
			return err
		}
		n.Write(fmt.Sprintf(":param %s: ", m.Name))
	} else {
		n, err := ms.AddSection(ParamName)
		if err != nil {
			return err
		}
		n.Write("- ")
		n.Bold(m.Name)
		n.Write(" ")
		t, err := ms.AddSection(ParamType)
		if err != nil {
			return err
		}
		t.Write(fmt.Sprintf("*(%s) --* ", typeName))
	}
	if d.request && parent.IsRequired(m.Name) {
		req, err := ms.AddSection(IsRequired)
		if err != nil {
			return err
		}
		req.Bold("[REQUIRED]")
		req.Write(" ")
	}
	return d.documentDescription(ms, memberDoc(m))
}

func (d *ParamsDocumenter) documentDescription(s *section.Section, doc string) error {
	desc, err := s.AddSection(ParamDocumentation)
	if err != nil {
		return err
	}
	desc.WriteDoc(doc)
	end, err := s.AddSection(EndParam)
	if err != nil {
		return err
	}
	end.NewParagraph()
	return nil
}

// documentAnonymous writes the type line of a value without a member name:
// list items, map values and the response itself.
func (d *ParamsDocumenter) documentAnonymous(s *section.Section, shape *types.Shape, doc string) error {
	typeName, err := TypeName(shape.Type)
	if err != nil {
		return err
	}
	t, err := s.AddSection(ParamType)
	if err != nil {
		return err
	}
	t.NewLine()
	t.Write(fmt.Sprintf("- *(%s) --* ", typeName))
	return d.documentDescription(s, doc)
}

func (d *ParamsDocumenter) endMember(ms *section.Section, last bool) error { return nil }

func (d *ParamsDocumenter) endStructure(container *section.Section, shape *types.Shape, depth int) error {
	end, err := container.AddSection("end-structure")
	if err != nil {
		return err
	}
	end.Dedent()
	end.NewLine()
	return nil
}

func (d *ParamsDocumenter) documentList(s *section.Section, shape *types.Shape, depth int, item func(*section.Section) error) error {
	s.Indent()
	member, err := s.AddSection("member")
	if err != nil {
		return err
	}
	if err := d.documentAnonymous(member, shape.Item, shape.Item.Documentation); err != nil {
		return err
	}
	if err := item(member); err != nil {
		return err
	}
	s.Dedent()
	return nil
}

func (d *ParamsDocumenter) documentMap(s *section.Section, shape *types.Shape, depth int, value func(*section.Section) error) error {
	s.Indent()
	key, err := s.AddSection("key")
	if err != nil {
		return err
	}
	keyShape := shape.Key
	if keyShape == nil {
		keyShape = &types.Shape{Type: types.TypeString}
	}
	if err := d.documentAnonymous(key, keyShape, keyShape.Documentation); err != nil {
		return err
	}
	key.Indent()
	v, err := key.AddSection("value")
	if err != nil {
		return err
	}
	if err := d.documentAnonymous(v, shape.Value, shape.Value.Documentation); err != nil {
		return err
	}
	if err := value(v); err != nil {
		return err
	}
	s.Dedent()
	return nil
}
