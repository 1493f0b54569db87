package docs

import (
	"strings"

	"github.com/yourorg/sdkdoc/internal/docs/hooks"
	"github.com/yourorg/sdkdoc/internal/docs/section"
	"github.com/yourorg/sdkdoc/pkg/types"
)

const (
	RequestExample  = "request-example"
	ResponseExample = "response-example"
)

// ExampleDocumenter writes example payloads. For requests the operation's
// input structure is rendered as keyword arguments of the method call.
type ExampleDocumenter struct {
	shapeDocumenter
	request bool
}

func NewRequestExampleDocumenter(service, operation string, emitter hooks.Emitter) *ExampleDocumenter {
	return &ExampleDocumenter{
		shapeDocumenter: shapeDocumenter{event: RequestExample, service: service, operation: operation, emitter: emitter},
		request:         true,
	}
}

func NewResponseExampleDocumenter(service, operation string, emitter hooks.Emitter) *ExampleDocumenter {
	return &ExampleDocumenter{
		shapeDocumenter: shapeDocumenter{event: ResponseExample, service: service, operation: operation, emitter: emitter},
	}
}

// DocumentExample writes a code block with prefix followed by the example
// for shape.
func (d *ExampleDocumenter) DocumentExample(s *section.Section, shape *types.Shape, prefix string) error {
	s.NewLine()
	s.StartCodeblock()
	if prefix != "" {
		s.Write(prefix)
	}
	return Traverse(d, s, shape, nil)
}

func (d *ExampleDocumenter) documentScalar(s *section.Section, shape *types.Shape, depth int) error {
	if len(shape.Enum) > 0 && (shape.Type == types.TypeString || shape.Type == types.TypeCharacter) {
		quoted := make([]string, len(shape.Enum))
		for i, v := range shape.Enum {
			quoted[i] = "'" + v + "'"
		}
		s.Write(strings.Join(quoted, "|"))
		return nil
	}
	v, err := DefaultExample(shape.Type)
	if err != nil {
		return err
	}
	s.Write(v)
	return nil
}

func (d *ExampleDocumenter) documentRecursive(s *section.Section, shape *types.Shape) {
	s.Write("{'... recursive ...'}")
}

func (d *ExampleDocumenter) brackets(depth int) (string, string) {
	if d.request && depth == 1 {
		return "(", ")"
	}
	return "{", "}"
}

func (d *ExampleDocumenter) startStructure(s *section.Section, shape *types.Shape, depth int) (*section.Section, error) {
	container, err := s.AddSection("structure-value")
	if err != nil {
		return nil, err
	}
	opening, closing := d.brackets(depth)
	if len(shape.Members) == 0 {
		container.Write(opening + closing)
		return container, nil
	}
	container.Write(opening)
	container.Indent()
	container.NewLine()
	return container, nil
}

func (d *ExampleDocumenter) documentMember(ms *section.Section, parent *types.Shape, m types.Member, depth int) error {
	if d.request && depth == 1 {
		ms.Write(m.Name + "=")
		return nil
	}
	ms.Write("'" + m.Name + "': ")
	return nil
}

func (d *ExampleDocumenter) endMember(ms *section.Section, last bool) error {
	if last {
		return nil
	}
	comma, err := ms.AddSection("ending-comma")
	if err != nil {
		return err
	}
	comma.Write(",")
	comma.NewLine()
	return nil
}

func (d *ExampleDocumenter) endStructure(container *section.Section, shape *types.Shape, depth int) error {
	if len(shape.Members) == 0 {
		return nil
	}
	_, closing := d.brackets(depth)
	return closeNested(container, closing)
}

func (d *ExampleDocumenter) documentList(s *section.Section, shape *types.Shape, depth int, item func(*section.Section) error) error {
	list, err := s.AddSection("list-value")
	if err != nil {
		return err
	}
	list.Write("[")
	list.Indent()
	list.NewLine()
	member, err := list.AddSection("member")
	if err != nil {
		return err
	}
	if err := item(member); err != nil {
		return err
	}
	comma, err := list.AddSection("ending-comma")
	if err != nil {
		return err
	}
	comma.Write(",")
	return closeNested(list, "]")
}

func (d *ExampleDocumenter) documentMap(s *section.Section, shape *types.Shape, depth int, value func(*section.Section) error) error {
	m, err := s.AddSection("map-value")
	if err != nil {
		return err
	}
	m.Write("{")
	m.Indent()
	m.NewLine()
	key, err := m.AddSection("key")
	if err != nil {
		return err
	}
	key.Write("'string': ")
	v, err := m.AddSection("value")
	if err != nil {
		return err
	}
	if err := value(v); err != nil {
		return err
	}
	return closeNested(m, "}")
}

func closeNested(s *section.Section, closing string) error {
	end, err := s.AddSection("ending-bracket")
	if err != nil {
		return err
	}
	end.Dedent()
	end.NewLine()
	end.Write(closing)
	return nil
}
