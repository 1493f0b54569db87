package docs

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iancoleman/strcase"

	"github.com/yourorg/sdkdoc/internal/docs/hooks"
	"github.com/yourorg/sdkdoc/internal/docs/section"
	"github.com/yourorg/sdkdoc/pkg/types"
)

var ErrUnknownOperation = errors.New("unknown operation")

// MethodName converts an operation name to the client method name,
// e.g. "SampleOperation" to "sample_operation".
func MethodName(operation string) string {
	return strcase.ToSnake(operation)
}

// DocumentOperation writes the reference page of one operation into root.
func DocumentOperation(root *section.Section, svc *types.ServiceModel, op *types.Operation, emitter hooks.Emitter) error {
	method := MethodName(op.Name)

	title, err := root.AddSection("method-title")
	if err != nil {
		return err
	}
	title.Writeln(method)
	title.Writeln(strings.Repeat("=", len(method)))

	intro, err := root.AddSection("method-intro")
	if err != nil {
		return err
	}
	intro.NewLine()
	intro.WriteDoc(op.Documentation)
	intro.NewParagraph()

	if err := documentRequest(root, svc, op, method, emitter); err != nil {
		return fmt.Errorf("document %s request: %w", op.Name, err)
	}
	if err := documentResponse(root, svc, op, emitter); err != nil {
		return fmt.Errorf("document %s response: %w", op.Name, err)
	}
	return nil
}

func documentRequest(root *section.Section, svc *types.ServiceModel, op *types.Operation, method string, emitter hooks.Emitter) error {
	example, err := root.AddSection(RequestExample)
	if err != nil {
		return err
	}
	example.Bold("Request Syntax")
	prefix := "response = client." + method
	if op.Input == nil {
		example.NewLine()
		example.StartCodeblock()
		example.Write(prefix + "()")
	} else {
		d := NewRequestExampleDocumenter(svc.Name, op.Name, emitter)
		if err := d.DocumentExample(example, op.Input, prefix); err != nil {
			return err
		}
	}
	example.EndCodeblock()

	params, err := root.AddSection(RequestParams)
	if err != nil {
		return err
	}
	if op.Input == nil {
		return nil
	}
	return NewRequestParamsDocumenter(svc.Name, op.Name, emitter).DocumentParams(params, op.Input)
}

func documentResponse(root *section.Section, svc *types.ServiceModel, op *types.Operation, emitter hooks.Emitter) error {
	ret, err := root.AddSection("return")
	if err != nil {
		return err
	}
	ret.NewParagraph()
	if op.Output == nil {
		ret.Writeln(":returns: None")
		return nil
	}
	typeName, err := TypeName(op.Output.Type)
	if err != nil {
		return err
	}
	ret.Writeln(":rtype: " + typeName)
	ret.Write(":returns: ")
	ret.Indent()

	example, err := ret.AddSection(ResponseExample)
	if err != nil {
		return err
	}
	example.NewParagraph()
	example.Bold("Response Syntax")
	if err := NewResponseExampleDocumenter(svc.Name, op.Name, emitter).DocumentExample(example, op.Output, ""); err != nil {
		return err
	}
	example.EndCodeblock()

	params, err := ret.AddSection(ResponseParams)
	if err != nil {
		return err
	}
	params.Bold("Response Structure")
	params.NewParagraph()
	return NewResponseParamsDocumenter(svc.Name, op.Name, emitter).DocumentParams(params, op.Output)
}

// DocumentService writes the service landing page: the title, how to
// construct a client and a toctree of the method pages of ops.
func DocumentService(root *section.Section, svc *types.ServiceModel, ops []*types.Operation) error {
	name := OfficialServiceName(svc.Metadata)
	title, err := root.AddSection("title")
	if err != nil {
		return err
	}
	title.Writeln(name)
	title.Writeln(strings.Repeat("*", len(name)))
	title.NewLine()

	client, err := root.AddSection("client")
	if err != nil {
		return err
	}
	client.Write("A low-level client representing " + name)
	client.NewLine()
	client.StartCodeblock()
	client.Write(fmt.Sprintf("client = session.client('%s')", svc.Name))
	client.EndCodeblock()

	methods, err := root.AddSection("methods")
	if err != nil {
		return err
	}
	methods.Writeln(".. toctree::")
	methods.Writeln("  :maxdepth: 1")
	methods.Writeln("  :titlesonly:")
	methods.Writeln("")
	for _, op := range ops {
		methods.Writeln("  " + MethodName(op.Name))
	}
	return nil
}

// RenderService returns the flushed landing page of svc. Nil ops lists
// every operation of the model.
func RenderService(svc *types.ServiceModel, ops []*types.Operation) ([]byte, error) {
	if ops == nil {
		ops = svc.Operations
	}
	root := section.New(svc.Name)
	if err := DocumentService(root, svc, ops); err != nil {
		return nil, err
	}
	return root.Flush(), nil
}

// RenderOperation returns the flushed reference page of one operation.
func RenderOperation(svc *types.ServiceModel, operation string, emitter hooks.Emitter) ([]byte, error) {
	op := svc.Operation(operation)
	if op == nil {
		return nil, fmt.Errorf("%w: %q in %s", ErrUnknownOperation, operation, svc.Name)
	}
	root := section.New(op.Name)
	if err := DocumentOperation(root, svc, op, emitter); err != nil {
		return nil, err
	}
	return root.Flush(), nil
}
