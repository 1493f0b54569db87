package docs

import (
	"fmt"
	"strings"

	"github.com/yourorg/sdkdoc/internal/docs/hooks"
	"github.com/yourorg/sdkdoc/internal/docs/section"
)

const DefaultAutoPopulatedDescription = "Note this parameter is autopopulated. There is no need to include in method call"

// eventContext returns the documentation context of a docs event, e.g.
// "request-params" for "docs.request-params.svc.Op.complete-section".
func eventContext(event string) string {
	parts := strings.SplitN(event, ".", 3)
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}

// AutoPopulatedParam marks a request parameter that the client fills in by
// itself: it is dropped from request examples and documented as optional.
type AutoPopulatedParam struct {
	Name        string
	Description string
}

// NewAutoPopulatedParam returns an annotator for name. An empty description
// selects DefaultAutoPopulatedDescription.
func NewAutoPopulatedParam(name, description string) *AutoPopulatedParam {
	if description == "" {
		description = DefaultAutoPopulatedDescription
	}
	return &AutoPopulatedParam{Name: name, Description: description}
}

// Document edits root, the section of a whole request documentation pass.
// It is a hooks.Listener.
func (p *AutoPopulatedParam) Document(event string, root *section.Section) {
	switch eventContext(event) {
	case RequestParams:
		param, err := root.GetSection(p.Name)
		if err != nil {
			return
		}
		if param.HasSection(IsRequired) {
			_ = param.DeleteSection(IsRequired)
		}
		desc, err := param.GetSection(ParamDocumentation)
		if err != nil {
			if desc, err = param.AddSection(ParamDocumentation); err != nil {
				return
			}
		}
		if len(desc.Lines()) > 0 {
			desc.NewLine()
		}
		desc.Writeln(p.Description)
	case RequestExample:
		members, err := root.GetSection("structure-value")
		if err != nil {
			return
		}
		if members.HasSection(p.Name) {
			_ = members.DeleteSection(p.Name)
		}
	}
}

// Register attaches p to the complete-section events of operation.
func (p *AutoPopulatedParam) Register(h *hooks.Hooks, service, operation string) {
	h.Register(completePattern("*", service, operation), p.Document)
}

// HideParamFromOperations removes a parameter from the request
// documentation of the given operations.
type HideParamFromOperations struct {
	Service    string
	Param      string
	Operations []string
}

func (p *HideParamFromOperations) Hide(event string, root *section.Section) {
	parts := strings.Split(event, ".")
	if len(parts) != 5 || parts[2] != p.Service || parts[4] != CompleteSection || !p.covers(parts[3]) {
		return
	}
	target := root
	switch parts[1] {
	case RequestExample:
		members, err := root.GetSection("structure-value")
		if err != nil {
			return
		}
		target = members
	case RequestParams:
	default:
		return
	}
	if target.HasSection(p.Param) {
		_ = target.DeleteSection(p.Param)
	}
}

func (p *HideParamFromOperations) covers(operation string) bool {
	for _, op := range p.Operations {
		if op == operation {
			return true
		}
	}
	return false
}

func (p *HideParamFromOperations) Register(h *hooks.Hooks) {
	for _, op := range p.Operations {
		h.Register(completePattern(RequestParams, p.Service, op), p.Hide)
		h.Register(completePattern(RequestExample, p.Service, op), p.Hide)
	}
}

// AppendParamDocumentation adds text to a parameter's description.
type AppendParamDocumentation struct {
	Param string
	Doc   string
}

func (p *AppendParamDocumentation) Append(event string, root *section.Section) {
	param, err := root.GetSection(p.Param)
	if err != nil {
		return
	}
	desc, err := param.GetSection(ParamDocumentation)
	if err != nil {
		return
	}
	desc.NewLine()
	desc.Writeln(p.Doc)
}

// Register attaches p to the request-params documentation of operation.
func (p *AppendParamDocumentation) Register(h *hooks.Hooks, service, operation string) {
	h.Register(completePattern(RequestParams, service, operation), p.Append)
}

func completePattern(context, service, operation string) string {
	return fmt.Sprintf("docs.%s.%s.%s.%s", context, service, operation, CompleteSection)
}
