package generator

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/yourorg/sdkdoc/internal/config"
	"github.com/yourorg/sdkdoc/internal/docs"
	"github.com/yourorg/sdkdoc/internal/docs/hooks"
	"github.com/yourorg/sdkdoc/internal/filter"
	"github.com/yourorg/sdkdoc/internal/store"
	"github.com/yourorg/sdkdoc/pkg/types"
)

// ProgressFunc reports generation progress.
type ProgressFunc func(stage string)

type Options struct {
	// Operations names the operations to render. When empty, Filter
	// selects them from the model.
	Operations []string
	Filter     config.FilterConfig
	OutputDir  string
	Emitter    hooks.Emitter
	Logger     *slog.Logger
}

// Result describes one rendered operation page.
type Result struct {
	Operation string `yaml:"operation"`
	Method    string `yaml:"method"`
	File      string `yaml:"file"`
	Version   int    `yaml:"version,omitempty"`
	Bytes     int    `yaml:"bytes"`
}

// NewHooks returns a hook registry with every documentation rule of cfg
// attached.
func NewHooks(cfg config.DocsConfig, logger *slog.Logger) *hooks.Hooks {
	h := hooks.New(logger)
	for _, r := range cfg.AutoPopulated {
		docs.NewAutoPopulatedParam(r.Param, r.Description).Register(h, r.Service, r.Operation)
	}
	for _, r := range cfg.Hidden {
		hide := &docs.HideParamFromOperations{Service: r.Service, Param: r.Param, Operations: r.Operations}
		hide.Register(h)
	}
	for _, r := range cfg.Appended {
		appendDoc := &docs.AppendParamDocumentation{Param: r.Param, Doc: r.Doc}
		appendDoc.Register(h, r.Service, r.Operation)
	}
	return h
}

// Generate renders the selected operations of svc into opts.OutputDir and,
// when st is non-nil, records each page as a new render version.
func Generate(svc *types.ServiceModel, st store.Store, opts Options, onProgress ProgressFunc) ([]Result, error) {
	if svc == nil {
		return nil, errors.New("service model is nil")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ops, err := selectOperations(svc, opts.Operations, opts.Filter)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(ops))
	for i, op := range ops {
		report(onProgress, fmt.Sprintf("operation %d/%d: %s", i+1, len(ops), op.Name))
		body, err := docs.RenderOperation(svc, op.Name, opts.Emitter)
		if err != nil {
			return nil, err
		}
		res, err := WriteOperation(opts.OutputDir, svc.Name, op.Name, body)
		if err != nil {
			return nil, err
		}
		if st != nil {
			r, err := st.SaveRender(svc.Name, op.Name, body)
			if err != nil {
				return nil, fmt.Errorf("save render %s.%s: %w", svc.Name, op.Name, err)
			}
			res.Version = r.Version
		}
		logger.Debug("rendered operation", "service", svc.Name, "operation", op.Name, "file", res.File, "version", res.Version)
		results = append(results, res)
	}

	report(onProgress, "writing service index")
	index, err := docs.RenderService(svc, ops)
	if err != nil {
		return nil, fmt.Errorf("render %s index: %w", svc.Name, err)
	}
	if err := WriteIndex(opts.OutputDir, svc.Name, index); err != nil {
		return nil, err
	}

	report(onProgress, "writing manifest")
	if err := WriteManifest(opts.OutputDir, svc, results); err != nil {
		return nil, err
	}
	return results, nil
}

func selectOperations(svc *types.ServiceModel, names []string, cfg config.FilterConfig) ([]*types.Operation, error) {
	if len(names) == 0 {
		return filter.Apply(svc.Operations, cfg), nil
	}
	ops := make([]*types.Operation, 0, len(names))
	for _, name := range names {
		op := svc.Operation(name)
		if op == nil {
			return nil, fmt.Errorf("%w: %q in %s", docs.ErrUnknownOperation, name, svc.Name)
		}
		ops = append(ops, op)
	}
	return ops, nil
}

func report(fn ProgressFunc, msg string) {
	if fn != nil {
		fn(msg)
	}
}
