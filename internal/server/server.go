package server

import (
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/yourorg/sdkdoc/internal/config"
	"github.com/yourorg/sdkdoc/internal/docs"
	"github.com/yourorg/sdkdoc/internal/docs/hooks"
	"github.com/yourorg/sdkdoc/internal/generator"
	"github.com/yourorg/sdkdoc/internal/store"
	"github.com/yourorg/sdkdoc/pkg/types"
)

const indexHTML = `<!doctype html>
<html><head><meta charset="utf-8"><title>sdkdoc</title></head>
<body>
<h1>Services</h1>
{{range .}}<h2>{{.Title}}</h2>
<ul>{{$svc := .Name}}{{range .Operations}}
<li><a href="/api/services/{{$svc}}/operations/{{.}}/doc">{{.}}</a></li>{{end}}
</ul>{{else}}<p>No service models loaded.</p>{{end}}
</body></html>
`

var indexTemplate = template.Must(template.New("index").Parse(indexHTML))

// Server serves rendered operation documentation for a set of models.
type Server struct {
	cfg      *config.Config
	store    store.Store
	services map[string]*types.ServiceModel
	emitter  hooks.Emitter
	logger   *slog.Logger
	mux      *http.ServeMux
}

type serviceSummary struct {
	Name       string   `json:"name"`
	Title      string   `json:"title"`
	APIVersion string   `json:"api_version,omitempty"`
	Operations []string `json:"operations"`
}

// New constructs a new Server with routes registered.
func New(cfg *config.Config, st store.Store, services []*types.ServiceModel, emitter hooks.Emitter, logger *slog.Logger) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if st == nil {
		return nil, errors.New("store is nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	srv := &Server{
		cfg:      cfg,
		store:    st,
		services: make(map[string]*types.ServiceModel, len(services)),
		emitter:  emitter,
		logger:   logger,
		mux:      http.NewServeMux(),
	}
	for _, svc := range services {
		srv.services[svc.Name] = svc
	}
	srv.registerRoutes()
	return srv, nil
}

// Handler returns the http handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// ListenAndServe starts the server on addr.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s.mux)
}

func (s *Server) registerRoutes() {
	// Static file server for generated pages.
	s.mux.Handle("/docs/", http.StripPrefix("/docs/", http.FileServer(http.Dir(s.cfg.Output.Dir))))

	s.mux.HandleFunc("/", s.handleIndex)

	s.mux.HandleFunc("/api/services", s.handleServices)
	s.mux.HandleFunc("/api/services/", s.handleServiceRoutes)
	s.mux.HandleFunc("/api/renders", s.handleRenders)
	s.mux.HandleFunc("/api/generate", s.handleGenerate)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_ = indexTemplate.Execute(w, s.summaries())
}

func (s *Server) handleServices(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, s.summaries())
}

// handleServiceRoutes serves /api/services/{service} and
// /api/services/{service}/operations/{operation}/doc.
func (s *Server) handleServiceRoutes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	name, tail, ok := splitPath(r.URL.Path, "/api/services/")
	if !ok || name == "" {
		http.NotFound(w, r)
		return
	}
	svc, found := s.services[name]
	if !found {
		http.Error(w, "service not found", http.StatusNotFound)
		return
	}
	if tail == "" {
		writeJSON(w, http.StatusOK, summarize(svc))
		return
	}
	parts := strings.Split(tail, "/")
	if len(parts) != 3 || parts[0] != "operations" || parts[2] != "doc" {
		http.NotFound(w, r)
		return
	}
	s.handleOperationDoc(w, r, svc, parts[1])
}

// handleOperationDoc renders an operation and records it, or returns a
// stored version when ?version= is given.
func (s *Server) handleOperationDoc(w http.ResponseWriter, r *http.Request, svc *types.ServiceModel, operation string) {
	if v := r.URL.Query().Get("version"); v != "" {
		version, err := strconv.Atoi(v)
		if err != nil || version < 0 {
			http.Error(w, "invalid version", http.StatusBadRequest)
			return
		}
		rendered, err := s.store.GetRender(svc.Name, operation, version)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				http.Error(w, "render not found", http.StatusNotFound)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeText(w, rendered.Version, rendered.Body)
		return
	}

	body, err := docs.RenderOperation(svc, operation, s.emitter)
	if err != nil {
		if errors.Is(err, docs.ErrUnknownOperation) {
			http.Error(w, "operation not found", http.StatusNotFound)
			return
		}
		http.Error(w, "render failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	rendered, err := s.store.SaveRender(svc.Name, operation, body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.logger.Info("rendered operation", "service", svc.Name, "operation", operation, "version", rendered.Version)
	writeText(w, rendered.Version, rendered.Body)
}

func (s *Server) handleRenders(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	renders, err := s.store.ListRenders(r.URL.Query().Get("service"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, renders)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Service    string   `json:"service"`
		Operations []string `json:"operations"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Service) == "" {
		http.Error(w, "service required", http.StatusBadRequest)
		return
	}
	svc, ok := s.services[req.Service]
	if !ok {
		http.Error(w, "service not found", http.StatusNotFound)
		return
	}
	opts := generator.Options{
		Operations: req.Operations,
		Filter:     s.cfg.Filter,
		OutputDir:  s.cfg.Output.Dir,
		Emitter:    s.emitter,
		Logger:     s.logger,
	}
	results, err := generator.Generate(svc, s.store, opts, nil)
	if err != nil {
		if errors.Is(err, docs.ErrUnknownOperation) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, "generate failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

func (s *Server) summaries() []serviceSummary {
	out := make([]serviceSummary, 0, len(s.services))
	for _, svc := range s.services {
		out = append(out, summarize(svc))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func summarize(svc *types.ServiceModel) serviceSummary {
	ops := make([]string, 0, len(svc.Operations))
	for _, op := range svc.Operations {
		ops = append(ops, op.Name)
	}
	return serviceSummary{
		Name:       svc.Name,
		Title:      docs.OfficialServiceName(svc.Metadata),
		APIVersion: svc.Metadata.APIVersion,
		Operations: ops,
	}
}

func splitPath(fullPath, prefix string) (string, string, bool) {
	if !strings.HasPrefix(fullPath, prefix) {
		return "", "", false
	}
	rest := strings.TrimPrefix(fullPath, prefix)
	rest = strings.Trim(rest, "/")
	if rest == "" {
		return "", "", false
	}
	parts := strings.Split(rest, "/")
	id := parts[0]
	tail := ""
	if len(parts) > 1 {
		tail = strings.Join(parts[1:], "/")
	}
	return id, tail, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeText(w http.ResponseWriter, version int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Render-Version", strconv.Itoa(version))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}
