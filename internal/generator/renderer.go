package generator

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/yourorg/sdkdoc/internal/docs"
	"github.com/yourorg/sdkdoc/pkg/types"
)

const (
	manifestFile = "manifest.yaml"
	indexFile    = "index.rst"
)

// Manifest indexes the pages rendered for one service.
type Manifest struct {
	Service    string   `yaml:"service"`
	Title      string   `yaml:"title"`
	Index      string   `yaml:"index"`
	APIVersion string   `yaml:"api_version,omitempty"`
	Operations []Result `yaml:"operations"`
}

// WriteOperation writes body to outputDir/<service>/<method>.rst.
func WriteOperation(outputDir, service, operation string, body []byte) (Result, error) {
	dir := filepath.Join(outputDir, service)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Result{}, err
	}
	method := docs.MethodName(operation)
	file := method + ".rst"
	if err := os.WriteFile(filepath.Join(dir, file), body, 0o644); err != nil {
		return Result{}, err
	}
	return Result{Operation: operation, Method: method, File: file, Bytes: len(body)}, nil
}

// WriteIndex writes the service landing page to outputDir/<service>/index.rst.
func WriteIndex(outputDir, service string, body []byte) error {
	dir := filepath.Join(outputDir, service)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, indexFile), body, 0o644)
}

// WriteManifest renders outputDir/<service>/manifest.yaml.
func WriteManifest(outputDir string, svc *types.ServiceModel, results []Result) error {
	if svc == nil {
		return fmt.Errorf("service model is nil")
	}
	m := Manifest{
		Service:    svc.Name,
		Title:      docs.OfficialServiceName(svc.Metadata),
		Index:      indexFile,
		APIVersion: svc.Metadata.APIVersion,
		Operations: results,
	}
	data, err := yaml.Marshal(&m)
	if err != nil {
		return err
	}
	dir := filepath.Join(outputDir, svc.Name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, manifestFile), data, 0o644)
}

// ReadManifest loads a manifest written by WriteManifest.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return &m, nil
}
