package generator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourorg/sdkdoc/internal/config"
	"github.com/yourorg/sdkdoc/internal/docs"
	"github.com/yourorg/sdkdoc/internal/model"
	"github.com/yourorg/sdkdoc/internal/store"
)

func loadSample(t *testing.T) string {
	t.Helper()
	path, err := filepath.Abs(filepath.Join("..", "..", "testdata", "myservice.json"))
	require.NoError(t, err)
	return path
}

func TestGenerateWritesPagesAndVersions(t *testing.T) {
	svc, err := model.Load(loadSample(t))
	require.NoError(t, err)

	workDir := t.TempDir()
	st, err := store.NewSQLiteStore(filepath.Join(workDir, "sdkdoc.db"))
	require.NoError(t, err)
	defer st.Close()

	rules := config.DocsConfig{
		AutoPopulated: []config.AutoPopulatedRule{{Service: "myservice", Operation: "SampleOperation", Param: "ClientToken"}},
		Hidden:        []config.HiddenRule{{Service: "myservice", Param: "Tags", Operations: []string{"SampleOperation"}}},
		Appended:      []config.AppendRule{{Service: "myservice", Operation: "SampleOperation", Param: "Foo", Doc: "Must be unique."}},
	}
	opts := Options{OutputDir: filepath.Join(workDir, "out"), Emitter: NewHooks(rules, nil)}

	var stages []string
	results, err := Generate(svc, st, opts, func(s string) { stages = append(stages, s) })
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "sample_operation", results[0].Method)
	assert.Equal(t, 1, results[0].Version)
	assert.Equal(t, "writing manifest", stages[len(stages)-1])

	page, err := os.ReadFile(filepath.Join(opts.OutputDir, "myservice", "sample_operation.rst"))
	require.NoError(t, err)
	text := string(page)
	assert.Contains(t, text, "sample_operation\n================")
	assert.NotContains(t, text, "ClientToken=")
	assert.Contains(t, text, ":param ClientToken: Idempotency token.\n"+docs.DefaultAutoPopulatedDescription)
	assert.NotContains(t, text, "Tags=")
	assert.NotContains(t, text, ":param Tags:")
	assert.Contains(t, text, "Must be unique.")

	results, err = Generate(svc, st, Options{OutputDir: opts.OutputDir, Operations: []string{"Ping"}}, nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Ping", results[0].Operation)
	assert.Equal(t, 2, results[0].Version)

	results, err = Generate(svc, st, opts, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, results[0].Version)
	assert.Equal(t, 3, results[1].Version)

	latest, err := st.GetRender("myservice", "SampleOperation", 0)
	require.NoError(t, err)
	assert.Equal(t, text, latest.Body)

	m, err := ReadManifest(filepath.Join(opts.OutputDir, "myservice", manifestFile))
	require.NoError(t, err)
	assert.Equal(t, "AWS My Service (MySvc)", m.Title)
	assert.Equal(t, "2014-01-01", m.APIVersion)
	require.Len(t, m.Operations, 2)
	assert.Equal(t, "ping.rst", m.Operations[1].File)
	assert.Equal(t, indexFile, m.Index)

	index, err := os.ReadFile(filepath.Join(opts.OutputDir, "myservice", indexFile))
	require.NoError(t, err)
	assert.Contains(t, string(index), "AWS My Service (MySvc)\n")
	assert.Contains(t, string(index), "  sample_operation\n  ping\n")
}

func TestGenerateUnknownOperation(t *testing.T) {
	svc, err := model.Load(loadSample(t))
	require.NoError(t, err)

	_, err = Generate(svc, nil, Options{OutputDir: t.TempDir(), Operations: []string{"Nope"}}, nil)
	require.ErrorIs(t, err, docs.ErrUnknownOperation)
}

func TestGenerateFilter(t *testing.T) {
	svc, err := model.Load(loadSample(t))
	require.NoError(t, err)

	opts := Options{OutputDir: t.TempDir(), Filter: config.FilterConfig{Exclude: []string{"sample*"}}}
	results, err := Generate(svc, nil, opts, nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Ping", results[0].Operation)
	assert.Zero(t, results[0].Version)

	index, err := os.ReadFile(filepath.Join(opts.OutputDir, "myservice", indexFile))
	require.NoError(t, err)
	assert.Contains(t, string(index), "  ping\n")
	assert.NotContains(t, string(index), "sample_operation")
}

func TestGenerateNilModel(t *testing.T) {
	_, err := Generate(nil, nil, Options{OutputDir: t.TempDir()}, nil)
	require.Error(t, err)
}
