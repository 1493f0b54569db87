package model

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourorg/sdkdoc/pkg/types"
)

func TestLoadSampleModel(t *testing.T) {
	svc, err := Load(filepath.Join("..", "..", "testdata", "myservice.json"))
	require.NoError(t, err)

	assert.Equal(t, "myservice", svc.Name)
	assert.Equal(t, "AWS My Service", svc.Metadata.ServiceFullName)
	require.Len(t, svc.Operations, 2)
	assert.Equal(t, "SampleOperation", svc.Operations[0].Name)
	assert.Equal(t, "Ping", svc.Operations[1].Name)

	op := svc.Operation("SampleOperation")
	require.NotNil(t, op)
	in := op.Input
	require.NotNil(t, in)

	names := make([]string, 0, len(in.Members))
	for _, m := range in.Members {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"Foo", "ClientToken", "Bar", "Tags"}, names)
	assert.Equal(t, "This describes foo.", in.Members[0].Documentation)
	assert.True(t, in.IsRequired("Foo"))
	assert.False(t, in.IsRequired("Bar"))

	bar := svc.Shapes["Bar"]
	assert.Same(t, bar, bar.Members[2].Shape)
	assert.Equal(t, []string{"fast", "slow"}, svc.Shapes["Mode"].Enum)
	assert.Same(t, bar, svc.Shapes["ItemList"].Item)
	assert.Equal(t, types.TypeString, svc.Shapes["TagMap"].Value.Type)

	ping := svc.Operation("Ping")
	assert.Nil(t, ping.Input)
	assert.Nil(t, ping.Output)
}

func TestParseYAMLModel(t *testing.T) {
	doc := `
metadata:
  serviceFullName: Widget Service
operations:
  ListWidgets:
    output:
      shape: ListWidgetsOutput
shapes:
  ListWidgetsOutput:
    type: structure
    members:
      Zeta:
        shape: Name
      Alpha:
        shape: Name
  Name:
    type: string
`
	svc, err := Parse([]byte(doc), "widgets")
	require.NoError(t, err)
	assert.Equal(t, "widgets", svc.Name)
	out := svc.Operation("ListWidgets").Output
	require.Len(t, out.Members, 2)
	assert.Equal(t, "Zeta", out.Members[0].Name)
	assert.Equal(t, "Alpha", out.Members[1].Name)
}

func TestParseErrors(t *testing.T) {
	cases := map[string]struct {
		doc  string
		want error
	}{
		"missing name": {`{"metadata": {}}`, ErrInvalidModel},
		"bad type": {`{"metadata": {"serviceFullName": "x"}, "shapes": {"A": {"type": "decimal"}}}`, ErrInvalidModel},
		"unknown member shape": {`{"metadata": {"serviceFullName": "x"}, "shapes": {"A": {"type": "structure", "members": {"B": {"shape": "Nope"}}}}}`, ErrUnknownShape},
		"unknown input": {`{"metadata": {"serviceFullName": "x"}, "operations": {"Op": {"input": {"shape": "Nope"}}}}`, ErrUnknownShape},
		"list without member": {`{"metadata": {"serviceFullName": "x"}, "shapes": {"L": {"type": "list"}}}`, ErrInvalidModel},
		"member without shape": {`{"metadata": {"serviceFullName": "x"}, "shapes": {"A": {"type": "structure", "members": {"B": {"documentation": "no ref"}}}}}`, ErrInvalidModel},
		"list member without shape": {`{"metadata": {"serviceFullName": "x"}, "shapes": {"L": {"type": "list", "member": {}}}}`, ErrInvalidModel},
		"map without value": {`{"metadata": {"serviceFullName": "x"}, "shapes": {"M": {"type": "map", "key": {"shape": "M"}}}}`, ErrInvalidModel},
		"shapes not a mapping": {`{"metadata": {"serviceFullName": "x"}, "shapes": []}`, ErrInvalidModel},
		"not yaml": {`{`, ErrInvalidModel},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(tc.doc), "x")
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}

func TestQuery(t *testing.T) {
	path := filepath.Join("..", "..", "testdata", "myservice.json")

	got, err := Query(path, "metadata.serviceAbbreviation")
	require.NoError(t, err)
	assert.Equal(t, "Amazon MySvc", got)

	got, err = Query(path, "shapes.ItemList.member.shape")
	require.NoError(t, err)
	assert.Equal(t, "Bar", got)

	got, err = Query(path, "length(keys(operations))")
	require.NoError(t, err)
	assert.EqualValues(t, 2, got)

	_, err = Query(path, "[[")
	require.Error(t, err)
}
