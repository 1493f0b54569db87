package section

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddAndGetSection(t *testing.T) {
	root := New("root")
	foo, err := root.AddSection("foo")
	require.NoError(t, err)

	got, err := root.GetSection("foo")
	require.NoError(t, err)
	assert.Same(t, foo, got)
	assert.Equal(t, []string{"root", "foo"}, foo.Path())
	assert.True(t, root.HasSection("foo"))
}

func TestDuplicateSection(t *testing.T) {
	root := New("root")
	_, err := root.AddSection("foo")
	require.NoError(t, err)

	_, err = root.AddSection("foo")
	require.ErrorIs(t, err, ErrDuplicateSection)
}

func TestMissingSection(t *testing.T) {
	root := New("root")
	_, err := root.GetSection("nope")
	require.ErrorIs(t, err, ErrSectionNotFound)
	require.ErrorIs(t, root.DeleteSection("nope"), ErrSectionNotFound)
}

func TestFlushOrder(t *testing.T) {
	root := New("root")
	root.Write("a")
	b, _ := root.AddSection("b")
	c, _ := root.AddSection("c")
	c.Write("c")
	b.Write("b")
	bb, _ := b.AddSection("bb")
	bb.Write("B")

	assert.Equal(t, "abBc", string(root.Flush()))
	assert.Equal(t, []string{"b", "c"}, root.Sections())
}

func TestDeleteSection(t *testing.T) {
	root := New("root")
	for _, name := range []string{"a", "b", "c"} {
		s, err := root.AddSection(name)
		require.NoError(t, err)
		s.Write(name)
	}
	require.NoError(t, root.DeleteSection("b"))
	assert.Equal(t, "ac", root.String())
	assert.Equal(t, []string{"a", "c"}, root.Sections())

	// the name is free again
	_, err := root.AddSection("b")
	require.NoError(t, err)
}

func TestRemoveLastLineAndClear(t *testing.T) {
	s := New("root")
	assert.False(t, s.RemoveLastLine())

	s.Writeln("one")
	s.Writeln("two")
	assert.True(t, s.RemoveLastLine())
	assert.Equal(t, []string{"one\n"}, s.Lines())

	s.ClearText()
	assert.Empty(t, s.String())
}

func TestClearSections(t *testing.T) {
	root := New("root")
	root.Write("head")
	a, _ := root.AddSection("a")
	a.Write("x")
	_, _ = root.AddSection("b")

	root.ClearSections()
	assert.Empty(t, root.Sections())
	assert.False(t, root.HasSection("a"))
	assert.Equal(t, "head", root.String())

	_, err := root.AddSection("a")
	require.NoError(t, err)
}

func TestIndentIsInherited(t *testing.T) {
	root := New("root")
	root.Indent()
	child, _ := root.AddSection("child")
	root.Dedent()

	child.NewLine()
	child.Write("x")
	assert.Equal(t, "\n    x", child.String())

	root.NewLine()
	assert.Equal(t, "\n", root.Lines()[0])
}

func TestStyle(t *testing.T) {
	s := New("root")
	s.Bold("[REQUIRED]")
	s.Bold("")
	assert.Equal(t, "**[REQUIRED]**", s.String())

	cb := New("code")
	cb.StartCodeblock()
	cb.Write("x = 1")
	cb.EndCodeblock()
	assert.Equal(t, "::\n\n    x = 1\n\n", cb.String())
}

func TestWriteDoc(t *testing.T) {
	s := New("root")
	s.Indent()
	s.WriteDoc("  first\n  second  ")
	assert.Equal(t, "first\n    second", s.String())
}
