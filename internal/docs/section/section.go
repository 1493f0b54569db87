// Package section implements the named, ordered tree of text sections that
// documenters write into and event listeners edit before it is flushed.
package section

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

const indentWidth = 4

var (
	ErrSectionNotFound  = errors.New("section not found")
	ErrDuplicateSection = errors.New("duplicate section")
)

// Section is one node of a document. It owns its content and children.
type Section struct {
	name     string
	path     []string
	content  []string
	children *orderedmap.OrderedMap[string, *Section]
	indent   int
}

// New returns an empty root section.
func New(name string) *Section {
	return &Section{
		name:     name,
		path:     []string{name},
		children: orderedmap.New[string, *Section](),
	}
}

func (s *Section) Name() string { return s.name }

// Path returns the names from the root down to s.
func (s *Section) Path() []string {
	return append([]string(nil), s.path...)
}

// AddSection creates a new child section named name.
func (s *Section) AddSection(name string) (*Section, error) {
	if _, ok := s.children.Get(name); ok {
		return nil, fmt.Errorf("%w: %q in %s", ErrDuplicateSection, name, s.pathString())
	}
	child := &Section{
		name:     name,
		path:     append(s.Path(), name),
		children: orderedmap.New[string, *Section](),
		indent:   s.indent,
	}
	s.children.Set(name, child)
	return child, nil
}

// GetSection returns the child named name.
func (s *Section) GetSection(name string) (*Section, error) {
	child, ok := s.children.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q in %s", ErrSectionNotFound, name, s.pathString())
	}
	return child, nil
}

func (s *Section) HasSection(name string) bool {
	_, ok := s.children.Get(name)
	return ok
}

// Sections returns the child names in insertion order.
func (s *Section) Sections() []string {
	names := make([]string, 0, s.children.Len())
	for pair := s.children.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// DeleteSection removes the child named name and everything below it.
func (s *Section) DeleteSection(name string) error {
	if _, ok := s.children.Delete(name); !ok {
		return fmt.Errorf("%w: %q in %s", ErrSectionNotFound, name, s.pathString())
	}
	return nil
}

func (s *Section) ClearSections() {
	s.children = orderedmap.New[string, *Section]()
}

// Write appends text as one content entry.
func (s *Section) Write(text string) {
	s.content = append(s.content, text)
}

func (s *Section) Writeln(text string) {
	s.Write(text + "\n")
}

// RemoveLastLine drops the last content entry. It reports false when there
// was nothing to remove.
func (s *Section) RemoveLastLine() bool {
	if len(s.content) == 0 {
		return false
	}
	s.content = s.content[:len(s.content)-1]
	return true
}

func (s *Section) ClearText() {
	s.content = nil
}

// Lines returns the content entries of s only.
func (s *Section) Lines() []string {
	return append([]string(nil), s.content...)
}

// Flush renders s and all of its descendants depth first.
func (s *Section) Flush() []byte {
	var buf bytes.Buffer
	s.flushTo(&buf)
	return buf.Bytes()
}

func (s *Section) String() string {
	return string(s.Flush())
}

func (s *Section) flushTo(buf *bytes.Buffer) {
	for _, c := range s.content {
		buf.WriteString(c)
	}
	for pair := s.children.Oldest(); pair != nil; pair = pair.Next() {
		pair.Value.flushTo(buf)
	}
}

func (s *Section) pathString() string {
	return strings.Join(s.path, "/")
}
