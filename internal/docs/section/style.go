package section

import "strings"

// Indentation is copied into children when they are created, so indenting a
// parent after adding a child does not affect the child.

func (s *Section) Indent() {
	s.indent++
}

func (s *Section) Dedent() {
	if s.indent > 0 {
		s.indent--
	}
}

func (s *Section) spaces() string {
	return strings.Repeat(" ", s.indent*indentWidth)
}

// NewLine starts a new line at the current indentation.
func (s *Section) NewLine() {
	s.Write("\n" + s.spaces())
}

func (s *Section) NewParagraph() {
	s.Write("\n\n" + s.spaces())
}

// Bold writes text as strong emphasis.
func (s *Section) Bold(text string) {
	if text == "" {
		return
	}
	s.Write("**" + text + "**")
}

func (s *Section) StartCodeblock() {
	s.Write("::")
	s.Indent()
	s.NewParagraph()
}

func (s *Section) EndCodeblock() {
	s.Dedent()
	s.NewParagraph()
}

// WriteDoc writes a multi-line documentation string, keeping the current
// indentation on every line.
func (s *Section) WriteDoc(doc string) {
	doc = strings.TrimSpace(doc)
	if doc == "" {
		return
	}
	for i, line := range strings.Split(doc, "\n") {
		if i > 0 {
			s.NewLine()
		}
		s.Write(strings.TrimSpace(line))
	}
}
