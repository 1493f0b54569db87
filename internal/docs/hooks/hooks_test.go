package hooks

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yourorg/sdkdoc/internal/docs/section"
)

func TestMatch(t *testing.T) {
	event := "docs.request-params.myservice.SampleOperation.complete-section"
	cases := []struct {
		pattern string
		want    bool
	}{
		{"docs.request-params", true},
		{"docs", true},
		{"docs.*.myservice.SampleOperation.complete-section", true},
		{"docs.*.*.*.complete-section", true},
		{"docs.request-example", false},
		{"docs.request-params.other", false},
		{event + ".extra", false},
		{event, true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Match(tc.pattern, event), tc.pattern)
	}
}

func TestEmitOrder(t *testing.T) {
	h := New(nil)
	var calls []string
	h.Register("docs.request-params", func(event string, s *section.Section) {
		calls = append(calls, "first:"+s.Name())
	})
	h.Register("docs.response-params", func(event string, s *section.Section) {
		calls = append(calls, "never")
	})
	h.Register("docs.*.svc", func(event string, s *section.Section) {
		calls = append(calls, "second:"+event)
	})
	h.Register("docs", nil)

	h.Emit("docs.request-params.svc.Op.Foo", section.New("Foo"))
	assert.Equal(t, []string{"first:Foo", "second:docs.request-params.svc.Op.Foo"}, calls)
}

func TestRecorderForwards(t *testing.T) {
	h := New(nil)
	seen := 0
	h.Register("docs", func(string, *section.Section) { seen++ })

	r := &Recorder{Next: h}
	root := section.New("root")
	r.Emit("docs.a", root)
	r.Emit("docs.b", root)

	assert.Equal(t, []string{"docs.a", "docs.b"}, r.Events())
	assert.Same(t, root, r.Emissions[1].Section)
	assert.Equal(t, 2, seen)
}
