package filter

import (
	"testing"

	"github.com/yourorg/sdkdoc/pkg/types"
)

func names(ops []*types.Operation) []string {
	out := make([]string, 0, len(ops))
	for _, op := range ops {
		out = append(out, op.Name)
	}
	return out
}

func TestApply(t *testing.T) {
	ops := []*types.Operation{
		{Name: "ListWidgets"},
		{Name: "GetWidget"},
		{Name: "DeleteWidget"},
		nil,
		{Name: "ListGadgets"},
	}

	cases := []struct {
		name string
		cfg  FilterConfig
		want []string
	}{
		{"empty selects all", FilterConfig{}, []string{"ListWidgets", "GetWidget", "DeleteWidget", "ListGadgets"}},
		{"include glob", FilterConfig{Include: []string{"List*"}}, []string{"ListWidgets", "ListGadgets"}},
		{"exclude wins", FilterConfig{Include: []string{"*Widget*"}, Exclude: []string{"delete*"}}, []string{"ListWidgets", "GetWidget"}},
		{"exact case-insensitive", FilterConfig{Include: []string{"getwidget"}}, []string{"GetWidget"}},
		{"blank pattern ignored", FilterConfig{Exclude: []string{"  "}}, []string{"ListWidgets", "GetWidget", "DeleteWidget", "ListGadgets"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := names(Apply(ops, tc.cfg))
			if len(got) != len(tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("got %v, want %v", got, tc.want)
				}
			}
		})
	}
}

func TestMatchMalformedPattern(t *testing.T) {
	if !Match("[Op", "[op") {
		t.Fatalf("malformed pattern should fall back to literal comparison")
	}
	if Match("[Op", "Op") {
		t.Fatalf("malformed pattern should not match other names")
	}
}
