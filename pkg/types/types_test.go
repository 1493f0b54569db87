package types

import "testing"

func TestShapeTypeComposite(t *testing.T) {
	for _, st := range []ShapeType{TypeStructure, TypeList, TypeMap} {
		if !st.Composite() {
			t.Fatalf("%s should be composite", st)
		}
	}
	for _, st := range []ShapeType{TypeString, TypeInteger, TypeTimestamp, TypeBlob} {
		if st.Composite() {
			t.Fatalf("%s should not be composite", st)
		}
	}
}

func TestIsRequired(t *testing.T) {
	s := &Shape{Name: "In", Type: TypeStructure, Required: []string{"Foo"}}
	if !s.IsRequired("Foo") || s.IsRequired("Bar") {
		t.Fatalf("unexpected required set %v", s.Required)
	}
}
