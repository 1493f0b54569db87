package types

// ShapeType is the type tag of a model shape.
type ShapeType string

const (
	TypeStructure ShapeType = "structure"
	TypeList      ShapeType = "list"
	TypeMap       ShapeType = "map"
	TypeString    ShapeType = "string"
	TypeCharacter ShapeType = "character"
	TypeBoolean   ShapeType = "boolean"
	TypeBlob      ShapeType = "blob"
	TypeTimestamp ShapeType = "timestamp"
	TypeInteger   ShapeType = "integer"
	TypeLong      ShapeType = "long"
	TypeFloat     ShapeType = "float"
	TypeDouble    ShapeType = "double"
)

// Valid reports whether t is one of the known shape types.
func (t ShapeType) Valid() bool {
	switch t {
	case TypeStructure, TypeList, TypeMap, TypeString, TypeCharacter, TypeBoolean,
		TypeBlob, TypeTimestamp, TypeInteger, TypeLong, TypeFloat, TypeDouble:
		return true
	}
	return false
}

// Composite reports whether shapes of type t contain other shapes.
func (t ShapeType) Composite() bool {
	return t == TypeStructure || t == TypeList || t == TypeMap
}

// Shape describes one API data type. Shapes may reference each other
// cyclically through members, list items and map values.
type Shape struct {
	Name          string    `json:"name"`
	Type          ShapeType `json:"type"`
	Documentation string    `json:"documentation,omitempty"`
	Members       []Member  `json:"members,omitempty"`
	Required      []string  `json:"required,omitempty"`
	Enum          []string  `json:"enum,omitempty"`
	Item          *Shape    `json:"-"`
	Key           *Shape    `json:"-"`
	Value         *Shape    `json:"-"`
}

// Member is a named reference from a structure to another shape.
type Member struct {
	Name string `json:"name"`
	// Documentation overrides the target shape's documentation when set.
	Documentation string `json:"documentation,omitempty"`
	Shape         *Shape `json:"-"`
}

// IsRequired reports whether the named member is required.
func (s *Shape) IsRequired(member string) bool {
	for _, r := range s.Required {
		if r == member {
			return true
		}
	}
	return false
}

// Metadata is the service-level model metadata.
type Metadata struct {
	ServiceFullName     string `json:"serviceFullName" yaml:"serviceFullName"`
	ServiceAbbreviation string `json:"serviceAbbreviation,omitempty" yaml:"serviceAbbreviation"`
	EndpointPrefix      string `json:"endpointPrefix,omitempty" yaml:"endpointPrefix"`
	ServiceID           string `json:"serviceId,omitempty" yaml:"serviceId"`
	APIVersion          string `json:"apiVersion,omitempty" yaml:"apiVersion"`
	Protocol            string `json:"protocol,omitempty" yaml:"protocol"`
}

// Operation is one API operation of a service.
type Operation struct {
	Name          string `json:"name"`
	Documentation string `json:"documentation,omitempty"`
	Input         *Shape `json:"-"`
	Output        *Shape `json:"-"`
}

// ServiceModel is a loaded service description.
type ServiceModel struct {
	// Name is the client name used in examples, e.g. "myservice".
	Name       string            `json:"name"`
	Metadata   Metadata          `json:"metadata"`
	Operations []*Operation      `json:"operations"`
	Shapes     map[string]*Shape `json:"-"`
}

// Operation returns the named operation or nil.
func (m *ServiceModel) Operation(name string) *Operation {
	for _, op := range m.Operations {
		if op.Name == name {
			return op
		}
	}
	return nil
}
