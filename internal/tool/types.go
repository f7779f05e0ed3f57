package tool

// Type represents JSON Schema types.
type Type string

const (
	TypeString  Type = "string"
	TypeNumber  Type = "number"
	TypeInteger Type = "integer"
	TypeBoolean Type = "boolean"
	TypeArray   Type = "array"
	TypeObject  Type = "object"
)

// Schema represents a JSON Schema for tool parameters.
type Schema struct {
	Type        Type               `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Required    []string           `json:"required,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Enum        []string           `json:"enum,omitempty"`
}

// Declaration declares a tool's function signature for the LLM.
type Declaration struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Parameters  *Schema `json:"parameters,omitempty"`
}

// RequiresProperty reports whether the declaration's parameters mark name as
// required and declare it with the given type.
func (d Declaration) RequiresProperty(name string, typ Type) bool {
	if d.Parameters == nil || d.Parameters.Type != TypeObject {
		return false
	}
	prop, ok := d.Parameters.Properties[name]
	if !ok || prop == nil || prop.Type != typ {
		return false
	}
	for _, r := range d.Parameters.Required {
		if r == name {
			return true
		}
	}
	return false
}
