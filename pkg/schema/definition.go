package schema

// Definition is the declarative form of an object schema as read from YAML or JSON.
type Definition struct {
	Name        string            `mapstructure:"name" json:"name" yaml:"name"`
	Description string            `mapstructure:"description" json:"description,omitempty" yaml:"description,omitempty"`
	Fields      []FieldDefinition `mapstructure:"fields" json:"fields" yaml:"fields"`
}

// FieldDefinition declares the rules of one object field.
//
// Shape lists the containers around the rule operand, outermost first:
// ["sequence", "optional"] validates a list whose items may be null.
// Rules apply to the innermost value, ContainerRules to the field value itself
// (the outer sequence), so a list can carry unique_items next to per-item rules.
// Object declares the fields of a nested object validated at the same shape.
type FieldDefinition struct {
	Name           string            `mapstructure:"name" json:"name" yaml:"name"`
	Shape          []string          `mapstructure:"shape" json:"shape,omitempty" yaml:"shape,omitempty"`
	ContainerRules []map[string]any  `mapstructure:"container_rules" json:"container_rules,omitempty" yaml:"container_rules,omitempty"`
	Rules          []map[string]any  `mapstructure:"rules" json:"rules,omitempty" yaml:"rules,omitempty"`
	Object         []FieldDefinition `mapstructure:"object" json:"object,omitempty" yaml:"object,omitempty"`
}

const (
	ShapeSequence = "sequence"
	ShapeOptional = "optional"
)

// RuleSpec is a single rule entry. Exactly one rule key must be set; Message
// optionally overrides the default message and may use "%{param}" placeholders.
type RuleSpec struct {
	Minimum          *float64   `mapstructure:"minimum"`
	Maximum          *float64   `mapstructure:"maximum"`
	ExclusiveMinimum *float64   `mapstructure:"exclusive_minimum"`
	ExclusiveMaximum *float64   `mapstructure:"exclusive_maximum"`
	Range            *RangeSpec `mapstructure:"range"`
	MultipleOf       *float64   `mapstructure:"multiple_of"`
	Pattern          *string    `mapstructure:"pattern"`
	MinLength        *int       `mapstructure:"min_length"`
	MaxLength        *int       `mapstructure:"max_length"`
	MinItems         *int       `mapstructure:"min_items"`
	MaxItems         *int       `mapstructure:"max_items"`
	UniqueItems      *bool      `mapstructure:"unique_items"`
	MinProperties    *int       `mapstructure:"min_properties"`
	MaxProperties    *int       `mapstructure:"max_properties"`
	Enumerate        []any      `mapstructure:"enumerate"`
	Custom           *string    `mapstructure:"custom"`
	Message          string     `mapstructure:"message"`
}

// RangeSpec holds at most one lower and one upper bound.
type RangeSpec struct {
	Minimum          *float64 `mapstructure:"minimum"`
	ExclusiveMinimum *float64 `mapstructure:"exclusive_minimum"`
	Maximum          *float64 `mapstructure:"maximum"`
	ExclusiveMaximum *float64 `mapstructure:"exclusive_maximum"`
}

// keys returns the names of the rule keys set on s.
func (s RuleSpec) keys() []string {
	var keys []string
	add := func(set bool, name string) {
		if set {
			keys = append(keys, name)
		}
	}
	add(s.Minimum != nil, "minimum")
	add(s.Maximum != nil, "maximum")
	add(s.ExclusiveMinimum != nil, "exclusive_minimum")
	add(s.ExclusiveMaximum != nil, "exclusive_maximum")
	add(s.Range != nil, "range")
	add(s.MultipleOf != nil, "multiple_of")
	add(s.Pattern != nil, "pattern")
	add(s.MinLength != nil, "min_length")
	add(s.MaxLength != nil, "max_length")
	add(s.MinItems != nil, "min_items")
	add(s.MaxItems != nil, "max_items")
	add(s.UniqueItems != nil, "unique_items")
	add(s.MinProperties != nil, "min_properties")
	add(s.MaxProperties != nil, "max_properties")
	add(s.Enumerate != nil, "enumerate")
	add(s.Custom != nil, "custom")
	return keys
}
