package schema

import (
	"encoding/json"
	"errors"

	"github.com/dmitrymomot/validkit/pkg/validator"
)

// Schema is a compiled Definition. It is immutable and safe for concurrent use.
type Schema struct {
	def         Definition
	fields      []compiledField
	messageFunc validator.MessageFunc
}

func (s *Schema) Name() string { return s.def.Name }

func (s *Schema) Description() string { return s.def.Description }

// Fields returns the top level field names in declaration order.
func (s *Schema) Fields() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.name
	}
	return names
}

// Definition returns the definition the schema was compiled from.
func (s *Schema) Definition() Definition { return s.def }

// Validate checks a decoded document. It returns nil when the document is
// valid, a *validator.Tree when it is not, and ErrNotAnObject when the
// document is not an object at all.
func (s *Schema) Validate(doc any) error {
	return s.ValidateWith(doc, s.messageFunc)
}

// ValidateWith is Validate with a per-call formatter for failures that have no
// per-rule message, e.g. a translator for the caller's language.
func (s *Schema) ValidateWith(doc any, fn validator.MessageFunc) error {
	obj, err := normalize(doc)
	if err != nil {
		return err
	}
	return validateFields(s.fields, obj, fn)
}

// normalize turns Go values such as structs into the generic form produced by
// JSON decoding so the same rules apply to both.
func normalize(doc any) (map[string]any, error) {
	if obj, ok := asObject(doc); ok {
		return obj, nil
	}
	if doc == nil {
		return nil, ErrNotAnObject
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, errors.Join(ErrNotAnObject, err)
	}
	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return nil, errors.Join(ErrNotAnObject, err)
	}
	obj, ok := generic.(map[string]any)
	if !ok {
		return nil, ErrNotAnObject
	}
	return obj, nil
}
