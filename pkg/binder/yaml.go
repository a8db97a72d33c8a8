package binder

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// DecodeYAML strictly decodes a single YAML document from r into v.
// Unknown struct fields are rejected.
func DecodeYAML(r io.Reader, v any) error {
	if err := checkTarget(v); err != nil {
		return err
	}

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	if err := decoder.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: %w", ErrFailedToParseYAML, ErrEmptyBody)
		}
		return fmt.Errorf("%w: %v", ErrFailedToParseYAML, err)
	}

	var extra yaml.Node
	if err := decoder.Decode(&extra); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: unexpected data after YAML document", ErrFailedToParseYAML)
	}
	return nil
}

// YAML decodes r into v with DecodeYAML and then validates v when it
// implements validator.Validatable.
func YAML(r io.Reader, v any) error {
	if err := DecodeYAML(r, v); err != nil {
		return err
	}
	return validate(v)
}
