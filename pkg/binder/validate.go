package binder

import (
	"reflect"

	"github.com/dmitrymomot/validkit/pkg/validator"
)

func checkTarget(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return ErrInvalidTarget
	}
	return nil
}

// validate runs Validate on v, or on the value v points to, when either
// implements validator.Validatable.
func validate(v any) error {
	if val, ok := v.(validator.Validatable); ok {
		return val.Validate()
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer && !rv.IsNil() {
		if val, ok := rv.Elem().Interface().(validator.Validatable); ok {
			return val.Validate()
		}
	}
	return nil
}
