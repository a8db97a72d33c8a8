package validator

import "slices"

// Enumerate accepts values equal to one of allowed.
func Enumerate[T comparable](allowed ...T) Rule[T] {
	allowed = slices.Clone(allowed)
	return NewRule(func(value T) Failure {
		if slices.Contains(allowed, value) {
			return nil
		}
		return NewEnumerateFailure(toAnySlice(allowed))
	})
}

// EnumerateFunc is Enumerate for values that are not comparable with ==.
func EnumerateFunc[T any](equal func(a, b T) bool, allowed ...T) Rule[T] {
	allowed = slices.Clone(allowed)
	return NewRule(func(value T) Failure {
		for _, candidate := range allowed {
			if equal(value, candidate) {
				return nil
			}
		}
		return NewEnumerateFailure(toAnySlice(allowed))
	})
}

func toAnySlice[T any](values []T) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
