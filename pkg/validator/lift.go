package validator

import "slices"

// Validator validates a value of any shape and returns the issues to record
// at the value's path, or nil. Lifted validators are built by composing the
// combinators below, so Each(Optional(Rules(r))) validates a []*T.
type Validator[T any] func(value T) Issues

// Rules runs every rule in declaration order.
func Rules[T any](rules ...Rule[T]) Validator[T] {
	rules = slices.Clone(rules)
	return func(value T) Issues {
		return Check(value, rules...)
	}
}

// All concatenates the issues of several validators for the same value.
func All[T any](validators ...Validator[T]) Validator[T] {
	validators = slices.Clone(validators)
	return func(value T) Issues {
		var issues Issues
		for _, v := range validators {
			issues = appendIssues(issues, v(value)...)
		}
		return issues
	}
}

// Optional lifts v onto *T. A nil pointer is always valid; otherwise the
// pointee is validated at the same path.
func Optional[T any](v Validator[T]) Validator[*T] {
	return func(value *T) Issues {
		if value == nil {
			return nil
		}
		return v(*value)
	}
}

// Each lifts v onto []T. Every item is validated; failures are recorded under
// their index in an array tree. Fixed size arrays are validated through a
// slice of the array: Each(v)(arr[:]).
func Each[T any](v Validator[T]) Validator[[]T] {
	return func(items []T) Issues {
		errs := NewArrayErrors()
		for i, item := range items {
			errs.Add(i, v(item)...)
		}
		if t := errs.Tree(); t != nil {
			return Issues{{Tree: t}}
		}
		return nil
	}
}

// Nested validates a value through its own Validate method and attaches the
// resulting tree. A nil interface value is valid; wrap pointer types in
// Optional to skip nil pointers.
func Nested[T Validatable]() Validator[T] {
	return func(value T) Issues {
		if any(value) == nil {
			return nil
		}
		return IssuesOf(value.Validate())
	}
}
