package validator

import "errors"

type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Validatable is implemented by structured values that know how to validate
// themselves. A nil error means the value is valid; otherwise the error is a *Tree.
type Validatable interface {
	Validate() error
}

// Rule is a single declared constraint over values of type T.
// Rules are immutable and safe for concurrent use.
type Rule[T any] struct {
	check   func(T) Failure
	message MessageFunc
}

// NewRule wraps a check function into a Rule. The check returns nil on success.
func NewRule[T any](check func(value T) Failure) Rule[T] {
	return Rule[T]{check: check}
}

// WithMessage returns a copy of the rule that formats its failures with fn.
func (r Rule[T]) WithMessage(fn MessageFunc) Rule[T] {
	r.message = fn
	return r
}

// WithDefaultMessage installs fn only when the rule has no message override yet.
func (r Rule[T]) WithDefaultMessage(fn MessageFunc) Rule[T] {
	if r.message == nil {
		r.message = fn
	}
	return r
}

// Check runs the rule and returns the typed failure, or nil.
func (r Rule[T]) Check(value T) Failure {
	if r.check == nil {
		return nil
	}
	return r.check(value)
}

// Validate runs the rule and returns the formatted failure as Issues, or nil.
func (r Rule[T]) Validate(value T) Issues {
	f := r.Check(value)
	if f == nil {
		return nil
	}
	return Issues{{Message: Format(f, r.message)}}
}

// Check runs all rules against value in declaration order and collects every failure.
func Check[T any](value T, rules ...Rule[T]) Issues {
	var issues Issues
	for _, rule := range rules {
		issues = append(issues, rule.Validate(value)...)
	}
	return issues
}

// AsTree extracts the error tree from an error returned by a Validate method.
func AsTree(err error) (*Tree, bool) {
	if err == nil {
		return nil, false
	}

	var tree *Tree
	if errors.As(err, &tree) && tree != nil {
		return tree, true
	}
	return nil, false
}

func IsValidationError(err error) bool {
	_, ok := AsTree(err)
	return ok
}
