package validator

import (
	"fmt"
	"strings"
)

// Kind identifies the rule that produced a Failure.
type Kind string

const (
	KindMinimum          Kind = "minimum"
	KindMaximum          Kind = "maximum"
	KindExclusiveMinimum Kind = "exclusive_minimum"
	KindExclusiveMaximum Kind = "exclusive_maximum"
	KindRange            Kind = "range"
	KindMultipleOf       Kind = "multiple_of"
	KindPattern          Kind = "pattern"
	KindMinLength        Kind = "min_length"
	KindMaxLength        Kind = "max_length"
	KindMinItems         Kind = "min_items"
	KindMaxItems         Kind = "max_items"
	KindMinProperties    Kind = "min_properties"
	KindMaxProperties    Kind = "max_properties"
	KindUniqueItems      Kind = "unique_items"
	KindEnumerate        Kind = "enumerate"
	KindCustom           Kind = "custom"
)

// Failure is the typed payload of a single failed check. It carries the rule
// parameters needed to rebuild the default message or to render a custom one.
type Failure interface {
	Kind() Kind
	// Params returns the named parameters of the failure, keyed the same way
	// as the placeholders of message templates.
	Params() map[string]any
	DefaultMessage() string
}

// MinimumFailure reports a value below an inclusive lower bound.
type MinimumFailure[T Numeric] struct {
	Limit  T
	Actual T
}

func NewMinimumFailure[T Numeric](limit, actual T) MinimumFailure[T] {
	return MinimumFailure[T]{Limit: limit, Actual: actual}
}

func (f MinimumFailure[T]) Kind() Kind { return KindMinimum }

func (f MinimumFailure[T]) Params() map[string]any {
	return map[string]any{"limit": f.Limit, "actual": f.Actual}
}

func (f MinimumFailure[T]) DefaultMessage() string {
	return fmt.Sprintf("the number must be `>= %v`.", f.Limit)
}

// MaximumFailure reports a value above an inclusive upper bound.
type MaximumFailure[T Numeric] struct {
	Limit  T
	Actual T
}

func NewMaximumFailure[T Numeric](limit, actual T) MaximumFailure[T] {
	return MaximumFailure[T]{Limit: limit, Actual: actual}
}

func (f MaximumFailure[T]) Kind() Kind { return KindMaximum }

func (f MaximumFailure[T]) Params() map[string]any {
	return map[string]any{"limit": f.Limit, "actual": f.Actual}
}

func (f MaximumFailure[T]) DefaultMessage() string {
	return fmt.Sprintf("the number must be `<= %v`.", f.Limit)
}

// ExclusiveMinimumFailure reports a value that is not strictly above the limit.
type ExclusiveMinimumFailure[T Numeric] struct {
	Limit  T
	Actual T
}

func NewExclusiveMinimumFailure[T Numeric](limit, actual T) ExclusiveMinimumFailure[T] {
	return ExclusiveMinimumFailure[T]{Limit: limit, Actual: actual}
}

func (f ExclusiveMinimumFailure[T]) Kind() Kind { return KindExclusiveMinimum }

func (f ExclusiveMinimumFailure[T]) Params() map[string]any {
	return map[string]any{"limit": f.Limit, "actual": f.Actual}
}

func (f ExclusiveMinimumFailure[T]) DefaultMessage() string {
	return fmt.Sprintf("the number must be `> %v`.", f.Limit)
}

// ExclusiveMaximumFailure reports a value that is not strictly below the limit.
type ExclusiveMaximumFailure[T Numeric] struct {
	Limit  T
	Actual T
}

func NewExclusiveMaximumFailure[T Numeric](limit, actual T) ExclusiveMaximumFailure[T] {
	return ExclusiveMaximumFailure[T]{Limit: limit, Actual: actual}
}

func (f ExclusiveMaximumFailure[T]) Kind() Kind { return KindExclusiveMaximum }

func (f ExclusiveMaximumFailure[T]) Params() map[string]any {
	return map[string]any{"limit": f.Limit, "actual": f.Actual}
}

func (f ExclusiveMaximumFailure[T]) DefaultMessage() string {
	return fmt.Sprintf("the number must be `< %v`.", f.Limit)
}

// RangeFailure reports a value outside a combined lower/upper bound.
type RangeFailure[T Numeric] struct {
	Lower  Bound[T]
	Upper  Bound[T]
	Actual T
}

func NewRangeFailure[T Numeric](lower, upper Bound[T], actual T) RangeFailure[T] {
	return RangeFailure[T]{Lower: lower, Upper: upper, Actual: actual}
}

func (f RangeFailure[T]) Kind() Kind { return KindRange }

func (f RangeFailure[T]) Params() map[string]any {
	params := map[string]any{"actual": f.Actual, "range": f.Expression()}
	if f.Lower.set {
		if f.Lower.exclusive {
			params["exclusive_minimum"] = f.Lower.value
		} else {
			params["minimum"] = f.Lower.value
		}
	}
	if f.Upper.set {
		if f.Upper.exclusive {
			params["exclusive_maximum"] = f.Upper.value
		} else {
			params["maximum"] = f.Upper.value
		}
	}
	return params
}

// Expression renders the accepted interval, e.g. "1 <= value < 10".
func (f RangeFailure[T]) Expression() string {
	var b strings.Builder
	if f.Lower.set {
		fmt.Fprintf(&b, "%v %s ", f.Lower.value, f.Lower.operator())
	}
	b.WriteString("value")
	if f.Upper.set {
		fmt.Fprintf(&b, " %s %v", f.Upper.operator(), f.Upper.value)
	}
	return b.String()
}

func (f RangeFailure[T]) DefaultMessage() string {
	return fmt.Sprintf("`%v` must be in `%s`, but not.", f.Actual, f.Expression())
}

// MultipleOfFailure reports a value that is not an integer multiple of the divisor.
type MultipleOfFailure[T Numeric] struct {
	Divisor T
	Actual  T
}

func NewMultipleOfFailure[T Numeric](divisor, actual T) MultipleOfFailure[T] {
	return MultipleOfFailure[T]{Divisor: divisor, Actual: actual}
}

func (f MultipleOfFailure[T]) Kind() Kind { return KindMultipleOf }

func (f MultipleOfFailure[T]) Params() map[string]any {
	return map[string]any{"divisor": f.Divisor, "actual": f.Actual}
}

func (f MultipleOfFailure[T]) DefaultMessage() string {
	return fmt.Sprintf("the value must be multiple of `%v`.", f.Divisor)
}

// PatternFailure reports a string without a match of the pattern.
// Only the pattern source is kept, never the candidate value.
type PatternFailure struct {
	Pattern string
}

func NewPatternFailure(pattern string) PatternFailure {
	return PatternFailure{Pattern: pattern}
}

func (f PatternFailure) Kind() Kind { return KindPattern }

func (f PatternFailure) Params() map[string]any {
	return map[string]any{"pattern": f.Pattern}
}

func (f PatternFailure) DefaultMessage() string {
	return fmt.Sprintf("the value must match the pattern of \"%s\".", f.Pattern)
}

// MinLengthFailure reports a string shorter than the limit.
type MinLengthFailure struct {
	Limit int
}

func NewMinLengthFailure(limit int) MinLengthFailure { return MinLengthFailure{Limit: limit} }

func (f MinLengthFailure) Kind() Kind { return KindMinLength }

func (f MinLengthFailure) Params() map[string]any { return map[string]any{"limit": f.Limit} }

func (f MinLengthFailure) DefaultMessage() string {
	return fmt.Sprintf("the length of the value must be `>= %d`.", f.Limit)
}

// MaxLengthFailure reports a string longer than the limit.
type MaxLengthFailure struct {
	Limit int
}

func NewMaxLengthFailure(limit int) MaxLengthFailure { return MaxLengthFailure{Limit: limit} }

func (f MaxLengthFailure) Kind() Kind { return KindMaxLength }

func (f MaxLengthFailure) Params() map[string]any { return map[string]any{"limit": f.Limit} }

func (f MaxLengthFailure) DefaultMessage() string {
	return fmt.Sprintf("the length of the value must be `<= %d`.", f.Limit)
}

// MinItemsFailure reports a sequence with fewer items than the limit.
type MinItemsFailure struct {
	Limit int
}

func NewMinItemsFailure(limit int) MinItemsFailure { return MinItemsFailure{Limit: limit} }

func (f MinItemsFailure) Kind() Kind { return KindMinItems }

func (f MinItemsFailure) Params() map[string]any { return map[string]any{"limit": f.Limit} }

func (f MinItemsFailure) DefaultMessage() string {
	return fmt.Sprintf("the length of the items must be `>= %d`.", f.Limit)
}

// MaxItemsFailure reports a sequence with more items than the limit.
type MaxItemsFailure struct {
	Limit int
}

func NewMaxItemsFailure(limit int) MaxItemsFailure { return MaxItemsFailure{Limit: limit} }

func (f MaxItemsFailure) Kind() Kind { return KindMaxItems }

func (f MaxItemsFailure) Params() map[string]any { return map[string]any{"limit": f.Limit} }

func (f MaxItemsFailure) DefaultMessage() string {
	return fmt.Sprintf("the length of the items must be `<= %d`.", f.Limit)
}

// MinPropertiesFailure reports a keyed object with fewer entries than the limit.
type MinPropertiesFailure struct {
	Limit int
}

func NewMinPropertiesFailure(limit int) MinPropertiesFailure {
	return MinPropertiesFailure{Limit: limit}
}

func (f MinPropertiesFailure) Kind() Kind { return KindMinProperties }

func (f MinPropertiesFailure) Params() map[string]any { return map[string]any{"limit": f.Limit} }

func (f MinPropertiesFailure) DefaultMessage() string {
	return fmt.Sprintf("the size of the properties must be `>= %d`.", f.Limit)
}

// MaxPropertiesFailure reports a keyed object with more entries than the limit.
type MaxPropertiesFailure struct {
	Limit int
}

func NewMaxPropertiesFailure(limit int) MaxPropertiesFailure {
	return MaxPropertiesFailure{Limit: limit}
}

func (f MaxPropertiesFailure) Kind() Kind { return KindMaxProperties }

func (f MaxPropertiesFailure) Params() map[string]any { return map[string]any{"limit": f.Limit} }

func (f MaxPropertiesFailure) DefaultMessage() string {
	return fmt.Sprintf("the size of the properties must be `<= %d`.", f.Limit)
}

// UniqueItemsFailure reports that at least two items of a sequence are equal.
// It deliberately does not say which ones.
type UniqueItemsFailure struct{}

func NewUniqueItemsFailure() UniqueItemsFailure { return UniqueItemsFailure{} }

func (f UniqueItemsFailure) Kind() Kind { return KindUniqueItems }

func (f UniqueItemsFailure) Params() map[string]any { return map[string]any{} }

func (f UniqueItemsFailure) DefaultMessage() string { return "the items must be unique." }

// EnumerateFailure reports a value outside the allowed set.
type EnumerateFailure struct {
	Allowed []any
}

func NewEnumerateFailure(allowed []any) EnumerateFailure {
	return EnumerateFailure{Allowed: allowed}
}

func (f EnumerateFailure) Kind() Kind { return KindEnumerate }

func (f EnumerateFailure) Params() map[string]any {
	return map[string]any{"allowed": f.AllowedList()}
}

// AllowedList renders the allowed values as a comma separated list.
func (f EnumerateFailure) AllowedList() string {
	parts := make([]string, len(f.Allowed))
	for i, v := range f.Allowed {
		parts[i] = fmt.Sprintf("%v", v)
	}
	return strings.Join(parts, ", ")
}

func (f EnumerateFailure) DefaultMessage() string {
	return fmt.Sprintf("the value must be in [%s].", f.AllowedList())
}

// CustomFailure carries the message of a user supplied check verbatim.
type CustomFailure struct {
	Message string
}

func NewCustomFailure(message string) CustomFailure { return CustomFailure{Message: message} }

func (f CustomFailure) Kind() Kind { return KindCustom }

func (f CustomFailure) Params() map[string]any { return map[string]any{"message": f.Message} }

func (f CustomFailure) DefaultMessage() string { return f.Message }
