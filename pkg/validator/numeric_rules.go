package validator

import (
	"math"
	"math/big"
	"reflect"
	"strconv"
)

// Minimum accepts values greater than or equal to limit.
func Minimum[T Numeric](limit T) Rule[T] {
	return NewRule(func(value T) Failure {
		if value >= limit {
			return nil
		}
		return NewMinimumFailure(limit, value)
	})
}

// Maximum accepts values less than or equal to limit.
func Maximum[T Numeric](limit T) Rule[T] {
	return NewRule(func(value T) Failure {
		if value <= limit {
			return nil
		}
		return NewMaximumFailure(limit, value)
	})
}

// ExclusiveMinimum accepts values strictly greater than limit.
func ExclusiveMinimum[T Numeric](limit T) Rule[T] {
	return NewRule(func(value T) Failure {
		if value > limit {
			return nil
		}
		return NewExclusiveMinimumFailure(limit, value)
	})
}

// ExclusiveMaximum accepts values strictly less than limit.
func ExclusiveMaximum[T Numeric](limit T) Rule[T] {
	return NewRule(func(value T) Failure {
		if value < limit {
			return nil
		}
		return NewExclusiveMaximumFailure(limit, value)
	})
}

// Bound is one end of a Range. The zero value is an open end.
type Bound[T Numeric] struct {
	value     T
	exclusive bool
	set       bool
}

func Inclusive[T Numeric](value T) Bound[T] {
	return Bound[T]{value: value, set: true}
}

func Exclusive[T Numeric](value T) Bound[T] {
	return Bound[T]{value: value, exclusive: true, set: true}
}

// Unbounded is an open range end.
func Unbounded[T Numeric]() Bound[T] {
	return Bound[T]{}
}

// Value returns the limit and whether the bound is set at all.
func (b Bound[T]) Value() (T, bool) { return b.value, b.set }

func (b Bound[T]) IsExclusive() bool { return b.exclusive }

func (b Bound[T]) operator() string {
	if b.exclusive {
		return "<"
	}
	return "<="
}

func (b Bound[T]) admitsAbove(value T) bool {
	switch {
	case !b.set:
		return true
	case b.exclusive:
		return value > b.value
	default:
		return value >= b.value
	}
}

func (b Bound[T]) admitsBelow(value T) bool {
	switch {
	case !b.set:
		return true
	case b.exclusive:
		return value < b.value
	default:
		return value <= b.value
	}
}

// Range combines a lower and an upper bound into one rule with a single message.
func Range[T Numeric](lower, upper Bound[T]) Rule[T] {
	return NewRule(func(value T) Failure {
		if lower.admitsAbove(value) && upper.admitsBelow(value) {
			return nil
		}
		return NewRangeFailure(lower, upper, value)
	})
}

// MultipleOf accepts values that are an exact integer multiple of divisor.
//
// Integers use the remainder. Floats are compared by their shortest decimal
// representation, so MultipleOf(0.1) accepts 0.3. A zero divisor accepts only 0,
// a negative divisor behaves like its absolute value, NaN and infinities never pass.
func MultipleOf[T Numeric](divisor T) Rule[T] {
	return NewRule(func(value T) Failure {
		if isMultipleOf(value, divisor) {
			return nil
		}
		return NewMultipleOfFailure(divisor, value)
	})
}

func isMultipleOf[T Numeric](value, divisor T) bool {
	v := reflect.ValueOf(value)
	d := reflect.ValueOf(divisor)

	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if d.Int() == 0 {
			return v.Int() == 0
		}
		return v.Int()%d.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if d.Uint() == 0 {
			return v.Uint() == 0
		}
		return v.Uint()%d.Uint() == 0
	case reflect.Float32:
		return isFloatMultipleOf(v.Float(), d.Float(), 32)
	case reflect.Float64:
		return isFloatMultipleOf(v.Float(), d.Float(), 64)
	}
	return false
}

func isFloatMultipleOf(value, divisor float64, bitSize int) bool {
	if math.IsNaN(value) || math.IsInf(value, 0) || math.IsNaN(divisor) || math.IsInf(divisor, 0) {
		return false
	}
	if divisor == 0 {
		return value == 0
	}

	v, ok := new(big.Rat).SetString(strconv.FormatFloat(value, 'g', -1, bitSize))
	if !ok {
		return false
	}
	d, ok := new(big.Rat).SetString(strconv.FormatFloat(divisor, 'g', -1, bitSize))
	if !ok {
		return false
	}
	return new(big.Rat).Quo(v, d).IsInt()
}
