// Package validator is a JSON-Schema aligned validation engine built from
// small, typed rules and a set of generic combinators that lift them onto
// sequences, fixed arrays, optional values and any nesting of those.
//
// Every failed check produces a typed Failure (minimum, pattern, unique items,
// custom and so on) that is formatted into a message and recorded in a Tree.
// The Tree mirrors the shape of the validated value: object fields, array
// indices, or flat leaves for single-field "new-type" values. Validation never
// stops at the first failure; every rule on every field and item runs.
//
// # Architecture
//
// Each source file groups one concern:
//
//   - failures.go, message.go – failure payloads, default templates and the MessageFunc override hook
//   - numeric_rules.go, string_rules.go, collection_rules.go, choice_rules.go, custom_rules.go – rule constructors
//   - lift.go – Validator[T] and the Rules, All, Each, Optional and Nested combinators
//   - tree.go, builder.go, tree_encoding.go – the error tree, its builders and its JSON/YAML/generic forms
//   - pattern_cache.go – a bounded cache of compiled regular expressions
//
// Rules and validators hold no mutable state, so they can be declared once and
// shared between goroutines.
//
// # Usage
//
//	type Order struct {
//	    Quantity int
//	    Prices   []float64
//	    Coupon   *string
//	}
//
//	func (o Order) Validate() error {
//	    errs := validator.NewObjectErrors()
//	    errs.Add("quantity", validator.Check(o.Quantity,
//	        validator.Minimum(1),
//	        validator.Maximum(100),
//	    )...)
//	    errs.Add("prices", validator.Each(validator.Rules(
//	        validator.ExclusiveMinimum(0.0),
//	        validator.MultipleOf(0.01),
//	    ))(o.Prices)...)
//	    errs.Add("coupon", validator.Optional(validator.Rules(
//	        validator.Pattern[string](validator.MustPattern(`^[A-Z0-9]{8}$`)),
//	    ))(o.Coupon)...)
//	    return errs.Err()
//	}
//
// # Error Handling
//
// A failed Validate returns a *Tree. Use AsTree to get it back from an error,
// errors.Is(err, ErrValidationFailed) to detect it, and Value, MarshalJSON or
// MarshalYAML to serialize it. Error returns the compact JSON form.
package validator
