package schema

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"slices"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cast"

	"github.com/dmitrymomot/validkit/pkg/validator"
)

// Option configures Compile.
type Option func(*options)

type options struct {
	registry    *Registry
	patterns    *validator.PatternCache
	messageFunc validator.MessageFunc
}

// WithRegistry sets the predicates available to the "custom" rule key.
func WithRegistry(r *Registry) Option {
	return func(o *options) {
		if r != nil {
			o.registry = r
		}
	}
}

// WithPatternCache compiles "pattern" rules through c instead of the package level cache.
func WithPatternCache(c *validator.PatternCache) Option {
	return func(o *options) {
		o.patterns = c
	}
}

// WithMessageFunc formats every failure that has no per-rule message.
func WithMessageFunc(fn validator.MessageFunc) Option {
	return func(o *options) {
		o.messageFunc = fn
	}
}

// check validates a decoded value. fallback formats failures of rules without
// their own message and may be nil.
type check func(value any, fallback validator.MessageFunc) validator.Issues

type operand int

const (
	operandAny operand = iota
	operandNumber
	operandString
	operandArray
	operandObject
)

var mismatchMessages = map[operand]string{
	operandNumber: "the value must be a number.",
	operandString: "the value must be a string.",
	operandArray:  "the value must be an array.",
	operandObject: "the value must be an object.",
}

func mismatch(op operand, fallback validator.MessageFunc) validator.Issue {
	return validator.Issue{Message: validator.Format(validator.NewCustomFailure(mismatchMessages[op]), fallback)}
}

type compiledRule struct {
	operand operand
	// run returns false when the value is not of the rule's operand type.
	run func(value any, fallback validator.MessageFunc) (validator.Issues, bool)
}

type compiledField struct {
	name  string
	check check
}

type compiler struct {
	opts options
	errs []error
}

func (c *compiler) fail(err error) {
	c.errs = append(c.errs, err)
}

// Compile checks a definition and turns it into a reusable Schema.
// All definition problems are reported at once, joined with ErrInvalidDefinition.
func Compile(def Definition, opts ...Option) (*Schema, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.registry == nil {
		o.registry = NewRegistry()
	}

	c := &compiler{opts: o}
	fields := c.fields("", def.Fields)
	if len(c.errs) > 0 {
		return nil, errors.Join(append([]error{ErrInvalidDefinition}, c.errs...)...)
	}

	return &Schema{
		def:         def,
		fields:      fields,
		messageFunc: o.messageFunc,
	}, nil
}

func (c *compiler) fields(prefix string, defs []FieldDefinition) []compiledField {
	out := make([]compiledField, 0, len(defs))
	seen := make(map[string]struct{}, len(defs))

	for i, fd := range defs {
		if fd.Name == "" {
			c.fail(fmt.Errorf("%w: %s", ErrEmptyFieldName, fieldPath(prefix, fmt.Sprintf("[%d]", i))))
			continue
		}
		path := fieldPath(prefix, fd.Name)
		if _, ok := seen[fd.Name]; ok {
			c.fail(fmt.Errorf("%w: %s", ErrDuplicateField, path))
			continue
		}
		seen[fd.Name] = struct{}{}
		out = append(out, compiledField{name: fd.Name, check: c.field(path, fd)})
	}
	return out
}

func fieldPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	if strings.HasPrefix(name, "[") {
		return prefix + name
	}
	return prefix + "." + name
}

func (c *compiler) field(path string, fd FieldDefinition) check {
	rules := c.rules(path, "rule", fd.Rules)

	var nested []compiledField
	if len(fd.Object) > 0 {
		nested = c.fields(path, fd.Object)
	}

	chk := scalarCheck(rules, nested)
	for i := len(fd.Shape) - 1; i >= 0; i-- {
		switch strings.ToLower(fd.Shape[i]) {
		case ShapeSequence:
			chk = sequenceCheck(chk)
		case ShapeOptional:
			chk = optionalCheck(chk)
		default:
			c.fail(fmt.Errorf("%w %q at field %s", ErrUnknownShape, fd.Shape[i], path))
		}
	}

	if len(fd.ContainerRules) == 0 {
		return chk
	}
	container := scalarCheck(c.rules(path, "container rule", fd.ContainerRules), nil)
	if len(fd.Shape) > 0 && strings.EqualFold(fd.Shape[0], ShapeOptional) {
		container = optionalCheck(container)
	}
	return func(value any, fallback validator.MessageFunc) validator.Issues {
		issues := container(value, fallback)
		for _, issue := range chk(value, fallback) {
			// a type mismatch is already reported by the container rules
			if !issue.IsNested() && slices.Contains(issues, issue) {
				continue
			}
			issues = append(issues, issue)
		}
		return issues
	}
}

func (c *compiler) rules(path, label string, raws []map[string]any) []compiledRule {
	var rules []compiledRule
	for i, raw := range raws {
		r, err := c.rule(raw)
		if err != nil {
			c.fail(fmt.Errorf("field %s %s #%d: %w", path, label, i+1, err))
			continue
		}
		if r != nil {
			rules = append(rules, *r)
		}
	}
	return rules
}

func (c *compiler) rule(raw map[string]any) (*compiledRule, error) {
	var spec RuleSpec
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      &spec,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, errors.Join(ErrInvalidRule, err)
	}

	keys := spec.keys()
	if len(keys) != 1 {
		return nil, fmt.Errorf("%w: expected exactly one rule key, got %d [%s]", ErrInvalidRule, len(keys), strings.Join(keys, ", "))
	}

	var msg validator.MessageFunc
	if spec.Message != "" {
		msg = validator.Template(spec.Message)
	}

	switch keys[0] {
	case "minimum":
		return numberRule(validator.Minimum(*spec.Minimum), msg), nil
	case "maximum":
		return numberRule(validator.Maximum(*spec.Maximum), msg), nil
	case "exclusive_minimum":
		return numberRule(validator.ExclusiveMinimum(*spec.ExclusiveMinimum), msg), nil
	case "exclusive_maximum":
		return numberRule(validator.ExclusiveMaximum(*spec.ExclusiveMaximum), msg), nil
	case "range":
		lower, upper, err := rangeBounds(*spec.Range)
		if err != nil {
			return nil, err
		}
		return numberRule(validator.Range(lower, upper), msg), nil
	case "multiple_of":
		return numberRule(validator.MultipleOf(*spec.MultipleOf), msg), nil
	case "pattern":
		re, err := c.pattern(*spec.Pattern)
		if err != nil {
			return nil, errors.Join(ErrInvalidRule, err)
		}
		return stringRule(validator.Pattern[string](re), msg), nil
	case "min_length":
		if err := nonNegative("min_length", *spec.MinLength); err != nil {
			return nil, err
		}
		return stringRule(validator.MinLength[string](*spec.MinLength), msg), nil
	case "max_length":
		if err := nonNegative("max_length", *spec.MaxLength); err != nil {
			return nil, err
		}
		return stringRule(validator.MaxLength[string](*spec.MaxLength), msg), nil
	case "min_items":
		if err := nonNegative("min_items", *spec.MinItems); err != nil {
			return nil, err
		}
		return arrayRule(validator.MinItems[any](*spec.MinItems), msg), nil
	case "max_items":
		if err := nonNegative("max_items", *spec.MaxItems); err != nil {
			return nil, err
		}
		return arrayRule(validator.MaxItems[any](*spec.MaxItems), msg), nil
	case "unique_items":
		if !*spec.UniqueItems {
			return nil, nil
		}
		return typedRule(operandArray, asCanonicalSequence, validator.UniqueItemsHashed[any](), msg), nil
	case "min_properties":
		if err := nonNegative("min_properties", *spec.MinProperties); err != nil {
			return nil, err
		}
		return objectRule(validator.MinProperties[string, any](*spec.MinProperties), msg), nil
	case "max_properties":
		if err := nonNegative("max_properties", *spec.MaxProperties); err != nil {
			return nil, err
		}
		return objectRule(validator.MaxProperties[string, any](*spec.MaxProperties), msg), nil
	case "enumerate":
		if len(spec.Enumerate) == 0 {
			return nil, fmt.Errorf("%w: enumerate needs at least one value", ErrInvalidRule)
		}
		return anyRule(validator.EnumerateFunc(sameValue, spec.Enumerate...), msg), nil
	case "custom":
		p, ok := c.opts.registry.Lookup(*spec.Custom)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownPredicate, *spec.Custom)
		}
		return anyRule(validator.Custom[any](p), msg), nil
	}
	return nil, fmt.Errorf("%w: unsupported key %q", ErrInvalidRule, keys[0])
}

func (c *compiler) pattern(src string) (*regexp.Regexp, error) {
	if c.opts.patterns != nil {
		return c.opts.patterns.Compile(src)
	}
	return validator.CompilePattern(src)
}

func nonNegative(key string, n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %s must not be negative", ErrInvalidRule, key)
	}
	return nil
}

func rangeBounds(spec RangeSpec) (validator.Bound[float64], validator.Bound[float64], error) {
	lower, upper := validator.Unbounded[float64](), validator.Unbounded[float64]()

	switch {
	case spec.Minimum != nil && spec.ExclusiveMinimum != nil:
		return lower, upper, fmt.Errorf("%w: range has both minimum and exclusive_minimum", ErrInvalidRule)
	case spec.Minimum != nil:
		lower = validator.Inclusive(*spec.Minimum)
	case spec.ExclusiveMinimum != nil:
		lower = validator.Exclusive(*spec.ExclusiveMinimum)
	}

	switch {
	case spec.Maximum != nil && spec.ExclusiveMaximum != nil:
		return lower, upper, fmt.Errorf("%w: range has both maximum and exclusive_maximum", ErrInvalidRule)
	case spec.Maximum != nil:
		upper = validator.Inclusive(*spec.Maximum)
	case spec.ExclusiveMaximum != nil:
		upper = validator.Exclusive(*spec.ExclusiveMaximum)
	}

	_, hasLower := lower.Value()
	_, hasUpper := upper.Value()
	if !hasLower && !hasUpper {
		return lower, upper, fmt.Errorf("%w: range needs at least one bound", ErrInvalidRule)
	}
	return lower, upper, nil
}

func typedRule[T any](op operand, coerce func(any) (T, bool), rule validator.Rule[T], msg validator.MessageFunc) *compiledRule {
	if msg != nil {
		rule = rule.WithMessage(msg)
	}
	return &compiledRule{
		operand: op,
		run: func(value any, fallback validator.MessageFunc) (validator.Issues, bool) {
			v, ok := coerce(value)
			if !ok {
				return nil, false
			}
			return rule.WithDefaultMessage(fallback).Validate(v), true
		},
	}
}

func numberRule(rule validator.Rule[float64], msg validator.MessageFunc) *compiledRule {
	return typedRule(operandNumber, asNumber, rule, msg)
}

func stringRule(rule validator.Rule[string], msg validator.MessageFunc) *compiledRule {
	return typedRule(operandString, asString, rule, msg)
}

func arrayRule(rule validator.Rule[[]any], msg validator.MessageFunc) *compiledRule {
	return typedRule(operandArray, asSequence, rule, msg)
}

func objectRule(rule validator.Rule[map[string]any], msg validator.MessageFunc) *compiledRule {
	return typedRule(operandObject, asObject, rule, msg)
}

func anyRule(rule validator.Rule[any], msg validator.MessageFunc) *compiledRule {
	return typedRule(operandAny, func(v any) (any, bool) { return v, true }, rule, msg)
}

// scalarCheck runs rules in declaration order. A type mismatch is reported
// once per operand type, however many rules share it.
func scalarCheck(rules []compiledRule, nested []compiledField) check {
	return func(value any, fallback validator.MessageFunc) validator.Issues {
		var issues validator.Issues
		var reported map[operand]bool

		for _, r := range rules {
			found, ok := r.run(value, fallback)
			if ok {
				issues = append(issues, found...)
				continue
			}
			if reported[r.operand] {
				continue
			}
			if reported == nil {
				reported = make(map[operand]bool)
			}
			reported[r.operand] = true
			issues = append(issues, mismatch(r.operand, fallback))
		}

		if nested != nil {
			issues = append(issues, objectCheck(nested, value, fallback)...)
		}
		return issues
	}
}

func objectCheck(fields []compiledField, value any, fallback validator.MessageFunc) validator.Issues {
	obj, ok := asObject(value)
	if !ok {
		return validator.Issues{mismatch(operandObject, fallback)}
	}
	return validator.IssuesOf(validateFields(fields, obj, fallback))
}

// validateFields skips fields that are absent from obj.
func validateFields(fields []compiledField, obj map[string]any, fallback validator.MessageFunc) error {
	errs := validator.NewObjectErrors()
	for _, f := range fields {
		v, ok := obj[f.name]
		if !ok {
			continue
		}
		errs.Add(f.name, f.check(v, fallback)...)
	}
	return errs.Err()
}

func sequenceCheck(inner check) check {
	return func(value any, fallback validator.MessageFunc) validator.Issues {
		items, ok := asSequence(value)
		if !ok {
			return validator.Issues{mismatch(operandArray, fallback)}
		}
		return validator.Each(func(item any) validator.Issues {
			return inner(item, fallback)
		})(items)
	}
}

func optionalCheck(inner check) check {
	return func(value any, fallback validator.MessageFunc) validator.Issues {
		if value == nil {
			return nil
		}
		return inner(value, fallback)
	}
}

func asNumber(v any) (float64, bool) {
	switch v.(type) {
	case nil, bool, string, []byte:
		return 0, false
	}
	f, err := cast.ToFloat64E(v)
	return f, err == nil
}

func asString(v any) (string, bool) {
	if s, ok := v.(string); ok {
		return s, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.String {
		return rv.String(), true
	}
	return "", false
}

func asSequence(v any) ([]any, bool) {
	if items, ok := v.([]any); ok {
		return items, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return items, true
}

func asObject(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[cast.ToString(k)] = val
		}
		return out, true
	}
	return nil, false
}

// asCanonicalSequence is asSequence with every number, however deeply
// nested, converted to float64, so 1 and 1.0 hash and compare as equal.
func asCanonicalSequence(v any) ([]any, bool) {
	items, ok := asSequence(v)
	if !ok {
		return nil, false
	}
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = canonical(item)
	}
	return out, true
}

func canonical(v any) any {
	if f, ok := asNumber(v); ok {
		return f
	}
	if m, ok := asObject(v); ok {
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[k] = canonical(val)
		}
		return out
	}
	if items, ok := asCanonicalSequence(v); ok {
		return items
	}
	return v
}

// sameValue treats numbers of different Go types as equal when their values are.
func sameValue(a, b any) bool {
	if fa, ok := asNumber(a); ok {
		fb, ok := asNumber(b)
		return ok && fa == fb
	}
	return reflect.DeepEqual(a, b)
}
