package validator

import (
	"fmt"
	"regexp"
)

// MessageFunc turns a failure into the final message. It is the override hook a
// caller attaches to a rule instance with Rule.WithMessage.
type MessageFunc func(Failure) string

// Format renders f with fn, or with the failure's default template when fn is nil.
func Format(f Failure, fn MessageFunc) string {
	if fn == nil {
		return f.DefaultMessage()
	}
	return fn(f)
}

// Message adapts a function over a concrete failure type into a MessageFunc.
// Failures of any other type fall back to their default message.
//
//	rule := validator.Maximum(10).WithMessage(validator.Message(
//	    func(f validator.MaximumFailure[int]) string {
//	        return fmt.Sprintf("at most %d please, got %d", f.Limit, f.Actual)
//	    },
//	))
func Message[F Failure](fn func(F) string) MessageFunc {
	return func(f Failure) string {
		if typed, ok := f.(F); ok {
			return fn(typed)
		}
		return f.DefaultMessage()
	}
}

// FixedMessage returns a MessageFunc that ignores the payload.
func FixedMessage(msg string) MessageFunc {
	return func(Failure) string { return msg }
}

var placeholder = regexp.MustCompile(`%\{([^}]+)\}`)

// Template returns a MessageFunc that fills "%{name}" placeholders from the
// failure's Params. Unknown placeholders are kept as they are.
//
//	validator.Minimum(18).WithMessage(validator.Template("must be at least %{limit}, got %{actual}"))
func Template(tmpl string) MessageFunc {
	return func(f Failure) string {
		return Expand(tmpl, f.Params(), func(v any) string { return fmt.Sprint(v) })
	}
}

// Expand substitutes "%{name}" placeholders in tmpl with params rendered by render.
func Expand(tmpl string, params map[string]any, render func(any) string) string {
	return placeholder.ReplaceAllStringFunc(tmpl, func(match string) string {
		if v, ok := params[match[2:len(match)-1]]; ok {
			return render(v)
		}
		return match
	})
}
