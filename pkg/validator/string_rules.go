package validator

import (
	"regexp"

	"github.com/rivo/uniseg"
)

// Pattern accepts strings that contain a match of re anywhere.
// Anchor the expression with ^ and $ to require a full match.
func Pattern[S ~string](re *regexp.Regexp) Rule[S] {
	if re == nil {
		panic("validator.Pattern: nil regular expression")
	}
	return NewRule(func(value S) Failure {
		if re.MatchString(string(value)) {
			return nil
		}
		return NewPatternFailure(re.String())
	})
}

// PatternBytes is Pattern for raw byte strings such as OS paths or environment
// values. Bytes that are not valid UTF-8 are matched one by one and never panic.
func PatternBytes[B ~[]byte](re *regexp.Regexp) Rule[B] {
	if re == nil {
		panic("validator.PatternBytes: nil regular expression")
	}
	return NewRule(func(value B) Failure {
		if re.Match([]byte(value)) {
			return nil
		}
		return NewPatternFailure(re.String())
	})
}

// MinLength accepts strings with at least limit user-perceived characters.
func MinLength[S ~string](limit int) Rule[S] {
	return NewRule(func(value S) Failure {
		if uniseg.GraphemeClusterCount(string(value)) >= limit {
			return nil
		}
		return NewMinLengthFailure(limit)
	})
}

// MaxLength accepts strings with at most limit user-perceived characters.
func MaxLength[S ~string](limit int) Rule[S] {
	return NewRule(func(value S) Failure {
		if uniseg.GraphemeClusterCount(string(value)) <= limit {
			return nil
		}
		return NewMaxLengthFailure(limit)
	})
}
