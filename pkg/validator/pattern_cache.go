package validator

import (
	"errors"
	"fmt"
	"regexp"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultPatternCacheSize bounds the package level cache used by CompilePattern.
const DefaultPatternCacheSize = 256

// PatternCache keeps compiled regular expressions keyed by their source.
// Compiled expressions are read-only, so cached values are shared freely
// between goroutines.
type PatternCache struct {
	entries *lru.Cache[string, *regexp.Regexp]
}

// NewPatternCache creates a cache holding at most size expressions.
func NewPatternCache(size int) (*PatternCache, error) {
	if size <= 0 {
		return nil, ErrInvalidCacheSize
	}
	entries, err := lru.New[string, *regexp.Regexp](size)
	if err != nil {
		return nil, errors.Join(ErrInvalidCacheSize, err)
	}
	return &PatternCache{entries: entries}, nil
}

// Compile returns the cached expression for src, compiling it on first use.
func (c *PatternCache) Compile(src string) (*regexp.Regexp, error) {
	if re, ok := c.entries.Get(src); ok {
		return re, nil
	}

	re, err := regexp.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidPattern, src, err)
	}
	c.entries.Add(src, re)
	return re, nil
}

// Len reports how many expressions are cached.
func (c *PatternCache) Len() int {
	return c.entries.Len()
}

var defaultPatterns = func() *PatternCache {
	c, err := NewPatternCache(DefaultPatternCacheSize)
	if err != nil {
		panic(err)
	}
	return c
}()

// CompilePattern compiles src through the package level cache.
func CompilePattern(src string) (*regexp.Regexp, error) {
	return defaultPatterns.Compile(src)
}

// MustPattern is like CompilePattern but panics on an invalid expression.
// Use it for patterns fixed at declaration time.
func MustPattern(src string) *regexp.Regexp {
	re, err := CompilePattern(src)
	if err != nil {
		panic(err)
	}
	return re
}
