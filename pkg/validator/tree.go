package validator

import (
	"slices"
	"strconv"
	"strings"
)

// Locator is one path segment of a Tree: an object field name or an array index.
type Locator struct {
	name    string
	index   int
	isIndex bool
}

// Name addresses an object field.
func Name(name string) Locator { return Locator{name: name} }

// Index addresses a sequence position.
func Index(i int) Locator { return Locator{index: i, isIndex: true} }

func (l Locator) IsIndex() bool { return l.isIndex }

// Position returns the sequence position of an Index locator, or -1.
func (l Locator) Position() int {
	if !l.isIndex {
		return -1
	}
	return l.index
}

// Key returns the field name, or the decimal index for array positions.
func (l Locator) Key() string {
	if l.isIndex {
		return strconv.Itoa(l.index)
	}
	return l.name
}

func (l Locator) String() string {
	if l.isIndex {
		return "[" + strconv.Itoa(l.index) + "]"
	}
	return l.name
}

// FormatPath renders a path as "items[2].price".
func FormatPath(path []Locator) string {
	var b strings.Builder
	for i, l := range path {
		if !l.isIndex && i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(l.String())
	}
	return b.String()
}

// Issue is one entry recorded at a path: either a formatted message or a nested tree.
type Issue struct {
	Message string
	Tree    *Tree
}

// IsNested reports whether the issue holds a nested tree.
func (i Issue) IsNested() bool { return i.Tree != nil }

// Issues is the ordered list of entries recorded at one path.
type Issues []Issue

// Messages returns the messages recorded directly at this path, skipping nested trees.
func (is Issues) Messages() []string {
	var out []string
	for _, i := range is {
		if i.Tree == nil {
			out = append(out, i.Message)
		}
	}
	return out
}

// appendIssues appends src to dst. Nested leaf trees are spliced in since a
// list inside a list adds no information; empty trees are dropped.
func appendIssues(dst Issues, src ...Issue) Issues {
	for _, i := range src {
		if i.Tree == nil {
			dst = append(dst, i)
			continue
		}
		if i.Tree.isEmpty() {
			continue
		}
		if i.Tree.shape == ShapeLeaves {
			dst = append(dst, i.Tree.leaves...)
			continue
		}
		dst = append(dst, i)
	}
	return dst
}

// Shape is the kind of a Tree node.
type Shape int

const (
	// ShapeLeaves is a flat list of issues, used for new-type values.
	ShapeLeaves Shape = iota
	// ShapeObject maps field names to issues.
	ShapeObject
	// ShapeArray maps sequence indices to issues.
	ShapeArray
)

func (s Shape) String() string {
	switch s {
	case ShapeObject:
		return "object"
	case ShapeArray:
		return "array"
	default:
		return "leaves"
	}
}

type treeEntry struct {
	loc    Locator
	issues Issues
}

// Tree is the aggregated result of a failed validation. Its shape mirrors the
// validated value. A Tree is never empty and never changes once returned;
// success is reported as a nil error instead.
type Tree struct {
	shape   Shape
	entries []treeEntry
	leaves  Issues
}

func (t *Tree) isEmpty() bool {
	return t == nil || (len(t.entries) == 0 && len(t.leaves) == 0)
}

func (t *Tree) Shape() Shape { return t.shape }

// Error returns the compact JSON form of the tree.
func (t *Tree) Error() string {
	b, err := t.MarshalJSON()
	if err != nil {
		return ErrValidationFailed.Error()
	}
	return string(b)
}

// Is makes errors.Is(tree, ErrValidationFailed) hold.
func (t *Tree) Is(target error) bool {
	return target == ErrValidationFailed
}

// Fields returns object field names in insertion order.
func (t *Tree) Fields() []string {
	if t.shape != ShapeObject {
		return nil
	}
	names := make([]string, len(t.entries))
	for i, e := range t.entries {
		names[i] = e.loc.name
	}
	return names
}

// Indices returns failing array positions in insertion order.
func (t *Tree) Indices() []int {
	if t.shape != ShapeArray {
		return nil
	}
	idx := make([]int, len(t.entries))
	for i, e := range t.entries {
		idx[i] = e.loc.index
	}
	return idx
}

// Field returns the issues recorded for an object field.
func (t *Tree) Field(name string) Issues {
	issues, _ := t.at(Name(name))
	return issues
}

// Item returns the issues recorded for an array position.
func (t *Tree) Item(index int) Issues {
	issues, _ := t.at(Index(index))
	return issues
}

// Leaves returns the flat issues of a ShapeLeaves tree.
func (t *Tree) Leaves() Issues {
	return slices.Clone(t.leaves)
}

// Has reports whether an object field failed.
func (t *Tree) Has(name string) bool {
	_, ok := t.at(Name(name))
	return ok
}

// Get returns the messages recorded directly on an object field.
func (t *Tree) Get(name string) []string {
	return t.Field(name).Messages()
}

func (t *Tree) at(loc Locator) (Issues, bool) {
	if t == nil {
		return nil, false
	}
	for _, e := range t.entries {
		if e.loc == loc {
			return slices.Clone(e.issues), true
		}
	}
	return nil, false
}

// Lookup follows path through nested trees and returns the issues found there.
// An empty path returns the root leaves.
func (t *Tree) Lookup(path ...Locator) (Issues, bool) {
	if t == nil {
		return nil, false
	}
	if len(path) == 0 {
		if t.shape == ShapeLeaves {
			return t.Leaves(), true
		}
		return nil, false
	}

	issues, ok := t.at(path[0])
	if !ok {
		return nil, false
	}
	if len(path) == 1 {
		return issues, true
	}
	for _, i := range issues {
		if i.Tree == nil {
			continue
		}
		if found, ok := i.Tree.Lookup(path[1:]...); ok {
			return found, true
		}
	}
	return nil, false
}

// Walk calls fn for every message in depth-first insertion order with the
// path leading to it. Each call gets its own copy of the path.
func (t *Tree) Walk(fn func(path []Locator, message string)) {
	if t == nil {
		return
	}
	t.walk(nil, fn)
}

func (t *Tree) walk(prefix []Locator, fn func([]Locator, string)) {
	if t.shape == ShapeLeaves {
		walkIssues(prefix, t.leaves, fn)
		return
	}
	for _, e := range t.entries {
		walkIssues(append(slices.Clone(prefix), e.loc), e.issues, fn)
	}
}

func walkIssues(path []Locator, issues Issues, fn func([]Locator, string)) {
	for _, i := range issues {
		if i.Tree != nil {
			i.Tree.walk(path, fn)
			continue
		}
		fn(slices.Clone(path), i.Message)
	}
}

// Count returns the number of messages in the whole tree.
func (t *Tree) Count() int {
	n := 0
	t.Walk(func([]Locator, string) { n++ })
	return n
}
