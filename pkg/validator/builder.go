package validator

import "slices"

// collector accumulates issues per locator while a value is being validated.
type collector struct {
	entries []treeEntry
	pos     map[Locator]int
}

func (c *collector) add(loc Locator, issues ...Issue) {
	if len(issues) == 0 {
		return
	}
	if c.pos == nil {
		c.pos = make(map[Locator]int)
	}

	i, ok := c.pos[loc]
	if !ok {
		merged := appendIssues(nil, issues...)
		if len(merged) == 0 {
			return
		}
		c.pos[loc] = len(c.entries)
		c.entries = append(c.entries, treeEntry{loc: loc, issues: merged})
		return
	}
	c.entries[i].issues = appendIssues(c.entries[i].issues, issues...)
}

// snapshot copies the collected entries so later additions never reach a
// tree that was already handed out.
func (c *collector) snapshot(shape Shape) *Tree {
	if len(c.entries) == 0 {
		return nil
	}
	entries := make([]treeEntry, len(c.entries))
	for i, e := range c.entries {
		entries[i] = treeEntry{loc: e.loc, issues: slices.Clone(e.issues)}
	}
	return &Tree{shape: shape, entries: entries}
}

// ObjectErrors collects field errors of a structure with named fields.
//
//	errs := validator.NewObjectErrors()
//	errs.Add("age", validator.Check(u.Age, validator.Minimum(18))...)
//	errs.Add("tags", validator.Check(u.Tags, validator.UniqueItems[string]())...)
//	return errs.Err()
type ObjectErrors struct {
	c collector
}

func NewObjectErrors() *ObjectErrors {
	return &ObjectErrors{}
}

// Add records issues under field. Empty input is ignored, so callers can pass
// validation results unconditionally.
func (o *ObjectErrors) Add(field string, issues ...Issue) {
	o.c.add(Name(field), issues...)
}

func (o *ObjectErrors) AddMessage(field, message string) {
	o.c.add(Name(field), Issue{Message: message})
}

// AddError records the result of a nested Validate call under field.
func (o *ObjectErrors) AddError(field string, err error) {
	o.c.add(Name(field), IssuesOf(err)...)
}

func (o *ObjectErrors) IsEmpty() bool {
	return len(o.c.entries) == 0
}

// Tree returns the collected errors, or nil when nothing failed.
func (o *ObjectErrors) Tree() *Tree {
	return o.c.snapshot(ShapeObject)
}

// Err returns the collected errors as an error, or nil when nothing failed.
func (o *ObjectErrors) Err() error {
	if t := o.Tree(); t != nil {
		return t
	}
	return nil
}

// ArrayErrors collects errors of sequence positions or of a tuple-shaped
// structure with several unnamed fields.
type ArrayErrors struct {
	c collector
}

func NewArrayErrors() *ArrayErrors {
	return &ArrayErrors{}
}

func (a *ArrayErrors) Add(index int, issues ...Issue) {
	a.c.add(Index(index), issues...)
}

func (a *ArrayErrors) AddMessage(index int, message string) {
	a.c.add(Index(index), Issue{Message: message})
}

func (a *ArrayErrors) AddError(index int, err error) {
	a.c.add(Index(index), IssuesOf(err)...)
}

func (a *ArrayErrors) IsEmpty() bool {
	return len(a.c.entries) == 0
}

func (a *ArrayErrors) Tree() *Tree {
	return a.c.snapshot(ShapeArray)
}

func (a *ArrayErrors) Err() error {
	if t := a.Tree(); t != nil {
		return t
	}
	return nil
}

// NewType builds the error of a structure with exactly one unnamed field: the
// issues become the root leaves instead of a single-key object.
// It returns nil when issues is empty.
func NewType(issues ...Issue) error {
	leaves := appendIssues(nil, issues...)
	if len(leaves) == 0 {
		return nil
	}
	return &Tree{shape: ShapeLeaves, leaves: leaves}
}

// IssuesOf converts the error returned by a Validate method into issues.
// A *Tree is attached as a nested tree, any other error as its message.
func IssuesOf(err error) Issues {
	if err == nil {
		return nil
	}
	if t, ok := AsTree(err); ok {
		return Issues{{Tree: t}}
	}
	return Issues{{Message: err.Error()}}
}
