package binder

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"slices"
	"strings"

	"github.com/dmitrymomot/validkit/pkg/validator"
)

// DecodeJSON strictly decodes a single JSON document from r into v.
// Unknown fields and trailing data are rejected. A value of the wrong type
// at a named field is reported as a *validator.Tree at that field's path,
// so it reads like any other validation failure.
func DecodeJSON(r io.Reader, v any) error {
	if err := checkTarget(v); err != nil {
		return err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToParseJSON, err)
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields() // Always use strict mode

	if err := decoder.Decode(v); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			if path, ok := locateValue(data, strings.Split(typeErr.Field, "."), typeErr.Offset); ok {
				return typeErrorTree(path, typeMessage(typeErr.Type))
			}
		}
		switch {
		case errors.Is(err, io.EOF):
			return fmt.Errorf("%w: %w", ErrFailedToParseJSON, ErrEmptyBody)
		default:
			return fmt.Errorf("%w: %v", ErrFailedToParseJSON, err)
		}
	}

	// Ensure entire body was consumed
	var extra json.RawMessage
	if err := decoder.Decode(&extra); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: unexpected data after JSON document", ErrFailedToParseJSON)
	}
	return nil
}

// JSON decodes r into v with DecodeJSON and then validates v when it
// implements validator.Validatable.
//
//	var req CreateOrder
//	if err := binder.JSON(r.Body, &req); err != nil {
//		if tree, ok := validator.AsTree(err); ok {
//			// 422 with tree
//		}
//		// 400
//	}
func JSON(r io.Reader, v any) error {
	if err := DecodeJSON(r, v); err != nil {
		return err
	}
	return validate(v)
}

// typeErrorTree nests msg under path.
func typeErrorTree(path []validator.Locator, msg string) error {
	issue := validator.Issue{Message: msg}
	for i := len(path) - 1; i >= 0; i-- {
		if path[i].IsIndex() {
			errs := validator.NewArrayErrors()
			errs.Add(path[i].Position(), issue)
			issue = validator.Issue{Tree: errs.Tree()}
			continue
		}
		errs := validator.NewObjectErrors()
		errs.Add(path[i].Key(), issue)
		issue = validator.Issue{Tree: errs.Tree()}
	}
	return issue.Tree
}

// jsonFrame is an open object or array while locateValue scans tokens.
type jsonFrame struct {
	path    []validator.Locator
	start   int64
	object  bool
	wantKey bool
	key     string
	index   int
}

func (f *jsonFrame) child() []validator.Locator {
	loc := validator.Index(f.index)
	if f.object {
		loc = validator.Name(f.key)
	}
	return append(slices.Clone(f.path), loc)
}

func (f *jsonFrame) next() {
	if f.object {
		f.wantKey = true
	} else {
		f.index++
	}
}

// locateValue rebuilds the full path, array indices included, of the value
// the decoder rejected. field holds the object keys of that path and offset
// the decoder position of the error; the first value with those keys whose
// span covers offset wins.
func locateValue(data []byte, field []string, offset int64) ([]validator.Locator, bool) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var stack []*jsonFrame
	covers := func(path []validator.Locator, start int64) bool {
		return sameKeys(path, field) && start <= offset && offset <= dec.InputOffset()
	}

	for {
		start := dec.InputOffset()
		tok, err := dec.Token()
		if err != nil {
			return nil, false
		}

		var top *jsonFrame
		if len(stack) > 0 {
			top = stack[len(stack)-1]
		}

		if d, ok := tok.(json.Delim); ok && (d == '}' || d == ']') {
			stack = stack[:len(stack)-1]
			if covers(top.path, top.start) {
				return top.path, true
			}
			if len(stack) > 0 {
				stack[len(stack)-1].next()
			}
			continue
		}

		if top != nil && top.object && top.wantKey {
			top.key, _ = tok.(string)
			top.wantKey = false
			continue
		}

		var path []validator.Locator
		if top != nil {
			path = top.child()
		}

		if d, ok := tok.(json.Delim); ok {
			stack = append(stack, &jsonFrame{path: path, start: start, object: d == '{', wantKey: d == '{'})
			continue
		}
		if covers(path, start) {
			return path, true
		}
		if top != nil {
			top.next()
		}
	}
}

// sameKeys reports whether the object keys of path equal keys, ignoring
// case as the decoder does.
func sameKeys(path []validator.Locator, keys []string) bool {
	i := 0
	for _, loc := range path {
		if loc.IsIndex() {
			continue
		}
		if i >= len(keys) || !strings.EqualFold(loc.Key(), keys[i]) {
			return false
		}
		i++
	}
	return i == len(keys)
}

// typeMessage names the JSON type expected for t.
func typeMessage(t reflect.Type) string {
	if t == nil {
		return "the value has an invalid type."
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "the value must be a number."
	case reflect.String:
		return "the value must be a string."
	case reflect.Bool:
		return "the value must be a boolean."
	case reflect.Slice, reflect.Array:
		return "the value must be an array."
	case reflect.Map, reflect.Struct:
		return "the value must be an object."
	default:
		return "the value has an invalid type."
	}
}
