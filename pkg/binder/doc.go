// Package binder decodes request bodies and validates the result.
//
// Decoding is strict: unknown fields and trailing documents are rejected. When
// the decoded value implements validator.Validatable its Validate method runs
// next, so a handler sees a single error that is either a decoding problem or
// a *validator.Tree.
//
// # Basic Usage
//
//	type CreateOrder struct {
//	    Quantity int      `json:"quantity" yaml:"quantity"`
//	    Prices   []float64 `json:"prices" yaml:"prices"`
//	}
//
//	func (o CreateOrder) Validate() error {
//	    errs := validator.NewObjectErrors()
//	    errs.Add("quantity", validator.Check(o.Quantity, validator.Minimum(1))...)
//	    return errs.Err()
//	}
//
//	func handle(w http.ResponseWriter, r *http.Request) {
//	    var req CreateOrder
//	    err := binder.Request(r, &req, binder.WithMaxBodySize(64<<10))
//	    if tree, ok := validator.AsTree(err); ok {
//	        // 422 with tree
//	    }
//	}
//
// # Available Binders
//
//   - JSON(r, v) and YAML(r, v) decode from an io.Reader and validate
//   - DecodeJSON and DecodeYAML decode only
//   - Request(req, v) and Decode(req, v) pick the decoder from Content-Type
//
// A JSON value of the wrong type at a named field does not abort with a
// syntax error: it is returned as a *validator.Tree holding a message such as
// "the value must be a number." at that field's path.
//
// # Error Handling
//
//   - ErrUnsupportedMediaType: Content type is neither JSON nor YAML
//   - ErrMissingContentType: Missing Content-Type header
//   - ErrFailedToParseJSON, ErrFailedToParseYAML: malformed body
//   - ErrBodyTooLarge: body exceeds the configured limit
//   - ErrEmptyBody: no document in the body
//   - ErrInvalidTarget: v is not a non-nil pointer
package binder
