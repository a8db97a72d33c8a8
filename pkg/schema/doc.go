// Package schema compiles declarative YAML or JSON schema files into
// validators over decoded documents.
//
// A schema describes an object as a list of fields. Each field carries rules
// named after the JSON Schema keywords (minimum, pattern, unique_items and so
// on), an optional shape that lifts the rules through sequences and optional
// values, and optionally the fields of a nested object:
//
//	name: order
//	fields:
//	  - name: quantity
//	    rules:
//	      - range: {minimum: 1, maximum: 100}
//	  - name: prices
//	    shape: [sequence]
//	    container_rules:
//	      - unique_items: true
//	    rules:
//	      - exclusive_minimum: 0
//	      - multiple_of: 0.01
//	        message: "%{actual} is not a whole number of cents"
//	  - name: customer
//	    shape: [optional]
//	    object:
//	      - name: id
//	        rules:
//	          - custom: uuid
//
// Compile, Parse, Load and LoadDir report every definition problem at once.
// A compiled Schema is immutable; Validate returns nil or a *validator.Tree
// shaped like the document. Fields missing from the document are skipped.
package schema
