package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/validkit/pkg/validator"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// printer renders check results in one output format.
type printer struct {
	w      io.Writer
	format string
}

func newPrinter(w io.Writer, format string) (*printer, error) {
	switch format {
	case formatText, formatJSON, formatYAML:
		return &printer{w: w, format: format}, nil
	default:
		return nil, fmt.Errorf("%w: invalid output format %q: must be text, json or yaml", ErrUsage, format)
	}
}

func (p *printer) print(results []documentResult) error {
	switch p.format {
	case formatJSON:
		return p.printJSON(results)
	case formatYAML:
		return p.printYAML(results)
	default:
		p.printText(results)
		return nil
	}
}

// printText writes one status line per document followed by one indented
// line per failure message:
//
//	order.json: invalid
//	  prices[2]: the number must be `> 0`.
func (p *printer) printText(results []documentResult) {
	for _, res := range results {
		if res.Valid {
			fmt.Fprintf(p.w, "%s: valid\n", res.Document)
			continue
		}
		fmt.Fprintf(p.w, "%s: invalid\n", res.Document)
		res.Errors.Walk(func(path []validator.Locator, message string) {
			if len(path) == 0 {
				fmt.Fprintf(p.w, "  %s\n", message)
				return
			}
			fmt.Fprintf(p.w, "  %s: %s\n", validator.FormatPath(path), message)
		})
	}
}

func (p *printer) printJSON(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (p *printer) printYAML(v any) error {
	enc := yaml.NewEncoder(p.w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
