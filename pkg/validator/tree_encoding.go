package validator

import (
	"bytes"
	"encoding/json"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Value converts the tree into generic data for any serialization format:
// objects become map[string]any, arrays map[int]any and leaves []any. Every
// key maps to a []any holding message strings and nested values.
func (t *Tree) Value() any {
	switch t.shape {
	case ShapeObject:
		out := make(map[string]any, len(t.entries))
		for _, e := range t.entries {
			out[e.loc.name] = issuesValue(e.issues)
		}
		return out
	case ShapeArray:
		out := make(map[int]any, len(t.entries))
		for _, e := range t.entries {
			out[e.loc.index] = issuesValue(e.issues)
		}
		return out
	default:
		return issuesValue(t.leaves)
	}
}

func issuesValue(issues Issues) []any {
	out := make([]any, len(issues))
	for i, issue := range issues {
		if issue.Tree != nil {
			out[i] = issue.Tree.Value()
		} else {
			out[i] = issue.Message
		}
	}
	return out
}

// MarshalJSON writes the generic form keeping insertion order of keys.
func (t *Tree) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := t.writeJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (t *Tree) writeJSON(buf *bytes.Buffer) error {
	if t.shape == ShapeLeaves {
		return writeIssuesJSON(buf, t.leaves)
	}

	buf.WriteByte('{')
	for i, e := range t.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSONString(buf, e.loc.Key()); err != nil {
			return err
		}
		buf.WriteByte(':')
		if err := writeIssuesJSON(buf, e.issues); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

func writeIssuesJSON(buf *bytes.Buffer, issues Issues) error {
	buf.WriteByte('[')
	for i, issue := range issues {
		if i > 0 {
			buf.WriteByte(',')
		}
		if issue.Tree != nil {
			if err := issue.Tree.writeJSON(buf); err != nil {
				return err
			}
			continue
		}
		if err := writeJSONString(buf, issue.Message); err != nil {
			return err
		}
	}
	buf.WriteByte(']')
	return nil
}

// writeJSONString keeps comparison operators in messages readable instead of
// escaping them as HTML.
func writeJSONString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte("\n")))
	return nil
}

// MarshalYAML writes the same structure as MarshalJSON as an ordered YAML node.
func (t *Tree) MarshalYAML() (any, error) {
	return t.yamlNode(), nil
}

func (t *Tree) yamlNode() *yaml.Node {
	if t.shape == ShapeLeaves {
		return issuesYAMLNode(t.leaves)
	}

	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, e := range t.entries {
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.loc.name}
		if e.loc.isIndex {
			key = &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(e.loc.index)}
		}
		node.Content = append(node.Content, key, issuesYAMLNode(e.issues))
	}
	return node
}

func issuesYAMLNode(issues Issues) *yaml.Node {
	node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, issue := range issues {
		if issue.Tree != nil {
			node.Content = append(node.Content, issue.Tree.yamlNode())
			continue
		}
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: issue.Message})
	}
	return node
}
