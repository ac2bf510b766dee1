// Package frontmatter parses and renders the YAML metadata block at the
// top of a note file.
//
// Field order is significant: Render emits fields in the order they were
// parsed (or inserted), so a parse/render round trip leaves a file's
// metadata block byte-identical.
package frontmatter

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Delimiter is the line that opens and closes a metadata block.
const Delimiter = "---"

// ErrMalformed is returned when a metadata block is present but cannot be
// parsed as a key-value mapping. The error is fatal for that file only.
var ErrMalformed = errors.New("malformed front matter")

// Field is a single metadata entry. Value is one of: string, int, float64,
// bool, nil, or []string.
type Field struct {
	Key   string
	Value any
}

// Metadata is an ordered collection of front-matter fields.
type Metadata struct {
	fields []Field
}

// New returns empty metadata.
func New() *Metadata {
	return &Metadata{}
}

// Len returns the number of fields.
func (m *Metadata) Len() int {
	return len(m.fields)
}

// Keys returns the field keys in order.
func (m *Metadata) Keys() []string {
	keys := make([]string, len(m.fields))
	for i, f := range m.fields {
		keys[i] = f.Key
	}
	return keys
}

// Get returns the value for key and whether it is present.
func (m *Metadata) Get(key string) (any, bool) {
	for _, f := range m.fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// GetString returns the value for key as a string, or "" if the field is
// absent, null, or not a string.
func (m *Metadata) GetString(key string) string {
	v, ok := m.Get(key)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetList returns the value for key as a string list. A scalar string is
// returned as a single-element list.
func (m *Metadata) GetList(key string) []string {
	v, ok := m.Get(key)
	if !ok {
		return nil
	}
	switch t := v.(type) {
	case []string:
		return t
	case string:
		if t == "" {
			return nil
		}
		return []string{t}
	}
	return nil
}

// Set updates the value for key, preserving its position if it already
// exists and appending it otherwise.
func (m *Metadata) Set(key string, value any) {
	for i, f := range m.fields {
		if f.Key == key {
			m.fields[i].Value = value
			return
		}
	}
	m.fields = append(m.fields, Field{Key: key, Value: value})
}

// Delete removes key. Removing an absent key is a no-op.
func (m *Metadata) Delete(key string) {
	for i, f := range m.fields {
		if f.Key == key {
			m.fields = append(m.fields[:i], m.fields[i+1:]...)
			return
		}
	}
}

// Parse splits content into metadata and body.
//
// A file that does not open with the delimiter has no metadata: the whole
// content is returned as the body with empty metadata and no error. An
// opened but unclosed or non-mapping block returns ErrMalformed.
func Parse(content string) (*Metadata, string, error) {
	lines := strings.Split(content, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != Delimiter {
		return New(), content, nil
	}

	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == Delimiter {
			end = i
			break
		}
	}
	if end == -1 {
		return nil, "", fmt.Errorf("%w: unclosed metadata block", ErrMalformed)
	}

	block := strings.Join(lines[1:end], "\n")
	body := ""
	if end+1 < len(lines) {
		body = strings.Join(lines[end+1:], "\n")
	}

	meta, err := parseBlock(block)
	if err != nil {
		return nil, "", err
	}
	return meta, body, nil
}

// parseBlock parses the YAML between the delimiters into ordered fields.
func parseBlock(block string) (*Metadata, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(block), &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	// Whitespace/comment-only blocks decode to an empty document.
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return New(), nil
	}

	root := doc.Content[0]
	if root.Kind == yaml.ScalarNode && root.Tag == "!!null" {
		return New(), nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: metadata is not a key-value mapping", ErrMalformed)
	}

	meta := New()
	for i := 0; i+1 < len(root.Content); i += 2 {
		keyNode := root.Content[i]
		valNode := root.Content[i+1]
		value, err := nodeValue(valNode)
		if err != nil {
			return nil, err
		}
		meta.fields = append(meta.fields, Field{Key: keyNode.Value, Value: value})
	}
	return meta, nil
}

// nodeValue converts a YAML value node into one of the supported field
// value types. Unquoted dates resolve to the !!timestamp tag; they are
// kept as their literal string form.
func nodeValue(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		switch n.Tag {
		case "!!null":
			return nil, nil
		case "!!int":
			i, err := strconv.Atoi(n.Value)
			if err != nil {
				return n.Value, nil
			}
			return i, nil
		case "!!float":
			f, err := strconv.ParseFloat(n.Value, 64)
			if err != nil {
				return n.Value, nil
			}
			return f, nil
		case "!!bool":
			return n.Value == "true" || n.Value == "True", nil
		default:
			// Strings, timestamps, and anything quoted.
			return n.Value, nil
		}
	case yaml.SequenceNode:
		items := make([]string, 0, len(n.Content))
		for _, item := range n.Content {
			items = append(items, item.Value)
		}
		return items, nil
	default:
		return nil, fmt.Errorf("%w: unsupported value for metadata field", ErrMalformed)
	}
}

// Render serializes metadata followed by the body. The body is emitted
// unchanged. Rendering nil or empty metadata emits the body alone.
func Render(meta *Metadata, body string) string {
	if meta == nil || meta.Len() == 0 {
		return body
	}

	var b strings.Builder
	b.WriteString(Delimiter)
	b.WriteByte('\n')
	for _, f := range meta.fields {
		renderField(&b, f)
	}
	b.WriteString(Delimiter)
	b.WriteByte('\n')
	b.WriteString(body)
	return b.String()
}

func renderField(b *strings.Builder, f Field) {
	switch v := f.Value.(type) {
	case nil:
		fmt.Fprintf(b, "%s:\n", f.Key)
	case []string:
		fmt.Fprintf(b, "%s:\n", f.Key)
		for _, item := range v {
			fmt.Fprintf(b, "- %s\n", renderScalar(item))
		}
	case string:
		fmt.Fprintf(b, "%s: %s\n", f.Key, renderScalar(v))
	case int:
		fmt.Fprintf(b, "%s: %d\n", f.Key, v)
	case float64:
		fmt.Fprintf(b, "%s: %s\n", f.Key, strconv.FormatFloat(v, 'g', -1, 64))
	case bool:
		fmt.Fprintf(b, "%s: %t\n", f.Key, v)
	default:
		fmt.Fprintf(b, "%s: %s\n", f.Key, renderScalar(fmt.Sprintf("%v", v)))
	}
}

// renderScalar emits a string scalar, quoting only when the plain form
// would parse back as a different type or break the mapping syntax.
func renderScalar(s string) string {
	if needsQuoting(s) {
		return strconv.Quote(s)
	}
	return s
}

func needsQuoting(s string) bool {
	if s == "" {
		return true
	}
	switch strings.ToLower(s) {
	case "null", "~", "true", "false", "yes", "no", "on", "off":
		return true
	}
	if _, err := strconv.Atoi(s); err == nil {
		return true
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return true
	}
	if s != strings.TrimSpace(s) {
		return true
	}
	// Characters with structural meaning at the start of a plain scalar.
	if strings.ContainsRune("!&*?|>%@`\"'#,[]{}-", rune(s[0])) {
		return true
	}
	if strings.Contains(s, ": ") || strings.HasSuffix(s, ":") {
		return true
	}
	if strings.Contains(s, " #") || strings.ContainsAny(s, "\n\t") {
		return true
	}
	return false
}
