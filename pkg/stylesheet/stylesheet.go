// Package stylesheet is a small structured representation of the CSS a
// layout emits, and its serializer.
//
// A [Sheet] is an ordered list of [Rule] values. A rule is either a style
// rule (selector plus declarations) or a keyframes block (name plus frames).
// Rules and declarations keep their insertion order, so serialization is
// deterministic. The types are plain data: they encode to JSON and msgpack
// unchanged, which lets non-CSS surfaces consume a sheet directly.
package stylesheet

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Kind distinguishes style rules from keyframes blocks.
type Kind string

const (
	KindStyle     Kind = "style"
	KindKeyframes Kind = "keyframes"
)

// Decl is a single "property: value" declaration.
type Decl struct {
	Property string `json:"property" msgpack:"property"`
	Value    string `json:"value" msgpack:"value"`
}

// D is shorthand for building a [Decl].
func D(property, value string) Decl { return Decl{Property: property, Value: value} }

// Frame is one offset of a keyframes block, such as "50%".
type Frame struct {
	Selector string `json:"selector" msgpack:"selector"`
	Decls    []Decl `json:"decls" msgpack:"decls"`
}

// Rule is a style rule or a keyframes block, discriminated by Kind.
type Rule struct {
	Kind     Kind    `json:"kind" msgpack:"kind"`
	Selector string  `json:"selector,omitempty" msgpack:"selector,omitempty"`
	Decls    []Decl  `json:"decls,omitempty" msgpack:"decls,omitempty"`
	Name     string  `json:"name,omitempty" msgpack:"name,omitempty"`
	Frames   []Frame `json:"frames,omitempty" msgpack:"frames,omitempty"`
}

// Value returns the value of the last declaration of property in r.
func (r Rule) Value(property string) (string, bool) {
	for i := len(r.Decls) - 1; i >= 0; i-- {
		if r.Decls[i].Property == property {
			return r.Decls[i].Value, true
		}
	}
	return "", false
}

// Sheet is an ordered list of rules.
type Sheet struct {
	Rules []Rule `json:"rules" msgpack:"rules"`
}

// AddStyle appends a style rule.
func (s *Sheet) AddStyle(selector string, decls ...Decl) {
	s.Rules = append(s.Rules, Rule{Kind: KindStyle, Selector: selector, Decls: decls})
}

// AddKeyframes appends a keyframes block.
func (s *Sheet) AddKeyframes(name string, frames ...Frame) {
	s.Rules = append(s.Rules, Rule{Kind: KindKeyframes, Name: name, Frames: frames})
}

// Find returns the first style rule with the given selector.
func (s *Sheet) Find(selector string) (Rule, bool) {
	for _, r := range s.Rules {
		if r.Kind == KindStyle && r.Selector == selector {
			return r, true
		}
	}
	return Rule{}, false
}

// Keyframes returns the keyframes block with the given name.
func (s *Sheet) Keyframes(name string) (Rule, bool) {
	for _, r := range s.Rules {
		if r.Kind == KindKeyframes && r.Name == name {
			return r, true
		}
	}
	return Rule{}, false
}

// Len returns the number of rules.
func (s *Sheet) Len() int { return len(s.Rules) }

// WriteTo serializes the sheet as CSS.
func (s *Sheet) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	for i, r := range s.Rules {
		if i > 0 {
			buf.WriteByte('\n')
		}
		switch r.Kind {
		case KindKeyframes:
			fmt.Fprintf(&buf, "@keyframes %s {\n", r.Name)
			for _, f := range r.Frames {
				fmt.Fprintf(&buf, "  %s {\n", f.Selector)
				writeDecls(&buf, f.Decls, "    ")
				buf.WriteString("  }\n")
			}
			buf.WriteString("}\n")
		default:
			fmt.Fprintf(&buf, "%s {\n", r.Selector)
			writeDecls(&buf, r.Decls, "  ")
			buf.WriteString("}\n")
		}
	}
	n, err := w.Write(buf.Bytes())
	return int64(n), err
}

func writeDecls(buf *bytes.Buffer, decls []Decl, indent string) {
	for _, d := range decls {
		fmt.Fprintf(buf, "%s%s: %s;\n", indent, d.Property, d.Value)
	}
}

// String returns the CSS serialization of the sheet.
func (s *Sheet) String() string {
	var sb strings.Builder
	_, _ = s.WriteTo(&sb)
	return sb.String()
}

// Inline serializes declarations for a style attribute.
func Inline(decls []Decl) string {
	parts := make([]string, len(decls))
	for i, d := range decls {
		parts[i] = d.Property + ": " + d.Value
	}
	return strings.Join(parts, "; ")
}

// Number formats f with the shortest exact representation.
// Negative zero is written as "0".
func Number(f float64) string {
	if f == 0 {
		f = 0
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Px formats f as a pixel length.
func Px(f float64) string { return Number(f) + "px" }

// Seconds formats f as a time in seconds.
func Seconds(f float64) string { return Number(f) + "s" }

// Percent formats f as a percentage.
func Percent(f float64) string { return Number(f) + "%" }
