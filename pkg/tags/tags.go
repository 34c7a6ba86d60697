// Package tags holds the in-memory representation of markup elements handed
// over by the host pipeline.
package tags

import (
	"encoding/json"
	"sort"
)

// ScriptTagName is the only tag name the rewrite pass touches.
const ScriptTagName = "script"

// Attribute names with a meaning for script loading
const (
	AttrSrc   = "src"
	AttrType  = "type"
	AttrAsync = "async"
	AttrDefer = "defer"

	// ModuleType is the type attribute value marking an ES module
	ModuleType = "module"
)

// Attributes maps attribute names to either a bool (flags) or a string.
type Attributes map[string]interface{}

// Tag is one element node: {tagName, attributes, closeTag?, innerHTML?}.
type Tag struct {
	TagName    string     `json:"tagName"`
	Attributes Attributes `json:"attributes,omitempty"`
	CloseTag   bool       `json:"closeTag,omitempty"`
	InnerHTML  string     `json:"innerHTML,omitempty"`
}

// NewScript returns a script tag referencing src.
func NewScript(src string) Tag {
	return Tag{
		TagName:    ScriptTagName,
		Attributes: Attributes{AttrSrc: src},
	}
}

// NewInlineScript returns a script tag carrying source as its content.
func NewInlineScript(source string) Tag {
	return Tag{
		TagName:   ScriptTagName,
		CloseTag:  true,
		InnerHTML: source,
	}
}

// IsScript reports whether t is a script element.
func (t Tag) IsScript() bool {
	return t.TagName == ScriptTagName
}

// Value returns the string attribute value for name, or "" when the
// attribute is missing or a flag.
func (t Tag) Value(name string) string {
	if s, ok := t.Attributes[name].(string); ok {
		return s
	}
	return ""
}

// Flag reports whether the boolean attribute name is set to true.
func (t Tag) Flag(name string) bool {
	b, ok := t.Attributes[name].(bool)
	return ok && b
}

// Src returns the src attribute.
func (t Tag) Src() string {
	return t.Value(AttrSrc)
}

// Clone returns a copy whose attribute map can be changed without
// affecting t.
func (t Tag) Clone() Tag {
	c := t
	if t.Attributes != nil {
		c.Attributes = make(Attributes, len(t.Attributes))
		for k, v := range t.Attributes {
			c.Attributes[k] = v
		}
	}
	return c
}

// Names returns the attribute names in sorted order.
func (a Attributes) Names() []string {
	names := make([]string, 0, len(a))
	for k := range a {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Describe renders the tag as JSON for log messages.
func (t Tag) Describe() string {
	data, err := json.Marshal(t)
	if err != nil {
		return t.TagName
	}
	return string(data)
}
