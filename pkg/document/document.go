// Package document adapts XHTML files to the tag sequence consumed by the
// rewrite pass. The direct children of <head> and then <body> become tags in
// document order; results are written back onto the same elements.
package document

import (
	"encoding/xml"
	"reflect"
	"strings"

	"github.com/arthur-debert/scriptext/pkg/errors"
	"github.com/arthur-debert/scriptext/pkg/logging"
	"github.com/arthur-debert/scriptext/pkg/tags"
	"github.com/beevik/etree"
	"github.com/spf13/afero"
)

const cdataEnd = "]]>"

// booleanAttributes are read as flags instead of strings.
var booleanAttributes = map[string]bool{
	tags.AttrAsync: true,
	tags.AttrDefer: true,
	"nomodule":     true,
}

// Document is a parsed XHTML file.
type Document struct {
	doc      *etree.Document
	elements []*etree.Element
	original []tags.Tag
}

// Parse reads a document from data.
func Parse(data []byte) (*Document, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.Permissive = true
	doc.ReadSettings.PreserveCData = true
	doc.ReadSettings.Entity = xml.HTMLEntity
	doc.WriteSettings.CanonicalEndTags = true

	if err := doc.ReadFromBytes(data); err != nil {
		return nil, errors.Wrap(err, errors.ErrDocumentParse, "cannot parse document")
	}

	d := &Document{doc: doc}
	for _, path := range []string{"//head/*", "//body/*"} {
		d.elements = append(d.elements, doc.FindElements(path)...)
	}
	d.original = make([]tags.Tag, len(d.elements))
	for i, el := range d.elements {
		d.original[i] = toTag(el)
	}
	return d, nil
}

// Load reads and parses the file at path.
func Load(fsys afero.Fs, path string) (*Document, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileRead, "cannot read %s", path).WithDetail("path", path)
	}
	d, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrDocumentParse, "cannot parse %s", path).WithDetail("path", path)
	}
	logger := logging.GetLogger("document")
	logger.Debug().
		Str("path", path).
		Int("tagCount", len(d.elements)).
		Msg("Loaded document")
	return d, nil
}

// Tags returns a fresh copy of the collected tags.
func (d *Document) Tags() []tags.Tag {
	out := make([]tags.Tag, len(d.original))
	for i, t := range d.original {
		out[i] = t.Clone()
	}
	return out
}

// Apply writes results back, one per collected tag. Unchanged tags keep
// their original markup.
func (d *Document) Apply(results []tags.Tag) error {
	if len(results) != len(d.elements) {
		return errors.Newf(errors.ErrInvalidInput, "got %d tags for %d elements", len(results), len(d.elements))
	}
	changed := 0
	for i, t := range results {
		if reflect.DeepEqual(t, d.original[i]) {
			continue
		}
		write(d.elements[i], t)
		d.original[i] = t.Clone()
		changed++
	}
	logger := logging.GetLogger("document")
	logger.Debug().Int("changed", changed).Msg("Applied tags")
	return nil
}

// Bytes serializes the document.
func (d *Document) Bytes() ([]byte, error) {
	data, err := d.doc.WriteToBytes()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "cannot serialize document")
	}
	return data, nil
}

// Save writes the document to path.
func (d *Document) Save(fsys afero.Fs, path string) error {
	data, err := d.Bytes()
	if err != nil {
		return err
	}
	if err := afero.WriteFile(fsys, path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", path).WithDetail("path", path)
	}
	return nil
}

func toTag(el *etree.Element) tags.Tag {
	t := tags.Tag{TagName: strings.ToLower(el.Tag)}
	if len(el.Attr) > 0 {
		t.Attributes = tags.Attributes{}
		for _, a := range el.Attr {
			key := strings.ToLower(a.FullKey())
			if booleanAttributes[key] {
				t.Attributes[key] = true
				continue
			}
			t.Attributes[key] = a.Value
		}
	}
	if t.TagName == tags.ScriptTagName {
		t.CloseTag = true
	}
	t.InnerHTML = el.Text()
	return t
}

func write(el *etree.Element, t tags.Tag) {
	el.Tag = t.TagName
	el.Attr = nil
	for _, name := range t.Attributes.Names() {
		switch v := t.Attributes[name].(type) {
		case bool:
			if v {
				el.CreateAttr(name, name)
			}
		case string:
			el.CreateAttr(name, v)
		}
	}

	if t.InnerHTML != el.Text() {
		for i := len(el.Child) - 1; i >= 0; i-- {
			el.RemoveChildAt(i)
		}
		for _, section := range cdataSections(t.InnerHTML) {
			el.CreateCData(section)
		}
	}
}

// cdataSections splits text so no section contains "]]>". Adjacent sections
// read back as one text value.
func cdataSections(text string) []string {
	var sections []string
	for text != "" {
		i := strings.Index(text, cdataEnd)
		if i < 0 {
			sections = append(sections, text)
			break
		}
		// keep "]]" in this section and start the next one with ">"
		sections = append(sections, text[:i+2])
		text = text[i+2:]
	}
	return sections
}
