// Package musicxml provides a fidelity-preserving document tree for
// MusicXML scores. Parsing keeps every element, attribute, text run,
// comment and processing instruction in document order so that a score
// can be rewritten with only the intended fields changed.
//
// MusicXML is DTD-based and does not use XML namespaces; namespace
// prefixes are not preserved on the unlikely input that carries them.
package musicxml

import "encoding/xml"

// Node is one item in the document tree.
type Node interface {
	node()
}

// Element is an XML element with its attributes and ordered children.
type Element struct {
	Name     xml.Name
	Attrs    []xml.Attr
	Children []Node
}

// Text is a run of character data. Entities are expanded during parsing
// and re-escaped on output.
type Text struct {
	Data string
}

// Comment is an XML comment, without the surrounding markers.
type Comment struct {
	Data string
}

// ProcInst is a processing instruction such as the XML declaration.
type ProcInst struct {
	Target string
	Inst   string
}

// Directive is a markup declaration such as a DOCTYPE.
type Directive struct {
	Data string
}

func (*Element) node()  {}
func (*Text) node()     {}
func (*Comment) node()  {}
func (*ProcInst) node() {}
func (*Directive) node() {}

// Attr returns the value of the named attribute, or "" if absent.
func (e *Element) Attr(local string) string {
	for _, a := range e.Attrs {
		if a.Name.Local == local && a.Name.Space == "" {
			return a.Value
		}
	}
	return ""
}

// Find returns the first child element with the given local name,
// or nil if there is none.
func (e *Element) Find(local string) *Element {
	for _, c := range e.Children {
		if el, ok := c.(*Element); ok && el.Name.Local == local {
			return el
		}
	}
	return nil
}

// FindAll returns all child elements with the given local name,
// in document order.
func (e *Element) FindAll(local string) []*Element {
	var out []*Element
	for _, c := range e.Children {
		if el, ok := c.(*Element); ok && el.Name.Local == local {
			out = append(out, el)
		}
	}
	return out
}

// Text returns the concatenated character data directly under the
// element. For leaf elements like part-name this is the label text.
func (e *Element) Text() string {
	var s string
	for _, c := range e.Children {
		if t, ok := c.(*Text); ok {
			s += t.Data
		}
	}
	return s
}

// SetText replaces the element's character data with s. Child elements
// and comments are preserved; existing text runs are removed.
func (e *Element) SetText(s string) {
	kept := e.Children[:0]
	for _, c := range e.Children {
		if _, ok := c.(*Text); !ok {
			kept = append(kept, c)
		}
	}
	e.Children = append(kept, &Text{Data: s})
}
