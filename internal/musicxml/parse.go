package musicxml

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
)

// ScoreErrorType represents the type of score parsing error.
type ScoreErrorType string

const (
	// ParseError indicates the input is not well-formed XML.
	ParseError ScoreErrorType = "PARSE_ERROR"
	// NotMusicXML indicates the root element is not a MusicXML score.
	NotMusicXML ScoreErrorType = "NOT_MUSICXML"
	// NoPartList indicates the score has no part-list element.
	NoPartList ScoreErrorType = "NO_PART_LIST"
	// NoParts indicates the part-list contains no score-part entries.
	NoParts ScoreErrorType = "NO_PARTS"
)

// ScoreError represents an error that occurred while reading a score.
type ScoreError struct {
	Type ScoreErrorType
	Path string
	Err  error
}

func (e *ScoreError) Error() string {
	msg := string(e.Type)
	if e.Path != "" {
		msg += ": " + e.Path
	}
	if e.Err != nil {
		msg += fmt.Sprintf(" (%v)", e.Err)
	}
	return msg
}

func (e *ScoreError) Unwrap() error {
	return e.Err
}

// Parse reads a MusicXML document from r and validates that it has the
// part-list structure the normalizer depends on. It returns a ScoreError
// for malformed XML, a non-score root element, or a score without parts.
func Parse(r io.Reader) (*Document, error) {
	dec := xml.NewDecoder(r)

	doc := &Document{}
	var stack []*Element

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ScoreError{Type: ParseError, Err: err}
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &Element{Name: t.Name}
			if len(t.Attr) > 0 {
				el.Attrs = make([]xml.Attr, len(t.Attr))
				copy(el.Attrs, t.Attr)
			}
			if len(stack) == 0 {
				doc.Root = el
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			}
			stack = append(stack, el)

		case xml.EndElement:
			stack = stack[:len(stack)-1]

		case xml.CharData:
			text := &Text{Data: string(t)}
			doc.appendNode(stack, text)

		case xml.Comment:
			doc.appendNode(stack, &Comment{Data: string(t)})

		case xml.ProcInst:
			doc.appendNode(stack, &ProcInst{Target: t.Target, Inst: string(t.Inst)})

		case xml.Directive:
			doc.appendNode(stack, &Directive{Data: string(t)})
		}
	}

	if doc.Root == nil {
		return nil, &ScoreError{Type: NotMusicXML, Err: errors.New("no root element")}
	}
	if err := doc.validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

// appendNode attaches a non-element node either to the innermost open
// element or to the document prolog/epilog when outside the root.
func (d *Document) appendNode(stack []*Element, n Node) {
	if len(stack) > 0 {
		parent := stack[len(stack)-1]
		parent.Children = append(parent.Children, n)
		return
	}
	if d.Root == nil {
		d.Prolog = append(d.Prolog, n)
	} else {
		d.Epilog = append(d.Epilog, n)
	}
}

// ParseFile reads and parses the MusicXML file at path.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ScoreError{Type: ParseError, Path: path, Err: err}
	}
	defer f.Close()

	doc, err := Parse(f)
	if err != nil {
		var scoreErr *ScoreError
		if errors.As(err, &scoreErr) && scoreErr.Path == "" {
			scoreErr.Path = path
		}
		return nil, err
	}
	return doc, nil
}
