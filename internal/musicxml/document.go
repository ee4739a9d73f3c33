package musicxml

import "errors"

// Document is a parsed MusicXML score. Prolog and Epilog hold nodes
// outside the root element (XML declaration, DOCTYPE, comments) so the
// document can be written back without losing them.
type Document struct {
	Prolog []Node
	Root   *Element
	Epilog []Node
}

// validate checks the structure the normalizer traversal depends on.
func (d *Document) validate() error {
	switch d.Root.Name.Local {
	case "score-partwise", "score-timewise":
	default:
		return &ScoreError{
			Type: NotMusicXML,
			Err:  errors.New("root element is " + d.Root.Name.Local),
		}
	}

	partList := d.Root.Find("part-list")
	if partList == nil {
		return &ScoreError{Type: NoPartList}
	}
	if len(partList.FindAll("score-part")) == 0 {
		return &ScoreError{Type: NoParts}
	}
	return nil
}

// Part is a score-part entry in the part-list.
type Part struct {
	el *Element
}

// Instrument is a score-instrument entry nested under a part.
type Instrument struct {
	el *Element
}

// Parts returns the score-part entries in document order.
func (d *Document) Parts() []*Part {
	partList := d.Root.Find("part-list")
	if partList == nil {
		return nil
	}
	els := partList.FindAll("score-part")
	parts := make([]*Part, len(els))
	for i, el := range els {
		parts[i] = &Part{el: el}
	}
	return parts
}

// ID returns the part's stable identifier.
func (p *Part) ID() string {
	return p.el.Attr("id")
}

// NameElements returns the part's part-name elements in document order.
// A well-formed score has exactly one.
func (p *Part) NameElements() []*Element {
	return p.el.FindAll("part-name")
}

// Name returns the part's label, the text of its first part-name
// element, or "" if the part has none.
func (p *Part) Name() string {
	els := p.NameElements()
	if len(els) == 0 {
		return ""
	}
	return els[0].Text()
}

// Instruments returns the part's score-instrument entries in document order.
func (p *Part) Instruments() []*Instrument {
	els := p.el.FindAll("score-instrument")
	insts := make([]*Instrument, len(els))
	for i, el := range els {
		insts[i] = &Instrument{el: el}
	}
	return insts
}

// ID returns the instrument's stable identifier, unique across the
// whole document.
func (i *Instrument) ID() string {
	return i.el.Attr("id")
}

// NameElements returns the instrument-name elements in document order.
func (i *Instrument) NameElements() []*Element {
	return i.el.FindAll("instrument-name")
}

// Name returns the instrument's label, the text of its first
// instrument-name element, or "" if it has none.
func (i *Instrument) Name() string {
	els := i.NameElements()
	if len(els) == 0 {
		return ""
	}
	return els[0].Text()
}
