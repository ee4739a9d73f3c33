package musicxml

import (
	"bufio"
	"encoding/xml"
	"io"
	"os"
	"strings"
)

// Write serializes the document to w. Untouched content round-trips:
// element and attribute order, text runs, comments, processing
// instructions and directives are emitted exactly as parsed, with
// character data re-escaped.
func (d *Document) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, n := range d.Prolog {
		if err := writeNode(bw, n); err != nil {
			return err
		}
	}
	if err := writeNode(bw, d.Root); err != nil {
		return err
	}
	for _, n := range d.Epilog {
		if err := writeNode(bw, n); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteFile serializes the document to the file at path, creating or
// truncating it.
func (d *Document) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := d.Write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeNode(w *bufio.Writer, n Node) error {
	switch t := n.(type) {
	case *Element:
		return writeElement(w, t)
	case *Text:
		return xml.EscapeText(w, []byte(t.Data))
	case *Comment:
		w.WriteString("<!--")
		w.WriteString(t.Data)
		_, err := w.WriteString("-->")
		return err
	case *ProcInst:
		w.WriteString("<?")
		w.WriteString(t.Target)
		if t.Inst != "" {
			w.WriteByte(' ')
			w.WriteString(t.Inst)
		}
		_, err := w.WriteString("?>")
		return err
	case *Directive:
		w.WriteString("<!")
		w.WriteString(t.Data)
		err := w.WriteByte('>')
		return err
	}
	return nil
}

func writeElement(w *bufio.Writer, e *Element) error {
	w.WriteByte('<')
	w.WriteString(e.Name.Local)
	for _, a := range e.Attrs {
		w.WriteByte(' ')
		w.WriteString(attrName(a.Name))
		w.WriteString(`="`)
		if err := xml.EscapeText(w, []byte(a.Value)); err != nil {
			return err
		}
		w.WriteByte('"')
	}

	if len(e.Children) == 0 {
		_, err := w.WriteString("/>")
		return err
	}

	w.WriteByte('>')
	for _, c := range e.Children {
		if err := writeNode(w, c); err != nil {
			return err
		}
	}
	w.WriteString("</")
	w.WriteString(e.Name.Local)
	err := w.WriteByte('>')
	return err
}

// attrName renders an attribute name. Namespace declarations parsed by
// encoding/xml carry the "xmlns" space marker; everything else uses the
// local name.
func attrName(name xml.Name) string {
	if name.Space == "xmlns" {
		return "xmlns:" + name.Local
	}
	if name.Space != "" && !strings.Contains(name.Space, "/") {
		return name.Space + ":" + name.Local
	}
	return name.Local
}
