package xmltree

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"
)

// DefaultIndent is the per-level indentation used by String and WriteTo.
const DefaultIndent = "  "

// String returns the serialized form of the document, indented with
// DefaultIndent.
func (d *Document) String() string { return d.Serialize(d.root, DefaultIndent) }

// WriteTo writes the serialized document to w, implementing io.WriterTo.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, d.String())
	return int64(n), err
}

// Serialize returns the markup of the subtree rooted at h. Each
// element is placed on its own line, prefixed by indent once per
// level, when indent is non-empty; an empty indent yields compact
// output. Elements without content are written self-closed and
// attributes are written in their stored order. An invalid handle
// serializes to the empty string.
func (d *Document) Serialize(h Handle, indent string) string {
	if !d.Valid(h) {
		return ""
	}
	var buf bytes.Buffer
	d.write(&buf, h, 0, indent)
	return buf.String()
}

func (d *Document) write(buf *bytes.Buffer, h Handle, depth int, indent string) {
	n := &d.nodes[h]
	var nl string
	if indent != "" {
		nl = "\n"
		buf.WriteString(strings.Repeat(indent, depth))
	}
	buf.WriteByte('<')
	buf.WriteString(n.tag)
	for _, a := range n.attrs {
		buf.WriteByte(' ')
		buf.WriteString(a.Name)
		buf.WriteString(`="`)
		xml.EscapeText(buf, []byte(a.Value))
		buf.WriteByte('"')
	}
	if len(n.children) == 0 && n.text == "" {
		buf.WriteString("/>")
		buf.WriteString(nl)
		return
	}
	buf.WriteByte('>')
	xml.EscapeText(buf, []byte(n.text))
	if len(n.children) > 0 {
		buf.WriteString(nl)
		for _, c := range n.children {
			d.write(buf, c, depth+1, indent)
		}
		if indent != "" {
			buf.WriteString(strings.Repeat(indent, depth))
		}
	}
	buf.WriteString("</")
	buf.WriteString(n.tag)
	buf.WriteByte('>')
	buf.WriteString(nl)
}
