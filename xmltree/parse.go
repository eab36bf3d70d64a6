package xmltree

import (
	"io"
	"strings"

	"github.com/andaru/virtxml/xmlerr"
	"github.com/andaru/virtxml/xmlutil"
	"github.com/antchfx/xmlquery"
	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// Parse reads a complete document from r.
//
// Comments, processing instructions and the XML declaration are not
// retained. The text of an element which also has element children
// (or dropped comments) is trimmed, so indentation does not survive;
// text of leaf elements, whitespace included, is kept as is. Malformed markup, an empty document, more than one root
// element or character data outside the root element result in a
// parse error and no Document.
func Parse(r io.Reader) (*Document, error) {
	top, err := xmlquery.Parse(r)
	if err != nil {
		return nil, errors.WithStack(xmlerr.Parse(err))
	}
	elem, err := rootElement(top)
	if err != nil {
		return nil, err
	}
	d := newDocument()
	d.root = d.importElement(elem, 0)
	glog.V(2).Infof("parsed document <%s> (%d nodes)", d.Tag(d.root), d.live)
	return d, nil
}

// ParseString is Parse for an in-memory document.
func ParseString(text string) (*Document, error) { return Parse(strings.NewReader(text)) }

// rootElement finds the single document element below the xmlquery
// document node, looking through declaration nodes.
func rootElement(top *xmlquery.Node) (*xmlquery.Node, error) {
	var found []*xmlquery.Node
	var scan func(*xmlquery.Node) error
	scan = func(n *xmlquery.Node) error {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch c.Type {
			case xmlquery.ElementNode:
				found = append(found, c)
			case xmlquery.DeclarationNode:
				if err := scan(c); err != nil {
					return err
				}
			case xmlquery.TextNode, xmlquery.CharDataNode:
				if strings.TrimSpace(c.Data) != "" {
					return errors.WithStack(xmlerr.Parse(nil,
						xmlerr.WithMessage("character data outside the root element")))
				}
			}
		}
		return nil
	}
	if err := scan(top); err != nil {
		return nil, err
	}
	switch len(found) {
	case 0:
		return nil, errors.WithStack(xmlerr.Parse(nil, xmlerr.WithMessage("no root element")))
	case 1:
		return found[0], nil
	}
	return nil, errors.WithStack(xmlerr.Parse(nil,
		xmlerr.WithElement(qualifiedTag(found[1])),
		xmlerr.WithMessage("more than one root element")))
}

func qualifiedTag(n *xmlquery.Node) string {
	return xmlutil.QName(xmlutil.XMLName(n.Data, n.Prefix))
}

// importElement copies the xmlquery element n, and its element
// descendants, into the arena below parent.
func (d *Document) importElement(n *xmlquery.Node, parent Handle) Handle {
	h := d.NewElement(qualifiedTag(n))
	if parent != 0 {
		d.nodes[h].parent = parent
		d.nodes[parent].children = append(d.nodes[parent].children, h)
	}
	for _, a := range n.Attr {
		d.nodes[h].attrs = append(d.nodes[h].attrs, Attr{Name: xmlutil.QName(a.Name), Value: a.Value})
	}

	var (
		text  strings.Builder
		mixed bool
	)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case xmlquery.ElementNode:
			d.importElement(c, h)
			mixed = true
		case xmlquery.TextNode, xmlquery.CharDataNode:
			text.WriteString(c.Data)
		default:
			mixed = true
		}
	}
	// whitespace between markup is layout; a leaf's text is its value
	if mixed {
		d.nodes[h].text = strings.TrimSpace(text.String())
	} else {
		d.nodes[h].text = text.String()
	}
	return h
}
