package xmltree

import (
	"encoding/xml"

	"github.com/andaru/virtxml/xmlutil"
	"github.com/antchfx/xpath"
)

// Navigator is an xpath.NodeNavigator over a Document. The zero
// Handle stands for the document node above the root element.
// Namespace declarations are not visited as attributes.
type Navigator struct {
	doc  *Document
	curr Handle
	attr int
}

var _ xpath.NodeNavigator = (*Navigator)(nil)

// Navigator returns a navigator positioned at h.
func (d *Document) Navigator(h Handle) *Navigator { return &Navigator{doc: d, curr: h, attr: -1} }

// Current returns the node the navigator is positioned at. When
// positioned at an attribute, Current returns the owning element.
func (x *Navigator) Current() Handle { return x.curr }

// AttrName returns the qualified name of the current attribute, or ""
// if the navigator is positioned at an element.
func (x *Navigator) AttrName() string {
	if x.attr == -1 {
		return ""
	}
	return x.doc.nodes[x.curr].attrs[x.attr].Name
}

func (x *Navigator) NodeType() xpath.NodeType {
	switch {
	case x.curr == 0:
		return xpath.RootNode
	case x.attr != -1:
		return xpath.AttributeNode
	}
	return xpath.ElementNode
}

func (x *Navigator) name() xml.Name {
	if x.curr == 0 {
		return xml.Name{}
	}
	if x.attr != -1 {
		return xmlutil.ParseQName(x.AttrName())
	}
	return xmlutil.ParseQName(x.doc.nodes[x.curr].tag)
}

func (x *Navigator) LocalName() string { return x.name().Local }

func (x *Navigator) Prefix() string { return x.name().Space }

// NamespaceURL resolves the current node's prefix against the
// namespace declarations in scope. Unprefixed attributes have no
// namespace.
func (x *Navigator) NamespaceURL() string {
	prefix := x.Prefix()
	if x.curr == 0 || (x.attr != -1 && prefix == "") {
		return ""
	}
	return x.doc.Scope(x.curr).Namespace(prefix)
}

func (x *Navigator) Value() string {
	switch {
	case x.curr == 0:
		return x.doc.innerText(x.doc.root)
	case x.attr != -1:
		return x.doc.nodes[x.curr].attrs[x.attr].Value
	}
	return x.doc.innerText(x.curr)
}

func (x *Navigator) Copy() xpath.NodeNavigator {
	n := *x
	return &n
}

func (x *Navigator) MoveToRoot() {
	x.curr, x.attr = 0, -1
}

func (x *Navigator) MoveToParent() bool {
	switch {
	case x.attr != -1:
		x.attr = -1
		return true
	case x.curr == 0:
		return false
	case x.curr == x.doc.root:
		x.curr = 0
		return true
	}
	if p := x.doc.nodes[x.curr].parent; p != 0 {
		x.curr = p
		return true
	}
	return false
}

func (x *Navigator) MoveToNextAttribute() bool {
	if x.curr == 0 {
		return false
	}
	attrs := x.doc.nodes[x.curr].attrs
	for i := x.attr + 1; i < len(attrs); i++ {
		if !xmlutil.IsNamespaceDecl(attrs[i].Name) {
			x.attr = i
			return true
		}
	}
	return false
}

func (x *Navigator) MoveToChild() bool {
	if x.attr != -1 {
		return false
	}
	if x.curr == 0 {
		x.curr = x.doc.root
		return true
	}
	if children := x.doc.nodes[x.curr].children; len(children) > 0 {
		x.curr = children[0]
		return true
	}
	return false
}

func (x *Navigator) MoveToFirst() bool {
	if x.attr != -1 {
		return false
	}
	siblings, i := x.doc.siblings(x.curr)
	if i <= 0 {
		return false
	}
	x.curr = siblings[0]
	return true
}

func (x *Navigator) MoveToNext() bool {
	if x.attr != -1 {
		return false
	}
	siblings, i := x.doc.siblings(x.curr)
	if i < 0 || i+1 >= len(siblings) {
		return false
	}
	x.curr = siblings[i+1]
	return true
}

func (x *Navigator) MoveToPrevious() bool {
	if x.attr != -1 {
		return false
	}
	siblings, i := x.doc.siblings(x.curr)
	if i <= 0 {
		return false
	}
	x.curr = siblings[i-1]
	return true
}

func (x *Navigator) MoveTo(other xpath.NodeNavigator) bool {
	o, ok := other.(*Navigator)
	if !ok || o.doc != x.doc {
		return false
	}
	x.curr, x.attr = o.curr, o.attr
	return true
}

func (x *Navigator) String() string { return x.Value() }

// Scope returns the namespace declarations in effect at h: those of h
// and its ancestors, inner declarations overriding outer ones.
func (d *Document) Scope(h Handle) xmlutil.PrefixMap {
	var chain []Handle
	for ; d.get(h) != nil; h = d.nodes[h].parent {
		chain = append(chain, h)
	}
	pmap := xmlutil.PrefixMap{}
	for i := len(chain) - 1; i >= 0; i-- {
		pmap.Declare(xmlAttrs(d.nodes[chain[i]].attrs)...)
	}
	return pmap
}

func xmlAttrs(attrs []Attr) []xml.Attr {
	out := make([]xml.Attr, 0, len(attrs))
	for _, a := range attrs {
		if xmlutil.IsNamespaceDecl(a.Name) {
			out = append(out, xml.Attr{Name: xmlutil.ParseQName(a.Name), Value: a.Value})
		}
	}
	return out
}
