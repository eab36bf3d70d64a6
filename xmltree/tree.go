package xmltree

import (
	"strconv"
	"strings"

	"github.com/andaru/virtxml/xmlerr"
	"github.com/pkg/errors"
)

// Handle identifies a node in a Document's arena. Handles are never
// reused; the zero Handle is never a valid node.
type Handle int

// Attr is a node attribute. Name is in qualified ("prefix:local") form.
type Attr struct {
	Name  string
	Value string
}

type node struct {
	tag      string
	attrs    []Attr
	text     string
	parent   Handle
	children []Handle
	live     bool
}

// Document is a mutable, ordered XML tree. All nodes live in a single
// arena owned by the Document and are addressed by Handle. Nodes may
// exist in the arena without being reachable from the root element;
// such detached subtrees are not serialized with the document.
//
// A Document is not safe for concurrent mutation.
type Document struct {
	nodes []node
	root  Handle
	live  int
}

// New returns a Document holding an empty root element named rootTag.
func New(rootTag string) *Document {
	d := newDocument()
	d.root = d.NewElement(rootTag)
	return d
}

func newDocument() *Document {
	// slot 0 is the reserved zero handle
	return &Document{nodes: make([]node, 1, 16)}
}

// Root returns the handle of the document's root element.
func (d *Document) Root() Handle { return d.root }

// Len returns the number of live nodes in the arena, including nodes
// in detached subtrees.
func (d *Document) Len() int { return d.live }

// Valid returns true if h refers to a live node.
func (d *Document) Valid(h Handle) bool { return d.get(h) != nil }

// get returns the node for h, or nil. The pointer must not be held
// across calls which grow the arena.
func (d *Document) get(h Handle) *node {
	if h <= 0 || int(h) >= len(d.nodes) || !d.nodes[h].live {
		return nil
	}
	return &d.nodes[h]
}

func (d *Document) mustGet(op string, h Handle) (*node, error) {
	if n := d.get(h); n != nil {
		return n, nil
	}
	return nil, errors.WithStack(xmlerr.UseAfterRemove("", xmlerr.WithOperation(op),
		xmlerr.WithMessage("invalid node handle")))
}

// NewElement allocates a parentless element in the arena and returns
// its handle. Use AppendChild to attach it.
func (d *Document) NewElement(tag string) Handle {
	d.nodes = append(d.nodes, node{tag: tag, live: true})
	d.live++
	return Handle(len(d.nodes) - 1)
}

// Tag returns the qualified tag name of h, or "" if h is not valid.
func (d *Document) Tag(h Handle) string {
	if n := d.get(h); n != nil {
		return n.tag
	}
	return ""
}

// Attrs returns a copy of h's attributes in document order.
func (d *Document) Attrs(h Handle) []Attr {
	n := d.get(h)
	if n == nil || len(n.attrs) == 0 {
		return nil
	}
	return append([]Attr(nil), n.attrs...)
}

// Attr returns the value of h's attribute name, and whether it is present.
func (d *Document) Attr(h Handle, name string) (string, bool) {
	if n := d.get(h); n != nil {
		for _, a := range n.attrs {
			if a.Name == name {
				return a.Value, true
			}
		}
	}
	return "", false
}

// SetAttr sets the attribute name on h. An existing attribute keeps
// its position; a new attribute is appended after all others.
func (d *Document) SetAttr(h Handle, name, value string) error {
	n, err := d.mustGet("set-attr", h)
	if err != nil {
		return err
	}
	for i := range n.attrs {
		if n.attrs[i].Name == name {
			n.attrs[i].Value = value
			return nil
		}
	}
	n.attrs = append(n.attrs, Attr{Name: name, Value: value})
	return nil
}

// RemoveAttr deletes the attribute name from h, returning true if it
// was present.
func (d *Document) RemoveAttr(h Handle, name string) (bool, error) {
	n, err := d.mustGet("remove-attr", h)
	if err != nil {
		return false, err
	}
	for i := range n.attrs {
		if n.attrs[i].Name == name {
			n.attrs = append(n.attrs[:i], n.attrs[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// Text returns the text content held directly by h.
func (d *Document) Text(h Handle) string {
	if n := d.get(h); n != nil {
		return n.text
	}
	return ""
}

// SetText replaces the text content held directly by h.
func (d *Document) SetText(h Handle, text string) error {
	n, err := d.mustGet("set-text", h)
	if err != nil {
		return err
	}
	n.text = text
	return nil
}

// Parent returns the parent of h. The root element and the top of a
// detached subtree have no parent and return the zero Handle.
func (d *Document) Parent(h Handle) Handle {
	if n := d.get(h); n != nil {
		return n.parent
	}
	return 0
}

// Children returns a copy of h's child element handles in order.
func (d *Document) Children(h Handle) []Handle {
	n := d.get(h)
	if n == nil || len(n.children) == 0 {
		return nil
	}
	return append([]Handle(nil), n.children...)
}

// Elements returns h's children named tag, in order.
func (d *Document) Elements(h Handle, tag string) (out []Handle) {
	if n := d.get(h); n != nil {
		for _, c := range n.children {
			if d.nodes[c].tag == tag {
				out = append(out, c)
			}
		}
	}
	return out
}

// FirstElement returns h's first child named tag, or the zero Handle.
func (d *Document) FirstElement(h Handle, tag string) Handle {
	if n := d.get(h); n != nil {
		for _, c := range n.children {
			if d.nodes[c].tag == tag {
				return c
			}
		}
	}
	return 0
}

// IsEmpty returns true if h has no attributes, children or text.
func (d *Document) IsEmpty(h Handle) bool {
	n := d.get(h)
	return n != nil && len(n.attrs) == 0 && len(n.children) == 0 && n.text == ""
}

// Attached returns true if h is reachable from the root element.
func (d *Document) Attached(h Handle) bool {
	for d.get(h) != nil {
		if h == d.root {
			return true
		}
		h = d.nodes[h].parent
	}
	return false
}

// AppendChild makes child the last child of parent. The child must be
// a live, parentless node other than the root element, and must not be
// an ancestor of parent.
func (d *Document) AppendChild(parent, child Handle) error {
	if _, err := d.mustGet("append", parent); err != nil {
		return err
	}
	c, err := d.mustGet("append", child)
	if err != nil {
		return err
	}
	if child == d.root || c.parent != 0 {
		return errors.WithStack(xmlerr.InvalidOperation("append",
			xmlerr.WithElement(c.tag), xmlerr.WithMessage("node already has a parent")))
	}
	for p := parent; p != 0; p = d.nodes[p].parent {
		if p == child {
			return errors.WithStack(xmlerr.InvalidOperation("append",
				xmlerr.WithElement(c.tag), xmlerr.WithMessage("node is an ancestor of the new parent")))
		}
	}
	c.parent = parent
	d.nodes[parent].children = append(d.nodes[parent].children, child)
	return nil
}

// Remove detaches h from its parent and releases h and all of its
// descendants. Their handles are invalid afterwards. The root element
// cannot be removed.
func (d *Document) Remove(h Handle) error {
	n, err := d.mustGet("remove", h)
	if err != nil {
		return err
	}
	if h == d.root {
		return errors.WithStack(xmlerr.InvalidOperation("remove",
			xmlerr.WithElement(n.tag), xmlerr.WithMessage("cannot remove the root element")))
	}
	if p := n.parent; p != 0 {
		siblings := d.nodes[p].children
		for i, c := range siblings {
			if c == h {
				d.nodes[p].children = append(siblings[:i], siblings[i+1:]...)
				break
			}
		}
	}
	return d.Walk(h, func(it Handle) error {
		d.nodes[it] = node{}
		d.live--
		return nil
	})
}

// Walk calls fn for h and each of its descendants in document order.
// A non-nil error from fn stops the walk and is returned. The walk
// tolerates fn releasing the node it is called with.
func (d *Document) Walk(h Handle, fn func(Handle) error) error {
	n := d.get(h)
	if n == nil {
		return nil
	}
	children := n.children
	if err := fn(h); err != nil {
		return err
	}
	for _, c := range children {
		if err := d.Walk(c, fn); err != nil {
			return err
		}
	}
	return nil
}

// Path returns a slash separated location of h for diagnostics, e.g.
// "/domain/clock/timer[2]". Positions are given for repeated names.
func (d *Document) Path(h Handle) string {
	var parts []string
	for n := d.get(h); n != nil; n = d.get(h) {
		part := n.tag
		if p := n.parent; p != 0 {
			same := d.Elements(p, n.tag)
			if len(same) > 1 {
				for i, s := range same {
					if s == h {
						part += "[" + strconv.Itoa(i+1) + "]"
						break
					}
				}
			}
		}
		parts = append(parts, part)
		h = n.parent
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return "/" + strings.Join(parts, "/")
}

// innerText returns the concatenated text of h and its descendants.
func (d *Document) innerText(h Handle) string {
	n := d.get(h)
	if n == nil {
		return ""
	}
	if len(n.children) == 0 {
		return n.text
	}
	var b strings.Builder
	b.WriteString(n.text)
	for _, c := range n.children {
		b.WriteString(d.innerText(c))
	}
	return b.String()
}

// siblings returns the children of h's parent and the index of h within.
func (d *Document) siblings(h Handle) ([]Handle, int) {
	n := d.get(h)
	if n == nil || n.parent == 0 {
		return nil, -1
	}
	children := d.nodes[n.parent].children
	for i, c := range children {
		if c == h {
			return children, i
		}
	}
	return nil, -1
}
