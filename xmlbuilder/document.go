package xmlbuilder

import (
	"io"
	"strings"

	"github.com/andaru/virtxml/schema"
	"github.com/andaru/virtxml/xmlerr"
	"github.com/andaru/virtxml/xmltree"
	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// Document owns one XML tree and the objects mapped onto it. Every
// Object of a Document reads and writes the same tree, so a change
// made through one object is immediately visible through all others
// and in the serialized form.
//
// A Document must not be used from more than one goroutine at a time.
type Document struct {
	tree    *xmltree.Document
	schema  *schema.Schema
	root    *Object
	objects map[xmltree.Handle]*Object
	indent  string
}

// Option is a Document constructor option.
type Option func(*Document)

// WithIndent sets the per-level indentation used by String and
// WriteTo. The empty string selects compact output.
func WithIndent(indent string) Option { return func(d *Document) { d.indent = indent } }

func newDocument(s *schema.Schema, tree *xmltree.Document, opts []Option) *Document {
	d := &Document{
		tree:    tree,
		schema:  s,
		objects: map[xmltree.Handle]*Object{},
		indent:  xmltree.DefaultIndent,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.root = d.objectFor(tree.Root(), s)
	return d
}

// New returns a Document holding an empty root element for schema s.
func New(s *schema.Schema, opts ...Option) *Document {
	return newDocument(s, xmltree.New(s.Tag()), opts)
}

// Parse builds a Document for schema s from text. The root element
// must be named after s. On error no Document is returned.
func Parse(s *schema.Schema, text string, opts ...Option) (*Document, error) {
	return ParseReader(s, strings.NewReader(text), opts...)
}

// ParseReader is Parse reading the document from r.
func ParseReader(s *schema.Schema, r io.Reader, opts ...Option) (*Document, error) {
	tree, err := xmltree.Parse(r)
	if err != nil {
		return nil, err
	}
	if tag := tree.Tag(tree.Root()); tag != s.Tag() {
		return nil, errors.WithStack(xmlerr.Parse(nil, xmlerr.WithElement(tag),
			xmlerr.WithMessage("unexpected root element, want <"+s.Tag()+">")))
	}
	return newDocument(s, tree, opts), nil
}

// Root returns the object mapped onto the root element.
func (d *Document) Root() *Object { return d.root }

// Schema returns the schema of the root element.
func (d *Document) Schema() *schema.Schema { return d.schema }

// Tree returns the underlying tree.
func (d *Document) Tree() *xmltree.Document { return d.tree }

// String returns the serialized document.
func (d *Document) String() string { return d.tree.Serialize(d.tree.Root(), d.indent) }

// WriteTo writes the serialized document to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, d.String())
	return int64(n), err
}

// NewObject returns a detached object of schema s. It has no element
// until one of its properties is written, and it is not part of the
// document's tree until passed to Object.Append.
func (d *Document) NewObject(s *schema.Schema) *Object {
	return &Object{doc: d, schema: s}
}

// Query evaluates an XPath expression against the root element and
// returns the text (or attribute value) of each match.
func (d *Document) Query(expr string) ([]string, error) { return d.root.Query(expr) }

// objectFor returns the object cached for h, creating it if needed.
func (d *Document) objectFor(h xmltree.Handle, s *schema.Schema) *Object {
	if o, ok := d.objects[h]; ok {
		return o
	}
	o := &Object{doc: d, schema: s, handle: h}
	d.objects[h] = o
	return o
}

// remove releases the subtree at h and marks every object mapped into
// it as removed.
func (d *Document) remove(h xmltree.Handle) error {
	var released []xmltree.Handle
	_ = d.tree.Walk(h, func(it xmltree.Handle) error {
		released = append(released, it)
		return nil
	})
	path := d.tree.Path(h)
	if err := d.tree.Remove(h); err != nil {
		return err
	}
	for _, it := range released {
		if o, ok := d.objects[it]; ok {
			o.removed = true
			delete(d.objects, it)
		}
	}
	glog.V(2).Infof("removed %s (%d nodes)", path, len(released))
	return nil
}

// locate walks the element steps below h, returning the last element
// or the zero Handle if a step is missing and create is false.
func (d *Document) locate(h xmltree.Handle, steps []string, create bool) (xmltree.Handle, error) {
	for _, step := range steps {
		next := d.tree.FirstElement(h, step)
		if next == 0 {
			if !create {
				return 0, nil
			}
			next = d.tree.NewElement(step)
			if err := d.tree.AppendChild(h, next); err != nil {
				return 0, err
			}
		}
		h = next
	}
	return h, nil
}

// chain returns the elements at each of steps below h, stopping at the
// first missing step.
func (d *Document) chain(h xmltree.Handle, steps []string) []xmltree.Handle {
	out := make([]xmltree.Handle, 0, len(steps))
	for _, step := range steps {
		if h = d.tree.FirstElement(h, step); h == 0 {
			break
		}
		out = append(out, h)
	}
	return out
}

// prune removes empty elements of chain, innermost first, stopping at
// the first element which has content or backs an object.
func (d *Document) prune(chain []xmltree.Handle) error {
	for i := len(chain) - 1; i >= 0; i-- {
		h := chain[i]
		if _, ok := d.objects[h]; ok || !d.tree.IsEmpty(h) {
			return nil
		}
		if err := d.tree.Remove(h); err != nil {
			return err
		}
	}
	return nil
}
