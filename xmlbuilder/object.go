package xmlbuilder

import (
	"fmt"

	"github.com/andaru/virtxml/schema"
	"github.com/andaru/virtxml/xmlerr"
	"github.com/andaru/virtxml/xmltree"
	"github.com/andaru/virtxml/xmlutil"
	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// Object is a typed view of one element of a Document. Its fields are
// the properties and child bindings of its schema; reads and writes go
// straight to the underlying tree.
//
// An Object may have no element yet. Single children and objects made
// by Document.NewObject get their element on the first write of a
// non-default value, so reading them never changes the document.
//
// Once its element is removed an Object is dead: every operation on it
// fails with a use-after-remove error.
type Object struct {
	doc    *Document
	schema *schema.Schema
	handle xmltree.Handle

	// parent and slot are set for single children, which locate their
	// element through the parent.
	parent *Object
	slot   *schema.Child

	singles map[string]*Object
	removed bool
}

// Schema returns the object's schema.
func (o *Object) Schema() *schema.Schema { return o.schema }

// Document returns the document the object belongs to.
func (o *Object) Document() *Document { return o.doc }

// Handle returns the object's element, or the zero Handle if it has
// none yet or was removed.
func (o *Object) Handle() xmltree.Handle {
	if o.Removed() {
		return 0
	}
	return o.handle
}

// Removed returns true once the object's element was removed from the
// document.
func (o *Object) Removed() bool {
	if !o.removed && o.handle != 0 && !o.doc.tree.Valid(o.handle) {
		o.removed = true
	}
	return o.removed
}

// Attached returns true if the object's element exists and is
// reachable from the document's root element.
func (o *Object) Attached() bool {
	return !o.Removed() && o.handle != 0 && o.doc.tree.Attached(o.handle)
}

func (o *Object) errRemoved(op string) error {
	return errors.WithStack(xmlerr.UseAfterRemove(o.schema.Tag(), xmlerr.WithOperation(op)))
}

// resolve returns the object's element. When the element does not
// exist it is created if create is true; otherwise the zero Handle is
// returned.
func (o *Object) resolve(op string, create bool) (xmltree.Handle, error) {
	if o.Removed() {
		return 0, o.errRemoved(op)
	}
	if o.handle != 0 {
		return o.handle, nil
	}
	var h xmltree.Handle
	if o.parent == nil {
		if !create {
			return 0, nil
		}
		h = o.doc.tree.NewElement(o.schema.Tag())
		glog.V(2).Infof("new detached <%s>", o.schema.Tag())
	} else {
		ph, err := o.parent.resolve(op, create)
		if err != nil || ph == 0 {
			return 0, err
		}
		container, err := o.doc.locate(ph, o.slot.Container.Elements, create)
		if err != nil || container == 0 {
			return 0, err
		}
		if h = o.doc.tree.FirstElement(container, o.schema.Tag()); h == 0 {
			if !create {
				return 0, nil
			}
			h = o.doc.tree.NewElement(o.schema.Tag())
			if err := o.doc.tree.AppendChild(container, h); err != nil {
				return 0, err
			}
			glog.V(2).Infof("attached %s", o.doc.tree.Path(h))
		}
	}
	o.handle = h
	o.doc.objects[h] = o
	return h, nil
}

func errNilObject(op, field string) error {
	return errors.WithStack(xmlerr.InvalidOperation(op, xmlerr.WithField(field), xmlerr.WithMessage("nil object")))
}

// unbuilt returns the tags resolve would create for o, outermost
// first.
func (o *Object) unbuilt() []string {
	if o.handle != 0 {
		return nil
	}
	var tags []string
	if o.parent != nil {
		tags = append(o.parent.unbuilt(), o.slot.Container.Elements...)
	}
	return append(tags, o.schema.Tag())
}

// declared fails if one of names, element or attribute names about to
// be created below o, uses a namespace prefix which is bound neither
// at o's nearest element nor at the root element.
func (o *Object) declared(op, field string, names ...string) error {
	var scope xmlutil.PrefixMap
	for _, name := range names {
		prefix := xmlutil.ParseQName(name).Space
		if prefix == "" || prefix == "xml" || prefix == "xmlns" {
			continue
		}
		if scope == nil {
			scope = o.scope()
		}
		if _, ok := scope[prefix]; !ok {
			return errors.WithStack(xmlerr.InvalidOperation(op,
				xmlerr.WithElement(o.schema.Tag()), xmlerr.WithField(field), xmlerr.WithValue(name),
				xmlerr.WithMessage(fmt.Sprintf("namespace prefix %s is not declared", prefix))))
		}
	}
	return nil
}

func (o *Object) scope() xmlutil.PrefixMap {
	tree := o.doc.tree
	scope := tree.Scope(tree.Root())
	for it := o; it != nil; it = it.parent {
		if it.handle != 0 {
			for prefix, ns := range tree.Scope(it.handle) {
				scope[prefix] = ns
			}
			break
		}
	}
	return scope
}

func (o *Object) property(op, name string) (*schema.Property, error) {
	p, ok := o.schema.Property(name)
	if !ok {
		return nil, errors.WithStack(xmlerr.UnknownField(o.schema.Tag(), name, xmlerr.WithOperation(op)))
	}
	return p, nil
}

func (o *Object) child(op, name string, single bool) (*schema.Child, error) {
	c, ok := o.schema.Child(name)
	if !ok {
		return nil, errors.WithStack(xmlerr.UnknownField(o.schema.Tag(), name, xmlerr.WithOperation(op)))
	}
	if c.Single != single {
		msg := "field is a child list"
		if c.Single {
			msg = "field is a single child"
		}
		return nil, errors.WithStack(xmlerr.InvalidOperation(op,
			xmlerr.WithElement(o.schema.Tag()), xmlerr.WithField(name), xmlerr.WithMessage(msg)))
	}
	return c, nil
}

// XML returns the serialized form of the object's subtree, indented as
// the document is. An object without an element serializes as an empty
// element.
func (o *Object) XML() (string, error) {
	h, err := o.resolve("xml", false)
	if err != nil {
		return "", err
	}
	if h == 0 {
		empty := xmltree.New(o.schema.Tag())
		return empty.Serialize(empty.Root(), o.doc.indent), nil
	}
	return o.doc.tree.Serialize(h, o.doc.indent), nil
}

// Equal returns true if o and other serialize identically.
func (o *Object) Equal(other *Object) (bool, error) {
	if other == nil {
		return false, errNilObject("equal", "")
	}
	a, err := o.XML()
	if err != nil {
		return false, err
	}
	b, err := other.XML()
	if err != nil {
		return false, err
	}
	return a == b, nil
}

// Snapshot returns every field of the object by name: property values,
// a []map[string]interface{} per child list and a
// map[string]interface{} per single child.
func (o *Object) Snapshot() (map[string]interface{}, error) {
	if o.Removed() {
		return nil, o.errRemoved("snapshot")
	}
	out := map[string]interface{}{}
	for _, p := range o.schema.Properties() {
		v, err := o.Get(p.Name)
		if err != nil {
			return nil, err
		}
		out[p.Name] = v
	}
	for _, c := range o.schema.Children() {
		if c.Single {
			child, err := o.Child(c.Name)
			if err != nil {
				return nil, err
			}
			if out[c.Name], err = child.Snapshot(); err != nil {
				return nil, err
			}
			continue
		}
		children, err := o.Children(c.Name)
		if err != nil {
			return nil, err
		}
		list := make([]map[string]interface{}, 0, len(children))
		for _, child := range children {
			m, err := child.Snapshot()
			if err != nil {
				return nil, err
			}
			list = append(list, m)
		}
		out[c.Name] = list
	}
	return out, nil
}

// Query evaluates an XPath expression with the object's element as the
// context node and returns the text (or attribute value) of each
// match. An object without an element matches nothing.
func (o *Object) Query(expr string) ([]string, error) {
	h, err := o.resolve("query", false)
	if err != nil {
		return nil, err
	}
	if h == 0 {
		_, err := o.doc.tree.Compile(expr)
		return nil, err
	}
	matches, err := o.doc.tree.Select(h, expr)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Value)
	}
	return out, nil
}
