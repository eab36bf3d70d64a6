package xmlbuilder

import (
	"github.com/andaru/virtxml/xmlerr"
	"github.com/andaru/virtxml/xmltree"
	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// Children returns the objects of the child list name in document
// order. Repeated calls return the same *Object for the same element.
func (o *Object) Children(name string) ([]*Object, error) {
	c, err := o.child("children", name, false)
	if err != nil {
		return nil, err
	}
	container, err := o.container("children", c.Container.Elements, false)
	if err != nil || container == 0 {
		return nil, err
	}
	elements := o.doc.tree.Elements(container, c.Schema.Tag())
	out := make([]*Object, 0, len(elements))
	for _, h := range elements {
		out = append(out, o.doc.objectFor(h, c.Schema))
	}
	return out, nil
}

// AddChild creates a new empty member at the end of the child list
// name. Its element is added to the document immediately.
func (o *Object) AddChild(name string) (*Object, error) {
	if o.Removed() {
		return nil, o.errRemoved("add")
	}
	c, err := o.child("add", name, false)
	if err != nil {
		return nil, err
	}
	names := append(o.unbuilt(), c.Container.Elements...)
	if err := o.declared("add", name, append(names, c.Schema.Tag())...); err != nil {
		return nil, err
	}
	container, err := o.container("add", c.Container.Elements, true)
	if err != nil {
		return nil, err
	}
	h := o.doc.tree.NewElement(c.Schema.Tag())
	if err := o.doc.tree.AppendChild(container, h); err != nil {
		return nil, err
	}
	glog.V(2).Infof("added %s", o.doc.tree.Path(h))
	return o.doc.objectFor(h, c.Schema), nil
}

// Append adds child, an object made by Document.NewObject, at the end
// of the child list name. A child without an element yet gets an empty
// one.
func (o *Object) Append(name string, child *Object) error {
	c, err := o.child("append", name, false)
	if err != nil {
		return err
	}
	if child == nil {
		return errNilObject("append", name)
	}
	if child.Removed() {
		return child.errRemoved("append")
	}
	invalid := func(msg string) error {
		return errors.WithStack(xmlerr.InvalidOperation("append",
			xmlerr.WithElement(child.schema.Tag()), xmlerr.WithField(name), xmlerr.WithMessage(msg)))
	}
	switch {
	case child.doc != o.doc:
		return invalid("object belongs to another document")
	case child.schema != c.Schema:
		return invalid("object schema does not match the child list")
	case child.parent != nil || (child.handle != 0 && o.doc.tree.Parent(child.handle) != 0):
		return invalid("object is already a child")
	case child.handle == o.doc.tree.Root():
		return invalid("cannot append the root element")
	}
	container, err := o.container("append", c.Container.Elements, true)
	if err != nil {
		return err
	}
	h, err := child.resolve("append", true)
	if err != nil {
		return err
	}
	if err := o.doc.tree.AppendChild(container, h); err != nil {
		return err
	}
	glog.V(2).Infof("appended %s", o.doc.tree.Path(h))
	return nil
}

// RemoveChild removes child, a member of the child list or the single
// child name, and its whole subtree from the document. Objects mapped
// into the subtree are dead afterwards. A child which is not a member
// is reported as not found and nothing changes.
func (o *Object) RemoveChild(name string, child *Object) error {
	c, ok := o.schema.Child(name)
	if !ok {
		return errors.WithStack(xmlerr.UnknownField(o.schema.Tag(), name, xmlerr.WithOperation("remove")))
	}
	if _, err := o.resolve("remove", false); err != nil {
		return err
	}
	if child == nil {
		return errNilObject("remove", name)
	}
	if child.Removed() {
		return child.errRemoved("remove")
	}
	notFound := errors.WithStack(xmlerr.NotFound(child.schema.Tag(),
		xmlerr.WithOperation("remove"), xmlerr.WithField(name)))
	if c.Single {
		if o.singles[name] != child || child.handle == 0 {
			return notFound
		}
		if err := o.doc.remove(child.handle); err != nil {
			return err
		}
		delete(o.singles, name)
		return nil
	}
	members, err := o.Children(name)
	if err != nil {
		return err
	}
	for _, m := range members {
		if m == child {
			return o.doc.remove(child.handle)
		}
	}
	return notFound
}

// Child returns the single child name. The same *Object is returned on
// every call. If the child's element does not exist the object is
// still returned; the element is created when one of its properties is
// first written a non-default value.
func (o *Object) Child(name string) (*Object, error) {
	c, err := o.child("child", name, true)
	if err != nil {
		return nil, err
	}
	if o.Removed() {
		return nil, o.errRemoved("child")
	}
	if child, ok := o.singles[name]; ok && !child.Removed() {
		return child, nil
	}
	child := &Object{doc: o.doc, schema: c.Schema, parent: o, slot: c}
	if container, err := o.container("child", c.Container.Elements, false); err != nil {
		return nil, err
	} else if container != 0 {
		if h := o.doc.tree.FirstElement(container, c.Schema.Tag()); h != 0 {
			if cached, ok := o.doc.objects[h]; ok {
				child = cached
			} else {
				child.handle = h
				o.doc.objects[h] = child
			}
		}
	}
	if o.singles == nil {
		o.singles = map[string]*Object{}
	}
	o.singles[name] = child
	return child, nil
}

// container returns the element below o holding a child binding's
// members.
func (o *Object) container(op string, steps []string, create bool) (xmltree.Handle, error) {
	h, err := o.resolve(op, create)
	if err != nil || h == 0 {
		return 0, err
	}
	return o.doc.locate(h, steps, create)
}
