package xmlbuilder

import (
	"fmt"

	"github.com/andaru/virtxml/schema"
	"github.com/andaru/virtxml/xmlerr"
	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// Get returns the value of the property name: a string, bool or int
// according to its kind. An absent property reads as its default.
func (o *Object) Get(name string) (interface{}, error) {
	if o.Removed() {
		return nil, o.errRemoved("get")
	}
	p, err := o.property("get", name)
	if err != nil {
		return nil, err
	}
	h, err := o.resolve("get", false)
	if err != nil {
		return nil, err
	}
	if h == 0 {
		return p.Zero(), nil
	}
	chain := o.doc.chain(h, p.Location.Elements)
	if len(chain) < len(p.Location.Elements) {
		return p.Zero(), nil
	}
	if p.Kind == schema.KindPresence {
		return true, nil
	}
	el := h
	if len(chain) > 0 {
		el = chain[len(chain)-1]
	}
	var raw string
	if p.Location.Attr != "" {
		var ok bool
		if raw, ok = o.doc.tree.Attr(el, p.Location.Attr); !ok {
			return p.Zero(), nil
		}
	} else if raw = o.doc.tree.Text(el); raw == "" {
		return p.Zero(), nil
	}
	return p.Decode(raw)
}

// Set writes v to the property name. A value equal to the property's
// default removes the stored value instead; so does false for a
// presence property.
func (o *Object) Set(name string, v interface{}) error {
	if o.Removed() {
		return o.errRemoved("set")
	}
	p, err := o.property("set", name)
	if err != nil {
		return err
	}
	raw, err := p.Encode(v)
	if err != nil {
		return err
	}
	if p.Kind == schema.KindPresence {
		if !v.(bool) {
			return o.clear(p)
		}
	} else if p.IsDefault(raw) {
		return o.clear(p)
	}
	names := append(o.unbuilt(), p.Location.Elements...)
	if p.Location.Attr != "" {
		names = append(names, p.Location.Attr)
	}
	if err := o.declared("set", p.Name, names...); err != nil {
		return err
	}
	h, err := o.resolve("set", true)
	if err != nil {
		return err
	}
	el, err := o.doc.locate(h, p.Location.Elements, true)
	if err != nil {
		return err
	}
	switch {
	case p.Kind == schema.KindPresence:
	case p.Location.Attr != "":
		err = o.doc.tree.SetAttr(el, p.Location.Attr, raw)
	default:
		err = o.doc.tree.SetText(el, raw)
	}
	if err != nil {
		return err
	}
	if glog.V(3) {
		glog.Infof("%s: set %s=%q", o.doc.tree.Path(h), p.Name, raw)
	}
	return nil
}

// Clear removes the stored value of the property name, so that it
// reads as its default.
func (o *Object) Clear(name string) error {
	if o.Removed() {
		return o.errRemoved("clear")
	}
	p, err := o.property("clear", name)
	if err != nil {
		return err
	}
	return o.clear(p)
}

// clear removes p's stored value and then any element of p's location
// left empty by that. The object's own element is kept.
func (o *Object) clear(p *schema.Property) error {
	h, err := o.resolve("clear", false)
	if err != nil || h == 0 {
		return err
	}
	chain := o.doc.chain(h, p.Location.Elements)
	if len(chain) < len(p.Location.Elements) {
		return nil
	}
	switch {
	case p.Kind == schema.KindPresence:
		last := chain[len(chain)-1]
		if _, ok := o.doc.objects[last]; ok {
			return errors.WithStack(xmlerr.InvalidOperation("clear", xmlerr.WithField(p.Name),
				xmlerr.WithPath(p.Path), xmlerr.WithMessage("element backs an object")))
		}
		if err := o.doc.tree.Remove(last); err != nil {
			return err
		}
		chain = chain[:len(chain)-1]
	case p.Location.Attr != "":
		el := h
		if len(chain) > 0 {
			el = chain[len(chain)-1]
		}
		if _, err := o.doc.tree.RemoveAttr(el, p.Location.Attr); err != nil {
			return err
		}
	default:
		el := h
		if len(chain) > 0 {
			el = chain[len(chain)-1]
		}
		if err := o.doc.tree.SetText(el, ""); err != nil {
			return err
		}
	}
	if glog.V(3) {
		glog.Infof("%s: cleared %s", o.doc.tree.Path(h), p.Name)
	}
	return o.doc.prune(chain)
}

// GetString returns the value of the string property name.
func (o *Object) GetString(name string) (string, error) {
	v, err := o.typed("get", name, schema.KindString)
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// GetBool returns the value of the yes/no, on/off or presence
// property name.
func (o *Object) GetBool(name string) (bool, error) {
	v, err := o.typed("get", name, schema.KindYesNo, schema.KindOnOff, schema.KindPresence)
	if err != nil {
		return false, err
	}
	return v.(bool), nil
}

// GetInt returns the value of the integer property name.
func (o *Object) GetInt(name string) (int, error) {
	v, err := o.typed("get", name, schema.KindInt)
	if err != nil {
		return 0, err
	}
	return v.(int), nil
}

func (o *Object) SetString(name, v string) error { return o.Set(name, v) }

func (o *Object) SetBool(name string, v bool) error { return o.Set(name, v) }

func (o *Object) SetInt(name string, v int) error { return o.Set(name, v) }

func (o *Object) typed(op, name string, kinds ...schema.Kind) (interface{}, error) {
	if o.Removed() {
		return nil, o.errRemoved(op)
	}
	p, err := o.property(op, name)
	if err != nil {
		return nil, err
	}
	for _, k := range kinds {
		if p.Kind == k {
			return o.Get(name)
		}
	}
	return nil, errors.WithStack(xmlerr.InvalidOperation(op,
		xmlerr.WithElement(o.schema.Tag()), xmlerr.WithField(name),
		xmlerr.WithMessage(fmt.Sprintf("field is a %s property", p.Kind))))
}
