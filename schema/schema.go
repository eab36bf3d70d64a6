package schema

import (
	"fmt"

	"github.com/andaru/virtxml/xmlerr"
	"github.com/pkg/errors"
)

// Property binds a field name to a location in an object's subtree.
type Property struct {
	Name     string
	Path     string
	Location Location
	Kind     Kind
	// Default is the stored form of the declared default, or "" if
	// none was declared.
	Default string

	defaultValue interface{}
}

// Child binds a field name to child objects of schema Schema, found
// below the container location. A Single child is the first matching
// element and is created on first write; otherwise the binding is an
// ordered list of every matching element.
type Child struct {
	Name      string
	Path      string
	Container Location
	Schema    *Schema
	Single    bool
}

// Schema is the statically declared binding table of an object type.
// Schemas are built once, typically into package variables, and are
// read-only afterwards.
type Schema struct {
	tag      string
	props    []*Property
	children []*Child
	fields   map[string]interface{}
	err      error
}

// Option is a Schema constructor option.
type Option func(*Schema)

// PropertyOption is a property declaration option.
type PropertyOption func(*Property)

// YesNo declares a boolean property stored as "yes"/"no".
func YesNo() PropertyOption { return func(p *Property) { p.Kind = KindYesNo } }

// OnOff declares a boolean property stored as "on"/"off".
func OnOff() PropertyOption { return func(p *Property) { p.Kind = KindOnOff } }

// Int declares an integer property.
func Int() PropertyOption { return func(p *Property) { p.Kind = KindInt } }

// Presence declares a boolean property which is true when its element
// exists. The location must name an element.
func Presence() PropertyOption { return func(p *Property) { p.Kind = KindPresence } }

// Default declares the property's default value, given in its
// in-memory form. A property holding its default is not written.
func Default(v interface{}) PropertyOption { return func(p *Property) { p.defaultValue = v } }

// New builds the schema for elements named tag.
func New(tag string, opts ...Option) (*Schema, error) {
	s := &Schema{tag: tag, fields: map[string]interface{}{}}
	if !validName(tag) {
		s.fail(xmlerr.InvalidExpression(tag, xmlerr.WithMessage("invalid element name")))
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.err != nil {
		return nil, s.err
	}
	return s, nil
}

// MustNew is New, panicking on error. It is intended for package
// level schema declarations.
func MustNew(tag string, opts ...Option) *Schema {
	s, err := New(tag, opts...)
	if err != nil {
		panic(fmt.Sprintf("schema <%s>: %v", tag, err))
	}
	return s
}

// WithProperty declares the property name at location path.
func WithProperty(name, path string, opts ...PropertyOption) Option {
	return func(s *Schema) {
		if !s.claim(name) {
			return
		}
		loc, err := ParseLocation(path)
		if err != nil {
			s.fail(err)
			return
		}
		p := &Property{Name: name, Path: path, Location: loc}
		for _, opt := range opts {
			opt(p)
		}
		if p.Kind == KindPresence && (loc.Attr != "" || len(loc.Elements) == 0) {
			s.fail(xmlerr.InvalidExpression(path, xmlerr.WithField(name),
				xmlerr.WithMessage("presence property must name an element")))
			return
		}
		if p.defaultValue != nil {
			if p.Kind == KindPresence {
				s.fail(xmlerr.InvalidOperation("register", xmlerr.WithField(name),
					xmlerr.WithMessage("presence property cannot declare a default")))
				return
			}
			if p.Default, err = p.Encode(p.defaultValue); err != nil {
				s.fail(err)
				return
			}
		}
		s.props = append(s.props, p)
		s.fields[name] = p
	}
}

// WithChildren declares the child list name: every element named
// after child's tag below the container location (use "." for direct
// children).
func WithChildren(name, container string, child *Schema) Option {
	return withChild(name, container, child, false)
}

// WithChild declares the single child name: the first element named
// after child's tag below the container location. The child's element
// is created when one of its properties is first written.
func WithChild(name, container string, child *Schema) Option {
	return withChild(name, container, child, true)
}

func withChild(name, container string, child *Schema, single bool) Option {
	return func(s *Schema) {
		if !s.claim(name) {
			return
		}
		if child == nil {
			s.fail(xmlerr.InvalidOperation("register", xmlerr.WithField(name),
				xmlerr.WithMessage("nil child schema")))
			return
		}
		loc, err := ParseLocation(container)
		if err != nil {
			s.fail(err)
			return
		}
		if loc.Attr != "" {
			s.fail(xmlerr.InvalidExpression(container, xmlerr.WithField(name),
				xmlerr.WithMessage("child container must name an element")))
			return
		}
		c := &Child{Name: name, Path: container, Container: loc, Schema: child, Single: single}
		s.children = append(s.children, c)
		s.fields[name] = c
	}
}

func (s *Schema) claim(name string) bool {
	if name == "" {
		s.fail(xmlerr.InvalidOperation("register", xmlerr.WithElement(s.tag),
			xmlerr.WithMessage("empty field name")))
		return false
	}
	if _, dup := s.fields[name]; dup {
		s.fail(xmlerr.InvalidOperation("register", xmlerr.WithElement(s.tag),
			xmlerr.WithField(name), xmlerr.WithMessage("duplicate field name")))
		return false
	}
	return true
}

func (s *Schema) fail(err error) {
	if s.err == nil {
		s.err = errors.WithStack(err)
	}
}

// Tag returns the element name of objects of this schema.
func (s *Schema) Tag() string { return s.tag }

// Properties returns the declared properties in declaration order.
func (s *Schema) Properties() []*Property { return s.props }

// Children returns the declared child bindings in declaration order.
func (s *Schema) Children() []*Child { return s.children }

// Property returns the property declared as name.
func (s *Schema) Property(name string) (*Property, bool) {
	p, ok := s.fields[name].(*Property)
	return p, ok
}

// Child returns the child binding declared as name.
func (s *Schema) Child(name string) (*Child, bool) {
	c, ok := s.fields[name].(*Child)
	return c, ok
}
