package xmltree

import (
	"github.com/andaru/virtxml/xmlerr"
	"github.com/andaru/virtxml/xmlutil"
	"github.com/antchfx/xpath"
	"github.com/pkg/errors"
)

// Match is a node selected by an XPath expression.
type Match struct {
	// Node is the matched element, or the element owning the matched attribute.
	Node Handle
	// Attr is the qualified name of the matched attribute, if any.
	Attr string
	// Value is the attribute value or the element's text content.
	Value string
}

// Namespaces returns the namespace declarations of the root element.
func (d *Document) Namespaces() xmlutil.PrefixMap { return d.Scope(d.root) }

// Compile compiles an XPath expression against the prefixes declared
// on the document's root element.
func (d *Document) Compile(expr string) (*xpath.Expr, error) {
	var (
		x   *xpath.Expr
		err error
	)
	if ns := d.Namespaces().Prefixed(); len(ns) > 0 {
		x, err = xpath.CompileWithNS(expr, ns)
	} else {
		x, err = xpath.Compile(expr)
	}
	if err != nil {
		return nil, errors.WithStack(xmlerr.InvalidExpression(expr, xmlerr.WithMessage(err.Error())))
	}
	return x, nil
}

// Select evaluates expr with h as the context node and returns the
// matching elements and attributes in document order.
func (d *Document) Select(h Handle, expr string) ([]Match, error) {
	x, err := d.Compile(expr)
	if err != nil {
		return nil, err
	}
	if !d.Valid(h) {
		return nil, errors.WithStack(xmlerr.UseAfterRemove("", xmlerr.WithOperation("select"),
			xmlerr.WithMessage("invalid node handle")))
	}
	return d.collect(x.Select(d.Navigator(h))), nil
}

// Evaluate evaluates expr with h as the context node. The result is a
// float64, string or bool for scalar expressions, or []Match for node
// sets.
func (d *Document) Evaluate(h Handle, expr string) (interface{}, error) {
	x, err := d.Compile(expr)
	if err != nil {
		return nil, err
	}
	if !d.Valid(h) {
		return nil, errors.WithStack(xmlerr.UseAfterRemove("", xmlerr.WithOperation("evaluate"),
			xmlerr.WithMessage("invalid node handle")))
	}
	switch v := x.Evaluate(d.Navigator(h)).(type) {
	case *xpath.NodeIterator:
		return d.collect(v), nil
	default:
		return v, nil
	}
}

func (d *Document) collect(it *xpath.NodeIterator) (out []Match) {
	for it.MoveNext() {
		nav, ok := it.Current().(*Navigator)
		if !ok || nav.curr == 0 {
			continue
		}
		out = append(out, Match{Node: nav.curr, Attr: nav.AttrName(), Value: nav.Value()})
	}
	return out
}
