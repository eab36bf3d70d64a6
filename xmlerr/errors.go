package xmlerr

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/pkg/errors"
)

// Kind represents the class of a mapping layer error
type Kind int

const (
	// KindParse indicates the input text is not well-formed markup
	KindParse Kind = iota
	// KindMalformedValue indicates a stored value failed its declared coercion
	KindMalformedValue
	// KindNotFound indicates an object is not a member of the target child list
	KindNotFound
	// KindUseAfterRemove indicates an operation on an object whose node was removed
	KindUseAfterRemove
	// KindInvalidExpression indicates a location or query expression did not compile
	KindInvalidExpression
	// KindUnknownField indicates a field name the schema does not declare
	KindUnknownField
	// KindInvalidOperation indicates a request that does not apply to the target
	KindInvalidOperation
)

func (k Kind) String() string {
	switch k {
	case KindParse:
		return "parse"
	case KindMalformedValue:
		return "malformed-value"
	case KindNotFound:
		return "not-found"
	case KindUseAfterRemove:
		return "use-after-remove"
	case KindInvalidExpression:
		return "invalid-expression"
	case KindUnknownField:
		return "unknown-field"
	case KindInvalidOperation:
		return "invalid-operation"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

func (k *Kind) UnmarshalText(b []byte) error {
	b = bytes.TrimSpace(b)
	for c := KindParse; c <= KindInvalidOperation; c++ {
		if string(b) == c.String() {
			*k = c
			return nil
		}
	}
	return errors.New("unknown value")
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Error is a mapping layer error.
//
// Errors marshal to XML and JSON so that front ends may report them
// in the same form they report documents.
type Error struct {
	XMLName   xml.Name `xml:"error" json:"-"`
	Kind      Kind     `xml:"kind" json:"kind"`
	Element   string   `xml:"element,omitempty" json:"element,omitempty"`
	Path      string   `xml:"path,omitempty" json:"path,omitempty"`
	Value     string   `xml:"value,omitempty" json:"value,omitempty"`
	Message   string   `xml:"message,omitempty" json:"message,omitempty"`
	Line      int      `xml:"line,omitempty" json:"line,omitempty"`
	Field     string   `xml:"field,omitempty" json:"field,omitempty"`
	Operation string   `xml:"operation,omitempty" json:"operation,omitempty"`
}

func (e Error) Error() string {
	s := e.Kind.String() + " error"
	if e.Operation != "" {
		s += " op:" + e.Operation
	}
	if e.Element != "" {
		s += " element:" + e.Element
	}
	if e.Field != "" {
		s += " field:" + e.Field
	}
	if e.Path != "" {
		s += " path:" + e.Path
	}
	if e.Value != "" {
		s += fmt.Sprintf(" value:%q", e.Value)
	}
	if e.Line > 0 {
		s += fmt.Sprintf(" line:%d", e.Line)
	}
	if e.Message != "" {
		s += " " + e.Message
	}
	return s
}

// Is reports whether err, or any error it wraps, is an *Error of kind k.
func Is(err error, k Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == k
	}
	return false
}

// KindOf returns the kind of the *Error wrapped by err, if any.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

func newError(k Kind, opts []Option) *Error {
	e := &Error{Kind: k}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Parse returns a parse error. Syntax errors from encoding/xml
// contribute their line number.
func Parse(cause error, opts ...Option) *Error {
	e := newError(KindParse, opts)
	if cause != nil {
		var se *xml.SyntaxError
		if errors.As(cause, &se) {
			e.Line = se.Line
		}
		if e.Message == "" {
			e.Message = cause.Error()
		}
	}
	return e
}

func MalformedValue(path, value string, opts ...Option) *Error {
	e := newError(KindMalformedValue, opts)
	e.Path, e.Value = path, value
	return e
}

func NotFound(element string, opts ...Option) *Error {
	e := newError(KindNotFound, opts)
	e.Element = element
	return e
}

func UseAfterRemove(element string, opts ...Option) *Error {
	e := newError(KindUseAfterRemove, opts)
	e.Element = element
	return e
}

func InvalidExpression(expr string, opts ...Option) *Error {
	e := newError(KindInvalidExpression, opts)
	e.Path = expr
	return e
}

func UnknownField(element, field string, opts ...Option) *Error {
	e := newError(KindUnknownField, opts)
	e.Element, e.Field = element, field
	return e
}

func InvalidOperation(op string, opts ...Option) *Error {
	e := newError(KindInvalidOperation, opts)
	e.Operation = op
	return e
}
