package schema

import (
	"strings"

	"github.com/andaru/virtxml/xmlerr"
	"github.com/antchfx/xpath"
	"github.com/pkg/errors"
)

// Location is a parsed location expression, relative to an object's
// element. Elements lists the element steps below the object's
// element, in order. Attr names the attribute at the end of the path;
// when empty, the location addresses the text of the last element (or
// of the object's own element, when Elements is empty too).
type Location struct {
	Elements []string
	Attr     string
}

// IsSelf returns true if the location is the object's own element.
func (l Location) IsSelf() bool { return len(l.Elements) == 0 && l.Attr == "" }

func (l Location) String() string {
	parts := append([]string{"."}, l.Elements...)
	if l.Attr != "" {
		parts = append(parts, "@"+l.Attr)
	}
	return strings.Join(parts, "/")
}

// ParseLocation parses a location expression. Accepted forms are "."
// (own text), "./a/b" (text of a nested element) and "./a/@c" or
// "./@c" (an attribute). The leading "./" may be omitted. Names may be
// prefixed ("qemu:arg"). The expression must also compile as XPath.
func ParseLocation(expr string) (Location, error) {
	var loc Location
	fail := func(msg string) (Location, error) {
		return Location{}, errors.WithStack(xmlerr.InvalidExpression(expr, xmlerr.WithMessage(msg)))
	}
	if _, err := xpath.Compile(expr); err != nil {
		return fail(err.Error())
	}

	s := strings.TrimSpace(expr)
	switch {
	case s == ".":
		return loc, nil
	case strings.HasPrefix(s, "./"):
		s = s[2:]
	}
	steps := strings.Split(s, "/")
	for i, step := range steps {
		last := i == len(steps)-1
		if last && strings.HasPrefix(step, "@") {
			if !validName(step[1:]) {
				return fail("invalid attribute name " + step)
			}
			loc.Attr = step[1:]
			break
		}
		if !validName(step) {
			return fail("invalid element step " + step)
		}
		loc.Elements = append(loc.Elements, step)
	}
	return loc, nil
}

// validName accepts plain and prefixed XML names; the XPath compile
// step has already rejected most malformed input.
func validName(s string) bool {
	if s == "" || s == "." || s == ".." || strings.ContainsAny(s, "@[]()*=|,'\" \t\n") {
		return false
	}
	if i := strings.IndexByte(s, ':'); i == 0 || i == len(s)-1 || strings.Count(s, ":") > 1 {
		return false
	}
	return true
}
