package schema

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/andaru/virtxml/xmlerr"
	"github.com/pkg/errors"
)

// Kind is a property's coercion between its stored (wire) form and
// its in-memory value.
type Kind int

const (
	// KindString values are stored verbatim
	KindString Kind = iota
	// KindYesNo booleans are stored as "yes" or "no"
	KindYesNo
	// KindOnOff booleans are stored as "on" or "off"
	KindOnOff
	// KindInt values are stored in decimal. Hexadecimal ("0x") input is
	// accepted on read.
	KindInt
	// KindPresence booleans are true when the property's element exists
	KindPresence
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindYesNo:
		return "yesno"
	case KindOnOff:
		return "onoff"
	case KindInt:
		return "int"
	case KindPresence:
		return "presence"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// IsBool returns true for the kinds holding a bool value.
func (k Kind) IsBool() bool { return k == KindYesNo || k == KindOnOff || k == KindPresence }

var boolTokens = map[Kind][2]string{
	KindYesNo: {"no", "yes"},
	KindOnOff: {"off", "on"},
}

// Decode converts the stored form raw of property p to its value:
// string for KindString, bool for KindYesNo, KindOnOff and KindPresence, int for KindInt.
// For KindPresence, a present element is any raw value.
func (p *Property) Decode(raw string) (interface{}, error) {
	switch p.Kind {
	case KindString:
		return raw, nil
	case KindPresence:
		return true, nil
	case KindYesNo, KindOnOff:
		tokens := boolTokens[p.Kind]
		switch raw {
		case tokens[1]:
			return true, nil
		case tokens[0]:
			return false, nil
		}
		return nil, p.malformed(raw, "want "+tokens[1]+" or "+tokens[0])
	case KindInt:
		s := strings.TrimSpace(raw)
		var (
			v   int64
			err error
		)
		if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
			v, err = strconv.ParseInt(s[2:], 16, 64)
		} else {
			v, err = strconv.ParseInt(s, 10, 64)
		}
		if err != nil {
			return nil, p.malformed(raw, "want an integer")
		}
		return int(v), nil
	}
	return nil, p.malformed(raw, "unknown kind "+p.Kind.String())
}

// Encode converts v to the stored form of property p. KindPresence
// properties encode to the empty string; their value is expressed by
// the element's existence. Strings which cannot be written as XML
// character data, and integers out of the range Decode reads back, are
// rejected.
func (p *Property) Encode(v interface{}) (string, error) {
	switch p.Kind {
	case KindString:
		if s, ok := v.(string); ok {
			if !utf8.ValidString(s) {
				return "", p.malformed(s, "invalid UTF-8")
			}
			if r, ok := xmlChars(s); !ok {
				return "", p.malformed(s, fmt.Sprintf("character %U is not allowed in XML", r))
			}
			return s, nil
		}
	case KindYesNo, KindOnOff:
		if b, ok := v.(bool); ok {
			if b {
				return boolTokens[p.Kind][1], nil
			}
			return boolTokens[p.Kind][0], nil
		}
	case KindPresence:
		if _, ok := v.(bool); ok {
			return "", nil
		}
	case KindInt:
		switch i := v.(type) {
		case int:
			return strconv.Itoa(i), nil
		case int64:
			return strconv.FormatInt(i, 10), nil
		case int32:
			return strconv.FormatInt(int64(i), 10), nil
		case uint:
			return p.encodeUint(uint64(i))
		case uint64:
			return p.encodeUint(i)
		case uint32:
			return strconv.FormatUint(uint64(i), 10), nil
		}
	}
	return "", errors.WithStack(xmlerr.InvalidOperation("encode",
		xmlerr.WithField(p.Name), xmlerr.WithPath(p.Path),
		xmlerr.WithValue(fmt.Sprint(v)),
		xmlerr.WithMessage(fmt.Sprintf("%T is not a %s value", v, p.Kind))))
}

func (p *Property) encodeUint(i uint64) (string, error) {
	if i > math.MaxInt {
		return "", errors.WithStack(xmlerr.InvalidOperation("encode",
			xmlerr.WithField(p.Name), xmlerr.WithPath(p.Path),
			xmlerr.WithValue(strconv.FormatUint(i, 10)),
			xmlerr.WithMessage("value overflows int")))
	}
	return strconv.FormatUint(i, 10), nil
}

// xmlChars reports whether every rune of s is an XML 1.0 Char. If
// not, the first offending rune is returned.
func xmlChars(s string) (rune, bool) {
	for _, r := range s {
		switch {
		case r == 0x9 || r == 0xA || r == 0xD:
		case r >= 0x20 && r <= 0xD7FF:
		case r >= 0xE000 && r <= 0xFFFD:
		case r >= 0x10000 && r <= 0x10FFFF:
		default:
			return r, false
		}
	}
	return 0, true
}

// Zero returns the value of p when it is absent from the document:
// the declared default, or the kind's zero value when none was
// declared.
func (p *Property) Zero() interface{} {
	switch {
	case p.Kind == KindPresence:
		return false
	case p.Default != "":
	case p.Kind == KindInt:
		return 0
	case p.Kind.IsBool():
		return false
	}
	v, err := p.Decode(p.Default)
	if err != nil {
		// defaults are encoded and checked by New
		panic(err)
	}
	return v
}

// IsDefault returns true if raw, a stored form, equals p's declared
// default. Such values are never written.
func (p *Property) IsDefault(raw string) bool { return raw == p.Default }

func (p *Property) malformed(raw, msg string) error {
	return errors.WithStack(xmlerr.MalformedValue(p.Path, raw,
		xmlerr.WithField(p.Name), xmlerr.WithMessage(msg)))
}
