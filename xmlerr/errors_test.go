package xmlerr

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	for _, tc := range []struct {
		err *Error

		error string
		xml   string
		json  string
	}{
		{
			err:   MalformedValue("./@present", "maybe", WithElement("timer")),
			error: `malformed-value error element:timer path:./@present value:"maybe"`,
			xml:   `<error><kind>malformed-value</kind><element>timer</element><path>./@present</path><value>maybe</value></error>`,
			json:  `{"kind":"malformed-value","element":"timer","path":"./@present","value":"maybe"}`,
		},

		{
			err:   NotFound("timer", WithField("timers")),
			error: "not-found error element:timer field:timers",
			xml:   `<error><kind>not-found</kind><element>timer</element><field>timers</field></error>`,
			json:  `{"kind":"not-found","element":"timer","field":"timers"}`,
		},

		{
			err:   UseAfterRemove("timer"),
			error: "use-after-remove error element:timer",
			xml:   `<error><kind>use-after-remove</kind><element>timer</element></error>`,
			json:  `{"kind":"use-after-remove","element":"timer"}`,
		},

		{
			err:   InvalidExpression("./@", WithMessage("bad step")),
			error: "invalid-expression error path:./@ bad step",
			xml:   `<error><kind>invalid-expression</kind><path>./@</path><message>bad step</message></error>`,
			json:  `{"kind":"invalid-expression","path":"./@","message":"bad step"}`,
		},

		{
			err:   UnknownField("clock", "drift"),
			error: "unknown-field error element:clock field:drift",
			xml:   `<error><kind>unknown-field</kind><element>clock</element><field>drift</field></error>`,
			json:  `{"kind":"unknown-field","element":"clock","field":"drift"}`,
		},

		{
			err:   InvalidOperation("append", WithMessage("object is attached")),
			error: "invalid-operation error op:append object is attached",
			xml:   `<error><kind>invalid-operation</kind><message>object is attached</message><operation>append</operation></error>`,
			json:  `{"kind":"invalid-operation","message":"object is attached","operation":"append"}`,
		},
	} {
		t.Run(fmt.Sprintf("%v", tc.err), func(t *testing.T) {
			check := assert.New(t)
			bXML, _ := xml.Marshal(tc.err)
			bJSON, _ := json.Marshal(tc.err)
			check.Equal(tc.error, tc.err.Error())
			check.Equal(tc.json, string(bJSON))
			check.Equal(tc.xml, string(bXML))

			ev := Error{}
			if check.NoError(xml.Unmarshal(bXML, &ev)) {
				evXML, _ := xml.Marshal(ev)
				check.Equal(tc.xml, string(evXML))
			}
			ev = Error{}
			if check.NoError(json.Unmarshal(bJSON, &ev)) {
				evJSON, _ := json.Marshal(ev)
				check.Equal(tc.json, string(evJSON))
			}
		})
	}
}

func TestParseLine(t *testing.T) {
	check := assert.New(t)
	var se error = &xml.SyntaxError{Msg: "unexpected EOF", Line: 3}
	e := Parse(errors.WithStack(se))
	check.Equal(KindParse, e.Kind)
	check.Equal(3, e.Line)
	check.Equal("parse error line:3 XML syntax error on line 3: unexpected EOF", e.Error())

	check.Equal("parse error no root element", Parse(nil, WithMessage("no root element")).Error())
}

func TestIs(t *testing.T) {
	check := assert.New(t)
	err := errors.WithStack(NotFound("timer"))
	check.True(Is(err, KindNotFound))
	check.False(Is(err, KindParse))
	check.False(Is(errors.New("plain"), KindNotFound))
	check.False(Is(nil, KindNotFound))

	k, ok := KindOf(errors.Wrap(UseAfterRemove("timer"), "add"))
	check.True(ok)
	check.Equal(KindUseAfterRemove, k)
	_, ok = KindOf(errors.New("plain"))
	check.False(ok)
}

func TestKindText(t *testing.T) {
	check := assert.New(t)
	for k := KindParse; k <= KindInvalidOperation; k++ {
		b, err := k.MarshalText()
		check.NoError(err)
		var got Kind
		check.NoError(got.UnmarshalText(b))
		check.Equal(k, got)
	}
	var k Kind
	check.Error(k.UnmarshalText([]byte("bogus")))
	check.Equal("Kind(99)", Kind(99).String())
}
