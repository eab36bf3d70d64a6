package xmlutil

import (
	"encoding/xml"
	"testing"

	"github.com/stretchr/testify/assert"
)

type strPair struct{ a, b string }

func TestPrefixMap(t *testing.T) {
	for _, tc := range []struct {
		attrs     []xml.Attr
		nsTest    []strPair
		pfxTest   []strPair
		sortAttrs []xml.Attr
		prefixed  map[string]string
	}{
		// identity check (no tests to run and an empty sortAttrs is expected)
		{prefixed: map[string]string{}},

		{
			attrs: []xml.Attr{
				{Name: XMLName("pfx-b", "xmlns"), Value: "val-b"},
				{Name: XMLName("name"), Value: "not-a-namespace"},
				{Name: XMLName("pfx-a", "xmlns"), Value: "val-a"},
				{Name: XMLName("xmlns"), Value: "val-default"},
				{Name: XMLName("pfx-c", "xmlns"), Value: "val-c"},
			},
			nsTest: []strPair{
				{a: "pfx-a", b: "val-a"},
				{a: "pfx-b", b: "val-b"},
				{a: "pfx-c", b: "val-c"},
				{a: "", b: "val-default"},
				{a: "name", b: ""},
			},
			pfxTest: []strPair{
				{b: "pfx-a", a: "val-a"},
				{b: "pfx-b", a: "val-b"},
				{b: "pfx-c", a: "val-c"},
				{b: "", a: "not-a-namespace"},
			},
			sortAttrs: []xml.Attr{
				{Name: XMLName("xmlns"), Value: "val-default"},
				{Name: XMLName("pfx-a", "xmlns"), Value: "val-a"},
				{Name: XMLName("pfx-b", "xmlns"), Value: "val-b"},
				{Name: XMLName("pfx-c", "xmlns"), Value: "val-c"},
			},
			prefixed: map[string]string{"pfx-a": "val-a", "pfx-b": "val-b", "pfx-c": "val-c"},
		},
	} {
		t.Run("", func(t *testing.T) {
			a := assert.New(t)
			pmap := NewPrefixMap(tc.attrs...)
			for _, tt := range tc.nsTest {
				a.Equal(tt.b, pmap.Namespace(tt.a))
			}
			for _, tt := range tc.pfxTest {
				var pfx string
				if pfxes := pmap.Prefix(tt.a); pfxes != nil {
					pfx = pfxes[0]
				}
				a.Equal(tt.b, pfx)
			}
			a.Equal(tc.sortAttrs, pmap.Attr())
			a.Equal(tc.prefixed, pmap.Prefixed())
		})
	}
}

func TestPrefixMapDeclareOverrides(t *testing.T) {
	a := assert.New(t)
	pmap := NewPrefixMap(xml.Attr{Name: XMLName("q", "xmlns"), Value: "outer"})
	pmap.Declare(xml.Attr{Name: XMLName("q", "xmlns"), Value: "inner"})
	a.Equal("inner", pmap.Namespace("q"))
	a.Equal([]string{"q"}, pmap.Prefix("inner"))
	a.Nil(pmap.Prefix("outer"))
}
