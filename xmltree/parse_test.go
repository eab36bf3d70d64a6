package xmltree

import (
	"strings"
	"testing"

	"github.com/andaru/virtxml/xmlerr"
	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	for _, tc := range []struct {
		name    string
		input   string
		want    string
		compact string
	}{
		{
			name: "declaration and comments are dropped",
			input: `<?xml version="1.0" encoding="UTF-8"?>
<!-- generated -->
<domain type="kvm">
  <name>guest1</name>
  <clock offset="utc">
    <!-- timers -->
    <timer name="rtc" tickpolicy="catchup"/>
    <timer name="pit" present="no"></timer>
  </clock>
</domain>
`,
			want: `<domain type="kvm">
  <name>guest1</name>
  <clock offset="utc">
    <timer name="rtc" tickpolicy="catchup"/>
    <timer name="pit" present="no"/>
  </clock>
</domain>
`,
			compact: `<domain type="kvm"><name>guest1</name><clock offset="utc"><timer name="rtc" tickpolicy="catchup"/><timer name="pit" present="no"/></clock></domain>`,
		},

		{
			name:    "attribute order is kept",
			input:   `<timer tickpolicy="catchup" present="yes" name="rtc"/>`,
			want:    `<timer tickpolicy="catchup" present="yes" name="rtc"/>` + "\n",
			compact: `<timer tickpolicy="catchup" present="yes" name="rtc"/>`,
		},

		{
			name:    "leaf text is kept verbatim",
			input:   `<description> two  words </description>`,
			want:    `<description> two  words </description>` + "\n",
			compact: `<description> two  words </description>`,
		},

		{
			name:    "whitespace-only leaf text is kept",
			input:   "<domain><name> </name><description>\t\n</description></domain>",
			want:    "<domain>\n  <name> </name>\n  <description>&#x9;&#xA;</description>\n</domain>\n",
			compact: "<domain><name> </name><description>&#x9;&#xA;</description></domain>",
		},

		{
			name:    "escaping",
			input:   `<description note="a &amp; b">1 &lt; 2</description>`,
			want:    `<description note="a &amp; b">1 &lt; 2</description>` + "\n",
			compact: `<description note="a &amp; b">1 &lt; 2</description>`,
		},

		{
			name:    "cdata",
			input:   `<cmd><![CDATA[a<b]]></cmd>`,
			want:    `<cmd>a&lt;b</cmd>` + "\n",
			compact: `<cmd>a&lt;b</cmd>`,
		},

		{
			name:  "prefixed names",
			input: `<domain xmlns:qemu="http://libvirt.org/schemas/domain/qemu/1.0"><qemu:commandline><qemu:arg value="-s"/></qemu:commandline></domain>`,
			want: `<domain xmlns:qemu="http://libvirt.org/schemas/domain/qemu/1.0">
  <qemu:commandline>
    <qemu:arg value="-s"/>
  </qemu:commandline>
</domain>
`,
			compact: `<domain xmlns:qemu="http://libvirt.org/schemas/domain/qemu/1.0"><qemu:commandline><qemu:arg value="-s"/></qemu:commandline></domain>`,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			check := assert.New(t)
			d, err := ParseString(tc.input)
			if !check.NoError(err) {
				return
			}
			check.Equal(tc.want, d.String())
			check.Equal(tc.compact, d.Serialize(d.Root(), ""))

			// serialized output parses back to the same document
			again, err := ParseString(d.String())
			if check.NoError(err) {
				check.Equal(tc.want, again.String())
			}

			var sb strings.Builder
			n, err := d.WriteTo(&sb)
			check.NoError(err)
			check.Equal(int64(len(tc.want)), n)
			check.Equal(tc.want, sb.String())
		})
	}
}

func TestParseError(t *testing.T) {
	for _, tc := range []struct {
		name     string
		input    string
		wantLine int
		wantMsg  string
	}{
		{name: "empty", input: "", wantMsg: "no root element"},
		{name: "whitespace", input: "  \n ", wantMsg: "no root element"},
		{name: "unclosed", input: "<clock>\n<timer name='rtc'/>\n", wantLine: 3},
		{name: "mismatched", input: "<clock>\n</timer>", wantLine: 2},
		{name: "two roots", input: "<clock/><clock/>", wantMsg: "more than one root element"},
		{name: "trailing text", input: "<clock/>junk", wantMsg: "character data outside the root element"},
		{name: "unbound prefix", input: "<q:clock/>"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			check := assert.New(t)
			d, err := ParseString(tc.input)
			check.Nil(d)
			check.True(xmlerr.Is(err, xmlerr.KindParse), "%v", err)
			var e *xmlerr.Error
			if check.ErrorAs(err, &e) {
				if tc.wantLine > 0 {
					check.Equal(tc.wantLine, e.Line)
				}
				if tc.wantMsg != "" {
					check.Equal(tc.wantMsg, e.Message)
				}
			}
		})
	}
}

func TestParseMixedContent(t *testing.T) {
	check := assert.New(t)
	d, err := ParseString("<a>\n  lead\n  <b>x</b>\n  tail\n</a>")
	if !check.NoError(err) {
		return
	}
	check.Equal("lead\n  \n  tail", d.Text(d.Root()))
	b := d.FirstElement(d.Root(), "b")
	check.Equal("x", d.Text(b))
}
