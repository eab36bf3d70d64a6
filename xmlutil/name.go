package xmlutil

import (
	"encoding/xml"
	"strings"
)

// XMLName is a shortcut for creating xml.Name, where typically you want at least
// a local name, and perhaps a namespace (or prefix) value as well.
func XMLName(local string, spaces ...string) xml.Name {
	n := xml.Name{Local: local}
	if len(spaces) > 0 {
		n.Space = spaces[0]
	}
	return n
}

// ParseQName splits a qualified name of the form "prefix:local" into
// an xml.Name whose Space holds the prefix. Names without a prefix
// have an empty Space.
func ParseQName(qname string) xml.Name {
	if i := strings.IndexByte(qname, ':'); i > 0 && i < len(qname)-1 {
		return xml.Name{Space: qname[:i], Local: qname[i+1:]}
	}
	return xml.Name{Local: qname}
}

// QName joins n into "prefix:local" form, the inverse of ParseQName.
func QName(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

// IsNamespaceDecl returns true if the qualified attribute name
// declares a namespace (xmlns or xmlns:prefix).
func IsNamespaceDecl(qname string) bool {
	return qname == "xmlns" || strings.HasPrefix(qname, "xmlns:")
}
