package xmlutil

import (
	"encoding/xml"
	"sort"
)

// PrefixMap is a prefix to namespace URI map. The default namespace,
// if declared, is held under the empty prefix.
type PrefixMap map[string]string

// NewPrefixMap returns a PrefixMap, containing the namespace
// declarations found among the passed XML attributes
func NewPrefixMap(attrs ...xml.Attr) PrefixMap {
	pmap := PrefixMap{}
	pmap.Declare(attrs...)
	return pmap
}

// Declare adds any namespace declarations found in attrs, replacing
// existing bindings of the same prefix.
func (m PrefixMap) Declare(attrs ...xml.Attr) {
	for _, attr := range attrs {
		switch {
		case attr.Name.Space == "xmlns":
			m[attr.Name.Local] = attr.Value
		case attr.Name.Space == "" && attr.Name.Local == "xmlns":
			m[""] = attr.Value
		}
	}
}

// Attr returns the prefix map contents as a series of xmlns:<prefix>=<nsuri> attributes,
// sorted lexically by prefix. A default namespace is returned first, as xmlns=<nsuri>.
func (m PrefixMap) Attr() (a []xml.Attr) {
	for k, v := range m {
		if k == "" {
			a = append(a, xml.Attr{Name: xml.Name{Local: "xmlns"}, Value: v})
			continue
		}
		a = append(a, xml.Attr{Name: xml.Name{Space: "xmlns", Local: k}, Value: v})
	}
	if len(a) > 0 {
		sort.Slice(a, func(i int, j int) bool {
			if a[i].Name.Space != a[j].Name.Space {
				return a[i].Name.Space < a[j].Name.Space
			}
			return a[i].Name.Local < a[j].Name.Local
		})
	}
	return a
}

// Prefixed returns a copy of the map without the default namespace,
// suitable for compiling XPath expressions with prefixed names.
func (m PrefixMap) Prefixed() map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		if k != "" {
			out[k] = v
		}
	}
	return out
}

// Namespace returns the namespace URI for the given prefix
func (m PrefixMap) Namespace(prefix string) string { return m[prefix] }

// Prefix returns any prefixes found for the namespace URI, sorted lexically
func (m PrefixMap) Prefix(nsURI string) (pfxes []string) {
	for k, v := range m {
		if nsURI == v {
			pfxes = append(pfxes, k)
		}
	}
	sort.Strings(pfxes)
	return pfxes
}
