/*
Package virtxml is a set of libraries for editing guest definition XML
documents through typed objects.

A document is parsed into a mutable tree (xmltree) that keeps element
order, attribute order and unknown content, so that a definition
written by another tool serializes back unchanged apart from the edits
made to it. Object types are declared once as static binding tables
(schema): each field is bound to a location in the object's subtree
and to a value coercion such as yes/no or integer. The xmlbuilder
package maps objects of a schema onto a tree, reading and writing the
tree directly on every field access.

See the guest sub-directory for the domain, clock and timer types, and
xmlerr for the error kinds reported by every package.
*/
package virtxml
