// Package xmltree provides the mutable XML document tree shared by all
// objects mapped onto one document.
//
// Nodes are held in an arena owned by the Document and addressed by
// Handle rather than by pointer. Removing a node releases its handle
// and the handles of all its descendants; later use of a released
// handle is reported as an xmlerr.KindUseAfterRemove error instead of
// reaching a stale node.
//
// Parsing
//
// Parse reads markup with github.com/antchfx/xmlquery and copies the
// resulting element tree into the arena. Attribute order and child
// order are preserved.
//
// Querying
//
// Select and Evaluate run github.com/antchfx/xpath expressions over the
// arena through Navigator. Prefixed names in expressions are resolved
// with the namespace declarations of the root element.
package xmltree
