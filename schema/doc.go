// Package schema declares how object types map onto XML subtrees.
//
// A Schema is an explicit table built once per object type: the
// element name of the type, its properties (a field name bound to a
// location expression, a coercion Kind and an optional default) and
// its child bindings (a field name bound to a container location and
// the child's Schema). Tables are consulted by ordinary lookups at run
// time; nothing is discovered by reflection.
//
//   var timer = schema.MustNew("timer",
//       schema.WithProperty("name", "./@name"),
//       schema.WithProperty("present", "./@present", schema.YesNo()),
//       schema.WithProperty("tickpolicy", "./@tickpolicy"),
//   )
//
//   var clock = schema.MustNew("clock",
//       schema.WithProperty("offset", "./@offset"),
//       schema.WithChildren("timers", ".", timer),
//   )
//
// Location expressions
//
// Locations are relative to the object's element and are a subset of
// XPath: "." is the element's own text, "./a/b" the text of a nested
// element and "./a/@c" an attribute. Every step must be a plain or
// prefixed element name.
package schema
