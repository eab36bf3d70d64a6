// Package xmlbuilder maps typed objects onto an XML document.
//
// A Document owns one xmltree.Document and hands out Objects, each a
// view of one element interpreted through a schema.Schema. Object
// fields are read from and written to the tree on every access; there
// is no separate in-memory copy to synchronise.
//
//   doc := xmlbuilder.New(clock)
//   timer, _ := doc.Root().AddChild("timers")
//   timer.Set("name", "rtc")
//   timer.Set("present", true)
//   fmt.Print(doc) // <clock>\n  <timer name="rtc" present="yes"/>\n</clock>\n
//
// Defaults
//
// A property holding its declared default is not stored: setting the
// default removes the attribute or text, and an absent value reads as
// the default. Elements along a property's location are created on
// write and pruned again once they are left empty.
//
// Lazy children
//
// Single children (schema.WithChild) and objects from NewObject exist
// without an element until a property is written a non-default value,
// so merely reading them leaves the document unchanged.
package xmlbuilder
