// Package guest declares the guest definition schemas: the domain, its
// clock and the clock's timers.
//
// Each type wraps an xmlbuilder.Object and adds typed accessors, so the
// generic field API (Get, Set, Snapshot, ...) stays available. Domain
// and Clock convert to and from the libvirt.org/go/libvirtxml model for
// handing a definition to the hypervisor library.
package guest
