package guest

import (
	"io"

	"github.com/andaru/virtxml/schema"
	"github.com/andaru/virtxml/xmlbuilder"
	"github.com/andaru/virtxml/xmlerr"
	"github.com/pkg/errors"
	"libvirt.org/go/libvirtxml"
)

// DomainSchema maps the <domain> document: identity, sizing, boot
// target, features, lifecycle actions and the clock.
var DomainSchema = schema.MustNew("domain",
	schema.WithProperty("type", "./@type"),
	schema.WithProperty("name", "./name"),
	schema.WithProperty("uuid", "./uuid"),
	schema.WithProperty("title", "./title"),
	schema.WithProperty("description", "./description"),
	schema.WithProperty("memory", "./memory", schema.Int()),
	schema.WithProperty("memoryUnit", "./memory/@unit", schema.Default("KiB")),
	schema.WithProperty("currentMemory", "./currentMemory", schema.Int()),
	schema.WithProperty("currentMemoryUnit", "./currentMemory/@unit", schema.Default("KiB")),
	schema.WithProperty("vcpus", "./vcpu", schema.Int()),
	schema.WithProperty("vcpuPlacement", "./vcpu/@placement"),
	schema.WithProperty("osType", "./os/type"),
	schema.WithProperty("arch", "./os/type/@arch"),
	schema.WithProperty("machine", "./os/type/@machine"),
	schema.WithProperty("acpi", "./features/acpi", schema.Presence()),
	schema.WithProperty("apic", "./features/apic", schema.Presence()),
	schema.WithProperty("pae", "./features/pae", schema.Presence()),
	schema.WithProperty("onPoweroff", "./on_poweroff"),
	schema.WithProperty("onReboot", "./on_reboot"),
	schema.WithProperty("onCrash", "./on_crash"),
	schema.WithChild("clock", ".", ClockSchema),
)

// Domain is a guest definition document.
type Domain struct {
	*xmlbuilder.Object
	doc *xmlbuilder.Document
}

// NewDomain returns an empty domain document.
func NewDomain(opts ...xmlbuilder.Option) *Domain {
	return newDomain(xmlbuilder.New(DomainSchema, opts...))
}

// ParseDomain parses a domain document.
func ParseDomain(text string, opts ...xmlbuilder.Option) (*Domain, error) {
	d, err := xmlbuilder.Parse(DomainSchema, text, opts...)
	if err != nil {
		return nil, err
	}
	return newDomain(d), nil
}

// ReadDomain parses a domain document from r.
func ReadDomain(r io.Reader, opts ...xmlbuilder.Option) (*Domain, error) {
	d, err := xmlbuilder.ParseReader(DomainSchema, r, opts...)
	if err != nil {
		return nil, err
	}
	return newDomain(d), nil
}

func newDomain(d *xmlbuilder.Document) *Domain { return &Domain{Object: d.Root(), doc: d} }

// Document returns the document the domain heads.
func (d *Domain) Document() *xmlbuilder.Document { return d.doc }

func (d *Domain) String() string { return d.doc.String() }

// WriteTo writes the serialized domain to w.
func (d *Domain) WriteTo(w io.Writer) (int64, error) { return d.doc.WriteTo(w) }

func (d *Domain) Type() (string, error)         { return d.GetString("type") }
func (d *Domain) SetType(v string) error        { return d.SetString("type", v) }
func (d *Domain) Name() (string, error)         { return d.GetString("name") }
func (d *Domain) SetName(v string) error        { return d.SetString("name", v) }
func (d *Domain) UUID() (string, error)         { return d.GetString("uuid") }
func (d *Domain) SetUUID(v string) error        { return d.SetString("uuid", v) }
func (d *Domain) Title() (string, error)        { return d.GetString("title") }
func (d *Domain) SetTitle(v string) error       { return d.SetString("title", v) }
func (d *Domain) Description() (string, error)  { return d.GetString("description") }
func (d *Domain) SetDescription(v string) error { return d.SetString("description", v) }
func (d *Domain) VCPUs() (int, error)           { return d.GetInt("vcpus") }
func (d *Domain) SetVCPUs(n int) error          { return d.SetInt("vcpus", n) }
func (d *Domain) OSType() (string, error)       { return d.GetString("osType") }
func (d *Domain) SetOSType(v string) error      { return d.SetString("osType", v) }
func (d *Domain) Arch() (string, error)         { return d.GetString("arch") }
func (d *Domain) SetArch(v string) error        { return d.SetString("arch", v) }
func (d *Domain) Machine() (string, error)      { return d.GetString("machine") }
func (d *Domain) SetMachine(v string) error     { return d.SetString("machine", v) }
func (d *Domain) OnPoweroff() (string, error)   { return d.GetString("onPoweroff") }
func (d *Domain) SetOnPoweroff(v string) error  { return d.SetString("onPoweroff", v) }
func (d *Domain) OnReboot() (string, error)     { return d.GetString("onReboot") }
func (d *Domain) SetOnReboot(v string) error    { return d.SetString("onReboot", v) }
func (d *Domain) OnCrash() (string, error)      { return d.GetString("onCrash") }
func (d *Domain) SetOnCrash(v string) error     { return d.SetString("onCrash", v) }
func (d *Domain) ACPI() (bool, error)           { return d.GetBool("acpi") }
func (d *Domain) SetACPI(v bool) error          { return d.SetBool("acpi", v) }
func (d *Domain) APIC() (bool, error)           { return d.GetBool("apic") }
func (d *Domain) SetAPIC(v bool) error          { return d.SetBool("apic", v) }
func (d *Domain) PAE() (bool, error)            { return d.GetBool("pae") }
func (d *Domain) SetPAE(v bool) error           { return d.SetBool("pae", v) }

// Memory returns the maximum memory allocation and its unit.
func (d *Domain) Memory() (int, string, error) { return d.sized("memory") }

// SetMemory sets the maximum memory allocation. An empty unit means
// KiB.
func (d *Domain) SetMemory(n int, unit string) error { return d.setSized("memory", n, unit) }

// CurrentMemory returns the boot memory allocation and its unit.
func (d *Domain) CurrentMemory() (int, string, error) { return d.sized("currentMemory") }

func (d *Domain) SetCurrentMemory(n int, unit string) error {
	return d.setSized("currentMemory", n, unit)
}

func (d *Domain) sized(name string) (int, string, error) {
	n, err := d.GetInt(name)
	if err != nil {
		return 0, "", err
	}
	unit, err := d.GetString(name + "Unit")
	return n, unit, err
}

func (d *Domain) setSized(name string, n int, unit string) error {
	if unit == "" {
		unit = "KiB"
	}
	if err := d.SetInt(name, n); err != nil {
		return err
	}
	return d.SetString(name+"Unit", unit)
}

// Clock returns the guest clock. The <clock> element is added to the
// document when one of its values is first set.
func (d *Domain) Clock() (*Clock, error) {
	o, err := d.Child("clock")
	if err != nil {
		return nil, err
	}
	return &Clock{o}, nil
}

// Libvirt returns the domain as the hypervisor library models it.
func (d *Domain) Libvirt() (*libvirtxml.Domain, error) {
	ld := &libvirtxml.Domain{}
	if err := ld.Unmarshal(d.doc.String()); err != nil {
		return nil, errors.WithStack(xmlerr.Parse(err, xmlerr.WithElement("domain")))
	}
	return ld, nil
}

// FromLibvirt builds a Domain from the hypervisor library's model.
func FromLibvirt(ld *libvirtxml.Domain, opts ...xmlbuilder.Option) (*Domain, error) {
	text, err := ld.Marshal()
	if err != nil {
		return nil, errors.WithStack(xmlerr.InvalidOperation("marshal",
			xmlerr.WithElement("domain"), xmlerr.WithMessage(err.Error())))
	}
	return ParseDomain(text, opts...)
}
