package guest

import (
	"encoding/xml"

	"github.com/andaru/virtxml/schema"
	"github.com/andaru/virtxml/xmlbuilder"
	"github.com/andaru/virtxml/xmlerr"
	"github.com/pkg/errors"
	"libvirt.org/go/libvirtxml"
)

// ClockSchema maps a domain <clock> element and its timers.
var ClockSchema = schema.MustNew("clock",
	schema.WithProperty("offset", "./@offset"),
	schema.WithProperty("timezone", "./@timezone"),
	schema.WithProperty("adjustment", "./@adjustment"),
	schema.WithChildren("timers", ".", TimerSchema),
)

// Clock is the guest clock configuration.
type Clock struct {
	*xmlbuilder.Object
}

// NewClock returns a Clock heading its own document.
func NewClock(opts ...xmlbuilder.Option) *Clock {
	return &Clock{xmlbuilder.New(ClockSchema, opts...).Root()}
}

// ParseClock parses a standalone <clock> document.
func ParseClock(text string, opts ...xmlbuilder.Option) (*Clock, error) {
	d, err := xmlbuilder.Parse(ClockSchema, text, opts...)
	if err != nil {
		return nil, err
	}
	return &Clock{d.Root()}, nil
}

func (c *Clock) Offset() (string, error)      { return c.GetString("offset") }
func (c *Clock) SetOffset(v string) error     { return c.SetString("offset", v) }
func (c *Clock) Timezone() (string, error)    { return c.GetString("timezone") }
func (c *Clock) SetTimezone(v string) error   { return c.SetString("timezone", v) }
func (c *Clock) Adjustment() (string, error)  { return c.GetString("adjustment") }
func (c *Clock) SetAdjustment(v string) error { return c.SetString("adjustment", v) }

// Timers returns the clock's timers in document order.
func (c *Clock) Timers() ([]*Timer, error) {
	objs, err := c.Children("timers")
	if err != nil {
		return nil, err
	}
	out := make([]*Timer, 0, len(objs))
	for _, o := range objs {
		out = append(out, &Timer{o})
	}
	return out, nil
}

// AddTimer appends a new, empty timer.
func (c *Clock) AddTimer() (*Timer, error) {
	o, err := c.AddChild("timers")
	if err != nil {
		return nil, err
	}
	return &Timer{o}, nil
}

// RemoveTimer removes t from the clock.
func (c *Clock) RemoveTimer(t *Timer) error { return c.RemoveChild("timers", t.Object) }

// Timer returns the first timer named name, adding one if create is
// true and there is none.
func (c *Clock) Timer(name string, create bool) (*Timer, error) {
	timers, err := c.Timers()
	if err != nil {
		return nil, err
	}
	for _, t := range timers {
		n, err := t.Name()
		if err != nil {
			return nil, err
		}
		if n == name {
			return t, nil
		}
	}
	if !create {
		return nil, errors.WithStack(xmlerr.NotFound("timer",
			xmlerr.WithField("timers"), xmlerr.WithValue(name)))
	}
	t, err := c.AddTimer()
	if err != nil {
		return nil, err
	}
	return t, t.SetName(name)
}

// Libvirt returns the clock as the hypervisor library models it.
func (c *Clock) Libvirt() (*libvirtxml.DomainClock, error) {
	text, err := c.XML()
	if err != nil {
		return nil, err
	}
	lc := &libvirtxml.DomainClock{}
	if err := xml.Unmarshal([]byte(text), lc); err != nil {
		return nil, errors.WithStack(xmlerr.Parse(err, xmlerr.WithElement("clock")))
	}
	return lc, nil
}
