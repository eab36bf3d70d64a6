package guest

import (
	"github.com/andaru/virtxml/schema"
	"github.com/andaru/virtxml/xmlbuilder"
)

// TimerSchema maps a <timer> element of a domain clock.
var TimerSchema = schema.MustNew("timer",
	schema.WithProperty("name", "./@name"),
	schema.WithProperty("present", "./@present", schema.YesNo()),
	schema.WithProperty("tickpolicy", "./@tickpolicy"),
	schema.WithProperty("track", "./@track"),
	schema.WithProperty("frequency", "./@frequency", schema.Int()),
	schema.WithProperty("mode", "./@mode"),
)

// TimerNames lists the timer sources a guest clock may configure.
var TimerNames = []string{"platform", "pit", "rtc", "hpet", "tsc", "kvmclock"}

// IsTimerName returns true if name is one of TimerNames.
func IsTimerName(name string) bool {
	for _, n := range TimerNames {
		if n == name {
			return true
		}
	}
	return false
}

// Timer is one timer source of a Clock.
type Timer struct {
	*xmlbuilder.Object
}

func (t *Timer) Name() (string, error)        { return t.GetString("name") }
func (t *Timer) SetName(v string) error       { return t.SetString("name", v) }
func (t *Timer) Present() (bool, error)       { return t.GetBool("present") }
func (t *Timer) SetPresent(v bool) error      { return t.SetBool("present", v) }
func (t *Timer) TickPolicy() (string, error)  { return t.GetString("tickpolicy") }
func (t *Timer) SetTickPolicy(v string) error { return t.SetString("tickpolicy", v) }
func (t *Timer) Track() (string, error)       { return t.GetString("track") }
func (t *Timer) SetTrack(v string) error      { return t.SetString("track", v) }
func (t *Timer) Mode() (string, error)        { return t.GetString("mode") }
func (t *Timer) SetMode(v string) error       { return t.SetString("mode", v) }

// Frequency returns the timer frequency in Hz; zero when unset.
func (t *Timer) Frequency() (int, error) { return t.GetInt("frequency") }

func (t *Timer) SetFrequency(hz int) error { return t.SetInt("frequency", hz) }
