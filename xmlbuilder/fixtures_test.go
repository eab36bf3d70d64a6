package xmlbuilder

import "github.com/andaru/virtxml/schema"

var (
	testTimer = schema.MustNew("timer",
		schema.WithProperty("name", "./@name"),
		schema.WithProperty("present", "./@present", schema.YesNo()),
		schema.WithProperty("tickpolicy", "./@tickpolicy"),
		schema.WithProperty("frequency", "./@frequency", schema.Int()),
	)

	testClock = schema.MustNew("clock",
		schema.WithProperty("offset", "./@offset", schema.Default("utc")),
		schema.WithChildren("timers", ".", testTimer),
	)

	testDomain = schema.MustNew("domain",
		schema.WithProperty("name", "./name"),
		schema.WithProperty("memory", "./memory", schema.Int()),
		schema.WithProperty("memoryUnit", "./memory/@unit", schema.Default("KiB")),
		schema.WithProperty("osType", "./os/type"),
		schema.WithProperty("arch", "./os/type/@arch"),
		schema.WithProperty("acpi", "./features/acpi", schema.Presence()),
		schema.WithProperty("hap", "./features/hap/@state", schema.OnOff()),
		schema.WithChild("clock", ".", testClock),
	)
)

const testDomainXML = `<domain>
  <name>vm1</name>
  <memory unit="MiB">2048</memory>
  <clock offset="localtime">
    <timer name="rtc" tickpolicy="catchup"/>
    <timer name="pit" present="no"/>
    <timer name="hpet" present="yes" frequency="0x10"/>
  </clock>
</domain>
`
