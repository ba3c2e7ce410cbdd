package dict

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hsdfat8/diam-peer/models_base"
)

func TestDefaultDictionary(t *testing.T) {
	d, err := Default()
	require.NoError(t, err)

	require.Equal(t, "Capabilities-Exchange", d.CommandName(257))
	require.Equal(t, "Device-Watchdog", d.CommandName(280))
	require.Equal(t, "Disconnect-Peer", d.CommandName(282))
	require.Empty(t, d.CommandName(9999))

	code, ok := d.CommandCode("Capabilities-Exchange")
	require.True(t, ok)
	require.Equal(t, uint32(257), code)

	_, ok = d.CommandCode("No-Such-Command")
	require.False(t, ok)

	oh, ok := d.AVPByName("Origin-Host")
	require.True(t, ok)
	require.Equal(t, uint32(264), oh.Code)
	require.Equal(t, models_base.DiameterIdentityType, oh.Type)
	require.True(t, oh.Mandatory)

	rc, ok := d.AVPByCode(268, 0)
	require.True(t, ok)
	require.Equal(t, "Result-Code", rc.Name)
	require.Equal(t, models_base.Unsigned32Type, rc.Type)
}

func TestLoadCustomDictionary(t *testing.T) {
	src := `<?xml version="1.0"?>
<dictionary>
  <command name="Test-Command" short="TC" code="500"/>
  <avp name="Test-Attr" code="1000" vendor-id="10415" type="UTF8String" mandatory="true"/>
</dictionary>`

	d, err := Load(strings.NewReader(src))
	require.NoError(t, err)
	require.Equal(t, 1, d.NumCommands())
	require.Equal(t, 1, d.NumAVPs())

	def, ok := d.AVPByCode(1000, 10415)
	require.True(t, ok)
	require.Equal(t, "Test-Attr", def.Name)
	require.Equal(t, uint32(10415), def.VendorID)

	_, ok = d.AVPByCode(1000, 0)
	require.False(t, ok, "vendor-qualified AVP must not resolve without vendor id")
}

func TestLoadRejectsBadXML(t *testing.T) {
	_, err := Load(strings.NewReader("<dictionary><avp"))
	require.Error(t, err)
}

func TestLoadRejectsUnknownType(t *testing.T) {
	src := `<dictionary><avp name="X" code="1" type="Madeup"/></dictionary>`
	_, err := Load(strings.NewReader(src))
	require.ErrorContains(t, err, "unknown type")
}

func TestLoadRejectsDuplicates(t *testing.T) {
	dupCode := `<dictionary>
  <avp name="A" code="1" type="Unsigned32"/>
  <avp name="B" code="1" type="Unsigned32"/>
</dictionary>`
	_, err := Load(strings.NewReader(dupCode))
	require.ErrorContains(t, err, "duplicate avp code")

	dupCmd := `<dictionary>
  <command name="A" code="257"/>
  <command name="B" code="257"/>
</dictionary>`
	_, err = Load(strings.NewReader(dupCmd))
	require.ErrorContains(t, err, "duplicate command code")
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile("testdata/no-such-dictionary.xml")
	require.Error(t, err)
}
