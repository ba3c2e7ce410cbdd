package codec

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/hsdfat8/diam-peer/models_base"
)

// AVPFlags represents AVP header flags
type AVPFlags struct {
	Vendor    bool // V-bit
	Mandatory bool // M-bit
	Protected bool // P-bit
}

func (f AVPFlags) byte() byte {
	var b byte
	if f.Vendor {
		b |= 0x80
	}
	if f.Mandatory {
		b |= 0x40
	}
	if f.Protected {
		b |= 0x20
	}
	return b
}

// AVP is one attribute entry: a (code, value) pair. Messages carry an
// ordered sequence of these; the same code may legally appear more than
// once, so entries are never collapsed into a map.
type AVP struct {
	Code     uint32
	VendorID uint32 // meaningful only when Flags.Vendor is set
	Flags    AVPFlags
	Data     models_base.Type
}

// headerLen returns the AVP header size: 8 bytes, 12 with a vendor ID.
func (a *AVP) headerLen() int {
	if a.Flags.Vendor {
		return 12
	}
	return 8
}

// Len returns the total wire length of the AVP including header and
// padding to a 32-bit boundary.
func (a *AVP) Len() int {
	return a.headerLen() + a.Data.Len() + a.Data.Padding()
}

// declaredLen is the value carried in the AVP length field: header plus
// data, excluding padding.
func (a *AVP) declaredLen() int {
	return a.headerLen() + a.Data.Len()
}

// appendTo serializes the AVP onto b.
func (a *AVP) appendTo(b []byte) []byte {
	var hdr [12]byte
	binary.BigEndian.PutUint32(hdr[0:4], a.Code)
	length := a.declaredLen()
	hdr[4] = a.Flags.byte()
	hdr[5] = byte(length >> 16)
	hdr[6] = byte(length >> 8)
	hdr[7] = byte(length)
	if a.Flags.Vendor {
		binary.BigEndian.PutUint32(hdr[8:12], a.VendorID)
		b = append(b, hdr[:12]...)
	} else {
		b = append(b, hdr[:8]...)
	}
	b = append(b, a.Data.Serialize()...)
	for i := 0; i < a.Data.Padding(); i++ {
		b = append(b, 0)
	}
	return b
}

func (a *AVP) String() string {
	return fmt.Sprintf("AVP{Code=%d,Flags=0x%02x,%s}", a.Code, a.Flags.byte(), a.Data)
}

// Grouped is the data of a grouped AVP: a nested ordered sequence of
// attribute entries, encoded back-to-back.
type Grouped struct {
	AVPs []*AVP
}

func (g Grouped) Serialize() []byte {
	var b []byte
	for _, a := range g.AVPs {
		b = a.appendTo(b)
	}
	return b
}

func (g Grouped) Len() int {
	n := 0
	for _, a := range g.AVPs {
		n += a.Len()
	}
	return n
}

func (g Grouped) Padding() int {
	return 0 // members are already 32-bit aligned
}

func (g Grouped) Type() models_base.TypeID {
	return models_base.GroupedType
}

func (g Grouped) String() string {
	parts := make([]string, 0, len(g.AVPs))
	for _, a := range g.AVPs {
		parts = append(parts, a.String())
	}
	return fmt.Sprintf("Grouped{%s}", strings.Join(parts, ","))
}
