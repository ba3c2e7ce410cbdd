package connection

import (
	"encoding/binary"
	"fmt"
)

// HeaderLength is the fixed Diameter header size in bytes.
const HeaderLength = 20

// Flags represents the command flags byte of a Diameter header.
type Flags struct {
	Request    bool // R-bit
	Proxiable  bool // P-bit
	Error      bool // E-bit
	Retransmit bool // T-bit
}

func (f Flags) byte() byte {
	var b byte
	if f.Request {
		b |= 0x80
	}
	if f.Proxiable {
		b |= 0x40
	}
	if f.Error {
		b |= 0x20
	}
	if f.Retransmit {
		b |= 0x10
	}
	return b
}

// Header is the fixed part of a Diameter message.
//
// Diameter header format:
//
//	0-3:   Version(1) + Message Length(3)
//	4-7:   Command Flags(1) + Command Code(3)
//	8-11:  Application ID
//	12-15: Hop-by-Hop ID
//	16-19: End-to-End ID
type Header struct {
	Version       uint8
	Flags         Flags
	MessageLength uint32
	CommandCode   uint32
	ApplicationID uint32
	HopByHopID    uint32
	EndToEndID    uint32
}

// ParseHeader parses the fixed header from raw bytes. Only the structural
// invariants are checked here: at least HeaderLength bytes present and the
// declared length covering the header itself. Version and application ID
// validation is a dispatch-time concern.
func ParseHeader(data []byte) (*Header, error) {
	if len(data) < HeaderLength {
		return nil, ErrMalformedHeader{Reason: fmt.Sprintf("need %d bytes, have %d", HeaderLength, len(data))}
	}

	h := &Header{
		Version:       data[0],
		MessageLength: uint32(data[1])<<16 | uint32(data[2])<<8 | uint32(data[3]),
		CommandCode:   uint32(data[5])<<16 | uint32(data[6])<<8 | uint32(data[7]),
		ApplicationID: binary.BigEndian.Uint32(data[8:12]),
		HopByHopID:    binary.BigEndian.Uint32(data[12:16]),
		EndToEndID:    binary.BigEndian.Uint32(data[16:20]),
	}

	flags := data[4]
	h.Flags.Request = (flags & 0x80) != 0
	h.Flags.Proxiable = (flags & 0x40) != 0
	h.Flags.Error = (flags & 0x20) != 0
	h.Flags.Retransmit = (flags & 0x10) != 0

	if h.MessageLength < HeaderLength {
		return nil, ErrMalformedHeader{Reason: fmt.Sprintf("declared length %d less than header size", h.MessageLength)}
	}

	return h, nil
}

// Serialize renders the header as HeaderLength wire bytes.
func (h *Header) Serialize() []byte {
	b := make([]byte, HeaderLength)
	b[0] = h.Version
	b[1] = byte(h.MessageLength >> 16)
	b[2] = byte(h.MessageLength >> 8)
	b[3] = byte(h.MessageLength)
	b[4] = h.Flags.byte()
	b[5] = byte(h.CommandCode >> 16)
	b[6] = byte(h.CommandCode >> 8)
	b[7] = byte(h.CommandCode)
	binary.BigEndian.PutUint32(b[8:12], h.ApplicationID)
	binary.BigEndian.PutUint32(b[12:16], h.HopByHopID)
	binary.BigEndian.PutUint32(b[16:20], h.EndToEndID)
	return b
}

// String returns a compact representation for logging.
func (h *Header) String() string {
	msgType := "Answer"
	if h.Flags.Request {
		msgType = "Request"
	}
	return fmt.Sprintf("%s (Code=%d, AppID=%d, H2H=%d, E2E=%d, Len=%d)",
		msgType, h.CommandCode, h.ApplicationID, h.HopByHopID, h.EndToEndID, h.MessageLength)
}
