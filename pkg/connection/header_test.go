package connection

import (
	"bytes"
	"errors"
	"testing"
)

func TestParseHeader(t *testing.T) {
	h := &Header{
		Version:       1,
		Flags:         Flags{Request: true, Proxiable: true},
		MessageLength: 48,
		CommandCode:   257,
		ApplicationID: 0,
		HopByHopID:    0x12345678,
		EndToEndID:    0x87654321,
	}
	data := h.Serialize()
	if len(data) != HeaderLength {
		t.Fatalf("Serialize produced %d bytes, want %d", len(data), HeaderLength)
	}

	parsed, err := ParseHeader(data)
	if err != nil {
		t.Fatalf("ParseHeader failed: %v", err)
	}
	if *parsed != *h {
		t.Errorf("Header mismatch: got %+v, want %+v", parsed, h)
	}
}

func TestParseHeaderFlags(t *testing.T) {
	h := &Header{Version: 1, MessageLength: 20, CommandCode: 280}
	h.Flags = Flags{Error: true, Retransmit: true}
	parsed, err := ParseHeader(h.Serialize())
	if err != nil {
		t.Fatalf("ParseHeader failed: %v", err)
	}
	if parsed.Flags.Request || parsed.Flags.Proxiable {
		t.Error("Unexpected R/P flags set")
	}
	if !parsed.Flags.Error || !parsed.Flags.Retransmit {
		t.Error("E/T flags lost in round trip")
	}
}

func TestParseHeaderTooShort(t *testing.T) {
	_, err := ParseHeader(make([]byte, 19))
	var malformed ErrMalformedHeader
	if !errors.As(err, &malformed) {
		t.Fatalf("Expected ErrMalformedHeader, got %v", err)
	}
}

func TestParseHeaderBadLength(t *testing.T) {
	h := &Header{Version: 1, MessageLength: 12, CommandCode: 257}
	_, err := ParseHeader(h.Serialize())
	var malformed ErrMalformedHeader
	if !errors.As(err, &malformed) {
		t.Fatalf("Expected ErrMalformedHeader for short declared length, got %v", err)
	}
}

func TestParseHeaderDoesNotValidateVersion(t *testing.T) {
	// Version checking is a dispatch-time concern, not a framing concern.
	h := &Header{Version: 9, MessageLength: 20, CommandCode: 257}
	parsed, err := ParseHeader(h.Serialize())
	if err != nil {
		t.Fatalf("ParseHeader failed: %v", err)
	}
	if parsed.Version != 9 {
		t.Errorf("Version not preserved: got %d", parsed.Version)
	}
}

func TestHeaderThreeByteFields(t *testing.T) {
	h := &Header{Version: 1, MessageLength: 0xABCDEF, CommandCode: 0x123456}
	data := h.Serialize()
	if !bytes.Equal(data[1:4], []byte{0xAB, 0xCD, 0xEF}) {
		t.Errorf("Length bytes wrong: %x", data[1:4])
	}
	if !bytes.Equal(data[5:8], []byte{0x12, 0x34, 0x56}) {
		t.Errorf("Command code bytes wrong: %x", data[5:8])
	}
}
