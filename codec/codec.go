// Package codec translates between raw Diameter AVP bytes and ordered
// attribute sequences, driven by the dictionary loaded at startup. The
// protocol core consumes it through an interface and never depends on
// dictionary contents for dispatch decisions.
package codec

import (
	"encoding/binary"
	"fmt"

	"github.com/hsdfat8/diam-peer/dict"
	"github.com/hsdfat8/diam-peer/models_base"
)

// DictionaryCodec encodes and decodes AVP sequences using a loaded
// dictionary. Immutable and safe for concurrent use.
type DictionaryCodec struct {
	dict *dict.Dictionary
}

// NewDictionaryCodec returns a codec backed by the given dictionary.
func NewDictionaryCodec(d *dict.Dictionary) *DictionaryCodec {
	return &DictionaryCodec{dict: d}
}

// Dictionary returns the backing dictionary.
func (c *DictionaryCodec) Dictionary() *dict.Dictionary {
	return c.dict
}

// DecodeAVPs decodes a raw message body into its ordered sequence of
// attribute entries. Wire order is preserved and repeated codes are kept
// as separate entries. AVP codes the dictionary does not define decode
// losslessly as OctetString.
func (c *DictionaryCodec) DecodeAVPs(body []byte) ([]*AVP, error) {
	avps := make([]*AVP, 0, 4)
	offset := 0

	for offset < len(body) {
		remaining := body[offset:]
		if len(remaining) < 8 {
			return nil, DecodeError{Offset: offset, Reason: fmt.Sprintf("%d trailing bytes, avp header needs 8", len(remaining))}
		}

		a := &AVP{Code: binary.BigEndian.Uint32(remaining[0:4])}
		flags := remaining[4]
		a.Flags.Vendor = (flags & 0x80) != 0
		a.Flags.Mandatory = (flags & 0x40) != 0
		a.Flags.Protected = (flags & 0x20) != 0

		length := int(remaining[5])<<16 | int(remaining[6])<<8 | int(remaining[7])
		headerLen := a.headerLen()
		if length < headerLen {
			return nil, DecodeError{Offset: offset, Reason: fmt.Sprintf("declared length %d less than avp header %d", length, headerLen)}
		}
		if length > len(remaining) {
			return nil, DecodeError{Offset: offset, Reason: fmt.Sprintf("declared length %d exceeds remaining %d bytes", length, len(remaining))}
		}
		if a.Flags.Vendor {
			a.VendorID = binary.BigEndian.Uint32(remaining[8:12])
		}

		data := remaining[headerLen:length]
		value, err := c.decodeData(a.Code, a.VendorID, data)
		if err != nil {
			return nil, DecodeError{Offset: offset, Reason: err.Error()}
		}
		a.Data = value
		avps = append(avps, a)

		// Advance past the value and its padding, but never past the
		// end of a frame whose last AVP omits the final pad bytes.
		offset += length + (4-length%4)%4
		if offset > len(body) {
			offset = len(body)
		}
	}

	return avps, nil
}

func (c *DictionaryCodec) decodeData(code, vendorID uint32, data []byte) (models_base.Type, error) {
	def, ok := c.dict.AVPByCode(code, vendorID)
	if !ok {
		return models_base.DecodeOctetString(data)
	}
	if def.Type == models_base.GroupedType {
		nested, err := c.DecodeAVPs(data)
		if err != nil {
			return nil, fmt.Errorf("grouped avp %d: %w", code, err)
		}
		return Grouped{AVPs: nested}, nil
	}
	return models_base.Decode(def.Type, data)
}

// EncodeAVPs serializes an ordered sequence of attribute entries into
// raw body bytes. Encoding is deterministic and order-preserving:
// output order equals input order, repeated codes included.
func (c *DictionaryCodec) EncodeAVPs(avps []*AVP) ([]byte, error) {
	size := 0
	for _, a := range avps {
		size += a.Len()
	}
	b := make([]byte, 0, size)
	for i, a := range avps {
		if a.Data == nil {
			return nil, fmt.Errorf("avp %d (code %d) has no data", i, a.Code)
		}
		b = a.appendTo(b)
	}
	return b, nil
}

// CommandName resolves a command code to its dictionary name. For
// observability only; dispatch is always by numeric code.
func (c *DictionaryCodec) CommandName(code uint32) string {
	return c.dict.CommandName(code)
}

// CommandCode resolves a symbolic command name to its numeric code.
func (c *DictionaryCodec) CommandCode(name string) (uint32, bool) {
	return c.dict.CommandCode(name)
}

// NewAVP builds an attribute entry from its dictionary definition,
// carrying the definition's flags. Unknown names return an error; the
// builders construct answers only from defined attributes.
func (c *DictionaryCodec) NewAVP(name string, value models_base.Type) (*AVP, error) {
	def, ok := c.dict.AVPByName(name)
	if !ok {
		return nil, fmt.Errorf("avp %q not in dictionary", name)
	}
	a := &AVP{
		Code:     def.Code,
		VendorID: def.VendorID,
		Flags:    AVPFlags{Vendor: def.VendorID != 0, Mandatory: def.Mandatory},
		Data:     value,
	}
	return a, nil
}
