package models_base

import "fmt"

// Type is the interface implemented by all Diameter AVP data types.
type Type interface {
	Serialize() []byte
	Len() int
	Padding() int
	Type() TypeID
	String() string
}

type TypeID int

const (
	UnknownType TypeID = iota
	AddressType
	DiameterIdentityType
	DiameterURIType
	EnumeratedType
	Float32Type
	Float64Type
	GroupedType
	Integer32Type
	Integer64Type
	OctetStringType
	TimeType
	UTF8StringType
	Unsigned32Type
	Unsigned64Type
)

// Available maps dictionary type names to TypeIDs.
var Available = map[string]TypeID{
	"Address":          AddressType,
	"DiameterIdentity": DiameterIdentityType,
	"DiameterURI":      DiameterURIType,
	"Enumerated":       EnumeratedType,
	"Float32":          Float32Type,
	"Float64":          Float64Type,
	"Grouped":          GroupedType,
	"Integer32":        Integer32Type,
	"Integer64":        Integer64Type,
	"OctetString":      OctetStringType,
	"Time":             TimeType,
	"UTF8String":       UTF8StringType,
	"Unsigned32":       Unsigned32Type,
	"Unsigned64":       Unsigned64Type,
}

// Decode decodes raw AVP data bytes into the given type. Grouped data is
// opaque at this layer; the codec decodes nested AVPs itself.
func Decode(id TypeID, b []byte) (Type, error) {
	switch id {
	case AddressType:
		return DecodeAddress(b)
	case DiameterIdentityType:
		return DecodeDiameterIdentity(b)
	case DiameterURIType:
		return DecodeDiameterURI(b)
	case EnumeratedType:
		return DecodeEnumerated(b)
	case Float32Type:
		return DecodeFloat32(b)
	case Float64Type:
		return DecodeFloat64(b)
	case Integer32Type:
		return DecodeInteger32(b)
	case Integer64Type:
		return DecodeInteger64(b)
	case TimeType:
		return DecodeTime(b)
	case UTF8StringType:
		return DecodeUTF8String(b)
	case Unsigned32Type:
		return DecodeUnsigned32(b)
	case Unsigned64Type:
		return DecodeUnsigned64(b)
	case OctetStringType, UnknownType, GroupedType:
		return DecodeOctetString(b)
	default:
		return nil, fmt.Errorf("unsupported data type id %d", id)
	}
}

// pad4 rounds n up to the next multiple of 4.
func pad4(n int) int {
	return n + (4-n%4)%4
}
