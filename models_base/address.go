package models_base

import (
	"encoding/binary"
	"fmt"
	"net"
)

// Address families per the IANA AddressFamilyNumbers registry.
const (
	addrFamilyIPv4 = 1
	addrFamilyIPv6 = 2
)

// Address data type. Serialized with a 2-byte address family prefix.
type Address net.IP

func DecodeAddress(b []byte) (Type, error) {
	if len(b) < 2 {
		return Address{}, fmt.Errorf("invalid Address length %d", len(b))
	}
	family := binary.BigEndian.Uint16(b[:2])
	addr := b[2:]
	switch family {
	case addrFamilyIPv4:
		if len(addr) != net.IPv4len {
			return Address{}, fmt.Errorf("invalid IPv4 address length %d", len(addr))
		}
	case addrFamilyIPv6:
		if len(addr) != net.IPv6len {
			return Address{}, fmt.Errorf("invalid IPv6 address length %d", len(addr))
		}
	default:
		return Address{}, fmt.Errorf("unsupported address family %d", family)
	}
	d := make(net.IP, len(addr))
	copy(d, addr)
	return Address(d), nil
}

func (a Address) Serialize() []byte {
	ip := net.IP(a)
	if v4 := ip.To4(); v4 != nil {
		b := make([]byte, 2+net.IPv4len)
		binary.BigEndian.PutUint16(b[:2], addrFamilyIPv4)
		copy(b[2:], v4)
		return b
	}
	b := make([]byte, 2+net.IPv6len)
	binary.BigEndian.PutUint16(b[:2], addrFamilyIPv6)
	copy(b[2:], ip.To16())
	return b
}

func (a Address) Len() int {
	if net.IP(a).To4() != nil {
		return 2 + net.IPv4len
	}
	return 2 + net.IPv6len
}

func (a Address) Padding() int {
	l := a.Len()
	return pad4(l) - l
}

func (a Address) Type() TypeID {
	return AddressType
}

func (a Address) String() string {
	return fmt.Sprintf("Address{%s},Padding:%d", net.IP(a), a.Padding())
}
