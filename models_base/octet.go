package models_base

import "fmt"

type OctetString string

func DecodeOctetString(b []byte) (Type, error) {
	d := make([]byte, len(b))
	copy(d, b)
	return OctetString(d), nil
}

func (s OctetString) Serialize() []byte {
	return []byte(s)
}

func (s OctetString) Len() int {
	return len(s)
}

func (s OctetString) Padding() int {
	l := len(s)
	return pad4(l) - l
}

func (s OctetString) Type() TypeID {
	return OctetStringType
}

func (s OctetString) String() string {
	return fmt.Sprintf("OctetString{%#x},Padding:%d", string(s), s.Padding())
}

type UTF8String OctetString

func DecodeUTF8String(b []byte) (Type, error) {
	d := make([]byte, len(b))
	copy(d, b)
	return UTF8String(d), nil
}

func (s UTF8String) Serialize() []byte {
	return OctetString(s).Serialize()
}

func (s UTF8String) Len() int {
	return len(s)
}

func (s UTF8String) Padding() int {
	l := len(s)
	return pad4(l) - l
}

func (s UTF8String) Type() TypeID {
	return UTF8StringType
}

func (s UTF8String) String() string {
	return fmt.Sprintf("UTF8String{%s},Padding:%d", string(s), s.Padding())
}

// DiameterIdentity data type.
type DiameterIdentity OctetString

// DecodeDiameterIdentity decodes a DiameterIdentity from byte array.
func DecodeDiameterIdentity(b []byte) (Type, error) {
	d := make([]byte, len(b))
	copy(d, b)
	return DiameterIdentity(d), nil
}

func (s DiameterIdentity) Serialize() []byte {
	return []byte(s)
}

func (s DiameterIdentity) Len() int {
	return len(s)
}

func (s DiameterIdentity) Padding() int {
	l := len(s)
	return pad4(l) - l
}

func (s DiameterIdentity) Type() TypeID {
	return DiameterIdentityType
}

func (s DiameterIdentity) String() string {
	return fmt.Sprintf("DiameterIdentity{%s},Padding:%d", string(s), s.Padding())
}

// DiameterURI data type.
type DiameterURI OctetString

func DecodeDiameterURI(b []byte) (Type, error) {
	d := make([]byte, len(b))
	copy(d, b)
	return DiameterURI(d), nil
}

func (s DiameterURI) Serialize() []byte {
	return []byte(s)
}

func (s DiameterURI) Len() int {
	return len(s)
}

func (s DiameterURI) Padding() int {
	l := len(s)
	return pad4(l) - l
}

func (s DiameterURI) Type() TypeID {
	return DiameterURIType
}

func (s DiameterURI) String() string {
	return fmt.Sprintf("DiameterURI{%s},Padding:%d", string(s), s.Padding())
}
