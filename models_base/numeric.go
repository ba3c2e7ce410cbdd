package models_base

import (
	"encoding/binary"
	"fmt"
	"math"
)

type Integer32 int32

func DecodeInteger32(b []byte) (Type, error) {
	if len(b) != 4 {
		return Integer32(0), fmt.Errorf("invalid Integer32 length %d", len(b))
	}
	return Integer32(int32(binary.BigEndian.Uint32(b))), nil
}

func (n Integer32) Serialize() []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, uint32(n))
	return b
}

func (n Integer32) Len() int     { return 4 }
func (n Integer32) Padding() int { return 0 }
func (n Integer32) Type() TypeID { return Integer32Type }
func (n Integer32) String() string {
	return fmt.Sprintf("Integer32{%d}", int32(n))
}

type Integer64 int64

func DecodeInteger64(b []byte) (Type, error) {
	if len(b) != 8 {
		return Integer64(0), fmt.Errorf("invalid Integer64 length %d", len(b))
	}
	return Integer64(int64(binary.BigEndian.Uint64(b))), nil
}

func (n Integer64) Serialize() []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(n))
	return b
}

func (n Integer64) Len() int     { return 8 }
func (n Integer64) Padding() int { return 0 }
func (n Integer64) Type() TypeID { return Integer64Type }
func (n Integer64) String() string {
	return fmt.Sprintf("Integer64{%d}", int64(n))
}

type Unsigned32 uint32

func DecodeUnsigned32(b []byte) (Type, error) {
	if len(b) != 4 {
		return Unsigned32(0), fmt.Errorf("invalid Unsigned32 length %d", len(b))
	}
	return Unsigned32(binary.BigEndian.Uint32(b)), nil
}

func (n Unsigned32) Serialize() []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, uint32(n))
	return b
}

func (n Unsigned32) Len() int     { return 4 }
func (n Unsigned32) Padding() int { return 0 }
func (n Unsigned32) Type() TypeID { return Unsigned32Type }
func (n Unsigned32) String() string {
	return fmt.Sprintf("Unsigned32{%d}", uint32(n))
}

type Unsigned64 uint64

func DecodeUnsigned64(b []byte) (Type, error) {
	if len(b) != 8 {
		return Unsigned64(0), fmt.Errorf("invalid Unsigned64 length %d", len(b))
	}
	return Unsigned64(binary.BigEndian.Uint64(b)), nil
}

func (n Unsigned64) Serialize() []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(n))
	return b
}

func (n Unsigned64) Len() int     { return 8 }
func (n Unsigned64) Padding() int { return 0 }
func (n Unsigned64) Type() TypeID { return Unsigned64Type }
func (n Unsigned64) String() string {
	return fmt.Sprintf("Unsigned64{%d}", uint64(n))
}

type Float32 float32

func DecodeFloat32(b []byte) (Type, error) {
	if len(b) != 4 {
		return Float32(0), fmt.Errorf("invalid Float32 length %d", len(b))
	}
	return Float32(math.Float32frombits(binary.BigEndian.Uint32(b))), nil
}

func (n Float32) Serialize() []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, math.Float32bits(float32(n)))
	return b
}

func (n Float32) Len() int     { return 4 }
func (n Float32) Padding() int { return 0 }
func (n Float32) Type() TypeID { return Float32Type }
func (n Float32) String() string {
	return fmt.Sprintf("Float32{%f}", float32(n))
}

type Float64 float64

func DecodeFloat64(b []byte) (Type, error) {
	if len(b) != 8 {
		return Float64(0), fmt.Errorf("invalid Float64 length %d", len(b))
	}
	return Float64(math.Float64frombits(binary.BigEndian.Uint64(b))), nil
}

func (n Float64) Serialize() []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, math.Float64bits(float64(n)))
	return b
}

func (n Float64) Len() int     { return 8 }
func (n Float64) Padding() int { return 0 }
func (n Float64) Type() TypeID { return Float64Type }
func (n Float64) String() string {
	return fmt.Sprintf("Float64{%f}", float64(n))
}

type Enumerated Integer32

func DecodeEnumerated(b []byte) (Type, error) {
	v, err := DecodeInteger32(b)
	if err != nil {
		return Enumerated(0), err
	}
	return Enumerated(v.(Integer32)), nil
}

func (n Enumerated) Serialize() []byte {
	return Integer32(n).Serialize()
}

func (n Enumerated) Len() int     { return 4 }
func (n Enumerated) Padding() int { return 0 }
func (n Enumerated) Type() TypeID { return EnumeratedType }
func (n Enumerated) String() string {
	return fmt.Sprintf("Enumerated{%d}", int32(n))
}
