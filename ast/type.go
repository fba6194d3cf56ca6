package ast

import (
	"fmt"

	"github.com/pattyshack/gt/parseutil"
)

type Type interface {
	Node
	isTypeExpr()

	String() string

	Equals(Type) bool
}

type isType struct{}

func (isType) isTypeExpr() {}

type IntTypeKind string

const (
	I8   = IntTypeKind("i8")
	I16  = IntTypeKind("i16")
	I32  = IntTypeKind("i32")
	I64  = IntTypeKind("i64")
	I128 = IntTypeKind("i128")

	U8   = IntTypeKind("u8")
	U16  = IntTypeKind("u16")
	U32  = IntTypeKind("u32")
	U64  = IntTypeKind("u64")
	U128 = IntTypeKind("u128")
)

type IntType struct {
	isType
	parseutil.StartEndPos

	Kind IntTypeKind
}

var _ Type = IntType{}
var _ Validator = IntType{}

func (intType IntType) Walk(visitor Visitor) {
	visitor.Enter(intType)
	visitor.Exit(intType)
}

func (intType IntType) Validate(emitter *parseutil.Emitter) {
	if intType.ByteSize() == 0 {
		emitter.Emit(intType.Loc(), "unexpected int type (%s)", intType.Kind)
	}
}

func (intType IntType) IsSigned() bool {
	switch intType.Kind {
	case I8, I16, I32, I64, I128:
		return true
	default:
		return false
	}
}

// ByteSize returns 0 for unknown kinds.
func (intType IntType) ByteSize() int {
	switch intType.Kind {
	case I8, U8:
		return 1
	case I16, U16:
		return 2
	case I32, U32:
		return 4
	case I64, U64:
		return 8
	case I128, U128:
		return 16
	default:
		return 0
	}
}

// InRange reports whether the value with the given magnitude and sign is
// representable.  Unknown kinds represent nothing.
func (intType IntType) InRange(magnitude uint64, isNegative bool) bool {
	size := intType.ByteSize()
	switch {
	case size == 0:
		return false
	case magnitude == 0:
		return true
	case isNegative && !intType.IsSigned():
		return false
	case size == 16:
		return true
	}

	bits := uint(8 * size)
	if !intType.IsSigned() {
		return bits == 64 || magnitude < uint64(1)<<bits
	}

	limit := uint64(1) << (bits - 1)
	if isNegative {
		return magnitude <= limit
	}
	return magnitude < limit
}

func (intType IntType) String() string {
	return string(intType.Kind)
}

func (intType IntType) Equals(other Type) bool {
	otherType, ok := other.(IntType)
	if !ok {
		return false
	}

	return intType.Kind == otherType.Kind
}

type FloatTypeKind string

const (
	F32 = FloatTypeKind("f32")
	F64 = FloatTypeKind("f64")
)

type FloatType struct {
	isType
	parseutil.StartEndPos

	Kind FloatTypeKind
}

var _ Type = FloatType{}
var _ Validator = FloatType{}

func (floatType FloatType) Walk(visitor Visitor) {
	visitor.Enter(floatType)
	visitor.Exit(floatType)
}

func (floatType FloatType) Validate(emitter *parseutil.Emitter) {
	switch floatType.Kind {
	case F32, F64: // ok
	default:
		emitter.Emit(floatType.Loc(), "unexpected float type (%s)", floatType.Kind)
	}
}

func (floatType FloatType) String() string {
	return string(floatType.Kind)
}

func (floatType FloatType) Equals(other Type) bool {
	otherType, ok := other.(FloatType)
	if !ok {
		return false
	}

	return floatType.Kind == otherType.Kind
}

// A data pointer.  The pointee is opaque to inline assembly.
type PointerType struct {
	isType
	parseutil.StartEndPos
}

var _ Type = PointerType{}

func (ptrType PointerType) Walk(visitor Visitor) {
	visitor.Enter(ptrType)
	visitor.Exit(ptrType)
}

func (PointerType) String() string {
	return "ptr"
}

func (PointerType) Equals(other Type) bool {
	_, ok := other.(PointerType)
	return ok
}

// A SIMD vector of the given total byte size.
type VectorType struct {
	isType
	parseutil.StartEndPos

	ByteSize int
}

var _ Type = VectorType{}
var _ Validator = VectorType{}

func (vecType VectorType) Walk(visitor Visitor) {
	visitor.Enter(vecType)
	visitor.Exit(vecType)
}

func (vecType VectorType) Validate(emitter *parseutil.Emitter) {
	switch vecType.ByteSize {
	case 8, 16, 32, 64: // ok
	default:
		emitter.Emit(
			vecType.Loc(),
			"unexpected vector byte size (%d)",
			vecType.ByteSize)
	}
}

func (vecType VectorType) String() string {
	return fmt.Sprintf("v%d", vecType.ByteSize*8)
}

func (vecType VectorType) Equals(other Type) bool {
	otherType, ok := other.(VectorType)
	if !ok {
		return false
	}

	return vecType.ByteSize == otherType.ByteSize
}

// ParseType returns nil if the name is not a known type name.
func ParseType(name string, pos parseutil.StartEndPos) Type {
	switch name {
	case "i8", "i16", "i32", "i64", "i128",
		"u8", "u16", "u32", "u64", "u128":
		return IntType{StartEndPos: pos, Kind: IntTypeKind(name)}
	case "f32", "f64":
		return FloatType{StartEndPos: pos, Kind: FloatTypeKind(name)}
	case "ptr":
		return PointerType{StartEndPos: pos}
	case "v64":
		return VectorType{StartEndPos: pos, ByteSize: 8}
	case "v128":
		return VectorType{StartEndPos: pos, ByteSize: 16}
	case "v256":
		return VectorType{StartEndPos: pos, ByteSize: 32}
	case "v512":
		return VectorType{StartEndPos: pos, ByteSize: 64}
	default:
		return nil
	}
}
