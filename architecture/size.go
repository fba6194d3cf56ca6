package architecture

import (
	"fmt"
)

type StorageKind string

const (
	IntStorage     = StorageKind("int")
	FloatStorage   = StorageKind("float")
	VectorStorage  = StorageKind("vector")
	PointerStorage = StorageKind("pointer")
)

// StorageType is the concrete storage type of a temporary declared in the
// target instruction stream.
type StorageType struct {
	Kind     StorageKind
	ByteSize int
}

var (
	I8   = StorageType{IntStorage, 1}
	I16  = StorageType{IntStorage, 2}
	I32  = StorageType{IntStorage, 4}
	I64  = StorageType{IntStorage, 8}
	I128 = StorageType{IntStorage, 16}
	F32  = StorageType{FloatStorage, 4}
	F64  = StorageType{FloatStorage, 8}
)

func IntStorageType(byteSize int) StorageType {
	return StorageType{IntStorage, byteSize}
}

func VectorStorageType(byteSize int) StorageType {
	return StorageType{VectorStorage, byteSize}
}

func PointerStorageType(arch Name) StorageType {
	return StorageType{PointerStorage, arch.PointerByteSize()}
}

func (t StorageType) BitSize() int {
	return t.ByteSize * 8
}

func (t StorageType) String() string {
	switch t.Kind {
	case IntStorage:
		return fmt.Sprintf("i%d", t.BitSize())
	case FloatStorage:
		return fmt.Sprintf("f%d", t.BitSize())
	case VectorStorage:
		return fmt.Sprintf("v%d", t.BitSize())
	case PointerStorage:
		return "ptr"
	default:
		panic("should never reach here")
	}
}
