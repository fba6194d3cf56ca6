package gnuc

import (
	"fmt"

	"github.com/pattyshack/asmbridge/architecture"
	"github.com/pattyshack/asmbridge/ast"
)

var vectorTypeNames = map[int]string{
	8:  "asmbridge_v64",
	16: "asmbridge_v128",
	32: "asmbridge_v256",
	64: "asmbridge_v512",
}

// Vector types are declared as long long vectors of the given byte size.
const prelude = `#include <stdint.h>

typedef long long asmbridge_v64 __attribute__((vector_size(8)));
typedef long long asmbridge_v128 __attribute__((vector_size(16)));
typedef long long asmbridge_v256 __attribute__((vector_size(32)));
typedef long long asmbridge_v512 __attribute__((vector_size(64)));
`

func intTypeName(byteSize int, signed bool) string {
	if byteSize == 16 {
		if signed {
			return "__int128"
		}
		return "unsigned __int128"
	}

	if signed {
		return fmt.Sprintf("int%d_t", byteSize*8)
	}
	return fmt.Sprintf("uint%d_t", byteSize*8)
}

func vectorTypeName(byteSize int) string {
	name, ok := vectorTypeNames[byteSize]
	if !ok {
		panic(fmt.Sprintf("unexpected vector byte size: %d", byteSize))
	}
	return name
}

// sourceTypeName returns the c type of a source value.
func sourceTypeName(valueType ast.Type) string {
	switch t := valueType.(type) {
	case ast.IntType:
		return intTypeName(t.ByteSize(), t.IsSigned())
	case ast.FloatType:
		if t.Kind == ast.F32 {
			return "float"
		}
		return "double"
	case ast.PointerType:
		return "void*"
	case ast.VectorType:
		return vectorTypeName(t.ByteSize)
	default:
		panic(fmt.Sprintf("unhandled type: %v", valueType))
	}
}

// storageTypeName returns the c type of a temporary.
func storageTypeName(storageType architecture.StorageType) string {
	switch storageType.Kind {
	case architecture.IntStorage:
		return intTypeName(storageType.ByteSize, true)
	case architecture.FloatStorage:
		if storageType.ByteSize == 4 {
			return "float"
		}
		return "double"
	case architecture.PointerStorage:
		return "void*"
	case architecture.VectorStorage:
		return vectorTypeName(storageType.ByteSize)
	default:
		panic(fmt.Sprintf("unhandled storage type: %v", storageType))
	}
}
