package extasm

import (
	"github.com/pattyshack/asmbridge/architecture"
	"github.com/pattyshack/asmbridge/ast"
)

// Builder appends to a function's instruction stream.
//
// Locals must be declared before the asm statement that uses them, and no
// instruction other than register variable declarations may sit between the
// pinned locals and the statement.
type Builder interface {
	// NewLocal declares a temporary.  nameHint need not be unique.
	NewLocal(nameHint string, storageType architecture.StorageType) *Local

	// NewRegisterLocal declares a temporary pinned to the named register.
	NewRegisterLocal(
		nameHint string,
		storageType architecture.StorageType,
		register string,
	) *Local

	// Assign appends "dest = value".
	Assign(dest *Local, value ast.Value)

	// SymbolAddress returns the address of the function / static item.
	SymbolAddress(symbol *ast.SymbolReference, mangledName string) Expression

	AddExtendedAsm(asm *Asm)

	// Unreachable appends a terminator marking the rest of the block as
	// unreachable.
	Unreachable()

	// Store appends "dest = src".
	Store(dest *ast.VariableReference, src *Local)
}

// Module collects module level assembly.
type Module interface {
	AddTopLevelAsm(text string)
}
