package platform

import (
	"github.com/pattyshack/asmbridge/architecture"
	"github.com/pattyshack/asmbridge/ast"
)

// Resolution is the result of resolving an operand's register spec.  Exactly
// one of the fields is set.
type Resolution struct {
	// The dialect's constraint code for a register class (e.g., "r").
	Constraint string

	// The register name to pin a register variable to, for explicit registers.
	Register string
}

func (res Resolution) IsPinned() bool {
	return res.Register != ""
}

// Dialect holds the directives used to switch into (and back out of) an
// architecture's alternate assembly syntax.
type Dialect struct {
	// Wrapping for inline assembly templates.
	InlinePrefix string
	InlineSuffix string

	// Wrapping for module level assembly.
	GlobalPrefix string
	GlobalSuffix string

	// Prefix added to const operands spliced into inline assembly templates.
	ImmediatePrefix string
}

type Platform interface {
	ArchitectureName() architecture.Name

	// The enabled target features.
	Features() architecture.FeatureSet

	// The explicit registers usable by asm operands.
	Registers() *architecture.RegisterSet

	// StorageType returns the concrete storage type of a source value type.
	StorageType(ast.Type) architecture.StorageType

	ResolveRegister(ast.RegisterSpec) (Resolution, error)

	// DummyOutputType returns the storage type used for discarded register
	// class outputs.  The type only needs to be compatible with the class.
	DummyOutputType(architecture.RegisterClass) (architecture.StorageType, error)

	// TranslateModifier maps a template placeholder modifier onto the
	// dialect's operand modifier.  ast.NoModifier may map onto a non-empty
	// modifier, and vice versa.
	TranslateModifier(
		architecture.RegisterClass,
		ast.Modifier,
	) (
		ast.Modifier,
		error,
	)

	// IsSupported reports whether the register is available under the enabled
	// target features.
	IsSupported(*architecture.Register) bool

	// AlternateDialect returns nil when the architecture only has a single
	// assembly syntax.
	AlternateDialect() *Dialect
}
