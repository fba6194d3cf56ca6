package platform

import (
	"fmt"

	"github.com/pattyshack/asmbridge/architecture"
	"github.com/pattyshack/asmbridge/ast"
)

// ModifierRule maps a placeholder modifier onto the dialect's modifier.
// ok is false when the modifier is not supported by the register class.
type ModifierRule func(
	arch architecture.Name,
	modifier ast.Modifier,
) (
	result ast.Modifier,
	ok bool,
)

// DropModifiers discards any modifier.
func DropModifiers(architecture.Name, ast.Modifier) (ast.Modifier, bool) {
	return ast.NoModifier, true
}

// PassModifiers forwards NoModifier and the allowed modifiers as is.  When
// no modifier is listed, every modifier is forwarded.
func PassModifiers(allowed ...ast.Modifier) ModifierRule {
	return func(
		arch architecture.Name,
		modifier ast.Modifier,
	) (
		ast.Modifier,
		bool,
	) {
		if modifier == ast.NoModifier || len(allowed) == 0 {
			return modifier, true
		}

		for _, candidate := range allowed {
			if candidate == modifier {
				return modifier, true
			}
		}
		return ast.NoModifier, false
	}
}

// MapModifiers translates modifiers using the mapping.  The NoModifier key,
// if present, supplies the modifier used when the placeholder has none.
// NoModifier is forwarded as is when the key is absent.
func MapModifiers(mapping map[ast.Modifier]ast.Modifier) ModifierRule {
	return func(
		arch architecture.Name,
		modifier ast.Modifier,
	) (
		ast.Modifier,
		bool,
	) {
		result, ok := mapping[modifier]
		if ok {
			return result, true
		}

		if modifier == ast.NoModifier {
			return ast.NoModifier, true
		}
		return ast.NoModifier, false
	}
}

// ClassEntry describes how a register class lowers onto the target dialect.
// Zero fields mean unimplemented.
type ClassEntry struct {
	Constraint string

	// Clobber-only classes never bind values.  Explicit registers of the class
	// may still be clobbered.
	ClobberOnly bool

	// Storage type for discarded class outputs.
	Dummy *architecture.StorageType

	// The class is available when any of the features is enabled.
	// architecture.NoFeature marks the class as unconditionally available.
	// An empty list means the class is never available.
	Features []architecture.Feature

	Modifiers ModifierRule
}

// Table is a table driven Platform.  Architecture specific packages populate
// the table; lookups never fall back to a guessed entry.
type Table struct {
	Architecture architecture.Name
	FeatureSet   architecture.FeatureSet
	RegisterSet  *architecture.RegisterSet

	Classes map[architecture.RegisterClass]ClassEntry

	// Explicit register names whose register variable declaration name
	// differs from the register's canonical name.
	Renames map[string]string

	// When false, explicit registers are unimplemented.
	PinExplicitRegisters bool

	Dialect *Dialect
}

var _ Platform = &Table{}

func (table *Table) ArchitectureName() architecture.Name {
	return table.Architecture
}

func (table *Table) Features() architecture.FeatureSet {
	return table.FeatureSet
}

func (table *Table) Registers() *architecture.RegisterSet {
	return table.RegisterSet
}

func (table *Table) AlternateDialect() *Dialect {
	return table.Dialect
}

func (table *Table) StorageType(valueType ast.Type) architecture.StorageType {
	switch t := valueType.(type) {
	case ast.IntType:
		return architecture.IntStorageType(t.ByteSize())
	case ast.FloatType:
		if t.Kind == ast.F32 {
			return architecture.F32
		}
		return architecture.F64
	case ast.PointerType:
		return architecture.PointerStorageType(table.Architecture)
	case ast.VectorType:
		return architecture.VectorStorageType(t.ByteSize)
	default:
		panic(fmt.Sprintf("unhandled type: %v", valueType))
	}
}

func (table *Table) classEntry(
	class architecture.RegisterClass,
) (
	ClassEntry,
	error,
) {
	entry, ok := table.Classes[class]
	if !ok {
		return ClassEntry{}, unimplemented(
			table.Architecture,
			"register class (%s)",
			class)
	}
	return entry, nil
}

func (table *Table) ResolveRegister(spec ast.RegisterSpec) (Resolution, error) {
	if spec.IsExplicit() {
		if !table.PinExplicitRegisters {
			return Resolution{}, unimplemented(
				table.Architecture,
				"explicit register (%s)",
				spec.Register.Name)
		}

		name := spec.Register.Name
		renamed, ok := table.Renames[name]
		if ok {
			name = renamed
		}
		return Resolution{Register: name}, nil
	}

	entry, err := table.classEntry(spec.Class)
	if err != nil {
		return Resolution{}, err
	}

	if entry.ClobberOnly {
		return Resolution{}, clobberOnly(spec.Class)
	}

	if entry.Constraint == "" {
		return Resolution{}, unimplemented(
			table.Architecture,
			"constraint for register class (%s)",
			spec.Class)
	}

	return Resolution{Constraint: entry.Constraint}, nil
}

func (table *Table) DummyOutputType(
	class architecture.RegisterClass,
) (
	architecture.StorageType,
	error,
) {
	entry, err := table.classEntry(class)
	if err != nil {
		return architecture.StorageType{}, err
	}

	if entry.ClobberOnly {
		return architecture.StorageType{}, clobberOnly(class)
	}

	if entry.Dummy == nil {
		return architecture.StorageType{}, unimplemented(
			table.Architecture,
			"dummy output type for register class (%s)",
			class)
	}

	return *entry.Dummy, nil
}

func (table *Table) TranslateModifier(
	class architecture.RegisterClass,
	modifier ast.Modifier,
) (
	ast.Modifier,
	error,
) {
	entry, err := table.classEntry(class)
	if err != nil {
		return ast.NoModifier, err
	}

	if entry.ClobberOnly {
		return ast.NoModifier, clobberOnly(class)
	}

	if entry.Modifiers == nil {
		return ast.NoModifier, unimplemented(
			table.Architecture,
			"template modifiers for register class (%s)",
			class)
	}

	result, ok := entry.Modifiers(table.Architecture, modifier)
	if !ok {
		return ast.NoModifier, unimplemented(
			table.Architecture,
			"template modifier (%s) for register class (%s)",
			modifier,
			class)
	}

	return result, nil
}

func (table *Table) IsSupported(register *architecture.Register) bool {
	entry, ok := table.Classes[register.Class]
	if !ok {
		return false
	}

	for _, feature := range entry.Features {
		if feature == architecture.NoFeature ||
			table.FeatureSet.Contains(feature) {

			return true
		}
	}
	return false
}

// StorageTypePtr is a convenience for populating ClassEntry.Dummy.
func StorageTypePtr(t architecture.StorageType) *architecture.StorageType {
	return &t
}
