package x86

import (
	"github.com/pattyshack/asmbridge/architecture"
	"github.com/pattyshack/asmbridge/ast"
	"github.com/pattyshack/asmbridge/platform"
)

const (
	SSE     = architecture.Feature("sse")
	AVX     = architecture.Feature("avx")
	AVX512F = architecture.Feature("avx512f")
)

// Templates are written in intel syntax by default.  The att_syntax option
// switches the assembler into at&t syntax for the duration of the block.
var attDialect = &platform.Dialect{
	InlinePrefix:    ".att_syntax noprefix\n\t",
	InlineSuffix:    "\n\t.intel_syntax noprefix",
	GlobalPrefix:    ".att_syntax\n\t",
	GlobalSuffix:    "\n\t.intel_syntax noprefix",
	ImmediatePrefix: "$",
}

// gcc names the x87 stack top "st" rather than "st(0)".
var renames = map[string]string{
	"st(0)": "st",
}

// reg and reg_abcd default to the full register width.
func generalRegisterModifiers(
	arch architecture.Name,
	modifier ast.Modifier,
) (
	ast.Modifier,
	bool,
) {
	switch modifier {
	case ast.NoModifier:
		if arch == architecture.X86_64 {
			return 'q', true
		}
		return 'k', true
	case 'l':
		return 'b', true
	case 'h':
		return 'h', true
	case 'x':
		return 'w', true
	case 'e':
		return 'k', true
	case 'r':
		return 'q', true
	default:
		return ast.NoModifier, false
	}
}

func vectorRegisterModifiers(defaultModifier ast.Modifier) platform.ModifierRule {
	return platform.MapModifiers(map[ast.Modifier]ast.Modifier{
		ast.NoModifier: defaultModifier,
		'x':            'x',
		'y':            't',
		'z':            'g',
	})
}

var classes = map[architecture.RegisterClass]platform.ClassEntry{
	architecture.X86Reg: {
		Constraint: "r",
		Dummy:      platform.StorageTypePtr(architecture.I32),
		Features:   []architecture.Feature{architecture.NoFeature},
		Modifiers:  generalRegisterModifiers,
	},
	architecture.X86RegAbcd: {
		Constraint: "Q",
		Dummy:      platform.StorageTypePtr(architecture.I32),
		Features:   []architecture.Feature{architecture.NoFeature},
		Modifiers:  generalRegisterModifiers,
	},
	architecture.X86RegByte: {
		Constraint: "q",
		Dummy:      platform.StorageTypePtr(architecture.I8),
		Features:   []architecture.Feature{architecture.NoFeature},
		Modifiers:  platform.DropModifiers,
	},
	architecture.X86Xmm: {
		Constraint: "x",
		Dummy:      platform.StorageTypePtr(architecture.F32),
		Features:   []architecture.Feature{SSE},
		Modifiers:  vectorRegisterModifiers('x'),
	},
	architecture.X86Ymm: {
		Constraint: "x",
		Dummy:      platform.StorageTypePtr(architecture.F32),
		Features:   []architecture.Feature{AVX},
		Modifiers:  vectorRegisterModifiers('t'),
	},
	architecture.X86Zmm: {
		Constraint: "v",
		Dummy:      platform.StorageTypePtr(architecture.F32),
		Features:   []architecture.Feature{AVX512F},
		Modifiers:  vectorRegisterModifiers('g'),
	},
	architecture.X86Kreg: {
		Constraint: "Yk",
		Dummy:      platform.StorageTypePtr(architecture.I16),
		Features:   []architecture.Feature{AVX512F},
		Modifiers:  platform.DropModifiers,
	},
	// k0 can't be used as a write mask; there's no gcc constraint for it.
	architecture.X86Kreg0: {
		Dummy:     platform.StorageTypePtr(architecture.I16),
		Modifiers: platform.DropModifiers,
	},
	architecture.X86X87: {ClobberOnly: true},
	architecture.X86Mmx: {ClobberOnly: true},
	architecture.X86Tmm: {ClobberOnly: true},
}

// NewPlatform panics if arch is not an x86 family architecture.
func NewPlatform(
	arch architecture.Name,
	features architecture.FeatureSet,
) platform.Platform {
	var registers *architecture.RegisterSet
	switch arch {
	case architecture.X86:
		registers = x86Registers
	case architecture.X86_64:
		registers = x86_64Registers
	default:
		panic("unsupported x86 architecture: " + arch)
	}

	return &platform.Table{
		Architecture:         arch,
		FeatureSet:           features,
		RegisterSet:          registers,
		Classes:              classes,
		Renames:              renames,
		PinExplicitRegisters: true,
		Dialect:              attDialect,
	}
}
