package aarch64

import (
	"fmt"

	"github.com/pattyshack/asmbridge/architecture"
	"github.com/pattyshack/asmbridge/ast"
	"github.com/pattyshack/asmbridge/platform"
)

const (
	NEON = architecture.Feature("neon")
	SVE  = architecture.Feature("sve")
)

// Modifiers that select a vector register's scalar view (e.g., "{0:s}" for
// s0).
var scalarViewModifiers = []ast.Modifier{'b', 'h', 's', 'd', 'q'}

var classes = map[architecture.RegisterClass]platform.ClassEntry{
	architecture.AArch64Reg: {
		Constraint: "r",
		Dummy:      platform.StorageTypePtr(architecture.I32),
		Features:   []architecture.Feature{architecture.NoFeature},
		Modifiers:  platform.PassModifiers(),
	},
	architecture.AArch64Vreg: {
		Constraint: "w",
		Dummy:      platform.StorageTypePtr(architecture.F32),
		Features:   []architecture.Feature{NEON},
		Modifiers:  platform.PassModifiers(scalarViewModifiers...),
	},
	architecture.AArch64VregLow16: {
		Constraint: "x",
		Dummy:      platform.StorageTypePtr(architecture.F32),
		Features:   []architecture.Feature{NEON},
		Modifiers:  platform.PassModifiers(scalarViewModifiers...),
	},
	architecture.AArch64Preg: {
		Constraint: "Upl",
		Features:   []architecture.Feature{SVE},
		Modifiers:  platform.PassModifiers(),
	},
}

// x18 is the platform register, x19 is used internally by llvm, and x29 is
// the frame pointer.  None of them can be used as operands.
var registers = newRegisterSet()

func newRegisterSet() *architecture.RegisterSet {
	list := []*architecture.Register{}
	for i := 0; i <= 30; i++ {
		switch i {
		case 18, 19, 29:
			continue
		case 30:
			list = append(
				list,
				architecture.NewRegister("x30", architecture.AArch64Reg, "w30", "lr"))
		default:
			list = append(
				list,
				architecture.NewRegister(
					fmt.Sprintf("x%d", i),
					architecture.AArch64Reg,
					fmt.Sprintf("w%d", i)))
		}
	}

	for i := 0; i < 32; i++ {
		aliases := []string{}
		for _, prefix := range []string{"b", "h", "s", "d", "q", "z"} {
			aliases = append(aliases, fmt.Sprintf("%s%d", prefix, i))
		}

		list = append(
			list,
			architecture.NewRegister(
				fmt.Sprintf("v%d", i),
				architecture.AArch64Vreg,
				aliases...))
	}

	for i := 0; i < 16; i++ {
		list = append(
			list,
			architecture.NewRegister(fmt.Sprintf("p%d", i), architecture.AArch64Preg))
	}

	return architecture.NewRegisterSet(list...)
}

func NewPlatform(features architecture.FeatureSet) platform.Platform {
	return &platform.Table{
		Architecture:         architecture.AArch64,
		FeatureSet:           features,
		RegisterSet:          registers,
		Classes:              classes,
		PinExplicitRegisters: true,
	}
}
