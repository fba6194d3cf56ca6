package riscv

import (
	"fmt"

	"github.com/pattyshack/asmbridge/architecture"
	"github.com/pattyshack/asmbridge/platform"
)

const (
	F = architecture.Feature("f")
	D = architecture.Feature("d")
	V = architecture.Feature("v")
)

var classes = map[architecture.RegisterClass]platform.ClassEntry{
	architecture.RiscVReg: {
		Constraint: "r",
		Dummy:      platform.StorageTypePtr(architecture.I32),
		Features:   []architecture.Feature{architecture.NoFeature},
		Modifiers:  platform.MapModifiers(nil),
	},
	architecture.RiscVFreg: {
		Constraint: "f",
		Dummy:      platform.StorageTypePtr(architecture.F32),
		Features:   []architecture.Feature{F, D},
		Modifiers:  platform.MapModifiers(nil),
	},
	// gcc has no vector register constraint.
	architecture.RiscVVreg: {
		Dummy:    platform.StorageTypePtr(architecture.F32),
		Features: []architecture.Feature{V},
	},
}

// abi names for x1, x5-x7, x9-x31.  x2-x4 (sp, gp, tp) and x8 (frame
// pointer) are reserved.
var abiRegisterNames = map[int]string{
	1:  "ra",
	5:  "t0",
	6:  "t1",
	7:  "t2",
	9:  "s1",
	28: "t3",
	29: "t4",
	30: "t5",
	31: "t6",
}

var abiFloatRegisterNames = map[int]string{
	8:  "fs0",
	9:  "fs1",
	28: "ft8",
	29: "ft9",
	30: "ft10",
	31: "ft11",
}

func init() {
	for i := 10; i <= 17; i++ {
		abiRegisterNames[i] = fmt.Sprintf("a%d", i-10)
		abiFloatRegisterNames[i] = fmt.Sprintf("fa%d", i-10)
	}
	for i := 18; i <= 27; i++ {
		abiRegisterNames[i] = fmt.Sprintf("s%d", i-16)
		abiFloatRegisterNames[i] = fmt.Sprintf("fs%d", i-16)
	}
	for i := 0; i <= 7; i++ {
		abiFloatRegisterNames[i] = fmt.Sprintf("ft%d", i)
	}

	registers = newRegisterSet()
}

var registers *architecture.RegisterSet

func newRegisterSet() *architecture.RegisterSet {
	list := []*architecture.Register{}
	for i := 1; i < 32; i++ {
		abiName, ok := abiRegisterNames[i]
		if !ok {
			continue
		}

		list = append(
			list,
			architecture.NewRegister(
				fmt.Sprintf("x%d", i),
				architecture.RiscVReg,
				abiName))
	}

	for i := 0; i < 32; i++ {
		list = append(
			list,
			architecture.NewRegister(
				fmt.Sprintf("f%d", i),
				architecture.RiscVFreg,
				abiFloatRegisterNames[i]))
	}

	for i := 0; i < 32; i++ {
		list = append(
			list,
			architecture.NewRegister(fmt.Sprintf("v%d", i), architecture.RiscVVreg))
	}

	return architecture.NewRegisterSet(list...)
}

// NewPlatform panics if arch is not a riscv architecture.
func NewPlatform(
	arch architecture.Name,
	features architecture.FeatureSet,
) platform.Platform {
	if arch.Family() != architecture.RiscVFamily {
		panic("unsupported riscv architecture: " + arch)
	}

	return &platform.Table{
		Architecture:         arch,
		FeatureSet:           features,
		RegisterSet:          registers,
		Classes:              classes,
		PinExplicitRegisters: true,
	}
}
