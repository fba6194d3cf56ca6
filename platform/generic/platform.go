// Package generic provides the lookup tables for architectures without
// constraint support.  Only the dummy output types are known; every operand
// that binds a register is reported as unimplemented.  Const / sym operands
// and global assembly still lower.
package generic

import (
	"github.com/pattyshack/asmbridge/architecture"
	"github.com/pattyshack/asmbridge/platform"
)

var (
	i16 = platform.StorageTypePtr(architecture.I16)
	i32 = platform.StorageTypePtr(architecture.I32)
	i64 = platform.StorageTypePtr(architecture.I64)
	f32 = platform.StorageTypePtr(architecture.F32)
	f64 = platform.StorageTypePtr(architecture.F64)
)

var dummyTypes = map[architecture.RegisterClass]*architecture.StorageType{
	architecture.ArmReg:       i32,
	architecture.ArmSreg:      f32,
	architecture.ArmSregLow16: f32,
	architecture.ArmDreg:      f64,
	architecture.ArmDregLow16: f64,
	architecture.ArmDregLow8:  f64,

	architecture.HexagonReg: i32,

	architecture.MipsReg:  i32,
	architecture.MipsFreg: f32,

	architecture.NvptxReg16: i16,
	architecture.NvptxReg32: i32,
	architecture.NvptxReg64: i64,

	architecture.PowerPCReg:        i32,
	architecture.PowerPCRegNonzero: i32,
	architecture.PowerPCFreg:       f64,

	architecture.WasmLocal: i32,

	architecture.S390xReg:  i32,
	architecture.S390xFreg: f64,
}

var clobberOnlyClasses = map[architecture.RegisterClass]struct{}{
	architecture.PowerPCCr:  {},
	architecture.PowerPCXer: {},
}

// NewPlatform panics for architectures with dedicated tables.
func NewPlatform(
	arch architecture.Name,
	features architecture.FeatureSet,
) platform.Platform {
	switch arch.Family() {
	case architecture.X86Family,
		architecture.AArch64Family,
		architecture.RiscVFamily,
		architecture.SpirVFamily,
		"":

		panic("unsupported generic architecture: " + arch)
	}

	classes := map[architecture.RegisterClass]platform.ClassEntry{}
	for _, class := range architecture.RegisterClasses(arch.Family()) {
		_, ok := clobberOnlyClasses[class]
		if ok {
			classes[class] = platform.ClassEntry{ClobberOnly: true}
			continue
		}

		classes[class] = platform.ClassEntry{
			Dummy: dummyTypes[class],
		}
	}

	return &platform.Table{
		Architecture: arch,
		FeatureSet:   features,
		RegisterSet:  architecture.NewRegisterSet(),
		Classes:      classes,
	}
}
