package architecture

import (
	"sort"
)

// RegisterClass is an abstract set of registers.  The target assembler's
// register allocator is free to pick any register within the class.
type RegisterClass struct {
	Family Family
	Name   string
}

func (class RegisterClass) IsValid() bool {
	return class.Family != "" && class.Name != ""
}

func (class RegisterClass) String() string {
	return string(class.Family) + "::" + class.Name
}

var (
	X86Reg     = RegisterClass{X86Family, "reg"}
	X86RegAbcd = RegisterClass{X86Family, "reg_abcd"}
	X86RegByte = RegisterClass{X86Family, "reg_byte"}
	X86Xmm     = RegisterClass{X86Family, "xmm_reg"}
	X86Ymm     = RegisterClass{X86Family, "ymm_reg"}
	X86Zmm     = RegisterClass{X86Family, "zmm_reg"}
	X86Kreg    = RegisterClass{X86Family, "kreg"}
	X86Kreg0   = RegisterClass{X86Family, "kreg0"}
	X86X87     = RegisterClass{X86Family, "x87_reg"}
	X86Mmx     = RegisterClass{X86Family, "mmx_reg"}
	X86Tmm     = RegisterClass{X86Family, "tmm_reg"}

	AArch64Reg       = RegisterClass{AArch64Family, "reg"}
	AArch64Vreg      = RegisterClass{AArch64Family, "vreg"}
	AArch64VregLow16 = RegisterClass{AArch64Family, "vreg_low16"}
	AArch64Preg      = RegisterClass{AArch64Family, "preg"}

	ArmReg       = RegisterClass{ArmFamily, "reg"}
	ArmSreg      = RegisterClass{ArmFamily, "sreg"}
	ArmSregLow16 = RegisterClass{ArmFamily, "sreg_low16"}
	ArmDreg      = RegisterClass{ArmFamily, "dreg"}
	ArmDregLow16 = RegisterClass{ArmFamily, "dreg_low16"}
	ArmDregLow8  = RegisterClass{ArmFamily, "dreg_low8"}
	ArmQreg      = RegisterClass{ArmFamily, "qreg"}
	ArmQregLow8  = RegisterClass{ArmFamily, "qreg_low8"}
	ArmQregLow4  = RegisterClass{ArmFamily, "qreg_low4"}

	RiscVReg  = RegisterClass{RiscVFamily, "reg"}
	RiscVFreg = RegisterClass{RiscVFamily, "freg"}
	RiscVVreg = RegisterClass{RiscVFamily, "vreg"}

	MipsReg  = RegisterClass{MipsFamily, "reg"}
	MipsFreg = RegisterClass{MipsFamily, "freg"}

	PowerPCReg        = RegisterClass{PowerPCFamily, "reg"}
	PowerPCRegNonzero = RegisterClass{PowerPCFamily, "reg_nonzero"}
	PowerPCFreg       = RegisterClass{PowerPCFamily, "freg"}
	PowerPCCr         = RegisterClass{PowerPCFamily, "cr"}
	PowerPCXer        = RegisterClass{PowerPCFamily, "xer"}

	HexagonReg = RegisterClass{HexagonFamily, "reg"}

	NvptxReg16 = RegisterClass{NvptxFamily, "reg16"}
	NvptxReg32 = RegisterClass{NvptxFamily, "reg32"}
	NvptxReg64 = RegisterClass{NvptxFamily, "reg64"}

	S390xReg  = RegisterClass{S390xFamily, "reg"}
	S390xFreg = RegisterClass{S390xFamily, "freg"}

	WasmLocal = RegisterClass{WasmFamily, "local"}

	BpfReg  = RegisterClass{BpfFamily, "reg"}
	BpfWreg = RegisterClass{BpfFamily, "wreg"}

	AvrReg      = RegisterClass{AvrFamily, "reg"}
	AvrRegUpper = RegisterClass{AvrFamily, "reg_upper"}
	AvrRegPair  = RegisterClass{AvrFamily, "reg_pair"}
	AvrRegIw    = RegisterClass{AvrFamily, "reg_iw"}
	AvrRegPtr   = RegisterClass{AvrFamily, "reg_ptr"}

	Msp430Reg = RegisterClass{Msp430Family, "reg"}

	SpirVReg = RegisterClass{SpirVFamily, "reg"}

	registerClasses = map[Family][]RegisterClass{}
)

func init() {
	for _, class := range []RegisterClass{
		X86Reg, X86RegAbcd, X86RegByte, X86Xmm, X86Ymm, X86Zmm, X86Kreg,
		X86Kreg0, X86X87, X86Mmx, X86Tmm,
		AArch64Reg, AArch64Vreg, AArch64VregLow16, AArch64Preg,
		ArmReg, ArmSreg, ArmSregLow16, ArmDreg, ArmDregLow16, ArmDregLow8,
		ArmQreg, ArmQregLow8, ArmQregLow4,
		RiscVReg, RiscVFreg, RiscVVreg,
		MipsReg, MipsFreg,
		PowerPCReg, PowerPCRegNonzero, PowerPCFreg, PowerPCCr, PowerPCXer,
		HexagonReg,
		NvptxReg16, NvptxReg32, NvptxReg64,
		S390xReg, S390xFreg,
		WasmLocal,
		BpfReg, BpfWreg,
		AvrReg, AvrRegUpper, AvrRegPair, AvrRegIw, AvrRegPtr,
		Msp430Reg,
		SpirVReg,
	} {
		registerClasses[class.Family] = append(
			registerClasses[class.Family],
			class)
	}
}

// RegisterClasses returns all register classes known for the family.
func RegisterClasses(family Family) []RegisterClass {
	return registerClasses[family]
}

func LookupRegisterClass(family Family, name string) (RegisterClass, bool) {
	for _, class := range registerClasses[family] {
		if class.Name == name {
			return class, true
		}
	}
	return RegisterClass{}, false
}

// Register is an explicit physical register.  Name is the register's
// canonical assembly-visible name; Aliases are alternative spellings (e.g.,
// "eax" and "rax" for "ax") accepted when looking up the register.  Class is
// the register class the register belongs to, which determines whether the
// register is available under the active target feature set.
type Register struct {
	Name    string
	Aliases []string
	Class   RegisterClass
}

func NewRegister(name string, class RegisterClass, aliases ...string) *Register {
	return &Register{
		Name:    name,
		Aliases: aliases,
		Class:   class,
	}
}

func (register *Register) String() string {
	return register.Name
}

// RegisterSet is the set of explicit registers an architecture exposes,
// indexed by name and alias.
type RegisterSet struct {
	registers []*Register
	byName    map[string]*Register
}

func NewRegisterSet(registers ...*Register) *RegisterSet {
	set := &RegisterSet{
		byName: map[string]*Register{},
	}

	for _, register := range registers {
		set.add(register)
	}

	return set
}

func (set *RegisterSet) add(register *Register) {
	if register.Name == "" {
		panic("no register name")
	}

	if !register.Class.IsValid() {
		panic("register has no class: " + register.Name)
	}

	for _, name := range append([]string{register.Name}, register.Aliases...) {
		_, ok := set.byName[name]
		if ok {
			panic("added duplicate register: " + name)
		}
		set.byName[name] = register
	}

	set.registers = append(set.registers, register)
}

// Lookup accepts either the register's canonical name or one of its aliases.
func (set *RegisterSet) Lookup(name string) (*Register, bool) {
	if set == nil {
		return nil, false
	}
	register, ok := set.byName[name]
	return register, ok
}

// Registers returns the registers in insertion order.
func (set *RegisterSet) Registers() []*Register {
	if set == nil {
		return nil
	}
	return set.registers
}

// Names returns the sorted canonical register names.
func (set *RegisterSet) Names() []string {
	if set == nil {
		return nil
	}

	names := make([]string, 0, len(set.registers))
	for _, register := range set.registers {
		names = append(names, register.Name)
	}
	sort.Strings(names)
	return names
}
