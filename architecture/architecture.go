package architecture

// Name identifies a target instruction set architecture.
type Name string

// Family groups architectures that share register classes and constraint
// tables (e.g., x86 and x86_64).
type Family string

const (
	X86       = Name("x86")
	X86_64    = Name("x86_64")
	AArch64   = Name("aarch64")
	Arm       = Name("arm")
	RiscV32   = Name("riscv32")
	RiscV64   = Name("riscv64")
	Mips      = Name("mips")
	Mips64    = Name("mips64")
	PowerPC   = Name("powerpc")
	PowerPC64 = Name("powerpc64")
	Hexagon   = Name("hexagon")
	Nvptx64   = Name("nvptx64")
	S390x     = Name("s390x")
	Wasm32    = Name("wasm32")
	Wasm64    = Name("wasm64")
	Bpf       = Name("bpf")
	Avr       = Name("avr")
	Msp430    = Name("msp430")
	SpirV     = Name("spirv")

	X86Family     = Family("x86")
	AArch64Family = Family("aarch64")
	ArmFamily     = Family("arm")
	RiscVFamily   = Family("riscv")
	MipsFamily    = Family("mips")
	PowerPCFamily = Family("powerpc")
	HexagonFamily = Family("hexagon")
	NvptxFamily   = Family("nvptx")
	S390xFamily   = Family("s390x")
	WasmFamily    = Family("wasm")
	BpfFamily     = Family("bpf")
	AvrFamily     = Family("avr")
	Msp430Family  = Family("msp430")
	SpirVFamily   = Family("spirv")
)

var (
	families = map[Name]Family{
		X86:       X86Family,
		X86_64:    X86Family,
		AArch64:   AArch64Family,
		Arm:       ArmFamily,
		RiscV32:   RiscVFamily,
		RiscV64:   RiscVFamily,
		Mips:      MipsFamily,
		Mips64:    MipsFamily,
		PowerPC:   PowerPCFamily,
		PowerPC64: PowerPCFamily,
		Hexagon:   HexagonFamily,
		Nvptx64:   NvptxFamily,
		S390x:     S390xFamily,
		Wasm32:    WasmFamily,
		Wasm64:    WasmFamily,
		Bpf:       BpfFamily,
		Avr:       AvrFamily,
		Msp430:    Msp430Family,
		SpirV:     SpirVFamily,
	}

	// Alternative spellings accepted by ParseName.
	aliases = map[string]Name{
		"386":     X86,
		"i386":    X86,
		"i686":    X86,
		"amd64":   X86_64,
		"x64":     X86_64,
		"arm64":   AArch64,
		"ppc":     PowerPC,
		"ppc64":   PowerPC64,
		"ppc64le": PowerPC64,
		"mipsel":  Mips,
	}
)

func ParseName(name string) (Name, bool) {
	arch := Name(name)
	_, ok := families[arch]
	if ok {
		return arch, true
	}

	arch, ok = aliases[name]
	return arch, ok
}

func (name Name) Family() Family {
	return families[name]
}

func (name Name) IsX86() bool {
	return name.Family() == X86Family
}

// PointerByteSize returns the size of a data pointer on the architecture.
func (name Name) PointerByteSize() int {
	switch name {
	case X86_64, AArch64, RiscV64, Mips64, PowerPC64, Nvptx64, S390x, Wasm64,
		Bpf:
		return 8
	case Avr, Msp430:
		return 2
	default:
		return 4
	}
}

func (name Name) String() string {
	return string(name)
}
