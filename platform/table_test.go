package platform_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/pattyshack/asmbridge/architecture"
	"github.com/pattyshack/asmbridge/ast"
	"github.com/pattyshack/asmbridge/platform"
	"github.com/pattyshack/asmbridge/platform/aarch64"
	"github.com/pattyshack/asmbridge/platform/riscv"
	"github.com/pattyshack/asmbridge/platform/target"
	"github.com/pattyshack/asmbridge/platform/x86"
)

func newPlatform(
	name string,
	features ...architecture.Feature,
) platform.Platform {
	result, err := target.New(name, features...)
	Expect(err).ToNot(HaveOccurred())
	return result
}

func lookup(p platform.Platform, name string) *architecture.Register {
	register, ok := p.Registers().Lookup(name)
	Expect(ok).To(BeTrue(), "register %s", name)
	return register
}

func expectUnimplemented(err error) {
	Expect(err).To(HaveOccurred())
	unimplemented := &platform.UnimplementedError{}
	Expect(errors.As(err, &unimplemented)).To(BeTrue(), err.Error())
}

var _ = Describe("target.New", func() {
	It("should accept architecture aliases", func() {
		Expect(newPlatform("amd64").ArchitectureName()).To(
			Equal(architecture.X86_64))
		Expect(newPlatform("i686").ArchitectureName()).To(
			Equal(architecture.X86))
		Expect(newPlatform("arm64").ArchitectureName()).To(
			Equal(architecture.AArch64))
		Expect(newPlatform("ppc64le").ArchitectureName()).To(
			Equal(architecture.PowerPC64))
	})

	It("should reject unknown architectures", func() {
		_, err := target.New("vax")
		Expect(err).To(HaveOccurred())
	})

	It("should reject spirv", func() {
		_, err := target.New("spirv")
		Expect(err).To(HaveOccurred())
	})

	It("should enable the requested features", func() {
		p := newPlatform("x86_64", x86.AVX, x86.SSE)
		Expect(p.Features().Sorted()).To(Equal(
			[]architecture.Feature{x86.AVX, x86.SSE}))
	})
})

var _ = Describe("x86", func() {
	DescribeTable("class constraints",
		func(class architecture.RegisterClass, constraint string) {
			resolution, err := newPlatform("x86_64").ResolveRegister(
				ast.ClassRegister(class))
			Expect(err).ToNot(HaveOccurred())
			Expect(resolution.IsPinned()).To(BeFalse())
			Expect(resolution.Constraint).To(Equal(constraint))
		},
		Entry("reg", architecture.X86Reg, "r"),
		Entry("reg_abcd", architecture.X86RegAbcd, "Q"),
		Entry("reg_byte", architecture.X86RegByte, "q"),
		Entry("xmm_reg", architecture.X86Xmm, "x"),
		Entry("ymm_reg", architecture.X86Ymm, "x"),
		Entry("zmm_reg", architecture.X86Zmm, "v"),
		Entry("kreg", architecture.X86Kreg, "Yk"),
	)

	It("should not guess a kreg0 constraint", func() {
		_, err := newPlatform("x86_64").ResolveRegister(
			ast.ClassRegister(architecture.X86Kreg0))
		expectUnimplemented(err)

		dummy, err := newPlatform("x86_64").DummyOutputType(architecture.X86Kreg0)
		Expect(err).ToNot(HaveOccurred())
		Expect(dummy).To(Equal(architecture.I16))
	})

	DescribeTable("clobber only classes",
		func(class architecture.RegisterClass) {
			p := newPlatform("x86_64")

			_, err := p.ResolveRegister(ast.ClassRegister(class))
			Expect(errors.Is(err, platform.ErrClobberOnly)).To(BeTrue())

			_, err = p.DummyOutputType(class)
			Expect(errors.Is(err, platform.ErrClobberOnly)).To(BeTrue())

			_, err = p.TranslateModifier(class, ast.NoModifier)
			Expect(errors.Is(err, platform.ErrClobberOnly)).To(BeTrue())
		},
		Entry("x87_reg", architecture.X86X87),
		Entry("mmx_reg", architecture.X86Mmx),
		Entry("tmm_reg", architecture.X86Tmm),
	)

	It("should pin explicit registers by canonical name", func() {
		p := newPlatform("x86_64")

		resolution, err := p.ResolveRegister(
			ast.ExplicitRegister(lookup(p, "eax")))
		Expect(err).ToNot(HaveOccurred())
		Expect(resolution).To(Equal(platform.Resolution{Register: "ax"}))

		resolution, err = p.ResolveRegister(
			ast.ExplicitRegister(lookup(p, "st(0)")))
		Expect(err).ToNot(HaveOccurred())
		Expect(resolution.Register).To(Equal("st"))

		resolution, err = p.ResolveRegister(
			ast.ExplicitRegister(lookup(p, "st(3)")))
		Expect(err).ToNot(HaveOccurred())
		Expect(resolution.Register).To(Equal("st(3)"))
	})

	It("should expose architecture specific register files", func() {
		x64 := newPlatform("x86_64")
		x32 := newPlatform("x86")

		for _, name := range []string{"r8", "r15d", "sil", "xmm31", "tmm7"} {
			_, ok := x64.Registers().Lookup(name)
			Expect(ok).To(BeTrue(), name)

			_, ok = x32.Registers().Lookup(name)
			Expect(ok).To(BeFalse(), name)
		}

		for _, name := range []string{"eax", "xmm7", "k0", "mm0", "st"} {
			_, ok := x32.Registers().Lookup(name)
			Expect(ok).To(BeTrue(), name)
		}

		_, ok := x32.Registers().Lookup("xmm8")
		Expect(ok).To(BeFalse())
	})

	DescribeTable("modifiers",
		func(
			arch string,
			class architecture.RegisterClass,
			modifier ast.Modifier,
			expected ast.Modifier,
		) {
			result, err := newPlatform(arch).TranslateModifier(class, modifier)
			Expect(err).ToNot(HaveOccurred())
			Expect(result).To(Equal(expected))
		},
		Entry("x86_64 reg default", "x86_64", architecture.X86Reg, ast.NoModifier, ast.Modifier('q')),
		Entry("x86 reg default", "x86", architecture.X86Reg, ast.NoModifier, ast.Modifier('k')),
		Entry("reg l", "x86_64", architecture.X86Reg, ast.Modifier('l'), ast.Modifier('b')),
		Entry("reg h", "x86_64", architecture.X86RegAbcd, ast.Modifier('h'), ast.Modifier('h')),
		Entry("reg x", "x86_64", architecture.X86Reg, ast.Modifier('x'), ast.Modifier('w')),
		Entry("reg e", "x86_64", architecture.X86Reg, ast.Modifier('e'), ast.Modifier('k')),
		Entry("reg r", "x86", architecture.X86Reg, ast.Modifier('r'), ast.Modifier('q')),
		Entry("reg_byte drops", "x86_64", architecture.X86RegByte, ast.Modifier('l'), ast.NoModifier),
		Entry("xmm default", "x86_64", architecture.X86Xmm, ast.NoModifier, ast.Modifier('x')),
		Entry("xmm y", "x86_64", architecture.X86Xmm, ast.Modifier('y'), ast.Modifier('t')),
		Entry("ymm default", "x86_64", architecture.X86Ymm, ast.NoModifier, ast.Modifier('t')),
		Entry("zmm default", "x86_64", architecture.X86Zmm, ast.NoModifier, ast.Modifier('g')),
		Entry("zmm x", "x86_64", architecture.X86Zmm, ast.Modifier('x'), ast.Modifier('x')),
		Entry("kreg drops", "x86_64", architecture.X86Kreg, ast.Modifier('x'), ast.NoModifier),
	)

	It("should reject unknown modifiers", func() {
		_, err := newPlatform("x86_64").TranslateModifier(
			architecture.X86Reg,
			'z')
		expectUnimplemented(err)

		_, err = newPlatform("x86_64").TranslateModifier(
			architecture.X86Xmm,
			'q')
		expectUnimplemented(err)
	})

	It("should gate registers on target features", func() {
		p := newPlatform("x86_64", x86.AVX)

		Expect(p.IsSupported(lookup(p, "rax"))).To(BeTrue())
		Expect(p.IsSupported(lookup(p, "al"))).To(BeTrue())
		Expect(p.IsSupported(lookup(p, "xmm0"))).To(BeFalse())
		Expect(p.IsSupported(lookup(p, "ymm0"))).To(BeTrue())
		Expect(p.IsSupported(lookup(p, "zmm0"))).To(BeFalse())
		Expect(p.IsSupported(lookup(p, "k1"))).To(BeFalse())
		Expect(p.IsSupported(lookup(p, "k0"))).To(BeFalse())
		Expect(p.IsSupported(lookup(p, "st(1)"))).To(BeFalse())
		Expect(p.IsSupported(lookup(p, "mm1"))).To(BeFalse())

		p = newPlatform("x86_64", x86.AVX512F)
		Expect(p.IsSupported(lookup(p, "zmm31"))).To(BeTrue())
		Expect(p.IsSupported(lookup(p, "k7"))).To(BeTrue())
	})

	It("should provide the at&t dialect", func() {
		dialect := newPlatform("x86").AlternateDialect()
		Expect(dialect).ToNot(BeNil())
		Expect(dialect.InlinePrefix).To(Equal(".att_syntax noprefix\n\t"))
		Expect(dialect.InlineSuffix).To(Equal("\n\t.intel_syntax noprefix"))
		Expect(dialect.GlobalPrefix).To(Equal(".att_syntax\n\t"))
		Expect(dialect.GlobalSuffix).To(Equal("\n\t.intel_syntax noprefix"))
		Expect(dialect.ImmediatePrefix).To(Equal("$"))
	})

	It("should map value types onto storage types", func() {
		p := newPlatform("x86")
		Expect(p.StorageType(ast.IntType{Kind: ast.U16})).To(
			Equal(architecture.I16))
		Expect(p.StorageType(ast.FloatType{Kind: ast.F64})).To(
			Equal(architecture.F64))
		Expect(p.StorageType(ast.PointerType{})).To(
			Equal(architecture.StorageType{
				Kind:     architecture.PointerStorage,
				ByteSize: 4,
			}))
		Expect(p.StorageType(ast.VectorType{ByteSize: 16})).To(
			Equal(architecture.VectorStorageType(16)))
	})
})

var _ = Describe("aarch64", func() {
	DescribeTable("class constraints",
		func(class architecture.RegisterClass, constraint string) {
			resolution, err := newPlatform("aarch64").ResolveRegister(
				ast.ClassRegister(class))
			Expect(err).ToNot(HaveOccurred())
			Expect(resolution.Constraint).To(Equal(constraint))
		},
		Entry("reg", architecture.AArch64Reg, "r"),
		Entry("vreg", architecture.AArch64Vreg, "w"),
		Entry("vreg_low16", architecture.AArch64VregLow16, "x"),
		Entry("preg", architecture.AArch64Preg, "Upl"),
	)

	It("should have no dummy type for predicate registers", func() {
		_, err := newPlatform("aarch64").DummyOutputType(architecture.AArch64Preg)
		expectUnimplemented(err)

		dummy, err := newPlatform("aarch64").DummyOutputType(
			architecture.AArch64Vreg)
		Expect(err).ToNot(HaveOccurred())
		Expect(dummy).To(Equal(architecture.F32))
	})

	It("should pass scalar view modifiers", func() {
		p := newPlatform("aarch64")

		result, err := p.TranslateModifier(architecture.AArch64Vreg, 'd')
		Expect(err).ToNot(HaveOccurred())
		Expect(result).To(Equal(ast.Modifier('d')))

		result, err = p.TranslateModifier(architecture.AArch64Reg, 'w')
		Expect(err).ToNot(HaveOccurred())
		Expect(result).To(Equal(ast.Modifier('w')))

		_, err = p.TranslateModifier(architecture.AArch64Vreg, 'w')
		expectUnimplemented(err)
	})

	It("should reserve the platform and frame registers", func() {
		p := newPlatform("aarch64", aarch64.NEON)
		for _, name := range []string{"x18", "x19", "x29", "w29"} {
			_, ok := p.Registers().Lookup(name)
			Expect(ok).To(BeFalse(), name)
		}

		Expect(lookup(p, "lr").Name).To(Equal("x30"))
		Expect(lookup(p, "s7").Name).To(Equal("v7"))
		Expect(p.IsSupported(lookup(p, "q0"))).To(BeTrue())
		Expect(p.IsSupported(lookup(p, "p0"))).To(BeFalse())
		Expect(p.AlternateDialect()).To(BeNil())
	})
})

var _ = Describe("riscv", func() {
	It("should resolve classes", func() {
		p := newPlatform("riscv32", riscv.F)

		resolution, err := p.ResolveRegister(
			ast.ClassRegister(architecture.RiscVReg))
		Expect(err).ToNot(HaveOccurred())
		Expect(resolution.Constraint).To(Equal("r"))

		resolution, err = p.ResolveRegister(
			ast.ClassRegister(architecture.RiscVFreg))
		Expect(err).ToNot(HaveOccurred())
		Expect(resolution.Constraint).To(Equal("f"))

		_, err = p.ResolveRegister(ast.ClassRegister(architecture.RiscVVreg))
		expectUnimplemented(err)
	})

	It("should not accept modifiers", func() {
		p := newPlatform("riscv64")

		result, err := p.TranslateModifier(architecture.RiscVReg, ast.NoModifier)
		Expect(err).ToNot(HaveOccurred())
		Expect(result).To(Equal(ast.NoModifier))

		_, err = p.TranslateModifier(architecture.RiscVReg, 'x')
		expectUnimplemented(err)
	})

	It("should accept abi register names", func() {
		p := newPlatform("riscv64", riscv.D)

		Expect(lookup(p, "a0").Name).To(Equal("x10"))
		Expect(lookup(p, "s11").Name).To(Equal("x27"))
		Expect(lookup(p, "fa1").Name).To(Equal("f11"))
		Expect(lookup(p, "ft11").Name).To(Equal("f31"))

		for _, name := range []string{"x0", "sp", "x2", "gp", "tp", "x8", "fp"} {
			_, ok := p.Registers().Lookup(name)
			Expect(ok).To(BeFalse(), name)
		}

		Expect(p.IsSupported(lookup(p, "fs0"))).To(BeTrue())
		Expect(p.IsSupported(lookup(p, "v0"))).To(BeFalse())
	})
})

var _ = Describe("generic", func() {
	It("should provide dummy types", func() {
		p := newPlatform("powerpc64")

		dummy, err := p.DummyOutputType(architecture.PowerPCFreg)
		Expect(err).ToNot(HaveOccurred())
		Expect(dummy).To(Equal(architecture.F64))

		_, err = p.DummyOutputType(architecture.PowerPCCr)
		Expect(errors.Is(err, platform.ErrClobberOnly)).To(BeTrue())
	})

	It("should not guess constraints", func() {
		p := newPlatform("mips")

		_, err := p.ResolveRegister(ast.ClassRegister(architecture.MipsReg))
		expectUnimplemented(err)

		_, err = p.ResolveRegister(ast.ClassRegister(architecture.X86Reg))
		expectUnimplemented(err)

		_, err = p.ResolveRegister(
			ast.ExplicitRegister(
				architecture.NewRegister("$t0", architecture.MipsReg)))
		expectUnimplemented(err)

		_, err = p.TranslateModifier(architecture.MipsReg, ast.NoModifier)
		expectUnimplemented(err)
	})

	It("should report the missing entry in the error", func() {
		_, err := newPlatform("s390x").ResolveRegister(
			ast.ClassRegister(architecture.S390xReg))
		Expect(err.Error()).To(ContainSubstring("is unimplemented on s390x"))
	})
})
