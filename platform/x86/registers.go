package x86

import (
	"fmt"

	"github.com/pattyshack/asmbridge/architecture"
)

var (
	ax = architecture.NewRegister("ax", architecture.X86Reg, "rax", "eax")
	bx = architecture.NewRegister("bx", architecture.X86Reg, "rbx", "ebx")
	cx = architecture.NewRegister("cx", architecture.X86Reg, "rcx", "ecx")
	dx = architecture.NewRegister("dx", architecture.X86Reg, "rdx", "edx")
	si = architecture.NewRegister("si", architecture.X86Reg, "rsi", "esi")
	di = architecture.NewRegister("di", architecture.X86Reg, "rdi", "edi")

	al = architecture.NewRegister("al", architecture.X86RegByte)
	bl = architecture.NewRegister("bl", architecture.X86RegByte)
	cl = architecture.NewRegister("cl", architecture.X86RegByte)
	dl = architecture.NewRegister("dl", architecture.X86RegByte)
	ah = architecture.NewRegister("ah", architecture.X86RegByte)
	bh = architecture.NewRegister("bh", architecture.X86RegByte)
	ch = architecture.NewRegister("ch", architecture.X86RegByte)
	dh = architecture.NewRegister("dh", architecture.X86RegByte)

	sil = architecture.NewRegister("sil", architecture.X86RegByte)
	dil = architecture.NewRegister("dil", architecture.X86RegByte)

	// The x87 stack top is also accessible as "st".
	st0 = architecture.NewRegister("st(0)", architecture.X86X87, "st")

	// x86 exposes 8 vector registers, x86_64 exposes 16 (32 with avx512f).
	x86Registers = architecture.NewRegisterSet(
		append(
			[]*architecture.Register{
				ax, bx, cx, dx, si, di,
				al, bl, cl, dl, ah, bh, ch, dh,
			},
			commonRegisters(8)...)...)

	x86_64Registers = architecture.NewRegisterSet(
		append(
			append(
				[]*architecture.Register{
					ax, bx, cx, dx, si, di,
					al, bl, cl, dl, ah, bh, ch, dh, sil, dil,
				},
				numberedRegisters()...),
			commonRegisters(32)...)...)
)

// r8-r15 and their byte sized counterparts, plus the amx tile registers.
func numberedRegisters() []*architecture.Register {
	registers := []*architecture.Register{}
	for i := 8; i < 16; i++ {
		registers = append(
			registers,
			architecture.NewRegister(
				fmt.Sprintf("r%d", i),
				architecture.X86Reg,
				fmt.Sprintf("r%dw", i),
				fmt.Sprintf("r%dd", i)),
			architecture.NewRegister(
				fmt.Sprintf("r%db", i),
				architecture.X86RegByte))
	}

	for i := 0; i < 8; i++ {
		registers = append(
			registers,
			architecture.NewRegister(
				fmt.Sprintf("tmm%d", i),
				architecture.X86Tmm))
	}

	return registers
}

func commonRegisters(numVectorRegisters int) []*architecture.Register {
	registers := []*architecture.Register{}
	for i := 0; i < numVectorRegisters; i++ {
		registers = append(
			registers,
			architecture.NewRegister(
				fmt.Sprintf("xmm%d", i),
				architecture.X86Xmm),
			architecture.NewRegister(
				fmt.Sprintf("ymm%d", i),
				architecture.X86Ymm),
			architecture.NewRegister(
				fmt.Sprintf("zmm%d", i),
				architecture.X86Zmm))
	}

	registers = append(
		registers,
		architecture.NewRegister("k0", architecture.X86Kreg0))
	for i := 1; i < 8; i++ {
		registers = append(
			registers,
			architecture.NewRegister(fmt.Sprintf("k%d", i), architecture.X86Kreg))
	}

	registers = append(registers, st0)
	for i := 1; i < 8; i++ {
		registers = append(
			registers,
			architecture.NewRegister(
				fmt.Sprintf("st(%d)", i),
				architecture.X86X87))
	}

	for i := 0; i < 8; i++ {
		registers = append(
			registers,
			architecture.NewRegister(fmt.Sprintf("mm%d", i), architecture.X86Mmx))
	}

	return registers
}
