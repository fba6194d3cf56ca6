package extasm

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("OutputOperand", func() {
	DescribeTable("Constraint",
		func(late bool, readWrite bool, expected string) {
			op := &OutputOperand{Code: "r", Late: late, ReadWrite: readWrite}
			Expect(op.Constraint()).To(Equal(expected))
		},
		Entry("early clobber write only", false, false, "=&r"),
		Entry("late write only", true, false, "=r"),
		Entry("early clobber read write", false, true, "+&r"),
		Entry("late read write", true, true, "+r"),
	)
})

var _ = Describe("InputOperand", func() {
	It("should report the tied output", func() {
		idx, ok := (&InputOperand{Constraint: "12"}).TiedOutputIndex()
		Expect(ok).To(BeTrue())
		Expect(idx).To(Equal(12))

		_, ok = (&InputOperand{Constraint: "r"}).TiedOutputIndex()
		Expect(ok).To(BeFalse())

		_, ok = (&InputOperand{Constraint: "X"}).TiedOutputIndex()
		Expect(ok).To(BeFalse())
	})
})

var _ = Describe("ClobberSet", func() {
	It("should keep insertion order without duplicates", func() {
		set := ClobberSet{}
		Expect(set.Add("ax")).To(BeTrue())
		Expect(set.Add("cc")).To(BeTrue())
		Expect(set.Add("ax")).To(BeFalse())
		Expect(set.Add("memory")).To(BeTrue())

		Expect(set.Len()).To(Equal(3))
		Expect(set.Names()).To(Equal([]string{"ax", "cc", "memory"}))
		Expect(set.Contains("cc")).To(BeTrue())
		Expect(set.Contains("st")).To(BeFalse())
	})
})

var _ = Describe("Asm", func() {
	asm := &Asm{
		Outputs: []*OutputOperand{
			{SourceIndex: 2},
			{SourceIndex: 0},
		},
		Inputs: []*InputOperand{
			{SourceIndex: 1},
			{SourceIndex: 0, Constraint: "1"},
		},
	}

	It("should number inputs after outputs", func() {
		Expect(asm.InputIndex(0)).To(Equal(2))
		Expect(asm.InputIndex(1)).To(Equal(3))
	})

	It("should find operands by source index", func() {
		Expect(asm.OutputPosition(0)).To(Equal(1))
		Expect(asm.OutputPosition(2)).To(Equal(0))
		Expect(asm.OutputPosition(1)).To(Equal(-1))

		Expect(asm.InputPosition(0)).To(Equal(1))
		Expect(asm.InputPosition(1)).To(Equal(0))
		Expect(asm.InputPosition(2)).To(Equal(-1))
	})

	It("should distinguish pinned locals", func() {
		Expect((&Local{Name: "a"}).IsPinned()).To(BeFalse())
		Expect((&Local{Name: "a", Register: "ax"}).IsPinned()).To(BeTrue())
	})
})
