package lowering

import (
	"sync"

	gomock "github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/pattyshack/gt/parseutil"

	"github.com/pattyshack/asmbridge/architecture"
	"github.com/pattyshack/asmbridge/ast"
	"github.com/pattyshack/asmbridge/extasm"
)

type recordingModule struct {
	ctrl *gomock.Controller

	topLevel  []string
	functions map[string]*builderLog
}

func (module *recordingModule) AddTopLevelAsm(text string) {
	module.topLevel = append(module.topLevel, text)
}

func (module *recordingModule) NewFunction(
	def *ast.FunctionDefinition,
) extasm.Builder {
	log := &builderLog{}
	module.functions[def.Name] = log
	return newRecordingBuilder(module.ctrl, log)
}

var _ = Describe("LowerModule", func() {
	var (
		mockCtrl *gomock.Controller
		module   *recordingModule
	)

	i64 := intType(ast.I64)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		module = &recordingModule{
			ctrl:      mockCtrl,
			functions: map[string]*builderLog{},
		}
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	incrementBlock := func() *ast.InlineAsm {
		return &ast.InlineAsm{
			Template: []ast.TemplatePiece{
				text("addi "),
				placeholder(0, ast.NoModifier),
				text(", "),
				placeholder(0, ast.NoModifier),
				text(", 1"),
			},
			Operands: []ast.Operand{
				&ast.InOutOperand{
					Register: classOf(architecture.RiscVReg),
					In:       variable("a", i64),
					Dest:     variable("a", i64),
				},
			},
		}
	}

	It("should lower entries and merge results in source order", func() {
		emitter := &parseutil.Emitter{}

		entries := []ast.SourceEntry{
			&ast.GlobalAsm{Template: []ast.TemplatePiece{text("first:")}},
			&ast.FunctionDefinition{
				Name: "f",
				Blocks: []*ast.InlineAsm{
					incrementBlock(),
					{
						Template: []ast.TemplatePiece{text("vsetvli")},
						Operands: []ast.Operand{
							&ast.OutOperand{Register: classOf(architecture.RiscVVreg)},
						},
					},
					incrementBlock(),
				},
			},
			&ast.GlobalAsm{Template: []ast.TemplatePiece{text("second:")}},
			&ast.FunctionDefinition{
				Name: "g",
				Blocks: []*ast.InlineAsm{
					{
						Template: []ast.TemplatePiece{
							placeholder(3, ast.NoModifier),
						},
					},
				},
			},
		}

		LowerModule(
			newTarget("riscv64"),
			newMangler(mockCtrl),
			module,
			entries,
			emitter)

		Expect(module.topLevel).To(Equal([]string{
			".pushsection .text\nfirst:\n.popsection",
			".pushsection .text\nsecond:\n.popsection",
		}))

		// The vreg block fails, the remaining blocks are still lowered.
		Expect(module.functions["f"].asms).To(HaveLen(2))

		// g has a syntax error and is never lowered.
		Expect(module.functions["g"].lines).To(BeEmpty())

		Expect(emitter.Errors()).To(HaveLen(2))
	})

	It("should lower many functions concurrently", func() {
		emitter := &parseutil.Emitter{}

		names := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
		entries := []ast.SourceEntry{}
		for _, name := range names {
			entries = append(
				entries,
				&ast.FunctionDefinition{
					Name:   name,
					Blocks: []*ast.InlineAsm{incrementBlock()},
				})
		}

		LowerModule(
			newTarget("riscv64"),
			newMangler(mockCtrl),
			module,
			entries,
			emitter)

		Expect(emitter.HasErrors()).To(BeFalse())
		for _, name := range names {
			Expect(module.functions[name].asms).To(HaveLen(1))
			Expect(module.functions[name].asms[0].Template).To(
				Equal("addi %0, %0, 1"))
		}
	})
})

var _ = Describe("parallelProcess", func() {
	It("should process every item", func() {
		mutex := sync.Mutex{}
		seen := map[int]string{}

		parallelProcess(
			[]string{"x", "y", "z"},
			func(idx int, item string) {
				mutex.Lock()
				defer mutex.Unlock()
				seen[idx] = item
			})

		Expect(seen).To(Equal(map[int]string{0: "x", 1: "y", 2: "z"}))
	})
})
