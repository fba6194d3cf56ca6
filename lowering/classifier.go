package lowering

import (
	"fmt"
	"strconv"

	"github.com/pattyshack/asmbridge/architecture"
	"github.com/pattyshack/asmbridge/ast"
	"github.com/pattyshack/asmbridge/extasm"
	"github.com/pattyshack/asmbridge/platform"
)

const (
	// Register variables are bound with the generic register constraint.
	pinnedConstraint = "r"

	// Symbol addresses are bound with the "any operand" constraint.
	symbolConstraint = "X"

	outputHint = "output_register"
	inputHint  = "input_register"
)

// Everything that can fail is resolved before anything is appended to the
// instruction stream, so a failed lowering leaves the stream untouched.
type operandPlan struct {
	resolution platform.Resolution

	// The storage type of the operand's temporary, if any.
	storageType architecture.StorageType

	// The linker visible name for sym operands.
	symbolName string
}

type plannedAsm struct {
	operands []operandPlan

	// Translated modifiers, indexed by template piece position.
	modifiers []ast.Modifier

	// nil unless the block uses the architecture's alternate syntax.
	dialect *platform.Dialect
}

func (lowerer *Lowerer) plan(asm *ast.InlineAsm) (*plannedAsm, error) {
	planned := &plannedAsm{
		operands:  make([]operandPlan, len(asm.Operands)),
		modifiers: make([]ast.Modifier, len(asm.Template)),
	}

	if asm.Options.Contains(ast.AttSyntax) {
		planned.dialect = lowerer.platform.AlternateDialect()
	}

	for idx, operand := range asm.Operands {
		plan, err := lowerer.planOperand(operand)
		if err != nil {
			return nil, lowerer.fail(operand.Loc(), err)
		}
		planned.operands[idx] = plan
	}

	for idx, piece := range asm.Template {
		placeholder, ok := piece.(*ast.Placeholder)
		if !ok {
			continue
		}

		spec, ok := ast.OperandRegister(asm.Operands[placeholder.OperandIndex])
		if !ok {
			continue
		}

		modifier, err := lowerer.platform.TranslateModifier(
			spec.RegisterClass(),
			placeholder.Modifier)
		if err != nil {
			return nil, lowerer.fail(placeholder.Loc(), err)
		}
		planned.modifiers[idx] = modifier
	}

	return planned, nil
}

func (lowerer *Lowerer) planOperand(operand ast.Operand) (operandPlan, error) {
	plan := operandPlan{}
	target := lowerer.platform

	var err error
	switch op := operand.(type) {
	case *ast.OutOperand:
		plan.resolution, err = target.ResolveRegister(op.Register)
		if err != nil {
			return plan, err
		}

		if op.Dest != nil {
			plan.storageType = target.StorageType(op.Dest.Type())
		} else if !plan.resolution.IsPinned() {
			// The output is unused, any type compatible with the register class
			// works.
			plan.storageType, err = target.DummyOutputType(op.Register.Class)
		}
	case *ast.InOperand:
		plan.resolution, err = target.ResolveRegister(op.Register)
		if err == nil && plan.resolution.IsPinned() {
			plan.storageType = target.StorageType(op.Value.Type())
		}
	case *ast.InOutOperand:
		plan.resolution, err = target.ResolveRegister(op.Register)
		// The input and output types are compatible; the output temporary
		// reuses the input's type.
		plan.storageType = target.StorageType(op.In.Type())
	case *ast.ConstOperand: // spliced into the template
	case *ast.SymFnOperand:
		plan.symbolName = lowerer.namer.SymbolName(op.Symbol)
	case *ast.SymStaticOperand:
		plan.symbolName = lowerer.namer.SymbolName(op.Symbol)
	default:
		panic(fmt.Sprintf("unhandled operand: %v", operand))
	}

	return plan, err
}

// classifier splits the source operands into outputs and inputs.
//
// gcc requires (1) output variables to be declared before the asm
// statement, and (2) no instruction whatsoever between the register
// variables and the statement.  Hence, the operands are processed in two
// passes: the first pass declares the regular temporaries, while the second
// pass declares the register variables.  Outputs always precede inputs in
// operand index space since inputs are only numbered after all outputs are
// known.
type classifier struct {
	platform platform.Platform
	builder  extasm.Builder

	operands []ast.Operand
	planned  *plannedAsm

	result *extasm.Asm

	// Total length of the text spliced into the template for const / sym
	// operands.
	constantsLength int
}

func (c *classifier) addOutput(
	sourceIndex int,
	code string,
	late bool,
	readWrite bool,
	temporary *extasm.Local,
	dest *ast.VariableReference,
) {
	c.result.Outputs = append(
		c.result.Outputs,
		&extasm.OutputOperand{
			SourceIndex: sourceIndex,
			Code:        code,
			Late:        late,
			ReadWrite:   readWrite,
			Temporary:   temporary,
			Destination: dest,
		})
}

func (c *classifier) addInput(
	sourceIndex int,
	constraint string,
	value extasm.Expression,
) {
	c.result.Inputs = append(
		c.result.Inputs,
		&extasm.InputOperand{
			SourceIndex: sourceIndex,
			Constraint:  constraint,
			Value:       value,
		})
}

// addTiedInput ties the input to the most recently added output.
func (c *classifier) addTiedInput(sourceIndex int, value ast.Value) {
	c.addInput(
		sourceIndex,
		strconv.Itoa(len(c.result.Outputs)-1),
		extasm.Value{Value: value})
}

// Register class operands.  Explicit register operands are deferred to the
// second pass, except for discarded outputs which become clobbers.
func (c *classifier) classifyClassOperands() {
	for idx, operand := range c.operands {
		plan := c.planned.operands[idx]
		resolution := plan.resolution

		switch op := operand.(type) {
		case *ast.OutOperand:
			if resolution.IsPinned() {
				if op.Dest == nil {
					c.addClobber(op.Register.Register, resolution.Register)
				}
				continue
			}

			temp := c.builder.NewLocal(outputHint, plan.storageType)
			c.addOutput(idx, resolution.Constraint, op.Late, false, temp, op.Dest)

		case *ast.InOperand:
			if resolution.IsPinned() {
				continue
			}

			c.addInput(idx, resolution.Constraint, extasm.Value{Value: op.Value})

		case *ast.InOutOperand:
			if resolution.IsPinned() {
				continue
			}

			// A discarded inout becomes a single read-write output.  Otherwise,
			// the operand is split into an output and an input tied to it.
			readWrite := op.Dest == nil

			temp := c.builder.NewLocal(outputHint, plan.storageType)
			c.addOutput(idx, resolution.Constraint, op.Late, readWrite, temp, op.Dest)

			if readWrite {
				// The block reads the temporary's initial value.
				c.builder.Assign(temp, op.In)
			} else {
				c.addTiedInput(idx, op.In)
			}

		case *ast.ConstOperand:
			c.constantsLength += len(op.Text)
			if c.planned.dialect != nil {
				c.constantsLength += len(c.planned.dialect.ImmediatePrefix)
			}

		case *ast.SymFnOperand, *ast.SymStaticOperand:
			c.constantsLength += len(plan.symbolName)
		}
	}
}

// Discarded explicit register outputs that are unavailable under the enabled
// target features (e.g., avx512 registers) are dropped rather than clobbered.
func (c *classifier) addClobber(register *architecture.Register, name string) {
	if !c.platform.IsSupported(register) {
		c.result.Dropped = append(c.result.Dropped, name)
		return
	}

	c.result.Clobbers.Add(name)
}

// Explicit register operands and symbol operands.
func (c *classifier) classifyPinnedOperands() {
	for idx, operand := range c.operands {
		plan := c.planned.operands[idx]
		register := plan.resolution.Register

		switch op := operand.(type) {
		case *ast.OutOperand:
			if register == "" || op.Dest == nil {
				continue // handled by the first pass
			}

			temp := c.builder.NewRegisterLocal(
				outputHint,
				plan.storageType,
				register)
			c.addOutput(idx, pinnedConstraint, op.Late, false, temp, op.Dest)

		case *ast.InOperand:
			if register == "" {
				continue
			}

			temp := c.builder.NewRegisterLocal(inputHint, plan.storageType, register)
			c.builder.Assign(temp, op.Value)
			c.addInput(idx, pinnedConstraint, temp)

		case *ast.InOutOperand:
			if register == "" {
				continue
			}

			temp := c.builder.NewRegisterLocal(
				outputHint,
				plan.storageType,
				register)
			c.addOutput(idx, pinnedConstraint, op.Late, false, temp, op.Dest)
			c.addTiedInput(idx, op.In)

		case *ast.SymFnOperand:
			c.addInput(
				idx,
				symbolConstraint,
				c.builder.SymbolAddress(op.Symbol, plan.symbolName))

		case *ast.SymStaticOperand:
			c.addInput(
				idx,
				symbolConstraint,
				c.builder.SymbolAddress(op.Symbol, plan.symbolName))
		}
	}
}

// LowerInlineAssembly appends the extended asm statement for the block to
// the builder, followed by the copies from the output temporaries into the
// bound destinations.  The returned statement is the one appended.
//
// On error, the error is also reported to the emitter, and nothing is
// appended to the builder.
func (lowerer *Lowerer) LowerInlineAssembly(
	builder extasm.Builder,
	asm *ast.InlineAsm,
) (
	*extasm.Asm,
	error,
) {
	if asm.Options.Contains(ast.MayUnwind) {
		return nil, lowerer.fail(
			asm.Loc(),
			fmt.Errorf(
				"%w: unwinding from inline assembly is not supported",
				ErrUnsupportedFeature))
	}

	planned, err := lowerer.plan(asm)
	if err != nil {
		return nil, err
	}

	c := &classifier{
		platform: lowerer.platform,
		builder:  builder,
		operands: asm.Operands,
		planned:  planned,
		result:   &extasm.Asm{},
	}

	c.classifyClassOperands()
	c.classifyPinnedOperands()

	result := c.result
	result.Template = rewriteTemplate(
		asm,
		planned,
		result,
		c.constantsLength)

	options := asm.Options
	if !options.Contains(ast.PreservesFlags) {
		result.Clobbers.Add("cc")
	}
	if !options.Contains(ast.NoMem) {
		result.Clobbers.Add("memory")
	}

	// nostack has no gcc encoding.
	result.Volatile = !options.Contains(ast.Pure)
	result.NoReturn = options.Contains(ast.NoReturn)

	builder.AddExtendedAsm(result)

	if result.NoReturn {
		builder.Unreachable()
	}

	for _, output := range result.Outputs {
		if output.Destination != nil {
			builder.Store(output.Destination, output.Temporary)
		}
	}

	return result, nil
}
