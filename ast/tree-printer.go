package ast

import (
	"bytes"
	"fmt"
	"io"
)

const (
	indent = "  "
)

func TreeString(node Node, indent string) string {
	buffer := &bytes.Buffer{}
	_ = PrintTree(buffer, node, indent)
	return buffer.String()
}

func PrintTree(output io.Writer, node Node, indent string) error {
	printer := &treePrinter{
		indent:     indent,
		labelStack: []string{},
		writer:     output,
	}
	node.Walk(printer)
	return printer.err
}

type treePrinter struct {
	indent     string
	labelStack []string
	writer     io.Writer
	err        error
}

func (printer *treePrinter) write(format string, args ...interface{}) {
	if printer.err != nil {
		return
	}

	if len(args) == 0 {
		_, printer.err = printer.writer.Write([]byte(format))
	} else {
		_, printer.err = fmt.Fprintf(printer.writer, format, args...)
	}
}

func (printer *treePrinter) writeLabel() {
	label := ""
	if len(printer.labelStack) > 0 {
		label = printer.labelStack[len(printer.labelStack)-1]
		printer.labelStack = printer.labelStack[:len(printer.labelStack)-1]
	}

	if len(label) > 0 {
		printer.write("\n")
		printer.write("%s", printer.indent)
		printer.write("%s", label)
	} else {
		printer.write("%s", printer.indent)
	}
}

func (printer *treePrinter) endNode() {
	printer.indent = printer.indent[:len(printer.indent)-len(indent)]
	printer.write("\n")
	printer.write("%s", printer.indent)
	printer.write("]")
}

func (printer *treePrinter) push(labels ...string) {
	printer.indent += indent

	for len(labels) > 0 {
		last := labels[len(labels)-1]
		labels = labels[:len(labels)-1]

		printer.labelStack = append(printer.labelStack, last)
	}
}

func (printer *treePrinter) Enter(n Node) {
	printer.writeLabel()

	switch node := n.(type) {
	case *FunctionDefinition:
		labels := []string{}
		for idx := range node.Parameters {
			labels = append(labels, fmt.Sprintf("Parameter%d=", idx))
		}
		for idx := range node.Locals {
			labels = append(labels, fmt.Sprintf("Local%d=", idx))
		}
		for idx := range node.Blocks {
			labels = append(labels, fmt.Sprintf("Block%d=", idx))
		}

		printer.write("[FunctionDefinition: Name=%s Loc=%s", node.Name, node.Loc())
		printer.push(labels...)
	case *VariableDefinition:
		printer.write("[VariableDefinition: Name=%s Loc=%s", node.Name, node.Loc())
		printer.push("Type=")
	case *VariableReference:
		printer.write("[VariableReference: Name=%s]", node.Name)
	case *IntImmediate:
		printer.write("[IntImmediate: Value=%s Type=%s]", node, node.Type())
	case *SymbolReference:
		printer.write("[SymbolReference: Kind=%s Name=%s]", node.Kind, node.Name)

	case *InlineAsm:
		printer.write("[InlineAsm: Options=(%s) Loc=%s", node.Options, node.Loc())
		printer.push(asmLabels(node.Template, node.Operands)...)
	case *GlobalAsm:
		printer.write("[GlobalAsm: Options=(%s) Loc=%s", node.Options, node.Loc())
		printer.push(asmLabels(node.Template, node.Operands)...)
	case *LiteralText:
		printer.write("[LiteralText: Text=%q]", node.Text)
	case *Placeholder:
		printer.write(
			"[Placeholder: OperandIndex=%d Modifier=%s]",
			node.OperandIndex,
			node.Modifier)

	case *OutOperand:
		printer.write("[OutOperand: Register=%s Late=%v", node.Register, node.Late)
		if node.Dest != nil {
			printer.push("Dest=")
		} else {
			printer.push()
		}
	case *InOperand:
		printer.write("[InOperand: Register=%s", node.Register)
		printer.push("Value=")
	case *InOutOperand:
		printer.write("[InOutOperand: Register=%s Late=%v", node.Register, node.Late)
		if node.Dest != nil {
			printer.push("In=", "Dest=")
		} else {
			printer.push("In=")
		}
	case *ConstOperand:
		printer.write("[ConstOperand: Text=%s]", node.Text)
	case *SymFnOperand:
		printer.write("[SymFnOperand:")
		printer.push("Symbol=")
	case *SymStaticOperand:
		printer.write("[SymStaticOperand:")
		printer.push("Symbol=")

	case IntType:
		printer.write("[IntType: Kind=%s]", node.Kind)
	case FloatType:
		printer.write("[FloatType: Kind=%s]", node.Kind)
	case PointerType:
		printer.write("[PointerType]")
	case VectorType:
		printer.write("[VectorType: ByteSize=%d]", node.ByteSize)

	default:
		printer.write("unhandled node: %v", n)
	}
}

func asmLabels(template []TemplatePiece, operands []Operand) []string {
	labels := []string{}
	for idx := range template {
		labels = append(labels, fmt.Sprintf("Piece%d=", idx))
	}
	for idx := range operands {
		labels = append(labels, fmt.Sprintf("Operand%d=", idx))
	}
	return labels
}

func (printer *treePrinter) Exit(n Node) {
	switch n.(type) {
	case *FunctionDefinition,
		*VariableDefinition,
		*InlineAsm,
		*GlobalAsm,
		*OutOperand,
		*InOperand,
		*InOutOperand,
		*SymFnOperand,
		*SymStaticOperand:

		printer.endNode()
	}
}
