package main

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/pattyshack/asmbridge/ast"
	"github.com/pattyshack/asmbridge/extasm"
)

func operandTable(title string, asm *extasm.Asm) string {
	writer := table.NewWriter()
	writer.SetTitle(title)
	writer.AppendHeader(table.Row{"Index", "Kind", "Constraint", "Operand", "Binding"})

	for idx, output := range asm.Outputs {
		binding := "_"
		if output.Destination != nil {
			binding = output.Destination.Name
		}

		temporary := output.Temporary.Name
		if output.Temporary.IsPinned() {
			temporary += " @ " + output.Temporary.Register
		}

		writer.AppendRow(table.Row{
			idx,
			"out",
			output.Constraint(),
			output.SourceIndex,
			temporary + " -> " + binding,
		})
	}

	for idx, input := range asm.Inputs {
		writer.AppendRow(table.Row{
			asm.InputIndex(idx),
			"in",
			input.Constraint,
			input.SourceIndex,
			expressionLabel(input.Value),
		})
	}

	writer.AppendFooter(table.Row{
		"",
		"clobbers",
		strings.Join(asm.Clobbers.Names(), ", "),
		"",
		"",
	})

	return writer.Render()
}

func expressionLabel(expr extasm.Expression) string {
	switch e := expr.(type) {
	case *extasm.Local:
		if e.IsPinned() {
			return e.Name + " @ " + e.Register
		}
		return e.Name
	case extasm.Value:
		switch value := e.Value.(type) {
		case *ast.VariableReference:
			return value.Name
		case *ast.IntImmediate:
			return value.String()
		}
		return fmt.Sprintf("%v", e.Value)
	case *extasm.AddressOf:
		return "&" + e.Name
	default:
		return fmt.Sprintf("%v", expr)
	}
}
