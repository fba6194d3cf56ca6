package asmfile

import (
	"gopkg.in/yaml.v3"
)

// The line / column of a yaml node.
type position struct {
	line   int
	column int
}

func nodePosition(node *yaml.Node) position {
	return position{
		line:   node.Line,
		column: node.Column,
	}
}

type fileSpec struct {
	Target    string            `yaml:"target"`
	Features  []string          `yaml:"features"`
	Symbols   map[string]string `yaml:"symbols"`
	GlobalAsm []*globalAsmSpec  `yaml:"global_asm"`
	Functions []*functionSpec   `yaml:"functions"`

	pos position
}

func (spec *fileSpec) UnmarshalYAML(node *yaml.Node) error {
	type plain fileSpec
	err := node.Decode((*plain)(spec))
	if err != nil {
		return err
	}
	spec.pos = nodePosition(node)
	return nil
}

type globalAsmSpec struct {
	Template string         `yaml:"template"`
	Operands []*operandSpec `yaml:"operands"`
	Options  []string       `yaml:"options"`

	pos position
}

func (spec *globalAsmSpec) UnmarshalYAML(node *yaml.Node) error {
	type plain globalAsmSpec
	err := node.Decode((*plain)(spec))
	if err != nil {
		return err
	}
	spec.pos = nodePosition(node)
	return nil
}

type functionSpec struct {
	Name       string          `yaml:"name"`
	Parameters []*variableSpec `yaml:"parameters"`
	Locals     []*variableSpec `yaml:"locals"`
	Asm        []*asmSpec      `yaml:"asm"`

	pos position
}

func (spec *functionSpec) UnmarshalYAML(node *yaml.Node) error {
	type plain functionSpec
	err := node.Decode((*plain)(spec))
	if err != nil {
		return err
	}
	spec.pos = nodePosition(node)
	return nil
}

type variableSpec struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`

	pos position
}

func (spec *variableSpec) UnmarshalYAML(node *yaml.Node) error {
	type plain variableSpec
	err := node.Decode((*plain)(spec))
	if err != nil {
		return err
	}
	spec.pos = nodePosition(node)
	return nil
}

type asmSpec struct {
	Template string         `yaml:"template"`
	Operands []*operandSpec `yaml:"operands"`
	Options  []string       `yaml:"options"`

	pos position
}

func (spec *asmSpec) UnmarshalYAML(node *yaml.Node) error {
	type plain asmSpec
	err := node.Decode((*plain)(spec))
	if err != nil {
		return err
	}
	spec.pos = nodePosition(node)
	return nil
}

// Operand kinds: in, out, inout, const, sym_fn, sym_static.
type operandSpec struct {
	Kind string `yaml:"kind"`

	// Exactly one of Class / Register for in / out / inout.
	Class    string `yaml:"class"`
	Register string `yaml:"register"`

	Late bool `yaml:"late"`

	// in / inout input value: a variable name or an integer immediate.
	Value string `yaml:"value"`

	// The immediate value's type.  Defaults to i32.
	Type string `yaml:"type"`

	// out / inout destination.  Empty or "_" discards the output.
	Dest string `yaml:"dest"`

	// const text.
	Text string `yaml:"text"`

	// sym_fn / sym_static symbol name.
	Symbol string `yaml:"symbol"`

	pos position
}

func (spec *operandSpec) UnmarshalYAML(node *yaml.Node) error {
	type plain operandSpec
	err := node.Decode((*plain)(spec))
	if err != nil {
		return err
	}
	spec.pos = nodePosition(node)
	return nil
}
