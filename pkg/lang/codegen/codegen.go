// Copyright the gdlk-lang contributors.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package codegen translates a compiled program into a standalone Go source
// file. The generated function executes the program natively against a given
// input slice, with the same runtime failure conditions as the machine.
package codegen

import (
	"fmt"

	"github.com/dave/jennifer/jen"

	"github.com/gdlk-lang/gdlk/pkg/lang/machine"
	"github.com/gdlk-lang/gdlk/pkg/spec"
)

// Config controls the shape of the generated file.
type Config struct {
	// Package name of the generated file.
	Package string
	// Name of the generated function.
	Func string
}

// DefaultConfig generates "func Run" in "package main".
func DefaultConfig() Config {
	return Config{Package: "main", Func: "Run"}
}

// Generate translates a compiled program into a Go source file containing a
// single function with signature func(input []int32) ([]int32, error).
func Generate(program *machine.Program, config Config) *jen.File {
	file := jen.NewFile(config.Package)
	file.HeaderComment("Code generated by gdlk gen. DO NOT EDIT.")
	//
	g := &generator{program.Hardware()}
	//
	var body []jen.Code
	// Declare only the state the program actually touches, since unused
	// locals would not compile.
	if usesRegisters(program) {
		body = append(body, jen.Id("rx").Op(":=").Make(jen.Index().Int32(), jen.Lit(g.hardware.NumRegisters)))
	}
	//
	if usesStacks(program) {
		body = append(body, jen.Id("stacks").Op(":=").Make(jen.Index().Index().Int32(), jen.Lit(g.hardware.NumStacks)))
	}
	//
	body = append(body, jen.Var().Id("output").Index().Int32())
	//
	for pc := 0; pc < program.Size(); pc++ {
		insn := program.Instruction(pc)
		body = append(body, jen.Comment(insn.String()))
		body = append(body, g.instruction(insn)...)
	}
	//
	body = append(body, jen.Return(jen.Id("output"), jen.Nil()))
	//
	file.Comment(fmt.Sprintf("%s executes the translated program against a given input,", config.Func))
	file.Comment("returning the output it produces.")
	file.Func().Id(config.Func).
		Params(jen.Id("input").Index().Int32()).
		Params(jen.Index().Int32(), jen.Error()).
		Block(body...)
	//
	return file
}

type generator struct {
	hardware spec.HardwareSpec
}

func (g *generator) capacity() int {
	return g.hardware.MaxStackLength
}

func (g *generator) instruction(insn machine.Instruction) []jen.Code {
	switch insn := insn.(type) {
	case machine.Read:
		return g.read(insn)
	case machine.Write:
		return []jen.Code{appendOutput(g.value(insn.Src))}
	case machine.Set:
		return []jen.Code{g.register(insn.Dest).Op("=").Add(g.value(insn.Src))}
	case machine.Add:
		return []jen.Code{g.register(insn.Dest).Op("+=").Add(g.value(insn.Src))}
	case machine.Sub:
		return []jen.Code{g.register(insn.Dest).Op("-=").Add(g.value(insn.Src))}
	case machine.Mul:
		return []jen.Code{g.register(insn.Dest).Op("*=").Add(g.value(insn.Src))}
	case machine.Push:
		return g.push(insn)
	case machine.Pop:
		return g.pop(insn)
	default:
		panic(fmt.Sprintf("unknown instruction %s", insn))
	}
}

func (g *generator) read(insn machine.Read) []jen.Code {
	return []jen.Code{
		jen.If(jen.Len(jen.Id("input")).Op("==").Lit(0)).Block(
			returnError(machine.InputExhaustedError{}.Error()),
		),
		g.register(insn.Dest).Op("=").Id("input").Index(jen.Lit(0)),
		jen.Id("input").Op("=").Id("input").Index(jen.Lit(1), jen.Empty()),
	}
}

func (g *generator) push(insn machine.Push) []jen.Code {
	var (
		capacity = g.capacity()
		stack    = stackSlot(insn.Stack)
		overflow = machine.StackOverflowError{Stack: insn.Stack, Capacity: capacity}
	)
	//
	return []jen.Code{
		jen.If(jen.Len(stack).Op(">=").Lit(capacity)).Block(
			returnError(overflow.Error()),
		),
		stackSlot(insn.Stack).Op("=").Append(stackSlot(insn.Stack), g.value(insn.Src)),
	}
}

func (g *generator) pop(insn machine.Pop) []jen.Code {
	var (
		stack     = stackSlot(insn.Stack)
		underflow = machine.StackUnderflowError{Stack: insn.Stack}
	)
	//
	return []jen.Code{
		jen.If(jen.Len(stack).Op("==").Lit(0)).Block(
			returnError(underflow.Error()),
		),
		g.register(insn.Dest).Op("=").Add(stackSlot(insn.Stack)).
			Index(jen.Len(stackSlot(insn.Stack)).Op("-").Lit(1)),
		stackSlot(insn.Stack).Op("=").Add(stackSlot(insn.Stack)).
			Index(jen.Empty(), jen.Len(stackSlot(insn.Stack)).Op("-").Lit(1)),
	}
}

// value renders a source operand as a Go expression.
func (g *generator) value(value machine.Value) *jen.Statement {
	switch value := value.(type) {
	case machine.Literal:
		return jen.Lit(int(value))
	case machine.RegisterRef:
		return g.register(value)
	default:
		panic(fmt.Sprintf("unknown value %s", value))
	}
}

// register renders a register reference as a Go expression. Read-only
// registers are derived from the live slices, exactly as in the machine.
func (g *generator) register(ref machine.RegisterRef) *jen.Statement {
	switch ref.Kind() {
	case machine.USER_REGISTER:
		return jen.Id("rx").Index(jen.Lit(ref.Index()))
	case machine.STACK_LENGTH_REGISTER:
		return jen.Int32().Call(jen.Len(jen.Id("stacks").Index(jen.Lit(ref.Index()))))
	case machine.INPUT_LENGTH_REGISTER:
		return jen.Int32().Call(jen.Len(jen.Id("input")))
	default:
		panic(fmt.Sprintf("unknown register %s", ref))
	}
}

func stackSlot(ref machine.StackRef) *jen.Statement {
	return jen.Id("stacks").Index(jen.Lit(ref.Index()))
}

func appendOutput(value jen.Code) jen.Code {
	return jen.Id("output").Op("=").Append(jen.Id("output"), value)
}

func returnError(message string) jen.Code {
	return jen.Return(jen.Nil(), jen.Qual("errors", "New").Call(jen.Lit(message)))
}

// usesRegisters reports whether any instruction touches a user register.
// READ, SET, ADD, SUB, MUL and POP always do, since their destination must be
// writable.
func usesRegisters(program *machine.Program) bool {
	for pc := 0; pc < program.Size(); pc++ {
		switch insn := program.Instruction(pc).(type) {
		case machine.Read, machine.Set, machine.Add, machine.Sub, machine.Mul, machine.Pop:
			return true
		case machine.Write:
			if isUserRegister(insn.Src) {
				return true
			}
		case machine.Push:
			if isUserRegister(insn.Src) {
				return true
			}
		}
	}
	//
	return false
}

// usesStacks reports whether any instruction touches a stack, including reads
// of a stack-length register.
func usesStacks(program *machine.Program) bool {
	for pc := 0; pc < program.Size(); pc++ {
		switch insn := program.Instruction(pc).(type) {
		case machine.Push, machine.Pop:
			return true
		case machine.Write:
			if isStackLengthRegister(insn.Src) {
				return true
			}
		case machine.Set:
			if isStackLengthRegister(insn.Src) {
				return true
			}
		case machine.Add:
			if isStackLengthRegister(insn.Src) {
				return true
			}
		case machine.Sub:
			if isStackLengthRegister(insn.Src) {
				return true
			}
		case machine.Mul:
			if isStackLengthRegister(insn.Src) {
				return true
			}
		}
	}
	//
	return false
}

func isUserRegister(value machine.Value) bool {
	ref, ok := value.(machine.RegisterRef)
	return ok && ref.Kind() == machine.USER_REGISTER
}

func isStackLengthRegister(value machine.Value) bool {
	ref, ok := value.(machine.RegisterRef)
	return ok && ref.Kind() == machine.STACK_LENGTH_REGISTER
}
