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

// Package lang implements the compiler for the language: parsing source text
// and binding every register/stack operand against a concrete hardware
// configuration. Semantic binding visits every instruction and accumulates
// all diagnostics into one ordered list rather than failing fast, so a user
// can fix many mistakes from a single compile attempt.
package lang

import (
	"strconv"
	"strings"

	"github.com/gdlk-lang/gdlk/pkg/lang/ast"
	"github.com/gdlk-lang/gdlk/pkg/lang/machine"
	"github.com/gdlk-lang/gdlk/pkg/lang/parser"
	"github.com/gdlk-lang/gdlk/pkg/spec"
	"github.com/gdlk-lang/gdlk/pkg/util/source"
)

// Compile parses the given source file and binds it against the given
// (validated) hardware, producing either a program ready for allocation or
// the ordered list of everything wrong with the source. Compilation is
// deterministic: the same hardware and source always yield the same result.
func Compile(hardware spec.Valid[spec.HardwareSpec], srcfile *source.File) (*machine.Program, ErrorList) {
	instructions, serr := parser.Parse(srcfile)
	//
	if serr != nil {
		return nil, ErrorList{ParseError{serr.Span(), serr.Line(), serr.Message()}}
	}
	//
	binder := &binder{hardware: hardware.Inner()}
	code := make([]machine.Instruction, 0, len(instructions))
	// Bind every instruction, collecting errors as they arise. Binding never
	// short-circuits: all instructions are visited regardless of earlier
	// failures.
	for _, insn := range instructions {
		if bound := binder.bind(insn); bound != nil {
			code = append(code, bound)
		}
	}
	//
	if len(binder.errors) > 0 {
		return nil, binder.errors
	}
	//
	return machine.NewProgram(hardware.Inner(), code), nil
}

// binder resolves raw operand names against one hardware configuration,
// threading an explicit error accumulator through a single pass.
type binder struct {
	hardware spec.HardwareSpec
	errors   ErrorList
}

// bind resolves all operands of one instruction, in source order. It returns
// the bound instruction, or nil if any operand failed to resolve (in which
// case the failures have been recorded).
func (b *binder) bind(insn ast.Instruction) machine.Instruction {
	switch n := insn.(type) {
	case ast.Read:
		if dest, ok := b.bindWritable(n.Dest); ok {
			return machine.Read{Dest: dest}
		}
	case ast.Write:
		if src, ok := b.bindValue(n.Src); ok {
			return machine.Write{Src: src}
		}
	case ast.Set:
		if dest, src, ok := b.bindWritableValuePair(n.Dest, n.Src); ok {
			return machine.Set{Dest: dest, Src: src}
		}
	case ast.Add:
		if dest, src, ok := b.bindWritableValuePair(n.Dest, n.Src); ok {
			return machine.Add{Dest: dest, Src: src}
		}
	case ast.Sub:
		if dest, src, ok := b.bindWritableValuePair(n.Dest, n.Src); ok {
			return machine.Sub{Dest: dest, Src: src}
		}
	case ast.Mul:
		if dest, src, ok := b.bindWritableValuePair(n.Dest, n.Src); ok {
			return machine.Mul{Dest: dest, Src: src}
		}
	case ast.Push:
		src, srcOk := b.bindValue(n.Src)
		stack, stackOk := b.bindStack(n.Stack)
		//
		if srcOk && stackOk {
			return machine.Push{Src: src, Stack: stack}
		}
	case ast.Pop:
		stack, stackOk := b.bindStack(n.Stack)
		dest, destOk := b.bindWritable(n.Dest)
		//
		if stackOk && destOk {
			return machine.Pop{Stack: stack, Dest: dest}
		}
	}
	//
	return nil
}

// bindWritableValuePair resolves the "dest src" operand shape shared by SET,
// ADD, SUB and MUL. Both operands are always resolved so that both can
// report.
func (b *binder) bindWritableValuePair(dest ast.Name, src ast.Value) (machine.RegisterRef, machine.Value, bool) {
	ref, destOk := b.bindWritable(dest)
	value, srcOk := b.bindValue(src)
	//
	return ref, value, destOk && srcOk
}

// bindRegister resolves a register name against the hardware. A user
// register RX<i> resolves iff i < NumRegisters; a stack length register
// RS<i> resolves iff i < NumStacks; RLI always resolves.
func (b *binder) bindRegister(name ast.Name) (machine.RegisterRef, bool) {
	text := name.Text
	//
	switch {
	case text == "RLI":
		return machine.NewInputLengthRegister(), true
	case strings.HasPrefix(text, "RX"):
		if index, ok := parseIndex(text[2:]); ok && index < b.hardware.NumRegisters {
			return machine.NewUserRegister(index), true
		}
	case strings.HasPrefix(text, "RS"):
		if index, ok := parseIndex(text[2:]); ok && index < b.hardware.NumStacks {
			return machine.NewStackLengthRegister(index), true
		}
	}
	//
	b.errors = append(b.errors, InvalidRegisterError{text})
	//
	return machine.RegisterRef{}, false
}

// bindWritable resolves a register name which is being written to. Writes
// through read-only registers are rejected here, and only here: mutability
// travels with the resolved reference, so no other component re-checks it.
func (b *binder) bindWritable(name ast.Name) (machine.RegisterRef, bool) {
	ref, ok := b.bindRegister(name)
	//
	if ok && ref.ReadOnly() {
		b.errors = append(b.errors, ReadOnlyWriteError{name.Text})
		//
		return machine.RegisterRef{}, false
	}
	//
	return ref, ok
}

// bindValue resolves a source operand: literals pass through, register names
// resolve in read position (read-only registers are fine here).
func (b *binder) bindValue(value ast.Value) (machine.Value, bool) {
	if !value.IsRegister() {
		return machine.Literal(value.LiteralValue()), true
	}
	//
	ref, ok := b.bindRegister(value.RegisterName())
	//
	return ref, ok
}

// bindStack resolves a stack name S<i>, which is valid iff i < NumStacks.
func (b *binder) bindStack(name ast.Name) (machine.StackRef, bool) {
	if index, ok := parseIndex(name.Text[1:]); ok && index < b.hardware.NumStacks {
		return machine.NewStackRef(index), true
	}
	//
	b.errors = append(b.errors, InvalidStackError{name.Text})
	//
	return machine.StackRef{}, false
}

// parseIndex parses the numeric suffix of a register/stack name. The parser
// guarantees the suffix is all digits, but it may still be too large to
// represent; such names simply never resolve.
func parseIndex(text string) (int, bool) {
	index, err := strconv.Atoi(text)
	//
	return index, err == nil
}
