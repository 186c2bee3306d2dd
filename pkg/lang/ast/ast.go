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

// Package ast defines the instruction nodes produced by the parser. Register
// and stack operands are retained as raw names at this stage; they are
// resolved against a concrete hardware spec only during compilation.
package ast

import (
	"github.com/gdlk-lang/gdlk/pkg/util/source"
)

// Name is a register or stack operand exactly as written in source, together
// with the span it occupies.
type Name struct {
	// Raw operand text (e.g. "RX0", "RS1", "RLI", "S2").
	Text string
	// Location of the operand in the original source.
	Span source.Span
}

// String returns the operand as written.
func (p Name) String() string {
	return p.Text
}

// Value is a source operand: either an integer literal or an (unresolved)
// register name.
type Value struct {
	literal int32
	name    *Name
}

// Literal constructs a literal value operand.
func Literal(value int32) Value {
	return Value{literal: value}
}

// Register constructs a register value operand.
func Register(name Name) Value {
	return Value{name: &name}
}

// IsRegister reports whether this operand names a register (as opposed to
// holding a literal).
func (p Value) IsRegister() bool {
	return p.name != nil
}

// RegisterName returns the register name of this operand, which must not be a
// literal.
func (p Value) RegisterName() Name {
	return *p.name
}

// LiteralValue returns the literal held by this operand, which must not be a
// register.
func (p Value) LiteralValue() int32 {
	return p.literal
}

// Instruction is an instruction node as parsed, before operand binding. The
// concrete types below mirror the instruction set one-to-one.
type Instruction interface {
	// Opcode returns the source keyword for this instruction.
	Opcode() string
	// Span returns the location of the whole instruction in source.
	Span() source.Span
}

// Read pops the front of the input queue into a register.
type Read struct {
	Dest Name
	Loc  source.Span
}

// Write appends a value to the output queue.
type Write struct {
	Src Value
	Loc source.Span
}

// Set assigns a value to a register.
type Set struct {
	Dest Name
	Src  Value
	Loc  source.Span
}

// Add adds a value to a register in place.
type Add struct {
	Dest Name
	Src  Value
	Loc  source.Span
}

// Sub subtracts a value from a register in place.
type Sub struct {
	Dest Name
	Src  Value
	Loc  source.Span
}

// Mul multiplies a register by a value in place.
type Mul struct {
	Dest Name
	Src  Value
	Loc  source.Span
}

// Push appends a value to a stack.
type Push struct {
	Src   Value
	Stack Name
	Loc   source.Span
}

// Pop removes the top of a stack into a register.
type Pop struct {
	Stack Name
	Dest  Name
	Loc   source.Span
}

// Opcode implementation for Instruction interface.
func (p Read) Opcode() string { return "READ" }

// Opcode implementation for Instruction interface.
func (p Write) Opcode() string { return "WRITE" }

// Opcode implementation for Instruction interface.
func (p Set) Opcode() string { return "SET" }

// Opcode implementation for Instruction interface.
func (p Add) Opcode() string { return "ADD" }

// Opcode implementation for Instruction interface.
func (p Sub) Opcode() string { return "SUB" }

// Opcode implementation for Instruction interface.
func (p Mul) Opcode() string { return "MUL" }

// Opcode implementation for Instruction interface.
func (p Push) Opcode() string { return "PUSH" }

// Opcode implementation for Instruction interface.
func (p Pop) Opcode() string { return "POP" }

// Span implementation for Instruction interface.
func (p Read) Span() source.Span { return p.Loc }

// Span implementation for Instruction interface.
func (p Write) Span() source.Span { return p.Loc }

// Span implementation for Instruction interface.
func (p Set) Span() source.Span { return p.Loc }

// Span implementation for Instruction interface.
func (p Add) Span() source.Span { return p.Loc }

// Span implementation for Instruction interface.
func (p Sub) Span() source.Span { return p.Loc }

// Span implementation for Instruction interface.
func (p Mul) Span() source.Span { return p.Loc }

// Span implementation for Instruction interface.
func (p Push) Span() source.Span { return p.Loc }

// Span implementation for Instruction interface.
func (p Pop) Span() source.Span { return p.Loc }
