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
package machine

import (
	"fmt"
)

// Instruction is a fully bound instruction: every operand has been resolved
// to a concrete register/stack slot of the hardware the enclosing program was
// compiled against. Arithmetic is 32-bit two's complement and wraps on
// overflow.
type Instruction interface {
	// Execute this instruction against the given machine, returning a
	// RuntimeError if it fails. Successful execution must leave the machine
	// ready for the next instruction.
	Execute(m *Machine) RuntimeError
	// String renders this instruction as source text.
	String() string
}

// Read pops the front of the input queue into a register.
type Read struct {
	Dest RegisterRef
}

// Execute implementation for the Instruction interface.
func (p Read) Execute(m *Machine) RuntimeError {
	if len(m.input) == 0 {
		return InputExhaustedError{}
	}
	//
	value := m.input[0]
	m.input = m.input[1:]
	m.registers[p.Dest.Index()] = value
	//
	return nil
}

// String implementation for the Instruction interface.
func (p Read) String() string {
	return fmt.Sprintf("READ %s", p.Dest)
}

// Write appends a value to the output queue.
type Write struct {
	Src Value
}

// Execute implementation for the Instruction interface.
func (p Write) Execute(m *Machine) RuntimeError {
	m.output = append(m.output, p.Src.Value(m))
	//
	return nil
}

// String implementation for the Instruction interface.
func (p Write) String() string {
	return fmt.Sprintf("WRITE %s", p.Src)
}

// Set assigns a value to a register.
type Set struct {
	Dest RegisterRef
	Src  Value
}

// Execute implementation for the Instruction interface.
func (p Set) Execute(m *Machine) RuntimeError {
	m.registers[p.Dest.Index()] = p.Src.Value(m)
	//
	return nil
}

// String implementation for the Instruction interface.
func (p Set) String() string {
	return fmt.Sprintf("SET %s %s", p.Dest, p.Src)
}

// Add adds a value into a register, wrapping on overflow.
type Add struct {
	Dest RegisterRef
	Src  Value
}

// Execute implementation for the Instruction interface.
func (p Add) Execute(m *Machine) RuntimeError {
	m.registers[p.Dest.Index()] += p.Src.Value(m)
	//
	return nil
}

// String implementation for the Instruction interface.
func (p Add) String() string {
	return fmt.Sprintf("ADD %s %s", p.Dest, p.Src)
}

// Sub subtracts a value from a register, wrapping on overflow.
type Sub struct {
	Dest RegisterRef
	Src  Value
}

// Execute implementation for the Instruction interface.
func (p Sub) Execute(m *Machine) RuntimeError {
	m.registers[p.Dest.Index()] -= p.Src.Value(m)
	//
	return nil
}

// String implementation for the Instruction interface.
func (p Sub) String() string {
	return fmt.Sprintf("SUB %s %s", p.Dest, p.Src)
}

// Mul multiplies a register by a value, wrapping on overflow.
type Mul struct {
	Dest RegisterRef
	Src  Value
}

// Execute implementation for the Instruction interface.
func (p Mul) Execute(m *Machine) RuntimeError {
	m.registers[p.Dest.Index()] *= p.Src.Value(m)
	//
	return nil
}

// String implementation for the Instruction interface.
func (p Mul) String() string {
	return fmt.Sprintf("MUL %s %s", p.Dest, p.Src)
}

// Push appends a value to a stack.
type Push struct {
	Src   Value
	Stack StackRef
}

// Execute implementation for the Instruction interface.
func (p Push) Execute(m *Machine) RuntimeError {
	stack := m.stacks[p.Stack.Index()]
	//
	if len(stack) >= m.maxStackLength {
		return StackOverflowError{p.Stack, m.maxStackLength}
	}
	//
	m.stacks[p.Stack.Index()] = append(stack, p.Src.Value(m))
	//
	return nil
}

// String implementation for the Instruction interface.
func (p Push) String() string {
	return fmt.Sprintf("PUSH %s %s", p.Src, p.Stack)
}

// Pop removes the top of a stack into a register.
type Pop struct {
	Stack StackRef
	Dest  RegisterRef
}

// Execute implementation for the Instruction interface.
func (p Pop) Execute(m *Machine) RuntimeError {
	stack := m.stacks[p.Stack.Index()]
	//
	if len(stack) == 0 {
		return StackUnderflowError{p.Stack}
	}
	//
	top := stack[len(stack)-1]
	m.stacks[p.Stack.Index()] = stack[:len(stack)-1]
	m.registers[p.Dest.Index()] = top
	//
	return nil
}

// String implementation for the Instruction interface.
func (p Pop) String() string {
	return fmt.Sprintf("POP %s %s", p.Stack, p.Dest)
}
