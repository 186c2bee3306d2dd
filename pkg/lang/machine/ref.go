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

// RegisterKind distinguishes the three kinds of register slot. Mutability is
// a property of the kind, decided once at binding time, rather than being
// re-derived from name prefixes at each use site.
type RegisterKind uint8

const (
	// USER_REGISTER is a read-write register (RX0, RX1, ...).
	USER_REGISTER RegisterKind = iota
	// STACK_LENGTH_REGISTER is a read-only register holding the current
	// length of its stack (RS0, RS1, ...).
	STACK_LENGTH_REGISTER
	// INPUT_LENGTH_REGISTER is the read-only register RLI, holding the
	// number of values remaining in the input queue.
	INPUT_LENGTH_REGISTER
)

// RegisterRef identifies a concrete register slot of a specific hardware
// configuration. Refs are produced only by the compiler's binding step, so
// a ref held by a program is always in range for the hardware the program
// was bound against.
type RegisterRef struct {
	kind RegisterKind
	// Register index for USER_REGISTER, stack index for
	// STACK_LENGTH_REGISTER, unused for INPUT_LENGTH_REGISTER.
	index int
}

// NewUserRegister constructs a reference to a read-write user register.
func NewUserRegister(index int) RegisterRef {
	return RegisterRef{USER_REGISTER, index}
}

// NewStackLengthRegister constructs a reference to the read-only length
// register of a given stack.
func NewStackLengthRegister(stack int) RegisterRef {
	return RegisterRef{STACK_LENGTH_REGISTER, stack}
}

// NewInputLengthRegister constructs a reference to RLI.
func NewInputLengthRegister() RegisterRef {
	return RegisterRef{INPUT_LENGTH_REGISTER, 0}
}

// Kind returns the kind of slot this reference identifies.
func (p RegisterRef) Kind() RegisterKind {
	return p.kind
}

// Index returns the slot index within its kind.
func (p RegisterRef) Index() int {
	return p.index
}

// ReadOnly reports whether writing through this reference is forbidden.
func (p RegisterRef) ReadOnly() bool {
	return p.kind != USER_REGISTER
}

// String returns the source name of the referenced register.
func (p RegisterRef) String() string {
	switch p.kind {
	case USER_REGISTER:
		return fmt.Sprintf("RX%d", p.index)
	case STACK_LENGTH_REGISTER:
		return fmt.Sprintf("RS%d", p.index)
	default:
		return "RLI"
	}
}

// Value implements the Value interface, reading the current contents of the
// referenced register.
func (p RegisterRef) Value(m *Machine) int32 {
	switch p.kind {
	case USER_REGISTER:
		return m.registers[p.index]
	case STACK_LENGTH_REGISTER:
		return int32(len(m.stacks[p.index]))
	default:
		return int32(len(m.input))
	}
}

// StackRef identifies a concrete stack of a specific hardware configuration.
// As with RegisterRef, these are produced only by the compiler.
type StackRef struct {
	index int
}

// NewStackRef constructs a reference to a given stack.
func NewStackRef(index int) StackRef {
	return StackRef{index}
}

// Index returns the index of the referenced stack.
func (p StackRef) Index() int {
	return p.index
}

// String returns the source name of the referenced stack.
func (p StackRef) String() string {
	return fmt.Sprintf("S%d", p.index)
}

// Value is a bound source operand: something which yields an int32 against
// the current machine state. Literals and register references implement it.
type Value interface {
	// Value reads this operand against the current machine state.
	Value(m *Machine) int32
	// String returns the operand as it would appear in source.
	String() string
}

// Literal is a constant operand.
type Literal int32

// Value implementation for the Value interface.
func (p Literal) Value(m *Machine) int32 {
	return int32(p)
}

// String returns the literal in decimal.
func (p Literal) String() string {
	return fmt.Sprintf("%d", int32(p))
}
