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
	"math"
	"testing"

	"github.com/gdlk-lang/gdlk/pkg/spec"
	"github.com/gdlk-lang/gdlk/pkg/util/assert"
)

func newMachine(t *testing.T, hardware spec.HardwareSpec, program spec.ProgramSpec, code ...Instruction) *Machine {
	t.Helper()
	//
	ps, err := spec.Validate(program)
	assert.NoError(t, err)
	//
	return Allocate(NewProgram(hardware, code), ps)
}

func TestAllocateInitialState(t *testing.T) {
	m := newMachine(t,
		spec.HardwareSpec{NumRegisters: 2, NumStacks: 1, MaxStackLength: 4},
		spec.ProgramSpec{Input: []int32{7, 8}},
		Read{Dest: NewUserRegister(0)},
	)
	//
	assert.Equal(t, READY, m.Status())
	assert.Equal(t, 0, m.CycleCount())
	assert.Equal(t, 0, m.ProgramCounter())
	assert.Equal(t, []int32{7, 8}, m.Input())
	assert.Equal(t, 0, len(m.Output()))
	// Registers start zeroed, RLI reflects pending input.
	registers := m.Registers()
	assert.Equal(t, int32(0), registers["RX0"])
	assert.Equal(t, int32(0), registers["RX1"])
	assert.Equal(t, int32(0), registers["RS0"])
	assert.Equal(t, int32(2), registers["RLI"])
}

func TestReadConsumesInput(t *testing.T) {
	m := newMachine(t,
		spec.HardwareSpec{NumRegisters: 1},
		spec.ProgramSpec{Input: []int32{5, 6}, ExpectedOutput: []int32{5}},
		Read{Dest: NewUserRegister(0)},
		Write{Src: NewUserRegister(0)},
	)
	//
	assert.NoError(t, m.ExecuteNext())
	assert.Equal(t, RUNNING, m.Status())
	assert.Equal(t, int32(5), m.Registers()["RX0"])
	assert.Equal(t, int32(1), m.Registers()["RLI"])
	assert.Equal(t, []int32{6}, m.Input())
}

func TestArithmeticWrapsAround(t *testing.T) {
	m := newMachine(t,
		spec.HardwareSpec{NumRegisters: 1},
		spec.ProgramSpec{ExpectedOutput: []int32{math.MinInt32}},
		Set{Dest: NewUserRegister(0), Src: Literal(math.MaxInt32)},
		Add{Dest: NewUserRegister(0), Src: Literal(1)},
		Write{Src: NewUserRegister(0)},
	)
	//
	success, err := m.ExecuteAll()
	assert.NoError(t, err)
	assert.True(t, success)
	assert.Equal(t, []int32{math.MinInt32}, m.Output())
}

func TestMulWrapsAround(t *testing.T) {
	m := newMachine(t,
		spec.HardwareSpec{NumRegisters: 1},
		spec.ProgramSpec{},
		Set{Dest: NewUserRegister(0), Src: Literal(math.MinInt32)},
		Mul{Dest: NewUserRegister(0), Src: Literal(-1)},
	)
	//
	_, err := m.ExecuteAll()
	assert.NoError(t, err)
	// MIN_INT32 has no positive counterpart, so negation wraps to itself.
	assert.Equal(t, int32(math.MinInt32), m.Registers()["RX0"])
}

func TestPushPopLifo(t *testing.T) {
	m := newMachine(t,
		spec.HardwareSpec{NumRegisters: 1, NumStacks: 1, MaxStackLength: 4},
		spec.ProgramSpec{},
		Push{Src: Literal(1), Stack: NewStackRef(0)},
		Push{Src: Literal(2), Stack: NewStackRef(0)},
		Pop{Stack: NewStackRef(0), Dest: NewUserRegister(0)},
	)
	//
	assert.NoError(t, m.ExecuteNext())
	assert.NoError(t, m.ExecuteNext())
	assert.Equal(t, []int32{1, 2}, m.Stacks()[0])
	assert.Equal(t, int32(2), m.Registers()["RS0"])
	assert.NoError(t, m.ExecuteNext())
	assert.Equal(t, int32(2), m.Registers()["RX0"])
	assert.Equal(t, []int32{1}, m.Stacks()[0])
}

func TestPushOverflow(t *testing.T) {
	m := newMachine(t,
		spec.HardwareSpec{NumRegisters: 1, NumStacks: 1, MaxStackLength: 1},
		spec.ProgramSpec{},
		Push{Src: Literal(1), Stack: NewStackRef(0)},
		Push{Src: Literal(2), Stack: NewStackRef(0)},
	)
	//
	assert.NoError(t, m.ExecuteNext())
	err := m.ExecuteNext()
	assert.Error(t, err)
	assert.Equal(t, "cannot push onto full stack S0 (capacity 1)", err.Error())
	assert.Equal(t, HALTED_ERROR, m.Status())
	// Stack contents are preserved up to the failing instruction.
	assert.Equal(t, []int32{1}, m.Stacks()[0])
}

func TestPopUnderflow(t *testing.T) {
	m := newMachine(t,
		spec.HardwareSpec{NumRegisters: 1, NumStacks: 1, MaxStackLength: 4},
		spec.ProgramSpec{},
		Pop{Stack: NewStackRef(0), Dest: NewUserRegister(0)},
	)
	//
	err := m.ExecuteNext()
	assert.Error(t, err)
	assert.Equal(t, "cannot pop from empty stack S0", err.Error())
	assert.Equal(t, HALTED_ERROR, m.Status())
}

func TestCycleCount(t *testing.T) {
	m := newMachine(t,
		spec.HardwareSpec{NumRegisters: 1},
		spec.ProgramSpec{ExpectedOutput: []int32{0, 0, 0}},
		Write{Src: NewUserRegister(0)},
		Write{Src: NewUserRegister(0)},
		Write{Src: NewUserRegister(0)},
	)
	//
	assert.NoError(t, m.ExecuteNext())
	assert.Equal(t, 1, m.CycleCount())
	assert.NoError(t, m.ExecuteNext())
	assert.Equal(t, 2, m.CycleCount())
	assert.NoError(t, m.ExecuteNext())
	assert.Equal(t, 3, m.CycleCount())
	assert.Equal(t, HALTED_SUCCESS, m.Status())
}

func TestStepAfterHaltFails(t *testing.T) {
	m := newMachine(t,
		spec.HardwareSpec{NumRegisters: 1},
		spec.ProgramSpec{ExpectedOutput: []int32{9}},
		Set{Dest: NewUserRegister(0), Src: Literal(1)},
	)
	//
	assert.NoError(t, m.ExecuteNext())
	assert.True(t, m.Status().IsTerminal())
	//
	err := m.ExecuteNext()
	assert.Error(t, err)
	assert.Equal(t, "machine has already terminated (halted_failure)", err.Error())
	// The terminal status is sticky.
	assert.Equal(t, HALTED_FAILURE, m.Status())
	assert.Equal(t, 1, m.CycleCount())
}

func TestFailureSticksAfterRuntimeError(t *testing.T) {
	m := newMachine(t,
		spec.HardwareSpec{NumRegisters: 1},
		spec.ProgramSpec{},
		Read{Dest: NewUserRegister(0)},
	)
	//
	err := m.ExecuteNext()
	assert.Error(t, err)
	assert.Equal(t, HALTED_ERROR, m.Status())
	assert.Error(t, m.Failure())
	//
	err = m.ExecuteNext()
	assert.Error(t, err)
	assert.Equal(t, "machine has already terminated (halted_error)", err.Error())
	assert.Equal(t, HALTED_ERROR, m.Status())
}

func TestEmptyProgramHaltsImmediately(t *testing.T) {
	m := newMachine(t, spec.HardwareSpec{NumRegisters: 1}, spec.ProgramSpec{})
	//
	assert.True(t, m.Status().IsTerminal())
	assert.Equal(t, HALTED_SUCCESS, m.Status())
}

func TestLeftoverInputDoesNotAffectSuccess(t *testing.T) {
	m := newMachine(t,
		spec.HardwareSpec{NumRegisters: 1},
		spec.ProgramSpec{Input: []int32{1, 2}, ExpectedOutput: []int32{1}},
		Read{Dest: NewUserRegister(0)},
		Write{Src: NewUserRegister(0)},
	)
	// Success is judged on output alone; unconsumed input is permitted.
	success, err := m.ExecuteAll()
	assert.NoError(t, err)
	assert.True(t, success)
	assert.Equal(t, []int32{2}, m.Input())
}
