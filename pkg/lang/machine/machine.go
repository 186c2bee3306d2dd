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

// Package machine provides the execution engine: a Machine owns the mutable
// register/stack/input/output state of one program run and advances it one
// instruction (one cycle) at a time. Execution is entirely synchronous; a
// Machine must not be shared between callers without external serialization.
package machine

import (
	"slices"

	"github.com/gdlk-lang/gdlk/pkg/spec"
)

// Machine is the mutable execution state of a single program run. It is
// created by Allocate, mutated exclusively through ExecuteNext/ExecuteAll,
// and discarded once terminal.
type Machine struct {
	program *Program
	// Expected output, for judging success on completion.
	expected []int32
	// User registers (read-only registers are derived, not stored).
	registers []int32
	// Stacks, each bounded by maxStackLength.
	stacks [][]int32
	// Capacity of each stack.
	maxStackLength int
	// Remaining input, consumed front to back by READ.
	input []int32
	// Accumulated output, appended by WRITE.
	output []int32
	// Program counter.
	pc int
	// Number of instructions successfully executed so far.
	cycles int
	// Lifecycle status.
	status Status
	// The runtime error which halted the machine, if any.
	failure RuntimeError
}

// Allocate initializes a machine for one run of a given program against a
// given (validated) program spec: registers zeroed, stacks empty, input
// loaded, program counter at the first instruction.
func Allocate(program *Program, ps spec.Valid[spec.ProgramSpec]) *Machine {
	var (
		hardware = program.Hardware()
		inner    = ps.Inner()
	)
	//
	m := &Machine{
		program:        program,
		expected:       slices.Clone(inner.ExpectedOutput),
		registers:      make([]int32, hardware.NumRegisters),
		stacks:         make([][]int32, hardware.NumStacks),
		maxStackLength: hardware.MaxStackLength,
		input:          slices.Clone(inner.Input),
		output:         nil,
		status:         READY,
	}
	//
	for i := range m.stacks {
		m.stacks[i] = []int32{}
	}
	// A program cannot be empty (the compiler rejects empty source), but an
	// empty one would already be past its last instruction.
	if program.Size() == 0 {
		m.halt()
	}
	//
	return m
}

// ExecuteNext executes exactly one instruction at the current program
// counter, advancing the counter and cycle count. Stepping a machine which
// has already reached a terminal state fails with TerminatedError rather than
// silently doing nothing.
func (m *Machine) ExecuteNext() error {
	if m.status.IsTerminal() {
		return TerminatedError{m.status}
	}
	//
	m.status = RUNNING
	//
	if err := m.program.Instruction(m.pc).Execute(m); err != nil {
		m.status = HALTED_ERROR
		m.failure = err
		//
		return err
	}
	//
	m.pc++
	m.cycles++
	// Falling off the end of the program terminates the run.
	if m.pc >= m.program.Size() {
		m.halt()
	}
	//
	return nil
}

// ExecuteAll repeatedly executes instructions until the machine reaches a
// terminal state, reporting whether that state is HALTED_SUCCESS. The first
// runtime error encountered is returned. Since the instruction set has no
// control flow, every program terminates after at most Size() cycles.
func (m *Machine) ExecuteAll() (bool, error) {
	for !m.status.IsTerminal() {
		if err := m.ExecuteNext(); err != nil {
			return false, err
		}
	}
	//
	return m.IsSuccessful(), nil
}

// halt transitions to HALTED_SUCCESS or HALTED_FAILURE by comparing the
// accumulated output against the expected output.
func (m *Machine) halt() {
	if slices.Equal(m.output, m.expected) {
		m.status = HALTED_SUCCESS
	} else {
		m.status = HALTED_FAILURE
	}
}

// Status returns the current lifecycle status of this machine.
func (m *Machine) Status() Status {
	return m.status
}

// IsComplete reports whether this machine has reached a terminal state.
func (m *Machine) IsComplete() bool {
	return m.status.IsTerminal()
}

// IsSuccessful reports whether this machine halted with output equal to the
// expected output.
func (m *Machine) IsSuccessful() bool {
	return m.status == HALTED_SUCCESS
}

// Failure returns the runtime error which halted this machine, or nil.
func (m *Machine) Failure() RuntimeError {
	return m.failure
}

// CycleCount returns the number of instructions executed so far.
func (m *Machine) CycleCount() int {
	return m.cycles
}

// ProgramCounter returns the index of the next instruction to execute.
func (m *Machine) ProgramCounter() int {
	return m.pc
}

// Registers returns the current value of every addressable register, keyed by
// source name. This includes the read-only registers (RS<i>, RLI).
func (m *Machine) Registers() map[string]int32 {
	registers := make(map[string]int32, len(m.registers)+len(m.stacks)+1)
	//
	for i, v := range m.registers {
		registers[NewUserRegister(i).String()] = v
	}
	//
	for i := range m.stacks {
		registers[NewStackLengthRegister(i).String()] = int32(len(m.stacks[i]))
	}
	//
	registers[NewInputLengthRegister().String()] = int32(len(m.input))
	//
	return registers
}

// Stacks returns a copy of the current contents of every stack, bottom first.
func (m *Machine) Stacks() [][]int32 {
	stacks := make([][]int32, len(m.stacks))
	//
	for i, s := range m.stacks {
		stacks[i] = slices.Clone(s)
	}
	//
	return stacks
}

// Input returns a copy of the input values not yet consumed.
func (m *Machine) Input() []int32 {
	return slices.Clone(m.input)
}

// Output returns a copy of the output accumulated so far.
func (m *Machine) Output() []int32 {
	return slices.Clone(m.output)
}

// State takes a read-only snapshot of this machine for external observation
// or serialization. Mutating the snapshot has no effect on the machine.
func (m *Machine) State() MachineState {
	state := MachineState{
		ProgramCounter: m.pc,
		CycleCount:     m.cycles,
		Registers:      m.Registers(),
		Stacks:         m.Stacks(),
		Input:          m.Input(),
		Output:         m.Output(),
		Status:         m.status.String(),
	}
	//
	if m.failure != nil {
		state.Error = m.failure.Error()
	}
	//
	return state
}
