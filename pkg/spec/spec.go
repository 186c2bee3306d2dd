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

// Package spec defines the two descriptor records a program is compiled and
// executed against: the hardware available to it, and the puzzle instance it
// must solve. Both must pass validation before any downstream component will
// accept them, which is enforced through the Valid wrapper type.
package spec

// MinRegisters is the smallest number of user registers a machine may have.
// A machine without any writable register cannot execute any program.
const MinRegisters = 1

// MaxRegisters is the largest number of user registers a machine may have.
const MaxRegisters = 16

// MaxStacks is the largest number of stacks a machine may have.
const MaxStacks = 16

// MaxStackCapacity is the largest permitted capacity of a single stack.
const MaxStackCapacity = 256

// MaxSequenceLength bounds the input and expected output sequences of a
// program spec.
const MaxSequenceLength = 256

// HardwareSpec describes the capacity of the (virtual) machine a program is
// compiled for: how many user registers exist, how many stacks exist, and how
// many values each stack can hold.
type HardwareSpec struct {
	// Number of user registers (RX0, RX1, ...).
	NumRegisters int `json:"num_registers" hcl:"registers"`
	// Number of stacks (S0, S1, ...). Each stack also contributes one
	// read-only length register (RS0, RS1, ...).
	NumStacks int `json:"num_stacks" hcl:"stacks,optional"`
	// Capacity of each stack.
	MaxStackLength int `json:"max_stack_length" hcl:"max_stack_length,optional"`
}

// DefaultHardwareSpec returns the hardware used when no spec is supplied: a
// single register and no stacks.
func DefaultHardwareSpec() HardwareSpec {
	return HardwareSpec{NumRegisters: 1, NumStacks: 0, MaxStackLength: 0}
}

func (s HardwareSpec) validate() ValidationErrors {
	var errs ValidationErrors
	//
	if s.NumRegisters < MinRegisters || s.NumRegisters > MaxRegisters {
		errs = errs.report("num_registers", "must be between %d and %d", MinRegisters, MaxRegisters)
	}
	//
	if s.NumStacks < 0 || s.NumStacks > MaxStacks {
		errs = errs.report("num_stacks", "must be between 0 and %d", MaxStacks)
	}
	//
	if s.MaxStackLength < 0 || s.MaxStackLength > MaxStackCapacity {
		errs = errs.report("max_stack_length", "must be between 0 and %d", MaxStackCapacity)
	}
	//
	return errs
}

// ProgramSpec describes a single puzzle instance: the values fed to the
// program via READ, and the values a successful run must WRITE (in order).
type ProgramSpec struct {
	// Input sequence, consumed front to back.
	Input []int32 `json:"input"`
	// Expected output sequence a successful run must produce exactly.
	ExpectedOutput []int32 `json:"expected_output"`
}

// DefaultProgramSpec returns the program spec used when none is supplied: no
// input, no expected output.
func DefaultProgramSpec() ProgramSpec {
	return ProgramSpec{}
}

func (s ProgramSpec) validate() ValidationErrors {
	var errs ValidationErrors
	//
	if len(s.Input) > MaxSequenceLength {
		errs = errs.report("input", "at most %d values", MaxSequenceLength)
	}
	//
	if len(s.ExpectedOutput) > MaxSequenceLength {
		errs = errs.report("expected_output", "at most %d values", MaxSequenceLength)
	}
	//
	return errs
}
