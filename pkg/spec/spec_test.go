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
package spec

import (
	"testing"

	"github.com/gdlk-lang/gdlk/pkg/util/assert"
)

func TestValidateHardwareSpec(t *testing.T) {
	hw, err := Validate(HardwareSpec{NumRegisters: 2, NumStacks: 1, MaxStackLength: 16})
	//
	assert.NoError(t, err)
	assert.Equal(t, 2, hw.Inner().NumRegisters)
	assert.Equal(t, 1, hw.Inner().NumStacks)
	assert.Equal(t, 16, hw.Inner().MaxStackLength)
}

func TestValidateDefaultHardwareSpec(t *testing.T) {
	_, err := Validate(DefaultHardwareSpec())
	assert.NoError(t, err)
}

func TestValidateHardwareSpecNoRegisters(t *testing.T) {
	_, err := Validate(HardwareSpec{NumRegisters: 0})
	//
	errs := err.(ValidationErrors)
	assert.Equal(t, 1, len(errs))
	assert.Equal(t, "num_registers", errs[0].Field)
}

func TestValidateHardwareSpecAllFieldsReported(t *testing.T) {
	// All violations must be reported together, not one at a time.
	_, err := Validate(HardwareSpec{
		NumRegisters:   MaxRegisters + 1,
		NumStacks:      -1,
		MaxStackLength: MaxStackCapacity + 1,
	})
	//
	errs := err.(ValidationErrors)
	assert.Equal(t, 3, len(errs))
	assert.Equal(t, "num_registers", errs[0].Field)
	assert.Equal(t, "num_stacks", errs[1].Field)
	assert.Equal(t, "max_stack_length", errs[2].Field)
}

func TestValidateProgramSpec(t *testing.T) {
	ps, err := Validate(ProgramSpec{Input: []int32{1, 2}, ExpectedOutput: []int32{2, 1}})
	//
	assert.NoError(t, err)
	assert.Equal(t, []int32{1, 2}, ps.Inner().Input)
	assert.Equal(t, []int32{2, 1}, ps.Inner().ExpectedOutput)
}

func TestValidateProgramSpecTooLong(t *testing.T) {
	long := make([]int32, MaxSequenceLength+1)
	//
	_, err := Validate(ProgramSpec{Input: long, ExpectedOutput: long})
	//
	errs := err.(ValidationErrors)
	assert.Equal(t, 2, len(errs))
	assert.Equal(t, "input", errs[0].Field)
	assert.Equal(t, "expected_output", errs[1].Field)
}

func TestValidateIdempotent(t *testing.T) {
	hw, err := Validate(HardwareSpec{NumRegisters: 1, NumStacks: 1, MaxStackLength: 5})
	assert.NoError(t, err)
	// Re-validating an already-validated value succeeds with an identical
	// result.
	again, err := Validate(hw.Inner())
	assert.NoError(t, err)
	assert.Equal(t, hw, again)
}
