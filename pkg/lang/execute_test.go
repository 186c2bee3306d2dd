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
package lang

import (
	"testing"

	"github.com/gdlk-lang/gdlk/pkg/lang/machine"
	"github.com/gdlk-lang/gdlk/pkg/spec"
	"github.com/gdlk-lang/gdlk/pkg/util/assert"
	"github.com/gdlk-lang/gdlk/pkg/util/source"
)

func allocate(t *testing.T, hardware spec.HardwareSpec, program spec.ProgramSpec, src string) *machine.Machine {
	t.Helper()
	//
	hw, err := spec.Validate(hardware)
	assert.NoError(t, err)
	//
	ps, err := spec.Validate(program)
	assert.NoError(t, err)
	//
	compiled, errs := Compile(hw, source.NewFile("test.gdlk", []byte(src)))
	if errs != nil {
		t.Fatalf("unexpected compile errors: %s", errs.Error())
	}
	//
	return machine.Allocate(compiled, ps)
}

func TestExecuteEcho(t *testing.T) {
	m := allocate(t,
		spec.HardwareSpec{NumRegisters: 1},
		spec.ProgramSpec{Input: []int32{1, 2, 3}, ExpectedOutput: []int32{1, 2, 3}},
		"READ RX0\nWRITE RX0\nREAD RX0\nWRITE RX0\nREAD RX0\nWRITE RX0",
	)
	//
	success, err := m.ExecuteAll()
	assert.NoError(t, err)
	assert.True(t, success)
	assert.Equal(t, machine.HALTED_SUCCESS, m.Status())
	assert.Equal(t, []int32{1, 2, 3}, m.Output())
	assert.Equal(t, 6, m.CycleCount())
}

func TestExecuteWrongOutputFails(t *testing.T) {
	m := allocate(t,
		spec.HardwareSpec{NumRegisters: 1},
		spec.ProgramSpec{Input: []int32{1}, ExpectedOutput: []int32{2}},
		"READ RX0\nWRITE RX0",
	)
	//
	success, err := m.ExecuteAll()
	assert.NoError(t, err)
	assert.False(t, success)
	assert.Equal(t, machine.HALTED_FAILURE, m.Status())
}

func TestExecuteReverseWithStack(t *testing.T) {
	m := allocate(t,
		spec.HardwareSpec{NumRegisters: 1, NumStacks: 1, MaxStackLength: 8},
		spec.ProgramSpec{Input: []int32{1, 2, 3}, ExpectedOutput: []int32{3, 2, 1}},
		`
READ RX0
PUSH RX0 S0
READ RX0
PUSH RX0 S0
READ RX0
PUSH RX0 S0
POP S0 RX0
WRITE RX0
POP S0 RX0
WRITE RX0
POP S0 RX0
WRITE RX0
`,
	)
	//
	success, err := m.ExecuteAll()
	assert.NoError(t, err)
	assert.True(t, success)
}

func TestExecuteArithmetic(t *testing.T) {
	m := allocate(t,
		spec.HardwareSpec{NumRegisters: 2},
		spec.ProgramSpec{ExpectedOutput: []int32{14}},
		`
SET RX0 5
ADD RX0 3
SUB RX0 1
MUL RX0 2
WRITE RX0
`,
	)
	//
	success, err := m.ExecuteAll()
	assert.NoError(t, err)
	assert.True(t, success)
	assert.Equal(t, []int32{14}, m.Output())
}

func TestExecuteInputExhausted(t *testing.T) {
	m := allocate(t,
		spec.HardwareSpec{NumRegisters: 1},
		spec.ProgramSpec{},
		"READ RX0",
	)
	//
	_, err := m.ExecuteAll()
	assert.Error(t, err)
	assert.Equal(t, machine.HALTED_ERROR, m.Status())
	assert.Equal(t, "cannot read from empty input", err.Error())
}
