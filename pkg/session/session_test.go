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
package session

import (
	"testing"

	"github.com/gdlk-lang/gdlk/pkg/lang/machine"
	"github.com/gdlk-lang/gdlk/pkg/spec"
	"github.com/gdlk-lang/gdlk/pkg/util/assert"
)

func newSession(t *testing.T) *Session {
	t.Helper()
	//
	hw, err := spec.Validate(spec.HardwareSpec{NumRegisters: 1})
	assert.NoError(t, err)
	//
	ps, err := spec.Validate(spec.ProgramSpec{Input: []int32{1}, ExpectedOutput: []int32{1}})
	assert.NoError(t, err)
	//
	return New("echo", hw, ps)
}

func TestSessionInitialState(t *testing.T) {
	s := newSession(t)
	assert.Equal(t, NO_PROGRAM, s.State())
	assert.Equal(t, "echo", s.Name())
	assert.True(t, s.Machine() == nil)
}

func TestSessionStepBeforeCompile(t *testing.T) {
	s := newSession(t)
	//
	_, err := s.Step()
	assert.Equal(t, ErrNoCompilation, err)
	//
	s.Edit("READ RX0\nWRITE RX0")
	assert.Equal(t, SOURCE_ONLY, s.State())
	//
	_, err = s.Step()
	assert.Equal(t, ErrNoCompilation, err)
}

func TestSessionCompileAndStep(t *testing.T) {
	s := newSession(t)
	s.Edit("READ RX0\nWRITE RX0")
	//
	errs := s.Compile()
	assert.True(t, errs == nil)
	assert.Equal(t, COMPILED, s.State())
	//
	state, err := s.Step()
	assert.NoError(t, err)
	assert.Equal(t, EXECUTING, s.State())
	assert.Equal(t, 1, state.CycleCount)
	//
	state, err = s.Step()
	assert.NoError(t, err)
	assert.Equal(t, "halted_success", state.Status)
	assert.True(t, s.Machine().IsSuccessful())
}

func TestSessionCompileErrorStaysSourceOnly(t *testing.T) {
	s := newSession(t)
	s.Edit("READ RX5")
	//
	errs := s.Compile()
	assert.Equal(t, "Invalid reference to register RX5", errs.Error())
	assert.Equal(t, SOURCE_ONLY, s.State())
	//
	_, err := s.Step()
	assert.Equal(t, ErrNoCompilation, err)
}

func TestSessionEditInvalidatesMachine(t *testing.T) {
	s := newSession(t)
	s.Edit("READ RX0\nWRITE RX0")
	assert.True(t, s.Compile() == nil)
	//
	_, err := s.Step()
	assert.NoError(t, err)
	// A new edit discards the half-run machine.
	s.Edit("READ RX0")
	assert.Equal(t, SOURCE_ONLY, s.State())
	assert.True(t, s.Machine() == nil)
	//
	_, err = s.Step()
	assert.Equal(t, ErrNoCompilation, err)
}

func TestSessionRecompileResetsMachine(t *testing.T) {
	s := newSession(t)
	s.Edit("READ RX0\nWRITE RX0")
	assert.True(t, s.Compile() == nil)
	//
	_, err := s.Step()
	assert.NoError(t, err)
	// Recompiling the same source allocates a fresh machine.
	assert.True(t, s.Compile() == nil)
	assert.Equal(t, COMPILED, s.State())
	assert.Equal(t, 0, s.Machine().CycleCount())
}

func TestSessionStepAfterHalt(t *testing.T) {
	s := newSession(t)
	s.Edit("READ RX0\nWRITE RX0")
	assert.True(t, s.Compile() == nil)
	//
	_, err := s.Step()
	assert.NoError(t, err)
	_, err = s.Step()
	assert.NoError(t, err)
	// The machine is terminal; further steps surface its error.
	state, err := s.Step()
	assert.Error(t, err)
	assert.Equal(t, "halted_success", state.Status)
	assert.Equal(t, machine.HALTED_SUCCESS, s.Machine().Status())
}
