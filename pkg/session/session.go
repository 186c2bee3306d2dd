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

// Package session layers an explicit edit/compile/step lifecycle over the
// compiler and machine. A session holds at most one source text, at most one
// compiled program and at most one machine; editing invalidates both of the
// latter, so a stale machine can never be stepped against new source. A
// Session is not safe for concurrent use; callers serialize access.
package session

import (
	"errors"

	"github.com/gdlk-lang/gdlk/pkg/lang"
	"github.com/gdlk-lang/gdlk/pkg/lang/machine"
	"github.com/gdlk-lang/gdlk/pkg/spec"
	"github.com/gdlk-lang/gdlk/pkg/util/source"
)

// ErrNoCompilation signals a step request against a session whose current
// source has not been (successfully) compiled.
var ErrNoCompilation = errors.New("no compiled program to execute")

// State identifies where a session is in its edit/compile/step lifecycle.
type State uint8

const (
	// NO_PROGRAM means no source has been provided yet.
	NO_PROGRAM State = iota
	// SOURCE_ONLY means source exists but has not been compiled since the
	// last edit.
	SOURCE_ONLY
	// COMPILED means the current source compiled cleanly and a fresh machine
	// is allocated but not yet stepped.
	COMPILED
	// EXECUTING means the machine has been stepped at least once.
	EXECUTING
)

func (s State) String() string {
	switch s {
	case NO_PROGRAM:
		return "no_program"
	case SOURCE_ONLY:
		return "source_only"
	case COMPILED:
		return "compiled"
	case EXECUTING:
		return "executing"
	}
	//
	return "unknown"
}

// Session binds one user's editing surface to one puzzle instance (hardware
// plus program spec).
type Session struct {
	name     string
	hardware spec.Valid[spec.HardwareSpec]
	program  spec.Valid[spec.ProgramSpec]
	source   string
	compiled *machine.Program
	machine  *machine.Machine
	state    State
}

// New creates a session for a given puzzle instance with no source yet.
func New(name string, hardware spec.Valid[spec.HardwareSpec], program spec.Valid[spec.ProgramSpec]) *Session {
	return &Session{
		name:     name,
		hardware: hardware,
		program:  program,
		state:    NO_PROGRAM,
	}
}

// Name returns the puzzle name this session was created for.
func (s *Session) Name() string {
	return s.name
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Source returns the current source text.
func (s *Session) Source() string {
	return s.source
}

// Machine returns the machine for the current compilation, or nil when the
// session is not in COMPILED or EXECUTING state.
func (s *Session) Machine() *machine.Machine {
	return s.machine
}

// Edit replaces the session source, discarding any previous compilation and
// machine. Stepping again requires a fresh compile.
func (s *Session) Edit(src string) {
	s.source = src
	s.compiled = nil
	s.machine = nil
	s.state = SOURCE_ONLY
}

// Compile compiles the current source against the session hardware. On
// success a fresh machine is allocated and the session moves to COMPILED; on
// failure the session stays in SOURCE_ONLY and the errors are returned in
// source order.
func (s *Session) Compile() lang.ErrorList {
	srcfile := source.NewFile(s.name, []byte(s.source))
	//
	compiled, errs := lang.Compile(s.hardware, srcfile)
	if errs != nil {
		s.compiled = nil
		s.machine = nil
		s.state = SOURCE_ONLY
		//
		return errs
	}
	//
	s.compiled = compiled
	s.machine = machine.Allocate(compiled, s.program)
	s.state = COMPILED
	//
	return nil
}

// Step executes one instruction of the current machine, returning the
// resulting state snapshot. Stepping without a compilation fails with
// ErrNoCompilation; stepping a terminal machine surfaces the machine's own
// error. A runtime error is reported alongside the snapshot which captures
// it.
func (s *Session) Step() (machine.MachineState, error) {
	if s.machine == nil {
		return machine.MachineState{}, ErrNoCompilation
	}
	//
	s.state = EXECUTING
	//
	err := s.machine.ExecuteNext()
	//
	return s.machine.State(), err
}
