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

// Status is the lifecycle state of a machine. A machine starts READY, becomes
// RUNNING on its first step, and ends in exactly one of the three terminal
// states, after which it can never be stepped again.
type Status uint8

const (
	// READY means allocated with zero cycles executed.
	READY Status = iota
	// RUNNING means at least one instruction has executed.
	RUNNING
	// HALTED_SUCCESS means the program completed and its output equals the
	// expected output exactly.
	HALTED_SUCCESS
	// HALTED_FAILURE means the program completed with different output.
	HALTED_FAILURE
	// HALTED_ERROR means an instruction failed with a runtime error.
	HALTED_ERROR
)

// IsTerminal reports whether this status is one of the three halted states.
func (s Status) IsTerminal() bool {
	return s == HALTED_SUCCESS || s == HALTED_FAILURE || s == HALTED_ERROR
}

// String implements the Stringer interface.
func (s Status) String() string {
	switch s {
	case READY:
		return "ready"
	case RUNNING:
		return "running"
	case HALTED_SUCCESS:
		return "halted_success"
	case HALTED_FAILURE:
		return "halted_failure"
	case HALTED_ERROR:
		return "halted_error"
	default:
		return "unknown"
	}
}

// MachineState is a read-only snapshot of a machine, suitable for
// serialization towards external observers (CLI output, websocket clients).
type MachineState struct {
	// Index of the next instruction to execute.
	ProgramCounter int `json:"program_counter"`
	// Number of instructions executed so far.
	CycleCount int `json:"cycle_count"`
	// Every addressable register (user and read-only), keyed by name.
	Registers map[string]int32 `json:"registers"`
	// Contents of every stack, bottom first.
	Stacks [][]int32 `json:"stacks"`
	// Input values not yet consumed.
	Input []int32 `json:"input"`
	// Output accumulated so far.
	Output []int32 `json:"output"`
	// Lifecycle status name.
	Status string `json:"status"`
	// The runtime error which halted the machine, if any.
	Error string `json:"error,omitempty"`
}
