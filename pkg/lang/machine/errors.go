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

// RuntimeError is the failure of exactly one instruction during execution.
// It permanently halts the machine; the only recovery is recompiling and
// reallocating from scratch. The concrete types below are the full set of
// ways an instruction can fail.
type RuntimeError interface {
	error
	// Marker method restricting the implementations to this package.
	isRuntimeError()
}

// InputExhaustedError reports a READ with nothing left in the input queue.
type InputExhaustedError struct{}

func (p InputExhaustedError) isRuntimeError() {}

// Error implements the error interface.
func (p InputExhaustedError) Error() string {
	return "cannot read from empty input"
}

// StackOverflowError reports a PUSH onto a stack already at capacity.
type StackOverflowError struct {
	// The stack being pushed onto.
	Stack StackRef
	// Its capacity (max_stack_length of the hardware).
	Capacity int
}

func (p StackOverflowError) isRuntimeError() {}

// Error implements the error interface.
func (p StackOverflowError) Error() string {
	return fmt.Sprintf("cannot push onto full stack %s (capacity %d)", p.Stack, p.Capacity)
}

// StackUnderflowError reports a POP from an empty stack.
type StackUnderflowError struct {
	// The stack being popped from.
	Stack StackRef
}

func (p StackUnderflowError) isRuntimeError() {}

// Error implements the error interface.
func (p StackUnderflowError) Error() string {
	return fmt.Sprintf("cannot pop from empty stack %s", p.Stack)
}

// TerminatedError reports a step request against a machine which has already
// reached a terminal state. This is a caller error rather than a program
// failure, so it does not implement RuntimeError and does not change the
// machine's state.
type TerminatedError struct {
	// The terminal state the machine is in.
	Status Status
}

// Error implements the error interface.
func (p TerminatedError) Error() string {
	return fmt.Sprintf("machine has already terminated (%s)", p.Status)
}
