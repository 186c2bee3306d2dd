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
package server

import (
	"encoding/json"

	"github.com/gdlk-lang/gdlk/pkg/lang"
	"github.com/gdlk-lang/gdlk/pkg/lang/machine"
)

// incomingEvent is the envelope of every client message: edit, compile or
// step. Content is only present for edit.
type incomingEvent struct {
	Type    string          `json:"type"`
	Content json.RawMessage `json:"content"`
}

type editContent struct {
	Source string `json:"source"`
}

// outgoingEvent is the envelope of every server message.
type outgoingEvent struct {
	Type    string `json:"type"`
	Content any    `json:"content,omitempty"`
}

type sourceContent struct {
	Source string `json:"source"`
}

type machineStateContent struct {
	State        machine.MachineState `json:"state"`
	IsComplete   bool                 `json:"is_complete"`
	IsSuccessful bool                 `json:"is_successful"`
}

// sourceEvent acknowledges an edit with the latest source text.
func sourceEvent(source string) outgoingEvent {
	return outgoingEvent{Type: "source", Content: sourceContent{Source: source}}
}

// malformedEvent reports a message which could not be understood.
func malformedEvent(message string) outgoingEvent {
	return outgoingEvent{Type: "malformed_message", Content: message}
}

// compileErrorEvent reports compilation failure, one message per error in
// source order.
func compileErrorEvent(errs lang.ErrorList) outgoingEvent {
	messages := make([]string, len(errs))
	//
	for i, err := range errs {
		messages[i] = err.Error()
	}
	//
	return outgoingEvent{Type: "compile_error", Content: messages}
}

// runtimeErrorEvent reports a failed step.
func runtimeErrorEvent(message string) outgoingEvent {
	return outgoingEvent{Type: "runtime_error", Content: message}
}

// noCompilationEvent reports a step without a compiled program.
func noCompilationEvent() outgoingEvent {
	return outgoingEvent{Type: "no_compilation"}
}
