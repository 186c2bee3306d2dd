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
	"strings"

	"github.com/gdlk-lang/gdlk/pkg/util/source"
)

// CompileError is a diagnostic produced by one compile attempt. A failed
// compile yields an ordered list of these (ordered by point of occurrence in
// source, not grouped by kind) and never a partial program.
type CompileError interface {
	error
	// Marker method restricting the implementations to this package.
	isCompileError()
}

// ErrorList is the ordered list of diagnostics from one compile attempt.
type ErrorList []CompileError

// Error implements the error interface, rendering one message per line in
// source order.
func (p ErrorList) Error() string {
	msgs := make([]string, len(p))
	//
	for i, e := range p {
		msgs[i] = e.Error()
	}
	//
	return strings.Join(msgs, "\n")
}

// ParseError reports a syntax problem. Unlike semantic errors, parse errors
// are not collected exhaustively: parsing reports the first and stops.
type ParseError struct {
	// Location of the offending text.
	Span source.Span
	// Line number (counting from 1) of the offending text.
	Line int
	// Description of the problem.
	Message string
}

func (p ParseError) isCompileError() {}

// Error implements the error interface.
func (p ParseError) Error() string {
	return "Parse error: " + p.Message
}

// InvalidRegisterError reports a register name which does not resolve to any
// slot of the hardware being compiled against.
type InvalidRegisterError struct {
	// The register name as written.
	Name string
}

func (p InvalidRegisterError) isCompileError() {}

// Error implements the error interface.
func (p InvalidRegisterError) Error() string {
	return "Invalid reference to register " + p.Name
}

// InvalidStackError reports a stack name which does not resolve to any stack
// of the hardware being compiled against.
type InvalidStackError struct {
	// The stack name as written.
	Name string
}

func (p InvalidStackError) isCompileError() {}

// Error implements the error interface.
func (p InvalidStackError) Error() string {
	return "Invalid reference to stack " + p.Name
}

// ReadOnlyWriteError reports an instruction whose destination operand
// resolves to a read-only register.
type ReadOnlyWriteError struct {
	// The register name as written.
	Name string
}

func (p ReadOnlyWriteError) isCompileError() {}

// Error implements the error interface.
func (p ReadOnlyWriteError) Error() string {
	return "Cannot write to read-only register " + p.Name
}
