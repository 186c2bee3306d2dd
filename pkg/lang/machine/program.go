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
	"strings"

	"github.com/gdlk-lang/gdlk/pkg/spec"
)

// Program is an ordered sequence of bound instructions, tied to the hardware
// spec it was bound against. Programs are immutable once constructed; a
// source edit requires a fresh compile.
type Program struct {
	hardware spec.HardwareSpec
	code     []Instruction
}

// NewProgram constructs a program from a sequence of bound instructions. This
// is intended for the compiler; instructions handed in must have been bound
// against the given hardware.
func NewProgram(hardware spec.HardwareSpec, code []Instruction) *Program {
	return &Program{hardware, code}
}

// Hardware returns the hardware spec this program was bound against.
func (p *Program) Hardware() spec.HardwareSpec {
	return p.hardware
}

// Size returns the number of instructions in this program.
func (p *Program) Size() int {
	return len(p.code)
}

// Instruction returns the instruction at a given position.
func (p *Program) Instruction(pc int) Instruction {
	return p.code[pc]
}

// String renders the program as source text, one instruction per line.
func (p *Program) String() string {
	var builder strings.Builder
	//
	for i, insn := range p.code {
		if i != 0 {
			builder.WriteString("\n")
		}
		//
		builder.WriteString(insn.String())
	}
	//
	return builder.String()
}
