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
package codegen

import (
	"fmt"
	"strings"
	"testing"

	"github.com/gdlk-lang/gdlk/pkg/lang"
	"github.com/gdlk-lang/gdlk/pkg/spec"
	"github.com/gdlk-lang/gdlk/pkg/util/assert"
	"github.com/gdlk-lang/gdlk/pkg/util/source"
)

func generate(t *testing.T, hardware spec.HardwareSpec, src string) string {
	t.Helper()
	//
	hw, err := spec.Validate(hardware)
	assert.NoError(t, err)
	//
	program, errs := lang.Compile(hw, source.NewFile("test.gdlk", []byte(src)))
	if errs != nil {
		t.Fatalf("unexpected compile errors: %s", errs.Error())
	}
	//
	return fmt.Sprintf("%#v", Generate(program, DefaultConfig()))
}

func expectLines(t *testing.T, generated string, lines ...string) {
	t.Helper()
	//
	for _, line := range lines {
		if !strings.Contains(generated, line) {
			t.Errorf("generated code missing %q:\n%s", line, generated)
		}
	}
}

func TestGenerateEcho(t *testing.T) {
	generated := generate(t, spec.HardwareSpec{NumRegisters: 1}, "READ RX0\nWRITE RX0")
	//
	expectLines(t, generated,
		"// Code generated by gdlk gen. DO NOT EDIT.",
		"package main",
		"func Run(input []int32) ([]int32, error)",
		"rx := make([]int32, 1)",
		"var output []int32",
		"if len(input) == 0",
		`errors.New("cannot read from empty input")`,
		"rx[0] = input[0]",
		"input = input[1:]",
		"output = append(output, rx[0])",
		"return output, nil",
	)
}

func TestGenerateArithmetic(t *testing.T) {
	generated := generate(t, spec.HardwareSpec{NumRegisters: 2},
		"SET RX0 5\nADD RX0 -3\nSUB RX1 RX0\nMUL RX0 RX1\nWRITE RX0")
	//
	expectLines(t, generated,
		"rx[0] = 5",
		"rx[0] += -3",
		"rx[1] -= rx[0]",
		"rx[0] *= rx[1]",
	)
}

func TestGenerateStacks(t *testing.T) {
	generated := generate(t, spec.HardwareSpec{NumRegisters: 1, NumStacks: 2, MaxStackLength: 4},
		"PUSH 7 S1\nPOP S1 RX0\nWRITE RS1")
	//
	expectLines(t, generated,
		"stacks := make([][]int32, 2)",
		"if len(stacks[1]) >= 4",
		`errors.New("cannot push onto full stack S1 (capacity 4)")`,
		"stacks[1] = append(stacks[1], 7)",
		"if len(stacks[1]) == 0",
		`errors.New("cannot pop from empty stack S1")`,
		"rx[0] = stacks[1][len(stacks[1])-1]",
		"stacks[1] = stacks[1][:len(stacks[1])-1]",
		"output = append(output, int32(len(stacks[1])))",
	)
}

func TestGenerateLiteralOnlyProgramOmitsRegisters(t *testing.T) {
	generated := generate(t, spec.HardwareSpec{NumRegisters: 1}, "WRITE 5\nWRITE RLI")
	//
	if strings.Contains(generated, "rx :=") {
		t.Errorf("generated code declares unused registers:\n%s", generated)
	}
	//
	expectLines(t, generated,
		"output = append(output, 5)",
		"output = append(output, int32(len(input)))",
	)
}

func TestGenerateSourceComments(t *testing.T) {
	generated := generate(t, spec.HardwareSpec{NumRegisters: 1}, "SET RX0 1")
	//
	expectLines(t, generated, "// SET RX0 1")
}

func TestGenerateCustomConfig(t *testing.T) {
	hw, err := spec.Validate(spec.DefaultHardwareSpec())
	assert.NoError(t, err)
	//
	program, errs := lang.Compile(hw, source.NewFile("test.gdlk", []byte("WRITE 1")))
	assert.True(t, errs == nil)
	//
	generated := fmt.Sprintf("%#v", Generate(program, Config{Package: "solutions", Func: "Echo"}))
	//
	expectLines(t, generated,
		"package solutions",
		"func Echo(input []int32) ([]int32, error)",
	)
}
