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

// Package puzzle defines on-disk puzzle files which bind a name to a hardware
// spec and a program spec, in either HCL or JSON form. Loaded puzzles carry
// validated specs only; a puzzle file whose specs fail validation is rejected
// at load time.
package puzzle

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/gdlk-lang/gdlk/pkg/spec"
)

// Puzzle is a named, fully validated puzzle instance.
type Puzzle struct {
	Name     string
	Hardware spec.Valid[spec.HardwareSpec]
	Program  spec.Valid[spec.ProgramSpec]
}

// hclPuzzleFile is the top-level structure of a .hcl puzzle file. One file
// may define several puzzles.
type hclPuzzleFile struct {
	Puzzles []hclPuzzle `hcl:"puzzle,block"`
}

type hclPuzzle struct {
	Name     string            `hcl:"name,label"`
	Hardware spec.HardwareSpec `hcl:"hardware,block"`
	Program  hclProgram        `hcl:"program,block"`
}

// hclProgram defers list decoding to cty conversion, since HCL list literals
// are tuples until converted.
type hclProgram struct {
	Input          cty.Value `hcl:"input,optional"`
	ExpectedOutput cty.Value `hcl:"expected_output,optional"`
}

func (p hclProgram) spec() (spec.ProgramSpec, error) {
	input, err := int32List(p.Input)
	if err != nil {
		return spec.ProgramSpec{}, fmt.Errorf("input: %w", err)
	}
	//
	expected, err := int32List(p.ExpectedOutput)
	if err != nil {
		return spec.ProgramSpec{}, fmt.Errorf("expected_output: %w", err)
	}
	//
	return spec.ProgramSpec{Input: input, ExpectedOutput: expected}, nil
}

func int32List(value cty.Value) ([]int32, error) {
	if value == cty.NilVal || value.IsNull() {
		return nil, nil
	}
	//
	converted, err := convert.Convert(value, cty.List(cty.Number))
	if err != nil {
		return nil, err
	}
	//
	var values []int32
	//
	if err := gocty.FromCtyValue(converted, &values); err != nil {
		return nil, err
	}
	//
	return values, nil
}

// jsonPuzzle is the structure of a .json puzzle file, which defines exactly
// one puzzle named after its "name" field.
type jsonPuzzle struct {
	Name     string            `json:"name"`
	Hardware spec.HardwareSpec `json:"hardware"`
	Program  spec.ProgramSpec  `json:"program"`
}

// LoadFile reads the puzzles defined in a single file, dispatching on the
// file extension (.hcl or .json).
func LoadFile(filename string) ([]Puzzle, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".hcl":
		return loadHcl(filename)
	case ".json":
		return loadJson(filename)
	default:
		return nil, fmt.Errorf("unknown puzzle file extension %q", filepath.Ext(filename))
	}
}

func loadHcl(filename string) ([]Puzzle, error) {
	parser := hclparse.NewParser()
	//
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse puzzle file %s: %s", filename, diags.Error())
	}
	//
	var parsed hclPuzzleFile
	//
	if diags = gohcl.DecodeBody(file.Body, nil, &parsed); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode puzzle file %s: %s", filename, diags.Error())
	}
	//
	puzzles := make([]Puzzle, len(parsed.Puzzles))
	//
	for i, p := range parsed.Puzzles {
		program, err := p.Program.spec()
		if err != nil {
			return nil, fmt.Errorf("%s: puzzle %q: %w", filename, p.Name, err)
		}
		//
		puzzle, err := newPuzzle(p.Name, p.Hardware, program)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
		//
		puzzles[i] = puzzle
	}
	//
	return puzzles, nil
}

func loadJson(filename string) ([]Puzzle, error) {
	bytes, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	//
	var parsed jsonPuzzle
	//
	if err := json.Unmarshal(bytes, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode puzzle file %s: %w", filename, err)
	}
	//
	puzzle, err := newPuzzle(parsed.Name, parsed.Hardware, parsed.Program)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	//
	return []Puzzle{puzzle}, nil
}

func newPuzzle(name string, hardware spec.HardwareSpec, program spec.ProgramSpec) (Puzzle, error) {
	if name == "" {
		return Puzzle{}, fmt.Errorf("puzzle has no name")
	}
	//
	hw, err := spec.Validate(hardware)
	if err != nil {
		return Puzzle{}, fmt.Errorf("puzzle %q: invalid hardware: %w", name, err)
	}
	//
	ps, err := spec.Validate(program)
	if err != nil {
		return Puzzle{}, fmt.Errorf("puzzle %q: invalid program: %w", name, err)
	}
	//
	return Puzzle{Name: name, Hardware: hw, Program: ps}, nil
}
