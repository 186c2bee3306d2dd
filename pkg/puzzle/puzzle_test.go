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
package puzzle

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gdlk-lang/gdlk/pkg/util/assert"
)

func writeFile(t *testing.T, name, contents string) string {
	t.Helper()
	//
	filename := filepath.Join(t.TempDir(), name)
	assert.NoError(t, os.WriteFile(filename, []byte(contents), 0644))
	//
	return filename
}

func TestLoadHclPuzzle(t *testing.T) {
	filename := writeFile(t, "reverse.hcl", `
puzzle "reverse" {
  hardware {
    registers        = 2
    stacks           = 1
    max_stack_length = 16
  }
  program {
    input           = [1, 2, 3]
    expected_output = [3, 2, 1]
  }
}
`)
	//
	puzzles, err := LoadFile(filename)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(puzzles))
	assert.Equal(t, "reverse", puzzles[0].Name)
	assert.Equal(t, 2, puzzles[0].Hardware.Inner().NumRegisters)
	assert.Equal(t, 1, puzzles[0].Hardware.Inner().NumStacks)
	assert.Equal(t, []int32{1, 2, 3}, puzzles[0].Program.Inner().Input)
	assert.Equal(t, []int32{3, 2, 1}, puzzles[0].Program.Inner().ExpectedOutput)
}

func TestLoadHclMultiplePuzzles(t *testing.T) {
	filename := writeFile(t, "pack.hcl", `
puzzle "first" {
  hardware { registers = 1 }
  program  { expected_output = [0] }
}

puzzle "second" {
  hardware { registers = 1 }
  program  { input = [5]  expected_output = [5] }
}
`)
	//
	puzzles, err := LoadFile(filename)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(puzzles))
	assert.Equal(t, "first", puzzles[0].Name)
	assert.Equal(t, "second", puzzles[1].Name)
}

func TestLoadJsonPuzzle(t *testing.T) {
	filename := writeFile(t, "echo.json", `{
  "name": "echo",
  "hardware": {"num_registers": 1, "num_stacks": 0, "max_stack_length": 0},
  "program": {"input": [1, 2], "expected_output": [1, 2]}
}`)
	//
	puzzles, err := LoadFile(filename)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(puzzles))
	assert.Equal(t, "echo", puzzles[0].Name)
	assert.Equal(t, []int32{1, 2}, puzzles[0].Program.Inner().Input)
}

func TestLoadRejectsInvalidHardware(t *testing.T) {
	filename := writeFile(t, "bad.hcl", `
puzzle "bad" {
  hardware { registers = 0 }
  program  {}
}
`)
	//
	_, err := LoadFile(filename)
	assert.Error(t, err)
}

func TestLoadRejectsUnnamedJsonPuzzle(t *testing.T) {
	filename := writeFile(t, "anon.json", `{
  "hardware": {"num_registers": 1},
  "program": {}
}`)
	//
	_, err := LoadFile(filename)
	assert.Error(t, err)
}

func TestLoadRejectsUnknownExtension(t *testing.T) {
	filename := writeFile(t, "puzzle.yaml", "name: nope")
	//
	_, err := LoadFile(filename)
	assert.Error(t, err)
}

func TestLoadDirectory(t *testing.T) {
	dir := t.TempDir()
	//
	hcl := `
puzzle "reverse" {
  hardware { registers = 1  stacks = 1  max_stack_length = 8 }
  program  { input = [1, 2]  expected_output = [2, 1] }
}
`
	jsn := `{"name": "echo", "hardware": {"num_registers": 1}, "program": {}}`
	//
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "reverse.hcl"), []byte(hcl), 0644))
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "echo.json"), []byte(jsn), 0644))
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("ignored"), 0644))
	//
	store, err := LoadDirectory(dir)
	assert.NoError(t, err)
	assert.Equal(t, []string{"echo", "reverse"}, store.Names())
	//
	p, ok := store.Get("reverse")
	assert.True(t, ok)
	assert.Equal(t, 1, p.Hardware.Inner().NumStacks)
	//
	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestStoreRejectsDuplicates(t *testing.T) {
	dir := t.TempDir()
	//
	jsn := `{"name": "echo", "hardware": {"num_registers": 1}, "program": {}}`
	//
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "a.json"), []byte(jsn), 0644))
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "b.json"), []byte(jsn), 0644))
	//
	_, err := LoadDirectory(dir)
	assert.Error(t, err)
}
