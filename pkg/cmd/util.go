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
package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gdlk-lang/gdlk/pkg/lang"
	"github.com/gdlk-lang/gdlk/pkg/lang/machine"
	"github.com/gdlk-lang/gdlk/pkg/puzzle"
	"github.com/gdlk-lang/gdlk/pkg/spec"
	"github.com/gdlk-lang/gdlk/pkg/util/source"
)

// GetFlag gets an expected flag, or panic if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetString gets an expected string flag, or panic if an error arises.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetUint gets an expected uint flag, or panic if an error arises.
func GetUint(cmd *cobra.Command, flag string) uint {
	r, err := cmd.Flags().GetUint(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// configureLogging raises the log level under --verbose.
func configureLogging(cmd *cobra.Command) {
	if GetFlag(cmd, "verbose") {
		log.SetLevel(log.DebugLevel)
	}
}

// readSourceFile reads a program source file, exiting on failure.
func readSourceFile(filename string) *source.File {
	srcfile, err := source.ReadFile(filename)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return srcfile
}

// readHardwareFile reads and validates a hardware spec from a JSON file,
// falling back on the default hardware when no filename was supplied.
func readHardwareFile(filename string) spec.Valid[spec.HardwareSpec] {
	hardware := spec.DefaultHardwareSpec()
	//
	if filename != "" {
		readJsonFile(filename, &hardware)
	}
	//
	hw, err := spec.Validate(hardware)
	if err != nil {
		fmt.Printf("%s: invalid hardware spec:\n%s\n", filename, err)
		os.Exit(2)
	}
	//
	return hw
}

// readProgramFile reads and validates a program spec from a JSON file,
// falling back on the default (empty) program spec when no filename was
// supplied.
func readProgramFile(filename string) spec.Valid[spec.ProgramSpec] {
	program := spec.DefaultProgramSpec()
	//
	if filename != "" {
		readJsonFile(filename, &program)
	}
	//
	ps, err := spec.Validate(program)
	if err != nil {
		fmt.Printf("%s: invalid program spec:\n%s\n", filename, err)
		os.Exit(2)
	}
	//
	return ps
}

// readPuzzleFile loads a puzzle file and selects one puzzle from it. An
// explicit name is required when the file defines more than one.
func readPuzzleFile(filename string, name string) puzzle.Puzzle {
	puzzles, err := puzzle.LoadFile(filename)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	if name == "" && len(puzzles) == 1 {
		return puzzles[0]
	}
	//
	for _, p := range puzzles {
		if p.Name == name {
			return p
		}
	}
	//
	fmt.Printf("%s: puzzle %q not found\n", filename, name)
	os.Exit(2)
	// unreachable
	return puzzle.Puzzle{}
}

func readJsonFile(filename string, target any) {
	bytes, err := os.ReadFile(filename)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	if err := json.Unmarshal(bytes, target); err != nil {
		fmt.Printf("%s: %s\n", filename, err)
		os.Exit(2)
	}
}

// compileSource compiles a source file, printing every compile error and
// exiting on failure.
func compileSource(hardware spec.Valid[spec.HardwareSpec], srcfile *source.File) *machine.Program {
	program, errs := lang.Compile(hardware, srcfile)
	if errs != nil {
		fmt.Println(errs.Error())
		os.Exit(1)
	}
	//
	return program
}

// printMachine renders the current machine state for human consumption.
func printMachine(m *machine.Machine) {
	registers := m.Registers()
	//
	names := make([]string, 0, len(registers))
	for name := range registers {
		names = append(names, name)
	}
	// Sorting puts RLI first, then RS<i>, then RX<i>.
	sort.Strings(names)
	//
	pairs := make([]string, len(names))
	for i, name := range names {
		pairs[i] = fmt.Sprintf("%s=%d", name, registers[name])
	}
	//
	fmt.Printf("registers: %s\n", strings.Join(pairs, " "))
	//
	for i, stack := range m.Stacks() {
		fmt.Printf("stack S%d:  %v\n", i, stack)
	}
	//
	fmt.Printf("input:     %v\n", m.Input())
	fmt.Printf("output:    %v\n", m.Output())
	fmt.Printf("cycles:    %d\n", m.CycleCount())
}

// printVerdict prints the final verdict of a finished run.
func printVerdict(m *machine.Machine) {
	if m.IsSuccessful() {
		fmt.Println("SUCCESS")
	} else {
		fmt.Printf("FAILURE (%s)\n", m.Status())
	}
}
