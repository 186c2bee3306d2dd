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
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/gdlk-lang/gdlk/pkg/lang/machine"
)

var debugCmd = &cobra.Command{
	Use:   "debug [flags] source_file",
	Short: "compile a program and step through it interactively.",
	Long: `Compile a given program and execute it one instruction at a time, dumping the
	 machine state after each step. With a terminal attached, space or enter steps
	 and q quits; otherwise every step is executed without pausing.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		configureLogging(cmd)
		//
		hardware, program := resolveSpecs(cmd)
		srcfile := readSourceFile(args[0])
		//
		compiled := compileSource(hardware, srcfile)
		m := machine.Allocate(compiled, program)
		//
		debugMachine(m, compiled.Size())
	},
}

func debugMachine(m *machine.Machine, size int) {
	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	//
	for !m.IsComplete() {
		fmt.Printf("=== cycle %d of %d ===\n", m.CycleCount(), size)
		printMachine(m)
		//
		if interactive && !awaitStep() {
			return
		}
		//
		if err := m.ExecuteNext(); err != nil {
			fmt.Printf("runtime error: %s\n", err)
			break
		}
	}
	//
	fmt.Println("=== final state ===")
	printMachine(m)
	printVerdict(m)
	//
	if !m.IsSuccessful() {
		os.Exit(1)
	}
}

// awaitStep blocks until the user requests the next step (space or enter) or
// quits (q), reading raw keys so no newline is required.
func awaitStep() bool {
	fd := int(os.Stdin.Fd())
	//
	state, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	defer func() { _ = term.Restore(fd, state) }()
	//
	var key [1]byte
	//
	for {
		if _, err := os.Stdin.Read(key[:]); err != nil {
			return false
		}
		//
		switch key[0] {
		case ' ', '\r', '\n':
			return true
		case 'q', 3: // q or ctrl-c
			return false
		}
	}
}

func init() {
	rootCmd.AddCommand(debugCmd)
	debugCmd.Flags().String("hardware", "", "hardware spec file (JSON)")
	debugCmd.Flags().String("program", "", "program spec file (JSON)")
	debugCmd.Flags().String("puzzle", "", "puzzle file (HCL or JSON)")
	debugCmd.Flags().String("name", "", "puzzle name, for puzzle files defining several")
}
