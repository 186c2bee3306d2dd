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

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gdlk-lang/gdlk/pkg/lang/machine"
	"github.com/gdlk-lang/gdlk/pkg/spec"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] source_file",
	Short: "compile and execute a program to completion.",
	Long: `Compile a given program and execute it against a program spec, printing the
	 final machine state and whether the run succeeded. The specs come either from
	 --hardware/--program JSON files or from a --puzzle file.`,
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
		log.Debugf("executing %d instructions", compiled.Size())
		//
		if _, err := m.ExecuteAll(); err != nil {
			fmt.Printf("runtime error: %s\n", err)
		}
		//
		printMachine(m)
		printVerdict(m)
		//
		if !m.IsSuccessful() {
			os.Exit(1)
		}
	},
}

// resolveSpecs determines the hardware and program specs for a run, either
// from a puzzle file or from individual spec files (with defaults).
func resolveSpecs(cmd *cobra.Command) (spec.Valid[spec.HardwareSpec], spec.Valid[spec.ProgramSpec]) {
	puzzleFile := GetString(cmd, "puzzle")
	//
	if puzzleFile != "" {
		p := readPuzzleFile(puzzleFile, GetString(cmd, "name"))
		return p.Hardware, p.Program
	}
	//
	hardware := readHardwareFile(GetString(cmd, "hardware"))
	program := readProgramFile(GetString(cmd, "program"))
	//
	return hardware, program
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().String("hardware", "", "hardware spec file (JSON)")
	runCmd.Flags().String("program", "", "program spec file (JSON)")
	runCmd.Flags().String("puzzle", "", "puzzle file (HCL or JSON)")
	runCmd.Flags().String("name", "", "puzzle name, for puzzle files defining several")
}
