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

	"github.com/spf13/cobra"
)

var compileCmd = &cobra.Command{
	Use:   "compile [flags] source_file",
	Short: "compile a program against a hardware spec.",
	Long: `Compile a given program against a hardware spec, reporting any compile errors
	 found. On success, the compiled program is printed one instruction per line.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		configureLogging(cmd)
		//
		hardware := readHardwareFile(GetString(cmd, "hardware"))
		srcfile := readSourceFile(args[0])
		// Exits with the errors on failure.
		program := compileSource(hardware, srcfile)
		//
		fmt.Println(program.String())
	},
}

func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().String("hardware", "", "hardware spec file (JSON)")
}
