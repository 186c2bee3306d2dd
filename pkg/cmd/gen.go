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

	"github.com/gdlk-lang/gdlk/pkg/lang/codegen"
)

var genCmd = &cobra.Command{
	Use:   "gen [flags] source_file",
	Short: "compile a program and translate it into Go source.",
	Long: `Compile a given program and emit a standalone Go source file containing an
	 equivalent function with signature func(input []int32) ([]int32, error).`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		configureLogging(cmd)
		//
		hardware := readHardwareFile(GetString(cmd, "hardware"))
		srcfile := readSourceFile(args[0])
		//
		compiled := compileSource(hardware, srcfile)
		//
		config := codegen.Config{
			Package: GetString(cmd, "package"),
			Func:    GetString(cmd, "func"),
		}
		//
		file := codegen.Generate(compiled, config)
		output := GetString(cmd, "output")
		//
		if output == "" {
			fmt.Printf("%#v", file)
		} else if err := file.Save(output); err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
	},
}

func init() {
	rootCmd.AddCommand(genCmd)
	genCmd.Flags().String("hardware", "", "hardware spec file (JSON)")
	genCmd.Flags().StringP("output", "o", "", "output file (stdout when omitted)")
	genCmd.Flags().String("package", "main", "package name of the generated file")
	genCmd.Flags().String("func", "Run", "name of the generated function")
}
