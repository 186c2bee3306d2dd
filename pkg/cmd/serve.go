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
	"net/http"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gdlk-lang/gdlk/pkg/puzzle"
	"github.com/gdlk-lang/gdlk/pkg/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve [flags]",
	Short: "serve websocket sessions against a directory of puzzles.",
	Long: `Serve websocket sessions at /ws/{puzzle}, where each connection edits,
	 compiles and steps one program against the named puzzle.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		configureLogging(cmd)
		//
		addr := GetString(cmd, "addr")
		//
		store, err := puzzle.LoadDirectory(GetString(cmd, "puzzles"))
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		log.WithFields(log.Fields{
			"addr":    addr,
			"puzzles": store.Names(),
		}).Info("starting server")
		//
		if err := http.ListenAndServe(addr, server.New(store).Handler()); err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "address to listen on")
	serveCmd.Flags().String("puzzles", ".", "directory of puzzle files")
}
