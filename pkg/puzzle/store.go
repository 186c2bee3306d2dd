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
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Store resolves puzzle names to puzzle instances. The server depends on
// this interface only, keeping alternative backends (a database, a remote
// catalog) behind the same boundary.
type Store interface {
	// Get looks up a puzzle by name.
	Get(name string) (Puzzle, bool)
	// Names lists the available puzzle names in lexicographic order.
	Names() []string
}

// MemoryStore is an immutable in-memory Store.
type MemoryStore struct {
	puzzles map[string]Puzzle
}

// NewMemoryStore builds a store from a set of puzzles. Duplicate names are
// rejected.
func NewMemoryStore(puzzles []Puzzle) (*MemoryStore, error) {
	index := make(map[string]Puzzle, len(puzzles))
	//
	for _, p := range puzzles {
		if _, ok := index[p.Name]; ok {
			return nil, fmt.Errorf("duplicate puzzle %q", p.Name)
		}
		//
		index[p.Name] = p
	}
	//
	return &MemoryStore{puzzles: index}, nil
}

// LoadDirectory builds a store from every .hcl and .json puzzle file directly
// inside a directory. Other files are ignored.
func LoadDirectory(dir string) (*MemoryStore, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	//
	var puzzles []Puzzle
	//
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		//
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".hcl", ".json":
			loaded, err := LoadFile(filepath.Join(dir, entry.Name()))
			if err != nil {
				return nil, err
			}
			//
			puzzles = append(puzzles, loaded...)
		}
	}
	//
	return NewMemoryStore(puzzles)
}

// Get implements the Store interface.
func (s *MemoryStore) Get(name string) (Puzzle, bool) {
	p, ok := s.puzzles[name]
	return p, ok
}

// Names implements the Store interface.
func (s *MemoryStore) Names() []string {
	names := make([]string, 0, len(s.puzzles))
	//
	for name := range s.puzzles {
		names = append(names, name)
	}
	//
	sort.Strings(names)
	//
	return names
}
