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
package parser

import (
	"github.com/gdlk-lang/gdlk/pkg/util/source"
	"github.com/gdlk-lang/gdlk/pkg/util/source/lex"
)

// END_OF signals "end of file"
const END_OF uint = 0

// WHITESPACE signals spaces and tabs (but not line breaks)
const WHITESPACE uint = 1

// COMMENT signals "; ... \n"
const COMMENT uint = 2

// NEWLINE signals "\n", which terminates an instruction
const NEWLINE uint = 3

// NUMBER signals an integer literal (with optional leading minus)
const NUMBER uint = 4

// IDENTIFIER signals an instruction keyword or a register/stack name
const IDENTIFIER uint = 5

// Rule for describing whitespace within a line. Line breaks are significant
// (one instruction per line) and lexed separately.
var whitespace lex.Scanner[rune] = lex.Many(lex.Or(
	lex.Unit(' '),
	lex.Unit('\t'),
	lex.Unit('\r')))

// Rule for describing integer literals.
var (
	digits = lex.And(lex.Within('0', '9'), lex.Many(lex.Within('0', '9')))
	number = lex.Or(
		lex.Sequence(lex.Unit('-'), digits),
		digits,
	)
)

// Rule for describing identifiers (keywords and register/stack names).
var identifier lex.Scanner[rune] = lex.And(
	lex.Or(lex.Within('a', 'z'), lex.Within('A', 'Z')),
	lex.Many(lex.Or(
		lex.Within('a', 'z'),
		lex.Within('A', 'Z'),
		lex.Within('0', '9'))))

// Comments start with ';' and continue until a newline or EOF.
var comment lex.Scanner[rune] = lex.And(lex.Unit(';'), lex.Until('\n'))

// lexing rules
var rules []lex.LexRule[rune] = []lex.LexRule[rune]{
	lex.Rule(comment, COMMENT),
	lex.Rule(lex.Unit('\n'), NEWLINE),
	lex.Rule(whitespace, WHITESPACE),
	lex.Rule(number, NUMBER),
	lex.Rule(identifier, IDENTIFIER),
	lex.Rule(lex.Eof[rune](), END_OF),
}

// Lex a given source file into a sequence of zero or more tokens, or a syntax
// error if some text matches no rule.
func Lex(srcfile *source.File) ([]lex.Token, *source.SyntaxError) {
	var (
		lexer  = lex.NewLexer(srcfile.Contents(), rules...)
		tokens = lexer.Collect()
	)
	// Check whether anything was left (if so this is an error)
	if lexer.Remaining() != 0 {
		start, end := lexer.Index(), lexer.Index()+lexer.Remaining()
		return nil, srcfile.SyntaxError(source.NewSpan(int(start), int(end)), "unknown text encountered")
	}
	// Remove whitespace and comments; newlines stay.
	filtered := tokens[:0]
	//
	for _, t := range tokens {
		if t.Kind != WHITESPACE && t.Kind != COMMENT {
			filtered = append(filtered, t)
		}
	}
	//
	return filtered, nil
}
