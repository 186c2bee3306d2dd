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

// Package parser turns raw source text into an ordered sequence of
// instruction nodes. One instruction per line; register and stack operands
// are kept as raw names for the compiler to resolve. Parsing stops at the
// first syntax error (unlike semantic binding, which accumulates).
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdlk-lang/gdlk/pkg/lang/ast"
	"github.com/gdlk-lang/gdlk/pkg/util/source"
	"github.com/gdlk-lang/gdlk/pkg/util/source/lex"
)

// Parse a given source file into a sequence of instructions, or a syntax
// error. An empty program (no instructions at all) is a syntax error.
func Parse(srcfile *source.File) ([]ast.Instruction, *source.SyntaxError) {
	parser := NewParser(srcfile)
	//
	return parser.Parse()
}

// Parser is a parser for the language. It owns the token stream of a single
// source file and a cursor into it.
type Parser struct {
	srcfile *source.File
	tokens  []lex.Token
	// Position within the tokens
	index int
}

// NewParser constructs a new parser for a given source file.
func NewParser(srcfile *source.File) *Parser {
	return &Parser{srcfile, nil, 0}
}

// Parse the given source file into a sequence of one or more instructions,
// or a syntax error.
func (p *Parser) Parse() ([]ast.Instruction, *source.SyntaxError) {
	var (
		program []ast.Instruction
		insn    ast.Instruction
		err     *source.SyntaxError
	)
	// Convert source file into tokens
	if p.tokens, err = Lex(p.srcfile); err != nil {
		return nil, err
	}
	// Continue going until all consumed
	for {
		p.skipBlankLines()
		//
		if p.lookahead().Kind == END_OF {
			break
		}
		//
		if insn, err = p.parseInstruction(); err != nil {
			return nil, err
		}
		// Each instruction must be terminated by a line break (or EOF).
		if err = p.parseEndOfLine(); err != nil {
			return nil, err
		}
		//
		program = append(program, insn)
	}
	//
	if len(program) == 0 {
		return nil, p.srcfile.SyntaxError(source.NewSpan(0, 0), "empty program")
	}
	//
	return program, nil
}

func (p *Parser) parseInstruction() (ast.Instruction, *source.SyntaxError) {
	var (
		start = p.index
		dest  ast.Name
		stack ast.Name
		src   ast.Value
		err   *source.SyntaxError
	)
	//
	keyword, err := p.expect(IDENTIFIER, "expected instruction keyword")
	if err != nil {
		return nil, err
	}
	//
	switch p.string(keyword) {
	case "READ":
		if dest, err = p.parseRegisterName(); err == nil {
			return ast.Read{Dest: dest, Loc: p.spanOf(start)}, nil
		}
	case "WRITE":
		if src, err = p.parseValue(); err == nil {
			return ast.Write{Src: src, Loc: p.spanOf(start)}, nil
		}
	case "SET":
		if dest, src, err = p.parseRegisterValuePair(); err == nil {
			return ast.Set{Dest: dest, Src: src, Loc: p.spanOf(start)}, nil
		}
	case "ADD":
		if dest, src, err = p.parseRegisterValuePair(); err == nil {
			return ast.Add{Dest: dest, Src: src, Loc: p.spanOf(start)}, nil
		}
	case "SUB":
		if dest, src, err = p.parseRegisterValuePair(); err == nil {
			return ast.Sub{Dest: dest, Src: src, Loc: p.spanOf(start)}, nil
		}
	case "MUL":
		if dest, src, err = p.parseRegisterValuePair(); err == nil {
			return ast.Mul{Dest: dest, Src: src, Loc: p.spanOf(start)}, nil
		}
	case "PUSH":
		if src, err = p.parseValue(); err != nil {
			return nil, err
		}
		//
		if stack, err = p.parseStackName(); err == nil {
			return ast.Push{Src: src, Stack: stack, Loc: p.spanOf(start)}, nil
		}
	case "POP":
		if stack, err = p.parseStackName(); err != nil {
			return nil, err
		}
		//
		if dest, err = p.parseRegisterName(); err == nil {
			return ast.Pop{Stack: stack, Dest: dest, Loc: p.spanOf(start)}, nil
		}
	default:
		err = p.syntaxError(keyword, fmt.Sprintf("invalid keyword %q", p.string(keyword)))
	}
	//
	return nil, err
}

// parseRegisterValuePair parses the "dest src" operand shape shared by SET,
// ADD, SUB and MUL.
func (p *Parser) parseRegisterValuePair() (ast.Name, ast.Value, *source.SyntaxError) {
	dest, err := p.parseRegisterName()
	if err != nil {
		return ast.Name{}, ast.Value{}, err
	}
	//
	src, err := p.parseValue()
	//
	return dest, src, err
}

// parseRegisterName parses an operand which must be a register name (user or
// read-only). Whether the name is in range for the hardware is not checked
// here; only its shape.
func (p *Parser) parseRegisterName() (ast.Name, *source.SyntaxError) {
	tok, err := p.expect(IDENTIFIER, "expected register")
	//
	if err != nil {
		return ast.Name{}, err
	}
	//
	text := p.string(tok)
	//
	if !isRegisterName(text) {
		return ast.Name{}, p.syntaxError(tok, fmt.Sprintf("malformed register %q", text))
	}
	//
	return ast.Name{Text: text, Span: tok.Span}, nil
}

// parseStackName parses an operand which must be a stack name.
func (p *Parser) parseStackName() (ast.Name, *source.SyntaxError) {
	tok, err := p.expect(IDENTIFIER, "expected stack")
	//
	if err != nil {
		return ast.Name{}, err
	}
	//
	text := p.string(tok)
	//
	if !isStackName(text) {
		return ast.Name{}, p.syntaxError(tok, fmt.Sprintf("malformed stack %q", text))
	}
	//
	return ast.Name{Text: text, Span: tok.Span}, nil
}

// parseValue parses a source operand: an integer literal or a register name.
func (p *Parser) parseValue() (ast.Value, *source.SyntaxError) {
	lookahead := p.lookahead()
	//
	switch lookahead.Kind {
	case NUMBER:
		p.index++
		//
		value, err := strconv.ParseInt(p.string(lookahead), 10, 32)
		if err != nil {
			return ast.Value{}, p.syntaxError(lookahead, fmt.Sprintf("literal %q out of 32-bit range", p.string(lookahead)))
		}
		//
		return ast.Literal(int32(value)), nil
	case IDENTIFIER:
		name, err := p.parseRegisterName()
		if err != nil {
			return ast.Value{}, err
		}
		//
		return ast.Register(name), nil
	default:
		return ast.Value{}, p.syntaxError(lookahead, "expected literal or register")
	}
}

// parseEndOfLine requires the current instruction to be followed by a line
// break or the end of the file. Anything else is trailing garbage, reported
// along with the offending text.
func (p *Parser) parseEndOfLine() *source.SyntaxError {
	lookahead := p.lookahead()
	//
	if lookahead.Kind == NEWLINE || lookahead.Kind == END_OF {
		return nil
	}
	// Gather everything up to the end of the line for the report.
	span := p.restOfLine()
	//
	return p.srcfile.SyntaxError(span, fmt.Sprintf("unexpected text %q after instruction", p.srcfile.Text(span)))
}

// skipBlankLines advances past any number of line breaks.
func (p *Parser) skipBlankLines() {
	for p.lookahead().Kind == NEWLINE {
		p.index++
	}
}

// restOfLine returns a span covering all tokens from the current position up
// to (but excluding) the next line break or EOF.
func (p *Parser) restOfLine() source.Span {
	var (
		start = p.tokens[p.index].Span.Start()
		end   = start
	)
	//
	for i := p.index; i < len(p.tokens); i++ {
		if k := p.tokens[i].Kind; k == NEWLINE || k == END_OF {
			break
		}
		//
		end = p.tokens[i].Span.End()
	}
	//
	return source.NewSpan(start, end)
}

// Get the text representing the given token as a string.
func (p *Parser) string(token lex.Token) string {
	return p.srcfile.Text(token.Span)
}

// Lookahead returns the next token. This must exist because EOF is always
// appended at the end of the token stream.
func (p *Parser) lookahead() lex.Token {
	return p.tokens[p.index]
}

// Expect returns an error if the next token is not what was expected.
func (p *Parser) expect(kind uint, msg string) (lex.Token, *source.SyntaxError) {
	lookahead := p.lookahead()
	//
	if lookahead.Kind != kind {
		return lookahead, p.syntaxError(lookahead, msg)
	}
	//
	p.index++
	//
	return lookahead, nil
}

// spanOf constructs a span from the start of a given token to the end of the
// previously consumed token.
func (p *Parser) spanOf(firstToken int) source.Span {
	start := p.tokens[firstToken].Span.Start()
	end := p.tokens[p.index-1].Span.End()
	//
	return source.NewSpan(start, end)
}

func (p *Parser) syntaxError(token lex.Token, msg string) *source.SyntaxError {
	return p.srcfile.SyntaxError(token.Span, msg)
}

// isRegisterName reports whether the given text has the shape of a register
// name: RX<digits>, RS<digits>, or RLI.
func isRegisterName(text string) bool {
	if text == "RLI" {
		return true
	}
	//
	if strings.HasPrefix(text, "RX") || strings.HasPrefix(text, "RS") {
		return len(text) > 2 && allDigits(text[2:])
	}
	//
	return false
}

// isStackName reports whether the given text has the shape of a stack name:
// S<digits>.
func isStackName(text string) bool {
	return strings.HasPrefix(text, "S") && len(text) > 1 && allDigits(text[1:])
}

func allDigits(text string) bool {
	for _, c := range text {
		if c < '0' || c > '9' {
			return false
		}
	}
	//
	return true
}
