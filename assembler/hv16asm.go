// hv16asm.go - Two-pass assembler for the HackVM instruction set

/*
(c) 2024 - 2026 Kade Angell
https://github.com/kadeangell/hackvm
License: GPLv3 or later
*/

/*
hv16asm.go - HV16 assembler

A two-pass assembler over a single shared lexer with one-token pushback.

Pass 1 walks the token stream statement by statement, recording label
addresses and constants and advancing the emission address by each
instruction's fixed size. Pass 2 re-walks the source and emits bytes:
opcode, register byte packing (Rd<<5)|(Rs<<2), then immediates
(little-endian when wider than 8 bits). Identifier operands resolve
through constants first, then labels; an identifier still unknown in an
address-sized slot records a fixup and emits a zero placeholder, and the
fixups are patched (or reported as undefined) after pass 2.

Mnemonics, register names and directive names are case-insensitive;
label and constant names are case-sensitive. Every diagnostic carries a
1-based line and column. No partial output is returned on failure.
*/

package assembler

import (
	"fmt"
	"strings"
)

// ------------------------------------------------------------------------------
// Diagnostics
// ------------------------------------------------------------------------------

type ErrorKind int

const (
	ErrInvalidMnemonic ErrorKind = iota
	ErrInvalidRegister
	ErrInvalidOperand
	ErrUnexpectedToken
	ErrUndefinedLabel
	ErrDuplicateLabel
	ErrNumberOutOfRange
	ErrInvalidDirective
	ErrUnterminatedString
)

func (k ErrorKind) String() string {
	switch k {
	case ErrInvalidMnemonic:
		return "InvalidMnemonic"
	case ErrInvalidRegister:
		return "InvalidRegister"
	case ErrInvalidOperand:
		return "InvalidOperand"
	case ErrUnexpectedToken:
		return "UnexpectedToken"
	case ErrUndefinedLabel:
		return "UndefinedLabel"
	case ErrDuplicateLabel:
		return "DuplicateLabel"
	case ErrNumberOutOfRange:
		return "NumberOutOfRange"
	case ErrInvalidDirective:
		return "InvalidDirective"
	case ErrUnterminatedString:
		return "UnterminatedString"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error is one assembly diagnostic: a kind, a 1-based source position and a
// human-readable message.
type Error struct {
	Kind    ErrorKind
	Line    int
	Col     int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Message)
}

// ------------------------------------------------------------------------------
// Assembler state
// ------------------------------------------------------------------------------

// fixup is a deferred patch: a 16-bit slot in the output buffer waiting for
// a label that was not yet known when the slot was emitted.
type fixup struct {
	offset int
	label  string
	line   int
	col    int
}

type Assembler struct {
	lx   *Lexer
	pass int
	addr uint16
	out  []byte

	labels    map[string]uint16
	constants map[string]int32
	fixups    []fixup
	errs      []*Error
}

// Assemble translates source text into a flat binary image. On success the
// image is returned with a nil error slice; on failure the image is nil and
// the collected diagnostics are returned.
func Assemble(source string) ([]byte, []*Error) {
	a := &Assembler{
		labels:    make(map[string]uint16),
		constants: make(map[string]int32),
	}
	if !a.runPass(source, 1) {
		return nil, a.errs
	}
	if !a.runPass(source, 2) {
		return nil, a.errs
	}
	if !a.resolveFixups() {
		return nil, a.errs
	}
	return a.out, nil
}

func (a *Assembler) errorf(kind ErrorKind, tok Token, format string, args ...interface{}) {
	a.errs = append(a.errs, &Error{
		Kind:    kind,
		Line:    tok.Line,
		Col:     tok.Col,
		Message: fmt.Sprintf(format, args...),
	})
}

// next wraps the lexer, converting lexical diagnostics into collected errors.
func (a *Assembler) next() (Token, bool) {
	tok, err := a.lx.Next()
	if err != nil {
		a.errs = append(a.errs, err)
		return Token{}, false
	}
	return tok, true
}

// ------------------------------------------------------------------------------
// Statement walk
// ------------------------------------------------------------------------------

func (a *Assembler) runPass(source string, pass int) bool {
	a.lx = NewLexer(source)
	a.pass = pass
	a.addr = 0

	for {
		tok, ok := a.next()
		if !ok {
			return false
		}
		switch tok.Kind {
		case TokenEOF:
			return true
		case TokenNewline:
			continue
		case TokenDot:
			if !a.statementDirective() {
				return false
			}
		case TokenIdent:
			peek, ok := a.next()
			if !ok {
				return false
			}
			if peek.Kind == TokenColon {
				if !a.defineLabel(tok) {
					return false
				}
				// An instruction may follow on the same line.
				continue
			}
			a.lx.Unread(peek)
			if !a.statementInstruction(tok) {
				return false
			}
		default:
			a.errorf(ErrUnexpectedToken, tok, "unexpected %s", tok.Kind)
			return false
		}
	}
}

func (a *Assembler) defineLabel(tok Token) bool {
	if a.pass != 1 {
		return true
	}
	if _, exists := a.labels[tok.Text]; exists {
		a.errorf(ErrDuplicateLabel, tok, "duplicate label %q", tok.Text)
		return false
	}
	a.labels[tok.Text] = a.addr
	return true
}

// endOfStatement consumes the statement terminator (newline or EOF).
func (a *Assembler) endOfStatement() bool {
	tok, ok := a.next()
	if !ok {
		return false
	}
	if tok.Kind == TokenNewline || tok.Kind == TokenEOF {
		return true
	}
	a.errorf(ErrUnexpectedToken, tok, "unexpected %s after statement", tok.Kind)
	return false
}

// skipToEndOfLine discards the rest of the line; pass 1 does not validate
// operands, only sizes.
func (a *Assembler) skipToEndOfLine() bool {
	for {
		tok, ok := a.next()
		if !ok {
			return false
		}
		if tok.Kind == TokenNewline || tok.Kind == TokenEOF {
			return true
		}
	}
}

// ------------------------------------------------------------------------------
// Emission
// ------------------------------------------------------------------------------

// emit writes one byte at the current emission address, growing the output
// buffer with zero padding when the address runs ahead of it.
func (a *Assembler) emit(b byte) {
	for len(a.out) < int(a.addr) {
		a.out = append(a.out, 0)
	}
	if int(a.addr) < len(a.out) {
		a.out[a.addr] = b
	} else {
		a.out = append(a.out, b)
	}
	a.addr++
}

func (a *Assembler) emit16(v uint16) {
	a.emit(byte(v))
	a.emit(byte(v >> 8))
}

// ------------------------------------------------------------------------------
// Operands
// ------------------------------------------------------------------------------

// operand is a resolved immediate: either a value, or a pending label name
// for an address-sized slot.
type operand struct {
	value     int64
	fixupName string
	isNumber  bool // literal number or char: subject to range checks
	tok       Token
}

// parseRegister accepts R0..R7, case-insensitively.
func (a *Assembler) parseRegister() (byte, bool) {
	tok, ok := a.next()
	if !ok {
		return 0, false
	}
	if tok.Kind == TokenIdent {
		name := strings.ToUpper(tok.Text)
		if len(name) == 2 && name[0] == 'R' && name[1] >= '0' && name[1] <= '7' {
			return name[1] - '0', true
		}
	}
	a.errorf(ErrInvalidRegister, tok, "expected register R0..R7")
	return 0, false
}

func (a *Assembler) expect(kind TokenKind) bool {
	tok, ok := a.next()
	if !ok {
		return false
	}
	if tok.Kind != kind {
		a.errorf(ErrUnexpectedToken, tok, "expected %s, found %s", kind, tok.Kind)
		return false
	}
	return true
}

// parseImmOperand reads a number (with optional unary minus), character
// literal or identifier. Identifiers resolve through constants, then labels;
// when allowFixup is set an unknown identifier becomes a pending fixup
// instead of an error.
func (a *Assembler) parseImmOperand(allowFixup bool) (operand, bool) {
	tok, ok := a.next()
	if !ok {
		return operand{}, false
	}

	switch tok.Kind {
	case TokenMinus:
		num, ok := a.next()
		if !ok {
			return operand{}, false
		}
		if num.Kind != TokenNumber {
			a.errorf(ErrUnexpectedToken, num, "expected number after '-'")
			return operand{}, false
		}
		return operand{value: -num.Value, isNumber: true, tok: tok}, true

	case TokenNumber, TokenChar:
		return operand{value: tok.Value, isNumber: true, tok: tok}, true

	case TokenIdent:
		if v, ok := a.constants[tok.Text]; ok {
			return operand{value: int64(v), tok: tok}, true
		}
		if addr, ok := a.labels[tok.Text]; ok {
			return operand{value: int64(addr), tok: tok}, true
		}
		if allowFixup {
			return operand{fixupName: tok.Text, tok: tok}, true
		}
		a.errorf(ErrUndefinedLabel, tok, "undefined label or constant %q", tok.Text)
		return operand{}, false
	}

	a.errorf(ErrInvalidOperand, tok, "expected immediate operand, found %s", tok.Kind)
	return operand{}, false
}

// emitImm16 writes a 16-bit immediate, recording a fixup with a zero
// placeholder when the operand is a not-yet-defined label. Literal numbers
// must fit 16 bits; constants truncate where emitted.
func (a *Assembler) emitImm16(op operand) bool {
	if op.fixupName != "" {
		a.fixups = append(a.fixups, fixup{
			offset: int(a.addr),
			label:  op.fixupName,
			line:   op.tok.Line,
			col:    op.tok.Col,
		})
		a.emit16(0)
		return true
	}
	if op.isNumber && (op.value < -32768 || op.value > 0xFFFF) {
		a.errorf(ErrNumberOutOfRange, op.tok, "value %d does not fit in 16 bits", op.value)
		return false
	}
	a.emit16(uint16(op.value))
	return true
}

// parseImm8 reads an 8-bit immediate; the value must fit in -128..255 after
// sign extension.
func (a *Assembler) parseImm8() (byte, bool) {
	op, ok := a.parseImmOperand(false)
	if !ok {
		return 0, false
	}
	if op.value < -128 || op.value > 255 {
		a.errorf(ErrNumberOutOfRange, op.tok, "value %d does not fit in 8 bits", op.value)
		return 0, false
	}
	return byte(op.value), true
}

// parseShiftCount reads a shift distance; it lives in the 3-bit Rs field, so
// only 0..7 encode.
func (a *Assembler) parseShiftCount() (byte, bool) {
	op, ok := a.parseImmOperand(false)
	if !ok {
		return 0, false
	}
	if op.value < 0 || op.value > 7 {
		a.errorf(ErrNumberOutOfRange, op.tok, "shift count %d out of range 0..7", op.value)
		return 0, false
	}
	return byte(op.value), true
}

// ------------------------------------------------------------------------------
// Instructions
// ------------------------------------------------------------------------------

func (a *Assembler) statementInstruction(tok Token) bool {
	name := strings.ToUpper(tok.Text)
	info, ok := lookupMnemonic(name)
	if !ok {
		a.errorf(ErrInvalidMnemonic, tok, "unknown instruction %q", tok.Text)
		return false
	}

	if a.pass == 1 {
		a.addr += info.size
		return a.skipToEndOfLine()
	}

	a.emit(info.opcode)

	switch info.shape {
	case shapeNone:

	case shapeRs:
		rs, ok := a.parseRegister()
		if !ok {
			return false
		}
		a.emit(rs << 2)

	case shapeRd:
		rd, ok := a.parseRegister()
		if !ok {
			return false
		}
		a.emit(rd << 5)

	case shapeRdRs:
		rd, ok := a.parseRegister()
		if !ok || !a.expect(TokenComma) {
			return false
		}
		rs, ok := a.parseRegister()
		if !ok {
			return false
		}
		a.emit(rd<<5 | rs<<2)

	case shapeRdImm16:
		rd, ok := a.parseRegister()
		if !ok || !a.expect(TokenComma) {
			return false
		}
		a.emit(rd << 5)
		op, ok := a.parseImmOperand(true)
		if !ok || !a.emitImm16(op) {
			return false
		}

	case shapeRdImm8:
		rd, ok := a.parseRegister()
		if !ok || !a.expect(TokenComma) {
			return false
		}
		a.emit(rd << 5)
		imm, ok := a.parseImm8()
		if !ok {
			return false
		}
		a.emit(imm)

	case shapeRdShift:
		rd, ok := a.parseRegister()
		if !ok || !a.expect(TokenComma) {
			return false
		}
		count, ok := a.parseShiftCount()
		if !ok {
			return false
		}
		a.emit(rd<<5 | count<<2)

	case shapeLoad:
		rd, ok := a.parseRegister()
		if !ok || !a.expect(TokenComma) || !a.expect(TokenLBracket) {
			return false
		}
		rs, ok := a.parseRegister()
		if !ok || !a.expect(TokenRBracket) {
			return false
		}
		a.emit(rd<<5 | rs<<2)

	case shapeStore:
		if !a.expect(TokenLBracket) {
			return false
		}
		rd, ok := a.parseRegister()
		if !ok || !a.expect(TokenRBracket) || !a.expect(TokenComma) {
			return false
		}
		rs, ok := a.parseRegister()
		if !ok {
			return false
		}
		a.emit(rd<<5 | rs<<2)

	case shapeAddr16:
		op, ok := a.parseImmOperand(true)
		if !ok || !a.emitImm16(op) {
			return false
		}
	}

	return a.endOfStatement()
}

// ------------------------------------------------------------------------------
// Directives
// ------------------------------------------------------------------------------

// parseDirectiveValue reads a numeric directive argument: a number, char or
// already-defined constant/label.
func (a *Assembler) parseDirectiveValue() (int64, Token, bool) {
	op, ok := a.parseImmOperand(false)
	if !ok {
		return 0, Token{}, false
	}
	return op.value, op.tok, true
}

func (a *Assembler) statementDirective() bool {
	tok, ok := a.next()
	if !ok {
		return false
	}
	if tok.Kind != TokenIdent {
		a.errorf(ErrInvalidDirective, tok, "expected directive name after '.'")
		return false
	}

	switch strings.ToUpper(tok.Text) {
	case "ORG":
		v, vtok, ok := a.parseDirectiveValue()
		if !ok {
			return false
		}
		if v < 0 || v > 0xFFFF {
			a.errorf(ErrNumberOutOfRange, vtok, "origin %d out of range", v)
			return false
		}
		if a.pass == 2 {
			for len(a.out) < int(v) {
				a.out = append(a.out, 0)
			}
		}
		a.addr = uint16(v)
		return a.endOfStatement()

	case "EQU":
		nameTok, ok := a.next()
		if !ok {
			return false
		}
		if nameTok.Kind != TokenIdent {
			a.errorf(ErrInvalidDirective, nameTok, "expected constant name")
			return false
		}
		if !a.expect(TokenComma) {
			return false
		}
		v, _, ok := a.parseDirectiveValue()
		if !ok {
			return false
		}
		a.constants[nameTok.Text] = int32(v)
		return a.endOfStatement()

	case "DB":
		return a.directiveData(1)

	case "DW":
		return a.directiveData(2)

	case "DS":
		v, vtok, ok := a.parseDirectiveValue()
		if !ok {
			return false
		}
		if v < 0 || v > 0xFFFF {
			a.errorf(ErrNumberOutOfRange, vtok, "reservation size %d out of range", v)
			return false
		}
		if a.pass == 1 {
			a.addr += uint16(v)
		} else {
			for i := int64(0); i < v; i++ {
				a.emit(0)
			}
		}
		return a.endOfStatement()
	}

	a.errorf(ErrInvalidDirective, tok, "unknown directive %q", tok.Text)
	return false
}

// directiveData handles .db (width 1) and .dw (width 2): a comma-separated
// list of numbers, characters, identifiers and (for .db) strings. A .dw item
// may be a forward label reference; it goes through the fixup list like an
// instruction address operand.
func (a *Assembler) directiveData(width uint16) bool {
	for {
		tok, ok := a.next()
		if !ok {
			return false
		}

		switch tok.Kind {
		case TokenString:
			if width != 1 {
				a.errorf(ErrInvalidOperand, tok, "string literal not allowed in .dw")
				return false
			}
			if a.pass == 1 {
				a.addr += uint16(len(tok.Text))
			} else {
				for i := 0; i < len(tok.Text); i++ {
					a.emit(tok.Text[i])
				}
			}

		case TokenNumber, TokenChar, TokenIdent, TokenMinus:
			a.lx.Unread(tok)
			if a.pass == 1 {
				if !a.skipDataItem() {
					return false
				}
				a.addr += width
			} else if width == 1 {
				op, ok := a.parseImmOperand(false)
				if !ok {
					return false
				}
				if op.isNumber && (op.value < -128 || op.value > 255) {
					a.errorf(ErrNumberOutOfRange, op.tok, "value %d does not fit in a byte", op.value)
					return false
				}
				a.emit(byte(op.value))
			} else {
				op, ok := a.parseImmOperand(true)
				if !ok || !a.emitImm16(op) {
					return false
				}
			}

		default:
			a.errorf(ErrInvalidOperand, tok, "expected data item, found %s", tok.Kind)
			return false
		}

		sep, ok := a.next()
		if !ok {
			return false
		}
		if sep.Kind == TokenNewline || sep.Kind == TokenEOF {
			return true
		}
		if sep.Kind != TokenComma {
			a.errorf(ErrUnexpectedToken, sep, "expected ',' between data items")
			return false
		}
	}
}

// skipDataItem consumes one data item without resolving it; pass 1 only
// needs the count.
func (a *Assembler) skipDataItem() bool {
	tok, ok := a.next()
	if !ok {
		return false
	}
	if tok.Kind == TokenMinus {
		tok, ok = a.next()
		if !ok {
			return false
		}
		if tok.Kind != TokenNumber {
			a.errorf(ErrUnexpectedToken, tok, "expected number after '-'")
			return false
		}
	}
	return true
}

// ------------------------------------------------------------------------------
// Fixups
// ------------------------------------------------------------------------------

// resolveFixups patches every recorded 16-bit slot with its label address.
// A label still unknown here is fatal.
func (a *Assembler) resolveFixups() bool {
	ok := true
	for _, f := range a.fixups {
		addr, exists := a.labels[f.label]
		if !exists {
			a.errs = append(a.errs, &Error{
				Kind:    ErrUndefinedLabel,
				Line:    f.line,
				Col:     f.col,
				Message: fmt.Sprintf("undefined label %q", f.label),
			})
			ok = false
			continue
		}
		a.out[f.offset] = byte(addr)
		a.out[f.offset+1] = byte(addr >> 8)
	}
	return ok
}
