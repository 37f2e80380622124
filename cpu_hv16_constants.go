// cpu_hv16_constants.go - HV16 CPU opcode and cycle tables

/*
(c) 2024 - 2026 Kade Angell
https://github.com/kadeangell/hackvm
License: GPLv3 or later
*/

package main

// ------------------------------------------------------------------------------
// System and Console Instructions
// ------------------------------------------------------------------------------
const (
	OP_NOP     = 0x00 // No operation
	OP_HALT    = 0x01 // Halt processor
	OP_DISPLAY = 0x02 // Request display presentation
	OP_RET     = 0x03 // Return from subroutine
	OP_PUSHF   = 0x04 // Push flags
	OP_POPF    = 0x05 // Pop flags
	OP_PUTC    = 0x06 // Emit character from register
	OP_PUTS    = 0x07 // Emit NUL-terminated string from memory
	OP_PUTI    = 0x08 // Emit unsigned decimal
	OP_PUTX    = 0x09 // Emit hexadecimal
)

// ------------------------------------------------------------------------------
// Data Movement
// ------------------------------------------------------------------------------
const (
	OP_MOV    = 0x10 // Rd <- Rs
	OP_MOVI   = 0x11 // Rd <- imm16
	OP_LOAD   = 0x12 // Rd <- mem16[Rs]
	OP_LOADB  = 0x13 // Rd <- zero-extended mem8[Rs]
	OP_STORE  = 0x14 // mem16[Rd] <- Rs
	OP_STOREB = 0x15 // mem8[Rd] <- low byte of Rs
	OP_PUSH   = 0x16 // Push Rs
	OP_POP    = 0x17 // Pop into Rd
)

// ------------------------------------------------------------------------------
// Arithmetic Operations
// ------------------------------------------------------------------------------
const (
	OP_ADD  = 0x20 // Rd += Rs
	OP_ADDI = 0x21 // Rd += sign-extended imm8
	OP_SUB  = 0x22 // Rd -= Rs
	OP_SUBI = 0x23 // Rd -= sign-extended imm8
	OP_MUL  = 0x24 // Rd = low 16 bits of Rd * Rs
	OP_DIV  = 0x25 // Rd = Rd / Rs, R0 = remainder
	OP_INC  = 0x26 // Rd += 1
	OP_DEC  = 0x27 // Rd -= 1
	OP_NEG  = 0x28 // Rd = 0 - Rd
)

// ------------------------------------------------------------------------------
// Logical and Shift Operations
// ------------------------------------------------------------------------------
const (
	OP_AND  = 0x30 // Rd &= Rs
	OP_ANDI = 0x31 // Rd &= sign-extended imm8
	OP_OR   = 0x32 // Rd |= Rs
	OP_ORI  = 0x33 // Rd |= sign-extended imm8
	OP_XOR  = 0x34 // Rd ^= Rs
	OP_XORI = 0x35 // Rd ^= sign-extended imm8
	OP_NOT  = 0x36 // Rd = ^Rd
	OP_SHL  = 0x37 // Rd <<= Rs & 0x0F
	OP_SHR  = 0x38 // Rd >>= Rs & 0x0F (logical)
	OP_SAR  = 0x39 // Rd >>= Rs & 0x0F (arithmetic)
	OP_SHLI = 0x3A // Rd <<= imm3 (in the Rs field)
	OP_SHRI = 0x3B // Rd >>= imm3 (logical)
	OP_SARI = 0x3C // Rd >>= imm3 (arithmetic)
)

// ------------------------------------------------------------------------------
// Compare and Test
// ------------------------------------------------------------------------------
const (
	OP_CMP   = 0x40 // Flags from Rd - Rs
	OP_CMPI  = 0x41 // Flags from Rd - sign-extended imm8
	OP_TEST  = 0x42 // Flags from Rd & Rs
	OP_TESTI = 0x43 // Flags from Rd & sign-extended imm8
)

// ------------------------------------------------------------------------------
// Control Flow
// ------------------------------------------------------------------------------
const (
	OP_JMP  = 0x50 // Unconditional jump to addr16
	OP_JMPR = 0x51 // Unconditional jump to Rs
	OP_JZ   = 0x52 // Jump if Z
	OP_JNZ  = 0x53 // Jump if not Z
	OP_JC   = 0x54 // Jump if C
	OP_JNC  = 0x55 // Jump if not C
	OP_JN   = 0x56 // Jump if N
	OP_JNN  = 0x57 // Jump if not N
	OP_JO   = 0x58 // Jump if V
	OP_JNO  = 0x59 // Jump if not V
	OP_JA   = 0x5A // Jump if above (unsigned >)
	OP_JBE  = 0x5B // Jump if below or equal (unsigned <=)
	OP_JG   = 0x5C // Jump if greater (signed >)
	OP_JGE  = 0x5D // Jump if greater or equal (signed >=)
	OP_JL   = 0x5E // Jump if less (signed <)
	OP_JLE  = 0x5F // Jump if less or equal (signed <=)

	OP_CALL  = 0x60 // Push return address, jump to addr16
	OP_CALLR = 0x61 // Push return address, jump to Rs
)

// ------------------------------------------------------------------------------
// Block Operations
// ------------------------------------------------------------------------------
const (
	OP_MEMCPY = 0x70 // Copy R2 bytes from [R0] to [R1]
	OP_MEMSET = 0x71 // Fill R2 bytes at [R0] with low byte of R1
)

// ------------------------------------------------------------------------------
// Flag Bits (PUSHF/POPF layout)
// ------------------------------------------------------------------------------
const (
	FLAG_Z = 0x01 // Zero
	FLAG_C = 0x02 // Carry / borrow
	FLAG_N = 0x04 // Negative (bit 15)
	FLAG_V = 0x08 // Signed overflow
)

// Base cycle cost per opcode. PUTS and the block operations add their
// per-byte cost at execute time, and taken conditional jumps add 2 on top of
// the not-taken base. Opcodes absent from the table decode as a 1-cycle NOP.
var cycleCost = [256]uint32{
	OP_NOP:     1,
	OP_HALT:    1,
	OP_DISPLAY: 1000,
	OP_RET:     5,
	OP_PUSHF:   3,
	OP_POPF:    3,
	OP_PUTC:    2,
	OP_PUTS:    3,
	OP_PUTI:    8,
	OP_PUTX:    6,
	OP_MOV:     2,
	OP_MOVI:    3,
	OP_LOAD:    4,
	OP_LOADB:   3,
	OP_STORE:   4,
	OP_STOREB:  3,
	OP_PUSH:    4,
	OP_POP:     4,
	OP_ADD:     2,
	OP_ADDI:    3,
	OP_SUB:     2,
	OP_SUBI:    3,
	OP_MUL:     8,
	OP_DIV:     12,
	OP_INC:     2,
	OP_DEC:     2,
	OP_NEG:     2,
	OP_AND:     2,
	OP_ANDI:    3,
	OP_OR:      2,
	OP_ORI:     3,
	OP_XOR:     2,
	OP_XORI:    3,
	OP_NOT:     2,
	OP_SHL:     2,
	OP_SHR:     2,
	OP_SAR:     2,
	OP_SHLI:    2,
	OP_SHRI:    2,
	OP_SARI:    2,
	OP_CMP:     2,
	OP_CMPI:    3,
	OP_TEST:    2,
	OP_TESTI:   3,
	OP_JMP:     3,
	OP_JMPR:    2,
	OP_JZ:      2,
	OP_JNZ:     2,
	OP_JC:      2,
	OP_JNC:     2,
	OP_JN:      2,
	OP_JNN:     2,
	OP_JO:      2,
	OP_JNO:     2,
	OP_JA:      2,
	OP_JBE:     2,
	OP_JG:      2,
	OP_JGE:     2,
	OP_JL:      2,
	OP_JLE:     2,
	OP_CALL:    6,
	OP_CALLR:   5,
	OP_MEMCPY:  5,
	OP_MEMSET:  5,
}
