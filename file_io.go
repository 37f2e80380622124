// file_io.go - Program image loading for HackVM

/*
(c) 2024 - 2026 Kade Angell
https://github.com/kadeangell/hackvm
License: GPLv3 or later
*/

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/kadeangell/hackvm/assembler"
)

// ReadProgramImage loads a flat binary image from disk. Byte 0 of the file
// becomes byte 0 of guest memory; there is no header, relocation or symbol
// table. Images beyond the 16KB program region are silently truncated.
func ReadProgramImage(path string) ([]byte, error) {
	image, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(image) > MAX_PROG_LEN {
		image = image[:MAX_PROG_LEN]
	}
	return image, nil
}

// LoadImage reads a program from disk, assembling it first when the path
// ends in .asm. Assembly diagnostics are reported one per line, prefixed
// with the file name.
func LoadImage(path string) ([]byte, error) {
	if !strings.HasSuffix(strings.ToLower(path), ".asm") {
		return ReadProgramImage(path)
	}
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	image, errs := assembler.Assemble(string(source))
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "%s:%v\n", path, e)
		}
		return nil, fmt.Errorf("assembly failed with %d error(s)", len(errs))
	}
	return image, nil
}
