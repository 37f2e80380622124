//go:build headless

// video_backend_headless.go - Headless front-end stub for HackVM

/*
(c) 2024 - 2026 Kade Angell
https://github.com/kadeangell/hackvm
License: GPLv3 or later
*/

package main

import "errors"

// NewFrontend in a headless build has no window to offer; use the terminal
// front-end instead.
func NewFrontend(config DisplayConfig) (Frontend, error) {
	return nil, errors.New("built without a video backend; run with --headless")
}
