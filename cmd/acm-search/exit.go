// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"

	"github.com/pdiddy/acm-search/internal/acm"
	"github.com/pdiddy/acm-search/internal/output"
)

// Exit codes, one per failure kind.
const (
	exitFailure        = 1
	exitDriverNotFound = 2
	exitNavigation     = 3
	exitResultsTimeout = 4
	exitParse          = 5
	exitWrite          = 6
)

// exitCode maps a command error to the process exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, acm.ErrDriverNotFound):
		return exitDriverNotFound
	case errors.Is(err, acm.ErrNavigation):
		return exitNavigation
	case errors.Is(err, acm.ErrResultsTimeout):
		return exitResultsTimeout
	case errors.Is(err, acm.ErrParse):
		return exitParse
	case errors.Is(err, output.ErrWrite):
		return exitWrite
	default:
		return exitFailure
	}
}
