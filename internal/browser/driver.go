// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package browser runs the Chrome/Chromium session the searcher drives.
// It resolves the browser executable (explicit path or PATH lookup) and
// exposes a Chrome page controlled over the DevTools protocol.
package browser

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrDriverNotFound is returned when no usable browser executable exists at
// the configured path or on PATH.
var ErrDriverNotFound = errors.New("browser driver not found")

// candidates lists the executable names tried on PATH, in preference order.
var candidates = []string{
	"google-chrome",
	"google-chrome-stable",
	"chromium",
	"chromium-browser",
	"chrome",
	"headless-shell",
}

// lookPather abstracts executable lookup for testing.
type lookPather interface {
	LookPath(file string) (string, error)
}

// osLookPather is the production lookPather backed by os/exec.
type osLookPather struct{}

func (osLookPather) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

var defaultLookPath lookPather = osLookPather{}

// ResolveDriver returns the browser executable to launch. An explicit path
// must point at an executable file; an empty path searches PATH for the
// known Chrome/Chromium names. Failures wrap ErrDriverNotFound.
func ResolveDriver(path string) (string, error) {
	return resolveDriver(defaultLookPath, path)
}

func resolveDriver(lp lookPather, path string) (string, error) {
	if path = strings.TrimSpace(path); path != "" {
		resolved, err := lp.LookPath(path)
		if err != nil {
			return "", fmt.Errorf("%w: %s: %v", ErrDriverNotFound, path, err)
		}
		return resolved, nil
	}

	for _, name := range candidates {
		if resolved, err := lp.LookPath(name); err == nil {
			return resolved, nil
		}
	}
	return "", fmt.Errorf("%w: none of %s found on PATH; pass an explicit path",
		ErrDriverNotFound, strings.Join(candidates, ", "))
}
