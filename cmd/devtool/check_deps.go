package main

import (
	"fmt"
	"strings"
)

type CheckDepsCommand struct{}

func (c *CheckDepsCommand) Name() string {
	return "check-deps"
}

func (c *CheckDepsCommand) Description() string {
	return "Check for required dependencies"
}

func (c *CheckDepsCommand) Run(args []string) error {
	section("Checking dependencies...")

	hasError := false

	// Output: go version go1.24.0 linux/amd64
	if version, err := toolOutput("go", "version"); err == nil {
		success("Go installed: %s", field(version, 2))
	} else {
		fail("Go not found! Install from: https://go.dev/dl/")
		hasError = true
	}

	// Output: Docker version 24.0.5, build ced0996
	if version, err := toolOutput("docker", "--version"); err == nil {
		success("Docker installed: %s", strings.TrimRight(field(version, 2), ","))
	} else {
		warn("Docker not found (needed for integration tests)")
	}

	// Output: goose version: v3.26.0
	if version, err := toolOutput("goose", "--version"); err == nil {
		success("Goose installed: %s", strings.TrimPrefix(field(version, -1), "version:"))
	} else {
		note("Goose CLI not found (optional, 'devtool migrate' embeds it)")
	}

	if hasError {
		return fmt.Errorf("missing required dependencies")
	}
	return nil
}

// field returns the i-th whitespace separated field, counting from the end when negative
func field(s string, i int) string {
	parts := strings.Fields(s)
	if i < 0 {
		i += len(parts)
	}
	if i < 0 || i >= len(parts) {
		return s
	}
	return parts[i]
}
