package main

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

type status int

const (
	statusInfo status = iota
	statusOK
	statusWarn
	statusFail
)

var statusStyle = map[status]struct{ color, glyph string }{
	statusInfo: {"\033[0;34m", "ℹ"},
	statusOK:   {"\033[0;32m", "✓"},
	statusWarn: {"\033[1;33m", "⚠"},
	statusFail: {"\033[0;31m", "✗"},
}

const ansiReset = "\033[0m"

func report(s status, format string, a ...interface{}) {
	style := statusStyle[s]
	fmt.Printf("%s%s %s%s\n", style.color, style.glyph, fmt.Sprintf(format, a...), ansiReset)
}

func note(format string, a ...interface{})    { report(statusInfo, format, a...) }
func success(format string, a ...interface{}) { report(statusOK, format, a...) }
func warn(format string, a ...interface{})    { report(statusWarn, format, a...) }
func fail(format string, a ...interface{})    { report(statusFail, format, a...) }

func section(title string) {
	fmt.Printf("\n%s== %s ==%s\n", statusStyle[statusWarn].color, title, ansiReset)
}

// shellMeta are rejected in tool arguments even though exec does not use a shell
var shellMeta = []string{"|", "`", "$(", "&&", "||", ">", "<", "\n", "\r", "\x00"}

var errUnsafeArg = errors.New("unsafe argument")

func checkArgs(args ...string) error {
	for _, arg := range args {
		for _, meta := range shellMeta {
			if strings.Contains(arg, meta) {
				return fmt.Errorf("%w: %q contains %q", errUnsafeArg, arg, meta)
			}
		}
	}
	return nil
}

// toolOutput runs a local binary and returns its trimmed stdout
func toolOutput(name string, args ...string) (string, error) {
	if err := checkArgs(append([]string{name}, args...)...); err != nil {
		return "", err
	}
	// #nosec G204 -- name and args are fixed by the calling command
	out, err := exec.Command(name, args...).Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
