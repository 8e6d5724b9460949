//go:build tools

// Package tools pins the goose and swag CLIs in go.mod so migrations and the
// swagger docs are generated with the same versions the code links against.
package tools

import (
	_ "github.com/pressly/goose/v3/cmd/goose"
	_ "github.com/swaggo/swag/cmd/swag"
)
