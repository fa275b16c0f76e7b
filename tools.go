//go:build tools
// +build tools

// Package chatstore pins the code generators used by go:generate.
package chatstore

import (
	_ "go.uber.org/mock/mockgen"
)
