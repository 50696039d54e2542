package main

import (
	"io"
	"os"
	"time"

	manualpdf "github.com/alnah/go-manualpdf"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, and converter pool construction.
type Environment struct {
	Now     func() time.Time
	Stdout  io.Writer
	Stderr  io.Writer
	NewPool func(size int, opts ...manualpdf.Option) Pool
}

// DefaultEnv returns the production environment backed by headless Chrome.
func DefaultEnv() *Environment {
	return &Environment{
		Now:     time.Now,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		NewPool: newConverterPool,
	}
}
