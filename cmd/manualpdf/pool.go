package main

import (
	"context"

	manualpdf "github.com/alnah/go-manualpdf"
)

// CLIConverter is the interface for the conversion service.
type CLIConverter interface {
	Convert(ctx context.Context, input manualpdf.Input) (*manualpdf.ConvertResult, error)
}

// Compile-time interface implementation check.
var _ CLIConverter = (*manualpdf.Converter)(nil)

// Pool abstracts converter pool operations for testability.
type Pool interface {
	Acquire() (CLIConverter, error)
	Release(CLIConverter)
	Size() int
	Close() error
}

// converterPool adapts manualpdf.ConverterPool to Pool.
type converterPool struct {
	pool *manualpdf.ConverterPool
}

// Compile-time check that converterPool implements Pool.
var _ Pool = (*converterPool)(nil)

func newConverterPool(size int, opts ...manualpdf.Option) Pool {
	return &converterPool{pool: manualpdf.NewConverterPool(size, opts...)}
}

func (p *converterPool) Acquire() (CLIConverter, error) {
	conv, err := p.pool.Acquire()
	if err != nil {
		return nil, err
	}
	return conv, nil
}

func (p *converterPool) Release(c CLIConverter) {
	if conv, ok := c.(*manualpdf.Converter); ok {
		p.pool.Release(conv)
	}
}

func (p *converterPool) Size() int {
	return p.pool.Size()
}

func (p *converterPool) Close() error {
	return p.pool.Close()
}
