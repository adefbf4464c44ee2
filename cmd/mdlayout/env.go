package main

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/alnah/go-mdlayout"
	"github.com/alnah/go-mdlayout/internal/config"
	"github.com/alnah/go-mdlayout/internal/storage"
)

// PDFSurface is a preview surface that can be opened and printed.
type PDFSurface interface {
	mdlayout.Surface
	Open(ctx context.Context, preview *mdlayout.Preview) error
	PDF(ctx context.Context) ([]byte, error)
	Close() error
}

// Compile-time interface implementation check.
var _ PDFSurface = (*mdlayout.RodSurface)(nil)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now    func() time.Time
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Getenv func(string) string

	// Config is used when no --config flag or MDLAYOUT_CONFIG is given.
	// Nil means config.DefaultConfig.
	Config *config.Config

	OpenStorage   func(storage.Options) (storage.Backend, error)
	NewPDFSurface func(shell *mdlayout.DocumentSurface, timeout time.Duration) PDFSurface
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:         time.Now,
		Stdin:       os.Stdin,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		Getenv:      os.Getenv,
		OpenStorage: storage.New,
		NewPDFSurface: func(shell *mdlayout.DocumentSurface, timeout time.Duration) PDFSurface {
			return mdlayout.NewRodSurface(shell, timeout)
		},
	}
}
