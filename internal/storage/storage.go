package storage

import (
	"errors"
	"fmt"
	"strings"
)

// Backend names accepted by New.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// DefaultKey is used when no record key is configured.
const DefaultKey = "mdlayout.templates"

// Sentinel errors for backend construction.
var (
	ErrUnknownBackend = errors.New("unknown storage backend")
	ErrMissingPath    = errors.New("storage path is required")
	ErrMissingAddr    = errors.New("redis address is required")
)

// Backend reads and writes one record. Close releases any held connection.
type Backend interface {
	Read() ([]byte, error)
	Write(data []byte) error
	Close() error
}

// Options selects and configures a backend.
type Options struct {
	Backend string // file, sqlite, redis or memory; empty means file
	Key     string // record key for sqlite and redis
	Path    string // file or database path

	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// Backends lists the accepted backend names.
func Backends() []string {
	return []string{BackendFile, BackendSQLite, BackendRedis, BackendMemory}
}

// New builds the backend named in opts.
func New(opts Options) (Backend, error) {
	switch strings.ToLower(opts.Backend) {
	case "", BackendFile:
		if opts.Path == "" {
			return nil, fmt.Errorf("%w: file backend", ErrMissingPath)
		}
		return NewFile(opts.Path), nil
	case BackendSQLite:
		if opts.Path == "" {
			return nil, fmt.Errorf("%w: sqlite backend", ErrMissingPath)
		}
		return NewSQLite(opts.Path, opts.Key)
	case BackendRedis:
		if opts.RedisAddr == "" {
			return nil, ErrMissingAddr
		}
		return NewRedis(RedisOptions{
			Addr:     opts.RedisAddr,
			Password: opts.RedisPassword,
			DB:       opts.RedisDB,
			Key:      opts.Key,
		}), nil
	case BackendMemory:
		return NewMemory(nil), nil
	default:
		return nil, fmt.Errorf("%w: %q (valid: %s)", ErrUnknownBackend, opts.Backend, strings.Join(Backends(), ", "))
	}
}
