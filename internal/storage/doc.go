// Package storage provides the persistence backends for the template store:
// a JSON file, a SQLite key/value table, a Redis key and an in-memory
// record. Every backend stores one opaque record under a fixed key and
// reports a missing record as nil data with a nil error.
package storage
