// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as the
// catalog service and handlers to distinguish between different failure
// scenarios without inspecting driver errors.
package repository

import (
	"errors"
	"strings"
)

// ErrConcurrencyConflict is returned when an update matched no row,
// either because the row was removed or because its version moved on
// since it was read.  Callers decide which by re-checking existence.
var ErrConcurrencyConflict = errors.New("concurrency conflict")

// ErrUserNotFound is returned when a user id has no row.
var ErrUserNotFound = errors.New("user not found")

// maxInArgs bounds the ids bound into one IN list.  MySQL and SQLite
// both cap the placeholders of a single statement.
const maxInArgs = 1000

// chunkIDs splits ids into slices of at most size.
func chunkIDs(ids []int64, size int) [][]int64 {
	var out [][]int64
	for len(ids) > size {
		out = append(out, ids[:size])
		ids = ids[size:]
	}
	if len(ids) > 0 {
		out = append(out, ids)
	}
	return out
}

// inPlaceholders returns "?,?,?" for n arguments.
func inPlaceholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

// idArgs converts ids into query arguments.
func idArgs(ids []int64) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}
