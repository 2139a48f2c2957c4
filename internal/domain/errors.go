// Package domain provides shared domain-level sentinel errors.
package domain

import "errors"

// ErrNotFound indicates the requested executable or file does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict indicates every candidate output name is already taken.
var ErrConflict = errors.New("conflict: no free output file name")
