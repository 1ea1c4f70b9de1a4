// Copyright (C) The otukit Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package otukit

import (
	"fmt"
)

// MalformedTableError indicates a structural problem in a tabular
// input: a header with no sample columns, a data row whose field count
// disagrees with the header, or a file too short to contain the
// sections its format requires. The whole parse aborts; no partial
// table is returned.
type MalformedTableError struct {
	Line   int // 1-based line number, 0 if not line-specific
	Reason string
}

func (e *MalformedTableError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("malformed table: line %d: %s", e.Line, e.Reason)
	}
	return fmt.Sprintf("malformed table: %s", e.Reason)
}

// ValueCoercionError indicates a field that failed numeric coercion.
type ValueCoercionError struct {
	Line  int    // 1-based line number
	Field int    // 1-based field number within the line
	Value string // the offending field content
	Err   error
}

func (e *ValueCoercionError) Error() string {
	return fmt.Sprintf("line %d, field %d: cannot coerce %q: %s", e.Line, e.Field, e.Value, e.Err)
}

func (e *ValueCoercionError) Unwrap() error { return e.Err }

// ShapeMismatchError indicates labels that do not match the dimensions
// of the matrix they are supposed to annotate.
type ShapeMismatchError struct {
	Rows, Cols          int
	NumSamples, NumTaxa int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("matrix shape (%d, %d) doesn't match # samples and # taxa (%d and %d)", e.Rows, e.Cols, e.NumSamples, e.NumTaxa)
}
