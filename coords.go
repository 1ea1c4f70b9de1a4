// Copyright (C) The otukit Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package otukit

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Coords holds a parsed principal-coordinates file: one row of
// coordinates per sample (axes in descending order of variance), plus
// the eigenvalues and percent variance explained per axis.
type Coords struct {
	Labels       []string
	Coords       *mat.Dense
	Eigvals      []float64
	PctExplained []float64
}

// ParseCoords parses a principal-coordinates file: a title line
// (discarded), per-sample coordinate rows, blank separator lines, and
// finally an eigenvalue row and a percent-explained row.
func ParseCoords(rdr io.Reader) (*Coords, error) {
	var lines []string
	err := eachLine(rdr, func(lineno int, line string) error {
		if lineno == 1 {
			return nil
		}
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(lines) < 3 {
		return nil, &MalformedTableError{Reason: "coords file needs at least one sample row plus eigval and %-explained rows"}
	}
	parseTail := func(line string, what string) ([]float64, error) {
		fields := splitTabs(line)[1:]
		out := make([]float64, len(fields))
		for i, f := range fields {
			v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil {
				return nil, fmt.Errorf("parsing %s row: %w", what, err)
			}
			out[i] = v
		}
		return out, nil
	}
	c := &Coords{}
	if c.Eigvals, err = parseTail(lines[len(lines)-2], "eigenvalue"); err != nil {
		return nil, err
	}
	if c.PctExplained, err = parseTail(lines[len(lines)-1], "%-explained"); err != nil {
		return nil, err
	}
	var data []float64
	naxes := -1
	for _, line := range lines[:len(lines)-2] {
		fields := trimFields(splitTabs(line))
		if naxes < 0 {
			naxes = len(fields) - 1
		} else if len(fields)-1 != naxes {
			return nil, &MalformedTableError{Reason: fmt.Sprintf("sample %q has %d axes, expected %d", fields[0], len(fields)-1, naxes)}
		}
		c.Labels = append(c.Labels, fields[0])
		for i, f := range fields[1:] {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, &ValueCoercionError{Field: i + 2, Value: f, Err: err}
			}
			data = append(data, v)
		}
	}
	c.Coords = mat.NewDense(len(c.Labels), naxes, data)
	return c, nil
}
