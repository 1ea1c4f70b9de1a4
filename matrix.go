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

// ParseDistanceMatrix parses a pairwise distance matrix (e.g. a
// UniFrac distance matrix): a header line starting with a tab and
// carrying the sample labels, then one row per sample with its label
// in the first field and float distances in the rest.
func ParseDistanceMatrix(rdr io.Reader) ([]string, *mat.Dense, error) {
	var (
		labels []string
		data   []float64
		rows   int
	)
	err := eachLine(rdr, func(lineno int, line string) error {
		if line == "" {
			return nil
		}
		if line[0] == '\t' {
			labels = trimFields(splitTabs(line)[1:])
			return nil
		}
		fields := splitTabs(line)[1:]
		if labels != nil && len(fields) != len(labels) {
			return &MalformedTableError{Line: lineno, Reason: fmt.Sprintf("got %d distances, expected %d", len(fields), len(labels))}
		}
		for i, f := range fields {
			v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil {
				return &ValueCoercionError{Line: lineno, Field: i + 2, Value: f, Err: err}
			}
			data = append(data, v)
		}
		rows++
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	if labels == nil {
		return nil, nil, &MalformedTableError{Reason: "missing label header line"}
	}
	if rows == 0 {
		return labels, nil, nil
	}
	return labels, mat.NewDense(rows, len(labels), data), nil
}

// ParseLabeledMatrix parses a generic tab-delimited matrix file:
// #-prefixed lines are skipped, the column header line starts with a
// tab, and every other line is a row label followed by float values.
func ParseLabeledMatrix(rdr io.Reader) (colLabels, rowLabels []string, m *mat.Dense, err error) {
	var data []float64
	err = eachLine(rdr, func(lineno int, line string) error {
		if line == "" || line[0] == '#' {
			return nil
		}
		if line[0] == '\t' {
			colLabels = trimFields(splitTabs(line)[1:])
			return nil
		}
		fields := splitTabs(line)
		if colLabels != nil && len(fields)-1 != len(colLabels) {
			return &MalformedTableError{Line: lineno, Reason: fmt.Sprintf("got %d values, expected %d", len(fields)-1, len(colLabels))}
		}
		for i, f := range fields[1:] {
			v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil {
				return &ValueCoercionError{Line: lineno, Field: i + 2, Value: f, Err: err}
			}
			data = append(data, v)
		}
		rowLabels = append(rowLabels, fields[0])
		return nil
	})
	if err != nil {
		return nil, nil, nil, err
	}
	if colLabels == nil {
		return nil, nil, nil, &MalformedTableError{Reason: "missing label header line"}
	}
	if len(rowLabels) > 0 {
		m = mat.NewDense(len(rowLabels), len(colLabels), data)
	}
	return colLabels, rowLabels, m, nil
}

// DistanceMatrixToDict parses a distance matrix file into a nested
// sample→sample→distance map. The row and column labels must agree.
func DistanceMatrixToDict(rdr io.Reader) (map[string]map[string]float64, error) {
	colLabels, rowLabels, m, err := ParseLabeledMatrix(rdr)
	if err != nil {
		return nil, err
	}
	if len(colLabels) != len(rowLabels) {
		return nil, &MalformedTableError{Reason: fmt.Sprintf("%d row labels but %d column labels", len(rowLabels), len(colLabels))}
	}
	for i, l := range colLabels {
		if rowLabels[i] != l {
			return nil, &MalformedTableError{Reason: fmt.Sprintf("row label %q != column label %q at position %d", rowLabels[i], l, i)}
		}
	}
	result := map[string]map[string]float64{}
	for i, x := range colLabels {
		result[x] = map[string]float64{}
		for j, y := range rowLabels {
			result[x][y] = m.At(i, j)
		}
	}
	return result, nil
}

// ParseBootstrapSupport parses whitespace-delimited node→support
// pairs, skipping #-prefixed comment lines.
func ParseBootstrapSupport(rdr io.Reader) (map[string]float64, error) {
	support := map[string]float64{}
	err := eachLine(rdr, func(lineno int, line string) error {
		if line == "" || line[0] == '#' {
			return nil
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return &MalformedTableError{Line: lineno, Reason: "expected node id and support value"}
		}
		v, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return &ValueCoercionError{Line: lineno, Field: 2, Value: fields[1], Err: err}
		}
		support[fields[0]] = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return support, nil
}
