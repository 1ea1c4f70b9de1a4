// Copyright (C) The otukit Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package otukit

import (
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"
)

// Rarefaction holds a parsed rarefaction-curve file: per-record source
// filenames and float data rows, plus the column header and comment
// lines. By this format's own convention an unparsable numeric field
// becomes NaN rather than an error (missing depths are routinely
// written as "n/a").
type Rarefaction struct {
	ColHeaders []string
	Comments   []string
	Filenames  []string
	Data       [][]float64
}

// ParseRarefaction parses a rarefaction-curve file: #-prefixed comment
// lines, a column header line starting with a tab, and one record per
// remaining line.
func ParseRarefaction(rdr io.Reader) (*Rarefaction, error) {
	r := &Rarefaction{}
	err := eachLine(rdr, func(lineno int, line string) error {
		if line == "" {
			return nil
		}
		if line[0] == '#' {
			r.Comments = append(r.Comments, line)
			return nil
		}
		if line[0] == '\t' {
			r.ColHeaders = trimFields(splitTabs(line))
			return nil
		}
		fn, data := ParseRarefactionRecord(line)
		r.Filenames = append(r.Filenames, fn)
		r.Data = append(r.Data, data)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// ParseRarefactionRecord splits one rarefaction record into its source
// filename and data values; unparsable values become NaN.
func ParseRarefactionRecord(line string) (string, []float64) {
	fields := splitTabs(line)
	data := make([]float64, len(fields)-1)
	for i, f := range fields[1:] {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			v = math.NaN()
		}
		data[i] = v
	}
	return fields[0], data
}

// ParseRarefactionFilename decomposes a rarefaction filename of the
// form base_seqsPerSample_iteration.ext.
func ParseRarefactionFilename(name string) (base string, seqsPerSample, iteration int, ext string, err error) {
	ext = filepath.Ext(name)
	parts := strings.Split(strings.TrimSuffix(name, ext), "_")
	if len(parts) < 3 {
		return "", 0, 0, "", fmt.Errorf("rarefaction filename %q: want base_seqs_iteration", name)
	}
	iteration, err = strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return "", 0, 0, "", fmt.Errorf("rarefaction filename %q: %w", name, err)
	}
	seqsPerSample, err = strconv.Atoi(parts[len(parts)-2])
	if err != nil {
		return "", 0, 0, "", fmt.Errorf("rarefaction filename %q: %w", name, err)
	}
	return strings.Join(parts[:len(parts)-2], "_"), seqsPerSample, iteration, ext, nil
}
