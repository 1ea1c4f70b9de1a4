// Copyright (C) The otukit Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package otukit

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const lineageHeader = "Consensus Lineage"

// OtuTable is a samples × OTUs abundance table. Counts has one row per
// OTU and one column per sample; OtuIDs, Lineages, and the rows of
// Counts are aligned by index, as are SampleIDs and the columns.
//
// Counts is nil when the table has zero OTU rows or zero sample
// columns (mat.Dense cannot represent an empty matrix). Lineages is
// nil when the source table had no Consensus Lineage column.
//
// A filtering operation never reorders or mutates its input: it
// derives one index mask per axis and applies it to every aligned
// collection, producing a new table.
type OtuTable struct {
	SampleIDs []string
	OtuIDs    []string
	Counts    *mat.Dense
	Lineages  [][]string
}

// CountFunc converts one raw count field to a number.
type CountFunc func(string) (float64, error)

// ParseIntCount is the default count coercion: integer syntax only, so
// a fractional value in a raw-count table is reported as an error
// instead of being truncated.
func ParseIntCount(s string) (float64, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	return float64(n), nil
}

// ParseFloatCount accepts any floating point count, for tables holding
// normalized / relative abundances rather than raw sequence counts.
func ParseFloatCount(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

// ParseOtuTable reads an OTU table in the tab-delimited text format:
//
//	line 1: title (discarded)
//	line 2: #OTU ID <tab> sample1 <tab> ... <tab> sampleN [<tab> Consensus Lineage]
//	line 3+: otuID <tab> count1 <tab> ... <tab> countN [<tab> seg1;seg2;...]
//
// The trailing lineage column is recognized by exact match on the last
// header token. coerce is applied to every count field; nil means
// ParseIntCount. Sample order follows the header, OTU order follows
// first appearance. Structural problems abort the parse with
// MalformedTableError; unparsable counts with ValueCoercionError.
func ParseOtuTable(rdr io.Reader, coerce CountFunc) (*OtuTable, error) {
	if coerce == nil {
		coerce = ParseIntCount
	}
	var (
		t          OtuTable
		hasLineage bool
		data       []float64
		sawHeader  bool
	)
	err := eachLine(rdr, func(lineno int, line string) error {
		if lineno == 1 {
			return nil
		}
		if lineno == 2 {
			fields := splitTabs(strings.TrimSpace(line))[1:]
			if len(fields) > 0 && fields[len(fields)-1] == lineageHeader {
				hasLineage = true
				fields = fields[:len(fields)-1]
			}
			if len(fields) == 0 {
				return &MalformedTableError{Line: lineno, Reason: "no samples found in otu table"}
			}
			t.SampleIDs = fields
			sawHeader = true
			return nil
		}
		if line == "" {
			return nil
		}
		fields := splitTabs(line)
		counts := fields[1:]
		if hasLineage {
			if len(fields) < 2 {
				return &MalformedTableError{Line: lineno, Reason: "missing lineage column"}
			}
			counts = fields[1 : len(fields)-1]
		}
		if len(counts) != len(t.SampleIDs) {
			return &MalformedTableError{Line: lineno, Reason: fmt.Sprintf("got %d count fields, expected %d", len(counts), len(t.SampleIDs))}
		}
		for i, f := range counts {
			v, err := coerce(f)
			if err != nil {
				return &ValueCoercionError{Line: lineno, Field: i + 2, Value: f, Err: err}
			}
			if v < 0 {
				return &ValueCoercionError{Line: lineno, Field: i + 2, Value: f, Err: errors.New("negative count")}
			}
			data = append(data, v)
		}
		t.OtuIDs = append(t.OtuIDs, strings.TrimSpace(fields[0]))
		if hasLineage {
			t.Lineages = append(t.Lineages, trimFields(strings.Split(fields[len(fields)-1], ";")))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !sawHeader {
		return nil, &MalformedTableError{Reason: "missing sample header line"}
	}
	if len(t.OtuIDs) > 0 {
		t.Counts = mat.NewDense(len(t.OtuIDs), len(t.SampleIDs), data)
	}
	return &t, nil
}

// Dims returns the number of OTU rows and sample columns.
func (t *OtuTable) Dims() (otus, samples int) {
	return len(t.OtuIDs), len(t.SampleIDs)
}

// Write re-serializes the table in the same format ParseOtuTable
// reads, so parse → Write → parse reproduces the table exactly.
func (t *OtuTable) Write(w io.Writer) error {
	bufw := bufio.NewWriter(w)
	fmt.Fprintln(bufw, "#Full OTU Counts")
	bufw.WriteString("#OTU ID")
	for _, id := range t.SampleIDs {
		bufw.WriteString("\t")
		bufw.WriteString(id)
	}
	if t.Lineages != nil {
		bufw.WriteString("\t" + lineageHeader)
	}
	bufw.WriteString("\n")
	for i, id := range t.OtuIDs {
		bufw.WriteString(id)
		for j := range t.SampleIDs {
			bufw.WriteString("\t")
			bufw.WriteString(formatCount(t.Counts.At(i, j)))
		}
		if t.Lineages != nil {
			bufw.WriteString("\t" + strings.Join(t.Lineages[i], "; "))
		}
		bufw.WriteString("\n")
	}
	return bufw.Flush()
}

func formatCount(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// takeRows returns a new table containing the given OTU rows, in the
// given order. The one index list is applied to OtuIDs, Lineages, and
// the rows of Counts, so the aligned collections cannot drift.
func (t *OtuTable) takeRows(idx []int) *OtuTable {
	out := &OtuTable{SampleIDs: append([]string(nil), t.SampleIDs...)}
	if t.Lineages != nil {
		out.Lineages = [][]string{}
	}
	var data []float64
	for _, i := range idx {
		out.OtuIDs = append(out.OtuIDs, t.OtuIDs[i])
		if t.Lineages != nil {
			out.Lineages = append(out.Lineages, append([]string(nil), t.Lineages[i]...))
		}
		for j := range t.SampleIDs {
			data = append(data, t.Counts.At(i, j))
		}
	}
	if len(out.OtuIDs) > 0 && len(out.SampleIDs) > 0 {
		out.Counts = mat.NewDense(len(out.OtuIDs), len(out.SampleIDs), data)
	}
	return out
}

// takeCols returns a new table containing the given sample columns, in
// the given order.
func (t *OtuTable) takeCols(idx []int) *OtuTable {
	out := &OtuTable{OtuIDs: append([]string(nil), t.OtuIDs...)}
	if t.Lineages != nil {
		out.Lineages = make([][]string, 0, len(t.Lineages))
		for _, lin := range t.Lineages {
			out.Lineages = append(out.Lineages, append([]string(nil), lin...))
		}
	}
	for _, j := range idx {
		out.SampleIDs = append(out.SampleIDs, t.SampleIDs[j])
	}
	if len(out.OtuIDs) > 0 && len(out.SampleIDs) > 0 {
		data := make([]float64, 0, len(out.OtuIDs)*len(out.SampleIDs))
		for i := range out.OtuIDs {
			for _, j := range idx {
				data = append(data, t.Counts.At(i, j))
			}
		}
		out.Counts = mat.NewDense(len(out.OtuIDs), len(out.SampleIDs), data)
	}
	return out
}

// SampleSums returns the per-sample column sums, aligned to SampleIDs.
// A table with no OTU rows has all-zero sums.
func (t *OtuTable) SampleSums() []float64 {
	sums := make([]float64, len(t.SampleIDs))
	if t.Counts == nil {
		return sums
	}
	var col []float64
	for j := range t.SampleIDs {
		col = mat.Col(col, j, t.Counts)
		sums[j] = floats.Sum(col)
	}
	return sums
}
