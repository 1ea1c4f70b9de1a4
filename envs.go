// Copyright (C) The otukit Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package otukit

import (
	"gonum.org/v1/gonum/mat"
)

// MakeEnvs converts a samples (rows) × taxa (columns) abundance matrix
// into the sparse per-taxon sample→count mapping consumed by UniFrac
// style dissimilarity code. Every taxon gets an entry; zero counts are
// omitted from the inner maps to bound memory on large sparse tables.
func MakeEnvs(m mat.Matrix, sampleNames, taxonNames []string) (map[string]map[string]float64, error) {
	rows, cols := 0, 0
	if m != nil {
		rows, cols = m.Dims()
	}
	if rows != len(sampleNames) || cols != len(taxonNames) {
		return nil, &ShapeMismatchError{Rows: rows, Cols: cols, NumSamples: len(sampleNames), NumTaxa: len(taxonNames)}
	}
	envs := make(map[string]map[string]float64, len(taxonNames))
	for j, taxon := range taxonNames {
		env := map[string]float64{}
		for i, sample := range sampleNames {
			if v := m.At(i, j); v != 0 {
				env[sample] = v
			}
		}
		envs[taxon] = env
	}
	return envs, nil
}

// Envs returns the table's counts as a sparse taxon→sample→count
// mapping (the table stores OTUs × samples; MakeEnvs wants the
// transpose).
func (t *OtuTable) Envs() (map[string]map[string]float64, error) {
	if t.Counts == nil {
		envs := make(map[string]map[string]float64, len(t.OtuIDs))
		for _, id := range t.OtuIDs {
			envs[id] = map[string]float64{}
		}
		return envs, nil
	}
	return MakeEnvs(t.Counts.T(), t.SampleIDs, t.OtuIDs)
}
