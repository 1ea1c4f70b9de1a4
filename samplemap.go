// Copyright (C) The otukit Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package otukit

import (
	"io"
	"sort"
	"strings"
)

// SampleMapping is a parsed UniFrac sample-mapping (environment) file:
// per-OTU sample→count entries, densely zero-filled across the file's
// full sample set. Counts stay strings here; this type exists for
// format conversion, not arithmetic.
type SampleMapping struct {
	Counts  map[string]map[string]string
	OtuIDs  []string // first-appearance order
	Samples []string // sorted
}

// ParseSampleMapping parses tab-delimited "otu sample count" lines.
func ParseSampleMapping(rdr io.Reader) (*SampleMapping, error) {
	sm := &SampleMapping{Counts: map[string]map[string]string{}}
	var records [][]string
	sampleSet := map[string]bool{}
	err := eachLine(rdr, func(lineno int, line string) error {
		line = strings.TrimSpace(line)
		if line == "" {
			return nil
		}
		fields := trimFields(splitTabs(line))
		if len(fields) < 3 {
			return &MalformedTableError{Line: lineno, Reason: "expected otu, sample, and count fields"}
		}
		records = append(records, fields)
		sampleSet[fields[1]] = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	for sample := range sampleSet {
		sm.Samples = append(sm.Samples, sample)
	}
	sort.Strings(sm.Samples)
	for _, rec := range records {
		otu, sample, count := rec[0], rec[1], rec[2]
		if sm.Counts[otu] == nil {
			env := make(map[string]string, len(sm.Samples))
			for _, s := range sm.Samples {
				env[s] = "0"
			}
			sm.Counts[otu] = env
			sm.OtuIDs = append(sm.OtuIDs, otu)
		}
		sm.Counts[otu][sample] = count
	}
	return sm, nil
}

// SampleMappingToOtuTable converts a UniFrac sample-mapping file into
// OTU-table-format lines (parseable by ParseOtuTable).
func SampleMappingToOtuTable(rdr io.Reader) ([]string, error) {
	sm, err := ParseSampleMapping(rdr)
	if err != nil {
		return nil, err
	}
	out := []string{"#Full OTU Counts"}
	out = append(out, "#OTU ID\t"+strings.Join(sm.Samples, "\t"))
	for _, otu := range sm.OtuIDs {
		fields := []string{otu}
		for _, sample := range sm.Samples {
			fields = append(fields, sm.Counts[otu][sample])
		}
		out = append(out, strings.Join(fields, "\t"))
	}
	return out, nil
}
