// Copyright (C) The otukit Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package otukit

import (
	"fmt"
	"io"
	"strings"
)

// MappingFile holds a parsed sample-metadata map: a header row, data
// rows aligned to it, and any extra comment lines.
type MappingFile struct {
	Header   []string
	Data     [][]string
	Comments []string
}

// MappingOptions control field normalization while parsing a mapping
// file. The defaults strip double quotes and surrounding whitespace
// from every field.
type MappingOptions struct {
	KeepQuotes     bool
	KeepWhitespace bool
}

// ParseMappingFile parses a sample-metadata map: a #-prefixed header
// line with field names, optional further #-prefixed comment lines,
// and tab-delimited data rows. Blank lines are skipped.
func ParseMappingFile(rdr io.Reader, opts MappingOptions) (*MappingFile, error) {
	normalize := func(s string) string {
		if !opts.KeepQuotes {
			s = strings.ReplaceAll(s, `"`, "")
		}
		if !opts.KeepWhitespace {
			s = strings.TrimSpace(s)
		}
		return s
	}
	var mf MappingFile
	err := eachLine(rdr, func(lineno int, line string) error {
		line = normalize(line)
		if strings.TrimSpace(line) == "" {
			return nil
		}
		if strings.HasPrefix(line, "#") {
			line = line[1:]
			if mf.Header == nil {
				mf.Header = splitTabs(strings.TrimSpace(line))
			} else {
				mf.Comments = append(mf.Comments, line)
			}
			return nil
		}
		fields := splitTabs(line)
		for i, f := range fields {
			fields[i] = normalize(f)
		}
		mf.Data = append(mf.Data, fields)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &mf, nil
}

// GroupByField groups the mapping rows' leading sample ids by the
// value they carry in the named column.
func (mf *MappingFile) GroupByField(name string) (map[string][]string, error) {
	col := -1
	for i, h := range mf.Header {
		if h == name {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, fmt.Errorf("couldn't find name %q in headers: %v", name, mf.Header)
	}
	groups := map[string][]string{}
	for _, row := range mf.Data {
		groups[row[col]] = append(groups[row[col]], row[0])
	}
	return groups, nil
}

// GroupByFields is GroupByField over a combination of columns; the
// group key is the tab-joined tuple of the columns' values.
func (mf *MappingFile) GroupByFields(names []string) (map[string][]string, error) {
	cols := make([]int, len(names))
	for i, name := range names {
		cols[i] = -1
		for j, h := range mf.Header {
			if h == name {
				cols[i] = j
				break
			}
		}
		if cols[i] < 0 {
			return nil, fmt.Errorf("couldn't find name %q in headers: %v", name, mf.Header)
		}
	}
	groups := map[string][]string{}
	for _, row := range mf.Data {
		states := make([]string, len(cols))
		for i, col := range cols {
			states[i] = row[col]
		}
		key := strings.Join(states, "\t")
		groups[key] = append(groups[key], row[0])
	}
	return groups, nil
}

// ParseMetadataStateDescriptions parses a metadata filter expression
// of the form "col1:good1,good2;col2:good1" into a column → allowed
// state set mapping.
func ParseMetadataStateDescriptions(s string) (map[string]map[string]bool, error) {
	result := map[string]map[string]bool{}
	s = strings.TrimSpace(s)
	if s == "" {
		return result, nil
	}
	for _, clause := range strings.Split(s, ";") {
		clause = strings.TrimSpace(clause)
		parts := strings.SplitN(clause, ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("expected colname:states in %q", clause)
		}
		states := map[string]bool{}
		for _, v := range strings.Split(parts[1], ",") {
			states[strings.TrimSpace(v)] = true
		}
		result[strings.TrimSpace(parts[0])] = states
	}
	return result, nil
}
