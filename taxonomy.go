// Copyright (C) The otukit Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package otukit

import (
	"io"
	"strings"
)

// ParseTaxonomy parses a taxonomy assignment file into an OTU id →
// lineage string map. Each useful line has exactly three tab-delimited
// fields: "otuID repSeq <tab> lineage <tab> confidence"; only the
// first whitespace-delimited token of the first field is the OTU id,
// and the confidence is ignored. Lines with any other field count are
// skipped.
func ParseTaxonomy(rdr io.Reader) (map[string]string, error) {
	res := map[string]string{}
	err := eachLine(rdr, func(lineno int, line string) error {
		fields := splitTabs(line)
		if len(fields) != 3 {
			return nil
		}
		otu := strings.SplitN(strings.TrimSpace(fields[0]), " ", 2)[0]
		res[otu] = strings.TrimSpace(fields[1])
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// FieldsToDict parses tab-delimited lines into a map keyed by each
// line's first field, with the remaining fields as the value. Lines
// with an empty first field are skipped.
func FieldsToDict(rdr io.Reader) (map[string][]string, error) {
	res := map[string][]string{}
	err := eachLine(rdr, func(lineno int, line string) error {
		fields := trimFields(splitTabs(line))
		if fields[0] == "" {
			return nil
		}
		res[fields[0]] = fields[1:]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
