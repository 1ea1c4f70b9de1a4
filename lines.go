// Copyright (C) The otukit Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package otukit

import (
	"bufio"
	"io"
	"strings"
)

// eachLine calls fn for every line of rdr, with lineno starting at 1.
// Trailing \r is removed so CRLF input parses like LF input. fn
// returning a non-nil error aborts the scan.
func eachLine(rdr io.Reader, fn func(lineno int, line string) error) error {
	scanner := bufio.NewScanner(rdr)
	scanner.Buffer(make([]byte, 0, 1<<16), 1<<26)
	lineno := 0
	for scanner.Scan() {
		lineno++
		if err := fn(lineno, strings.TrimSuffix(scanner.Text(), "\r")); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// splitTabs splits a line into tab-delimited fields. The fields are
// returned as found; callers decide whether to trim.
func splitTabs(line string) []string {
	return strings.Split(line, "\t")
}

// trimFields returns a copy of fields with surrounding whitespace
// removed from each one.
func trimFields(fields []string) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = strings.TrimSpace(f)
	}
	return out
}
