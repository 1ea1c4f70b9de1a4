// Copyright (C) The otukit Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package otukit

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// ParseParameters parses a pipeline parameters file into a script →
// parameter → value mapping. Each useful line is
// "script:parameter value". A value of FALSE or NONE (any case) drops
// the parameter; TRUE records the parameter with an empty value,
// meaning the option is set without an argument.
func ParseParameters(rdr io.Reader) (map[string]map[string]string, error) {
	result := map[string]map[string]string{}
	err := eachLine(rdr, func(lineno int, line string) error {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			return nil
		}
		fields := strings.Fields(line)
		parts := strings.SplitN(fields[0], ":", 2)
		if len(parts) != 2 {
			return fmt.Errorf("line %d: expected script:parameter, got %q", lineno, fields[0])
		}
		if len(fields) < 2 {
			return nil
		}
		value := fields[1]
		switch strings.ToUpper(value) {
		case "FALSE", "NONE":
			return nil
		case "TRUE":
			value = ""
		}
		if result[parts[0]] == nil {
			result[parts[0]] = map[string]string{}
		}
		result[parts[0]][parts[1]] = value
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ParseConfig parses a config file of tab-delimited "key value" lines
// into a map. Blank lines and #-prefixed comments are ignored; a key
// with no value is omitted.
func ParseConfig(rdr io.Reader) (map[string]string, error) {
	result := map[string]string{}
	err := eachLine(rdr, func(lineno int, line string) error {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			return nil
		}
		fields := splitTabs(line)
		if value := strings.Join(fields[1:], "\t"); value != "" {
			result[fields[0]] = value
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ParseConfigFiles parses an ordered list of config files, least
// important first: values from later files override earlier ones.
// Files that cannot be opened are skipped.
func ParseConfigFiles(paths ...string) (map[string]string, error) {
	result := map[string]string{}
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			continue
		}
		cfg, err := ParseConfig(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		for k, v := range cfg {
			result[k] = v
		}
	}
	return result, nil
}

// ParseFilepathMap parses poller maps of temporary → final file names:
// each line lists the temporary files followed by the final path they
// are assembled into.
func ParseFilepathMap(rdr io.Reader) (infileLists [][]string, outPaths []string, err error) {
	err = eachLine(rdr, func(lineno int, line string) error {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			return nil
		}
		infileLists = append(infileLists, fields[:len(fields)-1])
		outPaths = append(outPaths, fields[len(fields)-1])
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return infileLists, outPaths, nil
}
