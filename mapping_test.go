// Copyright (C) The otukit Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package otukit

import (
	"strings"

	"gopkg.in/check.v1"
)

type mappingSuite struct{}

var _ = check.Suite(&mappingSuite{})

const mappingText = "#SampleID\tTreatment\tDose\n" +
	"#run 12, plate 3\n" +
	"s1\t\"Control\"\tlow\n" +
	"\n" +
	"s2\tFast \tlow\n" +
	"s3\tFast\thigh\n"

func (s *mappingSuite) TestParseMappingFile(c *check.C) {
	mf, err := ParseMappingFile(strings.NewReader(mappingText), MappingOptions{})
	c.Assert(err, check.IsNil)
	c.Check(mf.Header, check.DeepEquals, []string{"SampleID", "Treatment", "Dose"})
	c.Check(mf.Comments, check.DeepEquals, []string{"run 12, plate 3"})
	c.Check(mf.Data, check.DeepEquals, [][]string{
		{"s1", "Control", "low"},
		{"s2", "Fast", "low"},
		{"s3", "Fast", "high"},
	})
}

func (s *mappingSuite) TestKeepQuotes(c *check.C) {
	mf, err := ParseMappingFile(strings.NewReader(mappingText), MappingOptions{KeepQuotes: true})
	c.Assert(err, check.IsNil)
	c.Check(mf.Data[0][1], check.Equals, `"Control"`)
}

func (s *mappingSuite) TestKeepWhitespace(c *check.C) {
	mf, err := ParseMappingFile(strings.NewReader(mappingText), MappingOptions{KeepWhitespace: true})
	c.Assert(err, check.IsNil)
	c.Check(mf.Data[1][1], check.Equals, "Fast ")
}

func (s *mappingSuite) TestGroupByField(c *check.C) {
	mf, err := ParseMappingFile(strings.NewReader(mappingText), MappingOptions{})
	c.Assert(err, check.IsNil)
	groups, err := mf.GroupByField("Treatment")
	c.Assert(err, check.IsNil)
	c.Check(groups, check.DeepEquals, map[string][]string{
		"Control": {"s1"},
		"Fast":    {"s2", "s3"},
	})

	_, err = mf.GroupByField("Nope")
	c.Check(err, check.ErrorMatches, `couldn't find name "Nope" in headers: .*`)
}

func (s *mappingSuite) TestGroupByFields(c *check.C) {
	mf, err := ParseMappingFile(strings.NewReader(mappingText), MappingOptions{})
	c.Assert(err, check.IsNil)
	groups, err := mf.GroupByFields([]string{"Treatment", "Dose"})
	c.Assert(err, check.IsNil)
	c.Check(groups, check.DeepEquals, map[string][]string{
		"Control\tlow": {"s1"},
		"Fast\tlow":    {"s2"},
		"Fast\thigh":   {"s3"},
	})
}

func (s *mappingSuite) TestParseMetadataStateDescriptions(c *check.C) {
	states, err := ParseMetadataStateDescriptions("Treatment:Control,Fast; Dose:high")
	c.Assert(err, check.IsNil)
	c.Check(states, check.DeepEquals, map[string]map[string]bool{
		"Treatment": {"Control": true, "Fast": true},
		"Dose":      {"high": true},
	})

	states, err = ParseMetadataStateDescriptions("  ")
	c.Assert(err, check.IsNil)
	c.Check(len(states), check.Equals, 0)

	_, err = ParseMetadataStateDescriptions("no-colon-here")
	c.Check(err, check.ErrorMatches, `expected colname:states in .*`)
}
