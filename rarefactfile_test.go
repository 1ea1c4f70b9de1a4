// Copyright (C) The otukit Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package otukit

import (
	"math"
	"strings"

	"gopkg.in/check.v1"
)

type rarefactionSuite struct{}

var _ = check.Suite(&rarefactionSuite{})

func (s *rarefactionSuite) TestParseRarefaction(c *check.C) {
	in := "#comment line\n" +
		"\tsequences per sample\titeration\tchao1\n" +
		"alpha_rare_10_0.txt\t10\t0\t4.2\n" +
		"alpha_rare_10_1.txt\t10\t1\tn/a\n"
	r, err := ParseRarefaction(strings.NewReader(in))
	c.Assert(err, check.IsNil)
	c.Check(r.Comments, check.DeepEquals, []string{"#comment line"})
	c.Check(r.ColHeaders, check.DeepEquals, []string{"", "sequences per sample", "iteration", "chao1"})
	c.Check(r.Filenames, check.DeepEquals, []string{"alpha_rare_10_0.txt", "alpha_rare_10_1.txt"})
	c.Check(r.Data[0], check.DeepEquals, []float64{10, 0, 4.2})
	// by this format's convention, unparsable numbers become NaN
	// instead of failing the parse
	c.Check(r.Data[1][0], check.Equals, 10.0)
	c.Check(math.IsNaN(r.Data[1][2]), check.Equals, true)
}

func (s *rarefactionSuite) TestParseRarefactionFilename(c *check.C) {
	base, seqs, iter, ext, err := ParseRarefactionFilename("alpha_rare_100_3.txt")
	c.Assert(err, check.IsNil)
	c.Check(base, check.Equals, "alpha_rare")
	c.Check(seqs, check.Equals, 100)
	c.Check(iter, check.Equals, 3)
	c.Check(ext, check.Equals, ".txt")

	_, _, _, _, err = ParseRarefactionFilename("rare_abc_3.txt")
	c.Check(err, check.NotNil)
	_, _, _, _, err = ParseRarefactionFilename("nounderscores.txt")
	c.Check(err, check.NotNil)
}
