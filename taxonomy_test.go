// Copyright (C) The otukit Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package otukit

import (
	"strings"

	"gopkg.in/check.v1"
)

type taxonomySuite struct{}

var _ = check.Suite(&taxonomySuite{})

func (s *taxonomySuite) TestParseTaxonomy(c *check.C) {
	in := "3 SAM1_32\tRoot;Bacteria;Firmicutes\t0.9\n" +
		"4 SAM2_5\tRoot;Archaea\t0.8\n" +
		"this line has only two fields\tRoot\n"
	res, err := ParseTaxonomy(strings.NewReader(in))
	c.Assert(err, check.IsNil)
	c.Check(res, check.DeepEquals, map[string]string{
		"3": "Root;Bacteria;Firmicutes",
		"4": "Root;Archaea",
	})
}

func (s *taxonomySuite) TestFieldsToDict(c *check.C) {
	in := "otu1\ta\tb\n\tignored: empty first field\notu2\tc\n"
	res, err := FieldsToDict(strings.NewReader(in))
	c.Assert(err, check.IsNil)
	c.Check(res, check.DeepEquals, map[string][]string{
		"otu1": {"a", "b"},
		"otu2": {"c"},
	})
}
