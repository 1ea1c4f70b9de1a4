// Copyright (C) The otukit Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package otukit

import (
	"errors"
	"strings"

	"gonum.org/v1/gonum/mat"
	"gopkg.in/check.v1"
)

type matrixSuite struct{}

var _ = check.Suite(&matrixSuite{})

func (s *matrixSuite) TestParseDistanceMatrix(c *check.C) {
	in := "\ts1\ts2\ts3\n" +
		"s1\t0\t0.5\t0.75\n" +
		"s2\t0.5\t0\t0.25\n" +
		"s3\t0.75\t0.25\t0\n"
	labels, m, err := ParseDistanceMatrix(strings.NewReader(in))
	c.Assert(err, check.IsNil)
	c.Check(labels, check.DeepEquals, []string{"s1", "s2", "s3"})
	c.Check(mat.Equal(m, mat.NewDense(3, 3, []float64{
		0, 0.5, 0.75,
		0.5, 0, 0.25,
		0.75, 0.25, 0,
	})), check.Equals, true)
}

func (s *matrixSuite) TestParseDistanceMatrixErrors(c *check.C) {
	_, _, err := ParseDistanceMatrix(strings.NewReader("s1\t0\n"))
	var mte *MalformedTableError
	c.Check(errors.As(err, &mte), check.Equals, true)

	_, _, err = ParseDistanceMatrix(strings.NewReader("\ts1\ts2\ns1\t0\n"))
	c.Assert(errors.As(err, &mte), check.Equals, true)
	c.Check(mte.Line, check.Equals, 2)

	_, _, err = ParseDistanceMatrix(strings.NewReader("\ts1\ns1\tzero\n"))
	var vce *ValueCoercionError
	c.Check(errors.As(err, &vce), check.Equals, true)
}

func (s *matrixSuite) TestParseLabeledMatrix(c *check.C) {
	in := "# produced by beta_diversity\n" +
		"\tc1\tc2\n" +
		"r1\t1\t2\n" +
		"r2\t3\t4\n"
	colLabels, rowLabels, m, err := ParseLabeledMatrix(strings.NewReader(in))
	c.Assert(err, check.IsNil)
	c.Check(colLabels, check.DeepEquals, []string{"c1", "c2"})
	c.Check(rowLabels, check.DeepEquals, []string{"r1", "r2"})
	c.Check(mat.Equal(m, mat.NewDense(2, 2, []float64{1, 2, 3, 4})), check.Equals, true)
}

func (s *matrixSuite) TestDistanceMatrixToDict(c *check.C) {
	in := "\ts1\ts2\n" +
		"s1\t0\t0.7\n" +
		"s2\t0.7\t0\n"
	d, err := DistanceMatrixToDict(strings.NewReader(in))
	c.Assert(err, check.IsNil)
	c.Check(d, check.DeepEquals, map[string]map[string]float64{
		"s1": {"s1": 0, "s2": 0.7},
		"s2": {"s1": 0.7, "s2": 0},
	})

	bad := "\ts1\ts2\n" +
		"s1\t0\t0.7\n" +
		"other\t0.7\t0\n"
	_, err = DistanceMatrixToDict(strings.NewReader(bad))
	c.Check(err, check.ErrorMatches, `.*row label "other" != column label "s2".*`)
}

func (s *matrixSuite) TestParseBootstrapSupport(c *check.C) {
	in := "#support values\nnode0 0.96\nnode1\t0.7\n"
	support, err := ParseBootstrapSupport(strings.NewReader(in))
	c.Assert(err, check.IsNil)
	c.Check(support, check.DeepEquals, map[string]float64{"node0": 0.96, "node1": 0.7})
}
