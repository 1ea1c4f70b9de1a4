// Copyright (C) The otukit Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package otukit

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
)

type statscmd struct{}

func (cmd *statscmd) RunCommand(prog string, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	err := cmd.run(args, stdin, stdout, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "%s\n", err)
		return 1
	}
	return 0
}

func (cmd *statscmd) run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	flags := flag.NewFlagSet("", flag.ContinueOnError)
	flags.SetOutput(stderr)
	inputFilename := flags.String("i", "-", "input `file` (\"-\" = stdin, .gz suffix = gzip)")
	outputFilename := flags.String("o", "-", "output `file` (json)")
	relAbund := flags.Bool("relative-abundance", false, "parse counts as floating point relative abundances")
	err := flags.Parse(args)
	if err == flag.ErrHelp {
		return nil
	} else if err != nil {
		return err
	} else if flags.NArg() > 0 {
		return fmt.Errorf("errant command line arguments after parsed flags: %v", flags.Args())
	}

	infile, err := openInput(*inputFilename, stdin)
	if err != nil {
		return err
	}
	defer infile.Close()
	coerce := ParseIntCount
	if *relAbund {
		coerce = ParseFloatCount
	}
	log.Print("reading")
	table, err := ParseOtuTable(infile, coerce)
	if err != nil {
		return err
	}
	if err = infile.Close(); err != nil {
		return err
	}

	outfile, err := openOutput(*outputFilename, stdout)
	if err != nil {
		return err
	}
	defer outfile.Close()
	bufw := bufio.NewWriter(outfile)
	if err = cmd.doStats(table, bufw); err != nil {
		return err
	}
	if err = bufw.Flush(); err != nil {
		return err
	}
	return outfile.Close()
}

func (cmd *statscmd) doStats(table *OtuTable, output io.Writer) error {
	var ret struct {
		Samples     int
		Otus        int
		TotalCount  float64
		MinDepth    float64
		MaxDepth    float64
		MeanDepth   float64
		SampleDepth map[string]float64
		HasLineages bool
	}

	otus, samples := table.Dims()
	ret.Samples = samples
	ret.Otus = otus
	ret.HasLineages = table.Lineages != nil
	sums := table.SampleSums()
	ret.SampleDepth = make(map[string]float64, samples)
	for j, id := range table.SampleIDs {
		ret.SampleDepth[id] = sums[j]
	}
	if samples > 0 {
		ret.TotalCount = floats.Sum(sums)
		ret.MinDepth = floats.Min(sums)
		ret.MaxDepth = floats.Max(sums)
		ret.MeanDepth = ret.TotalCount / float64(samples)
	}
	return json.NewEncoder(output).Encode(ret)
}
