// Copyright (C) The otukit Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package otukit

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"sort"

	log "github.com/sirupsen/logrus"
)

// envscmd converts between the OTU-table format and the UniFrac
// sample-mapping (environment) format. The forward direction emits
// one "otu <tab> sample <tab> count" line per non-zero entry; the
// reverse direction densifies a sample mapping back into a table.
type envscmd struct{}

func (cmd *envscmd) RunCommand(prog string, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	err := cmd.run(args, stdin, stdout, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "%s\n", err)
		return 1
	}
	return 0
}

func (cmd *envscmd) run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	flags := flag.NewFlagSet("", flag.ContinueOnError)
	flags.SetOutput(stderr)
	inputFilename := flags.String("i", "-", "input `file` (\"-\" = stdin, .gz suffix = gzip)")
	outputFilename := flags.String("o", "-", "output `file`")
	fromSampleMapping := flags.Bool("from-sample-mapping", false, "convert a sample-mapping file to an OTU table instead")
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
	outfile, err := openOutput(*outputFilename, stdout)
	if err != nil {
		return err
	}
	defer outfile.Close()
	bufw := bufio.NewWriter(outfile)

	if *fromSampleMapping {
		log.Print("converting sample mapping to otu table")
		lines, err := SampleMappingToOtuTable(infile)
		if err != nil {
			return err
		}
		for _, line := range lines {
			fmt.Fprintln(bufw, line)
		}
	} else {
		coerce := ParseIntCount
		if *relAbund {
			coerce = ParseFloatCount
		}
		log.Print("reading")
		table, err := ParseOtuTable(infile, coerce)
		if err != nil {
			return err
		}
		otus, samples := table.Dims()
		log.Printf("reading done, %d otus x %d samples", otus, samples)
		envs, err := table.Envs()
		if err != nil {
			return err
		}
		for _, otu := range table.OtuIDs {
			env := envs[otu]
			samples := make([]string, 0, len(env))
			for sample := range env {
				samples = append(samples, sample)
			}
			sort.Strings(samples)
			for _, sample := range samples {
				fmt.Fprintf(bufw, "%s\t%s\t%s\n", otu, sample, formatCount(env[sample]))
			}
		}
	}
	if err = infile.Close(); err != nil {
		return err
	}
	if err = bufw.Flush(); err != nil {
		return err
	}
	return outfile.Close()
}
