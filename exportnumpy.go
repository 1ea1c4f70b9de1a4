// Copyright (C) The otukit Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package otukit

import (
	"bufio"
	"flag"
	"fmt"
	"io"

	"github.com/kshedden/gonpy"
	log "github.com/sirupsen/logrus"
)

type exportNumpy struct{}

func (cmd *exportNumpy) RunCommand(prog string, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	err := cmd.run(args, stdin, stdout, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "%s\n", err)
		return 1
	}
	return 0
}

func (cmd *exportNumpy) run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	flags := flag.NewFlagSet("", flag.ContinueOnError)
	flags.SetOutput(stderr)
	inputFilename := flags.String("i", "-", "input `file` (\"-\" = stdin, .gz suffix = gzip)")
	outputFilename := flags.String("o", "-", "output `file` (.npy)")
	sampleLabels := flags.String("sample-labels", "", "also write sample labels to `file`")
	otuLabels := flags.String("otu-labels", "", "also write otu labels to `file`")
	transpose := flags.Bool("transpose", false, "write samples as rows instead of columns")
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
	otus, samples := table.Dims()
	log.Printf("reading done, %d otus x %d samples", otus, samples)

	data, rows, cols := tableToArray(table, *transpose)
	outfile, err := openOutput(*outputFilename, stdout)
	if err != nil {
		return err
	}
	defer outfile.Close()
	bufw := bufio.NewWriter(outfile)
	npw, err := gonpy.NewWriter(nopCloser{bufw})
	if err != nil {
		return err
	}
	npw.Shape = []int{rows, cols}
	if err = npw.WriteFloat64(data); err != nil {
		return err
	}
	if err = bufw.Flush(); err != nil {
		return err
	}
	if err = outfile.Close(); err != nil {
		return err
	}

	if *sampleLabels != "" {
		if err = writeLabels(*sampleLabels, table.SampleIDs); err != nil {
			return err
		}
	}
	if *otuLabels != "" {
		if err = writeLabels(*otuLabels, table.OtuIDs); err != nil {
			return err
		}
	}
	return nil
}

// tableToArray flattens the counts row-major, OTUs × samples, or the
// transpose when asked.
func tableToArray(t *OtuTable, transpose bool) (data []float64, rows, cols int) {
	otus, samples := t.Dims()
	rows, cols = otus, samples
	if transpose {
		rows, cols = samples, otus
	}
	data = make([]float64, otus*samples)
	if t.Counts == nil {
		return data, rows, cols
	}
	for i := 0; i < otus; i++ {
		for j := 0; j < samples; j++ {
			if transpose {
				data[j*cols+i] = t.Counts.At(i, j)
			} else {
				data[i*cols+j] = t.Counts.At(i, j)
			}
		}
	}
	return data, rows, cols
}

func writeLabels(fnm string, labels []string) error {
	f, err := openOutput(fnm, nil)
	if err != nil {
		return err
	}
	defer f.Close()
	bufw := bufio.NewWriter(f)
	for i, label := range labels {
		fmt.Fprintf(bufw, "%d,%q\n", i, label)
	}
	if err = bufw.Flush(); err != nil {
		return err
	}
	return f.Close()
}
