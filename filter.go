// Copyright (C) The otukit Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package otukit

import (
	"flag"
	"fmt"
	"io"
	"math/rand"
	"strings"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"
)

// FilterPolicy selects which OTU rows and sample columns of a table
// survive, and how deep the surviving samples are allowed to be.
type FilterPolicy struct {
	// WantedLineage is a lineage expression: one taxonomic term, or
	// several joined by "&&". An OTU row is kept when any of its
	// lineage segments equals any term. Note the disjunction: the
	// "&&" separator does not mean all terms must match. Empty
	// means keep all rows.
	WantedLineage string
	// MinSeqsPerSample drops samples whose column sum is below it.
	MinSeqsPerSample int
	// MaxSeqsPerSample rarefies samples whose column sum exceeds it
	// down to exactly it; samples at or below are left untouched.
	// Negative means no cap.
	MaxSeqsPerSample int
}

func (f *FilterPolicy) Flags(flags *flag.FlagSet) {
	flags.StringVar(&f.WantedLineage, "wanted-lineage", "", "keep only OTUs whose lineage contains one of the `&&`-separated terms (default: keep all)")
	flags.IntVar(&f.MinSeqsPerSample, "min-seqs-per-sample", 0, "drop samples with fewer than `N` sequences")
	flags.IntVar(&f.MaxSeqsPerSample, "max-seqs-per-sample", -1, "subsample samples with more than `N` sequences down to N (-1 = no cap)")
}

// wantedTerms returns the lineage expression as a term set, or nil
// when the policy keeps all lineages.
func (f *FilterPolicy) wantedTerms() map[string]bool {
	if f.WantedLineage == "" {
		return nil
	}
	terms := map[string]bool{}
	for _, term := range strings.Split(f.WantedLineage, "&&") {
		terms[term] = true
	}
	return terms
}

// Subsampler replaces a per-OTU count column with a random draw of n
// observations, without replacement, from the multiset the column
// implies.
type Subsampler func(counts []float64, n int, rnd *rand.Rand) ([]float64, error)

// Apply runs the three filtering stages (lineage selection, min-depth
// sample pruning, max-depth rarefaction) and returns a new table. The
// input table is not modified. rnd is consulted only when rarefaction
// actually happens; it must come from an explicit seed so results are
// reproducible.
func (f *FilterPolicy) Apply(t *OtuTable, rnd *rand.Rand) (*OtuTable, error) {
	return f.ApplyWith(t, SubsampleCounts, rnd)
}

// ApplyWith is Apply with a caller-supplied Subsampler.
func (f *FilterPolicy) ApplyWith(t *OtuTable, subsample Subsampler, rnd *rand.Rand) (*OtuTable, error) {
	out := t

	if wanted := f.wantedTerms(); wanted != nil {
		var keep []int
		for i, lineage := range out.Lineages {
			for _, seg := range lineage {
				if wanted[seg] {
					keep = append(keep, i)
					break
				}
			}
		}
		out = out.takeRows(keep)
	} else {
		// the rarefaction stage writes columns in place, so take
		// a full copy even when every row survives
		idx := make([]int, len(t.OtuIDs))
		for i := range idx {
			idx[i] = i
		}
		out = out.takeRows(idx)
	}

	sums := out.SampleSums()
	var keep []int
	for j, sum := range sums {
		if sum >= float64(f.MinSeqsPerSample) {
			keep = append(keep, j)
		}
	}
	if len(keep) < len(out.SampleIDs) {
		out = out.takeCols(keep)
		sums = out.SampleSums()
	}

	if f.MaxSeqsPerSample >= 0 && out.Counts != nil {
		for j, sum := range sums {
			if sum <= float64(f.MaxSeqsPerSample) {
				continue
			}
			col := mat.Col(nil, j, out.Counts)
			newcol, err := subsample(col, f.MaxSeqsPerSample, rnd)
			if err != nil {
				return nil, fmt.Errorf("subsampling sample %q: %w", out.SampleIDs[j], err)
			}
			out.Counts.SetCol(j, newcol)
		}
	}
	return out, nil
}

type filtercmd struct {
	policy FilterPolicy
}

func (cmd *filtercmd) RunCommand(prog string, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	err := cmd.run(args, stdin, stdout, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "%s\n", err)
		return 1
	}
	return 0
}

func (cmd *filtercmd) run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	flags := flag.NewFlagSet("", flag.ContinueOnError)
	flags.SetOutput(stderr)
	inputFilename := flags.String("i", "-", "input `file` (\"-\" = stdin, .gz suffix = gzip)")
	outputFilename := flags.String("o", "-", "output `file`")
	randSeed := flags.Int64("random-seed", 0, "PRNG seed for rarefaction")
	relAbund := flags.Bool("relative-abundance", false, "parse counts as floating point relative abundances")
	cmd.policy.Flags(flags)
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

	log.Print("filtering")
	out, err := cmd.policy.Apply(table, rand.New(rand.NewSource(*randSeed)))
	if err != nil {
		return err
	}
	otus, samples = out.Dims()
	log.Printf("filtering done, %d otus x %d samples", otus, samples)

	outfile, err := openOutput(*outputFilename, stdout)
	if err != nil {
		return err
	}
	defer outfile.Close()
	log.Print("writing")
	if err = out.Write(outfile); err != nil {
		return err
	}
	log.Print("writing done")
	return outfile.Close()
}
