// Copyright (c) 2017 Temple3x (temple3x@gmail.com)
//
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// This tool counts, per error weight, how the (17, 9, 5) decoder handles
// every error pattern: corrected, miscorrected into another codeword,
// or detected as uncorrectable.
// It can also print the weight distribution of the code.
package main

import (
	"fmt"
	"io"
	"math/bits"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/templexxx/cyclic"
)

var (
	weightFlag = pflag.IntP("weight", "w", -1, "error weight to count; keep it negative to count all weights")
	distFlag   = pflag.BoolP("distribution", "d", false, "print the weight distribution of the code")
)

func init() {
	pflag.Usage = func() {
		fmt.Printf("Usage of %s:\n", os.Args[0])
		fmt.Println("  cntpatterns [-flags]")
		fmt.Println("  Valid flags:")
		pflag.PrintDefaults()
	}
}

type counts struct {
	weight       int
	total        int
	corrected    int
	miscorrected int
	detected     int
}

func main() {
	pflag.Parse()

	if *weightFlag > cyclic.N {
		log.Fatal("weight out of range", "weight", *weightFlag, "max", cyclic.N)
	}

	var err error
	if *distFlag {
		err = printDistribution(os.Stdout, weightDistribution())
	} else if *weightFlag >= 0 {
		err = printCounts(os.Stdout, []counts{countPatterns(*weightFlag)})
	} else {
		cs := make([]counts, 0, cyclic.N+1)
		for w := 0; w <= cyclic.N; w++ {
			cs = append(cs, countPatterns(w))
		}
		err = printCounts(os.Stdout, cs)
	}
	if err != nil {
		log.Fatal("print", "err", err)
	}
}

// countPatterns decodes every error pattern of weight w
// added to the all-zero codeword.
// The code is linear, so any other codeword gives the same counts.
func countPatterns(w int) counts {
	c := counts{weight: w, total: cyclic.Binomial(cyclic.N, w)}
	for e := uint32(0); e <= cyclic.CodewordMask; e++ {
		if bits.OnesCount32(e) != w {
			continue
		}
		cw, _, err := cyclic.Correct(e)
		switch {
		case err != nil:
			c.detected++
		case cw == 0:
			c.corrected++
		default:
			c.miscorrected++
		}
	}
	return c
}

// weightDistribution returns the number of codewords of every weight.
func weightDistribution() []int {
	dist := make([]int, cyclic.N+1)
	for d := uint16(0); d <= uint16(cyclic.MessageMask); d++ {
		dist[bits.OnesCount32(cyclic.MustEncode(d))]++
	}
	return dist
}

func printCounts(w io.Writer, cs []counts) error {
	_, err := fmt.Fprintf(w, "%6s %8s %10s %13s %9s\n",
		"weight", "total", "corrected", "miscorrected", "detected")
	if err != nil {
		return err
	}
	for _, c := range cs {
		_, err = fmt.Fprintf(w, "%6d %8d %10d %13d %9d\n",
			c.weight, c.total, c.corrected, c.miscorrected, c.detected)
		if err != nil {
			return err
		}
	}
	return nil
}

func printDistribution(w io.Writer, dist []int) error {
	for i, n := range dist {
		if n == 0 {
			continue
		}
		if _, err := fmt.Fprintf(w, "A%d = %d\n", i, n); err != nil {
			return err
		}
	}
	return nil
}
