// Copyright (c) 2017 Temple3x (temple3x@gmail.com)
//
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// This tool derives the generator polynomial of the (17, 9, 5) cyclic code,
// and prints it with its generator, parity-check matrices and syndrome table.
package main

import (
	"bufio"
	"fmt"
	"io"
	"math/bits"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/templexxx/cyclic"
)

type pattern struct {
	Syndrome uint8  `yaml:"syndrome"`
	Pattern  string `yaml:"pattern"`
	Weight   int    `yaml:"weight"`
}

type tables struct {
	Factors     []string  `yaml:"factors"`
	Generator   string    `yaml:"generator"`
	GenValue    uint32    `yaml:"generator_value"`
	GenMatrix   []string  `yaml:"generator_matrix"`
	CheckMatrix []string  `yaml:"parity_check_matrix"`
	Patterns    []pattern `yaml:"patterns"`
}

func main() {
	output := pflag.StringP("output", "o", "", "Output file. Standard output if empty.")
	format := pflag.StringP("format", "f", "go", "Output format: go or yaml.")
	verbose := pflag.BoolP("verbose", "v", false, "Log every factor of x^17+1.")
	help := pflag.BoolP("help", "h", false, "Display help text.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintln(os.Stderr, "  gentbls [-flags]")
		fmt.Fprintln(os.Stderr, "  Valid flags:")
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if *help {
		pflag.Usage()
		os.Exit(0)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "gentbls"})
	if *verbose {
		logger.SetLevel(log.DebugLevel)
	}

	if err := run(logger, *output, *format); err != nil {
		logger.Fatal("gentbls failed", "err", err)
	}
}

// run derives the tables and writes them to output (standard output if empty).
// The output file is closed before run returns.
func run(logger *log.Logger, output, format string) error {
	if format != "go" && format != "yaml" {
		return fmt.Errorf("unknown format %q", format)
	}

	t, err := genTables(logger)
	if err != nil {
		return fmt.Errorf("derive generator: %w", err)
	}

	if output == "" {
		err = writeTables(os.Stdout, t, format)
	} else {
		f, oerr := os.OpenFile(output, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if oerr != nil {
			return fmt.Errorf("open output: %w", oerr)
		}
		err = writeTables(f, t, format)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}
	if err != nil {
		return fmt.Errorf("write tables: %w", err)
	}
	logger.Info("tables written", "generator", t.Generator, "patterns", len(t.Patterns))
	return nil
}

func writeTables(w io.Writer, t *tables, format string) error {
	bw := bufio.NewWriter(w)
	var err error
	if format == "go" {
		err = writeGo(bw, t)
	} else {
		err = yaml.NewEncoder(bw).Encode(t)
	}
	if err != nil {
		return err
	}
	return bw.Flush()
}

func genTables(logger *log.Logger) (*tables, error) {
	t := new(tables)
	for _, f := range cyclic.Factors() {
		p := formatPolynomial(f)
		logger.Debug("factor of x^17+1", "poly", p, "value", fmt.Sprintf("%#x", f))
		t.Factors = append(t.Factors, p)
	}

	g := cyclic.DeriveGenerator()
	if g != cyclic.Generator {
		return nil, fmt.Errorf("derived generator %#x mismatched cyclic.Generator %#x", g, cyclic.Generator)
	}
	t.Generator = formatPolynomial(g)
	t.GenValue = g

	for _, row := range cyclic.GeneratorMatrix() {
		t.GenMatrix = append(t.GenMatrix, fmt.Sprintf("%0*b", cyclic.N, row))
	}
	for _, row := range cyclic.ParityCheckMatrix() {
		t.CheckMatrix = append(t.CheckMatrix, fmt.Sprintf("%0*b", cyclic.N, row))
	}

	for s := 1; s < 1<<cyclic.ParityBits; s++ {
		pat, ok := cyclic.ErrorPattern(uint8(s))
		if !ok {
			continue
		}
		t.Patterns = append(t.Patterns, pattern{
			Syndrome: uint8(s),
			Pattern:  fmt.Sprintf("%0*b", cyclic.N, pat),
			Weight:   bits.OnesCount32(pat),
		})
	}
	return t, nil
}

// writeGo writes t as Go source, one syndrome per line of the pattern table.
func writeGo(w io.Writer, t *tables) error {
	bw := &errWriter{w: w}
	bw.printf("// Factors of x^17+1: %v\n", t.Factors)
	bw.printf("// Generator: %s\n\n", t.Generator)

	bw.printf("var genMatrix = [%d]uint32{\n", len(t.GenMatrix))
	for _, row := range t.GenMatrix {
		bw.printf("\t0b%s,\n", row)
	}
	bw.printf("}\n\n")

	bw.printf("var checkMatrix = [%d]uint32{\n", len(t.CheckMatrix))
	for _, row := range t.CheckMatrix {
		bw.printf("\t0b%s,\n", row)
	}
	bw.printf("}\n\n")

	byS := make(map[uint8]string, len(t.Patterns))
	for _, p := range t.Patterns {
		byS[p.Syndrome] = p.Pattern
	}
	bw.printf("var patternTbl = [%d]uint32{\n", 1<<cyclic.ParityBits)
	for s := 0; s < 1<<cyclic.ParityBits; s++ {
		if p, ok := byS[uint8(s)]; ok {
			bw.printf("\t0b%s, // 0x%02x\n", p, s)
		} else {
			bw.printf("\t0, // 0x%02x\n", s)
		}
	}
	bw.printf("}\n")
	return bw.err
}

type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, a ...interface{}) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, a...)
}

func formatPolynomial(p uint32) string {
	var ps string
	for i := cyclic.PolyDeg(uint64(p)); i >= 0; i-- {
		if p>>uint(i)&1 == 0 {
			continue
		}
		if ps != "" {
			ps += "+"
		}
		switch i {
		case 0:
			ps += "1"
		case 1:
			ps += "x"
		default:
			ps += "x^" + strconv.Itoa(i)
		}
	}
	if ps == "" {
		return "0"
	}
	return ps
}
