package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/exactpdf/exactpdf"
	"github.com/exactpdf/exactpdf/pdf"
)

func main() {
	verbose := flag.Bool("v", false, "print the overhead breakdown")
	check := flag.Bool("check", false, "re-read the written file and verify its structure")
	flag.Parse()

	if flag.NArg() != 2 {
		fmt.Printf("Usage: %s [options] output.pdf size\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	outputFile := flag.Arg(0)
	size, err := strconv.ParseInt(flag.Arg(1), 10, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing size %q: %v\n", flag.Arg(1), err)
		os.Exit(1)
	}

	if *verbose {
		overhead, err := exactpdf.EstimateOverhead(size)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("target size:     %d\n", size)
		fmt.Printf("fixed overhead:  %d\n", overhead.Base)
		fmt.Printf("length digits:   %d\n", overhead.Start)
		fmt.Printf("offset digits:   %d\n", overhead.End)
		fmt.Printf("payload bytes:   %d\n", size-overhead.Total())
	}

	doc, err := exactpdf.Generate(size)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating document: %v\n", err)
		os.Exit(1)
	}
	err = doc.Save(outputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
		os.Exit(1)
	}

	if *check {
		buf, err := os.ReadFile(outputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error re-reading output file: %v\n", err)
			os.Exit(1)
		}
		if int64(len(buf)) != size {
			fmt.Fprintf(os.Stderr, "Error: file has %d bytes, expected %d\n",
				len(buf), size)
			os.Exit(1)
		}
		info, err := pdf.ReadInfo(buf)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error verifying output file: %v\n", err)
			os.Exit(1)
		}
		if *verbose {
			fmt.Printf("verified: PDF-%s, %d objects, xref at %d\n",
				info.Version, info.Size-1, info.XRefPos)
		}
	}

	fmt.Printf("Successfully wrote %d bytes to %s\n", size, outputFile)
}
