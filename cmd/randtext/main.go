package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/exactpdf/exactpdf/textgen"
)

func main() {
	seed := flag.Uint64("seed", 0, "seed for the word generator")
	flag.Parse()

	if flag.NArg() != 2 {
		fmt.Printf("Usage: %s [options] output.txt size\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	outputFile := flag.Arg(0)
	size, err := strconv.ParseInt(flag.Arg(1), 10, 64)
	if err != nil || size < 0 {
		fmt.Fprintf(os.Stderr, "Error parsing size %q\n", flag.Arg(1))
		os.Exit(1)
	}

	err = textgen.WriteFile(outputFile, size, *seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Successfully wrote %d bytes to %s\n", size, outputFile)
}
