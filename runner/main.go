package main

import (
	"flag"
	"fmt"
	"os"
)

// A simple program to execute the intermediate code written by the compiler.

var (
	path     = flag.String("path", "./out/intermediate.txt", "the intermediate code file")
	maxSteps = flag.Int("max_steps", 1000000, "how many commands may run before giving up, 0 means no limit")
	verbose  = flag.Bool("v", false, "whether print the command count after running")
)

func main() {
	flag.Parse()
	f, err := os.Open(*path)
	if err != nil {
		fmt.Printf("[Runner]: failed to open file: %s, err: %v\n", *path, err)
		os.Exit(2)
	}
	defer f.Close()
	runner := NewRunner(os.Stdout, *maxSteps)
	if err = runner.Parse(f); err != nil {
		fmt.Printf("[Runner]: failed to parse program: %s, err: %v\n", *path, err)
		os.Exit(2)
	}
	err = runner.Run()
	if *verbose {
		fmt.Printf("[Runner]: %d commands executed\n", runner.steps)
	}
	if err != nil {
		fmt.Printf("[Runner]: failed to run program: %s, err: %v\n", *path, err)
		os.Exit(1)
	}
}
