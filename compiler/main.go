package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/xiaobogaga/minilang/compiler/internal"
)

// Translates one source file and writes tokens.txt, symbols.txt, intermediate.txt and errors.txt.

var (
	path      = flag.String("path", "./input.src", "the source file needs to be compiled")
	outDir    = flag.String("o", "out", "the directory the outputs are saved to")
	stopOnLex = flag.Bool("stop_on_lex", true, "whether stop before translation when there are lexical errors")
	verbose   = flag.Bool("v", false, "whether print the intermediate code")
	trace     = flag.Bool("trace", false, "whether trace the translator to stderr")
)

func main() {
	flag.Parse()
	if *trace {
		if err := gtrace.CreateTracers(gologadapter.GetAdapter()); err != nil {
			fmt.Printf("Error: %+v\n", err)
			os.Exit(2)
		}
		gtrace.SyntaxTracer.SetTraceLevel(tracing.LevelDebug)
	}
	result, err := internal.Compile(*path, *outDir, internal.Options{StopOnLexicalErrors: *stopOnLex})
	if err != nil {
		fmt.Printf("Error: %+v\n", err)
		os.Exit(2)
	}
	if *verbose && result.Code != nil {
		fmt.Print(result.Code.String())
	}
	for _, warning := range result.Warnings {
		fmt.Println("compiler: warning: " + warning)
	}
	if result.Diagnostics.HasErrors() {
		for _, line := range result.Diagnostics.Lines() {
			fmt.Println(line)
		}
		fmt.Printf("compiler: %d errors, see %s/%s\n", len(result.Diagnostics.All()), *outDir, internal.ErrorsFile)
		os.Exit(1)
	}
	fmt.Printf("compiler: OK, outputs in %s/\n", *outDir)
}
