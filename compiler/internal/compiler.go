package internal

import (
	"bytes"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Translate runs one translation session over source. Diagnostics go to reporter, they never
// stop the translation.
func Translate(source TokenSource, reporter Reporter) (*ScopeTable, *CodeBuilder) {
	table, code := NewScopeTable(), NewCodeBuilder()
	NewTranslator(source, reporter, table, code).ParseProgram()
	return table, code
}

// TranslateString is Translate over an in-memory program with a fresh Diagnostics.
func TranslateString(program string) (*ScopeTable, *CodeBuilder, *Diagnostics) {
	diagnostics := &Diagnostics{}
	table, code := Translate(NewTokenizer([]byte(program)), diagnostics)
	return table, code, diagnostics
}

const (
	TokensFile       = "tokens.txt"
	SymbolsFile      = "symbols.txt"
	IntermediateFile = "intermediate.txt"
	ErrorsFile       = "errors.txt"
)

type Options struct {
	// Stop after the token dump when the source has lexical errors.
	StopOnLexicalErrors bool
}

type Result struct {
	Tokens      []*Token
	Table       *ScopeTable // nil when the translation did not run.
	Code        *CodeBuilder
	Diagnostics *Diagnostics
	// Declared variables whose names collide with temporaries, the generated code may clobber them.
	Warnings []string
}

// Compile translates the source file at path and writes tokens.txt, symbols.txt,
// intermediate.txt and errors.txt to outDir. Only I/O failures are returned as errors, the
// diagnostics of the program are in the result.
func Compile(path, outDir string, opts Options) (*Result, error) {
	source, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "compiler: failed to read %s", path)
	}
	if err = os.MkdirAll(outDir, 0755); err != nil {
		return nil, errors.Wrapf(err, "compiler: failed to create output dir %s", outDir)
	}
	result := &Result{Diagnostics: &Diagnostics{}}

	println("compiler: start tokenizer at path: " + path)
	result.Tokens, err = NewTokenizer(nil).Tokenize(bytes.NewReader(source))
	if err != nil {
		return nil, errors.Wrap(err, "compiler: tokenizer failed")
	}
	lexErrors := &Diagnostics{}
	lines := make([]string, 0, len(result.Tokens))
	for _, token := range result.Tokens {
		lines = append(lines, token.String())
		if token.tp == ErrorTP {
			lexErrors.Report(LexicalKind, token.line, token.column, token.msg+": '"+token.content+"'")
		}
	}
	if err = writeOutput(outDir, TokensFile, lines); err != nil {
		return nil, err
	}
	if lexErrors.HasErrors() && opts.StopOnLexicalErrors {
		println("compiler: lexical errors, stop before translation")
		result.Diagnostics = lexErrors
		return result, writeOutput(outDir, ErrorsFile, lexErrors.Lines())
	}

	println("compiler: start translator")
	result.Table, result.Code = Translate(NewTokenizer(source), result.Diagnostics)
	if err = writeOutput(outDir, SymbolsFile, strings.Split(strings.TrimSuffix(result.Table.Dump(), "\n"), "\n")); err != nil {
		return nil, err
	}
	if err = writeOutput(outDir, IntermediateFile, result.Code.RenderAll()); err != nil {
		return nil, err
	}
	for _, entry := range result.Table.Entries() {
		if IsTemporaryName(entry.Name) {
			warning := fmt.Sprintf("variable '%s' at scope %d has the name of a temporary", entry.Name, entry.Level)
			T().Errorf("compiler: %s", warning)
			result.Warnings = append(result.Warnings, warning)
		}
	}
	T().Infof("compiler: %s translated with %d diagnostics", path, len(result.Diagnostics.All()))
	return result, writeOutput(outDir, ErrorsFile, result.Diagnostics.Lines())
}

func writeOutput(outDir, name string, lines []string) error {
	content := strings.Join(lines, "\n")
	if len(lines) > 0 {
		content += "\n"
	}
	target := filepath.Join(outDir, name)
	if err := ioutil.WriteFile(target, []byte(content), 0644); err != nil {
		return errors.Wrapf(err, "compiler: failed to save %s", target)
	}
	return nil
}
