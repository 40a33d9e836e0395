package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/pkg/errors"
	"github.com/xiaobogaga/minilang/util"
)

// A simple runner executing the three-address code written to intermediate.txt.

// Every line is: mnemonic operands..., separated by blanks. Which operands a line carries is
// decided by its mnemonic:
// * copy src dst, neg src dst, not src dst
// * add|sub|mul|div|mod|and|or x y dst
// * jeq|jne|jlt|jle|jgt|jge x y label
// * goto label
// * skip label
// * print x
// An operand is an integer literal or a variable/temporary name. Names which were never written
// read as 0. Values are 32 bits integers, true is -1 and false is 0.

type KeyWordTP int

const (
	CopyKeyWordTP KeyWordTP = iota
	AddKeyWordTP
	SubKeyWordTP
	MulKeyWordTP
	DivKeyWordTP
	ModKeyWordTP
	AndKeyWordTP
	OrKeyWordTP
	NegKeyWordTP
	NotKeyWordTP
	JeqKeyWordTP
	JneKeyWordTP
	JltKeyWordTP
	JleKeyWordTP
	JgtKeyWordTP
	JgeKeyWordTP
	GotoKeyWordTP
	SkipKeyWordTP
	PrintKeyWordTP
)

var keyWordsMap = map[string]KeyWordTP{
	"copy":  CopyKeyWordTP,
	"add":   AddKeyWordTP,
	"sub":   SubKeyWordTP,
	"mul":   MulKeyWordTP,
	"div":   DivKeyWordTP,
	"mod":   ModKeyWordTP,
	"and":   AndKeyWordTP,
	"or":    OrKeyWordTP,
	"neg":   NegKeyWordTP,
	"not":   NotKeyWordTP,
	"jeq":   JeqKeyWordTP,
	"jne":   JneKeyWordTP,
	"jlt":   JltKeyWordTP,
	"jle":   JleKeyWordTP,
	"jgt":   JgtKeyWordTP,
	"jge":   JgeKeyWordTP,
	"goto":  GotoKeyWordTP,
	"skip":  SkipKeyWordTP,
	"print": PrintKeyWordTP,
}

// operandsCount is how many operands each command is written with.
var operandsCount = map[KeyWordTP]int{
	CopyKeyWordTP:  2,
	AddKeyWordTP:   3,
	SubKeyWordTP:   3,
	MulKeyWordTP:   3,
	DivKeyWordTP:   3,
	ModKeyWordTP:   3,
	AndKeyWordTP:   3,
	OrKeyWordTP:    3,
	NegKeyWordTP:   2,
	NotKeyWordTP:   2,
	JeqKeyWordTP:   3,
	JneKeyWordTP:   3,
	JltKeyWordTP:   3,
	JleKeyWordTP:   3,
	JgtKeyWordTP:   3,
	JgeKeyWordTP:   3,
	GotoKeyWordTP:  1,
	SkipKeyWordTP:  1,
	PrintKeyWordTP: 1,
}

type command struct {
	tp       KeyWordTP
	operands []string
	line     int
}

// target is the label a jump or a label marker refers to.
func (c *command) target() string {
	return c.operands[len(c.operands)-1]
}

func (c *command) isJump() bool {
	return c.tp == GotoKeyWordTP || (c.tp >= JeqKeyWordTP && c.tp <= JgeKeyWordTP)
}

type Runner struct {
	lineCounter int
	commands    []*command
	labels      map[string]int
	memory      map[string]int32
	output      io.Writer
	maxSteps    int
	steps       int
}

func NewRunner(output io.Writer, maxSteps int) *Runner {
	return &Runner{
		labels:   map[string]int{},
		memory:   map[string]int32{},
		output:   output,
		maxSteps: maxSteps,
	}
}

// Parse reads all commands of rd and indexes the labels.
func (runner *Runner) Parse(rd io.Reader) error {
	reader := bufio.NewReader(rd)
	for {
		line, err := reader.ReadBytes('\n')
		if err != nil && err != io.EOF {
			return errors.Wrap(err, "runner: failed to read code")
		}
		runner.lineCounter++
		if parseErr := runner.parseLine(line); parseErr != nil {
			return parseErr
		}
		if err == io.EOF {
			break
		}
	}
	return runner.buildLabelIndex()
}

// getNextToken returns the next blank separated token of line and the remaining line.
func (runner *Runner) getNextToken(line []byte) (string, []byte) {
	line = bytes.TrimLeft(line, " \t\r\n\f\v")
	for i := 0; i < len(line); i++ {
		if util.IsSpace(line[i]) {
			return string(line[:i]), line[i:]
		}
	}
	return string(line), nil
}

func (runner *Runner) parseLine(line []byte) error {
	token, line := runner.getNextToken(line)
	if len(token) == 0 {
		return nil
	}
	keyWordTP, exist := keyWordsMap[token]
	if !exist {
		return runner.makeError(token, "unknown command")
	}
	cmd := &command{tp: keyWordTP, line: runner.lineCounter}
	for i := 0; i < operandsCount[keyWordTP]; i++ {
		var operand string
		operand, line = runner.getNextToken(line)
		if len(operand) == 0 {
			return runner.makeError(token, "missing operand")
		}
		cmd.operands = append(cmd.operands, operand)
	}
	if remain, _ := runner.getNextToken(line); len(remain) != 0 {
		return runner.makeError(remain, "unexpected operand")
	}
	runner.commands = append(runner.commands, cmd)
	return nil
}

// buildLabelIndex maps every label to the position of its marker and checks every jump has a
// target.
func (runner *Runner) buildLabelIndex() error {
	for i, cmd := range runner.commands {
		if cmd.tp != SkipKeyWordTP {
			continue
		}
		if _, ok := runner.labels[cmd.target()]; ok {
			return errors.Errorf("runner: duplicate label %s at line %d", cmd.target(), cmd.line)
		}
		runner.labels[cmd.target()] = i
	}
	for _, cmd := range runner.commands {
		if !cmd.isJump() {
			continue
		}
		if _, ok := runner.labels[cmd.target()]; !ok {
			return errors.Errorf("runner: jump to unknown label %s at line %d", cmd.target(), cmd.line)
		}
	}
	return nil
}

// Run executes the parsed commands from the first one until the end of the code.
func (runner *Runner) Run() error {
	pc := 0
	for pc < len(runner.commands) {
		runner.steps++
		if runner.maxSteps > 0 && runner.steps > runner.maxSteps {
			return errors.Errorf("runner: step budget of %d exceeded", runner.maxSteps)
		}
		next, err := runner.execute(runner.commands[pc], pc)
		if err != nil {
			return err
		}
		pc = next
	}
	return nil
}

// execute runs cmd which sits at pc and returns the position of the next command.
func (runner *Runner) execute(cmd *command, pc int) (int, error) {
	switch cmd.tp {
	case SkipKeyWordTP:
	case CopyKeyWordTP:
		v, err := runner.value(cmd.operands[0])
		if err != nil {
			return 0, err
		}
		runner.memory[cmd.operands[1]] = v
	case NegKeyWordTP, NotKeyWordTP:
		v, err := runner.value(cmd.operands[0])
		if err != nil {
			return 0, err
		}
		if cmd.tp == NegKeyWordTP {
			runner.memory[cmd.operands[1]] = -v
		} else {
			runner.memory[cmd.operands[1]] = ^v
		}
	case AddKeyWordTP, SubKeyWordTP, MulKeyWordTP, DivKeyWordTP, ModKeyWordTP, AndKeyWordTP, OrKeyWordTP:
		x, y, err := runner.values(cmd)
		if err != nil {
			return 0, err
		}
		v, err := arithmetic(cmd, x, y)
		if err != nil {
			return 0, err
		}
		runner.memory[cmd.operands[2]] = v
	case JeqKeyWordTP, JneKeyWordTP, JltKeyWordTP, JleKeyWordTP, JgtKeyWordTP, JgeKeyWordTP:
		x, y, err := runner.values(cmd)
		if err != nil {
			return 0, err
		}
		if compare(cmd.tp, x, y) {
			return runner.labels[cmd.target()], nil
		}
	case GotoKeyWordTP:
		return runner.labels[cmd.target()], nil
	case PrintKeyWordTP:
		v, err := runner.value(cmd.operands[0])
		if err != nil {
			return 0, err
		}
		if _, err = fmt.Fprintln(runner.output, v); err != nil {
			return 0, errors.Wrap(err, "runner: failed to print")
		}
	}
	return pc + 1, nil
}

func (runner *Runner) values(cmd *command) (int32, int32, error) {
	x, err := runner.value(cmd.operands[0])
	if err != nil {
		return 0, 0, err
	}
	y, err := runner.value(cmd.operands[1])
	return x, y, err
}

// value reads an operand: an integer literal, or the current value of a name.
func (runner *Runner) value(operand string) (int32, error) {
	if util.IsNumber(operand[0]) || (operand[0] == '-' && len(operand) > 1) {
		v, err := strconv.ParseInt(operand, 10, 32)
		if err != nil {
			return 0, errors.Wrapf(err, "runner: bad literal %s", operand)
		}
		return int32(v), nil
	}
	return runner.memory[operand], nil
}

func arithmetic(cmd *command, x, y int32) (int32, error) {
	switch cmd.tp {
	case AddKeyWordTP:
		return x + y, nil
	case SubKeyWordTP:
		return x - y, nil
	case MulKeyWordTP:
		return x * y, nil
	case DivKeyWordTP, ModKeyWordTP:
		if y == 0 {
			return 0, errors.Errorf("runner: division by zero at line %d", cmd.line)
		}
		if cmd.tp == DivKeyWordTP {
			return x / y, nil
		}
		return x % y, nil
	case AndKeyWordTP:
		return x & y, nil
	case OrKeyWordTP:
		return x | y, nil
	}
	return 0, errors.Errorf("runner: not an arithmetic command at line %d", cmd.line)
}

func compare(tp KeyWordTP, x, y int32) bool {
	switch tp {
	case JeqKeyWordTP:
		return x == y
	case JneKeyWordTP:
		return x != y
	case JltKeyWordTP:
		return x < y
	case JleKeyWordTP:
		return x <= y
	case JgtKeyWordTP:
		return x > y
	case JgeKeyWordTP:
		return x >= y
	}
	return false
}

// Value returns the current value of a variable or temporary.
func (runner *Runner) Value(name string) int32 {
	return runner.memory[name]
}

func (runner *Runner) makeError(near, msg string) error {
	return errors.Errorf("runner: error near %s at line %d, msg: %s", near, runner.lineCounter, msg)
}
