package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func runCode(t *testing.T, code string, maxSteps int) (string, *Runner, error) {
	out := &bytes.Buffer{}
	runner := NewRunner(out, maxSteps)
	err := runner.Parse(strings.NewReader(code))
	assert.Nil(t, err)
	return out.String(), runner, runner.Run()
}

func TestRunner_ParseLine(t *testing.T) {
	lines := []string{
		"copy    2                 t1",
		"add     t1       x        t2",
		"neg     t2                t3",
		"jle     x        t1       L1",
		"goto                      L1",
		"skip    L1",
		"print   x",
		"",
		"   ",
	}
	runner := NewRunner(&bytes.Buffer{}, 0)
	for _, l := range lines {
		err := runner.parseLine([]byte(l))
		assert.Nil(t, err, l)
	}
	assert.Len(t, runner.commands, 7)
	assert.Equal(t, []string{"x", "t1", "L1"}, runner.commands[3].operands)
}

func TestRunner_ParseLineErrors(t *testing.T) {
	lines := []string{
		"push constant 1",
		"copy 2",
		"add t1 t2",
		"print x y",
		"goto",
	}
	runner := NewRunner(&bytes.Buffer{}, 0)
	for _, l := range lines {
		assert.NotNil(t, runner.parseLine([]byte(l)), l)
	}
}

func TestRunner_Labels(t *testing.T) {
	runner := NewRunner(&bytes.Buffer{}, 0)
	assert.NotNil(t, runner.Parse(strings.NewReader("goto L9\n")))
	runner = NewRunner(&bytes.Buffer{}, 0)
	assert.NotNil(t, runner.Parse(strings.NewReader("skip L1\nskip L1\n")))
}

func TestRunner_AssignAndPrint(t *testing.T) {
	out, runner, err := runCode(t, `copy    2                 t1
copy    3                 t2
add     t1       t2       t3
copy    t3                x
print   x
`, 0)
	assert.Nil(t, err)
	assert.Equal(t, "5\n", out)
	assert.Equal(t, int32(5), runner.Value("x"))
}

func TestRunner_Arithmetic(t *testing.T) {
	testData := []struct {
		op       string
		x, y     string
		expected string
	}{
		{op: "add", x: "7", y: "-2", expected: "5"},
		{op: "sub", x: "7", y: "9", expected: "-2"},
		{op: "mul", x: "-3", y: "4", expected: "-12"},
		{op: "div", x: "-7", y: "2", expected: "-3"},
		{op: "mod", x: "-7", y: "2", expected: "-1"},
		{op: "and", x: "-1", y: "0", expected: "0"},
		{op: "or", x: "-1", y: "0", expected: "-1"},
		{op: "add", x: "2147483647", y: "1", expected: "-2147483648"},
	}
	for _, data := range testData {
		out, _, err := runCode(t, data.op+" "+data.x+" "+data.y+" t1\nprint t1\n", 0)
		assert.Nil(t, err, data)
		assert.Equal(t, data.expected+"\n", out, data)
	}
	out, _, err := runCode(t, "not -1 t1\nprint t1\nneg 5 t2\nprint t2\nprint never_written\n", 0)
	assert.Nil(t, err)
	assert.Equal(t, "0\n-5\n0\n", out)
}

func TestRunner_DivisionByZero(t *testing.T) {
	_, _, err := runCode(t, "div 1 0 t1\n", 0)
	assert.NotNil(t, err)
	_, _, err = runCode(t, "mod 1 zero t1\n", 0)
	assert.NotNil(t, err)
}

// if (x < 1) print(1); else print(2); with x = 0, then x = 5.
func TestRunner_IfElse(t *testing.T) {
	code := `copy    1                 t1
jlt     x        t1       L1
copy    0                 t2
goto                      L2
skip    L1
copy    -1                t2
skip    L2
jeq     t2       0        L3
copy    1                 t3
print   t3
goto                      L4
skip    L3
copy    2                 t4
print   t4
skip    L4
`
	out, _, err := runCode(t, code, 0)
	assert.Nil(t, err)
	assert.Equal(t, "1\n", out)
	out, _, err = runCode(t, "copy 5 x\n"+code, 0)
	assert.Nil(t, err)
	assert.Equal(t, "2\n", out)
}

// i = 0; while (i < 3) { print(i); i = i + 1; }
func TestRunner_While(t *testing.T) {
	code := `copy    0                 t1
copy    t1                i
skip    L1
copy    3                 t2
jlt     i        t2       L3
copy    0                 t3
goto                      L4
skip    L3
copy    -1                t3
skip    L4
jeq     t3       0        L2
print   i
copy    1                 t4
add     i        t4       t5
copy    t5                i
goto                      L1
skip    L2
`
	out, _, err := runCode(t, code, 0)
	assert.Nil(t, err)
	assert.Equal(t, "0\n1\n2\n", out)
}

func TestRunner_StepBudget(t *testing.T) {
	out, _, err := runCode(t, "skip L1\ncopy -1 t1\njeq t1 0 L2\ncopy 1 t2\nprint t2\ngoto L1\nskip L2\n", 20)
	assert.NotNil(t, err)
	assert.True(t, strings.HasPrefix(out, "1\n1\n"))
}
