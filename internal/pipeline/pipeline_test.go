package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These mirror spec.md's end-to-end scenario table: one test per row,
// checking the emitted C rather than executing it (no C toolchain runs as
// part of this module).

func TestScenarioConstantAdditionIsFolded(t *testing.T) {
	src := "def main():\n    x = 1 + 2\n    print(x)\n    return 0\n"
	res, err := Compile("t.sp", src, Options{Optimize: true})
	require.Nil(t, err)
	assert.Contains(t, res.C, "int x = 3;")
	assert.NotContains(t, res.C, "(1 + 2)")
}

func TestScenarioStringConcatenation(t *testing.T) {
	src := "def main():\n    s = \"hello\" + \" world\"\n    print(s)\n    return 0\n"
	res, err := Compile("t.sp", src, Options{Optimize: false})
	require.Nil(t, err)
	assert.Contains(t, res.C, "malloc(")
	assert.Contains(t, res.C, "strcpy(")
	assert.Contains(t, res.C, "strcat(")
}

func TestScenarioDeadBranchEliminationWithOptimize(t *testing.T) {
	src := "def main():\n    if False:\n        print(1)\n    else:\n        print(2)\n    return 0\n"
	res, err := Compile("t.sp", src, Options{Optimize: true})
	require.Nil(t, err)
	assert.Contains(t, res.C, `printf("%d\n", 2);`)
	assert.NotContains(t, res.C, `printf("%d\n", 1);`)
}

func TestScenarioBothBranchesEmittedWithoutOptimize(t *testing.T) {
	src := "def main():\n    if False:\n        print(1)\n    else:\n        print(2)\n    return 0\n"
	res, err := Compile("t.sp", src, Options{Optimize: false})
	require.Nil(t, err)
	assert.Contains(t, res.C, `printf("%d\n", 1);`)
	assert.Contains(t, res.C, `printf("%d\n", 2);`)
	assert.Contains(t, res.C, "if (0) {")
}

func TestScenarioUserFunctionCall(t *testing.T) {
	src := "def add(a: int, b: int) -> int:\n    return a + b\ndef main():\n    print(add(3, 4))\n    return 0\n"
	res, err := Compile("t.sp", src, Options{Optimize: false})
	require.Nil(t, err)
	assert.Contains(t, res.C, "int add(int a, int b) {")
	assert.Contains(t, res.C, "add(3, 4)")
}

func TestScenarioArrayIndexFoldsToConstant(t *testing.T) {
	src := "def main():\n    a = [1, 2, 3]\n    print(a[1])\n    return 0\n"
	res, err := Compile("t.sp", src, Options{Optimize: true})
	require.Nil(t, err)
	assert.Contains(t, res.C, `printf("%d\n", 2);`)
}

func TestScenarioBoolAndFoldsToFalse(t *testing.T) {
	src := "def main():\n    x = True and False\n    return 0\n"
	res, err := Compile("t.sp", src, Options{Optimize: true})
	require.Nil(t, err)
	assert.Contains(t, res.C, "int x = 0;")
}

func TestScenarioArrayConcatenationAndIndexFold(t *testing.T) {
	src := "def main():\n    a = [1, 2] + [3, 4]\n    print(a[2])\n    return 0\n"
	unopt, err := Compile("t.sp", src, Options{Optimize: false})
	require.Nil(t, err)
	assert.Contains(t, unopt.C, "malloc(")
	assert.Contains(t, unopt.C, "memcpy(")
	res, err := Compile("t.sp", src, Options{Optimize: true})
	require.Nil(t, err)
	assert.Contains(t, res.C, `printf("%d\n", 3);`)
}

func TestScenarioIllTypedAdditionFailsTypeCheck(t *testing.T) {
	src := "def main():\n    x = 1 + \"hi\"\n    return 0\n"
	_, err := Compile("t.sp", src, Options{Optimize: false})
	require.NotNil(t, err)
	assert.Equal(t, "E0004", err.Code)
}

func TestScenarioNegativeConstantIndexIsRejected(t *testing.T) {
	src := "def main():\n    a = [1, 2, 3]\n    print(a[-1])\n    return 0\n"
	_, err := Compile("t.sp", src, Options{Optimize: true})
	require.NotNil(t, err)
	assert.Equal(t, "E0200", err.Code)
}

func TestRoundTripDeterminism(t *testing.T) {
	src := "def main():\n    x = 1 + 2\n    print(x)\n    return 0\n"
	first, err1 := Compile("t.sp", src, Options{Optimize: true})
	require.Nil(t, err1)
	second, err2 := Compile("t.sp", src, Options{Optimize: true})
	require.Nil(t, err2)
	assert.Equal(t, first.C, second.C)
}

func TestOptimizerSoundnessFoldedAndUnfoldedAgreeOnObservables(t *testing.T) {
	src := "def main():\n    x = 2 * 3\n    print(x)\n    return 0\n"
	unopt, err := Compile("t.sp", src, Options{Optimize: false})
	require.Nil(t, err)
	opt, err := Compile("t.sp", src, Options{Optimize: true})
	require.Nil(t, err)
	assert.Contains(t, unopt.C, "int x = (2 * 3);")
	assert.Contains(t, opt.C, `printf("%d\n", 6);`)
}
