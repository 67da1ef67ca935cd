package ast_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bali/internal/ast"
	"bali/internal/parser"
)

func valueOf(t *testing.T, source string) any {
	t.Helper()
	node, err := parser.ParseComponent("test.bali", source)
	require.NoError(t, err, source)
	value, err := ast.Value(node)
	require.NoError(t, err, source)
	return value
}

func TestNumberValues(t *testing.T) {
	assert.Equal(t, int64(5), valueOf(t, "5"))
	assert.Equal(t, 3.14, valueOf(t, "3.14"))
	assert.Equal(t, -0.5, valueOf(t, "-0.5"))
	assert.Equal(t, math.Pi, valueOf(t, "pi"))
	assert.Equal(t, math.E, valueOf(t, "e"))
	assert.Equal(t, math.Phi, valueOf(t, "phi"))
	assert.Equal(t, complex(0, 1), valueOf(t, "i"))
	assert.True(t, math.IsInf(valueOf(t, "infinity").(float64), 1))
	assert.True(t, math.IsNaN(valueOf(t, "undefined").(float64)))
}

func TestComplexValues(t *testing.T) {
	assert.Equal(t, complex(3, 4), valueOf(t, "(3, 4i)"))

	polar := valueOf(t, "(1 e^ 3.141592653589793i)").(complex128)
	assert.InDelta(t, -1.0, real(polar), 1e-9)
	assert.InDelta(t, 0.0, imag(polar), 1e-9)
}

func TestProbabilityValues(t *testing.T) {
	assert.Equal(t, true, valueOf(t, "true"))
	assert.Equal(t, false, valueOf(t, "false"))
	assert.Equal(t, 0.5, valueOf(t, ".5"))
}

func TestTextValues(t *testing.T) {
	assert.Equal(t, "hello", valueOf(t, `"hello"`))
	assert.Equal(t, `say "hi"`, valueOf(t, `"say \"hi\""`))
}

func TestBinaryValue(t *testing.T) {
	assert.Equal(t, []byte("hello world"), valueOf(t, "'aGVsbG8gd29ybGQ='"))
}

func TestMomentValue(t *testing.T) {
	moment := valueOf(t, "<2024-06-15T10:30:00>").(time.Time)
	assert.Equal(t, 2024, moment.Year())
	assert.Equal(t, time.June, moment.Month())
	assert.Equal(t, 15, moment.Day())

	partial := valueOf(t, "<2024-06>").(time.Time)
	assert.Equal(t, time.June, partial.Month())
}

func TestStringlyValues(t *testing.T) {
	assert.Equal(t, "$symbol", valueOf(t, "$symbol"))
	assert.Equal(t, "#A3GHK57Z", valueOf(t, "#A3GHK57Z"))
	assert.Equal(t, "v1.2.3", valueOf(t, "v1.2.3"))
	assert.Equal(t, "~P1Y", valueOf(t, "~P1Y"))
	assert.Equal(t, "<https://bali.dev/>", valueOf(t, "<https://bali.dev/>"))
	assert.Equal(t, "none", valueOf(t, "none"))
	assert.Equal(t, "any", valueOf(t, "any"))
}

func TestStructureValues(t *testing.T) {
	assert.Equal(t, []any{int64(1), int64(2), int64(3)}, valueOf(t, "[1, 2, 3]"))

	table := valueOf(t, `["a": 1, "b": 2]`).([]ast.Association)
	require.Len(t, table, 2)
	assert.Equal(t, "a", table[0].Key)
	assert.Equal(t, int64(1), table[0].Value)

	span := valueOf(t, "[1..10]").(ast.Range)
	assert.Equal(t, int64(1), span.First)
	assert.Equal(t, int64(10), span.Last)
}

func TestBlockValueIsTheTreeItself(t *testing.T) {
	node, err := parser.ParseComponent("test.bali", "{return 1}")
	require.NoError(t, err)
	value, err := ast.Value(node)
	require.NoError(t, err)
	block, ok := value.(*ast.Tree)
	require.True(t, ok)
	assert.Equal(t, ast.BLOCK, block.Kind())
}

func TestDocumentValueSkipsShellLine(t *testing.T) {
	node, err := parser.ParseDocument("test.bali", "#!/usr/bin/env bali\n42\n")
	require.NoError(t, err)
	value, err := ast.Value(node)
	require.NoError(t, err)
	assert.Equal(t, int64(42), value)
}

func TestExpressionsHaveNoStaticValue(t *testing.T) {
	sources := []string{
		"1 + 2",
		"$a < $b",
		"$a and $b",
		"$a ? $b",
		"$obj.get(1)",
		"$list[1]",
		"random()",
		"3!",
		"@$citation",
		"-$x",
		"not $done",
		"|$vector|",
		"(1 + 2)",
		"x",
	}
	for _, source := range sources {
		node, err := parser.ParseExpression("test.bali", source)
		require.NoError(t, err, source)
		_, err = ast.Value(node)
		require.Error(t, err, source)
		conversion, ok := err.(*ast.ConversionError)
		require.True(t, ok, source)
		assert.True(t, conversion.Kind.IsExpression(), source)
	}
}

func TestStructureWithExpressionHasNoStaticValue(t *testing.T) {
	node, err := parser.ParseComponent("test.bali", "[1, 2 + 3]")
	require.NoError(t, err)
	_, err = ast.Value(node)
	assert.Error(t, err)
}
