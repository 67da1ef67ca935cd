package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bali/internal/ast"
)

func parseExpr(t *testing.T, source string) ast.Node {
	t.Helper()
	node, err := ParseExpression("test.bali", source)
	require.NoError(t, err, source)
	return node
}

func asTree(t *testing.T, node ast.Node) *ast.Tree {
	t.Helper()
	tree, ok := node.(*ast.Tree)
	require.True(t, ok)
	return tree
}

func TestMultiplicationBindsTighterThanComparison(t *testing.T) {
	tree := asTree(t, parseExpr(t, "1 + 2 < 3 * 4"))
	assert.Equal(t, ast.COMPARISON_EXPRESSION, tree.Kind())
	assert.Equal(t, "<", tree.Operator())
	assert.Equal(t, ast.ARITHMETIC_EXPRESSION, asTree(t, tree.Child(0)).Kind())
	assert.Equal(t, ast.ARITHMETIC_EXPRESSION, asTree(t, tree.Child(1)).Kind())
}

func TestMultiplicationBindsTighterThanAddition(t *testing.T) {
	tree := asTree(t, parseExpr(t, "2 + 3 * 4"))
	assert.Equal(t, ast.ARITHMETIC_EXPRESSION, tree.Kind())
	assert.Equal(t, "+", tree.Operator())
	right := asTree(t, tree.Child(1))
	assert.Equal(t, "*", right.Operator())
	assert.Equal(t, "2 + 3 * 4", tree.String())

	tree = asTree(t, parseExpr(t, "2 * 3 + 4"))
	assert.Equal(t, "+", tree.Operator())
	assert.Equal(t, "*", asTree(t, tree.Child(0)).Operator())
}

func TestArithmeticIsLeftAssociative(t *testing.T) {
	tree := asTree(t, parseExpr(t, "1 - 2 - 3"))
	assert.Equal(t, "-", tree.Operator())
	left := asTree(t, tree.Child(0))
	assert.Equal(t, ast.ARITHMETIC_EXPRESSION, left.Kind())
	assert.Equal(t, "1 - 2 - 3", tree.String())
}

func TestExponentiationIsRightAssociative(t *testing.T) {
	tree := asTree(t, parseExpr(t, "2 ^ 3 ^ 2"))
	assert.Equal(t, "^", tree.Operator())
	right := asTree(t, tree.Child(1))
	assert.Equal(t, ast.ARITHMETIC_EXPRESSION, right.Kind())
	assert.Equal(t, "^", right.Operator())
}

func TestDefaultIsRightAssociativeAndLowest(t *testing.T) {
	tree := asTree(t, parseExpr(t, "$a ? $b ? $c"))
	assert.Equal(t, ast.DEFAULT_EXPRESSION, tree.Kind())
	right := asTree(t, tree.Child(1))
	assert.Equal(t, ast.DEFAULT_EXPRESSION, right.Kind())

	tree = asTree(t, parseExpr(t, "$a and $b ? $c"))
	assert.Equal(t, ast.DEFAULT_EXPRESSION, tree.Kind())
	assert.Equal(t, ast.LOGICAL_EXPRESSION, asTree(t, tree.Child(0)).Kind())
}

func TestLogicalOperatorsShareATier(t *testing.T) {
	tree := asTree(t, parseExpr(t, "$a and $b or $c"))
	assert.Equal(t, "or", tree.Operator())
	assert.Equal(t, "and", asTree(t, tree.Child(0)).Operator())
}

func TestComparisonBindsTighterThanLogical(t *testing.T) {
	tree := asTree(t, parseExpr(t, "$a = 1 and $b matches any"))
	assert.Equal(t, ast.LOGICAL_EXPRESSION, tree.Kind())
	assert.Equal(t, ast.COMPARISON_EXPRESSION, asTree(t, tree.Child(0)).Kind())
	assert.Equal(t, ast.COMPARISON_EXPRESSION, asTree(t, tree.Child(1)).Kind())
}

func TestInversionBindsBelowExponentiation(t *testing.T) {
	// -2 ^ 2 inverts the whole power.
	tree := asTree(t, parseExpr(t, "-2 ^ 2"))
	require.Equal(t, ast.INVERSION_EXPRESSION, tree.Kind())
	assert.Equal(t, "-", tree.Operator())
	assert.Equal(t, ast.ARITHMETIC_EXPRESSION, asTree(t, tree.Child(0)).Kind())

	// -2 * 3 inverts only the first factor.
	tree = asTree(t, parseExpr(t, "-2 * 3"))
	require.Equal(t, ast.ARITHMETIC_EXPRESSION, tree.Kind())
	assert.Equal(t, ast.INVERSION_EXPRESSION, asTree(t, tree.Child(0)).Kind())
}

func TestComplementBindsBelowComparison(t *testing.T) {
	tree := asTree(t, parseExpr(t, "not $a = $b"))
	require.Equal(t, ast.COMPLEMENT_EXPRESSION, tree.Kind())
	assert.Equal(t, ast.COMPARISON_EXPRESSION, asTree(t, tree.Child(0)).Kind())

	tree = asTree(t, parseExpr(t, "not $a and $b"))
	require.Equal(t, ast.LOGICAL_EXPRESSION, tree.Kind())
	assert.Equal(t, ast.COMPLEMENT_EXPRESSION, asTree(t, tree.Child(0)).Kind())
}

func TestDereferenceBindsTightest(t *testing.T) {
	tree := asTree(t, parseExpr(t, "@$citation + 1"))
	require.Equal(t, ast.ARITHMETIC_EXPRESSION, tree.Kind())
	assert.Equal(t, ast.DEREFERENCE_EXPRESSION, asTree(t, tree.Child(0)).Kind())
}

func TestPostfixOperators(t *testing.T) {
	tree := asTree(t, parseExpr(t, "3!"))
	assert.Equal(t, ast.FACTORIAL_EXPRESSION, tree.Kind())

	tree = asTree(t, parseExpr(t, "$list[1]"))
	require.Equal(t, ast.SUBCOMPONENT_EXPRESSION, tree.Kind())
	assert.Len(t, tree.Children(), 2)

	tree = asTree(t, parseExpr(t, `$object.update("key", 42)`))
	require.Equal(t, ast.MESSAGE_EXPRESSION, tree.Kind())
	require.Len(t, tree.Children(), 4)
	name := tree.Child(1).(*ast.Terminal)
	assert.Equal(t, "update", name.Value())
}

func TestPostfixChainsLeftToRight(t *testing.T) {
	tree := asTree(t, parseExpr(t, "$matrix[1][2]!"))
	require.Equal(t, ast.FACTORIAL_EXPRESSION, tree.Kind())
	inner := asTree(t, tree.Child(0))
	require.Equal(t, ast.SUBCOMPONENT_EXPRESSION, inner.Kind())
	assert.Equal(t, ast.SUBCOMPONENT_EXPRESSION, asTree(t, inner.Child(0)).Kind())
}

func TestFactorialBindsTighterThanExponent(t *testing.T) {
	tree := asTree(t, parseExpr(t, "3! ^ 2"))
	require.Equal(t, ast.ARITHMETIC_EXPRESSION, tree.Kind())
	assert.Equal(t, ast.FACTORIAL_EXPRESSION, asTree(t, tree.Child(0)).Kind())
}

func TestFunctionInvocation(t *testing.T) {
	tree := asTree(t, parseExpr(t, "random()"))
	require.Equal(t, ast.FUNCTION_EXPRESSION, tree.Kind())
	assert.Len(t, tree.Children(), 1)

	tree = asTree(t, parseExpr(t, "sum([1, 2], 3)"))
	require.Equal(t, ast.FUNCTION_EXPRESSION, tree.Kind())
	assert.Len(t, tree.Children(), 3)
}

func TestBareIdentifierIsVariable(t *testing.T) {
	node := parseExpr(t, "x")
	terminal, ok := node.(*ast.Terminal)
	require.True(t, ok)
	assert.Equal(t, ast.VARIABLE, terminal.Kind())
}

func TestMagnitudeAndPrecedence(t *testing.T) {
	tree := asTree(t, parseExpr(t, "|$vector|"))
	assert.Equal(t, ast.MAGNITUDE_EXPRESSION, tree.Kind())

	tree = asTree(t, parseExpr(t, "(1 + 2) * 3"))
	require.Equal(t, ast.ARITHMETIC_EXPRESSION, tree.Kind())
	assert.Equal(t, "*", tree.Operator())
	assert.Equal(t, ast.PRECEDENCE_EXPRESSION, asTree(t, tree.Child(0)).Kind())
}

func TestParenthesizedComplexIsANumber(t *testing.T) {
	tree := asTree(t, parseExpr(t, "(3, 4i)"))
	require.Equal(t, ast.COMPONENT, tree.Kind())
	terminal := tree.Child(0).(*ast.Terminal)
	assert.Equal(t, ast.NUMBER, terminal.Kind())

	wrapped := asTree(t, parseExpr(t, "(3 + 4)"))
	assert.Equal(t, ast.PRECEDENCE_EXPRESSION, wrapped.Kind())
}

func TestInversionVariants(t *testing.T) {
	for _, op := range []string{"-", "/", "*"} {
		tree := asTree(t, parseExpr(t, op+"$x"))
		require.Equal(t, ast.INVERSION_EXPRESSION, tree.Kind(), op)
		assert.Equal(t, op, tree.Operator(), op)
	}
}
