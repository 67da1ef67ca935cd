package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bali/internal/ast"
)

func parseComponent(t *testing.T, source string) *ast.Tree {
	t.Helper()
	node, err := ParseComponent("test.bali", source)
	require.NoError(t, err)
	tree, ok := node.(*ast.Tree)
	require.True(t, ok)
	require.Equal(t, ast.COMPONENT, tree.Kind())
	return tree
}

func TestParseElementKinds(t *testing.T) {
	cases := []struct {
		source string
		kind   ast.NodeType
	}{
		{"#A3GHK57Z", ast.TAG},
		{"$foo", ast.SYMBOL},
		{"v1.2.3", ast.VERSION},
		{"<2024-06-15T10:30:00>", ast.MOMENT},
		{"~P1Y2M", ast.DURATION},
		{"<https://bali.dev/>", ast.REFERENCE},
		{`"hello"`, ast.TEXT},
		{"'aGVsbG8='", ast.BINARY},
		{".5", ast.PROBABILITY},
		{"true", ast.PROBABILITY},
		{"42", ast.NUMBER},
		{"3.14", ast.NUMBER},
		{"pi", ast.NUMBER},
		{"infinity", ast.NUMBER},
		{"undefined", ast.NUMBER},
		{"none", ast.TEMPLATE},
		{"any", ast.TEMPLATE},
	}
	for _, tc := range cases {
		node, err := ParseElement("test.bali", tc.source)
		require.NoError(t, err, tc.source)
		terminal, ok := node.(*ast.Terminal)
		require.True(t, ok, tc.source)
		assert.Equal(t, tc.kind, terminal.Kind(), tc.source)
		assert.Equal(t, tc.source, terminal.Value(), tc.source)
	}
}

func TestParseComplexNumbers(t *testing.T) {
	node, err := ParseElement("test.bali", "(3, 4i)")
	require.NoError(t, err)
	terminal := node.(*ast.Terminal)
	assert.Equal(t, ast.NUMBER, terminal.Kind())
	assert.Equal(t, "(3, 4i)", terminal.Value())

	node, err = ParseElement("test.bali", "(5 e^ 2i)")
	require.NoError(t, err)
	terminal = node.(*ast.Terminal)
	assert.Equal(t, ast.NUMBER, terminal.Kind())
	assert.Equal(t, "(5 e^ 2i)", terminal.Value())
}

func TestParseEmptyStructures(t *testing.T) {
	node, err := ParseStructure("test.bali", "[ ]")
	require.NoError(t, err)
	tree := node.(*ast.Tree)
	assert.Equal(t, ast.ARRAY, tree.Kind())
	assert.Empty(t, tree.Children())

	node, err = ParseStructure("test.bali", "[:]")
	require.NoError(t, err)
	tree = node.(*ast.Tree)
	assert.Equal(t, ast.TABLE, tree.Kind())
	assert.Empty(t, tree.Children())
}

func TestParseInlineAndMultilineArraysMatch(t *testing.T) {
	inline, err := ParseStructure("test.bali", "[1, 2, 3]")
	require.NoError(t, err)
	multiline, err := ParseStructure("test.bali", "[\n    1\n    2\n    3\n]")
	require.NoError(t, err)

	inlineTree := inline.(*ast.Tree)
	multilineTree := multiline.(*ast.Tree)
	assert.Equal(t, ast.ARRAY, inlineTree.Kind())
	assert.Equal(t, ast.ARRAY, multilineTree.Kind())
	assert.Equal(t, inlineTree.String(), multilineTree.String())
}

func TestParseRange(t *testing.T) {
	node, err := ParseStructure("test.bali", "[1..10]")
	require.NoError(t, err)
	tree := node.(*ast.Tree)
	assert.Equal(t, ast.RANGE, tree.Kind())
	assert.Len(t, tree.Children(), 2)
}

func TestParseTable(t *testing.T) {
	node, err := ParseStructure("test.bali", `["name": "Alice", "age": 42]`)
	require.NoError(t, err)
	tree := node.(*ast.Tree)
	assert.Equal(t, ast.TABLE, tree.Kind())
	require.Len(t, tree.Children(), 2)
	association := tree.Child(0).(*ast.Tree)
	assert.Equal(t, ast.ASSOCIATION, association.Kind())
}

func TestParseComponentWithParameters(t *testing.T) {
	tree := parseComponent(t, `[1, 2]($type: "sequence")`)
	require.Len(t, tree.Children(), 2)
	parameters := tree.Child(1).(*ast.Tree)
	assert.Equal(t, ast.PARAMETERS, parameters.Kind())
	require.Len(t, parameters.Children(), 1)
}

func TestParseRejectsEmptyParameters(t *testing.T) {
	_, err := ParseComponent("test.bali", "[1, 2]( )")
	assert.Error(t, err)

	_, err = ParseComponent("test.bali", "[1, 2](\n)")
	assert.Error(t, err)
}

func TestParseBlockIsLiteralData(t *testing.T) {
	tree := parseComponent(t, "{return 1}")
	block := tree.Child(0).(*ast.Tree)
	assert.Equal(t, ast.BLOCK, block.Kind())
	procedure := block.Child(0).(*ast.Tree)
	assert.Equal(t, ast.PROCEDURE, procedure.Kind())
	require.Len(t, procedure.Children(), 1)
}

func TestParseEmptyBlock(t *testing.T) {
	tree := parseComponent(t, "{ }")
	block := tree.Child(0).(*ast.Tree)
	assert.Equal(t, ast.BLOCK, block.Kind())
	assert.Empty(t, block.Child(0).(*ast.Tree).Children())
}

func TestParseStatementSeparators(t *testing.T) {
	inline, err := ParseProcedure("test.bali", "$x := 1; $y := 2")
	require.NoError(t, err)
	assert.Len(t, inline.(*ast.Tree).Children(), 2)

	node, err := ParseComponent("test.bali", "{\n    $x := 1\n    $y := 2\n}")
	require.NoError(t, err)
	block := node.(*ast.Tree).Child(0).(*ast.Tree)
	assert.Len(t, block.Child(0).(*ast.Tree).Children(), 2)
}

func TestParseEvaluateClause(t *testing.T) {
	node, err := ParseProcedure("test.bali", "$x := 1 + 2")
	require.NoError(t, err)
	statement := node.(*ast.Tree).Child(0).(*ast.Tree)
	require.Equal(t, ast.STATEMENT, statement.Kind())
	evaluate := statement.Child(0).(*ast.Tree)
	require.Equal(t, ast.EVALUATE_CLAUSE, evaluate.Kind())
	require.Len(t, evaluate.Children(), 2)
	recipient := evaluate.Child(0).(*ast.Terminal)
	assert.Equal(t, ast.SYMBOL, recipient.Kind())
}

func TestParseAssignmentRequiresRecipient(t *testing.T) {
	_, err := ParseProcedure("test.bali", "1 + 2 := 3")
	assert.Error(t, err)
}

func TestParseIndexedRecipient(t *testing.T) {
	node, err := ParseProcedure("test.bali", "$row[1, 2] := 3")
	require.NoError(t, err)
	evaluate := node.(*ast.Tree).Child(0).(*ast.Tree).Child(0).(*ast.Tree)
	recipient := evaluate.Child(0).(*ast.Tree)
	assert.Equal(t, ast.SUBCOMPONENT_EXPRESSION, recipient.Kind())
	assert.Len(t, recipient.Children(), 3)
}

func TestParseHandleAndFinish(t *testing.T) {
	source := `throw $error handle $e matching any with { } finish with { }`
	node, err := ParseProcedure("test.bali", source)
	require.NoError(t, err)
	statement := node.(*ast.Tree).Child(0).(*ast.Tree)
	require.Len(t, statement.Children(), 3)
	assert.Equal(t, ast.THROW_CLAUSE, statement.Child(0).(*ast.Tree).Kind())
	assert.Equal(t, ast.HANDLE_CLAUSE, statement.Child(1).(*ast.Tree).Kind())
	assert.Equal(t, ast.FINISH_CLAUSE, statement.Child(2).(*ast.Tree).Kind())
}

func TestParseIfElseChain(t *testing.T) {
	source := `if $a then { } else if $b then { } else { }`
	node, err := ParseProcedure("test.bali", source)
	require.NoError(t, err)
	clause := node.(*ast.Tree).Child(0).(*ast.Tree).Child(0).(*ast.Tree)
	require.Equal(t, ast.IF_CLAUSE, clause.Kind())
	// two condition/block pairs plus a trailing else block
	assert.Len(t, clause.Children(), 5)
}

func TestParseSelectClause(t *testing.T) {
	source := `select $kind matching "a" do { } matching "b" do { } else { }`
	node, err := ParseProcedure("test.bali", source)
	require.NoError(t, err)
	clause := node.(*ast.Tree).Child(0).(*ast.Tree).Child(0).(*ast.Tree)
	require.Equal(t, ast.SELECT_CLAUSE, clause.Kind())
	// selector, two pattern/block pairs, and an else block
	assert.Len(t, clause.Children(), 6)
}

func TestParseLoopClauses(t *testing.T) {
	node, err := ParseProcedure("test.bali", "while $going do {break}")
	require.NoError(t, err)
	clause := node.(*ast.Tree).Child(0).(*ast.Tree).Child(0).(*ast.Tree)
	assert.Equal(t, ast.WHILE_CLAUSE, clause.Kind())

	node, err = ParseProcedure("test.bali", "with each $item in [1, 2, 3] do {continue}")
	require.NoError(t, err)
	clause = node.(*ast.Tree).Child(0).(*ast.Tree).Child(0).(*ast.Tree)
	require.Equal(t, ast.WITH_CLAUSE, clause.Kind())
	assert.Len(t, clause.Children(), 3)
}

func TestParseRepositoryClauses(t *testing.T) {
	cases := []struct {
		source string
		kind   ast.NodeType
		arity  int
	}{
		{"checkout $doc from $citation", ast.CHECKOUT_CLAUSE, 2},
		{"save $draft", ast.SAVE_CLAUSE, 1},
		{"save $draft to $citation", ast.SAVE_CLAUSE, 2},
		{"discard $draft", ast.DISCARD_CLAUSE, 1},
		{"commit $doc to $citation", ast.COMMIT_CLAUSE, 2},
		{"publish $event", ast.PUBLISH_CLAUSE, 1},
		{"queue $message on $bag", ast.QUEUE_CLAUSE, 2},
		{"wait for $message from $bag", ast.WAIT_CLAUSE, 2},
	}
	for _, tc := range cases {
		node, err := ParseProcedure("test.bali", tc.source)
		require.NoError(t, err, tc.source)
		clause := node.(*ast.Tree).Child(0).(*ast.Tree).Child(0).(*ast.Tree)
		assert.Equal(t, tc.kind, clause.Kind(), tc.source)
		assert.Len(t, clause.Children(), tc.arity, tc.source)
	}
}

func TestParseReturnClause(t *testing.T) {
	node, err := ParseProcedure("test.bali", "return")
	require.NoError(t, err)
	clause := node.(*ast.Tree).Child(0).(*ast.Tree).Child(0).(*ast.Tree)
	assert.Empty(t, clause.Children())

	node, err = ParseProcedure("test.bali", "return $result")
	require.NoError(t, err)
	returned := node.(*ast.Tree).Child(0).(*ast.Tree).Child(0).(*ast.Tree)
	assert.Len(t, returned.Children(), 1)
}

func TestParseDocumentWithShellLine(t *testing.T) {
	source := "#!/usr/bin/env bali\n[1, 2, 3]\n"
	node, err := ParseDocument("test.bali", source)
	require.NoError(t, err)
	document := node.(*ast.Tree)
	require.Equal(t, ast.DOCUMENT, document.Kind())
	require.Len(t, document.Children(), 2)
	shell := document.Child(0).(*ast.Terminal)
	assert.Equal(t, ast.SHELL, shell.Kind())
}

func TestParseFailsFastOnFirstError(t *testing.T) {
	_, err := ParseDocument("test.bali", "[1, , 3]\n")
	require.Error(t, err)
	parseErr, ok := err.(*ParseError)
	require.True(t, ok)
	assert.Equal(t, 1, parseErr.Position.Line)
	assert.NotEmpty(t, parseErr.Expected)
}

func TestParseRejectsTrailingInput(t *testing.T) {
	_, err := ParseExpression("test.bali", "1 + 2 3")
	assert.Error(t, err)
}

func TestParseErrorNamesTheDocument(t *testing.T) {
	_, err := ParseDocument("test.bali", "[1, , 3]\n")
	require.Error(t, err)
	parseErr, ok := err.(*ParseError)
	require.True(t, ok)
	assert.Equal(t, "test.bali", parseErr.Name)
	assert.Contains(t, parseErr.Error(), "test.bali:1:")
}

func TestParseTextBlockNormalizesIndentation(t *testing.T) {
	source := "[\n    \"\nline one\nline two\n    \"\n]"
	node, err := ParseStructure("test.bali", source)
	require.NoError(t, err)
	array := node.(*ast.Tree)
	component := array.Child(0).(*ast.Tree)
	text := component.Child(0).(*ast.Terminal)
	assert.Equal(t, ast.TEXT, text.Kind())
	assert.Contains(t, text.Value(), "line one")
}
