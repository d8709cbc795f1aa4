package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexLineShapes(t *testing.T) {

	tests := []struct {
		line  string
		token int
	}{
		{"-- a comment", COMMENT},
		{"--$x=1", COMMENT},
		{"print $x", PRINT},
		{`print "hi there"`, PRINT},
		{"print $x=1", PRINT},
		{"$x=1", LET},
		{"$x = $y + 1", LET},
		{"@helper", CALL},
		{"@ helper", CALL},
		{"if $x==1 then exit", IF},
		{"exit", EXIT},
		{"  exit  ", EXIT},
	}

	for _, tt := range tests {
		stmt, err := lexLine(tt.line)
		require.NoError(t, err, tt.line)
		assert.Equal(t, getTokenName(tt.token), getTokenName(stmt.token), tt.line)
	}
}

func TestLexLineUnrecognized(t *testing.T) {

	for _, line := range []string{
		"printx",
		"exiting",
		"@",
		"if $x==1",
		"x=1",
		"sect main",
		"goto 10",
		"ifx then exit",
	} {
		_, err := lexLine(line)
		ce := requireErrorKind(t, err, syntaxError)
		assert.Equal(t, EUNRECOGNIZED, ce.msg, line)
	}
}

func TestLexPrint(t *testing.T) {

	stmt, err := lexLine("print $total")
	require.NoError(t, err)
	require.Len(t, stmt.operands, 1)
	assert.Equal(t, VAR, stmt.operands[0].token)
	assert.Equal(t, "total", stmt.operands[0].tokenData)

	stmt, err = lexLine(`print "  spaced  "`)
	require.NoError(t, err)
	assert.Equal(t, STRING, stmt.operands[0].token)
	assert.Equal(t, "  spaced  ", stmt.operands[0].tokenData)

	_, err = lexLine("print")
	ce := requireErrorKind(t, err, syntaxError)
	assert.Equal(t, EMISSINGPRINTARG, ce.msg)

	_, err = lexLine("print bare")
	ce = requireErrorKind(t, err, syntaxError)
	assert.Equal(t, EBADPRINTARG, ce.msg)
}

func TestLexLet(t *testing.T) {

	stmt, err := lexLine("$sum = $a + $b")
	require.NoError(t, err)
	require.Len(t, stmt.operands, 2)
	assert.Equal(t, "sum", stmt.operands[0].tokenData)
	assert.Equal(t, "$a + $b", stmt.operands[1].tokenData)

	// Only the first '=' splits

	stmt, err = lexLine(`$s="a=b"`)
	require.NoError(t, err)
	assert.Equal(t, "s", stmt.operands[0].tokenData)
	assert.Equal(t, `"a=b"`, stmt.operands[1].tokenData)

	stmt, err = lexLine("$n=%")
	require.NoError(t, err)
	assert.Equal(t, readMarker, stmt.operands[1].tokenData)

	_, err = lexLine("$ = 3")
	ce := requireErrorKind(t, err, syntaxError)
	assert.Equal(t, EMISSINGVARNAME, ce.msg)
}

func TestLexCall(t *testing.T) {

	stmt, err := lexLine("@report")
	require.NoError(t, err)
	assert.Equal(t, SECTION, stmt.operands[0].token)
	assert.Equal(t, "report", stmt.operands[0].tokenData)
}

func TestLexIf(t *testing.T) {

	stmt, err := lexLine(`if $athens == "then" then print "yes"`)
	require.NoError(t, err)
	require.Len(t, stmt.operands, 2)

	cond := stmt.operands[0]
	assert.Equal(t, EQ, cond.token)
	require.Len(t, cond.operands, 2)
	assert.Equal(t, VAR, cond.operands[0].token)
	assert.Equal(t, "athens", cond.operands[0].tokenData)
	assert.Equal(t, STRING, cond.operands[1].token)
	assert.Equal(t, "then", cond.operands[1].tokenData)

	assert.Equal(t, STMT, stmt.operands[1].token)
	assert.Equal(t, `print "yes"`, stmt.operands[1].tokenData)
}

func TestLexIfErrors(t *testing.T) {

	tests := []struct {
		line string
		msg  string
	}{
		{"if $x==1 then", EMISSINGCONSEQUENT},
		{"if then exit", "Malformed condition ''"},
		{"if $x then exit", "Malformed condition '$x'"},
		{"if ==1 then exit", "Malformed condition '==1'"},
		{"if $x== then exit", "Malformed condition '$x=='"},
		{"if 1==1==1 then exit", "Malformed condition '1==1==1'"},
		{"if $xthen exit", "Malformed condition '$xthen exit'"},
	}

	for _, tt := range tests {
		_, err := lexLine(tt.line)
		ce := requireErrorKind(t, err, syntaxError)
		assert.Equal(t, tt.msg, ce.msg, tt.line)
	}
}

func TestLexConditionOperatorOrder(t *testing.T) {

	tests := []struct {
		cond  string
		token int
	}{
		{"$a==$b", EQ},
		{"$a!=$b", NE},
		{"$a>=$b", GE},
		{"$a<=$b", LE},
		{"$a<$b", LT},
		{"$a>$b", GT},
	}

	for _, tt := range tests {
		node, err := lexCondition(tt.cond)
		require.NoError(t, err, tt.cond)
		assert.Equal(t, getTokenName(tt.token), getTokenName(node.token), tt.cond)
		assert.Equal(t, "a", node.operands[0].tokenData)
		assert.Equal(t, "b", node.operands[1].tokenData)
	}
}

func TestMakeTokenNode(t *testing.T) {

	leaf := makeTokenNode(LITERAL, "5")
	assert.Equal(t, "5", leaf.tokenData)
	assert.Empty(t, leaf.operands)

	one := makeTokenNode(STMT, leaf)
	assert.Nil(t, one.tokenData)
	assert.Len(t, one.operands, 1)

	two := makeTokenNode(EQ, leaf, leaf)
	assert.Len(t, two.operands, 2)

	assert.Nil(t, makeTokenNode(EXIT).tokenData)
}
