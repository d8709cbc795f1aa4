package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadSource(d dialect, src string) (*interp, *program, error) {

	ip := newInterp(d, nil, &bytes.Buffer{})

	prog, err := ip.loadProgram(src)

	return ip, prog, err
}

func TestLoadSections(t *testing.T) {

	src := "sect main\nprint \"a\"\n\n  @helper  \n;\n\nsect helper\n-- nothing\n;\n"

	_, prog, err := loadSource(clarity, src)
	require.NoError(t, err)

	assert.Equal(t, []string{"helper", "main"}, prog.sectionNames())

	main := prog.lookupSection("main")
	require.NotNil(t, main)
	assert.Equal(t, 1, main.lineNo)
	assert.Equal(t, []srcLine{{2, `print "a"`}, {4, "@helper"}}, main.stmts)

	helper := prog.lookupSection("helper")
	require.NotNil(t, helper)
	assert.Equal(t, []srcLine{{8, "-- nothing"}}, helper.stmts)
}

func TestLoadEmptySection(t *testing.T) {

	_, prog, err := loadSource(clarity, "sect main\n;")
	require.NoError(t, err)

	main := prog.lookupSection("main")
	require.NotNil(t, main)
	assert.Empty(t, main.stmts)
}

func TestLoadStatementsAreNotLexed(t *testing.T) {

	// A bad statement is only reported when it runs

	_, prog, err := loadSource(clarity, "sect main\n;\nsect never\ngarbage here\n;")
	require.NoError(t, err)
	assert.NotNil(t, prog.lookupSection("never"))
}

func TestLoadCRLF(t *testing.T) {

	_, prog, err := loadSource(clarity, "sect main\r\nprint \"a\"\r\n;\r\n")
	require.NoError(t, err)

	assert.Equal(t, []srcLine{{2, `print "a"`}}, prog.lookupSection("main").stmts)
}

func TestLoadErrors(t *testing.T) {

	tests := []struct {
		name   string
		d      dialect
		src    string
		msg    string
		lineNo int
	}{
		{"missing name", clarity, "sect main\n;\nsect\n;", EMISSINGSECTNAME, 3},
		{"stray semicolon", clarity, "sect main\n;\n;", EUNEXPECTEDSEMI, 3},
		{"stray code", clarity, "sect main\n;\nprint \"x\"", ECODEOUTSIDESECTION, 3},
		{"timballo top level assign", timballo, "$x=1\nsect data\n;\nsect main\n;",
			ECODEOUTSIDESECTION, 1},
		{"unclosed", clarity, "sect main\n;\nsect open\nprint \"x\"",
			"Unclosed section: open", 0},
		{"no main", clarity, "sect other\n;", ENOMAIN, 0},
		{"no data", timballo, "sect main\n;", ENOMAINORDATA, 0},
		{"no main timballo", timballo, "sect data\n;", ENOMAINORDATA, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := loadSource(tt.d, tt.src)
			ce := requireErrorKind(t, err, syntaxError)
			assert.Equal(t, tt.msg, ce.msg)
			assert.Equal(t, tt.lineNo, ce.lineNo)
		})
	}
}

func TestLoadReopenedSectionDropsBuffer(t *testing.T) {

	src := "sect a\nprint \"x\"\nsect b\nprint \"y\"\n;\nsect main\n;"

	_, prog, err := loadSource(clarity, src)
	require.NoError(t, err)

	assert.Nil(t, prog.lookupSection("a"))

	b := prog.lookupSection("b")
	require.NotNil(t, b)
	assert.Equal(t, []srcLine{{4, `print "y"`}}, b.stmts)
}

func TestLoadDuplicateSectionReplaces(t *testing.T) {

	src := "sect main\nprint \"first\"\n;\nsect main\nprint \"second\"\n;"

	_, prog, err := loadSource(clarity, src)
	require.NoError(t, err)

	assert.Equal(t, 1, prog.count)

	main := prog.lookupSection("main")
	assert.Equal(t, 4, main.lineNo)
	assert.Equal(t, []srcLine{{5, `print "second"`}}, main.stmts)
}

func TestLoadTopLevelAssignmentRuns(t *testing.T) {

	ip, _, err := loadSource(clarity, "$x = 4*5\nsect main\n;")
	require.NoError(t, err)

	v, ok := ip.vars.lookup("x")
	require.True(t, ok)
	assert.Equal(t, integerValue(20), v)
}

func TestLoadTopLevelAssignmentError(t *testing.T) {

	_, _, err := loadSource(clarity, "sect main\n;\n$x=1/0")

	ce := requireErrorKind(t, err, runtimeError)
	assert.Equal(t, 3, ce.lineNo)
	assert.Equal(t, "$x=1/0", ce.line)
}

func TestLoadSectKeywordNeedsSpace(t *testing.T) {

	_, _, err := loadSource(clarity, "sectmain\n;")

	ce := requireErrorKind(t, err, syntaxError)
	assert.Equal(t, ECODEOUTSIDESECTION, ce.msg)
}
