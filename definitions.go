package main

import (
	"github.com/danswartzendruber/avl"
	"io"
	"sync/atomic"
	"time"
)

//
// Constants
//

const VERSION = "1.2.0"

const appName = "clarity"

const clarityFileSuffix = ".lnh"
const timballoFileSuffix = ".tim"

const defaultConfigFile = ".clarity.yaml"

const sigil = "$"
const sectionCallPrefix = "@"
const commentPrefix = "--"
const sectionCloser = ";"
const readMarker = "%"

const sectKeyword = "sect"
const printKeyword = "print"
const ifKeyword = "if"
const thenKeyword = "then"
const exitKeyword = "exit"

const mainSection = "main"
const dataSection = "data"

const colorRedSeq = "\033[91m"
const colorYellowSeq = "\033[93m"
const colorResetSeq = "\033[0m"

//
// Statement tokens.  The first group identifies the statement shape,
// the second the operands hanging off a statement node
//

const (
	COMMENT = iota + 1
	PRINT
	LET
	CALL
	IF
	EXIT

	VAR
	STRING
	LITERAL
	EXPR
	SECTION
	STMT

	EQ
	NE
	GE
	LE
	LT
	GT
)

//
// Comparison operators, in the order a condition is scanned for them
//

var relationalOps = []struct {
	op    string
	token int
}{
	{"==", EQ}, {"!=", NE}, {">=", GE}, {"<=", LE}, {"<", LT}, {">", GT},
}

//
// Arithmetic operators, in the order an expression is scanned for them
//

var arithOps = []string{"+", "-", "*", "/", "%"}

var tokenNames = map[int]string{
	COMMENT: "COMMENT", PRINT: "PRINT", LET: "LET", CALL: "CALL",
	IF: "IF", EXIT: "EXIT", VAR: "VAR", STRING: "STRING",
	LITERAL: "LITERAL", EXPR: "EXPR", SECTION: "SECTION", STMT: "STMT",
	EQ: "==", NE: "!=", GE: ">=", LE: "<=", LT: "<", GT: ">",
}

//
// The two language dialects.  Clarity allows variables to be defined
// anywhere (even outside a section); Timballo only in the data section
//

type dialect int

const (
	dialectUnset dialect = iota
	clarity
	timballo
)

//
// Type definitions
//

type valueKind int

const (
	kindInteger valueKind = iota
	kindText
)

type value struct {
	kind valueKind
	i    int64
	s    string
}

type tokenNode struct {
	operands  []*tokenNode
	tokenData any
	token     int
}

type stmtNode struct {
	token    int
	line     string
	operands []*tokenNode
}

type srcLine struct {
	lineNo int
	text   string
}

type sectNode struct {
	avl    avl.AvlNode
	name   string
	lineNo int
	stmts  []srcLine
}

type program struct {
	root  *avl.AvlNode
	count int
}

type symtab struct {
	vars  map[string]value
	trace *tracer
}

type execContext struct {
	section string
	vars    *symtab
}

type lineReader interface {
	readLine() (string, error)
	close()
}

type runStats struct {
	elapsed       time.Time
	utime         int64
	stime         int64
	numStatements int64
}

type interp struct {
	dialect dialect
	prog    *program
	vars    *symtab
	in      lineReader
	out     io.Writer
	dump    io.Writer
	trace   *tracer
	stats   runStats
}

type traceConfig struct {
	Exec      bool     `yaml:"exec"`
	Vars      bool     `yaml:"vars"`
	Variables []string `yaml:"variables"`
}

type config struct {
	Dialect     string      `yaml:"dialect"`
	Color       bool        `yaml:"color"`
	Stats       bool        `yaml:"stats"`
	Dump        bool        `yaml:"dump"`
	ReadPrompt  string      `yaml:"read_prompt"`
	ReadTimeout int16       `yaml:"read_timeout"`
	Trace       traceConfig `yaml:"trace"`
	List        bool        `yaml:"-"`
	ShowVersion bool        `yaml:"-"`
}

type errorKind int

const (
	syntaxError errorKind = iota + 1
	runtimeError
	fileError
)

type clarityError struct {
	kind   errorKind
	msg    string
	hints  []string
	lineNo int
	line   string
}

type internalErrorInfo struct {
	msg  string
	file string
	line int
}

//
// Global variables
//

var buildTimestampStr string

//
// Set by the signal handler, polled before each statement
//

var interrupted atomic.Bool
