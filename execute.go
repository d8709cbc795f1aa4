package main

import (
	"errors"
	"fmt"
	"github.com/goforj/godump"
	"io"
	"strings"
)

func newInterp(d dialect, in lineReader, out io.Writer) *interp {

	ip := &interp{dialect: d, in: in, out: out}

	ip.trace = newTracer(nil, traceConfig{})
	ip.vars = newSymtab(ip.trace)

	return ip
}

//
// Route the trace output and variable tracing to the given writer
//

func (ip *interp) setTracer(t *tracer) {

	ip.trace = t
	ip.vars.trace = t
}

//
// Drive the whole program: data first (Timballo only), then main.
// The exit statement surfaces here as errExitProgram and is a normal
// stop, not an error
//

func (ip *interp) run() error {

	basicAssert(ip.prog != nil, "No program loaded")

	for _, name := range ip.dialect.entrySections() {
		if err := ip.invokeSection(name); err != nil {
			if errors.Is(err, errExitProgram) {
				return nil
			}
			return err
		}
	}

	return nil
}

//
// Run every statement of a section in order.  Each invocation gets its
// own execution context, which only records the section name; the
// variable table is shared.  The first error aborts the section, and
// since every caller returns it too, the whole run
//

func (ip *interp) invokeSection(name string) error {

	sect := ip.prog.lookupSection(name)
	if sect == nil {
		return newRuntimeError(ESECTNOTFOUND, name)
	}

	ctx := &execContext{section: name, vars: ip.vars}

	for _, sl := range sect.stmts {
		if err := ip.executeLine(ctx, sl); err != nil {
			return err
		}
	}

	return nil
}

func (ip *interp) executeLine(ctx *execContext, sl srcLine) error {

	if interrupted.Swap(false) {
		return newRuntimeError(EINTERRUPTED).at(sl)
	}

	ip.stats.numStatements++

	ip.trace.traceStmt(ctx.section, sl)

	return locateError(ip.executeStmt(ctx, sl.text), sl)
}

func (ip *interp) executeStmt(ctx *execContext, line string) error {

	stmt, err := lexLine(line)
	if err != nil {
		return err
	}

	if ip.dump != nil {
		godump.Fdump(ip.dump, stmt)
	}

	switch stmt.token {
	default:
		unexpectedTokenError(stmt.token)

	case COMMENT:
		// nothing to do

	case PRINT:
		return ip.executePrint(ctx, stmt.operands[0])

	case LET:
		return ip.executeLet(ctx, stmt)

	case CALL:
		return ip.invokeSection(stmt.operands[0].tokenData.(string))

	case IF:
		return ip.executeIf(ctx, stmt)

	case EXIT:
		return errExitProgram
	}

	return nil
}

func (ip *interp) executePrint(ctx *execContext, arg *tokenNode) error {

	var text string

	switch arg.token {
	default:
		unexpectedTokenError(arg.token)

	case VAR:
		v, err := ctx.vars.fetch(arg.tokenData.(string))
		if err != nil {
			return err
		}
		text = v.String()

	case STRING:
		text = arg.tokenData.(string)
	}

	_, err := fmt.Fprintln(ip.out, text)

	return err
}

//
// Assignment: read marker, expression, coercion, then the definition
// site check, in that order.  The check comes last so a bad
// expression is reported before a misplaced definition
//

func (ip *interp) executeLet(ctx *execContext, stmt *stmtNode) error {

	name := stmt.operands[0].tokenData.(string)
	expr := stmt.operands[1].tokenData.(string)

	if expr == readMarker {
		line, err := ip.readInput()
		if err != nil {
			return err
		}
		expr = line
	}

	result, err := ip.evaluateExpr(ctx, expr)
	if err != nil {
		return err
	}

	val, err := coerceValue(result)
	if err != nil {
		return err
	}

	if ip.dialect.restrictsDefinitions() && !ctx.vars.defined(name) &&
		ctx.section != dataSection {
		return newRuntimeError(EDEFINITIONSITE)
	}

	ctx.vars.store(name, val)

	return nil
}

//
// The consequent runs in the same execution context as the if
// statement itself, so it may define variables in data, call a
// section, or exit
//

func (ip *interp) executeIf(ctx *execContext, stmt *stmtNode) error {

	ok, err := ip.evaluateCondition(ctx, stmt.operands[0])
	if err != nil || !ok {
		return err
	}

	return ip.executeStmt(ctx, stmt.operands[1].tokenData.(string))
}

//
// One line from the input source, for the read marker
//

func (ip *interp) readInput() (string, error) {

	basicAssert(ip.in != nil, "No input source")

	line, err := ip.in.readLine()
	if err != nil {
		return "", mapInputError(err)
	}

	return strings.TrimSpace(line), nil
}
