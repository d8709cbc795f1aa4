package main

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

//
// Manifest constants for the error messages.  Messages taking
// arguments are format strings
//

const (
	EMISSINGSECTNAME    = "Missing section name"
	EUNEXPECTEDSEMI     = "Unexpected semicolon outside section"
	ECODEOUTSIDESECTION = "Code must be inside a section"
	EUNCLOSEDSECTION    = "Unclosed section: %s"
	ENOMAIN             = "No 'main' section found in the program"
	ENOMAINORDATA       = "No 'main' or 'data' section found in the program"
	EMISSINGPRINTARG    = "Missing argument for print statement"
	EBADPRINTARG        = "Print argument must be a variable or string literal"
	EMISSINGVARNAME     = "Missing variable name"
	EMISSINGCONSEQUENT  = "Missing statement after 'then'"
	EMALFORMEDCOND      = "Malformed condition '%s'"
	EUNRECOGNIZED       = "Unrecognized statement"
	EUNDEFINEDVAR       = "Variable '$%s' is not defined"
	ESECTNOTFOUND       = "Section '%s' not found"
	EDEFINITIONSITE     = "Variable definitions are only allowed inside the 'data' section"
	EINVALIDEXPR        = "Invalid expression '%s'"
	EDIVISIONBYZERO     = "Division by 0"
	EINTEGERERROR       = "Integer overflow"
	EENDOFINPUT         = "End of input"
	EINTERRUPTED        = "Interrupted"
	ETIMEOUT            = "Keyboard wait exhausted"
	EINVALIDSUFFIX      = "Invalid file extension"
	EUNKNOWNDIALECT     = "Unknown dialect %q"
	EFILENOTFOUND       = "File not found: %s"
	EREADFAILED         = "Failed to read file: %v"
	EBADCONFIG          = "Invalid configuration file %s: %v"
)

//
// errExitProgram is not an error at all: it is the signal the exit
// statement sends back up through every active section.  The run
// driver turns it into a normal stop
//

var errExitProgram = errors.New("exit")

var errUsage = errors.New("usage")

func (k errorKind) String() string {

	switch k {
	case syntaxError:
		return "Syntax Error"

	case runtimeError:
		return "Runtime Error"

	case fileError:
		return "File Error"

	default:
		return "Error"
	}
}

func (e *clarityError) Error() string {

	if e.lineNo > 0 {
		return fmt.Sprintf("%s at line %d: %s", e.kind, e.lineNo, e.msg)
	}

	return fmt.Sprintf("%s: %s", e.kind, e.msg)
}

func newSyntaxError(f string, args ...any) *clarityError {

	return &clarityError{kind: syntaxError, msg: fmt.Sprintf(f, args...)}
}

func newRuntimeError(f string, args ...any) *clarityError {

	return &clarityError{kind: runtimeError, msg: fmt.Sprintf(f, args...)}
}

func newFileError(f string, args ...any) *clarityError {

	return &clarityError{kind: fileError, msg: fmt.Sprintf(f, args...)}
}

//
// Loader errors know their own location; errors raised while
// executing a statement get the location of the line being executed.
// An error coming back from a nested section keeps the innermost
// location, which is the line that actually failed
//

func (e *clarityError) at(sl srcLine) *clarityError {

	e.lineNo = sl.lineNo
	e.line = sl.text

	return e
}

func locateError(err error, sl srcLine) error {

	var ce *clarityError

	if errors.As(err, &ce) && ce.lineNo == 0 {
		ce.at(sl)
	}

	return err
}

//
// Render an error the way the user sees it.  The category and
// location go in red, the offending source line in yellow
//

func formatError(category, msg string, lineNo int, line string, color bool) string {

	var sb strings.Builder

	red, yellow, reset := colorRedSeq, colorYellowSeq, colorResetSeq
	if !color {
		red, yellow, reset = "", "", ""
	}

	if lineNo > 0 {
		fmt.Fprintf(&sb, "%s%s at line %d:%s %s", red, category, lineNo,
			reset, msg)
		if line != "" {
			fmt.Fprintf(&sb, "\n  %s%s%s", yellow, line, reset)
		}
	} else {
		fmt.Fprintf(&sb, "%s%s:%s %s", red, category, reset, msg)
	}

	return sb.String()
}

func renderError(err error, color bool) string {

	var ce *clarityError

	if !errors.As(err, &ce) {
		return formatError("Internal Error",
			"An unexpected error occurred: "+err.Error(), 0, "", color)
	}

	s := formatError(ce.kind.String(), ce.msg, ce.lineNo, ce.line, color)

	for _, hint := range ce.hints {
		s += "\n" + hint
	}

	return s
}

//
// Interpreter invariant checks.  These are bugs in the interpreter
// itself, not in the user program, so they panic and are decoded
// by the recovery code in call()
//

func basicAssert(chk bool, msg string) {

	if !chk {
		fatalError("%s", msg)
	}
}

func unexpectedTokenError(token int) {

	fatalError("Unexpected token %s (%d)", getTokenName(token), token)
}

//
// We find filename and line number of our caller, and stuff those
// into the internalErrorInfo structure before calling panic
//

func fatalError(f string, args ...any) {

	_, file, line, ok := runtime.Caller(2)
	if !ok {
		file = "unknown"
	}

	msg := strings.TrimRight(fmt.Sprintf(f, args...), "\n")

	panic(&internalErrorInfo{msg: msg, file: file, line: line})
}

func getTokenName(token int) string {

	if name, ok := tokenNames[token]; ok {
		return name
	}

	return "UNKNOWN"
}
