package main

import (
	"strings"
	"unicode"
)

//
// Classify one source line into a statement node.  Lines are lexed
// every time they execute; nothing is cached.  The shapes are tried
// in a fixed order, and an earlier shape shadows a later one when a
// line could be read either way (e.g. '--$x=1' is a comment)
//

func lexLine(line string) (*stmtNode, error) {

	line = strings.TrimSpace(line)

	switch {
	case strings.HasPrefix(line, commentPrefix):
		return makeStmtNode(COMMENT, line), nil

	case hasKeyword(line, printKeyword):
		return lexPrint(line)

	case isAssignment(line):
		return lexLet(line)

	case strings.HasPrefix(line, sectionCallPrefix) &&
		strings.TrimSpace(line[len(sectionCallPrefix):]) != "":
		name := strings.TrimSpace(line[len(sectionCallPrefix):])
		return makeStmtNode(CALL, line, makeTokenNode(SECTION, name)), nil

	case hasKeyword(line, ifKeyword) && strings.Contains(line, thenKeyword):
		return lexIf(line)

	case hasKeyword(line, exitKeyword):
		return makeStmtNode(EXIT, line), nil
	}

	return nil, newSyntaxError(EUNRECOGNIZED)
}

//
// A keyword must be the whole line, or be followed by whitespace.
// 'printer' is not a print statement
//

func hasKeyword(line, kw string) bool {

	if !strings.HasPrefix(line, kw) {
		return false
	}

	return len(line) == len(kw) || unicode.IsSpace(rune(line[len(kw)]))
}

func isAssignment(line string) bool {

	return strings.HasPrefix(line, sigil) && strings.Contains(line, "=")
}

func lexPrint(line string) (*stmtNode, error) {

	arg := strings.TrimSpace(line[len(printKeyword):])

	if arg == "" {
		return nil, newSyntaxError(EMISSINGPRINTARG)
	}

	if strings.HasPrefix(arg, sigil) {
		return makeStmtNode(PRINT, line, makeTokenNode(VAR, arg[len(sigil):])), nil
	}

	if s, ok := unquote(arg); ok {
		return makeStmtNode(PRINT, line, makeTokenNode(STRING, s)), nil
	}

	return nil, newSyntaxError(EBADPRINTARG)
}

//
// '$name = expr'.  The expression is kept as raw text; it can only be
// evaluated once we know whether it is the read marker
//

func lexLet(line string) (*stmtNode, error) {

	name, expr, _ := strings.Cut(line[len(sigil):], "=")

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, newSyntaxError(EMISSINGVARNAME)
	}

	return makeStmtNode(LET, line, makeTokenNode(VAR, name),
		makeTokenNode(EXPR, strings.TrimSpace(expr))), nil
}

//
// 'if <lhs> <op> <rhs> then <stmt>'.  The consequent is kept as raw
// text and lexed again only if the condition holds
//

func lexIf(line string) (*stmtNode, error) {

	rest := line[len(ifKeyword):]

	idx := findThen(rest)
	if idx < 0 {
		return nil, newSyntaxError(EMALFORMEDCOND, strings.TrimSpace(rest))
	}

	cond := strings.TrimSpace(rest[:idx])
	consequent := strings.TrimSpace(rest[idx+len(thenKeyword):])

	if consequent == "" {
		return nil, newSyntaxError(EMISSINGCONSEQUENT)
	}

	condNode, err := lexCondition(cond)
	if err != nil {
		return nil, err
	}

	return makeStmtNode(IF, line, condNode, makeTokenNode(STMT, consequent)), nil
}

//
// Find the 'then' keyword: the first occurrence that stands alone,
// so a variable such as '$athens' does not split the line
//

func findThen(s string) int {

	for off := 0; off < len(s); {
		i := strings.Index(s[off:], thenKeyword)
		if i < 0 {
			return -1
		}

		i += off
		end := i + len(thenKeyword)

		if i > 0 && unicode.IsSpace(rune(s[i-1])) &&
			(end == len(s) || unicode.IsSpace(rune(s[end]))) {
			return i
		}

		off = end
	}

	return -1
}

//
// Scan the condition for the first comparison operator in the fixed
// priority list.  Only one comparison per condition is supported
//

func lexCondition(cond string) (*tokenNode, error) {

	for _, rel := range relationalOps {
		if !strings.Contains(cond, rel.op) {
			continue
		}

		if strings.Count(cond, rel.op) > 1 {
			return nil, newSyntaxError(EMALFORMEDCOND, cond)
		}

		lhs, rhs, _ := strings.Cut(cond, rel.op)

		lhs = strings.TrimSpace(lhs)
		rhs = strings.TrimSpace(rhs)

		if lhs == "" || rhs == "" {
			return nil, newSyntaxError(EMALFORMEDCOND, cond)
		}

		node := makeTokenNode(rel.token, lexOperand(lhs), lexOperand(rhs))

		return node, nil
	}

	return nil, newSyntaxError(EMALFORMEDCOND, cond)
}

func lexOperand(s string) *tokenNode {

	if strings.HasPrefix(s, sigil) {
		return makeTokenNode(VAR, s[len(sigil):])
	}

	if lit, ok := unquote(s); ok {
		return makeTokenNode(STRING, lit)
	}

	return makeTokenNode(LITERAL, s)
}

func makeStmtNode(token int, line string, operands ...*tokenNode) *stmtNode {

	return &stmtNode{token: token, line: line, operands: operands}
}

//
// We can have 0 or more operands here.  If the only operand is not a
// token node, it is the token's data (a name or a piece of text);
// otherwise all operands are token nodes
//

func makeTokenNode(token int, operands ...any) *tokenNode {

	node := &tokenNode{token: token}

	switch len(operands) {
	case 0:
		// NOP

	case 1:
		switch op := operands[0].(type) {
		default:
			node.tokenData = op

		case *tokenNode:
			node.operands = append(node.operands, op)
		}

	default:
		for i := range operands {
			node.operands = append(node.operands, operands[i].(*tokenNode))
		}
	}

	return node
}
