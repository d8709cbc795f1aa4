package main

import (
	"math"
	"strconv"
	"strings"
)

//
// An arithmetic operand after variable substitution.  Anything that
// reads as a (possibly signed) integer is a number; everything else,
// including an undefined variable left as literal text, is text
//

type operand struct {
	text    string
	num     int64
	isNum   bool
	missing bool
}

//
// Evaluate the right hand side of an assignment.  This is not an
// expression parser: the expression is scanned once for the first
// arithmetic operator in the fixed list '+ - * / %', split in two,
// and that single operation is applied.  The result is returned as
// text, for coerceValue to type
//

func (ip *interp) evaluateExpr(ctx *execContext, expr string) (string, error) {

	//
	// A single quoted literal is never split, whatever it contains
	//

	if isQuotedLiteral(expr) {
		return expr, nil
	}

	op := scanArithOp(expr)
	if op == "" {
		return expr, nil
	}

	if strings.Count(expr, op) > 1 {
		return "", newRuntimeError(EINVALIDEXPR, expr)
	}

	l, r, _ := strings.Cut(expr, op)

	lhs, err := ip.resolveOperand(ctx, strings.TrimSpace(l))
	if err != nil {
		return "", err
	}

	rhs, err := ip.resolveOperand(ctx, strings.TrimSpace(r))
	if err != nil {
		return "", err
	}

	return applyArith(expr, op, lhs, rhs)
}

func scanArithOp(expr string) string {

	for _, op := range arithOps {
		if strings.Contains(expr, op) {
			return op
		}
	}

	return ""
}

//
// Substitute a variable operand with its value.  Clarity leaves an
// undefined variable as its literal text (so '$y+1' concatenates to
// '$y1'); Timballo fails right away.  Conditions always fail, see
// resolveCondOperand
//

func (ip *interp) resolveOperand(ctx *execContext, s string) (operand, error) {

	if s == "" {
		return operand{missing: true}, nil
	}

	if strings.HasPrefix(s, sigil) {
		v, ok := ctx.vars.lookup(s[len(sigil):])
		if !ok {
			if ip.dialect.keepsUndefinedOperands() {
				return operand{text: s}, nil
			}
			return operand{}, newRuntimeError(EUNDEFINEDVAR, s[len(sigil):])
		}

		if v.kind == kindInteger {
			return operand{text: v.String(), num: v.i, isNum: true}, nil
		}

		s = v.s
	} else if lit, ok := unquote(s); ok {
		return operand{text: lit}, nil
	}

	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return operand{text: s, num: n, isNum: true}, nil
	}

	return operand{text: s}, nil
}

func applyArith(expr, op string, lhs, rhs operand) (string, error) {

	//
	// '-5' and '+5' split into an empty left operand: a sign
	//

	if lhs.missing && rhs.isNum && (op == "-" || op == "+") {
		lhs = operand{text: "0", isNum: true}
	}

	if lhs.isNum && rhs.isNum {
		n, err := integerArith(op, lhs.num, rhs.num)
		if err != nil {
			return "", newRuntimeError(EINVALIDEXPR+": %s", expr, err.msg)
		}
		return strconv.FormatInt(n, 10), nil
	}

	if op == "+" && !lhs.missing && !rhs.missing {
		return lhs.text + rhs.text, nil
	}

	return "", newRuntimeError(EINVALIDEXPR, expr)
}

//
// Integer arithmetic with overflow checks.  Division and modulo are
// floored, so the remainder takes the sign of the divisor
//

func integerArith(op string, a, b int64) (int64, *clarityError) {

	switch op {
	case "+":
		if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
			return 0, newRuntimeError(EINTEGERERROR)
		}
		return a + b, nil

	case "-":
		if (b < 0 && a > math.MaxInt64+b) || (b > 0 && a < math.MinInt64+b) {
			return 0, newRuntimeError(EINTEGERERROR)
		}
		return a - b, nil

	case "*":
		if a == 0 || b == 0 {
			return 0, nil
		}
		r := a * b
		if r/b != a || (a == -1 && b == math.MinInt64) ||
			(b == -1 && a == math.MinInt64) {
			return 0, newRuntimeError(EINTEGERERROR)
		}
		return r, nil

	case "/":
		if b == 0 {
			return 0, newRuntimeError(EDIVISIONBYZERO)
		}
		if a == math.MinInt64 && b == -1 {
			return 0, newRuntimeError(EINTEGERERROR)
		}
		q := a / b
		if a%b != 0 && (a < 0) != (b < 0) {
			q--
		}
		return q, nil

	case "%":
		if b == 0 {
			return 0, newRuntimeError(EDIVISIONBYZERO)
		}
		if b == -1 {
			return 0, nil
		}
		m := a % b
		if m != 0 && (m < 0) != (b < 0) {
			m += b
		}
		return m, nil
	}

	unexpectedTokenError(0)
	return 0, nil
}

//
// Evaluate a comparison node.  Both operands are resolved to text; if
// both are all digits they compare as integers, otherwise as strings
//

func (ip *interp) evaluateCondition(ctx *execContext, cond *tokenNode) (bool, error) {

	basicAssert(len(cond.operands) == 2, "Condition botch")

	lhs, err := resolveCondOperand(ctx, cond.operands[0])
	if err != nil {
		return false, err
	}

	rhs, err := resolveCondOperand(ctx, cond.operands[1])
	if err != nil {
		return false, err
	}

	var c int

	if isDigits(lhs) && isDigits(rhs) {
		c = compareDigits(lhs, rhs)
	} else {
		c = strings.Compare(lhs, rhs)
	}

	switch cond.token {
	default:
		unexpectedTokenError(cond.token)

	case EQ:
		return c == 0, nil

	case NE:
		return c != 0, nil

	case GE:
		return c >= 0, nil

	case LE:
		return c <= 0, nil

	case LT:
		return c < 0, nil

	case GT:
		return c > 0, nil
	}

	return false, nil
}

func resolveCondOperand(ctx *execContext, tnode *tokenNode) (string, error) {

	switch tnode.token {
	default:
		unexpectedTokenError(tnode.token)

	case VAR:
		v, err := ctx.vars.fetch(tnode.tokenData.(string))
		if err != nil {
			return "", err
		}
		return v.String(), nil

	case STRING, LITERAL:
		return tnode.tokenData.(string), nil
	}

	return "", nil
}
