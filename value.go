package main

import (
	"strconv"
	"strings"
)

func integerValue(i int64) value {

	return value{kind: kindInteger, i: i}
}

func textValue(s string) value {

	return value{kind: kindText, s: s}
}

//
// The natural string form, used by print and by comparisons
//

func (v value) String() string {

	if v.kind == kindInteger {
		return strconv.FormatInt(v.i, 10)
	}

	return v.s
}

//
// The final step of an assignment.  A result made up only of digits
// becomes an integer, a double-quoted literal loses its quotes, and
// anything else is kept as raw text.  Note a negative result such as
// "-3" is not all digits, so it stays text
//

func coerceValue(raw string) (value, error) {

	if isDigits(raw) {
		i, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return value{}, newRuntimeError(EINTEGERERROR)
		}
		return integerValue(i), nil
	}

	if s, ok := unquote(raw); ok {
		return textValue(s), nil
	}

	return textValue(raw), nil
}

func isDigits(s string) bool {

	if s == "" {
		return false
	}

	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}

//
// Strip a surrounding pair of double quotes.  A lone quote character
// is not a quoted literal
//

func unquote(s string) (string, bool) {

	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return s[1 : len(s)-1], true
	}

	return s, false
}

//
// True for one whole quoted literal: quotes at both ends and none
// inside, so '"a"+"b"' does not qualify
//

func isQuotedLiteral(s string) bool {

	lit, ok := unquote(s)

	return ok && !strings.Contains(lit, `"`)
}

//
// Compare two digit strings numerically without converting them,
// so arbitrarily long numbers compare correctly
//

func compareDigits(a, b string) int {

	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")

	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}

	return strings.Compare(a, b)
}
