package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerceValue(t *testing.T) {

	tests := []struct {
		raw  string
		want value
	}{
		{"42", integerValue(42)},
		{"007", integerValue(7)},
		{"0", integerValue(0)},
		{"-3", textValue("-3")},
		{"+3", textValue("+3")},
		{`"hi"`, textValue("hi")},
		{`""`, textValue("")},
		{`"42"`, textValue("42")},
		{`"`, textValue(`"`)},
		{"hello world", textValue("hello world")},
		{"", textValue("")},
	}

	for _, tt := range tests {
		got, err := coerceValue(tt.raw)
		require.NoError(t, err, tt.raw)
		assert.Equal(t, tt.want, got, tt.raw)
	}
}

func TestCoerceValueOverflow(t *testing.T) {

	_, err := coerceValue("99999999999999999999")

	ce := requireErrorKind(t, err, runtimeError)
	assert.Equal(t, EINTEGERERROR, ce.msg)
}

func TestValueString(t *testing.T) {

	assert.Equal(t, "-12", integerValue(-12).String())
	assert.Equal(t, "text", textValue("text").String())
}

func TestCompareDigits(t *testing.T) {

	tests := []struct {
		a, b string
		want int
	}{
		{"10", "9", 1},
		{"9", "10", -1},
		{"007", "7", 0},
		{"0", "000", 0},
		{"123456789012345678901234567890", "123456789012345678901234567891", -1},
		{"42", "41", 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, compareDigits(tt.a, tt.b), "%s vs %s", tt.a, tt.b)
	}
}

func TestUnquote(t *testing.T) {

	s, ok := unquote(`"a b"`)
	assert.True(t, ok)
	assert.Equal(t, "a b", s)

	_, ok = unquote(`"`)
	assert.False(t, ok)

	_, ok = unquote(`"open`)
	assert.False(t, ok)
}

func TestIsQuotedLiteral(t *testing.T) {

	assert.True(t, isQuotedLiteral(`"a-b"`))
	assert.True(t, isQuotedLiteral(`""`))
	assert.False(t, isQuotedLiteral(`"a"+"b"`))
	assert.False(t, isQuotedLiteral(`"`))
	assert.False(t, isQuotedLiteral(`a-b`))
}
