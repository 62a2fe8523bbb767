package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fastjson"
)

func parse(t *testing.T, s string) *fastjson.Value {
	t.Helper()
	v, err := fastjson.Parse(s)
	require.NoError(t, err)
	return v
}

func TestToInt(t *testing.T) {
	tests := []struct {
		json string
		want int
	}{
		{`42`, 42},
		{`4.9`, 4},
		{`"17"`, 17},
		{`" 8 "`, 8},
		{`"x"`, 0},
		{`true`, 1},
		{`false`, 0},
		{`null`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.json, func(t *testing.T) {
			assert.Equal(t, tt.want, ToInt(parse(t, tt.json)))
		})
	}
	assert.Equal(t, 0, ToInt(nil))
}

func TestToString(t *testing.T) {
	assert.Equal(t, "abc", ToString(parse(t, `"abc"`)))
	assert.Equal(t, "12", ToString(parse(t, `12`)))
	assert.Equal(t, "true", ToString(parse(t, `true`)))
	assert.Equal(t, "", ToString(parse(t, `null`)))
	assert.Equal(t, "", ToString(nil))
}

func TestToBool(t *testing.T) {
	tests := []struct {
		json string
		want bool
	}{
		{`true`, true},
		{`false`, false},
		{`1`, true},
		{`0`, false},
		{`"true"`, true},
		{`"TRUE"`, true},
		{`"1"`, true},
		{`"no"`, false},
		{`null`, false},
		{`[]`, false},
	}

	for _, tt := range tests {
		t.Run(tt.json, func(t *testing.T) {
			assert.Equal(t, tt.want, ToBool(parse(t, tt.json)))
		})
	}
}

func TestToStrings(t *testing.T) {
	assert.Equal(t, []string{"a.com", "b.com", "3"}, ToStrings(parse(t, `["a.com", "", "b.com", 3, null]`)))
	assert.Equal(t, []string{}, ToStrings(parse(t, `[]`)))
	assert.Nil(t, ToStrings(parse(t, `"a.com"`)))
	assert.Nil(t, ToStrings(nil))
}

func TestToTime(t *testing.T) {
	ts, ok := ToTime(parse(t, `"2026-03-01T10:20:30.123Z"`))
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 3, 1, 10, 20, 30, 123000000, time.UTC), ts.UTC())

	_, ok = ToTime(parse(t, `"yesterday"`))
	assert.False(t, ok)

	_, ok = ToTime(parse(t, `null`))
	assert.False(t, ok)
}
