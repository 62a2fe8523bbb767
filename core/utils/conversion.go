package utils

import (
	"strconv"
	"strings"
	"time"

	"github.com/valyala/fastjson"
)

// ToInt converts a JSON value to int.
// It handles numbers, numeric strings and booleans; anything else yields 0.
func ToInt(v *fastjson.Value) int {
	if v == nil {
		return 0
	}
	switch v.Type() {
	case fastjson.TypeNumber:
		if i, err := v.Int(); err == nil {
			return i
		}
		f, _ := v.Float64()
		return int(f)
	case fastjson.TypeString:
		i, _ := strconv.Atoi(strings.TrimSpace(string(v.GetStringBytes())))
		return i
	case fastjson.TypeTrue:
		return 1
	default:
		return 0
	}
}

// ToString converts a JSON value to string.
// Strings are returned unquoted, null and missing values yield "".
func ToString(v *fastjson.Value) string {
	if v == nil {
		return ""
	}
	switch v.Type() {
	case fastjson.TypeString:
		return string(v.GetStringBytes())
	case fastjson.TypeNull:
		return ""
	default:
		return v.String()
	}
}

// ToBool converts a JSON value to bool.
// It handles booleans, numbers (1=true) and strings ("1", "true").
func ToBool(v *fastjson.Value) bool {
	if v == nil {
		return false
	}
	switch v.Type() {
	case fastjson.TypeTrue:
		return true
	case fastjson.TypeNumber:
		return ToInt(v) == 1
	case fastjson.TypeString:
		s := strings.TrimSpace(string(v.GetStringBytes()))
		return s == "1" || strings.EqualFold(s, "true")
	default:
		return false
	}
}

// ToStrings converts a JSON array to a string slice. Non-array values yield nil,
// and elements are converted with ToString. Empty elements are dropped.
func ToStrings(v *fastjson.Value) []string {
	if v == nil || v.Type() != fastjson.TypeArray {
		return nil
	}
	arr, _ := v.Array()
	out := make([]string, 0, len(arr))
	for _, item := range arr {
		if s := ToString(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// ToTime parses an RFC 3339 timestamp held in a JSON string.
func ToTime(v *fastjson.Value) (time.Time, bool) {
	s := ToString(v)
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
