package handlers

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// FlexFloat accepts a JSON number or a numeric string. Anything else,
// including malformed strings, decodes to 0.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(b []byte) error {
	*f = FlexFloat(parseFloatOrZero(unquote(b)))
	return nil
}

// FlexBool accepts a JSON bool, a number, or strings like "yes"/"true"/"on".
type FlexBool bool

func (f *FlexBool) UnmarshalJSON(b []byte) error {
	*f = FlexBool(parseBool(unquote(b)))
	return nil
}

func unquote(b []byte) string {
	s := strings.TrimSpace(string(b))
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return ""
		}
		return strings.TrimSpace(str)
	}
	if s == "null" {
		return ""
	}
	return s
}

func parseFloatOrZero(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "on", "1":
		return true
	case "", "false", "no", "off", "0":
		return false
	}
	return parseFloatOrZero(s) != 0
}
