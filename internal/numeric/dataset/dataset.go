package dataset

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// ErrNoData is returned when an input yields no usable numbers.
var ErrNoData = errors.New("no valid numbers found")

// Dataset is an ordered sequence of finite float64 values.
type Dataset []float64

// Report describes how an input was tokenized.
type Report struct {
	Tokens  int `json:"tokens"`  // non-blank tokens seen
	Parsed  int `json:"parsed"`  // tokens kept
	Skipped int `json:"skipped"` // tokens dropped as unparsable
}

// ParseText extracts numbers from multi-line comma separated text.
// Lines are split on '\n' and each line on ','. Unparsable tokens are
// dropped without error.
func ParseText(text string) (Dataset, Report) {
	var (
		data   Dataset
		report Report
	)
	for _, line := range strings.Split(text, "\n") {
		data = appendTokens(data, &report, line)
	}
	return data, report
}

// ParseLine extracts numbers from a single comma separated line. Newlines
// are not treated as separators.
func ParseLine(text string) (Dataset, Report) {
	var report Report
	data := appendTokens(nil, &report, text)
	return data, report
}

func appendTokens(data Dataset, report *Report, line string) Dataset {
	for _, tok := range strings.Split(line, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		report.Tokens++

		v, ok := parseToken(tok)
		if !ok {
			report.Skipped++
			continue
		}
		report.Parsed++
		data = append(data, v)
	}
	return data
}

// parseToken accepts finite decimal values only. NaN and infinities would
// leave the ordering used for medians undefined. Hex floats and digit
// separators are Go literal syntax, not data, and are rejected.
func parseToken(tok string) (float64, bool) {
	if strings.ContainsRune(tok, '_') {
		return 0, false
	}
	if digits := strings.TrimLeft(tok, "+-"); len(digits) > 1 && digits[0] == '0' && (digits[1] == 'x' || digits[1] == 'X') {
		return 0, false
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, false
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// Finite reports whether every value of values is finite.
func Finite(values []float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
