// Package seqcode generates the clinic's human-readable running codes:
// hospital numbers (HN680001), procedure codes (P0001), procedure type codes
// (TP001) and the like. A code is a fixed prefix followed by a fixed-width
// zero-padded number; the next code is max(existing)+1.
//
// The original system computed these in the browser, which let two
// concurrent operators mint the same code. Callers here are expected to run
// inside a database transaction so assignment is race-free.
package seqcode

import (
	"fmt"
	"strconv"
	"strings"
)

// Next returns the next code for the given prefix and numeric width.
// Codes that do not match prefix + exactly width digits are ignored rather
// than counted. An empty (or entirely malformed) set yields the seed value,
// prefix + 0...01.
func Next(prefix string, width int, existing []string) string {
	max := 0
	for _, code := range existing {
		n, ok := parse(prefix, width, code)
		if !ok {
			continue
		}
		if n > max {
			max = n
		}
	}
	return Format(prefix, width, max+1)
}

// Format renders a code from its numeric part.
func Format(prefix string, width, n int) string {
	return fmt.Sprintf("%s%0*d", prefix, width, n)
}

func parse(prefix string, width int, code string) (int, bool) {
	if !strings.HasPrefix(code, prefix) {
		return 0, false
	}
	digits := code[len(prefix):]
	if len(digits) != width {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
