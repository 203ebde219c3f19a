package commands

import (
	"iter"
	"strings"
)

// lines yields the numbered lines of s. A trailing carriage return is
// dropped from each line so CRLF input reads the same as LF.
func lines(s string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		i := 0
		found := true
		var line string
		for found {
			line, s, found = strings.Cut(s, "\n")
			if !yield(i, strings.TrimSuffix(line, "\r")) {
				return
			}
			i += 1
		}
	}
}
