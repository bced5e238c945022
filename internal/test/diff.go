package test

import (
	"strings"

	"github.com/classhook/classhook/internal/logger"
)

// Diff returns a line-by-line diff of two texts. Lines only in "old" are
// prefixed with "-", lines only in "new" with "+", and shared lines with " ".
func Diff(old string, new string, color bool) string {
	d := differ{color: color}
	d.diff(strings.Split(old, "\n"), strings.Split(new, "\n"))
	return strings.Join(d.lines, "\n")
}

type differ struct {
	lines []string
	color bool
}

func (d *differ) emit(prefix string, colorCode string, line string) {
	if d.color {
		line = colorCode + prefix + line + logger.TerminalColors.Reset
	} else {
		line = prefix + line
	}
	d.lines = append(d.lines, line)
}

// Recursively splits around the longest run of shared lines
func (d *differ) diff(old []string, new []string) {
	o, n, common := longestCommonRun(old, new)

	if common == 0 {
		for _, line := range old {
			d.emit("-", logger.TerminalColors.Red, line)
		}
		for _, line := range new {
			d.emit("+", logger.TerminalColors.Green, line)
		}
		return
	}

	d.diff(old[:o], new[:n])
	for _, line := range old[o : o+common] {
		d.emit(" ", logger.TerminalColors.Dim, line)
	}
	d.diff(old[o+common:], new[n+common:])
}

// Returns the start of the run in each slice and the length of the run. This
// is the dynamic-programming longest common substring over lines.
func longestCommonRun(old []string, new []string) (int, int, int) {
	prev := make([]int, len(new))
	next := make([]int, len(new))
	best, endOld, endNew := 0, 0, 0

	for i := range old {
		for j := range new {
			if old[i] != new[j] {
				next[j] = 0
				continue
			}
			if j == 0 {
				next[j] = 1
			} else {
				next[j] = prev[j-1] + 1
			}
			if next[j] > best {
				best = next[j]
				endOld = i + 1
				endNew = j + 1
			}
		}
		prev, next = next, prev
	}

	return endOld - best, endNew - best, best
}
